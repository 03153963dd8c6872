package labels

// UnknownCause is substituted when a record carries no cause_group.
const UnknownCause = "unknown"

var causeLabels = map[string]string{
	"staff":            "Personeel",
	"external":         "Externe factoren",
	"infrastructure":   "Infrastructuur",
	"rolling stock":    "Materieel",
	"weather":          "Weer",
	"accidents":        "Ongelukken",
	"logistical":       "Logistiek",
	"engineering work": "Technisch werk",
	UnknownCause:       "Onbekend",
}

// months is indexed by month number minus one.
var months = [12]string{
	"Januari", "Februari", "Maart", "April", "Mei", "Juni",
	"Juli", "Augustus", "September", "Oktober", "November", "December",
}

var monthKeys = map[string]int{
	"01": 0, "02": 1, "03": 2, "04": 3, "05": 4, "06": 5,
	"07": 6, "08": 7, "09": 8, "10": 9, "11": 10, "12": 11,
}

// CauseLabel translates a cause code to its display label. Codes without
// an entry are returned verbatim.
func CauseLabel(code string) string {
	if l, ok := causeLabels[code]; ok {
		return l
	}
	return code
}

// MonthName maps a two-digit month key ("01".."12") to its display name.
func MonthName(key string) (string, bool) {
	i, ok := MonthIndex(key)
	if !ok {
		return "", false
	}
	return months[i], true
}

// MonthIndex maps a two-digit month key to its zero-based calendar index.
func MonthIndex(key string) (int, bool) {
	i, ok := monthKeys[key]
	return i, ok
}

// Months returns the 12 month names in calendar order.
func Months() []string {
	out := make([]string, len(months))
	copy(out, months[:])
	return out
}
