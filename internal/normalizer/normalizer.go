package normalizer

import (
	"fmt"
	"time"

	"disruption-stats-go/internal/labels"
	"disruption-stats-go/internal/types"
)

// InvalidMonth is the month key of a record whose start_time did not parse.
// It matches no month in the translation table.
const InvalidMonth = "NaN"

// Normalized holds the two derived keys the aggregator groups on.
type Normalized struct {
	MonthKey string
	Cause    string
}

// Offset-carrying layouts keep their instant.
var offsetLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04Z07:00",
}

// Layouts without a zone offset are read in the caller's location.
var localLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
}

// Date-only forms are UTC midnight of their first day.
var dateLayouts = []string{
	time.DateOnly,
	"2006-01",
	"2006",
}

// Normalize derives the month key and cause label for one record. The month
// is taken from the timestamp as seen in loc.
func Normalize(rec types.DisruptionRecord, loc *time.Location) Normalized {
	if loc == nil {
		loc = time.Local
	}
	n := Normalized{MonthKey: InvalidMonth, Cause: CauseOf(rec)}
	if ts, ok := ParseStart(rec.StartTime, loc); ok {
		n.MonthKey = fmt.Sprintf("%02d", int(ts.In(loc).Month()))
	}
	return n
}

// CauseOf applies the "unknown" fallback and translates the cause code.
func CauseOf(rec types.DisruptionRecord) string {
	code := rec.CauseGroup
	if code == "" {
		code = labels.UnknownCause
	}
	return labels.CauseLabel(code)
}

// ParseStart parses a start_time value. Offset-carrying timestamps keep their
// instant; zone-less date-times are local to loc; a bare date, year-month or
// year is UTC midnight.
func ParseStart(s string, loc *time.Location) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range offsetLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, true
		}
	}
	for _, layout := range localLayouts {
		if ts, err := time.ParseInLocation(layout, s, loc); err == nil {
			return ts, true
		}
	}
	for _, layout := range dateLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}
