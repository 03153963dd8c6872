package aggregator

import (
	"sort"
	"time"

	"disruption-stats-go/internal/labels"
	"disruption-stats-go/internal/normalizer"
	"disruption-stats-go/internal/types"
)

// Counts is a key→count mapping that remembers first-insertion order.
type Counts struct {
	keys   []string
	counts map[string]int
}

func newCounts() Counts {
	return Counts{keys: []string{}, counts: map[string]int{}}
}

func (c *Counts) inc(key string) {
	if _, ok := c.counts[key]; !ok {
		c.keys = append(c.keys, key)
	}
	c.counts[key]++
}

// Keys returns the keys in order of first occurrence.
func (c Counts) Keys() []string {
	out := make([]string, len(c.keys))
	copy(out, c.keys)
	return out
}

func (c Counts) Get(key string) int { return c.counts[key] }

func (c Counts) Len() int { return len(c.keys) }

func (c Counts) Total() int {
	total := 0
	for _, v := range c.counts {
		total += v
	}
	return total
}

// ByMonth counts records per month display name. Months without records
// are absent, and records whose start_time did not parse are dropped.
func ByMonth(records []types.DisruptionRecord, loc *time.Location) Counts {
	out := newCounts()
	for _, r := range records {
		n := normalizer.Normalize(r, loc)
		name, ok := labels.MonthName(n.MonthKey)
		if !ok {
			continue
		}
		out.inc(name)
	}
	return out
}

// ByCause counts records per cause label. Every record lands in exactly one
// bucket.
func ByCause(records []types.DisruptionRecord) Counts {
	out := newCounts()
	for _, r := range records {
		out.inc(normalizer.CauseOf(r))
	}
	return out
}

// Matrix holds per-cause counts over the 12 calendar months.
type Matrix struct {
	causes []string
	rows   map[string]*[12]int
}

// ByMonthCause builds one zero-filled 12-month row per cause seen. A record
// with an unparsable start_time still opens its cause row but adds to no
// month.
func ByMonthCause(records []types.DisruptionRecord, loc *time.Location) Matrix {
	m := Matrix{causes: []string{}, rows: map[string]*[12]int{}}
	for _, r := range records {
		n := normalizer.Normalize(r, loc)
		row, ok := m.rows[n.Cause]
		if !ok {
			row = &[12]int{}
			m.rows[n.Cause] = row
			m.causes = append(m.causes, n.Cause)
		}
		if i, ok := labels.MonthIndex(n.MonthKey); ok {
			row[i]++
		}
	}
	return m
}

// Causes returns the row keys in first-insertion order.
func (m Matrix) Causes() []string {
	out := make([]string, len(m.causes))
	copy(out, m.causes)
	return out
}

func (m Matrix) Len() int { return len(m.causes) }

// Row returns a copy of the cause's monthly counts; unknown causes are all zero.
func (m Matrix) Row(cause string) [12]int {
	if row, ok := m.rows[cause]; ok {
		return *row
	}
	return [12]int{}
}

func (m Matrix) RowTotal(cause string) int {
	total := 0
	for _, v := range m.Row(cause) {
		total += v
	}
	return total
}

// Top keeps the n causes with the highest yearly total, ties broken by
// first-insertion order. n <= 0 keeps every row in insertion order.
func (m Matrix) Top(n int) Matrix {
	causes := m.Causes()
	if n > 0 {
		sort.SliceStable(causes, func(i, j int) bool {
			return m.RowTotal(causes[i]) > m.RowTotal(causes[j])
		})
		if len(causes) > n {
			causes = causes[:n]
		}
	}
	out := Matrix{causes: causes, rows: make(map[string]*[12]int, len(causes))}
	for _, c := range causes {
		row := m.Row(c)
		out.rows[c] = &row
	}
	return out
}
