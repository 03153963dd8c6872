package dataset

import (
	"sort"
	"time"

	"disruption-stats-go/internal/aggregator"
	"disruption-stats-go/internal/types"
)

type CauseCount struct {
	Cause string `json:"cause"`
	Count int    `json:"count"`
}

// Summary is the headline view of one year.
type Summary struct {
	Year          string       `json:"year"`
	TotalRecords  int          `json:"total_records"`
	DatedRecords  int          `json:"dated_records"`
	DistinctCause int          `json:"distinct_causes"`
	BusiestMonth  string       `json:"busiest_month,omitempty"`
	BusiestCount  int          `json:"busiest_month_count,omitempty"`
	TopCauses     []CauseCount `json:"top_causes"`
}

const topCauseCount = 3

// Summarize condenses a year's aggregates. Ties go to whichever key was seen
// first.
func Summarize(year string, byMonth, byCause aggregator.Counts) Summary {
	s := Summary{
		Year:          year,
		TotalRecords:  byCause.Total(),
		DatedRecords:  byMonth.Total(),
		DistinctCause: byCause.Len(),
		TopCauses:     []CauseCount{},
	}

	for _, m := range byMonth.Keys() {
		if c := byMonth.Get(m); c > s.BusiestCount {
			s.BusiestMonth, s.BusiestCount = m, c
		}
	}

	causes := byCause.Keys()
	sort.SliceStable(causes, func(i, j int) bool {
		return byCause.Get(causes[i]) > byCause.Get(causes[j])
	})
	for i := 0; i < len(causes) && i < topCauseCount; i++ {
		s.TopCauses = append(s.TopCauses, CauseCount{Cause: causes[i], Count: byCause.Get(causes[i])})
	}
	return s
}

// SummarizeRecords is Summarize over freshly aggregated records.
func SummarizeRecords(year string, recs []types.DisruptionRecord, loc *time.Location) Summary {
	return Summarize(year, aggregator.ByMonth(recs, loc), aggregator.ByCause(recs))
}
