package normalizer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"disruption-stats-go/internal/types"
)

func TestNormalize(t *testing.T) {
	amsterdamish := time.FixedZone("CET", 1*60*60)
	newYorkish := time.FixedZone("EST", -5*60*60)

	tests := []struct {
		name      string
		rec       types.DisruptionRecord
		loc       *time.Location
		wantMonth string
		wantCause string
	}{
		{
			name:      "utc timestamp with known cause",
			rec:       types.DisruptionRecord{StartTime: "2024-01-15T10:00:00Z", CauseGroup: "weather"},
			loc:       time.UTC,
			wantMonth: "01",
			wantCause: "Weer",
		},
		{
			name:      "missing cause falls back to unknown",
			rec:       types.DisruptionRecord{StartTime: "2024-01-20T10:00:00Z"},
			loc:       time.UTC,
			wantMonth: "01",
			wantCause: "Onbekend",
		},
		{
			name:      "untranslated cause passes through",
			rec:       types.DisruptionRecord{StartTime: "2024-06-01T12:00:00Z", CauseGroup: "vandalism"},
			loc:       time.UTC,
			wantMonth: "06",
			wantCause: "vandalism",
		},
		{
			name:      "month follows the local interpretation",
			rec:       types.DisruptionRecord{StartTime: "2024-01-31T23:30:00Z", CauseGroup: "staff"},
			loc:       amsterdamish,
			wantMonth: "02",
			wantCause: "Personeel",
		},
		{
			name:      "zone-less timestamp is local",
			rec:       types.DisruptionRecord{StartTime: "2024-12-31T23:30:00", CauseGroup: "staff"},
			loc:       newYorkish,
			wantMonth: "12",
			wantCause: "Personeel",
		},
		{
			name:      "fractional seconds with offset",
			rec:       types.DisruptionRecord{StartTime: "2023-07-01T00:15:00.123+02:00", CauseGroup: "accidents"},
			loc:       amsterdamish,
			wantMonth: "06",
			wantCause: "Ongelukken",
		},
		{
			name:      "date only is utc midnight",
			rec:       types.DisruptionRecord{StartTime: "2024-03-01", CauseGroup: "logistical"},
			loc:       newYorkish,
			wantMonth: "02",
			wantCause: "Logistiek",
		},
		{
			name:      "space separated local timestamp",
			rec:       types.DisruptionRecord{StartTime: "2022-09-09 08:00:00", CauseGroup: "external"},
			loc:       time.UTC,
			wantMonth: "09",
			wantCause: "Externe factoren",
		},
		{
			name:      "minutes only with utc designator",
			rec:       types.DisruptionRecord{StartTime: "2024-01-15T10:00Z", CauseGroup: "weather"},
			loc:       time.UTC,
			wantMonth: "01",
			wantCause: "Weer",
		},
		{
			name:      "minutes only with offset",
			rec:       types.DisruptionRecord{StartTime: "2024-04-01T00:30+02:00", CauseGroup: "weather"},
			loc:       time.UTC,
			wantMonth: "03",
			wantCause: "Weer",
		},
		{
			name:      "year and month is utc",
			rec:       types.DisruptionRecord{StartTime: "2024-01", CauseGroup: "staff"},
			loc:       time.UTC,
			wantMonth: "01",
			wantCause: "Personeel",
		},
		{
			name:      "year and month seen from a western zone",
			rec:       types.DisruptionRecord{StartTime: "2024-05", CauseGroup: "staff"},
			loc:       newYorkish,
			wantMonth: "04",
			wantCause: "Personeel",
		},
		{
			name:      "bare year is january",
			rec:       types.DisruptionRecord{StartTime: "2024", CauseGroup: "staff"},
			loc:       amsterdamish,
			wantMonth: "01",
			wantCause: "Personeel",
		},
		{
			name:      "unparsable timestamp",
			rec:       types.DisruptionRecord{StartTime: "yesterday", CauseGroup: "infrastructure"},
			loc:       time.UTC,
			wantMonth: InvalidMonth,
			wantCause: "Infrastructuur",
		},
		{
			name:      "missing timestamp",
			rec:       types.DisruptionRecord{},
			loc:       time.UTC,
			wantMonth: InvalidMonth,
			wantCause: "Onbekend",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.rec, tt.loc)
			assert.Equal(t, tt.wantMonth, got.MonthKey)
			assert.Equal(t, tt.wantCause, got.Cause)
		})
	}
}

func TestNormalizeNilLocation(t *testing.T) {
	got := Normalize(types.DisruptionRecord{StartTime: "2024-05-15T12:00:00Z"}, nil)
	assert.Equal(t, "05", got.MonthKey)
}
