package series

import (
	"disruption-stats-go/internal/aggregator"
	"disruption-stats-go/internal/labels"
	"disruption-stats-go/internal/types"
)

// Row caps for compact mode.
const (
	CompactNarrow = 5
	CompactMedium = 8
)

// CompactForWidth picks the cause-row cap for a viewport width in pixels.
// Zero means no cap.
func CompactForWidth(px int) int {
	switch {
	case px <= 0:
		return 0
	case px < 600:
		return CompactNarrow
	case px < 1024:
		return CompactMedium
	default:
		return 0
	}
}

// Single turns a one-key aggregate into aligned label/value arrays.
func Single(c aggregator.Counts) types.Series {
	keys := c.Keys()
	values := make([]int, 0, len(keys))
	for _, k := range keys {
		values = append(values, c.Get(k))
	}
	return types.Series{Labels: keys, Values: values}
}

// Multi lays every cause row over the 12-month axis. A positive compact keeps
// only the top causes by yearly total.
func Multi(m aggregator.Matrix, compact int) types.MultiSeries {
	if compact > 0 {
		m = m.Top(compact)
	}
	out := types.MultiSeries{
		Labels:   labels.Months(),
		Datasets: make([]types.CauseSeries, 0, m.Len()),
	}
	for _, cause := range m.Causes() {
		row := m.Row(cause)
		data := make([]int, len(row))
		copy(data, row[:])
		out.Datasets = append(out.Datasets, types.CauseSeries{Label: cause, Data: data})
	}
	return out
}
