package types

// DisruptionRecord is one entry of a yearly disruptions-<year>.json file.
// Only the fields the dashboard aggregates on are decoded.
type DisruptionRecord struct {
	StartTime  string `json:"start_time"`
	CauseGroup string `json:"cause_group,omitempty"`
}

// Track is one entry of train-map.json. A single coordinate is a station,
// two or more form a route polyline.
type Track struct {
	Name        string       `json:"name"`
	Disruptions int          `json:"disruptions"`
	Coords      [][2]float64 `json:"coords"`
}

type Series struct {
	Labels []string `json:"labels"`
	Values []int    `json:"values"`
}

type CauseSeries struct {
	Label string `json:"label"`
	Data  []int  `json:"data"`
}

// MultiSeries shares one 12-month label axis across all cause rows.
type MultiSeries struct {
	Labels   []string      `json:"labels"`
	Datasets []CauseSeries `json:"datasets"`
}
