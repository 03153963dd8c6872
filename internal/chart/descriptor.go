package chart

import (
	"fmt"

	"disruption-stats-go/internal/types"
)

const primaryBlue = "#003082"

var piePalette = []string{
	"#003082", "#FFC917", "#E6E6E9", "#4D79B3",
	"#FFE066", "#999999", "#001F52", "#CC9900",
}

var linePalette = []string{
	"#003082", "#FFC917", "#E6E6E9", "#4D79B3",
	"#FFE066", "#999999", "#001F52", "#CC9900",
	"#5D8AA8", "#A52A2A",
}

// Theme carries the colors that differ between light and dark mode.
type Theme struct {
	Dark       bool   `json:"dark"`
	Text       string `json:"text_color"`
	Grid       string `json:"grid_color"`
	Background string `json:"background_color"`
}

func ThemeFor(dark bool) Theme {
	if dark {
		return Theme{Dark: true, Text: "#ffffff", Grid: "#404040", Background: "#2d2d2d"}
	}
	return Theme{Text: "#39394D", Grid: "#E6E6E9", Background: "#ffffff"}
}

type Dataset struct {
	Label           string   `json:"label"`
	Data            []int    `json:"data"`
	BorderColor     string   `json:"borderColor,omitempty"`
	BackgroundColor []string `json:"backgroundColor,omitempty"`
	BorderWidth     int      `json:"borderWidth,omitempty"`
	Tension         float64  `json:"tension,omitempty"`
}

// Descriptor is everything a charting widget needs to draw one mode. Builders
// return fresh values; nothing is shared between descriptors.
type Descriptor struct {
	Mode        Mode      `json:"mode"`
	Type        string    `json:"type"`
	Year        string    `json:"year"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	ShowScales  bool      `json:"show_scales"`
	ShowLegend  bool      `json:"show_legend"`
	Theme       Theme     `json:"theme"`
	Labels      []string  `json:"labels"`
	Datasets    []Dataset `json:"datasets"`
}

func MonthlyBar(year string, s types.Series, theme Theme) Descriptor {
	return Descriptor{
		Mode:        Monthly,
		Type:        "bar",
		Year:        year,
		Title:       fmt.Sprintf("Aantal storingen per maand in %s", year),
		Description: fmt.Sprintf("Deze grafiek toont het aantal treinstoringen per maand in %s. De blauwe balken geven het totale aantal storingen weer voor elke maand.", year),
		ShowScales:  true,
		ShowLegend:  true,
		Theme:       theme,
		Labels:      cloneStrings(s.Labels),
		Datasets: []Dataset{{
			Label:           "Aantal storingen per maand",
			Data:            cloneInts(s.Values),
			BorderColor:     primaryBlue,
			BackgroundColor: []string{primaryBlue},
			BorderWidth:     1,
		}},
	}
}

func CausesPie(year string, s types.Series, theme Theme) Descriptor {
	return Descriptor{
		Mode:        Causes,
		Type:        "pie",
		Year:        year,
		Title:       fmt.Sprintf("Oorzaken van treinstoringen in %s", year),
		Description: fmt.Sprintf("Deze cirkeldiagram laat zien hoe de verschillende oorzaken van treinstoringen zijn verdeeld in %s. Elke kleur vertegenwoordigt een andere categorie van storingen.", year),
		ShowScales:  false,
		ShowLegend:  true,
		Theme:       theme,
		Labels:      cloneStrings(s.Labels),
		Datasets: []Dataset{{
			Label:           "Aantal storingen per oorzaak",
			Data:            cloneInts(s.Values),
			BackgroundColor: cloneStrings(piePalette),
		}},
	}
}

func CausesPerMonthLine(year string, ms types.MultiSeries, theme Theme) Descriptor {
	datasets := make([]Dataset, 0, len(ms.Datasets))
	for i, cs := range ms.Datasets {
		color := linePalette[i%len(linePalette)]
		datasets = append(datasets, Dataset{
			Label:           cs.Label,
			Data:            cloneInts(cs.Data),
			BorderColor:     color,
			BackgroundColor: []string{color + "33"},
			BorderWidth:     2,
			Tension:         0.2,
		})
	}
	return Descriptor{
		Mode:        CausesPerMonth,
		Type:        "line",
		Year:        year,
		Title:       fmt.Sprintf("Oorzaken van storingen per maand in %s", year),
		Description: fmt.Sprintf("Deze grafiek toont hoe de verschillende oorzaken van treinstoringen per maand zijn verdeeld in %s. Elke lijn vertegenwoordigt een andere categorie van storingen.", year),
		ShowScales:  true,
		ShowLegend:  true,
		Theme:       theme,
		Labels:      cloneStrings(ms.Labels),
		Datasets:    datasets,
	}
}

// Empty is the placeholder shown after a failed fetch. It never carries data
// from a previous selection.
func Empty(mode Mode, year string, theme Theme) Descriptor {
	kind := map[Mode]string{Monthly: "bar", Causes: "pie", CausesPerMonth: "line", Map: "map"}[mode]
	return Descriptor{
		Mode:        mode,
		Type:        kind,
		Year:        year,
		Title:       mode.MenuTitle(),
		Description: fmt.Sprintf("Er is een fout opgetreden bij het laden van data voor %s. Mogelijk zijn er geen gegevens beschikbaar voor dit jaar.", year),
		ShowScales:  mode != Causes && mode != Map,
		ShowLegend:  true,
		Theme:       theme,
		Labels:      []string{},
		Datasets: []Dataset{{
			Label:           "Geen data beschikbaar",
			Data:            []int{},
			BorderColor:     primaryBlue,
			BackgroundColor: []string{primaryBlue},
		}},
	}
}

func cloneStrings(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func cloneInts(in []int) []int {
	out := make([]int, len(in))
	copy(out, in)
	return out
}
