package trackmap

import (
	"fmt"
	"html"

	"disruption-stats-go/internal/types"
)

const (
	stationColor  = "#003082"
	stationRadius = 300

	lightTiles = "https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png"
	darkTiles  = "https://{s}.basemaps.cartocdn.com/dark_all/{z}/{x}/{y}{r}.png"
)

type Route struct {
	Name        string       `json:"name"`
	Disruptions int          `json:"disruptions"`
	Coords      [][2]float64 `json:"coords"`
	Color       string       `json:"color"`
	Weight      int          `json:"weight"`
	Opacity     float64      `json:"opacity"`
	Popup       string       `json:"popup"`
}

type Station struct {
	Name        string     `json:"name"`
	Disruptions int        `json:"disruptions"`
	Coord       [2]float64 `json:"coord"`
	Color       string     `json:"color"`
	Radius      int        `json:"radius"`
	Popup       string     `json:"popup"`
}

type View struct {
	Center      [2]float64 `json:"center"`
	Zoom        int        `json:"zoom"`
	MaxZoom     int        `json:"max_zoom"`
	TileURL     string     `json:"tile_url"`
	Attribution string     `json:"attribution"`
}

// Layer is the geometry a mapping widget draws for one year.
type Layer struct {
	Year        string    `json:"year"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	View        View      `json:"view"`
	Routes      []Route   `json:"routes"`
	Stations    []Station `json:"stations"`
	// Placeholder is set when the built-in demo tracks stand in for a
	// missing map file.
	Placeholder bool `json:"placeholder"`
}

func ViewFor(dark bool) View {
	v := View{
		Center:      [2]float64{52.1326, 5.2913},
		Zoom:        7,
		MaxZoom:     19,
		TileURL:     lightTiles,
		Attribution: "© OpenStreetMap contributors",
	}
	if dark {
		v.TileURL = darkTiles
	}
	return v
}

// ColorFor grades a route by its share of the busiest route's count.
func ColorFor(disruptions, busiest int) string {
	if busiest <= 0 {
		return "#cccccc"
	}
	share := float64(disruptions) / float64(busiest)
	switch {
	case share > 0.75:
		return "#b10026"
	case share > 0.5:
		return "#fc4e2a"
	case share > 0.25:
		return "#feb24c"
	case share > 0:
		return "#ffeda0"
	default:
		return "#cccccc"
	}
}

// Build splits tracks into routes and stations. Tracks without coordinates
// are skipped.
func Build(year string, tracks []types.Track, dark bool) Layer {
	busiest := 0
	for _, t := range tracks {
		if t.Disruptions > busiest {
			busiest = t.Disruptions
		}
	}

	layer := Layer{
		Year:        year,
		Title:       fmt.Sprintf("Storingen op het spoor in %s", year),
		Description: fmt.Sprintf("Deze kaart toont de Nederlandse spoorwegen, waarbij de kleurintensiteit het aantal storingen per traject aangeeft in %s. Rood betekent veel storingen (>75%%), oranje gemiddeld (50-75%%), geel weinig (25-50%%), en lichtgeel zeer weinig (<25%%) storingen. Stations zijn aangegeven met blauwe punten.", year),
		View:        ViewFor(dark),
		Routes:      []Route{},
		Stations:    []Station{},
	}
	for _, t := range tracks {
		popup := fmt.Sprintf("<b>%s</b><br>Aantal storingen: %d", html.EscapeString(t.Name), t.Disruptions)
		switch {
		case len(t.Coords) >= 2:
			coords := make([][2]float64, len(t.Coords))
			copy(coords, t.Coords)
			layer.Routes = append(layer.Routes, Route{
				Name:        t.Name,
				Disruptions: t.Disruptions,
				Coords:      coords,
				Color:       ColorFor(t.Disruptions, busiest),
				Weight:      3,
				Opacity:     0.8,
				Popup:       popup,
			})
		case len(t.Coords) == 1:
			layer.Stations = append(layer.Stations, Station{
				Name:        t.Name,
				Disruptions: t.Disruptions,
				Coord:       t.Coords[0],
				Color:       stationColor,
				Radius:      stationRadius,
				Popup:       popup,
			})
		}
	}
	return layer
}

// DemoTracks is a small stand-in network shown when train-map.json is
// unavailable.
func DemoTracks() []types.Track {
	return []types.Track{
		{Name: "Amsterdam Centraal - Utrecht Centraal", Disruptions: 42, Coords: [][2]float64{{52.3791, 4.9003}, {52.0894, 5.1101}}},
		{Name: "Utrecht Centraal - Den Bosch", Disruptions: 27, Coords: [][2]float64{{52.0894, 5.1101}, {51.6905, 5.2934}}},
		{Name: "Rotterdam Centraal - Den Haag Centraal", Disruptions: 15, Coords: [][2]float64{{51.9244, 4.4690}, {52.0809, 4.3249}}},
		{Name: "Utrecht Centraal - Arnhem Centraal", Disruptions: 8, Coords: [][2]float64{{52.0894, 5.1101}, {51.9850, 5.8987}}},
		{Name: "Zwolle - Groningen", Disruptions: 0, Coords: [][2]float64{{52.5046, 6.0919}, {53.2105, 6.5641}}},
		{Name: "Amsterdam Centraal", Disruptions: 12, Coords: [][2]float64{{52.3791, 4.9003}}},
		{Name: "Utrecht Centraal", Disruptions: 19, Coords: [][2]float64{{52.0894, 5.1101}}},
	}
}
