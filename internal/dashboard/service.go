package dashboard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"disruption-stats-go/internal/aggregator"
	"disruption-stats-go/internal/chart"
	"disruption-stats-go/internal/dataset"
	"disruption-stats-go/internal/logger"
	"disruption-stats-go/internal/series"
	"disruption-stats-go/internal/trackmap"
	"disruption-stats-go/internal/types"
)

// Selection is what the viewer picked in the year and chart selectors.
// Compact caps the cause rows of the line chart; zero shows all.
type Selection struct {
	Year    string     `json:"year"`
	Mode    chart.Mode `json:"mode"`
	Compact int        `json:"compact,omitempty"`
}

// View is one rendered selection. Exactly one of Chart and Map is set.
type View struct {
	Token     string            `json:"token"`
	Selection Selection         `json:"selection"`
	Chart     *chart.Descriptor `json:"chart,omitempty"`
	Map       *trackmap.Layer   `json:"map,omitempty"`
	// NoData marks the placeholder shown after a failed fetch.
	NoData  bool   `json:"no_data"`
	Message string `json:"message,omitempty"`
}

func (v View) Dark() bool {
	switch {
	case v.Chart != nil:
		return v.Chart.Theme.Dark
	case v.Map != nil:
		return v.Map.View.TileURL == trackmap.ViewFor(true).TileURL
	}
	return false
}

const placeholderBanner = "Let op: de kaartgegevens konden niet worden geladen, er worden voorbeeldgegevens getoond."

type Service struct {
	src dataset.Source
	loc *time.Location
	log *logger.Logger
}

func NewService(src dataset.Source, loc *time.Location, log *logger.Logger) *Service {
	if loc == nil {
		loc = time.Local
	}
	return &Service{src: src, loc: loc, log: log.Component("dashboard")}
}

// Render fetches and aggregates sel and commits the result to rc. A fetch
// failure is not an error: the view becomes the empty placeholder. If a newer
// Render on rc started meanwhile, the view is returned with ErrSuperseded and
// rc keeps the newer one.
func (s *Service) Render(ctx context.Context, rc *RenderContext, sel Selection) (View, error) {
	if !dataset.IsSupported(sel.Year) {
		return View{}, fmt.Errorf("%w: %q", dataset.ErrUnsupportedYear, sel.Year)
	}
	token, dark := rc.begin()
	log := s.log.WithField("token", token).WithField("year", sel.Year).WithField("mode", sel.Mode.String())

	var v View
	if sel.Mode == chart.Map {
		v = s.renderMap(ctx, sel, dark)
	} else {
		v = s.renderChart(ctx, sel, dark)
	}
	v.Token = token
	v.Selection = sel

	if err := rc.commit(token, v); err != nil {
		log.Info("discarding stale render")
		return v, err
	}
	log.WithField("no_data", v.NoData).Debug("render committed")
	return v, nil
}

func (s *Service) renderChart(ctx context.Context, sel Selection, dark bool) View {
	theme := chart.ThemeFor(dark)
	recs, err := s.src.Records(ctx, sel.Year)
	if err != nil {
		s.log.WithError(err).WithField("year", sel.Year).Warn("no data for year")
		d := chart.Empty(sel.Mode, sel.Year, theme)
		return View{Chart: &d, NoData: true, Message: d.Description}
	}
	d, err := BuildChart(sel, recs, s.loc, theme)
	if err != nil {
		d = chart.Empty(sel.Mode, sel.Year, theme)
		return View{Chart: &d, NoData: true, Message: err.Error()}
	}
	return View{Chart: &d}
}

func (s *Service) renderMap(ctx context.Context, sel Selection, dark bool) View {
	tracks, err := s.src.Tracks(ctx)
	placeholder := false
	if err != nil {
		s.log.WithError(err).Warn("map data unavailable, using demo tracks")
		tracks = trackmap.DemoTracks()
		placeholder = true
	}
	layer := trackmap.Build(sel.Year, tracks, dark)
	layer.Placeholder = placeholder
	v := View{Map: &layer}
	if placeholder {
		v.Message = placeholderBanner
	}
	return v
}

// BuildChart runs the aggregation pipeline for one chart mode.
func BuildChart(sel Selection, recs []types.DisruptionRecord, loc *time.Location, theme chart.Theme) (chart.Descriptor, error) {
	switch sel.Mode {
	case chart.Monthly:
		return chart.MonthlyBar(sel.Year, series.Single(aggregator.ByMonth(recs, loc)), theme), nil
	case chart.Causes:
		return chart.CausesPie(sel.Year, series.Single(aggregator.ByCause(recs)), theme), nil
	case chart.CausesPerMonth:
		return chart.CausesPerMonthLine(sel.Year, series.Multi(aggregator.ByMonthCause(recs, loc), sel.Compact), theme), nil
	}
	return chart.Descriptor{}, fmt.Errorf("mode %s has no chart", sel.Mode)
}

// Summary aggregates the headline numbers of one year.
func (s *Service) Summary(ctx context.Context, year string) (dataset.Summary, error) {
	recs, err := s.src.Records(ctx, year)
	if err != nil {
		return dataset.Summary{}, err
	}
	return dataset.SummarizeRecords(year, recs, s.loc), nil
}

// YearSeries bundles every series of one year, for export.
type YearSeries struct {
	Year     string
	Monthly  types.Series
	Causes   types.Series
	PerMonth types.MultiSeries
}

func (s *Service) YearSeries(ctx context.Context, year string) (YearSeries, error) {
	recs, err := s.src.Records(ctx, year)
	if err != nil {
		return YearSeries{}, err
	}
	return YearSeries{
		Year:     year,
		Monthly:  series.Single(aggregator.ByMonth(recs, s.loc)),
		Causes:   series.Single(aggregator.ByCause(recs)),
		PerMonth: series.Multi(aggregator.ByMonthCause(recs, s.loc), 0),
	}, nil
}

// IsNoData reports whether err means the data file could not be obtained.
func IsNoData(err error) bool {
	return errors.Is(err, dataset.ErrFetch)
}
