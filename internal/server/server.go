package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/bluele/gcache"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"disruption-stats-go/internal/chart"
	"disruption-stats-go/internal/dashboard"
	"disruption-stats-go/internal/dataset"
	"disruption-stats-go/internal/export"
	"disruption-stats-go/internal/logger"
	"disruption-stats-go/internal/series"
)

// ViewerHeader identifies a dashboard tab. Requests carrying the same id
// share a render context, so an older selection that finishes late is
// rejected instead of overwriting a newer one.
const ViewerHeader = "X-Viewer-ID"

const (
	viewerCacheSize = 1024
	viewerTTL       = 30 * time.Minute
)

type Server struct {
	*http.Server
	svc     *dashboard.Service
	viewers gcache.Cache
	log     *logger.Logger
}

func New(addr string, svc *dashboard.Service, log *logger.Logger) *Server {
	s := &Server{
		svc: svc,
		log: log.Component("server"),
		viewers: gcache.New(viewerCacheSize).LRU().Expiration(viewerTTL).
			LoaderFunc(func(any) (any, error) {
				return dashboard.NewRenderContext(false), nil
			}).Build(),
	}

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "ok")
	})
	r.Route("/api", func(r chi.Router) {
		r.Get("/years", s.handleYears)
		r.Get("/map", s.handleMap)
		r.Route("/years/{year}", func(r chi.Router) {
			r.Get("/charts/{mode}", s.handleChart)
			r.Get("/summary", s.handleSummary)
			r.Get("/export.xlsx", s.handleExport)
		})
	})

	s.Server = &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	return s
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := logger.RequestID(r)
		r.Header.Set(logger.RequestIDHeader, reqID)
		w.Header().Set(logger.RequestIDHeader, reqID)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)

		s.log.WithRequest(r).
			WithField("status", ww.Status()).
			WithField("bytes", ww.BytesWritten()).
			WithField("duration_ms", time.Since(start).Milliseconds()).
			Info("request served")
	})
}

type modeOption struct {
	Value chart.Mode `json:"value"`
	Title string     `json:"title"`
}

func (s *Server) handleYears(w http.ResponseWriter, r *http.Request) {
	modes := make([]modeOption, 0, len(chart.Modes()))
	for _, m := range chart.Modes() {
		modes = append(modes, modeOption{Value: m, Title: m.MenuTitle()})
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"years": dataset.Years,
		"modes": modes,
	})
}

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	mode, err := chart.ParseMode(chi.URLParam(r, "mode"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	compact, err := compactFrom(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	s.render(w, r, dashboard.Selection{Year: chi.URLParam(r, "year"), Mode: mode, Compact: compact})
}

func (s *Server) handleMap(w http.ResponseWriter, r *http.Request) {
	year := r.URL.Query().Get("year")
	if year == "" {
		year = dataset.Years[0]
	}
	s.render(w, r, dashboard.Selection{Year: year, Mode: chart.Map})
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, sel dashboard.Selection) {
	rc, err := s.renderContext(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	v, err := s.svc.Render(r.Context(), rc, sel)
	switch {
	case errors.Is(err, dataset.ErrUnsupportedYear):
		writeError(w, http.StatusNotFound, err)
	case errors.Is(err, dashboard.ErrSuperseded):
		writeError(w, http.StatusConflict, err)
	case err != nil:
		s.log.WithError(err).Error("render failed")
		writeError(w, http.StatusInternalServerError, err)
	default:
		writeJSON(w, http.StatusOK, v)
	}
}

// renderContext returns the viewer's shared context, or a fresh one for
// anonymous requests. A dark query value that is not a boolean is rejected
// before the context is touched.
func (s *Server) renderContext(r *http.Request) (*dashboard.RenderContext, error) {
	var dark *bool
	if d := r.URL.Query().Get("dark"); d != "" {
		v, err := strconv.ParseBool(d)
		if err != nil {
			return nil, fmt.Errorf("dark must be a boolean, got %q", d)
		}
		dark = &v
	}

	var rc *dashboard.RenderContext
	if id := r.Header.Get(ViewerHeader); id != "" {
		if v, err := s.viewers.Get(id); err == nil {
			rc = v.(*dashboard.RenderContext)
		}
	}
	if rc == nil {
		rc = dashboard.NewRenderContext(false)
	}
	if dark != nil {
		rc.SetDark(*dark)
	}
	return rc, nil
}

func compactFrom(r *http.Request) (int, error) {
	q := r.URL.Query()
	if c := q.Get("compact"); c != "" {
		n, err := strconv.Atoi(c)
		if err != nil || n < 0 {
			return 0, fmt.Errorf("compact must be a non-negative integer, got %q", c)
		}
		return n, nil
	}
	if wpx := q.Get("width"); wpx != "" {
		n, err := strconv.Atoi(wpx)
		if err != nil {
			return 0, fmt.Errorf("width must be an integer, got %q", wpx)
		}
		return series.CompactForWidth(n), nil
	}
	return 0, nil
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	sum, err := s.svc.Summary(r.Context(), chi.URLParam(r, "year"))
	if err != nil {
		s.writeDataError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sum)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	year := chi.URLParam(r, "year")
	ys, err := s.svc.YearSeries(r.Context(), year)
	if err != nil {
		s.writeDataError(w, err)
		return
	}
	var buf bytes.Buffer
	if err := export.WriteWorkbook(&buf, year, ys.Monthly, ys.Causes, ys.PerMonth); err != nil {
		s.log.WithError(err).Error("export failed")
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="treinstoringen-%s.xlsx"`, year))
	_, _ = buf.WriteTo(w)
}

func (s *Server) writeDataError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, dataset.ErrUnsupportedYear), errors.Is(err, dataset.ErrNotFound):
		writeError(w, http.StatusNotFound, err)
	case dashboard.IsNoData(err):
		s.log.WithError(err).Warn("data fetch failed")
		writeError(w, http.StatusBadGateway, err)
	default:
		writeError(w, http.StatusInternalServerError, err)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
