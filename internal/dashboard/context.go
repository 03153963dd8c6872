package dashboard

import (
	"errors"
	"sync"

	"github.com/google/uuid"

	"disruption-stats-go/internal/chart"
	"disruption-stats-go/internal/trackmap"
)

// ErrSuperseded is returned when a newer selection was requested on the same
// RenderContext before this one finished.
var ErrSuperseded = errors.New("selection superseded by a newer request")

// RenderContext is the state of one dashboard viewer: what is on screen,
// the theme, and which request is the latest. It is safe for concurrent use.
type RenderContext struct {
	mu      sync.Mutex
	dark    bool
	latest  string
	current View
	hasView bool
}

func NewRenderContext(dark bool) *RenderContext {
	return &RenderContext{dark: dark}
}

func (rc *RenderContext) Dark() bool {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return rc.dark
}

// Current returns the last committed view.
func (rc *RenderContext) Current() (View, bool) {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return rc.current, rc.hasView
}

// ToggleDarkMode flips the theme and restyles the view on screen. It returns
// the new setting.
func (rc *RenderContext) ToggleDarkMode() bool {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	rc.dark = !rc.dark
	if rc.hasView {
		rc.current = restyle(rc.current, rc.dark)
	}
	return rc.dark
}

// SetDark sets the theme, restyling the view on screen if it changes.
func (rc *RenderContext) SetDark(dark bool) {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	if rc.dark == dark {
		return
	}
	rc.dark = dark
	if rc.hasView {
		rc.current = restyle(rc.current, dark)
	}
}

// begin registers a new request as the latest and returns its token.
func (rc *RenderContext) begin() (string, bool) {
	token := uuid.New().String()
	rc.mu.Lock()
	defer rc.mu.Unlock()
	rc.latest = token
	return token, rc.dark
}

// commit stores v unless a newer request has begun since token was issued.
func (rc *RenderContext) commit(token string, v View) error {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	if token != rc.latest {
		return ErrSuperseded
	}
	if v.Dark() != rc.dark {
		v = restyle(v, rc.dark)
	}
	rc.current = v
	rc.hasView = true
	return nil
}

func restyle(v View, dark bool) View {
	if v.Chart != nil {
		c := *v.Chart
		c.Theme = chart.ThemeFor(dark)
		v.Chart = &c
	}
	if v.Map != nil {
		m := *v.Map
		m.View = trackmap.ViewFor(dark)
		v.Map = &m
	}
	return v
}
