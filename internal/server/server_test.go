package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"disruption-stats-go/internal/dashboard"
	"disruption-stats-go/internal/dataset"
	"disruption-stats-go/internal/export"
	"disruption-stats-go/internal/logger"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	dir := t.TempDir()
	body := `[
	  {"start_time": "2024-01-15T10:00:00Z", "cause_group": "weather"},
	  {"start_time": "2024-01-20T10:00:00Z"},
	  {"start_time": "2024-02-01T10:00:00Z", "cause_group": "staff"},
	  {"start_time": "2024-03-03T10:00:00Z", "cause_group": "vandalism"}
	]`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "disruptions-2024.json"), []byte(body), 0o644))

	src := dataset.NewCachedSource(dataset.NewFileSource(dir), 8, time.Minute)
	svc := dashboard.NewService(src, time.UTC, logger.Discard())
	return New(":0", svc, logger.Discard())
}

func get(t *testing.T, s *Server, path string, header map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	s.Handler.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v))
}

func TestHealthz(t *testing.T) {
	rec := get(t, newTestServer(t), "/healthz", map[string]string{logger.RequestIDHeader: "rid-1"})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
	assert.Equal(t, "rid-1", rec.Header().Get(logger.RequestIDHeader))
}

func TestYears(t *testing.T) {
	rec := get(t, newTestServer(t), "/api/years", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Years []string `json:"years"`
		Modes []struct {
			Value string `json:"value"`
			Title string `json:"title"`
		} `json:"modes"`
	}
	decode(t, rec, &body)
	assert.Equal(t, dataset.Years, body.Years)
	require.Len(t, body.Modes, 4)
	assert.Equal(t, "monthly", body.Modes[0].Value)
	assert.Equal(t, "Treinstoringen per maand", body.Modes[0].Title)
}

func TestChartMonthly(t *testing.T) {
	rec := get(t, newTestServer(t), "/api/years/2024/charts/monthly", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var v dashboard.View
	decode(t, rec, &v)
	require.NotNil(t, v.Chart)
	assert.Equal(t, []string{"Januari", "Februari", "Maart"}, v.Chart.Labels)
	assert.Equal(t, []int{2, 1, 1}, v.Chart.Datasets[0].Data)
	assert.False(t, v.NoData)
}

func TestChartCausesDark(t *testing.T) {
	rec := get(t, newTestServer(t), "/api/years/2024/charts/causes?dark=1", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var v dashboard.View
	decode(t, rec, &v)
	assert.Equal(t, []string{"Weer", "Onbekend", "Personeel", "vandalism"}, v.Chart.Labels)
	assert.True(t, v.Chart.Theme.Dark)
}

func TestChartCompactWidth(t *testing.T) {
	s := newTestServer(t)
	rec := get(t, s, "/api/years/2024/charts/causesPerMonth?compact=2", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var v dashboard.View
	decode(t, rec, &v)
	assert.Len(t, v.Chart.Datasets, 2)
	assert.Len(t, v.Chart.Labels, 12)

	rec = get(t, s, "/api/years/2024/charts/causesPerMonth?width=1600", nil)
	decode(t, rec, &v)
	assert.Len(t, v.Chart.Datasets, 4)

	rec = get(t, s, "/api/years/2024/charts/causesPerMonth?compact=-1", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestChartErrors(t *testing.T) {
	s := newTestServer(t)

	rec := get(t, s, "/api/years/2024/charts/scatter", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = get(t, s, "/api/years/1999/charts/monthly", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = get(t, s, "/api/years/2016/charts/monthly", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var v dashboard.View
	decode(t, rec, &v)
	assert.True(t, v.NoData)
	assert.Empty(t, v.Chart.Labels)
}

func TestMapPlaceholder(t *testing.T) {
	rec := get(t, newTestServer(t), "/api/map", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var v dashboard.View
	decode(t, rec, &v)
	require.NotNil(t, v.Map)
	assert.True(t, v.Map.Placeholder)
	assert.Equal(t, "2024", v.Map.Year)
}

func TestViewerKeepsTheme(t *testing.T) {
	s := newTestServer(t)
	h := map[string]string{ViewerHeader: "tab-1"}

	get(t, s, "/api/years/2024/charts/monthly?dark=true", h)
	rec := get(t, s, "/api/years/2024/charts/causes", h)
	var v dashboard.View
	decode(t, rec, &v)
	assert.True(t, v.Chart.Theme.Dark)

	rec = get(t, s, "/api/years/2024/charts/causes", nil)
	decode(t, rec, &v)
	assert.False(t, v.Chart.Theme.Dark)
}

func TestDarkMustBeBoolean(t *testing.T) {
	s := newTestServer(t)
	h := map[string]string{ViewerHeader: "tab-2"}

	for _, path := range []string{
		"/api/years/2024/charts/monthly?dark=yes",
		"/api/map?dark=on",
	} {
		rec := get(t, s, path, h)
		assert.Equal(t, http.StatusBadRequest, rec.Code, path)
		assert.Contains(t, rec.Body.String(), "dark")
	}

	get(t, s, "/api/years/2024/charts/monthly?dark=true", h)
	rec := get(t, s, "/api/years/2024/charts/monthly?dark=off", h)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = get(t, s, "/api/years/2024/charts/causes", h)
	var v dashboard.View
	decode(t, rec, &v)
	assert.True(t, v.Chart.Theme.Dark)
}

func TestSummary(t *testing.T) {
	s := newTestServer(t)
	rec := get(t, s, "/api/years/2024/summary", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var sum dataset.Summary
	decode(t, rec, &sum)
	assert.Equal(t, 4, sum.TotalRecords)
	assert.Equal(t, "Januari", sum.BusiestMonth)

	assert.Equal(t, http.StatusNotFound, get(t, s, "/api/years/2019/summary", nil).Code)
	assert.Equal(t, http.StatusNotFound, get(t, s, "/api/years/abc/summary", nil).Code)
}

func TestExport(t *testing.T) {
	s := newTestServer(t)
	rec := get(t, s, "/api/years/2024/export.xlsx", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "treinstoringen-2024.xlsx")

	f, err := excelize.OpenReader(rec.Body)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(export.SheetCauses)
	require.NoError(t, err)
	assert.Len(t, rows, 5)

	assert.Equal(t, http.StatusNotFound, get(t, s, "/api/years/2013/export.xlsx", nil).Code)
}
