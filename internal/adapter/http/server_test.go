package http_test

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	httpadapter "github.com/couchcryptid/storm-impact-report/internal/adapter/http"
	"github.com/couchcryptid/storm-impact-report/internal/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockSource struct {
	readyErr error
	latest   *report.ImpactReport
}

func (m *mockSource) CheckReadiness(_ context.Context) error { return m.readyErr }
func (m *mockSource) Latest() *report.ImpactReport           { return m.latest }

func newTestServer(source *mockSource) *httpadapter.Server {
	return httpadapter.NewServer(":0", source, slog.Default())
}

func TestHealthzReturns200(t *testing.T) {
	srv := newTestServer(&mockSource{})
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)

	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
}

func TestReadyzReturns200WhenReady(t *testing.T) {
	srv := newTestServer(&mockSource{})
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/readyz", nil)

	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ready", body["status"])
}

func TestReadyzReturns503WhenNotReady(t *testing.T) {
	srv := newTestServer(&mockSource{readyErr: fmt.Errorf("no report has been produced yet")})
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/readyz", nil)

	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "not ready", body["status"])
	assert.Equal(t, "no report has been produced yet", body["error"])
}

func TestReportReturnsLatest(t *testing.T) {
	rep := report.New("storm.csv", time.Date(1996, 1, 1, 0, 0, 0, 0, time.UTC), 10)
	rep.TopHealthImpact = []report.RankedGroup{{Rank: 1, EventType: "TORNADO", Total: 1318}}

	srv := newTestServer(&mockSource{latest: rep})
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/report", nil)

	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body report.ImpactReport
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, rep.RunID, body.RunID)
	require.Len(t, body.TopHealthImpact, 1)
	assert.Equal(t, "TORNADO", body.TopHealthImpact[0].EventType)
}

func TestReportReturns503BeforeFirstRun(t *testing.T) {
	srv := newTestServer(&mockSource{})
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/report", nil)

	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(&mockSource{})
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)

	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}
