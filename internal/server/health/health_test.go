package health

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

type fakeCollector struct{ sessions int64 }

func (f fakeCollector) ActiveSessions() int64 { return f.sessions }

func TestHealthzReportsActiveSessions(t *testing.T) {
	srv := New(fakeCollector{sessions: 3}, nil)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var snap Snapshot
	if err := json.Unmarshal(rec.Body.Bytes(), &snap); err != nil {
		t.Fatalf("decode snapshot: %v", err)
	}
	if snap.Status != "ok" {
		t.Fatalf("unexpected status: %s", snap.Status)
	}
	if snap.ActiveSessions != 3 {
		t.Fatalf("expected active_sessions=3, got %d", snap.ActiveSessions)
	}
}

func TestHealthzWithNilCollectorReportsZeroSessions(t *testing.T) {
	srv := New(nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	var snap Snapshot
	if err := json.Unmarshal(rec.Body.Bytes(), &snap); err != nil {
		t.Fatalf("decode snapshot: %v", err)
	}
	if snap.ActiveSessions != 0 {
		t.Fatalf("expected active_sessions=0, got %d", snap.ActiveSessions)
	}
}

func TestMetricsEndpointServesPrometheusFormat(t *testing.T) {
	srv := New(fakeCollector{sessions: 1}, nil)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "processord_active_sessions") {
		t.Fatalf("expected processord_active_sessions in metrics output, got: %s", rec.Body.String())
	}
}
