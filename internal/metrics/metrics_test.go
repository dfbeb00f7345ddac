package metrics_test

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/MakanaMakesStuff/TripleParlay/internal/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordUpstream(t *testing.T) {
	m := metrics.New()

	m.RecordUpstream("boxscore", 200, 30*time.Millisecond)
	m.RecordUpstream("boxscore", 200, 10*time.Millisecond)
	m.RecordUpstream("boxscore", 0, time.Second)

	if got := testutil.ToFloat64(m.UpstreamRequests.WithLabelValues("boxscore", "200")); got != 2 {
		t.Errorf("expected 2 successful requests, got %f", got)
	}
	if got := testutil.ToFloat64(m.UpstreamRequests.WithLabelValues("boxscore", "error")); got != 1 {
		t.Errorf("expected 1 failed request, got %f", got)
	}
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *metrics.Metrics

	m.RecordUpstream("teams", 200, time.Millisecond)
	m.ObserveStage("normalize", time.Now())
	m.RecordScored("roster", 3)
	m.RecordPublishError()
}

func TestHandler_Exposition(t *testing.T) {
	m := metrics.New()
	m.RecordScored("breakdown", 18)

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest("GET", "/metrics", nil))

	body, _ := io.ReadAll(w.Body)
	if !strings.Contains(string(body), `tripleparlay_players_scored_total{view="breakdown"} 18`) {
		t.Errorf("expected scored counter in exposition, got:\n%s", body)
	}
}
