package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/MakanaMakesStuff/TripleParlay/internal/dashboard"
	"github.com/MakanaMakesStuff/TripleParlay/internal/handlers"
	"github.com/MakanaMakesStuff/TripleParlay/internal/metrics"
	"github.com/MakanaMakesStuff/TripleParlay/internal/publisher"
	"github.com/MakanaMakesStuff/TripleParlay/internal/registry"
	"github.com/MakanaMakesStuff/TripleParlay/internal/scoring"
	"github.com/MakanaMakesStuff/TripleParlay/internal/testutil"
	"github.com/MakanaMakesStuff/TripleParlay/pkg/models"
	"github.com/go-chi/chi/v5"
	logtest "github.com/sirupsen/logrus/hooks/test"
)

func newRouter(t *testing.T, provider *testutil.MockProvider) http.Handler {
	t.Helper()

	logger, _ := logtest.NewNullLogger()
	svc := dashboard.NewService(provider, publisher.NoopPublisher{}, registry.New(), metrics.New(), logger, dashboard.Options{
		Season:      2025,
		Concurrency: 2,
		Params:      scoring.DefaultProbabilityParams,
	})
	svc.SetClock(func() time.Time { return time.Date(2025, time.April, 30, 0, 0, 0, 0, time.UTC) })

	r := chi.NewRouter()
	handlers.NewHandler(svc, logger, handlers.DefaultTimeout).Routes(r)
	return r
}

func fixtureProvider() *testutil.MockProvider {
	dodgers := models.TeamRef{ID: 119, Name: "Los Angeles Dodgers"}
	giants := models.TeamRef{ID: 137, Name: "San Francisco Giants"}
	game := testutil.Matchup(745001, dodgers, giants, true)
	game.OfficialDate = "2025-04-01"

	return &testutil.MockProvider{
		TeamList: []models.Team{
			{ID: 119, Name: "Los Angeles Dodgers"},
			{ID: 137, Name: "San Francisco Giants"},
		},
		Rosters: map[int][]models.RosterEntry{
			119: {{PlayerID: 660271, FullName: "Shohei Ohtani"}},
		},
		People:    map[int]models.Person{660271: {ID: 660271, FullName: "Shohei Ohtani"}},
		GameLogs:  map[int][]models.GameLogEntry{660271: testutil.GameLogEntries(1, 2, 1, 0)},
		Schedules: map[int][]models.ScheduledGame{119: {game}},
		BoxScores: map[int]models.BoxScore{
			745001: {
				GamePk: 745001,
				Home:   models.BoxScoreTeam{Team: dodgers, Batters: []models.BatterLine{testutil.Batter(660271, "Shohei Ohtani", 2, 1, 5)}},
				Away:   models.BoxScoreTeam{Team: giants, Batters: []models.BatterLine{testutil.Batter(543760, "Matt Chapman", 1, 1, 1)}},
			},
		},
	}
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("GET", target, nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestHealthCheck_Success(t *testing.T) {
	w := get(t, newRouter(t, fixtureProvider()), "/health")

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}

	var response map[string]interface{}
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if response["status"] != "healthy" {
		t.Errorf("expected status 'healthy', got %v", response["status"])
	}
}

func TestGetTeams_Success(t *testing.T) {
	w := get(t, newRouter(t, fixtureProvider()), "/api/v1/teams?q=giants")

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var response struct {
		Teams []models.Team `json:"teams"`
		Count int           `json:"count"`
	}
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if response.Count != 1 || response.Teams[0].ID != 137 {
		t.Errorf("expected only the Giants, got %+v", response)
	}
}

func TestGetPlayerProbability(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		wantStatus int
	}{
		{"Success", "/api/v1/players/660271/probability", http.StatusOK},
		{"Invalid id", "/api/v1/players/abc/probability", http.StatusBadRequest},
		{"Unknown player", "/api/v1/players/1/probability", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := get(t, newRouter(t, fixtureProvider()), tt.target)

			if w.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, w.Code)
			}

			if tt.wantStatus != http.StatusOK {
				var errResp models.ErrorResponse
				if err := json.NewDecoder(w.Body).Decode(&errResp); err != nil {
					t.Fatalf("failed to decode error: %v", err)
				}
				if errResp.Code != tt.wantStatus || errResp.Error != http.StatusText(tt.wantStatus) {
					t.Errorf("unexpected error body %+v", errResp)
				}
				return
			}

			var result scoring.ScoredResult
			if err := json.NewDecoder(w.Body).Decode(&result); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if result.ID != 660271 || result.Name != "Shohei Ohtani" {
				t.Errorf("unexpected result %+v", result)
			}
		})
	}
}

func TestGetPlayerProbability_UpstreamFailure(t *testing.T) {
	provider := fixtureProvider()
	provider.ShouldError = true

	w := get(t, newRouter(t, provider), "/api/v1/players/660271/probability")

	if w.Code != http.StatusGatewayTimeout {
		t.Errorf("expected status 504, got %d", w.Code)
	}
}

func TestGetPlayer(t *testing.T) {
	w := get(t, newRouter(t, fixtureProvider()), "/api/v1/players/660271")

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var detail dashboard.PlayerDetail
	if err := json.NewDecoder(w.Body).Decode(&detail); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if detail.Result.ID != 660271 || len(detail.Games) != 4 {
		t.Errorf("unexpected detail %+v", detail)
	}
	if detail.Games[0].Hits != 0 || detail.Games[0].AtBats != 4 {
		t.Errorf("expected most recent game first, got %+v", detail.Games[0])
	}
}

// blockingDashboard waits for the request context on every teams lookup
type blockingDashboard struct {
	handlers.Dashboard
}

func (blockingDashboard) Teams(ctx context.Context, _ string) ([]models.Team, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func TestHandler_ConfiguredTimeout(t *testing.T) {
	logger, _ := logtest.NewNullLogger()
	r := chi.NewRouter()
	handlers.NewHandler(blockingDashboard{}, logger, 20*time.Millisecond).Routes(r)

	start := time.Now()
	w := get(t, r, "/api/v1/teams")

	if w.Code != http.StatusGatewayTimeout {
		t.Errorf("expected status 504, got %d", w.Code)
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Errorf("expected the configured timeout to cut the request short, took %s", elapsed)
	}
}

func TestGetPlayerGameLog(t *testing.T) {
	w := get(t, newRouter(t, fixtureProvider()), "/api/v1/players/660271/gamelog?n=2")

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var log dashboard.PlayerGameLog
	if err := json.NewDecoder(w.Body).Decode(&log); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(log.Hits) != 2 || log.Hits[0] != 1 || log.Hits[1] != 0 {
		t.Errorf("expected last two games, got %v", log.Hits)
	}
}

func TestGetRosterBoard(t *testing.T) {
	w := get(t, newRouter(t, fixtureProvider()), "/api/v1/teams/119/players?sort=base&order=asc")

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var board dashboard.RosterBoard
	if err := json.NewDecoder(w.Body).Decode(&board); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if board.Query.Sort != dashboard.SortBase || board.Query.Order != dashboard.OrderAsc {
		t.Errorf("expected query echoed back, got %+v", board.Query)
	}
	if len(board.Players) != 1 {
		t.Errorf("expected one scored player, got %d", len(board.Players))
	}
}

func TestGetTeamGames_WithAnalysis(t *testing.T) {
	w := get(t, newRouter(t, fixtureProvider()), "/api/v1/teams/119/games?opponent=San+Francisco+Giants&analyze=true")

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var view dashboard.TeamGames
	if err := json.NewDecoder(w.Body).Decode(&view); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(view.Games) != 1 || len(view.BreakdownGamePks) != 1 || view.OpponentID != 137 {
		t.Errorf("unexpected view %+v", view)
	}
	if len(view.Analysis) != 1 || view.Analysis[0].Score != 1 {
		t.Errorf("unexpected analysis %+v", view.Analysis)
	}
}

func TestGetPerformance(t *testing.T) {
	w := get(t, newRouter(t, fixtureProvider()), "/api/v1/teams/119/performance")

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "San Francisco Giants") {
		t.Errorf("expected Giants in performance row, got %s", w.Body.String())
	}
}

func TestGetBreakdown(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		wantStatus int
	}{
		{"JSON game list", "/api/v1/breakdown?teamA=119&teamB=137&gamePks=%5B745001%5D", http.StatusOK},
		{"Comma game list", "/api/v1/breakdown?teamA=119&teamB=137&gamePks=745001&window=30", http.StatusOK},
		{"Missing team", "/api/v1/breakdown?teamA=119", http.StatusBadRequest},
		{"Bad game list", "/api/v1/breakdown?teamA=119&teamB=137&gamePks=%5Bx%5D", http.StatusBadRequest},
		{"Same team", "/api/v1/breakdown?teamA=119&teamB=119", http.StatusBadRequest},
		{"Unknown game", "/api/v1/breakdown?teamA=119&teamB=137&gamePks=1", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := get(t, newRouter(t, fixtureProvider()), tt.target)
			if w.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d: %s", tt.wantStatus, w.Code, w.Body.String())
			}
		})
	}
}

func TestGetBreakdown_Body(t *testing.T) {
	w := get(t, newRouter(t, fixtureProvider()), "/api/v1/breakdown?teamA=119&teamB=137&gamePks=745001&window=30")

	var breakdown dashboard.Breakdown
	if err := json.NewDecoder(w.Body).Decode(&breakdown); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if breakdown.Windows != scoring.ExtendedWindows {
		t.Errorf("expected extended windows, got %+v", breakdown.Windows)
	}
	if len(breakdown.TeamA.Players) != 1 || breakdown.TeamA.Players[0].ID != 660271 {
		t.Errorf("unexpected team A rows %+v", breakdown.TeamA.Players)
	}
}

func TestPages(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		wantStatus int
		wantBody   string
	}{
		{"Teams", "/?q=dodgers", http.StatusOK, "Los Angeles Dodgers"},
		{"Team games", "/teams/119/games?analyze=true", http.StatusOK, "Matchup analysis"},
		{"Roster", "/team/119?sort=hit", http.StatusOK, "Shohei Ohtani"},
		{"Player", "/team/119/660271", http.StatusOK, "Total bases"},
		{"Breakdown", "/breakdown?teamA=119&teamB=137&gamePks=%5B745001%5D&graph=660271", http.StatusOK, "Hide graph"},
		{"Bad team", "/team/abc", http.StatusBadRequest, "Invalid team"},
		{"Unknown player", "/team/119/1", http.StatusNotFound, "Could not score player"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := get(t, newRouter(t, fixtureProvider()), tt.target)

			if w.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, w.Code)
			}
			if !strings.Contains(w.Body.String(), tt.wantBody) {
				t.Errorf("expected %q in page", tt.wantBody)
			}
			if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
				t.Errorf("expected HTML content type, got %s", ct)
			}
		})
	}
}

func TestPlayerPage_NoGameLogs(t *testing.T) {
	provider := fixtureProvider()
	provider.GameLogs = map[int][]models.GameLogEntry{}

	w := get(t, newRouter(t, provider), "/team/119/660271")

	if w.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", w.Code)
	}
}
