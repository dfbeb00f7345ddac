package dashboard_test

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/MakanaMakesStuff/TripleParlay/internal/dashboard"
	"github.com/MakanaMakesStuff/TripleParlay/internal/matchup"
	"github.com/MakanaMakesStuff/TripleParlay/internal/metrics"
	"github.com/MakanaMakesStuff/TripleParlay/internal/providers/statsapi"
	"github.com/MakanaMakesStuff/TripleParlay/internal/registry"
	"github.com/MakanaMakesStuff/TripleParlay/internal/scoring"
	"github.com/MakanaMakesStuff/TripleParlay/internal/testutil"
	"github.com/MakanaMakesStuff/TripleParlay/pkg/contracts"
	"github.com/MakanaMakesStuff/TripleParlay/pkg/models"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
)

var (
	dodgers = models.TeamRef{ID: 119, Name: "Los Angeles Dodgers"}
	giants  = models.TeamRef{ID: 137, Name: "San Francisco Giants"}
	padres  = models.TeamRef{ID: 135, Name: "San Diego Padres"}
)

// MockPublisher records every published result
type MockPublisher struct {
	mu          sync.Mutex
	kinds       []contracts.ResultKind
	teamIDs     []int
	shouldError bool
}

func (m *MockPublisher) Publish(ctx context.Context, kind contracts.ResultKind, teamID int, payload interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.shouldError {
		return errors.New("redis unavailable")
	}
	m.kinds = append(m.kinds, kind)
	m.teamIDs = append(m.teamIDs, teamID)
	return nil
}

func newService(t *testing.T, provider contracts.StatsProvider, pub contracts.ResultPublisher) (*dashboard.Service, *logtest.Hook) {
	t.Helper()

	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	svc := dashboard.NewService(provider, pub, registry.New(), metrics.New(), logger, dashboard.Options{
		Season:      2025,
		GameType:    "R",
		Concurrency: 4,
		Params:      scoring.DefaultProbabilityParams,
	})
	svc.SetClock(func() time.Time { return time.Date(2025, time.April, 30, 12, 0, 0, 0, time.UTC) })
	return svc, hook
}

func teamList() []models.Team {
	return []models.Team{
		{ID: 137, Name: "San Francisco Giants", Abbreviation: "SF"},
		{ID: 119, Name: "Los Angeles Dodgers", Abbreviation: "LAD"},
		{ID: 135, Name: "San Diego Padres", Abbreviation: "SD"},
	}
}

func TestPlayerProbability_Success(t *testing.T) {
	provider := &testutil.MockProvider{
		People:   map[int]models.Person{660271: {ID: 660271, FullName: "Shohei Ohtani"}},
		GameLogs: map[int][]models.GameLogEntry{660271: testutil.GameLogEntries(1, 2, 0, 1, 1)},
	}
	svc, _ := newService(t, provider, &MockPublisher{})

	got, err := svc.PlayerProbability(context.Background(), 660271)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.Name != "Shohei Ohtani" {
		t.Errorf("expected name from person record, got %s", got.Name)
	}
	// last three games: 2 hits in 12 PA
	if math.Abs(got.RawHitProbability-2.0/12.0) > 1e-9 {
		t.Errorf("expected recent OBP %f, got %f", 2.0/12.0, got.RawHitProbability)
	}
	// season OBP is 5/20, above the recent rate
	if !got.HitDue {
		t.Error("expected player below season baseline to be due")
	}
	if got.Trajectory != scoring.TrajectoryStable {
		t.Errorf("expected stable trajectory for equal first and last games, got %s", got.Trajectory)
	}
	if len(got.RecentGames) != 5 {
		t.Errorf("expected all 5 games in the recent window, got %d", len(got.RecentGames))
	}
}

func TestPlayerDetail_GameLines(t *testing.T) {
	entries := testutil.GameLogEntries(0, 1, 1, 2, 0, 1, 3, 2)
	entries[7].Opponent = giants
	entries[7].IsHome = true
	entries[7].Doubles = 1
	entries[7].TotalBases = 0

	provider := &testutil.MockProvider{
		People:   map[int]models.Person{660271: {ID: 660271, FullName: "Shohei Ohtani"}},
		GameLogs: map[int][]models.GameLogEntry{660271: entries},
	}
	svc, _ := newService(t, provider, &MockPublisher{})

	got, err := svc.PlayerDetail(context.Background(), 660271)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(got.Games) != scoring.DefaultWindows.Medium {
		t.Fatalf("expected %d game lines, got %d", scoring.DefaultWindows.Medium, len(got.Games))
	}
	latest := got.Games[0]
	if latest.Opponent != "San Francisco Giants" || !latest.Home || latest.Hits != 2 || latest.AtBats != 4 {
		t.Errorf("expected most recent game first, got %+v", latest)
	}
	// bases derived from a single and a double
	if latest.Bases != 3 {
		t.Errorf("expected 3 bases, got %d", latest.Bases)
	}
	if got.Result.Name != "Shohei Ohtani" || len(got.Result.RecentGames) != scoring.DefaultWindows.Medium {
		t.Errorf("unexpected result %+v", got.Result)
	}
	if n := provider.Calls("GameLog"); n != 1 {
		t.Errorf("expected one game log fetch, got %d", n)
	}
}

func TestPlayerProbability_Errors(t *testing.T) {
	provider := &testutil.MockProvider{
		People:   map[int]models.Person{1: {ID: 1, FullName: "No Games"}},
		GameLogs: map[int][]models.GameLogEntry{},
	}
	svc, _ := newService(t, provider, &MockPublisher{})

	tests := []struct {
		name     string
		playerID int
		want     error
	}{
		{"Invalid id", 0, dashboard.ErrInvalidInput},
		{"Unknown player", 2, statsapi.ErrNotFound},
		{"Empty game log", 1, dashboard.ErrNoGameLogs},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.PlayerProbability(context.Background(), tt.playerID)
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestGameLog_LastN(t *testing.T) {
	provider := &testutil.MockProvider{
		GameLogs: map[int][]models.GameLogEntry{7: testutil.GameLogEntries(0, 1, 2, 3, 4)},
	}
	svc, _ := newService(t, provider, &MockPublisher{})

	got, err := svc.GameLog(context.Background(), 7, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(got.Games) != 3 {
		t.Fatalf("expected 3 games, got %d", len(got.Games))
	}
	want := []int{2, 3, 4}
	for i := range want {
		if got.Hits[i] != want[i] {
			t.Errorf("hits[%d]: expected %d, got %d", i, want[i], got.Hits[i])
		}
		if got.Strikeouts[i] != 1 {
			t.Errorf("strikeouts[%d]: expected 1, got %d", i, got.Strikeouts[i])
		}
	}
}

func rosterProvider() *testutil.MockProvider {
	return &testutil.MockProvider{
		TeamList: teamList(),
		Rosters: map[int][]models.RosterEntry{
			119: {
				{PlayerID: 1, FullName: "Mookie Betts", Position: "SS"},
				{PlayerID: 2, FullName: "Freddie Freeman", Position: "1B"},
				{PlayerID: 3, FullName: "Teoscar Hernández", Position: "RF"},
				{PlayerID: 4, FullName: "Tyler Glasnow", Position: "P"},
				{PlayerID: 5, FullName: "Max Muncy", Position: "3B"},
			},
		},
		GameLogs: map[int][]models.GameLogEntry{
			1: testutil.GameLogEntries(1, 1, 1, 1),
			2: testutil.GameLogEntries(2, 2, 2, 2),
			3: testutil.GameLogEntries(0, 0, 0, 1),
			5: testutil.GameLogEntries(1, 1, 1, 1),
		},
		GameLogErrors: map[int]error{5: errors.New("upstream timeout")},
	}
}

func TestRosterBoard_SortsAndSkips(t *testing.T) {
	provider := rosterProvider()
	pub := &MockPublisher{}
	svc, hook := newService(t, provider, pub)

	board, err := svc.RosterBoard(context.Background(), 119, dashboard.RosterQuery{Sort: dashboard.SortHit, Order: dashboard.OrderDesc})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if board.Team.Name != "Los Angeles Dodgers" {
		t.Errorf("unexpected team %s", board.Team.Name)
	}
	// the pitcher has no game log and Muncy's fetch fails
	if board.Skipped != 2 {
		t.Errorf("expected 2 skipped players, got %d", board.Skipped)
	}

	wantOrder := []int{2, 1, 3}
	if len(board.Players) != len(wantOrder) {
		t.Fatalf("expected %d players, got %d", len(wantOrder), len(board.Players))
	}
	for i, id := range wantOrder {
		if board.Players[i].ID != id {
			t.Errorf("position %d: expected player %d, got %d", i, id, board.Players[i].ID)
		}
	}

	if len(pub.kinds) != 1 || pub.kinds[0] != contracts.KindRoster || pub.teamIDs[0] != 119 {
		t.Errorf("expected one roster publication for team 119, got %v %v", pub.kinds, pub.teamIDs)
	}

	warned := false
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.WarnLevel && e.Data["player_id"] == 5 {
			warned = true
		}
	}
	if !warned {
		t.Error("expected a warning for the failed game log")
	}
}

func TestRosterBoard_AscendingAndQuery(t *testing.T) {
	svc, _ := newService(t, rosterProvider(), &MockPublisher{})

	board, err := svc.RosterBoard(context.Background(), 119, dashboard.RosterQuery{Sort: dashboard.SortHit, Order: dashboard.OrderAsc})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if board.Players[0].ID != 3 {
		t.Errorf("expected lowest probability first, got player %d", board.Players[0].ID)
	}

	board, err = svc.RosterBoard(context.Background(), 119, dashboard.RosterQuery{Query: "hernandez"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(board.Players) != 1 || board.Players[0].ID != 3 {
		t.Errorf("expected accent-insensitive match on Hernández, got %+v", board.Players)
	}
}

func TestRosterBoard_PublishFailureIsNotFatal(t *testing.T) {
	svc, hook := newService(t, rosterProvider(), &MockPublisher{shouldError: true})

	if _, err := svc.RosterBoard(context.Background(), 119, dashboard.RosterQuery{}); err != nil {
		t.Fatalf("expected publish failure to be swallowed, got %v", err)
	}
	if hook.LastEntry() == nil || hook.LastEntry().Level != logrus.WarnLevel {
		t.Error("expected publish failure to be logged")
	}
}

func TestRosterBoard_UnknownTeam(t *testing.T) {
	svc, _ := newService(t, rosterProvider(), &MockPublisher{})

	_, err := svc.RosterBoard(context.Background(), 999, dashboard.RosterQuery{})
	if !errors.Is(err, statsapi.ErrNotFound) {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestSortResults_NameTiebreak(t *testing.T) {
	results := []scoring.ScoredResult{
		{ID: 1, Name: "Will Smith", RawBaseProbability: 0.2},
		{ID: 2, Name: "Andy Pages", RawBaseProbability: 0.2},
		{ID: 3, Name: "Kiké Hernández", RawBaseProbability: 0.3},
	}

	dashboard.SortResults(results, dashboard.SortBase, dashboard.OrderDesc)

	want := []int{3, 2, 1}
	for i, id := range want {
		if results[i].ID != id {
			t.Errorf("position %d: expected %d, got %d", i, id, results[i].ID)
		}
	}
}

func breakdownProvider() *testutil.MockProvider {
	box := models.BoxScore{
		GamePk: 745001,
		Home: models.BoxScoreTeam{
			Team: dodgers,
			Batters: []models.BatterLine{
				testutil.Batter(1, "Mookie Betts", 2, 0, 4),
				testutil.Batter(2, "Freddie Freeman", 0, 2, 0),
				{PlayerID: 9, FullName: "Tyler Glasnow", Position: "P"},
			},
		},
		Away: models.BoxScoreTeam{
			Team:    giants,
			Batters: []models.BatterLine{testutil.Batter(3, "Matt Chapman", 1, 1, 1)},
		},
	}

	return &testutil.MockProvider{
		TeamList:  teamList(),
		BoxScores: map[int]models.BoxScore{745001: box},
		GameLogs: map[int][]models.GameLogEntry{
			2: testutil.GameLogEntries(0, 1, 2),
		},
		GameLogErrors: map[int]error{1: errors.New("upstream timeout")},
	}
}

func TestBreakdown_ExplicitGames(t *testing.T) {
	provider := breakdownProvider()
	pub := &MockPublisher{}
	svc, _ := newService(t, provider, pub)

	got, err := svc.Breakdown(context.Background(), dashboard.BreakdownRequest{
		TeamA:   119,
		TeamB:   137,
		GamePks: []int{745001},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.TeamA.Name != "Los Angeles Dodgers" || got.TeamB.Name != "San Francisco Giants" {
		t.Errorf("unexpected team names %s / %s", got.TeamA.Name, got.TeamB.Name)
	}
	if got.Windows != scoring.DefaultWindows {
		t.Errorf("expected default windows, got %+v", got.Windows)
	}
	if provider.Calls("BoxScore") != 1 {
		t.Errorf("expected the shared game to be fetched once, got %d", provider.Calls("BoxScore"))
	}

	// the pitcher has no batting block and is left out
	if len(got.TeamA.Players) != 2 || len(got.TeamB.Players) != 1 {
		t.Fatalf("unexpected pool sizes %d / %d", len(got.TeamA.Players), len(got.TeamB.Players))
	}

	betts := got.TeamA.Players[0]
	if betts.ID != 1 {
		t.Fatalf("expected Betts ranked first, got %d", betts.ID)
	}
	// maxima across both clubs: 2 hits, 2 strikeouts, 4 bases
	if math.Abs(betts.NormalizedScore-1) > 1e-9 {
		t.Errorf("expected normalized score 1, got %f", betts.NormalizedScore)
	}
	// failed game log: ten zero games, due and neutral
	if len(betts.LastLongHits) != 10 || !betts.DueHit || betts.Trajectory != scoring.TrajectoryNeutral {
		t.Errorf("unexpected zero-filled row: %+v", betts)
	}
	if math.Abs(betts.PlacementScore-1.05) > 1e-9 {
		t.Errorf("expected placement 1.05, got %f", betts.PlacementScore)
	}

	chapman := got.TeamB.Players[0]
	if math.Abs(chapman.NormalizedScore-1.25/3) > 1e-9 {
		t.Errorf("expected normalized score %f, got %f", 1.25/3, chapman.NormalizedScore)
	}

	if len(pub.kinds) != 1 || pub.kinds[0] != contracts.KindBreakdown {
		t.Errorf("expected one breakdown publication, got %v", pub.kinds)
	}
}

func TestBreakdown_SeasonToDate(t *testing.T) {
	provider := breakdownProvider()
	played := testutil.Matchup(745001, dodgers, giants, true)
	played.OfficialDate = "2025-04-01"
	upcoming := testutil.Matchup(745002, dodgers, giants, true)
	upcoming.Status = models.StatusPreview
	upcoming.OfficialDate = "2025-05-02"
	provider.Schedules = map[int][]models.ScheduledGame{
		119: {played, upcoming},
		137: {played, upcoming},
	}
	svc, _ := newService(t, provider, &MockPublisher{})

	got, err := svc.Breakdown(context.Background(), dashboard.BreakdownRequest{TeamA: 119, TeamB: 137, Windows: scoring.ExtendedWindows})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// one completed game per club
	if provider.Calls("BoxScore") != 2 {
		t.Errorf("expected 2 box score fetches, got %d", provider.Calls("BoxScore"))
	}
	if len(got.TeamA.Players[0].LastLongHits) != 30 {
		t.Errorf("expected extended window of 30, got %d", len(got.TeamA.Players[0].LastLongHits))
	}
}

func TestBreakdown_Errors(t *testing.T) {
	tests := []struct {
		name string
		req  dashboard.BreakdownRequest
		want error
	}{
		{"Missing team", dashboard.BreakdownRequest{TeamA: 119}, dashboard.ErrInvalidInput},
		{"Same team", dashboard.BreakdownRequest{TeamA: 119, TeamB: 119}, dashboard.ErrInvalidInput},
		{"Missing box score", dashboard.BreakdownRequest{TeamA: 119, TeamB: 137, GamePks: []int{1}}, statsapi.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newService(t, breakdownProvider(), &MockPublisher{})
			_, err := svc.Breakdown(context.Background(), tt.req)
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestBreakdown_TeamNameFallback(t *testing.T) {
	provider := breakdownProvider()
	provider.TeamList = nil
	svc, _ := newService(t, provider, &MockPublisher{})

	got, err := svc.Breakdown(context.Background(), dashboard.BreakdownRequest{TeamA: 119, TeamB: 137, GamePks: []int{745001}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.TeamA.Name != "Team 119" || got.TeamB.Name != "Team 137" {
		t.Errorf("expected fallback names, got %s / %s", got.TeamA.Name, got.TeamB.Name)
	}
}

func scheduleProvider() *testutil.MockProvider {
	g1 := testutil.Matchup(745001, dodgers, giants, true)
	g1.OfficialDate = "2025-04-01"
	g2 := testutil.Matchup(745002, giants, dodgers, true)
	g2.OfficialDate = "2025-04-02"
	g3 := testutil.Matchup(745003, dodgers, padres, true)
	g3.OfficialDate = "2025-04-10"
	future := testutil.Matchup(745004, dodgers, padres, true)
	future.OfficialDate = "2025-06-01"
	future.Status = models.StatusPreview

	return &testutil.MockProvider{
		TeamList:  teamList(),
		Schedules: map[int][]models.ScheduledGame{119: {g1, g2, g3, future}},
	}
}

func TestTeamGames_FilterAndAnalysis(t *testing.T) {
	svc, _ := newService(t, scheduleProvider(), &MockPublisher{})

	view, err := svc.TeamGames(context.Background(), 119, matchup.Filter{Opponent: giants.Name, Result: matchup.ResultWin}, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(view.Games) != 1 || view.Games[0].GamePk != 745001 {
		t.Errorf("expected only the win over the Giants, got %+v", view.Games)
	}
	if len(view.Opponents) != 2 || view.Opponents[0] != padres.Name {
		t.Errorf("expected opponents newest first, got %v", view.Opponents)
	}
	if len(view.BreakdownGamePks) != 1 || view.OpponentID != giants.ID {
		t.Errorf("expected breakdown link for the Giants, got %v / %d", view.BreakdownGamePks, view.OpponentID)
	}
	// Dodgers won one of two against the Giants; cells range 0..1
	if len(view.Analysis) != 1 || view.Analysis[0].Score != 1 {
		t.Errorf("unexpected analysis %+v", view.Analysis)
	}
}

func TestTeamGames_Defaults(t *testing.T) {
	svc, _ := newService(t, scheduleProvider(), &MockPublisher{})

	view, err := svc.TeamGames(context.Background(), 119, matchup.Filter{}, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.Filter.Opponent != matchup.AllOpponents || view.Filter.Result != matchup.ResultAll {
		t.Errorf("expected default filter, got %+v", view.Filter)
	}
	if len(view.Games) != 3 {
		t.Errorf("expected 3 played games, got %d", len(view.Games))
	}
	if view.Analysis != nil || view.BreakdownGamePks != nil {
		t.Error("expected no analysis or breakdown link without an opponent")
	}
}

func TestTeams_SortedAndFiltered(t *testing.T) {
	svc, _ := newService(t, scheduleProvider(), &MockPublisher{})

	teams, err := svc.Teams(context.Background(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(teams) != 3 || teams[0].Name != "Los Angeles Dodgers" {
		t.Errorf("expected teams sorted by name, got %+v", teams)
	}

	teams, err = svc.Teams(context.Background(), "san ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(teams) != 2 {
		t.Errorf("expected the two San clubs, got %d", len(teams))
	}
}
