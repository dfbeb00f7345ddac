package scoring_test

import (
	"math"
	"testing"

	"github.com/MakanaMakesStuff/TripleParlay/internal/scoring"
	"github.com/MakanaMakesStuff/TripleParlay/internal/testutil"
)

func TestScorePlayer(t *testing.T) {
	// 10 games, 4 PA each; the last three are hitless
	log := testutil.GameLog(1, 2, 1, 1, 2, 1, 2, 0, 0, 0)

	got := scoring.ScorePlayer(660271, "Shohei Ohtani", log, scoring.DefaultProbabilityParams, scoring.FirstLastPolicy{})

	if got.ID != 660271 || got.Name != "Shohei Ohtani" {
		t.Errorf("unexpected identity: %d %s", got.ID, got.Name)
	}
	if got.RawHitProbability != 0 {
		t.Errorf("expected zero recent OBP, got %f", got.RawHitProbability)
	}
	if !got.HitDue {
		t.Error("expected hitless stretch to be due for a hit")
	}
	if got.BaseDue {
		t.Error("expected no base due when season ISO is zero")
	}
	if got.Trajectory != scoring.TrajectoryDown {
		t.Errorf("expected trajectory down, got %s", got.Trajectory)
	}
	if len(got.RecentGames) != 7 {
		t.Errorf("expected 7 recent games, got %d", len(got.RecentGames))
	}
	if got.HitScore != got.BaseScore || got.HitOdds != got.BaseOdds {
		t.Error("expected hit and base props to share one score")
	}
}

func TestScorePlayer_MatchesHitterStats(t *testing.T) {
	log := []scoring.GameRecord{
		testutil.GameRecordFixture(func(r *scoring.GameRecord) { r.Hits = 1; r.Bases = 4; r.PlateAppearances = 5 }),
		testutil.GameRecordFixture(func(r *scoring.GameRecord) { r.Hits = 2; r.Bases = 3; r.PlateAppearances = 4 }),
		testutil.GameRecordFixture(func(r *scoring.GameRecord) { r.Hits = 0; r.Bases = 0; r.PlateAppearances = 3 }),
		testutil.GameRecordFixture(func(r *scoring.GameRecord) { r.Hits = 1; r.Bases = 1; r.PlateAppearances = 4 }),
	}
	params := scoring.DefaultProbabilityParams

	got := scoring.ScorePlayer(1, "Test", log, params, scoring.FirstLastPolicy{})

	// season: 4 hits, 8 bases, 16 PA over 4 games; recent: last three games
	seasonOBP := 4.0 / 16.0
	seasonISO := 4.0 / 16.0
	recentOBP := 3.0 / 11.0
	park := params.ParkFactor
	want := scoring.ScoreHitterProp(scoring.HitterStats{
		PlateAppearancesPerGame: 4,
		OBP:                     seasonOBP,
		ISO:                     seasonISO,
		RecentFormMultiplier:    recentOBP / seasonOBP,
		OpponentStrikeoutRate:   params.OpponentStrikeoutRate,
		ParkFactor:              &park,
	})

	if got.HitScore != want.Score || got.HitOdds != want.AmericanOdds {
		t.Errorf("got score %d odds %d, want score %d odds %d", got.HitScore, got.HitOdds, want.Score, want.AmericanOdds)
	}
	if math.Abs(got.RawHitProbability-recentOBP) > 1e-9 {
		t.Errorf("raw hit probability = %f, want %f", got.RawHitProbability, recentOBP)
	}
	if math.Abs(got.RawBaseProbability-1.0/11.0) > 1e-9 {
		t.Errorf("raw base probability = %f, want %f", got.RawBaseProbability, 1.0/11.0)
	}
	if got.HitDue {
		t.Error("expected recent OBP above season not to be due")
	}
	if !got.BaseDue {
		t.Error("expected recent ISO below season to be due for a base")
	}
}

func TestScorePlayer_OnlyLastFiftyGames(t *testing.T) {
	hits := make([]int, 60)
	for i := 0; i < 10; i++ {
		hits[i] = 4
	}
	log := testutil.GameLog(hits...)

	got := scoring.ScorePlayer(1, "Test", log, scoring.DefaultProbabilityParams, scoring.FirstLastPolicy{})

	if got.HitScore != scoring.ScorePlayer(1, "Test", log[10:], scoring.DefaultProbabilityParams, scoring.FirstLastPolicy{}).HitScore {
		t.Error("expected games beyond the analyzed window to be ignored")
	}
}

func TestBuildPlayerTrend(t *testing.T) {
	ps := testutil.PlayerStatsFixture(func(p *scoring.PlayerStats) { p.NormalizedScore = 0.6 })
	log := testutil.GameLog(0, 0, 0, 1, 1, 1, 1, 2, 2, 2)

	row := scoring.BuildPlayerTrend(ps, log, scoring.DefaultWindows, scoring.WindowMeanPolicy{})

	if row.Trajectory != scoring.TrajectoryUp {
		t.Errorf("expected up, got %s", row.Trajectory)
	}
	if row.DueHit {
		t.Error("expected no hit due after a multi-hit game")
	}
	if math.Abs(row.PlacementScore-0.66) > 1e-9 {
		t.Errorf("placement score = %f, want 0.66", row.PlacementScore)
	}
	if len(row.Last3Hits) != 3 || len(row.Last7Hits) != 7 || len(row.LastLongHits) != 10 {
		t.Errorf("unexpected window lengths %d/%d/%d", len(row.Last3Hits), len(row.Last7Hits), len(row.LastLongHits))
	}
	if len(row.Dates) != 10 || row.Dates[0] != "2025-03-27" {
		t.Errorf("unexpected dates %v", row.Dates)
	}
}

func TestBuildPlayerTrend_MissingLogZeroFills(t *testing.T) {
	ps := testutil.PlayerStatsFixture(func(p *scoring.PlayerStats) { p.NormalizedScore = 0.4 })

	row := scoring.BuildPlayerTrend(ps, nil, scoring.DefaultWindows, scoring.WindowMeanPolicy{})

	if len(row.LastLongHits) != 10 {
		t.Fatalf("expected 10 zero-filled games, got %d", len(row.LastLongHits))
	}
	if row.Trajectory != scoring.TrajectoryNeutral {
		t.Errorf("expected neutral, got %s", row.Trajectory)
	}
	if !row.DueHit {
		t.Error("expected zero-filled window to be due")
	}
	if math.Abs(row.PlacementScore-0.42) > 1e-9 {
		t.Errorf("placement score = %f, want 0.42", row.PlacementScore)
	}
}

func TestRankByPlacement(t *testing.T) {
	rows := []scoring.PlayerTrend{
		{PlayerStats: scoring.PlayerStats{ID: 1}, PlacementScore: 0.3},
		{PlayerStats: scoring.PlayerStats{ID: 2}, PlacementScore: 0.9},
		{PlayerStats: scoring.PlayerStats{ID: 3}, PlacementScore: 0.3},
		{PlayerStats: scoring.PlayerStats{ID: 4}, PlacementScore: 0.5},
	}

	got := scoring.RankByPlacement(rows)

	for i, want := range []int{2, 4, 1, 3} {
		if got[i].ID != want {
			t.Errorf("rank %d: got id %d, want %d", i, got[i].ID, want)
		}
	}
	if rows[0].ID != 1 {
		t.Error("expected input order untouched")
	}
}
