package scoring_test

import (
	"math"
	"testing"

	"github.com/MakanaMakesStuff/TripleParlay/internal/scoring"
)

func TestClamp01(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{-0.5, 0},
		{0, 0},
		{0.42, 0.42},
		{1, 1},
		{3.2, 1},
	}

	for _, tt := range tests {
		if got := scoring.Clamp01(tt.in); got != tt.want {
			t.Errorf("Clamp01(%f) = %f, want %f", tt.in, got, tt.want)
		}
	}
}

func TestClamp01_Idempotent(t *testing.T) {
	for _, x := range []float64{-1e9, -0.5, 0, 0.3, 0.79999, 1, 1.0000001, 42, math.Inf(1), math.Inf(-1)} {
		once := scoring.Clamp01(x)
		if twice := scoring.Clamp01(once); twice != once {
			t.Errorf("Clamp01(Clamp01(%f)) = %f, want %f", x, twice, once)
		}
	}
}

func TestScore_Thresholds(t *testing.T) {
	tests := []struct {
		name string
		raw  float64
		want int
	}{
		{"Top bucket boundary", 0.8, 5},
		{"Just under top", 0.79999, 4},
		{"Fourth bucket boundary", 0.6, 4},
		{"Middle bucket boundary", 0.4, 3},
		{"Second bucket boundary", 0.2, 2},
		{"Just under second", 0.1999, 1},
		{"Zero", 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := scoring.Score(tt.raw); got != tt.want {
				t.Errorf("Score(%f) = %d, want %d", tt.raw, got, tt.want)
			}
		})
	}
}

func TestScoreHitterProp(t *testing.T) {
	park := 1.5

	tests := []struct {
		name      string
		stats     scoring.HitterStats
		wantRaw   float64
		wantScore int
		wantOdds  int
	}{
		{
			name: "Everyday regular",
			stats: scoring.HitterStats{
				PlateAppearancesPerGame: 4.2,
				OBP:                     0.35,
				ISO:                     0.2,
				RecentFormMultiplier:    1.0,
				OpponentStrikeoutRate:   0.22,
			},
			wantRaw:   0.5771429,
			wantScore: 3,
			wantOdds:  -136,
		},
		{
			name: "Every sub-score maxed",
			stats: scoring.HitterStats{
				PlateAppearancesPerGame: 6,
				OBP:                     0.5,
				ISO:                     0.4,
				RecentFormMultiplier:    1.2,
			},
			wantRaw:   1,
			wantScore: 5,
			wantOdds:  -100000,
		},
		{
			name: "Nothing going",
			stats: scoring.HitterStats{
				RecentFormMultiplier:  0.8,
				OpponentStrikeoutRate: 0.35,
			},
			wantRaw:   0,
			wantScore: 1,
			wantOdds:  100000,
		},
		{
			name: "Hitter park pushes past one",
			stats: scoring.HitterStats{
				PlateAppearancesPerGame: 6,
				OBP:                     0.5,
				ISO:                     0.4,
				RecentFormMultiplier:    1.2,
				ParkFactor:              &park,
			},
			wantRaw:   1,
			wantScore: 5,
			wantOdds:  -100000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := scoring.ScoreHitterProp(tt.stats)

			if math.Abs(got.RawProbability-tt.wantRaw) > 1e-6 {
				t.Errorf("raw probability = %f, want %f", got.RawProbability, tt.wantRaw)
			}
			if got.Score != tt.wantScore {
				t.Errorf("score = %d, want %d", got.Score, tt.wantScore)
			}
			if got.AmericanOdds != tt.wantOdds {
				t.Errorf("odds = %d, want %d", got.AmericanOdds, tt.wantOdds)
			}
		})
	}
}

func TestRawProbability_NilParkIsNeutral(t *testing.T) {
	neutral := 1.0
	base := scoring.HitterStats{PlateAppearancesPerGame: 4, OBP: 0.3, ISO: 0.15, RecentFormMultiplier: 1.1, OpponentStrikeoutRate: 0.2}
	withPark := base
	withPark.ParkFactor = &neutral

	if scoring.RawProbability(base) != scoring.RawProbability(withPark) {
		t.Error("expected nil park factor to equal 1.0")
	}
}

func TestRawProbability_Monotonic(t *testing.T) {
	base := scoring.HitterStats{PlateAppearancesPerGame: 3, OBP: 0.25, ISO: 0.1, RecentFormMultiplier: 0.9, OpponentStrikeoutRate: 0.3}

	bumps := map[string]func(s *scoring.HitterStats){
		"plate appearances": func(s *scoring.HitterStats) { s.PlateAppearancesPerGame += 1 },
		"obp":               func(s *scoring.HitterStats) { s.OBP += 0.05 },
		"iso":               func(s *scoring.HitterStats) { s.ISO += 0.05 },
		"recent form":       func(s *scoring.HitterStats) { s.RecentFormMultiplier += 0.1 },
	}

	for name, bump := range bumps {
		t.Run(name, func(t *testing.T) {
			improved := base
			bump(&improved)
			if scoring.RawProbability(improved) < scoring.RawProbability(base) {
				t.Errorf("raising %s lowered the probability", name)
			}
		})
	}

	tougher := base
	tougher.OpponentStrikeoutRate += 0.02
	if scoring.RawProbability(tougher) > scoring.RawProbability(base) {
		t.Error("raising opponent strikeout rate raised the probability")
	}
}

func TestPlacementScore(t *testing.T) {
	tests := []struct {
		name       string
		trajectory scoring.Trajectory
		due        bool
		want       float64
	}{
		{"Up and due", scoring.TrajectoryUp, true, 0.5 * 1.1 * 1.05},
		{"Down", scoring.TrajectoryDown, false, 0.45},
		{"Neutral", scoring.TrajectoryNeutral, false, 0.5},
		{"Stable and due", scoring.TrajectoryStable, true, 0.525},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := scoring.PlacementScore(0.5, tt.trajectory, tt.due)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("PlacementScore = %f, want %f", got, tt.want)
			}
		})
	}
}
