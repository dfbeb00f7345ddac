package scoring

import "time"

// Trajectory labels the direction of a player's recent form
type Trajectory string

const (
	TrajectoryUp      Trajectory = "up"
	TrajectoryDown    Trajectory = "down"
	TrajectoryStable  Trajectory = "stable"  // first-last rule, no movement
	TrajectoryNeutral Trajectory = "neutral" // window-mean rule, no strict ordering
)

// GameRecord is one game of a player's hitting log, oldest first in any slice
type GameRecord struct {
	GamePk           int       `json:"game_pk,omitempty"`
	Date             time.Time `json:"date"`
	Hits             int       `json:"hits"`
	Bases            int       `json:"bases"`
	PlateAppearances int       `json:"plate_appearances"`
	Strikeouts       int       `json:"strikeouts"`
}

// HitterStats is the input of the odds scorer
type HitterStats struct {
	PlateAppearancesPerGame float64  `json:"plate_appearances_per_game"`
	OBP                     float64  `json:"obp"`
	ISO                     float64  `json:"iso"`
	RecentFormMultiplier    float64  `json:"recent_form_multiplier"`
	OpponentStrikeoutRate   float64  `json:"opponent_strikeout_rate"`
	ParkFactor              *float64 `json:"park_factor,omitempty"` // nil means neutral park
}

// PlayerStats holds cumulative counting stats over a game subset
type PlayerStats struct {
	ID              int     `json:"id"`
	Name            string  `json:"name"`
	Hits            int     `json:"hits"`
	Strikeouts      int     `json:"strikeouts"`
	Bases           int     `json:"bases"`
	NormalizedScore float64 `json:"normalized_score"`
}

// Prop is a scored hitter prop
type Prop struct {
	RawProbability float64 `json:"raw_probability"`
	Score          int     `json:"score"`
	AmericanOdds   int     `json:"american_odds"`
}

// ScoredResult is the per-player probability view
type ScoredResult struct {
	ID                 int          `json:"id"`
	Name               string       `json:"name"`
	RawHitProbability  float64      `json:"raw_hit_probability"`
	RawBaseProbability float64      `json:"raw_base_probability"`
	HitScore           int          `json:"hit_score"`
	BaseScore          int          `json:"base_score"`
	HitOdds            int          `json:"hit_odds"`
	BaseOdds           int          `json:"base_odds"`
	Trajectory         Trajectory   `json:"trajectory"`
	HitDue             bool         `json:"hit_due"`
	BaseDue            bool         `json:"base_due"`
	RecentGames        []GameRecord `json:"recent_games"`
}

// PlayerTrend is one row of the matchup breakdown
type PlayerTrend struct {
	PlayerStats

	Last3Hits          []int      `json:"last3_hits"`
	Last7Hits          []int      `json:"last7_hits"`
	LastLongHits       []int      `json:"last_long_hits"`
	Last3Strikeouts    []int      `json:"last3_strikeouts"`
	Last7Strikeouts    []int      `json:"last7_strikeouts"`
	LastLongStrikeouts []int      `json:"last_long_strikeouts"`
	Dates              []string   `json:"dates"`
	Trajectory         Trajectory `json:"trajectory"`
	DueHit             bool       `json:"due_hit"`
	PlacementScore     float64    `json:"placement_score"`
}
