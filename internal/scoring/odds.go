package scoring

import "github.com/MakanaMakesStuff/TripleParlay/pkg/oddsmath"

// Sub-score normalizers
const (
	paPerGameScale   = 6.0
	obpScale         = 0.5
	isoScale         = 0.4
	recentFormFloor  = 0.8
	recentFormSpan   = 0.4
	oppStrikeoutSpan = 0.35
)

// Sub-score weights, summing to 1
const (
	weightPA     = 0.20
	weightOBP    = 0.25
	weightISO    = 0.30
	weightRecent = 0.15
	weightOppK   = 0.10
)

// Placement multipliers
const (
	trendUpFactor   = 1.1
	trendDownFactor = 0.9
	dueFactor       = 1.05
)

// Clamp01 bounds x to [0, 1]
func Clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

// RawProbability combines the weighted sub-scores of a hitter
func RawProbability(s HitterStats) float64 {
	park := 1.0
	if s.ParkFactor != nil {
		park = *s.ParkFactor
	}

	normPA := Clamp01(s.PlateAppearancesPerGame / paPerGameScale)
	normOBP := Clamp01(s.OBP / obpScale)
	normISO := Clamp01(s.ISO/isoScale) * park
	normRecent := Clamp01((s.RecentFormMultiplier - recentFormFloor) / recentFormSpan)
	normOppK := Clamp01(1 - s.OpponentStrikeoutRate/oppStrikeoutSpan)

	raw := normPA*weightPA +
		normOBP*weightOBP +
		normISO*weightISO +
		normRecent*weightRecent +
		normOppK*weightOppK

	return Clamp01(raw)
}

// Score maps a clamped probability to the 1-5 scale
func Score(raw float64) int {
	switch {
	case raw >= 0.8:
		return 5
	case raw >= 0.6:
		return 4
	case raw >= 0.4:
		return 3
	case raw >= 0.2:
		return 2
	default:
		return 1
	}
}

// ScoreHitterProp scores a hitter and prices the result
func ScoreHitterProp(s HitterStats) Prop {
	raw := RawProbability(s)
	return Prop{
		RawProbability: raw,
		Score:          Score(raw),
		AmericanOdds:   oddsmath.FairAmericanOdds(raw),
	}
}

// PlacementScore ranks a breakdown row
func PlacementScore(normalized float64, t Trajectory, due bool) float64 {
	trend := 1.0
	switch t {
	case TrajectoryUp:
		trend = trendUpFactor
	case TrajectoryDown:
		trend = trendDownFactor
	}
	d := 1.0
	if due {
		d = dueFactor
	}
	return normalized * trend * d
}
