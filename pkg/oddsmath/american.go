package oddsmath

import (
	"fmt"
	"math"
	"strconv"

	"github.com/shopspring/decimal"
)

// MaxAmericanOdds caps the magnitude of fair odds. A zero probability maps
// to +MaxAmericanOdds instead of infinity.
const MaxAmericanOdds = 100000

// FairAmericanOdds converts a probability to fair American odds
// 0.50 → -100
// 0.25 → +300
// 0.75 → -300
func FairAmericanOdds(probability float64) int {
	if probability <= 0 {
		return MaxAmericanOdds
	}
	if probability >= 1 {
		return -MaxAmericanOdds
	}

	var odds float64
	if probability >= 0.5 {
		// Favorite: -(p / (1-p)) * 100
		odds = -math.Round(probability / (1 - probability) * 100)
	} else {
		// Underdog: ((1-p) / p) * 100
		odds = math.Round((1 - probability) / probability * 100)
	}

	if odds > MaxAmericanOdds {
		return MaxAmericanOdds
	}
	if odds < -MaxAmericanOdds {
		return -MaxAmericanOdds
	}
	return int(odds)
}

// AmericanToDecimal converts American odds to decimal odds
// American +150 → Decimal 2.50
// American -150 → Decimal 1.67
func AmericanToDecimal(american int) (decimal.Decimal, error) {
	if american == 0 {
		return decimal.Zero, fmt.Errorf("invalid American odds: cannot be 0")
	}

	hundred := decimal.NewFromInt(100)
	if american > 0 {
		return decimal.NewFromInt(int64(american)).Div(hundred).Add(decimal.NewFromInt(1)), nil
	}

	return hundred.Div(decimal.NewFromInt(int64(-american))).Add(decimal.NewFromInt(1)), nil
}

// AmericanToImpliedProbability converts American odds to implied probability
// -110 → 0.5238
// +150 → 0.40
func AmericanToImpliedProbability(american int) (float64, error) {
	dec, err := AmericanToDecimal(american)
	if err != nil {
		return 0, err
	}

	p, _ := decimal.NewFromInt(1).Div(dec).Float64()
	return p, nil
}

// FormatAmerican renders odds with an explicit sign for positive values
func FormatAmerican(american int) string {
	if american > 0 {
		return "+" + strconv.Itoa(american)
	}
	return strconv.Itoa(american)
}

// FormatPercent renders a probability as a percentage with one decimal
// 0.3125 → "31.3%"
func FormatPercent(probability float64) string {
	return decimal.NewFromFloat(probability).Mul(decimal.NewFromInt(100)).StringFixed(1) + "%"
}

// FormatDecimal renders American odds as decimal odds
// +150 → "2.50"
func FormatDecimal(american int) string {
	dec, err := AmericanToDecimal(american)
	if err != nil {
		return "-"
	}
	return dec.StringFixed(2)
}

// FormatImplied renders the implied probability of American odds
// -300 → "75.0%"
func FormatImplied(american int) string {
	p, err := AmericanToImpliedProbability(american)
	if err != nil {
		return "-"
	}
	return FormatPercent(p)
}
