package matchup

import (
	"sort"

	"github.com/MakanaMakesStuff/TripleParlay/pkg/models"
)

// Matrix maps team name to opponent name to a performance value
type Matrix map[string]map[string]float64

// Entry is one opponent's cell for a team
type Entry struct {
	Opponent string  `json:"opponent"`
	Score    float64 `json:"score"`
}

// CalculatePerformances counts wins of every team against every opponent
// it met. A meeting with no win still creates the cell at zero.
func CalculatePerformances(games []models.ScheduledGame) Matrix {
	perf := make(Matrix)

	for _, g := range games {
		home, away := g.Home.Team.Name, g.Away.Team.Name
		if perf[home] == nil {
			perf[home] = make(map[string]float64)
		}
		if perf[away] == nil {
			perf[away] = make(map[string]float64)
		}
		perf[home][away] += win(g.Home.IsWinner)
		perf[away][home] += win(g.Away.IsWinner)
	}

	return perf
}

func win(isWinner bool) float64 {
	if isWinner {
		return 1
	}
	return 0
}

// NormalizePerformances min-max scales every cell against the global
// minimum and maximum. A flat matrix scales to all zeros.
func NormalizePerformances(perf Matrix) Matrix {
	first := true
	var lo, hi float64
	for _, opps := range perf {
		for _, v := range opps {
			if first {
				lo, hi = v, v
				first = false
				continue
			}
			if v < lo {
				lo = v
			}
			if v > hi {
				hi = v
			}
		}
	}

	out := make(Matrix, len(perf))
	for team, opps := range perf {
		out[team] = make(map[string]float64, len(opps))
		for opp, v := range opps {
			if hi == lo {
				out[team][opp] = 0
				continue
			}
			out[team][opp] = (v - lo) / (hi - lo)
		}
	}

	return out
}

// TeamPerformance reads a team's row. With opponent "all" or empty every
// opponent is returned best first; otherwise only that opponent's cell,
// or nothing when the clubs never met.
func TeamPerformance(m Matrix, team, opponent string) []Entry {
	row := m[team]

	if opponent != "" && opponent != AllOpponents {
		score, ok := row[opponent]
		if !ok {
			return []Entry{}
		}
		return []Entry{{Opponent: opponent, Score: score}}
	}

	entries := make([]Entry, 0, len(row))
	for opp, score := range row {
		entries = append(entries, Entry{Opponent: opp, Score: score})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		return entries[i].Opponent < entries[j].Opponent
	})
	return entries
}
