package matchup

import (
	"sort"
	"time"

	"github.com/MakanaMakesStuff/TripleParlay/pkg/models"
)

// AllOpponents disables the opponent filter
const AllOpponents = "all"

// Result filters games by outcome for the viewing team
type Result string

const (
	ResultAll  Result = "all"
	ResultWin  Result = "win"
	ResultLoss Result = "loss"
)

// ParseResult maps a query value to a Result, defaulting to all
func ParseResult(s string) Result {
	switch Result(s) {
	case ResultWin, ResultLoss:
		return Result(s)
	default:
		return ResultAll
	}
}

// Filter is the schedule page's filter state
type Filter struct {
	Opponent string `json:"opponent"`
	Result   Result `json:"result"`
}

// Active reports whether a specific opponent is selected
func (f Filter) Active() bool {
	return f.Opponent != "" && f.Opponent != AllOpponents
}

// PlayedBy keeps teamID's games dated on or before now, newest first
func PlayedBy(games []models.ScheduledGame, teamID int, now time.Time) []models.ScheduledGame {
	cutoff := now.Format("2006-01-02")

	out := make([]models.ScheduledGame, 0, len(games))
	for _, g := range games {
		if !g.Involves(teamID) {
			continue
		}
		if officialDate(g) > cutoff {
			continue
		}
		out = append(out, g)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return officialDate(out[i]) > officialDate(out[j])
	})
	return out
}

func officialDate(g models.ScheduledGame) string {
	if g.OfficialDate != "" {
		return g.OfficialDate
	}
	return g.GameDate.Format("2006-01-02")
}

// Opponents lists teamID's opponents in order of first appearance
func Opponents(games []models.ScheduledGame, teamID int) []string {
	seen := make(map[string]bool)
	var out []string
	for _, g := range games {
		_, opp := g.Sides(teamID)
		if seen[opp.Team.Name] {
			continue
		}
		seen[opp.Team.Name] = true
		out = append(out, opp.Team.Name)
	}
	return out
}

// Apply keeps the games matching f from teamID's point of view
func Apply(games []models.ScheduledGame, teamID int, f Filter) []models.ScheduledGame {
	out := make([]models.ScheduledGame, 0, len(games))
	for _, g := range games {
		own, opp := g.Sides(teamID)
		if f.Active() && opp.Team.Name != f.Opponent {
			continue
		}
		if f.Result == ResultWin && !own.IsWinner {
			continue
		}
		if f.Result == ResultLoss && own.IsWinner {
			continue
		}
		out = append(out, g)
	}
	return out
}

// GamePks collects the game identifiers of games
func GamePks(games []models.ScheduledGame) []int {
	out := make([]int, len(games))
	for i, g := range games {
		out[i] = g.GamePk
	}
	return out
}

// TeamName finds teamID's name in its own games, "" if it played none
func TeamName(games []models.ScheduledGame, teamID int) string {
	for _, g := range games {
		if g.Involves(teamID) {
			own, _ := g.Sides(teamID)
			return own.Team.Name
		}
	}
	return ""
}
