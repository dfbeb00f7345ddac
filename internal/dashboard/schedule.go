package dashboard

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/MakanaMakesStuff/TripleParlay/internal/matchup"
	"github.com/MakanaMakesStuff/TripleParlay/internal/names"
	"github.com/MakanaMakesStuff/TripleParlay/pkg/models"
)

// TeamGames is the schedule page of one club
type TeamGames struct {
	Team      models.Team            `json:"team"`
	Filter    matchup.Filter         `json:"filter"`
	Opponents []string               `json:"opponents"`
	Games     []models.ScheduledGame `json:"games"`

	// Analysis is set when requested: normalized wins against each
	// opponent, or the selected one
	Analysis []matchup.Entry `json:"analysis,omitempty"`

	// BreakdownGamePks are the filtered games when an opponent is selected
	BreakdownGamePks []int `json:"breakdown_game_pks,omitempty"`
	OpponentID       int   `json:"opponent_id,omitempty"`
}

// Teams lists the season's clubs by name, filtered by query
func (s *Service) Teams(ctx context.Context, query string) ([]models.Team, error) {
	teams, err := s.provider.Teams(ctx, s.season)
	if err != nil {
		return nil, fmt.Errorf("loading teams: %w", err)
	}

	out := make([]models.Team, 0, len(teams))
	for _, t := range teams {
		if names.Matches(t.Name, query) {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// TeamGames loads a club's played games with the filter applied
func (s *Service) TeamGames(ctx context.Context, teamID int, filter matchup.Filter, analyze bool) (TeamGames, error) {
	if teamID <= 0 {
		return TeamGames{}, fmt.Errorf("%w: team id %d", ErrInvalidInput, teamID)
	}
	defer s.metrics.ObserveStage("schedule", time.Now())

	team, err := s.provider.Team(ctx, teamID)
	if err != nil {
		return TeamGames{}, fmt.Errorf("loading team %d: %w", teamID, err)
	}

	schedule, err := s.provider.Schedule(ctx, teamID, s.season)
	if err != nil {
		return TeamGames{}, fmt.Errorf("loading schedule for team %d: %w", teamID, err)
	}

	if filter.Opponent == "" {
		filter.Opponent = matchup.AllOpponents
	}
	if filter.Result == "" {
		filter.Result = matchup.ResultAll
	}

	played := matchup.PlayedBy(schedule, teamID, s.now())
	games := matchup.Apply(played, teamID, filter)

	view := TeamGames{
		Team:      team,
		Filter:    filter,
		Opponents: matchup.Opponents(played, teamID),
		Games:     games,
	}

	if analyze {
		name := matchup.TeamName(played, teamID)
		if name == "" {
			name = team.Name
		}
		normalized := matchup.NormalizePerformances(matchup.CalculatePerformances(played))
		view.Analysis = matchup.TeamPerformance(normalized, name, filter.Opponent)
	}

	if filter.Active() && len(games) > 0 {
		view.BreakdownGamePks = matchup.GamePks(games)
		_, opp := games[0].Sides(teamID)
		view.OpponentID = opp.Team.ID
	}

	return view, nil
}

// Performance is the normalized win matrix row of one club over its
// played games
func (s *Service) Performance(ctx context.Context, teamID int, opponent string) ([]matchup.Entry, error) {
	view, err := s.TeamGames(ctx, teamID, matchup.Filter{Opponent: opponent}, true)
	if err != nil {
		return nil, err
	}
	return view.Analysis, nil
}
