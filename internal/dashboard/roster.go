package dashboard

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/MakanaMakesStuff/TripleParlay/internal/names"
	"github.com/MakanaMakesStuff/TripleParlay/internal/scoring"
	"github.com/MakanaMakesStuff/TripleParlay/pkg/contracts"
	"github.com/MakanaMakesStuff/TripleParlay/pkg/models"
	"github.com/sirupsen/logrus"
)

// SortOption picks the probability a roster board is ordered by
type SortOption string

const (
	SortHit  SortOption = "hit"
	SortBase SortOption = "base"
)

// SortOrder is ascending or descending
type SortOrder string

const (
	OrderAsc  SortOrder = "asc"
	OrderDesc SortOrder = "desc"
)

// ParseSortOption defaults to hit probability
func ParseSortOption(s string) SortOption {
	if SortOption(s) == SortBase {
		return SortBase
	}
	return SortHit
}

// ParseSortOrder defaults to descending
func ParseSortOrder(s string) SortOrder {
	if SortOrder(s) == OrderAsc {
		return OrderAsc
	}
	return OrderDesc
}

// RosterQuery is the roster board's view state
type RosterQuery struct {
	Sort  SortOption `json:"sort"`
	Order SortOrder  `json:"order"`
	Query string     `json:"query,omitempty"`
}

// RosterBoard is every scoreable player of a club
type RosterBoard struct {
	Team    models.Team            `json:"team"`
	Query   RosterQuery            `json:"query"`
	Players []scoring.ScoredResult `json:"players"`
	Skipped int                    `json:"skipped"`
}

// RosterBoard scores a club's active roster
func (s *Service) RosterBoard(ctx context.Context, teamID int, q RosterQuery) (RosterBoard, error) {
	if teamID <= 0 {
		return RosterBoard{}, fmt.Errorf("%w: team id %d", ErrInvalidInput, teamID)
	}
	defer s.metrics.ObserveStage("roster", time.Now())

	team, err := s.provider.Team(ctx, teamID)
	if err != nil {
		return RosterBoard{}, fmt.Errorf("loading team %d: %w", teamID, err)
	}

	roster, err := s.provider.Roster(ctx, teamID)
	if err != nil {
		return RosterBoard{}, fmt.Errorf("loading roster for team %d: %w", teamID, err)
	}

	entries := make([]models.RosterEntry, 0, len(roster))
	for _, e := range roster {
		if names.Matches(e.FullName, q.Query) {
			entries = append(entries, e)
		}
	}

	results, errs := fanOut(ctx, entries, s.concurrency, func(ctx context.Context, e models.RosterEntry) (scoring.ScoredResult, error) {
		return s.scorePlayer(ctx, e.PlayerID, e.FullName)
	})
	if ctx.Err() != nil {
		return RosterBoard{}, ctx.Err()
	}

	board := RosterBoard{Team: team, Query: q, Players: make([]scoring.ScoredResult, 0, len(results))}
	for i, r := range results {
		if errs[i] != nil {
			board.Skipped++
			entry := s.logger.WithFields(logrus.Fields{"team_id": teamID, "player_id": entries[i].PlayerID})
			if errors.Is(errs[i], ErrNoGameLogs) {
				entry.Debug("[dashboard] skipping player without game logs")
			} else {
				entry.WithError(errs[i]).Warn("[dashboard] skipping player")
			}
			continue
		}
		board.Players = append(board.Players, r)
	}

	SortResults(board.Players, q.Sort, q.Order)
	s.metrics.RecordScored("roster", len(board.Players))
	s.publish(ctx, contracts.KindRoster, teamID, board)

	return board, nil
}

// SortResults orders results in place by the chosen probability. Ties
// fall back to name.
func SortResults(results []scoring.ScoredResult, by SortOption, order SortOrder) {
	key := func(r scoring.ScoredResult) float64 {
		if by == SortBase {
			return r.RawBaseProbability
		}
		return r.RawHitProbability
	}

	sort.SliceStable(results, func(i, j int) bool {
		a, b := key(results[i]), key(results[j])
		if a == b {
			return results[i].Name < results[j].Name
		}
		if order == OrderAsc {
			return a < b
		}
		return a > b
	})
}
