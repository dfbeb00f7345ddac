package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/MakanaMakesStuff/TripleParlay/internal/registry"
	"github.com/MakanaMakesStuff/TripleParlay/internal/scoring"
	"github.com/MakanaMakesStuff/TripleParlay/pkg/models"
)

// PlayerGameLog is a player's recent games with the hit and strikeout
// series used by the charts
type PlayerGameLog struct {
	PlayerID   int                   `json:"player_id"`
	Games      []models.GameLogEntry `json:"games"`
	Hits       []int                 `json:"hits"`
	Strikeouts []int                 `json:"strikeouts"`
}

// GameLine is one row of the player page's game table
type GameLine struct {
	Date       string `json:"date"`
	Opponent   string `json:"opponent"`
	Home       bool   `json:"home"`
	AtBats     int    `json:"at_bats"`
	Hits       int    `json:"hits"`
	Doubles    int    `json:"doubles"`
	Triples    int    `json:"triples"`
	HomeRuns   int    `json:"home_runs"`
	Bases      int    `json:"bases"`
	Strikeouts int    `json:"strikeouts"`
}

// PlayerDetail is the probability view plus the medium window of game lines,
// most recent first
type PlayerDetail struct {
	Result scoring.ScoredResult `json:"result"`
	Games  []GameLine           `json:"games"`
}

// PlayerProbability builds the probability view for one player
func (s *Service) PlayerProbability(ctx context.Context, playerID int) (scoring.ScoredResult, error) {
	detail, err := s.PlayerDetail(ctx, playerID)
	if err != nil {
		return scoring.ScoredResult{}, err
	}
	return detail.Result, nil
}

// PlayerDetail scores one player and returns their recent game lines from
// the same game log
func (s *Service) PlayerDetail(ctx context.Context, playerID int) (PlayerDetail, error) {
	if playerID <= 0 {
		return PlayerDetail{}, fmt.Errorf("%w: player id %d", ErrInvalidInput, playerID)
	}

	person, err := s.provider.Person(ctx, playerID)
	if err != nil {
		return PlayerDetail{}, fmt.Errorf("loading player %d: %w", playerID, err)
	}

	name := person.FullName
	if name == "" {
		name = "Player"
	}

	entries, err := s.gameLog(ctx, playerID)
	if err != nil {
		return PlayerDetail{}, err
	}

	result := s.score(playerID, name, entries)
	s.metrics.RecordScored("player", 1)

	return PlayerDetail{
		Result: result,
		Games:  gameLines(scoring.Suffix(entries, s.params.Windows.Medium)),
	}, nil
}

// scorePlayer fetches a game log and runs it through the pipeline
func (s *Service) scorePlayer(ctx context.Context, playerID int, name string) (scoring.ScoredResult, error) {
	entries, err := s.gameLog(ctx, playerID)
	if err != nil {
		return scoring.ScoredResult{}, err
	}
	return s.score(playerID, name, entries), nil
}

// gameLog loads a non-empty game log
func (s *Service) gameLog(ctx context.Context, playerID int) ([]models.GameLogEntry, error) {
	entries, err := s.provider.GameLog(ctx, playerID, s.season, s.gameType)
	if err != nil {
		return nil, fmt.Errorf("loading game log for player %d: %w", playerID, err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("player %d: %w", playerID, ErrNoGameLogs)
	}
	return entries, nil
}

func (s *Service) score(playerID int, name string, entries []models.GameLogEntry) scoring.ScoredResult {
	defer s.metrics.ObserveStage("player_probability", time.Now())

	policy := s.policies.MustGet(registry.FirstLast)
	return scoring.ScorePlayer(playerID, name, toRecords(entries), s.params, policy)
}

func gameLines(entries []models.GameLogEntry) []GameLine {
	lines := make([]GameLine, 0, len(entries))
	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		date := ""
		if !e.Date.IsZero() {
			date = e.Date.Format("2006-01-02")
		}
		lines = append(lines, GameLine{
			Date:       date,
			Opponent:   e.Opponent.Name,
			Home:       e.IsHome,
			AtBats:     e.AtBats,
			Hits:       e.Hits,
			Doubles:    e.Doubles,
			Triples:    e.Triples,
			HomeRuns:   e.HomeRuns,
			Bases:      e.Bases(),
			Strikeouts: e.Strikeouts,
		})
	}
	return lines
}

// GameLog returns a player's last n games. n <= 0 means the long window.
func (s *Service) GameLog(ctx context.Context, playerID, n int) (PlayerGameLog, error) {
	if playerID <= 0 {
		return PlayerGameLog{}, fmt.Errorf("%w: player id %d", ErrInvalidInput, playerID)
	}
	if n <= 0 {
		n = scoring.DefaultWindows.Long
	}

	entries, err := s.provider.GameLog(ctx, playerID, s.season, s.gameType)
	if err != nil {
		return PlayerGameLog{}, fmt.Errorf("loading game log for player %d: %w", playerID, err)
	}

	last := scoring.Suffix(entries, n)
	records := toRecords(last)

	return PlayerGameLog{
		PlayerID:   playerID,
		Games:      last,
		Hits:       scoring.HitsSeries(records),
		Strikeouts: scoring.StrikeoutsSeries(records),
	}, nil
}
