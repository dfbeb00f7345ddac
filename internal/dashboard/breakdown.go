package dashboard

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/MakanaMakesStuff/TripleParlay/internal/registry"
	"github.com/MakanaMakesStuff/TripleParlay/internal/scoring"
	"github.com/MakanaMakesStuff/TripleParlay/pkg/contracts"
	"github.com/MakanaMakesStuff/TripleParlay/pkg/models"
	"github.com/sirupsen/logrus"
)

// BreakdownRequest selects two clubs and the games to fold. Empty GamePks
// means every completed game of the season so far.
type BreakdownRequest struct {
	TeamA   int
	TeamB   int
	GamePks []int
	Windows scoring.Windows
}

// TeamBreakdown is one club's ranked players
type TeamBreakdown struct {
	TeamID  int                   `json:"team_id"`
	Name    string                `json:"name"`
	Players []scoring.PlayerTrend `json:"players"`
}

// Breakdown compares the hitters of two clubs
type Breakdown struct {
	TeamA   TeamBreakdown   `json:"team_a"`
	TeamB   TeamBreakdown   `json:"team_b"`
	GamePks []int           `json:"game_pks"`
	Windows scoring.Windows `json:"windows"`
}

// Breakdown folds box scores for both clubs, normalizes the two pools
// together and ranks each club's hitters by placement score.
func (s *Service) Breakdown(ctx context.Context, req BreakdownRequest) (Breakdown, error) {
	if req.TeamA <= 0 || req.TeamB <= 0 {
		return Breakdown{}, fmt.Errorf("%w: teamA and teamB are required", ErrInvalidInput)
	}
	if req.TeamA == req.TeamB {
		return Breakdown{}, fmt.Errorf("%w: teamA and teamB must differ", ErrInvalidInput)
	}
	if req.Windows == (scoring.Windows{}) {
		req.Windows = scoring.DefaultWindows
	}
	defer s.metrics.ObserveStage("breakdown", time.Now())

	foldA, foldB, err := s.folds(ctx, req)
	if err != nil {
		return Breakdown{}, err
	}

	pools := scoring.Normalize(scoring.StatsFromFold(foldA), scoring.StatsFromFold(foldB))
	nameA, nameB := s.teamNames(ctx, req.TeamA, req.TeamB)

	policy := s.policies.MustGet(registry.WindowMean)
	rowsA := s.trends(ctx, pools[0], req.Windows, policy)
	rowsB := s.trends(ctx, pools[1], req.Windows, policy)
	if ctx.Err() != nil {
		return Breakdown{}, ctx.Err()
	}

	result := Breakdown{
		TeamA:   TeamBreakdown{TeamID: req.TeamA, Name: nameA, Players: scoring.RankByPlacement(rowsA)},
		TeamB:   TeamBreakdown{TeamID: req.TeamB, Name: nameB, Players: scoring.RankByPlacement(rowsB)},
		GamePks: req.GamePks,
		Windows: req.Windows,
	}

	s.metrics.RecordScored("breakdown", len(rowsA)+len(rowsB))
	s.publish(ctx, contracts.KindBreakdown, req.TeamA, result)

	return result, nil
}

// folds builds both clubs' cumulative stats. Explicit games are fetched
// once and folded from each side; otherwise each club folds its own
// completed games.
func (s *Service) folds(ctx context.Context, req BreakdownRequest) (map[int]scoring.PlayerStats, map[int]scoring.PlayerStats, error) {
	if len(req.GamePks) > 0 {
		boxes, err := s.boxScores(ctx, req.GamePks)
		if err != nil {
			return nil, nil, err
		}
		return s.foldTeam(boxes, req.TeamA), s.foldTeam(boxes, req.TeamB), nil
	}

	var (
		wg           sync.WaitGroup
		foldA, foldB map[int]scoring.PlayerStats
		errA, errB   error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		foldA, errA = s.seasonStats(ctx, req.TeamA)
	}()
	go func() {
		defer wg.Done()
		foldB, errB = s.seasonStats(ctx, req.TeamB)
	}()
	wg.Wait()

	if errA != nil {
		return nil, nil, errA
	}
	if errB != nil {
		return nil, nil, errB
	}
	return foldA, foldB, nil
}

// seasonStats folds every completed game of teamID's season so far
func (s *Service) seasonStats(ctx context.Context, teamID int) (map[int]scoring.PlayerStats, error) {
	games, err := s.provider.Schedule(ctx, teamID, s.season)
	if err != nil {
		return nil, fmt.Errorf("loading schedule for team %d: %w", teamID, err)
	}

	cutoff := s.now().Format("2006-01-02")
	var gamePks []int
	for _, g := range games {
		if g.Status != models.StatusFinal || !g.Involves(teamID) {
			continue
		}
		if g.OfficialDate != "" && g.OfficialDate > cutoff {
			continue
		}
		gamePks = append(gamePks, g.GamePk)
	}

	boxes, err := s.boxScores(ctx, gamePks)
	if err != nil {
		return nil, err
	}
	return s.foldTeam(boxes, teamID), nil
}

// boxScores fetches box scores concurrently. Any failure fails the fold.
func (s *Service) boxScores(ctx context.Context, gamePks []int) ([]models.BoxScore, error) {
	boxes, errs := fanOut(ctx, gamePks, s.concurrency, s.provider.BoxScore)
	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("loading box score %d: %w", gamePks[i], err)
		}
	}
	return boxes, nil
}

// foldTeam folds each game's batting lines for teamID and merges the
// per-game folds
func (s *Service) foldTeam(boxes []models.BoxScore, teamID int) map[int]scoring.PlayerStats {
	fold := map[int]scoring.PlayerStats{}
	for _, box := range boxes {
		if !box.Includes(teamID) {
			s.logger.WithFields(logrus.Fields{"team_id": teamID, "game_pk": box.GamePk}).
				Warn("[dashboard] box score does not include team, skipping")
			continue
		}
		game := scoring.FoldPlayerStats(nil, battingLines(box.Side(teamID)))
		fold = scoring.MergePlayerStats(fold, game)
	}
	return fold
}

func battingLines(side models.BoxScoreTeam) []scoring.BattingLine {
	lines := make([]scoring.BattingLine, 0, len(side.Batters))
	for _, b := range side.Batters {
		if !b.HasBatting {
			continue
		}
		lines = append(lines, scoring.BattingLine{
			PlayerID:   b.PlayerID,
			Name:       b.FullName,
			Hits:       b.Hits,
			Strikeouts: b.Strikeouts,
			Bases:      b.Bases(),
		})
	}
	return lines
}

// teamNames resolves both club names, falling back to "Team <id>"
func (s *Service) teamNames(ctx context.Context, teamA, teamB int) (string, string) {
	nameA, nameB := fmt.Sprintf("Team %d", teamA), fmt.Sprintf("Team %d", teamB)

	teams, err := s.provider.Teams(ctx, s.season)
	if err != nil {
		s.logger.WithError(err).Warn("[dashboard] failed to resolve team names")
		return nameA, nameB
	}

	for _, t := range teams {
		switch t.ID {
		case teamA:
			nameA = t.Name
		case teamB:
			nameB = t.Name
		}
	}
	return nameA, nameB
}

// trends builds a breakdown row for every player in pool. A failed game
// log leaves that player with zero-filled windows.
func (s *Service) trends(ctx context.Context, pool []scoring.PlayerStats, w scoring.Windows, policy scoring.TrajectoryPolicy) []scoring.PlayerTrend {
	logs, errs := fanOut(ctx, pool, s.concurrency, func(ctx context.Context, ps scoring.PlayerStats) ([]scoring.GameRecord, error) {
		entries, err := s.provider.GameLog(ctx, ps.ID, s.season, s.gameType)
		if err != nil {
			return nil, err
		}
		return toRecords(scoring.Suffix(entries, w.Long)), nil
	})

	rows := make([]scoring.PlayerTrend, len(pool))
	for i, ps := range pool {
		records := logs[i]
		if errs[i] != nil {
			s.logger.WithError(errs[i]).WithField("player_id", ps.ID).
				Warn("[dashboard] game log unavailable, using empty windows")
			records = nil
		}
		rows[i] = scoring.BuildPlayerTrend(ps, records, w, policy)
	}
	return rows
}
