package testutil

import (
	"context"
	"fmt"
	"sync"

	"github.com/MakanaMakesStuff/TripleParlay/internal/providers/statsapi"
	"github.com/MakanaMakesStuff/TripleParlay/pkg/models"
)

// MockProvider implements contracts.StatsProvider from in-memory data.
// Unknown ids return statsapi.ErrNotFound; entries in the error maps fail
// that call.
type MockProvider struct {
	TeamList  []models.Team
	Rosters   map[int][]models.RosterEntry
	People    map[int]models.Person
	GameLogs  map[int][]models.GameLogEntry
	Schedules map[int][]models.ScheduledGame
	BoxScores map[int]models.BoxScore

	GameLogErrors  map[int]error
	BoxScoreErrors map[int]error
	ShouldError    bool

	mu    sync.Mutex
	calls map[string]int
}

// Calls reports how often a method was called
func (m *MockProvider) Calls(method string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[method]
}

func (m *MockProvider) record(method string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.calls == nil {
		m.calls = make(map[string]int)
	}
	m.calls[method]++
	if m.ShouldError {
		return context.DeadlineExceeded
	}
	return nil
}

func (m *MockProvider) Teams(ctx context.Context, season int) ([]models.Team, error) {
	if err := m.record("Teams"); err != nil {
		return nil, err
	}
	return m.TeamList, nil
}

func (m *MockProvider) Team(ctx context.Context, teamID int) (models.Team, error) {
	if err := m.record("Team"); err != nil {
		return models.Team{}, err
	}
	for _, t := range m.TeamList {
		if t.ID == teamID {
			return t, nil
		}
	}
	return models.Team{}, fmt.Errorf("team %d: %w", teamID, statsapi.ErrNotFound)
}

func (m *MockProvider) Roster(ctx context.Context, teamID int) ([]models.RosterEntry, error) {
	if err := m.record("Roster"); err != nil {
		return nil, err
	}
	roster, ok := m.Rosters[teamID]
	if !ok {
		return nil, fmt.Errorf("roster %d: %w", teamID, statsapi.ErrNotFound)
	}
	return roster, nil
}

func (m *MockProvider) Person(ctx context.Context, playerID int) (models.Person, error) {
	if err := m.record("Person"); err != nil {
		return models.Person{}, err
	}
	p, ok := m.People[playerID]
	if !ok {
		return models.Person{}, fmt.Errorf("person %d: %w", playerID, statsapi.ErrNotFound)
	}
	return p, nil
}

func (m *MockProvider) GameLog(ctx context.Context, playerID, season int, gameType string) ([]models.GameLogEntry, error) {
	if err := m.record("GameLog"); err != nil {
		return nil, err
	}
	if err := m.GameLogErrors[playerID]; err != nil {
		return nil, err
	}
	return m.GameLogs[playerID], nil
}

func (m *MockProvider) Schedule(ctx context.Context, teamID, season int) ([]models.ScheduledGame, error) {
	if err := m.record("Schedule"); err != nil {
		return nil, err
	}
	return m.Schedules[teamID], nil
}

func (m *MockProvider) BoxScore(ctx context.Context, gamePk int) (models.BoxScore, error) {
	if err := m.record("BoxScore"); err != nil {
		return models.BoxScore{}, err
	}
	if err := m.BoxScoreErrors[gamePk]; err != nil {
		return models.BoxScore{}, err
	}
	box, ok := m.BoxScores[gamePk]
	if !ok {
		return models.BoxScore{}, fmt.Errorf("game %d: %w", gamePk, statsapi.ErrNotFound)
	}
	return box, nil
}

// GameLogEntries builds a chronological StatsAPI game log from per-game
// hit counts, four plate appearances and one strikeout per game
func GameLogEntries(hits ...int) []models.GameLogEntry {
	out := make([]models.GameLogEntry, len(hits))
	for i, h := range hits {
		out[i] = models.GameLogEntry{
			GamePk:           745001 + i,
			Date:             seasonStart.AddDate(0, 0, i),
			AtBats:           4,
			PlateAppearances: 4,
			Hits:             h,
			TotalBases:       h,
			Strikeouts:       1,
		}
	}
	return out
}

// Batter creates a box score batting line with a batting block
func Batter(id int, name string, hits, strikeouts, bases int) models.BatterLine {
	return models.BatterLine{
		PlayerID:         id,
		FullName:         name,
		HasBatting:       true,
		PlateAppearances: 4,
		Hits:             hits,
		TotalBases:       bases,
		Strikeouts:       strikeouts,
	}
}
