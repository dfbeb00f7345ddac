package contracts

import (
	"context"

	"github.com/MakanaMakesStuff/TripleParlay/pkg/models"
)

// StatsProvider is the upstream statistics source
// Implemented by the StatsAPI client; tests substitute fakes
type StatsProvider interface {
	Teams(ctx context.Context, season int) ([]models.Team, error)
	Team(ctx context.Context, teamID int) (models.Team, error)
	Roster(ctx context.Context, teamID int) ([]models.RosterEntry, error)
	Person(ctx context.Context, playerID int) (models.Person, error)
	GameLog(ctx context.Context, playerID, season int, gameType string) ([]models.GameLogEntry, error)
	Schedule(ctx context.Context, teamID, season int) ([]models.ScheduledGame, error)
	BoxScore(ctx context.Context, gamePk int) (models.BoxScore, error)
}

// ResultKind names the view a published result came from
type ResultKind string

const (
	KindBreakdown ResultKind = "breakdown"
	KindRoster    ResultKind = "roster"
)

// ResultPublisher fans computed results out to downstream consumers
type ResultPublisher interface {
	Publish(ctx context.Context, kind ResultKind, teamID int, payload interface{}) error
}
