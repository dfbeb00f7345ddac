package dashboard

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/MakanaMakesStuff/TripleParlay/internal/metrics"
	"github.com/MakanaMakesStuff/TripleParlay/internal/registry"
	"github.com/MakanaMakesStuff/TripleParlay/internal/scoring"
	"github.com/MakanaMakesStuff/TripleParlay/pkg/contracts"
	"github.com/MakanaMakesStuff/TripleParlay/pkg/models"
	"github.com/sirupsen/logrus"
)

var (
	// ErrNoGameLogs means the player has no hitting games this season
	ErrNoGameLogs = errors.New("no game logs found")

	// ErrInvalidInput wraps caller mistakes such as missing identifiers
	ErrInvalidInput = errors.New("invalid input")
)

// Options tunes a Service
type Options struct {
	Season      int
	GameType    string
	Concurrency int
	Params      scoring.ProbabilityParams
}

// Service runs the scoring pipeline over StatsAPI data for each view
type Service struct {
	provider    contracts.StatsProvider
	publisher   contracts.ResultPublisher
	policies    *registry.Registry
	metrics     *metrics.Metrics
	logger      *logrus.Logger
	season      int
	gameType    string
	concurrency int
	params      scoring.ProbabilityParams
	now         func() time.Time
}

// NewService creates a dashboard service
func NewService(
	provider contracts.StatsProvider,
	publisher contracts.ResultPublisher,
	policies *registry.Registry,
	m *metrics.Metrics,
	logger *logrus.Logger,
	opts Options,
) *Service {
	if opts.Concurrency <= 0 {
		opts.Concurrency = 1
	}
	if opts.GameType == "" {
		opts.GameType = "R"
	}
	if opts.Params.Windows == (scoring.Windows{}) {
		opts.Params.Windows = scoring.DefaultWindows
	}
	return &Service{
		provider:    provider,
		publisher:   publisher,
		policies:    policies,
		metrics:     m,
		logger:      logger,
		season:      opts.Season,
		gameType:    opts.GameType,
		concurrency: opts.Concurrency,
		params:      opts.Params,
		now:         time.Now,
	}
}

// Season is the season every view reads
func (s *Service) Season() int {
	return s.season
}

// SetClock replaces the clock used to cut off unplayed games
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

// publish hands a result to the publisher; failures are only logged
func (s *Service) publish(ctx context.Context, kind contracts.ResultKind, teamID int, payload interface{}) {
	if err := s.publisher.Publish(ctx, kind, teamID, payload); err != nil {
		s.metrics.RecordPublishError()
		s.logger.WithError(err).WithField("team_id", teamID).Warnf("[dashboard] publishing %s result failed", kind)
	}
}

// fanOut runs fn over items with at most limit calls in flight. Results
// and errors line up with items.
func fanOut[T, R any](ctx context.Context, items []T, limit int, fn func(context.Context, T) (R, error)) ([]R, []error) {
	results := make([]R, len(items))
	errs := make([]error, len(items))
	sem := make(chan struct{}, limit)

	var wg sync.WaitGroup
	for i, item := range items {
		wg.Add(1)
		go func(i int, item T) {
			defer wg.Done()

			select {
			case sem <- struct{}{}:
			case <-ctx.Done():
				errs[i] = ctx.Err()
				return
			}
			defer func() { <-sem }()

			results[i], errs[i] = fn(ctx, item)
		}(i, item)
	}
	wg.Wait()

	return results, errs
}

// toRecords converts a StatsAPI game log to pipeline records
func toRecords(entries []models.GameLogEntry) []scoring.GameRecord {
	records := make([]scoring.GameRecord, len(entries))
	for i, e := range entries {
		records[i] = scoring.GameRecord{
			GamePk:           e.GamePk,
			Date:             e.Date,
			Hits:             e.Hits,
			Bases:            e.Bases(),
			PlateAppearances: e.PlateAppearances,
			Strikeouts:       e.Strikeouts,
		}
	}
	return records
}
