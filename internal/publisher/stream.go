package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/MakanaMakesStuff/TripleParlay/pkg/contracts"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// StreamKey is the Redis stream scored results are appended to
const StreamKey = "scoring.results.baseball_mlb"

// defaultMaxLen bounds the stream; trimming is approximate
const defaultMaxLen = 10000

// StreamAdder is the slice of the Redis client the publisher needs
type StreamAdder interface {
	XAdd(ctx context.Context, a *redis.XAddArgs) *redis.StringCmd
}

// StreamPublisher publishes scored results to a Redis stream
type StreamPublisher struct {
	client StreamAdder
	maxLen int64
}

// NewStreamPublisher creates a new stream publisher
func NewStreamPublisher(client StreamAdder) *StreamPublisher {
	return &StreamPublisher{
		client: client,
		maxLen: defaultMaxLen,
	}
}

// Publish appends one result to the stream
func (p *StreamPublisher) Publish(ctx context.Context, kind contracts.ResultKind, teamID int, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshaling %s result: %w", kind, err)
	}

	err = p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: StreamKey,
		MaxLen: p.maxLen,
		Approx: true,
		Values: map[string]interface{}{
			"data":      string(data),
			"kind":      string(kind),
			"result_id": uuid.New().String(),
			"team_id":   strconv.Itoa(teamID),
		},
	}).Err()
	if err != nil {
		return fmt.Errorf("publishing %s result: %w", kind, err)
	}

	return nil
}

// NoopPublisher drops every result; used when Redis is not configured
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, contracts.ResultKind, int, interface{}) error {
	return nil
}
