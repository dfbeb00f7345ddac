package statsapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/MakanaMakesStuff/TripleParlay/internal/metrics"
	"github.com/MakanaMakesStuff/TripleParlay/pkg/models"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

const (
	// DefaultBaseURL is the public MLB StatsAPI root
	DefaultBaseURL = "https://statsapi.mlb.com/api/v1"

	defaultRateLimit = 10.0 // requests per second
	defaultBurst     = 5

	sportIDMLB = "1"
)

// ErrNotFound is returned when StatsAPI answers 404
var ErrNotFound = errors.New("statsapi: not found")

// Client handles StatsAPI requests
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	userAgent  string
	metrics    *metrics.Metrics
	logger     *logrus.Logger
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithBaseURL sets a custom base URL
func WithBaseURL(url string) ClientOption {
	return func(c *Client) {
		c.baseURL = url
	}
}

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithTimeout sets the per-request timeout of the default HTTP client
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithRateLimit sets custom rate limiting
func WithRateLimit(rps float64, burst int) ClientOption {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// WithMetrics records every request on m
func WithMetrics(m *metrics.Metrics) ClientOption {
	return func(c *Client) {
		c.metrics = m
	}
}

// WithLogger sets the logger
func WithLogger(logger *logrus.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// New creates a new StatsAPI client
func New(opts ...ClientOption) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		limiter:   rate.NewLimiter(rate.Limit(defaultRateLimit), defaultBurst),
		userAgent: "Mozilla/5.0 (compatible; TripleParlay/1.0)",
		logger:    logrus.StandardLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Teams fetches every MLB club for a season
func (c *Client) Teams(ctx context.Context, season int) ([]models.Team, error) {
	params := url.Values{}
	params.Set("sportId", sportIDMLB)
	params.Set("season", strconv.Itoa(season))

	raw, err := c.fetch(ctx, "teams", "/teams", params)
	if err != nil {
		return nil, fmt.Errorf("fetching teams: %w", err)
	}

	return parseTeams(raw), nil
}

// Team fetches a single club
func (c *Client) Team(ctx context.Context, teamID int) (models.Team, error) {
	raw, err := c.fetch(ctx, "team", fmt.Sprintf("/teams/%d", teamID), nil)
	if err != nil {
		return models.Team{}, fmt.Errorf("fetching team %d: %w", teamID, err)
	}

	teams := parseTeams(raw)
	if len(teams) == 0 {
		return models.Team{}, fmt.Errorf("team %d: %w", teamID, ErrNotFound)
	}

	return teams[0], nil
}

// Roster fetches a club's active roster
func (c *Client) Roster(ctx context.Context, teamID int) ([]models.RosterEntry, error) {
	raw, err := c.fetch(ctx, "roster", fmt.Sprintf("/teams/%d/roster", teamID), nil)
	if err != nil {
		return nil, fmt.Errorf("fetching roster for team %d: %w", teamID, err)
	}

	return parseRoster(raw), nil
}

// Person fetches a player's biographical record
func (c *Client) Person(ctx context.Context, playerID int) (models.Person, error) {
	raw, err := c.fetch(ctx, "person", fmt.Sprintf("/people/%d", playerID), nil)
	if err != nil {
		return models.Person{}, fmt.Errorf("fetching person %d: %w", playerID, err)
	}

	person, ok := parsePerson(raw)
	if !ok {
		return models.Person{}, fmt.Errorf("person %d: %w", playerID, ErrNotFound)
	}

	return person, nil
}

// GameLog fetches a player's hitting game log, oldest game first
func (c *Client) GameLog(ctx context.Context, playerID, season int, gameType string) ([]models.GameLogEntry, error) {
	params := url.Values{}
	params.Set("stats", "gameLog")
	params.Set("group", "hitting")
	params.Set("gameType", gameType)
	params.Set("season", strconv.Itoa(season))

	raw, err := c.fetch(ctx, "gamelog", fmt.Sprintf("/people/%d/stats", playerID), params)
	if err != nil {
		return nil, fmt.Errorf("fetching game log for player %d: %w", playerID, err)
	}

	return parseGameLog(raw), nil
}

// Schedule fetches every game of a club's season
func (c *Client) Schedule(ctx context.Context, teamID, season int) ([]models.ScheduledGame, error) {
	params := url.Values{}
	params.Set("sportId", sportIDMLB)
	params.Set("teamId", strconv.Itoa(teamID))
	params.Set("season", strconv.Itoa(season))

	raw, err := c.fetch(ctx, "schedule", "/schedule", params)
	if err != nil {
		return nil, fmt.Errorf("fetching schedule for team %d: %w", teamID, err)
	}

	return parseSchedule(raw), nil
}

// BoxScore fetches the box score of one game
func (c *Client) BoxScore(ctx context.Context, gamePk int) (models.BoxScore, error) {
	raw, err := c.fetch(ctx, "boxscore", fmt.Sprintf("/game/%d/boxscore", gamePk), nil)
	if err != nil {
		return models.BoxScore{}, fmt.Errorf("fetching boxscore %d: %w", gamePk, err)
	}

	box := parseBoxScore(raw)
	box.GamePk = gamePk
	return box, nil
}

// fetch makes a rate-limited GET request and returns parsed JSON
func (c *Client) fetch(ctx context.Context, endpoint, path string, params url.Values) (map[string]interface{}, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.RecordUpstream(endpoint, 0, time.Since(start))
		return nil, fmt.Errorf("making request: %w", err)
	}
	defer resp.Body.Close()

	c.metrics.RecordUpstream(endpoint, resp.StatusCode, time.Since(start))
	c.logger.WithFields(logrus.Fields{
		"endpoint": endpoint,
		"status":   resp.StatusCode,
		"elapsed":  time.Since(start).String(),
	}).Debugf("[statsapi] GET %s", path)

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%s: %w", path, ErrNotFound)
	}

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("StatsAPI error: status=%d, body=%s", resp.StatusCode, string(body))
	}

	var result map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	return result, nil
}
