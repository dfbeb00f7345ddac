package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/MakanaMakesStuff/TripleParlay/internal/dashboard"
	"github.com/MakanaMakesStuff/TripleParlay/internal/matchup"
	"github.com/MakanaMakesStuff/TripleParlay/internal/providers/statsapi"
	"github.com/MakanaMakesStuff/TripleParlay/internal/scoring"
	"github.com/MakanaMakesStuff/TripleParlay/pkg/models"
	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

// Dashboard is the view layer the handlers serve
type Dashboard interface {
	Teams(ctx context.Context, query string) ([]models.Team, error)
	TeamGames(ctx context.Context, teamID int, filter matchup.Filter, analyze bool) (dashboard.TeamGames, error)
	Performance(ctx context.Context, teamID int, opponent string) ([]matchup.Entry, error)
	RosterBoard(ctx context.Context, teamID int, q dashboard.RosterQuery) (dashboard.RosterBoard, error)
	PlayerProbability(ctx context.Context, playerID int) (scoring.ScoredResult, error)
	PlayerDetail(ctx context.Context, playerID int) (dashboard.PlayerDetail, error)
	GameLog(ctx context.Context, playerID, n int) (dashboard.PlayerGameLog, error)
	Breakdown(ctx context.Context, req dashboard.BreakdownRequest) (dashboard.Breakdown, error)
}

// Handler contains dependencies for HTTP handlers
type Handler struct {
	dashboard Dashboard
	logger    *logrus.Logger
	timeout   time.Duration
}

// DefaultTimeout bounds a request when no timeout is configured
const DefaultTimeout = 45 * time.Second

// NewHandler creates a new handler with dependencies. timeout bounds the
// upstream work of each request.
func NewHandler(d Dashboard, logger *logrus.Logger, timeout time.Duration) *Handler {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Handler{
		dashboard: d,
		logger:    logger,
		timeout:   timeout,
	}
}

// Routes registers every page and API route on r
func (h *Handler) Routes(r chi.Router) {
	r.Get("/health", h.HealthCheck)

	r.Get("/", h.TeamsPage)
	r.Get("/teams/{teamID}/games", h.TeamGamesPage)
	r.Get("/team/{teamID}", h.RosterPage)
	r.Get("/team/{teamID}/{playerID}", h.PlayerPage)
	r.Get("/breakdown", h.BreakdownPage)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/teams", h.GetTeams)
		r.Get("/teams/{teamID}/games", h.GetTeamGames)
		r.Get("/teams/{teamID}/performance", h.GetPerformance)
		r.Get("/teams/{teamID}/players", h.GetRosterBoard)
		r.Get("/players/{playerID}", h.GetPlayer)
		r.Get("/players/{playerID}/probability", h.GetPlayerProbability)
		r.Get("/players/{playerID}/gamelog", h.GetPlayerGameLog)
		r.Get("/breakdown", h.GetBreakdown)
	})
}

// HealthCheck returns service health
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC(),
		"service":   "tripleparlay",
	})
}

// statusFor maps a dashboard error to an HTTP status
func statusFor(err error) int {
	switch {
	case errors.Is(err, dashboard.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, statsapi.ErrNotFound), errors.Is(err, dashboard.ErrNoGameLogs):
		return http.StatusNotFound
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusBadGateway
	}
}

// parseBreakdownRequest reads teamA, teamB, gamePks and window. gamePks
// is a JSON array; a comma separated list is accepted too.
func parseBreakdownRequest(r *http.Request) (dashboard.BreakdownRequest, error) {
	q := r.URL.Query()

	teamA, err := strconv.Atoi(q.Get("teamA"))
	if err != nil {
		return dashboard.BreakdownRequest{}, fmt.Errorf("%w: teamA must be a team id", dashboard.ErrInvalidInput)
	}
	teamB, err := strconv.Atoi(q.Get("teamB"))
	if err != nil {
		return dashboard.BreakdownRequest{}, fmt.Errorf("%w: teamB must be a team id", dashboard.ErrInvalidInput)
	}

	gamePks, err := parseGamePks(q.Get("gamePks"))
	if err != nil {
		return dashboard.BreakdownRequest{}, err
	}

	windows := scoring.DefaultWindows
	if parseIntParam(r, "window", windows.Long) == scoring.ExtendedWindows.Long {
		windows = scoring.ExtendedWindows
	}

	return dashboard.BreakdownRequest{TeamA: teamA, TeamB: teamB, GamePks: gamePks, Windows: windows}, nil
}

func parseGamePks(raw string) ([]int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	var pks []int
	if strings.HasPrefix(raw, "[") {
		if err := json.Unmarshal([]byte(raw), &pks); err != nil {
			return nil, fmt.Errorf("%w: gamePks must be a JSON array of ids", dashboard.ErrInvalidInput)
		}
		return pks, nil
	}

	for _, part := range strings.Split(raw, ",") {
		pk, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("%w: invalid game id %q", dashboard.ErrInvalidInput, part)
		}
		pks = append(pks, pk)
	}
	return pks, nil
}

func parseIDParam(r *http.Request, param string) (int, error) {
	id, err := strconv.Atoi(chi.URLParam(r, param))
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %s must be a positive integer", dashboard.ErrInvalidInput, param)
	}
	return id, nil
}

func parseIntParam(r *http.Request, param string, defaultValue int) int {
	valueStr := r.URL.Query().Get(param)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func parseBoolParam(r *http.Request, param string) bool {
	value, err := strconv.ParseBool(r.URL.Query().Get(param))
	return err == nil && value
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		logrus.WithError(err).Error("error encoding response")
	}
}

func (h *Handler) respondError(w http.ResponseWriter, r *http.Request, status int, message string, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	errResp := models.ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
		Code:    status,
	}

	if err != nil {
		h.logError(r, status, message, err)
	}

	if err := json.NewEncoder(w).Encode(errResp); err != nil {
		h.logger.WithError(err).Error("error encoding error response")
	}
}

func (h *Handler) logError(r *http.Request, status int, message string, err error) {
	entry := h.logger.WithFields(logrus.Fields{
		"path":   r.URL.Path,
		"status": status,
	}).WithError(err)
	if status >= http.StatusInternalServerError {
		entry.Error(message)
		return
	}
	entry.Debug(message)
}
