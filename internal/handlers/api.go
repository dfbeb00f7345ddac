package handlers

import (
	"context"
	"net/http"

	"github.com/MakanaMakesStuff/TripleParlay/internal/dashboard"
	"github.com/MakanaMakesStuff/TripleParlay/internal/matchup"
)

// GetTeams lists clubs
// Query params: q
func (h *Handler) GetTeams(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	teams, err := h.dashboard.Teams(ctx, r.URL.Query().Get("q"))
	if err != nil {
		h.respondError(w, r, statusFor(err), "failed to retrieve teams", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"teams": teams,
		"count": len(teams),
	})
}

// GetTeamGames returns a club's played games
// Query params: opponent, result, analyze
func (h *Handler) GetTeamGames(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	teamID, err := parseIDParam(r, "teamID")
	if err != nil {
		h.respondError(w, r, http.StatusBadRequest, err.Error(), nil)
		return
	}

	view, err := h.dashboard.TeamGames(ctx, teamID, filterFromQuery(r), parseBoolParam(r, "analyze"))
	if err != nil {
		h.respondError(w, r, statusFor(err), "failed to retrieve games", err)
		return
	}

	respondJSON(w, http.StatusOK, view)
}

// GetPerformance returns the normalized win matrix row of a club
// Query params: opponent
func (h *Handler) GetPerformance(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	teamID, err := parseIDParam(r, "teamID")
	if err != nil {
		h.respondError(w, r, http.StatusBadRequest, err.Error(), nil)
		return
	}

	entries, err := h.dashboard.Performance(ctx, teamID, r.URL.Query().Get("opponent"))
	if err != nil {
		h.respondError(w, r, statusFor(err), "failed to compute performance", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"team_id":     teamID,
		"performance": entries,
	})
}

// GetRosterBoard scores a club's roster
// Query params: sort, order, q
func (h *Handler) GetRosterBoard(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	teamID, err := parseIDParam(r, "teamID")
	if err != nil {
		h.respondError(w, r, http.StatusBadRequest, err.Error(), nil)
		return
	}

	board, err := h.dashboard.RosterBoard(ctx, teamID, rosterQuery(r))
	if err != nil {
		h.respondError(w, r, statusFor(err), "failed to score roster", err)
		return
	}

	respondJSON(w, http.StatusOK, board)
}

// GetPlayerProbability returns one player's probability view
func (h *Handler) GetPlayerProbability(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	playerID, err := parseIDParam(r, "playerID")
	if err != nil {
		h.respondError(w, r, http.StatusBadRequest, err.Error(), nil)
		return
	}

	result, err := h.dashboard.PlayerProbability(ctx, playerID)
	if err != nil {
		h.respondError(w, r, statusFor(err), "failed to score player", err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// GetPlayer returns one player's probability view and recent game lines
func (h *Handler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	playerID, err := parseIDParam(r, "playerID")
	if err != nil {
		h.respondError(w, r, http.StatusBadRequest, err.Error(), nil)
		return
	}

	detail, err := h.dashboard.PlayerDetail(ctx, playerID)
	if err != nil {
		h.respondError(w, r, statusFor(err), "failed to load player", err)
		return
	}

	respondJSON(w, http.StatusOK, detail)
}

// GetPlayerGameLog returns a player's last n games
// Query params: n
func (h *Handler) GetPlayerGameLog(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	playerID, err := parseIDParam(r, "playerID")
	if err != nil {
		h.respondError(w, r, http.StatusBadRequest, err.Error(), nil)
		return
	}

	log, err := h.dashboard.GameLog(ctx, playerID, parseIntParam(r, "n", 0))
	if err != nil {
		h.respondError(w, r, statusFor(err), "failed to retrieve game log", err)
		return
	}

	respondJSON(w, http.StatusOK, log)
}

// GetBreakdown compares two clubs
// Query params: teamA, teamB, gamePks, window
func (h *Handler) GetBreakdown(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	req, err := parseBreakdownRequest(r)
	if err != nil {
		h.respondError(w, r, http.StatusBadRequest, err.Error(), nil)
		return
	}

	breakdown, err := h.dashboard.Breakdown(ctx, req)
	if err != nil {
		h.respondError(w, r, statusFor(err), "failed to build breakdown", err)
		return
	}

	respondJSON(w, http.StatusOK, breakdown)
}

func filterFromQuery(r *http.Request) matchup.Filter {
	q := r.URL.Query()
	opponent := q.Get("opponent")
	if opponent == "" {
		opponent = matchup.AllOpponents
	}
	return matchup.Filter{
		Opponent: opponent,
		Result:   matchup.ParseResult(q.Get("result")),
	}
}

func rosterQuery(r *http.Request) dashboard.RosterQuery {
	q := r.URL.Query()
	return dashboard.RosterQuery{
		Sort:  dashboard.ParseSortOption(q.Get("sort")),
		Order: dashboard.ParseSortOrder(q.Get("order")),
		Query: q.Get("q"),
	}
}
