package handlers

import (
	"context"
	"net/http"

	"github.com/MakanaMakesStuff/TripleParlay/internal/views"
	"github.com/a-h/templ"
)

// TeamsPage renders the club list
func (h *Handler) TeamsPage(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	query := r.URL.Query().Get("q")
	teams, err := h.dashboard.Teams(ctx, query)
	if err != nil {
		h.renderError(w, r, statusFor(err), "Could not load teams", err)
		return
	}

	h.render(w, r, views.TeamsPage(views.TeamsState{Query: query, Teams: teams}))
}

// TeamGamesPage renders a club's schedule
func (h *Handler) TeamGamesPage(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	teamID, err := parseIDParam(r, "teamID")
	if err != nil {
		h.renderError(w, r, http.StatusBadRequest, "Invalid team", nil)
		return
	}

	analyze := parseBoolParam(r, "analyze")
	view, err := h.dashboard.TeamGames(ctx, teamID, filterFromQuery(r), analyze)
	if err != nil {
		h.renderError(w, r, statusFor(err), "Could not load games", err)
		return
	}

	h.render(w, r, views.TeamGamesPage(views.TeamGamesState{View: view, Analyze: analyze}))
}

// RosterPage renders a club's roster board
func (h *Handler) RosterPage(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	teamID, err := parseIDParam(r, "teamID")
	if err != nil {
		h.renderError(w, r, http.StatusBadRequest, "Invalid team", nil)
		return
	}

	board, err := h.dashboard.RosterBoard(ctx, teamID, rosterQuery(r))
	if err != nil {
		h.renderError(w, r, statusFor(err), "Could not load roster", err)
		return
	}

	h.render(w, r, views.RosterPage(views.RosterState{Board: board}))
}

// PlayerPage renders one player's props
func (h *Handler) PlayerPage(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	teamID, err := parseIDParam(r, "teamID")
	if err != nil {
		h.renderError(w, r, http.StatusBadRequest, "Invalid team", nil)
		return
	}
	playerID, err := parseIDParam(r, "playerID")
	if err != nil {
		h.renderError(w, r, http.StatusBadRequest, "Invalid player", nil)
		return
	}

	detail, err := h.dashboard.PlayerDetail(ctx, playerID)
	if err != nil {
		h.renderError(w, r, statusFor(err), "Could not score player", err)
		return
	}

	h.render(w, r, views.PlayerPage(views.PlayerState{TeamID: teamID, Detail: detail}))
}

// BreakdownPage renders the matchup breakdown
// Query params: teamA, teamB, gamePks, window, graph
func (h *Handler) BreakdownPage(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	req, err := parseBreakdownRequest(r)
	if err != nil {
		h.renderError(w, r, http.StatusBadRequest, err.Error(), nil)
		return
	}

	breakdown, err := h.dashboard.Breakdown(ctx, req)
	if err != nil {
		h.renderError(w, r, statusFor(err), "Could not build breakdown", err)
		return
	}

	state := views.BreakdownState{Breakdown: breakdown, Graph: parseIntParam(r, "graph", 0)}
	h.render(w, r, views.BreakdownPage(state))
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, c templ.Component) {
	templ.Handler(c).ServeHTTP(w, r)
}

func (h *Handler) renderError(w http.ResponseWriter, r *http.Request, status int, message string, err error) {
	if err != nil {
		h.logError(r, status, message, err)
	}
	templ.Handler(views.ErrorPage(status, message), templ.WithStatus(status)).ServeHTTP(w, r)
}
