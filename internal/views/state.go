package views

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/MakanaMakesStuff/TripleParlay/internal/dashboard"
	"github.com/MakanaMakesStuff/TripleParlay/internal/matchup"
	"github.com/MakanaMakesStuff/TripleParlay/internal/scoring"
	"github.com/MakanaMakesStuff/TripleParlay/pkg/models"
)

// NavLink is a filter or window link. Active marks the current choice.
type NavLink struct {
	Href   string
	Label  string
	Active bool
}

func teamHref(teamID int) string {
	return fmt.Sprintf("/team/%d", teamID)
}

func gamesHref(teamID int) string {
	return fmt.Sprintf("/teams/%d/games", teamID)
}

func playerHref(teamID, playerID int) string {
	return fmt.Sprintf("/team/%d/%d", teamID, playerID)
}

func venue(home bool) string {
	if home {
		return "vs"
	}
	return "@"
}

func sum(xs []int) int {
	n := 0
	for _, x := range xs {
		n += x
	}
	return n
}

// TeamsState is the landing page
type TeamsState struct {
	Query string
	Teams []models.Team
}

// TeamGamesState is a club's schedule page
type TeamGamesState struct {
	View    dashboard.TeamGames
	Analyze bool
}

// WithFilter returns the page link for another filter, keeping the rest
func (s TeamGamesState) WithFilter(f matchup.Filter) string {
	q := url.Values{}
	q.Set("opponent", f.Opponent)
	q.Set("result", string(f.Result))
	if s.Analyze {
		q.Set("analyze", "true")
	}
	return fmt.Sprintf("/teams/%d/games?%s", s.View.Team.ID, q.Encode())
}

// OpponentLinks filters by each opponent, keeping the result filter
func (s TeamGamesState) OpponentLinks() []NavLink {
	f := s.View.Filter
	opponents := append([]string{matchup.AllOpponents}, s.View.Opponents...)
	links := make([]NavLink, len(opponents))
	for i, opp := range opponents {
		links[i] = NavLink{
			Href:   s.WithFilter(matchup.Filter{Opponent: opp, Result: f.Result}),
			Label:  opp,
			Active: opp == f.Opponent,
		}
	}
	return links
}

// ResultLinks filters by outcome, keeping the opponent filter
func (s TeamGamesState) ResultLinks() []NavLink {
	f := s.View.Filter
	results := []matchup.Result{matchup.ResultAll, matchup.ResultWin, matchup.ResultLoss}
	links := make([]NavLink, len(results))
	for i, r := range results {
		links[i] = NavLink{
			Href:   s.WithFilter(matchup.Filter{Opponent: f.Opponent, Result: r}),
			Label:  string(r),
			Active: r == f.Result,
		}
	}
	return links
}

// GameRow is one played game from the club's side
type GameRow struct {
	Date          string
	Venue         string
	Opponent      string
	Outcome       string
	Score         string
	State         string
	BreakdownHref string
}

// GameRows lays out the filtered games
func (s TeamGamesState) GameRows() []GameRow {
	teamID := s.View.Team.ID
	rows := make([]GameRow, len(s.View.Games))
	for i, g := range s.View.Games {
		own, opp := g.Sides(teamID)
		outcome := "L"
		if own.IsWinner {
			outcome = "W"
		}
		rows[i] = GameRow{
			Date:          g.OfficialDate,
			Venue:         venue(g.Home.Team.ID == teamID),
			Opponent:      opp.Team.Name,
			Outcome:       outcome,
			Score:         fmt.Sprintf("%d-%d", own.Score, opp.Score),
			State:         g.DetailedState,
			BreakdownHref: BreakdownLink(teamID, opp.Team.ID, []int{g.GamePk}, 0, 0),
		}
	}
	return rows
}

// BreakdownURL links the selected opponent's games to the breakdown
func (s TeamGamesState) BreakdownURL() string {
	if len(s.View.BreakdownGamePks) == 0 {
		return ""
	}
	return BreakdownLink(s.View.Team.ID, s.View.OpponentID, s.View.BreakdownGamePks, scoring.DefaultWindows.Long, 0)
}

// RosterState is a club's roster board
type RosterState struct {
	Board dashboard.RosterBoard
}

// SortLink returns the link that orders the board by opt, flipping the
// order when opt is already active
func (s RosterState) SortLink(opt dashboard.SortOption) string {
	order := dashboard.OrderDesc
	if s.Board.Query.Sort == opt && s.Board.Query.Order == dashboard.OrderDesc {
		order = dashboard.OrderAsc
	}
	q := url.Values{}
	q.Set("sort", string(opt))
	q.Set("order", string(order))
	if s.Board.Query.Query != "" {
		q.Set("q", s.Board.Query.Query)
	}
	return fmt.Sprintf("/team/%d?%s", s.Board.Team.ID, q.Encode())
}

// PlayerState is a single player's probability page
type PlayerState struct {
	TeamID int
	Detail dashboard.PlayerDetail
}

// BreakdownState is the matchup breakdown page. Graph is the player whose
// chart is open, 0 for none.
type BreakdownState struct {
	Breakdown dashboard.Breakdown
	Graph     int
}

// ToggleGraph returns the state with playerID's chart toggled. Only one
// chart is open at a time.
func (s BreakdownState) ToggleGraph(playerID int) BreakdownState {
	next := s
	if s.Graph == playerID {
		next.Graph = 0
	} else {
		next.Graph = playerID
	}
	return next
}

// GraphLabel is the toggle text for playerID's chart
func (s BreakdownState) GraphLabel(playerID int) string {
	if s.Graph == playerID {
		return "Hide graph"
	}
	return "Show graph"
}

// Title names both clubs
func (s BreakdownState) Title() string {
	return s.Breakdown.TeamA.Name + " vs " + s.Breakdown.TeamB.Name
}

// WindowLinks switch between the default and extended long window,
// keeping the open chart
func (s BreakdownState) WindowLinks() []NavLink {
	b := s.Breakdown
	longs := []int{scoring.DefaultWindows.Long, scoring.ExtendedWindows.Long}
	links := make([]NavLink, len(longs))
	for i, long := range longs {
		links[i] = NavLink{
			Href:   BreakdownLink(b.TeamA.TeamID, b.TeamB.TeamID, b.GamePks, long, s.Graph),
			Label:  "Last " + strconv.Itoa(long),
			Active: long == b.Windows.Long,
		}
	}
	return links
}

// URL is the link that reproduces the state
func (s BreakdownState) URL() string {
	b := s.Breakdown
	return BreakdownLink(b.TeamA.TeamID, b.TeamB.TeamID, b.GamePks, b.Windows.Long, s.Graph)
}

// BreakdownLink builds a breakdown URL. gamePks travel as a JSON array.
func BreakdownLink(teamA, teamB int, gamePks []int, window, graph int) string {
	q := url.Values{}
	q.Set("teamA", strconv.Itoa(teamA))
	q.Set("teamB", strconv.Itoa(teamB))
	if len(gamePks) > 0 {
		pks, _ := json.Marshal(gamePks)
		q.Set("gamePks", string(pks))
	}
	if window > 0 && window != scoring.DefaultWindows.Long {
		q.Set("window", strconv.Itoa(window))
	}
	if graph > 0 {
		q.Set("graph", strconv.Itoa(graph))
	}
	return "/breakdown?" + q.Encode()
}
