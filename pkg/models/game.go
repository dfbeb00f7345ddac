package models

import "time"

// GameStatus is StatsAPI's abstract game state
type GameStatus string

const (
	StatusPreview GameStatus = "Preview"
	StatusLive    GameStatus = "Live"
	StatusFinal   GameStatus = "Final"
)

// TeamRef identifies a club inside other payloads
type TeamRef struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// GameSide is one club's side of a scheduled game
type GameSide struct {
	Team     TeamRef `json:"team"`
	Score    int     `json:"score"`
	IsWinner bool    `json:"is_winner"`
}

// ScheduledGame is a schedule entry for one game
type ScheduledGame struct {
	GamePk        int        `json:"game_pk"`
	GameDate      time.Time  `json:"game_date"`
	OfficialDate  string     `json:"official_date"` // YYYY-MM-DD
	Status        GameStatus `json:"status"`
	DetailedState string     `json:"detailed_state"`
	Home          GameSide   `json:"home"`
	Away          GameSide   `json:"away"`
	Venue         string     `json:"venue,omitempty"`
}

// Involves reports whether teamID played in the game
func (g ScheduledGame) Involves(teamID int) bool {
	return g.Home.Team.ID == teamID || g.Away.Team.ID == teamID
}

// Sides returns (own, opponent) from teamID's point of view
func (g ScheduledGame) Sides(teamID int) (GameSide, GameSide) {
	if g.Home.Team.ID == teamID {
		return g.Home, g.Away
	}
	return g.Away, g.Home
}
