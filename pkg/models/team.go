package models

import "fmt"

// LogoBaseURL serves club logos as SVG
const LogoBaseURL = "https://www.mlbstatic.com/team-logos"

// Team is an MLB club
type Team struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation"`
	TeamName     string `json:"team_name"`
	LocationName string `json:"location_name"`
	Venue        string `json:"venue,omitempty"`
	League       string `json:"league,omitempty"`
	Division     string `json:"division,omitempty"`
}

// LogoURL returns the club's logo location
func (t Team) LogoURL() string {
	return fmt.Sprintf("%s/%d.svg", LogoBaseURL, t.ID)
}

// RosterEntry is one player on a club's active roster
type RosterEntry struct {
	PlayerID     int    `json:"player_id"`
	FullName     string `json:"full_name"`
	Position     string `json:"position"`
	JerseyNumber string `json:"jersey_number,omitempty"`
}

// Person is a player's biographical record
type Person struct {
	ID              int    `json:"id"`
	FullName        string `json:"full_name"`
	PrimaryPosition string `json:"primary_position,omitempty"`
	BatSide         string `json:"bat_side,omitempty"`
	CurrentTeamID   int    `json:"current_team_id,omitempty"`
}
