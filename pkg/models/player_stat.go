package models

import "time"

// GameLogEntry is one split of a player's hitting game log.
// Missing stat fields read as zero.
type GameLogEntry struct {
	GamePk           int       `json:"game_pk"`
	Date             time.Time `json:"date"`
	Opponent         TeamRef   `json:"opponent"`
	IsHome           bool      `json:"is_home"`
	AtBats           int       `json:"at_bats"`
	PlateAppearances int       `json:"plate_appearances"`
	Hits             int       `json:"hits"`
	Doubles          int       `json:"doubles"`
	Triples          int       `json:"triples"`
	HomeRuns         int       `json:"home_runs"`
	TotalBases       int       `json:"total_bases"`
	Strikeouts       int       `json:"strikeouts"`
}

// Bases is the game's total bases
func (e GameLogEntry) Bases() int {
	return totalBases(e.TotalBases, e.Hits, e.Doubles, e.Triples, e.HomeRuns)
}
