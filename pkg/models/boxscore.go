package models

// BoxScore contains per-player batting for both clubs of one game
type BoxScore struct {
	GamePk int          `json:"game_pk"`
	Home   BoxScoreTeam `json:"home"`
	Away   BoxScoreTeam `json:"away"`
}

// BoxScoreTeam is one club's side of a box score
type BoxScoreTeam struct {
	Team    TeamRef      `json:"team"`
	Batters []BatterLine `json:"batters"`
}

// Side returns the box score side for teamID, home when it matches and
// away otherwise
func (b BoxScore) Side(teamID int) BoxScoreTeam {
	if b.Home.Team.ID == teamID {
		return b.Home
	}
	return b.Away
}

// Includes reports whether teamID is one of the two sides
func (b BoxScore) Includes(teamID int) bool {
	return b.Home.Team.ID == teamID || b.Away.Team.ID == teamID
}

// BatterLine is a player's batting line in one game. HasBatting is false
// for players who appear in the box score without a batting block.
type BatterLine struct {
	PlayerID         int    `json:"player_id"`
	FullName         string `json:"full_name"`
	Position         string `json:"position,omitempty"`
	HasBatting       bool   `json:"has_batting"`
	PlateAppearances int    `json:"plate_appearances"`
	Hits             int    `json:"hits"`
	Doubles          int    `json:"doubles"`
	Triples          int    `json:"triples"`
	HomeRuns         int    `json:"home_runs"`
	TotalBases       int    `json:"total_bases"`
	Strikeouts       int    `json:"strikeouts"`
}

// Bases is the line's total bases, derived from the hit types when the
// feed leaves totalBases out
func (b BatterLine) Bases() int {
	return totalBases(b.TotalBases, b.Hits, b.Doubles, b.Triples, b.HomeRuns)
}

// totalBases counts one base per hit plus the extra bases of doubles,
// triples and home runs. A reported total wins.
func totalBases(reported, hits, doubles, triples, homeRuns int) int {
	if reported > 0 || hits == 0 {
		return reported
	}
	return hits + doubles + 2*triples + 3*homeRuns
}
