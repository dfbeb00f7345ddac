package statsapi

import (
	"sort"
	"strconv"
	"time"

	"github.com/MakanaMakesStuff/TripleParlay/pkg/models"
)

// parseTeams reads the "teams" array shared by /teams and /teams/{id}
func parseTeams(raw map[string]interface{}) []models.Team {
	arr := extractArray(raw, "teams")
	teams := make([]models.Team, 0, len(arr))

	for _, item := range arr {
		t, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		teams = append(teams, models.Team{
			ID:           extractInt(t, "id"),
			Name:         extractString(t, "name"),
			Abbreviation: extractString(t, "abbreviation"),
			TeamName:     extractString(t, "teamName"),
			LocationName: extractString(t, "locationName"),
			Venue:        extractString(extractMap(t, "venue"), "name"),
			League:       extractString(extractMap(t, "league"), "name"),
			Division:     extractString(extractMap(t, "division"), "name"),
		})
	}

	return teams
}

func parseRoster(raw map[string]interface{}) []models.RosterEntry {
	arr := extractArray(raw, "roster")
	roster := make([]models.RosterEntry, 0, len(arr))

	for _, item := range arr {
		p, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		person := extractMap(p, "person")
		roster = append(roster, models.RosterEntry{
			PlayerID:     extractInt(person, "id"),
			FullName:     extractString(person, "fullName"),
			Position:     extractString(extractMap(p, "position"), "abbreviation"),
			JerseyNumber: extractString(p, "jerseyNumber"),
		})
	}

	return roster
}

func parsePerson(raw map[string]interface{}) (models.Person, bool) {
	people := extractArray(raw, "people")
	if len(people) == 0 {
		return models.Person{}, false
	}
	p, ok := people[0].(map[string]interface{})
	if !ok {
		return models.Person{}, false
	}

	return models.Person{
		ID:              extractInt(p, "id"),
		FullName:        extractString(p, "fullName"),
		PrimaryPosition: extractString(extractMap(p, "primaryPosition"), "abbreviation"),
		BatSide:         extractString(extractMap(p, "batSide"), "code"),
		CurrentTeamID:   extractInt(extractMap(p, "currentTeam"), "id"),
	}, true
}

// parseGameLog reads stats[0].splits. A split without a stat block reads
// as a zero line.
func parseGameLog(raw map[string]interface{}) []models.GameLogEntry {
	stats := extractArray(raw, "stats")
	if len(stats) == 0 {
		return []models.GameLogEntry{}
	}
	first, ok := stats[0].(map[string]interface{})
	if !ok {
		return []models.GameLogEntry{}
	}

	splits := extractArray(first, "splits")
	entries := make([]models.GameLogEntry, 0, len(splits))

	for _, item := range splits {
		s, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		stat := extractMap(s, "stat")
		opponent := extractMap(s, "opponent")
		entries = append(entries, models.GameLogEntry{
			GamePk:           extractInt(extractMap(s, "game"), "gamePk"),
			Date:             parseDate(extractString(s, "date")),
			Opponent:         models.TeamRef{ID: extractInt(opponent, "id"), Name: extractString(opponent, "name")},
			IsHome:           extractBool(s, "isHome"),
			AtBats:           extractInt(stat, "atBats"),
			PlateAppearances: extractInt(stat, "plateAppearances"),
			Hits:             extractInt(stat, "hits"),
			Doubles:          extractInt(stat, "doubles"),
			Triples:          extractInt(stat, "triples"),
			HomeRuns:         extractInt(stat, "homeRuns"),
			TotalBases:       extractInt(stat, "totalBases"),
			Strikeouts:       extractInt(stat, "strikeOuts"),
		})
	}

	return entries
}

// parseSchedule flattens dates[].games[] into one chronological list
func parseSchedule(raw map[string]interface{}) []models.ScheduledGame {
	var games []models.ScheduledGame

	for _, d := range extractArray(raw, "dates") {
		date, ok := d.(map[string]interface{})
		if !ok {
			continue
		}
		for _, item := range extractArray(date, "games") {
			g, ok := item.(map[string]interface{})
			if !ok {
				continue
			}
			status := extractMap(g, "status")
			teams := extractMap(g, "teams")
			games = append(games, models.ScheduledGame{
				GamePk:        extractInt(g, "gamePk"),
				GameDate:      parseTimestamp(extractString(g, "gameDate")),
				OfficialDate:  extractString(g, "officialDate"),
				Status:        models.GameStatus(extractString(status, "abstractGameState")),
				DetailedState: extractString(status, "detailedState"),
				Home:          parseGameSide(extractMap(teams, "home")),
				Away:          parseGameSide(extractMap(teams, "away")),
				Venue:         extractString(extractMap(g, "venue"), "name"),
			})
		}
	}

	if games == nil {
		games = []models.ScheduledGame{}
	}
	return games
}

func parseGameSide(side map[string]interface{}) models.GameSide {
	team := extractMap(side, "team")
	return models.GameSide{
		Team:     models.TeamRef{ID: extractInt(team, "id"), Name: extractString(team, "name")},
		Score:    extractInt(side, "score"),
		IsWinner: extractBool(side, "isWinner"),
	}
}

func parseBoxScore(raw map[string]interface{}) models.BoxScore {
	teams := extractMap(raw, "teams")
	return models.BoxScore{
		Home: parseBoxScoreTeam(extractMap(teams, "home")),
		Away: parseBoxScoreTeam(extractMap(teams, "away")),
	}
}

// parseBoxScoreTeam reads the "players" object keyed by "ID<personId>".
// Lines come out ordered by player id.
func parseBoxScoreTeam(side map[string]interface{}) models.BoxScoreTeam {
	team := extractMap(side, "team")
	players := extractMap(side, "players")

	batters := make([]models.BatterLine, 0, len(players))
	for _, item := range players {
		p, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		person := extractMap(p, "person")
		batting := extractMap(extractMap(p, "stats"), "batting")

		batters = append(batters, models.BatterLine{
			PlayerID:         extractInt(person, "id"),
			FullName:         extractString(person, "fullName"),
			Position:         extractString(extractMap(p, "position"), "abbreviation"),
			HasBatting:       len(batting) > 0,
			PlateAppearances: extractInt(batting, "plateAppearances"),
			Hits:             extractInt(batting, "hits"),
			Doubles:          extractInt(batting, "doubles"),
			Triples:          extractInt(batting, "triples"),
			HomeRuns:         extractInt(batting, "homeRuns"),
			TotalBases:       extractInt(batting, "totalBases"),
			Strikeouts:       extractInt(batting, "strikeOuts"),
		})
	}

	sort.Slice(batters, func(i, j int) bool { return batters[i].PlayerID < batters[j].PlayerID })

	return models.BoxScoreTeam{
		Team:    models.TeamRef{ID: extractInt(team, "id"), Name: extractString(team, "name")},
		Batters: batters,
	}
}

// parseDate parses a YYYY-MM-DD date, zero on failure
func parseDate(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// parseTimestamp parses an RFC 3339 timestamp, zero on failure
func parseTimestamp(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// parseInt parses an int from interface{}
func parseInt(v interface{}) int {
	switch val := v.(type) {
	case float64:
		return int(val)
	case string:
		i, _ := strconv.Atoi(val)
		return i
	case int:
		return val
	default:
		return 0
	}
}

// extractString safely extracts a string from a map
func extractString(m map[string]interface{}, key string) string {
	if v, ok := m[key]; ok {
		if str, ok := v.(string); ok {
			return str
		}
	}
	return ""
}

// extractInt safely extracts an int from a map
func extractInt(m map[string]interface{}, key string) int {
	if v, ok := m[key]; ok {
		return parseInt(v)
	}
	return 0
}

// extractBool safely extracts a bool from a map
func extractBool(m map[string]interface{}, key string) bool {
	if v, ok := m[key]; ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return false
}

// extractMap safely extracts a map from a map
func extractMap(m map[string]interface{}, key string) map[string]interface{} {
	if v, ok := m[key]; ok {
		if mapVal, ok := v.(map[string]interface{}); ok {
			return mapVal
		}
	}
	return map[string]interface{}{}
}

// extractArray safely extracts an array from a map
func extractArray(m map[string]interface{}, key string) []interface{} {
	if v, ok := m[key]; ok {
		if arrVal, ok := v.([]interface{}); ok {
			return arrVal
		}
	}
	return []interface{}{}
}
