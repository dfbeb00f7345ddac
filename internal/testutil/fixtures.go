package testutil

import (
	"time"

	"github.com/MakanaMakesStuff/TripleParlay/internal/scoring"
	"github.com/MakanaMakesStuff/TripleParlay/pkg/models"
)

var seasonStart = time.Date(2025, time.March, 27, 0, 0, 0, 0, time.UTC)

// GameRecordFixture creates a game record with a typical four-PA line
func GameRecordFixture(overrides ...func(*scoring.GameRecord)) scoring.GameRecord {
	r := scoring.GameRecord{
		GamePk:           745001,
		Date:             seasonStart,
		Hits:             1,
		Bases:            1,
		PlateAppearances: 4,
		Strikeouts:       1,
	}

	for _, override := range overrides {
		override(&r)
	}

	return r
}

// GameLog builds a chronological log from per-game hit counts. Each hit
// counts as one base.
func GameLog(hits ...int) []scoring.GameRecord {
	log := make([]scoring.GameRecord, len(hits))
	for i, h := range hits {
		i, h := i, h
		log[i] = GameRecordFixture(func(r *scoring.GameRecord) {
			r.GamePk = 745001 + i
			r.Date = seasonStart.AddDate(0, 0, i)
			r.Hits = h
			r.Bases = h
		})
	}
	return log
}

// PlayerStatsFixture creates cumulative stats for a regular
func PlayerStatsFixture(overrides ...func(*scoring.PlayerStats)) scoring.PlayerStats {
	ps := scoring.PlayerStats{
		ID:         660271,
		Name:       "Shohei Ohtani",
		Hits:       150,
		Strikeouts: 120,
		Bases:      300,
	}

	for _, override := range overrides {
		override(&ps)
	}

	return ps
}

// ScheduledGameFixture creates a completed game between two clubs
func ScheduledGameFixture(overrides ...func(*models.ScheduledGame)) models.ScheduledGame {
	g := models.ScheduledGame{
		GamePk:   745001,
		GameDate: seasonStart,
		Status:   models.StatusFinal,
		Home: models.GameSide{
			Team:     models.TeamRef{ID: 119, Name: "Los Angeles Dodgers"},
			Score:    5,
			IsWinner: true,
		},
		Away: models.GameSide{
			Team:  models.TeamRef{ID: 137, Name: "San Francisco Giants"},
			Score: 3,
		},
	}

	for _, override := range overrides {
		override(&g)
	}

	return g
}

// Matchup creates a final between home and away with the given winner
func Matchup(gamePk int, home, away models.TeamRef, homeWins bool) models.ScheduledGame {
	return ScheduledGameFixture(func(g *models.ScheduledGame) {
		g.GamePk = gamePk
		g.Home = models.GameSide{Team: home, IsWinner: homeWins}
		g.Away = models.GameSide{Team: away, IsWinner: !homeWins}
	})
}
