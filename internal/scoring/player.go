package scoring

import "sort"

// ProbabilityParams tunes the per-player probability view
type ProbabilityParams struct {
	AnalyzedGames         int
	OpponentStrikeoutRate float64
	ParkFactor            float64
	Windows               Windows
}

// DefaultProbabilityParams analyze the last 50 games against a league-average opponent
var DefaultProbabilityParams = ProbabilityParams{
	AnalyzedGames:         50,
	OpponentStrikeoutRate: 0.22,
	ParkFactor:            1.0,
	Windows:               DefaultWindows,
}

func perPA(n, pa int) float64 {
	if pa == 0 {
		pa = 1
	}
	return float64(n) / float64(pa)
}

// ScorePlayer builds the probability view for one player from their
// chronological game log. logs must be non-empty.
func ScorePlayer(id int, name string, logs []GameRecord, p ProbabilityParams, policy TrajectoryPolicy) ScoredResult {
	analyzed := Suffix(logs, p.AnalyzedGames)
	agg := AggregateRecords(analyzed, p.Windows)
	season := agg.Totals
	recent := Sum(agg.Short)

	seasonOBP := perPA(season.Hits, season.PlateAppearances)
	seasonISO := perPA(season.Bases-season.Hits, season.PlateAppearances)
	recentOBP := perPA(recent.Hits, recent.PlateAppearances)
	recentISO := perPA(recent.Bases-recent.Hits, recent.PlateAppearances)

	baseline := seasonOBP
	if baseline == 0 {
		baseline = 1
	}

	games := season.Games
	if games == 0 {
		games = 1
	}

	park := p.ParkFactor
	prop := ScoreHitterProp(HitterStats{
		PlateAppearancesPerGame: float64(season.PlateAppearances) / float64(games),
		OBP:                     seasonOBP,
		ISO:                     seasonISO,
		RecentFormMultiplier:    recentOBP / baseline,
		OpponentStrikeoutRate:   p.OpponentStrikeoutRate,
		ParkFactor:              &park,
	})

	return ScoredResult{
		ID:                 id,
		Name:               name,
		RawHitProbability:  recentOBP,
		RawBaseProbability: recentISO,
		HitScore:           prop.Score,
		BaseScore:          prop.Score,
		HitOdds:            prop.AmericanOdds,
		BaseOdds:           prop.AmericanOdds,
		Trajectory:         policy.Classify(analyzed, p.Windows),
		HitDue:             BelowBaselineDue(recentOBP, seasonOBP),
		BaseDue:            BelowBaselineDue(recentISO, seasonISO),
		RecentGames:        agg.Medium,
	}
}

// BuildPlayerTrend assembles a breakdown row. A nil records slice stands
// for an unavailable game log and yields zero-filled windows.
func BuildPlayerTrend(ps PlayerStats, records []GameRecord, w Windows, policy TrajectoryPolicy) PlayerTrend {
	if records == nil {
		records = make([]GameRecord, w.Long)
	}
	agg := AggregateRecords(records, w)
	long := agg.Long
	hits := HitsSeries(long)
	strikeouts := StrikeoutsSeries(long)
	recentHits := HitsSeries(agg.Medium)

	dates := make([]string, 0, len(long))
	for _, r := range long {
		if r.Date.IsZero() {
			dates = append(dates, "")
			continue
		}
		dates = append(dates, r.Date.Format("2006-01-02"))
	}

	trajectory := policy.Classify(long, w)
	due := ZeroStreakDue(recentHits, DueThreshold)

	return PlayerTrend{
		PlayerStats:        ps,
		Last3Hits:          HitsSeries(agg.Short),
		Last7Hits:          recentHits,
		LastLongHits:       hits,
		Last3Strikeouts:    StrikeoutsSeries(agg.Short),
		Last7Strikeouts:    StrikeoutsSeries(agg.Medium),
		LastLongStrikeouts: strikeouts,
		Dates:              dates,
		Trajectory:         trajectory,
		DueHit:             due,
		PlacementScore:     PlacementScore(ps.NormalizedScore, trajectory, due),
	}
}

// RankByPlacement sorts rows by descending placement score. Ties keep
// their input order.
func RankByPlacement(rows []PlayerTrend) []PlayerTrend {
	out := make([]PlayerTrend, len(rows))
	copy(out, rows)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].PlacementScore > out[j].PlacementScore
	})
	return out
}
