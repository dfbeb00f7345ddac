package scoring

// DueThreshold is the trailing zero-hit run that marks a player due for a hit
const DueThreshold = 2

// TrajectoryPolicy classifies the direction of a player's recent form.
// Call sites pick a policy by name through the registry.
type TrajectoryPolicy interface {
	Name() string
	Classify(records []GameRecord, w Windows) Trajectory
}

// Mean is the arithmetic mean of xs, 0 for empty input
func Mean(xs []int) float64 {
	if len(xs) == 0 {
		return 0
	}
	sum := 0
	for _, x := range xs {
		sum += x
	}
	return float64(sum) / float64(len(xs))
}

// WindowMeanPolicy compares mean hits over the short, medium and long
// windows. Strictly increasing toward the present is up, strictly
// decreasing is down, anything else is neutral.
type WindowMeanPolicy struct{}

func (WindowMeanPolicy) Name() string { return "window-mean" }

func (WindowMeanPolicy) Classify(records []GameRecord, w Windows) Trajectory {
	hits := HitsSeries(records)
	return WindowMeanTrend(Suffix(hits, w.Short), Suffix(hits, w.Medium), Suffix(hits, w.Long))
}

// WindowMeanTrend applies the window-mean rule to precomputed windows
func WindowMeanTrend(short, medium, long []int) Trajectory {
	a, b, c := Mean(short), Mean(medium), Mean(long)
	switch {
	case a > b && b > c:
		return TrajectoryUp
	case a < b && b < c:
		return TrajectoryDown
	default:
		return TrajectoryNeutral
	}
}

// FirstLastPolicy compares the first and last game of the medium window on
// hits and bases. Any increase wins over any decrease.
type FirstLastPolicy struct{}

func (FirstLastPolicy) Name() string { return "first-last" }

func (FirstLastPolicy) Classify(records []GameRecord, w Windows) Trajectory {
	window := Suffix(records, w.Medium)
	if len(window) < 2 {
		return TrajectoryStable
	}
	first, last := window[0], window[len(window)-1]
	hitsDelta := last.Hits - first.Hits
	basesDelta := last.Bases - first.Bases
	switch {
	case hitsDelta > 0 || basesDelta > 0:
		return TrajectoryUp
	case hitsDelta < 0 || basesDelta < 0:
		return TrajectoryDown
	default:
		return TrajectoryStable
	}
}

// TrailingZeroStreak counts consecutive zeros at the end of series
func TrailingZeroStreak(series []int) int {
	n := 0
	for i := len(series) - 1; i >= 0; i-- {
		if series[i] != 0 {
			break
		}
		n++
	}
	return n
}

// ZeroStreakDue reports whether the trailing hitless run reaches threshold
func ZeroStreakDue(hits []int, threshold int) bool {
	return TrailingZeroStreak(hits) >= threshold
}

// BelowBaselineDue reports a recent rate under the season rate
func BelowBaselineDue(recent, season float64) bool {
	return recent < season
}
