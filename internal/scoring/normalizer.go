package scoring

import "sort"

// Maxima are the pool-wide maximum counts, each at least 1
type Maxima struct {
	Hits       int
	Strikeouts int
	Bases      int
}

// PoolMaxima finds the maximum hits, strikeouts and bases across every pool
func PoolMaxima(pools ...[]PlayerStats) Maxima {
	m := Maxima{Hits: 1, Strikeouts: 1, Bases: 1}
	for _, pool := range pools {
		for _, p := range pool {
			if p.Hits > m.Hits {
				m.Hits = p.Hits
			}
			if p.Strikeouts > m.Strikeouts {
				m.Strikeouts = p.Strikeouts
			}
			if p.Bases > m.Bases {
				m.Bases = p.Bases
			}
		}
	}
	return m
}

// NormalizedScore scores one player against pool maxima
func NormalizedScore(p PlayerStats, m Maxima) float64 {
	hits := float64(p.Hits) / float64(m.Hits)
	contact := 1 - float64(p.Strikeouts)/float64(m.Strikeouts)
	power := float64(p.Bases) / float64(m.Bases)
	return (hits + contact + power) / 3
}

// Normalize scores every player against the maxima of the union of all
// pools. Inputs are left untouched; the result mirrors their shape.
func Normalize(pools ...[]PlayerStats) [][]PlayerStats {
	m := PoolMaxima(pools...)
	out := make([][]PlayerStats, len(pools))
	for i, pool := range pools {
		scored := make([]PlayerStats, len(pool))
		for j, p := range pool {
			p.NormalizedScore = NormalizedScore(p, m)
			scored[j] = p
		}
		out[i] = scored
	}
	return out
}

// StatsFromFold flattens a fold into a slice ordered by player id
func StatsFromFold(fold map[int]PlayerStats) []PlayerStats {
	out := make([]PlayerStats, 0, len(fold))
	for _, ps := range fold {
		out = append(out, ps)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
