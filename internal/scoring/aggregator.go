package scoring

// Windows holds the suffix lengths used for recent-form analysis
type Windows struct {
	Short  int
	Medium int
	Long   int
}

var (
	DefaultWindows  = Windows{Short: 3, Medium: 7, Long: 10}
	ExtendedWindows = Windows{Short: 3, Medium: 7, Long: 30}
)

// Totals are cumulative counts over a set of game records
type Totals struct {
	Games            int `json:"games"`
	Hits             int `json:"hits"`
	Bases            int `json:"bases"`
	PlateAppearances int `json:"plate_appearances"`
	Strikeouts       int `json:"strikeouts"`
}

// Aggregate is the output of the aggregator for one player
type Aggregate struct {
	Totals Totals       `json:"totals"`
	Short  []GameRecord `json:"short"`
	Medium []GameRecord `json:"medium"`
	Long   []GameRecord `json:"long"`
}

// Suffix returns a copy of the last n elements of s.
// Shorter inputs are returned whole; n <= 0 yields an empty slice.
func Suffix[T any](s []T, n int) []T {
	if n <= 0 || len(s) == 0 {
		return []T{}
	}
	if n > len(s) {
		n = len(s)
	}
	out := make([]T, n)
	copy(out, s[len(s)-n:])
	return out
}

// Sum adds up every record
func Sum(records []GameRecord) Totals {
	t := Totals{Games: len(records)}
	for _, r := range records {
		t.Hits += r.Hits
		t.Bases += r.Bases
		t.PlateAppearances += r.PlateAppearances
		t.Strikeouts += r.Strikeouts
	}
	return t
}

// AggregateRecords computes totals and the three recent windows over records
func AggregateRecords(records []GameRecord, w Windows) Aggregate {
	return Aggregate{
		Totals: Sum(records),
		Short:  Suffix(records, w.Short),
		Medium: Suffix(records, w.Medium),
		Long:   Suffix(records, w.Long),
	}
}

// HitsSeries projects records onto hit counts
func HitsSeries(records []GameRecord) []int {
	return project(records, func(r GameRecord) int { return r.Hits })
}

// StrikeoutsSeries projects records onto strikeout counts
func StrikeoutsSeries(records []GameRecord) []int {
	return project(records, func(r GameRecord) int { return r.Strikeouts })
}

// BasesSeries projects records onto total bases
func BasesSeries(records []GameRecord) []int {
	return project(records, func(r GameRecord) int { return r.Bases })
}

func project(records []GameRecord, f func(GameRecord) int) []int {
	out := make([]int, len(records))
	for i, r := range records {
		out[i] = f(r)
	}
	return out
}

// BattingLine is one player's batting in one game
type BattingLine struct {
	PlayerID   int
	Name       string
	Hits       int
	Strikeouts int
	Bases      int
}

// FoldPlayerStats reduces batting lines into per-player cumulative stats.
// acc may be nil; it is not modified.
func FoldPlayerStats(acc map[int]PlayerStats, lines []BattingLine) map[int]PlayerStats {
	out := make(map[int]PlayerStats, len(acc)+len(lines))
	for id, ps := range acc {
		out[id] = ps
	}
	for _, l := range lines {
		ps, ok := out[l.PlayerID]
		if !ok {
			ps = PlayerStats{ID: l.PlayerID, Name: l.Name}
		}
		ps.Hits += l.Hits
		ps.Strikeouts += l.Strikeouts
		ps.Bases += l.Bases
		out[l.PlayerID] = ps
	}
	return out
}

// MergePlayerStats combines two folds. Merging folds of two halves equals
// folding the whole.
func MergePlayerStats(a, b map[int]PlayerStats) map[int]PlayerStats {
	out := make(map[int]PlayerStats, len(a)+len(b))
	for id, ps := range a {
		out[id] = ps
	}
	for id, ps := range b {
		cur, ok := out[id]
		if !ok {
			out[id] = ps
			continue
		}
		cur.Hits += ps.Hits
		cur.Strikeouts += ps.Strikeouts
		cur.Bases += ps.Bases
		out[id] = cur
	}
	return out
}
