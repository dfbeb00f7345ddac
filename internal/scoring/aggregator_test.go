package scoring_test

import (
	"reflect"
	"testing"

	"github.com/MakanaMakesStuff/TripleParlay/internal/scoring"
	"github.com/MakanaMakesStuff/TripleParlay/internal/testutil"
)

func TestSuffix(t *testing.T) {
	tests := []struct {
		name  string
		input []int
		n     int
		want  []int
	}{
		{"Longer than window", []int{1, 2, 3, 4, 5}, 3, []int{3, 4, 5}},
		{"Shorter than window", []int{1, 2}, 7, []int{1, 2}},
		{"Exact length", []int{1, 2, 3}, 3, []int{1, 2, 3}},
		{"Empty input", []int{}, 3, []int{}},
		{"Zero window", []int{1, 2, 3}, 0, []int{}},
		{"Negative window", []int{1, 2, 3}, -1, []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := scoring.Suffix(tt.input, tt.n)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Suffix(%v, %d) = %v, want %v", tt.input, tt.n, got, tt.want)
			}
		})
	}
}

func TestSuffix_DoesNotAliasInput(t *testing.T) {
	input := []int{1, 2, 3, 4}
	got := scoring.Suffix(input, 2)
	got[0] = 99

	if input[2] != 3 {
		t.Errorf("expected input to be unchanged, got %v", input)
	}
}

func TestAggregateRecords(t *testing.T) {
	log := testutil.GameLog(0, 1, 2, 0, 3, 1, 1, 0, 2, 1, 4, 0)

	agg := scoring.AggregateRecords(log, scoring.DefaultWindows)

	if agg.Totals.Games != 12 {
		t.Errorf("expected 12 games, got %d", agg.Totals.Games)
	}
	if agg.Totals.Hits != 15 {
		t.Errorf("expected 15 hits, got %d", agg.Totals.Hits)
	}
	if agg.Totals.PlateAppearances != 48 {
		t.Errorf("expected 48 plate appearances, got %d", agg.Totals.PlateAppearances)
	}

	if got := scoring.HitsSeries(agg.Short); !reflect.DeepEqual(got, []int{1, 4, 0}) {
		t.Errorf("short window = %v, want [1 4 0]", got)
	}
	if len(agg.Medium) != 7 {
		t.Errorf("expected medium window of 7, got %d", len(agg.Medium))
	}
	if len(agg.Long) != 10 {
		t.Errorf("expected long window of 10, got %d", len(agg.Long))
	}

	// chronological order is preserved
	for i := 1; i < len(agg.Long); i++ {
		if agg.Long[i].Date.Before(agg.Long[i-1].Date) {
			t.Fatalf("long window out of order at %d", i)
		}
	}
}

func TestAggregateRecords_ExtendedWindow(t *testing.T) {
	log := testutil.GameLog(make([]int, 40)...)

	agg := scoring.AggregateRecords(log, scoring.ExtendedWindows)

	if len(agg.Long) != 30 {
		t.Errorf("expected extended window of 30, got %d", len(agg.Long))
	}
}

func TestFoldPlayerStats_Associative(t *testing.T) {
	lines := []scoring.BattingLine{
		{PlayerID: 1, Name: "A", Hits: 2, Strikeouts: 1, Bases: 3},
		{PlayerID: 2, Name: "B", Hits: 0, Strikeouts: 2, Bases: 0},
		{PlayerID: 1, Name: "A", Hits: 1, Strikeouts: 0, Bases: 4},
		{PlayerID: 3, Name: "C", Hits: 1, Strikeouts: 1, Bases: 1},
		{PlayerID: 2, Name: "B", Hits: 3, Strikeouts: 0, Bases: 5},
	}

	whole := scoring.FoldPlayerStats(nil, lines)
	merged := scoring.MergePlayerStats(
		scoring.FoldPlayerStats(nil, lines[:2]),
		scoring.FoldPlayerStats(nil, lines[2:]),
	)

	if !reflect.DeepEqual(whole, merged) {
		t.Errorf("fold of whole %v != merge of halves %v", whole, merged)
	}

	if whole[1].Hits != 3 || whole[1].Bases != 7 || whole[1].Strikeouts != 1 {
		t.Errorf("unexpected totals for player 1: %+v", whole[1])
	}
}

func TestFoldPlayerStats_DoesNotMutateAccumulator(t *testing.T) {
	acc := map[int]scoring.PlayerStats{1: {ID: 1, Hits: 1}}

	scoring.FoldPlayerStats(acc, []scoring.BattingLine{{PlayerID: 1, Hits: 2}})

	if acc[1].Hits != 1 {
		t.Errorf("expected accumulator untouched, got %d hits", acc[1].Hits)
	}
}
