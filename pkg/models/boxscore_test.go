package models_test

import (
	"testing"

	"github.com/MakanaMakesStuff/TripleParlay/pkg/models"
)

func TestBatterLine_Bases(t *testing.T) {
	tests := []struct {
		name string
		line models.BatterLine
		want int
	}{
		{"Reported total wins", models.BatterLine{Hits: 2, HomeRuns: 1, TotalBases: 5}, 5},
		{"Derived from hit types", models.BatterLine{Hits: 3, Doubles: 1, HomeRuns: 1}, 7},
		{"Singles only", models.BatterLine{Hits: 2}, 2},
		{"Triple", models.BatterLine{Hits: 1, Triples: 1}, 3},
		{"Hitless", models.BatterLine{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.line.Bases(); got != tt.want {
				t.Errorf("Bases() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestGameLogEntry_Bases(t *testing.T) {
	entry := models.GameLogEntry{Hits: 2, Doubles: 1}
	if got := entry.Bases(); got != 3 {
		t.Errorf("Bases() = %d, want 3", got)
	}

	entry.TotalBases = 6
	if got := entry.Bases(); got != 6 {
		t.Errorf("Bases() = %d, want reported 6", got)
	}
}
