package names_test

import (
	"testing"

	"github.com/MakanaMakesStuff/TripleParlay/internal/names"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Ronald Acuña Jr.", "ronald acuna jr"},
		{"  José   Ramírez ", "jose ramirez"},
		{"Ke'Bryan Hayes", "ke bryan hayes"},
		{"Isiah Kiner-Falefa", "isiah kiner falefa"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := names.Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMatches(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  bool
	}{
		{"Ronald Acuña Jr.", "acuna", true},
		{"Ronald Acuña Jr.", "ACUÑA", true},
		{"Los Angeles Dodgers", "dodgers", true},
		{"Los Angeles Dodgers", "giants", false},
		{"Anyone", "", true},
	}

	for _, tt := range tests {
		if got := names.Matches(tt.name, tt.query); got != tt.want {
			t.Errorf("Matches(%q, %q) = %v, want %v", tt.name, tt.query, got, tt.want)
		}
	}
}
