package registry_test

import (
	"reflect"
	"testing"

	"github.com/MakanaMakesStuff/TripleParlay/internal/registry"
	"github.com/MakanaMakesStuff/TripleParlay/internal/scoring"
)

func TestNew_RegistersBothPolicies(t *testing.T) {
	r := registry.New()

	want := []string{registry.FirstLast, registry.WindowMean}
	if got := r.Names(); !reflect.DeepEqual(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}

	if _, ok := r.MustGet(registry.WindowMean).(scoring.WindowMeanPolicy); !ok {
		t.Error("expected window-mean to resolve to WindowMeanPolicy")
	}
	if _, ok := r.MustGet(registry.FirstLast).(scoring.FirstLastPolicy); !ok {
		t.Error("expected first-last to resolve to FirstLastPolicy")
	}
}

func TestGet_Unknown(t *testing.T) {
	r := registry.New()

	if _, err := r.Get("moving-average"); err == nil {
		t.Error("expected error for unknown policy")
	}
}

type alwaysUp struct{}

func (alwaysUp) Name() string { return registry.WindowMean }

func (alwaysUp) Classify([]scoring.GameRecord, scoring.Windows) scoring.Trajectory {
	return scoring.TrajectoryUp
}

func TestRegister_Replaces(t *testing.T) {
	r := registry.New()
	r.Register(alwaysUp{})

	got := r.MustGet(registry.WindowMean).Classify(nil, scoring.DefaultWindows)
	if got != scoring.TrajectoryUp {
		t.Errorf("expected replaced policy, got %s", got)
	}
}
