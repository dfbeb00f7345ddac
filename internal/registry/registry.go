package registry

import (
	"fmt"
	"sort"

	"github.com/MakanaMakesStuff/TripleParlay/internal/scoring"
)

const (
	WindowMean = "window-mean"
	FirstLast  = "first-last"
)

// Registry manages available trajectory policies
type Registry struct {
	policies map[string]scoring.TrajectoryPolicy
}

// New creates a registry holding both built-in policies
func New() *Registry {
	r := &Registry{
		policies: make(map[string]scoring.TrajectoryPolicy),
	}

	r.Register(scoring.WindowMeanPolicy{})
	r.Register(scoring.FirstLastPolicy{})

	return r
}

// Register adds a policy under its own name, replacing any previous one
func (r *Registry) Register(policy scoring.TrajectoryPolicy) {
	r.policies[policy.Name()] = policy
}

// Get retrieves a policy by name
func (r *Registry) Get(name string) (scoring.TrajectoryPolicy, error) {
	policy, ok := r.policies[name]
	if !ok {
		return nil, fmt.Errorf("trajectory policy not found: %s", name)
	}
	return policy, nil
}

// MustGet is Get for names known at compile time
func (r *Registry) MustGet(name string) scoring.TrajectoryPolicy {
	policy, err := r.Get(name)
	if err != nil {
		panic(err)
	}
	return policy
}

// Names returns every registered policy name, sorted
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.policies))
	for name := range r.policies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
