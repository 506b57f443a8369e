package core

import (
	"github.com/aretw0/introspection"
)

// StoreState exposes internal state for observability.
type StoreState struct {
	Records int      `json:"records"`
	Files   int      `json:"files"`
	Sets    []string `json:"sets"`
}

// State implements introspection.Introspectable.
func (s *Store) State() any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sets := make([]string, 0, len(s.bySet))
	for name := range s.bySet {
		sets = append(sets, name)
	}

	return StoreState{
		Records: len(s.entries),
		Files:   len(s.byFile),
		Sets:    sets,
	}
}

// ComponentType implements introspection.Component.
func (s *Store) ComponentType() string {
	return "store"
}

var _ introspection.Introspectable = (*Store)(nil)
var _ introspection.Component = (*Store)(nil)
