package check

import (
	"fmt"
	"sort"

	"github.com/nitmir/check-opnsense/pkg/models/domain"
)

// CheckerFactory creates a Checker bound to an API client
type CheckerFactory func(client APIClient) Checker

// Registry manages check mode factories
type Registry interface {
	// Register adds a new check mode factory
	Register(mode domain.Mode, factory CheckerFactory) error
	// Create instantiates the checker for the specified mode
	Create(mode domain.Mode, client APIClient) (Checker, error)
	// ListModes returns the registered modes in sorted order
	ListModes() []domain.Mode
}

type registry struct {
	factories map[domain.Mode]CheckerFactory
}

// NewRegistry creates an empty registry
func NewRegistry() Registry {
	return &registry{
		factories: make(map[domain.Mode]CheckerFactory),
	}
}

// NewDefaultRegistry creates a registry with every built-in mode
func NewDefaultRegistry() Registry {
	r := NewRegistry()
	_ = r.Register(domain.ModeUpdates, NewUpdatesChecker)
	_ = r.Register(domain.ModeServices, NewServicesChecker)
	_ = r.Register(domain.ModeSystem, NewSystemChecker)
	return r
}

func (r *registry) Register(mode domain.Mode, factory CheckerFactory) error {
	if mode == "" {
		return fmt.Errorf("mode name cannot be empty")
	}
	if factory == nil {
		return fmt.Errorf("factory cannot be nil")
	}

	if _, exists := r.factories[mode]; exists {
		return fmt.Errorf("mode %q is already registered", mode)
	}

	r.factories[mode] = factory
	return nil
}

func (r *registry) Create(mode domain.Mode, client APIClient) (Checker, error) {
	factory, exists := r.factories[mode]
	if !exists {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}

	return factory(client), nil
}

func (r *registry) ListModes() []domain.Mode {
	modes := make([]domain.Mode, 0, len(r.factories))
	for mode := range r.factories {
		modes = append(modes, mode)
	}
	sort.Slice(modes, func(i, j int) bool { return modes[i] < modes[j] })
	return modes
}
