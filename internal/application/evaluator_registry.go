package application

import (
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/ahrav/go-adgrader/infrastructure/evaluators"
	"github.com/ahrav/go-adgrader/internal/domain"
	"github.com/ahrav/go-adgrader/internal/ports"
)

// Verify interface compliance at compile time.
var _ ports.EvaluatorRegistry = (*DefaultEvaluatorRegistry)(nil)

// DefaultEvaluatorRegistry implements the EvaluatorRegistry interface,
// mapping every criterion key to the evaluator that scores it.
// It supports registering custom evaluators alongside the built-in ones.
type DefaultEvaluatorRegistry struct {
	// evaluators maps criterion keys to their evaluator.
	evaluators map[domain.CriterionKey]ports.CriterionEvaluator
	// mu protects concurrent access to the evaluators map.
	mu sync.RWMutex
}

// NewEvaluatorRegistry creates an empty registry.
func NewEvaluatorRegistry() *DefaultEvaluatorRegistry {
	return &DefaultEvaluatorRegistry{
		evaluators: make(map[domain.CriterionKey]ports.CriterionEvaluator),
	}
}

// NewDefaultEvaluatorRegistry creates a registry with an evaluator for
// every criterion of the default catalog pre-registered.
func NewDefaultEvaluatorRegistry() (*DefaultEvaluatorRegistry, error) {
	r := NewEvaluatorRegistry()
	for _, ev := range evaluators.All() {
		if err := r.Register(ev); err != nil {
			return nil, fmt.Errorf("failed to register built-in evaluators: %w", err)
		}
	}
	return r, nil
}

// Register adds an evaluator for its criterion.
// Register returns ports.ErrDuplicateEvaluator when the criterion already
// has one; use Replace to swap an evaluator deliberately.
func (r *DefaultEvaluatorRegistry) Register(ev ports.CriterionEvaluator) error {
	if ev == nil {
		return fmt.Errorf("evaluator cannot be nil")
	}
	if ev.Criterion() == "" {
		return fmt.Errorf("evaluator criterion key cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.evaluators[ev.Criterion()]; exists {
		return fmt.Errorf("%w: %s", ports.ErrDuplicateEvaluator, ev.Criterion())
	}
	r.evaluators[ev.Criterion()] = ev
	return nil
}

// Replace installs ev for its criterion, overwriting any existing evaluator.
func (r *DefaultEvaluatorRegistry) Replace(ev ports.CriterionEvaluator) error {
	if ev == nil {
		return fmt.Errorf("evaluator cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.evaluators[ev.Criterion()] = ev
	return nil
}

// Lookup returns the evaluator registered for key.
func (r *DefaultEvaluatorRegistry) Lookup(key domain.CriterionKey) (ports.CriterionEvaluator, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ev, ok := r.evaluators[key]
	return ev, ok
}

// Keys returns the registered criterion keys in sorted order.
func (r *DefaultEvaluatorRegistry) Keys() []domain.CriterionKey {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Sorted(maps.Keys(r.evaluators))
}
