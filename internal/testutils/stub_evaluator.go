package testutils

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/ahrav/go-adgrader/internal/domain"
	"github.com/ahrav/go-adgrader/internal/ports"
)

// StubEvaluator implements ports.CriterionEvaluator with a fixed outcome.
// It returns Score and Recommendations unless Err is set or Panic is true.
type StubEvaluator struct {
	Cat             domain.CategoryKey
	Crit            domain.CriterionKey
	Score           float64
	Recommendations []domain.Recommendation
	Err             error
	Panic           bool

	calls atomic.Int64
}

var _ ports.CriterionEvaluator = (*StubEvaluator)(nil)

// Category implements ports.CriterionEvaluator.
func (s *StubEvaluator) Category() domain.CategoryKey { return s.Cat }

// Criterion implements ports.CriterionEvaluator.
func (s *StubEvaluator) Criterion() domain.CriterionKey { return s.Crit }

// Evaluate implements ports.CriterionEvaluator.
func (s *StubEvaluator) Evaluate(context.Context, *domain.MetricsSnapshot, domain.Config) (domain.CriterionResult, error) {
	s.calls.Add(1)
	if s.Panic {
		panic(fmt.Sprintf("stub evaluator %s panicked", s.Crit))
	}
	if s.Err != nil {
		return domain.CriterionResult{}, s.Err
	}
	return domain.CriterionResult{
		Key:             s.Crit,
		Score:           s.Score,
		Details:         map[string]any{"stub": true},
		Recommendations: slices.Clone(s.Recommendations),
	}, nil
}

// Calls returns how many times Evaluate ran.
func (s *StubEvaluator) Calls() int64 { return s.calls.Load() }

// StubRegistry is a map-backed ports.EvaluatorRegistry for tests.
type StubRegistry struct {
	mu         sync.RWMutex
	evaluators map[domain.CriterionKey]ports.CriterionEvaluator
}

var _ ports.EvaluatorRegistry = (*StubRegistry)(nil)

// NewStubRegistry returns a registry with a StubEvaluator scoring score for
// every criterion of the default catalog.
func NewStubRegistry(score float64) *StubRegistry {
	r := &StubRegistry{evaluators: make(map[domain.CriterionKey]ports.CriterionEvaluator)}
	for _, def := range domain.DefaultCategories() {
		for _, c := range def.Criteria {
			r.evaluators[c.Key] = &StubEvaluator{Cat: def.Key, Crit: c.Key, Score: score}
		}
	}
	return r
}

// Register implements ports.EvaluatorRegistry.
func (r *StubRegistry) Register(ev ports.CriterionEvaluator) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.evaluators[ev.Criterion()]; ok {
		return fmt.Errorf("%w: %s", ports.ErrDuplicateEvaluator, ev.Criterion())
	}
	r.evaluators[ev.Criterion()] = ev
	return nil
}

// Set installs ev, replacing any evaluator for the same criterion.
func (r *StubRegistry) Set(ev ports.CriterionEvaluator) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.evaluators[ev.Criterion()] = ev
}

// Remove deletes the evaluator for key.
func (r *StubRegistry) Remove(key domain.CriterionKey) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.evaluators, key)
}

// Stub returns the StubEvaluator registered for key, or nil.
func (r *StubRegistry) Stub(key domain.CriterionKey) *StubEvaluator {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, _ := r.evaluators[key].(*StubEvaluator)
	return s
}

// Lookup implements ports.EvaluatorRegistry.
func (r *StubRegistry) Lookup(key domain.CriterionKey) (ports.CriterionEvaluator, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ev, ok := r.evaluators[key]
	return ev, ok
}

// Keys implements ports.EvaluatorRegistry.
func (r *StubRegistry) Keys() []domain.CriterionKey {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Sorted(maps.Keys(r.evaluators))
}
