// Package ports defines the core interfaces that form the contract between
// the domain/application layers and the infrastructure layer.
// These interfaces enable dependency inversion and make the system testable.
package ports

import (
	"context"

	"github.com/ahrav/go-adgrader/internal/domain"
)

// CriterionEvaluator scores one criterion of one category.
// Evaluators are pure: the result depends only on the snapshot and the
// configuration, and implementations hold no mutable state, so the grader
// may call them concurrently and in any order.
type CriterionEvaluator interface {
	// Category returns the category the criterion belongs to.
	Category() domain.CategoryKey

	// Criterion returns the criterion this evaluator scores.
	Criterion() domain.CriterionKey

	// Evaluate scores the criterion. It must return a finite score in
	// [0,100] for any snapshot, treating missing figures as zero.
	// The context carries tracing information only; evaluators do no I/O.
	//
	// Example:
	//
	//	res, err := ev.Evaluate(ctx, snapshot, cfg)
	//	if err != nil {
	//	    return fmt.Errorf("criterion %s failed: %w", ev.Criterion(), err)
	//	}
	Evaluate(ctx context.Context, snapshot *domain.MetricsSnapshot, cfg domain.Config) (domain.CriterionResult, error)
}

// EvaluatorMiddleware wraps an evaluator with cross-cutting behavior such
// as tracing or metrics. Middleware must not change the result.
type EvaluatorMiddleware func(CriterionEvaluator) CriterionEvaluator

// EvaluatorRegistry resolves criterion keys to evaluators.
type EvaluatorRegistry interface {
	// Register adds an evaluator. It fails with ErrDuplicateEvaluator when
	// the criterion already has one.
	Register(ev CriterionEvaluator) error

	// Lookup returns the evaluator for key and whether one is registered.
	Lookup(key domain.CriterionKey) (CriterionEvaluator, bool)

	// Keys returns the registered criterion keys in sorted order.
	Keys() []domain.CriterionKey
}
