package domain

import (
	"errors"
	"fmt"
)

// Common domain errors that can occur during grading operations.
var (
	// ErrPrecondition indicates that the grading entry point received input
	// it cannot grade at all.
	ErrPrecondition = errors.New("precondition violated")

	// ErrNilSnapshot indicates that no snapshot was supplied.
	ErrNilSnapshot = fmt.Errorf("%w: metrics snapshot is nil", ErrPrecondition)

	// ErrEmptySnapshot indicates that the snapshot carries no data at all,
	// which means the collector failed upstream.
	ErrEmptySnapshot = fmt.Errorf("%w: metrics snapshot is empty", ErrPrecondition)

	// ErrUnsupportedSchema indicates a snapshot schema version this engine does not read.
	ErrUnsupportedSchema = errors.New("unsupported snapshot schema version")

	// ErrInvalidConfiguration indicates that configuration is invalid or incomplete.
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrEvaluatorFault indicates that a criterion evaluator panicked, returned
	// an error, or produced a score outside [0,100].
	ErrEvaluatorFault = errors.New("evaluator fault")

	// ErrUnknownCategory indicates a category key that is not part of the catalog.
	ErrUnknownCategory = errors.New("unknown category")
)

// EvaluatorFaultError records which criterion failed and why.
// The grader converts it into a Warning instead of aborting the run.
type EvaluatorFaultError struct {
	// Category is the category the faulting criterion belongs to.
	Category CategoryKey

	// Criterion is the criterion whose evaluator failed.
	Criterion CriterionKey

	// Err is the underlying cause (a recovered panic is converted to an error).
	Err error
}

// Error implements the error interface for EvaluatorFaultError.
func (e *EvaluatorFaultError) Error() string {
	return fmt.Sprintf("evaluator fault: category=%s, criterion=%s, err=%v", e.Category, e.Criterion, e.Err)
}

// Unwrap returns the underlying error, supporting Go 1.13+ error unwrapping.
func (e *EvaluatorFaultError) Unwrap() error { return e.Err }

// Is reports ErrEvaluatorFault as a match so callers can test with errors.Is.
func (e *EvaluatorFaultError) Is(target error) bool { return target == ErrEvaluatorFault }

// NewEvaluatorFaultError creates a new EvaluatorFaultError with the given details.
func NewEvaluatorFaultError(category CategoryKey, criterion CriterionKey, err error) *EvaluatorFaultError {
	return &EvaluatorFaultError{
		Category:  category,
		Criterion: criterion,
		Err:       err,
	}
}

// ValidationError represents an error that occurred during validation.
// It can contain multiple validation failures.
type ValidationError struct {
	// Entity is the name of the entity that failed validation.
	Entity string

	// Errors contains the list of validation error messages.
	Errors []string
}

// Error implements the error interface for ValidationError.
func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation error for %s: %s", e.Entity, e.Errors[0])
	}
	return fmt.Sprintf("validation errors for %s: %v", e.Entity, e.Errors)
}

// Unwrap ties every ValidationError to ErrInvalidConfiguration.
func (e *ValidationError) Unwrap() error { return ErrInvalidConfiguration }

// AddError adds a new error message to the validation error.
func (e *ValidationError) AddError(msg string) { e.Errors = append(e.Errors, msg) }

// AddErrorf adds a formatted error message to the validation error.
func (e *ValidationError) AddErrorf(format string, args ...any) {
	e.AddError(fmt.Sprintf(format, args...))
}

// HasErrors returns true if there are any validation errors.
func (e *ValidationError) HasErrors() bool { return len(e.Errors) > 0 }

// ErrOrNil returns the ValidationError when it holds messages and nil otherwise.
func (e *ValidationError) ErrOrNil() error {
	if e.HasErrors() {
		return e
	}
	return nil
}

// NewValidationError creates a new ValidationError for the given entity.
func NewValidationError(entity string) *ValidationError {
	return &ValidationError{
		Entity: entity,
		Errors: make([]string, 0),
	}
}
