package ports

import (
	"errors"
	"fmt"
)

// Common infrastructure errors that can occur while loading inputs or
// exporting results.
var (
	// ErrConfigNotFound indicates that required configuration is missing.
	ErrConfigNotFound = errors.New("configuration not found")

	// ErrInvalidSnapshot indicates that a snapshot document could not be
	// decoded or failed field validation.
	ErrInvalidSnapshot = errors.New("invalid snapshot")

	// ErrUnsupportedFormat indicates a file extension no loader understands.
	ErrUnsupportedFormat = errors.New("unsupported format")

	// ErrDuplicateEvaluator indicates a second evaluator registered for a
	// criterion that already has one.
	ErrDuplicateEvaluator = errors.New("duplicate evaluator")

	// ErrEvaluatorNotFound indicates that no evaluator is registered for a criterion.
	ErrEvaluatorNotFound = errors.New("evaluator not found")
)

// SnapshotError represents a failure to load a snapshot document.
type SnapshotError struct {
	// Source is the path or name of the snapshot document.
	Source string

	// Err is the underlying error.
	Err error
}

// Error implements the error interface for SnapshotError.
func (e *SnapshotError) Error() string {
	return fmt.Sprintf("snapshot error: source=%s, err=%v", e.Source, e.Err)
}

// Unwrap returns the underlying error.
func (e *SnapshotError) Unwrap() error { return e.Err }

// NewSnapshotError creates a new SnapshotError with the given details.
func NewSnapshotError(source string, err error) *SnapshotError {
	return &SnapshotError{Source: source, Err: err}
}

// MetricsError represents an error from metrics collection operations.
type MetricsError struct {
	// Metric is the name of the metric that was being collected when the
	// error occurred.
	Metric string

	// Operation is the name of the metrics operation that failed.
	Operation string

	// Err is the underlying error that caused the metrics operation to fail.
	Err error
}

// Error implements the error interface for MetricsError.
func (e *MetricsError) Error() string {
	return fmt.Sprintf("metrics error: operation=%s, metric=%s, err=%v", e.Operation, e.Metric, e.Err)
}

// Unwrap returns the underlying error.
func (e *MetricsError) Unwrap() error { return e.Err }

// NewMetricsError creates a new MetricsError with the given details.
func NewMetricsError(metric, operation string, err error) *MetricsError {
	return &MetricsError{
		Metric:    metric,
		Operation: operation,
		Err:       err,
	}
}

// ConfigError represents an error from configuration operations.
type ConfigError struct {
	// ConfigKey is the configuration key or source that was involved in
	// the failed operation.
	ConfigKey string

	// Err is the underlying error that caused the configuration operation
	// to fail.
	Err error
}

// Error implements the error interface for ConfigError.
func (e *ConfigError) Error() string {
	return fmt.Sprintf("config error: key=%s, err=%v", e.ConfigKey, e.Err)
}

// Unwrap returns the underlying error.
func (e *ConfigError) Unwrap() error { return e.Err }

// NewConfigError creates a new ConfigError with the given details.
func NewConfigError(key string, err error) *ConfigError {
	return &ConfigError{
		ConfigKey: key,
		Err:       err,
	}
}
