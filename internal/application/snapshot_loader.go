package application

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ahrav/go-adgrader/internal/domain"
	"github.com/ahrav/go-adgrader/internal/ports"
)

// Verify interface compliance at compile time.
var _ ports.SnapshotLoader = (*SnapshotLoader)(nil)

// Snapshot document formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// SnapshotLoader decodes collector snapshots from JSON or YAML. Decoding is
// strict: unknown fields, out-of-range values and unsupported schema
// versions are rejected with an error matching ports.ErrInvalidSnapshot.
type SnapshotLoader struct{}

// NewSnapshotLoader creates a snapshot loader.
func NewSnapshotLoader() *SnapshotLoader { return &SnapshotLoader{} }

// FormatForPath maps a file extension to a snapshot format.
func FormatForPath(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q", ports.ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// LoadFromFile decodes the snapshot at path, choosing the format from its
// extension.
func (sl *SnapshotLoader) LoadFromFile(ctx context.Context, path string) (*domain.MetricsSnapshot, error) {
	cleanPath := filepath.Clean(path)

	format, err := FormatForPath(cleanPath)
	if err != nil {
		return nil, ports.NewSnapshotError(cleanPath, err)
	}

	f, err := os.Open(cleanPath)
	if err != nil {
		return nil, ports.NewSnapshotError(cleanPath, fmt.Errorf("failed to open file: %w", err))
	}
	defer f.Close()

	snap, err := sl.decode(ctx, f, format)
	if err != nil {
		return nil, ports.NewSnapshotError(cleanPath, err)
	}
	return snap, nil
}

// LoadFromReader decodes a snapshot in the given format.
func (sl *SnapshotLoader) LoadFromReader(ctx context.Context, r io.Reader, format string) (*domain.MetricsSnapshot, error) {
	snap, err := sl.decode(ctx, r, format)
	if err != nil {
		return nil, ports.NewSnapshotError("reader", err)
	}
	return snap, nil
}

func (sl *SnapshotLoader) decode(ctx context.Context, r io.Reader, format string) (*domain.MetricsSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	var snap domain.MetricsSnapshot
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&snap); err != nil {
			return nil, fmt.Errorf("%w: JSON decode failed: %w", ports.ErrInvalidSnapshot, err)
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&snap); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: YAML decode failed: %w", ports.ErrInvalidSnapshot, err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ports.ErrUnsupportedFormat, format)
	}

	if err := ValidateSnapshot(&snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

// ValidateSnapshot checks field ranges and the schema version.
func ValidateSnapshot(snap *domain.MetricsSnapshot) error {
	if snap == nil {
		return domain.ErrNilSnapshot
	}
	if v := snap.SchemaVersion; v != "" && v != domain.CurrentSchemaVersion {
		return fmt.Errorf("%w: %w: %q", ports.ErrInvalidSnapshot, domain.ErrUnsupportedSchema, v)
	}

	v, err := validate()
	if err != nil {
		return err
	}
	if err := v.Struct(snap); err != nil {
		verr := domain.NewValidationError("snapshot")
		collectFieldErrors(verr, err)
		return fmt.Errorf("%w: %s", ports.ErrInvalidSnapshot, strings.Join(verr.Errors, "; "))
	}
	return nil
}
