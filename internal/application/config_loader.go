package application

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/sync/singleflight"
	"gopkg.in/yaml.v3"

	"github.com/ahrav/go-adgrader/internal/domain"
	"github.com/ahrav/go-adgrader/internal/ports"
)

// Verify interface compliance at compile time.
var _ ports.ConfigLoader = (*ConfigLoader)(nil)

// ConfigLoader parses, validates and caches grading configuration.
// A document is overlaid on domain.DefaultConfig, so it only needs the
// fields it changes. Keys inside category_weights merge with the default
// weights; the merged weights must still sum to 100.
type ConfigLoader struct {
	// cache stores validated configurations indexed by the SHA256 hash of
	// the normalized document.
	cache   map[string]domain.Config
	cacheMu sync.RWMutex
	// sf collapses concurrent loads of the same document.
	sf singleflight.Group
}

// NewConfigLoader creates a loader with an empty cache.
func NewConfigLoader() *ConfigLoader {
	return &ConfigLoader{cache: make(map[string]domain.Config)}
}

// LoadFromFile reads a YAML configuration file.
// A missing file yields an error matching ports.ErrConfigNotFound.
func (cl *ConfigLoader) LoadFromFile(ctx context.Context, path string) (domain.Config, error) {
	cleanPath := filepath.Clean(path)

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.Config{}, ports.NewConfigError(cleanPath, fmt.Errorf("%w: %w", ports.ErrConfigNotFound, err))
		}
		return domain.Config{}, ports.NewConfigError(cleanPath, fmt.Errorf("failed to read file: %w", err))
	}

	cfg, err := cl.load(ctx, data)
	if err != nil {
		return domain.Config{}, ports.NewConfigError(cleanPath, err)
	}
	return cfg, nil
}

// LoadFromReader reads a YAML configuration document from r.
func (cl *ConfigLoader) LoadFromReader(ctx context.Context, r io.Reader) (domain.Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return domain.Config{}, fmt.Errorf("failed to read config: %w", err)
	}
	return cl.load(ctx, data)
}

// load parses and hashes the document, then validates it once per distinct
// content. Every caller receives its own copy.
func (cl *ConfigLoader) load(ctx context.Context, data []byte) (domain.Config, error) {
	if err := ctx.Err(); err != nil {
		return domain.Config{}, err
	}

	cfg, err := cl.parseYAML(data)
	if err != nil {
		return domain.Config{}, fmt.Errorf("failed to parse YAML: %w", err)
	}

	hash, err := cl.calculateConfigHash(cfg)
	if err != nil {
		return domain.Config{}, fmt.Errorf("failed to calculate hash: %w", err)
	}

	v, err, _ := cl.sf.Do(hash, func() (any, error) {
		if cached, ok := cl.getCachedConfig(hash); ok {
			return cached, nil
		}
		if err := ValidateConfig(cfg); err != nil {
			return nil, err
		}
		cl.cacheConfig(hash, cfg)
		return cfg, nil
	})
	if err != nil {
		return domain.Config{}, err
	}

	return v.(domain.Config).Clone(), nil
}

// parseYAML decodes strictly on top of the defaults so that typos in field
// names are reported instead of ignored. An empty document yields the
// defaults unchanged.
func (cl *ConfigLoader) parseYAML(data []byte) (domain.Config, error) {
	cfg := domain.DefaultConfig()
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return domain.Config{}, fmt.Errorf("YAML decode failed: %w", err)
	}
	return cfg, nil
}

// calculateConfigHash hashes the re-encoded configuration, so documents
// that differ only in layout or key order share a cache entry.
func (cl *ConfigLoader) calculateConfigHash(cfg domain.Config) (string, error) {
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)

	if err := encoder.Encode(cfg); err != nil {
		return "", fmt.Errorf("failed to encode config for hashing: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return "", fmt.Errorf("failed to encode config for hashing: %w", err)
	}

	hash := sha256.Sum256(buf.Bytes())
	return hex.EncodeToString(hash[:]), nil
}

func (cl *ConfigLoader) getCachedConfig(hash string) (domain.Config, bool) {
	cl.cacheMu.RLock()
	defer cl.cacheMu.RUnlock()

	cfg, ok := cl.cache[hash]
	return cfg, ok
}

func (cl *ConfigLoader) cacheConfig(hash string, cfg domain.Config) {
	cl.cacheMu.Lock()
	defer cl.cacheMu.Unlock()

	cl.cache[hash] = cfg
}

// ClearCache drops every cached configuration.
func (cl *ConfigLoader) ClearCache() {
	cl.cacheMu.Lock()
	defer cl.cacheMu.Unlock()

	cl.cache = make(map[string]domain.Config)
}

// MarshalConfig renders cfg as YAML in the layout LoadFromReader accepts.
func MarshalConfig(cfg domain.Config) ([]byte, error) {
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(cfg); err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	return buf.Bytes(), nil
}
