package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ahrav/go-adgrader/internal/application"
	"github.com/ahrav/go-adgrader/internal/domain"
	"github.com/ahrav/go-adgrader/internal/testutils"
)

func main() {
	var (
		kind       = flag.String("kind", "random", "Snapshot to write: random, sample or neglected")
		count      = flag.Int("count", 1, "Number of random snapshots to generate")
		seed       = flag.Uint64("seed", uint64(time.Now().UnixNano()), "Seed for random snapshots")
		outputPath = flag.String("output", "testdata/snapshots/snapshot.json", "Output file path (.json or .yaml)")
	)
	flag.Parse()

	snaps, err := buildSnapshots(*kind, *count, *seed)
	if err != nil {
		log.Fatal(err)
	}

	format, err := application.FormatForPath(*outputPath)
	if err != nil {
		log.Fatalf("Invalid output path: %v", err)
	}

	written := make([]string, 0, len(snaps))
	for i, snap := range snaps {
		path := numberedPath(*outputPath, i, len(snaps))
		if err := save(path, format, snap); err != nil {
			log.Fatalf("Failed to save snapshot: %v", err)
		}
		written = append(written, path)
	}

	fmt.Printf("Generated %d snapshot(s):\n", len(written))
	for i, path := range written {
		s := snaps[i]
		fmt.Printf("- %s: account %s, %d campaigns, %d keywords\n",
			path, s.Account.ID, s.CampaignTotal(), s.Structure.KeywordCount)
	}
	if *kind == "random" {
		fmt.Printf("\nSeed: %d\n", *seed)
	}
}

func buildSnapshots(kind string, count int, seed uint64) ([]*domain.MetricsSnapshot, error) {
	switch kind {
	case "sample":
		return []*domain.MetricsSnapshot{testutils.SampleSnapshot()}, nil
	case "neglected":
		return []*domain.MetricsSnapshot{testutils.NeglectedSnapshot()}, nil
	case "random":
		if count < 1 {
			return nil, fmt.Errorf("count must be at least 1, got %d", count)
		}
		out := make([]*domain.MetricsSnapshot, count)
		for i := range out {
			out[i] = testutils.GenerateSnapshot(seed + uint64(i))
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unknown snapshot kind %q", kind)
	}
}

// numberedPath appends an index before the extension when more than one
// snapshot is written.
func numberedPath(path string, i, total int) string {
	if total == 1 {
		return path
	}
	ext := filepath.Ext(path)
	return fmt.Sprintf("%s_%03d%s", path[:len(path)-len(ext)], i+1, ext)
}

func save(path, format string, snap *domain.MetricsSnapshot) error {
	var (
		data []byte
		err  error
	)
	switch format {
	case application.FormatYAML:
		data, err = yaml.Marshal(snap)
	default:
		data, err = json.MarshalIndent(snap, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
