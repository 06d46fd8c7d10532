// Package cache maintains the derived cache artifacts that longer-lived
// consumers write next to the datasets. The resolver itself never reads or
// writes this cache; sweeping is a standalone maintenance job.
package cache

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/harvestline/agrodata/internal/observability"
)

// ArtifactSuffix is the fixed naming pattern for derived cache files.
const ArtifactSuffix = "_cache.json"

// Sweeper enumerates and removes cache artifacts under a single directory.
type Sweeper struct {
	dir     string
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewSweeper creates a Sweeper over dir.
func NewSweeper(dir string, logger *slog.Logger, metrics *observability.Metrics) *Sweeper {
	return &Sweeper{dir: dir, logger: logger, metrics: metrics}
}

// Artifacts lists the cache files currently on disk, by base name. A missing
// or unreadable directory yields an empty list.
func (s *Sweeper) Artifacts() []string {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ArtifactSuffix) {
			names = append(names, e.Name())
		}
	}
	return names
}

// Sweep deletes every cache artifact and returns the number actually
// removed. Per-file failures are logged and swallowed; Sweep never fails.
func (s *Sweeper) Sweep() int {
	removed := 0
	for _, name := range s.Artifacts() {
		if err := os.Remove(filepath.Join(s.dir, name)); err != nil {
			s.logger.Warn("cache artifact removal failed", "file", name, "error", err)
			continue
		}
		removed++
	}
	if removed > 0 {
		s.metrics.CacheFilesRemoved.Add(float64(removed))
		s.logger.Info("cache swept", "dir", s.dir, "removed", removed)
	}
	return removed
}
