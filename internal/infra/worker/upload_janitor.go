package worker

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
)

// UploadJanitor removes staged upload files older than maxAge. Requests
// delete their own files; this only catches files left by a crashed process.
type UploadJanitor struct {
	dir          string
	maxAge       time.Duration
	tickInterval time.Duration
	now          func() time.Time
}

func NewUploadJanitor(dir string) *UploadJanitor {
	return &UploadJanitor{
		dir:          dir,
		maxAge:       1 * time.Hour,
		tickInterval: 10 * time.Minute,
		now:          time.Now,
	}
}

// Start sweeps once immediately, then on every tick until ctx is done.
func (j *UploadJanitor) Start(ctx context.Context) error {
	zap.L().Info("upload janitor started", zap.String("dir", j.dir), zap.Duration("max_age", j.maxAge))

	ticker := time.NewTicker(j.tickInterval)
	defer ticker.Stop()

	j.Sweep()

	for {
		select {
		case <-ctx.Done():
			zap.L().Info("upload janitor stopped")
			return nil
		case <-ticker.C:
			j.Sweep()
		}
	}
}

// Sweep returns the number of files removed.
func (j *UploadJanitor) Sweep() int {
	entries, err := os.ReadDir(j.dir)
	if err != nil {
		if !os.IsNotExist(err) {
			zap.L().Warn("upload janitor: read dir", zap.String("dir", j.dir), zap.Error(err))
		}
		return 0
	}

	cutoff := j.now().Add(-j.maxAge)
	removed := 0
	for _, e := range entries {
		if e.IsDir() || !strings.HasPrefix(e.Name(), "upload-") {
			continue
		}
		info, err := e.Info()
		if err != nil || info.ModTime().After(cutoff) {
			continue
		}
		path := filepath.Join(j.dir, e.Name())
		if err := os.Remove(path); err != nil {
			zap.L().Warn("upload janitor: remove", zap.String("path", path), zap.Error(err))
			continue
		}
		removed++
	}

	if removed > 0 {
		zap.L().Info("upload janitor removed stale files", zap.Int("count", removed))
	}
	return removed
}
