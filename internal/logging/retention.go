package logging

import (
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

// PruneRunLogs deletes run logs in dir whose modification time is older than
// retentionDays, skipping the paths in keep. Zero or negative retention keeps
// everything. It returns the number of files removed; failures are logged
// and skipped.
func PruneRunLogs(logger *slog.Logger, dir string, retentionDays int, keep ...string) int {
	if retentionDays <= 0 || dir == "" {
		return 0
	}
	matches, err := filepath.Glob(filepath.Join(dir, runLogPattern))
	if err != nil {
		return 0
	}
	skip := make(map[string]struct{}, len(keep))
	for _, k := range keep {
		skip[filepath.Clean(k)] = struct{}{}
	}

	cutoff := time.Now().AddDate(0, 0, -retentionDays)
	removed := 0
	for _, path := range matches {
		if _, ok := skip[filepath.Clean(path)]; ok {
			continue
		}
		info, err := os.Stat(path)
		if err != nil || info.IsDir() || !info.ModTime().Before(cutoff) {
			continue
		}
		if err := os.Remove(path); err != nil {
			WarnWithContext(logger, "run log not pruned", "log_retention_failed",
				String(FieldFile, path),
				Error(err),
				String(FieldErrorHint, "check permissions on paths.log_dir"),
				String(FieldImpact, "old run log stays on disk"),
			)
			continue
		}
		removed++
	}
	if removed > 0 && logger != nil {
		logger.Debug("run logs pruned", Int("removed", removed), String(FieldEventType, "log_pruned"))
	}
	return removed
}
