package sheetio

import (
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"

	"crudeval/internal/grid"
	"crudeval/internal/logging"
)

// Files reads entity and threshold tables from the local file system.
type Files struct {
	logger *slog.Logger
}

// NewFiles returns a file-system table source.
func NewFiles(logger *slog.Logger) *Files {
	return &Files{logger: logging.NewComponentLogger(logger, "sheetio")}
}

// List returns the loadable file names directly under dir, sorted. Hidden
// files, office lock files and unsupported extensions are skipped.
func (f *Files) List(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read directory %s: %w", dir, err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") || strings.HasPrefix(name, "~$") {
			continue
		}
		if !Supported(name) {
			f.logger.Debug("skipping unsupported file",
				logging.String(logging.FieldFile, name),
				logging.String("dir", dir),
			)
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Load reads one table.
func (f *Files) Load(path string) (*grid.Table, error) {
	table, err := Load(path)
	if err != nil {
		return nil, err
	}
	f.logger.Debug("table loaded",
		logging.String(logging.FieldFile, table.Name),
		logging.Int("columns", len(table.Columns)),
		logging.Int("rows", len(table.Rows)),
	)
	return table, nil
}
