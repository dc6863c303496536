package testsupport

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"

	"crudeval/internal/grid"
)

// MemorySource serves tables from memory, keyed by path.
type MemorySource struct {
	tables map[string]*grid.Table
	errs   map[string]error
}

// NewMemorySource returns an empty source.
func NewMemorySource() *MemorySource {
	return &MemorySource{
		tables: make(map[string]*grid.Table),
		errs:   make(map[string]error),
	}
}

// Put registers table at path.
func (s *MemorySource) Put(path string, table *grid.Table) *MemorySource {
	s.tables[filepath.Clean(path)] = table
	return s
}

// Fail makes Load(path) return err while List still reports the file.
func (s *MemorySource) Fail(path string, err error) *MemorySource {
	s.errs[filepath.Clean(path)] = err
	return s
}

// List returns the sorted base names registered directly under dir.
func (s *MemorySource) List(dir string) ([]string, error) {
	dir = filepath.Clean(dir)
	seen := make(map[string]struct{})
	var names []string
	add := func(path string) {
		if filepath.Dir(path) != dir {
			return
		}
		name := filepath.Base(path)
		if _, ok := seen[name]; ok {
			return
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	for path := range s.tables {
		add(path)
	}
	for path := range s.errs {
		add(path)
	}
	sort.Strings(names)
	return names, nil
}

// Load returns the table registered at path.
func (s *MemorySource) Load(path string) (*grid.Table, error) {
	path = filepath.Clean(path)
	if err, ok := s.errs[path]; ok {
		return nil, err
	}
	table, ok := s.tables[path]
	if !ok {
		return nil, fmt.Errorf("load %s: %w", path, fs.ErrNotExist)
	}
	return table, nil
}
