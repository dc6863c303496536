package logging

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestTeeLoggerRespectsEachLevel(t *testing.T) {
	var console, runLog bytes.Buffer
	base := slog.New(newConsoleHandler(&console, slog.LevelWarn, false))
	logger := TeeLogger(base, newJSONHandler(&runLog, slog.LevelDebug, false))

	logger.With(String(FieldRunID, "r1")).Debug("cell graded", String(FieldCut, "C5"))
	logger.Warn("reference file has no candidate")

	if strings.Contains(console.String(), "cell graded") {
		t.Fatalf("console should drop debug lines: %q", console.String())
	}
	if !strings.Contains(console.String(), "WARN reference file has no candidate") {
		t.Fatalf("console missing warning: %q", console.String())
	}
	lines := strings.Split(strings.TrimSpace(runLog.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("run log lines = %d, want 2: %q", len(lines), runLog.String())
	}
	if !strings.Contains(lines[0], `"run_id":"r1"`) || !strings.Contains(lines[0], `"cut":"C5"`) {
		t.Fatalf("run log lost attributes: %s", lines[0])
	}
}

func TestTeeLoggerCollapses(t *testing.T) {
	if _, ok := TeeLogger(nil).Handler().(discardHandler); !ok {
		t.Fatal("expected a discarding logger without handlers")
	}
	var buf bytes.Buffer
	inner := slog.NewJSONHandler(&buf, nil)
	if got := TeeLogger(nil, nil, inner).Handler(); got != inner {
		t.Fatalf("single handler should be used directly, got %T", got)
	}
}

func TestConsoleHandlerGroupsAndQuoting(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(newConsoleHandler(&buf, slog.LevelInfo, false))
	logger.WithGroup("stats").Info("threshold matrix built",
		Int("rows", 4),
		String("file", "umbrales 2024.csv"),
		slog.Group("cells", Int("stored", 6)),
	)

	line := buf.String()
	for _, want := range []string{
		"INFO threshold matrix built",
		"stats.rows=4",
		`stats.file="umbrales 2024.csv"`,
		"stats.cells.stored=6",
	} {
		if !strings.Contains(line, want) {
			t.Fatalf("expected %q in %q", want, line)
		}
	}
}

func TestPruneRunLogs(t *testing.T) {
	dir := t.TempDir()
	old := time.Now().AddDate(0, 0, -10)
	write := func(name string, mtime time.Time) string {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte("{}\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		if err := os.Chtimes(path, mtime, mtime); err != nil {
			t.Fatal(err)
		}
		return path
	}
	stale := write("crudeval-20240101T000000Z.log", old)
	current := write("crudeval-20240102T000000Z.log", old)
	fresh := write("crudeval-20240103T000000Z.log", time.Now())
	other := write("other.log", old)

	if n := PruneRunLogs(NewNop(), dir, 0, current); n != 0 {
		t.Fatalf("zero retention removed %d files", n)
	}
	if n := PruneRunLogs(NewNop(), dir, 7, current); n != 1 {
		t.Fatalf("removed %d files, want 1", n)
	}
	if _, err := os.Stat(stale); !os.IsNotExist(err) {
		t.Fatalf("stale log survived: %v", err)
	}
	for _, path := range []string{current, fresh, other} {
		if _, err := os.Stat(path); err != nil {
			t.Fatalf("%s should survive: %v", filepath.Base(path), err)
		}
	}
}
