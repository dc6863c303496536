package logging_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"crudeval/internal/config"
	"crudeval/internal/logging"
)

func TestNewFromConfigWritesRunLog(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.LogDir = t.TempDir()
	cfg.Logging.Level = "error"

	logger, err := logging.NewFromConfig(&cfg)
	if err != nil {
		t.Fatalf("NewFromConfig returned error: %v", err)
	}
	logger.Error("run failed", logging.String(logging.FieldEntity, "ISA-2024-1"))

	matches, err := filepath.Glob(filepath.Join(cfg.Paths.LogDir, "crudeval-*.log"))
	if err != nil {
		t.Fatalf("glob: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("expected one run log, got %v", matches)
	}
	content, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read run log: %v", err)
	}
	var record map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(content), &record); err != nil {
		t.Fatalf("run log is not JSON: %v (%q)", err, content)
	}
	if record["msg"] != "run failed" || record[logging.FieldEntity] != "ISA-2024-1" {
		t.Fatalf("unexpected run log record: %v", record)
	}
}

func TestNewFromConfigPrunesOldRunLogs(t *testing.T) {
	dir := t.TempDir()
	stale := filepath.Join(dir, "crudeval-20200101T000000Z.log")
	unrelated := filepath.Join(dir, "notes.txt")
	for _, path := range []string{stale, unrelated} {
		if err := os.WriteFile(path, []byte("old"), 0o644); err != nil {
			t.Fatalf("write %s: %v", path, err)
		}
		old := time.Now().AddDate(0, 0, -90)
		if err := os.Chtimes(path, old, old); err != nil {
			t.Fatalf("chtimes: %v", err)
		}
	}

	cfg := config.Default()
	cfg.Paths.LogDir = dir
	cfg.Logging.Level = "error"
	cfg.Logging.RetentionDays = 30
	if _, err := logging.NewFromConfig(&cfg); err != nil {
		t.Fatalf("NewFromConfig returned error: %v", err)
	}

	if _, err := os.Stat(stale); !os.IsNotExist(err) {
		t.Fatalf("expected stale run log to be pruned, stat err=%v", err)
	}
	if _, err := os.Stat(unrelated); err != nil {
		t.Fatalf("expected unrelated file to survive: %v", err)
	}
}

func TestNewFromConfigWithoutLogDir(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.LogDir = ""
	logger, err := logging.NewFromConfig(&cfg)
	if err != nil {
		t.Fatalf("NewFromConfig returned error: %v", err)
	}
	if logger == nil {
		t.Fatal("expected logger instance")
	}
}

func TestRunLogName(t *testing.T) {
	ts := time.Date(2024, 3, 9, 14, 5, 7, 0, time.FixedZone("X", 3600))
	if got, want := logging.RunLogName(ts), "crudeval-20240309T130507Z.log"; got != want {
		t.Fatalf("RunLogName = %q, want %q", got, want)
	}
}

func TestConsoleLoggerOmitsCallerForInfo(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "console", Level: "info", Output: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Info("message without caller")

	if content := buf.String(); strings.Contains(content, ".go:") {
		t.Fatalf("expected no caller information in info logs, got %q", content)
	}
}

func TestConsoleLoggerLiftsComponentAndEntity(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "logs", "console.log")
	logger, err := logging.New(logging.Options{Format: "console", Level: "info", Path: logPath})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	component := logging.NewComponentLogger(logger, "classify")
	component.Info("property classified",
		logging.String(logging.FieldEntity, "RAMS_X"),
		logging.String(logging.FieldProperty, "DENSIDAD"),
		logging.Float64("max_error", 0.25),
	)

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	line := string(content)
	if !strings.Contains(line, "INFO classify [RAMS_X]: property classified") {
		t.Fatalf("expected component/entity prefix, got %q", line)
	}
	if !strings.Contains(line, "property=DENSIDAD") || !strings.Contains(line, "max_error=0.25") {
		t.Fatalf("expected key=value attributes, got %q", line)
	}
	if strings.Contains(line, "component=") || strings.Contains(line, "entity=") {
		t.Fatalf("lifted fields should not be repeated, got %q", line)
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestWarnWithContextInjectsDefaults(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	logging.WarnWithContext(logger, "pairing incomplete", "unpaired_reference",
		logging.String(logging.FieldErrorHint, "add the candidate file"),
	)

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if record[logging.FieldEventType] != "unpaired_reference" {
		t.Fatalf("expected event_type, got %v", record)
	}
	if record[logging.FieldErrorHint] != "add the candidate file" {
		t.Fatalf("expected caller hint to win, got %v", record[logging.FieldErrorHint])
	}
	if _, ok := record[logging.FieldImpact]; !ok {
		t.Fatalf("expected default impact, got %v", record)
	}
}

func TestErrorWithContextNilLogger(t *testing.T) {
	logging.ErrorWithContext(nil, "ignored", "noop")
	logging.WarnWithContext(nil, "ignored", "noop")
}

func TestDecisionAttrs(t *testing.T) {
	attrs := logging.DecisionAttrs("verdict", "RED", "red share above limit")
	if len(attrs) != 3 {
		t.Fatalf("expected 3 attrs, got %d", len(attrs))
	}
	if attrs[0].Key != logging.FieldDecisionType || attrs[1].Value.String() != "RED" {
		t.Fatalf("unexpected attrs: %v", attrs)
	}
}
