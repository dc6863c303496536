package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"crudeval/internal/config"
	"crudeval/internal/testsupport"
)

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
}

func setupCLITestEnv(t *testing.T, opts ...testsupport.ConfigOption) *cliTestEnv {
	t.Helper()

	t.Setenv("HOME", t.TempDir())
	cfg := testsupport.NewConfig(t, opts...)
	cuts := []string{"C1", "C5", "C9"}
	testsupport.WriteTable(t, cfg.Paths.ThresholdFile, testsupport.ThresholdTable())
	testsupport.WriteTable(t, filepath.Join(cfg.Paths.ReferenceDir, "ISA_Maya.csv"), testsupport.EntityTable("ISA_Maya.csv", cuts,
		[]string{"Densidad a 15ºC", "850,0", "860,0", "870,0"},
		[]string{"API", "30", "31", "32"},
	))
	testsupport.WriteTable(t, filepath.Join(cfg.Paths.CandidateDir, "RAMS_Maya.csv"), testsupport.EntityTable("RAMS_Maya.csv", cuts,
		[]string{"Densidad a 15ºC", "850,5", "860,5", "n/d"},
		[]string{"API", "30,2", "31", "34"},
	))
	testsupport.WriteTable(t, filepath.Join(cfg.Paths.ReferenceDir, "ISA_Istmo.csv"), testsupport.EntityTable("ISA_Istmo.csv", cuts,
		[]string{"API", "33", "34", "35"},
	))

	configPath := filepath.Join(testsupport.BaseDir(cfg), "crudeval.toml")
	writeTestConfig(t, configPath, cfg)
	return &cliTestEnv{cfg: cfg, configPath: configPath}
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	data, err := toml.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}

func TestCompareUsesConfiguredPaths(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"compare"}, env.configPath)
	if err != nil {
		t.Fatalf("compare: %v", err)
	}
	requireContains(t, out, "Unpaired reference: ISA_Istmo.csv")
	requireContains(t, out, "MAYA")
	requireContains(t, out, "GLOBAL")
	requireContains(t, out, "RED")
	if strings.Contains(out, "\x1b[") {
		t.Fatalf("non-terminal output should not be coloured: %q", out)
	}

	logs, err := filepath.Glob(filepath.Join(env.cfg.Paths.LogDir, "crudeval-*.log"))
	if err != nil || len(logs) != 1 {
		t.Fatalf("expected one run log, got %v (%v)", logs, err)
	}
}

func TestCompareDetail(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"compare", "--detail"}, env.configPath)
	if err != nil {
		t.Fatalf("compare --detail: %v", err)
	}
	requireContains(t, out, "MAYA (ISA_Maya.csv vs RAMS_Maya.csv)")
	requireContains(t, out, "N/D")
}

func TestCompareJSON(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"compare", "--json"}, env.configPath)
	if err != nil {
		t.Fatalf("compare --json: %v", err)
	}
	var payload struct {
		RunID    string `json:"run_id"`
		Entities []struct {
			Key    string `json:"key"`
			Global string `json:"global"`
		} `json:"entities"`
		Pairing struct {
			UnpairedReferences []string `json:"unpaired_references"`
		} `json:"pairing"`
	}
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		t.Fatalf("decode output: %v\n%s", err, out)
	}
	if payload.RunID == "" {
		t.Fatal("expected run id")
	}
	if len(payload.Entities) != 1 || payload.Entities[0].Key != "MAYA" || payload.Entities[0].Global != "RED" {
		t.Fatalf("entities = %+v", payload.Entities)
	}
	if len(payload.Pairing.UnpairedReferences) != 1 {
		t.Fatalf("unpaired = %v", payload.Pairing.UnpairedReferences)
	}
}

func TestCompareWritesWorkbook(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithOutputFile(filepath.Join("out", "resultado.xlsx")))

	out, _, err := runCLI(t, []string{"compare"}, env.configPath)
	if err != nil {
		t.Fatalf("compare: %v", err)
	}
	requireContains(t, out, "Wrote workbook to "+env.cfg.Paths.OutputFile)
	if _, err := os.Stat(env.cfg.Paths.OutputFile); err != nil {
		t.Fatalf("expected workbook: %v", err)
	}
}

func TestCompareFlagsOverrideConfig(t *testing.T) {
	env := setupCLITestEnv(t)
	output := filepath.Join(t.TempDir(), "flag.xlsx")

	_, _, err := runCLI(t, []string{
		"compare",
		"--reference", env.cfg.Paths.ReferenceDir,
		"--candidate", env.cfg.Paths.CandidateDir,
		"--thresholds", env.cfg.Paths.ThresholdFile,
		"--output", output,
	}, "")
	if err != nil {
		t.Fatalf("compare with flags: %v", err)
	}
	if _, err := os.Stat(output); err != nil {
		t.Fatalf("expected workbook at flag path: %v", err)
	}
}

func TestCompareRequiresInputs(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	cfg := testsupport.NewConfig(t)
	cfg.Paths.ReferenceDir = ""
	path := filepath.Join(testsupport.BaseDir(cfg), "crudeval.toml")
	writeTestConfig(t, path, cfg)

	_, _, err := runCLI(t, []string{"compare"}, path)
	if err == nil {
		t.Fatal("expected error without a reference directory")
	}
	requireContains(t, err.Error(), "reference is required")
}

func TestCompareFailsWithoutPairs(t *testing.T) {
	env := setupCLITestEnv(t)
	empty := t.TempDir()

	_, _, err := runCLI(t, []string{"compare", "--candidate", empty}, env.configPath)
	if err == nil {
		t.Fatal("expected error when nothing pairs")
	}
}

func TestCompareRejectsBadAliasFile(t *testing.T) {
	env := setupCLITestEnv(t)
	aliases := filepath.Join(t.TempDir(), "aliases.yaml")
	if err := os.WriteFile(aliases, []byte("DENSIDAD: [unterminated\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, _, err := runCLI(t, []string{"compare", "--aliases", aliases}, env.configPath)
	if err == nil {
		t.Fatal("expected alias parse error")
	}
	requireContains(t, err.Error(), "alias file")
}

func TestThresholdsCommand(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"thresholds"}, env.configPath)
	if err != nil {
		t.Fatalf("thresholds: %v", err)
	}
	requireContains(t, out, "Thresholds")
	requireContains(t, out, "Qualifying rows: 3 of 4")

	out, _, err = runCLI(t, []string{"thresholds", "--json"}, env.configPath)
	if err != nil {
		t.Fatalf("thresholds --json: %v", err)
	}
	var view thresholdsView
	if err := json.Unmarshal([]byte(out), &view); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(view.Entries) != 6 {
		t.Fatalf("entries = %d, want 6", len(view.Entries))
	}
}

func TestPairCommand(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"pair"}, env.configPath)
	if err != nil {
		t.Fatalf("pair: %v", err)
	}
	requireContains(t, out, "ISA_Maya.csv")
	requireContains(t, out, "RAMS_Maya.csv")
	requireContains(t, out, "Unpaired reference: ISA_Istmo.csv")
}

func TestConfigInitAndValidate(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"config", "validate"}, env.configPath)
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, out, "Configuration valid")
	requireContains(t, out, "classification.tol_heavy")
	requireContains(t, out, "0.6")

	target := filepath.Join(t.TempDir(), "config.toml")
	out, _, err = runCLI(t, []string{"config", "init", "--path", target}, "")
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}

	if _, _, err := runCLI(t, []string{"config", "init", "--path", target}, ""); err == nil {
		t.Fatal("expected error when config exists")
	}
	if _, _, err := runCLI(t, []string{"config", "init", "--path", target, "--overwrite"}, ""); err != nil {
		t.Fatalf("config init --overwrite: %v", err)
	}
}
