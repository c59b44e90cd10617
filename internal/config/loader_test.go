package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing test config: %v", err)
	}
	return path
}

func TestLoadDefaultsOnly(t *testing.T) {
	cfg, err := Load("", "")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.OutputDir != "output" {
		t.Errorf("expected default output dir, got %s", cfg.OutputDir)
	}
	if cfg.LimitPerSource != 50 {
		t.Errorf("expected default limit 50, got %d", cfg.LimitPerSource)
	}
	if len(cfg.Sources) != 3 {
		t.Fatalf("expected 3 default sources, got %d", len(cfg.Sources))
	}
	for _, name := range []string{"reddit", "discord", "steam"} {
		if !cfg.Sources[name].Enabled {
			t.Errorf("source %s should be enabled by default", name)
		}
	}
}

func TestLoadMissingFilesNotError(t *testing.T) {
	cfg, err := Load("/nonexistent/global.json", "/nonexistent/project.json")
	if err != nil {
		t.Fatalf("missing files should not error: %v", err)
	}
	if cfg.OutputDir != "output" {
		t.Error("defaults should survive missing files")
	}
}

func TestLoadMalformedJSON(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "config.json", "{not json")

	if _, err := Load(path, ""); err == nil {
		t.Fatal("expected error for malformed JSON")
	}
}

func TestLoadGlobalOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "config.json", `{
		"output_dir": "artifacts",
		"limit_per_source": 25,
		"sources": {"steam": {"enabled": false}}
	}`)

	cfg, err := Load(path, "")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.OutputDir != "artifacts" {
		t.Errorf("expected artifacts, got %s", cfg.OutputDir)
	}
	if cfg.LimitPerSource != 25 {
		t.Errorf("expected limit 25, got %d", cfg.LimitPerSource)
	}
	if cfg.Sources["steam"].Enabled {
		t.Error("steam should be disabled")
	}
	if !cfg.Sources["reddit"].Enabled {
		t.Error("reddit should remain enabled")
	}
	if cfg.BranchPrefix != "feature/" {
		t.Error("unset scalars should keep defaults")
	}
}

func TestLoadProjectOverridesGlobal(t *testing.T) {
	dir := t.TempDir()
	globalPath := writeConfig(t, dir, "global.json", `{"output_dir": "global-out", "limit_per_source": 10}`)
	projectPath := writeConfig(t, dir, "project.json", `{"output_dir": "project-out"}`)

	cfg, err := Load(globalPath, projectPath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.OutputDir != "project-out" {
		t.Errorf("project config should win, got %s", cfg.OutputDir)
	}
	if cfg.LimitPerSource != 10 {
		t.Errorf("global limit should survive, got %d", cfg.LimitPerSource)
	}
}

func TestLoadAppendsWordLists(t *testing.T) {
	dir := t.TempDir()
	globalPath := writeConfig(t, dir, "global.json", `{
		"lexicon": {"extra_positive_words": ["poggers"]},
		"guardrails": {"extra_pay_to_win_keywords": ["whale bait"]}
	}`)
	projectPath := writeConfig(t, dir, "project.json", `{
		"lexicon": {"extra_positive_words": ["banger"]}
	}`)

	cfg, err := Load(globalPath, projectPath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(cfg.Lexicon.ExtraPositiveWords) != 2 {
		t.Fatalf("expected 2 extra positive words, got %v", cfg.Lexicon.ExtraPositiveWords)
	}
	if cfg.Lexicon.ExtraPositiveWords[0] != "poggers" || cfg.Lexicon.ExtraPositiveWords[1] != "banger" {
		t.Errorf("word lists should append in load order, got %v", cfg.Lexicon.ExtraPositiveWords)
	}
	if len(cfg.Guardrails.ExtraPayToWinKeywords) != 1 {
		t.Errorf("expected 1 extra guardrail keyword, got %v", cfg.Guardrails.ExtraPayToWinKeywords)
	}
}

func TestLoadDisabledRoles(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "config.json", `{"disabled_roles": ["pr_creator"]}`)

	cfg, err := Load(path, "")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(cfg.DisabledRoles) != 1 || cfg.DisabledRoles[0] != "pr_creator" {
		t.Errorf("unexpected disabled roles: %v", cfg.DisabledRoles)
	}
}
