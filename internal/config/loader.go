package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Load reads and merges configuration from global and project paths.
// Order of precedence (highest to lowest): project config, global
// config, defaults. Missing files are not errors; malformed JSON
// returns an error.
func Load(globalPath, projectPath string) (*Config, error) {
	cfg := DefaultConfig()

	if globalPath != "" {
		if err := mergeConfigFile(cfg, globalPath); err != nil {
			return nil, fmt.Errorf("loading global config: %w", err)
		}
	}

	if projectPath != "" {
		if err := mergeConfigFile(cfg, projectPath); err != nil {
			return nil, fmt.Errorf("loading project config: %w", err)
		}
	}

	return cfg, nil
}

// LoadDefault loads configuration from conventional paths.
// Global: ~/.communityforge/config.json
// Project: .communityforge/config.json (relative to cwd)
func LoadDefault() (*Config, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("getting home directory: %w", err)
	}

	globalPath := filepath.Join(homeDir, ".communityforge", "config.json")
	projectPath := filepath.Join(".communityforge", "config.json")

	return Load(globalPath, projectPath)
}

// mergeConfigFile reads a JSON config file and merges it into the base
// config. Missing files are silently skipped. Malformed JSON returns
// an error. Scalars override when set, source entries merge per key,
// and word lists append.
func mergeConfigFile(base *Config, path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	var loaded Config
	if err := json.Unmarshal(data, &loaded); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}

	if loaded.OutputDir != "" {
		base.OutputDir = loaded.OutputDir
	}
	if loaded.StorePath != "" {
		base.StorePath = loaded.StorePath
	}
	if loaded.LimitPerSource > 0 {
		base.LimitPerSource = loaded.LimitPerSource
	}
	if loaded.BranchPrefix != "" {
		base.BranchPrefix = loaded.BranchPrefix
	}

	for key, source := range loaded.Sources {
		base.Sources[key] = source
	}

	base.Lexicon.ExtraPositiveWords = append(base.Lexicon.ExtraPositiveWords, loaded.Lexicon.ExtraPositiveWords...)
	base.Lexicon.ExtraNegativeWords = append(base.Lexicon.ExtraNegativeWords, loaded.Lexicon.ExtraNegativeWords...)
	base.Guardrails.ExtraPayToWinKeywords = append(base.Guardrails.ExtraPayToWinKeywords, loaded.Guardrails.ExtraPayToWinKeywords...)

	if len(loaded.DisabledRoles) > 0 {
		base.DisabledRoles = loaded.DisabledRoles
	}

	return nil
}
