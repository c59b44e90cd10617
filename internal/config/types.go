// Package config loads and merges agent configuration from global and
// project-level JSON files.
package config

// SourceConfig controls one community feedback source.
type SourceConfig struct {
	Enabled bool `json:"enabled"`
	Limit   int  `json:"limit,omitempty"` // per-source override of LimitPerSource
}

// LexiconConfig extends the built-in analysis vocabulary.
type LexiconConfig struct {
	ExtraPositiveWords []string `json:"extra_positive_words,omitempty"`
	ExtraNegativeWords []string `json:"extra_negative_words,omitempty"`
}

// GuardrailConfig extends the built-in F2P guardrail keywords.
type GuardrailConfig struct {
	ExtraPayToWinKeywords []string `json:"extra_pay_to_win_keywords,omitempty"`
}

// Config is the top-level agent configuration.
type Config struct {
	OutputDir      string                  `json:"output_dir"`       // artifact directory
	StorePath      string                  `json:"store_path"`       // run history database
	LimitPerSource int                     `json:"limit_per_source"` // default fetch cap per source
	BranchPrefix   string                  `json:"branch_prefix"`    // PR branch prefix
	Sources        map[string]SourceConfig `json:"sources"`
	Lexicon        LexiconConfig           `json:"lexicon"`
	Guardrails     GuardrailConfig         `json:"guardrails"`
	DisabledRoles  []string                `json:"disabled_roles,omitempty"` // roles skipped at pipeline creation
}
