package config

// DefaultConfig returns the default configuration with all community
// sources enabled.
func DefaultConfig() *Config {
	return &Config{
		OutputDir:      "output",
		StorePath:      ".communityforge/history.db",
		LimitPerSource: 50,
		BranchPrefix:   "feature/",
		Sources: map[string]SourceConfig{
			"reddit":  {Enabled: true},
			"discord": {Enabled: true},
			"steam":   {Enabled: true},
		},
	}
}
