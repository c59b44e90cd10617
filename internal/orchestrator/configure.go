package orchestrator

import (
	"github.com/thirstys/communityforge/internal/comparative"
	"github.com/thirstys/communityforge/internal/config"
	"github.com/thirstys/communityforge/internal/drafting"
	"github.com/thirstys/communityforge/internal/feedback"
	"github.com/thirstys/communityforge/internal/guardrails"
)

// DependenciesFromConfig builds the worker collaborators from loaded
// configuration: enabled sources only, extended lexicon and guardrail
// keywords, and the configured branch prefix. Source order is fixed so
// runs stay deterministic.
func DependenciesFromConfig(cfg *config.Config) Dependencies {
	analyzer := feedback.NewAnalyzer(feedback.DefaultLexicon(
		cfg.Lexicon.ExtraPositiveWords,
		cfg.Lexicon.ExtraNegativeWords,
	))

	var sources []feedback.Source
	if cfg.Sources["reddit"].Enabled {
		sources = append(sources, feedback.NewResilientSource(feedback.NewRedditSource()))
	}
	if cfg.Sources["discord"].Enabled {
		sources = append(sources, feedback.NewResilientSource(feedback.NewDiscordSource()))
	}
	if cfg.Sources["steam"].Enabled {
		sources = append(sources, feedback.NewResilientSource(feedback.NewSteamSource()))
	}

	return Dependencies{
		Pipeline:     feedback.NewPipeline(analyzer, sources...),
		Checker:      guardrails.NewChecker(cfg.Guardrails.ExtraPayToWinKeywords...),
		Comparative:  comparative.NewAnalyzer(),
		IssueDrafter: drafting.NewIssueDrafter(),
		PRGenerator:  drafting.NewPRGenerator(cfg.BranchPrefix),
	}
}
