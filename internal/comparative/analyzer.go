// Package comparative studies competitor titles to extract feature
// inspiration while flagging mechanics that conflict with the studio's
// free-to-play policy.
package comparative

import (
	"fmt"
	"strings"

	"github.com/thirstys/communityforge/internal/feedback"
)

// CompetitorInsight is one analyzed competitor feature.
type CompetitorInsight struct {
	SourceGame      string   `json:"source_game"`
	FeatureCategory string   `json:"feature_category"`
	Description     string   `json:"description"`
	Pros            []string `json:"pros"`
	Cons            []string `json:"cons"`
	F2PAdaptable    bool     `json:"f2p_adaptable"`
	AdaptationNotes string   `json:"adaptation_notes"`
}

// Analyzer enriches proposals with competitive analysis drawn from a
// curated feature database.
type Analyzer struct {
	features []CompetitorInsight
}

// NewAnalyzer creates an analyzer with the built-in feature database.
func NewAnalyzer() *Analyzer {
	return &Analyzer{features: featureDatabase()}
}

// featureDatabase returns the curated competitor features. A production
// deployment would load these from a data file or API.
func featureDatabase() []CompetitorInsight {
	return []CompetitorInsight{
		{
			SourceGame:      "Age of Origins",
			FeatureCategory: "social",
			Description:     "Alliance/Guild System with territory control",
			Pros:            []string{"Strong social engagement", "Cooperative gameplay", "Long-term retention"},
			Cons:            []string{"Can create power imbalances", "VIP systems give unfair advantages"},
			F2PAdaptable:    true,
			AdaptationNotes: "Implement guild system without pay-to-win territory bonuses. Focus on cosmetic guild customization.",
		},
		{
			SourceGame:      "Age of Origins",
			FeatureCategory: "customization",
			Description:     "Commander/Hero customization and skins",
			Pros:            []string{"High player attachment", "Good monetization potential", "Visual differentiation"},
			Cons:            []string{"Often tied to stat bonuses"},
			F2PAdaptable:    true,
			AdaptationNotes: "Offer cosmetic-only commander skins. Any stat-affecting commanders should be earnable by all.",
		},
		{
			SourceGame:      "Age of Origins",
			FeatureCategory: "events",
			Description:     "Regular seasonal events with exclusive rewards",
			Pros:            []string{"Keeps game fresh", "Engagement spikes", "Community participation"},
			Cons:            []string{"FOMO tactics in limited exclusives", "Event passes can be expensive"},
			F2PAdaptable:    true,
			AdaptationNotes: "Run events with cosmetic rewards. Bring back seasonal items in future. No FOMO pressure.",
		},
		{
			SourceGame:      "Age of Origins",
			FeatureCategory: "progression",
			Description:     "Multiple progression systems (base, heroes, tech)",
			Pros:            []string{"Deep gameplay systems", "Long-term goals", "Varied gameplay"},
			Cons:            []string{"Can be pay-to-progress faster", "Overwhelming complexity"},
			F2PAdaptable:    true,
			AdaptationNotes: "Multiple progression paths but equal time investment for all players. No paid speedups.",
		},
		{
			SourceGame:      "Age of Origins",
			FeatureCategory: "monetization",
			Description:     "VIP system with subscription benefits",
			Pros:            []string{"Predictable revenue", "Player commitment"},
			Cons:            []string{"Creates class divide", "Often includes gameplay advantages"},
			F2PAdaptable:    false,
			AdaptationNotes: "Avoid VIP systems entirely. Use battle pass with purely cosmetic rewards instead.",
		},
		{
			SourceGame:      "Age of Origins",
			FeatureCategory: "content",
			Description:     "Regular content updates with new zones/modes",
			Pros:            []string{"Keeps game fresh", "New challenges", "Returning players"},
			Cons:            []string{"New content can invalidate old progression"},
			F2PAdaptable:    true,
			AdaptationNotes: "Regular free content updates. New content should complement, not replace existing progression.",
		},
	}
}

// InsightsForCategory returns features matching the category name or
// mentioning it in their description.
func (a *Analyzer) InsightsForCategory(category string) []CompetitorInsight {
	lower := strings.ToLower(category)
	var matches []CompetitorInsight
	for _, insight := range a.features {
		if insight.FeatureCategory == category || strings.Contains(strings.ToLower(insight.Description), lower) {
			matches = append(matches, insight)
		}
	}
	return matches
}

// F2PAdaptableInsights returns the features we could adapt without
// violating policy.
func (a *Analyzer) F2PAdaptableInsights() []CompetitorInsight {
	var adaptable []CompetitorInsight
	for _, insight := range a.features {
		if insight.F2PAdaptable {
			adaptable = append(adaptable, insight)
		}
	}
	return adaptable
}

// EnrichProposal appends up to three comparative notes to the
// proposal. Non-adaptable features become explicit avoid warnings.
func (a *Analyzer) EnrichProposal(proposal *feedback.Proposal) *feedback.Proposal {
	relevant := a.InsightsForCategory(proposal.Category)

	if len(relevant) == 0 {
		description := strings.ToLower(proposal.Description)
		for _, insight := range a.features {
			for _, word := range strings.Fields(strings.ToLower(insight.Description)) {
				if strings.Contains(description, word) {
					relevant = append(relevant, insight)
					break
				}
			}
		}
	}

	if len(relevant) > 3 {
		relevant = relevant[:3]
	}
	for _, insight := range relevant {
		var note string
		if insight.F2PAdaptable {
			note = fmt.Sprintf("[%s] %s: %s", insight.SourceGame, insight.FeatureCategory, insight.AdaptationNotes)
		} else {
			note = fmt.Sprintf("[%s] AVOID: %s - not F2P adaptable", insight.SourceGame, insight.Description)
		}
		proposal.ComparativeNotes = append(proposal.ComparativeNotes, note)
	}
	return proposal
}

// EnrichProposals enriches every proposal in order.
func (a *Analyzer) EnrichProposals(proposals []*feedback.Proposal) []*feedback.Proposal {
	for _, proposal := range proposals {
		a.EnrichProposal(proposal)
	}
	return proposals
}

// Recommendation pairs a feature category with how to adapt it.
type Recommendation struct {
	Category       string `json:"category"`
	Recommendation string `json:"recommendation"`
}

// AvoidPattern names a competitor mechanic we deliberately skip.
type AvoidPattern struct {
	Feature string `json:"feature"`
	Reason  string `json:"reason"`
}

// Report is the full competitive analysis summary.
type Report struct {
	TotalInsights   int                 `json:"total_insights"`
	F2PAdaptable    int                 `json:"f2p_adaptable"`
	ToAvoid         int                 `json:"to_avoid"`
	Categories      map[string]int      `json:"categories"`
	Insights        []CompetitorInsight `json:"insights"`
	Recommendations []Recommendation    `json:"recommendations"`
	AvoidPatterns   []AvoidPattern      `json:"avoid_patterns"`
}

// GenerateReport summarizes the feature database.
func (a *Analyzer) GenerateReport() *Report {
	report := &Report{
		TotalInsights: len(a.features),
		Categories:    map[string]int{},
		Insights:      a.features,
	}

	for _, insight := range a.features {
		report.Categories[insight.FeatureCategory]++
		if insight.F2PAdaptable {
			report.F2PAdaptable++
			report.Recommendations = append(report.Recommendations, Recommendation{
				Category:       insight.FeatureCategory,
				Recommendation: insight.AdaptationNotes,
			})
		} else {
			report.ToAvoid++
			report.AvoidPatterns = append(report.AvoidPatterns, AvoidPattern{
				Feature: insight.Description,
				Reason:  strings.Join(insight.Cons, ", "),
			})
		}
	}

	return report
}
