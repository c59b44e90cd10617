// Package guardrails validates feature proposals against the studio's
// free-to-play monetization policy.
package guardrails

import (
	"strings"

	"github.com/thirstys/communityforge/internal/feedback"
)

// Guardrail names the policy rule a check enforces.
type Guardrail string

const (
	NoPayToWin          Guardrail = "no_pay_to_win"
	CosmeticOnly        Guardrail = "cosmetic_only"
	NoGameplayAdvantage Guardrail = "no_gameplay_advantage"
	FairProgression     Guardrail = "fair_progression"
	TransparentOdds     Guardrail = "transparent_odds"
	NoLootBoxes         Guardrail = "no_loot_boxes"
	AccessibleContent   Guardrail = "accessible_content"
)

// Result is the outcome of one guardrail check.
type Result struct {
	Passed      bool      `json:"passed"`
	Guardrail   Guardrail `json:"guardrail"`
	Message     string    `json:"message"`
	Suggestions []string  `json:"suggestions,omitempty"`
}

// Checker runs proposals through the full guardrail list. Keyword
// tables are ordered slices so the failure messages are deterministic.
type Checker struct {
	payToWinKeywords  []string
	unfairProgression []string
	lootBoxKeywords   []string
	exclusiveKeywords []string
	allowedTypes      map[string]struct{}
}

// NewChecker creates a checker with the built-in keyword tables. Extra
// pay-to-win keywords from configuration are appended.
func NewChecker(extraPayToWin ...string) *Checker {
	return &Checker{
		payToWinKeywords: append([]string{
			"stat boost", "power boost", "damage increase", "health increase",
			"speed boost", "advantage", "stronger", "faster", "more powerful",
			"exclusive weapon", "exclusive ability", "pay for power",
			"buy advantage", "premium stats", "vip bonus", "skip grind",
			"instant unlock", "pay to skip",
		}, extraPayToWin...),
		unfairProgression: []string{
			"skip grind", "instant unlock", "pay to skip", "faster xp",
		},
		lootBoxKeywords: []string{
			"loot box", "gacha", "mystery box", "random reward box",
		},
		exclusiveKeywords: []string{
			"exclusive", "vip only", "premium only", "paid players only",
		},
		allowedTypes: map[string]struct{}{
			"free": {}, "cosmetic": {}, "qol": {}, "battle_pass": {},
		},
	}
}

// CheckProposal runs all seven guardrails against the proposal and
// returns the individual results. As a side effect the proposal's
// F2PCompliant flag and GuardrailNotes are updated to reflect the
// failing checks.
func (c *Checker) CheckProposal(proposal *feedback.Proposal) []Result {
	results := []Result{
		c.checkPayToWin(proposal),
		c.checkCosmeticOnly(proposal),
		c.checkNoGameplayAdvantage(proposal),
		c.checkFairProgression(proposal),
		c.checkTransparentOdds(proposal),
		c.checkNoLootBoxes(proposal),
		c.checkAccessibleContent(proposal),
	}

	proposal.F2PCompliant = true
	proposal.GuardrailNotes = nil
	for _, result := range results {
		if !result.Passed {
			proposal.F2PCompliant = false
			proposal.GuardrailNotes = append(proposal.GuardrailNotes, result.Message)
		}
	}

	return results
}

func proposalText(proposal *feedback.Proposal) string {
	return strings.ToLower(proposal.Title + " " + proposal.Description)
}

func findKeywords(text string, keywords []string) []string {
	var found []string
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			found = append(found, keyword)
		}
	}
	return found
}

func (c *Checker) checkPayToWin(proposal *feedback.Proposal) Result {
	found := findKeywords(proposalText(proposal), c.payToWinKeywords)
	if len(found) > 0 {
		return Result{
			Passed:    false,
			Guardrail: NoPayToWin,
			Message:   "Pay-to-win indicators found: " + strings.Join(found, ", "),
			Suggestions: []string{
				"Remove any gameplay advantages from paid content",
				"Make all gameplay-affecting content available for free",
				"Convert to cosmetic-only if visual aspect is involved",
			},
		}
	}
	return Result{Passed: true, Guardrail: NoPayToWin, Message: "No pay-to-win mechanics detected"}
}

func (c *Checker) checkCosmeticOnly(proposal *feedback.Proposal) Result {
	if _, ok := c.allowedTypes[proposal.MonetizationType]; !ok {
		return Result{
			Passed:    false,
			Guardrail: CosmeticOnly,
			Message:   "Invalid monetization type: " + proposal.MonetizationType,
			Suggestions: []string{
				"Use 'free', 'cosmetic', 'qol', or 'battle_pass' as monetization type",
				"Ensure any paid content is purely visual or quality-of-life",
			},
		}
	}
	return Result{Passed: true, Guardrail: CosmeticOnly, Message: "Monetization type is acceptable"}
}

func (c *Checker) checkNoGameplayAdvantage(proposal *feedback.Proposal) Result {
	if proposal.MonetizationType == "free" {
		return Result{Passed: true, Guardrail: NoGameplayAdvantage, Message: "Free content - no gameplay advantage concerns"}
	}

	switch proposal.Category {
	case "gameplay", "balance", "combat", "abilities", "weapons":
		return Result{
			Passed:    false,
			Guardrail: NoGameplayAdvantage,
			Message:   "Gameplay-affecting category '" + proposal.Category + "' with paid monetization",
			Suggestions: []string{
				"Make gameplay-affecting features free for all players",
				"Separate visual aspects (can be paid) from functional aspects (must be free)",
			},
		}
	}
	return Result{Passed: true, Guardrail: NoGameplayAdvantage, Message: "No gameplay advantage in paid content"}
}

func (c *Checker) checkFairProgression(proposal *feedback.Proposal) Result {
	found := findKeywords(proposalText(proposal), c.unfairProgression)
	if len(found) > 0 {
		return Result{
			Passed:    false,
			Guardrail: FairProgression,
			Message:   "Unfair progression indicators: " + strings.Join(found, ", "),
			Suggestions: []string{
				"Remove pay-to-skip mechanics",
				"Ensure all players progress at the same rate",
				"Consider cosmetic rewards instead of progression shortcuts",
			},
		}
	}
	return Result{Passed: true, Guardrail: FairProgression, Message: "Progression appears fair for all players"}
}

func (c *Checker) checkTransparentOdds(proposal *feedback.Proposal) Result {
	text := proposalText(proposal)
	hasRandom := strings.Contains(text, "random") || strings.Contains(text, "chance")
	hasDisclosure := strings.Contains(text, "odds") || strings.Contains(text, "probability")
	if hasRandom && !hasDisclosure {
		return Result{
			Passed:    false,
			Guardrail: TransparentOdds,
			Message:   "Random elements detected but no mention of transparent odds",
			Suggestions: []string{
				"Add clear odds disclosure for any random elements",
				"Consider removing random elements entirely",
				"Display exact probabilities to players",
			},
		}
	}
	return Result{Passed: true, Guardrail: TransparentOdds, Message: "No undisclosed random elements"}
}

func (c *Checker) checkNoLootBoxes(proposal *feedback.Proposal) Result {
	found := findKeywords(proposalText(proposal), c.lootBoxKeywords)
	if len(found) > 0 {
		return Result{
			Passed:    false,
			Guardrail: NoLootBoxes,
			Message:   "Loot box mechanics detected: " + strings.Join(found, ", "),
			Suggestions: []string{
				"Replace random rewards with direct purchase options",
				"If randomness is desired, make it free/earnable only",
				"Consider battle pass with guaranteed rewards instead",
			},
		}
	}
	return Result{Passed: true, Guardrail: NoLootBoxes, Message: "No loot box mechanics detected"}
}

func (c *Checker) checkAccessibleContent(proposal *feedback.Proposal) Result {
	found := findKeywords(proposalText(proposal), c.exclusiveKeywords)
	if len(found) > 0 {
		if proposal.MonetizationType == "cosmetic" {
			return Result{Passed: true, Guardrail: AccessibleContent, Message: "Exclusive content is cosmetic-only - acceptable"}
		}
		return Result{
			Passed:    false,
			Guardrail: AccessibleContent,
			Message:   "Non-cosmetic exclusive content detected: " + strings.Join(found, ", "),
			Suggestions: []string{
				"Make gameplay content available to all players",
				"Limit exclusivity to cosmetic items only",
			},
		}
	}
	return Result{Passed: true, Guardrail: AccessibleContent, Message: "Core content appears accessible to all players"}
}

// ProposalValidation is one proposal's entry in a validation summary.
type ProposalValidation struct {
	ProposalTitle string   `json:"proposal_title"`
	F2PCompliant  bool     `json:"f2p_compliant"`
	Checks        []Result `json:"checks"`
}

// ValidationSummary aggregates guardrail results over a proposal batch.
type ValidationSummary struct {
	TotalProposals     int                  `json:"total_proposals"`
	CompliantProposals int                  `json:"compliant_proposals"`
	ComplianceRate     float64              `json:"compliance_rate"`
	Results            []ProposalValidation `json:"results"`
}

// ValidateProposals checks every proposal and returns a summary. An
// empty batch reports a compliance rate of 1.0.
func (c *Checker) ValidateProposals(proposals []*feedback.Proposal) *ValidationSummary {
	summary := &ValidationSummary{
		TotalProposals: len(proposals),
		ComplianceRate: 1.0,
	}

	for _, proposal := range proposals {
		checks := c.CheckProposal(proposal)
		if proposal.F2PCompliant {
			summary.CompliantProposals++
		}
		summary.Results = append(summary.Results, ProposalValidation{
			ProposalTitle: proposal.Title,
			F2PCompliant:  proposal.F2PCompliant,
			Checks:        checks,
		})
	}

	if len(proposals) > 0 {
		summary.ComplianceRate = float64(summary.CompliantProposals) / float64(len(proposals))
	}
	return summary
}
