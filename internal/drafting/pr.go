package drafting

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/thirstys/communityforge/internal/feedback"
)

// PR is a drafted GitHub pull request.
type PR struct {
	Title         string    `json:"title"`
	Body          string    `json:"body"`
	Labels        []string  `json:"labels"`
	Reviewers     []string  `json:"reviewers"`
	BaseBranch    string    `json:"base_branch"`
	HeadBranch    string    `json:"head_branch"`
	RelatedIssues []int     `json:"related_issues"`
	CreatedAt     time.Time `json:"created_at"`
}

// Markdown renders the PR as a standalone preview document.
func (p *PR) Markdown() string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", p.Title)
	fmt.Fprintf(&b, "**Base Branch:** %s\n", p.BaseBranch)
	fmt.Fprintf(&b, "**Head Branch:** %s\n", p.HeadBranch)
	labels := "None"
	if len(p.Labels) > 0 {
		labels = strings.Join(p.Labels, ", ")
	}
	fmt.Fprintf(&b, "**Labels:** %s\n", labels)
	if len(p.RelatedIssues) > 0 {
		refs := make([]string, 0, len(p.RelatedIssues))
		for _, issue := range p.RelatedIssues {
			refs = append(refs, fmt.Sprintf("#%d", issue))
		}
		fmt.Fprintf(&b, "**Related Issues:** %s\n", strings.Join(refs, ", "))
	}
	b.WriteString("\n---\n\n")
	b.WriteString(p.Body)
	return b.String()
}

// PRGenerator creates PR drafts from proposals and run summaries.
type PRGenerator struct {
	branchPrefix   string
	defaultLabels  []string
	categoryLabels map[string][]string
}

// NewPRGenerator creates a generator. Branch names are prefixed with
// branchPrefix ("feature/" when empty).
func NewPRGenerator(branchPrefix string) *PRGenerator {
	if branchPrefix == "" {
		branchPrefix = "feature/"
	}
	return &PRGenerator{
		branchPrefix:  branchPrefix,
		defaultLabels: []string{"auto-generated", "needs-review"},
		categoryLabels: map[string][]string{
			"customization": {"enhancement", "customization"},
			"cosmetics":     {"enhancement", "cosmetics"},
			"social":        {"enhancement", "social"},
			"events":        {"enhancement", "events"},
			"progression":   {"enhancement", "gameplay"},
			"performance":   {"optimization", "performance"},
			"balance":       {"balance", "gameplay"},
			"content":       {"content", "enhancement"},
		},
	}
}

// GenerateFromProposal creates a PR draft for one proposal.
func (g *PRGenerator) GenerateFromProposal(proposal *feedback.Proposal, relatedIssues []int) *PR {
	labels := append([]string{}, g.defaultLabels...)
	category, ok := g.categoryLabels[proposal.Category]
	if !ok {
		category = []string{"enhancement"}
	}
	labels = append(labels, category...)
	if proposal.F2PCompliant {
		labels = append(labels, "f2p-approved")
	}

	return &PR{
		Title:         fmt.Sprintf("feat(%s): %s", proposal.Category, proposal.Title),
		Body:          proposalPRBody(proposal, relatedIssues),
		Labels:        labels,
		BaseBranch:    "main",
		HeadBranch:    g.branchName(proposal),
		RelatedIssues: relatedIssues,
		CreatedAt:     time.Now().UTC(),
	}
}

// GenerateAgentRunPR creates one PR covering a whole pipeline run.
func (g *PRGenerator) GenerateAgentRunPR(runStats RunStats, proposals []*feedback.Proposal) *PR {
	labels := []string{"agent-generated", "needs-review"}
	allCompliant := true
	for _, proposal := range proposals {
		if !proposal.F2PCompliant {
			allCompliant = false
			break
		}
	}
	if allCompliant && len(proposals) > 0 {
		labels = append(labels, "f2p-approved")
	}

	return &PR{
		Title:      fmt.Sprintf("feat: Agent-generated proposals (%d features)", len(proposals)),
		Body:       agentRunBody(runStats, proposals),
		Labels:     labels,
		BaseBranch: "main",
		HeadBranch: fmt.Sprintf("%sagent-run-%s", g.branchPrefix, time.Now().UTC().Format("20060102-150405")),
		CreatedAt:  time.Now().UTC(),
	}
}

// BatchGenerate drafts one PR per proposal, preserving order.
func (g *PRGenerator) BatchGenerate(proposals []*feedback.Proposal) []*PR {
	prs := make([]*PR, 0, len(proposals))
	for _, proposal := range proposals {
		prs = append(prs, g.GenerateFromProposal(proposal, nil))
	}
	return prs
}

// branchName derives feature/<category>/<slug> from the proposal
// title, slug capped at 40 characters.
func (g *PRGenerator) branchName(proposal *feedback.Proposal) string {
	var cleaned strings.Builder
	for _, r := range strings.ToLower(proposal.Title) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == ' ' {
			cleaned.WriteRune(r)
		}
	}
	slug := strings.Join(strings.Fields(cleaned.String()), "-")
	if len(slug) > 40 {
		slug = slug[:40]
	}
	return g.branchPrefix + proposal.Category + "/" + slug
}

// RunStats is the subset of a run summary rendered into an agent-run
// PR body.
type RunStats struct {
	TotalInsights int
	AvgSentiment  float64
	Sources       []string
}

func proposalPRBody(proposal *feedback.Proposal, relatedIssues []int) string {
	compliance := "Yes"
	if !proposal.F2PCompliant {
		compliance = "Needs Review"
	}

	var b strings.Builder
	fmt.Fprintf(&b, `## Description

%s

## Feature Details

| Attribute | Value |
|-----------|-------|
| Category | %s |
| Priority | %.2f |
| Monetization | %s |
| F2P Compliant | %s |

`, proposal.Description, proposal.Category, proposal.Priority, proposal.MonetizationType, compliance)

	if len(relatedIssues) > 0 {
		b.WriteString("## Related Issues\n\n")
		for _, issue := range relatedIssues {
			fmt.Fprintf(&b, "- Closes #%d\n", issue)
		}
		b.WriteString("\n")
	}

	if len(proposal.ComparativeNotes) > 0 {
		b.WriteString("## Competitive Analysis Notes\n\n")
		for _, note := range proposal.ComparativeNotes {
			fmt.Fprintf(&b, "- %s\n", note)
		}
		b.WriteString("\n")
	}

	if len(proposal.GuardrailNotes) > 0 {
		b.WriteString("## Guardrail Warnings\n\n")
		for _, note := range proposal.GuardrailNotes {
			fmt.Fprintf(&b, "- %s\n", note)
		}
		b.WriteString("\n")
	}

	b.WriteString(`## Checklist

### Implementation
- [ ] Feature implemented as specified
- [ ] Unit tests added
- [ ] Integration tests added (if applicable)
- [ ] Documentation updated

### F2P Compliance
- [ ] No gameplay advantages for paid content
- [ ] Cosmetic-only monetization verified
- [ ] Fair progression maintained
- [ ] No predatory mechanics

### Review
- [ ] Code reviewed
- [ ] F2P guardrails validated
- [ ] UX reviewed
- [ ] Performance tested

---

*This PR was generated by the Thirsty's Game Studio agent.*
`)
	return b.String()
}

func agentRunBody(stats RunStats, proposals []*feedback.Proposal) string {
	var b strings.Builder
	b.WriteString(`## Agent Run Summary

This PR contains feature proposals generated from community feedback analysis.

### Run Statistics

`)
	fmt.Fprintf(&b, "- **Total Insights Analyzed:** %d\n", stats.TotalInsights)
	fmt.Fprintf(&b, "- **Proposals Generated:** %d\n", len(proposals))
	fmt.Fprintf(&b, "- **Average Sentiment:** %.2f\n", stats.AvgSentiment)
	if len(stats.Sources) > 0 {
		fmt.Fprintf(&b, "- **Sources:** %s\n", strings.Join(stats.Sources, ", "))
	}

	b.WriteString("\n### Proposals\n\n")
	compliant := 0
	for i, proposal := range proposals {
		status := "[needs review]"
		if proposal.F2PCompliant {
			status = "[compliant]"
			compliant++
		}
		fmt.Fprintf(&b, "%d. %s **%s**\n", i+1, status, proposal.Title)
		fmt.Fprintf(&b, "   - Category: %s\n", proposal.Category)
		fmt.Fprintf(&b, "   - Priority: %.2f\n", proposal.Priority)
		fmt.Fprintf(&b, "   - Monetization: %s\n\n", proposal.MonetizationType)
	}

	status := "Some proposals need review"
	if compliant == len(proposals) {
		status = "All proposals are F2P compliant"
	}
	fmt.Fprintf(&b, `
### F2P Compliance

- **Compliant:** %d/%d
- **Status:** %s

## Artifacts

This PR includes:
- `+"`output/community_insights.json`"+` - Raw community insights
- `+"`output/proposals.json`"+` - Generated feature proposals
- `+"`output/latest_run_summary.json`"+` - Full run summary

## Review Checklist

- [ ] All proposals reviewed for F2P compliance
- [ ] Community sentiment verified
- [ ] Proposals prioritized correctly
- [ ] No pay-to-win mechanics
- [ ] Artifacts validated

---

*This PR was auto-generated by the Thirsty's Game Studio agent.*
`, compliant, len(proposals), status)

	return b.String()
}
