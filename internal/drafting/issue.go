// Package drafting turns proposals and insights into GitHub-shaped
// issue and pull request documents.
package drafting

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/thirstys/communityforge/internal/feedback"
)

// Issue is a drafted GitHub issue.
type Issue struct {
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Labels    []string  `json:"labels"`
	Assignees []string  `json:"assignees"`
	Milestone string    `json:"milestone,omitempty"`
	Priority  string    `json:"priority"`
	CreatedAt time.Time `json:"created_at"`
}

// Markdown renders the issue as a standalone preview document.
func (i *Issue) Markdown() string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", i.Title)
	fmt.Fprintf(&b, "**Priority:** %s\n", i.Priority)
	labels := "None"
	if len(i.Labels) > 0 {
		labels = strings.Join(i.Labels, ", ")
	}
	fmt.Fprintf(&b, "**Labels:** %s\n", labels)
	if i.Milestone != "" {
		fmt.Fprintf(&b, "**Milestone:** %s\n", i.Milestone)
	}
	b.WriteString("\n---\n\n")
	b.WriteString(i.Body)
	return b.String()
}

// priorityLevel buckets a [0,1] score into an issue priority label.
func priorityLevel(score float64) string {
	switch {
	case score >= 0.9:
		return "critical"
	case score >= 0.7:
		return "high"
	case score >= 0.4:
		return "medium"
	default:
		return "low"
	}
}

// IssueDrafter converts proposals and insights into issue drafts with
// labels and milestones derived from their scores.
type IssueDrafter struct {
	defaultLabels  []string
	categoryLabels map[string][]string
}

// NewIssueDrafter creates a drafter with the standard label tables.
func NewIssueDrafter() *IssueDrafter {
	return &IssueDrafter{
		defaultLabels: []string{"community-driven", "auto-generated"},
		categoryLabels: map[string][]string{
			"customization": {"enhancement", "customization"},
			"cosmetics":     {"enhancement", "cosmetics"},
			"social":        {"enhancement", "social-features"},
			"events":        {"enhancement", "events"},
			"progression":   {"enhancement", "progression"},
			"performance":   {"bug", "performance"},
			"balance":       {"enhancement", "balance"},
			"content":       {"enhancement", "content"},
			"general":       {"enhancement"},
		},
	}
}

// DraftFromProposal creates an issue draft from a feature proposal.
func (d *IssueDrafter) DraftFromProposal(proposal *feedback.Proposal) *Issue {
	labels := append([]string{}, d.defaultLabels...)
	category, ok := d.categoryLabels[proposal.Category]
	if !ok {
		category = []string{"enhancement"}
	}
	labels = append(labels, category...)
	if proposal.F2PCompliant {
		labels = append(labels, "f2p-approved")
	} else {
		labels = append(labels, "needs-review")
	}

	return &Issue{
		Title:     "[Feature] " + proposal.Title,
		Body:      proposalBody(proposal),
		Labels:    labels,
		Priority:  priorityLevel(proposal.Priority),
		Milestone: suggestMilestone(proposal.Priority),
		CreatedAt: time.Now().UTC(),
	}
}

// DraftFromInsight creates an issue draft from a single insight, used
// for surfacing standout feedback that never became a proposal.
func (d *IssueDrafter) DraftFromInsight(insight *feedback.Insight) *Issue {
	labels := append([]string{}, d.defaultLabels...)
	labels = append(labels, "source:"+insight.Source)

	var prefix string
	switch insight.Category {
	case "bug_report":
		labels = append(labels, "bug")
		prefix = "[Bug]"
	case "feature_request":
		labels = append(labels, "enhancement")
		prefix = "[Feature Request]"
	default:
		labels = append(labels, "feedback")
		prefix = "[Community Feedback]"
	}

	title := insight.Content
	if len(title) > 80 {
		title = title[:80]
		if idx := strings.LastIndex(title, " "); idx > 0 {
			title = title[:idx]
		}
		title += "..."
	}

	return &Issue{
		Title:     prefix + " " + title,
		Body:      insightBody(insight),
		Labels:    labels,
		Priority:  priorityLevel(insight.Priority),
		CreatedAt: time.Now().UTC(),
	}
}

// BatchDraft drafts one issue per proposal, preserving order.
func (d *IssueDrafter) BatchDraft(proposals []*feedback.Proposal) []*Issue {
	issues := make([]*Issue, 0, len(proposals))
	for _, proposal := range proposals {
		issues = append(issues, d.DraftFromProposal(proposal))
	}
	return issues
}

// IssueReport summarizes a batch of drafted issues.
type IssueReport struct {
	TotalIssues int            `json:"total_issues"`
	ByPriority  map[string]int `json:"by_priority"`
	Issues      []*Issue       `json:"issues"`
}

// Report aggregates drafted issues by priority.
func (d *IssueDrafter) Report(issues []*Issue) *IssueReport {
	report := &IssueReport{
		TotalIssues: len(issues),
		ByPriority:  map[string]int{},
		Issues:      issues,
	}
	for _, issue := range issues {
		report.ByPriority[issue.Priority]++
	}
	return report
}

func suggestMilestone(priority float64) string {
	switch {
	case priority >= 0.8:
		return "Next Release"
	case priority >= 0.5:
		return "Backlog - High Priority"
	default:
		return "Backlog"
	}
}

func proposalBody(proposal *feedback.Proposal) string {
	compliance := "Yes"
	if !proposal.F2PCompliant {
		compliance = "No - Needs Review"
	}

	var b strings.Builder
	fmt.Fprintf(&b, `## Summary

%s

## Details

- **Category:** %s
- **Priority Score:** %.2f
- **Monetization Type:** %s
- **F2P Compliant:** %s

## Source

This feature was generated from community feedback analysis.
- **Source Insights:** %d community inputs

`, proposal.Description, proposal.Category, proposal.Priority, proposal.MonetizationType, compliance, len(proposal.SourceInsights))

	if len(proposal.GuardrailNotes) > 0 {
		b.WriteString("## Guardrail Notes\n\n")
		for _, note := range proposal.GuardrailNotes {
			fmt.Fprintf(&b, "- WARNING: %s\n", note)
		}
		b.WriteString("\n")
	}

	if len(proposal.ComparativeNotes) > 0 {
		b.WriteString("## Competitive Analysis\n\n")
		for _, note := range proposal.ComparativeNotes {
			fmt.Fprintf(&b, "- %s\n", note)
		}
		b.WriteString("\n")
	}

	b.WriteString(`## Acceptance Criteria

- [ ] Feature implemented as described
- [ ] F2P guardrails validated
- [ ] No gameplay advantages for paid content
- [ ] Unit tests added
- [ ] Documentation updated

---

*This issue was auto-generated by the Thirsty's Game Studio agent.*
`)
	return b.String()
}

func insightBody(insight *feedback.Insight) string {
	topics := "None identified"
	if len(insight.Topics) > 0 {
		topics = strings.Join(insight.Topics, ", ")
	}

	var b strings.Builder
	fmt.Fprintf(&b, `## Community Feedback

> %s

## Details

- **Source:** %s
- **Category:** %s
- **Sentiment:** %s (%.2f)
- **Priority Score:** %.2f
- **Topics:** %s

## Engagement Metrics

`, insight.Content, insight.Source, insight.Category, sentimentLabel(insight.Sentiment), insight.Sentiment, insight.Priority, topics)

	for _, metric := range sortedKeys(insight.Engagement) {
		fmt.Fprintf(&b, "- **%s:** %d\n", titleWord(metric), insight.Engagement[metric])
	}

	b.WriteString(`
## Next Steps

- [ ] Review feedback validity
- [ ] Determine if actionable
- [ ] Create feature proposal if applicable
- [ ] Respond to community if appropriate

---

*This issue was auto-generated from community feedback by the Thirsty's Game Studio agent.*
`)
	return b.String()
}

func sentimentLabel(sentiment float64) string {
	switch {
	case sentiment >= 0.5:
		return "Positive"
	case sentiment >= 0.0:
		return "Neutral"
	case sentiment >= -0.5:
		return "Slightly Negative"
	default:
		return "Negative"
	}
}

// sortedKeys keeps engagement metric order stable across renders.
func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func titleWord(word string) string {
	if word == "" {
		return word
	}
	return strings.ToUpper(word[:1]) + word[1:]
}
