package drafting

import (
	"strings"
	"testing"

	"github.com/thirstys/communityforge/internal/feedback"
)

func sampleProposal() *feedback.Proposal {
	return &feedback.Proposal{
		Title:            "Community-Requested: Enhanced Cosmetics",
		Description:      "More skins based on community feedback.",
		SourceInsights:   []string{"123", "456"},
		Category:         "cosmetics",
		MonetizationType: "cosmetic",
		Priority:         0.85,
		F2PCompliant:     true,
	}
}

func TestPriorityLevel(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{0.95, "critical"},
		{0.9, "critical"},
		{0.7, "high"},
		{0.5, "medium"},
		{0.4, "medium"},
		{0.1, "low"},
		{0.0, "low"},
	}

	for _, tt := range tests {
		if got := priorityLevel(tt.score); got != tt.want {
			t.Errorf("priorityLevel(%v) = %q, want %q", tt.score, got, tt.want)
		}
	}
}

func TestSuggestMilestone(t *testing.T) {
	tests := []struct {
		priority float64
		want     string
	}{
		{0.9, "Next Release"},
		{0.8, "Next Release"},
		{0.6, "Backlog - High Priority"},
		{0.3, "Backlog"},
	}

	for _, tt := range tests {
		if got := suggestMilestone(tt.priority); got != tt.want {
			t.Errorf("suggestMilestone(%v) = %q, want %q", tt.priority, got, tt.want)
		}
	}
}

func TestDraftFromProposal(t *testing.T) {
	drafter := NewIssueDrafter()
	issue := drafter.DraftFromProposal(sampleProposal())

	if issue.Title != "[Feature] Community-Requested: Enhanced Cosmetics" {
		t.Errorf("title = %q", issue.Title)
	}
	if issue.Priority != "high" {
		t.Errorf("priority = %q, want high", issue.Priority)
	}
	if issue.Milestone != "Next Release" {
		t.Errorf("milestone = %q, want Next Release", issue.Milestone)
	}

	wantLabels := []string{"community-driven", "auto-generated", "enhancement", "cosmetics", "f2p-approved"}
	if len(issue.Labels) != len(wantLabels) {
		t.Fatalf("labels = %v, want %v", issue.Labels, wantLabels)
	}
	for i, label := range wantLabels {
		if issue.Labels[i] != label {
			t.Errorf("label[%d] = %q, want %q", i, issue.Labels[i], label)
		}
	}

	if !strings.Contains(issue.Body, "2 community inputs") {
		t.Errorf("body should count source insights:\n%s", issue.Body)
	}
	if !strings.Contains(issue.Body, "## Acceptance Criteria") {
		t.Error("body missing acceptance criteria section")
	}
}

func TestDraftFromProposalNonCompliant(t *testing.T) {
	drafter := NewIssueDrafter()
	proposal := sampleProposal()
	proposal.F2PCompliant = false
	proposal.GuardrailNotes = []string{"Pay-to-win indicators found: stat boost"}

	issue := drafter.DraftFromProposal(proposal)

	found := false
	for _, label := range issue.Labels {
		if label == "needs-review" {
			found = true
		}
		if label == "f2p-approved" {
			t.Error("non-compliant proposal should not be f2p-approved")
		}
	}
	if !found {
		t.Errorf("labels = %v, want needs-review", issue.Labels)
	}
	if !strings.Contains(issue.Body, "## Guardrail Notes") {
		t.Error("body missing guardrail notes section")
	}
}

func TestDraftFromInsight(t *testing.T) {
	drafter := NewIssueDrafter()

	tests := []struct {
		name       string
		category   string
		wantPrefix string
		wantLabel  string
	}{
		{"bug", "bug_report", "[Bug]", "bug"},
		{"feature", "feature_request", "[Feature Request]", "enhancement"},
		{"other", "praise", "[Community Feedback]", "feedback"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			insight := &feedback.Insight{
				Source:     "reddit",
				Content:    "something happened",
				Category:   tt.category,
				Sentiment:  0.2,
				Priority:   0.5,
				Engagement: map[string]int{"upvotes": 10},
			}
			issue := drafter.DraftFromInsight(insight)

			if !strings.HasPrefix(issue.Title, tt.wantPrefix) {
				t.Errorf("title = %q, want prefix %q", issue.Title, tt.wantPrefix)
			}
			hasLabel, hasSource := false, false
			for _, label := range issue.Labels {
				if label == tt.wantLabel {
					hasLabel = true
				}
				if label == "source:reddit" {
					hasSource = true
				}
			}
			if !hasLabel || !hasSource {
				t.Errorf("labels = %v", issue.Labels)
			}
		})
	}
}

func TestDraftFromInsightTruncatesTitle(t *testing.T) {
	drafter := NewIssueDrafter()
	insight := &feedback.Insight{
		Source:   "discord",
		Content:  strings.Repeat("word ", 40),
		Category: "praise",
	}

	issue := drafter.DraftFromInsight(insight)
	if !strings.HasSuffix(issue.Title, "...") {
		t.Errorf("long title should be truncated: %q", issue.Title)
	}
	if len(issue.Title) > 110 {
		t.Errorf("title too long: %d chars", len(issue.Title))
	}
}

func TestIssueMarkdown(t *testing.T) {
	issue := &Issue{
		Title:     "[Feature] Test",
		Body:      "body text",
		Labels:    []string{"a", "b"},
		Milestone: "Next Release",
		Priority:  "high",
	}

	md := issue.Markdown()
	for _, want := range []string{"# [Feature] Test", "**Priority:** high", "**Labels:** a, b", "**Milestone:** Next Release", "body text"} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q:\n%s", want, md)
		}
	}
}

func TestIssueReport(t *testing.T) {
	drafter := NewIssueDrafter()

	high := sampleProposal()
	low := sampleProposal()
	low.Priority = 0.2

	issues := drafter.BatchDraft([]*feedback.Proposal{high, low})
	report := drafter.Report(issues)

	if report.TotalIssues != 2 {
		t.Errorf("total = %d, want 2", report.TotalIssues)
	}
	if report.ByPriority["high"] != 1 || report.ByPriority["low"] != 1 {
		t.Errorf("by priority = %v", report.ByPriority)
	}
}
