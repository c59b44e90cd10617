package comparative

import (
	"strings"
	"testing"

	"github.com/thirstys/communityforge/internal/feedback"
)

func TestInsightsForCategory(t *testing.T) {
	analyzer := NewAnalyzer()

	tests := []struct {
		category  string
		wantCount int
	}{
		{"social", 1},
		{"customization", 1},
		{"monetization", 1},
		{"nonexistent", 0},
	}

	for _, tt := range tests {
		t.Run(tt.category, func(t *testing.T) {
			got := analyzer.InsightsForCategory(tt.category)
			if len(got) != tt.wantCount {
				t.Errorf("insights for %q = %d, want %d", tt.category, len(got), tt.wantCount)
			}
		})
	}
}

func TestF2PAdaptableInsights(t *testing.T) {
	analyzer := NewAnalyzer()

	adaptable := analyzer.F2PAdaptableInsights()
	if len(adaptable) != 5 {
		t.Errorf("adaptable = %d, want 5", len(adaptable))
	}
	for _, insight := range adaptable {
		if !insight.F2PAdaptable {
			t.Errorf("non-adaptable insight returned: %s", insight.Description)
		}
	}
}

func TestEnrichProposal(t *testing.T) {
	analyzer := NewAnalyzer()

	proposal := &feedback.Proposal{
		Title:       "Community-Requested: Enhanced Social",
		Description: "Guild features",
		Category:    "social",
	}
	analyzer.EnrichProposal(proposal)

	if len(proposal.ComparativeNotes) != 1 {
		t.Fatalf("notes = %d, want 1", len(proposal.ComparativeNotes))
	}
	note := proposal.ComparativeNotes[0]
	if !strings.HasPrefix(note, "[Age of Origins] social:") {
		t.Errorf("note = %q, want adaptation format", note)
	}
}

func TestEnrichProposalAvoidWarning(t *testing.T) {
	analyzer := NewAnalyzer()

	proposal := &feedback.Proposal{
		Title:       "Subscription tier",
		Description: "A VIP subscription",
		Category:    "monetization",
	}
	analyzer.EnrichProposal(proposal)

	if len(proposal.ComparativeNotes) != 1 {
		t.Fatalf("notes = %d, want 1", len(proposal.ComparativeNotes))
	}
	if !strings.Contains(proposal.ComparativeNotes[0], "AVOID:") {
		t.Errorf("note = %q, want avoid warning", proposal.ComparativeNotes[0])
	}
}

func TestEnrichProposalFallsBackToDescription(t *testing.T) {
	analyzer := NewAnalyzer()

	proposal := &feedback.Proposal{
		Title:       "New idea",
		Description: "Something about seasonal rewards",
		Category:    "uncategorized",
	}
	analyzer.EnrichProposal(proposal)

	if len(proposal.ComparativeNotes) == 0 {
		t.Error("description keyword match should still produce notes")
	}
}

func TestEnrichProposalNoteLimit(t *testing.T) {
	analyzer := NewAnalyzer()

	// "system" appears in several feature descriptions.
	proposal := &feedback.Proposal{
		Title:       "Broad proposal",
		Description: "A system with events and progression and content updates and guild customization",
		Category:    "everything",
	}
	analyzer.EnrichProposal(proposal)

	if len(proposal.ComparativeNotes) > 3 {
		t.Errorf("notes = %d, want at most 3", len(proposal.ComparativeNotes))
	}
}

func TestGenerateReport(t *testing.T) {
	analyzer := NewAnalyzer()

	report := analyzer.GenerateReport()

	if report.TotalInsights != 6 {
		t.Errorf("total = %d, want 6", report.TotalInsights)
	}
	if report.F2PAdaptable != 5 || report.ToAvoid != 1 {
		t.Errorf("adaptable/avoid = %d/%d, want 5/1", report.F2PAdaptable, report.ToAvoid)
	}
	if len(report.Recommendations) != 5 {
		t.Errorf("recommendations = %d, want 5", len(report.Recommendations))
	}
	if len(report.AvoidPatterns) != 1 {
		t.Errorf("avoid patterns = %d, want 1", len(report.AvoidPatterns))
	}
	if report.Categories["social"] != 1 {
		t.Errorf("categories = %v", report.Categories)
	}
}
