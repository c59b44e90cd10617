package feedback

import (
	"time"
)

// Insight is a normalized unit of community feedback from any source.
// The JSON field names are a serialization contract consumed by the
// companion app and must remain stable.
type Insight struct {
	Source     string         `json:"source"`
	Content    string         `json:"content"`
	Sentiment  float64        `json:"sentiment"`
	Topics     []string       `json:"topics"`
	Author     string         `json:"author"`
	Timestamp  time.Time      `json:"timestamp"`
	Engagement map[string]int `json:"engagement"`
	Category   string         `json:"category"`
	Priority   float64        `json:"priority"`
}

// NewInsight creates an insight with the defaults the analyzer expects:
// zero sentiment (meaning "not yet scored"), the "general" category, and
// a mid-range priority.
func NewInsight(source, content string) *Insight {
	return &Insight{
		Source:     source,
		Content:    content,
		Author:     "anonymous",
		Timestamp:  time.Now().UTC(),
		Engagement: map[string]int{},
		Category:   "general",
		Priority:   0.5,
	}
}

// TotalEngagement sums all engagement metrics (upvotes, comments, reactions).
func (i *Insight) TotalEngagement() int {
	total := 0
	for _, v := range i.Engagement {
		total += v
	}
	return total
}

// Proposal is a feature idea synthesized from insights sharing a topic.
// JSON field names are part of the output contract.
type Proposal struct {
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	SourceInsights   []string  `json:"source_insights"`
	Category         string    `json:"category"`
	MonetizationType string    `json:"monetization_type"`
	Priority         float64   `json:"priority"`
	F2PCompliant     bool      `json:"f2p_compliant"`
	GuardrailNotes   []string  `json:"guardrail_notes"`
	ComparativeNotes []string  `json:"comparative_notes"`
	CreatedAt        time.Time `json:"created_at"`
}
