package feedback

import (
	"math"
	"testing"
)

func TestScoreSentiment(t *testing.T) {
	analyzer := NewAnalyzer(DefaultLexicon(nil, nil))

	tests := []struct {
		name    string
		content string
		want    float64
	}{
		{"all positive", "love great amazing", 1.0},
		{"all negative", "hate terrible", -1.0},
		{"no lexicon words", "the quick brown fox", 0.0},
		{"mixed", "love hate", 0.0},
		{"mostly positive", "love great terrible", 1.0 / 3.0},
		{"empty", "", 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := analyzer.scoreSentiment(tt.content)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("scoreSentiment(%q) = %v, want %v", tt.content, got, tt.want)
			}
		})
	}
}

func TestExtraLexiconWords(t *testing.T) {
	analyzer := NewAnalyzer(DefaultLexicon([]string{"poggers"}, []string{"mid"}))

	if got := analyzer.scoreSentiment("poggers"); got != 1.0 {
		t.Errorf("extra positive word scored %v, want 1.0", got)
	}
	if got := analyzer.scoreSentiment("mid"); got != -1.0 {
		t.Errorf("extra negative word scored %v, want -1.0", got)
	}
}

func TestExtractTopics(t *testing.T) {
	analyzer := NewAnalyzer(DefaultLexicon(nil, nil))

	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{"no match falls back", "nothing relevant here", []string{"general"}},
		{"single topic", "the combat feels responsive", []string{"gameplay"}},
		{"multiple topics in declaration order", "new skins in the shop", []string{"customization", "cosmetics", "monetization", "content"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := analyzer.extractTopics(tt.content)
			if len(got) != len(tt.want) {
				t.Fatalf("extractTopics(%q) = %v, want %v", tt.content, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("topic[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestCategorize(t *testing.T) {
	analyzer := NewAnalyzer(DefaultLexicon(nil, nil))

	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"feature request", "please add a map editor", "feature_request"},
		{"bug report", "the game crash on startup", "bug_report"},
		{"praise", "amazing work on the update", "praise"},
		{"complaint", "this is the worst patch yet", "complaint"},
		{"fallback", "how do I link my account", "discussion"},
		{"first category wins", "I would love a fix for this bug", "feature_request"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := analyzer.categorize(tt.content); got != tt.want {
				t.Errorf("categorize(%q) = %q, want %q", tt.content, got, tt.want)
			}
		})
	}
}

func TestPriorityClamped(t *testing.T) {
	analyzer := NewAnalyzer(DefaultLexicon(nil, nil))

	tests := []struct {
		name    string
		insight *Insight
	}{
		{"huge engagement", &Insight{Engagement: map[string]int{"upvotes": 1000000}, Category: "feature_request", Sentiment: 0.9}},
		{"zero engagement", &Insight{Engagement: map[string]int{}, Category: "discussion"}},
		{"moderate", &Insight{Engagement: map[string]int{"upvotes": 250}, Category: "praise", Sentiment: 0.6}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := analyzer.priority(tt.insight)
			if got < 0.0 || got > 1.0 {
				t.Errorf("priority = %v, want within [0, 1]", got)
			}
		})
	}
}

func TestPriorityFormula(t *testing.T) {
	analyzer := NewAnalyzer(DefaultLexicon(nil, nil))

	// engagement 500 saturates the score at 1.0; feature_request gets a
	// 1.2x multiplier and sentiment > 0.5 a 0.1 boost.
	insight := &Insight{
		Engagement: map[string]int{"upvotes": 500},
		Category:   "feature_request",
		Sentiment:  0.8,
	}
	want := (1.0*1.2 + 0.1) / 1.3
	if got := analyzer.priority(insight); math.Abs(got-want) > 1e-9 {
		t.Errorf("priority = %v, want %v", got, want)
	}
}

func TestAnalyzePreservesSourceFields(t *testing.T) {
	analyzer := NewAnalyzer(DefaultLexicon(nil, nil))

	insight := &Insight{
		Content:   "love the bug",
		Sentiment: -0.5,
		Topics:    []string{"prefilled"},
		Category:  "review_positive",
	}
	analyzer.Analyze(insight)

	if insight.Sentiment != -0.5 {
		t.Errorf("sentiment overwritten: %v", insight.Sentiment)
	}
	if len(insight.Topics) != 1 || insight.Topics[0] != "prefilled" {
		t.Errorf("topics overwritten: %v", insight.Topics)
	}
	if insight.Category != "review_positive" {
		t.Errorf("category overwritten: %q", insight.Category)
	}
}

func TestAnalyzeFillsDefaults(t *testing.T) {
	analyzer := NewAnalyzer(DefaultLexicon(nil, nil))

	insight := NewInsight("reddit", "would love better guild chat, it is great")
	analyzer.Analyze(insight)

	if insight.Sentiment <= 0 {
		t.Errorf("sentiment = %v, want positive", insight.Sentiment)
	}
	if insight.Category != "feature_request" {
		t.Errorf("category = %q, want feature_request", insight.Category)
	}
	found := false
	for _, topic := range insight.Topics {
		if topic == "social" {
			found = true
		}
	}
	if !found {
		t.Errorf("topics = %v, want to include social", insight.Topics)
	}
}

func TestSummarize(t *testing.T) {
	analyzer := NewAnalyzer(DefaultLexicon(nil, nil))

	insights := []*Insight{
		{Source: "reddit", Category: "feature_request", Sentiment: 0.8, Topics: []string{"cosmetics", "social"}},
		{Source: "reddit", Category: "praise", Sentiment: 0.6, Topics: []string{"cosmetics"}},
		{Source: "discord", Category: "feature_request", Sentiment: 0.4, Topics: []string{"gameplay"}},
	}

	summary := analyzer.Summarize(insights)

	if summary.Count != 3 {
		t.Errorf("count = %d, want 3", summary.Count)
	}
	if math.Abs(summary.AvgSentiment-0.6) > 1e-9 {
		t.Errorf("avg sentiment = %v, want 0.6", summary.AvgSentiment)
	}
	if summary.Categories["feature_request"] != 2 {
		t.Errorf("feature_request count = %d, want 2", summary.Categories["feature_request"])
	}
	if summary.Sources["reddit"] != 2 || summary.Sources["discord"] != 1 {
		t.Errorf("sources = %v", summary.Sources)
	}
	if len(summary.TopTopics) == 0 || summary.TopTopics[0].Topic != "cosmetics" {
		t.Errorf("top topics = %v, want cosmetics first", summary.TopTopics)
	}
	if len(summary.FeatureRequests) != 2 {
		t.Errorf("feature requests = %d, want 2", len(summary.FeatureRequests))
	}
}

func TestSummarizeEmpty(t *testing.T) {
	analyzer := NewAnalyzer(DefaultLexicon(nil, nil))

	summary := analyzer.Summarize(nil)
	if summary.Count != 0 || summary.AvgSentiment != 0 {
		t.Errorf("empty summary = %+v", summary)
	}
}
