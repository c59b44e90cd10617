package feedback

import (
	"regexp"
	"sort"
	"strings"
)

// TopicKeywords maps one topic to the keywords that indicate it.
// Topics are matched in declaration order so results are deterministic.
type TopicKeywords struct {
	Topic    string
	Keywords []string
}

// CategoryPatterns maps one category to its indicator patterns.
// Categories are matched in declaration order; the first category with
// any matching pattern wins.
type CategoryPatterns struct {
	Category string
	Patterns []*regexp.Regexp
}

// Lexicon holds the rule tables the analyzer scores with. It is built
// once at startup and never mutated afterwards, so it can be shared
// freely.
type Lexicon struct {
	positive   map[string]struct{}
	negative   map[string]struct{}
	topics     []TopicKeywords
	categories []CategoryPatterns
}

// DefaultLexicon returns the built-in rule tables.
// Extra sentiment words from configuration can be layered on top.
func DefaultLexicon(extraPositive, extraNegative []string) *Lexicon {
	positive := wordSet(
		"love", "great", "amazing", "excellent", "awesome", "fantastic",
		"perfect", "best", "fun", "enjoy", "wonderful", "brilliant",
		"superb", "outstanding", "incredible", "thanks", "thank",
		"appreciate", "helpful", "beautiful", "cool", "nice", "good",
	)
	negative := wordSet(
		"hate", "bad", "terrible", "awful", "horrible", "worst", "boring",
		"frustrating", "annoying", "broken", "buggy", "crash", "laggy",
		"unfair", "expensive", "scam", "p2w", "pay-to-win", "greedy",
		"garbage", "trash", "disappointed",
	)
	for _, w := range extraPositive {
		positive[strings.ToLower(w)] = struct{}{}
	}
	for _, w := range extraNegative {
		negative[strings.ToLower(w)] = struct{}{}
	}

	return &Lexicon{
		positive: positive,
		negative: negative,
		topics: []TopicKeywords{
			{"customization", []string{"customization", "customize", "custom", "personalize", "skins", "outfits"}},
			{"cosmetics", []string{"cosmetic", "cosmetics", "skin", "outfit", "appearance", "visual"}},
			{"gameplay", []string{"gameplay", "mechanics", "combat", "movement", "controls"}},
			{"social", []string{"guild", "clan", "friends", "chat", "party", "team", "social"}},
			{"monetization", []string{"shop", "store", "buy", "purchase", "price", "cost", "f2p", "free"}},
			{"progression", []string{"level", "xp", "unlock", "progression", "grind", "earn", "reward"}},
			{"events", []string{"event", "season", "seasonal", "battle pass", "limited"}},
			{"performance", []string{"lag", "fps", "performance", "crash", "bug", "optimization"}},
			{"balance", []string{"balance", "nerf", "buff", "overpowered", "underpowered", "op"}},
			{"content", []string{"content", "update", "new", "feature", "addition", "map", "mode"}},
		},
		categories: []CategoryPatterns{
			{"feature_request", compilePatterns(
				`\bwould love\b`, `\bshould add\b`, `\bcan we get\b`, `\bsuggestion\b`,
				`\bidea\b`, `\brequest\b`, `\bwish\b`, `\bplease add\b`,
			)},
			{"bug_report", compilePatterns(
				`\bbug\b`, `\bcrash\b`, `\bbroken\b`, `\bissue\b`, `\bglitch\b`,
				`\berror\b`, `\bnot working\b`,
			)},
			{"praise", compilePatterns(
				`\blove this\b`, `\bamazing\b`, `\bgreat job\b`, `\bthank you\b`,
				`\bawesome\b`, `\bbest game\b`,
			)},
			{"complaint", compilePatterns(
				`\bhate\b`, `\bterrible\b`, `\bworst\b`, `\bunfair\b`,
			)},
		},
	}
}

func wordSet(words ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

func compilePatterns(patterns ...string) []*regexp.Regexp {
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		compiled = append(compiled, regexp.MustCompile(p))
	}
	return compiled
}

// Analyzer enriches raw insights with sentiment, topics, category, and
// priority using simple rule-based heuristics.
type Analyzer struct {
	lexicon *Lexicon
}

// NewAnalyzer creates an analyzer backed by the given lexicon.
func NewAnalyzer(lexicon *Lexicon) *Analyzer {
	return &Analyzer{lexicon: lexicon}
}

// Analyze enriches a single insight in place and returns it.
// Fields already set by the source are preserved; only defaults are
// computed.
func (a *Analyzer) Analyze(insight *Insight) *Insight {
	if insight.Sentiment == 0.0 {
		insight.Sentiment = a.scoreSentiment(insight.Content)
	}
	if len(insight.Topics) == 0 {
		insight.Topics = a.extractTopics(insight.Content)
	}
	if insight.Category == "general" || insight.Category == "" {
		insight.Category = a.categorize(insight.Content)
	}
	insight.Priority = a.priority(insight)
	return insight
}

// BatchAnalyze analyzes every insight in order.
func (a *Analyzer) BatchAnalyze(insights []*Insight) []*Insight {
	for _, insight := range insights {
		a.Analyze(insight)
	}
	return insights
}

// scoreSentiment returns a score in [-1, 1] from lexicon word counts.
// No lexicon words means neutral (0).
func (a *Analyzer) scoreSentiment(text string) float64 {
	positive, negative := 0, 0
	for _, word := range strings.Fields(strings.ToLower(text)) {
		if _, ok := a.lexicon.positive[word]; ok {
			positive++
		}
		if _, ok := a.lexicon.negative[word]; ok {
			negative++
		}
	}

	total := positive + negative
	if total == 0 {
		return 0.0
	}

	score := float64(positive-negative) / float64(total)
	return clamp(score, -1.0, 1.0)
}

// extractTopics returns topics whose keyword sets match the text.
// The first matching keyword per topic wins; no match yields ["general"].
func (a *Analyzer) extractTopics(text string) []string {
	lower := strings.ToLower(text)

	var found []string
	for _, entry := range a.lexicon.topics {
		for _, keyword := range entry.Keywords {
			if strings.Contains(lower, keyword) {
				found = append(found, entry.Topic)
				break
			}
		}
	}

	if len(found) == 0 {
		return []string{"general"}
	}
	return found
}

// categorize returns the first category with a matching pattern, or
// "discussion" when nothing matches.
func (a *Analyzer) categorize(text string) string {
	lower := strings.ToLower(text)

	for _, entry := range a.lexicon.categories {
		for _, pattern := range entry.Patterns {
			if pattern.MatchString(lower) {
				return entry.Category
			}
		}
	}

	return "discussion"
}

// priority computes an engagement-weighted score in [0, 1].
// Feature requests get a 1.2x multiplier, strongly positive sentiment a
// small flat boost.
func (a *Analyzer) priority(insight *Insight) float64 {
	engagementScore := minFloat(1.0, float64(insight.TotalEngagement())/500)

	multiplier := 1.0
	if insight.Category == "feature_request" {
		multiplier = 1.2
	}

	boost := 0.0
	if insight.Sentiment > 0.5 {
		boost = 0.1
	}

	return clamp((engagementScore*multiplier+boost)/1.3, 0.0, 1.0)
}

// TopicCount is one entry in the summary's topic frequency table.
type TopicCount struct {
	Topic string `json:"topic"`
	Count int    `json:"count"`
}

// Summary aggregates metrics over a batch of analyzed insights.
type Summary struct {
	Count           int            `json:"count"`
	AvgSentiment    float64        `json:"avg_sentiment"`
	Categories      map[string]int `json:"categories"`
	TopTopics       []TopicCount   `json:"top_topics"`
	Sources         map[string]int `json:"sources"`
	FeatureRequests []*Insight     `json:"feature_requests"`
}

// Summarize aggregates analyzed insights into a summary report.
func (a *Analyzer) Summarize(insights []*Insight) *Summary {
	summary := &Summary{
		Count:      len(insights),
		Categories: map[string]int{},
		Sources:    map[string]int{},
	}
	if len(insights) == 0 {
		return summary
	}

	topics := map[string]int{}
	sentimentTotal := 0.0
	for _, insight := range insights {
		summary.Categories[insight.Category]++
		summary.Sources[insight.Source]++
		sentimentTotal += insight.Sentiment
		for _, topic := range insight.Topics {
			topics[topic]++
		}
		if insight.Category == "feature_request" {
			summary.FeatureRequests = append(summary.FeatureRequests, insight)
		}
	}
	summary.AvgSentiment = sentimentTotal / float64(len(insights))

	for topic, count := range topics {
		summary.TopTopics = append(summary.TopTopics, TopicCount{Topic: topic, Count: count})
	}
	sort.Slice(summary.TopTopics, func(i, j int) bool {
		if summary.TopTopics[i].Count != summary.TopTopics[j].Count {
			return summary.TopTopics[i].Count > summary.TopTopics[j].Count
		}
		return summary.TopTopics[i].Topic < summary.TopTopics[j].Topic
	})
	if len(summary.TopTopics) > 10 {
		summary.TopTopics = summary.TopTopics[:10]
	}

	return summary
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
