package feedback

import (
	"context"
	"fmt"
	"hash/fnv"
	"log"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// Pipeline coordinates fetching from multiple community sources,
// analyzing the results, and synthesizing feature proposals.
type Pipeline struct {
	sources  []Source
	analyzer *Analyzer

	mu       sync.Mutex
	insights []*Insight
}

// NewPipeline creates a pipeline over the given sources. Sources are
// fetched in parallel; a failing source contributes nothing but never
// fails the run.
func NewPipeline(analyzer *Analyzer, sources ...Source) *Pipeline {
	return &Pipeline{sources: sources, analyzer: analyzer}
}

// RunResult is the pipeline's aggregate output for one collection run.
type RunResult struct {
	Timestamp       string     `json:"timestamp"`
	TotalInsights   int        `json:"total_insights"`
	Summary         *Summary   `json:"summary"`
	FeatureRequests []*Insight `json:"feature_requests"`
	Insights        []*Insight `json:"insights"`
}

// Run fetches from every source, analyzes the combined set, and
// returns the aggregate result. Per-source failures are logged and
// skipped so partial data still flows downstream.
func (p *Pipeline) Run(ctx context.Context, limitPerSource int, since time.Time) (*RunResult, error) {
	log.Printf("starting community pipeline run with %d sources", len(p.sources))

	collected := make([][]*Insight, len(p.sources))
	g, gctx := errgroup.WithContext(ctx)
	for i, source := range p.sources {
		g.Go(func() error {
			insights, err := source.FetchInsights(gctx, limitPerSource, since)
			if err != nil {
				log.Printf("ERROR: fetching from %s: %v", source.Name(), err)
				return nil
			}
			log.Printf("fetched %d insights from %s", len(insights), source.Name())
			collected[i] = insights
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("fetching insights: %w", err)
	}

	var all []*Insight
	for _, insights := range collected {
		all = append(all, insights...)
	}

	p.mu.Lock()
	p.insights = p.analyzer.BatchAnalyze(all)
	insights := p.insights
	p.mu.Unlock()

	log.Printf("analyzed %d total insights", len(insights))

	return &RunResult{
		Timestamp:       time.Now().UTC().Format(time.RFC3339),
		TotalInsights:   len(insights),
		Summary:         p.analyzer.Summarize(insights),
		FeatureRequests: p.featureRequests(insights),
		Insights:        insights,
	}, nil
}

// Insights returns the insights from the most recent run.
func (p *Pipeline) Insights() []*Insight {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.insights
}

// featureRequests filters insights down to feature requests sorted by
// priority, highest first.
func (p *Pipeline) featureRequests(insights []*Insight) []*Insight {
	var requests []*Insight
	for _, insight := range insights {
		if insight.Category == "feature_request" {
			requests = append(requests, insight)
		}
	}
	sort.SliceStable(requests, func(i, j int) bool {
		return requests[i].Priority > requests[j].Priority
	})
	return requests
}

// GenerateProposals groups feature requests by primary topic and
// synthesizes one proposal per group, sorted by priority descending.
func (p *Pipeline) GenerateProposals() []*Proposal {
	p.mu.Lock()
	insights := p.insights
	p.mu.Unlock()

	return SynthesizeProposals(p.featureRequests(insights))
}

// SynthesizeProposals builds proposals from feature request insights.
// Grouping is by each request's first topic; group order is
// deterministic regardless of map iteration.
func SynthesizeProposals(requests []*Insight) []*Proposal {
	groups := map[string][]*Insight{}
	var order []string
	for _, request := range requests {
		topic := "general"
		if len(request.Topics) > 0 {
			topic = request.Topics[0]
		}
		if _, seen := groups[topic]; !seen {
			order = append(order, topic)
		}
		groups[topic] = append(groups[topic], request)
	}

	proposals := make([]*Proposal, 0, len(order))
	for _, topic := range order {
		proposals = append(proposals, proposalFromRequests(topic, groups[topic]))
	}
	sort.SliceStable(proposals, func(i, j int) bool {
		return proposals[i].Priority > proposals[j].Priority
	})
	return proposals
}

func proposalFromRequests(topic string, requests []*Insight) *Proposal {
	prioritySum, sentimentSum := 0.0, 0.0
	sourceIDs := make([]string, 0, len(requests))
	for _, request := range requests {
		prioritySum += request.Priority
		sentimentSum += request.Sentiment
		sourceIDs = append(sourceIDs, insightID(request))
	}
	avgPriority := prioritySum / float64(len(requests))
	avgSentiment := sentimentSum / float64(len(requests))

	return &Proposal{
		Title:            "Community-Requested: Enhanced " + titleCase(topic),
		Description:      synthesizeDescription(requests),
		SourceInsights:   sourceIDs,
		Category:         topic,
		MonetizationType: monetizationTypeForTopic(topic),
		Priority:         avgPriority * (1 + avgSentiment*0.2),
		F2PCompliant:     true,
		CreatedAt:        time.Now().UTC(),
	}
}

// insightID derives a stable identifier from the insight's content.
func insightID(insight *Insight) string {
	h := fnv.New64a()
	h.Write([]byte(insight.Content))
	return fmt.Sprintf("%d", h.Sum64())
}

// monetizationTypeForTopic maps topics to a monetization stance.
// Cosmetic topics are sellable, core-experience topics stay free, and
// everything else lands in quality of life.
func monetizationTypeForTopic(topic string) string {
	switch topic {
	case "customization", "cosmetics", "social", "events":
		return "cosmetic"
	case "gameplay", "performance", "balance", "content":
		return "free"
	default:
		return "qol"
	}
}

// synthesizeDescription builds a proposal description from the top
// three requests by priority.
func synthesizeDescription(requests []*Insight) string {
	top := make([]*Insight, len(requests))
	copy(top, requests)
	sort.SliceStable(top, func(i, j int) bool {
		return top[i].Priority > top[j].Priority
	})
	if len(top) > 3 {
		top = top[:3]
	}

	points := make([]string, 0, len(top))
	for _, request := range top {
		content := request.Content
		if idx := strings.Index(content, "."); idx >= 0 {
			content = content[:idx+1]
		}
		if len(content) > 200 {
			content = content[:197] + "..."
		}
		points = append(points, "- "+content)
	}

	return fmt.Sprintf(`Based on community feedback from %d users:

%s

This feature would enhance the player experience while maintaining our F2P-friendly approach.
Engagement metrics suggest high community interest in this area.`,
		len(requests), strings.Join(points, "\n"))
}

// titleCase converts a snake_case topic into a display title.
func titleCase(topic string) string {
	words := strings.Split(strings.ReplaceAll(topic, "_", " "), " ")
	for i, word := range words {
		if word == "" {
			continue
		}
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}
