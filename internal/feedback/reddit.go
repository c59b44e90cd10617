package feedback

import (
	"context"
	"log"
	"os"
	"time"
)

// RedditSource fetches posts and comments from game-related subreddits.
// Without API credentials it serves curated placeholder insights so the
// rest of the pipeline can run end to end.
type RedditSource struct {
	subreddits   []string
	clientID     string
	clientSecret string
	userAgent    string
}

// NewRedditSource creates a Reddit source. Credentials default to the
// REDDIT_CLIENT_ID / REDDIT_CLIENT_SECRET / REDDIT_USER_AGENT env vars.
func NewRedditSource(subreddits ...string) *RedditSource {
	if len(subreddits) == 0 {
		subreddits = []string{"gamedev", "gaming", "indiegaming"}
	}
	userAgent := os.Getenv("REDDIT_USER_AGENT")
	if userAgent == "" {
		userAgent = "ThirstysGameStudio/1.0"
	}
	return &RedditSource{
		subreddits:   subreddits,
		clientID:     os.Getenv("REDDIT_CLIENT_ID"),
		clientSecret: os.Getenv("REDDIT_CLIENT_SECRET"),
		userAgent:    userAgent,
	}
}

// Name implements Source.
func (s *RedditSource) Name() string { return "reddit" }

// Configured reports whether API credentials are present.
func (s *RedditSource) Configured() bool {
	return s.clientID != "" && s.clientSecret != ""
}

// FetchInsights implements Source.
func (s *RedditSource) FetchInsights(ctx context.Context, limit int, since time.Time) ([]*Insight, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !s.Configured() {
		log.Printf("WARNING: reddit API not configured, serving placeholder insights")
	}
	// Live fetching against the Reddit API is not wired up yet; both
	// configured and unconfigured paths serve the curated set.
	return clampInsights(redditPlaceholders(), limit), nil
}

func redditPlaceholders() []*Insight {
	return []*Insight{
		{
			Source:     "reddit",
			Content:    "Would love to see more character customization options! Maybe different armor styles that don't affect stats?",
			Sentiment:  0.7,
			Topics:     []string{"customization", "cosmetics", "armor"},
			Author:     "reddit_user_1",
			Timestamp:  time.Now().UTC(),
			Engagement: map[string]int{"upvotes": 145, "comments": 23},
			Category:   "feature_request",
			Priority:   0.8,
		},
		{
			Source:     "reddit",
			Content:    "The new update is amazing! Really appreciate the F2P model.",
			Sentiment:  0.9,
			Topics:     []string{"update", "f2p", "appreciation"},
			Author:     "reddit_user_2",
			Timestamp:  time.Now().UTC(),
			Engagement: map[string]int{"upvotes": 312, "comments": 45},
			Category:   "praise",
			Priority:   0.6,
		},
		{
			Source:     "reddit",
			Content:    "Can we get a guild/clan system? Would make the game more social without any pay-to-win elements.",
			Sentiment:  0.5,
			Topics:     []string{"social", "guild", "clan", "multiplayer"},
			Author:     "reddit_user_3",
			Timestamp:  time.Now().UTC(),
			Engagement: map[string]int{"upvotes": 256, "comments": 67},
			Category:   "feature_request",
			Priority:   0.85,
		},
		{
			Source:     "reddit",
			Content:    "The battle pass is fair and purely cosmetic. This is how F2P should be done!",
			Sentiment:  0.8,
			Topics:     []string{"battle_pass", "cosmetics", "f2p"},
			Author:     "reddit_user_4",
			Timestamp:  time.Now().UTC(),
			Engagement: map[string]int{"upvotes": 189, "comments": 12},
			Category:   "praise",
			Priority:   0.5,
		},
		{
			Source:     "reddit",
			Content:    "Suggestion: Add daily challenges for earning cosmetic currency.",
			Sentiment:  0.6,
			Topics:     []string{"daily_challenges", "currency", "cosmetics"},
			Author:     "reddit_user_5",
			Timestamp:  time.Now().UTC(),
			Engagement: map[string]int{"upvotes": 98, "comments": 15},
			Category:   "feature_request",
			Priority:   0.7,
		},
	}
}

// clampInsights truncates the slice to limit (negative or zero limit
// means unlimited).
func clampInsights(insights []*Insight, limit int) []*Insight {
	if limit <= 0 || limit >= len(insights) {
		return insights
	}
	return insights[:limit]
}
