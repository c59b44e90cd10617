package feedback

import (
	"context"
	"time"
)

// Source fetches and normalizes feedback from one community platform.
// Implementations must be safe to call repeatedly; they are treated as
// black boxes that may return placeholder or live data.
type Source interface {
	// FetchInsights returns up to limit insights. If since is non-zero,
	// only insights captured after that time are returned.
	FetchInsights(ctx context.Context, limit int, since time.Time) ([]*Insight, error)

	// Name returns the platform identifier ("reddit", "discord", "steam").
	Name() string
}
