package domain

import "time"

// TokenUsageWindow is how long a usage counter accumulates before it
// resets on the next read.
const TokenUsageWindow = 24 * time.Hour

// TokenUsage is a per-user rolling counter of LLM tokens consumed.
type TokenUsage struct {
	Count       int       `json:"count"`
	LastUpdated time.Time `json:"lastUpdated"`
}

// Rolled returns the usage after applying the rolling-window reset: if the
// counter was last updated more than window ago, it restarts at zero as of
// now. Pure function of the stored record and the clock.
func (u TokenUsage) Rolled(now time.Time, window time.Duration) TokenUsage {
	if u.LastUpdated.IsZero() || now.Sub(u.LastUpdated) > window {
		return TokenUsage{Count: 0, LastUpdated: now}
	}
	return u
}

// Add returns the usage with tokens added and the timestamp advanced,
// applying the rolling reset first.
func (u TokenUsage) Add(tokens int, now time.Time, window time.Duration) TokenUsage {
	rolled := u.Rolled(now, window)
	rolled.Count += tokens
	rolled.LastUpdated = now
	return rolled
}
