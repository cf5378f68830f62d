package domain

import (
	"testing"
	"time"
)

func TestTokenUsage_Rolled(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		usage     TokenUsage
		wantCount int
	}{
		{"zero value resets", TokenUsage{}, 0},
		{"older than window resets", TokenUsage{Count: 5000, LastUpdated: now.Add(-25 * time.Hour)}, 0},
		{"within window kept", TokenUsage{Count: 5000, LastUpdated: now.Add(-23 * time.Hour)}, 5000},
		{"exactly at window kept", TokenUsage{Count: 5000, LastUpdated: now.Add(-TokenUsageWindow)}, 5000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.usage.Rolled(now, TokenUsageWindow)
			if got.Count != tt.wantCount {
				t.Errorf("Expected count %d, got %d", tt.wantCount, got.Count)
			}
			if got.Count == 0 && !got.LastUpdated.Equal(now) {
				t.Errorf("A reset counter must restart as of now, got %v", got.LastUpdated)
			}
		})
	}
}

func TestTokenUsage_Add(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	fresh := TokenUsage{}.Add(150, now, TokenUsageWindow)
	if fresh.Count != 150 {
		t.Errorf("Expected count 150, got %d", fresh.Count)
	}
	if !fresh.LastUpdated.Equal(now) {
		t.Errorf("Expected LastUpdated %v, got %v", now, fresh.LastUpdated)
	}

	later := now.Add(time.Hour)
	accumulated := fresh.Add(50, later, TokenUsageWindow)
	if accumulated.Count != 200 {
		t.Errorf("Expected count 200, got %d", accumulated.Count)
	}

	// Adding after the window resets before accumulating.
	stale := fresh.Add(50, now.Add(30*time.Hour), TokenUsageWindow)
	if stale.Count != 50 {
		t.Errorf("Expected count 50 after reset, got %d", stale.Count)
	}
}
