package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/projectforgeai/forge-server/internal/domain"
	"github.com/projectforgeai/forge-server/internal/store"
)

// TokenService owns the per-user rolling token-usage counter.
type TokenService struct {
	repo   store.Repository
	window time.Duration
	logger *slog.Logger

	// now is swappable for tests.
	now func() time.Time
}

// NewTokenService creates a token usage service with the standard
// 24-hour rolling window.
func NewTokenService(repo store.Repository, logger *slog.Logger) *TokenService {
	if logger == nil {
		logger = slog.Default()
	}
	return &TokenService{
		repo:   repo,
		window: domain.TokenUsageWindow,
		logger: logger,
		now:    time.Now,
	}
}

// Get returns the user's current usage. A counter whose last update is
// older than the window is reset to zero and rewritten before returning.
func (s *TokenService) Get(ctx context.Context, userID string) (domain.TokenUsage, error) {
	stored, err := s.repo.GetTokenUsage(ctx, userID)
	if err != nil {
		return domain.TokenUsage{}, err
	}

	rolled := stored.Rolled(s.now(), s.window)
	if rolled != stored {
		if err := s.repo.SetTokenUsage(ctx, userID, rolled); err != nil {
			return domain.TokenUsage{}, err
		}
	}
	return rolled, nil
}

// Add accumulates tokens against the user's counter, applying the rolling
// reset first.
func (s *TokenService) Add(ctx context.Context, userID string, tokens int) (domain.TokenUsage, error) {
	stored, err := s.repo.GetTokenUsage(ctx, userID)
	if err != nil {
		return domain.TokenUsage{}, err
	}

	updated := stored.Add(tokens, s.now(), s.window)
	if err := s.repo.SetTokenUsage(ctx, userID, updated); err != nil {
		return domain.TokenUsage{}, err
	}
	return updated, nil
}

// Record adds usage after a successful flow call. Accounting failures are
// logged, not surfaced: the generated result has already been paid for and
// should reach the user.
func (s *TokenService) Record(ctx context.Context, userID string, tokens int) {
	if tokens <= 0 {
		return
	}
	if _, err := s.Add(ctx, userID, tokens); err != nil {
		s.logger.Warn("failed to record token usage", "user_id", userID, "tokens", tokens, "error", err)
	}
}
