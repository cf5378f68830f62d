package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/projectforgeai/forge-server/internal/domain"
)

// GetTokenUsage returns the stored usage counter; the zero value if absent.
func (s *SQLiteStore) GetTokenUsage(ctx context.Context, userID string) (domain.TokenUsage, error) {
	query := `SELECT count, last_updated FROM token_usage WHERE user_id = ?`

	var usage domain.TokenUsage
	var lastUpdated int64
	err := s.db.QueryRowContext(ctx, query, userID).Scan(&usage.Count, &lastUpdated)
	if err == sql.ErrNoRows {
		return domain.TokenUsage{}, nil
	}
	if err != nil {
		return domain.TokenUsage{}, fmt.Errorf("scan token usage: %w", err)
	}
	usage.LastUpdated = time.Unix(lastUpdated, 0)
	return usage, nil
}

// SetTokenUsage writes the usage counter for a user.
func (s *SQLiteStore) SetTokenUsage(ctx context.Context, userID string, usage domain.TokenUsage) error {
	query := `
	INSERT INTO token_usage (user_id, count, last_updated)
	VALUES (?, ?, ?)
	ON CONFLICT(user_id) DO UPDATE SET
		count = excluded.count,
		last_updated = excluded.last_updated`

	if err := s.execRetry(ctx, query, userID, usage.Count, usage.LastUpdated.Unix()); err != nil {
		return fmt.Errorf("set token usage: %w", err)
	}
	return nil
}

// GetPreferences returns the user's generation preferences; zero value if absent.
func (s *SQLiteStore) GetPreferences(ctx context.Context, userID string) (domain.Preferences, error) {
	query := `SELECT operating_system FROM preferences WHERE user_id = ?`

	var prefs domain.Preferences
	err := s.db.QueryRowContext(ctx, query, userID).Scan(&prefs.OperatingSystem)
	if err == sql.ErrNoRows {
		return domain.Preferences{}, nil
	}
	if err != nil {
		return domain.Preferences{}, fmt.Errorf("scan preferences: %w", err)
	}
	return prefs, nil
}

// SetPreferences writes the user's generation preferences.
func (s *SQLiteStore) SetPreferences(ctx context.Context, userID string, prefs domain.Preferences) error {
	query := `
	INSERT INTO preferences (user_id, operating_system)
	VALUES (?, ?)
	ON CONFLICT(user_id) DO UPDATE SET
		operating_system = excluded.operating_system`

	if _, err := s.db.ExecContext(ctx, query, userID, prefs.OperatingSystem); err != nil {
		return fmt.Errorf("set preferences: %w", err)
	}
	return nil
}

// GetSubscription returns the user's subscription, or nil if absent.
func (s *SQLiteStore) GetSubscription(ctx context.Context, userID string) (*domain.Subscription, error) {
	query := `
		SELECT user_id, status, plan, subscription_id, trial_end, current_period_end
		FROM subscriptions WHERE user_id = ?`

	var sub domain.Subscription
	var subscriptionID sql.NullString
	var trialEnd, currentPeriodEnd sql.NullInt64

	err := s.db.QueryRowContext(ctx, query, userID).Scan(
		&sub.UserID, &sub.Status, &sub.Plan,
		&subscriptionID, &trialEnd, &currentPeriodEnd,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan subscription: %w", err)
	}

	sub.SubscriptionID = subscriptionID.String
	sub.TrialEnd = trialEnd.Int64
	sub.CurrentPeriodEnd = currentPeriodEnd.Int64
	return &sub, nil
}

// UpsertSubscription creates or updates a subscription record.
func (s *SQLiteStore) UpsertSubscription(ctx context.Context, sub *domain.Subscription) error {
	query := `
	INSERT INTO subscriptions (user_id, status, plan, subscription_id, trial_end, current_period_end)
	VALUES (?, ?, ?, ?, ?, ?)
	ON CONFLICT(user_id) DO UPDATE SET
		status = excluded.status,
		plan = excluded.plan,
		subscription_id = excluded.subscription_id,
		trial_end = excluded.trial_end,
		current_period_end = excluded.current_period_end`

	var subscriptionID interface{}
	if sub.SubscriptionID != "" {
		subscriptionID = sub.SubscriptionID
	}
	var trialEnd, currentPeriodEnd interface{}
	if sub.TrialEnd != 0 {
		trialEnd = sub.TrialEnd
	}
	if sub.CurrentPeriodEnd != 0 {
		currentPeriodEnd = sub.CurrentPeriodEnd
	}

	if _, err := s.db.ExecContext(ctx, query,
		sub.UserID, sub.Status, sub.Plan, subscriptionID, trialEnd, currentPeriodEnd,
	); err != nil {
		return fmt.Errorf("upsert subscription: %w", err)
	}
	return nil
}
