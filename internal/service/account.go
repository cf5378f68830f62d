package service

import (
	"context"
	"fmt"

	"github.com/projectforgeai/forge-server/internal/domain"
	"github.com/projectforgeai/forge-server/internal/flow"
	"github.com/projectforgeai/forge-server/internal/store"
)

// AccountService owns per-user preferences and subscription state.
type AccountService struct {
	repo store.Repository
}

// NewAccountService creates an account service.
func NewAccountService(repo store.Repository) *AccountService {
	return &AccountService{repo: repo}
}

// Preferences returns the user's generation preferences.
func (s *AccountService) Preferences(ctx context.Context, userID string) (domain.Preferences, error) {
	return s.repo.GetPreferences(ctx, userID)
}

// SetPreferences validates and stores the user's preferences.
func (s *AccountService) SetPreferences(ctx context.Context, userID string, prefs domain.Preferences) error {
	if err := prefs.Validate(); err != nil {
		return fmt.Errorf("%w: %s", flow.ErrInvalidInput, err)
	}
	return s.repo.SetPreferences(ctx, userID, prefs)
}

// ResolveOS returns the operating system to target for a generation:
// the explicit request wins, otherwise the stored preference.
func (s *AccountService) ResolveOS(ctx context.Context, userID, requested string) string {
	if requested != "" {
		return requested
	}
	prefs, err := s.repo.GetPreferences(ctx, userID)
	if err != nil {
		return ""
	}
	return prefs.OperatingSystem
}

// Subscription returns the user's subscription, creating and persisting
// the default free plan on first read.
func (s *AccountService) Subscription(ctx context.Context, userID string) (domain.Subscription, error) {
	sub, err := s.repo.GetSubscription(ctx, userID)
	if err != nil {
		return domain.Subscription{}, err
	}
	if sub != nil {
		return *sub, nil
	}

	def := domain.DefaultSubscription(userID)
	if err := s.repo.UpsertSubscription(ctx, &def); err != nil {
		return domain.Subscription{}, fmt.Errorf("persist default subscription: %w", err)
	}
	return def, nil
}

// UpdateSubscription stores subscription changes from the billing boundary.
func (s *AccountService) UpdateSubscription(ctx context.Context, sub domain.Subscription) error {
	return s.repo.UpsertSubscription(ctx, &sub)
}
