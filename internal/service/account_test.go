package service

import (
	"context"
	"errors"
	"testing"

	"github.com/projectforgeai/forge-server/internal/domain"
	"github.com/projectforgeai/forge-server/internal/flow"
)

func TestAccountService_Preferences(t *testing.T) {
	repo := newTestRepo(t)
	svc := NewAccountService(repo)
	ctx := context.Background()

	prefs, err := svc.Preferences(ctx, "anon_user1")
	if err != nil {
		t.Fatalf("Preferences failed: %v", err)
	}
	if prefs.OperatingSystem != "" {
		t.Errorf("Expected empty default preferences, got %q", prefs.OperatingSystem)
	}

	if err := svc.SetPreferences(ctx, "anon_user1", domain.Preferences{OperatingSystem: domain.OSMacOS}); err != nil {
		t.Fatalf("SetPreferences failed: %v", err)
	}
	prefs, err = svc.Preferences(ctx, "anon_user1")
	if err != nil {
		t.Fatalf("Preferences after set failed: %v", err)
	}
	if prefs.OperatingSystem != domain.OSMacOS {
		t.Errorf("Expected %q, got %q", domain.OSMacOS, prefs.OperatingSystem)
	}
}

func TestAccountService_SetPreferencesInvalid(t *testing.T) {
	repo := newTestRepo(t)
	svc := NewAccountService(repo)

	err := svc.SetPreferences(context.Background(), "anon_user1", domain.Preferences{OperatingSystem: "TempleOS"})
	if !errors.Is(err, flow.ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput, got %v", err)
	}
}

func TestAccountService_ResolveOS(t *testing.T) {
	repo := newTestRepo(t)
	svc := NewAccountService(repo)
	ctx := context.Background()

	if os := svc.ResolveOS(ctx, "anon_user1", domain.OSWindows); os != domain.OSWindows {
		t.Errorf("Expected explicit request to win, got %q", os)
	}
	if os := svc.ResolveOS(ctx, "anon_user1", ""); os != "" {
		t.Errorf("Expected empty OS without a stored preference, got %q", os)
	}

	if err := svc.SetPreferences(ctx, "anon_user1", domain.Preferences{OperatingSystem: domain.OSLinux}); err != nil {
		t.Fatalf("SetPreferences failed: %v", err)
	}
	if os := svc.ResolveOS(ctx, "anon_user1", ""); os != domain.OSLinux {
		t.Errorf("Expected stored preference %q, got %q", domain.OSLinux, os)
	}
}

func TestAccountService_SubscriptionDefault(t *testing.T) {
	repo := newTestRepo(t)
	svc := NewAccountService(repo)
	ctx := context.Background()

	sub, err := svc.Subscription(ctx, "anon_user1")
	if err != nil {
		t.Fatalf("Subscription failed: %v", err)
	}
	if sub.Plan != domain.PlanFreeTier || sub.Status != domain.SubscriptionFree {
		t.Errorf("Expected default free subscription, got %+v", sub)
	}
	if sub.TokenAllowance() != 200_000 {
		t.Errorf("Expected free allowance 200000, got %d", sub.TokenAllowance())
	}

	// The default is persisted on first read.
	stored, err := repo.GetSubscription(ctx, "anon_user1")
	if err != nil {
		t.Fatalf("GetSubscription failed: %v", err)
	}
	if stored == nil {
		t.Fatal("Expected default subscription to be persisted")
	}
}

func TestAccountService_UpdateSubscription(t *testing.T) {
	repo := newTestRepo(t)
	svc := NewAccountService(repo)
	ctx := context.Background()

	sub, err := svc.Subscription(ctx, "anon_user1")
	if err != nil {
		t.Fatalf("Subscription failed: %v", err)
	}

	sub.Status = domain.SubscriptionPro
	sub.Plan = domain.PlanProTier
	sub.SubscriptionID = "sub_123"
	if err := svc.UpdateSubscription(ctx, sub); err != nil {
		t.Fatalf("UpdateSubscription failed: %v", err)
	}

	got, err := svc.Subscription(ctx, "anon_user1")
	if err != nil {
		t.Fatalf("Subscription after update failed: %v", err)
	}
	if got.Plan != domain.PlanProTier || got.SubscriptionID != "sub_123" {
		t.Errorf("Expected upgraded subscription, got %+v", got)
	}
	if got.TokenAllowance() != 2_000_000 {
		t.Errorf("Expected pro allowance 2000000, got %d", got.TokenAllowance())
	}
}
