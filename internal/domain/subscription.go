package domain

// Subscription statuses.
const (
	SubscriptionFree = "free"
	SubscriptionPro  = "pro"
)

// Subscription plan identifiers.
const (
	PlanFreeTier = "free_tier"
	PlanProTier  = "pro_tier"
)

// Subscription is a user's billing plan state. There is no hard quota
// enforcement here; the token allowance is informational.
type Subscription struct {
	UserID           string `json:"userId"`
	Status           string `json:"status"`
	Plan             string `json:"plan"`
	SubscriptionID   string `json:"subscriptionId,omitempty"`
	TrialEnd         int64  `json:"trial_end,omitempty"`
	CurrentPeriodEnd int64  `json:"current_period_end,omitempty"`
}

// DefaultSubscription is the subscription created for users who have
// never been billed.
func DefaultSubscription(userID string) Subscription {
	return Subscription{
		UserID: userID,
		Status: SubscriptionFree,
		Plan:   PlanFreeTier,
	}
}

// TokenAllowance returns the daily token budget for the subscription's
// plan, for display and soft-limit purposes.
func (s Subscription) TokenAllowance() int {
	if s.Status == SubscriptionPro {
		return 2_000_000
	}
	return 200_000
}
