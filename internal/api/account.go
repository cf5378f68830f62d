package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/projectforgeai/forge-server/internal/domain"
	"github.com/projectforgeai/forge-server/internal/flow"
	"github.com/projectforgeai/forge-server/internal/identity"
	"github.com/projectforgeai/forge-server/internal/service"
)

// AccountHandler handles identity, preference, token usage and
// subscription endpoints.
type AccountHandler struct {
	*Handler
	account *service.AccountService
	tokens  *service.TokenService
}

// NewAccountHandler creates a new account handler.
func NewAccountHandler(base *Handler, account *service.AccountService, tokens *service.TokenService) *AccountHandler {
	return &AccountHandler{Handler: base, account: account, tokens: tokens}
}

// RegisterRoutes registers the account routes on the router.
func (h *AccountHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		r.Get("/me", h.GetMe)
		r.Get("/tokens", h.GetTokenUsage)
		r.Get("/preferences", h.GetPreferences)
		r.Put("/preferences", h.UpdatePreferences)
		r.Get("/subscription", h.GetSubscription)
	})
}

// GetMe returns the caller's anonymous identity.
func (h *AccountHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	userID := identity.UserIDFromContext(r.Context())

	user, err := h.repo.GetUser(r.Context(), userID)
	if err != nil || user == nil {
		Error(w, http.StatusInternalServerError, "failed to load user")
		return
	}
	JSON(w, http.StatusOK, user)
}

// GetTokenUsage returns the caller's rolling token usage alongside the
// allowance their plan grants.
func (h *AccountHandler) GetTokenUsage(w http.ResponseWriter, r *http.Request) {
	userID := identity.UserIDFromContext(r.Context())

	usage, err := h.tokens.Get(r.Context(), userID)
	if err != nil {
		Error(w, http.StatusInternalServerError, "failed to load token usage")
		return
	}
	sub, err := h.account.Subscription(r.Context(), userID)
	if err != nil {
		Error(w, http.StatusInternalServerError, "failed to load subscription")
		return
	}

	JSON(w, http.StatusOK, map[string]interface{}{
		"count":       usage.Count,
		"lastUpdated": usage.LastUpdated,
		"allowance":   sub.TokenAllowance(),
	})
}

// GetPreferences returns the caller's stored preferences.
func (h *AccountHandler) GetPreferences(w http.ResponseWriter, r *http.Request) {
	userID := identity.UserIDFromContext(r.Context())

	prefs, err := h.account.Preferences(r.Context(), userID)
	if err != nil {
		Error(w, http.StatusInternalServerError, "failed to load preferences")
		return
	}
	JSON(w, http.StatusOK, prefs)
}

// UpdatePreferences replaces the caller's stored preferences.
func (h *AccountHandler) UpdatePreferences(w http.ResponseWriter, r *http.Request) {
	userID := identity.UserIDFromContext(r.Context())

	var prefs domain.Preferences
	if err := decodeBody(r, &prefs); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.account.SetPreferences(r.Context(), userID, prefs); err != nil {
		if errors.Is(err, flow.ErrInvalidInput) {
			Error(w, http.StatusBadRequest, err.Error())
			return
		}
		Error(w, http.StatusInternalServerError, "failed to save preferences")
		return
	}
	JSON(w, http.StatusOK, prefs)
}

// GetSubscription returns the caller's subscription, defaulting to the
// free plan on first read.
func (h *AccountHandler) GetSubscription(w http.ResponseWriter, r *http.Request) {
	userID := identity.UserIDFromContext(r.Context())

	sub, err := h.account.Subscription(r.Context(), userID)
	if err != nil {
		Error(w, http.StatusInternalServerError, "failed to load subscription")
		return
	}
	JSON(w, http.StatusOK, sub)
}
