package identity

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/projectforgeai/forge-server/internal/store"
)

func newTestRepo(t *testing.T) store.Repository {
	t.Helper()
	repo, err := store.NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() {
		if err := repo.Close(); err != nil {
			t.Errorf("Failed to close test database: %v", err)
		}
	})
	return repo
}

func TestIsValidAnonID(t *testing.T) {
	valid := "anon_0123456789abcdef0123456789abcdef"
	if !isValidAnonID(valid) {
		t.Errorf("Expected %q to be valid", valid)
	}

	for _, invalid := range []string{
		"",
		"anon_short",
		"anon_0123456789ABCDEF0123456789ABCDEF", // uppercase hex
		"user_0123456789abcdef0123456789abcdef",
		"anon_0123456789abcdef0123456789abcdef0", // too long
	} {
		if isValidAnonID(invalid) {
			t.Errorf("Expected %q to be invalid", invalid)
		}
	}
}

func TestMiddleware_AssignsIdentity(t *testing.T) {
	repo := newTestRepo(t)

	var seenUserID string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenUserID = UserIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	handler := Middleware(repo, true)(next)

	req := httptest.NewRequest(http.MethodGet, "/api/projects", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if !isValidAnonID(seenUserID) {
		t.Fatalf("Expected a valid anonymous ID in context, got %q", seenUserID)
	}

	var cookie *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == AnonCookieName {
			cookie = c
		}
	}
	if cookie == nil {
		t.Fatal("Expected identity cookie to be set")
	}
	if cookie.Value != seenUserID {
		t.Errorf("Cookie %q does not match context ID %q", cookie.Value, seenUserID)
	}
	if !cookie.HttpOnly {
		t.Error("Expected HttpOnly cookie")
	}

	// The user record is created on first sight.
	user, err := repo.GetUser(req.Context(), seenUserID)
	if err != nil || user == nil {
		t.Fatalf("Expected user record created, got %v, %v", user, err)
	}

	// A second request with the cookie keeps the same identity.
	req2 := httptest.NewRequest(http.MethodGet, "/api/projects", nil)
	req2.AddCookie(&http.Cookie{Name: AnonCookieName, Value: cookie.Value})
	w2 := httptest.NewRecorder()
	handler.ServeHTTP(w2, req2)

	if seenUserID != cookie.Value {
		t.Errorf("Expected identity %q to be reused, got %q", cookie.Value, seenUserID)
	}
}

func TestMiddleware_RejectsForgedCookie(t *testing.T) {
	repo := newTestRepo(t)

	var seenUserID string
	handler := Middleware(repo, true)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenUserID = UserIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: AnonCookieName, Value: "anon_../../etc/passwd"})
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if seenUserID == "anon_../../etc/passwd" {
		t.Error("Expected forged cookie to be replaced")
	}
	if !isValidAnonID(seenUserID) {
		t.Errorf("Expected a fresh valid ID, got %q", seenUserID)
	}
}

func TestDeriveUsername(t *testing.T) {
	id := "anon_0123456789abcdef0123456789abcdef"
	got := deriveUsername(id)
	if got != "anon-89abcdef" {
		t.Errorf("Expected anon-89abcdef, got %q", got)
	}
	if deriveUsername("short") != "anon-user" {
		t.Errorf("Expected fallback username for short IDs")
	}
}
