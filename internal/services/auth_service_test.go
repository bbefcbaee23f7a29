package services

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ecocruise-admin/internal/config"
	"ecocruise-admin/internal/upstream"
	"ecocruise-admin/pkg/logger"
)

func fakePlatform(t *testing.T, role string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "token", Value: "upstream-cookie"})
		w.Write([]byte(`{"user":{"_id":"a1","email":"admin@x.com","role":"` + role + `"}}`))
	})
	mux.HandleFunc("/auth/logout", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true}`))
	})
	mux.HandleFunc("/auth/me", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"user":{"_id":"a1","email":"admin@x.com","role":"` + role + `"}}`))
	})
	return httptest.NewServer(mux)
}

func newAuthService(t *testing.T, serverURL string) *AuthService {
	t.Helper()
	client := upstream.NewClient(&config.UpstreamConfig{
		BaseURL:        serverURL,
		SessionCookie:  "token",
		RequestTimeout: 5 * time.Second,
	}, logger.NewNop())
	return NewAuthService(client, NewMemorySessionStore(), &config.SecurityConfig{
		JWTSecret:  "test-secret",
		SessionTTL: time.Hour,
	}, logger.NewNop())
}

func TestLoginCreatesSessionAndToken(t *testing.T) {
	server := fakePlatform(t, "admin")
	defer server.Close()

	auth := newAuthService(t, server.URL)
	ctx := context.Background()

	session, token, err := auth.Login(ctx, "admin@x.com", "secret")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if session.UpstreamCookie != "upstream-cookie" {
		t.Fatalf("UpstreamCookie = %q", session.UpstreamCookie)
	}
	if session.User.Email != "admin@x.com" {
		t.Fatalf("unexpected user: %+v", session.User)
	}
	if token == "" {
		t.Fatal("no token issued")
	}

	// The token round-trips back to the same session.
	resolved, err := auth.Authenticate(ctx, token)
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if resolved.ID != session.ID {
		t.Fatalf("resolved session %q, want %q", resolved.ID, session.ID)
	}
}

func TestLoginRejectsNonAdmin(t *testing.T) {
	server := fakePlatform(t, "driver")
	defer server.Close()

	auth := newAuthService(t, server.URL)
	if _, _, err := auth.Login(context.Background(), "driver@x.com", "secret"); !errors.Is(err, ErrNotAdmin) {
		t.Fatalf("err = %v, want ErrNotAdmin", err)
	}
}

func TestAuthenticateRejectsGarbage(t *testing.T) {
	server := fakePlatform(t, "admin")
	defer server.Close()

	auth := newAuthService(t, server.URL)
	if _, err := auth.Authenticate(context.Background(), "not-a-jwt"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("err = %v, want ErrInvalidToken", err)
	}
}

func TestAuthenticateRejectsForgedToken(t *testing.T) {
	server := fakePlatform(t, "admin")
	defer server.Close()

	// Token signed with one secret must not validate against another.
	issuer := newAuthService(t, server.URL)
	_, token, err := issuer.Login(context.Background(), "admin@x.com", "secret")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	verifier := newAuthService(t, server.URL)
	verifier.cfg = &config.SecurityConfig{JWTSecret: "other-secret", SessionTTL: time.Hour}
	if _, err := verifier.Authenticate(context.Background(), token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("err = %v, want ErrInvalidToken", err)
	}
}

func TestLogoutDropsSession(t *testing.T) {
	server := fakePlatform(t, "admin")
	defer server.Close()

	auth := newAuthService(t, server.URL)
	ctx := context.Background()

	session, token, err := auth.Login(ctx, "admin@x.com", "secret")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if err := auth.Logout(ctx, session); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if _, err := auth.Authenticate(ctx, token); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("err = %v, want ErrSessionNotFound", err)
	}
}

func TestMemoryStoreExpiry(t *testing.T) {
	store := NewMemorySessionStore()
	ctx := context.Background()

	session := &Session{
		ID:        "s1",
		ExpiresAt: time.Now().Add(-time.Minute),
	}
	if err := store.Save(ctx, session); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := store.Get(ctx, "s1"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("err = %v, want ErrSessionNotFound for expired session", err)
	}
}
