package upstream

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ecocruise-admin/internal/config"
	"ecocruise-admin/pkg/logger"
)

func testClient(t *testing.T, serverURL string) *Client {
	t.Helper()
	return NewClient(&config.UpstreamConfig{
		BaseURL:        serverURL,
		SessionCookie:  "token",
		RequestTimeout: 5 * time.Second,
	}, logger.NewNop())
}

func TestClientErrorTaxonomy(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/rate-limited":
			w.WriteHeader(http.StatusTooManyRequests)
		case "/unauthorized":
			w.WriteHeader(http.StatusUnauthorized)
		case "/server-error":
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"error":"something broke"}`))
		default:
			w.Write([]byte(`{"data":[]}`))
		}
	}))
	defer server.Close()

	client := testClient(t, server.URL).WithSession("cookie-value")
	ctx := context.Background()

	if _, err := client.Get(ctx, "/rate-limited"); !errors.Is(err, ErrRateLimited) {
		t.Fatalf("429 error = %v, want ErrRateLimited", err)
	}
	if _, err := client.Get(ctx, "/unauthorized"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("401 error = %v, want ErrUnauthorized", err)
	}

	_, err := client.Get(ctx, "/server-error")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("500 error = %v, want *APIError", err)
	}
	if apiErr.StatusCode != http.StatusInternalServerError || apiErr.Message != "something broke" {
		t.Fatalf("unexpected APIError: %+v", apiErr)
	}

	if _, err := client.Get(ctx, "/ok"); err != nil {
		t.Fatalf("2xx returned error: %v", err)
	}
}

func TestClientSendsSessionCookie(t *testing.T) {
	var gotCookie string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if c, err := r.Cookie("token"); err == nil {
			gotCookie = c.Value
		}
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := testClient(t, server.URL).WithSession("abc123")
	if _, err := client.Get(context.Background(), "/anything"); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if gotCookie != "abc123" {
		t.Fatalf("server saw cookie %q, want abc123", gotCookie)
	}
}

func TestLoginCapturesSessionCookie(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/login" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		http.SetCookie(w, &http.Cookie{Name: "token", Value: "fresh-session"})
		w.Write([]byte(`{"user":{"_id":"a1","email":"admin@x.com","role":"admin"}}`))
	}))
	defer server.Close()

	result, err := testClient(t, server.URL).Login(context.Background(), "admin@x.com", "secret")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if result.SessionCookie != "fresh-session" {
		t.Fatalf("SessionCookie = %q", result.SessionCookie)
	}
	if result.User.ID != "a1" || result.User.Role != "admin" {
		t.Fatalf("unexpected user: %+v", result.User)
	}
}

func TestLoginRejectsMissingCookie(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"user":{"_id":"a1","email":"admin@x.com","role":"admin"}}`))
	}))
	defer server.Close()

	if _, err := testClient(t, server.URL).Login(context.Background(), "admin@x.com", "secret"); err == nil {
		t.Fatal("expected error when login reply has no session cookie")
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"Invalid credentials"}`))
	}))
	defer server.Close()

	_, err := testClient(t, server.URL).Login(context.Background(), "admin@x.com", "wrong")
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusUnauthorized {
		t.Fatalf("error = %v, want 401 APIError", err)
	}
	if apiErr.Message != "Invalid credentials" {
		t.Fatalf("message = %q", apiErr.Message)
	}
}
