package dashboard

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"ecocruise-admin/internal/models"
	"ecocruise-admin/pkg/logger"
)

func settingsUpstream(t *testing.T, putCalls *int64) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/users/profile", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPut {
			atomic.AddInt64(putCalls, 1)
			w.Write([]byte(`{"success":true}`))
			return
		}
		w.Write([]byte(`{"data":{"firstName":"Ada","lastName":"Obi","email":"ada@x.com","phone":"0800"}}`))
	})
	mux.HandleFunc("/users/change-password", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		atomic.AddInt64(putCalls, 1)
		w.Write([]byte(`{"success":true}`))
	})
	return httptest.NewServer(mux)
}

func TestSettingsLoadProfile(t *testing.T) {
	var putCalls int64
	server := settingsUpstream(t, &putCalls)
	defer server.Close()

	c := NewSettingsController(newTestClient(t, server), logger.NewNop())
	if err := c.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	profile, err := c.Profile()
	if err != nil {
		t.Fatalf("Profile: %v", err)
	}
	if profile.FirstName != "Ada" || profile.Email != "ada@x.com" {
		t.Fatalf("unexpected profile: %+v", profile)
	}
}

func TestUpdateProfileValidation(t *testing.T) {
	var putCalls int64
	server := settingsUpstream(t, &putCalls)
	defer server.Close()

	c := NewSettingsController(newTestClient(t, server), logger.NewNop())

	result := c.UpdateProfile(context.Background(), models.Profile{FirstName: " ", LastName: "Obi", Email: "ada@x.com"})
	if !errors.Is(result.Err, ErrProfileFieldsRequired) {
		t.Fatalf("err = %v, want ErrProfileFieldsRequired", result.Err)
	}
	if putCalls != 0 {
		t.Fatal("invalid profile reached upstream")
	}

	result = c.UpdateProfile(context.Background(), models.Profile{FirstName: "Ada", LastName: "Obi", Email: "ada@x.com"})
	if result.Failed() {
		t.Fatalf("UpdateProfile: %v", result.Err)
	}
	profile, _ := c.Profile()
	if profile == nil || profile.FirstName != "Ada" {
		t.Fatalf("local profile not updated: %+v", profile)
	}
}

func TestChangePasswordValidation(t *testing.T) {
	var putCalls int64
	server := settingsUpstream(t, &putCalls)
	defer server.Close()

	c := NewSettingsController(newTestClient(t, server), logger.NewNop())
	ctx := context.Background()

	cases := []struct {
		name string
		form PasswordChange
		want error
	}{
		{"missing current", PasswordChange{New: "longenough", Confirm: "longenough"}, ErrPasswordFieldsRequired},
		{"missing confirm", PasswordChange{Current: "old", New: "longenough"}, ErrPasswordFieldsRequired},
		{"too short", PasswordChange{Current: "old", New: "short", Confirm: "short"}, ErrPasswordTooShort},
		{"mismatch", PasswordChange{Current: "old", New: "longenough", Confirm: "different1"}, ErrPasswordMismatch},
	}
	for _, tc := range cases {
		result := c.ChangePassword(ctx, tc.form)
		if !errors.Is(result.Err, tc.want) {
			t.Fatalf("%s: err = %v, want %v", tc.name, result.Err, tc.want)
		}
	}
	if putCalls != 0 {
		t.Fatal("invalid password form reached upstream")
	}

	result := c.ChangePassword(ctx, PasswordChange{Current: "old", New: "longenough", Confirm: "longenough"})
	if result.Failed() {
		t.Fatalf("ChangePassword: %v", result.Err)
	}
	if putCalls != 1 {
		t.Fatalf("putCalls = %d, want 1", putCalls)
	}
}
