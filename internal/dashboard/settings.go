package dashboard

import (
	"context"
	"errors"
	"strings"
	"sync"

	"ecocruise-admin/internal/models"
	"ecocruise-admin/internal/upstream"
	"ecocruise-admin/pkg/logger"
)

var (
	ErrProfileFieldsRequired  = errors.New("first name, last name and email are required")
	ErrPasswordFieldsRequired = errors.New("all password fields are required")
	ErrPasswordTooShort       = errors.New("new password must be at least 8 characters")
	ErrPasswordMismatch       = errors.New("new password and confirmation do not match")
)

// PasswordChange carries the three fields of the change-password form.
type PasswordChange struct {
	Current string `json:"currentPassword"`
	New     string `json:"newPassword"`
	Confirm string `json:"confirmPassword"`
}

// SettingsController backs the account settings page: the editable admin
// profile and the change-password form. Validation happens before any
// upstream call so a rejected form never costs a round-trip.
type SettingsController struct {
	mu sync.Mutex

	client *upstream.Client
	log    *logger.Logger

	profile *models.Profile
	err     error
}

func NewSettingsController(client *upstream.Client, log *logger.Logger) *SettingsController {
	return &SettingsController{
		client: client,
		log:    log.WithPage("settings"),
	}
}

func (c *SettingsController) Load(ctx context.Context) error {
	c.mu.Lock()
	client := c.client
	c.mu.Unlock()

	payload, err := client.Get(ctx, "/users/profile")

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.err = err
		c.profile = nil
		c.log.WithError(err).Error("Profile load failed")
		return err
	}
	var profile models.Profile
	if err := upstream.DecodeItem(payload, &profile); err != nil {
		c.err = err
		c.profile = nil
		return err
	}
	c.err = nil
	c.profile = &profile
	return nil
}

func (c *SettingsController) Profile() (*models.Profile, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return nil, c.err
	}
	return c.profile, nil
}

// UpdateProfile saves the edited profile. On success the local copy is
// replaced with what was submitted; there is no optimistic phase because
// the form itself already shows the edited values.
func (c *SettingsController) UpdateProfile(ctx context.Context, profile models.Profile) Mutation {
	profile.FirstName = strings.TrimSpace(profile.FirstName)
	profile.LastName = strings.TrimSpace(profile.LastName)
	profile.Email = strings.TrimSpace(profile.Email)
	profile.Phone = strings.TrimSpace(profile.Phone)
	if profile.FirstName == "" || profile.LastName == "" || profile.Email == "" {
		return mutationErr(ErrProfileFieldsRequired)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	return runMutation(nil, func() error {
		if _, err := c.client.Put(ctx, "/users/profile", profile); err != nil {
			return err
		}
		c.profile = &profile
		return nil
	})
}

// ChangePassword validates the form and submits it. The current password is
// checked upstream; everything else is rejected locally.
func (c *SettingsController) ChangePassword(ctx context.Context, form PasswordChange) Mutation {
	if form.Current == "" || form.New == "" || form.Confirm == "" {
		return mutationErr(ErrPasswordFieldsRequired)
	}
	if len(form.New) < 8 {
		return mutationErr(ErrPasswordTooShort)
	}
	if form.New != form.Confirm {
		return mutationErr(ErrPasswordMismatch)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	return runMutation(nil, func() error {
		body := map[string]string{
			"currentPassword": form.Current,
			"newPassword":     form.New,
		}
		_, err := c.client.Patch(ctx, "/users/change-password", body)
		return err
	})
}
