package dashboard

import (
	"context"
	"errors"
	"net/url"
	"sync"

	"ecocruise-admin/internal/models"
	"ecocruise-admin/internal/upstream"
	"ecocruise-admin/pkg/logger"
)

var (
	ErrNoUserLoaded  = errors.New("no user loaded")
	ErrInvalidAmount = errors.New("amount must be greater than zero")
	ErrInvalidAction = errors.New("action must be credit or debit")
)

// WalletController is the wallet adjustment tool: a single-record lookup
// by email followed by a credit or debit with an audit note. Only the
// loaded record's balance is patched on success; no list view is involved.
type WalletController struct {
	mu sync.Mutex

	client *upstream.Client
	log    *logger.Logger

	user *models.User
}

func NewWalletController(client *upstream.Client, log *logger.Logger) *WalletController {
	return &WalletController{
		client: client,
		log:    log.WithPage("wallet"),
	}
}

// Lookup finds the first customer matching the email search term. With an
// ambiguous term the upstream's first match wins.
func (c *WalletController) Lookup(ctx context.Context, email string) (*models.User, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.user = nil
	if email == "" {
		return nil, ErrUserNotFound
	}

	payload, err := c.client.Get(ctx, "/admin/users?search="+url.QueryEscape(email)+"&role=customer")
	if err != nil {
		return nil, err
	}

	var users []models.User
	if _, err := upstream.DecodeList(payload, &users); err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, ErrUserNotFound
	}

	user := users[0]
	c.user = &user
	loaded := user
	return &loaded, nil
}

// User returns the currently loaded record, if any.
func (c *WalletController) User() *models.User {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.user == nil {
		return nil
	}
	user := *c.user
	return &user
}

// Adjust credits or debits the loaded user's wallet. On success only the
// wallet balance field of the loaded record is patched from the upstream
// reply.
func (c *WalletController) Adjust(ctx context.Context, adjustment models.WalletAdjustment) Mutation {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.user == nil {
		return mutationErr(ErrNoUserLoaded)
	}
	if adjustment.Amount <= 0 {
		return mutationErr(ErrInvalidAmount)
	}
	if adjustment.Action != models.WalletActionCredit && adjustment.Action != models.WalletActionDebit {
		return mutationErr(ErrInvalidAction)
	}

	payload, err := c.client.Patch(ctx, "/admin/wallet/"+c.user.ID, adjustment)
	if err != nil {
		c.log.WithError(err).WithField("user_id", c.user.ID).Error("Wallet adjustment failed")
		return mutationErr(err)
	}

	var result models.WalletUpdateResult
	if err := upstream.DecodeItem(payload, &result); err != nil {
		return mutationErr(err)
	}

	c.user.Wallet = result.Wallet
	c.log.WithFields(map[string]interface{}{
		"user_id": c.user.ID,
		"action":  string(adjustment.Action),
		"amount":  adjustment.Amount,
	}).Info("Wallet adjusted")
	return Mutation{}
}
