package dashboard

import (
	"context"
	"sync"

	"ecocruise-admin/internal/models"
	"ecocruise-admin/internal/upstream"
	"ecocruise-admin/pkg/logger"
)

// WithdrawalsController is the driver payout review queue. Results are
// cached per status filter: switching filters reuses a populated cache
// entry, and approving or rejecting invalidates only the current filter's
// entry. A stale entry for another filter stays stale until that filter is
// revisited.
type WithdrawalsController struct {
	mu sync.Mutex

	client *upstream.Client
	log    *logger.Logger

	filter models.WithdrawalStatus
	cache  map[models.WithdrawalStatus][]models.Withdrawal
}

func NewWithdrawalsController(client *upstream.Client, log *logger.Logger) *WithdrawalsController {
	return &WithdrawalsController{
		client: client,
		log:    log.WithPage("withdrawals"),
		filter: models.WithdrawalStatusPending,
		cache:  make(map[models.WithdrawalStatus][]models.Withdrawal),
	}
}

func (c *WithdrawalsController) Filter() models.WithdrawalStatus {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filter
}

// SetFilter switches the queue to a status filter, fetching only when the
// cache has no entry for it. A rate-limited fetch leaves the cache
// untouched and surfaces upstream.ErrRateLimited distinctly.
func (c *WithdrawalsController) SetFilter(ctx context.Context, status models.WithdrawalStatus) ([]models.Withdrawal, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.filter = status
	if cached, ok := c.cache[status]; ok {
		return copyWithdrawals(cached), nil
	}
	return c.fetchLocked(ctx, status)
}

// Withdrawals returns the current filter's entries, fetching on a cache
// miss.
func (c *WithdrawalsController) Withdrawals(ctx context.Context) ([]models.Withdrawal, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if cached, ok := c.cache[c.filter]; ok {
		return copyWithdrawals(cached), nil
	}
	return c.fetchLocked(ctx, c.filter)
}

func (c *WithdrawalsController) fetchLocked(ctx context.Context, status models.WithdrawalStatus) ([]models.Withdrawal, error) {
	payload, err := c.client.Get(ctx, "/admin/withdrawals?status="+string(status))
	if err != nil {
		c.log.WithError(err).WithField("status", string(status)).Error("Withdrawal fetch failed")
		return nil, err
	}

	var withdrawals []models.Withdrawal
	if _, err := upstream.DecodeList(payload, &withdrawals); err != nil {
		return nil, err
	}

	c.cache[status] = withdrawals
	return copyWithdrawals(withdrawals), nil
}

// Approve transitions a pending withdrawal to approved. On success the
// current filter's cache entry is invalidated and refetched.
func (c *WithdrawalsController) Approve(ctx context.Context, id string) Mutation {
	return c.transition(ctx, id, "approve", nil)
}

// Reject transitions a pending withdrawal to rejected with an optional
// note for the driver.
func (c *WithdrawalsController) Reject(ctx context.Context, id, note string) Mutation {
	if note == "" {
		note = "Rejected by admin"
	}
	return c.transition(ctx, id, "reject", map[string]string{"note": note})
}

func (c *WithdrawalsController) transition(ctx context.Context, id, action string, body interface{}) Mutation {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := c.client.Patch(ctx, "/admin/withdrawals/"+id+"/"+action, body); err != nil {
		c.log.WithError(err).WithFields(map[string]interface{}{
			"withdrawal_id": id,
			"action":        action,
		}).Error("Withdrawal transition failed")
		return mutationErr(err)
	}

	// Only the filter being viewed is refreshed; other cached filters keep
	// their possibly stale entries until revisited.
	delete(c.cache, c.filter)
	if _, err := c.fetchLocked(ctx, c.filter); err != nil {
		return mutationErr(err)
	}

	c.log.WithFields(map[string]interface{}{
		"withdrawal_id": id,
		"action":        action,
	}).Info("Withdrawal reviewed")
	return Mutation{}
}

// Invalidate drops every cached filter, forcing fresh fetches.
func (c *WithdrawalsController) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache = make(map[models.WithdrawalStatus][]models.Withdrawal)
}

func copyWithdrawals(withdrawals []models.Withdrawal) []models.Withdrawal {
	out := make([]models.Withdrawal, len(withdrawals))
	copy(out, withdrawals)
	return out
}
