package dashboard

import (
	"context"
	"sync"

	"ecocruise-admin/internal/models"
	"ecocruise-admin/internal/upstream"
	"ecocruise-admin/pkg/logger"

	"golang.org/x/sync/errgroup"
)

// AnalyticsController assembles the analytics page: platform counts, the
// aggregate for the selected date range, withdrawal totals and the
// per-driver payout breakdown. A load is all-or-nothing: any failed fetch
// yields one error state and no partial summary.
type AnalyticsController struct {
	mu         sync.Mutex
	generation uint64

	client *upstream.Client
	log    *logger.Logger

	summary *models.AnalyticsSummary
	rng     upstream.DateRange
	loading bool
	err     error
}

func NewAnalyticsController(client *upstream.Client, log *logger.Logger) *AnalyticsController {
	return &AnalyticsController{
		client: client,
		log:    log.WithPage("analytics"),
		rng:    upstream.AllTime(),
	}
}

// Load fetches everything the analytics page renders for the given range.
// A load started after this one supersedes it: the stale result is dropped
// instead of overwriting newer state.
func (c *AnalyticsController) Load(ctx context.Context, rng upstream.DateRange) error {
	c.mu.Lock()
	c.generation++
	gen := c.generation
	c.loading = true
	c.err = nil
	client := c.client
	c.mu.Unlock()

	summary, err := fetchAnalyticsSummary(ctx, client, rng)

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.generation {
		return nil
	}
	c.loading = false
	if err != nil {
		c.err = err
		c.summary = nil
		c.log.WithError(err).Error("Analytics load failed")
		return err
	}
	c.summary = summary
	c.rng = rng
	return nil
}

// Summary returns the loaded view model, or the error of the last failed
// load cycle.
func (c *AnalyticsController) Summary() (*models.AnalyticsSummary, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return nil, c.err
	}
	return c.summary, nil
}

func (c *AnalyticsController) Range() upstream.DateRange {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rng
}

func fetchAnalyticsSummary(ctx context.Context, client *upstream.Client, rng upstream.DateRange) (*models.AnalyticsSummary, error) {
	var (
		customerTotal int64
		adminTotal    int64
		driverTotal   int64
		bannedTotal   int64
		routeTotal    int64
		analytics     models.AnalyticsData
		withdrawals   []models.Withdrawal
	)

	g, ctx := errgroup.WithContext(ctx)

	countUsers := func(path string, total *int64) func() error {
		return func() error {
			payload, err := client.Get(ctx, path)
			if err != nil {
				return err
			}
			var users []models.User
			n, err := upstream.DecodeList(payload, &users)
			if err != nil {
				return err
			}
			*total = n
			return nil
		}
	}

	g.Go(countUsers("/admin/users?role=customer", &customerTotal))
	g.Go(countUsers("/admin/users?role=admin", &adminTotal))
	g.Go(countUsers("/admin/users?role=driver", &driverTotal))
	g.Go(countUsers("/admin/users/banned?isBanned=true", &bannedTotal))

	g.Go(func() error {
		payload, err := client.Get(ctx, "/admin/analytics"+rng.Query())
		if err != nil {
			return err
		}
		return upstream.DecodeItem(payload, &analytics)
	})

	g.Go(func() error {
		payload, err := client.Get(ctx, "/admin/withdrawals")
		if err != nil {
			return err
		}
		_, err = upstream.DecodeList(payload, &withdrawals)
		return err
	})

	g.Go(func() error {
		payload, err := client.Get(ctx, "/admin/routes")
		if err != nil {
			return err
		}
		var routes []models.Route
		n, err := upstream.DecodeList(payload, &routes)
		if err != nil {
			return err
		}
		routeTotal = n
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	summary := &models.AnalyticsSummary{
		TotalCustomers:         customerTotal,
		TotalAdmins:            adminTotal,
		TotalDrivers:           driverTotal,
		TotalBanned:            bannedTotal,
		TotalRevenue:           analytics.TotalRevenue,
		TotalDriverWithdrawals: sumWithdrawals(withdrawals, nil),
		TotalPaidToDrivers:     paidToDrivers(&analytics, withdrawals),
		TotalRoutes:            routeTotal,
		ActiveDrivers:          analytics.ActiveDrivers,
		TotalRides:             analytics.TotalRides,
		DriverPayoutBreakdown:  analytics.DriverPayoutBreakdown,
		StudentPayments:        analytics.StudentPayments,
	}
	if summary.DriverPayoutBreakdown == nil {
		summary.DriverPayoutBreakdown = []models.PayoutEntry{}
	}
	if summary.StudentPayments == nil {
		summary.StudentPayments = []models.StudentPayment{}
	}
	return summary, nil
}

// paidToDrivers prefers the aggregate's figure; when the aggregate omits
// it, falls back to summing withdrawals that actually settled.
func paidToDrivers(analytics *models.AnalyticsData, withdrawals []models.Withdrawal) float64 {
	if analytics.TotalPaidToDrivers != nil {
		return *analytics.TotalPaidToDrivers
	}
	settled := map[models.WithdrawalStatus]bool{
		models.WithdrawalStatusApproved: true,
		models.WithdrawalStatusPaid:     true,
	}
	return sumWithdrawals(withdrawals, settled)
}

// sumWithdrawals totals withdrawal amounts, optionally restricted to a
// status set. A nil set sums everything regardless of status.
func sumWithdrawals(withdrawals []models.Withdrawal, statuses map[models.WithdrawalStatus]bool) float64 {
	var total float64
	for _, w := range withdrawals {
		if statuses == nil || statuses[w.Status] {
			total += w.Amount
		}
	}
	return total
}
