package dashboard

import (
	"context"
	"sync"

	"ecocruise-admin/internal/models"
	"ecocruise-admin/internal/upstream"
	"ecocruise-admin/internal/utils"
	"ecocruise-admin/pkg/logger"

	"golang.org/x/sync/errgroup"
)

// OverviewStats are the stat cards on the dashboard landing page.
type OverviewStats struct {
	TotalCustomers     int64   `json:"totalCustomers"`
	TotalDrivers       int64   `json:"totalDrivers"`
	TotalRoutes        int64   `json:"totalRoutes"`
	TotalRevenue       float64 `json:"totalRevenue"`
	PendingWithdrawals int     `json:"pendingWithdrawals"`
	OpenTickets        int     `json:"openTickets"`
}

// ActivityEntry is one row of the landing page's activity feed, already
// formatted for display.
type ActivityEntry struct {
	Kind  string `json:"kind"`
	Label string `json:"label"`
	When  string `json:"when"`
}

// Overview is the landing page view model: headline stats plus the most
// recent support tickets, newest customers and routes, and the pending
// withdrawal queue awaiting action.
type Overview struct {
	Stats              OverviewStats          `json:"stats"`
	RecentActivity     []ActivityEntry        `json:"recentActivity"`
	RecentTickets      []models.SupportTicket `json:"recentTickets"`
	RecentCustomers    []models.User          `json:"recentCustomers"`
	RecentRoutes       []models.Route         `json:"recentRoutes"`
	PendingWithdrawals []models.Withdrawal    `json:"pendingWithdrawals"`
}

// OverviewController loads the dashboard landing page. Like the analytics
// page, a load is all-or-nothing.
type OverviewController struct {
	mu         sync.Mutex
	generation uint64

	client *upstream.Client
	log    *logger.Logger

	overview *Overview
	loading  bool
	err      error
}

func NewOverviewController(client *upstream.Client, log *logger.Logger) *OverviewController {
	return &OverviewController{
		client: client,
		log:    log.WithPage("overview"),
	}
}

func (c *OverviewController) Load(ctx context.Context) error {
	c.mu.Lock()
	c.generation++
	gen := c.generation
	c.loading = true
	c.err = nil
	client := c.client
	c.mu.Unlock()

	overview, err := fetchOverview(ctx, client)

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.generation {
		return nil
	}
	c.loading = false
	if err != nil {
		c.err = err
		c.overview = nil
		c.log.WithError(err).Error("Overview load failed")
		return err
	}
	c.overview = overview
	return nil
}

func (c *OverviewController) Overview() (*Overview, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return nil, c.err
	}
	return c.overview, nil
}

func fetchOverview(ctx context.Context, client *upstream.Client) (*Overview, error) {
	var (
		customers   []models.User
		customerN   int64
		driverN     int64
		routes      []models.Route
		analytics   models.AnalyticsData
		withdrawals []models.Withdrawal
		tickets     []models.SupportTicket
	)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		payload, err := client.Get(ctx, "/admin/users?role=customer")
		if err != nil {
			return err
		}
		customerN, err = upstream.DecodeList(payload, &customers)
		return err
	})

	g.Go(func() error {
		payload, err := client.Get(ctx, "/admin/users?role=driver")
		if err != nil {
			return err
		}
		var drivers []models.User
		driverN, err = upstream.DecodeList(payload, &drivers)
		return err
	})

	g.Go(func() error {
		payload, err := client.Get(ctx, "/admin/routes")
		if err != nil {
			return err
		}
		_, err = upstream.DecodeList(payload, &routes)
		return err
	})

	g.Go(func() error {
		payload, err := client.Get(ctx, "/admin/analytics")
		if err != nil {
			return err
		}
		return upstream.DecodeItem(payload, &analytics)
	})

	g.Go(func() error {
		payload, err := client.Get(ctx, "/admin/withdrawals?status=pending")
		if err != nil {
			return err
		}
		_, err = upstream.DecodeList(payload, &withdrawals)
		return err
	})

	g.Go(func() error {
		payload, err := client.Get(ctx, "/admin/support-tickets")
		if err != nil {
			return err
		}
		_, err = upstream.DecodeList(payload, &tickets)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	openTickets := 0
	for _, t := range tickets {
		if t.Status == models.TicketStatusOpen {
			openTickets++
		}
	}

	activity := make([]ActivityEntry, 0, 2*utils.RecentActivityLimit)
	for _, t := range head(tickets, utils.RecentActivityLimit) {
		activity = append(activity, ActivityEntry{
			Kind:  "ticket",
			Label: t.Subject,
			When:  utils.TimeAgo(t.CreatedAt),
		})
	}
	for _, w := range head(withdrawals, utils.RecentActivityLimit) {
		activity = append(activity, ActivityEntry{
			Kind:  "withdrawal",
			Label: "Withdrawal of " + utils.FormatCurrency(w.Amount) + " awaiting review",
			When:  utils.TimeAgo(w.CreatedAt),
		})
	}

	return &Overview{
		Stats: OverviewStats{
			TotalCustomers:     customerN,
			TotalDrivers:       driverN,
			TotalRoutes:        int64(len(routes)),
			TotalRevenue:       analytics.TotalRevenue,
			PendingWithdrawals: len(withdrawals),
			OpenTickets:        openTickets,
		},
		RecentActivity:     activity,
		RecentTickets:      head(tickets, utils.RecentActivityLimit),
		RecentCustomers:    head(customers, utils.RecentActivityLimit),
		RecentRoutes:       head(routes, utils.RecentRoutesLimit),
		PendingWithdrawals: withdrawals,
	}, nil
}

// head returns at most n leading items, never nil.
func head[T any](items []T, n int) []T {
	if len(items) > n {
		items = items[:n]
	}
	out := make([]T, len(items))
	copy(out, items)
	return out
}
