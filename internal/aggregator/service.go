package aggregator

import (
	"context"
	"time"

	"ecocruise-admin/internal/models"
	"ecocruise-admin/pkg/logger"

	"golang.org/x/sync/errgroup"
)

// Service computes the platform analytics aggregate directly from the
// database. It backs GET /admin/analytics when a Mongo connection is
// configured; otherwise the dashboard proxies the upstream API's aggregate.
type Service struct {
	repo *Repository
	log  *logger.Logger
	now  func() time.Time
}

func NewService(repo *Repository, log *logger.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log.WithField("component", "aggregator"),
		now:  time.Now,
	}
}

// Aggregate computes the analytics window described by the raw query
// parameters. rangeParam takes precedence over from/to.
func (s *Service) Aggregate(ctx context.Context, rangeParam, from, to string) (*models.AnalyticsData, error) {
	started := s.now()
	dateFilter := buildDateFilter(rangeParam, from, to, started)

	var (
		data      models.AnalyticsData
		breakdown []models.PayoutEntry
	)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		n, err := s.repo.CountRides(ctx, dateFilter)
		data.TotalRides = n
		return err
	})
	g.Go(func() error {
		total, err := s.repo.TotalRevenue(ctx, dateFilter)
		data.TotalRevenue = total
		return err
	})
	g.Go(func() error {
		n, err := s.repo.CountActiveDrivers(ctx)
		data.ActiveDrivers = n
		return err
	})
	g.Go(func() error {
		n, err := s.repo.CountByRole(ctx, models.RoleCustomer)
		data.CustomerCount = n
		return err
	})
	g.Go(func() error {
		n, err := s.repo.CountByRole(ctx, models.RoleAdmin)
		data.AdminCount = n
		return err
	})
	g.Go(func() error {
		n, err := s.repo.CountByRole(ctx, models.RoleDriver)
		data.DriverCount = n
		return err
	})
	g.Go(func() error {
		entries, err := s.repo.DriverPayoutBreakdown(ctx, dateFilter)
		breakdown = entries
		return err
	})

	if err := g.Wait(); err != nil {
		s.log.WithError(err).Error("Analytics aggregation failed")
		return nil, err
	}

	var totalPaid float64
	for _, e := range breakdown {
		totalPaid += e.TotalPaid
	}

	data.DriverPayoutBreakdown = breakdown
	data.TotalPaidToDrivers = &totalPaid

	s.log.WithField("duration", s.now().Sub(started)).Info("Analytics aggregation complete")
	return &data, nil
}
