package report

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/washdesk/backend/internal/domain/billing"
	"github.com/washdesk/backend/internal/domain/partner"
	"github.com/washdesk/backend/internal/domain/report"
	"github.com/washdesk/backend/internal/domain/shared"
	"github.com/washdesk/backend/internal/domain/workshop"
	"github.com/washdesk/backend/internal/infrastructure/cache"
	"github.com/washdesk/backend/internal/infrastructure/config"
)

const (
	// dailyWindowDays is the length of the revenue series on the
	// dashboard chart, today included
	dailyWindowDays = 30

	// recentInvoiceLimit caps the recent activity list
	recentInvoiceLimit = 5

	// dailyCapacity is the invoice count treated as a fully busy day
	// when estimating the load level
	dailyCapacity = 50
)

// DashboardService assembles the per-owner dashboard. Each aggregate is
// cached independently under its own key and TTL; mutations elsewhere in
// the system drop all of an owner's keys through the Invalidator, so the
// next read recomputes against live data.
type DashboardService struct {
	queries      billing.DashboardQueries
	invoiceRepo  billing.InvoiceRepository
	customerRepo partner.CustomerRepository
	jobCardRepo  workshop.JobCardRepository
	store        cache.Store
	ttl          config.CacheConfig
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(
	queries billing.DashboardQueries,
	invoiceRepo billing.InvoiceRepository,
	customerRepo partner.CustomerRepository,
	jobCardRepo workshop.JobCardRepository,
	store cache.Store,
	ttl config.CacheConfig,
) *DashboardService {
	return &DashboardService{
		queries:      queries,
		invoiceRepo:  invoiceRepo,
		customerRepo: customerRepo,
		jobCardRepo:  jobCardRepo,
		store:        store,
		ttl:          ttl,
	}
}

// GetDashboard returns the full dashboard payload for one owner
func (s *DashboardService) GetDashboard(ctx context.Context, ownerID uuid.UUID) (*report.DashboardSummary, error) {
	if ownerID == uuid.Nil {
		return nil, shared.ErrOwnerRequired
	}

	now := time.Now()
	currentStart := monthStart(now)
	lastStart := currentStart.AddDate(0, -1, 0)

	current, err := s.monthlyStats(ctx, ownerID, cache.CurrentMonthKey(ownerID), s.ttl.MonthlyStatsTTL, currentStart, currentStart.AddDate(0, 1, 0))
	if err != nil {
		return nil, err
	}

	last, err := s.monthlyStats(ctx, ownerID, cache.LastMonthKey(ownerID), s.ttl.SummaryTTL, lastStart, currentStart)
	if err != nil {
		return nil, err
	}

	quick, err := s.GetQuickStats(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	daily, err := s.GetDailyPerformance(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	recent, err := s.GetRecentInvoices(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	cards := []report.StatCard{
		report.NewStatCard("Revenue", current.Revenue, last.Revenue),
		report.NewStatCard("Outstanding", current.Outstanding, last.Outstanding),
		report.NewStatCard("Invoices", decimal.NewFromInt(current.InvoiceCount), decimal.NewFromInt(last.InvoiceCount)),
		report.NewStatCard("New Customers", decimal.NewFromInt(current.NewCustomers), decimal.NewFromInt(last.NewCustomers)),
	}

	return &report.DashboardSummary{
		Cards:          cards,
		CurrentMonth:   current,
		LastMonth:      last,
		Quick:          quick,
		Daily:          daily,
		RecentInvoices: recent,
		GeneratedAt:    now,
	}, nil
}

// GetQuickStats returns the at-a-glance block for today
func (s *DashboardService) GetQuickStats(ctx context.Context, ownerID uuid.UUID) (report.QuickStats, error) {
	if ownerID == uuid.Nil {
		return report.QuickStats{}, shared.ErrOwnerRequired
	}

	return cache.GetOrCompute(ctx, s.store, cache.SummaryKey(ownerID), s.ttl.SummaryTTL, func(ctx context.Context) (report.QuickStats, error) {
		return s.computeQuickStats(ctx, ownerID)
	})
}

// GetDailyPerformance returns the trailing revenue series for the
// dashboard chart
func (s *DashboardService) GetDailyPerformance(ctx context.Context, ownerID uuid.UUID) (report.DailyPerformance, error) {
	if ownerID == uuid.Nil {
		return report.DailyPerformance{}, shared.ErrOwnerRequired
	}

	return cache.GetOrCompute(ctx, s.store, cache.DailyPerformanceKey(ownerID), s.ttl.DailySeriesTTL, func(ctx context.Context) (report.DailyPerformance, error) {
		return s.computeDailyPerformance(ctx, ownerID)
	})
}

// GetRecentInvoices returns the latest invoices for the activity list
func (s *DashboardService) GetRecentInvoices(ctx context.Context, ownerID uuid.UUID) ([]report.RecentInvoice, error) {
	if ownerID == uuid.Nil {
		return nil, shared.ErrOwnerRequired
	}

	return cache.GetOrCompute(ctx, s.store, cache.RecentInvoicesKey(ownerID), s.ttl.RecentInvoicesTTL, func(ctx context.Context) ([]report.RecentInvoice, error) {
		return s.computeRecentInvoices(ctx, ownerID)
	})
}

func (s *DashboardService) monthlyStats(ctx context.Context, ownerID uuid.UUID, key string, ttl time.Duration, start, end time.Time) (report.MonthlyStats, error) {
	return cache.GetOrCompute(ctx, s.store, key, ttl, func(ctx context.Context) (report.MonthlyStats, error) {
		return s.computeMonthlyStats(ctx, ownerID, start, end)
	})
}

func (s *DashboardService) computeMonthlyStats(ctx context.Context, ownerID uuid.UUID, start, end time.Time) (report.MonthlyStats, error) {
	revenue, err := s.queries.RevenueBetween(ctx, ownerID, start, end)
	if err != nil {
		return report.MonthlyStats{}, err
	}

	outstanding, err := s.queries.OutstandingBetween(ctx, ownerID, start, end)
	if err != nil {
		return report.MonthlyStats{}, err
	}

	invoiceCount, err := s.queries.CountInvoicesBetween(ctx, ownerID, start, end)
	if err != nil {
		return report.MonthlyStats{}, err
	}

	newCustomers, err := s.customerRepo.CountCreatedBetween(ctx, ownerID, start, end)
	if err != nil {
		return report.MonthlyStats{}, err
	}

	return report.MonthlyStats{
		Revenue:      revenue,
		Outstanding:  outstanding,
		InvoiceCount: invoiceCount,
		NewCustomers: newCustomers,
		PeriodStart:  start,
		PeriodEnd:    end,
	}, nil
}

func (s *DashboardService) computeQuickStats(ctx context.Context, ownerID uuid.UUID) (report.QuickStats, error) {
	now := time.Now()
	todayStart := dayStart(now)
	todayEnd := todayStart.AddDate(0, 0, 1)

	revenue, err := s.queries.RevenueBetween(ctx, ownerID, todayStart, todayEnd)
	if err != nil {
		return report.QuickStats{}, err
	}

	invoiceCount, err := s.queries.CountInvoicesBetween(ctx, ownerID, todayStart, todayEnd)
	if err != nil {
		return report.QuickStats{}, err
	}

	pendingJobs, err := s.jobCardRepo.CountOpen(ctx, ownerID)
	if err != nil {
		return report.QuickStats{}, err
	}

	average, err := s.queries.AverageInvoiceValueOn(ctx, ownerID, now)
	if err != nil {
		return report.QuickStats{}, err
	}

	busy := int(invoiceCount * 100 / dailyCapacity)
	if busy > 100 {
		busy = 100
	}

	return report.QuickStats{
		TodayRevenue:        revenue,
		TodayInvoices:       invoiceCount,
		PendingJobs:         pendingJobs,
		AverageInvoiceValue: average,
		BusyLevel:           busy,
	}, nil
}

func (s *DashboardService) computeDailyPerformance(ctx context.Context, ownerID uuid.UUID) (report.DailyPerformance, error) {
	today := dayStart(time.Now())
	from := today.AddDate(0, 0, -(dailyWindowDays - 1))
	to := today.AddDate(0, 0, 1)

	revenueByDay, err := s.queries.DailyRevenue(ctx, ownerID, from, to)
	if err != nil {
		return report.DailyPerformance{}, err
	}

	perf := report.DailyPerformance{
		Points: make([]report.DailyPoint, 0, dailyWindowDays),
		Total:  decimal.Zero,
	}

	// Days without revenue still appear, keeping the series gap-free
	for day := from; day.Before(to); day = day.AddDate(0, 0, 1) {
		key := day.Format("2006-01-02")
		revenue := revenueByDay[key]
		perf.Points = append(perf.Points, report.DailyPoint{Date: key, Revenue: revenue})
		perf.Total = perf.Total.Add(revenue)
	}

	return perf, nil
}

func (s *DashboardService) computeRecentInvoices(ctx context.Context, ownerID uuid.UUID) ([]report.RecentInvoice, error) {
	invoices, err := s.invoiceRepo.FindAll(ctx, ownerID, shared.Filter{
		Page:     1,
		PageSize: recentInvoiceLimit,
		OrderBy:  "created_at",
		OrderDir: "desc",
		Filters:  make(map[string]any),
	})
	if err != nil {
		return nil, err
	}

	names := make(map[uuid.UUID]string)
	recent := make([]report.RecentInvoice, 0, len(invoices))
	for i := range invoices {
		inv := &invoices[i]

		name, ok := names[inv.CustomerID]
		if !ok {
			if customer, err := s.customerRepo.FindByID(ctx, ownerID, inv.CustomerID); err == nil {
				name = customer.Name
			}
			names[inv.CustomerID] = name
		}

		recent = append(recent, report.RecentInvoice{
			InvoiceNo:    inv.InvoiceNo,
			DisplayNo:    inv.DisplayNo(),
			CustomerName: name,
			TotalAmount:  inv.TotalAmount,
			PaidAmount:   inv.PaidAmount,
			Status:       string(inv.Status),
			IssuedAt:     inv.CreatedAt,
		})
	}

	return recent, nil
}

func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

func dayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
