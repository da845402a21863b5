package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/washdesk/backend/internal/domain/billing"
	"github.com/washdesk/backend/internal/infrastructure/persistence/owner"
)

// GormDashboardQueries implements DashboardQueries against the invoice
// table. These always read the live rows; caching happens a layer above.
type GormDashboardQueries struct {
	db *gorm.DB
}

// NewGormDashboardQueries creates a new GormDashboardQueries
func NewGormDashboardQueries(db *gorm.DB) *GormDashboardQueries {
	return &GormDashboardQueries{db: db}
}

// RevenueBetween sums paid amounts on invoices created in [from, to)
func (q *GormDashboardQueries) RevenueBetween(ctx context.Context, ownerID uuid.UUID, from, to time.Time) (decimal.Decimal, error) {
	if err := owner.Require(ownerID); err != nil {
		return decimal.Zero, err
	}
	var sum decimal.Decimal
	if err := q.scopedRange(ctx, ownerID, from, to).
		Select("COALESCE(SUM(paid_amount), 0)").
		Scan(&sum).Error; err != nil {
		return decimal.Zero, err
	}
	return sum, nil
}

// OutstandingBetween sums (total - paid) on invoices created in [from, to)
func (q *GormDashboardQueries) OutstandingBetween(ctx context.Context, ownerID uuid.UUID, from, to time.Time) (decimal.Decimal, error) {
	if err := owner.Require(ownerID); err != nil {
		return decimal.Zero, err
	}
	var sum decimal.Decimal
	if err := q.scopedRange(ctx, ownerID, from, to).
		Where("status NOT IN ?", []billing.InvoiceStatus{
			billing.InvoiceStatusCancelled,
		}).
		Select("COALESCE(SUM(total_amount - paid_amount), 0)").
		Scan(&sum).Error; err != nil {
		return decimal.Zero, err
	}
	return sum, nil
}

// CountInvoicesBetween counts invoices created in [from, to)
func (q *GormDashboardQueries) CountInvoicesBetween(ctx context.Context, ownerID uuid.UUID, from, to time.Time) (int64, error) {
	if err := owner.Require(ownerID); err != nil {
		return 0, err
	}
	var count int64
	if err := q.scopedRange(ctx, ownerID, from, to).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountInvoicesByStatusOn counts invoices with the status created on the
// given day
func (q *GormDashboardQueries) CountInvoicesByStatusOn(ctx context.Context, ownerID uuid.UUID, status billing.InvoiceStatus, day time.Time) (int64, error) {
	if err := owner.Require(ownerID); err != nil {
		return 0, err
	}
	start, end := dayRange(day)
	var count int64
	if err := q.scopedRange(ctx, ownerID, start, end).
		Where("status = ?", status).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// DailyRevenue returns per-day paid-amount sums for invoices created in
// [from, to), keyed by "YYYY-MM-DD". Days with no invoices are absent; the
// dashboard fills them with zero.
func (q *GormDashboardQueries) DailyRevenue(ctx context.Context, ownerID uuid.UUID, from, to time.Time) (map[string]decimal.Decimal, error) {
	if err := owner.Require(ownerID); err != nil {
		return nil, err
	}

	var rows []struct {
		Day     string
		Revenue decimal.Decimal
	}
	dayExpr := q.dayExpr()
	if err := q.scopedRange(ctx, ownerID, from, to).
		Select(dayExpr + " AS day, COALESCE(SUM(paid_amount), 0) AS revenue").
		Group(dayExpr).
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	result := make(map[string]decimal.Decimal, len(rows))
	for _, row := range rows {
		result[row.Day] = row.Revenue
	}
	return result, nil
}

// AverageInvoiceValueOn averages paid amounts over invoices created on
// the given day; zero when there are none
func (q *GormDashboardQueries) AverageInvoiceValueOn(ctx context.Context, ownerID uuid.UUID, day time.Time) (decimal.Decimal, error) {
	if err := owner.Require(ownerID); err != nil {
		return decimal.Zero, err
	}
	start, end := dayRange(day)
	var avg decimal.Decimal
	if err := q.scopedRange(ctx, ownerID, start, end).
		Select("COALESCE(AVG(paid_amount), 0)").
		Scan(&avg).Error; err != nil {
		return decimal.Zero, err
	}
	return avg, nil
}

// scopedRange returns the invoice query scoped to one owner and a
// half-open created_at window
func (q *GormDashboardQueries) scopedRange(ctx context.Context, ownerID uuid.UUID, from, to time.Time) *gorm.DB {
	return q.db.WithContext(ctx).
		Model(&billing.Invoice{}).
		Scopes(owner.Scope(ownerID)).
		Where("created_at >= ? AND created_at < ?", from, to)
}

// dayExpr returns the dialect's expression for truncating created_at to
// a YYYY-MM-DD string
func (q *GormDashboardQueries) dayExpr() string {
	if q.db.Dialector.Name() == "postgres" {
		return "to_char(created_at, 'YYYY-MM-DD')"
	}
	return "strftime('%Y-%m-%d', created_at)"
}

// dayRange returns the half-open [midnight, next midnight) window around
// the given instant in its location
func dayRange(day time.Time) (time.Time, time.Time) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	return start, start.AddDate(0, 0, 1)
}

// Ensure GormDashboardQueries implements DashboardQueries
var _ billing.DashboardQueries = (*GormDashboardQueries)(nil)
