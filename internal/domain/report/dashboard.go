// Package report holds the read models served by the dashboard. These are
// computed aggregates, not persisted entities; they are cached per owner
// and rebuilt on demand after invalidation.
package report

import (
	"time"

	"github.com/shopspring/decimal"
)

// Trend direction of a stat card compared to the previous period
type Trend string

const (
	TrendUp   Trend = "up"
	TrendDown Trend = "down"
	TrendFlat Trend = "flat"
)

// MonthlyStats aggregates billing activity over one calendar month.
type MonthlyStats struct {
	Revenue      decimal.Decimal `json:"revenue"`
	Outstanding  decimal.Decimal `json:"outstanding"`
	InvoiceCount int64           `json:"invoice_count"`
	NewCustomers int64           `json:"new_customers"`
	PeriodStart  time.Time       `json:"period_start"`
	PeriodEnd    time.Time       `json:"period_end"`
}

// StatCard is one headline figure with its change against the prior month.
type StatCard struct {
	Title         string          `json:"title"`
	Value         decimal.Decimal `json:"value"`
	ChangePercent decimal.Decimal `json:"change_percent"`
	Trend         Trend           `json:"trend"`
}

// NewStatCard computes the change and trend of current against previous.
// A zero previous value with a non-zero current reads as a 100% increase,
// matching how the figures were reported before.
func NewStatCard(title string, current, previous decimal.Decimal) StatCard {
	card := StatCard{Title: title, Value: current, Trend: TrendFlat}

	switch {
	case previous.IsZero() && current.IsZero():
		card.ChangePercent = decimal.Zero
	case previous.IsZero():
		card.ChangePercent = decimal.NewFromInt(100)
	default:
		card.ChangePercent = current.Sub(previous).
			Div(previous).
			Mul(decimal.NewFromInt(100)).
			Round(1)
	}

	if card.ChangePercent.IsPositive() {
		card.Trend = TrendUp
	} else if card.ChangePercent.IsNegative() {
		card.Trend = TrendDown
	}

	return card
}

// DailyPoint is one day's revenue on the daily performance chart.
type DailyPoint struct {
	Date    string          `json:"date"`
	Revenue decimal.Decimal `json:"revenue"`
}

// DailyPerformance is the revenue series for the trailing window shown
// on the dashboard chart, oldest day first. Days with no completed
// payments appear with zero revenue so the series has no gaps.
type DailyPerformance struct {
	Points []DailyPoint    `json:"points"`
	Total  decimal.Decimal `json:"total"`
}

// QuickStats is the at-a-glance block: today's activity and how busy
// the shop currently is. BusyLevel is a 0-100 load estimate.
type QuickStats struct {
	TodayRevenue        decimal.Decimal `json:"today_revenue"`
	TodayInvoices       int64           `json:"today_invoices"`
	PendingJobs         int64           `json:"pending_jobs"`
	AverageInvoiceValue decimal.Decimal `json:"average_invoice_value"`
	BusyLevel           int             `json:"busy_level"`
}

// RecentInvoice is a slim projection of an invoice for the recent
// activity list.
type RecentInvoice struct {
	InvoiceNo    int64           `json:"invoice_no"`
	DisplayNo    string          `json:"display_no"`
	CustomerName string          `json:"customer_name"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	PaidAmount   decimal.Decimal `json:"paid_amount"`
	Status       string          `json:"status"`
	IssuedAt     time.Time       `json:"issued_at"`
}

// DashboardSummary is the full dashboard payload for one owner.
type DashboardSummary struct {
	Cards          []StatCard       `json:"cards"`
	CurrentMonth   MonthlyStats     `json:"current_month"`
	LastMonth      MonthlyStats     `json:"last_month"`
	Quick          QuickStats       `json:"quick"`
	Daily          DailyPerformance `json:"daily"`
	RecentInvoices []RecentInvoice  `json:"recent_invoices"`
	GeneratedAt    time.Time        `json:"generated_at"`
}
