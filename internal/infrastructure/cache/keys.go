package cache

import "github.com/google/uuid"

// Dashboard cache keys are namespaced per owner so invalidating one
// owner's aggregates never touches another's.
const (
	keyPrefixSummary        = "dashboard:summary:"
	keyPrefixCurrentMonth   = "dashboard:current_month:"
	keyPrefixLastMonth      = "dashboard:last_month:"
	keyPrefixRecentInvoices = "dashboard:recent_invoices:"
	keyPrefixDaily          = "dashboard:daily_performance:"
)

// SummaryKey returns the cache key for an owner's dashboard summary
func SummaryKey(ownerID uuid.UUID) string {
	return keyPrefixSummary + ownerID.String()
}

// CurrentMonthKey returns the cache key for an owner's current month stats
func CurrentMonthKey(ownerID uuid.UUID) string {
	return keyPrefixCurrentMonth + ownerID.String()
}

// LastMonthKey returns the cache key for an owner's previous month stats
func LastMonthKey(ownerID uuid.UUID) string {
	return keyPrefixLastMonth + ownerID.String()
}

// RecentInvoicesKey returns the cache key for an owner's recent invoice list
func RecentInvoicesKey(ownerID uuid.UUID) string {
	return keyPrefixRecentInvoices + ownerID.String()
}

// DailyPerformanceKey returns the cache key for an owner's daily revenue series
func DailyPerformanceKey(ownerID uuid.UUID) string {
	return keyPrefixDaily + ownerID.String()
}

// OwnerKeys returns every dashboard key for one owner. This is the full
// set an invalidation must clear after any mutation of the owner's data.
func OwnerKeys(ownerID uuid.UUID) []string {
	return []string{
		SummaryKey(ownerID),
		CurrentMonthKey(ownerID),
		LastMonthKey(ownerID),
		RecentInvoicesKey(ownerID),
		DailyPerformanceKey(ownerID),
	}
}
