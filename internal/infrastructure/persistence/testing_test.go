package persistence

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/washdesk/backend/internal/domain/billing"
	"github.com/washdesk/backend/internal/domain/catalog"
	"github.com/washdesk/backend/internal/domain/partner"
	"github.com/washdesk/backend/internal/domain/sequence"
	"github.com/washdesk/backend/internal/domain/workshop"
)

var testDBCounter int64

// setupTestDB creates an in-memory SQLite database shared across the
// connection pool. The pool is capped at one connection so concurrent
// goroutines exercise real lock contention on the shared database.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// A unique name per test keeps shared-cache databases isolated
	name := fmt.Sprintf("file:washdesk_test_%d?mode=memory&cache=shared", atomic.AddInt64(&testDBCounter, 1))

	db, err := gorm.Open(sqlite.Open(name), &gorm.Config{
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&sequence.Counter{},
		&partner.Customer{},
		&catalog.Service{},
		&workshop.JobCard{},
		&billing.Invoice{},
		&billing.InvoiceItem{},
		&billing.Payment{},
	))

	return db
}
