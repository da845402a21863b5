package main

import (
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	billingapp "github.com/washdesk/backend/internal/application/billing"
	catalogapp "github.com/washdesk/backend/internal/application/catalog"
	partnerapp "github.com/washdesk/backend/internal/application/partner"
	reportapp "github.com/washdesk/backend/internal/application/report"
	workshopapp "github.com/washdesk/backend/internal/application/workshop"
	"github.com/washdesk/backend/internal/infrastructure/cache"
	"github.com/washdesk/backend/internal/infrastructure/config"
	"github.com/washdesk/backend/internal/infrastructure/event"
	"github.com/washdesk/backend/internal/infrastructure/logger"
	"github.com/washdesk/backend/internal/infrastructure/persistence"
)

// App bundles the composed services so a transport layer can be mounted
// on top without re-wiring anything.
type App struct {
	Customers *partnerapp.CustomerService
	Catalog   *catalogapp.ServiceCatalogService
	JobCards  *workshopapp.JobCardService
	Invoices  *billingapp.InvoiceService
	Dashboard *reportapp.DashboardService

	db    *persistence.Database
	store cache.Store
	log   *zap.Logger
}

// newApp wires the full service graph: database, cache store, event bus
// with dashboard invalidation, repositories and application services.
func newApp(cfg *config.Config, log *zap.Logger) (*App, error) {
	db, err := persistence.NewDatabase(&cfg.Database)
	if err != nil {
		return nil, err
	}
	log.Info("Database connected successfully")

	// A redis cache backend falls back to the in-memory store when redis
	// is unreachable, so the dashboard never hard-depends on it.
	storeFactory := cache.NewStoreFactory(cfg.Cache, cfg.Redis,
		cache.WithLogger(logger.Named(log, "cache")))
	store, err := storeFactory.CreateStore()
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	// The event bus is synchronous: by the time a mutation returns, the
	// owner's dashboard entries are gone.
	eventBus := event.NewInMemoryEventBus(logger.Named(log, "events"))
	invalidator := reportapp.NewInvalidator(store, logger.Named(log, "cache"))
	eventBus.Subscribe(reportapp.NewDashboardInvalidationHandler(invalidator))

	allocator := persistence.NewGormSequenceAllocator(db.DB, logger.Named(log, "sequence"))
	customerRepo := persistence.NewGormCustomerRepository(db.DB)
	serviceRepo := persistence.NewGormServiceRepository(db.DB)
	jobCardRepo := persistence.NewGormJobCardRepository(db.DB, allocator)
	invoiceRepo := persistence.NewGormInvoiceRepository(db.DB, allocator)
	paymentRepo := persistence.NewGormPaymentRepository(db.DB)
	dashboardQueries := persistence.NewGormDashboardQueries(db.DB)

	return &App{
		Customers: partnerapp.NewCustomerService(customerRepo, eventBus),
		Catalog:   catalogapp.NewServiceCatalogService(serviceRepo),
		JobCards:  workshopapp.NewJobCardService(jobCardRepo, eventBus, cfg.Sequence.MaxRetries),
		Invoices:  billingapp.NewInvoiceService(invoiceRepo, paymentRepo, eventBus, cfg.Sequence.MaxRetries),
		Dashboard: reportapp.NewDashboardService(dashboardQueries, invoiceRepo, customerRepo, jobCardRepo, store, cfg.Cache),
		db:        db,
		store:     store,
		log:       log,
	}, nil
}

// Close releases the database connection and the cache store
func (a *App) Close() {
	if err := a.store.Close(); err != nil {
		a.log.Error("Error closing cache store", zap.Error(err))
	}
	if err := a.db.Close(); err != nil {
		a.log.Error("Error closing database", zap.Error(err))
	}
}

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting WashDesk backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
	)

	app, err := newApp(cfg, log)
	if err != nil {
		log.Fatal("Failed to initialize application", zap.Error(err))
	}
	defer app.Close()

	log.Info("WashDesk backend ready")

	// Wait for shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down")
}
