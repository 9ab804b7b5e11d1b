package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	financeapp "github.com/orgms/backend/internal/application/finance"
	inventoryapp "github.com/orgms/backend/internal/application/inventory"
	ledgerapp "github.com/orgms/backend/internal/application/ledger"
	salesapp "github.com/orgms/backend/internal/application/sales"
	"github.com/orgms/backend/internal/infrastructure/config"
	"github.com/orgms/backend/internal/infrastructure/event"
	"github.com/orgms/backend/internal/infrastructure/logger"
	"github.com/orgms/backend/internal/infrastructure/persistence"
	"github.com/orgms/backend/internal/interfaces/http/handler"
	"github.com/orgms/backend/internal/interfaces/http/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

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

	log.Info("Starting sales and ledger backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	db, err := persistence.NewDatabase(&cfg.Database, log, logger.MapGormLogLevel(cfg.Log.Level))
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Repositories
	saleRepo := persistence.NewGormSaleRepository(db.DB)
	stockItemRepo := persistence.NewGormStockItemRepository(db.DB)
	stockHistoryRepo := persistence.NewGormStockHistoryRepository(db.DB)
	expenseRepo := persistence.NewGormExpenseRepository(db.DB)
	paymentRepo := persistence.NewGormPaymentRepository(db.DB)
	entryRepo := persistence.NewGormEntryRepository(db.DB)
	saleScope := persistence.NewGormSaleTransactionScope(db.DB)
	stockScope := persistence.NewGormStockTransactionScope(db.DB)

	// Application services
	saleService := salesapp.NewService(saleScope, saleRepo, stockItemRepo, cfg.Ledger.NumberRetries, log)
	inventoryService := inventoryapp.NewService(stockScope, stockItemRepo, stockHistoryRepo, log)
	expenseService := financeapp.NewExpenseService(expenseRepo, log)
	paymentService := financeapp.NewPaymentService(paymentRepo, log)
	ledgerService := ledgerapp.NewService(entryRepo, saleRepo, expenseRepo, paymentRepo, cfg.Ledger.StatementPageSize, log)

	// Event bus wiring: payment and expense events feed the ledger
	eventBus := event.NewInMemoryEventBus(log)

	ledgerSync := ledgerapp.NewSync(entryRepo, log)
	salePaymentHandler := ledgerapp.NewSalePaymentRecordedHandler(ledgerSync)
	expenseHandler := ledgerapp.NewExpenseRecordedHandler(ledgerSync)
	paymentCompletedHandler := ledgerapp.NewPaymentCompletedHandler(ledgerSync)
	eventBus.Subscribe(salePaymentHandler)
	eventBus.Subscribe(expenseHandler)
	eventBus.Subscribe(paymentCompletedHandler)

	log.Info("Ledger event handlers registered",
		zap.Strings("sale_payment_events", salePaymentHandler.EventTypes()),
		zap.Strings("expense_events", expenseHandler.EventTypes()),
		zap.Strings("payment_completed_events", paymentCompletedHandler.EventTypes()),
	)

	if err := eventBus.Start(context.Background()); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		if err := eventBus.Stop(context.Background()); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
	}()

	saleService.SetEventPublisher(eventBus)
	inventoryService.SetEventPublisher(eventBus)
	expenseService.SetEventPublisher(eventBus)
	paymentService.SetEventPublisher(eventBus)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := router.New(log, router.WithAPIVersion("v1"))
	r.Register(
		handler.NewSaleHandler(saleService),
		handler.NewStockHandler(inventoryService),
		handler.NewExpenseHandler(expenseService),
		handler.NewPaymentHandler(paymentService),
		handler.NewLedgerHandler(ledgerService),
	)
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        r.Engine(),
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
