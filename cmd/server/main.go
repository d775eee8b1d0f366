package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"payment-gateway/internal/config"
	"payment-gateway/internal/handler"
	"payment-gateway/internal/idgen"
	"payment-gateway/internal/repository"
	"payment-gateway/internal/service"
	"payment-gateway/pkg/database"
	"payment-gateway/pkg/logger"
)

func main() {
	// Initialize logger
	log := logger.NewLogger("payment-gateway")
	defer log.Sync()

	// Load configuration
	cfg := config.Load()

	// Initialize storage
	store, ping, err := openStore(cfg)
	if err != nil {
		log.Fatal("failed to initialize storage", zap.Error(err))
	}

	// Seed the test merchant
	ctx := context.Background()
	if err := service.SeedTestMerchant(ctx, store.Merchants, log); err != nil {
		log.Fatal("failed to seed test merchant", zap.Error(err))
	}

	// Initialize settlement simulator
	settler := service.NewSimulator(cfg.Settlement, store.Payments, store.Orders, log)
	settler.Start()

	// Initialize services
	ids := idgen.NewRandom()
	authService := service.NewAuthService(store.Merchants)
	orderService := service.NewOrderService(store.Orders, ids, log)
	paymentService := service.NewPaymentService(store.Payments, store.Orders, settler, ids, log)

	// Initialize handlers and router
	router := handler.NewRouter(log,
		authService,
		handler.NewOrderHandler(orderService, log),
		handler.NewPaymentHandler(paymentService, log),
		handler.NewHealthHandler(ping),
		handler.NewTestHandler(store.Merchants, log),
	)

	// Start server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("starting server", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Stop accepting requests first, then drain in-flight settlements so
	// no payment is abandoned mid-processing.
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", zap.Error(err))
	}
	if err := settler.Shutdown(shutdownCtx); err != nil {
		log.Error("settlement drain cut short", zap.Error(err))
	}

	log.Info("server exited")
}

func openStore(cfg *config.Config) (*repository.Store, func() error, error) {
	if cfg.StorageDriver == "postgres" {
		db, err := database.NewPostgresDB(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		if err := database.EnsureSchema(db); err != nil {
			return nil, nil, err
		}
		return repository.NewSQLStore(db), db.Ping, nil
	}
	return repository.NewMemoryStore(), nil, nil
}
