package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/RX5950XT/portfolio-visualizer/internal/api"
	"github.com/RX5950XT/portfolio-visualizer/internal/auth"
	"github.com/RX5950XT/portfolio-visualizer/internal/config"
	"github.com/RX5950XT/portfolio-visualizer/internal/database"
	"github.com/RX5950XT/portfolio-visualizer/internal/logger"
	"github.com/RX5950XT/portfolio-visualizer/internal/marketdata"
	"github.com/RX5950XT/portfolio-visualizer/internal/repository"
	"github.com/RX5950XT/portfolio-visualizer/internal/service"
	"github.com/RX5950XT/portfolio-visualizer/internal/yahoo"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zlog := logger.New(logger.Config{Level: cfg.Log.Level, Pretty: cfg.Log.Pretty})

	// Open database connection and run migrations
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		zlog.Fatal().Err(err).Msg("Failed to open database")
	}
	defer db.Close()

	zlog.Info().Str("path", cfg.Database.Path).Msg("Connected to database")

	authService, err := auth.NewService(cfg.Auth)
	if err != nil {
		zlog.Fatal().Err(err).Msg("Failed to initialize auth")
	}

	// Market data provider behind a TTL cache
	market := marketdata.NewCache(yahoo.NewFinanceClient(), cfg.Market.QuoteCacheTTL)

	// Create repositories
	holdingRepo := repository.NewHoldingRepository(db)
	portfolioRepo := repository.NewPortfolioRepository(db)
	cashRepo := repository.NewCashRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)
	snapshotRepo := repository.NewSnapshotRepository(db)

	// Create services
	systemService := service.NewSystemService(db)
	holdingService := service.NewHoldingService(holdingRepo, market, cfg.Market, zlog)
	portfolioService := service.NewPortfolioService(portfolioRepo, zlog)
	cashService := service.NewCashService(cashRepo, zlog)
	valuationService := service.NewValuationService(holdingRepo, cashRepo, market, cfg.Market, zlog)
	trendService := service.NewTrendService(holdingRepo, market, cfg.Market, zlog)
	transactionService := service.NewTransactionService(
		db, transactionRepo, holdingRepo, cashRepo, market, market, cfg.Market, zlog,
	)
	snapshotService := service.NewSnapshotService(snapshotRepo, valuationService, zlog)

	// Daily valuation snapshot
	scheduler := cron.New()
	if cfg.Snapshot.Enabled {
		if _, err := scheduler.AddFunc(cfg.Snapshot.Schedule, snapshotService.Run); err != nil {
			zlog.Fatal().Err(err).Str("schedule", cfg.Snapshot.Schedule).Msg("Invalid snapshot schedule")
		}
		scheduler.Start()
		zlog.Info().Str("schedule", cfg.Snapshot.Schedule).Msg("Snapshot scheduler started")
	}

	// Create router
	router := api.NewRouter(api.Services{
		Auth:        authService,
		System:      systemService,
		Holding:     holdingService,
		Valuation:   valuationService,
		Portfolio:   portfolioService,
		Cash:        cashService,
		Transaction: transactionService,
		Trend:       trendService,
		Snapshot:    snapshotService,
		Market:      market,
	}, cfg, zlog)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		zlog.Info().Str("addr", cfg.Server.Addr).Msg("Starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zlog.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zlog.Info().Msg("Shutting down server")

	scheduler.Stop()

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		zlog.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	zlog.Info().Msg("Server exited")
}
