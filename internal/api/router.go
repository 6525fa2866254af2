// Package api wires the HTTP surface: the chi router, the middleware chain,
// and the endpoint handlers.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/RX5950XT/portfolio-visualizer/internal/api/handlers"
	custommiddleware "github.com/RX5950XT/portfolio-visualizer/internal/api/middleware"
	"github.com/RX5950XT/portfolio-visualizer/internal/auth"
	"github.com/RX5950XT/portfolio-visualizer/internal/config"
	"github.com/RX5950XT/portfolio-visualizer/internal/marketdata"
	"github.com/RX5950XT/portfolio-visualizer/internal/service"
)

// Services bundles everything the router needs
type Services struct {
	Auth        *auth.Service
	System      *service.SystemService
	Holding     *service.HoldingService
	Valuation   *service.ValuationService
	Portfolio   *service.PortfolioService
	Cash        *service.CashService
	Transaction *service.TransactionService
	Trend       *service.TrendService
	Snapshot    *service.SnapshotService
	Market      marketdata.Provider
}

// NewRouter creates and configures the HTTP router. Reads require any valid
// session; mutations require the admin role; login and the health check are
// public.
func NewRouter(svc Services, cfg *config.Config, log zerolog.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger(log))
	r.Use(middleware.Recoverer)

	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)
	r.Use(custommiddleware.Session(svc.Auth))

	anyRole := custommiddleware.RequireRole(auth.RoleAdmin, auth.RoleGuest)
	adminOnly := custommiddleware.RequireRole(auth.RoleAdmin)

	r.Route("/api", func(r chi.Router) {
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(svc.System)
			r.Get("/health", systemHandler.Health)
		})

		r.Route("/auth", func(r chi.Router) {
			authHandler := handlers.NewAuthHandler(svc.Auth)
			r.Post("/login", authHandler.Login)
			r.Post("/logout", authHandler.Logout)
			r.Get("/session", authHandler.Session)
		})

		r.Route("/holdings", func(r chi.Router) {
			holdingHandler := handlers.NewHoldingHandler(svc.Holding, svc.Valuation)
			r.With(anyRole).Get("/", holdingHandler.Holdings)
			r.With(anyRole).Get("/valuation", holdingHandler.Valuation)
			r.With(adminOnly).Post("/", holdingHandler.CreateHolding)
			r.Route("/{uuid}", func(r chi.Router) {
				// Authorization runs before any request validation
				r.Use(adminOnly)
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Put("/", holdingHandler.UpdateHolding)
				r.Delete("/", holdingHandler.DeleteHolding)
			})
		})

		r.Route("/portfolios", func(r chi.Router) {
			portfolioHandler := handlers.NewPortfolioHandler(svc.Portfolio, svc.Cash)
			r.With(anyRole).Get("/", portfolioHandler.Portfolios)
			r.With(adminOnly).Post("/", portfolioHandler.CreatePortfolio)
			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(adminOnly)
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Put("/", portfolioHandler.UpdatePortfolio)
				r.Delete("/", portfolioHandler.DeletePortfolio)
			})
			r.With(anyRole).Get("/cash", portfolioHandler.CashBalance)
			r.With(adminOnly).Put("/cash", portfolioHandler.SetCashBalance)
		})

		r.Route("/transactions", func(r chi.Router) {
			transactionHandler := handlers.NewTransactionHandler(svc.Transaction)
			r.With(anyRole).Get("/", transactionHandler.Transactions)
			r.With(adminOnly).Post("/sell", transactionHandler.Sell)
			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(adminOnly)
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Delete("/", transactionHandler.DeleteTransaction)
			})
		})

		r.Route("/stocks", func(r chi.Router) {
			stockHandler := handlers.NewStockHandler(svc.Market, cfg.Market, log)
			r.With(anyRole).Get("/quote", stockHandler.Quotes)
			r.With(anyRole).Get("/history", stockHandler.History)
			r.With(anyRole).Get("/exchange", stockHandler.ExchangeRate)
			r.With(anyRole).Get("/expense", stockHandler.ExpenseRatio)
		})

		r.Route("/charts", func(r chi.Router) {
			chartHandler := handlers.NewChartHandler(svc.Trend)
			r.With(anyRole).Get("/asset-trend", chartHandler.AssetTrend)
			r.With(anyRole).Get("/daily-pnl", chartHandler.DailyPnL)
		})

		r.Route("/snapshots", func(r chi.Router) {
			snapshotHandler := handlers.NewSnapshotHandler(svc.Snapshot)
			r.With(anyRole).Get("/", snapshotHandler.Snapshots)
			r.With(adminOnly).Post("/", snapshotHandler.TakeSnapshot)
		})
	})

	return r
}
