package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/tiesadafc/teamapp/internal/auth"
	"github.com/tiesadafc/teamapp/internal/handler"
	"github.com/tiesadafc/teamapp/internal/infra"
	"github.com/tiesadafc/teamapp/internal/ledger"
	"github.com/tiesadafc/teamapp/internal/policy"
	"github.com/tiesadafc/teamapp/internal/repository"
	"github.com/tiesadafc/teamapp/internal/service"
	"github.com/tiesadafc/teamapp/internal/settlement"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := infra.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	pool, err := infra.NewPostgresPool(ctx, cfg)
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	defer pool.Close()
	logger.Info("connected to postgres")

	if err := infra.RunMigrations(cfg.DSN(), logger); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	jwtExpiry, err := time.ParseDuration(cfg.JWTExpiry)
	if err != nil {
		return fmt.Errorf("parse JWT expiry: %w", err)
	}
	jwtMgr := auth.NewJWTManager(cfg.JWTSecret, jwtExpiry)

	// Repositories
	playerRepo := repository.NewPlayerRepository()
	matchRepo := repository.NewMatchRepository()
	betRepo := repository.NewBetRepository()
	txRepo := repository.NewCoinTransactionRepository()
	outboxRepo := repository.NewOutboxRepository()
	authUserRepo := repository.NewAuthUserRepository()

	// Ledger and settlement engines
	ledgerEngine := ledger.NewEngine(playerRepo, txRepo, outboxRepo)
	settlementEngine := settlement.NewEngine(pool, ledgerEngine, betRepo, matchRepo, outboxRepo, logger)

	// Services
	authSvc := service.NewAuthService(pool, authUserRepo, playerRepo, ledgerEngine, outboxRepo, jwtMgr)
	rosterSvc := service.NewRosterService(pool, playerRepo, matchRepo, txRepo, ledgerEngine, outboxRepo, logger)
	matchSvc := service.NewMatchService(pool, matchRepo, playerRepo, outboxRepo, settlementEngine, logger)
	wagerSvc := service.NewWagerService(pool, ledgerEngine, betRepo, matchRepo, outboxRepo, policy.DefaultStakeLimits(), logger)

	// Handlers
	authHandler := handler.NewAuthHandler(authSvc)
	playerHandler := handler.NewPlayerHandler(rosterSvc)
	matchHandler := handler.NewMatchHandler(matchSvc)
	betHandler := handler.NewBetHandler(wagerSvc, settlementEngine)

	// Transactional outbox -> Kafka
	producer := infra.NewKafkaProducer(cfg.KafkaBrokers, cfg.KafkaEnabled, logger)
	defer producer.Close()
	poller := infra.NewOutboxPoller(pool, outboxRepo, producer, logger)
	poller.Start(ctx)

	// Router
	r := chi.NewRouter()

	// Global middleware (order matters)
	r.Use(handler.Recovery(logger))
	r.Use(handler.RequestID)
	r.Use(handler.RequestLogger(logger))
	r.Use(handler.CORS)
	r.Use(handler.JSONContentType)

	// Health (no auth)
	r.Get("/health", handler.HealthHandler(pool))

	// Auth routes (no auth)
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
	})

	// Player-authenticated routes
	r.Group(func(r chi.Router) {
		r.Use(auth.Authenticate(jwtMgr))

		r.Route("/players", func(r chi.Router) {
			r.Get("/", playerHandler.List)
			r.Post("/", playerHandler.Create)
			r.Get("/scoreboard", playerHandler.Scoreboard)
			r.Get("/me", playerHandler.Me)
			r.Get("/me/transactions", playerHandler.MyLedger)
			r.Get("/{playerID}", playerHandler.Get)
		})

		r.Route("/matches", func(r chi.Router) {
			r.Get("/", matchHandler.List)
			r.Post("/", matchHandler.Create)
			r.Get("/{matchID}", matchHandler.Get)
			r.Patch("/{matchID}", matchHandler.Update)
			r.Delete("/{matchID}", matchHandler.Delete)
			r.Post("/{matchID}/attendance", matchHandler.ToggleAttendance)
			r.Put("/{matchID}/lineup", matchHandler.SetLineup)
			r.Post("/{matchID}/finalize", matchHandler.Finalize)
		})

		r.Route("/bets", func(r chi.Router) {
			r.Post("/", betHandler.PlaceStandard)
			r.Get("/me", betHandler.MyBets)
			r.Post("/pvp", betHandler.ProposePvP)
			r.Get("/pvp/open", betHandler.OpenPvP)
			r.Get("/{betID}", betHandler.GetBet)
			r.Post("/{betID}/accept", betHandler.AcceptPvP)
			r.Post("/{betID}/resolve", betHandler.ResolveCustom)
		})
	})

	// Start server
	addr := fmt.Sprintf(":%d", cfg.APIPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	errCh := make(chan error, 1)
	go func() {
		logger.Info("api server starting", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	logger.Info("server stopped gracefully")
	return nil
}
