package app

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tiesadafc/teamapp/internal/auth"
	"github.com/tiesadafc/teamapp/internal/handler"
	"github.com/tiesadafc/teamapp/internal/ledger"
	"github.com/tiesadafc/teamapp/internal/policy"
	"github.com/tiesadafc/teamapp/internal/repository"
	"github.com/tiesadafc/teamapp/internal/service"
	"github.com/tiesadafc/teamapp/internal/settlement"
)

// RouterDeps holds all dependencies needed by NewRouter.
type RouterDeps struct {
	Pool        *pgxpool.Pool
	JWTMgr      *auth.JWTManager
	Logger      *slog.Logger
	StakeLimits policy.StakeLimitPolicy
}

// NewRouter assembles the chi.Router with all routes and middleware.
func NewRouter(deps RouterDeps) chi.Router {
	pool := deps.Pool
	jwtMgr := deps.JWTMgr
	logger := deps.Logger

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
	wagerSvc := service.NewWagerService(pool, ledgerEngine, betRepo, matchRepo, outboxRepo, deps.StakeLimits, logger)

	// Handlers
	authHandler := handler.NewAuthHandler(authSvc)
	playerHandler := handler.NewPlayerHandler(rosterSvc)
	matchHandler := handler.NewMatchHandler(matchSvc)
	betHandler := handler.NewBetHandler(wagerSvc, settlementEngine)

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

	return r
}
