package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tiesadafc/teamapp/internal/auth"
	"github.com/tiesadafc/teamapp/internal/domain"
	"github.com/tiesadafc/teamapp/internal/ledger"
	"github.com/tiesadafc/teamapp/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles player registration and login.
type AuthService struct {
	pool    *pgxpool.Pool
	users   repository.AuthUserRepository
	players repository.PlayerRepository
	engine  *ledger.Engine
	outbox  repository.OutboxRepository
	jwtMgr  *auth.JWTManager
}

// NewAuthService creates a new AuthService.
func NewAuthService(
	pool *pgxpool.Pool,
	users repository.AuthUserRepository,
	players repository.PlayerRepository,
	engine *ledger.Engine,
	outbox repository.OutboxRepository,
	jwtMgr *auth.JWTManager,
) *AuthService {
	return &AuthService{
		pool:    pool,
		users:   users,
		players: players,
		engine:  engine,
		outbox:  outbox,
		jwtMgr:  jwtMgr,
	}
}

// RegisterInput holds the registration request fields.
type RegisterInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Position string `json:"position"`
}

// AuthResult is returned on successful registration or login.
type AuthResult struct {
	Token    string    `json:"token"`
	PlayerID uuid.UUID `json:"player_id"`
	Email    string    `json:"email"`
	Name     string    `json:"name"`
	Coins    int64     `json:"coins"`
}

// Register creates a player account within a single transaction: the
// credentials, the roster row and the signing bonus land together.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	if err := domain.ValidateEmail(input.Email); err != nil {
		return nil, domain.ErrValidation(err.Error())
	}
	if len(input.Password) < 8 {
		return nil, domain.ErrValidation("password must be at least 8 characters")
	}
	if err := domain.ValidatePlayerName(input.Name); err != nil {
		return nil, domain.ErrValidation(err.Error())
	}

	existing, err := s.users.FindByEmail(ctx, s.pool, input.Email)
	if err != nil {
		return nil, domain.ErrInternal("find user", err)
	}
	if existing != nil {
		return nil, domain.ErrConflict("email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, domain.ErrInternal("hash password", err)
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, domain.ErrInternal("begin tx", err)
	}
	defer tx.Rollback(ctx)

	playerID := uuid.New()

	authUser := &domain.AuthUser{
		ID:           playerID,
		Email:        input.Email,
		PasswordHash: string(hash),
	}
	if err := s.users.Create(ctx, tx, authUser); err != nil {
		return nil, domain.ErrInternal("create auth user", err)
	}

	player := &domain.Player{
		ID:       playerID,
		Name:     input.Name,
		Position: input.Position,
	}
	if err := s.players.Create(ctx, tx, player); err != nil {
		return nil, domain.ErrInternal("create player", err)
	}

	result, err := s.engine.ExecuteSigningBonus(ctx, tx, domain.SigningBonusParams{
		PlayerID: playerID,
		Amount:   domain.SigningBonusCoins,
	})
	if err != nil {
		return nil, err
	}

	if err := s.outbox.Insert(ctx, tx, domain.NewPlayerCreatedEvent(player)); err != nil {
		return nil, domain.ErrInternal("insert outbox event", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, domain.ErrInternal("commit tx", err)
	}

	token, err := s.jwtMgr.GenerateToken(playerID, input.Email)
	if err != nil {
		return nil, domain.ErrInternal("generate token", err)
	}

	return &AuthResult{
		Token:    token,
		PlayerID: playerID,
		Email:    input.Email,
		Name:     input.Name,
		Coins:    result.Player.Coins,
	}, nil
}

// LoginInput holds the login request fields.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login authenticates a player and returns a JWT.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	user, err := s.users.FindByEmail(ctx, s.pool, input.Email)
	if err != nil {
		return nil, domain.ErrInternal("find user", err)
	}
	if user == nil {
		return nil, domain.ErrUnauthorized("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, domain.ErrUnauthorized("invalid credentials")
	}

	player, err := s.players.FindByID(ctx, s.pool, user.ID)
	if err != nil {
		return nil, domain.ErrInternal("find player", err)
	}
	if player == nil {
		return nil, domain.ErrInternal("player record missing", fmt.Errorf("no players row for %s", user.ID))
	}

	token, err := s.jwtMgr.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, domain.ErrInternal("generate token", err)
	}

	return &AuthResult{
		Token:    token,
		PlayerID: user.ID,
		Email:    user.Email,
		Name:     player.Name,
		Coins:    player.Coins,
	}, nil
}
