package services

//go:generate mockgen -source=auth.go -destination=mock_auth.go -package=services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sbilibin2017/gw-library-ledger/internal/logger"
	"github.com/sbilibin2017/gw-library-ledger/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// Error variables
var (
	ErrUserAlreadyExists  = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// AccountRepository defines storage operations for accounts.
type AccountRepository interface {
	Create(ctx context.Context, account models.Account) error
	GetByUsername(ctx context.Context, username string) (*models.Account, error)
}

// TokenGenerator defines an interface for generating JWT tokens.
type TokenGenerator interface {
	Generate(ctx context.Context, username string, role models.Role) (string, error)
}

// SessionStore remembers logged out tokens until they expire.
type SessionStore interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
}

// AuthService handles registration, login and logout.
type AuthService struct {
	accounts AccountRepository
	tokens   TokenGenerator
	sessions SessionStore
}

// NewAuthService creates a new AuthService instance. tokens and sessions may be
// nil for callers that only register and authenticate.
func NewAuthService(accounts AccountRepository, tokens TokenGenerator, sessions SessionStore) *AuthService {
	return &AuthService{
		accounts: accounts,
		tokens:   tokens,
		sessions: sessions,
	}
}

// Register creates an account. An empty role registers a User.
func (svc *AuthService) Register(ctx context.Context, username, password, role string) error {
	username = strings.TrimSpace(username)
	if username == "" || strings.TrimSpace(password) == "" {
		return fmt.Errorf("%w: username and password are required", ErrValidation)
	}
	r, ok := models.ParseRole(role)
	if !ok {
		return fmt.Errorf("%w: unknown role %q", ErrValidation, role)
	}

	existing, err := svc.accounts.GetByUsername(ctx, username)
	if err != nil {
		logger.Log.Errorw("failed to check user exists", "err", err)
		return err
	}
	if existing != nil {
		logger.Log.Errorw("user already exists", "username", username)
		return ErrUserAlreadyExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.Errorw("failed to hash password", "err", err)
		return err
	}

	err = svc.accounts.Create(ctx, models.Account{
		Username:     username,
		PasswordHash: string(hashedPassword),
		Role:         r,
		CreatedAt:    time.Now().UTC().Truncate(time.Microsecond),
	})
	if errors.Is(err, models.ErrAlreadyExists) {
		logger.Log.Errorw("user already exists", "username", username)
		return ErrUserAlreadyExists
	}
	if err != nil {
		logger.Log.Errorw("failed to save user", "err", err)
		return err
	}

	logger.Log.Infow("user registered", "username", username, "role", r)
	return nil
}

// Authenticate checks the password and returns the account.
func (svc *AuthService) Authenticate(ctx context.Context, username, password string) (*models.Account, error) {
	account, err := svc.accounts.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		logger.Log.Errorw("failed to get user", "err", err)
		return nil, err
	}
	if account == nil {
		logger.Log.Errorw("user does not exist", "username", username)
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		logger.Log.Errorw("invalid credentials", "username", username)
		return nil, ErrInvalidCredentials
	}
	return account, nil
}

// Login authenticates a user and returns a JWT token with the account role.
func (svc *AuthService) Login(ctx context.Context, username, password string) (string, models.Role, error) {
	account, err := svc.Authenticate(ctx, username, password)
	if err != nil {
		return "", "", err
	}

	token, err := svc.tokens.Generate(ctx, account.Username, account.Role)
	if err != nil {
		logger.Log.Errorw("failed to generate JWT", "err", err)
		return "", "", err
	}

	return token, account.Role, nil
}

// Logout revokes the token until it would have expired anyway.
func (svc *AuthService) Logout(ctx context.Context, tokenID string, expiresAt time.Time) error {
	if tokenID == "" {
		return fmt.Errorf("%w: token id is required", ErrValidation)
	}
	if err := svc.sessions.Revoke(ctx, tokenID, time.Until(expiresAt)); err != nil {
		logger.Log.Errorw("failed to revoke token", "token_id", tokenID, "err", err)
		return err
	}
	return nil
}
