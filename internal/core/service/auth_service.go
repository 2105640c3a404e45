package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskloop/todo-system/internal/core/domain"
	"github.com/taskloop/todo-system/internal/core/ports"
)

// sessionClaims is the JWT payload for a session token: the owning user id
// plus the registered expiry/issued-at claims. Tokens are opaque to clients.
type sessionClaims struct {
	UserID uint `json:"uid"`
	jwt.RegisteredClaims
}

// AuthService implements registration, login and token resolution.
type AuthService struct {
	repo      ports.AuthRepository
	jwtSecret []byte
	tokenTTL  time.Duration
	logger    zerolog.Logger
}

func NewAuthService(repo ports.AuthRepository, jwtSecret string, tokenTTL time.Duration, logger zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{repo: repo, jwtSecret: []byte(jwtSecret), tokenTTL: tokenTTL, logger: logger}
}

// Register creates an account and returns it with a fresh session token.
// Duplicate username or email surfaces as domain.ErrUserExists.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (*domain.User, string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	user := &domain.User{
		Username:     strings.TrimSpace(username),
		Email:        normalizeEmail(email),
		PasswordHash: string(hash),
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, "", err
	}

	token, err := s.generateToken(created)
	if err != nil {
		return nil, "", err
	}

	s.logger.Info().Uint("user_id", created.ID).Str("username", created.Username).Msg("user registered")
	return created, token, nil
}

// Login verifies credentials and issues a session token. Unknown email and
// wrong password collapse into the same error so callers cannot enumerate
// registered addresses.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	user, err := s.repo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, "", domain.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, "", domain.ErrInvalidCredentials
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, "", err
	}

	s.logger.Info().Uint("user_id", user.ID).Msg("user logged in")
	return user, token, nil
}

// ResolveToken verifies the token signature and expiry, then loads the user
// it refers to. A structurally valid token whose user has disappeared yields
// domain.ErrUserNotFound; every parse/verify failure yields
// domain.ErrInvalidToken.
func (s *AuthService) ResolveToken(ctx context.Context, token string) (*domain.User, error) {
	claims := &sessionClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.jwtSecret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, domain.ErrInvalidToken
	}

	user, err := s.repo.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	now := time.Now()
	claims := sessionClaims{
		UserID: user.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.jwtSecret)
}

// normalizeEmail lowercases and trims an address so uniqueness and lookup are
// case-insensitive.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
