package ports

import (
	"context"

	"github.com/taskloop/todo-system/internal/core/domain"
)

// AuthService defines the use-case operations for accounts and sessions.
type AuthService interface {
	// Register creates an account and returns it with a freshly issued
	// session token bound to the new user.
	Register(ctx context.Context, username, email, password string) (*domain.User, string, error)
	// Login verifies credentials and issues a session token. Unknown email
	// and wrong password are indistinguishable (domain.ErrInvalidCredentials).
	Login(ctx context.Context, email, password string) (*domain.User, string, error)
	// ResolveToken verifies a session token and loads the user it refers to.
	ResolveToken(ctx context.Context, token string) (*domain.User, error)
}
