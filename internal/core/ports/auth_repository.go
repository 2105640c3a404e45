package ports

import (
	"context"

	"github.com/taskloop/todo-system/internal/core/domain"
)

// AuthRepository defines the persistence operations backing authentication.
type AuthRepository interface {
	// Create inserts a new user. A username or email collision yields
	// domain.ErrUserExists.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id uint) (*domain.User, error)
}
