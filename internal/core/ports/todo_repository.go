package ports

import (
	"context"

	"github.com/taskloop/todo-system/internal/core/domain"
)

// ListTodosFilter carries the query parameters for listing todos. OwnerID is
// always set by the service layer; there is no unscoped listing.
type ListTodosFilter struct {
	OwnerID uint
	Filter  domain.TodoFilter // all, pending, completed
	Page    int               // 1-based
	Limit   int               // rows per page
}

// TodoRepository defines persistence operations for todos. Every operation is
// scoped to an owner; a todo belonging to a different owner behaves exactly
// like one that does not exist (domain.ErrTodoNotFound).
type TodoRepository interface {
	Create(ctx context.Context, todo *domain.Todo) error
	FindByID(ctx context.Context, ownerID, id uint) (*domain.Todo, error)
	// List returns a page of todos ordered by creation time descending and
	// the total count of the filtered set.
	List(ctx context.Context, filter ListTodosFilter) ([]*domain.Todo, int64, error)
	// Update applies the given column/value set to the owner's todo and
	// returns the refreshed row. The fields map is assembled by the service;
	// the repository is responsible for parameterization.
	Update(ctx context.Context, ownerID, id uint, fields map[string]any) (*domain.Todo, error)
	// Delete removes the owner's todo and returns its last state.
	Delete(ctx context.Context, ownerID, id uint) (*domain.Todo, error)
}
