package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/taskloop/todo-system/internal/core/domain"
	"github.com/taskloop/todo-system/internal/core/ports"
)

// TodoRepository is the GORM-backed implementation of ports.TodoRepository.
// Every query carries the owner predicate so cross-tenant rows are invisible.
type TodoRepository struct {
	db *gorm.DB
}

func NewTodoRepository(db *gorm.DB) *TodoRepository {
	return &TodoRepository{db: db}
}

func (r *TodoRepository) Create(ctx context.Context, todo *domain.Todo) error {
	if err := r.db.WithContext(ctx).Create(todo).Error; err != nil {
		return fmt.Errorf("insert todo: %w", err)
	}
	return nil
}

func (r *TodoRepository) FindByID(ctx context.Context, ownerID, id uint) (*domain.Todo, error) {
	var todo domain.Todo
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, ownerID).
		First(&todo).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTodoNotFound
		}
		return nil, fmt.Errorf("find todo: %w", err)
	}
	return &todo, nil
}

func (r *TodoRepository) List(ctx context.Context, filter ports.ListTodosFilter) ([]*domain.Todo, int64, error) {
	query := r.db.WithContext(ctx).Model(&domain.Todo{}).Where("user_id = ?", filter.OwnerID)
	switch filter.Filter {
	case domain.FilterPending:
		query = query.Where("is_done = ?", false)
	case domain.FilterCompleted:
		query = query.Where("is_done = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count todos: %w", err)
	}

	offset := (filter.Page - 1) * filter.Limit
	var todos []*domain.Todo
	err := query.
		Order("created_at DESC, id DESC").
		Limit(filter.Limit).
		Offset(offset).
		Find(&todos).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list todos: %w", err)
	}

	return todos, total, nil
}

func (r *TodoRepository) Update(ctx context.Context, ownerID, id uint, fields map[string]any) (*domain.Todo, error) {
	result := r.db.WithContext(ctx).
		Model(&domain.Todo{}).
		Where("id = ? AND user_id = ?", id, ownerID).
		Updates(fields)
	if result.Error != nil {
		return nil, fmt.Errorf("update todo: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, domain.ErrTodoNotFound
	}

	return r.FindByID(ctx, ownerID, id)
}

func (r *TodoRepository) Delete(ctx context.Context, ownerID, id uint) (*domain.Todo, error) {
	todo, err := r.FindByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, ownerID).
		Delete(&domain.Todo{})
	if result.Error != nil {
		return nil, fmt.Errorf("delete todo: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, domain.ErrTodoNotFound
	}

	return todo, nil
}
