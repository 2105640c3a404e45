package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/taskloop/todo-system/internal/core/domain"
	"github.com/taskloop/todo-system/internal/core/ports"
)

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100

	maxTitleLen       = 200
	maxDescriptionLen = 1000
)

// TodoService implements owner-scoped CRUD and paginated listing.
type TodoService struct {
	repo   ports.TodoRepository
	logger zerolog.Logger
}

func NewTodoService(repo ports.TodoRepository, logger zerolog.Logger) *TodoService {
	return &TodoService{repo: repo, logger: logger}
}

// List returns one page of the owner's todos plus pagination metadata.
// Out-of-range pages return an empty item list with correct totals.
func (s *TodoService) List(ctx context.Context, ownerID uint, input ports.ListTodosInput) (*ports.ListTodosResult, error) {
	page := input.Page
	if page < 1 {
		page = defaultPage
	}
	limit := input.Limit
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	filter := input.Filter
	if filter == "" {
		filter = domain.FilterAll
	}

	items, total, err := s.repo.List(ctx, ports.ListTodosFilter{
		OwnerID: ownerID,
		Filter:  filter,
		Page:    page,
		Limit:   limit,
	})
	if err != nil {
		s.logger.Error().Err(err).Uint("user_id", ownerID).Msg("failed to list todos")
		return nil, err
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))

	return &ports.ListTodosResult{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}, nil
}

// Get retrieves a single todo. A todo owned by somebody else is reported as
// not found, deliberately indistinguishable from one that does not exist.
func (s *TodoService) Get(ctx context.Context, ownerID, id uint) (*domain.Todo, error) {
	return s.repo.FindByID(ctx, ownerID, id)
}

// Create persists a new todo for the owner. IsDone defaults to false unless
// explicitly supplied.
func (s *TodoService) Create(ctx context.Context, ownerID uint, input ports.CreateTodoInput) (*domain.Todo, error) {
	title := strings.TrimSpace(input.Title)
	if err := validateTodoFields(&title, &input.Description); err != nil {
		return nil, err
	}

	todo := &domain.Todo{
		UserID:      ownerID,
		Title:       title,
		Description: input.Description,
		IsDone:      input.IsDone,
	}
	if err := s.repo.Create(ctx, todo); err != nil {
		s.logger.Error().Err(err).Uint("user_id", ownerID).Msg("failed to create todo")
		return nil, err
	}

	s.logger.Info().Uint("user_id", ownerID).Uint("todo_id", todo.ID).Msg("todo created")
	return todo, nil
}

// Update applies a partial update; only supplied fields change and updated_at
// is refreshed on success. An empty payload is rejected.
func (s *TodoService) Update(ctx context.Context, ownerID, id uint, input ports.UpdateTodoInput) (*domain.Todo, error) {
	if err := validateTodoFields(input.Title, input.Description); err != nil {
		return nil, err
	}

	fields := make(map[string]any)
	if input.Title != nil {
		fields["title"] = strings.TrimSpace(*input.Title)
	}
	if input.Description != nil {
		fields["description"] = *input.Description
	}
	if input.IsDone != nil {
		fields["is_done"] = *input.IsDone
	}
	if len(fields) == 0 {
		return nil, domain.ErrNoUpdatableFields
	}

	todo, err := s.repo.Update(ctx, ownerID, id, fields)
	if err != nil {
		return nil, err
	}

	return todo, nil
}

// Delete removes the owner's todo and returns its last state.
func (s *TodoService) Delete(ctx context.Context, ownerID, id uint) (*domain.Todo, error) {
	todo, err := s.repo.Delete(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Uint("user_id", ownerID).Uint("todo_id", id).Msg("todo deleted")
	return todo, nil
}

// validateTodoFields enforces the title/description constraints for both
// create (non-nil title) and partial update (nil means untouched).
func validateTodoFields(title, description *string) error {
	var fields []domain.FieldError
	if title != nil {
		t := strings.TrimSpace(*title)
		if len(t) == 0 || len(t) > maxTitleLen {
			fields = append(fields, domain.FieldError{
				Field:   "title",
				Message: "title must be between 1 and 200 characters",
			})
		}
	}
	if description != nil && len(*description) > maxDescriptionLen {
		fields = append(fields, domain.FieldError{
			Field:   "description",
			Message: "description must not exceed 1000 characters",
		})
	}
	if len(fields) > 0 {
		return domain.NewValidationError(fields...)
	}
	return nil
}
