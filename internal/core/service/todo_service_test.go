package service

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskloop/todo-system/internal/core/domain"
	"github.com/taskloop/todo-system/internal/core/ports"
)

type stubTodoRepo struct {
	todos  map[uint]*domain.Todo
	nextID uint
}

func newStubTodoRepo() *stubTodoRepo {
	return &stubTodoRepo{todos: make(map[uint]*domain.Todo), nextID: 1}
}

func cloneTodo(t *domain.Todo) *domain.Todo {
	if t == nil {
		return nil
	}
	clone := *t
	return &clone
}

func (r *stubTodoRepo) Create(_ context.Context, todo *domain.Todo) error {
	todo.ID = r.nextID
	r.nextID++
	now := time.Now()
	todo.CreatedAt = now
	todo.UpdatedAt = now
	r.todos[todo.ID] = cloneTodo(todo)
	return nil
}

func (r *stubTodoRepo) FindByID(_ context.Context, ownerID, id uint) (*domain.Todo, error) {
	todo, ok := r.todos[id]
	if !ok || todo.UserID != ownerID {
		return nil, domain.ErrTodoNotFound
	}
	return cloneTodo(todo), nil
}

func (r *stubTodoRepo) List(_ context.Context, filter ports.ListTodosFilter) ([]*domain.Todo, int64, error) {
	var matched []*domain.Todo
	for _, todo := range r.todos {
		if todo.UserID != filter.OwnerID {
			continue
		}
		switch filter.Filter {
		case domain.FilterPending:
			if todo.IsDone {
				continue
			}
		case domain.FilterCompleted:
			if !todo.IsDone {
				continue
			}
		}
		matched = append(matched, cloneTodo(todo))
	}

	// Newest first, matching the repository's ordering contract.
	sort.Slice(matched, func(i, j int) bool {
		if matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].ID > matched[j].ID
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := int64(len(matched))
	start := (filter.Page - 1) * filter.Limit
	if start >= len(matched) {
		return nil, total, nil
	}
	end := start + filter.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (r *stubTodoRepo) Update(_ context.Context, ownerID, id uint, fields map[string]any) (*domain.Todo, error) {
	todo, ok := r.todos[id]
	if !ok || todo.UserID != ownerID {
		return nil, domain.ErrTodoNotFound
	}
	if v, ok := fields["title"]; ok {
		todo.Title = v.(string)
	}
	if v, ok := fields["description"]; ok {
		todo.Description = v.(string)
	}
	if v, ok := fields["is_done"]; ok {
		todo.IsDone = v.(bool)
	}
	todo.UpdatedAt = todo.UpdatedAt.Add(time.Second)
	return cloneTodo(todo), nil
}

func (r *stubTodoRepo) Delete(_ context.Context, ownerID, id uint) (*domain.Todo, error) {
	todo, ok := r.todos[id]
	if !ok || todo.UserID != ownerID {
		return nil, domain.ErrTodoNotFound
	}
	delete(r.todos, id)
	return todo, nil
}

func newTestTodoService(repo *stubTodoRepo) *TodoService {
	return NewTodoService(repo, zerolog.Nop())
}

func seedTodos(t *testing.T, svc *TodoService, ownerID uint, n int, done bool) {
	t.Helper()
	for i := 0; i < n; i++ {
		todo, err := svc.Create(context.Background(), ownerID, ports.CreateTodoInput{
			Title:  "task",
			IsDone: done,
		})
		if err != nil {
			t.Fatalf("seed create failed: %v", err)
		}
		if todo.ID == 0 {
			t.Fatalf("expected assigned id")
		}
	}
}

func TestTodoService_Create_Defaults(t *testing.T) {
	repo := newStubTodoRepo()
	svc := newTestTodoService(repo)

	todo, err := svc.Create(context.Background(), 1, ports.CreateTodoInput{Title: "  buy milk  "})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if todo.Title != "buy milk" {
		t.Fatalf("expected trimmed title, got %q", todo.Title)
	}
	if todo.IsDone {
		t.Fatalf("expected new todo to be pending")
	}
	if todo.UserID != 1 {
		t.Fatalf("expected owner 1, got %d", todo.UserID)
	}
}

func TestTodoService_Create_Validation(t *testing.T) {
	repo := newStubTodoRepo()
	svc := newTestTodoService(repo)

	var ve *domain.ValidationError
	if _, err := svc.Create(context.Background(), 1, ports.CreateTodoInput{Title: "   "}); !errors.As(err, &ve) {
		t.Fatalf("expected validation error for blank title, got %v", err)
	}

	long := make([]byte, 201)
	for i := range long {
		long[i] = 'x'
	}
	if _, err := svc.Create(context.Background(), 1, ports.CreateTodoInput{Title: string(long)}); !errors.As(err, &ve) {
		t.Fatalf("expected validation error for oversized title, got %v", err)
	}
}

func TestTodoService_Get_TenantIsolation(t *testing.T) {
	repo := newStubTodoRepo()
	svc := newTestTodoService(repo)

	created, err := svc.Create(context.Background(), 1, ports.CreateTodoInput{Title: "mine"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if _, err := svc.Get(context.Background(), 1, created.ID); err != nil {
		t.Fatalf("owner get failed: %v", err)
	}
	// Another user's todo must look exactly like a missing one.
	if _, err := svc.Get(context.Background(), 2, created.ID); !errors.Is(err, domain.ErrTodoNotFound) {
		t.Fatalf("expected ErrTodoNotFound for foreign todo, got %v", err)
	}
	if _, err := svc.Get(context.Background(), 1, 9999); !errors.Is(err, domain.ErrTodoNotFound) {
		t.Fatalf("expected ErrTodoNotFound for missing todo, got %v", err)
	}
}

func TestTodoService_List_Defaults(t *testing.T) {
	repo := newStubTodoRepo()
	svc := newTestTodoService(repo)

	seedTodos(t, svc, 1, 15, false)

	result, err := svc.List(context.Background(), 1, ports.ListTodosInput{})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if result.Page != 1 || result.Limit != 10 {
		t.Fatalf("expected defaults page=1 limit=10, got page=%d limit=%d", result.Page, result.Limit)
	}
	if len(result.Items) != 10 {
		t.Fatalf("expected 10 items on first page, got %d", len(result.Items))
	}
	if result.Total != 15 || result.TotalPages != 2 {
		t.Fatalf("expected total=15 pages=2, got total=%d pages=%d", result.Total, result.TotalPages)
	}
}

func TestTodoService_List_LimitCap(t *testing.T) {
	repo := newStubTodoRepo()
	svc := newTestTodoService(repo)

	result, err := svc.List(context.Background(), 1, ports.ListTodosInput{Limit: 5000})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if result.Limit != 100 {
		t.Fatalf("expected limit capped at 100, got %d", result.Limit)
	}
}

func TestTodoService_List_Empty(t *testing.T) {
	repo := newStubTodoRepo()
	svc := newTestTodoService(repo)

	result, err := svc.List(context.Background(), 1, ports.ListTodosInput{})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if result.Total != 0 || result.TotalPages != 0 || len(result.Items) != 0 {
		t.Fatalf("expected empty result with zero totals, got %+v", result)
	}
}

func TestTodoService_List_OutOfRangePage(t *testing.T) {
	repo := newStubTodoRepo()
	svc := newTestTodoService(repo)

	seedTodos(t, svc, 1, 3, false)

	result, err := svc.List(context.Background(), 1, ports.ListTodosInput{Page: 7})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(result.Items) != 0 {
		t.Fatalf("expected empty page, got %d items", len(result.Items))
	}
	if result.Total != 3 || result.TotalPages != 1 {
		t.Fatalf("expected total=3 pages=1, got total=%d pages=%d", result.Total, result.TotalPages)
	}
}

func TestTodoService_List_Filter(t *testing.T) {
	repo := newStubTodoRepo()
	svc := newTestTodoService(repo)

	seedTodos(t, svc, 1, 4, false)
	seedTodos(t, svc, 1, 2, true)
	seedTodos(t, svc, 2, 3, false) // other tenant, must never appear

	pending, err := svc.List(context.Background(), 1, ports.ListTodosInput{Filter: domain.FilterPending})
	if err != nil {
		t.Fatalf("list pending failed: %v", err)
	}
	if pending.Total != 4 {
		t.Fatalf("expected 4 pending, got %d", pending.Total)
	}

	completed, err := svc.List(context.Background(), 1, ports.ListTodosInput{Filter: domain.FilterCompleted})
	if err != nil {
		t.Fatalf("list completed failed: %v", err)
	}
	if completed.Total != 2 {
		t.Fatalf("expected 2 completed, got %d", completed.Total)
	}

	all, err := svc.List(context.Background(), 1, ports.ListTodosInput{})
	if err != nil {
		t.Fatalf("list all failed: %v", err)
	}
	if all.Total != 6 {
		t.Fatalf("expected 6 total for owner 1, got %d", all.Total)
	}
	for _, item := range all.Items {
		if item.UserID != 1 {
			t.Fatalf("foreign todo leaked into list: %+v", item)
		}
	}
}

func TestTodoService_Update_Partial(t *testing.T) {
	repo := newStubTodoRepo()
	svc := newTestTodoService(repo)

	created, err := svc.Create(context.Background(), 1, ports.CreateTodoInput{
		Title:       "original",
		Description: "keep me",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	done := true
	updated, err := svc.Update(context.Background(), 1, created.ID, ports.UpdateTodoInput{IsDone: &done})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if !updated.IsDone {
		t.Fatalf("expected is_done true")
	}
	if updated.Title != "original" || updated.Description != "keep me" {
		t.Fatalf("unsupplied fields changed: %+v", updated)
	}
	if !updated.UpdatedAt.After(created.UpdatedAt) {
		t.Fatalf("expected updated_at to be refreshed")
	}
}

func TestTodoService_Update_NoFields(t *testing.T) {
	repo := newStubTodoRepo()
	svc := newTestTodoService(repo)

	created, err := svc.Create(context.Background(), 1, ports.CreateTodoInput{Title: "x"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if _, err := svc.Update(context.Background(), 1, created.ID, ports.UpdateTodoInput{}); !errors.Is(err, domain.ErrNoUpdatableFields) {
		t.Fatalf("expected ErrNoUpdatableFields, got %v", err)
	}
}

func TestTodoService_Update_TenantIsolation(t *testing.T) {
	repo := newStubTodoRepo()
	svc := newTestTodoService(repo)

	created, err := svc.Create(context.Background(), 1, ports.CreateTodoInput{Title: "mine"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	title := "stolen"
	if _, err := svc.Update(context.Background(), 2, created.ID, ports.UpdateTodoInput{Title: &title}); !errors.Is(err, domain.ErrTodoNotFound) {
		t.Fatalf("expected ErrTodoNotFound for foreign update, got %v", err)
	}

	// The original must be untouched.
	got, err := svc.Get(context.Background(), 1, created.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.Title != "mine" {
		t.Fatalf("foreign update modified the todo: %q", got.Title)
	}
}

func TestTodoService_Delete(t *testing.T) {
	repo := newStubTodoRepo()
	svc := newTestTodoService(repo)

	created, err := svc.Create(context.Background(), 1, ports.CreateTodoInput{Title: "ephemeral"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	deleted, err := svc.Delete(context.Background(), 1, created.ID)
	if err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if deleted.ID != created.ID || deleted.Title != "ephemeral" {
		t.Fatalf("expected last state of deleted todo, got %+v", deleted)
	}

	if _, err := svc.Delete(context.Background(), 1, created.ID); !errors.Is(err, domain.ErrTodoNotFound) {
		t.Fatalf("expected ErrTodoNotFound for second delete, got %v", err)
	}
}

func TestTodoService_Delete_TenantIsolation(t *testing.T) {
	repo := newStubTodoRepo()
	svc := newTestTodoService(repo)

	created, err := svc.Create(context.Background(), 1, ports.CreateTodoInput{Title: "mine"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if _, err := svc.Delete(context.Background(), 2, created.ID); !errors.Is(err, domain.ErrTodoNotFound) {
		t.Fatalf("expected ErrTodoNotFound for foreign delete, got %v", err)
	}
	if _, err := svc.Get(context.Background(), 1, created.ID); err != nil {
		t.Fatalf("todo should survive foreign delete: %v", err)
	}
}
