package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/taskloop/todo-system/internal/api/metrics"
	"github.com/taskloop/todo-system/internal/core/domain"
	"github.com/taskloop/todo-system/internal/core/ports"
)

// TodoHandler handles HTTP requests for todo operations. Every operation is
// scoped to the authenticated user resolved by the session guard.
type TodoHandler struct {
	todoService ports.TodoService
}

func NewTodoHandler(todoService ports.TodoService) *TodoHandler {
	return &TodoHandler{todoService: todoService}
}

// List handles GET /api/todos?page&limit&is_done.
//
// @Summary      List the caller's todos
// @Tags         todos
// @Produce      json
// @Security     BearerAuth
// @Param        page     query     int     false  "Page number (default 1)"
// @Param        limit    query     int     false  "Items per page (default 10, max 100)"
// @Param        is_done  query     bool    false  "Filter by completion state"
// @Success      200      {object}  envelope
// @Failure      400      {object}  envelope
// @Failure      401      {object}  envelope
// @Router       /api/todos [get]
func (h *TodoHandler) List(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	input, err := parseListQuery(c)
	if err != nil {
		return err
	}

	result, err := h.todoService.List(c.Request().Context(), user.ID, input)
	if err != nil {
		return err
	}

	// Serialize an empty page as [] rather than null.
	todos := result.Items
	if todos == nil {
		todos = []*domain.Todo{}
	}

	return respond(c, http.StatusOK, "", listTodosData{
		Todos: todos,
		Pagination: paginationResponse{
			CurrentPage:  result.Page,
			TotalPages:   result.TotalPages,
			TotalItems:   result.Total,
			ItemsPerPage: result.Limit,
		},
	})
}

// Get handles GET /api/todos/:id.
//
// @Summary      Get a single todo
// @Tags         todos
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Todo id"
// @Success      200  {object}  envelope
// @Failure      404  {object}  envelope
// @Router       /api/todos/{id} [get]
func (h *TodoHandler) Get(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := parseID(c)
	if err != nil {
		return err
	}

	todo, err := h.todoService.Get(c.Request().Context(), user.ID, id)
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, "", todoData{Todo: todo})
}

// Create handles POST /api/todos.
//
// @Summary      Create a todo
// @Tags         todos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createTodoRequest  true  "Todo details"
// @Success      201   {object}  envelope
// @Failure      400   {object}  envelope
// @Failure      401   {object}  envelope
// @Router       /api/todos [post]
func (h *TodoHandler) Create(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req createTodoRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	todo, err := h.todoService.Create(c.Request().Context(), user.ID, ports.CreateTodoInput{
		Title:       req.Title,
		Description: req.Description,
		IsDone:      req.IsDone,
	})
	if err != nil {
		return err
	}
	metrics.TodosCreatedTotal.Inc()

	return respond(c, http.StatusCreated, "Todo created successfully", todoData{Todo: todo})
}

// Update handles PUT /api/todos/:id. Only the supplied fields change.
//
// @Summary      Update a todo (partial)
// @Tags         todos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                true  "Todo id"
// @Param        body  body      updateTodoRequest  true  "Fields to change"
// @Success      200   {object}  envelope
// @Failure      400   {object}  envelope
// @Failure      404   {object}  envelope
// @Router       /api/todos/{id} [put]
func (h *TodoHandler) Update(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req updateTodoRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	todo, err := h.todoService.Update(c.Request().Context(), user.ID, id, ports.UpdateTodoInput{
		Title:       req.Title,
		Description: req.Description,
		IsDone:      req.IsDone,
	})
	if err != nil {
		return err
	}
	metrics.TodoMutationsTotal.WithLabelValues("update").Inc()

	return respond(c, http.StatusOK, "Todo updated successfully", todoData{Todo: todo})
}

// Delete handles DELETE /api/todos/:id and returns the deleted record.
//
// @Summary      Delete a todo
// @Tags         todos
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Todo id"
// @Success      200  {object}  envelope
// @Failure      404  {object}  envelope
// @Router       /api/todos/{id} [delete]
func (h *TodoHandler) Delete(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := parseID(c)
	if err != nil {
		return err
	}

	todo, err := h.todoService.Delete(c.Request().Context(), user.ID, id)
	if err != nil {
		return err
	}
	metrics.TodoMutationsTotal.WithLabelValues("delete").Inc()

	return respond(c, http.StatusOK, "Todo deleted successfully", deletedTodoData{DeletedTodo: todo})
}

// parseID reads the :id path parameter.
func parseID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, domain.NewValidationError(domain.FieldError{
			Field:   "id",
			Message: "id must be a positive integer",
		})
	}
	return uint(id), nil
}

// parseListQuery reads the page/limit/is_done query parameters, tolerating
// absence but rejecting garbage.
func parseListQuery(c echo.Context) (ports.ListTodosInput, error) {
	var input ports.ListTodosInput
	var fields []domain.FieldError

	if raw := c.QueryParam("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			fields = append(fields, domain.FieldError{Field: "page", Message: "page must be a positive integer"})
		} else {
			input.Page = page
		}
	}
	if raw := c.QueryParam("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 {
			fields = append(fields, domain.FieldError{Field: "limit", Message: "limit must be a positive integer"})
		} else {
			input.Limit = limit
		}
	}
	switch raw := c.QueryParam("is_done"); raw {
	case "":
		input.Filter = domain.FilterAll
	case "true":
		input.Filter = domain.FilterCompleted
	case "false":
		input.Filter = domain.FilterPending
	default:
		fields = append(fields, domain.FieldError{Field: "is_done", Message: "is_done must be a boolean value"})
	}

	if len(fields) > 0 {
		return input, domain.NewValidationError(fields...)
	}
	return input, nil
}
