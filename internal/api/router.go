package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"gorm.io/gorm"

	"github.com/taskloop/todo-system/internal/api/handler"
	"github.com/taskloop/todo-system/internal/api/middleware"
	"github.com/taskloop/todo-system/internal/core/service"
	"github.com/taskloop/todo-system/internal/infrastructure/config"
	"github.com/taskloop/todo-system/internal/infrastructure/db/postgres"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *gorm.DB, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log, cfg.IsProduction())

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORS())
	e.Use(echoprometheus.NewMiddleware("todoapi"))

	// --- Dependencies ---
	authRepo := postgres.NewAuthRepository(db)
	todoRepo := postgres.NewTodoRepository(db)

	authService := service.NewAuthService(authRepo, cfg.JWTSecret, cfg.TokenTTL, log)
	todoService := service.NewTodoService(todoRepo, log)

	authHandler := handler.NewAuthHandler(authService)
	todoHandler := handler.NewTodoHandler(todoService)
	healthHandler := handler.NewHealthHandler(db)

	guard := middleware.Auth(authService)

	// --- Auth routes ---
	auth := e.Group("/api/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.GET("/profile", authHandler.Profile, guard)

	// --- Todo routes (all behind the session guard) ---
	todos := e.Group("/api/todos", guard)
	todos.GET("", todoHandler.List)
	todos.POST("", todoHandler.Create)
	todos.GET("/:id", todoHandler.Get)
	todos.PUT("/:id", todoHandler.Update)
	todos.DELETE("/:id", todoHandler.Delete)

	// --- Health probes (no auth required) ---
	e.GET("/health", healthHandler.Liveness)        // liveness  – is the process alive?
	e.GET("/health/ready", healthHandler.Readiness) // readiness – is the database up?

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
