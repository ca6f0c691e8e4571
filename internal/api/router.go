package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/technotes/notes-system/docs"
	"github.com/technotes/notes-system/internal/api/handler"
	"github.com/technotes/notes-system/internal/api/middleware"
	"github.com/technotes/notes-system/internal/core/ports"
	"github.com/technotes/notes-system/internal/core/service"
	"github.com/technotes/notes-system/internal/infrastructure/config"
	mongodb "github.com/technotes/notes-system/internal/infrastructure/db/mongo"
	redisdb "github.com/technotes/notes-system/internal/infrastructure/db/redis"
	"github.com/technotes/notes-system/internal/token"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// The audit recorder is created and started by the caller so its workers
// share the process lifecycle.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *goredis.Client, audit ports.AuditRecorder, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORS())
	e.Use(echoprometheus.NewMiddleware("technotes"))

	// --- Dependencies ---
	codec := token.NewCodec(token.Config{
		AccessSecret:  cfg.Token.AccessSecret,
		RefreshSecret: cfg.Token.RefreshSecret,
		AccessTTL:     cfg.Token.AccessTTL,
		RefreshTTL:    cfg.Token.RefreshTTL,
	})

	userRepo := mongodb.NewUserRepository(db)
	noteRepo := mongodb.NewNoteRepository(db)

	authService := service.NewAuthService(userRepo, codec, log)
	noteService := service.NewNoteService(noteRepo, userRepo, log)
	userService := service.NewUserService(userRepo, noteRepo, log)

	authHandler := handler.NewAuthHandler(authService, audit, codec.RefreshTTL())
	noteHandler := handler.NewNoteHandler(noteService)
	userHandler := handler.NewUserHandler(userService)

	requireAuth := middleware.Auth(codec)
	requireElevated := middleware.RequireElevated()
	loginLimiter := redisdb.NewLoginLimiter(rdb, cfg.LoginLimit.MaxAttempts, cfg.LoginLimit.Window)

	// --- Session routes (no bearer token) ---
	e.POST("/auth", authHandler.Login, middleware.LoginRateLimit(loginLimiter, log))
	e.GET("/auth/refresh", authHandler.Refresh)
	e.GET("/auth/logout", authHandler.Logout)

	// --- Notes (any authenticated user; ownership enforced in the service) ---
	notes := e.Group("/notes", requireAuth)
	notes.GET("/all", noteHandler.List)
	notes.GET("/:ticket", noteHandler.Get)
	notes.POST("/create", noteHandler.Create)
	notes.PATCH("/:ticket/update", noteHandler.Update)
	notes.DELETE("/:ticket/delete", noteHandler.Delete)

	// --- Users (elevated roles only) ---
	users := e.Group("/users", requireAuth, requireElevated)
	users.GET("/all", userHandler.List)
	users.GET("/:id", userHandler.Get)
	users.POST("/create", userHandler.Create)
	users.PATCH("/:id/update", userHandler.Update)
	users.DELETE("/:id/delete", userHandler.Delete)

	// --- Health probes and operational endpoints (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
