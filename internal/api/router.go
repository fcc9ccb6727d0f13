package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/dogwalk/marketplace/internal/api/handler"
	"github.com/dogwalk/marketplace/internal/api/middleware"
	"github.com/dogwalk/marketplace/internal/core/ports"
	"github.com/dogwalk/marketplace/internal/core/service"
	"github.com/dogwalk/marketplace/internal/core/token"
	"github.com/dogwalk/marketplace/internal/infrastructure/config"
	mongodb "github.com/dogwalk/marketplace/internal/infrastructure/db/mongo"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, db *mongo.Database, sessions ports.SessionStore, rdb *redis.Client, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("dogwalk"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	dogRepo := mongodb.NewDogRepository(db)
	jobRepo := mongodb.NewJobRepository(db)

	codec := token.NewCodec(cfg.JWTSecret, cfg.TokenTTL)
	authService := service.NewAuthService(userRepo, sessions, codec, log)
	userService := service.NewUserService(userRepo, sessions, log)
	dogService := service.NewDogService(dogRepo, userRepo, jobRepo, log)
	jobService := service.NewJobService(jobRepo, userRepo, dogRepo, log)

	guard := middleware.NewGuard(authService, userRepo)
	assembler := handler.NewAssembler(cfg.BaseURL)

	indexHandler := handler.NewIndexHandler(cfg.BaseURL)
	authHandler := handler.NewAuthHandler(authService, codec.TTL())
	jobHandler := handler.NewJobHandler(jobService, assembler)
	userHandler := handler.NewUserHandler(userService, guard, assembler)
	dogHandler := handler.NewDogHandler(dogService, assembler)

	// --- Root & auth routes ---
	e.GET("/", indexHandler.Index)
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout, guard.RequireAuthenticated())

	// --- Job routes ---
	e.GET("/jobs", jobHandler.List)
	e.POST("/jobs", jobHandler.Create, guard.RequireOwner())
	e.GET("/jobs/:id", jobHandler.Get)
	e.DELETE("/jobs/:id", jobHandler.Delete, guard.RequireOwner())
	e.POST("/jobs/:id/accept", jobHandler.Accept, guard.RequireWalker())
	e.POST("/jobs/:id/complete", jobHandler.Complete, guard.RequireWalker())
	e.POST("/jobs/:id/pay", jobHandler.Pay, guard.RequireOwner())

	// --- User & dog routes ---
	e.GET("/users", userHandler.Lookup)
	e.GET("/users/:user_id", userHandler.Get)
	e.PATCH("/users/:user_id", userHandler.Patch, guard.RequireSelf("user_id"))
	e.DELETE("/users/:user_id", userHandler.Delete, guard.RequireSelf("user_id"))

	e.GET("/users/:user_id/dogs", dogHandler.List)
	e.POST("/users/:user_id/dogs", dogHandler.Create, guard.RequireSelf("user_id"))
	e.GET("/users/:user_id/dogs/:id", dogHandler.Get)
	e.PATCH("/users/:user_id/dogs/:id", dogHandler.Patch, guard.RequireSelf("user_id"))
	e.DELETE("/users/:user_id/dogs/:id", dogHandler.Delete, guard.RequireSelf("user_id"))

	// --- Health probes & metrics ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
