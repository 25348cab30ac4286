package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/greenstreet/ledger-api/docs"
	"github.com/greenstreet/ledger-api/internal/api/handler"
	"github.com/greenstreet/ledger-api/internal/api/middleware"
	"github.com/greenstreet/ledger-api/internal/core/ports"
	"github.com/greenstreet/ledger-api/internal/core/service"
	"github.com/greenstreet/ledger-api/internal/infrastructure/config"
	mongodb "github.com/greenstreet/ledger-api/internal/infrastructure/db/mongo"
	redisdb "github.com/greenstreet/ledger-api/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// The token service is constructed by the caller so the cleanup sweeper can
// share it.
func NewRouter(db *mongo.Database, rdb *redis.Client, tokens ports.TokenService, mail ports.MailEnqueuer, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("ledger"))

	// --- Dependencies ---
	identityRepo := mongodb.NewIdentityRepository(db)
	contractorRepo := mongodb.NewContractorRepository(db)
	transactionRepo := mongodb.NewTransactionRepository(db)
	limiter := redisdb.NewAttemptLimiter(rdb, time.Minute, 10)

	minter := service.NewAccessMinter(cfg.SigningKey, cfg.AccessTTL)
	authService := service.NewAuthService(identityRepo, tokens, minter, mail, limiter)
	contractorService := service.NewContractorService(contractorRepo)
	transactionService := service.NewTransactionService(transactionRepo, contractorRepo)

	authHandler := handler.NewAuthHandler(authService, handler.CookieConfig{
		Enabled: cfg.RefreshCookie,
		Domain:  cfg.CookieDomain,
		Secure:  cfg.Production(),
	})
	contractorHandler := handler.NewContractorHandler(contractorService)
	transactionHandler := handler.NewTransactionHandler(transactionService)

	authMiddleware := middleware.Auth(minter)
	if cfg.DisableAuth {
		authMiddleware = middleware.DisabledAuth(cfg.DisableAuthUserID, log)
	}

	// --- Auth routes ---
	e.POST("/register", authHandler.Register)
	e.POST("/login", authHandler.Login)
	e.PUT("/sessions/refresh", authHandler.Refresh)
	e.DELETE("/sessions", authHandler.Logout)

	// --- Protected routes ---
	protected := e.Group("", authMiddleware)
	protected.GET("/users/me", authHandler.Me)

	protected.POST("/contractors", contractorHandler.Create)
	protected.GET("/contractors", contractorHandler.List)
	protected.GET("/contractors/:id", contractorHandler.Get)
	protected.PUT("/contractors/:id", contractorHandler.Rename)
	protected.DELETE("/contractors/:id", contractorHandler.Delete)

	protected.POST("/transactions", transactionHandler.Create)
	protected.GET("/transactions", transactionHandler.List)
	protected.GET("/transactions/:id", transactionHandler.Get)
	protected.PUT("/transactions/:id/status", transactionHandler.Advance)
	protected.DELETE("/transactions/:id", transactionHandler.Delete)

	// --- Operational endpoints (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)          // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
