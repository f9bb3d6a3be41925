package api

import (
	"net/http"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/fieldsight/device-monitor/internal/api/handler"
	"github.com/fieldsight/device-monitor/internal/api/middleware"
	"github.com/fieldsight/device-monitor/internal/core/domain"
	"github.com/fieldsight/device-monitor/internal/core/service"
	mongodb "github.com/fieldsight/device-monitor/internal/infrastructure/db/mongo"
	redisdb "github.com/fieldsight/device-monitor/internal/infrastructure/db/redis"
	"github.com/fieldsight/device-monitor/internal/infrastructure/http/handlers"
)

// RouterOptions carries everything the HTTP surface depends on.
type RouterOptions struct {
	Mongo     *mongo.Database
	Redis     *redis.Client
	Broker    handlers.ConnectionChecker
	JWTSecret string
	TokenTTL  time.Duration
	Log       zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(opts RouterOptions) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(opts.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("devicemonitor"))

	// --- Dependencies ---
	identityRepo := mongodb.NewIdentityRepository(opts.Mongo)
	deviceRepo := mongodb.NewDeviceRepository(opts.Mongo)

	authService := service.NewAuthService(identityRepo, opts.JWTSecret, opts.TokenTTL, opts.Log)
	deviceService := service.NewDeviceService(identityRepo, deviceRepo, opts.Log)

	authHandler := handler.NewAuthHandler(authService)
	deviceHandler := handler.NewDeviceHandler(deviceService)
	identityHandler := handler.NewIdentityHandler(deviceService)

	authMiddleware := middleware.Auth(opts.JWTSecret)
	guard := redisdb.NewLoginGuard(opts.Redis)
	loginLimit := middleware.AuthRateLimit(guard, "login", opts.Log)
	resetLimit := middleware.AuthRateLimit(guard, "resetpassword", opts.Log)

	// --- Auth routes ---
	e.POST("/register", authHandler.Register)
	e.POST("/login", authHandler.Login, loginLimit)
	e.POST("/resetpassword", authHandler.ResetPassword, resetLimit)

	// --- Authorized reads ---
	e.GET("/users", identityHandler.List, authMiddleware, middleware.RequireRole(domain.RoleAdmin))
	e.GET("/devices", deviceHandler.ListMine, authMiddleware)
	e.GET("/devices/:deviceId", deviceHandler.Get, authMiddleware)

	// --- Health probes (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(opts.Mongo, opts.Redis, opts.Broker)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Operational surface ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)
	e.GET("/", banner)

	return e
}

func banner(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"service": "device-monitor",
		"version": "1.0",
		"status":  "running",
		"endpoints": []string{
			"POST /register",
			"POST /login",
			"POST /resetpassword",
			"GET /users",
			"GET /devices",
			"GET /devices/:deviceId",
			"GET /health",
			"GET /health/ready",
		},
	})
}
