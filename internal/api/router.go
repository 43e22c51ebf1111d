package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/expertbridge/marketplace-api/docs"
	"github.com/expertbridge/marketplace-api/internal/api/handler"
	"github.com/expertbridge/marketplace-api/internal/api/middleware"
	"github.com/expertbridge/marketplace-api/internal/core/domain"
	"github.com/expertbridge/marketplace-api/internal/core/service"
	"github.com/expertbridge/marketplace-api/internal/infrastructure/config"
	mongorepo "github.com/expertbridge/marketplace-api/internal/infrastructure/db/mongo"
	redisstore "github.com/expertbridge/marketplace-api/internal/infrastructure/db/redis"
)

// NewRouter builds the Echo instance with every dependency wired and every
// route registered.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("marketplace"))

	// --- Repositories and services ---
	accountRepo := mongorepo.NewAccountRepository(db)
	profileRepo := mongorepo.NewProfileRepository(db)
	tokenStore := redisstore.NewTokenStore(rdb)

	issuer := service.NewJWTSessionIssuer(cfg.Session.Secret, cfg.Session.TTL)
	authService := service.NewAuthService(accountRepo, profileRepo, tokenStore, issuer, log)
	profileService := service.NewProfileService(profileRepo, log)
	directoryService := service.NewDirectoryService(accountRepo, profileRepo, log)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService, cfg.IsDevelopment())
	profileHandler := handler.NewProfileHandler(profileService, issuer)
	adminHandler := handler.NewAdminHandler(directoryService)
	pageHandler := handler.NewPageHandler()
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	session := middleware.Session(cfg.Session.Secret, tokenStore)
	sessionOptional := middleware.SessionOptional(cfg.Session.Secret, tokenStore)

	// --- Page routes: optional session, policy decides with redirects ---
	pages := e.Group("", sessionOptional, middleware.AccessPolicy())
	pages.GET("/", pageHandler.Home)
	pages.GET("/dashboard", pageHandler.Dashboard)
	pages.GET("/admin", pageHandler.Admin)
	pages.GET("/client/profile/setup", pageHandler.ClientSetup)
	pages.GET("/expert/profile/setup", pageHandler.ExpertSetup)
	pages.GET("/auth/signin", pageHandler.SignIn)
	pages.GET("/auth/error", pageHandler.AuthError)

	// --- Auth API: public except sign-out ---
	auth := e.Group("/api/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/signin", authHandler.SignIn)
	auth.POST("/oauth/callback", authHandler.OAuthCallback)
	auth.POST("/reset-password", authHandler.ResetPassword)
	auth.POST("/signout", authHandler.SignOut, session)

	// --- Profile API: strict session plus role gate ---
	client := e.Group("/api/client", session, middleware.RBAC(domain.RoleClient))
	client.GET("/profile", profileHandler.GetClientProfile)
	client.POST("/profile", profileHandler.UpsertClientProfile)

	expert := e.Group("/api/expert", session, middleware.RBAC(domain.RoleExpert))
	expert.GET("/profile", profileHandler.GetExpertProfile)
	expert.POST("/profile", profileHandler.UpsertExpertProfile)

	// --- Admin API ---
	admin := e.Group("/api/admin", session, middleware.RBAC(domain.RoleAdmin))
	admin.GET("/users", adminHandler.ListAccounts)
	admin.PATCH("/users", adminHandler.SetRole)

	// --- Health probes (no auth required) ---
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)

	// --- Observability and docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	// --- Development-only probes ---
	if cfg.IsDevelopment() {
		diag := handler.NewDiagnosticsHandler(db, authService)
		e.GET("/api/test-db", diag.TestDB)
		e.POST("/api/test-auth", diag.TestAuth)
	}

	return e
}
