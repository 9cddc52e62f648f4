package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/tailorhub/marketplace/internal/api/handler"
	"github.com/tailorhub/marketplace/internal/api/middleware"
	"github.com/tailorhub/marketplace/internal/core/domain"
	"github.com/tailorhub/marketplace/internal/core/ports"
	"github.com/tailorhub/marketplace/internal/core/service"
	mongorepo "github.com/tailorhub/marketplace/internal/infrastructure/db/mongo"
	redisstore "github.com/tailorhub/marketplace/internal/infrastructure/db/redis"
	"github.com/tailorhub/marketplace/pkg/logger"
)

// Dependencies carries the external resources the router wires together.
type Dependencies struct {
	Mongo      *mongo.Database
	Redis      *redis.Client
	Storage    ports.ObjectStorage
	CodeSender ports.CodeSender
	JWTSecret  string
	AIUpstream string
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	log := logger.Get()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("tailorhub"))

	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Repositories ---
	userRepo := mongorepo.NewUserRepository(deps.Mongo)
	jobRepo := mongorepo.NewJobRepository(deps.Mongo)
	serviceRepo := mongorepo.NewServiceRepository(deps.Mongo)
	commissionRepo := mongorepo.NewCommissionRepository(deps.Mongo)
	cardRepo := mongorepo.NewCardRepository(deps.Mongo)
	orderRepo := mongorepo.NewOrderRepository(deps.Mongo)
	socialRepo := mongorepo.NewSocialRepository(deps.Mongo)

	codeStore := redisstore.NewCodeStore(deps.Redis)
	limiter := redisstore.NewResendLimiter(deps.Redis)

	// --- Services ---
	authService := service.NewAuthService(userRepo, codeStore, limiter, deps.CodeSender, deps.JWTSecret, 24*time.Hour, log)
	userService := service.NewUserService(userRepo, log)
	jobService := service.NewJobService(jobRepo, log)
	catalogService := service.NewCatalogService(serviceRepo, log)
	adminService := service.NewAdminService(userRepo, commissionRepo, cardRepo, orderRepo, log)
	orderService := service.NewOrderService(orderRepo, serviceRepo, adminService, log)
	socialService := service.NewSocialService(socialRepo, log)
	uploadService := service.NewUploadService(deps.Storage, log)
	chatService := service.NewChatService(deps.AIUpstream, log)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService, uploadService)
	jobHandler := handler.NewJobHandler(jobService, uploadService)
	catalogHandler := handler.NewCatalogHandler(catalogService, uploadService)
	adminHandler := handler.NewAdminHandler(adminService, jobService, uploadService)
	uploadHandler := handler.NewUploadHandler(uploadService)
	orderHandler := handler.NewOrderHandler(orderService)
	socialHandler := handler.NewSocialHandler(socialService, userService)
	chatHandler := handler.NewChatHandler(chatService)

	authMiddleware := middleware.Auth(deps.JWTSecret)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	// --- Auth routes ---
	e.POST("/api/auth/signup", authHandler.Signup)
	e.POST("/api/auth/login", authHandler.Login)
	e.POST("/api/auth/verify-email", authHandler.VerifyEmail)
	e.POST("/api/auth/resend-code", authHandler.ResendCode)

	// --- Public catalog and feed routes ---
	e.GET("/api/jobs", jobHandler.List)
	e.GET("/api/services", catalogHandler.List)
	e.GET("/api/social/feed", socialHandler.Feed)
	e.GET("/api/cards/active", adminHandler.ActiveCard)
	e.GET("/api/admin/cards/active", adminHandler.ActiveCard)
	e.POST("/api/ai/chat", chatHandler.Chat)

	// --- Authenticated routes ---
	authed := e.Group("/api", authMiddleware)
	authed.GET("/users/profile", userHandler.Profile)
	authed.PUT("/users/profile", userHandler.UpdateProfile)
	authed.POST("/jobs", jobHandler.Create)
	authed.POST("/services", catalogHandler.Create)
	authed.POST("/orders", orderHandler.Place)
	authed.GET("/orders", orderHandler.List)
	authed.POST("/social/post", socialHandler.CreatePost)
	authed.POST("/social/like", socialHandler.Like)
	authed.POST("/social/follow", socialHandler.Follow)
	authed.POST("/upload/single", uploadHandler.Single)
	authed.POST("/upload/multiple", uploadHandler.Multiple)

	// --- Admin routes ---
	admin := e.Group("/api/admin", authMiddleware, adminOnly)
	admin.GET("/users", adminHandler.ListUsers)
	admin.GET("/jobs", adminHandler.ListJobs)
	admin.PUT("/jobs/:id/approve", adminHandler.ApproveJob)
	admin.PUT("/jobs/:id/reject", adminHandler.RejectJob)
	admin.GET("/commission/settings", adminHandler.CommissionSettings)
	admin.PUT("/commission/settings", adminHandler.UpdateCommission)
	admin.GET("/commission/stats", adminHandler.CommissionStats)
	admin.GET("/cards", adminHandler.ListCards)
	admin.POST("/cards", adminHandler.CreateCard)
	admin.PUT("/cards/:id", adminHandler.UpdateCard)
	admin.DELETE("/cards/:id", adminHandler.DeleteCard)

	// --- Health probes and operational endpoints ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.Mongo, deps.Redis)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
