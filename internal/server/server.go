// Package server contains the HTTP handlers and route wiring for the API.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	_ "stride/docs" // swagger docs
	"stride/internal/cache"
	"stride/internal/config"
	"stride/internal/database"
	"stride/internal/middleware"
	"stride/internal/repository"
	"stride/internal/service"
	"stride/internal/wechat"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers.
type Server struct {
	config *config.Config
	db     *gorm.DB
	redis  *redis.Client

	authService     *service.AuthService
	userService     *service.UserService
	activityService *service.ActivityService
	postService     *service.PostService
	videoService    *service.VideoService
	adminService    *service.AdminService
}

// NewServer creates a server instance with production dependencies.
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)
	redisClient := cache.GetClient()

	middleware.InitMiddleware(cfg)

	channels, err := cfg.LoadChannels()
	if err != nil {
		return nil, fmt.Errorf("channel configuration failed: %w", err)
	}

	userRepo := repository.NewUserRepository(db)
	activityRepo := repository.NewActivityRepository(db)
	postRepo := repository.NewPostRepository(db)
	videoRepo := repository.NewVideoRepository(db)

	wechatClient := wechat.NewClient(cfg.WechatAppID, cfg.WechatSecret, cfg.WechatAPIBase)
	fetcher := service.NewFeedFetcher("")

	return &Server{
		config:          cfg,
		db:              db,
		redis:           redisClient,
		authService:     service.NewAuthService(userRepo, wechatClient, cfg.JWTSecret),
		userService:     service.NewUserService(userRepo),
		activityService: service.NewActivityService(activityRepo),
		postService:     service.NewPostService(postRepo),
		videoService:    service.NewVideoService(videoRepo, fetcher, channels),
		adminService:    service.NewAdminService(userRepo, activityRepo, postRepo),
	}, nil
}

// NewServerWithDeps creates a server with injected dependencies for testing.
func NewServerWithDeps(
	cfg *config.Config,
	db *gorm.DB,
	redisClient *redis.Client,
	authService *service.AuthService,
	userService *service.UserService,
	activityService *service.ActivityService,
	postService *service.PostService,
	videoService *service.VideoService,
	adminService *service.AdminService,
) *Server {
	middleware.InitMiddleware(cfg)
	return &Server{
		config:          cfg,
		db:              db,
		redis:           redisClient,
		authService:     authService,
		userService:     userService,
		activityService: activityService,
		postService:     postService,
		videoService:    videoService,
		adminService:    adminService,
	}
}

// SetupMiddleware configures middleware for the Fiber app.
func (s *Server) SetupMiddleware(app *fiber.App) {
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(helmet.New())
	app.Use(middleware.ContextMiddleware())

	prometheus := fiberprometheus.New("stride-api")
	prometheus.RegisterAt(app, "/metrics")
	app.Use(prometheus.Middleware)

	if s.config.TracingEnabled {
		app.Use(middleware.TracingMiddleware())
	}

	app.Use(middleware.StructuredLogger())

	// Global per-IP ceiling; endpoint-specific limits use the Redis limiter.
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"success": false,
				"message": "Too many requests, please try again later.",
			})
		},
	}))

	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Admin-Password",
		AllowCredentials: true,
		MaxAge:           86400,
	}))
}

// SetupRoutes configures all routes for the application.
func (s *Server) SetupRoutes(app *fiber.App) {
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)

	api := app.Group("/api")
	api.Get("/swagger/*", swagger.HandlerDefault)

	wx := api.Group("/wechat")
	wx.Post("/login", middleware.RateLimit(s.redis, 10, 5*time.Minute, "login"), s.Login)
	wx.Post("/werun", middleware.AuthRequired, s.SyncSteps)
	wx.Get("/activities/:userId", s.GetActivities)
	wx.Get("/user/:userId", s.GetUser)
	wx.Post("/user/profile", middleware.AuthRequired, s.UpdateProfile)

	social := api.Group("/social")
	social.Get("/posts", s.GetPosts)
	social.Post("/posts", middleware.AuthRequired,
		middleware.RateLimit(s.redis, 5, 5*time.Minute, "create_post"), s.CreatePost)
	social.Delete("/posts/:postId", middleware.AuthRequired, s.DeletePost)

	youtube := api.Group("/youtube")
	youtube.Get("/videos", s.GetVideos)
	youtube.Post("/sync", middleware.AdminRequired, s.SyncVideos)

	admin := api.Group("/admin", middleware.AdminRequired)
	admin.Get("/stats", s.AdminStats)
	admin.Get("/users", s.AdminListUsers)
	admin.Get("/users/:userId", s.AdminUserDetail)
	admin.Get("/posts", s.AdminListPosts)
	admin.Get("/leaderboard", s.AdminLeaderboard)
	admin.Delete("/posts/:postId", s.AdminDeletePost)
}

// LivenessCheck reports that the process is up.
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "alive"})
}

// ReadinessCheck probes the database and Redis.
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	redisStatus := "healthy"
	if s.redis != nil {
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	} else {
		redisStatus = "unavailable"
	}

	status := fiber.StatusOK
	if dbStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
	}

	return c.Status(status).JSON(fiber.Map{
		"status": dbStatus,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// App builds a configured Fiber app.
func (s *Server) App() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName: "Stride API",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			middleware.Logger.ErrorContext(c.UserContext(), "unhandled error",
				slog.String("path", c.Path()), slog.String("error", err.Error()))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"success": false,
				"message": "Internal server error",
			})
		},
	})

	s.SetupMiddleware(app)
	s.SetupRoutes(app)
	return app
}

// Start runs the server until Listen returns.
func (s *Server) Start() error {
	app := s.App()
	middleware.Logger.Info("server starting", slog.String("port", s.config.Port))
	return app.Listen(":" + s.config.Port)
}

// Shutdown closes the server's backing connections.
func (s *Server) Shutdown(ctx context.Context) error {
	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			middleware.Logger.Error("error closing sql DB", slog.String("error", cerr.Error()))
		}
	}
	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			middleware.Logger.Error("error closing redis", slog.String("error", rerr.Error()))
		}
	}
	middleware.Logger.Info("server shutdown complete")
	return nil
}
