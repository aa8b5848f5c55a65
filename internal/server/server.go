// Package server contains HTTP handlers for the application's API endpoints.
package server

import (
	"context"
	"fmt"
	"time"

	"nestlink/internal/cache"
	"nestlink/internal/config"
	"nestlink/internal/database"
	"nestlink/internal/middleware"
	"nestlink/internal/repository"
	"nestlink/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	promMiddleware *fiberprometheus.FiberPrometheus

	userRepo     repository.UserRepository
	reactionRepo repository.ReactionRepository
	matchRepo    repository.MatchRepository
	messageRepo  repository.MessageRepository
	boardRepo    repository.BoardRepository
	reviewRepo   repository.ReviewRepository
	bookingRepo  repository.BookingRepository

	userService       *service.UserService
	reactionService   *service.ReactionService
	chatService       *service.ChatService
	boardService      *service.BoardService
	reputationService *service.ReputationService
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)

	return NewServerWithDeps(cfg, db, cache.GetClient()), nil
}

// NewServerWithDeps creates a Server from already-initialized dependencies.
// Tests use this to inject an in-memory DB and a miniredis client.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *Server {
	userRepo := repository.NewUserRepository(db)
	reactionRepo := repository.NewReactionRepository(db)
	matchRepo := repository.NewMatchRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	boardRepo := repository.NewBoardRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	bookingRepo := repository.NewBookingRepository(db)

	return &Server{
		config:            cfg,
		db:                db,
		redis:             redisClient,
		promMiddleware:    middleware.InitMetrics("nestlink-api"),
		userRepo:          userRepo,
		reactionRepo:      reactionRepo,
		matchRepo:         matchRepo,
		messageRepo:       messageRepo,
		boardRepo:         boardRepo,
		reviewRepo:        reviewRepo,
		bookingRepo:       bookingRepo,
		userService:       service.NewUserService(userRepo),
		reactionService:   service.NewReactionService(reactionRepo, matchRepo, userRepo),
		chatService:       service.NewChatService(messageRepo, matchRepo, userRepo),
		boardService:      service.NewBoardService(boardRepo, userRepo),
		reputationService: service.NewReputationService(reviewRepo, userRepo),
	}
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Context Middleware to propagate Request ID and User ID
	app.Use(middleware.ContextMiddleware())

	// Prometheus Metrics
	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	// Security headers
	app.Use(helmet.New())

	// Structured Logging middleware (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	// Clients may not cache responses; reads must reflect current state.
	app.Use(middleware.NoStore())

	// CORS runs before middlewares that can short-circuit (e.g. limiter) so
	// browser clients still receive CORS headers on error responses.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000,http://127.0.0.1:5173"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
	}))

	// Global rate limiting (100 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		// Never rate-limit preflight requests.
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests, please try again later.",
			})
		},
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	// Health checks
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	app.Get("/health", s.ReadinessCheck)

	// Metrics endpoint for Prometheus
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	api := app.Group("/api")

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/register", middleware.RateLimit(
		s.redis, 5, 10*time.Minute, "register"), s.Register)
	auth.Post("/login", middleware.RateLimit(
		s.redis, 10, 5*time.Minute, "login"), s.Login)

	// Protected routes
	protected := api.Group("", middleware.AuthRequired)

	// User routes
	users := protected.Group("/users")
	users.Get("/me", s.GetMyProfile)
	users.Put("/me", s.UpdateMyProfile)
	users.Get("/", s.GetAllUsers)
	// Specific routes must be registered BEFORE the generic /:id route
	users.Get("/by-email/:email/karma", s.GetKarmaByEmail)
	users.Get("/by-email/:email", s.GetUserByEmail)
	users.Get("/:id/karma", s.GetKarma)
	users.Post("/:id/karma", s.AddKarma)
	users.Get("/:id/reviews", s.GetReviews)
	users.Post("/:id/reviews", middleware.RateLimit(
		s.redis, 5, time.Minute, "add_review"), s.AddReview)
	users.Get("/:id", s.GetUserProfile)

	// Reaction routes (swipe decisions)
	reactions := protected.Group("/reactions")
	reactions.Post("/", middleware.RateLimit(
		s.redis, 60, time.Minute, "react"), s.React)
	reactions.Get("/", s.GetReactions)
	reactions.Delete("/:email", s.Unreact)

	// Match and messaging routes
	matches := protected.Group("/matches")
	matches.Post("/", s.CreateOrGetMatch)
	matches.Get("/", s.GetMatches)
	matches.Get("/:id/messages", s.GetMessages)
	matches.Post("/:id/messages", middleware.RateLimit(
		s.redis, 30, time.Minute, "send_message"), s.SendMessage)

	messages := protected.Group("/messages")
	messages.Post("/:id/reactions", s.ToggleMessageReaction)

	// Classified board routes
	board := protected.Group("/board")
	board.Post("/posts", middleware.RateLimit(
		s.redis, 5, 5*time.Minute, "create_board_post"), s.CreateBoardPost)
	board.Get("/posts", s.GetBoardPosts)
	board.Get("/saved", s.GetSavedPosts)
	board.Post("/posts/:id/responses", middleware.RateLimit(
		s.redis, 10, time.Minute, "board_respond"), s.RespondToBoardPost)
	board.Post("/posts/:id/save", s.SaveBoardPost)
	board.Delete("/posts/:id/save", s.UnsaveBoardPost)
	board.Get("/posts/:id", s.GetBoardPost)
	board.Patch("/posts/:id", s.UpdateBoardPost)
	board.Delete("/posts/:id", s.DeleteBoardPost)

	// Booking routes (read-only)
	bookings := protected.Group("/bookings")
	bookings.Get("/", s.GetBookings)
	bookings.Get("/:id", s.GetBooking)
}

// LivenessCheck reports that the process is up.
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck verifies the database and Redis connections.
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil || sqlDB.PingContext(ctx) != nil {
		dbStatus = "unhealthy"
	}

	redisStatus := "healthy"
	if s.redis == nil {
		redisStatus = "disabled"
	} else if err := s.redis.Ping(ctx).Err(); err != nil {
		redisStatus = "unhealthy"
	}

	status := fiber.StatusOK
	overall := "ready"
	if dbStatus != "healthy" {
		status = fiber.StatusServiceUnavailable
		overall = "not ready"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overall,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// Shutdown releases the server's database and Redis connections.
func (s *Server) Shutdown(_ context.Context) error {
	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			return err
		}
	}
	if s.db != nil {
		if sqlDB, err := s.db.DB(); err == nil {
			return sqlDB.Close()
		}
	}
	return nil
}
