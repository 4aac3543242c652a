// Package server contains the HTTP handlers and route wiring for the
// application's server-rendered surface and its small JSON API.
package server

import (
	"fmt"
	"time"

	"warbler/internal/cache"
	"warbler/internal/config"
	"warbler/internal/database"
	"warbler/internal/middleware"
	"warbler/internal/repository"
	"warbler/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers.
type Server struct {
	config   *config.Config
	db       *gorm.DB
	redis    *redis.Client
	sessions *session.Store
	prom     *fiberprometheus.FiberPrometheus

	userRepo    repository.UserRepository
	messageRepo repository.MessageRepository
	followRepo  repository.FollowRepository
	likeRepo    repository.LikeRepository

	authService    *service.AuthService
	userService    *service.UserService
	messageService *service.MessageService
	followService  *service.FollowService
	likeService    *service.LikeService
}

// NewServer creates a server instance with all dependencies, connecting to
// the database and Redis.
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)

	return NewServerWithDB(cfg, db), nil
}

// NewServerWithDB wires a server around an existing database handle.
// Used directly by tests with an in-memory database.
func NewServerWithDB(cfg *config.Config, db *gorm.DB) *Server {
	s := &Server{
		config: cfg,
		db:     db,
		redis:  cache.GetClient(),
		prom:   middleware.InitMetrics("warbler"),
		sessions: session.New(session.Config{
			KeyLookup:      "cookie:warbler_session",
			CookieHTTPOnly: true,
			CookieSameSite: "Lax",
			Expiration:     7 * 24 * time.Hour,
		}),
	}

	s.userRepo = repository.NewUserRepository(db)
	s.messageRepo = repository.NewMessageRepository(db)
	s.followRepo = repository.NewFollowRepository(db)
	s.likeRepo = repository.NewLikeRepository(db)

	s.authService = service.NewAuthService(s.userRepo, cfg.JWTSecret)
	s.userService = service.NewUserService(s.userRepo, s.messageRepo, s.followRepo, s.likeRepo)
	s.messageService = service.NewMessageService(s.messageRepo, s.userRepo, s.followRepo, s.likeRepo)
	s.followService = service.NewFollowService(s.followRepo, s.userRepo)
	s.likeService = service.NewLikeService(s.likeRepo, s.messageRepo)

	return s
}

// SetupMiddleware registers the middleware stack on the app.
func (s *Server) SetupMiddleware(app *fiber.App) {
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(helmet.New())
	app.Use(middleware.ContextMiddleware())
	app.Use(middleware.TracingMiddleware())
	app.Use(middleware.RequestLogger())
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: time.Minute,
	}))

	s.prom.RegisterAt(app, "/metrics")
	app.Use(s.prom.Middleware)

	app.Use(s.LoadCurrentUser)
}

// SetupRoutes registers all routes on the app.
func (s *Server) SetupRoutes(app *fiber.App) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	app.Get("/", s.Home)

	// Credential endpoints get a tighter, redis-backed limit on top of the
	// global one to slow down brute forcing.
	authLimit := middleware.RateLimit(s.redis, "auth", 10, time.Minute)

	app.Get("/signup", s.SignupPage)
	app.Post("/signup", authLimit, s.Signup)
	app.Get("/login", s.LoginPage)
	app.Post("/login", authLimit, s.Login)
	app.Post("/logout", s.Logout)

	app.Get("/users", s.ListUsers)
	// Registered before /users/:id so "profile" is not parsed as an id.
	app.Get("/users/profile", s.RequireAuth, s.EditProfilePage)
	app.Post("/users/profile", s.RequireAuth, s.UpdateProfile)
	app.Get("/users/:id", s.ShowUser)
	app.Get("/users/:id/followers", s.ShowFollowers)
	app.Get("/users/:id/following", s.ShowFollowing)
	app.Get("/users/:id/likes", s.ShowLikes)
	app.Post("/users/follow/:id", s.RequireAuth, s.FollowUser)
	app.Post("/users/stop-following/:id", s.RequireAuth, s.StopFollowingUser)

	app.Get("/messages/new", s.RequireAuth, s.NewMessagePage)
	app.Post("/messages/new", s.RequireAuth, s.CreateMessage)
	app.Get("/messages/:id", s.ShowMessage)
	app.Post("/messages/:id/delete", s.RequireAuth, s.DeleteMessage)
	app.Post("/messages/:id/like", s.RequireAuth, s.ToggleLike)

	api := app.Group("/api")
	auth := api.Group("/auth")
	auth.Post("/signup", authLimit, s.APISignup)
	auth.Post("/login", authLimit, s.APILogin)
}
