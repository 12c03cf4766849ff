// Package server wires the repositories, services, handlers, and
// middleware into one HTTP server with the full route table.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/Murilo211205/rede-social/internal/auth"
	"github.com/Murilo211205/rede-social/internal/handler"
	"github.com/Murilo211205/rede-social/internal/middleware"
	sqliteRepo "github.com/Murilo211205/rede-social/internal/repository/sqlite"
	"github.com/Murilo211205/rede-social/internal/service"
)

// Config holds everything the server needs from the environment.
type Config struct {
	Port      int
	DBPath    string
	JWTSecret string

	GitHubClientID     string
	GitHubClientSecret string
	GitHubCallbackURL  string

	RateLimitRPS   float64
	RateLimitBurst int
}

// Server owns the router, the database, and the rate-limiter janitor.
type Server struct {
	router  *chi.Mux
	config  Config
	logger  *slog.Logger
	db      *sqliteRepo.DB
	limiter *middleware.RateLimiter
}

func New(cfg Config, logger *slog.Logger) (*Server, error) {
	db, err := sqliteRepo.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		db:     db,
	}

	if err := s.setupRoutes(); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting up routes: %w", err)
	}

	return s, nil
}

// Router exposes the handler tree for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

func (s *Server) setupRoutes() error {
	tokens, err := auth.NewTokenService(s.config.JWTSecret)
	if err != nil {
		return fmt.Errorf("configuring tokens: %w", err)
	}
	passwords := auth.NewPasswordService()

	users := sqliteRepo.NewUserRepo(s.db)
	posts := sqliteRepo.NewPostRepo(s.db)
	comments := sqliteRepo.NewCommentRepo(s.db)
	likes := sqliteRepo.NewLikeRepo(s.db)
	follows := sqliteRepo.NewFollowRepo(s.db)
	notifications := sqliteRepo.NewNotificationRepo(s.db)

	authService := service.NewAuthService(users, tokens, passwords, s.logger)
	postService := service.NewPostService(posts, s.logger)
	commentService := service.NewCommentService(comments, posts, notifications, s.logger)
	likeService := service.NewLikeService(likes, posts, comments, notifications, s.logger)
	followService := service.NewFollowService(follows, users, notifications, s.logger)
	userService := service.NewUserService(users, posts, follows, s.logger)
	notificationService := service.NewNotificationService(notifications, s.logger)

	authHandler := handler.NewAuthHandler(authService, s.logger)
	postHandler := handler.NewPostHandler(postService, authService, s.logger)
	commentHandler := handler.NewCommentHandler(commentService, authService, s.logger)
	likeHandler := handler.NewLikeHandler(likeService, s.logger)
	followHandler := handler.NewFollowHandler(followService, s.logger)
	userHandler := handler.NewUserHandler(userService, postService, authService, s.logger)
	notificationHandler := handler.NewNotificationHandler(notificationService, s.logger)

	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(middleware.Recover(s.logger))
	s.router.Use(middleware.Logging(s.logger))
	s.router.Use(middleware.CORS)

	rps := s.config.RateLimitRPS
	if rps <= 0 {
		rps = 20
	}
	burst := s.config.RateLimitBurst
	if burst <= 0 {
		burst = 40
	}
	s.limiter = middleware.NewRateLimiter(rps, burst)
	s.router.Use(s.limiter.Handler)

	s.router.NotFound(writeNotFound)
	s.router.MethodNotAllowed(writeNotFound)

	s.router.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", authHandler.HandleRegister)
		r.Post("/auth/login", authHandler.HandleLogin)
		r.Post("/auth/verify", authHandler.HandleVerify)

		if s.config.GitHubClientID != "" && s.config.GitHubClientSecret != "" {
			github := auth.NewGitHubProvider(
				s.config.GitHubClientID,
				s.config.GitHubClientSecret,
				s.config.GitHubCallbackURL,
			)
			oauthHandler := handler.NewOAuthHandler(github, authService, s.logger)
			r.Get("/auth/github/login", oauthHandler.HandleGitHubLogin)
			r.Get("/auth/github/callback", oauthHandler.HandleGitHubCallback)
		}

		// Static segments register before their parameterized siblings
		// so /posts/search never resolves as a post id.
		r.Get("/posts", postHandler.HandleList)
		r.Get("/posts/search", postHandler.HandleSearch)
		r.Get("/posts/{id}", postHandler.HandleGet)
		r.Get("/posts/{id}/comments", commentHandler.HandleListByPost)
		r.Get("/comments/{id}", commentHandler.HandleGet)

		r.Get("/users/search", userHandler.HandleSearch)
		r.Get("/users/{user}", userHandler.HandleProfile)
		r.Get("/users/{user}/posts", userHandler.HandleUserPosts)
		r.Get("/users/{user}/followers", followHandler.HandleFollowers)
		r.Get("/users/{user}/following", followHandler.HandleFollowing)

		// Soft-auth endpoints: anonymous callers get zero values
		// instead of 401.
		r.Group(func(r chi.Router) {
			r.Use(auth.OptionalAuth(tokens))
			r.Get("/notifications/unread", notificationHandler.HandleUnreadCount)
			r.Get("/users/{user}/is-following", followHandler.HandleIsFollowing)
		})

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAuth(tokens, authService))

			r.Post("/posts", postHandler.HandleCreate)
			r.Put("/posts/{id}", postHandler.HandleUpdate)
			r.Delete("/posts/{id}", postHandler.HandleDelete)
			r.Post("/posts/{id}/comments", commentHandler.HandleCreate)
			r.Delete("/comments/{id}", commentHandler.HandleDelete)

			r.Post("/posts/{id}/like", likeHandler.HandleLikePost)
			r.Delete("/posts/{id}/like", likeHandler.HandleUnlikePost)
			r.Post("/comments/{id}/like", likeHandler.HandleLikeComment)
			r.Delete("/comments/{id}/like", likeHandler.HandleUnlikeComment)

			r.Put("/users/profile", userHandler.HandleUpdateProfile)
			r.Post("/users/{user}/follow", followHandler.HandleFollow)
			r.Delete("/users/{user}/follow", followHandler.HandleUnfollow)
			r.Delete("/users/{user}", userHandler.HandleDelete)
			r.Post("/users/{user}/ban", userHandler.HandleBan)

			r.Get("/notifications", notificationHandler.HandleList)
			r.Put("/notifications/read-all", notificationHandler.HandleMarkAllRead)
			r.Put("/notifications/{id}/read", notificationHandler.HandleMarkRead)
		})
	})

	return nil
}

func writeNotFound(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	w.Write([]byte(`{"success":false,"error":"route not found","code":"NOT_FOUND"}`))
}

// Start runs the server until SIGINT/SIGTERM, then shuts down
// gracefully.
func (s *Server) Start() error {
	defer s.db.Close()

	janitorCtx, stopJanitor := context.WithCancel(context.Background())
	defer stopJanitor()
	s.limiter.StartJanitor(janitorCtx)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Port),
			slog.String("database", s.config.DBPath),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
