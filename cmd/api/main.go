package main

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/splitbuddy/splitbuddy/docs"
	"github.com/splitbuddy/splitbuddy/internal/auth"
	"github.com/splitbuddy/splitbuddy/internal/bill"
	"github.com/splitbuddy/splitbuddy/internal/config"
	"github.com/splitbuddy/splitbuddy/internal/database"
	"github.com/splitbuddy/splitbuddy/internal/group"
	"github.com/splitbuddy/splitbuddy/internal/item"
	"github.com/splitbuddy/splitbuddy/internal/ratelimit"
	"github.com/splitbuddy/splitbuddy/internal/receipt"
	"github.com/splitbuddy/splitbuddy/internal/user"
	"github.com/splitbuddy/splitbuddy/internal/vote"
	"github.com/splitbuddy/splitbuddy/pkg/logging"
	"github.com/splitbuddy/splitbuddy/pkg/metrics"
	mw "github.com/splitbuddy/splitbuddy/pkg/middleware"
)

// @title           SplitBuddy API
// @version         1.0
// @description     Bill splitting service with receipt scanning and vote-based splits.
// @BasePath        /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	logging.Setup()

	// Load configuration
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	// Initialize database connection
	db, err := database.NewPostgresConnection(cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	slog.Info("connected to database")

	// Rate limiters, one per protected operation
	loginLimiter := ratelimit.New(ratelimit.Config{MaxRequests: 10, Window: time.Hour, CleanupInterval: 5 * time.Minute})
	userCreateLimiter := ratelimit.New(ratelimit.Config{MaxRequests: 5, Window: time.Hour, CleanupInterval: 5 * time.Minute})
	billCreateLimiter := ratelimit.New(ratelimit.Config{MaxRequests: 30, Window: time.Hour, CleanupInterval: 5 * time.Minute})
	processImageLimiter := ratelimit.New(ratelimit.Config{MaxRequests: 5, Window: time.Minute, CleanupInterval: 5 * time.Minute})
	defer loginLimiter.Stop()
	defer userCreateLimiter.Stop()
	defer billCreateLimiter.Stop()
	defer processImageLimiter.Stop()

	// Auth feature
	jwtManager := auth.NewJWTManager(cfg.JWTSecretKey, time.Hour)
	googleVerifier := auth.NewGoogleVerifier(cfg.GoogleClientID)

	// User feature
	userRepo := user.NewRepository(db)
	userService := user.NewService(userRepo)
	userHandler := user.NewHandler(userService, userCreateLimiter)

	authService := auth.NewService(userRepo, jwtManager, googleVerifier)
	authHandler := auth.NewHandler(authService, loginLimiter)

	// Group feature
	groupRepo := group.NewRepository(db)
	groupService := group.NewService(groupRepo)
	groupHandler := group.NewHandler(groupService)

	// Bill feature (with receipt extractor injected)
	extractor := receipt.NewGeminiExtractor(cfg.GeminiAPIKey, cfg.GeminiModel)
	billRepo := bill.NewRepository(db)
	billService := bill.NewService(billRepo, extractor)
	billHandler := bill.NewHandler(billService, billCreateLimiter, processImageLimiter)

	// Item feature
	itemRepo := item.NewRepository(db)
	itemService := item.NewService(itemRepo)
	itemHandler := item.NewHandler(itemService)

	// Vote feature
	voteRepo := vote.NewRepository(db)
	voteService := vote.NewService(voteRepo)
	voteHandler := vote.NewHandler(voteService)

	requireAuth := mw.Auth(jwtManager)

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(metrics.Middleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})
	r.Handle("/metrics", metrics.Handler())
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Mount("/auth", authHandler.Routes(requireAuth))

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)

			r.Mount("/users", userHandler.Routes())
			r.Mount("/groups", groupHandler.Routes())
			r.Mount("/bills", billHandler.Routes())
			r.Mount("/items", itemHandler.Routes())
			r.Mount("/votes", voteHandler.Routes())
		})
	})

	// Start server
	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	slog.Info("server starting", "port", port, "environment", cfg.Environment)
	if err := http.ListenAndServe(":"+port, r); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
