package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"marginalia/internal/config"
	"marginalia/internal/handler"
	"marginalia/internal/middleware"
	"marginalia/internal/repository/surreal"
	"marginalia/internal/service"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	cfg := config.Load()

	// Setup structured logging
	logLevel := slog.LevelInfo
	if cfg.Environment == "dev" {
		logLevel = slog.LevelDebug
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
	)

	// Connect to the document store
	ctx := context.Background()
	db, err := surreal.Connect(ctx, surreal.ConnectionConfig{
		URL:       cfg.SurrealURL,
		Namespace: cfg.SurrealNamespace,
		Database:  cfg.SurrealDatabase,
		Username:  cfg.SurrealUser,
		Password:  cfg.SurrealPass,
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close(ctx)

	logger.Info("database connected",
		"url", cfg.SurrealURL,
		"namespace", cfg.SurrealNamespace,
	)

	// Create repositories
	repoConfig := &surreal.RepositoryConfig{
		DB:     db,
		Logger: logger,
	}
	userRepo := surreal.NewUserRepository(repoConfig)
	articleRepo := surreal.NewArticleRepository(repoConfig)
	annotationRepo := surreal.NewAnnotationRepository(repoConfig)
	sessionRepo := surreal.NewSessionRepository(repoConfig)

	// Create services
	accountService := service.NewAccountService(userRepo, logger)
	sessionService := service.NewSessionService(sessionRepo, logger)
	articleService := service.NewArticleService(articleRepo, annotationRepo, logger)
	annotationService := service.NewAnnotationService(annotationRepo, articleRepo, logger)

	// Create handlers
	authHandler := handler.NewAuthHandler(accountService, sessionService, cfg.CookieSecure, logger)
	userHandler := handler.NewUserHandler(accountService, logger)
	articleHandler := handler.NewArticleHandler(articleService, logger)
	annotationHandler := handler.NewAnnotationHandler(annotationService, logger)
	pageHandler := handler.NewPageHandler(articleService, logger)

	logger.Info("services initialized")

	// Create HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Auth routes
	mux.HandleFunc("POST /api/register", authHandler.Register)
	mux.HandleFunc("POST /api/login", authHandler.Login)
	mux.HandleFunc("POST /api/logout", middleware.RequireAuth(authHandler.Logout))
	mux.HandleFunc("GET /api/current-user", authHandler.CurrentUser)

	// User management routes
	mux.HandleFunc("GET /api/users", middleware.RequireAdmin(userHandler.List))
	mux.HandleFunc("PATCH /api/users/{id}/admin", middleware.RequireAdmin(userHandler.SetAdmin))

	// Article routes
	mux.HandleFunc("GET /api/articles", articleHandler.List)
	mux.HandleFunc("POST /api/articles", middleware.RequireAuth(articleHandler.Create))
	mux.HandleFunc("POST /api/articles/upload", middleware.RequireAuth(articleHandler.Upload))
	mux.HandleFunc("DELETE /api/articles/{id}", middleware.RequireAuth(articleHandler.Delete))
	mux.HandleFunc("PATCH /api/articles/{id}/publish", middleware.RequireAuth(articleHandler.Publish))

	// Annotation routes
	mux.HandleFunc("GET /api/articles/{articleId}/annotations", annotationHandler.ListForArticle)
	mux.HandleFunc("POST /api/articles/{articleId}/annotations", middleware.RequireAuth(annotationHandler.Create))
	mux.HandleFunc("PUT /api/annotations/{id}", middleware.RequireAuth(annotationHandler.Update))
	mux.HandleFunc("DELETE /api/annotations/{id}", middleware.RequireAuth(annotationHandler.Delete))

	// Server-rendered article detail page
	mux.HandleFunc("GET /article/{id}", pageHandler.ArticleDetail)

	// Static frontend assets
	if cfg.StaticDir != "" {
		if _, err := os.Stat(cfg.StaticDir); err == nil {
			mux.Handle("/", http.FileServer(http.Dir(cfg.StaticDir)))
			logger.Info("serving static assets", "dir", cfg.StaticDir)
		}
	}

	// Build middleware chain
	var root http.Handler = mux

	// Apply middleware in reverse order (they wrap each other)
	// Order: CORS → Recovery → Session → Routes
	root = middleware.Session(sessionService)(root)
	root = middleware.Recovery(logger)(root)

	// CORS - must be first to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: true,
	})
	root = corsHandler.Handler(root)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      root,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("server listening", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
}
