package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/vinash85/polypLabeler/internal/catalog"
	"github.com/vinash85/polypLabeler/internal/config"
	"github.com/vinash85/polypLabeler/internal/db"
	"github.com/vinash85/polypLabeler/internal/handler"
	"github.com/vinash85/polypLabeler/internal/logger"
	"github.com/vinash85/polypLabeler/internal/metrics"
	"github.com/vinash85/polypLabeler/internal/middleware"
	"github.com/vinash85/polypLabeler/internal/repository"
	"github.com/vinash85/polypLabeler/internal/service"
	"github.com/vinash85/polypLabeler/internal/validation"
)

func main() {
	// Load environment variables from config.env or .env
	configPaths := []string{
		"config.env",
		"./config.env",
		"../config.env",
	}
	var configLoaded bool
	for _, configPath := range configPaths {
		if err := godotenv.Load(configPath); err == nil {
			configLoaded = true
			break
		}
	}
	if !configLoaded {
		if err := godotenv.Load(); err != nil {
			log.Printf("Warning: config.env and .env files not found, using environment variables only")
		}
	}

	cfg := config.Load()
	appLogger := logger.NewLogger("polyplabeler")

	// Question catalog is loaded once; a bad catalog file is fatal.
	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		log.Fatalf("Failed to load question catalog: %v", err)
	}
	appLogger.WithField("questions", cat.Len()).Info("Question catalog loaded")

	// Database connection for user records
	conn, err := db.NewConnection(db.Config{
		Host:     cfg.DBHost,
		Port:     cfg.DBPort,
		User:     cfg.DBUser,
		Password: cfg.DBPassword,
		Database: cfg.DBDatabase,
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer conn.Close()

	guard := db.NewSchemaGuard(conn.DB)
	if err := guard.ValidateTable(db.UsersTableSchema); err != nil {
		log.Fatalf("Users table schema mismatch: %v", err)
	}
	appLogger.Info("Successfully connected to database")

	// Redis connection for session tokens
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := redisClient.Ping(ctx).Err(); err != nil {
		cancel()
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	cancel()
	appLogger.Info("Successfully connected to Redis")

	// Initialize repositories
	userRepo := repository.NewUserRepository(conn.DB)
	sessionRepo := repository.NewSessionRepository(redisClient)
	answerRepo := repository.NewAnswerRepository(cfg.AnswersDir)

	// Initialize services
	authService := service.NewAuthService(userRepo, sessionRepo, cfg.SessionTTL)
	labelingService := service.NewLabelingService(cat, answerRepo, userRepo)

	// Initialize handlers
	validator := validation.NewValidator()
	authHandler := handler.NewAuthHandler(authService, validator)
	questionHandler := handler.NewQuestionHandler(labelingService)
	answerHandler := handler.NewAnswerHandler(labelingService, validator)
	progressHandler := handler.NewProgressHandler(labelingService)

	// Metrics and DB pool stats
	m := metrics.NewMetrics("server")
	go recordPoolStats(conn, m)

	authRequired := func(h http.HandlerFunc) http.Handler {
		chain := middleware.Throttle(cfg.ThrottleLimit, cfg.ThrottleInterval)(h)
		return middleware.Auth(authService)(chain)
	}

	mux := http.NewServeMux()

	// Public routes
	mux.HandleFunc("/health", healthHandler)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/api/auth/register", authHandler.Register)
	mux.HandleFunc("/api/auth/login", authHandler.Login)
	mux.HandleFunc("/api/auth/password-reset/request", authHandler.RequestPasswordReset)
	mux.HandleFunc("/api/auth/password-reset/confirm", authHandler.ResetPassword)
	mux.HandleFunc("/api/questions/count", questionHandler.Count)

	// Session-protected routes
	mux.Handle("/api/auth/logout", authRequired(authHandler.Logout))
	mux.Handle("/api/auth/me", authRequired(authHandler.Me))
	mux.Handle("/api/questions/", authRequired(questionHandler.GetQuestion))
	mux.Handle("/api/answers", authRequired(answerHandler.Answers))
	mux.Handle("/api/answers/", authRequired(answerHandler.GetAnswer))
	mux.Handle("/api/progress", authRequired(progressHandler.Progress))

	// Catalog image files
	mux.Handle("/images/", http.StripPrefix("/images/", http.FileServer(http.Dir(cfg.ImagesDir))))

	root := middleware.Logging(appLogger)(middleware.CORS(m.Middleware(mux)))

	server := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      root,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	// Graceful shutdown on SIGINT/SIGTERM
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		appLogger.Info("Shutting down server")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			appLogger.WithError(err).Error("Server shutdown failed")
		}
	}()

	appLogger.WithField("port", cfg.HTTPPort).Info("Server started")
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Server failed: %v", err)
	}
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// recordPoolStats periodically exports database connection pool statistics.
func recordPoolStats(conn *db.Connection, m *metrics.Metrics) {
	ticker := time.NewTicker(15 * time.Second)
	defer ticker.Stop()
	for range ticker.C {
		stats := conn.DB.Stats()
		m.RecordDBPoolStats(stats.OpenConnections, stats.InUse, stats.Idle,
			stats.WaitCount, stats.WaitDuration)
	}
}
