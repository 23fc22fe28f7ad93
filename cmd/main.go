// cmd/main.go
package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/lmittmann/tint"
	"github.com/robfig/cron/v3"
	"github.com/rs/cors"

	"leetcode_srs/internal/config"
	"leetcode_srs/internal/handlers"
	"leetcode_srs/internal/leetcode"
	"leetcode_srs/internal/middleware"
	"leetcode_srs/internal/model"
	"leetcode_srs/internal/repository"
	"leetcode_srs/internal/service"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

func main() {
	//　設定ファイル読み込み用の一時的なロガー設定
	tempLogger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(tempLogger)

	if err := config.LoadConfig("./configs"); err != nil {
		slog.Error("Error loading configuration", slog.Any("error", err))
		os.Exit(1)
	}

	// === 設定に基づいて slog ロガーを初期化 ===
	logLevel := new(slog.LevelVar)
	switch strings.ToLower(config.Cfg.Log.Level) {
	case "debug":
		logLevel.Set(slog.LevelDebug)
	case "info":
		logLevel.Set(slog.LevelInfo)
	case "warn", "warning":
		logLevel.Set(slog.LevelWarn)
	case "error":
		logLevel.Set(slog.LevelError)
	default:
		logLevel.Set(slog.LevelInfo)
		slog.Warn("Unknown log level specified in config, defaulting to INFO", slog.String("level", config.Cfg.Log.Level))
	}

	var handler slog.Handler
	appEnv := os.Getenv("APP_ENV")
	if strings.ToLower(appEnv) == "dev" {
		tintOpts := &tint.Options{
			Level:      logLevel,
			TimeFormat: time.RFC3339,
		}
		handler = tint.NewHandler(os.Stderr, tintOpts)
		tempLogger.Info("Using TINT log handler", slog.String("APP_ENV", appEnv))
	} else {
		jsonOpts := &slog.HandlerOptions{
			Level:     logLevel,
			AddSource: true,
		}
		handler = slog.NewJSONHandler(os.Stderr, jsonOpts)
		tempLogger.Info("Using JSON log handler", slog.String("APP_ENV", appEnv))
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)

	slog.Info("Application starting...",
		slog.String("app", config.AppName),
		slog.String("version", config.AppVersion),
	)

	// 2. Initialize Database Connection (GORM)
	db, err := repository.NewDB(config.Cfg.Database.URL, logger)
	if err != nil {
		slog.Error("Error initializing database", slog.Any("error", err))
		os.Exit(1)
	}
	sqlDB, err := db.DB()
	if err != nil {
		slog.Error("Error getting underlying sql.DB from GORM", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := sqlDB.Close(); err != nil {
			slog.Error("Error closing database connection", slog.Any("error", err))
		} else {
			slog.Info("Database connection closed.")
		}
	}()

	if err := db.AutoMigrate(&model.User{}, &model.Question{}, &model.StudyItem{}); err != nil {
		slog.Error("Error migrating database schema", slog.Any("error", err))
		os.Exit(1)
	}

	// 3. Dependency Injection
	userRepo := repository.NewGormUserRepository()
	questionRepo := repository.NewGormQuestionRepository()
	itemRepo := repository.NewGormStudyItemRepository()

	lcClient := leetcode.NewHTTPClient(&config.Cfg)
	mailer := service.NewMailer(&config.Cfg)

	userService := service.NewUserService(db, userRepo, itemRepo)
	reviewService := service.NewReviewService(db, itemRepo)
	syncService := service.NewSyncService(db, userRepo, questionRepo, itemRepo, lcClient, &config.Cfg)
	reminderService := service.NewReminderService(db, itemRepo, mailer)

	reviewHandler := handlers.NewReviewHandler(reviewService)
	adminHandler := handlers.NewAdminHandler(userService, syncService, reminderService)

	// 4. Setup Router
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.LoggingMiddleware(logger))

	corsOptions := cors.Options{
		AllowedOrigins:   config.Cfg.CORS.AllowedOrigins,
		AllowedMethods:   config.Cfg.CORS.AllowedMethods,
		AllowedHeaders:   config.Cfg.CORS.AllowedHeaders,
		ExposedHeaders:   config.Cfg.CORS.ExposedHeaders,
		AllowCredentials: config.Cfg.CORS.AllowCredentials,
		MaxAge:           config.Cfg.CORS.MaxAge,
		Debug:            false,
	}
	corsHandler := cors.New(corsOptions)
	r.Use(corsHandler.Handler)

	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	// API Routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/users", adminHandler.CreateUser)
		r.Get("/users/{user_id}", adminHandler.GetUser)
		r.Get("/users/{user_id}/due", reviewHandler.GetDueItems)

		r.Post("/reviews/{study_item_id}", reviewHandler.SubmitReview)

		r.Post("/sync", adminHandler.SyncAll)
		r.Post("/sync/{user_id}", adminHandler.SyncUser)
		r.Post("/reset/{user_id}", adminHandler.ResetProgress)
		r.Post("/reminders", adminHandler.SendReminders)
	})

	// Health Check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if err := sqlDB.PingContext(ctx); err != nil {
			slog.ErrorContext(ctx, "Health check failed: could not ping DB", slog.Any("error", err))
			http.Error(w, "Health check failed", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// 5. Setup Cron Jobs
	// 同期とリマインダーはHTTPリクエスト外で動くため、ジョブ専用のロガーを
	// コンテキストに詰めて各サービスへ渡す
	c := cron.New()

	if _, err := c.AddFunc(config.Cfg.App.SyncCron, func() {
		jobLogger := logger.With(slog.String("job", "leetcode_sync"))
		ctx := middleware.WithLogger(context.Background(), jobLogger)
		if err := syncService.SyncAllUsers(ctx); err != nil {
			jobLogger.Error("Scheduled sync failed", slog.Any("error", err))
		}
	}); err != nil {
		slog.Error("Error scheduling sync job", slog.Any("error", err), slog.String("cron", config.Cfg.App.SyncCron))
		os.Exit(1)
	}

	if _, err := c.AddFunc(config.Cfg.App.ReminderCron, func() {
		jobLogger := logger.With(slog.String("job", "daily_reminder"))
		ctx := middleware.WithLogger(context.Background(), jobLogger)
		if err := reminderService.SendDailyReminders(ctx); err != nil {
			jobLogger.Error("Scheduled reminder failed", slog.Any("error", err))
		}
	}); err != nil {
		slog.Error("Error scheduling reminder job", slog.Any("error", err), slog.String("cron", config.Cfg.App.ReminderCron))
		os.Exit(1)
	}

	c.Start()
	slog.Info("Cron scheduler started",
		slog.String("sync_cron", config.Cfg.App.SyncCron),
		slog.String("reminder_cron", config.Cfg.App.ReminderCron),
	)

	// 6. Start Server
	server := &http.Server{
		Addr:         config.Cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("Server listening", slog.String("port", config.Cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Could not listen on port", slog.String("port", config.Cfg.Server.Port), slog.Any("error", err))
			os.Exit(1)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down server...")

	// 実行中のジョブの完了を待ってからサーバを落とす
	cronCtx := c.Stop()
	<-cronCtx.Done()
	slog.Info("Cron scheduler stopped.")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", slog.Any("error", err))
	}

	log.Println("Server exiting")
}
