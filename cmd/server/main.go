package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/taskerrand-api/internal/authz"
	"github.com/yukikurage/taskerrand-api/internal/config"
	"github.com/yukikurage/taskerrand-api/internal/database"
	"github.com/yukikurage/taskerrand-api/internal/handlers"
	"github.com/yukikurage/taskerrand-api/internal/identity"
	"github.com/yukikurage/taskerrand-api/internal/repository"
	"github.com/yukikurage/taskerrand-api/internal/routes"
	"github.com/yukikurage/taskerrand-api/internal/services"
	"github.com/yukikurage/taskerrand-api/internal/storage"
)

func main() {
	configPath := flag.String("config", os.Getenv("CONFIG_FILE"), "Path to config YAML file")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		fatal("failed to load config", err)
	}
	if err := cfg.Validate(); err != nil {
		fatal("invalid config", err)
	}

	gin.SetMode(cfg.GinMode)

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		fatal("failed to connect to database", err)
	}
	if err := database.Migrate(db); err != nil {
		fatal("failed to run migrations", err)
	}

	policy := authz.NewAdminPolicy(cfg.AdminEmails)
	store := storage.NewLocalProofStore(cfg.UploadDir, cfg.UploadURLPath, cfg.MaxUploadBytes)

	// Repositories
	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	feedbackRepo := repository.NewFeedbackRepository(db)
	reportRepo := repository.NewReportRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	// Services
	notificationService := services.NewNotificationService(notificationRepo)
	userService := services.NewUserService(userRepo, policy)
	taskService := services.NewTaskService(taskRepo, store, notificationService, policy)
	messageService := services.NewMessageService(messageRepo, taskRepo, notificationService)
	feedbackService := services.NewFeedbackService(feedbackRepo, taskRepo, userRepo)
	reportService := services.NewReportService(reportRepo, taskRepo, policy)

	resolver := identity.NewJWTResolver(cfg.JWTSecret, identity.JWTOptions{
		Issuer:   cfg.JWTIssuer,
		Audience: cfg.JWTAudience,
	})

	r := routes.SetupRoutes(gin.New(), routes.Deps{
		Config:   cfg,
		Logger:   logger,
		Resolver: resolver,
		Users:    userService,
		Policy:   policy,
	}, routes.Handlers{
		Task:         handlers.NewTaskHandler(taskService),
		User:         handlers.NewUserHandler(userService, feedbackService),
		Message:      handlers.NewMessageHandler(messageService),
		Feedback:     handlers.NewFeedbackHandler(feedbackService),
		Report:       handlers.NewReportHandler(reportService),
		Notification: handlers.NewNotificationHandler(notificationService),
		Admin:        handlers.NewAdminHandler(userService),
	})

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		slog.Info("server starting", slog.String("addr", cfg.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			fatal("server failed", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", slog.Any("err", err))
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			slog.Error("error closing database", slog.Any("err", err))
		}
	}

	slog.Info("server exited")
}

func fatal(msg string, err error) {
	slog.Error(msg, slog.Any("err", err))
	os.Exit(1)
}
