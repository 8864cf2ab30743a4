package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/rallyops/rally-planner/config"
	"github.com/rallyops/rally-planner/db"
	"github.com/rallyops/rally-planner/handlers"
	"github.com/rallyops/rally-planner/repositories"
	api "github.com/rallyops/rally-planner/routes"
	"github.com/rallyops/rally-planner/services"
	"github.com/rallyops/rally-planner/storage"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort))

	dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Error("failed to close database connection", slog.Any("error", err))
		} else {
			logger.Info("database connection closed")
		}
	}()
	logger.Info("database connection established")

	var uploader storage.FileUploader
	if cfg.R2AccountID != "" {
		uploader, err = storage.NewCloudflareR2Uploader(storage.CloudflareR2UploaderConfig{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			SecretAccessKey: cfg.R2SecretAccessKey,
			BucketName:      cfg.R2BucketName,
			PublicBaseURL:   cfg.R2PublicBaseURL,
		})
		if err != nil {
			logger.Error("failed to initialize Cloudflare R2 uploader", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("Cloudflare R2 uploader initialized")
	} else {
		logger.Warn("R2 storage not configured, document uploads disabled")
	}

	userRepo := repositories.NewPostgresUserRepository(dbConn)
	profileRepo := repositories.NewPostgresProfileRepository(dbConn)
	rallyRepo := repositories.NewPostgresRallyRepository(dbConn)
	memberRepo := repositories.NewPostgresTeamMemberRepository(dbConn)
	assignmentRepo := repositories.NewPostgresAssignmentRepository(dbConn)
	scheduleRepo := repositories.NewPostgresScheduleItemRepository(dbConn)
	logger.Info("repositories initialized")

	authService := services.NewAuthService(dbConn, userRepo, profileRepo)
	rallyService := services.NewRallyService(dbConn, rallyRepo, scheduleRepo, assignmentRepo)
	teamService := services.NewTeamService(memberRepo)
	assignmentService := services.NewAssignmentService(assignmentRepo, rallyRepo, memberRepo)
	scheduleService := services.NewScheduleService(scheduleRepo, rallyRepo)
	overviewService := services.NewOverviewService(rallyRepo, memberRepo, assignmentRepo, scheduleRepo)
	analysisService := services.NewAnalysisService(services.AnalysisConfig{
		APIKey:  cfg.OpenAIAPIKey,
		Model:   cfg.OpenAIModel,
		BaseURL: cfg.OpenAIBaseURL,
	}, logger)
	documentService := services.NewDocumentService(uploader, rallyRepo)
	logger.Info("services initialized")

	authHandler := handlers.NewAuthHandler(authService, cfg.JWTSecretKey)
	rallyHandler := handlers.NewRallyHandler(rallyService, overviewService)
	teamHandler := handlers.NewTeamHandler(teamService)
	assignmentHandler := handlers.NewAssignmentHandler(assignmentService)
	scheduleHandler := handlers.NewScheduleHandler(scheduleService)
	overviewHandler := handlers.NewOverviewHandler(overviewService)
	analysisHandler := handlers.NewAnalysisHandler(analysisService)
	documentHandler := handlers.NewDocumentHandler(documentService)
	logger.Info("HTTP handlers initialized")

	router := chi.NewRouter()
	api.SetupRoutes(
		router,
		cfg.JWTSecretKey,
		authHandler,
		rallyHandler,
		teamHandler,
		assignmentHandler,
		scheduleHandler,
		overviewHandler,
		analysisHandler,
		documentHandler,
	)
	logger.Info("routes configured")

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("server stopped gracefully")
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancelShutdown()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			os.Exit(1)
		}
		logger.Info("server shutdown complete")
	}
	logger.Info("application exited")
}
