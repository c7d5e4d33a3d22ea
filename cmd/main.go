package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/NapaConcierge/concierge-api/internal/config"
	"github.com/NapaConcierge/concierge-api/internal/llm"
	"github.com/NapaConcierge/concierge-api/internal/loaders"
	"github.com/NapaConcierge/concierge-api/internal/mailer"
	"github.com/NapaConcierge/concierge-api/internal/routes"
	"github.com/NapaConcierge/concierge-api/internal/utils"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		fmt.Println("Warning: Error loading .env file", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	cleanup := utils.InitLogger(cfg.LogLevel)
	defer cleanup()

	utils.Zlog.Info("Starting application",
		zap.String("service", cfg.ServiceName),
		zap.String("environment", cfg.Environment),
		zap.String("port", cfg.ServerPort))

	// A generated token cannot be recovered later; surface it exactly
	// once at startup.
	if cfg.AdminTokenGenerated {
		utils.Zlog.Warn("ADMIN_TOKEN not set; generated one for this process",
			zap.String("admin_token", cfg.AdminToken))
	}

	db, err := loaders.NewPostgresClient(cfg.DatabaseURL)
	if err != nil {
		utils.Zlog.Error("Failed to create database client", zap.Error(err))
		os.Exit(1)
	}
	defer func() {
		if err := db.Close(); err != nil {
			utils.Zlog.Error("Error closing database connection", zap.Error(err))
		}
	}()

	initCtx, initCancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := db.InitSchema(initCtx); err != nil {
		initCancel()
		utils.Zlog.Error("Failed to initialize schema", zap.Error(err))
		os.Exit(1)
	}
	initCancel()

	provider := llm.NewOpenAIProvider(
		cfg.OpenAIAPIKey,
		cfg.CompletionModel,
		cfg.CompletionMaxTokens,
		time.Duration(cfg.CompletionTimeoutSec)*time.Second,
	)
	mail := mailer.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.SMTPFrom)
	if !mail.Configured() {
		utils.Zlog.Warn("SMTP relay not configured; report delivery disabled")
	}

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	routes.SetupRoutes(router, db, cfg, provider, mail)

	srv := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		utils.Zlog.Info("Starting HTTP server", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			utils.Zlog.Error("Failed to start server", zap.Error(err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	utils.Zlog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		utils.Zlog.Error("Server forced to shutdown", zap.Error(err))
		os.Exit(1)
	}

	utils.Zlog.Info("Server exited")
}
