package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"financial-doc-classifier/internal/config"
	"financial-doc-classifier/internal/handler"

	"github.com/joho/godotenv"
)

const shutdownTimeout = 15 * time.Second

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or could not be loaded: %v", err)
	}

	// Wiring
	container, err := config.NewContainer()
	if err != nil {
		log.Fatalf("failed to build application: %v", err)
	}
	cfg := container.Config

	classifyHandler := handler.NewClassifyHandler(
		container.ClassificationService,
		container.Logger,
		cfg.GetMaxFileSize(),
	)

	opts := handler.RouterOptions{
		AllowedOrigins: cfg.GetAllowedOrigins(),
		Logger:         container.Logger,
		Metrics:        container.Metrics,
	}
	if container.AuthService != nil {
		opts.AuthMiddleware = handler.NewAuthMiddleware(container.AuthService, container.Logger).Middleware
		container.Logger.Info("Bearer authentication enabled", "provider", "supabase")
	}

	router := handler.NewRouter(classifyHandler, handler.NewAuthHandler(), opts)

	server := &http.Server{
		Addr:              ":" + cfg.GetServerPort(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Run server
	go func() {
		container.Logger.Info("Server listening", "address", server.Addr, "model", cfg.GetGeminiModel())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			container.Logger.Error("Server failed to start", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	container.Logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		container.Logger.Error("Graceful shutdown failed", err)
		_ = server.Close()
	}

	container.Logger.Info("Server exited")
}
