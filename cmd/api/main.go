package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/plateful/backend/config"
	"github.com/plateful/backend/internal/api"
	"github.com/plateful/backend/internal/database"
	"github.com/plateful/backend/internal/server"
	"github.com/plateful/backend/internal/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := database.AutoMigrate(db.Gorm); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	redisClient, err := database.NewRedisClient(cfg)
	if err != nil {
		log.Printf("Warning: Redis unavailable, drafts and rate limiting disabled: %v", err)
		redisClient = nil
	}

	svcs := api.NewServices(db.Gorm, redisClient, cfg.JWTSecret)

	if redisClient != nil {
		llmService, err := service.NewLLMService(redisClient)
		if err != nil {
			log.Printf("Warning: AI generation disabled: %v", err)
		} else {
			svcs.LLM = llmService
		}
	}

	if s3Config, err := config.NewS3Config(context.Background()); err != nil {
		log.Printf("Warning: image uploads disabled: %v", err)
	} else {
		svcs.Images = service.NewImageService(s3Config)
	}

	srv := server.New(svcs)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start(cfg.ServerPort)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			log.Fatalf("Server error: %v", err)
		}
	case sig := <-quit:
		log.Printf("Received signal: %v", sig)
	}

	log.Println("Shutting down server...")
	if err := srv.Shutdown(context.Background()); err != nil {
		log.Fatalf("Server shutdown error: %v", err)
	}
	log.Println("Server stopped")
}
