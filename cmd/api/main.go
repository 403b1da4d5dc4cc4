package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SilvioBaratto/diet-generator/config"
	"github.com/SilvioBaratto/diet-generator/internal/database"
	"github.com/SilvioBaratto/diet-generator/internal/server"
	"github.com/SilvioBaratto/diet-generator/internal/service"
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
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	redisClient, err := database.NewRedisClient(cfg)
	if err != nil {
		log.Printf("Redis unavailable, recipe caching disabled: %v", err)
		redisClient = nil
	}

	generator, err := service.NewGeneratorService(cfg)
	if err != nil {
		log.Fatalf("Failed to create generator service: %v", err)
	}

	var archiver service.PlanArchiver
	s3Cfg, err := config.NewS3Config(context.Background(), cfg)
	if err != nil {
		log.Printf("S3 unavailable, plan archival disabled: %v", err)
	} else if s3Cfg != nil {
		archiver = service.NewArchiveService(s3Cfg)
	}

	srv := server.New(server.Options{
		Config:    cfg,
		DB:        db,
		Redis:     redisClient,
		Generator: generator,
		Archiver:  archiver,
	})

	errChan := make(chan error, 1)
	go func() {
		log.Println("Starting server...")
		errChan <- srv.Start()
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
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown error: %v", err)
	}
	log.Println("Server stopped")
}
