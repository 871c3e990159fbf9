package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gridsense-backend/internal/config"
	"gridsense-backend/internal/database"
	"gridsense-backend/internal/handlers"
	"gridsense-backend/internal/repository"
	"gridsense-backend/internal/router"
	"gridsense-backend/internal/services"
)

func main() {
	log.Println("Starting GridSense Backend...")

	// ──── Step 1: Load Environment Variables ────
	cfg := config.Load()
	log.Println("✓ Environment variables loaded")

	// ──── Step 2: Connect to PostgreSQL (with retry) ────
	pool, err := database.Connect(cfg.DatabaseURL, cfg.DBConnectAttempts)
	if err != nil {
		log.Fatalf("✗ PostgreSQL connection failed: %v", err)
	}
	defer pool.Close()
	log.Println("✓ PostgreSQL connected")

	// ──── Step 3: Run Database Migrations ────
	if err := database.RunMigrations(pool, "migrations"); err != nil {
		log.Fatalf("✗ Database migration failed: %v", err)
	}
	log.Println("✓ Database migrations applied")

	// ──── Initialize Repositories ────
	userRepo := repository.NewUserRepo(pool)
	sessionRepo := repository.NewSessionRepo(pool)
	sharedSessionRepo := repository.NewSharedSessionRepo(pool)

	// ──── Initialize Services ────
	userService := services.NewUserService(userRepo, cfg.BcryptCost)
	sessionService := services.NewSessionService(sessionRepo)
	sharingService := services.NewSharingService(sharedSessionRepo)

	// ──── Initialize Handlers ────
	userHandler := handlers.NewUserHandler(userService)
	sessionHandler := handlers.NewSessionHandler(sessionService)
	sharingHandler := handlers.NewSharingHandler(sharingService)

	// ──── Step 4: Start HTTP Server ────
	r := router.New(userHandler, sessionHandler, sharingHandler, cfg.FrontendURL)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down...")
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}()

	log.Printf("✓ GridSense Backend ready on http://localhost:%s", cfg.Port)
	log.Printf("  API: http://localhost:%s/api/v1", cfg.Port)

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}
}
