package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"event-registration-backend/internal/config"
	"event-registration-backend/internal/database"
	"event-registration-backend/internal/repositories"
	"event-registration-backend/internal/server"
	"event-registration-backend/internal/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Fail fast on misconfiguration; print every violation before exiting
	// so operators fix all of them in one pass.
	if violations := cfg.Validate(); len(violations) > 0 {
		for _, violation := range violations {
			log.Printf("Configuration error: %s", violation)
		}
		log.Fatal("Refusing to start with invalid configuration")
	}

	qrKey, err := cfg.QRKey()
	if err != nil {
		log.Fatalf("Failed to decode QR secret: %v", err)
	}

	db, err := database.NewConnection(database.Config{Path: cfg.Database.Path})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.RunMigrations(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database ready")

	registrationRepo := repositories.NewRegistrationRepository(db.DB)
	formRepo := repositories.NewFormRepository(db.DB)
	adminRepo := repositories.NewAdminRepository(db.DB)

	sessionTTL := time.Duration(cfg.Session.TTLHours) * time.Hour
	authService := services.NewAuthService(adminRepo, cfg.Session.Secret, sessionTTL)
	ticketService := services.NewTicketService(registrationRepo, qrKey)

	router := server.NewRouter(cfg, authService, ticketService, formRepo)

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Forced shutdown: %v", err)
	}
}
