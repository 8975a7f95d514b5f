package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/arpityadav8303/gigflow-Arpit-Yadav/config"
	"github.com/arpityadav8303/gigflow-Arpit-Yadav/internal/app"
	"github.com/arpityadav8303/gigflow-Arpit-Yadav/internal/database"
	"github.com/arpityadav8303/gigflow-Arpit-Yadav/internal/notify"
	"github.com/arpityadav8303/gigflow-Arpit-Yadav/internal/server"

	"github.com/go-playground/validator/v10"
)

// @title           GigFlow API
// @version         1.0
// @description     Freelance marketplace API: clients post gigs, freelancers bid, and the client hires exactly one bid per gig.

// @host      localhost:8080
// @BasePath  /api/v1
// @schemes   http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// --- Initialize Redis Client (notifications are best effort) ---
	var notifier notify.Notifier = notify.NopNotifier{}
	redisClient, err := database.NewRedisClient(cfg.Redis)
	if err != nil {
		log.Printf("WARN: Failed to connect to Redis: %v. Continuing without notifications.", err)
	} else {
		defer redisClient.Close()
		notifier = notify.NewRedisNotifier(redisClient)
		log.Println("Redis notifier initialized")
	}

	dbPool, err := database.NewConnectionPool(cfg.DB)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer dbPool.Close()

	if err := database.RunMigrations(cfg.DB); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	validate := validator.New()

	application := &app.Application{
		Config:      cfg,
		DBPool:      dbPool,
		RedisClient: redisClient,
		Notifier:    notifier,
		Validator:   validate,
	}

	srv := server.NewServer(application)

	// --- Graceful Shutdown Handling ---
	go func() {
		if err := srv.Start(); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	log.Println("Application gracefully stopped.")
}
