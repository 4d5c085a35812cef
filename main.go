package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"travelcms/config"
	"travelcms/jobs"
	"travelcms/routes"
	"travelcms/services"
	"travelcms/services/logger"
)

func main() {
	router, c, settings, err := config.InitApp()
	if err != nil {
		log.Fatalf("Failed to initialize app: %v", err)
	}

	appLogger := logger.NewDefaultLogger(logger.InfoLevel)
	if settings.Env == "dev" {
		appLogger = logger.NewDefaultLogger(logger.DebugLevel)
	}

	var storage services.MediaStorage
	mediaDir := ""
	if config.Cloudinary != nil {
		storage = services.NewCloudinaryStorage(config.Cloudinary, "travelcms")
	} else {
		storage = services.NewLocalStorage(settings.MediaDir)
		mediaDir = settings.MediaDir
	}

	svc := routes.SetupRoutes(router, routes.Dependencies{
		DB:       config.DB,
		Redis:    config.RedisClient,
		Storage:  storage,
		Tokens:   services.NewTokenService(settings.JWTSecret, settings.TokenTTL),
		Logger:   appLogger,
		MediaDir: mediaDir,
	})

	if err := svc.Auth.BootstrapAdmin(context.Background(), settings.AdminEmail, settings.AdminPassword); err != nil {
		log.Fatalf("Failed to seed admin user: %v", err)
	}

	if err := jobs.InitCronJobs(c, svc.Covers); err != nil {
		log.Fatalf("Failed to initialize cron jobs: %v", err)
	}

	srv := &http.Server{
		Addr:              ":" + settings.Port,
		Handler:           router,
		ReadTimeout:       30 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Println("Server starting on port " + settings.Port + "...")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	<-c.Stop().Done()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	if config.RedisClient != nil {
		config.RedisClient.Close()
	}
	log.Println("Server stopped")
}
