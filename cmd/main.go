// @title Shopcart Backend API
// @version 1.0
// @description Minimal e-commerce backend: account registration/login with bearer tokens and owner-scoped order records

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/cors"

	_ "shopcart-backend/docs" // This is required for swagger
	"shopcart-backend/internal/config"
	"shopcart-backend/internal/handlers"
	"shopcart-backend/internal/routes"
	"shopcart-backend/internal/storage/postgres"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	// Connects, pings, and applies pending migrations.
	store, err := postgres.New(context.Background(), cfg)
	if err != nil {
		log.Fatalf("init database: %v", err)
	}
	defer store.Close()

	// --- HTTP Handlers ---
	authHandler := handlers.NewAuthHandler(store, cfg)
	ordersHandler := handlers.NewOrdersHandler(store, cfg)
	healthHandler := handlers.NewHealthHandler(store)
	googleAuthHandler := handlers.NewGoogleAuthHandler(store, cfg)

	// Setup all routes
	routes.SetupRoutes(cfg, authHandler, ordersHandler, healthHandler, googleAuthHandler)

	// Setup CORS
	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   cfg.CORS.AllowedMethods,
		AllowedHeaders:   cfg.CORS.AllowedHeaders,
		AllowCredentials: cfg.CORS.AllowCredentials,
	})

	// Wrap the default mux with CORS
	handler := c.Handler(http.DefaultServeMux)

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	go func() {
		log.Printf("HTTP server listening on :%s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe: %v", err)
		}
	}()

	// Wait for SIGINT/SIGTERM for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
	log.Println("Server stopped.")
}
