package routes

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"shopcart-backend/internal/config"
	"shopcart-backend/internal/handlers"
	"shopcart-backend/internal/middleware"
)

// SetupRoutes configures all application routes
func SetupRoutes(
	cfg *config.Config,
	authHandler *handlers.AuthHandler,
	ordersHandler *handlers.OrdersHandler,
	healthHandler *handlers.HealthHandler,
	googleAuthHandler *handlers.GoogleAuthHandler,
) {
	// Health check routes
	http.HandleFunc("/healthz", healthHandler.HealthCheck)
	http.HandleFunc("/livez", healthHandler.LivenessCheck)
	http.HandleFunc("/readyz", healthHandler.ReadinessCheck)

	// Account routes
	http.HandleFunc("/api/account/register", authHandler.Register)
	http.HandleFunc("/api/account/login", authHandler.Login)
	http.HandleFunc("/api/account/getusername", authHandler.GetUserName)
	http.HandleFunc("/api/account/profile", middleware.AuthMiddleware(authHandler.GetProfile, &cfg.JWT))

	// Google OAuth routes
	http.HandleFunc("/api/auth/google/login", googleAuthHandler.GoogleLogin)
	http.HandleFunc("/api/auth/google/callback", googleAuthHandler.GoogleCallback)

	// Order routes (bearer token required)
	http.HandleFunc("/api/order", middleware.AuthMiddleware(ordersHandler.Orders, &cfg.JWT))
	http.HandleFunc("/api/order/", middleware.AuthMiddleware(ordersHandler.Orders, &cfg.JWT))

	// Swagger documentation
	http.HandleFunc("/swagger/", httpSwagger.WrapHandler)

	// Root route
	http.HandleFunc("/", rootHandler)
}

func rootHandler(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("Shopcart backend is running."))
}
