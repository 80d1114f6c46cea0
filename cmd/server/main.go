package main

import (
	"log"
	"net/http"

	"cletaeats-be/internal/api"
	"cletaeats-be/internal/config"
	"cletaeats-be/internal/logger"
	"cletaeats-be/internal/middleware"
	"cletaeats-be/internal/order"
	"cletaeats-be/internal/rating"
	"cletaeats-be/internal/report"
	"cletaeats-be/internal/user"
)

func main() {
	cfg := config.LoadConfig()

	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	userRepo := user.NewRepository(cfg.DataDir)
	orderRepo := order.NewRepository(cfg.DataDir, userRepo)

	userSvc := user.NewService(userRepo, cfg.AdminEmail, cfg.AdminPassword)
	orderSvc := order.NewService(orderRepo, userRepo, order.RandomDistance{})
	ratingSvc := rating.NewService(orderRepo, userRepo)
	reportSvc := report.NewService(userRepo, orderRepo)

	handler := api.NewHandler(userSvc, userRepo, orderSvc, ratingSvc, reportSvc)
	root := setupRouter(handler)

	log.Printf("🚀 CletaEats API running at http://localhost:%s/", cfg.AppPort)
	log.Fatal(http.ListenAndServe(":"+cfg.AppPort, root))
}

// setupRouter wraps the route mux in the middleware chain. Request ID goes
// first so every later layer logs under it; auth runs before the limiter so
// authenticated callers get per-user buckets.
func setupRouter(handler *api.Handler) http.Handler {
	var root http.Handler = handler.Routes()
	root = middleware.RateLimitMiddleware(root)
	root = middleware.AuthMiddleware(root)
	root = logger.LoggingMiddleware(root)
	root = logger.RequestIDMiddleware(root)
	return root
}
