package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"cletaeats-be/internal/api"
	"cletaeats-be/internal/order"
	"cletaeats-be/internal/rating"
	"cletaeats-be/internal/report"
	"cletaeats-be/internal/user"

	"github.com/stretchr/testify/assert"
)

func TestSetupRouter(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	dataDir := t.TempDir()
	userRepo := user.NewRepository(dataDir)
	orderRepo := order.NewRepository(dataDir, userRepo)

	handler := api.NewHandler(
		user.NewService(userRepo, "admin@cletaeats.cr", "admin-secret"),
		userRepo,
		order.NewService(orderRepo, userRepo, order.RandomDistance{}),
		rating.NewService(orderRepo, userRepo),
		report.NewService(userRepo, orderRepo),
	)
	router := setupRouter(handler)

	t.Run("Health Check", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "ok")
		assert.NotEmpty(t, rr.Header().Get("X-Request-ID"))
	})

	t.Run("Unknown Route", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/nope", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("Admin Route Needs Auth", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/reports/total-revenue", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}
