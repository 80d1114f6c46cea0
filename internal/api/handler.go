package api

import (
	"errors"
	"net/http"

	"cletaeats-be/internal/logger"
	"cletaeats-be/internal/middleware"
	"cletaeats-be/internal/order"
	"cletaeats-be/internal/rating"
	"cletaeats-be/internal/report"
	"cletaeats-be/internal/user"
	"cletaeats-be/internal/utils"

	"go.uber.org/zap"
)

// Handler wires the HTTP surface to the domain services.
type Handler struct {
	users   user.Service
	userDir user.Repository
	orders  order.Service
	ratings rating.Service
	reports report.Service
}

func NewHandler(
	users user.Service,
	userDir user.Repository,
	orders order.Service,
	ratings rating.Service,
	reports report.Service,
) *Handler {
	return &Handler{
		users:   users,
		userDir: userDir,
		orders:  orders,
		ratings: ratings,
		reports: reports,
	}
}

// Routes registers every endpoint on a fresh mux. Role enforcement for the
// admin surface lives here; ownership checks live in the handlers.
func (h *Handler) Routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		utils.WriteJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
	})

	mux.HandleFunc("POST /auth/register/client", h.RegisterClient)
	mux.HandleFunc("POST /auth/register/courier", h.RegisterCourier)
	mux.HandleFunc("POST /auth/register/restaurant", h.RegisterRestaurant)
	mux.HandleFunc("POST /auth/login", h.Login)

	mux.HandleFunc("GET /restaurants", h.ListRestaurants)
	mux.HandleFunc("GET /restaurants/{id}/menu", h.RestaurantMenu)
	mux.HandleFunc("PUT /menu", h.UpdateMenu)

	mux.HandleFunc("POST /orders", h.PlaceOrder)
	mux.HandleFunc("GET /orders", h.ListOrders)
	mux.HandleFunc("POST /orders/{id}/status", h.AdvanceOrderStatus)
	mux.HandleFunc("POST /orders/{id}/rating", h.RateOrder)

	adminOnly := middleware.RequireRole(string(user.RoleAdmin))
	mux.Handle("POST /admin/clients/{id}/status", adminOnly(http.HandlerFunc(h.SetClientStatus)))
	mux.Handle("GET /reports/{name}", adminOnly(http.HandlerFunc(h.Report)))

	return mux
}

// writeError maps domain sentinels to HTTP status codes and logs anything
// unexpected.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := http.StatusInternalServerError

	switch {
	case errors.Is(err, user.ErrValidation),
		errors.Is(err, user.ErrMalformedRecord),
		errors.Is(err, order.ErrEmptyOrder),
		errors.Is(err, order.ErrUnknownCombo),
		errors.Is(err, rating.ErrComplaintRequired),
		errors.Is(err, rating.ErrInvalidComplaint):
		code = http.StatusBadRequest
	case errors.Is(err, user.ErrInvalidCredentials):
		code = http.StatusUnauthorized
	case errors.Is(err, order.ErrClientSuspended),
		errors.Is(err, order.ErrNotAssignedCourier):
		code = http.StatusForbidden
	case errors.Is(err, user.ErrNotFound),
		errors.Is(err, order.ErrOrderNotFound):
		code = http.StatusNotFound
	case errors.Is(err, user.ErrDuplicateID),
		errors.Is(err, user.ErrEmailExists),
		errors.Is(err, order.ErrNoCourierAvailable),
		errors.Is(err, order.ErrInvalidTransition),
		errors.Is(err, rating.ErrAlreadyRated),
		errors.Is(err, rating.ErrNotDelivered):
		code = http.StatusConflict
	}

	if code == http.StatusInternalServerError {
		logger.FromCtx(r.Context()).Error("request failed",
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		utils.WriteJSONError(w, "internal server error", code)
		return
	}
	utils.WriteJSONError(w, err.Error(), code)
}
