package api

import (
	"encoding/json"
	"net/http"

	"cletaeats-be/internal/order"
	"cletaeats-be/internal/user"
	"cletaeats-be/internal/utils"
)

func (h *Handler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteJSONError(w, "authentication required", http.StatusUnauthorized)
		return
	}
	if utils.GetUserRoleFromContext(r.Context()) != string(user.RoleClient) {
		utils.WriteJSONError(w, "only clients can place orders", http.StatusForbidden)
		return
	}

	var req placeOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	o, err := h.orders.PlaceOrder(r.Context(), userID, req.RestaurantID, req.ComboCodes)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, toOrderResponse(o), http.StatusCreated)
}

// ListOrders returns the caller's orders: clients see what they placed,
// couriers what they deliver, restaurants what they cook.
func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteJSONError(w, "authentication required", http.StatusUnauthorized)
		return
	}

	var (
		orders []order.Order
		err    error
	)
	switch utils.GetUserRoleFromContext(r.Context()) {
	case string(user.RoleClient):
		orders, err = h.orders.ListByClient(r.Context(), userID)
	case string(user.RoleCourier):
		orders, err = h.orders.ListByCourier(r.Context(), userID)
	case string(user.RoleRestaurant):
		orders, err = h.orders.ListByRestaurant(r.Context(), userID)
	default:
		utils.WriteJSONError(w, "no order view for this role", http.StatusForbidden)
		return
	}
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, toOrderResponses(orders), http.StatusOK)
}

func (h *Handler) AdvanceOrderStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteJSONError(w, "authentication required", http.StatusUnauthorized)
		return
	}
	if utils.GetUserRoleFromContext(r.Context()) != string(user.RoleCourier) {
		utils.WriteJSONError(w, "only the assigned courier can advance an order", http.StatusForbidden)
		return
	}

	var req advanceStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	status := order.OrderStatus(req.Status)
	switch status {
	case order.StatusInTransit, order.StatusDelivered, order.StatusSuspended:
	default:
		utils.WriteJSONError(w, "unknown order status", http.StatusBadRequest)
		return
	}

	o, err := h.orders.AdvanceStatus(r.Context(), r.PathValue("id"), userID, status)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, toOrderResponse(o), http.StatusOK)
}

// RateOrder lets the client who placed a delivered order rate it once.
func (h *Handler) RateOrder(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteJSONError(w, "authentication required", http.StatusUnauthorized)
		return
	}
	if utils.GetUserRoleFromContext(r.Context()) != string(user.RoleClient) {
		utils.WriteJSONError(w, "only clients can rate orders", http.StatusForbidden)
		return
	}

	var req rateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	orderID := r.PathValue("id")

	o, err := h.orders.Get(r.Context(), orderID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if o.Client.ID != userID {
		utils.WriteJSONError(w, "not your order", http.StatusForbidden)
		return
	}

	if req.Positive {
		err = h.ratings.RatePositive(r.Context(), orderID)
	} else {
		err = h.ratings.RateNegative(r.Context(), orderID, req.Complaint)
	}
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
