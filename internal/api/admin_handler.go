package api

import (
	"context"
	"encoding/json"
	"net/http"

	"cletaeats-be/internal/user"
	"cletaeats-be/internal/utils"
)

// SetClientStatus suspends or reactivates a client. Admin-only, enforced
// by the route middleware.
func (h *Handler) SetClientStatus(w http.ResponseWriter, r *http.Request) {
	var req setClientStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	status := user.ClientStatus(req.Status)
	if status != user.ClientActive && status != user.ClientSuspended {
		utils.WriteJSONError(w, "unknown client status", http.StatusBadRequest)
		return
	}

	if err := h.users.SetClientStatus(r.Context(), r.PathValue("id"), status); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Report runs the named aggregation. Scalar reports come back as a single
// line. Admin-only, enforced by the route middleware.
func (h *Handler) Report(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")

	listReports := map[string]func(context.Context) ([]string, error){
		"active-clients":        h.reports.ActiveClients,
		"suspended-clients":     h.reports.SuspendedClients,
		"clean-couriers":        h.reports.CouriersWithoutPenalties,
		"restaurants":           h.reports.RestaurantDirectory,
		"complaints-by-courier": h.reports.ComplaintsByCourier,
		"revenue-by-restaurant": h.reports.RevenueByRestaurant,
		"orders-by-client":      h.reports.OrdersByClient,
	}
	scalarReports := map[string]func(context.Context) (string, error){
		"top-restaurant":    h.reports.RestaurantWithMostOrders,
		"bottom-restaurant": h.reports.RestaurantWithFewestOrders,
		"total-revenue":     h.reports.TotalRevenue,
		"top-client":        h.reports.ClientWithMostOrders,
		"peak-hour":         h.reports.PeakHour,
	}

	if run, ok := listReports[name]; ok {
		lines, err := run(r.Context())
		if err != nil {
			writeError(w, r, err)
			return
		}
		if lines == nil {
			lines = []string{}
		}
		utils.WriteJSON(w, reportResponse{Report: name, Lines: lines}, http.StatusOK)
		return
	}

	if run, ok := scalarReports[name]; ok {
		line, err := run(r.Context())
		if err != nil {
			writeError(w, r, err)
			return
		}
		utils.WriteJSON(w, reportResponse{Report: name, Lines: []string{line}}, http.StatusOK)
		return
	}

	utils.WriteJSONError(w, "unknown report", http.StatusNotFound)
}
