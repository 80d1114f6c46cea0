package api

import (
	"encoding/json"
	"net/http"

	"cletaeats-be/internal/user"
	"cletaeats-be/internal/utils"
)

func (h *Handler) ListRestaurants(w http.ResponseWriter, r *http.Request) {
	restaurants, err := h.userDir.ListRestaurants(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	out := make([]restaurantResponse, 0, len(restaurants))
	for _, rest := range restaurants {
		out = append(out, toRestaurantResponse(rest, false))
	}
	utils.WriteJSON(w, out, http.StatusOK)
}

func (h *Handler) RestaurantMenu(w http.ResponseWriter, r *http.Request) {
	restaurant, err := h.userDir.GetRestaurant(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, toRestaurantResponse(restaurant, true), http.StatusOK)
}

// UpdateMenu replaces the menu of the authenticated restaurant.
func (h *Handler) UpdateMenu(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteJSONError(w, "authentication required", http.StatusUnauthorized)
		return
	}
	if utils.GetUserRoleFromContext(r.Context()) != string(user.RoleRestaurant) {
		utils.WriteJSONError(w, "only restaurants can edit a menu", http.StatusForbidden)
		return
	}

	var req updateMenuRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	restaurant, err := h.users.UpdateMenu(r.Context(), userID, req.Menu)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, toRestaurantResponse(restaurant, true), http.StatusOK)
}
