package api

import (
	"encoding/json"
	"net/http"

	"cletaeats-be/internal/user"
	"cletaeats-be/internal/utils"
)

func (h *Handler) RegisterClient(w http.ResponseWriter, r *http.Request) {
	var req registerClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	client, err := h.users.RegisterClient(r.Context(), user.RegisterClientInput{
		ID:         req.ID,
		Name:       req.Name,
		Address:    req.Address,
		Phone:      req.Phone,
		CardNumber: req.CardNumber,
		Email:      req.Email,
		Password:   req.Password,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, registeredResponse{
		ID: client.ID, Name: client.Name, Role: string(user.RoleClient),
	}, http.StatusCreated)
}

func (h *Handler) RegisterCourier(w http.ResponseWriter, r *http.Request) {
	var req registerCourierRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	courier, err := h.users.RegisterCourier(r.Context(), user.RegisterCourierInput{
		ID:         req.ID,
		Name:       req.Name,
		Address:    req.Address,
		Phone:      req.Phone,
		CardNumber: req.CardNumber,
		Email:      req.Email,
		Password:   req.Password,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, registeredResponse{
		ID: courier.ID, Name: courier.Name, Role: string(user.RoleCourier),
	}, http.StatusCreated)
}

func (h *Handler) RegisterRestaurant(w http.ResponseWriter, r *http.Request) {
	var req registerRestaurantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	restaurant, err := h.users.RegisterRestaurant(r.Context(), user.RegisterRestaurantInput{
		ID:       req.ID,
		Name:     req.Name,
		Address:  req.Address,
		Phone:    req.Phone,
		Cuisine:  user.CuisineType(req.Cuisine),
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, registeredResponse{
		ID: restaurant.ID, Name: restaurant.Name, Role: string(user.RoleRestaurant),
	}, http.StatusCreated)
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	token, account, err := h.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, loginResponse{
		Token: token,
		ID:    account.ID,
		Name:  account.Name,
		Role:  string(account.Role),
	}, http.StatusOK)
}
