package api

import (
	"time"

	"cletaeats-be/internal/order"
	"cletaeats-be/internal/user"
)

type registerClientRequest struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Address    string `json:"address"`
	Phone      string `json:"phone"`
	CardNumber string `json:"card_number"`
	Email      string `json:"email"`
	Password   string `json:"password"`
}

type registerCourierRequest struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Address    string `json:"address"`
	Phone      string `json:"phone"`
	CardNumber string `json:"card_number"`
	Email      string `json:"email"`
	Password   string `json:"password"`
}

type registerRestaurantRequest struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Address  string `json:"address"`
	Phone    string `json:"phone"`
	Cuisine  string `json:"cuisine"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
	ID    string `json:"id"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

type registeredResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

type restaurantResponse struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Address   string         `json:"address"`
	Phone     string         `json:"phone"`
	Cuisine   string         `json:"cuisine"`
	Menu      map[int]string `json:"menu,omitempty"`
	AvgRating float64        `json:"avg_rating"`
}

func toRestaurantResponse(r user.Restaurant, withMenu bool) restaurantResponse {
	resp := restaurantResponse{
		ID:        r.ID,
		Name:      r.Name,
		Address:   r.Address,
		Phone:     r.Phone,
		Cuisine:   string(r.Cuisine),
		AvgRating: r.AvgRating,
	}
	if withMenu {
		resp.Menu = r.Menu
	}
	return resp
}

type updateMenuRequest struct {
	Menu map[int]string `json:"menu"`
}

type placeOrderRequest struct {
	RestaurantID string `json:"restaurant_id"`
	ComboCodes   []int  `json:"combo_codes"`
}

type advanceStatusRequest struct {
	Status string `json:"status"`
}

type rateOrderRequest struct {
	Positive  bool   `json:"positive"`
	Complaint string `json:"complaint,omitempty"`
}

type setClientStatusRequest struct {
	Status string `json:"status"`
}

type comboResponse struct {
	Code  int     `json:"code"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

type orderResponse struct {
	ID           string          `json:"id"`
	ClientID     string          `json:"client_id"`
	RestaurantID string          `json:"restaurant_id"`
	CourierID    string          `json:"courier_id,omitempty"`
	Combos       []comboResponse `json:"combos"`
	Status       string          `json:"status"`
	PlacedAt     time.Time       `json:"placed_at"`
	DeliveredAt  *time.Time      `json:"delivered_at,omitempty"`
	Rated        bool            `json:"rated"`
	Subtotal     float64         `json:"subtotal"`
	Tax          float64         `json:"tax"`
	DeliveryFee  int             `json:"delivery_fee"`
	Total        float64         `json:"total"`
}

func toOrderResponse(o order.Order) orderResponse {
	combos := make([]comboResponse, 0, len(o.Combos))
	for _, c := range o.Combos {
		combos = append(combos, comboResponse{
			Code:  c.Code,
			Name:  c.Name,
			Price: c.Price,
		})
	}

	resp := orderResponse{
		ID:           o.ID,
		ClientID:     o.Client.ID,
		RestaurantID: o.Restaurant.ID,
		Combos:       combos,
		Status:       string(o.Status),
		PlacedAt:     o.PlacedAt,
		DeliveredAt:  o.DeliveredAt,
		Rated:        o.Rated,
		Subtotal:     o.Subtotal(),
		Tax:          o.Tax(),
		DeliveryFee:  o.DeliveryFee,
		Total:        o.Total(),
	}
	if o.Courier != nil {
		resp.CourierID = o.Courier.ID
	}
	return resp
}

func toOrderResponses(orders []order.Order) []orderResponse {
	out := make([]orderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrderResponse(o))
	}
	return out
}

type reportResponse struct {
	Report string   `json:"report"`
	Lines  []string `json:"lines"`
}
