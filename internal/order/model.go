package order

import (
	"time"

	"cletaeats-be/internal/user"
)

type OrderStatus string

const (
	StatusPreparing OrderStatus = "PREPARING"
	StatusInTransit OrderStatus = "IN_TRANSIT"
	StatusDelivered OrderStatus = "DELIVERED"
	StatusSuspended OrderStatus = "SUSPENDED"
)

// Combo is a catalog entry. The price is a fixed formula over the combo
// number, restaurants only customize the description.
type Combo struct {
	Code  int
	Name  string
	Price float64
}

// ComboPrice is 3000 + 1000 per combo number.
func ComboPrice(code int) float64 {
	return 3000.0 + float64(code)*1000.0
}

// TaxRate is the sales tax applied to the combo subtotal.
const TaxRate = 0.13

// Order references its participants by snapshot: the client, restaurant and
// courier are resolved by id when the record is read back, so later profile
// edits do not rewrite history.
type Order struct {
	ID          string
	Client      user.Client
	Restaurant  user.Restaurant
	Courier     *user.Courier
	Combos      []Combo
	Status      OrderStatus
	PlacedAt    time.Time
	DeliveredAt *time.Time
	Rated       bool
	DeliveryFee int
}

func (o Order) Subtotal() float64 {
	var subtotal float64
	for _, combo := range o.Combos {
		subtotal += combo.Price
	}
	return subtotal
}

func (o Order) Tax() float64 {
	return o.Subtotal() * TaxRate
}

// Total uses the delivery fee stored at placement time, never a
// recomputed one.
func (o Order) Total() float64 {
	return o.Subtotal() + o.Tax() + float64(o.DeliveryFee)
}
