package order

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	timeLayout  = "2006-01-02 15:04:05"
	nullField   = "null"
	orderFields = 10
)

// NewOrderID derives the order identifier from the placement instant,
// unique down to the millisecond. A same-millisecond collision is an
// accepted limitation of the scheme.
func NewOrderID(t time.Time) string {
	millis := t.Nanosecond() / int(time.Millisecond)
	return fmt.Sprintf("ORD-%s-%03d", t.Format("20060102150405"), millis)
}

// orderRow is the raw persisted form, user references still unresolved.
type orderRow struct {
	ID           string
	ClientID     string
	RestaurantID string
	ComboCodes   []int
	CourierID    string // empty when the "null" sentinel was stored
	Status       OrderStatus
	PlacedAt     time.Time
	DeliveredAt  *time.Time
	Rated        bool
	DeliveryFee  int
}

func OrderToRecord(o Order) []string {
	codes := make([]string, 0, len(o.Combos))
	for _, combo := range o.Combos {
		codes = append(codes, strconv.Itoa(combo.Code))
	}

	courierID := nullField
	if o.Courier != nil {
		courierID = o.Courier.ID
	}

	deliveredAt := nullField
	if o.DeliveredAt != nil {
		deliveredAt = o.DeliveredAt.Format(timeLayout)
	}

	return []string{
		o.ID,
		o.Client.ID,
		o.Restaurant.ID,
		strings.Join(codes, ";"),
		courierID,
		string(o.Status),
		o.PlacedAt.Format(timeLayout),
		deliveredAt,
		strconv.FormatBool(o.Rated),
		strconv.Itoa(o.DeliveryFee),
	}
}

func orderFromRecord(record []string) (orderRow, error) {
	if len(record) != orderFields {
		return orderRow{}, fmt.Errorf("%w: order has %d fields", ErrMalformedRecord, len(record))
	}

	var codes []int
	if record[3] != "" {
		for _, raw := range strings.Split(record[3], ";") {
			code, err := strconv.Atoi(raw)
			if err != nil {
				return orderRow{}, fmt.Errorf("%w: combo code %q", ErrMalformedRecord, raw)
			}
			codes = append(codes, code)
		}
	}

	courierID := record[4]
	if courierID == nullField {
		courierID = ""
	}

	placedAt, err := time.ParseInLocation(timeLayout, record[6], time.Local)
	if err != nil {
		return orderRow{}, fmt.Errorf("%w: placed at: %v", ErrMalformedRecord, err)
	}

	var deliveredAt *time.Time
	if record[7] != nullField {
		parsed, err := time.ParseInLocation(timeLayout, record[7], time.Local)
		if err != nil {
			return orderRow{}, fmt.Errorf("%w: delivered at: %v", ErrMalformedRecord, err)
		}
		deliveredAt = &parsed
	}

	rated, err := strconv.ParseBool(record[8])
	if err != nil {
		return orderRow{}, fmt.Errorf("%w: rated flag: %v", ErrMalformedRecord, err)
	}

	fee, err := strconv.Atoi(record[9])
	if err != nil {
		return orderRow{}, fmt.Errorf("%w: delivery fee: %v", ErrMalformedRecord, err)
	}

	return orderRow{
		ID:           record[0],
		ClientID:     record[1],
		RestaurantID: record[2],
		ComboCodes:   codes,
		CourierID:    courierID,
		Status:       OrderStatus(record[5]),
		PlacedAt:     placedAt,
		DeliveredAt:  deliveredAt,
		Rated:        rated,
		DeliveryFee:  fee,
	}, nil
}
