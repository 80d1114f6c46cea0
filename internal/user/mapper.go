package user

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Record layouts. One CSV line per entity; multi-valued fields (complaints,
// menu) are folded into a single field with ';' and ':' as inner separators
// so they stay one column wide.

const (
	clientFields     = 8
	courierFields    = 14
	restaurantFields = 10
)

func ClientToRecord(c Client) []string {
	return []string{
		c.ID, c.Name, c.Address, c.Phone, c.CardNumber,
		string(c.Status), c.Email, c.Password,
	}
}

func ClientFromRecord(record []string) (Client, error) {
	if len(record) != clientFields {
		return Client{}, fmt.Errorf("%w: client has %d fields", ErrMalformedRecord, len(record))
	}
	return Client{
		ID:         record[0],
		Name:       record[1],
		Address:    record[2],
		Phone:      record[3],
		CardNumber: record[4],
		Status:     ClientStatus(record[5]),
		Email:      record[6],
		Password:   record[7],
	}, nil
}

func CourierToRecord(c Courier) []string {
	return []string{
		c.ID, c.Name, c.Address, c.Phone, c.CardNumber,
		string(c.Status),
		strconv.Itoa(c.LastTripKm),
		strconv.Itoa(c.DailyKm),
		strconv.Itoa(c.Penalties),
		strconv.Itoa(c.WeekdayRate),
		strconv.Itoa(c.WeekendRate),
		strings.Join(c.Complaints, ";"),
		c.Email, c.Password,
	}
}

func CourierFromRecord(record []string) (Courier, error) {
	if len(record) != courierFields {
		return Courier{}, fmt.Errorf("%w: courier has %d fields", ErrMalformedRecord, len(record))
	}

	lastTrip, err := strconv.Atoi(record[6])
	if err != nil {
		return Courier{}, fmt.Errorf("%w: last trip km: %v", ErrMalformedRecord, err)
	}
	dailyKm, err := strconv.Atoi(record[7])
	if err != nil {
		return Courier{}, fmt.Errorf("%w: daily km: %v", ErrMalformedRecord, err)
	}
	penalties, err := strconv.Atoi(record[8])
	if err != nil {
		return Courier{}, fmt.Errorf("%w: penalties: %v", ErrMalformedRecord, err)
	}
	weekdayRate, err := strconv.Atoi(record[9])
	if err != nil {
		return Courier{}, fmt.Errorf("%w: weekday rate: %v", ErrMalformedRecord, err)
	}
	weekendRate, err := strconv.Atoi(record[10])
	if err != nil {
		return Courier{}, fmt.Errorf("%w: weekend rate: %v", ErrMalformedRecord, err)
	}

	var complaints []string
	if record[11] != "" {
		complaints = strings.Split(record[11], ";")
	}

	return Courier{
		ID:          record[0],
		Name:        record[1],
		Address:     record[2],
		Phone:       record[3],
		CardNumber:  record[4],
		Status:      CourierStatus(record[5]),
		LastTripKm:  lastTrip,
		DailyKm:     dailyKm,
		Penalties:   penalties,
		WeekdayRate: weekdayRate,
		WeekendRate: weekendRate,
		Complaints:  complaints,
		Email:       record[12],
		Password:    record[13],
	}, nil
}

func RestaurantToRecord(r Restaurant) []string {
	return []string{
		r.ID, r.Name, r.Address, r.Phone,
		string(r.Cuisine),
		strconv.FormatFloat(r.AvgRating, 'f', -1, 64),
		strconv.Itoa(r.OrderCount),
		menuToString(r.Menu),
		r.Email, r.Password,
	}
}

func RestaurantFromRecord(record []string) (Restaurant, error) {
	if len(record) != restaurantFields {
		return Restaurant{}, fmt.Errorf("%w: restaurant has %d fields", ErrMalformedRecord, len(record))
	}

	avgRating, err := strconv.ParseFloat(record[5], 64)
	if err != nil {
		return Restaurant{}, fmt.Errorf("%w: avg rating: %v", ErrMalformedRecord, err)
	}
	orderCount, err := strconv.Atoi(record[6])
	if err != nil {
		return Restaurant{}, fmt.Errorf("%w: order count: %v", ErrMalformedRecord, err)
	}

	return Restaurant{
		ID:         record[0],
		Name:       record[1],
		Address:    record[2],
		Phone:      record[3],
		Cuisine:    CuisineType(record[4]),
		AvgRating:  avgRating,
		OrderCount: orderCount,
		Menu:       menuFromString(record[7]),
		Email:      record[8],
		Password:   record[9],
	}, nil
}

// menuToString encodes the menu map as "1:desc;2:desc". Keys are sorted so
// the encoding is stable for round-trips and diffs.
func menuToString(menu map[int]string) string {
	if len(menu) == 0 {
		return ""
	}
	codes := make([]int, 0, len(menu))
	for code := range menu {
		codes = append(codes, code)
	}
	sort.Ints(codes)

	pairs := make([]string, 0, len(codes))
	for _, code := range codes {
		pairs = append(pairs, fmt.Sprintf("%d:%s", code, menu[code]))
	}
	return strings.Join(pairs, ";")
}

func menuFromString(s string) map[int]string {
	menu := make(map[int]string)
	if s == "" {
		return menu
	}
	for _, pair := range strings.Split(s, ";") {
		parts := strings.SplitN(pair, ":", 2)
		if len(parts) != 2 {
			continue
		}
		code, err := strconv.Atoi(parts[0])
		if err != nil {
			continue
		}
		menu[code] = parts[1]
	}
	return menu
}
