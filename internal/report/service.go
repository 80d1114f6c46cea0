package report

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"cletaeats-be/internal/order"
	"cletaeats-be/internal/user"
)

// NoData is returned in place of a result when the backing collections
// are empty. It is a sentinel, not an error: "nothing recorded yet" is a
// valid answer.
const NoData = "no data"

// Service recomputes every view from full store snapshots on each call.
// Nothing is cached.
type Service interface {
	ActiveClients(ctx context.Context) ([]string, error)
	SuspendedClients(ctx context.Context) ([]string, error)
	CouriersWithoutPenalties(ctx context.Context) ([]string, error)
	RestaurantDirectory(ctx context.Context) ([]string, error)
	ComplaintsByCourier(ctx context.Context) ([]string, error)
	RestaurantWithMostOrders(ctx context.Context) (string, error)
	RestaurantWithFewestOrders(ctx context.Context) (string, error)
	RevenueByRestaurant(ctx context.Context) ([]string, error)
	TotalRevenue(ctx context.Context) (string, error)
	OrdersByClient(ctx context.Context) ([]string, error)
	ClientWithMostOrders(ctx context.Context) (string, error)
	PeakHour(ctx context.Context) (string, error)
}

type service struct {
	users  user.Repository
	orders order.Repository
}

func NewService(users user.Repository, orders order.Repository) Service {
	return &service{users: users, orders: orders}
}

func (s *service) ActiveClients(ctx context.Context) ([]string, error) {
	return s.clientsByStatus(ctx, user.ClientActive)
}

func (s *service) SuspendedClients(ctx context.Context) ([]string, error) {
	return s.clientsByStatus(ctx, user.ClientSuspended)
}

func (s *service) clientsByStatus(ctx context.Context, status user.ClientStatus) ([]string, error) {
	clients, err := s.users.ListClients(ctx)
	if err != nil {
		return nil, err
	}

	var lines []string
	for _, c := range clients {
		if c.Status == status {
			lines = append(lines, fmt.Sprintf("ID: %s, Name: %s", c.ID, c.Name))
		}
	}
	return lines, nil
}

func (s *service) CouriersWithoutPenalties(ctx context.Context) ([]string, error) {
	couriers, err := s.users.ListCouriers(ctx)
	if err != nil {
		return nil, err
	}

	var lines []string
	for _, c := range couriers {
		if c.Penalties == 0 {
			lines = append(lines, fmt.Sprintf("ID: %s, Name: %s", c.ID, c.Name))
		}
	}
	return lines, nil
}

func (s *service) RestaurantDirectory(ctx context.Context) ([]string, error) {
	restaurants, err := s.users.ListRestaurants(ctx)
	if err != nil {
		return nil, err
	}

	lines := make([]string, 0, len(restaurants))
	for _, r := range restaurants {
		lines = append(lines, fmt.Sprintf(
			"Restaurant: %s (legal ID %s) - Cuisine: %s - Address: %s",
			r.Name, r.ID, r.Cuisine, r.Address,
		))
	}
	return lines, nil
}

func (s *service) ComplaintsByCourier(ctx context.Context) ([]string, error) {
	couriers, err := s.users.ListCouriers(ctx)
	if err != nil {
		return nil, err
	}

	lines := make([]string, 0, len(couriers))
	for _, c := range couriers {
		complaints := "none"
		if len(c.Complaints) > 0 {
			complaints = strings.Join(c.Complaints, " | ")
		}
		lines = append(lines, fmt.Sprintf(
			"Courier: %s (ID %s) - Complaints: [%s]",
			c.Name, c.ID, complaints,
		))
	}
	return lines, nil
}

func (s *service) RestaurantWithMostOrders(ctx context.Context) (string, error) {
	name, _, err := s.restaurantByOrderCount(ctx, true)
	if err != nil || name == "" {
		return NoData, err
	}
	return fmt.Sprintf("Restaurant with the most orders: %s", name), nil
}

func (s *service) RestaurantWithFewestOrders(ctx context.Context) (string, error) {
	name, _, err := s.restaurantByOrderCount(ctx, false)
	if err != nil || name == "" {
		return NoData, err
	}
	return fmt.Sprintf("Restaurant with the fewest orders: %s", name), nil
}

// restaurantByOrderCount groups orders by restaurant and picks the largest
// or smallest group. Ties go to the group first seen in record order.
func (s *service) restaurantByOrderCount(ctx context.Context, most bool) (string, int, error) {
	orders, err := s.orders.List(ctx)
	if err != nil {
		return "", 0, err
	}
	if len(orders) == 0 {
		return "", 0, nil
	}

	counts := make(map[string]int)
	var seen []string
	for _, o := range orders {
		if _, ok := counts[o.Restaurant.Name]; !ok {
			seen = append(seen, o.Restaurant.Name)
		}
		counts[o.Restaurant.Name]++
	}

	best := seen[0]
	for _, name := range seen[1:] {
		if most && counts[name] > counts[best] {
			best = name
		}
		if !most && counts[name] < counts[best] {
			best = name
		}
	}
	return best, counts[best], nil
}

func (s *service) RevenueByRestaurant(ctx context.Context) ([]string, error) {
	orders, err := s.orders.List(ctx)
	if err != nil {
		return nil, err
	}

	totals := make(map[string]float64)
	var seen []string
	for _, o := range orders {
		if _, ok := totals[o.Restaurant.Name]; !ok {
			seen = append(seen, o.Restaurant.Name)
		}
		totals[o.Restaurant.Name] += o.Total()
	}

	lines := make([]string, 0, len(seen))
	for _, name := range seen {
		lines = append(lines, fmt.Sprintf("Restaurant: %s - Revenue: ₡%.2f", name, totals[name]))
	}
	return lines, nil
}

func (s *service) TotalRevenue(ctx context.Context) (string, error) {
	orders, err := s.orders.List(ctx)
	if err != nil {
		return NoData, err
	}
	if len(orders) == 0 {
		return NoData, nil
	}

	var total float64
	for _, o := range orders {
		total += o.Total()
	}
	return fmt.Sprintf("Total revenue across all restaurants: ₡%.2f", total), nil
}

func (s *service) OrdersByClient(ctx context.Context) ([]string, error) {
	orders, err := s.orders.List(ctx)
	if err != nil {
		return nil, err
	}

	grouped := make(map[string][]order.Order)
	var seen []string
	for _, o := range orders {
		if _, ok := grouped[o.Client.Name]; !ok {
			seen = append(seen, o.Client.Name)
		}
		grouped[o.Client.Name] = append(grouped[o.Client.Name], o)
	}

	var lines []string
	for _, name := range seen {
		group := grouped[name]
		lines = append(lines, fmt.Sprintf("Client: %s (%d orders)", name, len(group)))
		for _, o := range group {
			lines = append(lines, fmt.Sprintf("  - Order %s at %s", o.ID, o.Restaurant.Name))
		}
	}
	return lines, nil
}

func (s *service) ClientWithMostOrders(ctx context.Context) (string, error) {
	orders, err := s.orders.List(ctx)
	if err != nil || len(orders) == 0 {
		return NoData, err
	}

	counts := make(map[string]int)
	var seen []string
	byID := make(map[string]user.Client)
	for _, o := range orders {
		if _, ok := counts[o.Client.ID]; !ok {
			seen = append(seen, o.Client.ID)
			byID[o.Client.ID] = o.Client
		}
		counts[o.Client.ID]++
	}

	best := seen[0]
	for _, id := range seen[1:] {
		if counts[id] > counts[best] {
			best = id
		}
	}
	client := byID[best]
	return fmt.Sprintf("Client with the most orders: %s (ID %s)", client.Name, client.ID), nil
}

func (s *service) PeakHour(ctx context.Context) (string, error) {
	orders, err := s.orders.List(ctx)
	if err != nil || len(orders) == 0 {
		return NoData, err
	}

	hour, ok := peakHour(orders)
	if !ok {
		return NoData, nil
	}
	return fmt.Sprintf("Peak ordering hour: %02d:00-%02d:00", hour, hour+1), nil
}

// peakHour groups placements by hour of day and returns the busiest one.
// Ties go to the earliest hour.
func peakHour(orders []order.Order) (int, bool) {
	if len(orders) == 0 {
		return 0, false
	}

	counts := make(map[int]int)
	for _, o := range orders {
		counts[o.PlacedAt.Hour()]++
	}

	hours := make([]int, 0, len(counts))
	for hour := range counts {
		hours = append(hours, hour)
	}
	sort.Ints(hours)

	best := hours[0]
	for _, hour := range hours[1:] {
		if counts[hour] > counts[best] {
			best = hour
		}
	}
	return best, true
}
