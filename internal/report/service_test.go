package report

import (
	"context"
	"fmt"
	"testing"
	"time"

	"cletaeats-be/internal/order"
	"cletaeats-be/internal/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	svc    Service
	users  user.Repository
	orders order.Repository
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	ctx := context.Background()
	dataDir := t.TempDir()
	users := user.NewRepository(dataDir)

	require.NoError(t, users.CreateClient(ctx, user.Client{
		ID: "1-1111-1111", Name: "Ana Rojas", Address: "San José", Phone: "88887777",
		CardNumber: "4111111111111111", Status: user.ClientActive,
		Email: "ana@example.com", Password: "hash",
	}))
	require.NoError(t, users.CreateClient(ctx, user.Client{
		ID: "1-2222-3333", Name: "Pedro Vega", Address: "Cartago", Phone: "89990000",
		CardNumber: "4222222222222222", Status: user.ClientSuspended,
		Email: "pedro@example.com", Password: "hash",
	}))
	require.NoError(t, users.CreateCourier(ctx, user.Courier{
		ID: "2-2222-2222", Name: "Luis Mora", Address: "Heredia", Phone: "60001111",
		CardNumber: "5500000000000004", Status: user.CourierAvailable,
		WeekdayRate: user.DefaultWeekdayRate, WeekendRate: user.DefaultWeekendRate,
		Email: "luis@example.com", Password: "hash",
	}))
	require.NoError(t, users.CreateCourier(ctx, user.Courier{
		ID: "2-3333-4444", Name: "Marta Solís", Address: "Alajuela", Phone: "70002222",
		CardNumber: "4000000000000002", Status: user.CourierAvailable,
		Complaints: []string{"late delivery"}, Penalties: 0,
		WeekdayRate: user.DefaultWeekdayRate, WeekendRate: user.DefaultWeekendRate,
		Email: "marta@example.com", Password: "hash",
	}))
	require.NoError(t, users.CreateRestaurant(ctx, user.Restaurant{
		ID: "3-101-123456", Name: "La Terraza", Address: "Alajuela", Phone: "24421111",
		Cuisine: user.CuisineItalian, Menu: map[int]string{1: "Pasta"},
		Email: "terraza@example.com", Password: "hash",
	}))
	require.NoError(t, users.CreateRestaurant(ctx, user.Restaurant{
		ID: "3-102-654321", Name: "El Fogón", Address: "San José", Phone: "22223333",
		Cuisine: user.CuisineTraditional, Menu: map[int]string{2: "Casado"},
		Email: "fogon@example.com", Password: "hash",
	}))

	orders := order.NewRepository(dataDir, users)
	return fixture{svc: NewService(users, orders), users: users, orders: orders}
}

// addOrder appends an order for the given client and restaurant placed at
// the given hour of a fixed day.
func (f fixture) addOrder(t *testing.T, id, clientID, restaurantID string, hour int, codes []int) {
	t.Helper()
	ctx := context.Background()

	client, err := f.users.GetClient(ctx, clientID)
	require.NoError(t, err)
	restaurant, err := f.users.GetRestaurant(ctx, restaurantID)
	require.NoError(t, err)
	combos, err := order.CombosByCodes(codes)
	require.NoError(t, err)

	require.NoError(t, f.orders.Append(ctx, order.Order{
		ID:          id,
		Client:      client,
		Restaurant:  restaurant,
		Combos:      combos,
		Status:      order.StatusPreparing,
		PlacedAt:    time.Date(2025, 3, 12, hour, 15, 0, 0, time.Local),
		DeliveryFee: 5000,
	}))
}

func TestClientRosters(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	active, err := f.svc.ActiveClients(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Contains(t, active[0], "Ana Rojas")

	suspended, err := f.svc.SuspendedClients(ctx)
	require.NoError(t, err)
	require.Len(t, suspended, 1)
	assert.Contains(t, suspended[0], "Pedro Vega")
}

func TestCouriersWithoutPenalties(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// Give the first courier a penalty; the second has a complaint but no
	// penalty yet, so it still qualifies.
	courier, err := f.users.GetCourier(ctx, "2-2222-2222")
	require.NoError(t, err)
	courier.Penalties = 1
	require.NoError(t, f.users.UpdateCourier(ctx, courier))

	clean, err := f.svc.CouriersWithoutPenalties(ctx)
	require.NoError(t, err)
	require.Len(t, clean, 1)
	assert.Contains(t, clean[0], "Marta Solís")
}

func TestRestaurantDirectory(t *testing.T) {
	f := newFixture(t)

	lines, err := f.svc.RestaurantDirectory(context.Background())
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "La Terraza")
	assert.Contains(t, lines[0], "ITALIAN")
	assert.Contains(t, lines[1], "El Fogón")
}

func TestComplaintsByCourier(t *testing.T) {
	f := newFixture(t)

	lines, err := f.svc.ComplaintsByCourier(context.Background())
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "Complaints: [none]")
	assert.Contains(t, lines[1], "late delivery")
}

func TestRestaurantOrderExtremes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.addOrder(t, "ORD-1", "1-1111-1111", "3-101-123456", 12, []int{1})
	f.addOrder(t, "ORD-2", "1-1111-1111", "3-101-123456", 13, []int{2})
	f.addOrder(t, "ORD-3", "1-2222-3333", "3-102-654321", 14, []int{3})

	most, err := f.svc.RestaurantWithMostOrders(ctx)
	require.NoError(t, err)
	assert.Contains(t, most, "La Terraza")

	fewest, err := f.svc.RestaurantWithFewestOrders(ctx)
	require.NoError(t, err)
	assert.Contains(t, fewest, "El Fogón")
}

func TestRevenue(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// Combo 1 = 4000, combo 2 = 5000; 13% tax plus a 5000 fee each.
	f.addOrder(t, "ORD-1", "1-1111-1111", "3-101-123456", 12, []int{1})
	f.addOrder(t, "ORD-2", "1-2222-3333", "3-102-654321", 13, []int{2})

	lines, err := f.svc.RevenueByRestaurant(ctx)
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "La Terraza")
	assert.Contains(t, lines[0], "9520.00")
	assert.Contains(t, lines[1], "10650.00")

	total, err := f.svc.TotalRevenue(ctx)
	require.NoError(t, err)
	assert.Contains(t, total, "20170.00")
}

func TestOrdersByClient(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.addOrder(t, "ORD-1", "1-1111-1111", "3-101-123456", 12, []int{1})
	f.addOrder(t, "ORD-2", "1-1111-1111", "3-102-654321", 13, []int{2})
	f.addOrder(t, "ORD-3", "1-2222-3333", "3-101-123456", 14, []int{3})

	lines, err := f.svc.OrdersByClient(ctx)
	require.NoError(t, err)
	// One header per client plus one line per order.
	require.Len(t, lines, 5)
	assert.Contains(t, lines[0], "Ana Rojas (2 orders)")
	assert.Contains(t, lines[3], "Pedro Vega (1 orders)")

	leader, err := f.svc.ClientWithMostOrders(ctx)
	require.NoError(t, err)
	assert.Contains(t, leader, "Ana Rojas")
}

func TestPeakHour(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for i, hour := range []int{10, 10, 11, 10} {
		f.addOrder(t, fmt.Sprintf("ORD-%d", i+1), "1-1111-1111", "3-101-123456", hour, []int{1})
	}

	got, err := f.svc.PeakHour(ctx)
	require.NoError(t, err)
	assert.Contains(t, got, "10:00-11:00")
}

func TestScalarReportsOnEmptyData(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for name, call := range map[string]func(context.Context) (string, error){
		"most orders":   f.svc.RestaurantWithMostOrders,
		"fewest orders": f.svc.RestaurantWithFewestOrders,
		"total revenue": f.svc.TotalRevenue,
		"top client":    f.svc.ClientWithMostOrders,
		"peak hour":     f.svc.PeakHour,
	} {
		got, err := call(ctx)
		require.NoError(t, err, name)
		assert.Equal(t, NoData, got, name)
	}
}
