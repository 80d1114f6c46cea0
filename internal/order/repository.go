package order

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"cletaeats-be/internal/logger"
	"cletaeats-be/internal/storage"
	"cletaeats-be/internal/user"

	"go.uber.org/zap"
)

type Repository interface {
	Append(ctx context.Context, order Order) error
	List(ctx context.Context) ([]Order, error)
	Get(ctx context.Context, id string) (Order, error)
	Update(ctx context.Context, order Order) error
}

// repository stores orders as flat records and rebuilds the user snapshots
// by id lookup on every read. Orders whose references no longer resolve are
// reported and skipped rather than silently dropped.
type repository struct {
	mu     sync.Mutex
	orders *storage.Table
	users  user.Repository
}

func NewRepository(dataDir string, users user.Repository) Repository {
	return &repository{
		orders: storage.NewTable(filepath.Join(dataDir, "orders.txt")),
		users:  users,
	}
}

func (r *repository) Append(ctx context.Context, order Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.orders.AppendOne(OrderToRecord(order))
}

func (r *repository) List(ctx context.Context) ([]Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.loadAll(ctx)
}

func (r *repository) Get(ctx context.Context, id string) (Order, error) {
	orders, err := r.List(ctx)
	if err != nil {
		return Order{}, err
	}
	for _, o := range orders {
		if o.ID == id {
			return o, nil
		}
	}
	return Order{}, ErrOrderNotFound
}

func (r *repository) Update(ctx context.Context, order Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	orders, err := r.loadAll(ctx)
	if err != nil {
		return err
	}

	found := false
	records := make([][]string, 0, len(orders))
	for _, o := range orders {
		if o.ID == order.ID {
			o = order
			found = true
		}
		records = append(records, OrderToRecord(o))
	}
	if !found {
		return ErrOrderNotFound
	}
	return r.orders.ReplaceAll(records)
}

func (r *repository) loadAll(ctx context.Context) ([]Order, error) {
	records, err := r.orders.LoadAll()
	if err != nil {
		return nil, fmt.Errorf("load orders: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	clients, err := r.users.ListClients(ctx)
	if err != nil {
		return nil, err
	}
	couriers, err := r.users.ListCouriers(ctx)
	if err != nil {
		return nil, err
	}
	restaurants, err := r.users.ListRestaurants(ctx)
	if err != nil {
		return nil, err
	}

	clientByID := make(map[string]user.Client, len(clients))
	for _, c := range clients {
		clientByID[c.ID] = c
	}
	courierByID := make(map[string]user.Courier, len(couriers))
	for _, c := range couriers {
		courierByID[c.ID] = c
	}
	restaurantByID := make(map[string]user.Restaurant, len(restaurants))
	for _, rest := range restaurants {
		restaurantByID[rest.ID] = rest
	}

	orders := make([]Order, 0, len(records))
	for _, record := range records {
		row, err := orderFromRecord(record)
		if err != nil {
			logger.L().Warn("skipping order record", zap.Error(err))
			continue
		}

		order, err := r.resolve(row, clientByID, courierByID, restaurantByID)
		if err != nil {
			logger.L().Warn("skipping order record",
				zap.String("order_id", row.ID),
				zap.Error(err),
			)
			continue
		}
		orders = append(orders, order)
	}
	return orders, nil
}

func (r *repository) resolve(
	row orderRow,
	clientByID map[string]user.Client,
	courierByID map[string]user.Courier,
	restaurantByID map[string]user.Restaurant,
) (Order, error) {

	client, ok := clientByID[row.ClientID]
	if !ok {
		return Order{}, fmt.Errorf("%w: client %s", ErrMissingReference, row.ClientID)
	}
	restaurant, ok := restaurantByID[row.RestaurantID]
	if !ok {
		return Order{}, fmt.Errorf("%w: restaurant %s", ErrMissingReference, row.RestaurantID)
	}

	var courier *user.Courier
	if row.CourierID != "" {
		found, ok := courierByID[row.CourierID]
		if !ok {
			return Order{}, fmt.Errorf("%w: courier %s", ErrMissingReference, row.CourierID)
		}
		courier = &found
	}

	combos, err := CombosByCodes(row.ComboCodes)
	if err != nil {
		return Order{}, fmt.Errorf("%w: %v", ErrMalformedRecord, err)
	}

	return Order{
		ID:          row.ID,
		Client:      client,
		Restaurant:  restaurant,
		Courier:     courier,
		Combos:      combos,
		Status:      row.Status,
		PlacedAt:    row.PlacedAt,
		DeliveredAt: row.DeliveredAt,
		Rated:       row.Rated,
		DeliveryFee: row.DeliveryFee,
	}, nil
}
