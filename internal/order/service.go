package order

import (
	"context"
	"sync"
	"time"

	"cletaeats-be/internal/logger"
	"cletaeats-be/internal/user"

	"go.uber.org/zap"
)

type Service interface {
	PlaceOrder(ctx context.Context, clientID, restaurantID string, comboCodes []int) (Order, error)
	AdvanceStatus(ctx context.Context, orderID, courierID string, status OrderStatus) (Order, error)
	Get(ctx context.Context, orderID string) (Order, error)
	ListByClient(ctx context.Context, clientID string) ([]Order, error)
	ListByCourier(ctx context.Context, courierID string) ([]Order, error)
	ListByRestaurant(ctx context.Context, restaurantID string) ([]Order, error)
}

type service struct {
	repo     Repository
	users    user.Repository
	distance DistanceProvider
	now      func() time.Time

	// placeMu serializes courier-select -> order-append -> courier-update
	// so two concurrent placements cannot grab the same courier.
	placeMu sync.Mutex
}

func NewService(repo Repository, users user.Repository, distance DistanceProvider) Service {
	return &service{
		repo:     repo,
		users:    users,
		distance: distance,
		now:      time.Now,
	}
}

func (s *service) PlaceOrder(ctx context.Context, clientID, restaurantID string, comboCodes []int) (Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "PlaceOrder"),
		zap.String("client_id", clientID),
		zap.String("restaurant_id", restaurantID),
	)

	// 1. Resolve the selection against the catalog
	combos, err := CombosByCodes(comboCodes)
	if err != nil {
		return Order{}, err
	}

	// 2. Resolve participants
	client, err := s.users.GetClient(ctx, clientID)
	if err != nil {
		return Order{}, err
	}
	if client.Status == user.ClientSuspended {
		return Order{}, ErrClientSuspended
	}

	restaurant, err := s.users.GetRestaurant(ctx, restaurantID)
	if err != nil {
		return Order{}, err
	}

	s.placeMu.Lock()
	defer s.placeMu.Unlock()

	// 3. First eligible courier in file order; no fairness policy beyond
	// that.
	couriers, err := s.users.ListCouriers(ctx)
	if err != nil {
		return Order{}, err
	}
	var courier *user.Courier
	for i := range couriers {
		if couriers[i].Eligible() {
			courier = &couriers[i]
			break
		}
	}
	if courier == nil {
		log.Info("placement rejected", zap.Error(ErrNoCourierAvailable))
		return Order{}, ErrNoCourierAvailable
	}

	// 4. Price the delivery against the wall-clock day
	now := s.now()
	distanceKm := s.distance.DistanceKm()
	fee := distanceKm * deliveryRate(*courier, now)

	newOrder := Order{
		ID:          NewOrderID(now),
		Client:      client,
		Restaurant:  restaurant,
		Courier:     courier,
		Combos:      combos,
		Status:      StatusPreparing,
		PlacedAt:    now,
		DeliveryFee: fee,
	}

	// 5. Persist the order, then mark the courier busy
	if err := s.repo.Append(ctx, newOrder); err != nil {
		log.Error("failed to persist order", zap.Error(err))
		return Order{}, err
	}

	err = s.users.MutateCourier(ctx, courier.ID, func(c *user.Courier) error {
		c.Status = user.CourierBusy
		c.LastTripKm = distanceKm
		return nil
	})
	if err != nil {
		log.Error("failed to update courier", zap.String("courier_id", courier.ID), zap.Error(err))
		return Order{}, err
	}

	log.Info("order placed",
		zap.String("order_id", newOrder.ID),
		zap.String("courier_id", courier.ID),
		zap.Int("distance_km", distanceKm),
		zap.Int("delivery_fee", fee),
		zap.Float64("total", newOrder.Total()),
	)
	return newOrder, nil
}

// deliveryRate picks the courier's per-km rate for the placement day.
func deliveryRate(c user.Courier, at time.Time) int {
	if weekday := at.Weekday(); weekday == time.Saturday || weekday == time.Sunday {
		return c.WeekendRate
	}
	return c.WeekdayRate
}

// AdvanceStatus moves an order along PREPARING -> IN_TRANSIT -> DELIVERED,
// on behalf of its assigned courier. Delivery stamps the handover time,
// frees the courier and credits the trip distance.
func (s *service) AdvanceStatus(ctx context.Context, orderID, courierID string, status OrderStatus) (Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "AdvanceStatus"),
		zap.String("order_id", orderID),
	)

	o, err := s.repo.Get(ctx, orderID)
	if err != nil {
		return Order{}, err
	}
	if o.Courier == nil || o.Courier.ID != courierID {
		return Order{}, ErrNotAssignedCourier
	}
	if !validTransition(o.Status, status) {
		return Order{}, ErrInvalidTransition
	}

	o.Status = status

	if status == StatusDelivered {
		deliveredAt := s.now()
		o.DeliveredAt = &deliveredAt

		err := s.users.MutateCourier(ctx, courierID, func(c *user.Courier) error {
			c.DailyKm += c.LastTripKm
			// A disqualified courier stays out of the pool even after
			// the last delivery closes.
			if c.Status == user.CourierBusy {
				c.Status = user.CourierAvailable
			}
			return nil
		})
		if err != nil {
			return Order{}, err
		}

		err = s.users.MutateRestaurant(ctx, o.Restaurant.ID, func(r *user.Restaurant) error {
			r.OrderCount++
			return nil
		})
		if err != nil {
			log.Error("failed to bump restaurant order count", zap.Error(err))
		}
	}

	if err := s.repo.Update(ctx, o); err != nil {
		log.Error("failed to update order", zap.Error(err))
		return Order{}, err
	}

	log.Info("order status updated", zap.String("status", string(status)))
	return o, nil
}

func validTransition(from, to OrderStatus) bool {
	switch from {
	case StatusPreparing:
		return to == StatusInTransit || to == StatusSuspended
	case StatusInTransit:
		return to == StatusDelivered
	default:
		return false
	}
}

func (s *service) Get(ctx context.Context, orderID string) (Order, error) {
	return s.repo.Get(ctx, orderID)
}

func (s *service) ListByClient(ctx context.Context, clientID string) ([]Order, error) {
	orders, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	var filtered []Order
	for _, o := range orders {
		if o.Client.ID == clientID {
			filtered = append(filtered, o)
		}
	}
	return filtered, nil
}

func (s *service) ListByCourier(ctx context.Context, courierID string) ([]Order, error) {
	orders, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	var filtered []Order
	for _, o := range orders {
		if o.Courier != nil && o.Courier.ID == courierID {
			filtered = append(filtered, o)
		}
	}
	return filtered, nil
}

func (s *service) ListByRestaurant(ctx context.Context, restaurantID string) ([]Order, error) {
	orders, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	var filtered []Order
	for _, o := range orders {
		if o.Restaurant.ID == restaurantID {
			filtered = append(filtered, o)
		}
	}
	return filtered, nil
}
