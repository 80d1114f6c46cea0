package rating

import (
	"context"
	"strings"

	"cletaeats-be/internal/logger"
	"cletaeats-be/internal/order"
	"cletaeats-be/internal/user"

	"go.uber.org/zap"
)

// Every third complaint against a courier earns a penalty; at four
// penalties the courier is disqualified for good.
const complaintsPerPenalty = 3

// Rating scores folded into the restaurant's running average.
const (
	positiveScore = 5.0
	negativeScore = 0.0
)

type Service interface {
	RatePositive(ctx context.Context, orderID string) error
	RateNegative(ctx context.Context, orderID, complaint string) error
}

type service struct {
	orders order.Repository
	users  user.Repository
}

func NewService(orders order.Repository, users user.Repository) Service {
	return &service{orders: orders, users: users}
}

// RatePositive marks the order rated. The courier is untouched.
func (s *service) RatePositive(ctx context.Context, orderID string) error {
	o, err := s.ratable(ctx, orderID)
	if err != nil {
		return err
	}

	if err := s.markRated(ctx, o); err != nil {
		return err
	}
	s.foldRestaurantRating(ctx, o.Restaurant.ID, positiveScore)

	logger.FromCtx(ctx).Info("order rated",
		zap.String("order_id", orderID),
		zap.Bool("positive", true),
	)
	return nil
}

// RateNegative files the complaint against the order's courier and applies
// the penalty rules before marking the order rated.
func (s *service) RateNegative(ctx context.Context, orderID, complaint string) error {
	if strings.TrimSpace(complaint) == "" {
		return ErrComplaintRequired
	}
	// ";" is the complaint separator in the courier record.
	if strings.Contains(complaint, ";") {
		return ErrInvalidComplaint
	}

	o, err := s.ratable(ctx, orderID)
	if err != nil {
		return err
	}

	// The whole complaint/penalty sequence runs under the store lock so a
	// concurrent rating against the same courier cannot lose an update.
	var complaints, penalties int
	err = s.users.MutateCourier(ctx, o.Courier.ID, func(c *user.Courier) error {
		c.Complaints = append(c.Complaints, complaint)

		// One penalty per full batch of three complaints.
		if len(c.Complaints)%complaintsPerPenalty == 0 {
			c.Penalties++
		}
		if c.Penalties >= user.MaxPenalties {
			c.Status = user.CourierDisqualified
		}

		complaints, penalties = len(c.Complaints), c.Penalties
		return nil
	})
	if err != nil {
		return err
	}

	if err := s.markRated(ctx, o); err != nil {
		return err
	}
	s.foldRestaurantRating(ctx, o.Restaurant.ID, negativeScore)

	logger.FromCtx(ctx).Info("order rated",
		zap.String("order_id", orderID),
		zap.Bool("positive", false),
		zap.String("courier_id", o.Courier.ID),
		zap.Int("complaints", complaints),
		zap.Int("penalties", penalties),
	)
	return nil
}

// ratable loads the order and checks the preconditions shared by both
// rating kinds.
func (s *service) ratable(ctx context.Context, orderID string) (order.Order, error) {
	o, err := s.orders.Get(ctx, orderID)
	if err != nil {
		return order.Order{}, err
	}
	if o.Status != order.StatusDelivered {
		return order.Order{}, ErrNotDelivered
	}
	if o.Rated {
		return order.Order{}, ErrAlreadyRated
	}
	if o.Courier == nil {
		// A delivered order always has a courier; this is a data
		// integrity violation, not a business case.
		return order.Order{}, ErrNoCourier
	}
	return o, nil
}

// markRated flips the monotonic rated flag.
func (s *service) markRated(ctx context.Context, o order.Order) error {
	o.Rated = true
	return s.orders.Update(ctx, o)
}

// foldRestaurantRating nudges the restaurant's running average with the
// new score, weighted by its delivered-order count. Best effort: a failure
// here does not undo the rating.
func (s *service) foldRestaurantRating(ctx context.Context, restaurantID string, score float64) {
	err := s.users.MutateRestaurant(ctx, restaurantID, func(r *user.Restaurant) error {
		n := r.OrderCount
		if n < 1 {
			n = 1
		}
		r.AvgRating = (r.AvgRating*float64(n-1) + score) / float64(n)
		return nil
	})
	if err != nil {
		logger.FromCtx(ctx).Warn("restaurant rating not updated", zap.Error(err))
	}
}
