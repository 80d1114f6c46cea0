package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cletaeats-be/internal/logger"

	"go.uber.org/zap"
)

type RegisterClientInput struct {
	ID         string
	Name       string
	Address    string
	Phone      string
	CardNumber string
	Email      string
	Password   string
}

type RegisterCourierInput struct {
	ID         string
	Name       string
	Address    string
	Phone      string
	CardNumber string
	Email      string
	Password   string
}

type RegisterRestaurantInput struct {
	ID       string
	Name     string
	Address  string
	Phone    string
	Cuisine  CuisineType
	Email    string
	Password string
}

type Service interface {
	RegisterClient(ctx context.Context, input RegisterClientInput) (Client, error)
	RegisterCourier(ctx context.Context, input RegisterCourierInput) (Courier, error)
	RegisterRestaurant(ctx context.Context, input RegisterRestaurantInput) (Restaurant, error)
	Login(ctx context.Context, email, password string) (string, Account, error)
	SetClientStatus(ctx context.Context, clientID string, status ClientStatus) error
	UpdateMenu(ctx context.Context, restaurantID string, menu map[int]string) (Restaurant, error)
}

type service struct {
	repo          Repository
	adminEmail    string
	adminPassword string
}

func NewService(repo Repository, adminEmail, adminPassword string) Service {
	return &service{
		repo:          repo,
		adminEmail:    adminEmail,
		adminPassword: adminPassword,
	}
}

func (s *service) RegisterClient(ctx context.Context, input RegisterClientInput) (Client, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "RegisterClient"),
	)

	if err := validateIdentity(input.ID, input.Name, input.Address, input.Phone, input.Email, input.Password); err != nil {
		return Client{}, err
	}
	if len(input.CardNumber) < 8 {
		return Client{}, fmt.Errorf("%w: card number too short", ErrValidation)
	}
	if err := s.ensureEmailFree(ctx, input.Email); err != nil {
		return Client{}, err
	}

	hashed, err := HashPassword(input.Password)
	if err != nil {
		log.Error("failed to hash password", zap.Error(err))
		return Client{}, err
	}

	client := Client{
		ID:         input.ID,
		Name:       input.Name,
		Address:    input.Address,
		Phone:      input.Phone,
		CardNumber: input.CardNumber,
		Status:     ClientActive,
		Email:      input.Email,
		Password:   hashed,
	}

	if err := s.repo.CreateClient(ctx, client); err != nil {
		log.Error("failed to create client", zap.String("client_id", input.ID), zap.Error(err))
		return Client{}, err
	}

	log.Info("client registered", zap.String("client_id", client.ID))
	return client, nil
}

func (s *service) RegisterCourier(ctx context.Context, input RegisterCourierInput) (Courier, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "RegisterCourier"),
	)

	if err := validateIdentity(input.ID, input.Name, input.Address, input.Phone, input.Email, input.Password); err != nil {
		return Courier{}, err
	}
	if len(input.CardNumber) < 8 {
		return Courier{}, fmt.Errorf("%w: card number too short", ErrValidation)
	}
	if err := s.ensureEmailFree(ctx, input.Email); err != nil {
		return Courier{}, err
	}

	hashed, err := HashPassword(input.Password)
	if err != nil {
		log.Error("failed to hash password", zap.Error(err))
		return Courier{}, err
	}

	courier := Courier{
		ID:          input.ID,
		Name:        input.Name,
		Address:     input.Address,
		Phone:       input.Phone,
		CardNumber:  input.CardNumber,
		Status:      CourierAvailable,
		WeekdayRate: DefaultWeekdayRate,
		WeekendRate: DefaultWeekendRate,
		Email:       input.Email,
		Password:    hashed,
	}

	if err := s.repo.CreateCourier(ctx, courier); err != nil {
		log.Error("failed to create courier", zap.String("courier_id", input.ID), zap.Error(err))
		return Courier{}, err
	}

	log.Info("courier registered", zap.String("courier_id", courier.ID))
	return courier, nil
}

func (s *service) RegisterRestaurant(ctx context.Context, input RegisterRestaurantInput) (Restaurant, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "RegisterRestaurant"),
	)

	if err := validateIdentity(input.ID, input.Name, input.Address, input.Phone, input.Email, input.Password); err != nil {
		return Restaurant{}, err
	}
	if !validCuisine(input.Cuisine) {
		return Restaurant{}, fmt.Errorf("%w: unknown cuisine type %q", ErrValidation, input.Cuisine)
	}
	if err := s.ensureEmailFree(ctx, input.Email); err != nil {
		return Restaurant{}, err
	}

	hashed, err := HashPassword(input.Password)
	if err != nil {
		log.Error("failed to hash password", zap.Error(err))
		return Restaurant{}, err
	}

	restaurant := Restaurant{
		ID:       input.ID,
		Name:     input.Name,
		Address:  input.Address,
		Phone:    input.Phone,
		Cuisine:  input.Cuisine,
		Menu:     map[int]string{},
		Email:    input.Email,
		Password: hashed,
	}

	if err := s.repo.CreateRestaurant(ctx, restaurant); err != nil {
		log.Error("failed to create restaurant", zap.String("restaurant_id", input.ID), zap.Error(err))
		return Restaurant{}, err
	}

	log.Info("restaurant registered", zap.String("restaurant_id", restaurant.ID))
	return restaurant, nil
}

func (s *service) Login(ctx context.Context, email, password string) (string, Account, error) {
	if email == "" || password == "" {
		return "", Account{}, ErrInvalidCredentials
	}

	// Administrative identity comes from configuration, not from any
	// user file.
	if s.adminEmail != "" && email == s.adminEmail {
		if password != s.adminPassword {
			return "", Account{}, ErrInvalidCredentials
		}
		admin := Account{ID: "admin", Name: "Administrator", Role: RoleAdmin, Email: email}
		token, err := GenerateJWT(admin.ID, admin.Role, admin.Email)
		return token, admin, err
	}

	account, err := s.repo.FindAccountByEmail(ctx, email)
	if err != nil {
		return "", Account{}, ErrInvalidCredentials
	}

	if !CheckPasswordHash(password, account.Password) {
		return "", Account{}, ErrInvalidCredentials
	}

	token, err := GenerateJWT(account.ID, account.Role, account.Email)
	return token, account, err
}

func (s *service) SetClientStatus(ctx context.Context, clientID string, status ClientStatus) error {
	if status != ClientActive && status != ClientSuspended {
		return fmt.Errorf("%w: unknown client status %q", ErrValidation, status)
	}

	err := s.repo.MutateClient(ctx, clientID, func(c *Client) error {
		c.Status = status
		return nil
	})
	if err != nil {
		return err
	}

	logger.FromCtx(ctx).Info("client status updated",
		zap.String("client_id", clientID),
		zap.String("status", string(status)),
	)
	return nil
}

func (s *service) UpdateMenu(ctx context.Context, restaurantID string, menu map[int]string) (Restaurant, error) {
	for code, description := range menu {
		if code < 1 || code > 9 {
			return Restaurant{}, fmt.Errorf("%w: combo number %d out of range", ErrValidation, code)
		}
		if strings.TrimSpace(description) == "" {
			delete(menu, code)
		}
	}

	var restaurant Restaurant
	err := s.repo.MutateRestaurant(ctx, restaurantID, func(r *Restaurant) error {
		r.Menu = menu
		restaurant = *r
		return nil
	})
	if err != nil {
		return Restaurant{}, err
	}

	logger.FromCtx(ctx).Info("menu updated",
		zap.String("restaurant_id", restaurantID),
		zap.Int("items", len(menu)),
	)
	return restaurant, nil
}

// ensureEmailFree treats only a clean not-found as "free"; an I/O failure
// must not let a duplicate email through.
func (s *service) ensureEmailFree(ctx context.Context, email string) error {
	_, err := s.repo.FindAccountByEmail(ctx, email)
	switch {
	case err == nil:
		return ErrEmailExists
	case errors.Is(err, ErrNotFound):
		return nil
	default:
		return err
	}
}

// validateIdentity applies the registration form rules shared by every
// user kind.
func validateIdentity(id, name, address, phone, email, password string) error {
	switch {
	case len(id) < 5:
		return fmt.Errorf("%w: identifier too short", ErrValidation)
	case strings.TrimSpace(name) == "":
		return fmt.Errorf("%w: name is required", ErrValidation)
	case strings.TrimSpace(address) == "":
		return fmt.Errorf("%w: address is required", ErrValidation)
	case len(phone) < 8:
		return fmt.Errorf("%w: phone number too short", ErrValidation)
	case !strings.Contains(email, "@"):
		return fmt.Errorf("%w: email is not valid", ErrValidation)
	case len(password) < 6:
		return fmt.Errorf("%w: password must be at least 6 characters", ErrValidation)
	}
	return nil
}

func validCuisine(c CuisineType) bool {
	for _, known := range CuisineTypes {
		if c == known {
			return true
		}
	}
	return false
}
