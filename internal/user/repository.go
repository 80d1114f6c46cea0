package user

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"cletaeats-be/internal/logger"
	"cletaeats-be/internal/storage"

	"go.uber.org/zap"
)

// Account is the slice of any user kind needed for authentication.
type Account struct {
	ID       string
	Name     string
	Role     Role
	Email    string
	Password string
}

type Repository interface {
	CreateClient(ctx context.Context, client Client) error
	ListClients(ctx context.Context) ([]Client, error)
	GetClient(ctx context.Context, id string) (Client, error)
	UpdateClient(ctx context.Context, client Client) error
	MutateClient(ctx context.Context, id string, fn func(*Client) error) error

	CreateCourier(ctx context.Context, courier Courier) error
	ListCouriers(ctx context.Context) ([]Courier, error)
	GetCourier(ctx context.Context, id string) (Courier, error)
	UpdateCourier(ctx context.Context, courier Courier) error
	MutateCourier(ctx context.Context, id string, fn func(*Courier) error) error

	CreateRestaurant(ctx context.Context, restaurant Restaurant) error
	ListRestaurants(ctx context.Context) ([]Restaurant, error)
	GetRestaurant(ctx context.Context, id string) (Restaurant, error)
	UpdateRestaurant(ctx context.Context, restaurant Restaurant) error
	MutateRestaurant(ctx context.Context, id string, fn func(*Restaurant) error) error

	FindAccountByEmail(ctx context.Context, email string) (Account, error)
}

// repository keeps one record file per collection. The mutex spans every
// read-modify-rewrite sequence so concurrent updates cannot interleave.
type repository struct {
	mu          sync.Mutex
	clients     *storage.Table
	couriers    *storage.Table
	restaurants *storage.Table
}

func NewRepository(dataDir string) Repository {
	return &repository{
		clients:     storage.NewTable(filepath.Join(dataDir, "clients.txt")),
		couriers:    storage.NewTable(filepath.Join(dataDir, "couriers.txt")),
		restaurants: storage.NewTable(filepath.Join(dataDir, "restaurants.txt")),
	}
}

// ==================== clients ====================

func (r *repository) CreateClient(ctx context.Context, client Client) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, err := r.loadClients()
	if err != nil {
		return err
	}
	for _, c := range existing {
		if c.ID == client.ID {
			return ErrDuplicateID
		}
	}
	return r.clients.AppendOne(ClientToRecord(client))
}

func (r *repository) ListClients(ctx context.Context) ([]Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.loadClients()
}

func (r *repository) GetClient(ctx context.Context, id string) (Client, error) {
	clients, err := r.ListClients(ctx)
	if err != nil {
		return Client{}, err
	}
	for _, c := range clients {
		if c.ID == id {
			return c, nil
		}
	}
	return Client{}, ErrNotFound
}

func (r *repository) UpdateClient(ctx context.Context, client Client) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	clients, err := r.loadClients()
	if err != nil {
		return err
	}

	found := false
	records := make([][]string, 0, len(clients))
	for _, c := range clients {
		if c.ID == client.ID {
			c = client
			found = true
		}
		records = append(records, ClientToRecord(c))
	}
	if !found {
		return ErrNotFound
	}
	return r.clients.ReplaceAll(records)
}

// MutateClient applies fn to the stored record while holding the store
// lock, so a read-modify-write from another caller cannot interleave.
func (r *repository) MutateClient(ctx context.Context, id string, fn func(*Client) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	clients, err := r.loadClients()
	if err != nil {
		return err
	}

	found := false
	records := make([][]string, 0, len(clients))
	for i := range clients {
		if clients[i].ID == id {
			if err := fn(&clients[i]); err != nil {
				return err
			}
			found = true
		}
		records = append(records, ClientToRecord(clients[i]))
	}
	if !found {
		return ErrNotFound
	}
	return r.clients.ReplaceAll(records)
}

func (r *repository) loadClients() ([]Client, error) {
	records, err := r.clients.LoadAll()
	if err != nil {
		return nil, fmt.Errorf("load clients: %w", err)
	}

	clients := make([]Client, 0, len(records))
	for _, record := range records {
		client, err := ClientFromRecord(record)
		if err != nil {
			logger.L().Warn("skipping client record", zap.Error(err))
			continue
		}
		clients = append(clients, client)
	}
	return clients, nil
}

// ==================== couriers ====================

func (r *repository) CreateCourier(ctx context.Context, courier Courier) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, err := r.loadCouriers()
	if err != nil {
		return err
	}
	for _, c := range existing {
		if c.ID == courier.ID {
			return ErrDuplicateID
		}
	}
	return r.couriers.AppendOne(CourierToRecord(courier))
}

func (r *repository) ListCouriers(ctx context.Context) ([]Courier, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.loadCouriers()
}

func (r *repository) GetCourier(ctx context.Context, id string) (Courier, error) {
	couriers, err := r.ListCouriers(ctx)
	if err != nil {
		return Courier{}, err
	}
	for _, c := range couriers {
		if c.ID == id {
			return c, nil
		}
	}
	return Courier{}, ErrNotFound
}

func (r *repository) UpdateCourier(ctx context.Context, courier Courier) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	couriers, err := r.loadCouriers()
	if err != nil {
		return err
	}

	found := false
	records := make([][]string, 0, len(couriers))
	for _, c := range couriers {
		if c.ID == courier.ID {
			c = courier
			found = true
		}
		records = append(records, CourierToRecord(c))
	}
	if !found {
		return ErrNotFound
	}
	return r.couriers.ReplaceAll(records)
}

// MutateCourier is the courier counterpart of MutateClient. Complaint and
// penalty arithmetic must go through here, a lost update would under-count
// penalties.
func (r *repository) MutateCourier(ctx context.Context, id string, fn func(*Courier) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	couriers, err := r.loadCouriers()
	if err != nil {
		return err
	}

	found := false
	records := make([][]string, 0, len(couriers))
	for i := range couriers {
		if couriers[i].ID == id {
			if err := fn(&couriers[i]); err != nil {
				return err
			}
			found = true
		}
		records = append(records, CourierToRecord(couriers[i]))
	}
	if !found {
		return ErrNotFound
	}
	return r.couriers.ReplaceAll(records)
}

func (r *repository) loadCouriers() ([]Courier, error) {
	records, err := r.couriers.LoadAll()
	if err != nil {
		return nil, fmt.Errorf("load couriers: %w", err)
	}

	couriers := make([]Courier, 0, len(records))
	for _, record := range records {
		courier, err := CourierFromRecord(record)
		if err != nil {
			logger.L().Warn("skipping courier record", zap.Error(err))
			continue
		}
		couriers = append(couriers, courier)
	}
	return couriers, nil
}

// ==================== restaurants ====================

func (r *repository) CreateRestaurant(ctx context.Context, restaurant Restaurant) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, err := r.loadRestaurants()
	if err != nil {
		return err
	}
	for _, rest := range existing {
		if rest.ID == restaurant.ID {
			return ErrDuplicateID
		}
	}
	return r.restaurants.AppendOne(RestaurantToRecord(restaurant))
}

func (r *repository) ListRestaurants(ctx context.Context) ([]Restaurant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.loadRestaurants()
}

func (r *repository) GetRestaurant(ctx context.Context, id string) (Restaurant, error) {
	restaurants, err := r.ListRestaurants(ctx)
	if err != nil {
		return Restaurant{}, err
	}
	for _, rest := range restaurants {
		if rest.ID == id {
			return rest, nil
		}
	}
	return Restaurant{}, ErrNotFound
}

func (r *repository) UpdateRestaurant(ctx context.Context, restaurant Restaurant) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	restaurants, err := r.loadRestaurants()
	if err != nil {
		return err
	}

	found := false
	records := make([][]string, 0, len(restaurants))
	for _, rest := range restaurants {
		if rest.ID == restaurant.ID {
			rest = restaurant
			found = true
		}
		records = append(records, RestaurantToRecord(rest))
	}
	if !found {
		return ErrNotFound
	}
	return r.restaurants.ReplaceAll(records)
}

// MutateRestaurant is the restaurant counterpart of MutateClient.
func (r *repository) MutateRestaurant(ctx context.Context, id string, fn func(*Restaurant) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	restaurants, err := r.loadRestaurants()
	if err != nil {
		return err
	}

	found := false
	records := make([][]string, 0, len(restaurants))
	for i := range restaurants {
		if restaurants[i].ID == id {
			if err := fn(&restaurants[i]); err != nil {
				return err
			}
			found = true
		}
		records = append(records, RestaurantToRecord(restaurants[i]))
	}
	if !found {
		return ErrNotFound
	}
	return r.restaurants.ReplaceAll(records)
}

func (r *repository) loadRestaurants() ([]Restaurant, error) {
	records, err := r.restaurants.LoadAll()
	if err != nil {
		return nil, fmt.Errorf("load restaurants: %w", err)
	}

	restaurants := make([]Restaurant, 0, len(records))
	for _, record := range records {
		restaurant, err := RestaurantFromRecord(record)
		if err != nil {
			logger.L().Warn("skipping restaurant record", zap.Error(err))
			continue
		}
		restaurants = append(restaurants, restaurant)
	}
	return restaurants, nil
}

// ==================== auth lookup ====================

// FindAccountByEmail searches every user collection, login does not know
// what kind of user an email belongs to.
func (r *repository) FindAccountByEmail(ctx context.Context, email string) (Account, error) {
	clients, err := r.ListClients(ctx)
	if err != nil {
		return Account{}, err
	}
	for _, c := range clients {
		if c.Email == email {
			return Account{ID: c.ID, Name: c.Name, Role: RoleClient, Email: c.Email, Password: c.Password}, nil
		}
	}

	couriers, err := r.ListCouriers(ctx)
	if err != nil {
		return Account{}, err
	}
	for _, c := range couriers {
		if c.Email == email {
			return Account{ID: c.ID, Name: c.Name, Role: RoleCourier, Email: c.Email, Password: c.Password}, nil
		}
	}

	restaurants, err := r.ListRestaurants(ctx)
	if err != nil {
		return Account{}, err
	}
	for _, rest := range restaurants {
		if rest.Email == email {
			return Account{ID: rest.ID, Name: rest.Name, Role: RoleRestaurant, Email: rest.Email, Password: rest.Password}, nil
		}
	}

	return Account{}, ErrNotFound
}
