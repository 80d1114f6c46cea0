package user

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(id string) Client {
	return Client{
		ID:         id,
		Name:       "Ana Rojas",
		Address:    "San José",
		Phone:      "88887777",
		CardNumber: "4111111111111111",
		Status:     ClientActive,
		Email:      id + "@example.com",
		Password:   "hashed",
	}
}

func testCourier(id string) Courier {
	return Courier{
		ID:          id,
		Name:        "Luis Mora",
		Address:     "Heredia",
		Phone:       "60001111",
		CardNumber:  "5500000000000004",
		Status:      CourierAvailable,
		WeekdayRate: DefaultWeekdayRate,
		WeekendRate: DefaultWeekendRate,
		Email:       id + "@example.com",
		Password:    "hashed",
	}
}

func testRestaurant(id string) Restaurant {
	return Restaurant{
		ID:      id,
		Name:    "La Terraza",
		Address: "Alajuela",
		Phone:   "24421111",
		Cuisine: CuisineItalian,
		Menu:    map[int]string{1: "Casado"},
		Email:   id + "@example.com",
	}
}

func TestRepository_Clients(t *testing.T) {
	repo := NewRepository(t.TempDir())
	ctx := context.Background()

	t.Run("CreateAndGet", func(t *testing.T) {
		require.NoError(t, repo.CreateClient(ctx, testClient("1-1111-1111")))

		got, err := repo.GetClient(ctx, "1-1111-1111")
		require.NoError(t, err)
		assert.Equal(t, "Ana Rojas", got.Name)
		assert.Equal(t, ClientActive, got.Status)
	})

	t.Run("DuplicateID", func(t *testing.T) {
		err := repo.CreateClient(ctx, testClient("1-1111-1111"))
		assert.ErrorIs(t, err, ErrDuplicateID)
	})

	t.Run("Update", func(t *testing.T) {
		client, err := repo.GetClient(ctx, "1-1111-1111")
		require.NoError(t, err)

		client.Status = ClientSuspended
		require.NoError(t, repo.UpdateClient(ctx, client))

		got, err := repo.GetClient(ctx, "1-1111-1111")
		require.NoError(t, err)
		assert.Equal(t, ClientSuspended, got.Status)
	})

	t.Run("UpdateMissing", func(t *testing.T) {
		err := repo.UpdateClient(ctx, testClient("9-9999-9999"))
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("GetMissing", func(t *testing.T) {
		_, err := repo.GetClient(ctx, "9-9999-9999")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestRepository_Couriers(t *testing.T) {
	repo := NewRepository(t.TempDir())
	ctx := context.Background()

	require.NoError(t, repo.CreateCourier(ctx, testCourier("2-2222-2222")))
	require.NoError(t, repo.CreateCourier(ctx, testCourier("3-3333-3333")))

	t.Run("ListPreservesFileOrder", func(t *testing.T) {
		couriers, err := repo.ListCouriers(ctx)
		require.NoError(t, err)
		require.Len(t, couriers, 2)
		assert.Equal(t, "2-2222-2222", couriers[0].ID)
		assert.Equal(t, "3-3333-3333", couriers[1].ID)
	})

	t.Run("UpdatePersistsComplaintsAndState", func(t *testing.T) {
		courier, err := repo.GetCourier(ctx, "2-2222-2222")
		require.NoError(t, err)

		courier.Status = CourierBusy
		courier.LastTripKm = 9
		courier.Complaints = append(courier.Complaints, "late delivery")
		require.NoError(t, repo.UpdateCourier(ctx, courier))

		got, err := repo.GetCourier(ctx, "2-2222-2222")
		require.NoError(t, err)
		assert.Equal(t, CourierBusy, got.Status)
		assert.Equal(t, 9, got.LastTripKm)
		assert.Equal(t, []string{"late delivery"}, got.Complaints)

		// The other courier is untouched by the rewrite.
		other, err := repo.GetCourier(ctx, "3-3333-3333")
		require.NoError(t, err)
		assert.Equal(t, CourierAvailable, other.Status)
	})
}

// Concurrent mutations of one courier must all land; a lost update here
// would under-count complaints and penalties.
func TestRepository_MutateCourierConcurrent(t *testing.T) {
	repo := NewRepository(t.TempDir())
	ctx := context.Background()

	require.NoError(t, repo.CreateCourier(ctx, testCourier("2-2222-2222")))

	const writers = 12
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			err := repo.MutateCourier(ctx, "2-2222-2222", func(c *Courier) error {
				c.Complaints = append(c.Complaints, fmt.Sprintf("complaint %d", i))
				c.DailyKm += 3
				return nil
			})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	got, err := repo.GetCourier(ctx, "2-2222-2222")
	require.NoError(t, err)
	assert.Len(t, got.Complaints, writers)
	assert.Equal(t, writers*3, got.DailyKm)
}

func TestRepository_MutateCourierMissing(t *testing.T) {
	repo := NewRepository(t.TempDir())

	err := repo.MutateCourier(context.Background(), "9-9999-9999", func(c *Courier) error {
		return nil
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRepository_Restaurants(t *testing.T) {
	repo := NewRepository(t.TempDir())
	ctx := context.Background()

	require.NoError(t, repo.CreateRestaurant(ctx, testRestaurant("3-101-123456")))

	t.Run("MenuRoundTrip", func(t *testing.T) {
		got, err := repo.GetRestaurant(ctx, "3-101-123456")
		require.NoError(t, err)
		assert.Equal(t, map[int]string{1: "Casado"}, got.Menu)
	})

	t.Run("UpdateMenu", func(t *testing.T) {
		restaurant, err := repo.GetRestaurant(ctx, "3-101-123456")
		require.NoError(t, err)

		restaurant.Menu = map[int]string{2: "Pasta", 5: "Pizza"}
		require.NoError(t, repo.UpdateRestaurant(ctx, restaurant))

		got, err := repo.GetRestaurant(ctx, "3-101-123456")
		require.NoError(t, err)
		assert.Equal(t, map[int]string{2: "Pasta", 5: "Pizza"}, got.Menu)
	})
}

func TestRepository_FindAccountByEmail(t *testing.T) {
	repo := NewRepository(t.TempDir())
	ctx := context.Background()

	require.NoError(t, repo.CreateClient(ctx, testClient("1-1111-1111")))
	require.NoError(t, repo.CreateCourier(ctx, testCourier("2-2222-2222")))
	require.NoError(t, repo.CreateRestaurant(ctx, testRestaurant("3-101-123456")))

	tests := []struct {
		email string
		role  Role
	}{
		{"1-1111-1111@example.com", RoleClient},
		{"2-2222-2222@example.com", RoleCourier},
		{"3-101-123456@example.com", RoleRestaurant},
	}
	for _, tc := range tests {
		account, err := repo.FindAccountByEmail(ctx, tc.email)
		require.NoError(t, err)
		assert.Equal(t, tc.role, account.Role)
	}

	_, err := repo.FindAccountByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
}
