package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientRecordRoundTrip(t *testing.T) {
	client := Client{
		ID:         "1-1111-1111",
		Name:       "Ana Rojas",
		Address:    "San José, Barrio Escalante",
		Phone:      "88887777",
		CardNumber: "4111111111111111",
		Status:     ClientActive,
		Email:      "ana@example.com",
		Password:   "$2a$10$hash",
	}

	got, err := ClientFromRecord(ClientToRecord(client))
	require.NoError(t, err)
	assert.Equal(t, client, got)
}

func TestClientFromRecord_WrongFieldCount(t *testing.T) {
	_, err := ClientFromRecord([]string{"only", "three", "fields"})
	assert.ErrorIs(t, err, ErrMalformedRecord)
}

func TestCourierRecordRoundTrip(t *testing.T) {
	t.Run("WithComplaints", func(t *testing.T) {
		courier := Courier{
			ID:          "2-2222-2222",
			Name:        "Luis Mora",
			Address:     "Heredia centro",
			Phone:       "60001111",
			CardNumber:  "5500000000000004",
			Status:      CourierBusy,
			LastTripKm:  7,
			DailyKm:     42,
			Penalties:   2,
			WeekdayRate: DefaultWeekdayRate,
			WeekendRate: DefaultWeekendRate,
			Complaints:  []string{"late delivery", "rude"},
			Email:       "luis@example.com",
			Password:    "$2a$10$hash",
		}

		got, err := CourierFromRecord(CourierToRecord(courier))
		require.NoError(t, err)
		assert.Equal(t, courier, got)
	})

	t.Run("EmptyComplaintList", func(t *testing.T) {
		courier := Courier{
			ID:          "3-3333-3333",
			Name:        "Marta Solís",
			Status:      CourierAvailable,
			WeekdayRate: DefaultWeekdayRate,
			WeekendRate: DefaultWeekendRate,
			Email:       "marta@example.com",
			Password:    "pw",
		}

		got, err := CourierFromRecord(CourierToRecord(courier))
		require.NoError(t, err)
		assert.Nil(t, got.Complaints)
		assert.Equal(t, courier, got)
	})
}

func TestCourierFromRecord_BadNumbers(t *testing.T) {
	record := CourierToRecord(Courier{ID: "x", Status: CourierAvailable})
	record[8] = "not-a-number"

	_, err := CourierFromRecord(record)
	assert.ErrorIs(t, err, ErrMalformedRecord)
}

func TestRestaurantRecordRoundTrip(t *testing.T) {
	t.Run("WithMenu", func(t *testing.T) {
		restaurant := Restaurant{
			ID:         "3-101-123456",
			Name:       "La Terraza",
			Address:    "Alajuela, frente al parque",
			Phone:      "24421111",
			Cuisine:    CuisineItalian,
			AvgRating:  4.5,
			OrderCount: 12,
			Menu: map[int]string{
				1: "Casado con pollo",
				2: "Pasta alfredo, extra queso",
				9: "Combo familiar",
			},
			Email:    "terraza@example.com",
			Password: "pw",
		}

		got, err := RestaurantFromRecord(RestaurantToRecord(restaurant))
		require.NoError(t, err)
		assert.Equal(t, restaurant, got)
	})

	t.Run("EmptyMenu", func(t *testing.T) {
		restaurant := Restaurant{
			ID:      "3-102-654321",
			Name:    "Soda El Ciprés",
			Cuisine: CuisineTraditional,
			Menu:    map[int]string{},
			Email:   "cipres@example.com",
		}

		got, err := RestaurantFromRecord(RestaurantToRecord(restaurant))
		require.NoError(t, err)
		assert.Empty(t, got.Menu)
	})
}

func TestMenuEncoding_Stable(t *testing.T) {
	menu := map[int]string{3: "c", 1: "a", 2: "b"}
	assert.Equal(t, "1:a;2:b;3:c", menuToString(menu))
}

func TestMenuDecoding_SkipsGarbage(t *testing.T) {
	menu := menuFromString("1:ok;garbage;x:bad;2:also ok")
	assert.Equal(t, map[int]string{1: "ok", 2: "also ok"}, menu)
}

func TestCourierEligible(t *testing.T) {
	assert.True(t, Courier{Status: CourierAvailable, Penalties: 3}.Eligible())
	assert.False(t, Courier{Status: CourierAvailable, Penalties: 4}.Eligible())
	assert.False(t, Courier{Status: CourierBusy, Penalties: 0}.Eligible())
	assert.False(t, Courier{Status: CourierDisqualified, Penalties: 4}.Eligible())
}
