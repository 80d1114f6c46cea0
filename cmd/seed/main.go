package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"cletaeats-be/internal/logger"
	"cletaeats-be/internal/user"

	"github.com/joho/godotenv"
)

// Seeds a demo roster into the flat-file store. Refuses to touch a data
// directory that already has records.
func main() {
	_ = godotenv.Load()

	dataDir := flag.String("data-dir", os.Getenv("DATA_DIR"), "directory holding the data files")
	force := flag.Bool("force", false, "seed even if records already exist")
	flag.Parse()

	if *dataDir == "" {
		log.Fatal("DATA_DIR not set and -data-dir not given")
	}
	if err := os.MkdirAll(*dataDir, 0o755); err != nil {
		log.Fatalf("failed to create data dir: %v", err)
	}

	logger.Init("development")
	defer logger.Sync()

	if err := run(context.Background(), *dataDir, *force); err != nil {
		log.Fatal(err)
	}
	fmt.Println("✅ Demo data seeded.")
}

func run(ctx context.Context, dataDir string, force bool) error {
	repo := user.NewRepository(dataDir)

	if !force {
		clients, err := repo.ListClients(ctx)
		if err != nil {
			return err
		}
		restaurants, err := repo.ListRestaurants(ctx)
		if err != nil {
			return err
		}
		if len(clients) > 0 || len(restaurants) > 0 {
			return fmt.Errorf("data dir %s already has records (use -force to seed anyway)", dataDir)
		}
	}

	password, err := user.HashPassword("demo-password")
	if err != nil {
		return err
	}

	clients := []user.Client{
		{
			ID: "1-1111-1111", Name: "Ana Rojas", Address: "San José centro",
			Phone: "88887777", CardNumber: "4111111111111111",
			Status: user.ClientActive, Email: "ana@cletaeats.cr", Password: password,
		},
		{
			ID: "1-2222-3333", Name: "Pedro Vega", Address: "Cartago centro",
			Phone: "89990000", CardNumber: "4222222222222222",
			Status: user.ClientActive, Email: "pedro@cletaeats.cr", Password: password,
		},
	}
	couriers := []user.Courier{
		{
			ID: "2-2222-2222", Name: "Luis Mora", Address: "Heredia",
			Phone: "60001111", CardNumber: "5500000000000004",
			Status: user.CourierAvailable, WeekdayRate: user.DefaultWeekdayRate,
			WeekendRate: user.DefaultWeekendRate,
			Email:       "luis@cletaeats.cr", Password: password,
		},
		{
			ID: "2-3333-4444", Name: "Marta Solís", Address: "Alajuela",
			Phone: "70002222", CardNumber: "4000000000000002",
			Status: user.CourierAvailable, WeekdayRate: user.DefaultWeekdayRate,
			WeekendRate: user.DefaultWeekendRate,
			Email:       "marta@cletaeats.cr", Password: password,
		},
	}
	restaurants := []user.Restaurant{
		{
			ID: "3-101-123456", Name: "La Terraza", Address: "Alajuela centro",
			Phone: "24421111", Cuisine: user.CuisineItalian,
			Menu:  map[int]string{1: "Pasta carbonara", 2: "Lasagna", 3: "Risotto"},
			Email: "terraza@cletaeats.cr", Password: password,
		},
		{
			ID: "3-102-654321", Name: "El Fogón", Address: "San José, Barrio Escalante",
			Phone: "22223333", Cuisine: user.CuisineTraditional,
			Menu:  map[int]string{1: "Casado", 2: "Olla de carne", 4: "Gallo pinto"},
			Email: "fogon@cletaeats.cr", Password: password,
		},
	}

	for _, c := range clients {
		if err := repo.CreateClient(ctx, c); err != nil {
			return fmt.Errorf("seed client %s: %w", c.ID, err)
		}
		fmt.Printf("🚀 Seeded client %s (%s)\n", c.Name, c.ID)
	}
	for _, c := range couriers {
		if err := repo.CreateCourier(ctx, c); err != nil {
			return fmt.Errorf("seed courier %s: %w", c.ID, err)
		}
		fmt.Printf("🚀 Seeded courier %s (%s)\n", c.Name, c.ID)
	}
	for _, r := range restaurants {
		if err := repo.CreateRestaurant(ctx, r); err != nil {
			return fmt.Errorf("seed restaurant %s: %w", r.ID, err)
		}
		fmt.Printf("🚀 Seeded restaurant %s (%s)\n", r.Name, r.ID)
	}
	return nil
}
