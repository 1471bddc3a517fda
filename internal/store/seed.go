package store

import (
	"time"

	"autolot-service/internal/domain/vehicle"

	"github.com/lib/pq"
)

// seedVehicles is the built-in sample inventory used on a fresh install,
// before the first snapshot exists and before any remote pull.
func seedVehicles() []vehicle.Vehicle {
	return []vehicle.Vehicle{
		{
			ID:          "car-1",
			Brand:       "Toyota",
			Model:       "Corolla",
			Year:        2022,
			Price:       120000,
			Km:          10000,
			Color:       "Branco",
			Description: "Toyota Corolla XEi 2.0 Flex, completo, único dono, revisões em concessionária.",
			Images:      pq.StringArray{"/cor1.jpeg", "/cor2.jpeg", "/cor3.jpeg"},
			Featured:    true,
			Status:      vehicle.StatusAvailable,
			CreatedAt:   time.Date(2023, 10, 15, 10, 30, 0, 0, time.UTC),
			UpdatedAt:   time.Date(2023, 10, 15, 10, 30, 0, 0, time.UTC),
			Version:     1,
		},
		{
			ID:          "car-2",
			Brand:       "Volkswagem",
			Model:       "Nivus Comfortline",
			Year:        2024,
			Price:       150000,
			Km:          0,
			Color:       "Chumbo",
			Description: "Carro zero e completo.",
			Images:      pq.StringArray{"/vol1.jpeg", "/vol2.jpeg", "/vol3.jpeg"},
			Featured:    false,
			Status:      vehicle.StatusAvailable,
			CreatedAt:   time.Date(2023, 9, 20, 14, 15, 0, 0, time.UTC),
			UpdatedAt:   time.Date(2023, 9, 20, 14, 15, 0, 0, time.UTC),
			Version:     1,
		},
		{
			ID:          "car-3",
			Brand:       "Bmw",
			Model:       "320i",
			Year:        2024,
			Price:       300000,
			Km:          2000,
			Color:       "Azul",
			Description: "Bmw Azul, zera.",
			Images:      pq.StringArray{"/bm4.jpeg", "/bm3.jpeg", "/bmw2.jpeg"},
			Featured:    true,
			Status:      vehicle.StatusAvailable,
			CreatedAt:   time.Date(2024, 1, 5, 9, 45, 0, 0, time.UTC),
			UpdatedAt:   time.Date(2024, 1, 5, 9, 45, 0, 0, time.UTC),
			Version:     1,
		},
	}
}
