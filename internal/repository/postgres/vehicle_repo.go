package postgres

import (
	"context"
	"fmt"

	"autolot-service/internal/domain/vehicle"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type VehicleRepository struct {
	db *pgxpool.Pool
}

func NewVehicleRepository(db *pgxpool.Pool) *VehicleRepository {
	return &VehicleRepository{db: db}
}

const vehicleColumns = `id, brand, model, year, price, km, color, description, images, featured, status, created_at, updated_at, version`

// List retrieves the full remote vehicle collection in insertion order.
func (r *VehicleRepository) List(ctx context.Context) ([]vehicle.Vehicle, error) {
	query := fmt.Sprintf(`SELECT %s FROM vehicles ORDER BY created_at`, vehicleColumns)

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list vehicles: %w", err)
	}
	defer rows.Close()

	vehicles := []vehicle.Vehicle{}
	for rows.Next() {
		var v vehicle.Vehicle
		var images []string
		err := rows.Scan(
			&v.ID, &v.Brand, &v.Model, &v.Year, &v.Price, &v.Km, &v.Color,
			&v.Description, pq.Array(&images), &v.Featured, &v.Status,
			&v.CreatedAt, &v.UpdatedAt, &v.Version,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan vehicle: %w", err)
		}
		v.Images = pq.StringArray(images)
		vehicles = append(vehicles, v)
	}

	return vehicles, rows.Err()
}

// Insert creates a new remote vehicle row.
func (r *VehicleRepository) Insert(ctx context.Context, v *vehicle.Vehicle) error {
	query := `
		INSERT INTO vehicles (id, brand, model, year, price, km, color, description, images, featured, status, created_at, updated_at, version)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	_, err := r.db.Exec(ctx, query,
		v.ID, v.Brand, v.Model, v.Year, v.Price, v.Km, v.Color,
		v.Description, pq.Array(v.Images), v.Featured, v.Status,
		v.CreatedAt, v.UpdatedAt, v.Version,
	)
	if err != nil {
		return fmt.Errorf("failed to insert vehicle %s: %w", v.ID, err)
	}
	return nil
}

// Update replaces the remote row wholesale by identifier.
func (r *VehicleRepository) Update(ctx context.Context, v *vehicle.Vehicle) error {
	query := `
		UPDATE vehicles
		SET brand = $2, model = $3, year = $4, price = $5, km = $6, color = $7,
		    description = $8, images = $9, featured = $10, status = $11,
		    created_at = $12, updated_at = $13, version = $14
		WHERE id = $1
	`

	_, err := r.db.Exec(ctx, query,
		v.ID, v.Brand, v.Model, v.Year, v.Price, v.Km, v.Color,
		v.Description, pq.Array(v.Images), v.Featured, v.Status,
		v.CreatedAt, v.UpdatedAt, v.Version,
	)
	if err != nil {
		return fmt.Errorf("failed to update vehicle %s: %w", v.ID, err)
	}
	return nil
}

// Upsert inserts or replaces the row by identifier, the push half of
// startup reconciliation.
func (r *VehicleRepository) Upsert(ctx context.Context, v *vehicle.Vehicle) error {
	query := `
		INSERT INTO vehicles (id, brand, model, year, price, km, color, description, images, featured, status, created_at, updated_at, version)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (id) DO UPDATE
		SET brand = EXCLUDED.brand, model = EXCLUDED.model, year = EXCLUDED.year,
		    price = EXCLUDED.price, km = EXCLUDED.km, color = EXCLUDED.color,
		    description = EXCLUDED.description, images = EXCLUDED.images,
		    featured = EXCLUDED.featured, status = EXCLUDED.status,
		    created_at = EXCLUDED.created_at, updated_at = EXCLUDED.updated_at,
		    version = EXCLUDED.version
	`

	_, err := r.db.Exec(ctx, query,
		v.ID, v.Brand, v.Model, v.Year, v.Price, v.Km, v.Color,
		v.Description, pq.Array(v.Images), v.Featured, v.Status,
		v.CreatedAt, v.UpdatedAt, v.Version,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert vehicle %s: %w", v.ID, err)
	}
	return nil
}

// Delete removes the remote row by identifier.
func (r *VehicleRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM vehicles WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete vehicle %s: %w", id, err)
	}
	return nil
}
