package repository

import (
	"context"
	"fmt"

	"github.com/langchou/rentgazer/internal/models"
)

// VehicleRepository 车辆数据仓库
type VehicleRepository struct {
	db *DB
}

// NewVehicleRepository 创建车辆仓库
func NewVehicleRepository(db *DB) *VehicleRepository {
	return &VehicleRepository{db: db}
}

// List 按录入顺序读取一页车辆
func (r *VehicleRepository) List(ctx context.Context, limit int) ([]models.Vehicle, error) {
	query := `
		SELECT id, type, location, price_per_km, rating, total_reviews, owner_id,
		       name, brand, year, transmission, fuel_type, COALESCE(seats, 0),
		       image, COALESCE(video, ''), features, pickup_locations, condition
		FROM vehicles ORDER BY created_at, id LIMIT $1
	`
	rows, err := r.db.Pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list vehicles: %w", err)
	}
	defer rows.Close()

	vehicles := make([]models.Vehicle, 0, limit)
	for rows.Next() {
		var v models.Vehicle
		err := rows.Scan(
			&v.ID,
			&v.Type,
			&v.Location,
			&v.PricePerKm,
			&v.Rating,
			&v.TotalReviews,
			&v.OwnerID,
			&v.Name,
			&v.Brand,
			&v.Year,
			&v.Transmission,
			&v.FuelType,
			&v.Seats,
			&v.Image,
			&v.Video,
			&v.Features,
			&v.PickupLocations,
			&v.Condition,
		)
		if err != nil {
			return nil, fmt.Errorf("scan vehicle: %w", err)
		}
		vehicles = append(vehicles, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate vehicles: %w", err)
	}

	return vehicles, nil
}
