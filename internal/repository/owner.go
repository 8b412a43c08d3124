package repository

import (
	"context"
	"fmt"

	"github.com/langchou/rentgazer/internal/models"
)

// OwnerRepository 车主数据仓库
type OwnerRepository struct {
	db *DB
}

// NewOwnerRepository 创建车主仓库
func NewOwnerRepository(db *DB) *OwnerRepository {
	return &OwnerRepository{db: db}
}

// List 读取一页车主
func (r *OwnerRepository) List(ctx context.Context, limit int) ([]models.Owner, error) {
	query := `
		SELECT id, name, phone, email, location, rating, member_since, total_vehicles, profile_image
		FROM owners ORDER BY created_at, id LIMIT $1
	`
	rows, err := r.db.Pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list owners: %w", err)
	}
	defer rows.Close()

	owners := make([]models.Owner, 0, limit)
	for rows.Next() {
		var o models.Owner
		err := rows.Scan(
			&o.ID,
			&o.Name,
			&o.Phone,
			&o.Email,
			&o.Location,
			&o.Rating,
			&o.MemberSince,
			&o.TotalVehicles,
			&o.ProfileImage,
		)
		if err != nil {
			return nil, fmt.Errorf("scan owner: %w", err)
		}
		owners = append(owners, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate owners: %w", err)
	}

	return owners, nil
}
