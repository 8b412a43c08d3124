package repository

import (
	"context"

	"github.com/langchou/rentgazer/internal/models"
)

// Fetcher 以数据库为数据源的目录读取器
type Fetcher struct {
	vehicles *VehicleRepository
	owners   *OwnerRepository
}

// NewFetcher 创建读取器
func NewFetcher(db *DB) *Fetcher {
	return &Fetcher{
		vehicles: NewVehicleRepository(db),
		owners:   NewOwnerRepository(db),
	}
}

// FetchVehicles 读取车辆
func (f *Fetcher) FetchVehicles(ctx context.Context, limit int) ([]models.Vehicle, error) {
	return f.vehicles.List(ctx, limit)
}

// FetchOwners 读取车主
func (f *Fetcher) FetchOwners(ctx context.Context, limit int) ([]models.Owner, error) {
	return f.owners.List(ctx, limit)
}
