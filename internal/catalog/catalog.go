package catalog

import (
	"context"

	"github.com/langchou/rentgazer/internal/models"
)

// Fetcher 车辆与车主数据源
// 每次只取固定一页，不做分页
type Fetcher interface {
	FetchVehicles(ctx context.Context, limit int) ([]models.Vehicle, error)
	FetchOwners(ctx context.Context, limit int) ([]models.Owner, error)
}

// Catalog 启动时加载的车辆与车主集合，加载后只读
type Catalog struct {
	vehicles  []models.Vehicle
	owners    []models.Owner
	vehicleIx map[string]int
	ownerIx   map[string]int
	locations []string
	types     []string
}

// New 创建目录，复制输入切片并建立 ID 索引
// ID 重复时保留第一条记录
func New(vehicles []models.Vehicle, owners []models.Owner) *Catalog {
	c := &Catalog{
		vehicles:  append([]models.Vehicle(nil), vehicles...),
		owners:    append([]models.Owner(nil), owners...),
		vehicleIx: make(map[string]int, len(vehicles)),
		ownerIx:   make(map[string]int, len(owners)),
	}

	for i, v := range c.vehicles {
		if _, ok := c.vehicleIx[v.ID]; !ok {
			c.vehicleIx[v.ID] = i
		}
	}
	for i, o := range c.owners {
		if _, ok := c.ownerIx[o.ID]; !ok {
			c.ownerIx[o.ID] = i
		}
	}

	// 地点列表只在集合变化时计算一次
	c.locations = DistinctLocations(c.vehicles)
	c.types = distinctTypes(c.vehicles)
	return c
}

// Vehicles 返回全部车辆的副本
func (c *Catalog) Vehicles() []models.Vehicle {
	return append([]models.Vehicle(nil), c.vehicles...)
}

// VehicleCount 车辆数量
func (c *Catalog) VehicleCount() int {
	return len(c.vehicles)
}

// Locations 去重排序后的地点列表
func (c *Catalog) Locations() []string {
	return append([]string(nil), c.locations...)
}

// Types 车辆中出现过的类型，升序
func (c *Catalog) Types() []string {
	return append([]string(nil), c.types...)
}

// Vehicle 按 ID 查找车辆
func (c *Catalog) Vehicle(id string) (models.Vehicle, bool) {
	i, ok := c.vehicleIx[id]
	if !ok {
		return models.Vehicle{}, false
	}
	return c.vehicles[i], true
}

// Owner 按 ID 查找车主
func (c *Catalog) Owner(id string) (models.Owner, bool) {
	i, ok := c.ownerIx[id]
	if !ok {
		return models.Owner{}, false
	}
	return c.owners[i], true
}

// OwnerOf 查找车辆的车主，owner_id 悬空时返回 false 而不是错误
func (c *Catalog) OwnerOf(v models.Vehicle) (models.Owner, bool) {
	return c.Owner(v.OwnerID)
}

// Filter 对完整集合执行一次筛选
func (c *Catalog) Filter(f FilterState) []models.Vehicle {
	return ComputeVisible(c.vehicles, f)
}
