package catalog

import (
	"errors"
	"fmt"

	"github.com/langchou/rentgazer/internal/models"
)

// 筛选字段名
const (
	FieldType       = "type"
	FieldLocation   = "location"
	FieldPriceRange = "priceRange"
	FieldRating     = "rating"
)

// ErrUnknownFilterField 未知的筛选字段
var ErrUnknownFilterField = errors.New("unknown filter field")

// ViewState 单个页面会话的视图状态
// 持有完整车辆集合、当前筛选条件和最近一次计算出的可见集合。
// 不支持并发访问，由唯一的控制者（会话）持有。
type ViewState struct {
	vehicles  []models.Vehicle
	locations []string
	filters   FilterState
	visible   []models.Vehicle

	recomputations int
	onRecompute    func(visible int)
}

// ViewOption ViewState 配置项
type ViewOption func(*ViewState)

// WithRecomputeHook 每次重新计算后回调，参数为可见车辆数
func WithRecomputeHook(fn func(visible int)) ViewOption {
	return func(s *ViewState) {
		s.onRecompute = fn
	}
}

// NewViewState 用完整车辆集合创建视图状态
func NewViewState(vehicles []models.Vehicle, opts ...ViewOption) *ViewState {
	s := &ViewState{
		vehicles: append([]models.Vehicle(nil), vehicles...),
		filters:  DefaultFilterState(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.locations = DistinctLocations(s.vehicles)
	s.visible = ComputeVisible(s.vehicles, s.filters)
	return s
}

// NewViewStateFromCatalog 基于已加载目录创建视图状态，复用目录的地点列表
func NewViewStateFromCatalog(c *Catalog, opts ...ViewOption) *ViewState {
	s := &ViewState{
		vehicles:  c.Vehicles(),
		locations: c.Locations(),
		filters:   DefaultFilterState(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.visible = ComputeVisible(s.vehicles, s.filters)
	return s
}

// SetFilter 更新单个筛选字段并重新计算一次
func (s *ViewState) SetFilter(field, value string) error {
	switch field {
	case FieldType:
		if value == "" {
			value = TypeAll
		}
		s.filters.Type = value
	case FieldLocation:
		s.filters.Location = value
	case FieldPriceRange:
		s.filters.PriceRange = value
	case FieldRating:
		s.filters.Rating = value
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFilterField, field)
	}

	s.recompute()
	return nil
}

// Search 搜索框提交：总是设置地点，类型非空时才设置，只重新计算一次
func (s *ViewState) Search(location, vehicleType string) {
	s.filters.Location = location
	if vehicleType != "" {
		s.filters.Type = vehicleType
	}
	s.recompute()
}

// Reset 恢复默认筛选条件
func (s *ViewState) Reset() {
	s.filters = DefaultFilterState()
	s.recompute()
}

func (s *ViewState) recompute() {
	s.visible = ComputeVisible(s.vehicles, s.filters)
	s.recomputations++
	if s.onRecompute != nil {
		s.onRecompute(len(s.visible))
	}
}

// Filters 当前筛选条件
func (s *ViewState) Filters() FilterState {
	return s.filters
}

// Visible 当前可见车辆（副本）
func (s *ViewState) Visible() []models.Vehicle {
	return append([]models.Vehicle{}, s.visible...)
}

// Locations 地点选项
func (s *ViewState) Locations() []string {
	return append([]string(nil), s.locations...)
}

// Recomputations 自创建以来的重新计算次数（不含初始计算）
func (s *ViewState) Recomputations() int {
	return s.recomputations
}
