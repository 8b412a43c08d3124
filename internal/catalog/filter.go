package catalog

import (
	"math"
	"strconv"
	"strings"

	"github.com/langchou/rentgazer/internal/models"
)

// TypeAll 不限车辆类型
const TypeAll = "all"

// PriceBucket 每公里价格区间
type PriceBucket string

// 价格区间，两端闭合：边界值同时属于相邻区间
const (
	PriceBucket0To5   PriceBucket = "0-5"
	PriceBucket5To10  PriceBucket = "5-10"
	PriceBucket10To20 PriceBucket = "10-20"
	PriceBucket20Plus PriceBucket = "20+"
)

// PriceBuckets 全部价格区间，按页面选项顺序
var PriceBuckets = []PriceBucket{
	PriceBucket0To5,
	PriceBucket5To10,
	PriceBucket10To20,
	PriceBucket20Plus,
}

// ParsePriceBucket 解析价格区间标签
func ParsePriceBucket(label string) (PriceBucket, bool) {
	for _, b := range PriceBuckets {
		if string(b) == label {
			return b, true
		}
	}
	return "", false
}

// Contains 价格是否落在区间内
func (b PriceBucket) Contains(price float64) bool {
	switch b {
	case PriceBucket0To5:
		return price >= 0 && price <= 5
	case PriceBucket5To10:
		return price >= 5 && price <= 10
	case PriceBucket10To20:
		return price >= 10 && price <= 20
	case PriceBucket20Plus:
		return price >= 20
	}
	return true
}

// FilterState 当前筛选条件
// 各字段相互独立，结果为所有生效条件的交集
type FilterState struct {
	Type       string `json:"type"`
	Location   string `json:"location"`
	PriceRange string `json:"priceRange"`
	Rating     string `json:"rating"`
}

// DefaultFilterState 默认筛选条件：不做任何限制
func DefaultFilterState() FilterState {
	return FilterState{Type: TypeAll}
}

// ParseRating 解析最低评分阈值
// 空串、无法解析或非有限值都视为不限制
func ParseRating(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	r, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(r) || math.IsInf(r, 0) {
		return 0, false
	}
	return r, true
}

// Matches 判断单辆车是否满足全部筛选条件，遇到第一个不满足的条件即返回
func Matches(v models.Vehicle, f FilterState) bool {
	if f.Type != TypeAll && v.Type != f.Type {
		return false
	}

	if f.Location != "" &&
		!strings.Contains(strings.ToLower(v.Location), strings.ToLower(f.Location)) {
		return false
	}

	// 未知区间标签不做限制
	if f.PriceRange != "" {
		if b, ok := ParsePriceBucket(f.PriceRange); ok && !b.Contains(v.PricePerKm) {
			return false
		}
	}

	if threshold, ok := ParseRating(f.Rating); ok && v.Rating < threshold {
		return false
	}

	return true
}

// ComputeVisible 根据筛选条件从完整车辆集合中计算可见车辆
// 纯函数：保持原有顺序，总是返回新切片，不修改输入
func ComputeVisible(vehicles []models.Vehicle, f FilterState) []models.Vehicle {
	visible := make([]models.Vehicle, 0, len(vehicles))
	for _, v := range vehicles {
		if Matches(v, f) {
			visible = append(visible, v)
		}
	}
	return visible
}
