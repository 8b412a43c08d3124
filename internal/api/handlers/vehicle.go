package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/langchou/rentgazer/internal/catalog"
	"github.com/langchou/rentgazer/internal/models"
)

// filterFromQuery 从查询参数构造筛选条件，缺省类型为 all
func filterFromQuery(c *gin.Context) catalog.FilterState {
	return catalog.FilterState{
		Type:       c.DefaultQuery("type", catalog.TypeAll),
		Location:   c.Query("location"),
		PriceRange: c.Query("price_range"),
		Rating:     c.Query("rating"),
	}
}

// ListVehicles 获取筛选后的车辆卡片
// GET /api/vehicles?type=&location=&price_range=&rating=
func (h *Handler) ListVehicles(c *gin.Context) {
	filters := filterFromQuery(c)
	if filters.Type == "" {
		filters.Type = catalog.TypeAll
	}

	visible, err := h.catalogService.Filter(filters)
	if err != nil {
		h.catalogUnavailable(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":    catalog.NewVehicleCards(visible),
		"filters": filters,
		"count":   len(visible),
	})
}

// GetVehicle 获取车辆详情（含车主信息）
func (h *Handler) GetVehicle(c *gin.Context) {
	cat, err := h.catalogService.Catalog()
	if err != nil {
		h.catalogUnavailable(c, err)
		return
	}

	v, ok := cat.Vehicle(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Vehicle not found"})
		return
	}

	owner, hasOwner := cat.OwnerOf(v)
	c.JSON(http.StatusOK, gin.H{"data": catalog.NewVehicleDetail(v, owner, hasOwner)})
}

// GetBooking 获取预订摘要，不创建预订
func (h *Handler) GetBooking(c *gin.Context) {
	cat, err := h.catalogService.Catalog()
	if err != nil {
		h.catalogUnavailable(c, err)
		return
	}

	v, ok := cat.Vehicle(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Vehicle not found"})
		return
	}

	owner, hasOwner := cat.OwnerOf(v)
	c.JSON(http.StatusOK, gin.H{"data": catalog.NewBookingSummary(v, owner, hasOwner)})
}

// GetOwner 获取车主信息
func (h *Handler) GetOwner(c *gin.Context) {
	cat, err := h.catalogService.Catalog()
	if err != nil {
		h.catalogUnavailable(c, err)
		return
	}

	owner, ok := cat.Owner(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Owner not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": owner})
}

// ListLocations 地点筛选选项
func (h *Handler) ListLocations(c *gin.Context) {
	cat, err := h.catalogService.Catalog()
	if err != nil {
		h.catalogUnavailable(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": cat.Locations()})
}

// GetFilterOptions 全部筛选选项
func (h *Handler) GetFilterOptions(c *gin.Context) {
	cat, err := h.catalogService.Catalog()
	if err != nil {
		h.catalogUnavailable(c, err)
		return
	}

	// 空目录时给出页面上的常用类型
	types := cat.Types()
	if len(types) == 0 {
		types = []string{models.VehicleTypeCar, models.VehicleTypeBike, models.VehicleTypeSUV}
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"types":        append([]string{catalog.TypeAll}, types...),
			"locations":    cat.Locations(),
			"price_ranges": catalog.PriceBuckets,
			"defaults":     catalog.DefaultFilterState(),
		},
	})
}
