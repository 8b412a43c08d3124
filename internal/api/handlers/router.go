package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterRoutes 注册路由
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	// API 路由
	api := r.Group("/api")
	{
		// 车辆
		api.GET("/vehicles", h.ListVehicles)
		api.GET("/vehicles/:id", h.GetVehicle)
		api.GET("/vehicles/:id/booking", h.GetBooking)

		// 车主
		api.GET("/owners/:id", h.GetOwner)

		// 筛选选项
		api.GET("/locations", h.ListLocations)
		api.GET("/filters", h.GetFilterOptions)
	}

	// WebSocket
	r.GET("/ws", h.HandleWebSocket)

	// 健康检查
	r.GET("/health", h.HealthCheck)

	// Prometheus
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}
