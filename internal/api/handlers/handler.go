package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/langchou/rentgazer/internal/service"
	"github.com/langchou/rentgazer/pkg/ws"
)

// Handler HTTP 处理器
type Handler struct {
	logger         *zap.Logger
	catalogService *service.CatalogService
	wsHub          *ws.Hub
	upgrader       websocket.Upgrader
}

// NewHandler 创建处理器
func NewHandler(
	logger *zap.Logger,
	catalogService *service.CatalogService,
	wsHub *ws.Hub,
	checkOrigin func(r *http.Request) bool,
) *Handler {
	if checkOrigin == nil {
		checkOrigin = func(r *http.Request) bool { return true }
	}
	return &Handler{
		logger:         logger,
		catalogService: catalogService,
		wsHub:          wsHub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     checkOrigin,
		},
	}
}

// catalogUnavailable 目录不可用时的统一响应
func (h *Handler) catalogUnavailable(c *gin.Context, err error) {
	if errors.Is(err, service.ErrNotReady) {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error":  "Catalog is loading",
			"status": h.catalogService.Status().State,
		})
		return
	}

	h.logger.Warn("Catalog unavailable", zap.Error(err))
	c.JSON(http.StatusServiceUnavailable, gin.H{
		"error":  service.LoadFailedMessage,
		"status": h.catalogService.Status().State,
	})
}

// HealthCheck 健康检查
func (h *Handler) HealthCheck(c *gin.Context) {
	status := h.catalogService.Status()

	vehicles := 0
	if cat, err := h.catalogService.Catalog(); err == nil {
		vehicles = cat.VehicleCount()
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "ok",
		"catalog":    status,
		"vehicles":   vehicles,
		"ws_clients": h.wsHub.ClientCount(),
	})
}
