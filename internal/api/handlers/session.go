package handlers

import (
	"encoding/json"
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/langchou/rentgazer/internal/catalog"
	"github.com/langchou/rentgazer/internal/metrics"
	"github.com/langchou/rentgazer/internal/service"
	"github.com/langchou/rentgazer/pkg/ws"
)

// 客户端消息类型
const (
	clientMsgSetFilter = "set_filter"
	clientMsgSearch    = "search"
	clientMsgReset     = "reset"
)

// clientMessage 客户端消息
type clientMessage struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

type setFilterPayload struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

type searchPayload struct {
	Location    string `json:"location"`
	VehicleType string `json:"vehicle_type"`
}

// snapshot 会话快照
type snapshot struct {
	Filters     catalog.FilterState   `json:"filters"`
	Vehicles    []catalog.VehicleCard `json:"vehicles"`
	Count       int                   `json:"count"`
	Locations   []string              `json:"locations,omitempty"`
	PriceRanges []catalog.PriceBucket `json:"price_ranges,omitempty"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// pageSession 一个页面会话，持有自己的视图状态
type pageSession struct {
	id      string
	logger  *zap.Logger
	service *service.CatalogService
	view    *catalog.ViewState
}

func newPageSession(id string, logger *zap.Logger, svc *service.CatalogService) *pageSession {
	return &pageSession{
		id:      id,
		logger:  logger.With(zap.String("session_id", id)),
		service: svc,
	}
}

// Open 连接建立：目录就绪则推送初始快照，否则推送加载状态
func (s *pageSession) Open() []ws.Message {
	metrics.SessionOpened()
	return s.attach()
}

// attach 尝试创建视图状态
func (s *pageSession) attach() []ws.Message {
	view, err := s.service.NewSession()
	if err != nil {
		return s.unavailable(err)
	}
	s.view = view
	return []ws.Message{{Type: ws.MsgTypeInit, Data: s.snapshot(true)}}
}

func (s *pageSession) unavailable(err error) []ws.Message {
	if errors.Is(err, service.ErrNotReady) {
		return []ws.Message{{Type: ws.MsgTypeStatus, Data: s.service.Status()}}
	}
	return []ws.Message{errorMessage(service.LoadFailedMessage)}
}

// HandleEvent 处理 Hub 广播的目录事件
func (s *pageSession) HandleEvent(event string) []ws.Message {
	if s.view != nil {
		return nil
	}
	switch event {
	case ws.EventCatalogReady, ws.EventCatalogFailed:
		return s.attach()
	}
	return nil
}

// HandleMessage 处理一次用户操作，每次操作只重新计算一次
func (s *pageSession) HandleMessage(data []byte) []ws.Message {
	var msg clientMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return []ws.Message{errorMessage("Invalid message")}
	}

	// 目录就绪事件尚未送达时，先接入再执行本次操作
	var replies []ws.Message
	if s.view == nil {
		if _, err := s.service.Catalog(); err != nil {
			return s.unavailable(err)
		}
		replies = s.attach()
		if s.view == nil {
			return replies
		}
	}

	switch msg.Type {
	case clientMsgSetFilter:
		var p setFilterPayload
		if err := json.Unmarshal(msg.Data, &p); err != nil {
			return append(replies, errorMessage("Invalid set_filter payload"))
		}
		if err := s.view.SetFilter(p.Field, p.Value); err != nil {
			return append(replies, errorMessage(err.Error()))
		}

	case clientMsgSearch:
		var p searchPayload
		if err := json.Unmarshal(msg.Data, &p); err != nil {
			return append(replies, errorMessage("Invalid search payload"))
		}
		s.view.Search(p.Location, p.VehicleType)

	case clientMsgReset:
		s.view.Reset()

	default:
		return append(replies, errorMessage("Unknown message type: "+msg.Type))
	}

	s.logger.Debug("Filters applied",
		zap.String("action", msg.Type),
		zap.Any("filters", s.view.Filters()),
		zap.Int("visible", len(s.view.Visible())),
	)
	return append(replies, ws.Message{Type: ws.MsgTypeVisible, Data: s.snapshot(false)})
}

// Close 连接关闭
func (s *pageSession) Close() {
	metrics.SessionClosed()
	s.logger.Debug("Session closed")
}

func (s *pageSession) snapshot(withOptions bool) snapshot {
	visible := s.view.Visible()
	snap := snapshot{
		Filters:  s.view.Filters(),
		Vehicles: catalog.NewVehicleCards(visible),
		Count:    len(visible),
	}
	if withOptions {
		snap.Locations = s.view.Locations()
		snap.PriceRanges = catalog.PriceBuckets
	}
	return snap
}

func errorMessage(message string) ws.Message {
	return ws.Message{Type: ws.MsgTypeError, Data: errorPayload{Message: message}}
}

// HandleWebSocket WebSocket 处理，每个连接对应一个页面会话
func (h *Handler) HandleWebSocket(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error("Failed to upgrade websocket", zap.Error(err))
		return
	}

	id := uuid.New().String()
	session := newPageSession(id, h.logger, h.catalogService)
	client := ws.NewClient(h.wsHub, conn, id, session)

	go client.Serve()
}
