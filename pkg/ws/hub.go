package ws

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// MessageType WebSocket 消息类型
const (
	MsgTypeInit    = "init"    // 会话初始快照
	MsgTypeVisible = "visible" // 筛选后的快照
	MsgTypeStatus  = "status"  // 目录加载状态
	MsgTypeError   = "error"   // 错误消息
)

// Hub 事件
const (
	EventCatalogReady  = "catalog_ready"
	EventCatalogFailed = "catalog_failed"
)

const (
	writeWait      = 10 * time.Second
	maxMessageSize = 4096
)

// Message WebSocket 消息结构
type Message struct {
	Type string      `json:"type"`
	Data interface{} `json:"data,omitempty"`
}

// Session 页面会话
// 所有方法都在客户端的同一个 goroutine 中依次调用，实现无需加锁
type Session interface {
	Open() []Message
	HandleMessage(data []byte) []Message
	HandleEvent(event string) []Message
	Close()
}

// Client WebSocket 客户端
type Client struct {
	id      string
	hub     *Hub
	conn    *websocket.Conn
	session Session
	send    chan []byte
	events  chan string
}

// Hub WebSocket 连接管理中心
type Hub struct {
	logger     *zap.Logger
	clients    map[*Client]bool
	broadcast  chan string
	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex
}

// NewHub 创建 Hub
func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		logger:     logger,
		clients:    make(map[*Client]bool),
		broadcast:  make(chan string, 16),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Run 运行 Hub，直到 ctx 结束
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			total := len(h.clients)
			h.mu.Unlock()
			h.logger.Info("WebSocket client connected", zap.String("session_id", client.id), zap.Int("total_clients", total))

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			total := len(h.clients)
			h.mu.Unlock()
			h.logger.Info("WebSocket client disconnected", zap.String("session_id", client.id), zap.Int("total_clients", total))

		case event := <-h.broadcast:
			h.mu.RLock()
			for client := range h.clients {
				select {
				case client.events <- event:
				default:
					h.logger.Warn("Dropped event for slow client", zap.String("session_id", client.id), zap.String("event", event))
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Broadcast 向所有会话广播事件
func (h *Hub) Broadcast(event string) {
	h.broadcast <- event
}

// ClientCount 获取客户端数量
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// NewClient 创建客户端
func NewClient(hub *Hub, conn *websocket.Conn, id string, session Session) *Client {
	return &Client{
		id:      id,
		hub:     hub,
		conn:    conn,
		session: session,
		send:    make(chan []byte, 64),
		events:  make(chan string, 8),
	}
}

// Serve 注册客户端并处理会话，直到连接断开
func (c *Client) Serve() {
	c.hub.register <- c

	inbound := make(chan []byte)
	go c.readPump(inbound)
	go c.writePump()

	defer func() {
		c.hub.unregister <- c
		c.session.Close()
	}()

	c.dispatch(c.session.Open())
	for {
		select {
		case data, ok := <-inbound:
			if !ok {
				return
			}
			c.dispatch(c.session.HandleMessage(data))
		case event := <-c.events:
			c.dispatch(c.session.HandleEvent(event))
		}
	}
}

// dispatch 序列化并排队发送
func (c *Client) dispatch(msgs []Message) {
	for _, msg := range msgs {
		data, err := json.Marshal(msg)
		if err != nil {
			c.hub.logger.Error("Failed to marshal message", zap.Error(err), zap.String("type", msg.Type))
			continue
		}
		select {
		case c.send <- data:
		default:
			c.hub.logger.Warn("Client send buffer full, dropping message", zap.String("session_id", c.id))
		}
	}
}

// readPump 读取消息，连接断开时关闭 inbound
func (c *Client) readPump(inbound chan<- []byte) {
	defer close(inbound)

	c.conn.SetReadLimit(maxMessageSize)
	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			return
		}
		inbound <- data
	}
}

// writePump 发送消息，send 关闭后关闭连接
func (c *Client) writePump() {
	defer c.conn.Close()

	for message := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
			// 让 readPump 尽快退出
			c.conn.Close()
		}
	}
	c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}
