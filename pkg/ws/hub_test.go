package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// echoSession 回显消息与事件
type echoSession struct {
	closed chan struct{}
}

func newEchoSession() *echoSession {
	return &echoSession{closed: make(chan struct{})}
}

func (s *echoSession) Open() []Message {
	return []Message{{Type: MsgTypeStatus, Data: "open"}}
}

func (s *echoSession) HandleMessage(data []byte) []Message {
	return []Message{{Type: MsgTypeVisible, Data: string(data)}}
}

func (s *echoSession) HandleEvent(event string) []Message {
	return []Message{{Type: MsgTypeInit, Data: event}}
}

func (s *echoSession) Close() {
	close(s.closed)
}

func startHub(t *testing.T) *Hub {
	t.Helper()
	hub := NewHub(zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)
	return hub
}

func serveEcho(t *testing.T, hub *Hub, session Session) *websocket.Conn {
	t.Helper()
	upgrader := websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		go NewClient(hub, conn, "c1", session).Serve()
	}))
	t.Cleanup(srv.Close)

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	var msg Message
	require.NoError(t, json.Unmarshal(data, &msg))
	return msg
}

func TestClient_ServeDeliversMessagesAndEvents(t *testing.T) {
	hub := startHub(t)
	session := newEchoSession()
	conn := serveEcho(t, hub, session)

	msg := readMessage(t, conn)
	assert.Equal(t, MsgTypeStatus, msg.Type)
	assert.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("hi")))
	msg = readMessage(t, conn)
	assert.Equal(t, MsgTypeVisible, msg.Type)
	assert.Equal(t, "hi", msg.Data)

	hub.Broadcast(EventCatalogReady)
	msg = readMessage(t, conn)
	assert.Equal(t, MsgTypeInit, msg.Type)
	assert.Equal(t, EventCatalogReady, msg.Data)

	conn.Close()
	select {
	case <-session.closed:
	case <-time.After(5 * time.Second):
		t.Fatal("session was not closed")
	}
	assert.Eventually(t, func() bool { return hub.ClientCount() == 0 }, 5*time.Second, 10*time.Millisecond)
}

func TestHub_UnregisterClosesSend(t *testing.T) {
	hub := startHub(t)
	c := NewClient(hub, nil, "c1", newEchoSession())

	hub.register <- c
	assert.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	hub.unregister <- c
	assert.Eventually(t, func() bool { return hub.ClientCount() == 0 }, time.Second, 5*time.Millisecond)

	_, ok := <-c.send
	assert.False(t, ok)
}

func TestHub_DropsEventsForSlowClient(t *testing.T) {
	hub := startHub(t)
	slow := NewClient(hub, nil, "slow", newEchoSession())
	hub.register <- slow

	for i := 0; i < cap(slow.events)+3; i++ {
		hub.Broadcast(EventCatalogReady)
	}

	// Run 仍在处理：后续注册不会阻塞
	other := NewClient(hub, nil, "other", newEchoSession())
	done := make(chan struct{})
	go func() {
		hub.register <- other
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("hub blocked on a slow client")
	}

	assert.Eventually(t, func() bool { return hub.ClientCount() == 2 }, time.Second, 5*time.Millisecond)
	assert.Eventually(t, func() bool { return len(slow.events) == cap(slow.events) }, time.Second, 5*time.Millisecond)
}
