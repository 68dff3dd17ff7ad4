package notifications

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 54 * time.Second
	sendBuffer = 64
)

// Hub tracks open websocket connections per user and routes reminder
// pushes to them.
type Hub struct {
	mu          sync.RWMutex
	connections map[*Connection]bool
	upgrader    websocket.Upgrader
	logger      *zap.Logger
	closed      bool
}

// Connection is one user's websocket session.
type Connection struct {
	id     uuid.UUID
	userID uuid.UUID
	conn   *websocket.Conn
	send   chan Notification
}

// NewHub creates a notification hub.
func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		connections: make(map[*Connection]bool),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		logger: logger,
	}
}

// HandleConnection upgrades the request and serves the connection until
// the client disconnects or the hub closes.
func (h *Hub) HandleConnection(w http.ResponseWriter, r *http.Request, userID uuid.UUID) error {
	ws, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return fmt.Errorf("failed to upgrade connection: %w", err)
	}

	conn := &Connection{
		id:     uuid.New(),
		userID: userID,
		conn:   ws,
		send:   make(chan Notification, sendBuffer),
	}

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		ws.Close()
		return fmt.Errorf("hub is closed")
	}
	h.connections[conn] = true
	h.mu.Unlock()

	h.logger.Debug("Websocket connected",
		zap.String("connection_id", conn.id.String()),
		zap.String("user_id", userID.String()))

	go h.writePump(conn)
	go h.readPump(conn)

	return nil
}

// SendToUser delivers a notification to every open connection of one
// user. Connections with a full buffer are skipped.
func (h *Hub) SendToUser(userID uuid.UUID, notification Notification) int {
	if notification.Timestamp.IsZero() {
		notification.Timestamp = time.Now()
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	sent := 0
	for conn := range h.connections {
		if conn.userID != userID {
			continue
		}
		select {
		case conn.send <- notification:
			sent++
		default:
			h.logger.Warn("Dropping notification, connection buffer full",
				zap.String("connection_id", conn.id.String()))
		}
	}
	return sent
}

// ConnectedUsers returns the distinct users with an open connection.
func (h *Hub) ConnectedUsers() []uuid.UUID {
	h.mu.RLock()
	defer h.mu.RUnlock()

	seen := make(map[uuid.UUID]bool)
	var users []uuid.UUID
	for conn := range h.connections {
		if !seen[conn.userID] {
			seen[conn.userID] = true
			users = append(users, conn.userID)
		}
	}
	return users
}

// ConnectionCount returns the number of open connections.
func (h *Hub) ConnectionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.connections)
}

// Close disconnects everyone and rejects future connections.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}
	h.closed = true

	for conn := range h.connections {
		close(conn.send)
		delete(h.connections, conn)
	}
}

// readPump consumes client frames to keep pong handling alive. Clients
// have nothing to say; any read error ends the session.
func (h *Hub) readPump(conn *Connection) {
	defer h.drop(conn)

	conn.conn.SetReadLimit(512)
	conn.conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.conn.SetPongHandler(func(string) error {
		conn.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := conn.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.logger.Debug("Websocket read error", zap.Error(err))
			}
			return
		}
	}
}

// writePump sends queued notifications and periodic pings.
func (h *Hub) writePump(conn *Connection) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		conn.conn.Close()
	}()

	for {
		select {
		case notification, ok := <-conn.send:
			conn.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				conn.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := conn.conn.WriteJSON(notification); err != nil {
				return
			}

		case <-ticker.C:
			conn.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// drop unregisters a connection and closes its socket.
func (h *Hub) drop(conn *Connection) {
	h.mu.Lock()
	if h.connections[conn] {
		delete(h.connections, conn)
		close(conn.send)
	}
	h.mu.Unlock()

	conn.conn.Close()

	h.logger.Debug("Websocket disconnected",
		zap.String("connection_id", conn.id.String()),
		zap.String("user_id", conn.userID.String()))
}
