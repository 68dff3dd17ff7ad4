package notifications

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func dialTestHub(t *testing.T, hub *Hub, userID uuid.UUID) *websocket.Conn {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := hub.HandleConnection(w, r, userID); err != nil {
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	t.Cleanup(server.Close)

	url := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	return conn
}

func TestSendToUserDeliversNotification(t *testing.T) {
	hub := NewHub(zap.NewNop())
	defer hub.Close()

	userID := uuid.New()
	client := dialTestHub(t, hub, userID)

	certID := uuid.New()
	require.Eventually(t, func() bool {
		return hub.SendToUser(userID, Notification{
			Type:            TypeRenewal,
			Message:         "CISSP renewal is in 30 days",
			CertificationID: certID,
		}) == 1
	}, time.Second, 10*time.Millisecond)

	client.SetReadDeadline(time.Now().Add(2 * time.Second))
	var received Notification
	require.NoError(t, client.ReadJSON(&received))

	assert.Equal(t, TypeRenewal, received.Type)
	assert.Equal(t, "CISSP renewal is in 30 days", received.Message)
	assert.Equal(t, certID, received.CertificationID)
	assert.False(t, received.Timestamp.IsZero())
}

func TestSendToUserIgnoresOtherUsers(t *testing.T) {
	hub := NewHub(zap.NewNop())
	defer hub.Close()

	userID := uuid.New()
	dialTestHub(t, hub, userID)

	require.Eventually(t, func() bool {
		return hub.ConnectionCount() == 1
	}, time.Second, 10*time.Millisecond)

	sent := hub.SendToUser(uuid.New(), Notification{Type: TypeLowProgress, Message: "x"})
	assert.Equal(t, 0, sent)
}

func TestSendToUserWithoutConnections(t *testing.T) {
	hub := NewHub(zap.NewNop())
	defer hub.Close()

	sent := hub.SendToUser(uuid.New(), Notification{Type: TypeRenewal, Message: "nobody home"})
	assert.Equal(t, 0, sent)
}

func TestCloseRejectsNewConnections(t *testing.T) {
	hub := NewHub(zap.NewNop())

	userID := uuid.New()
	dialTestHub(t, hub, userID)

	require.Eventually(t, func() bool {
		return hub.ConnectionCount() == 1
	}, time.Second, 10*time.Millisecond)

	hub.Close()
	hub.Close() // safe to call twice
	assert.Equal(t, 0, hub.ConnectionCount())

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		err := hub.HandleConnection(w, r, userID)
		assert.Error(t, err)
	}))
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err == nil {
		// The upgrade may succeed before the hub rejects it; the socket
		// must then close immediately.
		conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		_, _, readErr := conn.ReadMessage()
		assert.Error(t, readErr)
		conn.Close()
	}
}
