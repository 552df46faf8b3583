package events

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/officeeats/cafeteria-app/models"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// dialTestClient connects a websocket client registered with the hub and
// returns the client side of the connection.
func dialTestClient(t *testing.T, role string) *websocket.Conn {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		RegisterClient(conn, role)
	}))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	client, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })
	return client
}

func readMessage(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, raw, err := conn.ReadMessage()
	require.NoError(t, err)

	var msg Message
	require.NoError(t, json.Unmarshal(raw, &msg))
	return msg
}

func TestBroadcastReachesAllClients(t *testing.T) {
	first := dialTestClient(t, models.RoleAdmin)
	second := dialTestClient(t, models.RoleEmployee)

	BroadcastOrderUpdate(models.Order{ID: 12, Status: models.StatusReady})

	for _, conn := range []*websocket.Conn{first, second} {
		msg := readMessage(t, conn)
		assert.Equal(t, EventOrderUpdate, msg.Event)
		data, ok := msg.Data.(map[string]interface{})
		require.True(t, ok)
		assert.EqualValues(t, 12, data["id"])
		assert.Equal(t, models.StatusReady, data["status"])
	}
}

func TestUnregisteredClientGetsNothing(t *testing.T) {
	conn := dialTestClient(t, models.RoleEmployee)

	// Unregister the server side by broadcasting after dropping all clients.
	hub.mutex.Lock()
	for c := range hub.clients {
		delete(hub.clients, c)
		c.Close()
	}
	hub.mutex.Unlock()

	BroadcastMenuUpdate(models.Menu{ID: 1, Name: "Pancakes"})

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(100*time.Millisecond)))
	_, _, err := conn.ReadMessage()
	assert.Error(t, err)
}
