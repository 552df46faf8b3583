package events

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/officeeats/cafeteria-app/models"
	"github.com/officeeats/cafeteria-app/utils"
)

// Event types pushed to connected clients. Every mutating operation in the
// services emits one of these so the frontend can re-render without polling.
const (
	EventOrderUpdate     = "order_update"
	EventMenuUpdate      = "menu_update"
	EventDashboardUpdate = "dashboard_update"
)

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Hub holds every connected websocket client and its role.
type Hub struct {
	clients map[*websocket.Conn]string
	mutex   sync.Mutex
}

var hub = Hub{
	clients: make(map[*websocket.Conn]string),
}

// RegisterClient adds a connection to the set with its role.
func RegisterClient(conn *websocket.Conn, role string) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	hub.clients[conn] = role
}

// UnregisterClient releases a connection.
func UnregisterClient(conn *websocket.Conn) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	delete(hub.clients, conn)
	conn.Close()
}

// BroadcastOrderUpdate pushes a changed order to every client.
func BroadcastOrderUpdate(order models.Order) {
	broadcast(Message{
		Event: EventOrderUpdate,
		Data:  order,
	})
}

// BroadcastMenuUpdate pushes a menu change to every client.
func BroadcastMenuUpdate(menu models.Menu) {
	broadcast(Message{
		Event: EventMenuUpdate,
		Data:  menu,
	})
}

// BroadcastDashboardUpdate pushes fresh dashboard aggregates.
func BroadcastDashboardUpdate(data interface{}) {
	broadcast(Message{
		Event: EventDashboardUpdate,
		Data:  data,
	})
}

func broadcast(msg Message) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()

	data, err := json.Marshal(msg)
	if err != nil {
		utils.ErrorLogger.Printf("Error marshaling event: %v", err)
		return
	}

	for conn := range hub.clients {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			utils.ErrorLogger.Printf("Error sending event to client: %v", err)
		}
	}
}
