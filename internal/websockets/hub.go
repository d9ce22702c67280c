// Package websockets pushes order lifecycle events to connected admin
// clients so fulfilment screens update without polling.
package websockets

import (
	"encoding/json"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/el-receso/cafeteria-service/internal/models"
)

type EventType string

const (
	EventOrderNew    EventType = "order.new"
	EventOrderUpdate EventType = "order.update"
	EventPing        EventType = "ping"
	EventPong        EventType = "pong"
)

// Event is the wire format of a feed message
type Event struct {
	Type EventType       `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

type Hub struct {
	clients map[*Client]bool

	register chan *Client

	unregister chan *Client

	broadcast chan []byte

	logger *logrus.Logger
}

func NewHub(logger *logrus.Logger) *Hub {
	return &Hub{
		broadcast:  make(chan []byte),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
		logger:     logger,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
		case message := <-h.broadcast:
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					close(client.send)
					delete(h.clients, client)
				}
			}
		}
	}
}

func (h *Hub) broadcastEvent(eventType EventType, data interface{}) {
	payload, err := json.Marshal(data)
	if err != nil {
		h.logger.WithError(err).Error("Failed to encode feed event")
		return
	}

	message, err := json.Marshal(Event{Type: eventType, Data: payload})
	if err != nil {
		h.logger.WithError(err).Error("Failed to encode feed event")
		return
	}

	h.broadcast <- message
}

// NotifyOrderCreated publishes a new order to all connected clients
func (h *Hub) NotifyOrderCreated(order *models.Order) {
	h.broadcastEvent(EventOrderNew, order)
}

// NotifyOrderStatus publishes an order status change to all connected clients
func (h *Hub) NotifyOrderStatus(orderID uuid.UUID, status models.OrderStatus) {
	h.broadcastEvent(EventOrderUpdate, struct {
		OrderID uuid.UUID          `json:"order_id"`
		Status  models.OrderStatus `json:"status"`
	}{OrderID: orderID, Status: status})
}
