package handler

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/el-receso/cafeteria-service/internal/api"
	"github.com/el-receso/cafeteria-service/internal/models"
)

// OrderLedger is the slice of the order service the handler needs.
type OrderLedger interface {
	GetOrder(ctx context.Context, orderID uuid.UUID) (*models.Order, error)
	SetStatus(ctx context.Context, orderID uuid.UUID, status models.OrderStatus) error
	ListForUser(ctx context.Context, userID uuid.UUID) ([]models.Order, error)
	ListAll(ctx context.Context) ([]models.Order, error)
}

// OrderHandler handles order views and admin fulfilment
type OrderHandler struct {
	orders OrderLedger
	logger *logrus.Logger
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orders OrderLedger, logger *logrus.Logger) *OrderHandler {
	return &OrderHandler{orders: orders, logger: logger}
}

// MyOrders handles GET /my_orders
func (h *OrderHandler) MyOrders(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		api.RespondJSON(w, http.StatusUnauthorized, api.ErrorResponse{Error: "unauthorized"})
		return
	}

	orders, err := h.orders.ListForUser(r.Context(), userID)
	if err != nil {
		api.RespondError(w, h.logger, err)
		return
	}

	if orders == nil {
		orders = []models.Order{}
	}

	api.RespondJSON(w, http.StatusOK, orders)
}

// ListAll handles GET /admin/orders
func (h *OrderHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.ListAll(r.Context())
	if err != nil {
		api.RespondError(w, h.logger, err)
		return
	}

	if orders == nil {
		orders = []models.Order{}
	}

	api.RespondJSON(w, http.StatusOK, orders)
}

// Detail handles GET /admin/order/{orderId}
func (h *OrderHandler) Detail(w http.ResponseWriter, r *http.Request) {
	orderID, err := uuid.Parse(mux.Vars(r)["orderId"])
	if err != nil {
		api.RespondJSON(w, http.StatusBadRequest, api.ErrorResponse{Error: "invalid order id"})
		return
	}

	order, err := h.orders.GetOrder(r.Context(), orderID)
	if err != nil {
		api.RespondError(w, h.logger, err)
		return
	}

	api.RespondJSON(w, http.StatusOK, order)
}

// MarkDelivered handles POST /admin/order/{orderId}/mark_delivered
func (h *OrderHandler) MarkDelivered(w http.ResponseWriter, r *http.Request) {
	h.setStatus(w, r, models.OrderStatusDelivered)
}

// MarkNotDelivered handles POST /admin/order/{orderId}/mark_not_delivered
func (h *OrderHandler) MarkNotDelivered(w http.ResponseWriter, r *http.Request) {
	h.setStatus(w, r, models.OrderStatusNotDelivered)
}

func (h *OrderHandler) setStatus(w http.ResponseWriter, r *http.Request, status models.OrderStatus) {
	orderID, err := uuid.Parse(mux.Vars(r)["orderId"])
	if err != nil {
		api.RespondJSON(w, http.StatusBadRequest, api.ErrorResponse{Error: "invalid order id"})
		return
	}

	if err := h.orders.SetStatus(r.Context(), orderID, status); err != nil {
		api.RespondError(w, h.logger, err)
		return
	}

	api.RespondJSON(w, http.StatusOK, struct {
		OrderID uuid.UUID          `json:"order_id"`
		Status  models.OrderStatus `json:"status"`
	}{OrderID: orderID, Status: status})
}
