package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/el-receso/cafeteria-service/internal/apperr"
	"github.com/el-receso/cafeteria-service/internal/cart"
	"github.com/el-receso/cafeteria-service/internal/models"
)

// OrderStore is the slice of the order repository the order service needs.
type OrderStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	Create(ctx context.Context, order models.Order, lines []models.OrderLine) (*models.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) error
	ListForUser(ctx context.Context, userID uuid.UUID) ([]models.Order, error)
	ListAll(ctx context.Context) ([]models.Order, error)
}

// OrderNotifier pushes order events to connected observers. The
// websocket hub satisfies this; tests use a fake.
type OrderNotifier interface {
	NotifyOrderCreated(order *models.Order)
	NotifyOrderStatus(orderID uuid.UUID, status models.OrderStatus)
}

// OrderService runs checkout and order fulfilment
type OrderService struct {
	orders   OrderStore
	carts    cart.Store
	notifier OrderNotifier
	logger   *logrus.Logger
}

// NewOrderService creates a new order service
func NewOrderService(orders OrderStore, carts cart.Store, notifier OrderNotifier, logger *logrus.Logger) *OrderService {
	return &OrderService{
		orders:   orders,
		carts:    carts,
		notifier: notifier,
		logger:   logger,
	}
}

// Checkout converts the session's cart into a durable order. The order
// and all of its lines are written in one transaction using the cart's
// price snapshots; current catalog prices are never consulted. On
// failure the cart is left untouched so the user can retry. On success
// the cart is cleared after commit; clearing is idempotent, and the
// order ledger stays the source of truth if the clear is lost.
func (s *OrderService) Checkout(ctx context.Context, userID uuid.UUID, sessionID string) (*models.Order, error) {
	c, err := s.carts.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	if c.IsEmpty() {
		return nil, apperr.ErrEmptyCart
	}

	lines := make([]models.OrderLine, 0, len(c.Entries))
	for _, entry := range c.Entries {
		lines = append(lines, models.OrderLine{
			MenuItemID:  entry.MenuItemID,
			Quantity:    entry.Quantity,
			PriceAtTime: entry.UnitPrice,
			Name:        entry.Name,
		})
	}

	order := models.Order{
		UserID:      userID,
		TotalAmount: c.Total(),
		Status:      models.OrderStatusPending,
		OrderedAt:   time.Now(),
	}

	createdOrder, err := s.orders.Create(ctx, order, lines)
	if err != nil {
		return nil, fmt.Errorf("failed to place order: %w", err)
	}

	if err := s.carts.Delete(ctx, sessionID); err != nil {
		// The order is committed; a stale cart is recoverable, so log
		// and carry on rather than failing the checkout.
		s.logger.WithError(err).WithFields(logrus.Fields{
			"order_id":   createdOrder.ID,
			"session_id": sessionID,
		}).Warn("Failed to clear cart after checkout")
	}

	s.logger.WithFields(logrus.Fields{
		"order_id":     createdOrder.ID,
		"user_id":      userID,
		"total_amount": createdOrder.TotalAmount,
		"lines_count":  len(createdOrder.Lines),
	}).Info("Order placed")

	if s.notifier != nil {
		s.notifier.NotifyOrderCreated(createdOrder)
	}

	return createdOrder, nil
}

// SetStatus updates an order's fulfilment status, enforcing the
// transition table.
func (s *OrderService) SetStatus(ctx context.Context, orderID uuid.UUID, status models.OrderStatus) error {
	if !status.Valid() {
		return apperr.Validation("status", "unknown status")
	}

	if err := s.orders.UpdateStatus(ctx, orderID, status); err != nil {
		if errors.Is(err, apperr.ErrNotFound) || errors.Is(err, apperr.ErrInvalidTransition) {
			return err
		}
		return fmt.Errorf("failed to update order status: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"order_id": orderID,
		"status":   status,
	}).Info("Order status updated")

	if s.notifier != nil {
		s.notifier.NotifyOrderStatus(orderID, status)
	}

	return nil
}

// GetOrder returns an order with its lines
func (s *OrderService) GetOrder(ctx context.Context, orderID uuid.UUID) (*models.Order, error) {
	return s.orders.GetByID(ctx, orderID)
}

// ListForUser returns a user's orders, newest first
func (s *OrderService) ListForUser(ctx context.Context, userID uuid.UUID) ([]models.Order, error) {
	return s.orders.ListForUser(ctx, userID)
}

// ListAll returns all orders, newest first
func (s *OrderService) ListAll(ctx context.Context) ([]models.Order, error) {
	return s.orders.ListAll(ctx)
}
