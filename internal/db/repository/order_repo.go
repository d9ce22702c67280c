package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/el-receso/cafeteria-service/internal/apperr"
	"github.com/el-receso/cafeteria-service/internal/models"
)

// OrderRepository handles order data access
type OrderRepository struct {
	db *sqlx.DB
}

// NewOrderRepository creates a new order repository
func NewOrderRepository(db *sqlx.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// GetByID retrieves an order by ID, including its lines
func (r *OrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	query := `
		SELECT id, user_id, total_amount, status, ordered_at
		FROM orders
		WHERE id = $1
	`

	var order models.Order
	err := r.db.GetContext(ctx, &order, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	lines, err := r.GetOrderLines(ctx, order.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get order lines: %w", err)
	}
	order.Lines = lines

	return &order, nil
}

// GetOrderLines retrieves the lines of an order, joined with the menu
// item name for display. The price shown is always the snapshot taken
// at purchase, never the item's current price.
func (r *OrderRepository) GetOrderLines(ctx context.Context, orderID uuid.UUID) ([]models.OrderLine, error) {
	query := `
		SELECT ol.id, ol.order_id, ol.menu_item_id, ol.quantity, ol.price_at_time,
		       mi.name as name
		FROM order_lines ol
		JOIN menu_items mi ON ol.menu_item_id = mi.id
		WHERE ol.order_id = $1
		ORDER BY ol.id ASC
	`

	var lines []models.OrderLine
	err := r.db.SelectContext(ctx, &lines, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to get order lines: %w", err)
	}

	return lines, nil
}

// Create persists an order and all of its lines as a single atomic
// unit. On any failure nothing is committed.
func (r *OrderRepository) Create(ctx context.Context, order models.Order, lines []models.OrderLine) (*models.Order, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	orderQuery := `
		INSERT INTO orders (user_id, total_amount, status, ordered_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id, user_id, total_amount, status, ordered_at
	`

	var createdOrder models.Order
	err = tx.GetContext(
		ctx,
		&createdOrder,
		orderQuery,
		order.UserID,
		order.TotalAmount,
		order.Status,
		order.OrderedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	createdOrder.Lines = make([]models.OrderLine, 0, len(lines))

	for _, line := range lines {
		var createdLine models.OrderLine
		err = tx.GetContext(
			ctx,
			&createdLine,
			`INSERT INTO order_lines (order_id, menu_item_id, quantity, price_at_time)
			 VALUES ($1, $2, $3, $4)
			 RETURNING id, order_id, menu_item_id, quantity, price_at_time`,
			createdOrder.ID,
			line.MenuItemID,
			line.Quantity,
			line.PriceAtTime,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create order line: %w", err)
		}

		createdLine.Name = line.Name
		createdOrder.Lines = append(createdOrder.Lines, createdLine)
	}

	err = tx.Commit()
	if err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &createdOrder, nil
}

// UpdateStatus updates an order's status, enforcing the transition
// table: pending orders may become delivered or not-delivered, and both
// of those are terminal.
func (r *OrderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var current models.OrderStatus
	err = tx.GetContext(ctx, &current, `SELECT status FROM orders WHERE id = $1 FOR UPDATE`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.ErrNotFound
		}
		return fmt.Errorf("failed to get order status: %w", err)
	}

	if !current.CanTransitionTo(status) {
		err = fmt.Errorf("%w: %s -> %s", apperr.ErrInvalidTransition, current, status)
		return err
	}

	_, err = tx.ExecContext(ctx, `UPDATE orders SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}

	err = tx.Commit()
	if err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// ListForUser retrieves a user's orders, newest first
func (r *OrderRepository) ListForUser(ctx context.Context, userID uuid.UUID) ([]models.Order, error) {
	query := `
		SELECT id, user_id, total_amount, status, ordered_at
		FROM orders
		WHERE user_id = $1
		ORDER BY ordered_at DESC
	`

	var orders []models.Order
	err := r.db.SelectContext(ctx, &orders, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders for user: %w", err)
	}

	return orders, nil
}

// ListAll retrieves all orders, newest first
func (r *OrderRepository) ListAll(ctx context.Context) ([]models.Order, error) {
	query := `
		SELECT id, user_id, total_amount, status, ordered_at
		FROM orders
		ORDER BY ordered_at DESC
	`

	var orders []models.Order
	err := r.db.SelectContext(ctx, &orders, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	return orders, nil
}
