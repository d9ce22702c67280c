package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/el-receso/cafeteria-service/internal/apperr"
	"github.com/el-receso/cafeteria-service/internal/models"
)

// MenuRepository handles menu data access
type MenuRepository struct {
	db *sqlx.DB
}

// NewMenuRepository creates a new menu repository
func NewMenuRepository(db *sqlx.DB) *MenuRepository {
	return &MenuRepository{db: db}
}

// GetByID retrieves a menu item by ID
func (r *MenuRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.MenuItem, error) {
	query := `
		SELECT id, name, description, price, category, created_at, updated_at
		FROM menu_items
		WHERE id = $1
	`

	var item models.MenuItem
	err := r.db.GetContext(ctx, &item, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get menu item: %w", err)
	}

	return &item, nil
}

// List retrieves all menu items sorted by category then name, so menu
// views and exports are deterministic.
func (r *MenuRepository) List(ctx context.Context) ([]models.MenuItem, error) {
	query := `
		SELECT id, name, description, price, category, created_at, updated_at
		FROM menu_items
		ORDER BY category ASC, name ASC
	`

	var items []models.MenuItem
	err := r.db.SelectContext(ctx, &items, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list menu items: %w", err)
	}

	return items, nil
}

// Create creates a new menu item
func (r *MenuRepository) Create(ctx context.Context, item models.MenuItem) (*models.MenuItem, error) {
	query := `
		INSERT INTO menu_items (name, description, price, category)
		VALUES ($1, $2, $3, $4)
		RETURNING id, name, description, price, category, created_at, updated_at
	`

	var createdItem models.MenuItem
	err := r.db.GetContext(
		ctx,
		&createdItem,
		query,
		item.Name,
		item.Description,
		item.Price,
		item.Category,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create menu item: %w", err)
	}

	return &createdItem, nil
}

// Update updates a menu item
func (r *MenuRepository) Update(ctx context.Context, item models.MenuItem) (*models.MenuItem, error) {
	query := `
		UPDATE menu_items
		SET name = $1, description = $2, price = $3, category = $4, updated_at = $5
		WHERE id = $6
		RETURNING id, name, description, price, category, created_at, updated_at
	`

	var updatedItem models.MenuItem
	err := r.db.GetContext(
		ctx,
		&updatedItem,
		query,
		item.Name,
		item.Description,
		item.Price,
		item.Category,
		time.Now(),
		item.ID,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update menu item: %w", err)
	}

	return &updatedItem, nil
}

// Delete deletes a menu item
func (r *MenuRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `
		DELETE FROM menu_items
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete menu item: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return apperr.ErrNotFound
	}

	return nil
}
