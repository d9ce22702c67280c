package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/el-receso/cafeteria-service/internal/apperr"
	"github.com/el-receso/cafeteria-service/internal/models"
)

// MenuStore is the slice of the menu repository the menu service needs.
type MenuStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.MenuItem, error)
	List(ctx context.Context) ([]models.MenuItem, error)
	Create(ctx context.Context, item models.MenuItem) (*models.MenuItem, error)
	Update(ctx context.Context, item models.MenuItem) (*models.MenuItem, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// MenuService handles menu catalog operations
type MenuService struct {
	menu MenuStore
}

// NewMenuService creates a new menu service
func NewMenuService(menu MenuStore) *MenuService {
	return &MenuService{menu: menu}
}

// parseItemRequest validates a menu item request. The price must parse
// as a non-negative decimal.
func parseItemRequest(req models.MenuItemRequest) (*models.MenuItem, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperr.Validation("name", "must not be empty")
	}

	category := strings.TrimSpace(req.Category)
	if category == "" {
		return nil, apperr.Validation("category", "must not be empty")
	}

	price, err := decimal.NewFromString(strings.TrimSpace(req.Price))
	if err != nil {
		return nil, apperr.Validation("price", "must be a number")
	}
	if price.IsNegative() {
		return nil, apperr.Validation("price", "must not be negative")
	}

	return &models.MenuItem{
		Name:        name,
		Description: req.Description,
		Price:       price,
		Category:    category,
	}, nil
}

// AddItem creates a new menu item
func (s *MenuService) AddItem(ctx context.Context, req models.MenuItemRequest) (*models.MenuItem, error) {
	item, err := parseItemRequest(req)
	if err != nil {
		return nil, err
	}

	createdItem, err := s.menu.Create(ctx, *item)
	if err != nil {
		return nil, fmt.Errorf("failed to create menu item: %w", err)
	}

	return createdItem, nil
}

// UpdateItem updates an existing menu item
func (s *MenuService) UpdateItem(ctx context.Context, id uuid.UUID, req models.MenuItemRequest) (*models.MenuItem, error) {
	item, err := parseItemRequest(req)
	if err != nil {
		return nil, err
	}
	item.ID = id

	updatedItem, err := s.menu.Update(ctx, *item)
	if err != nil {
		return nil, err
	}

	return updatedItem, nil
}

// DeleteItem removes a menu item
func (s *MenuService) DeleteItem(ctx context.Context, id uuid.UUID) error {
	return s.menu.Delete(ctx, id)
}

// GetItem returns a menu item by ID
func (s *MenuService) GetItem(ctx context.Context, id uuid.UUID) (*models.MenuItem, error) {
	return s.menu.GetByID(ctx, id)
}

// ListByCategory returns the menu grouped by category. Categories come
// back in lexicographic order and items within a category in
// lexicographic name order, so the result is deterministic.
func (s *MenuService) ListByCategory(ctx context.Context) ([]models.CategoryGroup, error) {
	items, err := s.menu.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list menu: %w", err)
	}

	// The repository returns rows ordered by category then name, so a
	// single pass preserves both orderings.
	groups := make([]models.CategoryGroup, 0)
	for _, item := range items {
		if len(groups) == 0 || groups[len(groups)-1].Category != item.Category {
			groups = append(groups, models.CategoryGroup{Category: item.Category})
		}
		last := &groups[len(groups)-1]
		last.Items = append(last.Items, item)
	}

	return groups, nil
}
