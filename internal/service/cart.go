package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/el-receso/cafeteria-service/internal/apperr"
	"github.com/el-receso/cafeteria-service/internal/cart"
	"github.com/el-receso/cafeteria-service/internal/models"
)

// CatalogReader looks up items for cart additions.
type CatalogReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.MenuItem, error)
}

// CartService mediates between the session cart store and the menu
// catalog. Prices and names are snapshotted into the cart at add time;
// later catalog changes never touch an existing cart.
type CartService struct {
	store   cart.Store
	catalog CatalogReader
}

// NewCartService creates a new cart service
func NewCartService(store cart.Store, catalog CatalogReader) *CartService {
	return &CartService{store: store, catalog: catalog}
}

// AddItem adds one unit of a menu item to the session's cart. Adding an
// item already in the cart increments its quantity.
func (s *CartService) AddItem(ctx context.Context, sessionID string, itemID uuid.UUID) (*models.Cart, error) {
	item, err := s.catalog.GetByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, fmt.Errorf("failed to look up menu item: %w", err)
	}

	c, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	c.Add(*item)

	if err := s.store.Save(ctx, sessionID, c); err != nil {
		return nil, fmt.Errorf("failed to save cart: %w", err)
	}

	return c, nil
}

// View returns the session's cart entries and their exact total. An
// empty cart yields no entries and a zero total.
func (s *CartService) View(ctx context.Context, sessionID string) ([]models.CartEntry, decimal.Decimal, error) {
	c, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, decimal.Zero, fmt.Errorf("failed to load cart: %w", err)
	}

	return c.Entries, c.Total(), nil
}

// Clear empties the session's cart. Idempotent.
func (s *CartService) Clear(ctx context.Context, sessionID string) error {
	if err := s.store.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}
