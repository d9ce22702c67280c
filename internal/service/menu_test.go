package service

import (
	"context"
	"sort"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/el-receso/cafeteria-service/internal/apperr"
	"github.com/el-receso/cafeteria-service/internal/models"
)

// fakeMenuStore is an in-memory MenuStore. List returns items sorted by
// category then name, like the real query.
type fakeMenuStore struct {
	items map[uuid.UUID]*models.MenuItem
}

func newFakeMenuStore() *fakeMenuStore {
	return &fakeMenuStore{items: make(map[uuid.UUID]*models.MenuItem)}
}

func (f *fakeMenuStore) GetByID(ctx context.Context, id uuid.UUID) (*models.MenuItem, error) {
	if item, ok := f.items[id]; ok {
		copied := *item
		return &copied, nil
	}
	return nil, apperr.ErrNotFound
}

func (f *fakeMenuStore) List(ctx context.Context) ([]models.MenuItem, error) {
	out := make([]models.MenuItem, 0, len(f.items))
	for _, item := range f.items {
		out = append(out, *item)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Category != out[j].Category {
			return out[i].Category < out[j].Category
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (f *fakeMenuStore) Create(ctx context.Context, item models.MenuItem) (*models.MenuItem, error) {
	item.ID = uuid.New()
	stored := item
	f.items[item.ID] = &stored
	copied := item
	return &copied, nil
}

func (f *fakeMenuStore) Update(ctx context.Context, item models.MenuItem) (*models.MenuItem, error) {
	if _, ok := f.items[item.ID]; !ok {
		return nil, apperr.ErrNotFound
	}
	stored := item
	f.items[item.ID] = &stored
	copied := item
	return &copied, nil
}

func (f *fakeMenuStore) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := f.items[id]; !ok {
		return apperr.ErrNotFound
	}
	delete(f.items, id)
	return nil
}

func TestAddItemValidatesPrice(t *testing.T) {
	svc := NewMenuService(newFakeMenuStore())
	ctx := context.Background()

	_, err := svc.AddItem(ctx, models.MenuItemRequest{Name: "Empanada", Price: "abc", Category: "Snacks"})
	assert.True(t, apperr.IsValidation(err))

	_, err = svc.AddItem(ctx, models.MenuItemRequest{Name: "Empanada", Price: "-1.00", Category: "Snacks"})
	assert.True(t, apperr.IsValidation(err))

	_, err = svc.AddItem(ctx, models.MenuItemRequest{Name: "", Price: "1.00", Category: "Snacks"})
	assert.True(t, apperr.IsValidation(err))

	_, err = svc.AddItem(ctx, models.MenuItemRequest{Name: "Empanada", Price: "1.00", Category: ""})
	assert.True(t, apperr.IsValidation(err))

	item, err := svc.AddItem(ctx, models.MenuItemRequest{Name: "Agua", Price: "0", Category: "Bebidas"})
	require.NoError(t, err)
	assert.True(t, item.Price.IsZero())
}

func TestAddItemParsesExactPrice(t *testing.T) {
	svc := NewMenuService(newFakeMenuStore())

	item, err := svc.AddItem(context.Background(), models.MenuItemRequest{
		Name: "Jugo de Chinola", Price: "70.00", Category: "Bebidas",
	})
	require.NoError(t, err)
	assert.True(t, item.Price.Equal(decimal.RequireFromString("70.00")))
}

func TestListByCategoryOrdering(t *testing.T) {
	store := newFakeMenuStore()
	svc := NewMenuService(store)
	ctx := context.Background()

	add := func(name, category string) {
		_, err := svc.AddItem(ctx, models.MenuItemRequest{Name: name, Price: "1.00", Category: category})
		require.NoError(t, err)
	}

	// Inserted out of order on purpose
	add("Quipes", "Snacks")
	add("Mangu con Queso", "Desayuno")
	add("Empanada de Pollo", "Snacks")
	add("Agua", "Bebidas")
	add("Sandwich de Huevo", "Desayuno")

	groups, err := svc.ListByCategory(ctx)
	require.NoError(t, err)

	require.Len(t, groups, 3)
	assert.Equal(t, "Bebidas", groups[0].Category)
	assert.Equal(t, "Desayuno", groups[1].Category)
	assert.Equal(t, "Snacks", groups[2].Category)

	require.Len(t, groups[1].Items, 2)
	assert.Equal(t, "Mangu con Queso", groups[1].Items[0].Name)
	assert.Equal(t, "Sandwich de Huevo", groups[1].Items[1].Name)

	require.Len(t, groups[2].Items, 2)
	assert.Equal(t, "Empanada de Pollo", groups[2].Items[0].Name)
	assert.Equal(t, "Quipes", groups[2].Items[1].Name)
}

func TestListByCategoryEmptyMenu(t *testing.T) {
	svc := NewMenuService(newFakeMenuStore())

	groups, err := svc.ListByCategory(context.Background())
	require.NoError(t, err)
	assert.Empty(t, groups)
}

func TestUpdateAndDeleteItem(t *testing.T) {
	store := newFakeMenuStore()
	svc := NewMenuService(store)
	ctx := context.Background()

	item, err := svc.AddItem(ctx, models.MenuItemRequest{Name: "Mofongo", Price: "250.00", Category: "Almuerzo"})
	require.NoError(t, err)

	updated, err := svc.UpdateItem(ctx, item.ID, models.MenuItemRequest{Name: "Mofongo", Price: "275.00", Category: "Almuerzo"})
	require.NoError(t, err)
	assert.True(t, updated.Price.Equal(decimal.RequireFromString("275.00")))

	_, err = svc.UpdateItem(ctx, uuid.New(), models.MenuItemRequest{Name: "X", Price: "1.00", Category: "Y"})
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	require.NoError(t, svc.DeleteItem(ctx, item.ID))
	assert.ErrorIs(t, svc.DeleteItem(ctx, item.ID), apperr.ErrNotFound)
}
