package service

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/el-receso/cafeteria-service/internal/apperr"
	"github.com/el-receso/cafeteria-service/internal/cart"
	"github.com/el-receso/cafeteria-service/internal/models"
)

// fakeOrderStore is an in-memory OrderStore that mirrors the real
// repository's all-or-nothing create and transition-checked status
// update. failCreate makes Create fail without writing anything.
type fakeOrderStore struct {
	mu         sync.Mutex
	orders     []*models.Order
	failCreate bool
}

func (f *fakeOrderStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, o := range f.orders {
		if o.ID == id {
			copied := *o
			return &copied, nil
		}
	}
	return nil, apperr.ErrNotFound
}

func (f *fakeOrderStore) Create(ctx context.Context, order models.Order, lines []models.OrderLine) (*models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failCreate {
		return nil, errors.New("storage failure")
	}
	order.ID = uuid.New()
	order.Lines = make([]models.OrderLine, len(lines))
	for i, line := range lines {
		line.ID = uuid.New()
		line.OrderID = order.ID
		order.Lines[i] = line
	}
	stored := order
	f.orders = append(f.orders, &stored)
	copied := order
	return &copied, nil
}

func (f *fakeOrderStore) UpdateStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, o := range f.orders {
		if o.ID == id {
			if !o.Status.CanTransitionTo(status) {
				return apperr.ErrInvalidTransition
			}
			o.Status = status
			return nil
		}
	}
	return apperr.ErrNotFound
}

func (f *fakeOrderStore) ListForUser(ctx context.Context, userID uuid.UUID) ([]models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Order
	for i := len(f.orders) - 1; i >= 0; i-- {
		if f.orders[i].UserID == userID {
			out = append(out, *f.orders[i])
		}
	}
	return out, nil
}

func (f *fakeOrderStore) ListAll(ctx context.Context) ([]models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Order
	for i := len(f.orders) - 1; i >= 0; i-- {
		out = append(out, *f.orders[i])
	}
	return out, nil
}

func (f *fakeOrderStore) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.orders)
}

// fakeNotifier records published order events
type fakeNotifier struct {
	mu      sync.Mutex
	created []uuid.UUID
	updated []uuid.UUID
}

func (f *fakeNotifier) NotifyOrderCreated(order *models.Order) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, order.ID)
}

func (f *fakeNotifier) NotifyOrderStatus(orderID uuid.UUID, status models.OrderStatus) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updated = append(f.updated, orderID)
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

type orderFixture struct {
	orders   *fakeOrderStore
	carts    cart.Store
	notifier *fakeNotifier
	svc      *OrderService
	cartSvc  *CartService
	menu     *fakeMenuStore
}

func newOrderFixture(t *testing.T) *orderFixture {
	t.Helper()
	orders := &fakeOrderStore{}
	carts := cart.NewMemoryStore(time.Hour)
	notifier := &fakeNotifier{}
	menu := newFakeMenuStore()
	return &orderFixture{
		orders:   orders,
		carts:    carts,
		notifier: notifier,
		svc:      NewOrderService(orders, carts, notifier, quietLogger()),
		cartSvc:  NewCartService(carts, menu),
		menu:     menu,
	}
}

func TestCheckoutEmptyCart(t *testing.T) {
	f := newOrderFixture(t)

	_, err := f.svc.Checkout(context.Background(), uuid.New(), "s1")
	assert.ErrorIs(t, err, apperr.ErrEmptyCart)
	assert.Equal(t, 0, f.orders.count())
}

func TestCheckoutSnapshotsPrices(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()
	userID := uuid.New()

	itemA := addMenuItem(t, f.menu, "ItemA", "50.00")
	itemB := addMenuItem(t, f.menu, "ItemB", "30.00")

	_, err := f.cartSvc.AddItem(ctx, "s1", itemA.ID)
	require.NoError(t, err)
	_, err = f.cartSvc.AddItem(ctx, "s1", itemA.ID)
	require.NoError(t, err)
	_, err = f.cartSvc.AddItem(ctx, "s1", itemB.ID)
	require.NoError(t, err)

	// Reprice the catalog before checkout; the order must use the cart
	// snapshot, not the new price.
	itemA.Price = decimal.RequireFromString("80.00")
	_, err = f.menu.Update(ctx, *itemA)
	require.NoError(t, err)

	order, err := f.svc.Checkout(ctx, userID, "s1")
	require.NoError(t, err)

	assert.True(t, order.TotalAmount.Equal(decimal.RequireFromString("130.00")), "got %s", order.TotalAmount)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, userID, order.UserID)

	require.Len(t, order.Lines, 2)
	assert.Equal(t, itemA.ID, order.Lines[0].MenuItemID)
	assert.Equal(t, 2, order.Lines[0].Quantity)
	assert.True(t, order.Lines[0].PriceAtTime.Equal(decimal.RequireFromString("50.00")))
	assert.Equal(t, itemB.ID, order.Lines[1].MenuItemID)
	assert.Equal(t, 1, order.Lines[1].Quantity)
	assert.True(t, order.Lines[1].PriceAtTime.Equal(decimal.RequireFromString("30.00")))
}

func TestCheckoutClearsCart(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	item := addMenuItem(t, f.menu, "Coffee", "2.50")
	_, err := f.cartSvc.AddItem(ctx, "s1", item.ID)
	require.NoError(t, err)

	order, err := f.svc.Checkout(ctx, uuid.New(), "s1")
	require.NoError(t, err)

	entries, total, err := f.cartSvc.View(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.True(t, total.IsZero())

	assert.Equal(t, []uuid.UUID{order.ID}, f.notifier.created)
}

func TestCheckoutFailureLeavesCartIntact(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	item := addMenuItem(t, f.menu, "Coffee", "2.50")
	_, err := f.cartSvc.AddItem(ctx, "s1", item.ID)
	require.NoError(t, err)

	f.orders.failCreate = true
	_, err = f.svc.Checkout(ctx, uuid.New(), "s1")
	require.Error(t, err)

	// Nothing persisted, cart untouched, nothing broadcast
	assert.Equal(t, 0, f.orders.count())
	entries, _, err := f.cartSvc.View(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Empty(t, f.notifier.created)
}

func TestConcurrentCheckoutsAreIsolated(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	itemA := addMenuItem(t, f.menu, "ItemA", "50.00")
	itemB := addMenuItem(t, f.menu, "ItemB", "30.00")

	userA, userB := uuid.New(), uuid.New()

	_, err := f.cartSvc.AddItem(ctx, "sessionA", itemA.ID)
	require.NoError(t, err)
	_, err = f.cartSvc.AddItem(ctx, "sessionB", itemB.ID)
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]*models.Order, 2)
	errs := make([]error, 2)
	wg.Add(2)
	go func() {
		defer wg.Done()
		results[0], errs[0] = f.svc.Checkout(ctx, userA, "sessionA")
	}()
	go func() {
		defer wg.Done()
		results[1], errs[1] = f.svc.Checkout(ctx, userB, "sessionB")
	}()
	wg.Wait()

	require.NoError(t, errs[0])
	require.NoError(t, errs[1])
	assert.NotEqual(t, results[0].ID, results[1].ID)

	require.Len(t, results[0].Lines, 1)
	require.Len(t, results[1].Lines, 1)
	assert.Equal(t, itemA.ID, results[0].Lines[0].MenuItemID)
	assert.True(t, results[0].TotalAmount.Equal(decimal.RequireFromString("50.00")))
	assert.Equal(t, itemB.ID, results[1].Lines[0].MenuItemID)
	assert.True(t, results[1].TotalAmount.Equal(decimal.RequireFromString("30.00")))
}

func TestSetStatusUnknownOrder(t *testing.T) {
	f := newOrderFixture(t)

	err := f.svc.SetStatus(context.Background(), uuid.New(), models.OrderStatusDelivered)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	assert.Empty(t, f.notifier.updated)
}

func TestSetStatusEnforcesTransitions(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	item := addMenuItem(t, f.menu, "Coffee", "2.50")
	_, err := f.cartSvc.AddItem(ctx, "s1", item.ID)
	require.NoError(t, err)
	order, err := f.svc.Checkout(ctx, uuid.New(), "s1")
	require.NoError(t, err)

	err = f.svc.SetStatus(ctx, order.ID, models.OrderStatus("shipped"))
	assert.True(t, apperr.IsValidation(err))

	require.NoError(t, f.svc.SetStatus(ctx, order.ID, models.OrderStatusDelivered))

	// Delivered is terminal
	err = f.svc.SetStatus(ctx, order.ID, models.OrderStatusPending)
	assert.ErrorIs(t, err, apperr.ErrInvalidTransition)
	err = f.svc.SetStatus(ctx, order.ID, models.OrderStatusNotDelivered)
	assert.ErrorIs(t, err, apperr.ErrInvalidTransition)

	got, err := f.svc.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusDelivered, got.Status)
}

func TestOrderListsNewestFirst(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()
	userID := uuid.New()

	item := addMenuItem(t, f.menu, "Coffee", "2.50")

	var placed []uuid.UUID
	for i := 0; i < 3; i++ {
		_, err := f.cartSvc.AddItem(ctx, "s1", item.ID)
		require.NoError(t, err)
		order, err := f.svc.Checkout(ctx, userID, "s1")
		require.NoError(t, err)
		placed = append(placed, order.ID)
	}

	mine, err := f.svc.ListForUser(ctx, userID)
	require.NoError(t, err)
	require.Len(t, mine, 3)
	assert.Equal(t, placed[2], mine[0].ID)
	assert.Equal(t, placed[0], mine[2].ID)

	all, err := f.svc.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
