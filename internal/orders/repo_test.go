package orders

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/luisrojasb/doorline-backend/pkg/db/models"
	"github.com/luisrojasb/doorline-backend/pkg/enums"
	"github.com/luisrojasb/doorline-backend/pkg/pagination"
)

func setupOrdersTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	dealers := `
CREATE TABLE IF NOT EXISTS dealers (
  id TEXT PRIMARY KEY,
  distributor_id TEXT NOT NULL,
  name TEXT NOT NULL,
  phone TEXT,
  city TEXT,
  active INTEGER NOT NULL DEFAULT 1,
  deactivated_at DATETIME,
  created_at DATETIME,
  updated_at DATETIME
);`
	orders := `
CREATE TABLE IF NOT EXISTS orders (
  id TEXT PRIMARY KEY,
  dealer_id TEXT NOT NULL,
  status TEXT NOT NULL DEFAULT 'received',
  created_at DATETIME,
  updated_at DATETIME
);`
	designs := `
CREATE TABLE IF NOT EXISTS designs (
  id TEXT PRIMARY KEY,
  door_type_id TEXT NOT NULL,
  name TEXT NOT NULL,
  image_url TEXT NOT NULL DEFAULT '',
  created_at DATETIME,
  updated_at DATETIME
);`
	orderItems := `
CREATE TABLE IF NOT EXISTS order_items (
  order_id TEXT NOT NULL,
  line_index INTEGER NOT NULL,
  design_name_snapshot TEXT NOT NULL,
  design_image_snapshot TEXT NOT NULL,
  color_name_snapshot TEXT NOT NULL,
  width REAL NOT NULL,
  height REAL NOT NULL,
  thickness TEXT NOT NULL,
  quantity INTEGER NOT NULL,
  has_lock INTEGER NOT NULL DEFAULT 0,
  has_vent INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME,
  PRIMARY KEY (order_id, line_index)
);`
	require.NoError(t, db.Exec(dealers).Error)
	require.NoError(t, db.Exec(designs).Error)
	require.NoError(t, db.Exec(orders).Error)
	require.NoError(t, db.Exec(orderItems).Error)
	return db
}

func newDealer(t *testing.T, db *gorm.DB, name string) *models.Dealer {
	t.Helper()

	dealer := &models.Dealer{
		ID:            uuid.New(),
		DistributorID: uuid.New(),
		Name:          name,
		Active:        true,
	}
	require.NoError(t, db.Create(dealer).Error)
	return dealer
}

func createTestOrder(t *testing.T, db *gorm.DB, dealer *models.Dealer, status enums.OrderStatus, created time.Time, quantities ...int) *models.Order {
	t.Helper()

	order := &models.Order{
		ID:        uuid.New(),
		DealerID:  dealer.ID,
		Status:    status,
		CreatedAt: created,
		UpdatedAt: created,
	}
	require.NoError(t, db.Create(order).Error)

	for i, qty := range quantities {
		item := &models.OrderItem{
			OrderID:             order.ID,
			LineIndex:           i,
			DesignNameSnapshot:  "D-101",
			DesignImageSnapshot: "https://cdn.example.com/designs/d-101.png",
			ColorNameSnapshot:   "Walnut",
			Width:               90,
			Height:              210,
			Thickness:           enums.Thickness30mm,
			Quantity:            qty,
			CreatedAt:           created,
		}
		require.NoError(t, db.Create(item).Error)
	}
	return order
}

func TestRepositoryCreateAndFindOrder(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)

	dealer := newDealer(t, db, "Dealer Find")
	created, err := repo.CreateOrder(context.Background(), &models.Order{
		ID:       uuid.New(),
		DealerID: dealer.ID,
		Status:   enums.OrderStatusReceived,
	})
	require.NoError(t, err)

	items := []models.OrderItem{
		{OrderID: created.ID, LineIndex: 1, DesignNameSnapshot: "D-200", DesignImageSnapshot: "img", ColorNameSnapshot: "Oak", Width: 80, Height: 200, Thickness: enums.Thickness32mm, Quantity: 1},
		{OrderID: created.ID, LineIndex: 0, DesignNameSnapshot: "D-101", DesignImageSnapshot: "img", ColorNameSnapshot: "Walnut", Width: 90, Height: 210, Thickness: enums.Thickness30mm, Quantity: 2},
	}
	require.NoError(t, repo.CreateOrderItems(context.Background(), items))

	found, err := repo.FindOrder(context.Background(), created.ID)
	require.NoError(t, err)
	require.Len(t, found.Items, 2)
	assert.Equal(t, "D-101", found.Items[0].DesignNameSnapshot)
	assert.Equal(t, "D-200", found.Items[1].DesignNameSnapshot)
	assert.Equal(t, enums.OrderStatusReceived, found.Status)

	_, err = repo.FindOrder(context.Background(), uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepositoryOrderItemSnapshotsSurviveCatalogEdits(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)

	design := &models.Design{
		ID:         uuid.New(),
		DoorTypeID: uuid.New(),
		Name:       "D-101",
		ImageURL:   "https://cdn.example.com/designs/d-101.png",
	}
	require.NoError(t, db.Create(design).Error)

	dealer := newDealer(t, db, "Dealer Snapshot")
	order := createTestOrder(t, db, dealer, enums.OrderStatusReceived, time.Now().UTC(), 2)

	// Catalog edits after placement must not reach through to stored items.
	require.NoError(t, db.Model(&models.Design{}).Where("id = ?", design.ID).Updates(map[string]any{
		"name":      "D-101 Revised",
		"image_url": "https://cdn.example.com/designs/d-101-v2.png",
	}).Error)

	found, err := repo.FindOrder(context.Background(), order.ID)
	require.NoError(t, err)
	require.Len(t, found.Items, 1)
	assert.Equal(t, "D-101", found.Items[0].DesignNameSnapshot)
	assert.Equal(t, "https://cdn.example.com/designs/d-101.png", found.Items[0].DesignImageSnapshot)
	assert.Equal(t, "Walnut", found.Items[0].ColorNameSnapshot)
}

func TestRepositoryUpdateOrderStatusCompareAndSwap(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)

	dealer := newDealer(t, db, "Dealer CAS")
	order := createTestOrder(t, db, dealer, enums.OrderStatusReceived, time.Now().UTC(), 1)

	swapped, err := repo.UpdateOrderStatus(context.Background(), order.ID, enums.OrderStatusReceived, enums.OrderStatusProduction)
	require.NoError(t, err)
	assert.True(t, swapped)

	// A second writer holding the stale status loses the swap.
	swapped, err = repo.UpdateOrderStatus(context.Background(), order.ID, enums.OrderStatusReceived, enums.OrderStatusCancelled)
	require.NoError(t, err)
	assert.False(t, swapped)

	found, err := repo.FindOrder(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.OrderStatusProduction, found.Status)
}

func TestRepositoryListOrders_pagination(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)

	dealer := newDealer(t, db, "Dealer Pages")
	now := time.Now().UTC()
	older := createTestOrder(t, db, dealer, enums.OrderStatusReceived, now.Add(-time.Hour), 2)
	newer := createTestOrder(t, db, dealer, enums.OrderStatusProduction, now, 3, 1)

	filters := ListFilters{DealerID: &dealer.ID}
	list, err := repo.ListOrders(context.Background(), pagination.Params{Limit: 1}, filters)
	require.NoError(t, err)
	require.Len(t, list.Orders, 1)
	assert.Equal(t, newer.ID, list.Orders[0].ID)
	assert.Equal(t, 4, list.Orders[0].TotalItems)
	assert.NotEmpty(t, list.NextCursor)

	second, err := repo.ListOrders(context.Background(), pagination.Params{Limit: 1, Cursor: list.NextCursor}, filters)
	require.NoError(t, err)
	require.Len(t, second.Orders, 1)
	assert.Equal(t, older.ID, second.Orders[0].ID)
	assert.Equal(t, 2, second.Orders[0].TotalItems)
	assert.Empty(t, second.NextCursor)
}

func TestRepositoryListOrders_statusClassFilter(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)

	dealer := newDealer(t, db, "Dealer Filter")
	now := time.Now().UTC()
	createTestOrder(t, db, dealer, enums.OrderStatusReceived, now.Add(-3*time.Minute), 1)
	createTestOrder(t, db, dealer, enums.OrderStatusReady, now.Add(-2*time.Minute), 1)
	dispatched := createTestOrder(t, db, dealer, enums.OrderStatusDispatched, now.Add(-time.Minute), 1)
	createTestOrder(t, db, dealer, enums.OrderStatusCancelled, now, 1)

	pending, err := repo.ListOrders(context.Background(), pagination.Params{}, ListFilters{DealerID: &dealer.ID, StatusClass: enums.StatusFilterPending})
	require.NoError(t, err)
	require.Len(t, pending.Orders, 2)
	for _, order := range pending.Orders {
		assert.NotEqual(t, enums.OrderStatusDispatched, order.Status)
		assert.NotEqual(t, enums.OrderStatusCancelled, order.Status)
	}

	completed, err := repo.ListOrders(context.Background(), pagination.Params{}, ListFilters{DealerID: &dealer.ID, StatusClass: enums.StatusFilterCompleted})
	require.NoError(t, err)
	require.Len(t, completed.Orders, 1)
	assert.Equal(t, dispatched.ID, completed.Orders[0].ID)

	all, err := repo.ListOrders(context.Background(), pagination.Params{}, ListFilters{DealerID: &dealer.ID, StatusClass: enums.StatusFilterAll})
	require.NoError(t, err)
	assert.Len(t, all.Orders, 4)
}

func TestRepositoryGroupByDealer(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)

	dealerA := newDealer(t, db, "Dealer A")
	dealerB := newDealer(t, db, "Dealer B")
	now := time.Now().UTC()
	createTestOrder(t, db, dealerA, enums.OrderStatusReceived, now.Add(-2*time.Minute), 2, 1)
	createTestOrder(t, db, dealerA, enums.OrderStatusProduction, now.Add(-time.Minute), 2)
	createTestOrder(t, db, dealerB, enums.OrderStatusReceived, now, 5)

	groups, err := repo.GroupByDealer(context.Background(), ListFilters{})
	require.NoError(t, err)
	require.Len(t, groups, 2)

	byID := map[uuid.UUID]DealerGroup{}
	for _, group := range groups {
		byID[group.DealerID] = group
	}
	assert.Equal(t, 2, byID[dealerA.ID].TotalOrders)
	assert.Equal(t, 5, byID[dealerA.ID].TotalItems)
	assert.Equal(t, "Dealer A", byID[dealerA.ID].DealerName)
	assert.Equal(t, 1, byID[dealerB.ID].TotalOrders)
	assert.Equal(t, 5, byID[dealerB.ID].TotalItems)
}

func TestRepositoryGroupByDesignAndColorIncludeAllStatuses(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)

	dealer := newDealer(t, db, "Dealer Groups")
	now := time.Now().UTC()

	active := createTestOrder(t, db, dealer, enums.OrderStatusReceived, now.Add(-time.Minute))
	require.NoError(t, db.Create(&models.OrderItem{
		OrderID: active.ID, LineIndex: 0,
		DesignNameSnapshot: "D-101", DesignImageSnapshot: "img", ColorNameSnapshot: "Walnut",
		Width: 90, Height: 210, Thickness: enums.Thickness30mm, Quantity: 3,
	}).Error)

	cancelled := createTestOrder(t, db, dealer, enums.OrderStatusCancelled, now)
	require.NoError(t, db.Create(&models.OrderItem{
		OrderID: cancelled.ID, LineIndex: 0,
		DesignNameSnapshot: "D-101", DesignImageSnapshot: "img", ColorNameSnapshot: "Oak",
		Width: 80, Height: 200, Thickness: enums.Thickness32mm, Quantity: 2,
	}).Error)

	designs, err := repo.GroupByDesign(context.Background())
	require.NoError(t, err)
	require.Len(t, designs, 1)
	assert.Equal(t, "D-101", designs[0].DesignName)
	assert.Equal(t, 5, designs[0].TotalItems)

	colors, err := repo.GroupByColor(context.Background())
	require.NoError(t, err)
	require.Len(t, colors, 2)
	byColor := map[string]int{}
	for _, group := range colors {
		byColor[group.ColorName] = group.TotalItems
	}
	assert.Equal(t, 3, byColor["Walnut"])
	assert.Equal(t, 2, byColor["Oak"])
}
