package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"go-restaurant-billing/models"
	"go-restaurant-billing/store"
)

// testEnv wires the full service graph onto an in-memory store, the same way
// controllers.Init does against MongoDB.
type testEnv struct {
	store   store.Store
	tables  *TableService
	staff   *StaffService
	menu    *MenuService
	orders  *OrderService
	billing *BillingService
}

func newTestEnv() *testEnv {
	s := store.NewMemory()
	locks := NewKeyMutex()
	ids := NewIDAllocator(s)
	tables := NewTableService(s, ids, locks)
	staff := NewStaffService(s, ids, locks)
	menu := NewMenuService(s, ids, locks)
	orders := NewOrderService(s, ids, locks, tables, staff, menu)
	billing := NewBillingService(s, ids, locks, orders, tables, staff)
	return &testEnv{store: s, tables: tables, staff: staff, menu: menu, orders: orders, billing: billing}
}

// seedStaff inserts a staff record directly, skipping the bcrypt hashing that
// StaffService.Add performs.
func (e *testEnv) seedStaff(t *testing.T, staffID, status string) {
	t.Helper()
	name := "Test Waiter"
	email := staffID + "@example.com"
	address := "1 Test Street"
	password := "not-a-real-hash"
	now, _ := time.Parse(time.RFC3339, time.Now().Format(time.RFC3339))
	err := e.store.Insert(context.Background(), "staff", models.Staff{
		ID:         primitive.NewObjectID(),
		Staff_id:   staffID,
		Name:       &name,
		Email:      &email,
		Address:    &address,
		Password:   &password,
		Status:     status,
		Created_at: now,
		Updated_at: now,
	})
	require.NoError(t, err)
}

// seedOccupiedTable creates a table and marks it Occupied, returning its id.
func (e *testEnv) seedOccupiedTable(t *testing.T, tableNumber string) string {
	t.Helper()
	ctx := context.Background()
	tableId, err := e.tables.Add(ctx, tableNumber, 4)
	require.NoError(t, err)
	require.NoError(t, e.tables.SetStatus(ctx, tableId, TableOccupied))
	return tableId
}

// seedMenu adds an available menu item and returns its id.
func (e *testEnv) seedMenu(t *testing.T, name string, price float64) string {
	t.Helper()
	menuId, err := e.menu.Add(context.Background(), name, price, "Food")
	require.NoError(t, err)
	return menuId
}
