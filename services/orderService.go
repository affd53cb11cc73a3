package services

import (
	"context"
	"errors"
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"go-restaurant-billing/models"
	"go-restaurant-billing/store"
)

const (
	OrderActive    = "Active"
	OrderCompleted = "Completed"
	OrderCancelled = "Cancelled"
)

// OrderService is the order ledger. It owns order creation, line-item
// mutation and cancellation, and keeps total_amount equal to the sum of the
// order's line totals at all times.
type OrderService struct {
	store  store.Store
	ids    *IDAllocator
	locks  *KeyMutex
	tables *TableService
	staff  *StaffService
	menu   *MenuService
}

func NewOrderService(s store.Store, ids *IDAllocator, locks *KeyMutex,
	tables *TableService, staff *StaffService, menu *MenuService) *OrderService {
	return &OrderService{store: s, ids: ids, locks: locks, tables: tables, staff: staff, menu: menu}
}

func toFixed(num float64, precision int) float64 {
	output := math.Pow(10, float64(precision))
	return math.Round(num*output) / output
}

// Create opens an order on an Occupied or Reserved table for an active staff
// member. At most one Active order may exist per table; the whole
// check-then-insert sequence runs under the table key lock. A Reserved table
// becomes Occupied once the order exists.
func (o *OrderService) Create(ctx context.Context, tableID, staffID string) (string, error) {
	unlockTable := o.locks.Lock(tableKey(tableID))
	defer unlockTable()

	table, err := o.tables.Get(ctx, tableID)
	if err != nil {
		return "", err
	}
	if table.Status != TableOccupied && table.Status != TableReserved {
		return "", ErrTableNotAcceptingOrders
	}
	active, err := o.tables.HasActiveOrder(ctx, tableID)
	if err != nil {
		return "", err
	}
	if active {
		return "", ErrDuplicateActiveOrder
	}
	if err := o.staff.requireActive(ctx, staffID); err != nil {
		return "", err
	}

	unlockIDs := o.locks.Lock(idKey(OrderIDs.Collection))
	defer unlockIDs()
	orderId, err := o.ids.NextID(ctx, OrderIDs)
	if err != nil {
		return "", err
	}
	now, _ := time.Parse(time.RFC3339, time.Now().Format(time.RFC3339))
	order := models.Order{
		ID:           primitive.NewObjectID(),
		Order_id:     orderId,
		Table_id:     &tableID,
		Staff_id:     &staffID,
		Total_amount: 0,
		Status:       OrderActive,
		Order_date:   now,
		Created_at:   now,
		Updated_at:   now,
	}
	if err := o.store.Insert(ctx, "order", order); err != nil {
		return "", storeFailure(err)
	}

	if err := o.tables.forceStatus(ctx, tableID, TableOccupied); err != nil {
		return "", err
	}
	return orderId, nil
}

// AddItem snapshots the menu item's current price, inserts the line and
// recomputes the order total from all of its lines. Quantity changes are
// modeled as remove+add; lines are never updated in place.
func (o *OrderService) AddItem(ctx context.Context, orderID, menuID string, quantity int) (string, error) {
	if quantity < 1 {
		return "", ErrInvalidQuantity
	}

	unlock := o.locks.Lock(orderKey(orderID))
	defer unlock()

	order, err := o.get(ctx, orderID)
	if err != nil {
		return "", err
	}
	if order.Status != OrderActive {
		return "", ErrOrderNotActive
	}

	availability, err := o.menu.Availability(ctx, menuID)
	if err != nil {
		return "", err
	}
	if availability != MenuAvailable {
		return "", ErrMenuItemUnavailable
	}
	price, err := o.menu.Price(ctx, menuID)
	if err != nil {
		return "", err
	}

	unitPrice := toFixed(price, 2)
	total := toFixed(unitPrice*float64(quantity), 2)

	unlockIDs := o.locks.Lock(idKey(OrderItemIDs.Collection))
	orderItemId, err := o.ids.NextID(ctx, OrderItemIDs)
	if err != nil {
		unlockIDs()
		return "", err
	}
	now, _ := time.Parse(time.RFC3339, time.Now().Format(time.RFC3339))
	item := models.OrderItem{
		ID:            primitive.NewObjectID(),
		Order_item_id: orderItemId,
		Order_id:      orderID,
		Menu_id:       &menuID,
		Quantity:      &quantity,
		Unit_price:    &unitPrice,
		Total:         total,
		Created_at:    now,
		Updated_at:    now,
	}
	err = o.store.Insert(ctx, "orderItem", item)
	unlockIDs()
	if err != nil {
		return "", storeFailure(err)
	}

	if err := o.recomputeTotal(ctx, orderID); err != nil {
		return "", err
	}
	return orderItemId, nil
}

// RemoveItem deletes a line from its still-active order and recomputes the
// order total.
func (o *OrderService) RemoveItem(ctx context.Context, orderItemID string) error {
	var item models.OrderItem
	err := o.store.FindOne(ctx, "orderItem", store.Filter{"order_item_id": orderItemID}, &item)
	if errors.Is(err, store.ErrNoDocuments) {
		return notFound("order item", orderItemID)
	}
	if err != nil {
		return storeFailure(err)
	}

	unlock := o.locks.Lock(orderKey(item.Order_id))
	defer unlock()

	order, err := o.get(ctx, item.Order_id)
	if err != nil {
		return err
	}
	if order.Status != OrderActive {
		return ErrOrderNotActive
	}

	deleted, err := o.store.DeleteOne(ctx, "orderItem", store.Filter{"order_item_id": orderItemID})
	if err != nil {
		return storeFailure(err)
	}
	if deleted == 0 {
		return notFound("order item", orderItemID)
	}
	return o.recomputeTotal(ctx, item.Order_id)
}

// Cancel discards an active order and vacates its table. Cancelled is
// terminal; the order keeps its lines for history but cannot be modified.
func (o *OrderService) Cancel(ctx context.Context, orderID string) error {
	pre, err := o.get(ctx, orderID)
	if err != nil {
		return err
	}

	unlockTable := o.locks.Lock(tableKey(*pre.Table_id))
	defer unlockTable()
	unlockOrder := o.locks.Lock(orderKey(orderID))
	defer unlockOrder()

	order, err := o.get(ctx, orderID)
	if err != nil {
		return err
	}
	if order.Status != OrderActive {
		return ErrOrderNotActive
	}

	updated, _ := time.Parse(time.RFC3339, time.Now().Format(time.RFC3339))
	if _, err := o.store.UpdateOne(ctx, "order",
		store.Filter{"order_id": orderID},
		store.Fields{"status": OrderCancelled, "updated_at": updated}); err != nil {
		return storeFailure(err)
	}
	return o.tables.forceStatus(ctx, *order.Table_id, TableVacant)
}

// recomputeTotal persists the sum of the order's current line totals. The
// total is always rebuilt from the lines rather than adjusted incrementally,
// so rounding drift cannot accumulate.
func (o *OrderService) recomputeTotal(ctx context.Context, orderID string) error {
	var items []models.OrderItem
	if err := o.store.FindAll(ctx, "orderItem", store.Filter{"order_id": orderID}, &items); err != nil {
		return storeFailure(err)
	}
	var sum float64
	for _, item := range items {
		sum += item.Total
	}
	updated, _ := time.Parse(time.RFC3339, time.Now().Format(time.RFC3339))
	if _, err := o.store.UpdateOne(ctx, "order",
		store.Filter{"order_id": orderID},
		store.Fields{"total_amount": toFixed(sum, 2), "updated_at": updated}); err != nil {
		return storeFailure(err)
	}
	return nil
}

func (o *OrderService) get(ctx context.Context, orderID string) (*models.Order, error) {
	var order models.Order
	err := o.store.FindOne(ctx, "order", store.Filter{"order_id": orderID}, &order)
	if errors.Is(err, store.ErrNoDocuments) {
		return nil, notFound("order", orderID)
	}
	if err != nil {
		return nil, storeFailure(err)
	}
	return &order, nil
}

// Get returns the order together with its lines.
func (o *OrderService) Get(ctx context.Context, orderID string) (*models.Order, []models.OrderItem, error) {
	order, err := o.get(ctx, orderID)
	if err != nil {
		return nil, nil, err
	}
	var items []models.OrderItem
	if err := o.store.FindAll(ctx, "orderItem", store.Filter{"order_id": orderID}, &items); err != nil {
		return nil, nil, storeFailure(err)
	}
	return order, items, nil
}

// Total returns the order's running total, or 0 for an unknown order.
func (o *OrderService) Total(ctx context.Context, orderID string) (float64, error) {
	order, err := o.get(ctx, orderID)
	if errors.Is(err, ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return order.Total_amount, nil
}

// IsActive reports whether the order exists and is Active.
func (o *OrderService) IsActive(ctx context.Context, orderID string) (bool, error) {
	order, err := o.get(ctx, orderID)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return order.Status == OrderActive, nil
}

// ActiveOrderForTable returns the id of the table's Active order, or "".
func (o *OrderService) ActiveOrderForTable(ctx context.Context, tableID string) (string, error) {
	var order models.Order
	err := o.store.FindOne(ctx, "order",
		store.Filter{"table_id": tableID, "status": OrderActive}, &order)
	if errors.Is(err, store.ErrNoDocuments) {
		return "", nil
	}
	if err != nil {
		return "", storeFailure(err)
	}
	return order.Order_id, nil
}

func (o *OrderService) ListActive(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	if err := o.store.FindAll(ctx, "order", store.Filter{"status": OrderActive}, &orders); err != nil {
		return nil, storeFailure(err)
	}
	return orders, nil
}

func (o *OrderService) List(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	if err := o.store.FindAll(ctx, "order", nil, &orders); err != nil {
		return nil, storeFailure(err)
	}
	return orders, nil
}
