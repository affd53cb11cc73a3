package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"go-restaurant-billing/models"
	"go-restaurant-billing/store"
)

const (
	TableVacant   = "Vacant"
	TableOccupied = "Occupied"
	TableReserved = "Reserved"
)

// TableService governs table records and their occupancy state machine:
// Vacant <-> Occupied <-> Reserved, with Vacant refused while the table has
// an active order.
type TableService struct {
	store store.Store
	ids   *IDAllocator
	locks *KeyMutex
}

func NewTableService(s store.Store, ids *IDAllocator, locks *KeyMutex) *TableService {
	return &TableService{store: s, ids: ids, locks: locks}
}

// NormalizeTableStatus accepts any casing of the three table statuses and
// returns the canonical form.
func NormalizeTableStatus(status string) (string, error) {
	switch strings.ToLower(status) {
	case "vacant":
		return TableVacant, nil
	case "occupied":
		return TableOccupied, nil
	case "reserved":
		return TableReserved, nil
	default:
		return "", fmt.Errorf("%w (got %q)", ErrInvalidStatus, status)
	}
}

func (t *TableService) Add(ctx context.Context, tableNumber string, capacity int) (string, error) {
	if capacity < 1 {
		return "", fmt.Errorf("%w: capacity must be at least 1", ErrInvalidInput)
	}

	unlock := t.locks.Lock(idKey(TableIDs.Collection))
	defer unlock()

	count, err := t.store.Count(ctx, "table", store.Filter{"table_number": tableNumber})
	if err != nil {
		return "", storeFailure(err)
	}
	if count > 0 {
		return "", ErrDuplicateTableNumber
	}

	tableId, err := t.ids.NextID(ctx, TableIDs)
	if err != nil {
		return "", err
	}
	now, _ := time.Parse(time.RFC3339, time.Now().Format(time.RFC3339))
	table := models.Table{
		ID:           primitive.NewObjectID(),
		Table_id:     tableId,
		Table_number: &tableNumber,
		Capacity:     &capacity,
		Status:       TableVacant,
		Created_at:   now,
		Updated_at:   now,
	}
	if err := t.store.Insert(ctx, "table", table); err != nil {
		return "", storeFailure(err)
	}
	return tableId, nil
}

// SetStatus is the staff/admin directed transition. Vacant is refused while
// an active order references the table; the automatic transitions go through
// forceStatus instead.
func (t *TableService) SetStatus(ctx context.Context, tableID, status string) error {
	normalized, err := NormalizeTableStatus(status)
	if err != nil {
		return err
	}

	unlock := t.locks.Lock(tableKey(tableID))
	defer unlock()

	if _, err := t.Get(ctx, tableID); err != nil {
		return err
	}
	if normalized == TableVacant {
		active, err := t.HasActiveOrder(ctx, tableID)
		if err != nil {
			return err
		}
		if active {
			return ErrTableHasActiveOrder
		}
	}
	return t.forceStatus(ctx, tableID, normalized)
}

// forceStatus persists a table status without the active-order guard. The
// order ledger and billing processor use it for the automatic transitions
// (occupy on order creation, vacate on cancellation and payment).
func (t *TableService) forceStatus(ctx context.Context, tableID, status string) error {
	updated, _ := time.Parse(time.RFC3339, time.Now().Format(time.RFC3339))
	matched, err := t.store.UpdateOne(ctx, "table",
		store.Filter{"table_id": tableID},
		store.Fields{"status": status, "updated_at": updated})
	if err != nil {
		return storeFailure(err)
	}
	if matched == 0 {
		return notFound("table", tableID)
	}
	return nil
}

func (t *TableService) UpdateCapacity(ctx context.Context, tableID string, capacity int) error {
	if capacity < 1 {
		return fmt.Errorf("%w: capacity must be at least 1", ErrInvalidInput)
	}
	updated, _ := time.Parse(time.RFC3339, time.Now().Format(time.RFC3339))
	matched, err := t.store.UpdateOne(ctx, "table",
		store.Filter{"table_id": tableID},
		store.Fields{"capacity": capacity, "updated_at": updated})
	if err != nil {
		return storeFailure(err)
	}
	if matched == 0 {
		return notFound("table", tableID)
	}
	return nil
}

// Delete removes a table that no order has ever referenced.
func (t *TableService) Delete(ctx context.Context, tableID string) error {
	unlock := t.locks.Lock(tableKey(tableID))
	defer unlock()

	count, err := t.store.Count(ctx, "order", store.Filter{"table_id": tableID})
	if err != nil {
		return storeFailure(err)
	}
	if count > 0 {
		return fmt.Errorf("%w: table has existing orders", ErrHasReferences)
	}
	deleted, err := t.store.DeleteOne(ctx, "table", store.Filter{"table_id": tableID})
	if err != nil {
		return storeFailure(err)
	}
	if deleted == 0 {
		return notFound("table", tableID)
	}
	return nil
}

// CanAcceptOrder reports whether orders may be opened on the table. Unknown
// tables simply cannot accept orders.
func (t *TableService) CanAcceptOrder(ctx context.Context, tableID string) (bool, error) {
	status, err := t.Status(ctx, tableID)
	if err != nil {
		return false, err
	}
	return status == TableOccupied || status == TableReserved, nil
}

// Status returns the table status, or "" when the table does not exist.
func (t *TableService) Status(ctx context.Context, tableID string) (string, error) {
	var table models.Table
	err := t.store.FindOne(ctx, "table", store.Filter{"table_id": tableID}, &table)
	if errors.Is(err, store.ErrNoDocuments) {
		return "", nil
	}
	if err != nil {
		return "", storeFailure(err)
	}
	return table.Status, nil
}

func (t *TableService) HasActiveOrder(ctx context.Context, tableID string) (bool, error) {
	count, err := t.store.Count(ctx, "order",
		store.Filter{"table_id": tableID, "status": OrderActive})
	if err != nil {
		return false, storeFailure(err)
	}
	return count > 0, nil
}

func (t *TableService) Get(ctx context.Context, tableID string) (*models.Table, error) {
	var table models.Table
	err := t.store.FindOne(ctx, "table", store.Filter{"table_id": tableID}, &table)
	if errors.Is(err, store.ErrNoDocuments) {
		return nil, notFound("table", tableID)
	}
	if err != nil {
		return nil, storeFailure(err)
	}
	return &table, nil
}

func (t *TableService) List(ctx context.Context) ([]models.Table, error) {
	var tables []models.Table
	if err := t.store.FindAll(ctx, "table", nil, &tables); err != nil {
		return nil, storeFailure(err)
	}
	return tables, nil
}

func (t *TableService) ListByStatus(ctx context.Context, status string) ([]models.Table, error) {
	normalized, err := NormalizeTableStatus(status)
	if err != nil {
		return nil, err
	}
	var tables []models.Table
	if err := t.store.FindAll(ctx, "table", store.Filter{"status": normalized}, &tables); err != nil {
		return nil, storeFailure(err)
	}
	return tables, nil
}
