package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"go-restaurant-billing/models"
	"go-restaurant-billing/store"
)

const (
	PaymentUnpaid = "Unpaid"
	PaymentPaid   = "Paid"
)

func validPaymentMethod(method string) bool {
	return method == "Cash" || method == "Card" || method == "E-Wallet"
}

// BillingService derives bills from active orders and settles them. Paying a
// bill completes its order and vacates its table; the three writes run as one
// serialized unit under the table, order and bill key locks.
type BillingService struct {
	store  store.Store
	ids    *IDAllocator
	locks  *KeyMutex
	orders *OrderService
	tables *TableService
	staff  *StaffService
}

func NewBillingService(s store.Store, ids *IDAllocator, locks *KeyMutex,
	orders *OrderService, tables *TableService, staff *StaffService) *BillingService {
	return &BillingService{store: s, ids: ids, locks: locks, orders: orders, tables: tables, staff: staff}
}

// Generate creates the one bill an order may ever have, snapshotting the
// order's total at this moment. The order must be Active and non-empty.
func (b *BillingService) Generate(ctx context.Context, orderID, staffID, method string) (string, error) {
	if !validPaymentMethod(method) {
		return "", fmt.Errorf("%w (got %q)", ErrInvalidPaymentMethod, method)
	}

	unlock := b.locks.Lock(orderKey(orderID))
	defer unlock()

	order, err := b.orders.get(ctx, orderID)
	if err != nil {
		return "", err
	}
	if order.Status != OrderActive {
		return "", ErrOrderNotActive
	}
	if order.Total_amount <= 0 {
		return "", ErrEmptyOrder
	}
	count, err := b.store.Count(ctx, "bill", store.Filter{"order_id": orderID})
	if err != nil {
		return "", storeFailure(err)
	}
	if count > 0 {
		return "", ErrBillAlreadyExists
	}
	if err := b.staff.requireActive(ctx, staffID); err != nil {
		return "", err
	}

	unlockIDs := b.locks.Lock(idKey(BillIDs.Collection))
	defer unlockIDs()
	billId, err := b.ids.NextID(ctx, BillIDs)
	if err != nil {
		return "", err
	}
	status := PaymentUnpaid
	now, _ := time.Parse(time.RFC3339, time.Now().Format(time.RFC3339))
	bill := models.Bill{
		ID:             primitive.NewObjectID(),
		Bill_id:        billId,
		Order_id:       orderID,
		Staff_id:       staffID,
		Total:          order.Total_amount,
		Payment_method: &method,
		Payment_status: &status,
		Bill_date:      now,
		Created_at:     now,
		Updated_at:     now,
	}
	if err := b.store.Insert(ctx, "bill", bill); err != nil {
		return "", storeFailure(err)
	}
	return billId, nil
}

func billPaid(bill *models.Bill) bool {
	return bill.Payment_status != nil && *bill.Payment_status == PaymentPaid
}

// ProcessPayment marks the bill Paid, completes its order and vacates its
// table together. Paying an already-paid bill is a no-op.
func (b *BillingService) ProcessPayment(ctx context.Context, billID string) error {
	pre, err := b.Get(ctx, billID)
	if err != nil {
		return err
	}
	if billPaid(pre) {
		return nil
	}
	order, err := b.orders.get(ctx, pre.Order_id)
	if err != nil {
		return err
	}

	unlockTable := b.locks.Lock(tableKey(*order.Table_id))
	defer unlockTable()
	unlockOrder := b.locks.Lock(orderKey(pre.Order_id))
	defer unlockOrder()
	unlockBill := b.locks.Lock(billKey(billID))
	defer unlockBill()

	// Re-read under the locks: another terminal may have settled the bill
	// or cancelled the order between the first read and here.
	bill, err := b.Get(ctx, billID)
	if err != nil {
		return err
	}
	if billPaid(bill) {
		return nil
	}
	order, err = b.orders.get(ctx, bill.Order_id)
	if err != nil {
		return err
	}
	if order.Status != OrderActive {
		return ErrOrderNotActive
	}

	updated, _ := time.Parse(time.RFC3339, time.Now().Format(time.RFC3339))
	if _, err := b.store.UpdateOne(ctx, "bill",
		store.Filter{"bill_id": billID},
		store.Fields{"payment_status": PaymentPaid, "updated_at": updated}); err != nil {
		return storeFailure(err)
	}
	if _, err := b.store.UpdateOne(ctx, "order",
		store.Filter{"order_id": bill.Order_id},
		store.Fields{"status": OrderCompleted, "updated_at": updated}); err != nil {
		return storeFailure(err)
	}
	return b.tables.forceStatus(ctx, *order.Table_id, TableVacant)
}

func (b *BillingService) Get(ctx context.Context, billID string) (*models.Bill, error) {
	var bill models.Bill
	err := b.store.FindOne(ctx, "bill", store.Filter{"bill_id": billID}, &bill)
	if errors.Is(err, store.ErrNoDocuments) {
		return nil, notFound("bill", billID)
	}
	if err != nil {
		return nil, storeFailure(err)
	}
	return &bill, nil
}

// BillForOrder returns the id of the order's bill, or "".
func (b *BillingService) BillForOrder(ctx context.Context, orderID string) (string, error) {
	var bill models.Bill
	err := b.store.FindOne(ctx, "bill", store.Filter{"order_id": orderID}, &bill)
	if errors.Is(err, store.ErrNoDocuments) {
		return "", nil
	}
	if err != nil {
		return "", storeFailure(err)
	}
	return bill.Bill_id, nil
}

func (b *BillingService) List(ctx context.Context) ([]models.Bill, error) {
	var bills []models.Bill
	if err := b.store.FindAll(ctx, "bill", nil, &bills); err != nil {
		return nil, storeFailure(err)
	}
	return bills, nil
}

// ListUnpaid returns the open bills and the outstanding sum across them.
func (b *BillingService) ListUnpaid(ctx context.Context) ([]models.Bill, float64, error) {
	var bills []models.Bill
	if err := b.store.FindAll(ctx, "bill", store.Filter{"payment_status": PaymentUnpaid}, &bills); err != nil {
		return nil, 0, storeFailure(err)
	}
	var outstanding float64
	for _, bill := range bills {
		outstanding += bill.Total
	}
	return bills, toFixed(outstanding, 2), nil
}

// DailySales sums the Paid bills dated on the given day (YYYY-MM-DD).
func (b *BillingService) DailySales(ctx context.Context, date string) (float64, error) {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return 0, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidInput)
	}
	var bills []models.Bill
	if err := b.store.FindAll(ctx, "bill", store.Filter{"payment_status": PaymentPaid}, &bills); err != nil {
		return 0, storeFailure(err)
	}
	var total float64
	for _, bill := range bills {
		billDay := bill.Bill_date.UTC()
		if billDay.Year() == day.Year() && billDay.YearDay() == day.YearDay() {
			total += bill.Total
		}
	}
	return toFixed(total, 2), nil
}
