package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go-restaurant-billing/store"
)

// Namespace describes one identifier series: which collection and field hold
// the ids, the fixed prefix, and the zero-padded suffix width.
type Namespace struct {
	Collection string
	Field      string
	Prefix     string
	Width      int
}

var (
	OrderIDs     = Namespace{Collection: "order", Field: "order_id", Prefix: "ORD", Width: 6}
	OrderItemIDs = Namespace{Collection: "orderItem", Field: "order_item_id", Prefix: "ORI", Width: 6}
	BillIDs      = Namespace{Collection: "bill", Field: "bill_id", Prefix: "BIL", Width: 6}
	TableIDs     = Namespace{Collection: "table", Field: "table_id", Prefix: "TBL", Width: 3}
	MenuIDs      = Namespace{Collection: "menu", Field: "menu_id", Prefix: "MNU", Width: 3}
	StaffIDs     = Namespace{Collection: "staff", Field: "staff_id", Prefix: "STF", Width: 3}
)

// IDAllocator hands out the smallest unused positive suffix in a namespace,
// so deleted ids are recycled instead of leaving permanent holes. The caller
// must hold the namespace key lock across NextID and the insert it feeds, or
// two concurrent allocations can compute the same gap.
type IDAllocator struct {
	store store.Store
}

func NewIDAllocator(s store.Store) *IDAllocator {
	return &IDAllocator{store: s}
}

func (a *IDAllocator) NextID(ctx context.Context, ns Namespace) (string, error) {
	var rows []map[string]interface{}
	if err := a.store.FindAll(ctx, ns.Collection, nil, &rows); err != nil {
		return "", storeFailure(err)
	}

	used := make(map[int]bool, len(rows))
	for _, row := range rows {
		id, ok := row[ns.Field].(string)
		if !ok || !strings.HasPrefix(id, ns.Prefix) {
			continue
		}
		n, err := strconv.Atoi(id[len(ns.Prefix):])
		if err != nil || n < 1 {
			continue
		}
		used[n] = true
	}

	next := 1
	for used[next] {
		next++
	}
	return fmt.Sprintf("%s%0*d", ns.Prefix, ns.Width, next), nil
}
