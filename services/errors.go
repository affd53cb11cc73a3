package services

import (
	"errors"
	"fmt"
)

// Error kinds. Every business failure wraps exactly one of these so callers
// can branch on the kind with errors.Is without inspecting messages.
var (
	ErrNotFound             = errors.New("not found")
	ErrInvalidInput         = errors.New("invalid input")
	ErrStateConflict        = errors.New("state conflict")
	ErrDuplicateActiveOrder = errors.New("table already has an active order")
	ErrStoreUnavailable     = errors.New("store unavailable")
)

// Named rule violations. Each wraps its kind, so both
// errors.Is(err, ErrOrderNotActive) and errors.Is(err, ErrStateConflict) hold.
var (
	ErrInvalidStatus           = fmt.Errorf("%w: status must be Vacant, Occupied or Reserved", ErrInvalidInput)
	ErrTableHasActiveOrder     = fmt.Errorf("%w: cannot set to Vacant, table has an active order", ErrStateConflict)
	ErrTableNotAcceptingOrders = fmt.Errorf("%w: orders can only be created for Occupied or Reserved tables", ErrStateConflict)
	ErrStaffNotActive          = fmt.Errorf("%w: staff is not active", ErrStateConflict)
	ErrOrderNotActive          = fmt.Errorf("%w: order is not active", ErrStateConflict)
	ErrInvalidQuantity         = fmt.Errorf("%w: quantity must be at least 1", ErrInvalidInput)
	ErrMenuItemUnavailable     = fmt.Errorf("%w: menu item is not available", ErrStateConflict)
	ErrInvalidPaymentMethod    = fmt.Errorf("%w: payment method must be Cash, Card or E-Wallet", ErrInvalidInput)
	ErrEmptyOrder              = fmt.Errorf("%w: order has no items", ErrStateConflict)
	ErrBillAlreadyExists       = fmt.Errorf("%w: bill already exists for this order", ErrStateConflict)
	ErrHasReferences           = fmt.Errorf("%w: record is referenced by existing orders", ErrStateConflict)
	ErrDuplicateTableNumber    = fmt.Errorf("%w: table number already exists", ErrStateConflict)
	ErrDuplicateEmail          = fmt.Errorf("%w: email already registered", ErrStateConflict)
)

func notFound(entity, id string) error {
	return fmt.Errorf("%w: %s %s", ErrNotFound, entity, id)
}

// storeFailure marks an infrastructure-level error; it is propagated to the
// caller unchanged, the services never retry.
func storeFailure(err error) error {
	return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
}
