package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator"

	"go-restaurant-billing/services"
	"go-restaurant-billing/store"
)

var validate = validator.New()

var (
	tableService   *services.TableService
	staffService   *services.StaffService
	menuService    *services.MenuService
	orderService   *services.OrderService
	billingService *services.BillingService
)

// Init wires the services onto the given record store. Must be called before
// any route is served.
func Init(s store.Store) {
	locks := services.NewKeyMutex()
	ids := services.NewIDAllocator(s)
	tableService = services.NewTableService(s, ids, locks)
	staffService = services.NewStaffService(s, ids, locks)
	menuService = services.NewMenuService(s, ids, locks)
	orderService = services.NewOrderService(s, ids, locks, tableService, staffService, menuService)
	billingService = services.NewBillingService(s, ids, locks, orderService, tableService, staffService)
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrStateConflict), errors.Is(err, services.ErrDuplicateActiveOrder):
		return http.StatusConflict
	case errors.Is(err, services.ErrStoreUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func abortWithError(c *gin.Context, err error) {
	c.JSON(statusForError(err), gin.H{"error": err.Error()})
}
