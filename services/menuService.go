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
	MenuAvailable   = "Available"
	MenuUnavailable = "Unavailable"
)

// MenuService is the catalog the order ledger prices items against. Unit
// prices are read here once, at the moment an item is added; later price
// changes never touch existing order lines.
type MenuService struct {
	store store.Store
	ids   *IDAllocator
	locks *KeyMutex
}

func NewMenuService(s store.Store, ids *IDAllocator, locks *KeyMutex) *MenuService {
	return &MenuService{store: s, ids: ids, locks: locks}
}

func validCategory(category string) bool {
	return category == "Food" || category == "Beverage" || category == "Dessert"
}

func (m *MenuService) Add(ctx context.Context, name string, price float64, category string) (string, error) {
	if !validCategory(category) {
		return "", fmt.Errorf("%w: category must be Food, Beverage or Dessert (got %q)", ErrInvalidInput, category)
	}
	if price <= 0 {
		return "", fmt.Errorf("%w: price must be greater than 0", ErrInvalidInput)
	}

	unlock := m.locks.Lock(idKey(MenuIDs.Collection))
	defer unlock()

	menuId, err := m.ids.NextID(ctx, MenuIDs)
	if err != nil {
		return "", err
	}
	rounded := toFixed(price, 2)
	now, _ := time.Parse(time.RFC3339, time.Now().Format(time.RFC3339))
	menu := models.Menu{
		ID:           primitive.NewObjectID(),
		Menu_id:      menuId,
		Name:         &name,
		Price:        &rounded,
		Category:     &category,
		Availability: MenuAvailable,
		Created_at:   now,
		Updated_at:   now,
	}
	if err := m.store.Insert(ctx, "menu", menu); err != nil {
		return "", storeFailure(err)
	}
	return menuId, nil
}

func (m *MenuService) UpdatePrice(ctx context.Context, menuID string, price float64) error {
	if price <= 0 {
		return fmt.Errorf("%w: price must be greater than 0", ErrInvalidInput)
	}
	updated, _ := time.Parse(time.RFC3339, time.Now().Format(time.RFC3339))
	matched, err := m.store.UpdateOne(ctx, "menu",
		store.Filter{"menu_id": menuID},
		store.Fields{"price": toFixed(price, 2), "updated_at": updated})
	if err != nil {
		return storeFailure(err)
	}
	if matched == 0 {
		return notFound("menu item", menuID)
	}
	return nil
}

func (m *MenuService) UpdateAvailability(ctx context.Context, menuID, availability string) error {
	if availability != MenuAvailable && availability != MenuUnavailable {
		return fmt.Errorf("%w: availability must be Available or Unavailable (got %q)", ErrInvalidInput, availability)
	}
	updated, _ := time.Parse(time.RFC3339, time.Now().Format(time.RFC3339))
	matched, err := m.store.UpdateOne(ctx, "menu",
		store.Filter{"menu_id": menuID},
		store.Fields{"availability": availability, "updated_at": updated})
	if err != nil {
		return storeFailure(err)
	}
	if matched == 0 {
		return notFound("menu item", menuID)
	}
	return nil
}

// Delete removes a menu item no order line has ever referenced; mark it
// Unavailable instead once it has order history.
func (m *MenuService) Delete(ctx context.Context, menuID string) error {
	count, err := m.store.Count(ctx, "orderItem", store.Filter{"menu_id": menuID})
	if err != nil {
		return storeFailure(err)
	}
	if count > 0 {
		return fmt.Errorf("%w: menu item has existing order items", ErrHasReferences)
	}
	deleted, err := m.store.DeleteOne(ctx, "menu", store.Filter{"menu_id": menuID})
	if err != nil {
		return storeFailure(err)
	}
	if deleted == 0 {
		return notFound("menu item", menuID)
	}
	return nil
}

// Availability returns Available or Unavailable, or a not-found error.
func (m *MenuService) Availability(ctx context.Context, menuID string) (string, error) {
	menu, err := m.Get(ctx, menuID)
	if err != nil {
		return "", err
	}
	return menu.Availability, nil
}

// Price returns the current unit price of the menu item.
func (m *MenuService) Price(ctx context.Context, menuID string) (float64, error) {
	menu, err := m.Get(ctx, menuID)
	if err != nil {
		return 0, err
	}
	return *menu.Price, nil
}

func (m *MenuService) Get(ctx context.Context, menuID string) (*models.Menu, error) {
	var menu models.Menu
	err := m.store.FindOne(ctx, "menu", store.Filter{"menu_id": menuID}, &menu)
	if errors.Is(err, store.ErrNoDocuments) {
		return nil, notFound("menu item", menuID)
	}
	if err != nil {
		return nil, storeFailure(err)
	}
	return &menu, nil
}

func (m *MenuService) List(ctx context.Context) ([]models.Menu, error) {
	var menus []models.Menu
	if err := m.store.FindAll(ctx, "menu", nil, &menus); err != nil {
		return nil, storeFailure(err)
	}
	return menus, nil
}

func (m *MenuService) ListAvailable(ctx context.Context) ([]models.Menu, error) {
	var menus []models.Menu
	if err := m.store.FindAll(ctx, "menu", store.Filter{"availability": MenuAvailable}, &menus); err != nil {
		return nil, storeFailure(err)
	}
	return menus, nil
}

func (m *MenuService) ListByCategory(ctx context.Context, category string) ([]models.Menu, error) {
	if !validCategory(category) {
		return nil, fmt.Errorf("%w: category must be Food, Beverage or Dessert (got %q)", ErrInvalidInput, category)
	}
	var menus []models.Menu
	if err := m.store.FindAll(ctx, "menu", store.Filter{"category": category}, &menus); err != nil {
		return nil, storeFailure(err)
	}
	return menus, nil
}

// Search matches menu names case-insensitively on a substring.
func (m *MenuService) Search(ctx context.Context, term string) ([]models.Menu, error) {
	all, err := m.List(ctx)
	if err != nil {
		return nil, err
	}
	term = strings.ToLower(term)
	matched := []models.Menu{}
	for _, menu := range all {
		if menu.Name != nil && strings.Contains(strings.ToLower(*menu.Name), term) {
			matched = append(matched, menu)
		}
	}
	return matched, nil
}
