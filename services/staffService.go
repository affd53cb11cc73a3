package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"go-restaurant-billing/models"
	"go-restaurant-billing/store"
)

const (
	StaffActive   = "Active"
	StaffInactive = "Inactive"
)

// StaffService is the staff directory the ledger and billing consult before
// acting on a staff id, plus the account management around it.
type StaffService struct {
	store store.Store
	ids   *IDAllocator
	locks *KeyMutex
}

func NewStaffService(s store.Store, ids *IDAllocator, locks *KeyMutex) *StaffService {
	return &StaffService{store: s, ids: ids, locks: locks}
}

func HashPassword(password string) string {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 14)
	if err != nil {
		log.Panic(err)
	}
	return string(bytes)
}

func VerifyPassword(userPassword string, providedPassword string) bool {
	return bcrypt.CompareHashAndPassword([]byte(providedPassword), []byte(userPassword)) == nil
}

func (s *StaffService) Add(ctx context.Context, name, email, address, password string) (string, error) {
	unlock := s.locks.Lock(idKey(StaffIDs.Collection))
	defer unlock()

	count, err := s.store.Count(ctx, "staff", store.Filter{"email": email})
	if err != nil {
		return "", storeFailure(err)
	}
	if count > 0 {
		return "", ErrDuplicateEmail
	}

	staffId, err := s.ids.NextID(ctx, StaffIDs)
	if err != nil {
		return "", err
	}
	hashed := HashPassword(password)
	now, _ := time.Parse(time.RFC3339, time.Now().Format(time.RFC3339))
	staff := models.Staff{
		ID:         primitive.NewObjectID(),
		Staff_id:   staffId,
		Name:       &name,
		Email:      &email,
		Address:    &address,
		Password:   &hashed,
		Status:     StaffActive,
		Created_at: now,
		Updated_at: now,
	}
	if err := s.store.Insert(ctx, "staff", staff); err != nil {
		return "", storeFailure(err)
	}
	return staffId, nil
}

func (s *StaffService) SetStatus(ctx context.Context, staffID, status string) error {
	if status != StaffActive && status != StaffInactive {
		return fmt.Errorf("%w: staff status must be Active or Inactive (got %q)", ErrInvalidInput, status)
	}
	updated, _ := time.Parse(time.RFC3339, time.Now().Format(time.RFC3339))
	matched, err := s.store.UpdateOne(ctx, "staff",
		store.Filter{"staff_id": staffID},
		store.Fields{"status": status, "updated_at": updated})
	if err != nil {
		return storeFailure(err)
	}
	if matched == 0 {
		return notFound("staff", staffID)
	}
	return nil
}

// Delete removes a staff member with no order history; deactivate instead of
// deleting once orders reference them.
func (s *StaffService) Delete(ctx context.Context, staffID string) error {
	count, err := s.store.Count(ctx, "order", store.Filter{"staff_id": staffID})
	if err != nil {
		return storeFailure(err)
	}
	if count > 0 {
		return fmt.Errorf("%w: staff has existing orders", ErrHasReferences)
	}
	deleted, err := s.store.DeleteOne(ctx, "staff", store.Filter{"staff_id": staffID})
	if err != nil {
		return storeFailure(err)
	}
	if deleted == 0 {
		return notFound("staff", staffID)
	}
	return nil
}

// IsActive reports whether the staff member exists and is Active.
func (s *StaffService) IsActive(ctx context.Context, staffID string) (bool, error) {
	var staff models.Staff
	err := s.store.FindOne(ctx, "staff", store.Filter{"staff_id": staffID}, &staff)
	if errors.Is(err, store.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, storeFailure(err)
	}
	return staff.Status == StaffActive, nil
}

// requireActive distinguishes a missing staff member from an inactive one.
func (s *StaffService) requireActive(ctx context.Context, staffID string) error {
	var staff models.Staff
	err := s.store.FindOne(ctx, "staff", store.Filter{"staff_id": staffID}, &staff)
	if errors.Is(err, store.ErrNoDocuments) {
		return notFound("staff", staffID)
	}
	if err != nil {
		return storeFailure(err)
	}
	if staff.Status != StaffActive {
		return ErrStaffNotActive
	}
	return nil
}

func (s *StaffService) Get(ctx context.Context, staffID string) (*models.Staff, error) {
	var staff models.Staff
	err := s.store.FindOne(ctx, "staff", store.Filter{"staff_id": staffID}, &staff)
	if errors.Is(err, store.ErrNoDocuments) {
		return nil, notFound("staff", staffID)
	}
	if err != nil {
		return nil, storeFailure(err)
	}
	return &staff, nil
}

func (s *StaffService) List(ctx context.Context) ([]models.Staff, error) {
	var staff []models.Staff
	if err := s.store.FindAll(ctx, "staff", nil, &staff); err != nil {
		return nil, storeFailure(err)
	}
	return staff, nil
}

func (s *StaffService) ListActive(ctx context.Context) ([]models.Staff, error) {
	var staff []models.Staff
	if err := s.store.FindAll(ctx, "staff", store.Filter{"status": StaffActive}, &staff); err != nil {
		return nil, storeFailure(err)
	}
	return staff, nil
}
