package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/sheriffsaka/alibaanah-v1/internal/models"
	appErrors "github.com/sheriffsaka/alibaanah-v1/pkg/errors"
)

type slotLedger interface {
	ListSlots() []models.Slot
	SlotByID(id string) (models.Slot, error)
	CreateSlot(date, startTime, endTime string, capacity int, gender models.Gender) (models.Slot, error)
	UpdateSlot(id string, patch models.SlotPatch) (models.Slot, error)
	DeleteSlot(id string) error
}

// CreateSlotRequest describes a new assessment window. Times are opaque
// HH:MM strings; the ledger does not interpret them.
type CreateSlotRequest struct {
	Date      string `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime string `json:"start_time" validate:"required"`
	EndTime   string `json:"end_time" validate:"required"`
	Capacity  int    `json:"capacity" validate:"required,gt=0"`
	Gender    string `json:"gender" validate:"required,oneof=Male Female"`
}

// SlotService orchestrates schedule management.
type SlotService struct {
	ledger    slotLedger
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewSlotService constructs SlotService.
func NewSlotService(ledger slotLedger, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *SlotService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SlotService{ledger: ledger, cache: cache, validator: validate, logger: logger}
}

// List returns all slots, date ascending.
func (s *SlotService) List() []models.Slot {
	return s.ledger.ListSlots()
}

// Get returns one slot.
func (s *SlotService) Get(id string) (*models.Slot, error) {
	slot, err := s.ledger.SlotByID(id)
	if err != nil {
		return nil, err
	}
	return &slot, nil
}

// Create opens a new bookable window.
func (s *SlotService) Create(ctx context.Context, req CreateSlotRequest) (*models.Slot, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid slot payload")
	}

	slot, err := s.ledger.CreateSlot(req.Date, req.StartTime, req.EndTime, req.Capacity, models.Gender(req.Gender))
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	s.logger.Info("slot created", zap.String("id", slot.ID), zap.String("date", slot.Date), zap.Int("capacity", slot.Capacity))
	return &slot, nil
}

// Update applies a typed patch to a slot.
func (s *SlotService) Update(ctx context.Context, id string, patch models.SlotPatch) (*models.Slot, error) {
	if err := s.validator.Struct(patch); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid slot patch")
	}
	if patch.Gender != nil && !patch.Gender.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown gender designation")
	}

	slot, err := s.ledger.UpdateSlot(id, patch)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	return &slot, nil
}

// Delete removes an empty slot.
func (s *SlotService) Delete(ctx context.Context, id string) error {
	if err := s.ledger.DeleteSlot(id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *SlotService) invalidate(ctx context.Context) {
	if err := s.cache.Invalidate(ctx, statsCachePattern); err != nil {
		s.logger.Warn("failed to invalidate stats cache after schedule change", zap.Error(err))
	}
}
