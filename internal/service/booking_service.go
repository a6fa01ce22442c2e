package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/sheriffsaka/alibaanah-v1/internal/models"
	appErrors "github.com/sheriffsaka/alibaanah-v1/pkg/errors"
)

// statsCachePattern matches every cached dashboard payload. Booking
// mutations invalidate it so the front desk never watches stale counts for a
// full TTL.
const statsCachePattern = "dash:*"

type bookingLedger interface {
	Register(candidate models.Candidate) (models.Student, error)
	FindStudent(query string) (models.Student, bool)
	LookupStudent(codeOrPhone string) (models.Student, bool)
	CheckIn(codeOrPhone string) (models.Student, error)
	StudentByCode(code string) (models.Student, error)
	Students(gender *models.Gender) []models.Student
	SlotByID(id string) (models.Slot, error)
}

// RegisterStudentRequest is the registration-form payload.
type RegisterStudentRequest struct {
	FullName    string `json:"full_name" validate:"required,min=3"`
	PhoneNumber string `json:"phone_number" validate:"required,min=6"`
	Email       string `json:"email" validate:"required,email"`
	Age         int    `json:"age" validate:"required,gte=5,lte=99"`
	Gender      string `json:"gender" validate:"required,oneof=Male Female"`
	Address     string `json:"address"`
	ArabicLevel string `json:"arabic_level" validate:"required,oneof=Beginner Elementary Intermediate Advanced"`
	SlotID      string `json:"slot_id" validate:"required"`
}

// CheckInRequest identifies a student by registration code or phone number.
type CheckInRequest struct {
	Code string `json:"code" validate:"required"`
}

// BookingService fronts the ledger's booking operations: request validation,
// cache invalidation, and metrics around registration and check-in.
type BookingService struct {
	ledger    bookingLedger
	cache     *CacheService
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewBookingService constructs BookingService.
func NewBookingService(ledger bookingLedger, cache *CacheService, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *BookingService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BookingService{ledger: ledger, cache: cache, metrics: metrics, validator: validate, logger: logger}
}

// Register validates and books a candidate into their chosen slot.
func (s *BookingService) Register(ctx context.Context, req RegisterStudentRequest) (*models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid registration payload")
	}

	student, err := s.ledger.Register(models.Candidate{
		FullName:    req.FullName,
		PhoneNumber: req.PhoneNumber,
		Email:       req.Email,
		Age:         req.Age,
		Gender:      models.Gender(req.Gender),
		Address:     req.Address,
		ArabicLevel: models.ArabicLevel(req.ArabicLevel),
		SlotID:      req.SlotID,
	})
	if err != nil {
		s.metrics.RecordRegistration(appErrors.FromError(err).Code)
		return nil, err
	}

	s.metrics.RecordRegistration("ok")
	if err := s.cache.Invalidate(ctx, statsCachePattern); err != nil {
		s.logger.Warn("failed to invalidate stats cache after registration", zap.Error(err))
	}
	return &student, nil
}

// CheckIn marks the matching student as arrived.
func (s *BookingService) CheckIn(ctx context.Context, req CheckInRequest) (*models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid check-in payload")
	}

	student, err := s.ledger.CheckIn(req.Code)
	if err != nil {
		return nil, err
	}

	s.metrics.RecordCheckIn()
	if err := s.cache.Invalidate(ctx, statsCachePattern); err != nil {
		s.logger.Warn("failed to invalidate stats cache after check-in", zap.Error(err))
	}
	return &student, nil
}

// Search finds a student by code, phone, or name substring. The boolean is
// false when nothing matches; search misses are not errors.
func (s *BookingService) Search(query string) (*models.Student, bool) {
	student, ok := s.ledger.FindStudent(query)
	if !ok {
		return nil, false
	}
	return &student, true
}

// Lookup resolves an exact registration code or phone number, the same match
// CheckIn applies. Unlike Search it never falls back to name substrings.
func (s *BookingService) Lookup(codeOrPhone string) (*models.Student, bool) {
	student, ok := s.ledger.LookupStudent(codeOrPhone)
	if !ok {
		return nil, false
	}
	return &student, true
}

// List returns registrations, gender-scoped when a filter is supplied.
func (s *BookingService) List(gender *models.Gender) []models.Student {
	return s.ledger.Students(gender)
}

// Slip resolves a registration code to the student and their slot for
// admission-slip rendering.
func (s *BookingService) Slip(code string) (*models.Student, *models.Slot, error) {
	student, err := s.ledger.StudentByCode(code)
	if err != nil {
		return nil, nil, err
	}
	slot, err := s.ledger.SlotByID(student.SlotID)
	if err != nil {
		// A registration always references a live slot; a miss here means
		// the snapshot was edited out-of-band.
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "registration references unknown slot")
	}
	return &student, &slot, nil
}
