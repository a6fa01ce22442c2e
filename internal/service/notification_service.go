package service

import (
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/sheriffsaka/alibaanah-v1/internal/models"
	appErrors "github.com/sheriffsaka/alibaanah-v1/pkg/errors"
)

type settingsLedger interface {
	Config() models.SystemConfig
	PatchConfig(patch models.ConfigPatch) (models.SystemConfig, error)
	Notifications() []models.NotificationLog
	RecordNotification(kind models.NotificationType, recipient string) (models.NotificationLog, error)
}

// SendTestRequest addresses a test notification.
type SendTestRequest struct {
	Recipient string `json:"recipient" validate:"required,email"`
}

// NotificationService exposes intake settings and the notification log.
type NotificationService struct {
	ledger    settingsLedger
	validator *validator.Validate
	logger    *zap.Logger
}

// NewNotificationService constructs NotificationService.
func NewNotificationService(ledger settingsLedger, validate *validator.Validate, logger *zap.Logger) *NotificationService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationService{ledger: ledger, validator: validate, logger: logger}
}

// Settings returns the current intake configuration.
func (s *NotificationService) Settings() models.SystemConfig {
	return s.ledger.Config()
}

// PatchSettings applies a partial settings update.
func (s *NotificationService) PatchSettings(patch models.ConfigPatch) (*models.SystemConfig, error) {
	if err := s.validator.Struct(patch); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid settings patch")
	}
	cfg, err := s.ledger.PatchConfig(patch)
	if err != nil {
		return nil, err
	}
	s.logger.Info("intake settings updated",
		zap.Bool("registration_open", cfg.RegistrationOpen),
		zap.Int("max_group_size", cfg.MaxGroupSize),
	)
	return &cfg, nil
}

// Log returns recorded notifications, most recent first.
func (s *NotificationService) Log() []models.NotificationLog {
	return s.ledger.Notifications()
}

// SendTest records a test entry in the notification log.
func (s *NotificationService) SendTest(req SendTestRequest) (*models.NotificationLog, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid test notification payload")
	}
	entry, err := s.ledger.RecordNotification(models.NotificationTest, req.Recipient)
	if err != nil {
		return nil, err
	}
	return &entry, nil
}
