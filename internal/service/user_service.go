package service

import (
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/sheriffsaka/alibaanah-v1/internal/models"
	appErrors "github.com/sheriffsaka/alibaanah-v1/pkg/errors"
)

type userLedger interface {
	Admins() []models.AdminUser
	CreateAdmin(account models.AdminUser) (models.AdminUser, error)
	PatchAdmin(id string, patch models.AdminPatch, passwordHash string) (models.AdminUser, error)
}

// CreateUserRequest describes a new staff account. Front-desk accounts must
// carry a gender so their visibility scope is defined.
type CreateUserRequest struct {
	Username string `json:"username" validate:"required,min=3"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"required,oneof=SUPERADMIN ADMIN FRONTDESK"`
	Gender   string `json:"gender" validate:"omitempty,oneof=Male Female"`
}

// UserService manages staff accounts.
type UserService struct {
	ledger    userLedger
	validator *validator.Validate
	logger    *zap.Logger
}

// NewUserService constructs UserService.
func NewUserService(ledger userLedger, validate *validator.Validate, logger *zap.Logger) *UserService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserService{ledger: ledger, validator: validate, logger: logger}
}

// List returns all staff accounts with credential hashes removed.
func (s *UserService) List() []models.AdminUser {
	accounts := s.ledger.Admins()
	out := make([]models.AdminUser, len(accounts))
	for i, account := range accounts {
		out[i] = account.Sanitized()
	}
	return out
}

// Create adds a staff account with a hashed password.
func (s *UserService) Create(req CreateUserRequest) (*models.AdminUser, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid staff account payload")
	}
	role := models.UserRole(req.Role)
	if role == models.RoleFrontDesk && req.Gender == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "front-desk accounts require a gender scope")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
	}

	account, err := s.ledger.CreateAdmin(models.AdminUser{
		Username:     req.Username,
		PasswordHash: string(hash),
		Role:         role,
		Gender:       models.Gender(req.Gender),
		Active:       true,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("staff account created", zap.String("username", account.Username), zap.String("role", string(account.Role)))
	safe := account.Sanitized()
	return &safe, nil
}

// Patch applies a typed update, hashing any replacement password first.
func (s *UserService) Patch(id string, patch models.AdminPatch) (*models.AdminUser, error) {
	if err := s.validator.Struct(patch); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid staff account patch")
	}
	if patch.Role != nil && !patch.Role.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown role")
	}
	if patch.Gender != nil && !patch.Gender.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown gender designation")
	}

	passwordHash := ""
	if patch.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*patch.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
		}
		passwordHash = string(hash)
	}

	account, err := s.ledger.PatchAdmin(id, patch, passwordHash)
	if err != nil {
		return nil, err
	}
	safe := account.Sanitized()
	return &safe, nil
}
