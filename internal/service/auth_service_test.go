package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/sheriffsaka/alibaanah-v1/internal/models"
	appErrors "github.com/sheriffsaka/alibaanah-v1/pkg/errors"
)

type fakeAuthLedger struct {
	account    models.AdminUser
	err        error
	loginID    string
	loginStamp time.Time
}

func (f *fakeAuthLedger) AdminByUsername(string) (models.AdminUser, error) {
	if f.err != nil {
		return models.AdminUser{}, f.err
	}
	return f.account, nil
}

func (f *fakeAuthLedger) RecordLogin(id string, ts time.Time) {
	f.loginID = id
	f.loginStamp = ts
}

func activeAccount(t *testing.T, password string) models.AdminUser {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return models.AdminUser{
		ID:           "u1",
		Username:     "frontdesk1",
		PasswordHash: string(hash),
		Role:         models.RoleFrontDesk,
		Gender:       models.GenderFemale,
		Active:       true,
	}
}

func TestLoginIssuesTokenWithClaims(t *testing.T) {
	ledger := &fakeAuthLedger{account: activeAccount(t, "s3cretpass")}
	svc := NewAuthService(ledger, nil, nil, AuthConfig{Secret: "test-secret", Expiration: time.Hour, Issuer: "intake"})

	res, err := svc.Login(models.LoginRequest{Username: "frontdesk1", Password: "s3cretpass"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.AccessToken)
	assert.Equal(t, int64(3600), res.ExpiresIn)
	assert.Equal(t, "u1", ledger.loginID)
	assert.Empty(t, res.User.PasswordHash)

	claims, err := svc.ValidateToken(res.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, models.RoleFrontDesk, claims.Role)
	assert.Equal(t, models.GenderFemale, claims.Gender)
	assert.Equal(t, "intake", claims.Issuer)
}

func TestLoginWrongPassword(t *testing.T) {
	ledger := &fakeAuthLedger{account: activeAccount(t, "s3cretpass")}
	svc := NewAuthService(ledger, nil, nil, AuthConfig{Secret: "test-secret"})

	_, err := svc.Login(models.LoginRequest{Username: "frontdesk1", Password: "wrong"})
	require.ErrorIs(t, err, appErrors.ErrInvalidCredentials)
	assert.Empty(t, ledger.loginID)
}

func TestLoginUnknownUsername(t *testing.T) {
	ledger := &fakeAuthLedger{err: appErrors.Clone(appErrors.ErrNotFound, "staff account not found")}
	svc := NewAuthService(ledger, nil, nil, AuthConfig{Secret: "test-secret"})

	_, err := svc.Login(models.LoginRequest{Username: "ghost", Password: "whatever"})
	require.ErrorIs(t, err, appErrors.ErrInvalidCredentials)
}

func TestLoginInactiveAccount(t *testing.T) {
	account := activeAccount(t, "s3cretpass")
	account.Active = false
	svc := NewAuthService(&fakeAuthLedger{account: account}, nil, nil, AuthConfig{Secret: "test-secret"})

	_, err := svc.Login(models.LoginRequest{Username: "frontdesk1", Password: "s3cretpass"})
	require.ErrorIs(t, err, appErrors.ErrInactiveAccount)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	ledger := &fakeAuthLedger{account: activeAccount(t, "s3cretpass")}
	issuer := NewAuthService(ledger, nil, nil, AuthConfig{Secret: "secret-a"})
	verifier := NewAuthService(ledger, nil, nil, AuthConfig{Secret: "secret-b"})

	res, err := issuer.Login(models.LoginRequest{Username: "frontdesk1", Password: "s3cretpass"})
	require.NoError(t, err)

	_, err = verifier.ValidateToken(res.AccessToken)
	require.ErrorIs(t, err, appErrors.ErrUnauthorized)
}

func TestValidateTokenGarbage(t *testing.T) {
	svc := NewAuthService(&fakeAuthLedger{}, nil, nil, AuthConfig{Secret: "test-secret"})
	_, err := svc.ValidateToken("not.a.token")
	require.ErrorIs(t, err, appErrors.ErrUnauthorized)
}
