package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/sheriffsaka/alibaanah-v1/internal/models"
)

func runRBAC(t *testing.T, claims *models.JWTClaims, allowed ...models.UserRole) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/protected", nil)
	if claims != nil {
		c.Set(ContextUserKey, claims)
	}

	reached := false
	RequireRoles(allowed...)(c)
	if !c.IsAborted() {
		reached = true
	}
	return rec, reached
}

func TestRBACAllowsPermittedRole(t *testing.T) {
	_, reached := runRBAC(t, &models.JWTClaims{Role: models.RoleAdmin}, models.RoleSuperAdmin, models.RoleAdmin)
	assert.True(t, reached)
}

func TestRBACRejectsOtherRole(t *testing.T) {
	rec, reached := runRBAC(t, &models.JWTClaims{Role: models.RoleFrontDesk}, models.RoleSuperAdmin)
	assert.False(t, reached)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRBACRequiresClaims(t *testing.T) {
	rec, reached := runRBAC(t, nil, models.RoleAdmin)
	assert.False(t, reached)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
