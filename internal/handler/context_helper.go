package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/sheriffsaka/alibaanah-v1/internal/middleware"
	"github.com/sheriffsaka/alibaanah-v1/internal/models"
)

func claimsFromContext(c *gin.Context) *models.JWTClaims {
	value, exists := c.Get(middleware.ContextUserKey)
	if !exists {
		return nil
	}
	claims, ok := value.(*models.JWTClaims)
	if !ok {
		return nil
	}
	return claims
}

// genderScope resolves the gender filter for the current request. Front-desk
// accounts are always pinned to their own gender; other roles may pass a
// ?gender= query filter or see everyone.
func genderScope(c *gin.Context) *models.Gender {
	claims := claimsFromContext(c)
	if claims != nil && claims.Role == models.RoleFrontDesk && claims.Gender.Valid() {
		g := claims.Gender
		return &g
	}
	if q := c.Query("gender"); q != "" {
		g := models.Gender(q)
		if g.Valid() {
			return &g
		}
	}
	return nil
}
