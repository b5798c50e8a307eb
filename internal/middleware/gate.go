package middleware

import (
	"net/http"

	"github.com/muhammadjayadi/larastore-management/internal/apierror"
	"github.com/muhammadjayadi/larastore-management/internal/model"

	"github.com/gin-gonic/gin"
)

// Abilities maps gate names to the roles allowed to perform them.
var Abilities = map[string][]string{
	"manage-categories": {model.RoleAdmin},
}

// Can rejects the request before any handler logic runs unless one of the
// actor's roles is allowed the named ability. Unknown abilities always deny.
func Can(ability string) gin.HandlerFunc {
	allowed := make(map[string]bool)
	for _, r := range Abilities[ability] {
		allowed[r] = true
	}
	return func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil {
			c.AbortWithStatusJSON(http.StatusForbidden, apierror.New("You do not have sufficient access rights"))
			return
		}
		for _, role := range claims.Roles {
			if allowed[role] {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, apierror.New("You do not have sufficient access rights"))
	}
}
