package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/idl3o/tasern-3-sub001/internal/constants"
)

// AuthRequired validates the bearer session token and injects the player
// identity into the request context.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(constants.HeaderAuthorization)
		if !strings.HasPrefix(header, constants.BearerPrefix) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrAuthRequired})
			return
		}
		token := strings.TrimPrefix(header, constants.BearerPrefix)
		claims, err := parseAndValidateSession(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrInvalidSession})
			return
		}
		c.Set("playerID", claims.Sub)
		c.Set("playerName", claims.Name)
		c.Next()
	}
}

func playerIdentity(c *gin.Context) (id, name string) {
	return c.GetString("playerID"), c.GetString("playerName")
}
