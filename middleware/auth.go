package middleware

import (
	"net/http"
	"strings"

	"github.com/SinghAdii/Ekta-Janch-kendra-sub001/models"
	"github.com/SinghAdii/Ekta-Janch-kendra-sub001/service"
	"github.com/SinghAdii/Ekta-Janch-kendra-sub001/utils"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware requires a valid bearer token and stores its claims under
// utils.ContextUserKey
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")

		utils.Logger.Debug().
			Str("path", c.Request.URL.Path).
			Str("method", c.Request.Method).
			Str("authorization", getShortAuthHeader(authHeader)).
			Msg("authenticating request")

		if !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "missing bearer token",
				"code":    utils.CodeUnauthorized,
			})
			return
		}

		token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "missing bearer token",
				"code":    utils.CodeUnauthorized,
			})
			return
		}

		claims, err := utils.ParseToken(token)
		if err != nil {
			utils.Logger.Warn().Err(err).Msg("token rejected")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "invalid token",
				"code":    utils.CodeUnauthorized,
			})
			return
		}
		if claims.UserID == "" || claims.Username == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "token is missing required claims",
				"code":    utils.CodeUnauthorized,
			})
			return
		}

		c.Set(utils.ContextUserKey, claims)
		c.Next()
	}
}

// RequireCapability lets the request through when at least one of the
// caller's roles grants capability
func RequireCapability(capability models.Capability) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := utils.GetUser(c)
		if err != nil {
			utils.HandleError(c, err)
			return
		}

		if !service.HasCapability(user.Roles, capability) {
			utils.Logger.Info().
				Str("username", user.Username).
				Strs("roles", user.Roles).
				Str("capability", string(capability)).
				Msg("capability missing")
			utils.HandleError(c, utils.CreateForbiddenError())
			return
		}
		c.Next()
	}
}

// getShortAuthHeader truncated header for logs
func getShortAuthHeader(header string) string {
	if len(header) > 15 {
		return header[:15] + "..."
	}
	return header
}
