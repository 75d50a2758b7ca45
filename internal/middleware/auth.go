package middleware

import (
	"net/http"
	"strings"

	"github.com/bifidokk/shopping-list/internal/services"

	"github.com/gin-gonic/gin"
)

const userKey = "user"

// TelegramAuth authenticates requests carrying signed Mini App init-data in
// the X-Telegram-Init-Data header and stores the verified user in the
// context.
func TelegramAuth(authService *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		initData := c.GetHeader("X-Telegram-Init-Data")
		if initData == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "telegram init data required"})
			return
		}

		user, err := authService.Authenticate(initData)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid telegram init data"})
			return
		}

		c.Set(userKey, user)
		c.Next()
	}
}

// FlexAuth accepts either init-data or a Bearer token issued by the auth
// endpoint.
func FlexAuth(authService *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if initData := c.GetHeader("X-Telegram-Init-Data"); initData != "" {
			user, err := authService.Authenticate(initData)
			if err != nil {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid telegram init data"})
				return
			}
			c.Set(userKey, user)
			c.Next()
			return
		}

		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization required"})
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header format"})
			return
		}

		userID, err := authService.ValidateToken(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		user, err := authService.UserByID(userID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		c.Set(userKey, user)
		c.Next()
	}
}
