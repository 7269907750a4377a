package middleware

import (
	"fmt"

	"cardswap/internal/logger"
	"cardswap/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

// AdminRealm - realm для Basic-аутентификации админки
const AdminRealm = "Cardswap Admin"

// CredentialsVerifier проверяет логин и пароль
type CredentialsVerifier interface {
	Verify(username, password string) bool
}

// BasicAuthMiddleware - HTTP Basic с вызовом браузерного окна логина
func BasicAuthMiddleware(realm string, verifier CredentialsVerifier) gin.HandlerFunc {
	challenge := fmt.Sprintf("Basic realm=%q", realm)

	return func(c *gin.Context) {
		username, password, ok := c.Request.BasicAuth()
		if !ok || !verifier.Verify(username, password) {
			if ok {
				logger.CtxWarn(c.Request.Context(), "Admin authentication failed", "client_ip", c.ClientIP())
			}
			c.Header("WWW-Authenticate", challenge)
			apperrors.HandleTextError(c, apperrors.ErrInvalidCredentials)
			return
		}

		c.Set(gin.AuthUserKey, username)
		c.Next()
	}
}
