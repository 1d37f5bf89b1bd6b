package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/mbsolutions/storefront/internal/infrastructure/auth"
	"github.com/mbsolutions/storefront/internal/interfaces/http/dto"
)

// Context keys set by RequireAuth
const (
	UsuarioKey   = "usuario"
	bearerPrefix = "Bearer "
)

// RequireAuth guards mutating catalog routes with the admin bearer token.
// Each failure mode gets its own message: absent header, malformed header or
// token, expired signature, invalid signature.
func RequireAuth(tokens *auth.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			abortUnauthorized(c, "Token no proporcionado")
			return
		}
		if !strings.HasPrefix(header, bearerPrefix) {
			abortUnauthorized(c, "Encabezado de autorización mal formado")
			return
		}

		claims, err := tokens.Validate(strings.TrimSpace(header[len(bearerPrefix):]))
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrTokenAbsent):
				abortUnauthorized(c, "Token no proporcionado")
			case errors.Is(err, auth.ErrTokenMalformed):
				abortUnauthorized(c, "Token mal formado")
			case errors.Is(err, auth.ErrTokenExpired):
				abortUnauthorized(c, "Token expirado")
			default:
				abortUnauthorized(c, "Token inválido")
			}
			return
		}

		c.Set(UsuarioKey, claims.Usuario)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(message))
}
