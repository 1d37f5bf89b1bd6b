package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mbsolutions/storefront/internal/infrastructure/auth"
	"github.com/mbsolutions/storefront/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// AuthHandler handles the admin login endpoint
type AuthHandler struct {
	BaseHandler
	tokens      *auth.TokenService
	credentials *auth.Credentials
	limiter     *auth.LoginLimiter
	logger      *zap.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(tokens *auth.TokenService, credentials *auth.Credentials, limiter *auth.LoginLimiter, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		tokens:      tokens,
		credentials: credentials,
		limiter:     limiter,
		logger:      logger,
	}
}

// LoginRequest is the admin login payload
type LoginRequest struct {
	Usuario    string `json:"usuario" binding:"required"`
	Contrasena string `json:"contraseña" binding:"required"`
}

// LoginResponse is returned on successful authentication
type LoginResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
	Message string `json:"message"`
}

// Login authenticates the admin and issues a signed token.
// Failed attempts count against a per-address sliding window; once the
// window is exhausted the reply is 429 with a retry-after estimate.
func (h *AuthHandler) Login(c *gin.Context) {
	addr := c.ClientIP()
	if !h.limiter.Allow(addr) {
		minutes := h.limiter.RetryAfterMinutes(addr)
		c.JSON(http.StatusTooManyRequests, dto.NewRateLimitedResponse(
			"Demasiados intentos fallidos. Intente de nuevo más tarde.", minutes))
		return
	}

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Usuario y contraseña requeridos")
		return
	}

	if !h.credentials.Match(req.Usuario, req.Contrasena) {
		h.limiter.RecordFailure(addr)
		h.logger.Warn("failed admin login", zap.String("client_ip", addr))
		h.Unauthorized(c, "Usuario o contraseña incorrectos")
		return
	}

	token, _, err := h.tokens.Generate(req.Usuario)
	if err != nil {
		h.InternalError(c, err)
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		Success: true,
		Token:   token,
		Message: "Autenticación exitosa",
	})
}
