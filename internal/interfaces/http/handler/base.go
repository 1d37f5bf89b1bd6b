package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/mbsolutions/storefront/internal/domain/catalog"
	"github.com/mbsolutions/storefront/internal/domain/shared"
	"github.com/mbsolutions/storefront/internal/interfaces/http/dto"
)

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// Error sends an error response with the given status code
func (h *BaseHandler) Error(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, dto.NewErrorResponse(message))
}

// BadRequest sends a 400 bad request response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.Error(c, http.StatusBadRequest, message)
}

// NotFound sends a 404 not found response
func (h *BaseHandler) NotFound(c *gin.Context, message string) {
	h.Error(c, http.StatusNotFound, message)
}

// Unauthorized sends a 401 unauthorized response
func (h *BaseHandler) Unauthorized(c *gin.Context, message string) {
	h.Error(c, http.StatusUnauthorized, message)
}

// InternalError sends a 500 response; the message carries the underlying
// cause so operators can see what the file store choked on
func (h *BaseHandler) InternalError(c *gin.Context, err error) {
	h.Error(c, http.StatusInternalServerError, "Error interno: "+err.Error())
}

// HandleDomainError converts a domain error into its HTTP response. Category
// validation failures additionally carry the allowed values.
func (h *BaseHandler) HandleDomainError(c *gin.Context, err error) {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		status := dto.GetHTTPStatus(domainErr.Code)
		if domainErr.Code == "INVALID_CATEGORY" {
			c.JSON(status, dto.NewErrorResponseWithAllowed(domainErr.Message, catalog.CategoryNames()))
			return
		}
		c.JSON(status, dto.NewErrorResponse(domainErr.Message))
		return
	}
	h.InternalError(c, err)
}

// BindingError converts a gin binding failure into a 400 response. When the
// categoria rule rejected the field, the allowed values ride along.
func (h *BaseHandler) BindingError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			if fe.Tag() == "categoria" {
				c.JSON(http.StatusBadRequest, dto.NewErrorResponseWithAllowed(
					"Categoría inválida", catalog.CategoryNames()))
				return
			}
			if fe.Tag() == "required" {
				h.BadRequest(c, "Faltan campos requeridos")
				return
			}
		}
	}
	h.BadRequest(c, err.Error())
}
