package middleware

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/mbsolutions/storefront/internal/domain/catalog"
)

// RegisterValidations installs the storefront's custom binding rules on
// gin's validator engine. Safe to call more than once.
func RegisterValidations() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return v.RegisterValidation("categoria", func(fl validator.FieldLevel) bool {
		return catalog.Category(fl.Field().String()).IsValid()
	})
}
