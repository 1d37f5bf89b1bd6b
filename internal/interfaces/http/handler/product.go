package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	catalogapp "github.com/mbsolutions/storefront/internal/application/catalog"
	"github.com/mbsolutions/storefront/internal/domain/catalog"
	"github.com/mbsolutions/storefront/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ProductHandler handles catalog API endpoints
type ProductHandler struct {
	BaseHandler
	products *catalogapp.ProductService
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(products *catalogapp.ProductService) *ProductHandler {
	return &ProductHandler{products: products}
}

// CreateProductRequest is the admin create payload. Price and stock bind to
// pointers so an explicit zero is distinguishable from an absent field.
type CreateProductRequest struct {
	Code        string   `json:"code" binding:"required,min=1,max=50"`
	Name        string   `json:"name" binding:"required,min=1,max=200"`
	Category    string   `json:"category" binding:"required,categoria"`
	Price       *float64 `json:"price" binding:"required"`
	Stock       *int     `json:"stock" binding:"required"`
	Description string   `json:"description" binding:"required,min=1,max=2000"`
	Image       string   `json:"image"`
}

// UpdateProductRequest is the partial admin update payload; absent fields
// stay untouched
type UpdateProductRequest struct {
	Code        *string  `json:"code" binding:"omitempty,min=1,max=50"`
	Name        *string  `json:"name" binding:"omitempty,min=1,max=200"`
	Category    *string  `json:"category" binding:"omitempty,categoria"`
	Price       *float64 `json:"price"`
	Stock       *int     `json:"stock"`
	Description *string  `json:"description" binding:"omitempty,min=1,max=2000"`
	Image       *string  `json:"image"`
}

// mutationResponse wraps the mutated record the way the admin panel expects
type mutationResponse struct {
	Success bool             `json:"success"`
	Message string           `json:"message"`
	Product *catalog.Product `json:"product"`
}

// List returns the public product listing as a bare array
func (h *ProductHandler) List(c *gin.Context) {
	products, err := h.products.List(c.Request.Context())
	if err != nil {
		h.InternalError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

// Get returns one product by id
func (h *ProductHandler) Get(c *gin.Context) {
	id, ok := h.productID(c)
	if !ok {
		return
	}
	product, err := h.products.Get(c.Request.Context(), id)
	if err != nil {
		h.handleLookupError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// Create adds a product to the catalog
func (h *ProductHandler) Create(c *gin.Context) {
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	price := decimal.NewFromFloat(*req.Price)
	product, err := h.products.Create(c.Request.Context(), catalogapp.CreateProductRequest{
		Code:        req.Code,
		Name:        req.Name,
		Category:    req.Category,
		Price:       &price,
		Stock:       req.Stock,
		Description: req.Description,
		Image:       req.Image,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, mutationResponse{
		Success: true,
		Message: "Producto creado exitosamente",
		Product: product,
	})
}

// Update applies a partial update to a product
func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := h.productID(c)
	if !ok {
		return
	}

	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	appReq := catalogapp.UpdateProductRequest{
		Code:        req.Code,
		Name:        req.Name,
		Category:    req.Category,
		Stock:       req.Stock,
		Description: req.Description,
		Image:       req.Image,
	}
	if req.Price != nil {
		price := decimal.NewFromFloat(*req.Price)
		appReq.Price = &price
	}

	product, err := h.products.Update(c.Request.Context(), id, appReq)
	if err != nil {
		h.handleLookupError(c, err)
		return
	}

	c.JSON(http.StatusOK, mutationResponse{
		Success: true,
		Message: "Producto actualizado exitosamente",
		Product: product,
	})
}

// Delete removes a product and returns the removed record
func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := h.productID(c)
	if !ok {
		return
	}
	product, err := h.products.Delete(c.Request.Context(), id)
	if err != nil {
		h.handleLookupError(c, err)
		return
	}

	c.JSON(http.StatusOK, mutationResponse{
		Success: true,
		Message: "Producto eliminado exitosamente",
		Product: product,
	})
}

func (h *ProductHandler) productID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		h.BadRequest(c, "ID de producto inválido")
		return 0, false
	}
	return id, true
}

func (h *ProductHandler) handleLookupError(c *gin.Context, err error) {
	if errors.Is(err, shared.ErrNotFound) {
		h.NotFound(c, "Producto no encontrado")
		return
	}
	h.HandleDomainError(c, err)
}
