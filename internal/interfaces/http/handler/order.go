package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	orderapp "github.com/mbsolutions/storefront/internal/application/order"
	"github.com/mbsolutions/storefront/internal/domain/order"
	"github.com/shopspring/decimal"
)

// OrderHandler handles the public checkout endpoint
type OrderHandler struct {
	BaseHandler
	orders *orderapp.OrderService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orders *orderapp.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

// SubmitOrderRequest is the checkout payload, field names matching what the
// storefront cart has always posted
type SubmitOrderRequest struct {
	Cliente struct {
		Nombre    string `json:"nombre" binding:"required"`
		Email     string `json:"email" binding:"required"`
		Telefono  string `json:"telefono"`
		Direccion string `json:"direccion"`
		Notas     string `json:"notas"`
	} `json:"cliente" binding:"required"`
	Productos []struct {
		ID       int64    `json:"id" binding:"required"`
		Name     string   `json:"name" binding:"required"`
		Price    *float64 `json:"price" binding:"required"`
		Quantity int      `json:"quantity" binding:"required,gt=0"`
	} `json:"productos" binding:"required,min=1,dive"`
	Total *float64 `json:"total" binding:"required"`
	Fecha string   `json:"fecha"`
}

// SubmitOrderResponse acknowledges an accepted order
type SubmitOrderResponse struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	PedidoID int64  `json:"pedidoId"`
}

// Submit accepts a checkout submission and logs it as a pending order.
// The order is accepted once persisted; the sales notification is
// best-effort and cannot fail the request.
func (h *OrderHandler) Submit(c *gin.Context) {
	var req SubmitOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	lines := make([]order.Line, len(req.Productos))
	for i, p := range req.Productos {
		lines[i] = order.Line{
			ProductID: p.ID,
			Name:      p.Name,
			Price:     decimal.NewFromFloat(*p.Price),
			Quantity:  p.Quantity,
		}
	}

	date := time.Time{}
	if req.Fecha != "" {
		if parsed, err := time.Parse(time.RFC3339, req.Fecha); err == nil {
			date = parsed
		}
	}

	o, err := h.orders.Submit(c.Request.Context(), orderapp.SubmitOrderRequest{
		Customer: order.Customer{
			Name:    req.Cliente.Nombre,
			Email:   req.Cliente.Email,
			Phone:   req.Cliente.Telefono,
			Address: req.Cliente.Direccion,
			Notes:   req.Cliente.Notas,
		},
		Lines: lines,
		Total: decimal.NewFromFloat(*req.Total),
		Date:  date,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, SubmitOrderResponse{
		Success:  true,
		Message:  "Pedido recibido exitosamente",
		PedidoID: o.ID,
	})
}
