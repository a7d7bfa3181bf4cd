package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/sxtvrno/storefront/internal/domain/model"
	"github.com/sxtvrno/storefront/internal/server/http/dto"
)

// OrderHandler manages order-related endpoints.
type OrderHandler struct {
	facade OrderFacade
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade OrderFacade) *OrderHandler {
	return &OrderHandler{facade: facade}
}

func orderID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid order id"})
		return 0, false
	}
	return id, true
}

// List handles GET /api/orders.
func (h *OrderHandler) List(c *gin.Context) {
	principal, ok := CurrentPrincipal(c)
	if !ok {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	orders, err := h.facade.Orders(c.Request.Context(), principal.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	if len(orders) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	response := make([]dto.OrderResponse, 0, len(orders))
	for i := range orders {
		response = append(response, toOrderResponse(&orders[i]))
	}
	c.JSON(http.StatusOK, response)
}

// Get handles GET /api/orders/:id.
func (h *OrderHandler) Get(c *gin.Context) {
	principal, ok := CurrentPrincipal(c)
	if !ok {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}
	id, ok := orderID(c)
	if !ok {
		return
	}

	order, err := h.facade.Order(c.Request.Context(), principal, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(order))
}

// Payments handles GET /api/orders/:id/payments.
func (h *OrderHandler) Payments(c *gin.Context) {
	principal, ok := CurrentPrincipal(c)
	if !ok {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}
	id, ok := orderID(c)
	if !ok {
		return
	}

	payments, err := h.facade.OrderPayments(c.Request.Context(), principal, id)
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]dto.PaymentResponse, 0, len(payments))
	for _, p := range payments {
		response = append(response, toPaymentResponse(p))
	}
	c.JSON(http.StatusOK, response)
}

// ListAll handles GET /api/admin/orders.
func (h *OrderHandler) ListAll(c *gin.Context) {
	orders, err := h.facade.AllOrders(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]dto.OrderResponse, 0, len(orders))
	for i := range orders {
		response = append(response, toOrderResponse(&orders[i]))
	}
	c.JSON(http.StatusOK, response)
}

// UpdateStatus handles PATCH /api/admin/orders/:id/status.
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, ok := orderID(c)
	if !ok {
		return
	}

	var req dto.StatusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request body"})
		return
	}

	order, err := h.facade.UpdateFulfillment(c.Request.Context(), id, model.OrderStatus(req.Status))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(order))
}
