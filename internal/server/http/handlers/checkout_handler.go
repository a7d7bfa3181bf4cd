package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sxtvrno/storefront/internal/server/http/dto"
)

// CheckoutHandler drives order creation and the gateway payment flow.
type CheckoutHandler struct {
	facade CheckoutFacade
}

// NewCheckoutHandler constructs CheckoutHandler.
func NewCheckoutHandler(facade CheckoutFacade) *CheckoutHandler {
	return &CheckoutHandler{facade: facade}
}

// CreateOrder handles POST /api/checkout/orders.
func (h *CheckoutHandler) CreateOrder(c *gin.Context) {
	principal, ok := CurrentPrincipal(c)
	if !ok {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request body"})
		return
	}

	order, err := h.facade.CreateOrder(c.Request.Context(), principal.UserID, req.ShippingAddress)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toOrderResponse(order))
}

// CreatePayment handles POST /api/checkout/payment/create.
func (h *CheckoutHandler) CreatePayment(c *gin.Context) {
	principal, ok := CurrentPrincipal(c)
	if !ok {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	var req dto.PaymentCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request body"})
		return
	}

	initiation, err := h.facade.InitiatePayment(c.Request.Context(), principal.UserID, req.OrderID, req.ShippingAddress, req.Amount)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.PaymentCreateResponse{
		OrderID: initiation.OrderID,
		Token:   initiation.Token,
		URL:     initiation.URL,
	})
}

// ConfirmPayment handles POST /api/checkout/payment/confirm. A gateway
// rejection is a successful settlement with a `rejected` status, not an
// error.
func (h *CheckoutHandler) ConfirmPayment(c *gin.Context) {
	var req dto.PaymentConfirmRequest
	// The gateway redirect posts the token as a form field; API clients
	// send JSON.
	if token := c.PostForm("token_ws"); token != "" {
		req.Token = token
	} else if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "missing token"})
		return
	}

	result, err := h.facade.ConfirmPayment(c.Request.Context(), req.Token)
	if err != nil {
		respondError(c, err)
		return
	}

	response := dto.PaymentConfirmResponse{
		Status:       result.Status,
		Amount:       result.Amount,
		ResponseCode: result.ResponseCode,
		AlreadyPaid:  result.AlreadyPaid,
	}
	if result.Order != nil {
		order := toOrderResponse(result.Order)
		response.Order = &order
	}
	if result.Payment != nil {
		response.AuthorizationCode = result.Payment.AuthorizationCode
	}
	c.JSON(http.StatusOK, response)
}

// Refund handles POST /api/checkout/payment/refund. Administrative only.
func (h *CheckoutHandler) Refund(c *gin.Context) {
	var req dto.RefundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request body"})
		return
	}

	resp, err := h.facade.Refund(c.Request.Context(), req.OrderID, req.Amount)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.RefundResponse{
		Type:            resp.Type,
		NullifiedAmount: resp.NullifiedAmount,
		Balance:         resp.Balance,
	})
}
