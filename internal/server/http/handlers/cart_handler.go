package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/sxtvrno/storefront/internal/server/http/dto"
)

// CartHandler manages the per-owner cart endpoints.
type CartHandler struct {
	facade CartFacade
}

// NewCartHandler constructs CartHandler.
func NewCartHandler(facade CartFacade) *CartHandler {
	return &CartHandler{facade: facade}
}

// Get handles GET /api/cart.
func (h *CartHandler) Get(c *gin.Context) {
	owner, ok := CartOwnerFromRequest(c)
	if !ok {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "missing session or auth"})
		return
	}

	cart, err := h.facade.Cart(c.Request.Context(), owner)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCartResponse(cart))
}

// AddItem handles POST /api/cart/items.
func (h *CartHandler) AddItem(c *gin.Context) {
	owner, ok := CartOwnerFromRequest(c)
	if !ok {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "missing session or auth"})
		return
	}

	var req dto.CartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request body"})
		return
	}

	cart, err := h.facade.AddCartItem(c.Request.Context(), owner, req.ProductID, req.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCartResponse(cart))
}

// SetQuantity handles PUT /api/cart/items/:productID.
func (h *CartHandler) SetQuantity(c *gin.Context) {
	owner, ok := CartOwnerFromRequest(c)
	if !ok {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "missing session or auth"})
		return
	}

	productID, err := strconv.ParseInt(c.Param("productID"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid product id"})
		return
	}

	var req dto.QuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Quantity == nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request body"})
		return
	}

	cart, err := h.facade.SetCartQuantity(c.Request.Context(), owner, productID, *req.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCartResponse(cart))
}

// RemoveItem handles DELETE /api/cart/items/:productID.
func (h *CartHandler) RemoveItem(c *gin.Context) {
	owner, ok := CartOwnerFromRequest(c)
	if !ok {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "missing session or auth"})
		return
	}

	productID, err := strconv.ParseInt(c.Param("productID"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid product id"})
		return
	}

	cart, err := h.facade.RemoveCartItem(c.Request.Context(), owner, productID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCartResponse(cart))
}

// Clear handles DELETE /api/cart.
func (h *CartHandler) Clear(c *gin.Context) {
	owner, ok := CartOwnerFromRequest(c)
	if !ok {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "missing session or auth"})
		return
	}

	if err := h.facade.ClearCart(c.Request.Context(), owner); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
