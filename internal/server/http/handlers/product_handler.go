package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/sxtvrno/storefront/internal/server/http/dto"
)

// ProductHandler serves the catalog.
type ProductHandler struct {
	facade ProductFacade
}

// NewProductHandler constructs ProductHandler.
func NewProductHandler(facade ProductFacade) *ProductHandler {
	return &ProductHandler{facade: facade}
}

// List handles GET /api/products. Administrators also see inactive products.
func (h *ProductHandler) List(c *gin.Context) {
	activeOnly := true
	if principal, ok := CurrentPrincipal(c); ok && principal.Admin() {
		activeOnly = false
	}

	products, err := h.facade.Products(c.Request.Context(), activeOnly)
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		response = append(response, toProductResponse(p))
	}
	c.JSON(http.StatusOK, response)
}

// Get handles GET /api/products/:id.
func (h *ProductHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid product id"})
		return
	}

	product, err := h.facade.Product(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProductResponse(*product))
}

// SetStock handles PUT /api/admin/products/:id/stock.
func (h *ProductHandler) SetStock(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid product id"})
		return
	}

	var req dto.StockUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Stock == nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request body"})
		return
	}

	if err := h.facade.SetProductStock(c.Request.Context(), id, *req.Stock); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
