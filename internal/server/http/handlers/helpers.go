package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/sxtvrno/storefront/internal/domain/errors"
	"github.com/sxtvrno/storefront/internal/domain/model"
	"github.com/sxtvrno/storefront/internal/server/http/dto"
	"github.com/sxtvrno/storefront/internal/server/http/middleware"
)

// CurrentPrincipal extracts the authenticated principal from context.
func CurrentPrincipal(c *gin.Context) (model.Principal, bool) {
	return middleware.CurrentPrincipal(c)
}

// CartOwnerFromRequest resolves the cart owner: the authenticated customer
// when a principal is attached, otherwise the X-Session-ID header.
func CartOwnerFromRequest(c *gin.Context) (model.CartOwner, bool) {
	if principal, ok := CurrentPrincipal(c); ok {
		return model.CustomerOwner(principal.UserID), true
	}
	if sessionID := c.GetHeader(middleware.SessionHeader); sessionID != "" {
		return model.SessionOwner(sessionID), true
	}
	return model.CartOwner{}, false
}

func respondError(c *gin.Context, err error) {
	var stockErr *domainErrors.InsufficientStockError
	switch {
	case errors.As(err, &stockErr):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: stockErr.Error()})
	case errors.Is(err, domainErrors.ErrInvalidQuantity),
		errors.Is(err, domainErrors.ErrInvalidAmount),
		errors.Is(err, domainErrors.ErrEmptyCart),
		errors.Is(err, domainErrors.ErrAmountMismatch),
		errors.Is(err, domainErrors.ErrProductUnavailable):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, domainErrors.ErrNotFound):
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, domainErrors.ErrForbidden):
		c.JSON(http.StatusForbidden, dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, domainErrors.ErrOrderNotPayable),
		errors.Is(err, domainErrors.ErrAlreadyExists):
		c.JSON(http.StatusConflict, dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, domainErrors.ErrOrderNotResolved),
		errors.Is(err, domainErrors.ErrInvalidTransition):
		c.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, domainErrors.ErrGatewayUnavailable),
		errors.Is(err, domainErrors.ErrConfirmationFailed):
		c.JSON(http.StatusBadGateway, dto.ErrorResponse{Error: err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal error"})
	}
}

func toCartResponse(cart *model.Cart) dto.CartResponse {
	items := make([]dto.CartItemResponse, 0, len(cart.Items))
	for _, it := range cart.Items {
		items = append(items, dto.CartItemResponse{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			LineTotal: it.LineTotal,
		})
	}
	return dto.CartResponse{Items: items, Total: cart.Total()}
}

func toProductResponse(p model.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:     p.ID,
		Name:   p.Name,
		Price:  p.Price,
		Stock:  p.Stock,
		Active: p.Active,
	}
}

func toOrderResponse(order *model.Order) dto.OrderResponse {
	lines := make([]dto.OrderLineResponse, 0, len(order.Lines))
	for _, l := range order.Lines {
		lines = append(lines, dto.OrderLineResponse{
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			Subtotal:  l.Subtotal(),
		})
	}
	return dto.OrderResponse{
		ID:              order.ID,
		Status:          string(order.Status),
		Total:           order.Total,
		ShippingAddress: order.ShippingAddress,
		Lines:           lines,
		CreatedAt:       order.CreatedAt,
		UpdatedAt:       order.UpdatedAt,
	}
}

func toPaymentResponse(p model.Payment) dto.PaymentResponse {
	return dto.PaymentResponse{
		ID:                p.ID,
		OrderID:           p.OrderID,
		BuyOrder:          p.BuyOrder,
		Amount:            p.Amount,
		Status:            string(p.Status),
		AuthorizationCode: p.AuthorizationCode,
		CreatedAt:         p.CreatedAt,
	}
}
