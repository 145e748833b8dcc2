package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/hoteldesk/folio-backend/internal/core/ports/services"
	"github.com/hoteldesk/folio-backend/internal/dto"
	"github.com/hoteldesk/folio-backend/internal/middleware"
)

// paymentHandler exposes the online payment gateway.
type paymentHandler struct {
	gateway portssvc.PaymentGateway
}

// newPaymentHandler creates a new paymentHandler.
func newPaymentHandler(gateway portssvc.PaymentGateway) *paymentHandler {
	return &paymentHandler{gateway: gateway}
}

// registerPaymentRoutes registers the gateway order routes.
func registerPaymentRoutes(rg *gin.RouterGroup, gateway portssvc.PaymentGateway) {
	h := newPaymentHandler(gateway)

	payments := rg.Group("/payments")
	{
		payments.POST("/orders", h.createOrder)
		payments.POST("/verify", h.verifyPayment)
	}
}

// createOrder godoc
// @Summary Create an online payment order
// @Description Registers an order with the payment gateway for the given amount
// @Tags payments
// @Accept json
// @Produce json
// @Param order body dto.CreateOrderRequest true "Order"
// @Success 201 {object} dto.GatewayOrderResponse
// @Failure 502 {object} map[string]string "Gateway error"
// @Router /payments/orders [post]
func (h *paymentHandler) createOrder(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for createOrder", slog.String("error", err.Error()))
		respondBindError(c, err)
		return
	}

	order, err := h.gateway.CreateOrder(c.Request.Context(), req.Amount, req.Receipt)
	if err != nil {
		logger.Error("Failed to create gateway order", slog.String("error", err.Error()))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to create payment order"})
		return
	}

	c.JSON(http.StatusCreated, dto.GatewayOrderResponse{
		OrderID:  order.OrderID,
		Amount:   order.Amount,
		Currency: order.Currency,
		Receipt:  order.Receipt,
	})
}

// verifyPayment godoc
// @Summary Verify a gateway payment signature
// @Description Client-side pre-check of the checkout callback fields; posting an online payment re-verifies the signature server-side
// @Tags payments
// @Accept json
// @Produce json
// @Param payment body dto.VerifyPaymentRequest true "Callback fields"
// @Success 200 {object} map[string]bool
// @Failure 400 {object} map[string]string "Signature verification failed"
// @Router /payments/verify [post]
func (h *paymentHandler) verifyPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.VerifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for verifyPayment", slog.String("error", err.Error()))
		respondBindError(c, err)
		return
	}

	if !h.gateway.VerifySignature(req.OrderID, req.PaymentID, req.Signature) {
		logger.Warn("Payment signature verification failed", slog.String("order_id", req.OrderID))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Signature verification failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"verified": true})
}
