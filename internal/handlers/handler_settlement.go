package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	portssvc "github.com/hoteldesk/folio-backend/internal/core/ports/services"
	"github.com/hoteldesk/folio-backend/internal/dto"
	"github.com/hoteldesk/folio-backend/internal/middleware"
)

// settlementHandler handles HTTP requests for the settlement wizard.
type settlementHandler struct {
	settlementService portssvc.SettlementSvcFacade
}

// newSettlementHandler creates a new settlementHandler.
func newSettlementHandler(settlementService portssvc.SettlementSvcFacade) *settlementHandler {
	return &settlementHandler{settlementService: settlementService}
}

// registerSettlementRoutes registers the settlement wizard routes.
func registerSettlementRoutes(rg *gin.RouterGroup, settlementService portssvc.SettlementSvcFacade) {
	h := newSettlementHandler(settlementService)

	settlements := rg.Group("/settlements")
	{
		settlements.POST("", h.startSettlement)
		settlements.GET(":settlementID", h.getSettlement)
		settlements.POST(":settlementID/payment", h.collectPayment)
		settlements.POST(":settlementID/settle", h.settle)
		settlements.GET(":settlementID/receipt", h.downloadReceipt)
	}
}

// startSettlement godoc
// @Summary Start the settlement wizard for a folio
// @Description Opens a wizard run; a zero or credit balance skips the payment stage
// @Tags settlements
// @Accept json
// @Produce json
// @Param settlement body dto.StartSettlementRequest true "Folio to settle"
// @Success 201 {object} dto.SettlementResponse
// @Failure 409 {object} map[string]string "Folio already settled"
// @Router /settlements [post]
func (h *settlementHandler) startSettlement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.StartSettlementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for startSettlement", slog.String("error", err.Error()))
		respondBindError(c, err)
		return
	}

	actorID, ok := requireActor(c)
	if !ok {
		return
	}

	settlement, err := h.settlementService.StartSettlement(c.Request.Context(), req, actorID)
	if err != nil {
		respondServiceError(c, err, "Failed to start settlement")
		return
	}
	c.JSON(http.StatusCreated, dto.ToSettlementResponse(settlement))
}

// getSettlement godoc
// @Summary Get a settlement wizard run
// @Tags settlements
// @Produce json
// @Param settlementID path string true "Settlement ID"
// @Success 200 {object} dto.SettlementResponse
// @Router /settlements/{settlementID} [get]
func (h *settlementHandler) getSettlement(c *gin.Context) {
	settlementID := c.Param("settlementID")

	settlement, err := h.settlementService.GetSettlement(c.Request.Context(), settlementID)
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve settlement")
		return
	}
	c.JSON(http.StatusOK, dto.ToSettlementResponse(settlement))
}

// collectPayment godoc
// @Summary Collect an outstanding balance during the payment stage
// @Tags settlements
// @Accept json
// @Produce json
// @Param settlementID path string true "Settlement ID"
// @Param payment body dto.SettlementPaymentRequest true "Payment"
// @Success 200 {object} dto.SettlementResponse
// @Failure 400 {object} map[string]string "Amount exceeds balance"
// @Failure 409 {object} map[string]string "Run is not in the payment stage"
// @Router /settlements/{settlementID}/payment [post]
func (h *settlementHandler) collectPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	settlementID := c.Param("settlementID")

	var req dto.SettlementPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for collectPayment", slog.String("error", err.Error()))
		respondBindError(c, err)
		return
	}

	actorID, ok := requireActor(c)
	if !ok {
		return
	}

	settlement, err := h.settlementService.CollectPayment(c.Request.Context(), settlementID, req, actorID)
	if err != nil {
		respondServiceError(c, err, "Failed to collect settlement payment")
		return
	}
	c.JSON(http.StatusOK, dto.ToSettlementResponse(settlement))
}

// settle godoc
// @Summary Complete the settlement from the confirm stage
// @Description Settles the folio and optionally checks out the reservation. A residual balance requires acknowledgeBalance.
// @Tags settlements
// @Accept json
// @Produce json
// @Param settlementID path string true "Settlement ID"
// @Param settle body dto.SettleRequest true "Completion options"
// @Success 200 {object} dto.SettlementSummaryResponse
// @Failure 409 {object} map[string]string "Outstanding balance not acknowledged"
// @Router /settlements/{settlementID}/settle [post]
func (h *settlementHandler) settle(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	settlementID := c.Param("settlementID")

	var req dto.SettleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for settle", slog.String("error", err.Error()))
		respondBindError(c, err)
		return
	}

	actorID, ok := requireActor(c)
	if !ok {
		return
	}

	summary, err := h.settlementService.Settle(c.Request.Context(), settlementID, req, actorID)
	if err != nil {
		respondServiceError(c, err, "Failed to settle folio")
		return
	}
	c.JSON(http.StatusOK, dto.ToSettlementSummaryResponse(summary))
}

// downloadReceipt godoc
// @Summary Download the settlement receipt PDF
// @Tags settlements
// @Produce application/pdf
// @Param settlementID path string true "Settlement ID"
// @Success 200 {file} binary
// @Failure 409 {object} map[string]string "Settlement is not complete"
// @Router /settlements/{settlementID}/receipt [get]
func (h *settlementHandler) downloadReceipt(c *gin.Context) {
	settlementID := c.Param("settlementID")

	pdf, err := h.settlementService.RenderReceipt(c.Request.Context(), settlementID)
	if err != nil {
		respondServiceError(c, err, "Failed to render receipt")
		return
	}

	filename := fmt.Sprintf("settlement-receipt-%s.pdf", time.Now().UTC().Format("2006-01-02"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}
