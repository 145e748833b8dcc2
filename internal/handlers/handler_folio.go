package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/hoteldesk/folio-backend/internal/core/ports/services"
	"github.com/hoteldesk/folio-backend/internal/dto"
	"github.com/hoteldesk/folio-backend/internal/middleware"
	"github.com/hoteldesk/folio-backend/internal/utils"
)

// folioHandler handles HTTP requests related to folios.
type folioHandler struct {
	folioService   portssvc.FolioSvcFacade
	currencySymbol string
}

// newFolioHandler creates a new folioHandler.
func newFolioHandler(folioService portssvc.FolioSvcFacade, currencySymbol string) *folioHandler {
	return &folioHandler{
		folioService:   folioService,
		currencySymbol: currencySymbol,
	}
}

// RegisterFolioRoutes registers the /folios subtree, including the per-folio
// transaction, transfer and audit views.
func RegisterFolioRoutes(rg *gin.RouterGroup, folioService portssvc.FolioSvcFacade, txnService portssvc.TransactionSvcFacade, transferService portssvc.TransferSvcFacade, auditService portssvc.AuditSvcFacade, currencySymbol string) {
	h := newFolioHandler(folioService, currencySymbol)
	th := newTransactionHandler(txnService, currencySymbol)
	trh := newTransferHandler(transferService)
	ah := newAuditHandler(auditService)

	folios := rg.Group("/folios/:folioID")
	{
		folios.GET("", h.getFolio)
		folios.PATCH("", h.updateFolio)
		folios.POST("/reopen", h.reopenFolio)

		folios.GET("/totals", th.getTotals)
		folios.GET("/revenue", th.revenueBreakdown)
		folios.GET("/transactions", th.listTransactions)
		folios.POST("/transactions", th.postTransaction)
		folios.POST("/room-charges", th.postRoomCharge)

		folios.GET("/transfers", trh.listTransfers)

		folios.GET("/audit", ah.listAudit)
		folios.GET("/audit/grouped", ah.listAuditGrouped)
		folios.GET("/audit/export", ah.exportAuditCSV)
	}
}

// getOrCreateMasterFolio godoc
// @Summary Get or create the master folio of a reservation
// @Description Returns the reservation's master folio, opening it lazily on first use
// @Tags folios
// @Produce json
// @Param reservationID path string true "Reservation ID"
// @Success 200 {object} dto.FolioResponse
// @Failure 404 {object} map[string]string "Reservation not found"
// @Router /reservations/{reservationID}/folios/master [post]
func (h *folioHandler) getOrCreateMasterFolio(c *gin.Context) {
	reservationID := c.Param("reservationID")

	actorID, ok := requireActor(c)
	if !ok {
		return
	}

	folio, err := h.folioService.GetOrCreateMasterFolio(c.Request.Context(), reservationID, actorID)
	if err != nil {
		respondServiceError(c, err, "Failed to get or create master folio")
		return
	}
	c.JSON(http.StatusOK, dto.ToFolioResponse(folio))
}

// createFolio godoc
// @Summary Open an additional folio on a reservation
// @Tags folios
// @Accept json
// @Produce json
// @Param reservationID path string true "Reservation ID"
// @Param folio body dto.CreateFolioRequest true "Folio"
// @Success 201 {object} dto.FolioResponse
// @Failure 400 {object} map[string]string "Invalid request format"
// @Router /reservations/{reservationID}/folios [post]
func (h *folioHandler) createFolio(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	reservationID := c.Param("reservationID")

	var req dto.CreateFolioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for createFolio", slog.String("error", err.Error()))
		respondBindError(c, err)
		return
	}

	actorID, ok := requireActor(c)
	if !ok {
		return
	}

	folio, err := h.folioService.CreateFolio(c.Request.Context(), reservationID, req, actorID)
	if err != nil {
		respondServiceError(c, err, "Failed to create folio")
		return
	}
	c.JSON(http.StatusCreated, dto.ToFolioResponse(folio))
}

// getFolio godoc
// @Summary Get a folio with live totals
// @Description Retrieves a folio; totals are recomputed from the full transaction set on every read
// @Tags folios
// @Produce json
// @Param folioID path string true "Folio ID"
// @Success 200 {object} dto.FolioResponse
// @Failure 404 {object} map[string]string "Folio not found"
// @Router /folios/{folioID} [get]
func (h *folioHandler) getFolio(c *gin.Context) {
	folioID := c.Param("folioID")

	folio, totals, err := h.folioService.GetFolio(c.Request.Context(), folioID)
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve folio")
		return
	}

	resp := dto.ToFolioResponse(folio)
	totalsResp := dto.ToFolioTotalsResponse(*totals, utils.FormatCurrency(totals.Balance, h.currencySymbol))
	resp.Totals = &totalsResp
	c.JSON(http.StatusOK, resp)
}

// listFolios godoc
// @Summary List every folio on a reservation
// @Tags folios
// @Produce json
// @Param reservationID path string true "Reservation ID"
// @Success 200 {array} dto.FolioResponse
// @Router /reservations/{reservationID}/folios [get]
func (h *folioHandler) listFolios(c *gin.Context) {
	reservationID := c.Param("reservationID")

	folios, err := h.folioService.ListFolios(c.Request.Context(), reservationID)
	if err != nil {
		respondServiceError(c, err, "Failed to list folios")
		return
	}

	resp := make([]dto.FolioResponse, len(folios))
	for i := range folios {
		resp[i] = dto.ToFolioResponse(&folios[i])
	}
	c.JSON(http.StatusOK, resp)
}

// updateFolio godoc
// @Summary Edit name/notes of an open folio
// @Tags folios
// @Accept json
// @Produce json
// @Param folioID path string true "Folio ID"
// @Param folio body dto.UpdateFolioRequest true "Fields to update"
// @Success 200 {object} dto.FolioResponse
// @Failure 409 {object} map[string]string "Folio is settled"
// @Router /folios/{folioID} [patch]
func (h *folioHandler) updateFolio(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	folioID := c.Param("folioID")

	var req dto.UpdateFolioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for updateFolio", slog.String("error", err.Error()))
		respondBindError(c, err)
		return
	}

	actorID, ok := requireActor(c)
	if !ok {
		return
	}

	folio, err := h.folioService.UpdateFolio(c.Request.Context(), folioID, req, actorID)
	if err != nil {
		respondServiceError(c, err, "Failed to update folio")
		return
	}
	c.JSON(http.StatusOK, dto.ToFolioResponse(folio))
}

// reopenFolio godoc
// @Summary Reopen a settled folio
// @Description Flips a settled folio back to open; no balance side effects
// @Tags folios
// @Produce json
// @Param folioID path string true "Folio ID"
// @Success 200 {object} dto.FolioResponse
// @Failure 409 {object} map[string]string "Folio is not settled"
// @Router /folios/{folioID}/reopen [post]
func (h *folioHandler) reopenFolio(c *gin.Context) {
	folioID := c.Param("folioID")

	actorID, ok := requireActor(c)
	if !ok {
		return
	}

	folio, err := h.folioService.ReopenFolio(c.Request.Context(), folioID, actorID)
	if err != nil {
		respondServiceError(c, err, "Failed to reopen folio")
		return
	}
	c.JSON(http.StatusOK, dto.ToFolioResponse(folio))
}
