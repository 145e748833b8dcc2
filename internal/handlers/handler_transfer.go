package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hoteldesk/folio-backend/internal/apperrors"
	portssvc "github.com/hoteldesk/folio-backend/internal/core/ports/services"
	"github.com/hoteldesk/folio-backend/internal/dto"
	"github.com/hoteldesk/folio-backend/internal/middleware"
)

// transferHandler handles HTTP requests for moving transactions between folios.
type transferHandler struct {
	transferService portssvc.TransferSvcFacade
}

// newTransferHandler creates a new transferHandler.
func newTransferHandler(transferService portssvc.TransferSvcFacade) *transferHandler {
	return &transferHandler{transferService: transferService}
}

// registerTransferRoutes registers the transfer route. Per-folio transfer
// history is registered under /folios.
func registerTransferRoutes(rg *gin.RouterGroup, transferService portssvc.TransferSvcFacade) {
	h := newTransferHandler(transferService)
	rg.POST("/transfers", h.transfer)
}

// transfer godoc
// @Summary Move transactions to another folio
// @Description Moves the selected transactions to an existing open folio or one created on the fly. Item moves are best effort; a 207 response reports partial failure with the per-item outcomes.
// @Tags transfers
// @Accept json
// @Produce json
// @Param transfer body dto.TransferRequest true "Transfer"
// @Success 200 {object} dto.TransferRecordResponse
// @Success 207 {object} dto.TransferRecordResponse "Some items failed"
// @Failure 400 {object} map[string]string "Validation failure"
// @Failure 409 {object} map[string]string "Folio is settled"
// @Router /transfers [post]
func (h *transferHandler) transfer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for transfer", slog.String("error", err.Error()))
		respondBindError(c, err)
		return
	}

	actorID, ok := requireActor(c)
	if !ok {
		return
	}

	record, err := h.transferService.Transfer(c.Request.Context(), req, actorID)
	if err != nil {
		if errors.Is(err, apperrors.ErrPartialFailure) && record != nil {
			// The record carries the per-item outcomes for both the moved and
			// the failed entries.
			logger.Warn("Transfer partially failed", slog.String("transfer_id", record.TransferID), slog.String("error", err.Error()))
			c.JSON(http.StatusMultiStatus, dto.ToTransferRecordResponse(record))
			return
		}
		respondServiceError(c, err, "Failed to transfer transactions")
		return
	}

	c.JSON(http.StatusOK, dto.ToTransferRecordResponse(record))
}

// listTransfers godoc
// @Summary List transfer records touching a folio
// @Tags transfers
// @Produce json
// @Param folioID path string true "Folio ID"
// @Success 200 {array} dto.TransferRecordResponse
// @Router /folios/{folioID}/transfers [get]
func (h *transferHandler) listTransfers(c *gin.Context) {
	folioID := c.Param("folioID")

	records, err := h.transferService.ListTransfers(c.Request.Context(), folioID)
	if err != nil {
		respondServiceError(c, err, "Failed to list transfers")
		return
	}

	resp := make([]dto.TransferRecordResponse, len(records))
	for i := range records {
		resp[i] = dto.ToTransferRecordResponse(&records[i])
	}
	c.JSON(http.StatusOK, resp)
}
