package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hoteldesk/folio-backend/internal/apperrors"
	"github.com/hoteldesk/folio-backend/internal/core/domain"
	portssvc "github.com/hoteldesk/folio-backend/internal/core/ports/services"
	"github.com/hoteldesk/folio-backend/internal/dto"
	"github.com/hoteldesk/folio-backend/internal/middleware"
	"github.com/hoteldesk/folio-backend/internal/utils"
)

// transactionHandler handles HTTP requests for the folio ledger.
type transactionHandler struct {
	txnService     portssvc.TransactionSvcFacade
	currencySymbol string
}

// newTransactionHandler creates a new transactionHandler.
func newTransactionHandler(txnService portssvc.TransactionSvcFacade, currencySymbol string) *transactionHandler {
	return &transactionHandler{
		txnService:     txnService,
		currencySymbol: currencySymbol,
	}
}

func (h *transactionHandler) toResponse(txn *domain.Transaction) dto.TransactionResponse {
	return dto.ToTransactionResponse(txn, utils.FormatCurrency(txn.Amount, h.currencySymbol))
}

// registerTransactionRoutes registers the routes addressing a single
// transaction.
func registerTransactionRoutes(rg *gin.RouterGroup, txnService portssvc.TransactionSvcFacade, currencySymbol string) {
	h := newTransactionHandler(txnService, currencySymbol)

	transactions := rg.Group("/transactions")
	{
		transactions.PATCH(":transactionID", h.updateTransaction)
		transactions.DELETE(":transactionID", h.deleteDraft)
		transactions.POST(":transactionID/void", h.voidTransaction)
	}
}

// postTransaction godoc
// @Summary Post a transaction to a folio
// @Tags transactions
// @Accept json
// @Produce json
// @Param folioID path string true "Folio ID"
// @Param transaction body dto.CreateTransactionRequest true "Transaction"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string "Validation failure"
// @Failure 409 {object} map[string]string "Folio is settled"
// @Router /folios/{folioID}/transactions [post]
func (h *transactionHandler) postTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	folioID := c.Param("folioID")

	var req dto.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for postTransaction", slog.String("error", err.Error()))
		respondBindError(c, err)
		return
	}

	actorID, ok := requireActor(c)
	if !ok {
		return
	}

	txn, err := h.txnService.PostTransaction(c.Request.Context(), folioID, req, actorID)
	if err != nil {
		respondServiceError(c, err, "Failed to post transaction")
		return
	}

	logger.Info("Transaction posted", slog.String("transaction_id", txn.TransactionID), slog.String("folio_id", folioID))
	c.JSON(http.StatusCreated, h.toResponse(txn))
}

// postRoomCharge godoc
// @Summary Post a nightly room charge, optionally with its GST line
// @Tags transactions
// @Accept json
// @Produce json
// @Param folioID path string true "Folio ID"
// @Param charge body dto.RoomChargeRequest true "Room charge"
// @Success 201 {array} dto.TransactionResponse
// @Router /folios/{folioID}/room-charges [post]
func (h *transactionHandler) postRoomCharge(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	folioID := c.Param("folioID")

	var req dto.RoomChargeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for postRoomCharge", slog.String("error", err.Error()))
		respondBindError(c, err)
		return
	}

	actorID, ok := requireActor(c)
	if !ok {
		return
	}

	txns, err := h.txnService.PostRoomCharge(c.Request.Context(), folioID, req, actorID)
	if err != nil {
		respondServiceError(c, err, "Failed to post room charge")
		return
	}

	resp := make([]dto.TransactionResponse, len(txns))
	for i := range txns {
		resp[i] = h.toResponse(&txns[i])
	}
	c.JSON(http.StatusCreated, resp)
}

// listTransactions godoc
// @Summary List a folio's transactions
// @Description Paginated when unfiltered; filters by type, search term and post date range otherwise
// @Tags transactions
// @Produce json
// @Param folioID path string true "Folio ID"
// @Param limit query int false "Page size" default(50)
// @Param nextToken query string false "Pagination token"
// @Param type query string false "Transaction type filter"
// @Param search query string false "Search term"
// @Param startDate query string false "Inclusive start date (yyyy-mm-dd)"
// @Param endDate query string false "Inclusive end date (yyyy-mm-dd)"
// @Success 200 {object} dto.ListTransactionsResponse
// @Router /folios/{folioID}/transactions [get]
func (h *transactionHandler) listTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	folioID := c.Param("folioID")

	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Error("Failed to bind query for listTransactions", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	txns, nextToken, err := h.txnService.ListTransactions(c.Request.Context(), folioID, params)
	if err != nil {
		respondServiceError(c, err, "Failed to list transactions")
		return
	}

	resp := dto.ListTransactionsResponse{
		Transactions: make([]dto.TransactionResponse, len(txns)),
		NextToken:    nextToken,
	}
	for i := range txns {
		resp.Transactions[i] = h.toResponse(&txns[i])
	}
	c.JSON(http.StatusOK, resp)
}

// getTotals godoc
// @Summary Get folio totals recomputed from the live transaction set
// @Tags transactions
// @Produce json
// @Param folioID path string true "Folio ID"
// @Success 200 {object} dto.FolioTotalsResponse
// @Router /folios/{folioID}/totals [get]
func (h *transactionHandler) getTotals(c *gin.Context) {
	folioID := c.Param("folioID")

	totals, err := h.txnService.GetTotals(c.Request.Context(), folioID)
	if err != nil {
		respondServiceError(c, err, "Failed to compute folio totals")
		return
	}
	c.JSON(http.StatusOK, dto.ToFolioTotalsResponse(*totals, utils.FormatCurrency(totals.Balance, h.currencySymbol)))
}

// revenueBreakdown godoc
// @Summary Sum charge revenue per category for a folio
// @Tags transactions
// @Produce json
// @Param folioID path string true "Folio ID"
// @Success 200 {object} map[string]string "Category to amount"
// @Router /folios/{folioID}/revenue [get]
func (h *transactionHandler) revenueBreakdown(c *gin.Context) {
	folioID := c.Param("folioID")

	breakdown, err := h.txnService.RevenueBreakdown(c.Request.Context(), folioID)
	if err != nil {
		respondServiceError(c, err, "Failed to compute revenue breakdown")
		return
	}

	resp := make(map[string]string, len(breakdown))
	for category, amount := range breakdown {
		resp[string(category)] = amount.String()
	}
	c.JSON(http.StatusOK, resp)
}

// voidTransaction godoc
// @Summary Void a posted transaction with a mandatory reason
// @Tags transactions
// @Accept json
// @Produce json
// @Param transactionID path string true "Transaction ID"
// @Param void body dto.VoidTransactionRequest true "Void reason"
// @Success 200 {object} dto.TransactionResponse
// @Failure 409 {object} map[string]string "Transaction is not posted"
// @Router /transactions/{transactionID}/void [post]
func (h *transactionHandler) voidTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionID := c.Param("transactionID")

	var req dto.VoidTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for voidTransaction", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "A void reason is required"})
		return
	}

	actorID, ok := requireActor(c)
	if !ok {
		return
	}

	txn, err := h.txnService.VoidTransaction(c.Request.Context(), transactionID, req.Reason, actorID)
	if err != nil {
		respondServiceError(c, err, "Failed to void transaction")
		return
	}

	logger.Info("Transaction voided", slog.String("transaction_id", transactionID))
	c.JSON(http.StatusOK, h.toResponse(txn))
}

// deleteDraft godoc
// @Summary Delete a pending transaction draft
// @Description Hard-deletes a pending entry; posted entries can only be voided
// @Tags transactions
// @Param transactionID path string true "Transaction ID"
// @Success 204 "Deleted"
// @Failure 409 {object} map[string]string "Transaction is posted"
// @Router /transactions/{transactionID} [delete]
func (h *transactionHandler) deleteDraft(c *gin.Context) {
	transactionID := c.Param("transactionID")

	actorID, ok := requireActor(c)
	if !ok {
		return
	}

	if err := h.txnService.DeleteDraft(c.Request.Context(), transactionID, actorID); err != nil {
		if errors.Is(err, apperrors.ErrStateConflict) {
			c.JSON(http.StatusConflict, gin.H{"error": "Only pending transactions can be deleted; void posted entries instead"})
			return
		}
		respondServiceError(c, err, "Failed to delete transaction draft")
		return
	}
	c.Status(http.StatusNoContent)
}

// updateTransaction godoc
// @Summary Edit notes/tags of a transaction
// @Tags transactions
// @Accept json
// @Produce json
// @Param transactionID path string true "Transaction ID"
// @Param update body dto.UpdateTransactionRequest true "Fields to update"
// @Success 200 {object} dto.TransactionResponse
// @Router /transactions/{transactionID} [patch]
func (h *transactionHandler) updateTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionID := c.Param("transactionID")

	var req dto.UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for updateTransaction", slog.String("error", err.Error()))
		respondBindError(c, err)
		return
	}

	actorID, ok := requireActor(c)
	if !ok {
		return
	}

	txn, err := h.txnService.UpdateTransaction(c.Request.Context(), transactionID, req, actorID)
	if err != nil {
		respondServiceError(c, err, "Failed to update transaction")
		return
	}
	c.JSON(http.StatusOK, h.toResponse(txn))
}
