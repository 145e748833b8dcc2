package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/hoteldesk/folio-backend/internal/core/ports/services"
	"github.com/hoteldesk/folio-backend/internal/dto"
	"github.com/hoteldesk/folio-backend/internal/middleware"
)

// auditHandler handles HTTP requests for the read-only audit trail view.
type auditHandler struct {
	auditService portssvc.AuditSvcFacade
}

// newAuditHandler creates a new auditHandler.
func newAuditHandler(auditService portssvc.AuditSvcFacade) *auditHandler {
	return &auditHandler{auditService: auditService}
}

func bindAuditParams(c *gin.Context) (dto.ListAuditParams, bool) {
	var params dto.ListAuditParams
	if err := c.ShouldBindQuery(&params); err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Failed to bind query for audit view", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return params, false
	}
	return params, true
}

// listAudit godoc
// @Summary List the filtered audit trail of a folio
// @Tags audit
// @Produce json
// @Param folioID path string true "Folio ID"
// @Param entityType query string false "Entity type filter"
// @Param action query string false "Action filter"
// @Param actorID query string false "Actor filter"
// @Param search query string false "Search term"
// @Param startDate query string false "Inclusive start date (yyyy-mm-dd)"
// @Param endDate query string false "Inclusive end date (yyyy-mm-dd)"
// @Success 200 {array} dto.AuditEntryResponse
// @Router /folios/{folioID}/audit [get]
func (h *auditHandler) listAudit(c *gin.Context) {
	folioID := c.Param("folioID")

	params, ok := bindAuditParams(c)
	if !ok {
		return
	}

	entries, err := h.auditService.ListFolioAudit(c.Request.Context(), folioID, params)
	if err != nil {
		respondServiceError(c, err, "Failed to load audit trail")
		return
	}
	c.JSON(http.StatusOK, dto.ToAuditEntryResponses(entries))
}

// listAuditGrouped godoc
// @Summary List the audit trail grouped by calendar day, newest day first
// @Tags audit
// @Produce json
// @Param folioID path string true "Folio ID"
// @Success 200 {array} dto.AuditDayGroupResponse
// @Router /folios/{folioID}/audit/grouped [get]
func (h *auditHandler) listAuditGrouped(c *gin.Context) {
	folioID := c.Param("folioID")

	params, ok := bindAuditParams(c)
	if !ok {
		return
	}

	groups, err := h.auditService.GroupFolioAuditByDay(c.Request.Context(), folioID, params)
	if err != nil {
		respondServiceError(c, err, "Failed to load audit trail")
		return
	}
	c.JSON(http.StatusOK, groups)
}

// exportAuditCSV godoc
// @Summary Export the filtered audit trail as CSV
// @Tags audit
// @Produce text/csv
// @Param folioID path string true "Folio ID"
// @Success 200 {file} binary
// @Router /folios/{folioID}/audit/export [get]
func (h *auditHandler) exportAuditCSV(c *gin.Context) {
	folioID := c.Param("folioID")

	params, ok := bindAuditParams(c)
	if !ok {
		return
	}

	filename, body, err := h.auditService.ExportCSV(c.Request.Context(), folioID, params)
	if err != nil {
		respondServiceError(c, err, "Failed to export audit trail")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/csv", body)
}
