package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/hoteldesk/folio-backend/internal/core/ports/services"
	"github.com/hoteldesk/folio-backend/internal/dto"
	"github.com/hoteldesk/folio-backend/internal/middleware"
)

// reservationHandler handles HTTP requests for the minimal stay records the
// billing core depends on.
type reservationHandler struct {
	reservationService portssvc.ReservationSvcFacade
}

// newReservationHandler creates a new reservationHandler.
func newReservationHandler(reservationService portssvc.ReservationSvcFacade) *reservationHandler {
	return &reservationHandler{reservationService: reservationService}
}

// registerReservationRoutes registers the /reservations subtree, including the
// per-reservation folio routes.
func registerReservationRoutes(rg *gin.RouterGroup, reservationService portssvc.ReservationSvcFacade, folioService portssvc.FolioSvcFacade, currencySymbol string) {
	h := newReservationHandler(reservationService)
	fh := newFolioHandler(folioService, currencySymbol)

	reservations := rg.Group("/reservations")
	{
		reservations.POST("", h.createReservation)
		reservations.GET(":reservationID", h.getReservation)
		reservations.POST(":reservationID/checkout", h.checkout)

		reservations.GET(":reservationID/folios", fh.listFolios)
		reservations.POST(":reservationID/folios", fh.createFolio)
		reservations.POST(":reservationID/folios/master", fh.getOrCreateMasterFolio)
	}
}

// createReservation godoc
// @Summary Record a stay
// @Tags reservations
// @Accept json
// @Produce json
// @Param reservation body dto.CreateReservationRequest true "Reservation"
// @Success 201 {object} dto.ReservationResponse
// @Router /reservations [post]
func (h *reservationHandler) createReservation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for createReservation", slog.String("error", err.Error()))
		respondBindError(c, err)
		return
	}

	actorID, ok := requireActor(c)
	if !ok {
		return
	}

	reservation, err := h.reservationService.CreateReservation(c.Request.Context(), req, actorID)
	if err != nil {
		respondServiceError(c, err, "Failed to create reservation")
		return
	}
	c.JSON(http.StatusCreated, dto.ToReservationResponse(reservation))
}

// getReservation godoc
// @Summary Get a reservation
// @Tags reservations
// @Produce json
// @Param reservationID path string true "Reservation ID"
// @Success 200 {object} dto.ReservationResponse
// @Failure 404 {object} map[string]string "Reservation not found"
// @Router /reservations/{reservationID} [get]
func (h *reservationHandler) getReservation(c *gin.Context) {
	reservationID := c.Param("reservationID")

	reservation, err := h.reservationService.GetReservation(c.Request.Context(), reservationID)
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve reservation")
		return
	}
	c.JSON(http.StatusOK, dto.ToReservationResponse(reservation))
}

// checkout godoc
// @Summary Check out a reservation
// @Tags reservations
// @Param reservationID path string true "Reservation ID"
// @Success 204 "Checked out"
// @Failure 409 {object} map[string]string "Already checked out"
// @Router /reservations/{reservationID}/checkout [post]
func (h *reservationHandler) checkout(c *gin.Context) {
	reservationID := c.Param("reservationID")

	actorID, ok := requireActor(c)
	if !ok {
		return
	}

	if err := h.reservationService.Checkout(c.Request.Context(), reservationID, actorID); err != nil {
		respondServiceError(c, err, "Failed to check out reservation")
		return
	}
	c.Status(http.StatusNoContent)
}
