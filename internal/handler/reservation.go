package handler

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/theater-ticketing/internal/service"
)

// ReservationHandler lets the public hold seats.  Confirmation and release
// are admin operations, see AdminHandler.
type ReservationHandler struct {
	svc Reservations
	log *slog.Logger
}

// NewReservationHandler returns a ReservationHandler.
func NewReservationHandler(svc Reservations, log *slog.Logger) *ReservationHandler {
	return &ReservationHandler{svc: svc, log: log}
}

type createHoldRequest struct {
	SeatIDs       []uint64 `json:"seat_ids" validate:"required,min=1,dive,gt=0"`
	HolderName    string   `json:"holder_name" validate:"required,max=150"`
	HolderContact string   `json:"holder_contact" validate:"required,max=150"`
}

// CreateHold handles POST /v1/holds.  On success it returns 201 with the
// hold id, expiry, the held seats and the total.  Unknown seats yield 404
// with "missing" and unavailable seats 409 with "unavailable".
func (h *ReservationHandler) CreateHold(c echo.Context) error {
	var req createHoldRequest
	if err := bindAndValidate(c, &req); err != nil {
		return writeError(c, h.log, err)
	}
	receipt, err := h.svc.CreateHold(c.Request().Context(), service.CreateHoldInput{
		SeatIDs:       req.SeatIDs,
		HolderName:    req.HolderName,
		HolderContact: req.HolderContact,
	})
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"hold_id":     receipt.HoldID,
		"expires_at":  receipt.ExpiresAt,
		"seat_ids":    receipt.SeatIDs,
		"total_cents": receipt.TotalCents,
	})
}
