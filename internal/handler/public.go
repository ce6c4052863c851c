package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/theater-ticketing/internal/model"
)

// PublicHandler serves the unauthenticated catalog: zones and the seat map.
type PublicHandler struct {
	svc Reservations
	log *slog.Logger
}

// NewPublicHandler returns a PublicHandler.
func NewPublicHandler(svc Reservations, log *slog.Logger) *PublicHandler {
	return &PublicHandler{svc: svc, log: log}
}

// ListZones handles GET /v1/zones.
func (h *PublicHandler) ListZones(c echo.Context) error {
	zones, err := h.svc.ListZones(c.Request().Context())
	if err != nil {
		return writeError(c, h.log, err)
	}
	items := make([]zoneResponse, 0, len(zones))
	for _, z := range zones {
		items = append(items, toZoneResponse(z))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// ListSeats handles GET /v1/seats?zone_id=&status=.  Both filters are
// optional; status is case-insensitive.
func (h *PublicHandler) ListSeats(c echo.Context) error {
	var f model.SeatFilter
	if raw := c.QueryParam("zone_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || id == 0 {
			return writeError(c, h.log, &model.ValidationError{Field: "zone_id", Reason: "must be a positive integer"})
		}
		f.ZoneID = id
	}
	if raw := c.QueryParam("status"); raw != "" {
		f.Status = model.SeatStatus(strings.ToUpper(raw))
	}

	seats, err := h.svc.ListSeats(c.Request().Context(), f)
	if err != nil {
		return writeError(c, h.log, err)
	}
	items := make([]seatResponse, 0, len(seats))
	for _, s := range seats {
		items = append(items, toSeatResponse(s))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}
