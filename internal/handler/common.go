package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/theater-ticketing/internal/model"
)

// writeError maps the error taxonomy onto HTTP: validation 400, not found
// 404 (with the missing seat ids), conflict 409 (with the unavailable seat
// ids) and anything else 500.
func writeError(c echo.Context, log *slog.Logger, err error) error {
	var (
		ve *model.ValidationError
		nf *model.NotFoundError
		ce *model.ConflictError
	)
	switch {
	case errors.As(err, &ve):
		body := echo.Map{"error": ve.Error()}
		if ve.Field != "" {
			body["field"] = ve.Field
		}
		return c.JSON(http.StatusBadRequest, body)
	case errors.As(err, &nf):
		body := echo.Map{"error": nf.Error()}
		if len(nf.SeatIDs) > 0 {
			body["missing"] = nf.SeatIDs
		}
		return c.JSON(http.StatusNotFound, body)
	case errors.As(err, &ce):
		return c.JSON(http.StatusConflict, echo.Map{"error": "seats unavailable", "unavailable": ce.SeatIDs})
	case errors.Is(err, model.ErrValidation):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	case errors.Is(err, model.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
	case errors.Is(err, model.ErrConflict):
		return c.JSON(http.StatusConflict, echo.Map{"error": "seats unavailable"})
	}
	log.ErrorContext(c.Request().Context(), "request failed",
		slog.String("path", c.Path()),
		slog.String("error", err.Error()),
	)
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
}

// bindAndValidate decodes the JSON body into req and runs the registered
// validator.
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return &model.ValidationError{Reason: "invalid request body"}
	}
	if err := c.Validate(req); err != nil {
		return err
	}
	return nil
}

type zoneResponse struct {
	ID             uint64 `json:"id"`
	Name           string `json:"name"`
	PriceCents     uint32 `json:"price_cents"`
	Color          string `json:"color"`
	TotalSeats     int    `json:"total_seats"`
	AvailableSeats int    `json:"available_seats"`
	HeldSeats      int    `json:"held_seats"`
	SoldSeats      int    `json:"sold_seats"`
}

func toZoneResponse(z model.ZoneSummary) zoneResponse {
	return zoneResponse{
		ID: z.ID, Name: z.Name, PriceCents: z.PriceCents, Color: z.Color,
		TotalSeats: z.TotalSeats, AvailableSeats: z.AvailableSeats,
		HeldSeats: z.HeldSeats, SoldSeats: z.SoldSeats,
	}
}

// seatResponse is the public view of a seat.  Hold and sale references are
// not exposed; a held seat only reveals when it frees up.
type seatResponse struct {
	ID        uint64     `json:"id"`
	ZoneID    uint64     `json:"zone_id"`
	Row       uint32     `json:"row"`
	Column    uint32     `json:"column"`
	Status    string     `json:"status"`
	HeldUntil *time.Time `json:"held_until,omitempty"`
}

func toSeatResponse(s model.Seat) seatResponse {
	out := seatResponse{ID: s.ID, ZoneID: s.ZoneID, Row: s.Row, Column: s.Column, Status: string(s.State.Status())}
	if _, exp, ok := s.State.Hold(); ok {
		out.HeldUntil = &exp
	}
	return out
}

type holdResponse struct {
	HoldID        string    `json:"hold_id"`
	HolderName    string    `json:"holder_name"`
	HolderContact string    `json:"holder_contact"`
	SeatIDs       []uint64  `json:"seat_ids"`
	TotalCents    uint64    `json:"total_cents"`
	CreatedAt     time.Time `json:"created_at"`
	ExpiresAt     time.Time `json:"expires_at"`
}

func toHoldResponse(h model.Hold) holdResponse {
	return holdResponse{
		HoldID: h.ID, HolderName: h.Holder.Name, HolderContact: h.Holder.Contact,
		SeatIDs: h.SeatIDs, TotalCents: h.TotalCents, CreatedAt: h.CreatedAt, ExpiresAt: h.ExpiresAt,
	}
}

type saleResponse struct {
	ID           uint64    `json:"id"`
	HoldID       string    `json:"hold_id"`
	BuyerName    string    `json:"buyer_name"`
	BuyerContact string    `json:"buyer_contact"`
	SeatIDs      []uint64  `json:"seat_ids"`
	TotalCents   uint64    `json:"total_cents"`
	CreatedAt    time.Time `json:"created_at"`
}

func toSaleResponse(s model.Sale) saleResponse {
	return saleResponse{
		ID: s.ID, HoldID: s.HoldID, BuyerName: s.Buyer.Name, BuyerContact: s.Buyer.Contact,
		SeatIDs: s.SeatIDs, TotalCents: s.TotalCents, CreatedAt: s.CreatedAt,
	}
}
