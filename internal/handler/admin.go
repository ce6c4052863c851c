package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/theater-ticketing/internal/model"
	"github.com/iliyamo/theater-ticketing/internal/utils"
)

// AdminHandler serves the box-office panel: login with the shared admin
// secret, the list of active holds, manual payment confirmation, release,
// on-demand sweeps and sale lookup.
type AdminHandler struct {
	svc        Reservations
	log        *slog.Logger
	secretHash []byte
	jwtSecret  string
	tokenTTL   time.Duration
}

// NewAdminHandler returns an AdminHandler.  secretHash is the bcrypt hash of
// the admin secret; tokens are signed with jwtSecret and live for tokenTTL.
func NewAdminHandler(svc Reservations, log *slog.Logger, secretHash []byte, jwtSecret string, tokenTTL time.Duration) *AdminHandler {
	return &AdminHandler{svc: svc, log: log, secretHash: secretHash, jwtSecret: jwtSecret, tokenTTL: tokenTTL}
}

type loginRequest struct {
	Secret string `json:"secret" validate:"required"`
}

// Login handles POST /v1/admin/login.
func (h *AdminHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return writeError(c, h.log, err)
	}
	if !utils.VerifySecret(h.secretHash, req.Secret) {
		h.log.Warn("admin login failed", slog.String("ip", c.RealIP()))
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}
	tok, err := utils.NewAdminToken(h.jwtSecret, "box-office", h.tokenTTL, time.Now())
	if err != nil {
		return writeError(c, h.log, err)
	}
	h.log.Info("admin logged in", slog.String("ip", c.RealIP()))
	return c.JSON(http.StatusOK, echo.Map{"token": tok.Token, "expires": tok.Exp})
}

// ListActiveHolds handles GET /v1/admin/holds.
func (h *AdminHandler) ListActiveHolds(c echo.Context) error {
	holds, err := h.svc.ActiveHolds(c.Request().Context())
	if err != nil {
		return writeError(c, h.log, err)
	}
	items := make([]holdResponse, 0, len(holds))
	for _, hd := range holds {
		items = append(items, toHoldResponse(hd))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// ConfirmHold handles POST /v1/admin/holds/:id/confirm after payment has
// been verified out of band.
func (h *AdminHandler) ConfirmHold(c echo.Context) error {
	sale, err := h.svc.ConfirmHold(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"sale_id":     sale.SaleID,
		"seat_ids":    sale.SeatIDs,
		"total_cents": sale.TotalCents,
	})
}

// ReleaseHold handles POST /v1/admin/holds/:id/release.
func (h *AdminHandler) ReleaseHold(c echo.Context) error {
	n, err := h.svc.ReleaseHold(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"released": n})
}

// Sweep handles POST /v1/admin/sweep.
func (h *AdminHandler) Sweep(c echo.Context) error {
	n, err := h.svc.Sweep(c.Request().Context())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"released": n})
}

// GetSale handles GET /v1/admin/sales/:id.
func (h *AdminHandler) GetSale(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return writeError(c, h.log, &model.ValidationError{Field: "id", Reason: "must be a positive integer"})
	}
	sale, err := h.svc.GetSale(c.Request().Context(), id)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"item": toSaleResponse(sale)})
}
