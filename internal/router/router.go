package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/theater-ticketing/internal/handler"
	"github.com/iliyamo/theater-ticketing/internal/middleware"
	"github.com/iliyamo/theater-ticketing/internal/utils"
)

// RegisterRoutes registers routes that do not touch the ledger.  Currently
// it exposes only a health check for load balancers.
func RegisterRoutes(e *echo.Echo, h *handler.HealthHandler) {
	e.GET("/healthz", h.Health)
}

// RegisterPublic registers the unauthenticated catalog and the hold
// endpoint.  cache is applied to the zone summary only; the seat map must
// never be served stale.  holdLimit throttles hold creation per client.
func RegisterPublic(e *echo.Echo, p *handler.PublicHandler, r *handler.ReservationHandler, cache, holdLimit echo.MiddlewareFunc) {
	e.GET("/v1/zones", p.ListZones, cache)
	e.GET("/v1/seats", p.ListSeats)
	e.POST("/v1/holds", r.CreateHold, holdLimit)
}

// RegisterAdmin registers the box-office endpoints.  Login is open but rate
// limited; everything else requires an admin JWT.
func RegisterAdmin(e *echo.Echo, a *handler.AdminHandler, jwtSecret string, loginLimit echo.MiddlewareFunc) {
	e.POST("/v1/admin/login", a.Login, loginLimit)

	g := e.Group(
		"/v1/admin",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(utils.AdminRole),
	)
	g.GET("/holds", a.ListActiveHolds)
	g.POST("/holds/:id/confirm", a.ConfirmHold)
	g.POST("/holds/:id/release", a.ReleaseHold)
	g.POST("/sweep", a.Sweep)
	g.GET("/sales/:id", a.GetSale)
}
