package middleware

import "github.com/labstack/echo/v4"

// subjectOf returns the token subject stored by JWTAuth, or "anon" on routes
// that run without authentication.
func subjectOf(c echo.Context) string {
	if s, ok := c.Get(CtxSubject).(string); ok && s != "" {
		return s
	}
	return "anon"
}
