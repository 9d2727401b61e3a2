package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RequireRol enforces that the authenticated user carries one of the
// given roles in its "rol" claim. JWTAuth must run first so the claim
// is present in the context; missing or unknown roles get a 403.
func RequireRol(roles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rol, ok := c.Get("rol").(string)
			if !ok || !allowed[rol] {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
