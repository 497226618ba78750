package middleware

import (
    "net/http"

    "github.com/labstack/echo/v4"
)

// Role names stored in the JWT "role" claim.  ADMIN manages the
// fleet, reservations and accounts; CUSTOMER searches and books.
const (
    RoleAdmin    = "ADMIN"
    RoleCustomer = "CUSTOMER"
)

// RequireRole returns a middleware enforcing that the authenticated
// user holds one of the listed roles.  It assumes JWTAuth already
// stored the role in context; missing or unknown roles are rejected
// with 403.
func RequireRole(roles ...string) echo.MiddlewareFunc {
    allowed := make(map[string]bool, len(roles))
    for _, r := range roles {
        allowed[r] = true
    }
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            v := c.Get("role")
            role, ok := v.(string)
            if !ok || !allowed[role] {
                return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
            }
            return next(c)
        }
    }
}
