package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"novadash/internal/domain"
	applog "novadash/internal/log"
	"novadash/internal/services"
)

// LocalsPrincipal holds the domain.Principal of an authenticated request.
const LocalsPrincipal = "principal"

var (
	errMissingBearer = services.Unauthorized("Missing or invalid Authorization header")
	errBadToken      = services.Unauthorized("Invalid or expired token")
)

// RequireAuth admits requests carrying a valid bearer token.
func RequireAuth(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		raw, ok := strings.CutPrefix(header, "Bearer ")
		raw = strings.TrimSpace(raw)
		if !ok || raw == "" {
			applog.Security(c, "auth.token.reject", map[string]any{"reason": "missing_header"})
			return errMissingBearer
		}
		p, err := auth.Authenticate(raw)
		if err != nil {
			applog.Security(c, "auth.token.reject", map[string]any{"reason": err.Error()})
			return errBadToken
		}
		c.Locals(LocalsPrincipal, p)
		c.Locals(applog.LocalsUserID, p.UserID)
		return c.Next()
	}
}

// CurrentPrincipal returns the identity set by RequireAuth.
func CurrentPrincipal(c *fiber.Ctx) (domain.Principal, bool) {
	p, ok := c.Locals(LocalsPrincipal).(domain.Principal)
	return p, ok
}
