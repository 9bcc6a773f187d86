package handlers

import (
	"github.com/gofiber/fiber/v2"

	"novadash/internal/log"
	"novadash/internal/services"
	"novadash/internal/validate"
)

type AuthHandler struct {
	Auth *services.AuthService
}

// POST /api/auth/register
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in validate.Register
	if err := validate.Body(c.Body(), &in); err != nil {
		return err
	}
	u, err := h.Auth.Register(c.UserContext(), in.Name, in.Email, in.Password)
	if err != nil {
		return err
	}
	c.Locals(log.LocalsUserID, u.ID)
	log.Audit(c, "auth.register", map[string]any{"email": u.Email})
	return c.Status(fiber.StatusCreated).JSON(services.Public(u))
}

// POST /api/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in validate.Login
	if err := validate.Body(c.Body(), &in); err != nil {
		return err
	}
	res, err := h.Auth.Login(c.UserContext(), in.Email, in.Password)
	if err != nil {
		if e, ok := services.AsError(err); ok && e.Kind == services.KindUnauthorized {
			log.Security(c, "auth.login.fail", map[string]any{"email": in.Email})
		}
		return err
	}
	c.Locals(log.LocalsUserID, res.User.ID)
	log.Audit(c, "auth.login.success", map[string]any{"email": res.User.Email})
	return c.JSON(res)
}

// GET /api/auth/me
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	p, ok := CurrentPrincipal(c)
	if !ok {
		return errMissingBearer
	}
	u, err := h.Auth.Me(c.UserContext(), p)
	if err != nil {
		return err
	}
	return c.JSON(services.Public(u))
}
