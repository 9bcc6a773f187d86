package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	applog "novadash/internal/log"
	"novadash/internal/services"
	"novadash/internal/validate"
)

type errorBody struct {
	Message string                `json:"message"`
	Errors  []services.FieldError `json:"errors,omitempty"`
}

// ErrorHandler is the app-wide translation from returned errors to JSON responses.
// Unexpected errors are logged and reported as a generic 500.
func ErrorHandler(c *fiber.Ctx, err error) error {
	if e, ok := services.AsError(err); ok {
		switch e.Kind {
		case services.KindValidation, services.KindInvalidReference:
			applog.Security(c, "validation.fail", map[string]any{"message": e.Message, "errors": e.Fields})
		case services.KindUnauthorized:
			// logged by the caller with its own action name
		case services.KindInternal:
			applog.Error(c, "server.error", err, nil)
			return c.Status(fiber.StatusInternalServerError).JSON(errorBody{Message: "Internal server error"})
		}
		return c.Status(e.Kind.HTTPStatus()).JSON(errorBody{Message: e.Message, Errors: e.Fields})
	}

	var fe *fiber.Error
	if errors.As(err, &fe) {
		if fe.Code >= fiber.StatusInternalServerError {
			applog.Error(c, "server.error", err, nil)
			return c.Status(fe.Code).JSON(errorBody{Message: "Internal server error"})
		}
		return c.Status(fe.Code).JSON(errorBody{Message: fe.Message})
	}

	applog.Error(c, "server.error", err, nil)
	return c.Status(fiber.StatusInternalServerError).JSON(errorBody{Message: "Internal server error"})
}

// pathID returns the :id route param. A malformed id is logged and answered with notFound.
func pathID(c *fiber.Ctx, entity string, notFound error) (string, error) {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"param": "id", "entity": entity})
		return "", notFound
	}
	return id, nil
}

// NotFound answers every unmatched route.
func NotFound(c *fiber.Ctx) error {
	applog.Info(c, "route.not_found", nil)
	return c.Status(fiber.StatusNotFound).JSON(errorBody{Message: "Not found"})
}
