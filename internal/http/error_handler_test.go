package handlers_test

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"novadash/internal/config"
	"novadash/internal/http/handlers"
	"novadash/internal/services"
)

// Internal failures get a generic body; details stay in the log.
func TestErrorHandlerHidesInternals(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: handlers.ErrorHandler})
	app.Use(requestid.New())
	app.Get("/err", func(c *fiber.Ctx) error {
		return errors.New("db timeout: secret trace")
	})
	app.Get("/fiber-err", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusInternalServerError, "db timeout: secret trace")
	})

	for _, path := range []string{"/err", "/fiber-err"} {
		var body string
		entries := captureLogs(t, func() {
			resp, err := app.Test(httptest.NewRequest("GET", path, nil))
			if err != nil {
				t.Fatalf("test request failed: %v", err)
			}
			if resp.StatusCode != fiber.StatusInternalServerError {
				t.Fatalf("expected 500, got %d", resp.StatusCode)
			}
			raw, _ := io.ReadAll(resp.Body)
			body = string(raw)
		})
		if !strings.Contains(body, "Internal server error") {
			t.Fatalf("generic message missing; body=%s", body)
		}
		if strings.Contains(body, "db timeout") || strings.Contains(body, "secret") {
			t.Fatalf("internal details leaked to user; body=%s", body)
		}
		e, ok := findLog(entries, "server.error")
		if !ok {
			t.Fatalf("expected server.error log")
		}
		if !strings.Contains(e.Err, "db timeout") || e.ReqID == "" {
			t.Fatalf("log entry missing detail or request id: %+v", e)
		}
	}
}

func TestErrorHandlerServiceErrors(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: handlers.ErrorHandler})
	app.Get("/validation", func(c *fiber.Ctx) error {
		return services.Validation("Validation error", services.FieldError{Path: "body.name", Message: "Required"})
	})
	app.Get("/ref", func(c *fiber.Ctx) error { return services.InvalidReference("One or more products not found") })
	app.Get("/missing", func(c *fiber.Ctx) error { return services.NotFound("Order not found") })
	app.Get("/denied", func(c *fiber.Ctx) error { return services.Unauthorized("Invalid or expired token") })

	cases := []struct {
		path   string
		status int
		want   string
	}{
		{"/validation", 400, `{"message":"Validation error","errors":[{"path":"body.name","message":"Required"}]}`},
		{"/ref", 400, `{"message":"One or more products not found"}`},
		{"/missing", 404, `{"message":"Order not found"}`},
		{"/denied", 401, `{"message":"Invalid or expired token"}`},
	}
	for _, tc := range cases {
		resp, err := app.Test(httptest.NewRequest("GET", tc.path, nil))
		if err != nil {
			t.Fatal(err)
		}
		raw, _ := io.ReadAll(resp.Body)
		if resp.StatusCode != tc.status {
			t.Fatalf("%s: expected %d, got %d", tc.path, tc.status, resp.StatusCode)
		}
		if string(raw) != tc.want {
			t.Fatalf("%s: body=%s want %s", tc.path, raw, tc.want)
		}
	}
}

func TestBodyTooLarge(t *testing.T) {
	env := newTestEnv(t, config.Config{})
	big := `{"name":"` + strings.Repeat("a", 2<<20) + `"}`
	req := httptest.NewRequest(http.MethodPost, "/api/users", strings.NewReader(big))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+env.token)
	resp, err := env.app.Test(req, -1)
	if err != nil {
		// fasthttp may drop the connection instead of answering
		return
	}
	if resp.StatusCode != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413 for oversized body, got %d", resp.StatusCode)
	}
}
