package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"novadash/internal/config"
	applog "novadash/internal/log"
)

const bodyLimit = 1 << 20 // 1 MiB

// NewApp builds the fiber application with middleware and every route mounted.
func NewApp(cfg config.Config, d *Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "novadash",
		BodyLimit:    bodyLimit,
		ErrorHandler: ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	app.Get("/health", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })

	api := app.Group("/api")

	protect := RequireAuth(d.Auth)

	// Registered ahead of the throttled group so token checks are not rate limited.
	api.Get("/auth/me", protect, d.AuthHandler.Me)

	// Auth routes (throttled per IP)
	rateMax := cfg.LoginRateMax
	if rateMax <= 0 {
		rateMax = 10
	}
	authGroup := api.Group("/auth", limiter.New(limiter.Config{
		Max:        rateMax,
		Expiration: time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.auth.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(errorBody{Message: "Too many requests, please try again later"})
		},
	}))
	authGroup.Post("/register", d.AuthHandler.Register)
	authGroup.Post("/login", d.AuthHandler.Login)

	users := api.Group("/users", protect)
	users.Get("/", d.CustomerHandler.List)
	users.Post("/", d.CustomerHandler.Create)
	users.Get("/:id", d.CustomerHandler.Get)
	users.Put("/:id", d.CustomerHandler.Update)
	users.Delete("/:id", d.CustomerHandler.Delete)

	products := api.Group("/products", protect)
	products.Get("/", d.ProductHandler.List)
	products.Post("/", d.ProductHandler.Create)
	products.Get("/:id", d.ProductHandler.Get)
	products.Put("/:id", d.ProductHandler.Update)
	products.Delete("/:id", d.ProductHandler.Delete)

	orders := api.Group("/orders", protect)
	orders.Get("/", d.OrderHandler.List)
	orders.Post("/", d.OrderHandler.Create)
	orders.Get("/:id", d.OrderHandler.Get)
	orders.Put("/:id", d.OrderHandler.Update)
	orders.Delete("/:id", d.OrderHandler.Delete)

	app.Use(NotFound)
	return app
}
