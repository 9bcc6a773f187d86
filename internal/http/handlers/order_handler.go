package handlers

import (
	"github.com/gofiber/fiber/v2"

	"novadash/internal/log"
	"novadash/internal/services"
	"novadash/internal/validate"
)

type OrderHandler struct {
	Orders *services.OrderService
}

var errOrderNotFound = services.NotFound("Order not found")

func (h *OrderHandler) List(c *fiber.Ctx) error {
	f, err := validate.ParseOrderList(c.Queries())
	if err != nil {
		return err
	}
	page, err := h.Orders.List(c.UserContext(), f)
	if err != nil {
		return err
	}
	return c.JSON(page)
}

func (h *OrderHandler) Get(c *fiber.Ctx) error {
	id, err := pathID(c, "order", errOrderNotFound)
	if err != nil {
		return err
	}
	o, err := h.Orders.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(o)
}

// POST /api/orders
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in validate.OrderCreate
	if err := validate.Body(c.Body(), &in); err != nil {
		return err
	}
	o, err := h.Orders.Create(c.UserContext(), in.NewOrder())
	if err != nil {
		return err
	}
	log.Audit(c, "order.create", map[string]any{
		"order_id":    o.ID,
		"customer_id": o.CustomerID,
		"lines":       len(o.Items),
		"total":       o.Total.String(),
	})
	return c.Status(fiber.StatusCreated).JSON(o)
}

func (h *OrderHandler) Update(c *fiber.Ctx) error {
	id, err := pathID(c, "order", errOrderNotFound)
	if err != nil {
		return err
	}
	var in validate.OrderUpdate
	if err := validate.Body(c.Body(), &in); err != nil {
		return err
	}
	o, err := h.Orders.Update(c.UserContext(), id, in.Patch())
	if err != nil {
		return err
	}
	log.Audit(c, "order.update", map[string]any{"order_id": id, "status": o.Status, "priority": o.Priority})
	return c.JSON(o)
}

func (h *OrderHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c, "order", errOrderNotFound)
	if err != nil {
		return err
	}
	o, err := h.Orders.Delete(c.UserContext(), id)
	if err != nil {
		return err
	}
	log.Audit(c, "order.delete", map[string]any{"order_id": id})
	return c.JSON(o)
}
