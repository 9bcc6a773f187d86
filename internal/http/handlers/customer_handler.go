package handlers

import (
	"github.com/gofiber/fiber/v2"

	"novadash/internal/log"
	"novadash/internal/services"
	"novadash/internal/validate"
)

// CustomerHandler serves customers under /api/users.
type CustomerHandler struct {
	Customers *services.CustomerService
}

var errCustomerNotFound = services.NotFound("Customer not found")

// GET /api/users
func (h *CustomerHandler) List(c *fiber.Ctx) error {
	f, err := validate.ParseCustomerList(c.Queries())
	if err != nil {
		return err
	}
	page, err := h.Customers.List(c.UserContext(), f)
	if err != nil {
		return err
	}
	return c.JSON(page)
}

// GET /api/users/:id
func (h *CustomerHandler) Get(c *fiber.Ctx) error {
	id, err := pathID(c, "customer", errCustomerNotFound)
	if err != nil {
		return err
	}
	cust, err := h.Customers.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(cust)
}

// POST /api/users
func (h *CustomerHandler) Create(c *fiber.Ctx) error {
	var in validate.CustomerCreate
	if err := validate.Body(c.Body(), &in); err != nil {
		return err
	}
	cust, err := h.Customers.Create(c.UserContext(), in.Customer())
	if err != nil {
		return err
	}
	log.Audit(c, "customer.create", map[string]any{"customer_id": cust.ID})
	return c.Status(fiber.StatusCreated).JSON(cust)
}

// PUT /api/users/:id
func (h *CustomerHandler) Update(c *fiber.Ctx) error {
	id, err := pathID(c, "customer", errCustomerNotFound)
	if err != nil {
		return err
	}
	var in validate.CustomerUpdate
	if err := validate.Body(c.Body(), &in); err != nil {
		return err
	}
	cust, err := h.Customers.Update(c.UserContext(), id, in.Patch())
	if err != nil {
		return err
	}
	log.Audit(c, "customer.update", map[string]any{"customer_id": id})
	return c.JSON(cust)
}

// DELETE /api/users/:id
func (h *CustomerHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c, "customer", errCustomerNotFound)
	if err != nil {
		return err
	}
	cust, err := h.Customers.Delete(c.UserContext(), id)
	if err != nil {
		return err
	}
	log.Audit(c, "customer.delete", map[string]any{"customer_id": id})
	return c.JSON(cust)
}
