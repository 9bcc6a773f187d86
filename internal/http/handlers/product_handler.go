package handlers

import (
	"github.com/gofiber/fiber/v2"

	"novadash/internal/log"
	"novadash/internal/services"
	"novadash/internal/validate"
)

type ProductHandler struct {
	Products *services.ProductService
}

var errProductNotFound = services.NotFound("Product not found")

func (h *ProductHandler) List(c *fiber.Ctx) error {
	f, err := validate.ParseProductList(c.Queries())
	if err != nil {
		return err
	}
	page, err := h.Products.List(c.UserContext(), f)
	if err != nil {
		return err
	}
	return c.JSON(page)
}

func (h *ProductHandler) Get(c *fiber.Ctx) error {
	id, err := pathID(c, "product", errProductNotFound)
	if err != nil {
		return err
	}
	p, err := h.Products.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(p)
}

func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in validate.ProductCreate
	if err := validate.Body(c.Body(), &in); err != nil {
		return err
	}
	p, err := h.Products.Create(c.UserContext(), in.Product())
	if err != nil {
		return err
	}
	log.Audit(c, "product.create", map[string]any{"product_id": p.ID, "sku": p.SKU})
	return c.Status(fiber.StatusCreated).JSON(p)
}

func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, err := pathID(c, "product", errProductNotFound)
	if err != nil {
		return err
	}
	var in validate.ProductUpdate
	if err := validate.Body(c.Body(), &in); err != nil {
		return err
	}
	p, err := h.Products.Update(c.UserContext(), id, in.Patch())
	if err != nil {
		return err
	}
	fields := map[string]any{"product_id": id}
	if in.Price != nil {
		fields["price"] = in.Price.String()
	}
	log.Audit(c, "product.update", fields)
	return c.JSON(p)
}

func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c, "product", errProductNotFound)
	if err != nil {
		return err
	}
	p, err := h.Products.Delete(c.UserContext(), id)
	if err != nil {
		return err
	}
	log.Audit(c, "product.delete", map[string]any{"product_id": id})
	return c.JSON(p)
}
