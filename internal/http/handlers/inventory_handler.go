package handlers

import (
	"github.com/gofiber/fiber/v2"

	"stockroom/internal/services"
	"stockroom/internal/validate"
)

type InventoryHandler struct {
	Inv *services.InventoryService
}

// GET /api/v1/availability?productId=...&qty=N
//
// Advisory point-in-time read. A positive answer here does not hold stock;
// only placing the order does.
func (h *InventoryHandler) Check(c *fiber.Ctx) error {
	productID, ok := validate.ID(c.Query("productId"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "missing or invalid productId"})
	}
	qty, ok := validate.Qty(c.Query("qty", "1"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid qty"})
	}

	return c.JSON(fiber.Map{
		"product_id": productID,
		"qty":        qty,
		"available":  h.Inv.IsAvailable(productID, qty),
	})
}
