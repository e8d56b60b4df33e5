package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "stockroom/internal/log"
	"stockroom/internal/repos"
	"stockroom/internal/services"
	"stockroom/internal/validate"
)

type OrderHandler struct {
	Order *services.OrderService
	Repo  *repos.OrderRepo
}

type orderItemReq struct {
	ProductID string `json:"product_id"`
	Qty       int    `json:"qty"`
}

type createOrderReq struct {
	AddressID string         `json:"address_id"`
	Items     []orderItemReq `json:"items"`
}

// POST /api/v1/orders
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var req createOrderReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "malformed body"})
	}
	if _, ok := validate.ID(req.AddressID); !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid address_id"})
	}
	items := make([]services.NewItem, 0, len(req.Items))
	for _, it := range req.Items {
		if _, ok := validate.ID(it.ProductID); !ok || it.Qty < 1 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid item"})
		}
		items = append(items, services.NewItem{ProductID: it.ProductID, Qty: it.Qty})
	}

	o, err := h.Order.Create(actor(c), req.AddressID, items)
	if err != nil {
		applog.Security(c, "order.create.fail", map[string]any{"error": err.Error()})
		return fail(c, err)
	}
	applog.Audit(c, "order.create", map[string]any{"order_id": o.ID, "total": o.Total})
	return c.Status(fiber.StatusCreated).JSON(o)
}

// GET /api/v1/orders/:id
func (h *OrderHandler) View(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}
	o, items, err := h.Order.Get(actor(c), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"order": o, "items": items})
}

// GET /api/v1/orders
func (h *OrderHandler) History(c *fiber.Ctx) error {
	a := actor(c)
	orders, err := h.Repo.ListByUser(a.UserID)
	if err != nil {
		applog.Error(c, "order.history.fail", err, nil)
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"orders": orders})
}

// POST /api/v1/orders/:id/cancel
func (h *OrderHandler) Cancel(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}
	if err := h.Order.Cancel(actor(c), id); err != nil {
		applog.Security(c, "order.cancel.fail", map[string]any{"order_id": id, "error": err.Error()})
		return fail(c, err)
	}
	applog.Audit(c, "order.cancel", map[string]any{"order_id": id})
	return c.JSON(fiber.Map{"ok": true})
}

// DELETE /api/v1/orders/:id
func (h *OrderHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}
	if err := h.Order.SoftDelete(actor(c), id); err != nil {
		applog.Security(c, "order.delete.fail", map[string]any{"order_id": id, "error": err.Error()})
		return fail(c, err)
	}
	applog.Audit(c, "order.delete", map[string]any{"order_id": id})
	return c.JSON(fiber.Map{"ok": true})
}
