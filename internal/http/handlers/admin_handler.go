package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	applog "stockroom/internal/log"
	"stockroom/internal/repos"
	"stockroom/internal/services"
	"stockroom/internal/validate"
)

type AdminHandler struct {
	Order *services.OrderService
	Repo  *repos.OrderRepo
	Inv   *repos.InventoryRepo
}

// GET /admin
func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	ords, _ := h.Repo.ListLatest(10)
	rows, _ := h.Inv.ListAll()
	return render(c, "admin_dashboard", fiber.Map{"Orders": ords, "Rows": rows})
}

// GET /admin/orders
func (h *AdminHandler) OrdersPage(c *fiber.Ctx) error {
	ords, err := h.Repo.ListLatest(100)
	if err != nil {
		applog.Error(c, "admin.orders.list.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load orders"})
	}
	return render(c, "admin_orders", fiber.Map{"Orders": ords})
}

// POST /admin/orders/:id/status
func (h *AdminHandler) UpdateOrderStatus(c *fiber.Ctx) error {
	id, okID := validate.ID(c.Params("id"))
	status, okSt := validate.OrderStatus(c.FormValue("status"))
	if !okID || !okSt {
		return c.Status(400).SendString("missing or invalid id/status")
	}
	if err := h.Order.UpdateStatus(actor(c), id, status); err != nil {
		applog.Error(c, "admin.orders.update.fail", err, map[string]any{"order_id": id, "status": status})
		return c.Status(statusFor(err)).SendString("could not update status")
	}
	applog.Audit(c, "admin.orders.update", map[string]any{"order_id": id, "status": status})
	return c.Redirect("/admin/orders")
}

// GET /admin/inventory
func (h *AdminHandler) Inventory(c *fiber.Ctx) error {
	rows, err := h.Inv.ListAll()
	if err != nil {
		applog.Error(c, "admin.inventory.list.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load inventory"})
	}
	return render(c, "admin_inventory", fiber.Map{"Rows": rows})
}

// POST /admin/inventory
func (h *AdminHandler) UpdateInventory(c *fiber.Ctx) error {
	pid, okID := validate.ID(c.FormValue("product_id"))
	avail, err := strconv.Atoi(c.FormValue("available"))
	active := c.FormValue("active") != "0"
	if !okID || err != nil || avail < 0 {
		return c.Status(400).SendString("invalid input")
	}
	if err := h.Inv.Upsert(pid, avail, active); err != nil {
		applog.Error(c, "admin.inventory.save.fail", err, map[string]any{"product": pid, "available": avail})
		return c.Status(400).SendString("could not save inventory")
	}
	applog.Audit(c, "admin.inventory.save", map[string]any{"product": pid, "available": avail, "active": active})
	return c.Redirect("/admin/inventory")
}
