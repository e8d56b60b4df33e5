package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "stockroom/internal/log"
	"stockroom/internal/services"
	"stockroom/internal/validate"
)

type PaymentHandler struct {
	Pay *services.PaymentService
}

type createPaymentReq struct {
	OrderID string  `json:"order_id"`
	Amount  float64 `json:"amount"`
	Method  string  `json:"method"`
	Notes   string  `json:"notes"`
}

// POST /api/v1/payments
func (h *PaymentHandler) Create(c *fiber.Ctx) error {
	var req createPaymentReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "malformed body"})
	}
	if _, ok := validate.ID(req.OrderID); !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid order_id"})
	}
	if req.Amount <= 0 || req.Method == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid amount or method"})
	}

	p, err := h.Pay.Create(actor(c), req.OrderID, req.Amount, req.Method, req.Notes)
	if err != nil {
		applog.Security(c, "payment.create.fail", map[string]any{"order_id": req.OrderID, "error": err.Error()})
		return fail(c, err)
	}
	applog.Audit(c, "payment.create", map[string]any{"payment_id": p.ID, "order_id": p.OrderID, "amount": p.Amount})
	return c.Status(fiber.StatusCreated).JSON(p)
}

// GET /api/v1/payments/:id
func (h *PaymentHandler) View(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}
	p, err := h.Pay.Get(actor(c), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(p)
}

type paymentStatusReq struct {
	Status string `json:"status"`
}

// POST /api/v1/payments/:id/status
func (h *PaymentHandler) UpdateStatus(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}
	var req paymentStatusReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "malformed body"})
	}
	// Closed set: reject anything outside the payment-status enum here.
	st, ok := validate.PaymentStatus(req.Status)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "unknown payment status"})
	}

	if err := h.Pay.UpdateStatus(actor(c), id, st); err != nil {
		applog.Security(c, "payment.status.fail", map[string]any{"payment_id": id, "error": err.Error()})
		return fail(c, err)
	}
	applog.Audit(c, "payment.status", map[string]any{"payment_id": id, "status": st})
	return c.JSON(fiber.Map{"ok": true})
}
