package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pharmaplus/pharmacy-pos/internal/application/dto"
	"github.com/pharmaplus/pharmacy-pos/internal/application/purchasing"
)

// PurchasingHandler serves the purchase-order lifecycle.
type PurchasingHandler struct {
	uc *purchasing.OrderUseCase
}

// NewPurchasingHandler builds the handler.
func NewPurchasingHandler(uc *purchasing.OrderUseCase) *PurchasingHandler {
	return &PurchasingHandler{uc: uc}
}

// Create registers a pending supplier order.
func (h *PurchasingHandler) Create(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "invalid token"})
	}
	var in dto.CreateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid request body"})
	}
	resp, err := h.uc.CreateOrder(c.Context(), in, userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// GetByID returns an order with its lines.
func (h *PurchasingHandler) GetByID(c *fiber.Ctx) error {
	resp, err := h.uc.GetOrder(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// List returns orders, optionally filtered by ?status=.
func (h *PurchasingHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.ListOrders(c.Context(), c.Query("status"), c.QueryInt("limit"), c.QueryInt("offset"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(list), "orders": list})
}

// Receive credits every line's ordered quantity to stock.
func (h *PurchasingHandler) Receive(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "invalid token"})
	}
	if err := h.uc.MarkOrderReceived(c.Context(), c.Params("id"), userID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "order received"})
}

// RecordPayment adds a payment towards the order.
func (h *PurchasingHandler) RecordPayment(c *fiber.Ctx) error {
	var in dto.RecordPaymentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid request body"})
	}
	if err := h.uc.RecordPayment(c.Context(), c.Params("id"), in.Amount); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "payment recorded"})
}

// Cancel terminates an order before any goods arrive.
func (h *PurchasingHandler) Cancel(c *fiber.Ctx) error {
	if err := h.uc.CancelOrder(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "order cancelled"})
}
