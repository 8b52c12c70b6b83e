package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pharmaplus/pharmacy-pos/internal/application/dto"
	"github.com/pharmaplus/pharmacy-pos/internal/application/inventory"
)

// InventoryHandler serves manual stock movements.
type InventoryHandler struct {
	uc *inventory.StockUseCase
}

// NewInventoryHandler builds the handler.
func NewInventoryHandler(uc *inventory.StockUseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// RecordTransaction registers a manual stock movement (in/out/adjust/return).
func (h *InventoryHandler) RecordTransaction(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "invalid token"})
	}
	var in dto.RecordTransactionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid request body"})
	}
	if err := h.uc.RecordTransaction(c.Context(), in.MedicineID, in.Type, in.Quantity, in.Reason, userID); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "transaction recorded"})
}
