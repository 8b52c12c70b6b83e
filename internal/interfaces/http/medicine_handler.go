package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/pharmaplus/pharmacy-pos/internal/application/catalog"
	"github.com/pharmaplus/pharmacy-pos/internal/application/dto"
)

// MedicineHandler serves the catalog and per-medicine ledger reads.
type MedicineHandler struct {
	uc *catalog.MedicineUseCase
}

// NewMedicineHandler builds the handler.
func NewMedicineHandler(uc *catalog.MedicineUseCase) *MedicineHandler {
	return &MedicineHandler{uc: uc}
}

// Create registers a catalog entry.
func (h *MedicineHandler) Create(c *fiber.Ctx) error {
	var in dto.MedicineRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid request body"})
	}
	resp, err := h.uc.CreateMedicine(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// Update replaces the editable fields of a catalog entry.
func (h *MedicineHandler) Update(c *fiber.Ctx) error {
	var in dto.MedicineRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid request body"})
	}
	resp, err := h.uc.UpdateMedicine(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// GetByID returns a catalog entry with its balance.
func (h *MedicineHandler) GetByID(c *fiber.Ctx) error {
	resp, err := h.uc.GetMedicine(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// List returns medicines, optionally filtered by ?q= substring.
func (h *MedicineHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.ListMedicines(c.Context(), c.Query("q"), c.QueryInt("limit"), c.QueryInt("offset"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(list), "medicines": list})
}

// Delete soft-deletes a catalog entry.
func (h *MedicineHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.DeleteMedicine(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListTransactions returns a medicine's stock ledger. Optional ?from= and
// ?to= bounds are YYYY-MM-DD.
func (h *MedicineHandler) ListTransactions(c *fiber.Ctx) error {
	from, err := parseDateQuery(c.Query("from"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from must be YYYY-MM-DD"})
	}
	to, err := parseDateQuery(c.Query("to"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to must be YYYY-MM-DD"})
	}
	if to != nil {
		// Inclusive upper bound: cover the whole day.
		end := to.AddDate(0, 0, 1)
		to = &end
	}
	list, err := h.uc.ListStockTransactions(c.Context(), c.Params("id"), from, to, c.QueryInt("limit"), c.QueryInt("offset"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(list), "transactions": list})
}

func parseDateQuery(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
