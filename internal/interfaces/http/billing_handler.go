package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pharmaplus/pharmacy-pos/internal/application/billing"
	"github.com/pharmaplus/pharmacy-pos/internal/application/dto"
)

// BillingHandler serves sale creation, voiding and receipts.
type BillingHandler struct {
	create  *billing.CreateBillUseCase
	void    *billing.VoidBillUseCase
	receipt *billing.ReceiptUseCase
}

// NewBillingHandler builds the handler.
func NewBillingHandler(create *billing.CreateBillUseCase, void *billing.VoidBillUseCase, receipt *billing.ReceiptUseCase) *BillingHandler {
	return &BillingHandler{create: create, void: void, receipt: receipt}
}

// Create registers a sale: computes totals, depletes stock and issues the
// next bill number, all in one transaction.
func (h *BillingHandler) Create(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "invalid token"})
	}
	var in dto.CreateBillRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid request body"})
	}
	resp, err := h.create.CreateBill(c.Context(), in, userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// GetByID returns a bill with resolved lines.
func (h *BillingHandler) GetByID(c *fiber.Ctx) error {
	resp, err := h.create.GetBill(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// List returns bills in a date range. ?from= and ?to= are YYYY-MM-DD;
// ?include_voided=true includes voided bills.
func (h *BillingHandler) List(c *fiber.Ctx) error {
	from, err := parseDateQuery(c.Query("from"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from must be YYYY-MM-DD"})
	}
	to, err := parseDateQuery(c.Query("to"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to must be YYYY-MM-DD"})
	}
	if to != nil {
		end := to.AddDate(0, 0, 1)
		to = &end
	}
	list, err := h.create.ListBills(c.Context(), from, to, c.QueryBool("include_voided"), c.QueryInt("limit"), c.QueryInt("offset"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(list), "bills": list})
}

// Void reverses a bill: flags it voided and restocks every line.
func (h *BillingHandler) Void(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "invalid token"})
	}
	var in dto.VoidBillRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid request body"})
	}
	if err := h.void.VoidBill(c.Context(), c.Params("id"), in.Reason, userID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "bill voided"})
}

// Receipt renders the bill as a PDF.
func (h *BillingHandler) Receipt(c *fiber.Ctx) error {
	pdfBytes, err := h.receipt.GenerateReceipt(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="receipt.pdf"`)
	return c.Send(pdfBytes)
}
