package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pharmaplus/pharmacy-pos/internal/application/reports"
)

// ReportHandler serves the read-only reporting views.
type ReportHandler struct {
	uc *reports.UseCase
}

// NewReportHandler builds the handler.
func NewReportHandler(uc *reports.UseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Sales aggregates non-voided bills between ?from= and ?to= (YYYY-MM-DD).
func (h *ReportHandler) Sales(c *fiber.Ctx) error {
	resp, err := h.uc.SalesSummary(c.Context(), c.Query("from"), c.Query("to"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// LowStock lists medicines at or below their minimum-stock threshold.
func (h *ReportHandler) LowStock(c *fiber.Ctx) error {
	list, err := h.uc.LowStock(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(list), "medicines": list})
}

// Expiring lists medicines with stock expiring within ?days= (default 90).
func (h *ReportHandler) Expiring(c *fiber.Ctx) error {
	list, err := h.uc.Expiring(c.Context(), c.QueryInt("days"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(list), "medicines": list})
}

// Valuation values current stock at buy price.
func (h *ReportHandler) Valuation(c *fiber.Ctx) error {
	resp, err := h.uc.StockValuation(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}
