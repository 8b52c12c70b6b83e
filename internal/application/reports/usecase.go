package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/pharmaplus/pharmacy-pos/internal/application/dto"
	"github.com/pharmaplus/pharmacy-pos/internal/domain"
	"github.com/pharmaplus/pharmacy-pos/internal/domain/repository"
)

const dateLayout = "2006-01-02"

// UseCase serves the read-only reporting views. Nothing here mutates state.
type UseCase struct {
	reportRepo repository.ReportRepository
}

// NewUseCase builds the use case.
func NewUseCase(reportRepo repository.ReportRepository) *UseCase {
	return &UseCase{reportRepo: reportRepo}
}

// SalesSummary aggregates non-voided bills between two dates (inclusive).
// Dates arrive as YYYY-MM-DD; the upper bound covers the whole day.
func (uc *UseCase) SalesSummary(ctx context.Context, fromStr, toStr string) (*dto.SalesSummaryResponse, error) {
	from, err := time.Parse(dateLayout, fromStr)
	if err != nil {
		return nil, fmt.Errorf("%w: from must be YYYY-MM-DD", domain.ErrValidation)
	}
	to, err := time.Parse(dateLayout, toStr)
	if err != nil {
		return nil, fmt.Errorf("%w: to must be YYYY-MM-DD", domain.ErrValidation)
	}
	if to.Before(from) {
		return nil, fmt.Errorf("%w: to precedes from", domain.ErrValidation)
	}
	summary, err := uc.reportRepo.SalesSummary(from, to.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}
	return &dto.SalesSummaryResponse{
		From:          fromStr,
		To:            toStr,
		BillCount:     summary.BillCount,
		GrossSubtotal: int64(summary.GrossSubtotal),
		DiscountTotal: int64(summary.DiscountTotal),
		TaxTotal:      int64(summary.TaxTotal),
		Revenue:       int64(summary.Revenue),
	}, nil
}

// LowStock lists medicines at or below their minimum-stock threshold.
func (uc *UseCase) LowStock(ctx context.Context) ([]dto.LowStockItem, error) {
	rows, err := uc.reportRepo.LowStock()
	if err != nil {
		return nil, err
	}
	out := make([]dto.LowStockItem, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.LowStockItem{
			MedicineID:      r.MedicineID,
			Name:            r.Name,
			CurrentQuantity: r.CurrentQuantity,
			MinimumStock:    r.MinimumStock,
		})
	}
	return out, nil
}

// Expiring lists medicines with stock on hand whose expiry date falls within
// the next days (default 90).
func (uc *UseCase) Expiring(ctx context.Context, days int) ([]dto.ExpiringItem, error) {
	if days <= 0 {
		days = 90
	}
	cutoff := time.Now().AddDate(0, 0, days)
	rows, err := uc.reportRepo.ExpiringBefore(cutoff)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ExpiringItem, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.ExpiringItem{
			MedicineID:      r.MedicineID,
			Name:            r.Name,
			BatchNumber:     r.BatchNumber,
			ExpiryDate:      r.ExpiryDate.Format(dateLayout),
			CurrentQuantity: r.CurrentQuantity,
		})
	}
	return out, nil
}

// StockValuation values current stock at buy price.
func (uc *UseCase) StockValuation(ctx context.Context) (*dto.StockValuationResponse, error) {
	rows, err := uc.reportRepo.StockValuation()
	if err != nil {
		return nil, err
	}
	resp := &dto.StockValuationResponse{Items: make([]dto.ValuationItem, 0, len(rows))}
	for _, r := range rows {
		resp.Items = append(resp.Items, dto.ValuationItem{
			MedicineID:      r.MedicineID,
			Name:            r.Name,
			CurrentQuantity: r.CurrentQuantity,
			BuyPrice:        int64(r.BuyPrice),
			Valuation:       int64(r.Valuation),
		})
		resp.Total += int64(r.Valuation)
	}
	return resp, nil
}
