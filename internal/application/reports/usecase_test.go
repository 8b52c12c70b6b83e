package reports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pharmaplus/pharmacy-pos/internal/domain"
	"github.com/pharmaplus/pharmacy-pos/internal/domain/repository"
	"github.com/pharmaplus/pharmacy-pos/pkg/money"
)

type fakeReportRepo struct {
	summary     *repository.SalesSummary
	summaryFrom time.Time
	summaryTo   time.Time
	lowStock    []*repository.LowStockRow
	expiring    []*repository.ExpiringRow
	cutoff      time.Time
	valuation   []*repository.StockValuationRow
}

func (r *fakeReportRepo) SalesSummary(from, to time.Time) (*repository.SalesSummary, error) {
	r.summaryFrom, r.summaryTo = from, to
	return r.summary, nil
}

func (r *fakeReportRepo) LowStock() ([]*repository.LowStockRow, error) {
	return r.lowStock, nil
}

func (r *fakeReportRepo) ExpiringBefore(cutoff time.Time) ([]*repository.ExpiringRow, error) {
	r.cutoff = cutoff
	return r.expiring, nil
}

func (r *fakeReportRepo) StockValuation() ([]*repository.StockValuationRow, error) {
	return r.valuation, nil
}

func TestSalesSummary_UpperBoundCoversWholeDay(t *testing.T) {
	repo := &fakeReportRepo{summary: &repository.SalesSummary{
		BillCount:     3,
		GrossSubtotal: money.Paisa(30000),
		DiscountTotal: money.Paisa(3000),
		TaxTotal:      money.Paisa(1350),
		Revenue:       money.Paisa(28350),
	}}
	uc := NewUseCase(repo)

	resp, err := uc.SalesSummary(context.Background(), "2026-08-01", "2026-08-31")
	require.NoError(t, err)

	assert.Equal(t, "2026-08-01", repo.summaryFrom.Format("2006-01-02"))
	// Inclusive "to": the repo is queried with the next midnight.
	assert.Equal(t, "2026-09-01", repo.summaryTo.Format("2006-01-02"))

	assert.Equal(t, int64(3), resp.BillCount)
	assert.Equal(t, int64(28350), resp.Revenue)
	assert.Equal(t, int64(3000), resp.DiscountTotal)
}

func TestSalesSummary_Validation(t *testing.T) {
	uc := NewUseCase(&fakeReportRepo{})

	_, err := uc.SalesSummary(context.Background(), "01-08-2026", "2026-08-31")
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = uc.SalesSummary(context.Background(), "2026-08-31", "2026-08-01")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestExpiring_DefaultsToNinetyDays(t *testing.T) {
	repo := &fakeReportRepo{expiring: []*repository.ExpiringRow{
		{MedicineID: "med-1", Name: "Amoxicillin", BatchNumber: "B-7", ExpiryDate: time.Now().AddDate(0, 1, 0), CurrentQuantity: 12},
	}}
	uc := NewUseCase(repo)

	rows, err := uc.Expiring(context.Background(), 0)
	require.NoError(t, err)

	wantCutoff := time.Now().AddDate(0, 0, 90)
	assert.WithinDuration(t, wantCutoff, repo.cutoff, time.Minute)
	require.Len(t, rows, 1)
	assert.Equal(t, "Amoxicillin", rows[0].Name)
	assert.Equal(t, "B-7", rows[0].BatchNumber)
}

func TestStockValuation_SumsItems(t *testing.T) {
	repo := &fakeReportRepo{valuation: []*repository.StockValuationRow{
		{MedicineID: "med-1", Name: "Paracetamol", CurrentQuantity: 100, BuyPrice: money.Paisa(500), Valuation: money.Paisa(50000)},
		{MedicineID: "med-2", Name: "Ibuprofen", CurrentQuantity: 40, BuyPrice: money.Paisa(800), Valuation: money.Paisa(32000)},
	}}
	uc := NewUseCase(repo)

	resp, err := uc.StockValuation(context.Background())
	require.NoError(t, err)
	require.Len(t, resp.Items, 2)
	assert.Equal(t, int64(82000), resp.Total)
}

func TestLowStock_PassesRowsThrough(t *testing.T) {
	repo := &fakeReportRepo{lowStock: []*repository.LowStockRow{
		{MedicineID: "med-1", Name: "Insulin", CurrentQuantity: 2, MinimumStock: 10},
	}}
	uc := NewUseCase(repo)

	rows, err := uc.LowStock(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, int64(2), rows[0].CurrentQuantity)
	assert.Equal(t, int64(10), rows[0].MinimumStock)
}
