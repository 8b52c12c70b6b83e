package repository

import (
	"time"

	"github.com/pharmaplus/pharmacy-pos/pkg/money"
)

// SalesSummary aggregates non-voided bills for a period.
type SalesSummary struct {
	BillCount     int64
	GrossSubtotal money.Paisa
	DiscountTotal money.Paisa
	TaxTotal      money.Paisa
	Revenue       money.Paisa
}

// LowStockRow is a medicine at or below its minimum-stock threshold.
type LowStockRow struct {
	MedicineID      string
	Name            string
	CurrentQuantity int64
	MinimumStock    int64
}

// ExpiringRow is a medicine with stock on hand expiring before a cutoff.
type ExpiringRow struct {
	MedicineID      string
	Name            string
	BatchNumber     string
	ExpiryDate      time.Time
	CurrentQuantity int64
}

// StockValuationRow values current stock at buy price.
type StockValuationRow struct {
	MedicineID      string
	Name            string
	CurrentQuantity int64
	BuyPrice        money.Paisa
	Valuation       money.Paisa
}

// ReportRepository serves read-only aggregations over the ledger store.
// Reports never mutate anything; they run outside transactions.
type ReportRepository interface {
	SalesSummary(from, to time.Time) (*SalesSummary, error)
	LowStock() ([]*LowStockRow, error)
	ExpiringBefore(cutoff time.Time) ([]*ExpiringRow, error)
	StockValuation() ([]*StockValuationRow, error)
}
