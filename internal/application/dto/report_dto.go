package dto

// SalesSummaryResponse aggregates non-voided bills for a period.
type SalesSummaryResponse struct {
	From          string `json:"from"`
	To            string `json:"to"`
	BillCount     int64  `json:"bill_count"`
	GrossSubtotal int64  `json:"gross_subtotal"`
	DiscountTotal int64  `json:"discount_total"`
	TaxTotal      int64  `json:"tax_total"`
	Revenue       int64  `json:"revenue"`
}

// LowStockItem is a medicine at or below its minimum-stock threshold.
type LowStockItem struct {
	MedicineID      string `json:"medicine_id"`
	Name            string `json:"name"`
	CurrentQuantity int64  `json:"current_quantity"`
	MinimumStock    int64  `json:"minimum_stock"`
}

// ExpiringItem is a medicine with stock on hand expiring before the cutoff.
type ExpiringItem struct {
	MedicineID      string `json:"medicine_id"`
	Name            string `json:"name"`
	BatchNumber     string `json:"batch_number,omitempty"`
	ExpiryDate      string `json:"expiry_date"`
	CurrentQuantity int64  `json:"current_quantity"`
}

// ValuationItem values one medicine's stock at buy price.
type ValuationItem struct {
	MedicineID      string `json:"medicine_id"`
	Name            string `json:"name"`
	CurrentQuantity int64  `json:"current_quantity"`
	BuyPrice        int64  `json:"buy_price"`
	Valuation       int64  `json:"valuation"`
}

// StockValuationResponse is the valuation rows plus their grand total.
type StockValuationResponse struct {
	Items []ValuationItem `json:"items"`
	Total int64           `json:"total"`
}
