package dto

// MedicineRequest creates or updates a catalog entry. Dates are YYYY-MM-DD.
type MedicineRequest struct {
	Name              string `json:"name"`
	Category          string `json:"category"`
	BatchNumber       string `json:"batch_number"`
	ManufacturingDate string `json:"manufacturing_date,omitempty"`
	ExpiryDate        string `json:"expiry_date,omitempty"`
	ReceivedDate      string `json:"received_date,omitempty"`
	BuyPrice          int64  `json:"buy_price"`
	SellPrice         int64  `json:"sell_price"`
	MinimumStock      int64  `json:"minimum_stock"`
}

// MedicineResponse is a catalog entry plus its current stock balance.
type MedicineResponse struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	Category          string `json:"category"`
	BatchNumber       string `json:"batch_number"`
	ManufacturingDate string `json:"manufacturing_date,omitempty"`
	ExpiryDate        string `json:"expiry_date,omitempty"`
	ReceivedDate      string `json:"received_date,omitempty"`
	BuyPrice          int64  `json:"buy_price"`
	SellPrice         int64  `json:"sell_price"`
	MinimumStock      int64  `json:"minimum_stock"`
	CurrentQuantity   int64  `json:"current_quantity"`
}
