package dto

// RecordTransactionRequest is a manual stock movement. For type "adjust" the
// quantity may be negative (adjustment-down); in/out/return take a positive
// quantity and the type encodes the direction.
type RecordTransactionRequest struct {
	MedicineID string `json:"medicine_id"`
	Type       string `json:"type"` // in | out | adjust | return
	Quantity   int64  `json:"quantity"`
	Reason     string `json:"reason"`
}

// StockTransactionResponse is one ledger entry.
type StockTransactionResponse struct {
	ID            string `json:"id"`
	MedicineID    string `json:"medicine_id"`
	Type          string `json:"type"`
	Quantity      int64  `json:"quantity"`
	Reason        string `json:"reason,omitempty"`
	ReferenceID   string `json:"reference_id,omitempty"`
	ReferenceType string `json:"reference_type,omitempty"`
	PerformedBy   string `json:"performed_by,omitempty"`
	CreatedAt     string `json:"created_at"`
}
