package dto

// All currency amounts cross the wire as integer paisa.

// BillLineRequest is one sale line. An omitted UnitPrice bills the line at
// the medicine's current sell price; zero is a valid captured price for a
// free line.
type BillLineRequest struct {
	MedicineID string `json:"medicine_id"`
	Quantity   int64  `json:"quantity"`
	UnitPrice  *int64 `json:"unit_price,omitempty"`
}

// CreateBillRequest is the payload for POST /api/bills.
type CreateBillRequest struct {
	CustomerName    string            `json:"customer_name"`
	CustomerPhone   string            `json:"customer_phone"`
	Items           []BillLineRequest `json:"items"`
	DiscountPercent float64           `json:"discount_percent"`
	TaxPercent      float64           `json:"tax_percent"`
	PaymentMode     string            `json:"payment_mode"` // cash | card | credit
	AmountReceived  int64             `json:"amount_received"`
}

// VoidBillRequest is the payload for POST /api/bills/:id/void.
type VoidBillRequest struct {
	Reason string `json:"reason"`
}

// BillItemResponse is a resolved bill line for receipt rendering.
type BillItemResponse struct {
	MedicineID   string `json:"medicine_id"`
	MedicineName string `json:"medicine_name"`
	BatchNumber  string `json:"batch_number"`
	Quantity     int64  `json:"quantity"`
	UnitPrice    int64  `json:"unit_price"`
	LineTotal    int64  `json:"line_total"`
}

// BillResponse is the full bill detail.
type BillResponse struct {
	ID              string             `json:"id"`
	BillNumber      string             `json:"bill_number"`
	CustomerName    string             `json:"customer_name,omitempty"`
	CustomerPhone   string             `json:"customer_phone,omitempty"`
	Subtotal        int64              `json:"subtotal"`
	DiscountPercent string             `json:"discount_percent"`
	DiscountAmount  int64              `json:"discount_amount"`
	TaxPercent      string             `json:"tax_percent"`
	TaxAmount       int64              `json:"tax_amount"`
	Total           int64              `json:"total"`
	PaymentMode     string             `json:"payment_mode"`
	AmountReceived  int64              `json:"amount_received,omitempty"`
	ChangeDue       int64              `json:"change_due,omitempty"`
	Voided          bool               `json:"voided"`
	VoidReason      string             `json:"void_reason,omitempty"`
	CreatedBy       string             `json:"created_by"`
	CreatedAt       string             `json:"created_at"`
	Items           []BillItemResponse `json:"items"`
}
