package dto

// OrderLineRequest is one purchase-order line.
type OrderLineRequest struct {
	MedicineID string `json:"medicine_id"`
	Quantity   int64  `json:"quantity"`
	UnitPrice  int64  `json:"unit_price"`
}

// CreateOrderRequest is the payload for POST /api/purchase-orders.
type CreateOrderRequest struct {
	SupplierID   string             `json:"supplier_id"`
	ExpectedDate string             `json:"expected_date,omitempty"` // YYYY-MM-DD
	Notes        string             `json:"notes,omitempty"`
	Items        []OrderLineRequest `json:"items"`
}

// RecordPaymentRequest is the payload for POST /api/purchase-orders/:id/payments.
type RecordPaymentRequest struct {
	Amount int64 `json:"amount"`
}

// OrderItemResponse is one resolved order line.
type OrderItemResponse struct {
	MedicineID       string `json:"medicine_id"`
	MedicineName     string `json:"medicine_name,omitempty"`
	QuantityOrdered  int64  `json:"quantity_ordered"`
	QuantityReceived int64  `json:"quantity_received"`
	UnitPrice        int64  `json:"unit_price"`
}

// OrderResponse is the purchase order detail.
type OrderResponse struct {
	ID           string              `json:"id"`
	OrderNumber  string              `json:"order_number"`
	SupplierID   string              `json:"supplier_id"`
	Status       string              `json:"status"`
	OrderDate    string              `json:"order_date"`
	ExpectedDate string              `json:"expected_date,omitempty"`
	ReceivedDate string              `json:"received_date,omitempty"`
	TotalAmount  int64               `json:"total_amount"`
	PaidAmount   int64               `json:"paid_amount"`
	Notes        string              `json:"notes,omitempty"`
	Items        []OrderItemResponse `json:"items,omitempty"`
}
