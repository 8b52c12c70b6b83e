package entity

import (
	"time"

	"github.com/pharmaplus/pharmacy-pos/pkg/money"
)

// Purchase order statuses. Transitions move forward only; cancellation is
// terminal and allowed from pending/partial.
const (
	OrderPending   = "pending"
	OrderPartial   = "partial"
	OrderReceived  = "received"
	OrderCancelled = "cancelled"
)

// PurchaseOrder is a supplier order. PaidAmount never exceeds TotalAmount.
type PurchaseOrder struct {
	ID           string
	OrderNumber  string // PO-00001, unique, global sequence
	SupplierID   string
	Status       string
	OrderDate    time.Time
	ExpectedDate *time.Time
	ReceivedDate *time.Time
	TotalAmount  money.Paisa
	PaidAmount   money.Paisa
	Notes        string
	CreatedBy    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PurchaseOrderItem is one ordered line. QuantityReceived stays 0 until the
// order is received, then is set equal to QuantityOrdered (full-line receive
// only; partial per-line receiving is not modeled).
type PurchaseOrderItem struct {
	ID               string
	OrderID          string
	MedicineID       string
	QuantityOrdered  int64
	QuantityReceived int64
	UnitPrice        money.Paisa
}
