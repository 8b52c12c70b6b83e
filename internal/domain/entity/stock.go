package entity

import "time"

// Stock transaction types. The type tag is caller-supplied, but positive
// deltas must carry an "in"-like tag and negative deltas an "out"-like one.
const (
	TxTypeIn     = "in"
	TxTypeOut    = "out"
	TxTypeAdjust = "adjust"
	TxTypeReturn = "return"
)

// Reference types linking a stock transaction to its originating entity.
const (
	RefTypeBill          = "bill"
	RefTypeBillVoid      = "bill_void"
	RefTypePurchaseOrder = "purchase_order"
)

// StockBalance is the materialized per-medicine quantity. It must always equal
// the sum of signed quantities of that medicine's StockTransaction history and
// may never go negative.
type StockBalance struct {
	MedicineID      string
	CurrentQuantity int64
	UpdatedAt       time.Time
}

// StockTransaction is one append-only ledger entry. Quantity is stored
// unsigned; the sign lives in the type tag. Rows are never updated or deleted.
type StockTransaction struct {
	ID            string
	MedicineID    string
	Type          string
	Quantity      int64 // unsigned
	Reason        string
	ReferenceID   string // bill or purchase order id, empty for manual entries
	ReferenceType string
	PerformedBy   string
	CreatedAt     time.Time
}

// SignedQuantity returns the ledger delta this entry contributed: negative for
// stock-out rows, positive otherwise.
func (t *StockTransaction) SignedQuantity() int64 {
	if t.Type == TxTypeOut {
		return -t.Quantity
	}
	return t.Quantity
}
