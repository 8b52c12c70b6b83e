package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/pharmaplus/pharmacy-pos/pkg/money"
)

// Payment modes.
const (
	PaymentCash   = "cash"
	PaymentCard   = "card"
	PaymentCredit = "credit"
)

// Bill is one sale. Immutable after creation except for the void fields, which
// transition exactly once from active to voided.
type Bill struct {
	ID              string
	BillNumber      string // BILL-YYYYMMDD-0001, unique, daily sequence
	CustomerName    string
	CustomerPhone   string
	Subtotal        money.Paisa
	DiscountPercent decimal.Decimal
	DiscountAmount  money.Paisa
	TaxPercent      decimal.Decimal
	TaxAmount       money.Paisa
	Total           money.Paisa
	PaymentMode     string
	AmountReceived  money.Paisa // cash only
	ChangeDue       money.Paisa // cash only
	Voided          bool
	VoidReason      string
	VoidedBy        string
	VoidedAt        *time.Time
	CreatedBy       string
	CreatedAt       time.Time
}

// BillItem is one line of a bill. The unit price is captured at sale time and
// stays decoupled from later catalog price changes.
type BillItem struct {
	ID         string
	BillID     string
	MedicineID string
	Quantity   int64
	UnitPrice  money.Paisa
	LineTotal  money.Paisa
}
