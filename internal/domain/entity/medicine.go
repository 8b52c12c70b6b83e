package entity

import (
	"time"

	"github.com/pharmaplus/pharmacy-pos/pkg/money"
)

// Medicine is a catalog entry. Rows are never physically deleted: bills and
// stock transactions keep referencing them, so removal is a soft-delete flag.
type Medicine struct {
	ID                string
	Name              string
	Category          string
	BatchNumber       string
	ManufacturingDate *time.Time
	ExpiryDate        *time.Time
	ReceivedDate      *time.Time
	BuyPrice          money.Paisa
	SellPrice         money.Paisa
	MinimumStock      int64
	Deleted           bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
