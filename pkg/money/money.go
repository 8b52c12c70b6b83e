// Package money models currency amounts as integer minor units (paisa,
// 1/100 rupee). Keeping amounts integral makes float contamination a type
// error instead of a silent rounding bug on receipts.
package money

import (
	"github.com/shopspring/decimal"
)

// Paisa is an amount in minor currency units. Negative values are allowed for
// intermediate arithmetic but never persisted on bills.
type Paisa int64

// Zero is the zero amount.
const Zero Paisa = 0

// FromRupees converts a whole-rupee integer amount to paisa.
func FromRupees(r int64) Paisa {
	return Paisa(r * 100)
}

// Mul multiplies the amount by an integer quantity.
func (p Paisa) Mul(qty int64) Paisa {
	return Paisa(int64(p) * qty)
}

// Decimal returns the amount as a decimal number of paisa.
func (p Paisa) Decimal() decimal.Decimal {
	return decimal.NewFromInt(int64(p))
}

// Rupees returns the amount in rupees with two decimal places.
func (p Paisa) Rupees() decimal.Decimal {
	return decimal.NewFromInt(int64(p)).Div(decimal.NewFromInt(100))
}

// String renders the amount as rupees, e.g. 9450 paisa -> "94.50".
func (p Paisa) String() string {
	return p.Rupees().StringFixed(2)
}

// Percent applies a percentage to the amount and rounds half away from zero
// to the nearest paisa. decimal.Round implements exactly that tie-break, so
// discount and tax stages stay bit-compatible with existing receipts.
func (p Paisa) Percent(percent decimal.Decimal) Paisa {
	return Paisa(p.Decimal().Mul(percent).Div(decimal.NewFromInt(100)).Round(0).IntPart())
}

// ClampPercent clamps a percentage to the [0,100] range.
func ClampPercent(percent decimal.Decimal) decimal.Decimal {
	if percent.LessThan(decimal.Zero) {
		return decimal.Zero
	}
	hundred := decimal.NewFromInt(100)
	if percent.GreaterThan(hundred) {
		return hundred
	}
	return percent
}

// Totals is the deterministic bill computation: subtotal, discount stage,
// then tax stage, each rounded half away from zero on integer paisa.
type Totals struct {
	Subtotal       Paisa
	DiscountAmount Paisa
	TaxAmount      Paisa
	Total          Paisa
}

// ComputeTotals derives the bill totals from a subtotal and the two
// percentages. Stage order matters: discount first, tax on the taxable rest.
func ComputeTotals(subtotal Paisa, discountPercent, taxPercent decimal.Decimal) Totals {
	discount := subtotal.Percent(ClampPercent(discountPercent))
	taxable := subtotal - discount
	if taxable < 0 {
		taxable = 0
	}
	tax := taxable.Percent(ClampPercent(taxPercent))
	return Totals{
		Subtotal:       subtotal,
		DiscountAmount: discount,
		TaxAmount:      tax,
		Total:          taxable + tax,
	}
}

// ParsePercent converts a raw float percentage (as decoded from JSON) into a
// decimal without accumulating binary-float error.
func ParsePercent(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f)
}
