// Package pdf renders committed bills as printable A4 receipts with Maroto v2.
//
// Page layout:
//
//	┌──────────────────────────────────────────────────────┐
//	│  HEADER: Pharmacy name        │  Bill number + date  │
//	│  ──────────────────────────────────────────────────  │
//	│  CUSTOMER: name + phone (when captured)              │
//	│  ──────────────────────────────────────────────────  │
//	│  TABLE: Qty | Medicine (batch) | Unit price | Amount │
//	│  ──────────────────────────────────────────────────  │
//	│  TOTALS: subtotal / discount / tax / TOTAL           │
//	│  TENDER: payment mode, cash received, change         │
//	└──────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	appbilling "github.com/pharmaplus/pharmacy-pos/internal/application/billing"
	"github.com/pharmaplus/pharmacy-pos/internal/domain/entity"
	"github.com/pharmaplus/pharmacy-pos/pkg/money"
)

var (
	colorPrimary = &props.Color{Red: 16, Green: 94, Blue: 74}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorVoid    = &props.Color{Red: 180, Green: 40, Blue: 40}
)

// amountPrinter groups thousands via the message catalog instead of
// hand-rolled digit walking.
var amountPrinter = message.NewPrinter(language.English)

// MarotoReceiptGenerator implements billing.ReceiptPDFGenerator with Maroto v2.
type MarotoReceiptGenerator struct {
	pharmacyName string
}

// NewMarotoReceiptGenerator builds the generator. name appears on the header.
func NewMarotoReceiptGenerator(name string) *MarotoReceiptGenerator {
	return &MarotoReceiptGenerator{pharmacyName: name}
}

// GenerateReceiptPDF renders the bill and returns the PDF bytes. Voided bills
// render with a VOIDED stamp and the void reason.
func (g *MarotoReceiptGenerator) GenerateReceiptPDF(
	_ context.Context,
	bill *entity.Bill,
	lines []appbilling.ReceiptLine,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Receipt "+bill.BillNumber, true).
		WithAuthor(g.pharmacyName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(bill))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	if bill.Voided {
		m.AddRows(voidRow(bill))
	}
	if bill.CustomerName != "" || bill.CustomerPhone != "" {
		m.AddRows(customerRow(bill))
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableLineRows(lines) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(bill))
	m.AddRows(tenderRow(bill))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generate document: %w", err)
	}
	return doc.GetBytes(), nil
}

func (g *MarotoReceiptGenerator) headerRow(bill *entity.Bill) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(g.pharmacyName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Sales receipt", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(bill.BillNumber, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 3,
			}),
			text.New("Date: "+bill.CreatedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 11, Color: colorGray,
			}),
		),
	)
}

func voidRow(bill *entity.Bill) core.Row {
	return row.New(10).Add(
		col.New(12).Add(
			text.New("VOIDED: "+bill.VoidReason, props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Center,
				Color: colorVoid, Top: 2,
			}),
		),
	)
}

func customerRow(bill *entity.Bill) core.Row {
	contact := bill.CustomerName
	if bill.CustomerPhone != "" {
		contact += "   |   " + bill.CustomerPhone
	}
	return row.New(10).Add(
		col.New(12).Add(
			text.New("CUSTOMER", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(contact, props.Text{Size: 9, Top: 6}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Qty", 1, align.Center),
		h("Medicine", 6, align.Left),
		h("Unit price", 2, align.Right),
		h("Amount", 3, align.Right),
	)
}

func tableLineRows(lines []appbilling.ReceiptLine) []core.Row {
	result := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		name := l.MedicineName
		if l.BatchNumber != "" {
			name += " (batch " + l.BatchNumber + ")"
		}
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(
				strconv.FormatInt(l.Item.Quantity, 10),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(6).Add(text.New(
				name,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				formatAmount(l.Item.UnitPrice),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(3).Add(text.New(
				formatAmount(l.Item.LineTotal),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

func totalsRow(bill *entity.Bill) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	grandLabel := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 2,
		})
	}
	grandValue := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 1,
		})
	}

	return row.New(32).Add(
		col.New(4),
		col.New(4).Add(
			label("Subtotal:"),
			label(fmt.Sprintf("Discount (%s%%):", bill.DiscountPercent.String())),
			label(fmt.Sprintf("Tax (%s%%):", bill.TaxPercent.String())),
			grandLabel("TOTAL:"),
		),
		col.New(4).Add(
			value(formatAmount(bill.Subtotal)),
			value("-"+formatAmount(bill.DiscountAmount)),
			value(formatAmount(bill.TaxAmount)),
			grandValue(formatAmount(bill.Total)),
		),
	)
}

func tenderRow(bill *entity.Bill) core.Row {
	tender := "Payment: " + bill.PaymentMode
	if bill.PaymentMode == entity.PaymentCash {
		tender += fmt.Sprintf("   |   Received: %s   |   Change: %s",
			formatAmount(bill.AmountReceived), formatAmount(bill.ChangeDue))
	}
	return row.New(10).Add(
		col.New(12).Add(
			text.New(tender, props.Text{Size: 8, Color: colorGray, Top: 3}),
		),
	)
}

// formatAmount renders paisa as grouped rupees, e.g. 945000 -> "Rs 9,450.00".
func formatAmount(p money.Paisa) string {
	rupees := int64(p) / 100
	paisa := int64(p) % 100
	if paisa < 0 {
		paisa = -paisa
	}
	return amountPrinter.Sprintf("Rs %d.%02d", rupees, paisa)
}
