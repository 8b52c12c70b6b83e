package billing

import (
	"context"

	"github.com/pharmaplus/pharmacy-pos/internal/application/inventory"
	"github.com/pharmaplus/pharmacy-pos/internal/domain/entity"
	"github.com/pharmaplus/pharmacy-pos/internal/domain/repository"
)

// BillingTxRunner executes a function inside a DB transaction with the
// repositories billing needs bound to that transaction (for CreateBill and
// VoidBill).
type BillingTxRunner interface {
	RunBilling(ctx context.Context, fn func(
		stockRepo repository.StockRepository,
		ledgerRepo repository.StockTransactionRepository,
		medicineRepo repository.MedicineRepository,
		billRepo repository.BillRepository,
	) error) error
}

// StockMutator is the inventory choke point billing drives for every line.
// Implemented by inventory.StockUseCase.
type StockMutator interface {
	ApplyDeltaInTx(
		stockRepo repository.StockRepository,
		ledgerRepo repository.StockTransactionRepository,
		med *entity.Medicine,
		in inventory.ApplyDeltaInput,
	) error
}

// ReceiptLine is a bill item resolved for rendering.
type ReceiptLine struct {
	Item         entity.BillItem
	MedicineName string
	BatchNumber  string
}

// ReceiptPDFGenerator renders a committed bill as a printable receipt.
type ReceiptPDFGenerator interface {
	GenerateReceiptPDF(ctx context.Context, bill *entity.Bill, lines []ReceiptLine) ([]byte, error)
}
