package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/pharmaplus/pharmacy-pos/internal/application/inventory"
	"github.com/pharmaplus/pharmacy-pos/internal/domain"
	"github.com/pharmaplus/pharmacy-pos/internal/domain/entity"
	"github.com/pharmaplus/pharmacy-pos/internal/domain/repository"
)

// VoidBillUseCase reverses a bill: flags it voided and restocks every line.
type VoidBillUseCase struct {
	txRunner BillingTxRunner
	stock    StockMutator
}

// NewVoidBillUseCase builds the use case.
func NewVoidBillUseCase(txRunner BillingTxRunner, stock StockMutator) *VoidBillUseCase {
	return &VoidBillUseCase{txRunner: txRunner, stock: stock}
}

// VoidBill marks the bill voided and returns each line's quantity to stock in
// one transaction. Voiding is one-way; an already-voided bill fails with
// ErrAlreadyVoided. The original bill rows are preserved for audit.
func (uc *VoidBillUseCase) VoidBill(ctx context.Context, billID, reason, voidedBy string) error {
	if reason == "" {
		return fmt.Errorf("%w: void reason is required", domain.ErrValidation)
	}
	if voidedBy == "" {
		return fmt.Errorf("%w: missing voiding user", domain.ErrValidation)
	}

	now := time.Now()
	return uc.txRunner.RunBilling(ctx, func(
		stockRepo repository.StockRepository,
		ledgerRepo repository.StockTransactionRepository,
		medicineRepo repository.MedicineRepository,
		billRepo repository.BillRepository,
	) error {
		bill, err := billRepo.GetByID(billID)
		if err != nil {
			return err
		}
		if bill == nil {
			return fmt.Errorf("%w: bill %s", domain.ErrNotFound, billID)
		}
		if bill.Voided {
			return fmt.Errorf("%w: bill %s", domain.ErrAlreadyVoided, bill.BillNumber)
		}

		bill.Voided = true
		bill.VoidReason = reason
		bill.VoidedBy = voidedBy
		bill.VoidedAt = &now
		if err := billRepo.MarkVoided(bill); err != nil {
			return err
		}

		items, err := billRepo.GetItems(billID)
		if err != nil {
			return err
		}
		for _, item := range items {
			med, err := medicineRepo.GetByID(item.MedicineID)
			if err != nil {
				return err
			}
			if med == nil {
				return fmt.Errorf("%w: medicine %s", domain.ErrNotFound, item.MedicineID)
			}
			// Restock even soft-deleted medicines so the ledger stays balanced.
			if err := uc.stock.ApplyDeltaInTx(stockRepo, ledgerRepo, med, inventory.ApplyDeltaInput{
				Delta:         item.Quantity,
				Type:          entity.TxTypeIn,
				Reason:        fmt.Sprintf("void %s: %s", bill.BillNumber, reason),
				ReferenceID:   billID,
				ReferenceType: entity.RefTypeBillVoid,
				PerformedBy:   voidedBy,
				At:            now,
			}); err != nil {
				return err
			}
		}
		return nil
	})
}
