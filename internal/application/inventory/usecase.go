package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pharmaplus/pharmacy-pos/internal/domain"
	"github.com/pharmaplus/pharmacy-pos/internal/domain/entity"
	"github.com/pharmaplus/pharmacy-pos/internal/domain/repository"
)

// StockUseCase is the single choke point for stock mutations. Every balance
// change goes through ApplyDeltaInTx so the materialized balance and the
// append-only ledger can never drift apart.
type StockUseCase struct {
	txRunner TxRunner
}

// NewStockUseCase builds the use case.
func NewStockUseCase(txRunner TxRunner) *StockUseCase {
	return &StockUseCase{txRunner: txRunner}
}

// ApplyDeltaInput describes one signed stock mutation.
type ApplyDeltaInput struct {
	Delta         int64  // signed; negative depletes
	Type          string // ledger tag; must be "out" iff Delta < 0
	Reason        string
	ReferenceID   string
	ReferenceType string
	PerformedBy   string
	At            time.Time
}

// ApplyDeltaInTx applies a signed quantity delta to a medicine's balance and
// appends the matching ledger entry, using repositories bound to the caller's
// transaction. The balance row is locked (SELECT FOR UPDATE) so concurrent
// writers serialize on it; a delta that would drive the balance negative
// fails with ErrInsufficientStock naming the medicine, and nothing is written.
func (uc *StockUseCase) ApplyDeltaInTx(
	stockRepo repository.StockRepository,
	ledgerRepo repository.StockTransactionRepository,
	med *entity.Medicine,
	in ApplyDeltaInput,
) error {
	if in.Delta == 0 {
		return fmt.Errorf("%w: zero quantity for %s", domain.ErrValidation, med.Name)
	}
	// Ledger invariant: negative deltas carry the "out" tag, positive deltas
	// an "in"-like tag. The type is caller-supplied but must agree.
	if in.Delta < 0 && in.Type != entity.TxTypeOut {
		return fmt.Errorf("%w: negative delta requires type %q", domain.ErrValidation, entity.TxTypeOut)
	}
	if in.Delta > 0 && in.Type == entity.TxTypeOut {
		return fmt.Errorf("%w: positive delta cannot carry type %q", domain.ErrValidation, entity.TxTypeOut)
	}

	balance, err := stockRepo.GetForUpdate(med.ID)
	if err != nil {
		return err
	}
	newQty := balance.CurrentQuantity + in.Delta
	if newQty < 0 {
		return fmt.Errorf("%w: %s has %d in stock, requested %d",
			domain.ErrInsufficientStock, med.Name, balance.CurrentQuantity, -in.Delta)
	}

	balance.CurrentQuantity = newQty
	balance.UpdatedAt = in.At
	if err := stockRepo.Upsert(balance); err != nil {
		return err
	}

	qty := in.Delta
	if qty < 0 {
		qty = -qty
	}
	entry := &entity.StockTransaction{
		ID:            uuid.New().String(),
		MedicineID:    med.ID,
		Type:          in.Type,
		Quantity:      qty,
		Reason:        in.Reason,
		ReferenceID:   in.ReferenceID,
		ReferenceType: in.ReferenceType,
		PerformedBy:   in.PerformedBy,
		CreatedAt:     in.At,
	}
	return ledgerRepo.Create(entry)
}

// RecordTransaction registers a manual stock movement (in/out/adjust/return)
// in its own transaction. For "adjust" the quantity may be negative; a
// downward adjustment is recorded with the "out" tag, mirroring the ledger
// sign invariant.
func (uc *StockUseCase) RecordTransaction(ctx context.Context, medicineID, txType string, quantity int64, reason, performedBy string) error {
	if medicineID == "" || reason == "" {
		return fmt.Errorf("%w: medicine and reason are required", domain.ErrValidation)
	}

	var delta int64
	tag := txType
	switch txType {
	case entity.TxTypeIn, entity.TxTypeReturn:
		if quantity <= 0 {
			return fmt.Errorf("%w: quantity must be positive for %q", domain.ErrValidation, txType)
		}
		delta = quantity
	case entity.TxTypeOut:
		if quantity <= 0 {
			return fmt.Errorf("%w: quantity must be positive for %q", domain.ErrValidation, txType)
		}
		delta = -quantity
	case entity.TxTypeAdjust:
		if quantity == 0 {
			return fmt.Errorf("%w: adjustment quantity cannot be zero", domain.ErrValidation)
		}
		delta = quantity
		if quantity < 0 {
			tag = entity.TxTypeOut
			reason = "adjustment: " + reason
		}
	default:
		return fmt.Errorf("%w: unknown transaction type %q", domain.ErrValidation, txType)
	}

	now := time.Now()
	return uc.txRunner.Run(ctx, func(
		stockRepo repository.StockRepository,
		ledgerRepo repository.StockTransactionRepository,
		medicineRepo repository.MedicineRepository,
	) error {
		med, err := medicineRepo.GetByID(medicineID)
		if err != nil {
			return err
		}
		if med == nil || med.Deleted {
			return fmt.Errorf("%w: medicine %s", domain.ErrNotFound, medicineID)
		}
		return uc.ApplyDeltaInTx(stockRepo, ledgerRepo, med, ApplyDeltaInput{
			Delta:       delta,
			Type:        tag,
			Reason:      reason,
			PerformedBy: performedBy,
			At:          now,
		})
	})
}
