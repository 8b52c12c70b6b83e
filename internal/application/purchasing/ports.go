package purchasing

import (
	"context"

	"github.com/pharmaplus/pharmacy-pos/internal/application/inventory"
	"github.com/pharmaplus/pharmacy-pos/internal/domain/entity"
	"github.com/pharmaplus/pharmacy-pos/internal/domain/repository"
)

// PurchasingTxRunner executes a function inside a DB transaction with the
// repositories the purchasing flows need bound to that transaction.
type PurchasingTxRunner interface {
	RunPurchasing(ctx context.Context, fn func(
		stockRepo repository.StockRepository,
		ledgerRepo repository.StockTransactionRepository,
		medicineRepo repository.MedicineRepository,
		orderRepo repository.PurchaseOrderRepository,
	) error) error
}

// StockMutator is the inventory choke point receiving drives per order line.
// Implemented by inventory.StockUseCase.
type StockMutator interface {
	ApplyDeltaInTx(
		stockRepo repository.StockRepository,
		ledgerRepo repository.StockTransactionRepository,
		med *entity.Medicine,
		in inventory.ApplyDeltaInput,
	) error
}
