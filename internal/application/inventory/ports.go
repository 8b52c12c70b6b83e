package inventory

import (
	"context"

	"github.com/pharmaplus/pharmacy-pos/internal/domain/repository"
)

// TxRunner executes a function inside a DB transaction, handing it
// repositories bound to that transaction. It guarantees atomicity for every
// stock mutation: either all writes commit or none survive.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		stockRepo repository.StockRepository,
		ledgerRepo repository.StockTransactionRepository,
		medicineRepo repository.MedicineRepository,
	) error) error
}
