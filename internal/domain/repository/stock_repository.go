package repository

import (
	"time"

	"github.com/pharmaplus/pharmacy-pos/internal/domain/entity"
)

// StockRepository is the port for the per-medicine balance row.
// Used inside transactions to guarantee consistency.
type StockRepository interface {
	Get(medicineID string) (*entity.StockBalance, error)
	// GetForUpdate locks the balance row (SELECT FOR UPDATE) so concurrent
	// writers serialize on it.
	GetForUpdate(medicineID string) (*entity.StockBalance, error)
	Upsert(balance *entity.StockBalance) error
}

// StockTransactionRepository is the port for the append-only ledger.
// Entries are never updated or deleted.
type StockTransactionRepository interface {
	Create(tx *entity.StockTransaction) error
	ListByMedicine(medicineID string, from, to *time.Time, limit, offset int) ([]*entity.StockTransaction, error)
	// SumSignedByMedicine replays the ledger for reconciliation against the
	// materialized balance.
	SumSignedByMedicine(medicineID string) (int64, error)
}
