package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/pharmaplus/pharmacy-pos/internal/domain/entity"
	"github.com/pharmaplus/pharmacy-pos/internal/domain/repository"
)

var (
	_ repository.StockRepository            = (*StockRepo)(nil)
	_ repository.StockTransactionRepository = (*StockTransactionRepo)(nil)
)

// StockRepo implements StockRepository on PostgreSQL.
type StockRepo struct {
	q Querier
}

// NewStockRepository builds the adapter. Accepts pool or tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

func (r *StockRepo) Get(medicineID string) (*entity.StockBalance, error) {
	return r.get(medicineID, false)
}

// GetForUpdate locks the balance row until the surrounding transaction ends.
// A medicine without a balance row yet reads as zero.
func (r *StockRepo) GetForUpdate(medicineID string) (*entity.StockBalance, error) {
	return r.get(medicineID, true)
}

func (r *StockRepo) get(medicineID string, forUpdate bool) (*entity.StockBalance, error) {
	query := `SELECT medicine_id, current_quantity, updated_at FROM stock_balances WHERE medicine_id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	var b entity.StockBalance
	err := r.q.QueryRow(context.Background(), query, medicineID).Scan(
		&b.MedicineID, &b.CurrentQuantity, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.StockBalance{MedicineID: medicineID, UpdatedAt: time.Now()}, nil
		}
		return nil, fmt.Errorf("get stock balance: %w", err)
	}
	return &b, nil
}

func (r *StockRepo) Upsert(balance *entity.StockBalance) error {
	query := `
		INSERT INTO stock_balances (medicine_id, current_quantity, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (medicine_id)
		DO UPDATE SET current_quantity = EXCLUDED.current_quantity, updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(context.Background(), query, balance.MedicineID, balance.CurrentQuantity, balance.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert stock balance: %w", err)
	}
	return nil
}

// StockTransactionRepo implements the append-only ledger on PostgreSQL.
type StockTransactionRepo struct {
	q Querier
}

// NewStockTransactionRepository builds the adapter. Accepts pool or tx (Querier).
func NewStockTransactionRepository(q Querier) *StockTransactionRepo {
	return &StockTransactionRepo{q: q}
}

func (r *StockTransactionRepo) Create(t *entity.StockTransaction) error {
	query := `
		INSERT INTO stock_transactions (id, medicine_id, type, quantity, reason,
			reference_id, reference_type, performed_by, created_at)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, '')::uuid, NULLIF($7, ''), $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		t.ID, t.MedicineID, t.Type, t.Quantity, t.Reason,
		t.ReferenceID, t.ReferenceType, t.PerformedBy, t.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create stock transaction: %w", err)
	}
	return nil
}

func (r *StockTransactionRepo) ListByMedicine(medicineID string, from, to *time.Time, limit, offset int) ([]*entity.StockTransaction, error) {
	query := `
		SELECT id, medicine_id, type, quantity, reason,
			COALESCE(reference_id::text, ''), COALESCE(reference_type, ''), performed_by, created_at
		FROM stock_transactions
		WHERE medicine_id = $1
		  AND ($2::timestamptz IS NULL OR created_at >= $2)
		  AND ($3::timestamptz IS NULL OR created_at < $3)
		ORDER BY created_at DESC LIMIT $4 OFFSET $5`
	rows, err := r.q.Query(context.Background(), query, medicineID, from, to, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stock transactions: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockTransaction
	for rows.Next() {
		var t entity.StockTransaction
		if err := rows.Scan(
			&t.ID, &t.MedicineID, &t.Type, &t.Quantity, &t.Reason,
			&t.ReferenceID, &t.ReferenceType, &t.PerformedBy, &t.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan stock transaction: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}

// SumSignedByMedicine replays the ledger: out rows subtract, everything else
// adds. The result must equal the materialized balance.
func (r *StockTransactionRepo) SumSignedByMedicine(medicineID string) (int64, error) {
	query := `
		SELECT COALESCE(SUM(CASE WHEN type = 'out' THEN -quantity ELSE quantity END), 0)
		FROM stock_transactions WHERE medicine_id = $1`
	var sum int64
	if err := r.q.QueryRow(context.Background(), query, medicineID).Scan(&sum); err != nil {
		return 0, fmt.Errorf("sum stock transactions: %w", err)
	}
	return sum, nil
}
