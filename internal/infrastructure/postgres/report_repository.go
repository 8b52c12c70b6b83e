package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/pharmaplus/pharmacy-pos/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo serves the read-only aggregations. It always runs against the
// pool, never inside a transaction.
type ReportRepo struct {
	q Querier
}

// NewReportRepository builds the adapter.
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

func (r *ReportRepo) SalesSummary(from, to time.Time) (*repository.SalesSummary, error) {
	query := `
		SELECT COUNT(*),
			COALESCE(SUM(subtotal), 0),
			COALESCE(SUM(discount_amount), 0),
			COALESCE(SUM(tax_amount), 0),
			COALESCE(SUM(total), 0)
		FROM bills
		WHERE NOT voided AND created_at >= $1 AND created_at < $2`
	var s repository.SalesSummary
	err := r.q.QueryRow(context.Background(), query, from, to).Scan(
		&s.BillCount, &s.GrossSubtotal, &s.DiscountTotal, &s.TaxTotal, &s.Revenue,
	)
	if err != nil {
		return nil, fmt.Errorf("sales summary: %w", err)
	}
	return &s, nil
}

func (r *ReportRepo) LowStock() ([]*repository.LowStockRow, error) {
	query := `
		SELECT m.id, m.name, COALESCE(s.current_quantity, 0), m.minimum_stock
		FROM medicines m
		LEFT JOIN stock_balances s ON s.medicine_id = m.id
		WHERE NOT m.deleted
		  AND m.minimum_stock > 0
		  AND COALESCE(s.current_quantity, 0) <= m.minimum_stock
		ORDER BY (m.minimum_stock - COALESCE(s.current_quantity, 0)) DESC`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("low stock: %w", err)
	}
	defer rows.Close()
	var list []*repository.LowStockRow
	for rows.Next() {
		var row repository.LowStockRow
		if err := rows.Scan(&row.MedicineID, &row.Name, &row.CurrentQuantity, &row.MinimumStock); err != nil {
			return nil, fmt.Errorf("scan low stock row: %w", err)
		}
		list = append(list, &row)
	}
	return list, rows.Err()
}

func (r *ReportRepo) ExpiringBefore(cutoff time.Time) ([]*repository.ExpiringRow, error) {
	query := `
		SELECT m.id, m.name, m.batch_number, m.expiry_date, COALESCE(s.current_quantity, 0)
		FROM medicines m
		LEFT JOIN stock_balances s ON s.medicine_id = m.id
		WHERE NOT m.deleted
		  AND m.expiry_date IS NOT NULL
		  AND m.expiry_date < $1
		  AND COALESCE(s.current_quantity, 0) > 0
		ORDER BY m.expiry_date`
	rows, err := r.q.Query(context.Background(), query, cutoff)
	if err != nil {
		return nil, fmt.Errorf("expiring medicines: %w", err)
	}
	defer rows.Close()
	var list []*repository.ExpiringRow
	for rows.Next() {
		var row repository.ExpiringRow
		if err := rows.Scan(&row.MedicineID, &row.Name, &row.BatchNumber, &row.ExpiryDate, &row.CurrentQuantity); err != nil {
			return nil, fmt.Errorf("scan expiring row: %w", err)
		}
		list = append(list, &row)
	}
	return list, rows.Err()
}

func (r *ReportRepo) StockValuation() ([]*repository.StockValuationRow, error) {
	query := `
		SELECT m.id, m.name, COALESCE(s.current_quantity, 0), m.buy_price,
			COALESCE(s.current_quantity, 0) * m.buy_price
		FROM medicines m
		LEFT JOIN stock_balances s ON s.medicine_id = m.id
		WHERE NOT m.deleted AND COALESCE(s.current_quantity, 0) > 0
		ORDER BY m.name`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("stock valuation: %w", err)
	}
	defer rows.Close()
	var list []*repository.StockValuationRow
	for rows.Next() {
		var row repository.StockValuationRow
		if err := rows.Scan(&row.MedicineID, &row.Name, &row.CurrentQuantity, &row.BuyPrice, &row.Valuation); err != nil {
			return nil, fmt.Errorf("scan valuation row: %w", err)
		}
		list = append(list, &row)
	}
	return list, rows.Err()
}
