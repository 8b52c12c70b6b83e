package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/pharmaplus/pharmacy-pos/internal/domain"
	"github.com/pharmaplus/pharmacy-pos/internal/domain/entity"
	"github.com/pharmaplus/pharmacy-pos/internal/domain/repository"
)

var _ repository.BillRepository = (*BillRepo)(nil)

// BillRepo implements BillRepository on PostgreSQL.
type BillRepo struct {
	q Querier
}

// NewBillRepository builds the adapter. Accepts pool or tx (Querier).
func NewBillRepository(q Querier) *BillRepo {
	return &BillRepo{q: q}
}

const billColumns = `id, bill_number, customer_name, customer_phone, subtotal,
	discount_percent, discount_amount, tax_percent, tax_amount, total, payment_mode,
	amount_received, change_due, voided, void_reason, voided_by, voided_at, created_by, created_at`

func (r *BillRepo) Create(b *entity.Bill) error {
	query := `
		INSERT INTO bills (id, bill_number, customer_name, customer_phone, subtotal,
			discount_percent, discount_amount, tax_percent, tax_amount, total, payment_mode,
			amount_received, change_due, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(context.Background(), query,
		b.ID, b.BillNumber, b.CustomerName, b.CustomerPhone, b.Subtotal,
		b.DiscountPercent, b.DiscountAmount, b.TaxPercent, b.TaxAmount, b.Total, b.PaymentMode,
		b.AmountReceived, b.ChangeDue, b.CreatedBy, b.CreatedAt,
	)
	if err != nil {
		// UNIQUE(bill_number) backstops the in-transaction sequence read.
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: bill number %s", domain.ErrDuplicate, b.BillNumber)
		}
		return fmt.Errorf("create bill: %w", err)
	}
	return nil
}

func (r *BillRepo) CreateItem(item *entity.BillItem) error {
	query := `
		INSERT INTO bill_items (id, bill_id, medicine_id, quantity, unit_price, line_total)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.BillID, item.MedicineID, item.Quantity, item.UnitPrice, item.LineTotal,
	)
	if err != nil {
		return fmt.Errorf("create bill item: %w", err)
	}
	return nil
}

func (r *BillRepo) GetByID(id string) (*entity.Bill, error) {
	query := `SELECT ` + billColumns + ` FROM bills WHERE id = $1`
	var b entity.Bill
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&b.ID, &b.BillNumber, &b.CustomerName, &b.CustomerPhone, &b.Subtotal,
		&b.DiscountPercent, &b.DiscountAmount, &b.TaxPercent, &b.TaxAmount, &b.Total, &b.PaymentMode,
		&b.AmountReceived, &b.ChangeDue, &b.Voided, &b.VoidReason, &b.VoidedBy, &b.VoidedAt,
		&b.CreatedBy, &b.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get bill: %w", err)
	}
	return &b, nil
}

func (r *BillRepo) GetItems(billID string) ([]*entity.BillItem, error) {
	query := `
		SELECT id, bill_id, medicine_id, quantity, unit_price, line_total
		FROM bill_items WHERE bill_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, billID)
	if err != nil {
		return nil, fmt.Errorf("get bill items: %w", err)
	}
	defer rows.Close()
	var list []*entity.BillItem
	for rows.Next() {
		var item entity.BillItem
		if err := rows.Scan(&item.ID, &item.BillID, &item.MedicineID, &item.Quantity, &item.UnitPrice, &item.LineTotal); err != nil {
			return nil, fmt.Errorf("scan bill item: %w", err)
		}
		list = append(list, &item)
	}
	return list, rows.Err()
}

// LastNumberForDate returns the greatest bill number issued under the
// prefix+date scope, or "" when none exists. Zero padding keeps lexicographic
// and numeric order aligned.
func (r *BillRepo) LastNumberForDate(prefix string, date time.Time) (string, error) {
	scope := prefix + "-" + date.Format("20060102") + "-%"
	query := `SELECT COALESCE(MAX(bill_number), '') FROM bills WHERE bill_number LIKE $1`
	var last string
	if err := r.q.QueryRow(context.Background(), query, scope).Scan(&last); err != nil {
		return "", fmt.Errorf("last bill number: %w", err)
	}
	return last, nil
}

func (r *BillRepo) MarkVoided(b *entity.Bill) error {
	query := `
		UPDATE bills
		SET voided = TRUE, void_reason = $2, voided_by = $3, voided_at = $4
		WHERE id = $1 AND NOT voided`
	tag, err := r.q.Exec(context.Background(), query, b.ID, b.VoidReason, b.VoidedBy, b.VoidedAt)
	if err != nil {
		return fmt.Errorf("mark bill voided: %w", err)
	}
	// The use case checks the flag first; a concurrent void can still slip
	// between read and update, so the guarded UPDATE is the final word.
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: bill %s", domain.ErrAlreadyVoided, b.BillNumber)
	}
	return nil
}

func (r *BillRepo) List(from, to *time.Time, includeVoided bool, limit, offset int) ([]*entity.Bill, error) {
	query := `
		SELECT ` + billColumns + `
		FROM bills
		WHERE ($1::timestamptz IS NULL OR created_at >= $1)
		  AND ($2::timestamptz IS NULL OR created_at < $2)
		  AND ($3 OR NOT voided)
		ORDER BY created_at DESC LIMIT $4 OFFSET $5`
	rows, err := r.q.Query(context.Background(), query, from, to, includeVoided, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list bills: %w", err)
	}
	defer rows.Close()
	var list []*entity.Bill
	for rows.Next() {
		var b entity.Bill
		if err := rows.Scan(
			&b.ID, &b.BillNumber, &b.CustomerName, &b.CustomerPhone, &b.Subtotal,
			&b.DiscountPercent, &b.DiscountAmount, &b.TaxPercent, &b.TaxAmount, &b.Total, &b.PaymentMode,
			&b.AmountReceived, &b.ChangeDue, &b.Voided, &b.VoidReason, &b.VoidedBy, &b.VoidedAt,
			&b.CreatedBy, &b.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan bill: %w", err)
		}
		list = append(list, &b)
	}
	return list, rows.Err()
}
