package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/pharmaplus/pharmacy-pos/internal/domain/entity"
	"github.com/pharmaplus/pharmacy-pos/internal/domain/repository"
)

var _ repository.MedicineRepository = (*MedicineRepo)(nil)

// MedicineRepo implements MedicineRepository on PostgreSQL.
type MedicineRepo struct {
	q Querier
}

// NewMedicineRepository builds the adapter. Accepts pool or tx (Querier).
func NewMedicineRepository(q Querier) *MedicineRepo {
	return &MedicineRepo{q: q}
}

const medicineColumns = `id, name, category, batch_number, manufacturing_date, expiry_date,
	received_date, buy_price, sell_price, minimum_stock, deleted, created_at, updated_at`

func (r *MedicineRepo) Create(m *entity.Medicine) error {
	query := `
		INSERT INTO medicines (id, name, category, batch_number, manufacturing_date, expiry_date,
			received_date, buy_price, sell_price, minimum_stock, deleted, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, FALSE, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.Name, m.Category, m.BatchNumber, m.ManufacturingDate, m.ExpiryDate,
		m.ReceivedDate, m.BuyPrice, m.SellPrice, m.MinimumStock, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create medicine: %w", err)
	}
	return nil
}

func (r *MedicineRepo) Update(m *entity.Medicine) error {
	query := `
		UPDATE medicines
		SET name = $2, category = $3, batch_number = $4, manufacturing_date = $5,
			expiry_date = $6, received_date = $7, buy_price = $8, sell_price = $9,
			minimum_stock = $10, updated_at = $11
		WHERE id = $1 AND NOT deleted`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.Name, m.Category, m.BatchNumber, m.ManufacturingDate,
		m.ExpiryDate, m.ReceivedDate, m.BuyPrice, m.SellPrice,
		m.MinimumStock, m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update medicine: %w", err)
	}
	return nil
}

func (r *MedicineRepo) GetByID(id string) (*entity.Medicine, error) {
	query := `SELECT ` + medicineColumns + ` FROM medicines WHERE id = $1`
	var m entity.Medicine
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&m.ID, &m.Name, &m.Category, &m.BatchNumber, &m.ManufacturingDate, &m.ExpiryDate,
		&m.ReceivedDate, &m.BuyPrice, &m.SellPrice, &m.MinimumStock, &m.Deleted,
		&m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get medicine: %w", err)
	}
	return &m, nil
}

func (r *MedicineRepo) List(search string, limit, offset int) ([]*entity.Medicine, error) {
	query := `
		SELECT ` + medicineColumns + `
		FROM medicines
		WHERE NOT deleted
		  AND ($1 = '' OR lower(name) LIKE '%' || lower($1) || '%' OR lower(category) LIKE '%' || lower($1) || '%')
		ORDER BY name LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, search, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list medicines: %w", err)
	}
	defer rows.Close()
	var list []*entity.Medicine
	for rows.Next() {
		var m entity.Medicine
		if err := rows.Scan(
			&m.ID, &m.Name, &m.Category, &m.BatchNumber, &m.ManufacturingDate, &m.ExpiryDate,
			&m.ReceivedDate, &m.BuyPrice, &m.SellPrice, &m.MinimumStock, &m.Deleted,
			&m.CreatedAt, &m.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan medicine: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

func (r *MedicineRepo) SoftDelete(id string) error {
	query := `UPDATE medicines SET deleted = TRUE, updated_at = now() WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id)
	if err != nil {
		return fmt.Errorf("soft-delete medicine: %w", err)
	}
	return nil
}
