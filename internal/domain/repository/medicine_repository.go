package repository

import "github.com/pharmaplus/pharmacy-pos/internal/domain/entity"

// MedicineRepository is the persistence port for the medicine catalog.
// Delete is a soft-delete: historical bills keep referencing the row.
type MedicineRepository interface {
	Create(m *entity.Medicine) error
	Update(m *entity.Medicine) error
	GetByID(id string) (*entity.Medicine, error)
	// List returns non-deleted medicines, optionally filtered by a name/category
	// substring.
	List(query string, limit, offset int) ([]*entity.Medicine, error)
	SoftDelete(id string) error
}
