package repository

import "github.com/pharmaplus/pharmacy-pos/internal/domain/entity"

// SupplierRepository is the persistence port for suppliers.
type SupplierRepository interface {
	Create(s *entity.Supplier) error
	Update(s *entity.Supplier) error
	GetByID(id string) (*entity.Supplier, error)
	List(limit, offset int) ([]*entity.Supplier, error)
}
