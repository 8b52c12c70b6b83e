package repository

import (
	"time"

	"github.com/pharmaplus/pharmacy-pos/internal/domain/entity"
)

// BillRepository is the persistence port for bills and their lines.
type BillRepository interface {
	Create(b *entity.Bill) error
	CreateItem(item *entity.BillItem) error
	GetByID(id string) (*entity.Bill, error)
	GetItems(billID string) ([]*entity.BillItem, error)
	// LastNumberForDate returns the lexicographically greatest bill number for
	// the prefix and calendar date, or "" when none exists. Must be called
	// inside the same transaction as the subsequent insert.
	LastNumberForDate(prefix string, date time.Time) (string, error)
	// MarkVoided persists the one-way void transition (flag, reason, user,
	// timestamp). All other bill fields stay untouched.
	MarkVoided(b *entity.Bill) error
	List(from, to *time.Time, includeVoided bool, limit, offset int) ([]*entity.Bill, error)
}
