package repository

import "github.com/pharmaplus/pharmacy-pos/internal/domain/entity"

// PurchaseOrderRepository is the persistence port for supplier orders.
type PurchaseOrderRepository interface {
	Create(o *entity.PurchaseOrder) error
	CreateItem(item *entity.PurchaseOrderItem) error
	GetByID(id string) (*entity.PurchaseOrder, error)
	// GetForUpdate locks the order row for the receive/payment transitions.
	GetForUpdate(id string) (*entity.PurchaseOrder, error)
	GetItems(orderID string) ([]*entity.PurchaseOrderItem, error)
	// LastNumber returns the lexicographically greatest order number for the
	// prefix, or "" when none exists. Same-transaction rule as bill numbers.
	LastNumber(prefix string) (string, error)
	// UpdateState persists status, paid amount and received date.
	UpdateState(o *entity.PurchaseOrder) error
	SetItemReceived(itemID string, quantity int64) error
	List(status string, limit, offset int) ([]*entity.PurchaseOrder, error)
}
