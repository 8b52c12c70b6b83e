package purchasing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pharmaplus/pharmacy-pos/internal/application/dto"
	"github.com/pharmaplus/pharmacy-pos/internal/application/inventory"
	"github.com/pharmaplus/pharmacy-pos/internal/domain"
	"github.com/pharmaplus/pharmacy-pos/internal/domain/entity"
	"github.com/pharmaplus/pharmacy-pos/internal/domain/numbering"
	"github.com/pharmaplus/pharmacy-pos/internal/domain/repository"
	"github.com/pharmaplus/pharmacy-pos/pkg/money"
)

const expectedDateLayout = "2006-01-02"

// OrderUseCase drives the purchase-order lifecycle: create, receive, pay,
// cancel. Receiving is the only flow that touches stock.
type OrderUseCase struct {
	txRunner     PurchasingTxRunner
	stock        StockMutator
	orderRepo    repository.PurchaseOrderRepository
	supplierRepo repository.SupplierRepository
	medicineRepo repository.MedicineRepository
}

// NewOrderUseCase builds the use case.
func NewOrderUseCase(
	txRunner PurchasingTxRunner,
	stock StockMutator,
	orderRepo repository.PurchaseOrderRepository,
	supplierRepo repository.SupplierRepository,
	medicineRepo repository.MedicineRepository,
) *OrderUseCase {
	return &OrderUseCase{
		txRunner:     txRunner,
		stock:        stock,
		orderRepo:    orderRepo,
		supplierRepo: supplierRepo,
		medicineRepo: medicineRepo,
	}
}

// CreateOrder registers a pending supplier order. No stock moves until the
// order is received.
func (uc *OrderUseCase) CreateOrder(ctx context.Context, in dto.CreateOrderRequest, createdBy string) (*dto.OrderResponse, error) {
	if createdBy == "" {
		return nil, fmt.Errorf("%w: missing creating user", domain.ErrValidation)
	}
	if in.SupplierID == "" {
		return nil, fmt.Errorf("%w: supplier is required", domain.ErrValidation)
	}
	if len(in.Items) == 0 {
		return nil, fmt.Errorf("%w: order needs at least one line", domain.ErrValidation)
	}
	for i, line := range in.Items {
		if line.MedicineID == "" {
			return nil, fmt.Errorf("%w: line %d has no medicine", domain.ErrValidation, i+1)
		}
		if line.Quantity <= 0 {
			return nil, fmt.Errorf("%w: line %d quantity must be positive", domain.ErrValidation, i+1)
		}
		if line.UnitPrice < 0 {
			return nil, fmt.Errorf("%w: line %d unit price cannot be negative", domain.ErrValidation, i+1)
		}
	}
	var expected *time.Time
	if in.ExpectedDate != "" {
		d, err := time.Parse(expectedDateLayout, in.ExpectedDate)
		if err != nil {
			return nil, fmt.Errorf("%w: expected_date must be YYYY-MM-DD", domain.ErrValidation)
		}
		expected = &d
	}

	supplier, err := uc.supplierRepo.GetByID(in.SupplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, fmt.Errorf("%w: supplier %s", domain.ErrNotFound, in.SupplierID)
	}
	for _, line := range in.Items {
		med, err := uc.medicineRepo.GetByID(line.MedicineID)
		if err != nil {
			return nil, err
		}
		if med == nil || med.Deleted {
			return nil, fmt.Errorf("%w: medicine %s", domain.ErrNotFound, line.MedicineID)
		}
	}

	var total money.Paisa
	for _, line := range in.Items {
		total += money.Paisa(line.UnitPrice).Mul(line.Quantity)
	}

	now := time.Now()
	order := &entity.PurchaseOrder{
		ID:           uuid.New().String(),
		SupplierID:   in.SupplierID,
		Status:       entity.OrderPending,
		OrderDate:    now,
		ExpectedDate: expected,
		TotalAmount:  total,
		Notes:        in.Notes,
		CreatedBy:    createdBy,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	var items []*entity.PurchaseOrderItem

	err = uc.txRunner.RunPurchasing(ctx, func(
		_ repository.StockRepository,
		_ repository.StockTransactionRepository,
		_ repository.MedicineRepository,
		orderRepo repository.PurchaseOrderRepository,
	) error {
		last, err := orderRepo.LastNumber(numbering.OrderPrefix)
		if err != nil {
			return err
		}
		number, err := numbering.NextOrderNumber(numbering.OrderPrefix, last)
		if err != nil {
			return err
		}
		order.OrderNumber = number
		if err := orderRepo.Create(order); err != nil {
			return err
		}
		for _, line := range in.Items {
			item := &entity.PurchaseOrderItem{
				ID:              uuid.New().String(),
				OrderID:         order.ID,
				MedicineID:      line.MedicineID,
				QuantityOrdered: line.Quantity,
				UnitPrice:       money.Paisa(line.UnitPrice),
			}
			if err := orderRepo.CreateItem(item); err != nil {
				return err
			}
			items = append(items, item)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return uc.toResponse(order, items, nil), nil
}

// MarkOrderReceived credits every line's full ordered quantity to stock and
// moves the order forward. Full-line receive only: each line's received
// quantity is set equal to its ordered quantity. The final status depends on
// payment: received when fully paid, partial otherwise.
func (uc *OrderUseCase) MarkOrderReceived(ctx context.Context, orderID, receivedBy string) error {
	if receivedBy == "" {
		return fmt.Errorf("%w: missing receiving user", domain.ErrValidation)
	}
	now := time.Now()
	return uc.txRunner.RunPurchasing(ctx, func(
		stockRepo repository.StockRepository,
		ledgerRepo repository.StockTransactionRepository,
		medicineRepo repository.MedicineRepository,
		orderRepo repository.PurchaseOrderRepository,
	) error {
		order, err := orderRepo.GetForUpdate(orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return fmt.Errorf("%w: purchase order %s", domain.ErrNotFound, orderID)
		}
		if order.Status == entity.OrderCancelled || order.Status == entity.OrderReceived {
			return fmt.Errorf("%w: order %s is %s", domain.ErrInvalidState, order.OrderNumber, order.Status)
		}

		items, err := orderRepo.GetItems(orderID)
		if err != nil {
			return err
		}
		for _, item := range items {
			if item.QuantityOrdered <= 0 {
				continue
			}
			med, err := medicineRepo.GetByID(item.MedicineID)
			if err != nil {
				return err
			}
			if med == nil {
				return fmt.Errorf("%w: medicine %s", domain.ErrNotFound, item.MedicineID)
			}
			if err := uc.stock.ApplyDeltaInTx(stockRepo, ledgerRepo, med, inventory.ApplyDeltaInput{
				Delta:         item.QuantityOrdered,
				Type:          entity.TxTypeIn,
				Reason:        "purchase " + order.OrderNumber,
				ReferenceID:   orderID,
				ReferenceType: entity.RefTypePurchaseOrder,
				PerformedBy:   receivedBy,
				At:            now,
			}); err != nil {
				return err
			}
			if err := orderRepo.SetItemReceived(item.ID, item.QuantityOrdered); err != nil {
				return err
			}
		}

		if order.PaidAmount >= order.TotalAmount {
			order.Status = entity.OrderReceived
		} else {
			order.Status = entity.OrderPartial
		}
		order.ReceivedDate = &now
		order.UpdatedAt = now
		return orderRepo.UpdateState(order)
	})
}

// RecordPayment adds a payment towards the order. Paid amount can never
// exceed the total; the status recomputes to received only once goods have
// arrived and the order is fully paid, else partial. Prepaying in full must
// not close the order, receiving still has to credit the stock.
func (uc *OrderUseCase) RecordPayment(ctx context.Context, orderID string, amount int64) error {
	if amount <= 0 {
		return fmt.Errorf("%w: payment amount must be positive", domain.ErrValidation)
	}
	now := time.Now()
	return uc.txRunner.RunPurchasing(ctx, func(
		_ repository.StockRepository,
		_ repository.StockTransactionRepository,
		_ repository.MedicineRepository,
		orderRepo repository.PurchaseOrderRepository,
	) error {
		order, err := orderRepo.GetForUpdate(orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return fmt.Errorf("%w: purchase order %s", domain.ErrNotFound, orderID)
		}
		if order.Status == entity.OrderCancelled {
			return fmt.Errorf("%w: order %s is cancelled", domain.ErrInvalidState, order.OrderNumber)
		}
		paid := order.PaidAmount + money.Paisa(amount)
		if paid > order.TotalAmount {
			return fmt.Errorf("%w: payment of %s exceeds outstanding %s",
				domain.ErrValidation, money.Paisa(amount), order.TotalAmount-order.PaidAmount)
		}
		order.PaidAmount = paid
		if order.ReceivedDate != nil && paid >= order.TotalAmount {
			order.Status = entity.OrderReceived
		} else {
			order.Status = entity.OrderPartial
		}
		order.UpdatedAt = now
		return orderRepo.UpdateState(order)
	})
}

// CancelOrder is a terminal transition, allowed while nothing has been
// received.
func (uc *OrderUseCase) CancelOrder(ctx context.Context, orderID string) error {
	now := time.Now()
	return uc.txRunner.RunPurchasing(ctx, func(
		_ repository.StockRepository,
		_ repository.StockTransactionRepository,
		_ repository.MedicineRepository,
		orderRepo repository.PurchaseOrderRepository,
	) error {
		order, err := orderRepo.GetForUpdate(orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return fmt.Errorf("%w: purchase order %s", domain.ErrNotFound, orderID)
		}
		if order.Status != entity.OrderPending && order.Status != entity.OrderPartial {
			return fmt.Errorf("%w: order %s is %s", domain.ErrInvalidState, order.OrderNumber, order.Status)
		}
		if order.ReceivedDate != nil {
			return fmt.Errorf("%w: order %s has received goods", domain.ErrInvalidState, order.OrderNumber)
		}
		order.Status = entity.OrderCancelled
		order.UpdatedAt = now
		return orderRepo.UpdateState(order)
	})
}

// GetOrder returns an order with its resolved lines.
func (uc *OrderUseCase) GetOrder(ctx context.Context, orderID string) (*dto.OrderResponse, error) {
	order, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, fmt.Errorf("%w: purchase order %s", domain.ErrNotFound, orderID)
	}
	items, err := uc.orderRepo.GetItems(orderID)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string)
	for _, item := range items {
		if _, ok := names[item.MedicineID]; ok {
			continue
		}
		med, err := uc.medicineRepo.GetByID(item.MedicineID)
		if err != nil {
			return nil, err
		}
		if med != nil {
			names[item.MedicineID] = med.Name
		}
	}
	return uc.toResponse(order, items, names), nil
}

// ListOrders returns orders, optionally filtered by status.
func (uc *OrderUseCase) ListOrders(ctx context.Context, status string, limit, offset int) ([]*dto.OrderResponse, error) {
	switch status {
	case "", entity.OrderPending, entity.OrderPartial, entity.OrderReceived, entity.OrderCancelled:
	default:
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrValidation, status)
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	orders, err := uc.orderRepo.List(status, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, uc.toResponse(o, nil, nil))
	}
	return out, nil
}

func (uc *OrderUseCase) toResponse(order *entity.PurchaseOrder, items []*entity.PurchaseOrderItem, names map[string]string) *dto.OrderResponse {
	resp := &dto.OrderResponse{
		ID:          order.ID,
		OrderNumber: order.OrderNumber,
		SupplierID:  order.SupplierID,
		Status:      order.Status,
		OrderDate:   order.OrderDate.Format(expectedDateLayout),
		TotalAmount: int64(order.TotalAmount),
		PaidAmount:  int64(order.PaidAmount),
		Notes:       order.Notes,
	}
	if order.ExpectedDate != nil {
		resp.ExpectedDate = order.ExpectedDate.Format(expectedDateLayout)
	}
	if order.ReceivedDate != nil {
		resp.ReceivedDate = order.ReceivedDate.Format(expectedDateLayout)
	}
	for _, item := range items {
		resp.Items = append(resp.Items, dto.OrderItemResponse{
			MedicineID:       item.MedicineID,
			MedicineName:     names[item.MedicineID],
			QuantityOrdered:  item.QuantityOrdered,
			QuantityReceived: item.QuantityReceived,
			UnitPrice:        int64(item.UnitPrice),
		})
	}
	return resp
}
