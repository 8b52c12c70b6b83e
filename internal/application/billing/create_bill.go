package billing

import (
	"context"
	"fmt"
	"sort"
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

// CreateBillUseCase creates a sale and depletes inventory in one transaction.
type CreateBillUseCase struct {
	txRunner     BillingTxRunner
	stock        StockMutator
	billRepo     repository.BillRepository
	medicineRepo repository.MedicineRepository
}

// NewCreateBillUseCase builds the use case.
func NewCreateBillUseCase(
	txRunner BillingTxRunner,
	stock StockMutator,
	billRepo repository.BillRepository,
	medicineRepo repository.MedicineRepository,
) *CreateBillUseCase {
	return &CreateBillUseCase{
		txRunner:     txRunner,
		stock:        stock,
		billRepo:     billRepo,
		medicineRepo: medicineRepo,
	}
}

// CreateBill validates the request, checks stock sufficiency for every line,
// computes the totals and persists bill, items and per-line stock-out
// movements atomically. A failure at any step leaves nothing persisted.
func (uc *CreateBillUseCase) CreateBill(ctx context.Context, in dto.CreateBillRequest, createdBy string) (*dto.BillResponse, error) {
	if createdBy == "" {
		return nil, fmt.Errorf("%w: missing creating user", domain.ErrValidation)
	}
	if len(in.Items) == 0 {
		return nil, fmt.Errorf("%w: bill needs at least one line", domain.ErrValidation)
	}
	for i, line := range in.Items {
		if line.MedicineID == "" {
			return nil, fmt.Errorf("%w: line %d has no medicine", domain.ErrValidation, i+1)
		}
		if line.Quantity <= 0 {
			return nil, fmt.Errorf("%w: line %d quantity must be positive", domain.ErrValidation, i+1)
		}
		if line.UnitPrice != nil && *line.UnitPrice < 0 {
			return nil, fmt.Errorf("%w: line %d unit price cannot be negative", domain.ErrValidation, i+1)
		}
	}
	switch in.PaymentMode {
	case entity.PaymentCash, entity.PaymentCard, entity.PaymentCredit:
	default:
		return nil, fmt.Errorf("%w: unknown payment mode %q", domain.ErrValidation, in.PaymentMode)
	}
	discountPercent := money.ClampPercent(money.ParsePercent(in.DiscountPercent))
	taxPercent := money.ClampPercent(money.ParsePercent(in.TaxPercent))

	// A medicine normally appears once per bill, but the stock check must sum
	// duplicate lines defensively.
	required := make(map[string]int64)
	for _, line := range in.Items {
		required[line.MedicineID] += line.Quantity
	}
	medicineIDs := make([]string, 0, len(required))
	for id := range required {
		medicineIDs = append(medicineIDs, id)
	}
	sort.Strings(medicineIDs)

	now := time.Now()
	billID := uuid.New().String()
	var bill *entity.Bill
	var items []*entity.BillItem
	meds := make(map[string]*entity.Medicine)

	err := uc.txRunner.RunBilling(ctx, func(
		stockRepo repository.StockRepository,
		ledgerRepo repository.StockTransactionRepository,
		medicineRepo repository.MedicineRepository,
		billRepo repository.BillRepository,
	) error {
		// Pre-flight: every medicine exists, is not deleted and has enough
		// stock for its aggregated quantity. Balance rows are locked here so
		// the check stays valid until commit.
		for _, id := range medicineIDs {
			med, err := medicineRepo.GetByID(id)
			if err != nil {
				return err
			}
			if med == nil || med.Deleted {
				return fmt.Errorf("%w: medicine %s", domain.ErrNotFound, id)
			}
			meds[id] = med

			balance, err := stockRepo.GetForUpdate(id)
			if err != nil {
				return err
			}
			if balance.CurrentQuantity < required[id] {
				return fmt.Errorf("%w: %s has %d in stock, requested %d",
					domain.ErrInsufficientStock, med.Name, balance.CurrentQuantity, required[id])
			}
		}

		// Totals: subtotal, then discount, then tax, each stage rounded half
		// away from zero on integer paisa. A line without a unit price bills
		// at the catalog sell price; an explicit zero stays zero.
		prices := make([]money.Paisa, len(in.Items))
		var subtotal money.Paisa
		for i, line := range in.Items {
			if line.UnitPrice != nil {
				prices[i] = money.Paisa(*line.UnitPrice)
			} else {
				prices[i] = meds[line.MedicineID].SellPrice
			}
			subtotal += prices[i].Mul(line.Quantity)
		}
		totals := money.ComputeTotals(subtotal, discountPercent, taxPercent)

		var received, change money.Paisa
		if in.PaymentMode == entity.PaymentCash {
			received = money.Paisa(in.AmountReceived)
			if received < totals.Total {
				return fmt.Errorf("%w: received %s, bill total is %s",
					domain.ErrInsufficientPayment, received, totals.Total)
			}
			change = received - totals.Total
		}

		// Bill number is derived from the last issued number for today,
		// inside this same transaction, so two concurrent sales cannot race
		// to the same sequence.
		last, err := billRepo.LastNumberForDate(numbering.BillPrefix, now)
		if err != nil {
			return err
		}
		number, err := numbering.NextBillNumber(numbering.BillPrefix, now, last)
		if err != nil {
			return err
		}

		bill = &entity.Bill{
			ID:              billID,
			BillNumber:      number,
			CustomerName:    in.CustomerName,
			CustomerPhone:   in.CustomerPhone,
			Subtotal:        totals.Subtotal,
			DiscountPercent: discountPercent,
			DiscountAmount:  totals.DiscountAmount,
			TaxPercent:      taxPercent,
			TaxAmount:       totals.TaxAmount,
			Total:           totals.Total,
			PaymentMode:     in.PaymentMode,
			AmountReceived:  received,
			ChangeDue:       change,
			CreatedBy:       createdBy,
			CreatedAt:       now,
		}
		if err := billRepo.Create(bill); err != nil {
			return err
		}

		for i, line := range in.Items {
			med := meds[line.MedicineID]
			item := &entity.BillItem{
				ID:         uuid.New().String(),
				BillID:     billID,
				MedicineID: line.MedicineID,
				Quantity:   line.Quantity,
				UnitPrice:  prices[i],
				LineTotal:  prices[i].Mul(line.Quantity),
			}
			if err := billRepo.CreateItem(item); err != nil {
				return err
			}
			items = append(items, item)

			if err := uc.stock.ApplyDeltaInTx(stockRepo, ledgerRepo, med, inventory.ApplyDeltaInput{
				Delta:         -line.Quantity,
				Type:          entity.TxTypeOut,
				Reason:        "sale " + number,
				ReferenceID:   billID,
				ReferenceType: entity.RefTypeBill,
				PerformedBy:   createdBy,
				At:            now,
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return uc.toResponse(bill, items, meds), nil
}

// GetBill returns a bill with its resolved line details.
func (uc *CreateBillUseCase) GetBill(ctx context.Context, id string) (*dto.BillResponse, error) {
	bill, err := uc.billRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if bill == nil {
		return nil, fmt.Errorf("%w: bill %s", domain.ErrNotFound, id)
	}
	items, err := uc.billRepo.GetItems(id)
	if err != nil {
		return nil, err
	}
	meds := make(map[string]*entity.Medicine)
	for _, item := range items {
		if _, ok := meds[item.MedicineID]; ok {
			continue
		}
		med, err := uc.medicineRepo.GetByID(item.MedicineID)
		if err != nil {
			return nil, err
		}
		meds[item.MedicineID] = med
	}
	return uc.toResponse(bill, items, meds), nil
}

// ListBills returns bills in a date range, newest first.
func (uc *CreateBillUseCase) ListBills(ctx context.Context, from, to *time.Time, includeVoided bool, limit, offset int) ([]*dto.BillResponse, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	bills, err := uc.billRepo.List(from, to, includeVoided, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.BillResponse, 0, len(bills))
	for _, b := range bills {
		out = append(out, uc.toResponse(b, nil, nil))
	}
	return out, nil
}

func (uc *CreateBillUseCase) toResponse(bill *entity.Bill, items []*entity.BillItem, meds map[string]*entity.Medicine) *dto.BillResponse {
	resp := &dto.BillResponse{
		ID:              bill.ID,
		BillNumber:      bill.BillNumber,
		CustomerName:    bill.CustomerName,
		CustomerPhone:   bill.CustomerPhone,
		Subtotal:        int64(bill.Subtotal),
		DiscountPercent: bill.DiscountPercent.String(),
		DiscountAmount:  int64(bill.DiscountAmount),
		TaxPercent:      bill.TaxPercent.String(),
		TaxAmount:       int64(bill.TaxAmount),
		Total:           int64(bill.Total),
		PaymentMode:     bill.PaymentMode,
		AmountReceived:  int64(bill.AmountReceived),
		ChangeDue:       int64(bill.ChangeDue),
		Voided:          bill.Voided,
		VoidReason:      bill.VoidReason,
		CreatedBy:       bill.CreatedBy,
		CreatedAt:       bill.CreatedAt.Format(time.RFC3339),
		Items:           make([]dto.BillItemResponse, 0, len(items)),
	}
	for _, item := range items {
		line := dto.BillItemResponse{
			MedicineID: item.MedicineID,
			Quantity:   item.Quantity,
			UnitPrice:  int64(item.UnitPrice),
			LineTotal:  int64(item.LineTotal),
		}
		if med := meds[item.MedicineID]; med != nil {
			line.MedicineName = med.Name
			line.BatchNumber = med.BatchNumber
		}
		resp.Items = append(resp.Items, line)
	}
	return resp
}
