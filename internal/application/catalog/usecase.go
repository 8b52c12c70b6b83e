package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pharmaplus/pharmacy-pos/internal/application/dto"
	"github.com/pharmaplus/pharmacy-pos/internal/domain"
	"github.com/pharmaplus/pharmacy-pos/internal/domain/entity"
	"github.com/pharmaplus/pharmacy-pos/internal/domain/repository"
	"github.com/pharmaplus/pharmacy-pos/pkg/money"
)

const dateLayout = "2006-01-02"

// MedicineUseCase manages the catalog and its read-side stock views.
type MedicineUseCase struct {
	medicineRepo repository.MedicineRepository
	stockRepo    repository.StockRepository
	ledgerRepo   repository.StockTransactionRepository
}

// NewMedicineUseCase builds the use case.
func NewMedicineUseCase(
	medicineRepo repository.MedicineRepository,
	stockRepo repository.StockRepository,
	ledgerRepo repository.StockTransactionRepository,
) *MedicineUseCase {
	return &MedicineUseCase{
		medicineRepo: medicineRepo,
		stockRepo:    stockRepo,
		ledgerRepo:   ledgerRepo,
	}
}

// CreateMedicine registers a catalog entry. Stock starts at zero; quantity
// only moves through stock transactions.
func (uc *MedicineUseCase) CreateMedicine(ctx context.Context, in dto.MedicineRequest) (*dto.MedicineResponse, error) {
	med, err := uc.fromRequest(in)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	med.ID = uuid.New().String()
	med.CreatedAt = now
	med.UpdatedAt = now
	if err := uc.medicineRepo.Create(med); err != nil {
		return nil, err
	}
	return uc.toResponse(med, 0), nil
}

// UpdateMedicine replaces the editable fields of a catalog entry.
func (uc *MedicineUseCase) UpdateMedicine(ctx context.Context, id string, in dto.MedicineRequest) (*dto.MedicineResponse, error) {
	existing, err := uc.medicineRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if existing == nil || existing.Deleted {
		return nil, fmt.Errorf("%w: medicine %s", domain.ErrNotFound, id)
	}
	med, err := uc.fromRequest(in)
	if err != nil {
		return nil, err
	}
	med.ID = existing.ID
	med.CreatedAt = existing.CreatedAt
	med.UpdatedAt = time.Now()
	if err := uc.medicineRepo.Update(med); err != nil {
		return nil, err
	}
	balance, err := uc.stockRepo.Get(id)
	if err != nil {
		return nil, err
	}
	return uc.toResponse(med, balance.CurrentQuantity), nil
}

// GetMedicine returns a catalog entry with its current balance.
func (uc *MedicineUseCase) GetMedicine(ctx context.Context, id string) (*dto.MedicineResponse, error) {
	med, err := uc.medicineRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if med == nil || med.Deleted {
		return nil, fmt.Errorf("%w: medicine %s", domain.ErrNotFound, id)
	}
	balance, err := uc.stockRepo.Get(id)
	if err != nil {
		return nil, err
	}
	return uc.toResponse(med, balance.CurrentQuantity), nil
}

// ListMedicines returns non-deleted medicines with balances, optionally
// filtered by a name/category substring.
func (uc *MedicineUseCase) ListMedicines(ctx context.Context, query string, limit, offset int) ([]*dto.MedicineResponse, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	meds, err := uc.medicineRepo.List(query, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.MedicineResponse, 0, len(meds))
	for _, med := range meds {
		balance, err := uc.stockRepo.Get(med.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, uc.toResponse(med, balance.CurrentQuantity))
	}
	return out, nil
}

// DeleteMedicine soft-deletes a catalog entry. Historical bills and ledger
// rows keep referencing it.
func (uc *MedicineUseCase) DeleteMedicine(ctx context.Context, id string) error {
	med, err := uc.medicineRepo.GetByID(id)
	if err != nil {
		return err
	}
	if med == nil || med.Deleted {
		return fmt.Errorf("%w: medicine %s", domain.ErrNotFound, id)
	}
	return uc.medicineRepo.SoftDelete(id)
}

// ListStockTransactions returns a medicine's ledger slice, newest first.
func (uc *MedicineUseCase) ListStockTransactions(ctx context.Context, medicineID string, from, to *time.Time, limit, offset int) ([]*dto.StockTransactionResponse, error) {
	med, err := uc.medicineRepo.GetByID(medicineID)
	if err != nil {
		return nil, err
	}
	if med == nil {
		return nil, fmt.Errorf("%w: medicine %s", domain.ErrNotFound, medicineID)
	}
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	entries, err := uc.ledgerRepo.ListByMedicine(medicineID, from, to, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.StockTransactionResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, &dto.StockTransactionResponse{
			ID:            e.ID,
			MedicineID:    e.MedicineID,
			Type:          e.Type,
			Quantity:      e.Quantity,
			Reason:        e.Reason,
			ReferenceID:   e.ReferenceID,
			ReferenceType: e.ReferenceType,
			PerformedBy:   e.PerformedBy,
			CreatedAt:     e.CreatedAt.Format(time.RFC3339),
		})
	}
	return out, nil
}

func (uc *MedicineUseCase) fromRequest(in dto.MedicineRequest) (*entity.Medicine, error) {
	if in.Name == "" {
		return nil, fmt.Errorf("%w: medicine name is required", domain.ErrValidation)
	}
	if in.BuyPrice < 0 || in.SellPrice < 0 {
		return nil, fmt.Errorf("%w: prices cannot be negative", domain.ErrValidation)
	}
	if in.MinimumStock < 0 {
		return nil, fmt.Errorf("%w: minimum stock cannot be negative", domain.ErrValidation)
	}
	med := &entity.Medicine{
		Name:         in.Name,
		Category:     in.Category,
		BatchNumber:  in.BatchNumber,
		BuyPrice:     money.Paisa(in.BuyPrice),
		SellPrice:    money.Paisa(in.SellPrice),
		MinimumStock: in.MinimumStock,
	}
	var err error
	if med.ManufacturingDate, err = parseDate(in.ManufacturingDate); err != nil {
		return nil, fmt.Errorf("%w: manufacturing_date must be YYYY-MM-DD", domain.ErrValidation)
	}
	if med.ExpiryDate, err = parseDate(in.ExpiryDate); err != nil {
		return nil, fmt.Errorf("%w: expiry_date must be YYYY-MM-DD", domain.ErrValidation)
	}
	if med.ReceivedDate, err = parseDate(in.ReceivedDate); err != nil {
		return nil, fmt.Errorf("%w: received_date must be YYYY-MM-DD", domain.ErrValidation)
	}
	if med.ManufacturingDate != nil && med.ExpiryDate != nil && !med.ExpiryDate.After(*med.ManufacturingDate) {
		return nil, fmt.Errorf("%w: expiry_date must follow manufacturing_date", domain.ErrValidation)
	}
	return med, nil
}

func parseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	d, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (uc *MedicineUseCase) toResponse(med *entity.Medicine, quantity int64) *dto.MedicineResponse {
	resp := &dto.MedicineResponse{
		ID:              med.ID,
		Name:            med.Name,
		Category:        med.Category,
		BatchNumber:     med.BatchNumber,
		BuyPrice:        int64(med.BuyPrice),
		SellPrice:       int64(med.SellPrice),
		MinimumStock:    med.MinimumStock,
		CurrentQuantity: quantity,
	}
	if med.ManufacturingDate != nil {
		resp.ManufacturingDate = med.ManufacturingDate.Format(dateLayout)
	}
	if med.ExpiryDate != nil {
		resp.ExpiryDate = med.ExpiryDate.Format(dateLayout)
	}
	if med.ReceivedDate != nil {
		resp.ReceivedDate = med.ReceivedDate.Format(dateLayout)
	}
	return resp
}
