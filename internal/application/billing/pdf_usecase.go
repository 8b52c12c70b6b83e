package billing

import (
	"context"
	"fmt"

	"github.com/pharmaplus/pharmacy-pos/internal/domain"
	"github.com/pharmaplus/pharmacy-pos/internal/domain/entity"
	"github.com/pharmaplus/pharmacy-pos/internal/domain/repository"
)

// ReceiptUseCase renders a committed bill as a PDF receipt.
type ReceiptUseCase struct {
	billRepo     repository.BillRepository
	medicineRepo repository.MedicineRepository
	generator    ReceiptPDFGenerator
}

// NewReceiptUseCase builds the use case.
func NewReceiptUseCase(
	billRepo repository.BillRepository,
	medicineRepo repository.MedicineRepository,
	generator ReceiptPDFGenerator,
) *ReceiptUseCase {
	return &ReceiptUseCase{
		billRepo:     billRepo,
		medicineRepo: medicineRepo,
		generator:    generator,
	}
}

// GenerateReceipt resolves the bill's lines with medicine names and batch
// numbers and hands them to the PDF generator. Voided bills still render, the
// generator stamps them as voided.
func (uc *ReceiptUseCase) GenerateReceipt(ctx context.Context, billID string) ([]byte, error) {
	bill, err := uc.billRepo.GetByID(billID)
	if err != nil {
		return nil, err
	}
	if bill == nil {
		return nil, fmt.Errorf("%w: bill %s", domain.ErrNotFound, billID)
	}
	items, err := uc.billRepo.GetItems(billID)
	if err != nil {
		return nil, err
	}

	lines := make([]ReceiptLine, 0, len(items))
	names := make(map[string]*entity.Medicine)
	for _, item := range items {
		med, ok := names[item.MedicineID]
		if !ok {
			med, err = uc.medicineRepo.GetByID(item.MedicineID)
			if err != nil {
				return nil, err
			}
			names[item.MedicineID] = med
		}
		line := ReceiptLine{Item: *item}
		if med != nil {
			line.MedicineName = med.Name
			line.BatchNumber = med.BatchNumber
		}
		lines = append(lines, line)
	}
	return uc.generator.GenerateReceiptPDF(ctx, bill, lines)
}
