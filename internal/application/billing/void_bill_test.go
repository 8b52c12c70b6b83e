package billing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pharmaplus/pharmacy-pos/internal/application/dto"
	"github.com/pharmaplus/pharmacy-pos/internal/domain"
	"github.com/pharmaplus/pharmacy-pos/internal/domain/entity"
)

func TestVoidBill_RestocksEveryLine(t *testing.T) {
	med := &entity.Medicine{ID: "med-1", Name: "Azithromycin", SellPrice: 9000}
	create, void, runner := newBillingFixture(med)
	runner.stock.set("med-1", 20)

	bill, err := create.CreateBill(context.Background(), dto.CreateBillRequest{
		Items:       []dto.BillLineRequest{{MedicineID: "med-1", Quantity: 4}},
		PaymentMode: entity.PaymentCard,
	}, "user-1")
	require.NoError(t, err)

	b, _ := runner.stock.Get("med-1")
	require.Equal(t, int64(16), b.CurrentQuantity)

	err = void.VoidBill(context.Background(), bill.ID, "wrong customer", "admin-1")
	require.NoError(t, err)

	b, _ = runner.stock.Get("med-1")
	assert.Equal(t, int64(20), b.CurrentQuantity)

	stored, _ := runner.bills.GetByID(bill.ID)
	assert.True(t, stored.Voided)
	assert.Equal(t, "wrong customer", stored.VoidReason)
	assert.Equal(t, "admin-1", stored.VoidedBy)
	require.NotNil(t, stored.VoidedAt)

	// Sale row and items survive the void for audit.
	items, _ := runner.bills.GetItems(bill.ID)
	assert.Len(t, items, 1)

	// One restock entry per line, tagged "in" and referencing the void.
	var restocks []*entity.StockTransaction
	for _, e := range runner.ledger.entries {
		if e.ReferenceType == entity.RefTypeBillVoid {
			restocks = append(restocks, e)
		}
	}
	require.Len(t, restocks, 1)
	assert.Equal(t, entity.TxTypeIn, restocks[0].Type)
	assert.Equal(t, int64(4), restocks[0].Quantity)
	assert.Equal(t, bill.ID, restocks[0].ReferenceID)
	assert.Contains(t, restocks[0].Reason, bill.BillNumber)
	assert.Contains(t, restocks[0].Reason, "wrong customer")

	// Ledger replay (out 4, then in 4) still matches the balance delta.
	sum, _ := runner.ledger.SumSignedByMedicine("med-1")
	assert.Equal(t, int64(0), sum)
}

func TestVoidBill_IsOneWay(t *testing.T) {
	med := &entity.Medicine{ID: "med-1", Name: "Losartan", SellPrice: 1500}
	create, void, runner := newBillingFixture(med)
	runner.stock.set("med-1", 10)

	bill, err := create.CreateBill(context.Background(), dto.CreateBillRequest{
		Items:       []dto.BillLineRequest{{MedicineID: "med-1", Quantity: 2}},
		PaymentMode: entity.PaymentCredit,
	}, "user-1")
	require.NoError(t, err)

	require.NoError(t, void.VoidBill(context.Background(), bill.ID, "duplicate entry", "admin-1"))

	err = void.VoidBill(context.Background(), bill.ID, "again", "admin-1")
	assert.ErrorIs(t, err, domain.ErrAlreadyVoided)

	// Second attempt must not restock twice.
	b, _ := runner.stock.Get("med-1")
	assert.Equal(t, int64(10), b.CurrentQuantity)
}

func TestVoidBill_RestocksSoftDeletedMedicine(t *testing.T) {
	med := &entity.Medicine{ID: "med-1", Name: "Discontinued Tonic", SellPrice: 800}
	create, void, runner := newBillingFixture(med)
	runner.stock.set("med-1", 6)

	bill, err := create.CreateBill(context.Background(), dto.CreateBillRequest{
		Items:       []dto.BillLineRequest{{MedicineID: "med-1", Quantity: 3}},
		PaymentMode: entity.PaymentCard,
	}, "user-1")
	require.NoError(t, err)

	require.NoError(t, runner.medicines.SoftDelete("med-1"))

	require.NoError(t, void.VoidBill(context.Background(), bill.ID, "sold in error", "admin-1"))
	b, _ := runner.stock.Get("med-1")
	assert.Equal(t, int64(6), b.CurrentQuantity)
}

func TestVoidBill_Validation(t *testing.T) {
	_, void, _ := newBillingFixture()

	err := void.VoidBill(context.Background(), "bill-1", "", "admin-1")
	assert.ErrorIs(t, err, domain.ErrValidation)

	err = void.VoidBill(context.Background(), "bill-1", "reason", "")
	assert.ErrorIs(t, err, domain.ErrValidation)

	err = void.VoidBill(context.Background(), "no-such-bill", "reason", "admin-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
