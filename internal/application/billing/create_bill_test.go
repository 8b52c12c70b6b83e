package billing

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pharmaplus/pharmacy-pos/internal/application/dto"
	"github.com/pharmaplus/pharmacy-pos/internal/application/inventory"
	"github.com/pharmaplus/pharmacy-pos/internal/domain"
	"github.com/pharmaplus/pharmacy-pos/internal/domain/entity"
)

func unitPrice(v int64) *int64 { return &v }

func newBillingFixture(meds ...*entity.Medicine) (*CreateBillUseCase, *VoidBillUseCase, *fakeBillingRunner) {
	runner := &fakeBillingRunner{
		stock:     newMemStockRepo(),
		ledger:    &memLedgerRepo{},
		medicines: newMemMedicineRepo(meds...),
		bills:     newMemBillRepo(),
	}
	stock := inventory.NewStockUseCase(nil)
	create := NewCreateBillUseCase(runner, stock, runner.bills, runner.medicines)
	void := NewVoidBillUseCase(runner, stock)
	return create, void, runner
}

func TestCreateBill_ComputesTotalsAndDepletesStock(t *testing.T) {
	paracetamol := &entity.Medicine{ID: "med-1", Name: "Paracetamol 500mg", BatchNumber: "B42", SellPrice: 2500}
	ibuprofen := &entity.Medicine{ID: "med-2", Name: "Ibuprofen 400mg", SellPrice: 5000}
	create, _, runner := newBillingFixture(paracetamol, ibuprofen)
	runner.stock.set("med-1", 100)
	runner.stock.set("med-2", 50)

	// 2*2500 + 1*5000 = 10000; 10% discount = 1000; 5% tax on 9000 = 450.
	resp, err := create.CreateBill(context.Background(), dto.CreateBillRequest{
		CustomerName: "Asha",
		Items: []dto.BillLineRequest{
			{MedicineID: "med-1", Quantity: 2, UnitPrice: unitPrice(2500)},
			{MedicineID: "med-2", Quantity: 1, UnitPrice: unitPrice(5000)},
		},
		DiscountPercent: 10,
		TaxPercent:      5,
		PaymentMode:     entity.PaymentCash,
		AmountReceived:  10000,
	}, "user-1")
	require.NoError(t, err)

	assert.Equal(t, int64(10000), resp.Subtotal)
	assert.Equal(t, int64(1000), resp.DiscountAmount)
	assert.Equal(t, int64(450), resp.TaxAmount)
	assert.Equal(t, int64(9450), resp.Total)
	assert.Equal(t, int64(10000), resp.AmountReceived)
	assert.Equal(t, int64(550), resp.ChangeDue)
	assert.Len(t, resp.Items, 2)
	assert.Equal(t, "Paracetamol 500mg", resp.Items[0].MedicineName)
	assert.Equal(t, "B42", resp.Items[0].BatchNumber)

	expected := fmt.Sprintf("BILL-%s-0001", time.Now().Format("20060102"))
	assert.Equal(t, expected, resp.BillNumber)

	b1, _ := runner.stock.Get("med-1")
	b2, _ := runner.stock.Get("med-2")
	assert.Equal(t, int64(98), b1.CurrentQuantity)
	assert.Equal(t, int64(49), b2.CurrentQuantity)

	require.Len(t, runner.ledger.entries, 2)
	for _, e := range runner.ledger.entries {
		assert.Equal(t, entity.TxTypeOut, e.Type)
		assert.Equal(t, entity.RefTypeBill, e.ReferenceType)
		assert.Equal(t, resp.ID, e.ReferenceID)
		assert.Positive(t, e.Quantity)
	}
}

func TestCreateBill_SequentialNumbersWithinDay(t *testing.T) {
	med := &entity.Medicine{ID: "med-1", Name: "Cetirizine", SellPrice: 300}
	create, _, runner := newBillingFixture(med)
	runner.stock.set("med-1", 100)

	req := dto.CreateBillRequest{
		Items:       []dto.BillLineRequest{{MedicineID: "med-1", Quantity: 1}},
		PaymentMode: entity.PaymentCard,
	}
	first, err := create.CreateBill(context.Background(), req, "user-1")
	require.NoError(t, err)
	second, err := create.CreateBill(context.Background(), req, "user-1")
	require.NoError(t, err)

	day := time.Now().Format("20060102")
	assert.Equal(t, fmt.Sprintf("BILL-%s-0001", day), first.BillNumber)
	assert.Equal(t, fmt.Sprintf("BILL-%s-0002", day), second.BillNumber)
}

func TestCreateBill_OmittedUnitPriceFallsBackToSellPrice(t *testing.T) {
	med := &entity.Medicine{ID: "med-1", Name: "Amoxicillin", SellPrice: 1250}
	create, _, runner := newBillingFixture(med)
	runner.stock.set("med-1", 10)

	resp, err := create.CreateBill(context.Background(), dto.CreateBillRequest{
		Items:       []dto.BillLineRequest{{MedicineID: "med-1", Quantity: 3}},
		PaymentMode: entity.PaymentCredit,
	}, "user-1")
	require.NoError(t, err)

	assert.Equal(t, int64(3750), resp.Subtotal)
	assert.Equal(t, int64(1250), resp.Items[0].UnitPrice)
	assert.Equal(t, int64(3750), resp.Total)
	// Non-cash sale carries no tender fields.
	assert.Zero(t, resp.AmountReceived)
	assert.Zero(t, resp.ChangeDue)
}

func TestCreateBill_ExplicitZeroUnitPriceIsFreeLine(t *testing.T) {
	paid := &entity.Medicine{ID: "med-1", Name: "Amoxicillin", SellPrice: 1250}
	free := &entity.Medicine{ID: "med-2", Name: "ORS Sachet", SellPrice: 200}
	create, _, runner := newBillingFixture(paid, free)
	runner.stock.set("med-1", 10)
	runner.stock.set("med-2", 10)

	// The free line bills at zero, not at the catalog sell price.
	resp, err := create.CreateBill(context.Background(), dto.CreateBillRequest{
		Items: []dto.BillLineRequest{
			{MedicineID: "med-1", Quantity: 2, UnitPrice: unitPrice(1250)},
			{MedicineID: "med-2", Quantity: 1, UnitPrice: unitPrice(0)},
		},
		PaymentMode: entity.PaymentCard,
	}, "user-1")
	require.NoError(t, err)

	assert.Equal(t, int64(2500), resp.Subtotal)
	assert.Equal(t, int64(2500), resp.Total)
	assert.Equal(t, int64(0), resp.Items[1].UnitPrice)
	assert.Equal(t, int64(0), resp.Items[1].LineTotal)

	// A free line still depletes stock and hits the ledger.
	b, _ := runner.stock.Get("med-2")
	assert.Equal(t, int64(9), b.CurrentQuantity)
	require.Len(t, runner.ledger.entries, 2)
}

func TestCreateBill_InsufficientStockNamesMedicine(t *testing.T) {
	med := &entity.Medicine{ID: "med-1", Name: "Insulin", SellPrice: 50000}
	create, _, runner := newBillingFixture(med)
	runner.stock.set("med-1", 2)

	_, err := create.CreateBill(context.Background(), dto.CreateBillRequest{
		Items:       []dto.BillLineRequest{{MedicineID: "med-1", Quantity: 5}},
		PaymentMode: entity.PaymentCash,
	}, "user-1")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Contains(t, err.Error(), "Insulin")

	assert.Empty(t, runner.bills.bills)
	assert.Empty(t, runner.ledger.entries)
	b, _ := runner.stock.Get("med-1")
	assert.Equal(t, int64(2), b.CurrentQuantity)
}

func TestCreateBill_DuplicateLinesAggregateForStockCheck(t *testing.T) {
	med := &entity.Medicine{ID: "med-1", Name: "ORS Sachet", SellPrice: 200}
	create, _, runner := newBillingFixture(med)
	runner.stock.set("med-1", 5)

	_, err := create.CreateBill(context.Background(), dto.CreateBillRequest{
		Items: []dto.BillLineRequest{
			{MedicineID: "med-1", Quantity: 3},
			{MedicineID: "med-1", Quantity: 3},
		},
		PaymentMode: entity.PaymentCard,
	}, "user-1")
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

func TestCreateBill_CashUnderpaymentRejected(t *testing.T) {
	med := &entity.Medicine{ID: "med-1", Name: "Vitamin C", SellPrice: 1000}
	create, _, runner := newBillingFixture(med)
	runner.stock.set("med-1", 10)

	_, err := create.CreateBill(context.Background(), dto.CreateBillRequest{
		Items:          []dto.BillLineRequest{{MedicineID: "med-1", Quantity: 2}},
		PaymentMode:    entity.PaymentCash,
		AmountReceived: 1500,
	}, "user-1")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientPayment)
	assert.Empty(t, runner.bills.bills)
}

func TestCreateBill_ValidationFailures(t *testing.T) {
	med := &entity.Medicine{ID: "med-1", Name: "Aspirin", SellPrice: 500}
	create, _, runner := newBillingFixture(med)
	runner.stock.set("med-1", 10)

	cases := []struct {
		name string
		req  dto.CreateBillRequest
		by   string
	}{
		{"no lines", dto.CreateBillRequest{PaymentMode: entity.PaymentCash}, "user-1"},
		{"zero quantity", dto.CreateBillRequest{
			Items:       []dto.BillLineRequest{{MedicineID: "med-1", Quantity: 0}},
			PaymentMode: entity.PaymentCash,
		}, "user-1"},
		{"negative price", dto.CreateBillRequest{
			Items:       []dto.BillLineRequest{{MedicineID: "med-1", Quantity: 1, UnitPrice: unitPrice(-5)}},
			PaymentMode: entity.PaymentCash,
		}, "user-1"},
		{"bad payment mode", dto.CreateBillRequest{
			Items:       []dto.BillLineRequest{{MedicineID: "med-1", Quantity: 1}},
			PaymentMode: "cheque",
		}, "user-1"},
		{"missing user", dto.CreateBillRequest{
			Items:       []dto.BillLineRequest{{MedicineID: "med-1", Quantity: 1}},
			PaymentMode: entity.PaymentCash,
		}, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := create.CreateBill(context.Background(), tc.req, tc.by)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestCreateBill_UnknownOrDeletedMedicine(t *testing.T) {
	deleted := &entity.Medicine{ID: "med-gone", Name: "Old Syrup", SellPrice: 100, Deleted: true}
	create, _, _ := newBillingFixture(deleted)

	_, err := create.CreateBill(context.Background(), dto.CreateBillRequest{
		Items:       []dto.BillLineRequest{{MedicineID: "med-missing", Quantity: 1, UnitPrice: unitPrice(100)}},
		PaymentMode: entity.PaymentCard,
	}, "user-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = create.CreateBill(context.Background(), dto.CreateBillRequest{
		Items:       []dto.BillLineRequest{{MedicineID: "med-gone", Quantity: 1, UnitPrice: unitPrice(100)}},
		PaymentMode: entity.PaymentCard,
	}, "user-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetBill_ResolvesLines(t *testing.T) {
	med := &entity.Medicine{ID: "med-1", Name: "Dolo 650", BatchNumber: "L9", SellPrice: 2000}
	create, _, runner := newBillingFixture(med)
	runner.stock.set("med-1", 10)

	created, err := create.CreateBill(context.Background(), dto.CreateBillRequest{
		Items:       []dto.BillLineRequest{{MedicineID: "med-1", Quantity: 2}},
		PaymentMode: entity.PaymentCard,
	}, "user-1")
	require.NoError(t, err)

	got, err := create.GetBill(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.BillNumber, got.BillNumber)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "Dolo 650", got.Items[0].MedicineName)
	assert.Equal(t, "L9", got.Items[0].BatchNumber)

	_, err = create.GetBill(context.Background(), "no-such-bill")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
