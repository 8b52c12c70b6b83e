package inventory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pharmaplus/pharmacy-pos/internal/domain"
	"github.com/pharmaplus/pharmacy-pos/internal/domain/entity"
	"github.com/pharmaplus/pharmacy-pos/internal/domain/repository"
)

type memStockRepo struct {
	balances map[string]*entity.StockBalance
}

func newMemStockRepo() *memStockRepo {
	return &memStockRepo{balances: make(map[string]*entity.StockBalance)}
}

func (r *memStockRepo) Get(medicineID string) (*entity.StockBalance, error) {
	if b, ok := r.balances[medicineID]; ok {
		cp := *b
		return &cp, nil
	}
	return &entity.StockBalance{MedicineID: medicineID}, nil
}

func (r *memStockRepo) GetForUpdate(medicineID string) (*entity.StockBalance, error) {
	return r.Get(medicineID)
}

func (r *memStockRepo) Upsert(balance *entity.StockBalance) error {
	cp := *balance
	r.balances[balance.MedicineID] = &cp
	return nil
}

func (r *memStockRepo) set(medicineID string, qty int64) {
	r.balances[medicineID] = &entity.StockBalance{MedicineID: medicineID, CurrentQuantity: qty}
}

type memLedgerRepo struct {
	entries []*entity.StockTransaction
}

func (r *memLedgerRepo) Create(tx *entity.StockTransaction) error {
	cp := *tx
	r.entries = append(r.entries, &cp)
	return nil
}

func (r *memLedgerRepo) ListByMedicine(medicineID string, from, to *time.Time, limit, offset int) ([]*entity.StockTransaction, error) {
	var out []*entity.StockTransaction
	for _, e := range r.entries {
		if e.MedicineID == medicineID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *memLedgerRepo) SumSignedByMedicine(medicineID string) (int64, error) {
	var sum int64
	for _, e := range r.entries {
		if e.MedicineID == medicineID {
			sum += e.SignedQuantity()
		}
	}
	return sum, nil
}

type memMedicineRepo struct {
	meds map[string]*entity.Medicine
}

func (r *memMedicineRepo) Create(m *entity.Medicine) error { r.meds[m.ID] = m; return nil }
func (r *memMedicineRepo) Update(m *entity.Medicine) error { r.meds[m.ID] = m; return nil }

func (r *memMedicineRepo) GetByID(id string) (*entity.Medicine, error) {
	if m, ok := r.meds[id]; ok {
		cp := *m
		return &cp, nil
	}
	return nil, nil
}

func (r *memMedicineRepo) List(query string, limit, offset int) ([]*entity.Medicine, error) {
	var out []*entity.Medicine
	for _, m := range r.meds {
		if !m.Deleted {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *memMedicineRepo) SoftDelete(id string) error {
	if m, ok := r.meds[id]; ok {
		m.Deleted = true
	}
	return nil
}

type fakeRunner struct {
	stock     *memStockRepo
	ledger    *memLedgerRepo
	medicines *memMedicineRepo
}

func (f *fakeRunner) Run(ctx context.Context, fn func(
	stockRepo repository.StockRepository,
	ledgerRepo repository.StockTransactionRepository,
	medicineRepo repository.MedicineRepository,
) error) error {
	return fn(f.stock, f.ledger, f.medicines)
}

func newFixture(meds ...*entity.Medicine) (*StockUseCase, *fakeRunner) {
	runner := &fakeRunner{
		stock:     newMemStockRepo(),
		ledger:    &memLedgerRepo{},
		medicines: &memMedicineRepo{meds: make(map[string]*entity.Medicine)},
	}
	for _, m := range meds {
		runner.medicines.meds[m.ID] = m
	}
	return NewStockUseCase(runner), runner
}

func TestRecordTransaction_InCreditsBalanceAndLedger(t *testing.T) {
	uc, runner := newFixture(&entity.Medicine{ID: "med-1", Name: "Paracetamol 500mg"})

	err := uc.RecordTransaction(context.Background(), "med-1", entity.TxTypeIn, 30, "opening stock", "user-1")
	require.NoError(t, err)

	bal, _ := runner.stock.Get("med-1")
	assert.Equal(t, int64(30), bal.CurrentQuantity)

	require.Len(t, runner.ledger.entries, 1)
	e := runner.ledger.entries[0]
	assert.Equal(t, entity.TxTypeIn, e.Type)
	assert.Equal(t, int64(30), e.Quantity)
	assert.Equal(t, "opening stock", e.Reason)
	assert.Equal(t, "user-1", e.PerformedBy)
	assert.Empty(t, e.ReferenceID)
}

func TestRecordTransaction_OutDepletesBalance(t *testing.T) {
	uc, runner := newFixture(&entity.Medicine{ID: "med-1", Name: "Paracetamol 500mg"})
	runner.stock.set("med-1", 10)

	err := uc.RecordTransaction(context.Background(), "med-1", entity.TxTypeOut, 4, "damaged strip", "user-1")
	require.NoError(t, err)

	bal, _ := runner.stock.Get("med-1")
	assert.Equal(t, int64(6), bal.CurrentQuantity)

	require.Len(t, runner.ledger.entries, 1)
	assert.Equal(t, entity.TxTypeOut, runner.ledger.entries[0].Type)
	assert.Equal(t, int64(4), runner.ledger.entries[0].Quantity)
}

func TestRecordTransaction_OutBeyondBalanceFails(t *testing.T) {
	uc, runner := newFixture(&entity.Medicine{ID: "med-1", Name: "Paracetamol 500mg"})
	runner.stock.set("med-1", 3)

	err := uc.RecordTransaction(context.Background(), "med-1", entity.TxTypeOut, 5, "damaged", "user-1")
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Contains(t, err.Error(), "Paracetamol 500mg")

	bal, _ := runner.stock.Get("med-1")
	assert.Equal(t, int64(3), bal.CurrentQuantity)
	assert.Empty(t, runner.ledger.entries)
}

func TestRecordTransaction_NegativeAdjustIsTaggedOut(t *testing.T) {
	uc, runner := newFixture(&entity.Medicine{ID: "med-1", Name: "Paracetamol 500mg"})
	runner.stock.set("med-1", 10)

	err := uc.RecordTransaction(context.Background(), "med-1", entity.TxTypeAdjust, -2, "cycle count", "user-1")
	require.NoError(t, err)

	bal, _ := runner.stock.Get("med-1")
	assert.Equal(t, int64(8), bal.CurrentQuantity)

	require.Len(t, runner.ledger.entries, 1)
	e := runner.ledger.entries[0]
	assert.Equal(t, entity.TxTypeOut, e.Type)
	assert.Equal(t, int64(2), e.Quantity)
	assert.Equal(t, "adjustment: cycle count", e.Reason)
	assert.Equal(t, int64(-2), e.SignedQuantity())
}

func TestRecordTransaction_PositiveAdjustKeepsTag(t *testing.T) {
	uc, runner := newFixture(&entity.Medicine{ID: "med-1", Name: "Paracetamol 500mg"})
	runner.stock.set("med-1", 10)

	err := uc.RecordTransaction(context.Background(), "med-1", entity.TxTypeAdjust, 5, "cycle count", "user-1")
	require.NoError(t, err)

	bal, _ := runner.stock.Get("med-1")
	assert.Equal(t, int64(15), bal.CurrentQuantity)
	require.Len(t, runner.ledger.entries, 1)
	assert.Equal(t, entity.TxTypeAdjust, runner.ledger.entries[0].Type)
	assert.Equal(t, "cycle count", runner.ledger.entries[0].Reason)
}

func TestRecordTransaction_Validation(t *testing.T) {
	uc, runner := newFixture(&entity.Medicine{ID: "med-1", Name: "Paracetamol 500mg"})
	runner.stock.set("med-1", 10)

	cases := []struct {
		name     string
		medicine string
		txType   string
		quantity int64
		reason   string
	}{
		{"missing medicine", "", entity.TxTypeIn, 5, "x"},
		{"missing reason", "med-1", entity.TxTypeIn, 5, ""},
		{"zero in", "med-1", entity.TxTypeIn, 0, "x"},
		{"negative out", "med-1", entity.TxTypeOut, -5, "x"},
		{"zero adjust", "med-1", entity.TxTypeAdjust, 0, "x"},
		{"negative return", "med-1", entity.TxTypeReturn, -1, "x"},
		{"unknown type", "med-1", "transfer", 5, "x"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := uc.RecordTransaction(context.Background(), tc.medicine, tc.txType, tc.quantity, tc.reason, "user-1")
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
	assert.Empty(t, runner.ledger.entries)
}

func TestRecordTransaction_UnknownOrDeletedMedicine(t *testing.T) {
	deleted := &entity.Medicine{ID: "med-gone", Name: "Old stock", Deleted: true}
	uc, _ := newFixture(deleted)

	err := uc.RecordTransaction(context.Background(), "med-missing", entity.TxTypeIn, 5, "x", "user-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = uc.RecordTransaction(context.Background(), "med-gone", entity.TxTypeIn, 5, "x", "user-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLedgerReplayMatchesBalance(t *testing.T) {
	uc, runner := newFixture(&entity.Medicine{ID: "med-1", Name: "Paracetamol 500mg"})

	ctx := context.Background()
	require.NoError(t, uc.RecordTransaction(ctx, "med-1", entity.TxTypeIn, 50, "opening stock", "user-1"))
	require.NoError(t, uc.RecordTransaction(ctx, "med-1", entity.TxTypeOut, 12, "damaged", "user-1"))
	require.NoError(t, uc.RecordTransaction(ctx, "med-1", entity.TxTypeReturn, 2, "customer return", "user-1"))
	require.NoError(t, uc.RecordTransaction(ctx, "med-1", entity.TxTypeAdjust, -5, "cycle count", "user-1"))

	bal, _ := runner.stock.Get("med-1")
	sum, _ := runner.ledger.SumSignedByMedicine("med-1")
	assert.Equal(t, int64(35), bal.CurrentQuantity)
	assert.Equal(t, bal.CurrentQuantity, sum)
}
