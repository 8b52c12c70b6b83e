package billing

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/pharmaplus/pharmacy-pos/internal/domain/entity"
	"github.com/pharmaplus/pharmacy-pos/internal/domain/repository"
)

// In-memory repositories for use case tests. They hold state across calls and
// do not simulate rollback: tests assert on what a failed flow must NOT have
// reached rather than on rollback mechanics.

type memMedicineRepo struct {
	medicines map[string]*entity.Medicine
}

func newMemMedicineRepo(meds ...*entity.Medicine) *memMedicineRepo {
	r := &memMedicineRepo{medicines: make(map[string]*entity.Medicine)}
	for _, m := range meds {
		r.medicines[m.ID] = m
	}
	return r
}

func (r *memMedicineRepo) Create(m *entity.Medicine) error { r.medicines[m.ID] = m; return nil }
func (r *memMedicineRepo) Update(m *entity.Medicine) error { r.medicines[m.ID] = m; return nil }
func (r *memMedicineRepo) GetByID(id string) (*entity.Medicine, error) {
	return r.medicines[id], nil
}
func (r *memMedicineRepo) List(query string, limit, offset int) ([]*entity.Medicine, error) {
	var out []*entity.Medicine
	for _, m := range r.medicines {
		if m.Deleted {
			continue
		}
		if query != "" && !strings.Contains(strings.ToLower(m.Name), strings.ToLower(query)) {
			continue
		}
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}
func (r *memMedicineRepo) SoftDelete(id string) error {
	if m := r.medicines[id]; m != nil {
		m.Deleted = true
	}
	return nil
}

type memStockRepo struct {
	balances map[string]*entity.StockBalance
}

func newMemStockRepo() *memStockRepo {
	return &memStockRepo{balances: make(map[string]*entity.StockBalance)}
}

func (r *memStockRepo) set(medicineID string, qty int64) {
	r.balances[medicineID] = &entity.StockBalance{MedicineID: medicineID, CurrentQuantity: qty}
}

func (r *memStockRepo) Get(medicineID string) (*entity.StockBalance, error) {
	if b, ok := r.balances[medicineID]; ok {
		copy := *b
		return &copy, nil
	}
	return &entity.StockBalance{MedicineID: medicineID}, nil
}
func (r *memStockRepo) GetForUpdate(medicineID string) (*entity.StockBalance, error) {
	return r.Get(medicineID)
}
func (r *memStockRepo) Upsert(balance *entity.StockBalance) error {
	copy := *balance
	r.balances[balance.MedicineID] = &copy
	return nil
}

type memLedgerRepo struct {
	entries []*entity.StockTransaction
}

func (r *memLedgerRepo) Create(tx *entity.StockTransaction) error {
	r.entries = append(r.entries, tx)
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

type memBillRepo struct {
	bills map[string]*entity.Bill
	items map[string][]*entity.BillItem
}

func newMemBillRepo() *memBillRepo {
	return &memBillRepo{
		bills: make(map[string]*entity.Bill),
		items: make(map[string][]*entity.BillItem),
	}
}

func (r *memBillRepo) Create(b *entity.Bill) error {
	copy := *b
	r.bills[b.ID] = &copy
	return nil
}
func (r *memBillRepo) CreateItem(item *entity.BillItem) error {
	copy := *item
	r.items[item.BillID] = append(r.items[item.BillID], &copy)
	return nil
}
func (r *memBillRepo) GetByID(id string) (*entity.Bill, error) {
	if b, ok := r.bills[id]; ok {
		copy := *b
		return &copy, nil
	}
	return nil, nil
}
func (r *memBillRepo) GetItems(billID string) ([]*entity.BillItem, error) {
	return r.items[billID], nil
}
func (r *memBillRepo) LastNumberForDate(prefix string, date time.Time) (string, error) {
	day := prefix + "-" + date.Format("20060102") + "-"
	var last string
	for _, b := range r.bills {
		if strings.HasPrefix(b.BillNumber, day) && b.BillNumber > last {
			last = b.BillNumber
		}
	}
	return last, nil
}
func (r *memBillRepo) MarkVoided(b *entity.Bill) error {
	stored, ok := r.bills[b.ID]
	if !ok {
		return nil
	}
	stored.Voided = true
	stored.VoidReason = b.VoidReason
	stored.VoidedBy = b.VoidedBy
	stored.VoidedAt = b.VoidedAt
	return nil
}
func (r *memBillRepo) List(from, to *time.Time, includeVoided bool, limit, offset int) ([]*entity.Bill, error) {
	var out []*entity.Bill
	for _, b := range r.bills {
		if b.Voided && !includeVoided {
			continue
		}
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// fakeBillingRunner hands the shared in-memory repositories to the callback.
// No transactional isolation; failed flows leave partial writes behind, which
// tests account for by asserting what must not have been reached.
type fakeBillingRunner struct {
	stock     *memStockRepo
	ledger    *memLedgerRepo
	medicines *memMedicineRepo
	bills     *memBillRepo
}

func (f *fakeBillingRunner) RunBilling(ctx context.Context, fn func(
	stockRepo repository.StockRepository,
	ledgerRepo repository.StockTransactionRepository,
	medicineRepo repository.MedicineRepository,
	billRepo repository.BillRepository,
) error) error {
	return fn(f.stock, f.ledger, f.medicines, f.bills)
}
