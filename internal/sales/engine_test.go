package sales

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pharmapos/m/domain"
	"pharmapos/m/internal/inventory"
)

// memStore is an in-memory Store with real transaction semantics: each
// scope works on scratch copies that are written back only when the
// callback succeeds.
type memStore struct {
	mu     sync.Mutex
	stock  map[int64]int64
	sales  []domain.Sale
	lines  []domain.SaleLine
	nextID int64

	txCount int
	reads   []int64 // medicine ids read, in order, across all scopes

	failOnLineInsert int // fail the Nth InsertSaleLine call (1-based), 0 = never
	lineInserts      int

	// Simulates a concurrent sale winning the row between validation and
	// the decrement: the first ApplyStockDelta shrinks the count to
	// raceAvailable and refuses. raceReadErr, when set, fails reads made
	// after that refusal.
	raceAvailable *int64
	raceReadErr   error
	raced         bool
}

func newMemStore(stock map[int64]int64) *memStore {
	s := &memStore{stock: make(map[int64]int64)}
	for id, qty := range stock {
		s.stock[id] = qty
	}
	return s
}

func (s *memStore) RunInTx(_ context.Context, fn func(tx Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.txCount++

	tx := &memTx{store: s, stock: make(map[int64]int64), nextID: s.nextID}
	for id, qty := range s.stock {
		tx.stock[id] = qty
	}

	if err := fn(tx); err != nil {
		return err
	}

	s.stock = tx.stock
	s.sales = append(s.sales, tx.sales...)
	s.lines = append(s.lines, tx.lines...)
	s.nextID = tx.nextID
	return nil
}

type memTx struct {
	store  *memStore
	stock  map[int64]int64
	sales  []domain.Sale
	lines  []domain.SaleLine
	nextID int64
}

func (t *memTx) StockOnHand(_ context.Context, medicineID int64) (int64, error) {
	t.store.reads = append(t.store.reads, medicineID)
	if t.store.raced && t.store.raceReadErr != nil {
		return 0, t.store.raceReadErr
	}
	qty, ok := t.stock[medicineID]
	if !ok {
		return 0, inventory.ErrNotFound
	}
	return qty, nil
}

func (t *memTx) ApplyStockDelta(_ context.Context, medicineID, delta int64) error {
	if t.store.raceAvailable != nil && !t.store.raced {
		t.store.raced = true
		t.stock[medicineID] = *t.store.raceAvailable
		return inventory.ErrInsufficientStock
	}
	qty, ok := t.stock[medicineID]
	if !ok {
		return inventory.ErrNotFound
	}
	if qty+delta < 0 {
		return inventory.ErrInsufficientStock
	}
	t.stock[medicineID] = qty + delta
	return nil
}

func (t *memTx) InsertSale(_ context.Context, sale *domain.Sale) error {
	t.nextID++
	sale.ID = t.nextID
	sale.CreatedAt = "2024-01-01T00:00:00Z"
	t.sales = append(t.sales, *sale)
	return nil
}

func (t *memTx) InsertSaleLine(_ context.Context, line *domain.SaleLine) error {
	t.store.lineInserts++
	if t.store.failOnLineInsert > 0 && t.store.lineInserts == t.store.failOnLineInsert {
		return fmt.Errorf("connection reset by peer")
	}
	t.nextID++
	line.ID = t.nextID
	t.lines = append(t.lines, *line)
	return nil
}

func TestSubmit_CommitsSaleAndDecrementsStock(t *testing.T) {
	store := newMemStore(map[int64]int64{1: 5, 2: 10})
	engine := NewEngine(store)

	customerID := int64(7)
	sale, err := engine.Submit(context.Background(), Request{
		CustomerID:    &customerID,
		PaymentMethod: domain.PaymentCard,
		Lines: []Line{
			{MedicineID: 1, Quantity: 3, UnitPrice: 2.5},
			{MedicineID: 2, Quantity: 1, UnitPrice: 10},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, sale)

	assert.NotZero(t, sale.ID)
	assert.NotEmpty(t, sale.CreatedAt)
	assert.Equal(t, domain.PaymentCard, sale.PaymentMethod)
	assert.Equal(t, 17.5, sale.TotalAmount)

	require.Len(t, sale.Lines, 2)
	assert.Equal(t, 7.5, sale.Lines[0].TotalPrice)
	assert.Equal(t, 10.0, sale.Lines[1].TotalPrice)
	assert.Equal(t, sale.ID, sale.Lines[0].SaleID)

	assert.Equal(t, int64(2), store.stock[1])
	assert.Equal(t, int64(9), store.stock[2])
	assert.Len(t, store.sales, 1)
	assert.Len(t, store.lines, 2)
}

func TestSubmit_TotalMatchesLineSum(t *testing.T) {
	store := newMemStore(map[int64]int64{1: 100, 2: 100, 3: 100})
	engine := NewEngine(store)

	lines := []Line{
		{MedicineID: 1, Quantity: 4, UnitPrice: 1.25},
		{MedicineID: 2, Quantity: 2, UnitPrice: 0.75},
		{MedicineID: 3, Quantity: 10, UnitPrice: 3},
	}
	sale, err := engine.Submit(context.Background(), Request{Lines: lines})
	require.NoError(t, err)

	var want float64
	for _, l := range sale.Lines {
		assert.Equal(t, float64(l.Quantity)*l.UnitPrice, l.TotalPrice)
		want += l.TotalPrice
	}
	assert.Equal(t, want, sale.TotalAmount)
}

func TestSubmit_EmptyLinesTouchesNoStore(t *testing.T) {
	store := newMemStore(map[int64]int64{1: 5})
	engine := NewEngine(store)

	_, err := engine.Submit(context.Background(), Request{})
	require.ErrorIs(t, err, ErrInvalidSale)
	assert.Zero(t, store.txCount, "invalid submission must not open a transaction")
}

func TestSubmit_RejectsMalformedRequests(t *testing.T) {
	cases := []struct {
		name string
		req  Request
	}{
		{"zero quantity", Request{Lines: []Line{{MedicineID: 1, Quantity: 0, UnitPrice: 1}}}},
		{"negative quantity", Request{Lines: []Line{{MedicineID: 1, Quantity: -2, UnitPrice: 1}}}},
		{"negative price", Request{Lines: []Line{{MedicineID: 1, Quantity: 1, UnitPrice: -0.5}}}},
		{"missing medicine", Request{Lines: []Line{{Quantity: 1, UnitPrice: 1}}}},
		{"bad payment method", Request{PaymentMethod: "barter", Lines: []Line{{MedicineID: 1, Quantity: 1, UnitPrice: 1}}}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := newMemStore(map[int64]int64{1: 5})
			_, err := NewEngine(store).Submit(context.Background(), tc.req)
			require.ErrorIs(t, err, ErrInvalidSale)
			assert.Zero(t, store.txCount)
		})
	}
}

func TestSubmit_DefaultsToCash(t *testing.T) {
	store := newMemStore(map[int64]int64{1: 5})
	sale, err := NewEngine(store).Submit(context.Background(), Request{
		Lines: []Line{{MedicineID: 1, Quantity: 1, UnitPrice: 2}},
	})
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentCash, sale.PaymentMethod)
}

func TestSubmit_UnknownMedicineRollsBack(t *testing.T) {
	store := newMemStore(map[int64]int64{1: 5})
	engine := NewEngine(store)

	_, err := engine.Submit(context.Background(), Request{Lines: []Line{
		{MedicineID: 1, Quantity: 2, UnitPrice: 1},
		{MedicineID: 99, Quantity: 1, UnitPrice: 1},
	}})
	require.ErrorIs(t, err, ErrInvalidSale)

	assert.Equal(t, int64(5), store.stock[1], "no decrement may survive a failed submission")
	assert.Empty(t, store.sales)
	assert.Empty(t, store.lines)
}

func TestSubmit_BlamesFirstShortLine(t *testing.T) {
	store := newMemStore(map[int64]int64{1: 5, 2: 1, 3: 0})
	engine := NewEngine(store)

	_, err := engine.Submit(context.Background(), Request{Lines: []Line{
		{MedicineID: 1, Quantity: 3, UnitPrice: 1},
		{MedicineID: 2, Quantity: 2, UnitPrice: 1},
		{MedicineID: 3, Quantity: 5, UnitPrice: 1},
	}})

	var stockErr *StockError
	require.ErrorAs(t, err, &stockErr)
	require.ErrorIs(t, err, ErrInsufficientStock)
	assert.Equal(t, int64(2), stockErr.MedicineID)
	assert.Equal(t, int64(2), stockErr.Requested)
	assert.Equal(t, int64(1), stockErr.Available)

	// Validation stops at the first offender; line 3 is never evaluated.
	assert.Equal(t, []int64{1, 2}, store.reads)

	assert.Equal(t, int64(5), store.stock[1])
	assert.Equal(t, int64(1), store.stock[2])
	assert.Empty(t, store.sales)
	assert.Empty(t, store.lines)
}

func TestSubmit_PersistenceFailureLeavesNoTrace(t *testing.T) {
	store := newMemStore(map[int64]int64{1: 5, 2: 5})
	store.failOnLineInsert = 2
	engine := NewEngine(store)

	req := Request{Lines: []Line{
		{MedicineID: 1, Quantity: 1, UnitPrice: 2},
		{MedicineID: 2, Quantity: 1, UnitPrice: 3},
	}}

	_, err := engine.Submit(context.Background(), req)
	var pErr *PersistenceError
	require.ErrorAs(t, err, &pErr)

	assert.Equal(t, int64(5), store.stock[1])
	assert.Equal(t, int64(5), store.stock[2])
	assert.Empty(t, store.sales)
	assert.Empty(t, store.lines)

	// The rollback left no partial state, so the identical payload can be
	// retried and commits exactly once.
	store.failOnLineInsert = 0
	sale, err := engine.Submit(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 5.0, sale.TotalAmount)
	assert.Len(t, store.sales, 1)
	assert.Equal(t, int64(4), store.stock[1])
	assert.Equal(t, int64(4), store.stock[2])
}

func TestSubmit_DecrementRaceReportsLatestCount(t *testing.T) {
	store := newMemStore(map[int64]int64{1: 5})
	remaining := int64(1)
	store.raceAvailable = &remaining
	engine := NewEngine(store)

	_, err := engine.Submit(context.Background(), Request{
		Lines: []Line{{MedicineID: 1, Quantity: 3, UnitPrice: 2}},
	})

	// Validation saw 5, but a concurrent sale dropped the row to 1 before
	// the decrement. The error must carry the post-race count, not the
	// stale validated one.
	var stockErr *StockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, int64(1), stockErr.MedicineID)
	assert.Equal(t, int64(3), stockErr.Requested)
	assert.Equal(t, int64(1), stockErr.Available)

	assert.Equal(t, int64(5), store.stock[1], "the losing scope commits nothing")
	assert.Empty(t, store.sales)
	assert.Empty(t, store.lines)
}

func TestSubmit_DecrementRaceReadFailureIsPersistenceError(t *testing.T) {
	store := newMemStore(map[int64]int64{1: 5})
	remaining := int64(0)
	store.raceAvailable = &remaining
	store.raceReadErr = fmt.Errorf("connection reset by peer")
	engine := NewEngine(store)

	_, err := engine.Submit(context.Background(), Request{
		Lines: []Line{{MedicineID: 1, Quantity: 3, UnitPrice: 2}},
	})

	// When the re-read after a lost decrement fails too, the caller gets
	// a persistence error, never a StockError with a made-up count.
	var pErr *PersistenceError
	require.ErrorAs(t, err, &pErr)
	assert.ErrorIs(t, err, pErr.Err)

	var stockErr *StockError
	assert.False(t, errors.As(err, &stockErr))

	assert.Equal(t, int64(5), store.stock[1])
	assert.Empty(t, store.sales)
}

func TestSubmit_ConcurrentSalesNeverOversell(t *testing.T) {
	initialStock := int64(20)
	totalRequests := 50

	store := newMemStore(map[int64]int64{1: initialStock})
	engine := NewEngine(store)

	var successCount, stockFailCount atomic.Int64
	var wg sync.WaitGroup

	for i := 0; i < totalRequests; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := engine.Submit(context.Background(), Request{
				Lines: []Line{{MedicineID: 1, Quantity: 1, UnitPrice: 1}},
			})
			switch {
			case err == nil:
				successCount.Add(1)
			case errors.Is(err, ErrInsufficientStock):
				stockFailCount.Add(1)
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, initialStock, successCount.Load())
	assert.Equal(t, int64(totalRequests)-initialStock, stockFailCount.Load())
	assert.Equal(t, int64(0), store.stock[1], "stock must never go negative")
	assert.Len(t, store.sales, int(initialStock))
}
