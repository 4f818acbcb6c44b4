package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/moodify-shop/moodify/internal/core/domain"
	"github.com/moodify-shop/moodify/internal/port"
)

// Mock CartRepository
type memoryRepo struct {
	mu       sync.Mutex
	data     map[string][]byte
	failSave bool
	saves    int
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{data: make(map[string][]byte)}
}

func (m *memoryRepo) Load(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.data[key]
	if !ok {
		return nil, port.ErrNotFound
	}
	return append([]byte(nil), b...), nil
}

func (m *memoryRepo) Save(_ context.Context, key string, payload []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failSave {
		return errors.New("quota exceeded")
	}
	m.saves++
	m.data[key] = append([]byte(nil), payload...)
	return nil
}

func (m *memoryRepo) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func testProduct(id, name, price string) domain.Product {
	return domain.Product{ID: domain.NormalizeID(id), Name: name, Price: domain.PriceFromString(price)}
}

func TestHydrate_EmptySlot(t *testing.T) {
	ctx := context.Background()
	store := NewCartStore(ctx, "u1", newMemoryRepo(), nil)

	snap := store.Snapshot()
	if len(snap.Lines) != 0 {
		t.Errorf("expected empty cart, got %d lines", len(snap.Lines))
	}
	if snap.Open {
		t.Error("expected closed drawer after hydrate")
	}
	if snap.Count != 0 {
		t.Errorf("expected count 0, got %d", snap.Count)
	}
}

func TestAdd_Accumulates(t *testing.T) {
	ctx := context.Background()
	store := NewCartStore(ctx, "u1", newMemoryRepo(), nil)
	p := testProduct("42", "Lined Journal A5", "12.50")

	store.Add(ctx, p, 1)
	store.Add(ctx, p, 1)
	snap := store.Add(ctx, p, 1)

	if len(snap.Lines) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(snap.Lines))
	}
	if snap.Lines[0].Qty != 3 {
		t.Errorf("expected qty 3, got %d", snap.Lines[0].Qty)
	}
	if store.Count() != 3 {
		t.Errorf("expected count 3, got %d", store.Count())
	}
}

func TestAdd_QuantityClamp(t *testing.T) {
	ctx := context.Background()
	store := NewCartStore(ctx, "u1", newMemoryRepo(), nil)

	snap := store.Add(ctx, testProduct("1", "Vision Board Kit", "24.90"), 500)
	if snap.Lines[0].Qty != 99 {
		t.Errorf("expected clamp to 99, got %d", snap.Lines[0].Qty)
	}

	snap = store.Add(ctx, testProduct("1", "Vision Board Kit", "24.90"), 1)
	if snap.Lines[0].Qty != 99 {
		t.Errorf("expected qty pinned at 99, got %d", snap.Lines[0].Qty)
	}
}

func TestAdd_MissingID(t *testing.T) {
	ctx := context.Background()
	store := NewCartStore(ctx, "u1", newMemoryRepo(), nil)

	snap := store.Add(ctx, domain.Product{Name: "ghost"}, 1)
	if len(snap.Lines) != 0 {
		t.Errorf("expected no-op for item without id, got %d lines", len(snap.Lines))
	}
}

func TestDecrement_RemovesAtOne(t *testing.T) {
	ctx := context.Background()
	store := NewCartStore(ctx, "u1", newMemoryRepo(), nil)
	store.Add(ctx, testProduct("1", "Vision Board Kit", "24.90"), 2)

	snap := store.Decrement(ctx, "1")
	if snap.Lines[0].Qty != 1 {
		t.Fatalf("expected qty 1, got %d", snap.Lines[0].Qty)
	}

	snap = store.Decrement(ctx, "1")
	if len(snap.Lines) != 0 {
		t.Errorf("expected entry removed at qty 1, got %d lines", len(snap.Lines))
	}
}

func TestIdentifierNormalization(t *testing.T) {
	ctx := context.Background()
	store := NewCartStore(ctx, "u1", newMemoryRepo(), nil)

	// the catalog ships ids as JSON numbers
	var p domain.Product
	if err := json.Unmarshal([]byte(`{"id": 7, "name": "Headphones", "price": 79}`), &p); err != nil {
		t.Fatalf("unmarshal product: %v", err)
	}
	store.Add(ctx, p, 2)

	// the UI echoes the id back as a string
	snap := store.Decrement(ctx, "7")
	if len(snap.Lines) != 1 || snap.Lines[0].Qty != 1 {
		t.Errorf("numeric and string ids should address the same entry: %+v", snap.Lines)
	}
}

func TestSetQuantity(t *testing.T) {
	ctx := context.Background()
	store := NewCartStore(ctx, "u1", newMemoryRepo(), nil)
	store.Add(ctx, testProduct("1", "Vision Board Kit", "24.90"), 1)

	snap := store.SetQuantity(ctx, "1", 7)
	if snap.Lines[0].Qty != 7 {
		t.Errorf("expected qty 7, got %d", snap.Lines[0].Qty)
	}

	snap = store.SetQuantity(ctx, "1", 500)
	if snap.Lines[0].Qty != 99 {
		t.Errorf("expected clamp to 99, got %d", snap.Lines[0].Qty)
	}

	snap = store.SetQuantity(ctx, "1", -3)
	if snap.Lines[0].Qty != 1 {
		t.Errorf("expected clamp to 1, got %d", snap.Lines[0].Qty)
	}
}

func TestTotalPrice(t *testing.T) {
	ctx := context.Background()
	store := NewCartStore(ctx, "u1", newMemoryRepo(), nil)
	store.Add(ctx, testProduct("a", "A", "10"), 2)
	store.Add(ctx, testProduct("b", "B", "5.5"), 1)

	if got := store.TotalPrice(); got.String() != "25.5" {
		t.Errorf("expected total 25.5, got %s", got)
	}

	// a non-numeric price contributes zero, not a poisoned total
	var bad domain.Product
	if err := json.Unmarshal([]byte(`{"id": "c", "name": "C", "price": "not a number"}`), &bad); err != nil {
		t.Fatalf("unmarshal product: %v", err)
	}
	store.Add(ctx, bad, 3)
	if got := store.TotalPrice(); got.String() != "25.5" {
		t.Errorf("expected total unchanged at 25.5, got %s", got)
	}
}

func TestNoOpSafety(t *testing.T) {
	ctx := context.Background()
	store := NewCartStore(ctx, "u1", newMemoryRepo(), nil)
	store.Add(ctx, testProduct("1", "Vision Board Kit", "24.90"), 2)
	before := store.Snapshot()

	store.Remove(ctx, "nonexistent")
	store.Decrement(ctx, "nonexistent")
	store.SetQuantity(ctx, "nonexistent", 5)

	after := store.Snapshot()
	if len(after.Lines) != len(before.Lines) || after.Count != before.Count {
		t.Errorf("state changed by no-op commands: before %+v, after %+v", before, after)
	}
}

func TestRoundTripPersistence(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryRepo()

	store := NewCartStore(ctx, "u1", repo, nil)
	store.Add(ctx, testProduct("1", "Vision Board Kit", "24.90"), 2)
	store.Add(ctx, testProduct("7", "Noise-Cancel Headphones", "79.00"), 1)
	store.Add(ctx, testProduct("3", "LED Desk Lamp", "39.00"), 4)
	want := store.Snapshot()

	rehydrated := NewCartStore(ctx, "u1", repo, nil)
	got := rehydrated.Snapshot()

	if len(got.Lines) != len(want.Lines) {
		t.Fatalf("expected %d lines, got %d", len(want.Lines), len(got.Lines))
	}
	for i := range want.Lines {
		if got.Lines[i].Item.ID != want.Lines[i].Item.ID {
			t.Errorf("line %d: order not preserved: want %s, got %s", i, want.Lines[i].Item.ID, got.Lines[i].Item.ID)
		}
		if got.Lines[i].Qty != want.Lines[i].Qty {
			t.Errorf("line %d: want qty %d, got %d", i, want.Lines[i].Qty, got.Lines[i].Qty)
		}
		if !got.Lines[i].Item.Price.Equal(want.Lines[i].Item.Price.Decimal) {
			t.Errorf("line %d: want price %s, got %s", i, want.Lines[i].Item.Price, got.Lines[i].Item.Price)
		}
	}
	if !got.Total.Equal(want.Total) {
		t.Errorf("want total %s, got %s", want.Total, got.Total)
	}
}

func TestMigration_V1Slot(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryRepo()
	// the v1 slot used numeric keys straight from the catalog
	v1 := `{"items":[[7,{"item":{"id":7,"name":"Noise-Cancel Headphones","price":79},"qty":2}]]}`
	repo.data["moodify:cart:v1:u1"] = []byte(v1)

	store := NewCartStore(ctx, "u1", repo, nil)
	snap := store.Snapshot()
	if len(snap.Lines) != 1 || snap.Lines[0].Qty != 2 {
		t.Fatalf("expected migrated entry with qty 2, got %+v", snap.Lines)
	}
	if snap.Lines[0].Item.ID != "7" {
		t.Errorf("expected normalized id 7, got %q", snap.Lines[0].Item.ID)
	}

	if _, ok := repo.data["moodify:cart:v2:u1"]; !ok {
		t.Error("expected payload re-keyed under v2")
	}
	if _, ok := repo.data["moodify:cart:v1:u1"]; ok {
		t.Error("expected v1 slot removed after migration")
	}
}

func TestHydrate_CorruptPayload(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryRepo()
	repo.data["moodify:cart:v2:u1"] = []byte(`{"items": nonsense`)

	store := NewCartStore(ctx, "u1", repo, nil)
	if n := len(store.Snapshot().Lines); n != 0 {
		t.Errorf("expected empty cart from corrupt payload, got %d lines", n)
	}
}

func TestPersistFailure_DoesNotBlockMutation(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryRepo()
	repo.failSave = true

	store := NewCartStore(ctx, "u1", repo, nil)
	snap := store.Add(ctx, testProduct("1", "Vision Board Kit", "24.90"), 1)
	if len(snap.Lines) != 1 {
		t.Errorf("in-memory state should survive a failed write, got %d lines", len(snap.Lines))
	}
}

func TestDrawerState_NotPersisted(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryRepo()
	store := NewCartStore(ctx, "u1", repo, nil)

	store.Add(ctx, testProduct("1", "Vision Board Kit", "24.90"), 1)
	writes := repo.saves

	snap := store.Open(ctx)
	if !snap.Open {
		t.Error("expected drawer open")
	}
	snap = store.Toggle(ctx)
	if snap.Open {
		t.Error("expected drawer closed after toggle")
	}
	store.Close(ctx) // already closed, no-op

	if repo.saves != writes {
		t.Errorf("drawer visibility must not hit storage: %d extra writes", repo.saves-writes)
	}

	rehydrated := NewCartStore(ctx, "u1", repo, nil)
	if rehydrated.IsOpen() {
		t.Error("drawer state leaked into the durable slot")
	}
}

func TestClear(t *testing.T) {
	ctx := context.Background()
	store := NewCartStore(ctx, "u1", newMemoryRepo(), nil)
	store.Add(ctx, testProduct("1", "Vision Board Kit", "24.90"), 2)
	store.Add(ctx, testProduct("2", "Lined Journal A5", "12.50"), 1)

	snap := store.Clear(ctx)
	if len(snap.Lines) != 0 {
		t.Errorf("expected no lines after clear, got %d", len(snap.Lines))
	}
	if store.Count() != 0 {
		t.Errorf("expected count 0 after clear, got %d", store.Count())
	}
	if !store.TotalPrice().IsZero() {
		t.Errorf("expected total 0 after clear, got %s", store.TotalPrice())
	}
}

func TestSubscribe(t *testing.T) {
	ctx := context.Background()
	store := NewCartStore(ctx, "u1", newMemoryRepo(), nil)

	var got []CartSnapshot
	cancel := store.Subscribe(func(s CartSnapshot) { got = append(got, s) })

	store.Add(ctx, testProduct("1", "Vision Board Kit", "24.90"), 1)
	store.Remove(ctx, "nonexistent") // no-op must not notify
	store.Add(ctx, testProduct("1", "Vision Board Kit", "24.90"), 1)

	if len(got) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(got))
	}
	if got[1].Count != 2 {
		t.Errorf("expected snapshot count 2, got %d", got[1].Count)
	}

	cancel()
	store.Add(ctx, testProduct("1", "Vision Board Kit", "24.90"), 1)
	if len(got) != 2 {
		t.Errorf("expected no notification after unsubscribe, got %d", len(got))
	}
}

func TestUninitializedStore_Panics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for store without a repository")
		}
	}()
	NewCartStore(context.Background(), "u1", nil, nil)
}

func TestManager_SharesStorePerOwner(t *testing.T) {
	ctx := context.Background()
	m := NewCartManager(newMemoryRepo(), nil)

	a := m.Store(ctx, "u1")
	b := m.Store(ctx, "u1")
	if a != b {
		t.Error("expected one store per owner")
	}
	if m.Store(ctx, "") != m.Store(ctx, "  ") {
		t.Error("expected blank owners to share the guest cart")
	}
	if m.Store(ctx, "u2") == a {
		t.Error("expected distinct owners to get distinct stores")
	}
}
