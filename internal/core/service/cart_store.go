package service

import (
	"context"
	"errors"
	"log"
	"sort"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/moodify-shop/moodify/internal/core/domain"
	"github.com/moodify-shop/moodify/internal/metrics"
	"github.com/moodify-shop/moodify/internal/port"
)

// Durable slot keys are versioned. v2 is current; a v1 slot is read once,
// re-keyed under v2 and removed.
const (
	cartKeyV2Prefix = "moodify:cart:v2:"
	cartKeyV1Prefix = "moodify:cart:v1:"
)

type actionKind int

const (
	actAdd actionKind = iota
	actSetQty
	actDecrement
	actRemove
	actClear
	actOpen
	actClose
	actToggle
)

// cartAction is the tagged union folded over cartState by reduce. Only the
// fields relevant to the kind are set.
type cartAction struct {
	kind actionKind
	item domain.Product
	id   domain.ProductID
	qty  int
}

// mutatesEntries reports whether the action can touch cart contents, and so
// whether a durable write is due. Drawer visibility is never persisted.
func mutatesEntries(k actionKind) bool {
	switch k {
	case actOpen, actClose, actToggle:
		return false
	}
	return true
}

// cartState is the in-memory representation: a map keyed by canonical
// product id plus insertion order for stable display, and the drawer flag.
type cartState struct {
	order   []domain.ProductID
	entries map[domain.ProductID]domain.LineEntry
	open    bool
}

func emptyCartState() cartState {
	return cartState{entries: make(map[domain.ProductID]domain.LineEntry)}
}

func (st cartState) clone() cartState {
	next := cartState{
		order:   append([]domain.ProductID(nil), st.order...),
		entries: make(map[domain.ProductID]domain.LineEntry, len(st.entries)),
		open:    st.open,
	}
	for k, v := range st.entries {
		next.entries[k] = v
	}
	return next
}

func removeID(ids []domain.ProductID, id domain.ProductID) []domain.ProductID {
	for i := range ids {
		if ids[i] == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}

// reduce is the pure transition function. It returns the next state and
// whether anything changed; invalid input always comes back unchanged.
func reduce(st cartState, a cartAction) (cartState, bool) {
	switch a.kind {
	case actAdd:
		id := domain.NormalizeID(string(a.item.ID))
		if id.IsZero() {
			return st, false
		}
		n := a.qty
		if n < 1 {
			n = 1
		}
		next := st.clone()
		if cur, ok := next.entries[id]; ok {
			cur.Item = a.item
			cur.Qty = domain.ClampQty(cur.Qty + n)
			next.entries[id] = cur
		} else {
			next.order = append(next.order, id)
			next.entries[id] = domain.LineEntry{Item: a.item, Qty: domain.ClampQty(n)}
		}
		return next, true

	case actSetQty:
		cur, ok := st.entries[a.id]
		if !ok {
			return st, false
		}
		q := domain.ClampQty(a.qty)
		if q == cur.Qty {
			return st, false
		}
		next := st.clone()
		cur.Qty = q
		next.entries[a.id] = cur
		return next, true

	case actDecrement:
		cur, ok := st.entries[a.id]
		if !ok {
			return st, false
		}
		next := st.clone()
		if cur.Qty <= domain.MinQty {
			delete(next.entries, a.id)
			next.order = removeID(next.order, a.id)
		} else {
			cur.Qty--
			next.entries[a.id] = cur
		}
		return next, true

	case actRemove:
		if _, ok := st.entries[a.id]; !ok {
			return st, false
		}
		next := st.clone()
		delete(next.entries, a.id)
		next.order = removeID(next.order, a.id)
		return next, true

	case actClear:
		if len(st.entries) == 0 {
			return st, false
		}
		next := st.clone()
		next.order = nil
		next.entries = make(map[domain.ProductID]domain.LineEntry)
		return next, true

	case actOpen:
		if st.open {
			return st, false
		}
		next := st.clone()
		next.open = true
		return next, true

	case actClose:
		if !st.open {
			return st, false
		}
		next := st.clone()
		next.open = false
		return next, true

	case actToggle:
		next := st.clone()
		next.open = !st.open
		return next, true
	}
	return st, false
}

// CartLine is one entry of a snapshot, in insertion order.
type CartLine struct {
	Item domain.Product `json:"item"`
	Qty  int            `json:"qty"`
}

// CartSnapshot is the immutable derived view handed to callers. Count and
// Total are recomputed on every snapshot, never cached in state.
type CartSnapshot struct {
	Lines []CartLine      `json:"lines"`
	Open  bool            `json:"open"`
	Count int             `json:"count"`
	Total decimal.Decimal `json:"total"`
}

func snapshotOf(st cartState) CartSnapshot {
	lines := make([]CartLine, 0, len(st.order))
	count := 0
	total := decimal.Zero
	for _, id := range st.order {
		e, ok := st.entries[id]
		if !ok {
			continue
		}
		lines = append(lines, CartLine{Item: e.Item, Qty: e.Qty})
		count += e.Qty
		total = total.Add(e.Item.Price.Decimal.Mul(decimal.NewFromInt(int64(e.Qty))))
	}
	return CartSnapshot{Lines: lines, Open: st.open, Count: count, Total: total}
}

// CartStore owns one shopper's cart: the single source of truth for its
// contents and for whether the drawer is open. Mutations funnel through
// dispatch, never fail, and persist synchronously best-effort; a failed
// write is logged and counted but the in-memory state stays authoritative.
type CartStore struct {
	owner string
	repo  port.CartRepository
	mets  *metrics.Registry

	mu      sync.Mutex
	state   cartState
	subs    map[int]func(CartSnapshot)
	nextSub int
}

// NewCartStore builds and hydrates the store for one owner. A nil repository
// is a programming error; everything downstream assumes an initialized
// store, so this fails loudly rather than limping along.
func NewCartStore(ctx context.Context, owner string, repo port.CartRepository, mets *metrics.Registry) *CartStore {
	if repo == nil {
		panic("cart: store created without a repository")
	}
	s := &CartStore{
		owner: owner,
		repo:  repo,
		mets:  mets,
		state: emptyCartState(),
		subs:  make(map[int]func(CartSnapshot)),
	}
	s.hydrate(ctx)
	return s
}

func (s *CartStore) Owner() string { return s.owner }

func (s *CartStore) key() string       { return cartKeyV2Prefix + s.owner }
func (s *CartStore) legacyKey() string { return cartKeyV1Prefix + s.owner }

func (s *CartStore) hydrate(ctx context.Context) {
	raw, err := s.repo.Load(ctx, s.key())
	if err == nil {
		st, ok := decodeCartPayload(raw)
		if ok {
			s.state = st
			return
		}
		s.inc(func(m *metrics.Registry) { m.HydrateCorrupt.Inc() })
		log.Printf("cart %s: corrupt payload, starting empty", s.owner)
		return
	}
	if !errors.Is(err, port.ErrNotFound) {
		log.Printf("cart %s: load failed: %v", s.owner, err)
		return
	}

	// One-time best-effort upgrade from the v1 slot.
	raw, err = s.repo.Load(ctx, s.legacyKey())
	if err != nil {
		return
	}
	st, ok := decodeCartPayload(raw)
	if !ok {
		s.inc(func(m *metrics.Registry) { m.HydrateCorrupt.Inc() })
		return
	}
	s.state = st
	s.persistLocked(ctx)
	_ = s.repo.Delete(ctx, s.legacyKey())
	s.inc(func(m *metrics.Registry) { m.HydrateMigrated.Inc() })
	log.Printf("cart %s: migrated v1 slot to v2", s.owner)
}

// persistLocked writes the current entries under the v2 key. Callers hold
// s.mu. Failures are swallowed: quota or connectivity problems must never
// block the mutation that already happened in memory.
func (s *CartStore) persistLocked(ctx context.Context) {
	payload, err := encodeCartPayload(s.state)
	if err == nil {
		err = s.repo.Save(ctx, s.key(), payload)
	}
	if err != nil {
		s.inc(func(m *metrics.Registry) { m.PersistFailures.Inc() })
		log.Printf("cart %s: persist failed: %v", s.owner, err)
	}
}

func (s *CartStore) inc(fn func(*metrics.Registry)) {
	if s.mets != nil {
		fn(s.mets)
	}
}

func (s *CartStore) dispatch(ctx context.Context, a cartAction) CartSnapshot {
	if s == nil || s.repo == nil {
		panic("cart: store used before initialization")
	}
	s.mu.Lock()
	next, changed := reduce(s.state, a)
	if !changed {
		snap := snapshotOf(s.state)
		s.mu.Unlock()
		s.inc(func(m *metrics.Registry) { m.CartNoops.Inc() })
		return snap
	}
	s.state = next
	if mutatesEntries(a.kind) {
		s.persistLocked(ctx)
	}
	snap := snapshotOf(s.state)
	ids := make([]int, 0, len(s.subs))
	for id := range s.subs {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	fns := make([]func(CartSnapshot), 0, len(ids))
	for _, id := range ids {
		fns = append(fns, s.subs[id])
	}
	s.mu.Unlock()

	s.inc(func(m *metrics.Registry) { m.CartMutations.Inc() })
	for _, fn := range fns {
		fn(snap)
	}
	return snap
}

// Add puts qty units of item in the cart, merging with an existing entry for
// the same id. Quantities clamp to [1, 99]; an item without an id is a no-op.
func (s *CartStore) Add(ctx context.Context, item domain.Product, qty int) CartSnapshot {
	return s.dispatch(ctx, cartAction{kind: actAdd, item: item, qty: qty})
}

// SetQuantity replaces the quantity of an existing entry, clamped to
// [1, 99]. Unknown ids are a no-op.
func (s *CartStore) SetQuantity(ctx context.Context, id string, qty int) CartSnapshot {
	return s.dispatch(ctx, cartAction{kind: actSetQty, id: domain.NormalizeID(id), qty: qty})
}

// Decrement lowers an entry's quantity by one; at quantity one the entry is
// removed entirely.
func (s *CartStore) Decrement(ctx context.Context, id string) CartSnapshot {
	return s.dispatch(ctx, cartAction{kind: actDecrement, id: domain.NormalizeID(id)})
}

func (s *CartStore) Remove(ctx context.Context, id string) CartSnapshot {
	return s.dispatch(ctx, cartAction{kind: actRemove, id: domain.NormalizeID(id)})
}

func (s *CartStore) Clear(ctx context.Context) CartSnapshot {
	return s.dispatch(ctx, cartAction{kind: actClear})
}

func (s *CartStore) Open(ctx context.Context) CartSnapshot {
	return s.dispatch(ctx, cartAction{kind: actOpen})
}

func (s *CartStore) Close(ctx context.Context) CartSnapshot {
	return s.dispatch(ctx, cartAction{kind: actClose})
}

func (s *CartStore) Toggle(ctx context.Context) CartSnapshot {
	return s.dispatch(ctx, cartAction{kind: actToggle})
}

// Snapshot returns the current derived view.
func (s *CartStore) Snapshot() CartSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return snapshotOf(s.state)
}

// Lines returns the ordered line entries.
func (s *CartStore) Lines() []CartLine { return s.Snapshot().Lines }

// Count is the cart badge number: the sum of all quantities.
func (s *CartStore) Count() int { return s.Snapshot().Count }

// Len is the number of distinct entries.
func (s *CartStore) Len() int { return len(s.Snapshot().Lines) }

// TotalPrice sums quantity times unit price over all entries.
func (s *CartStore) TotalPrice() decimal.Decimal { return s.Snapshot().Total }

func (s *CartStore) IsOpen() bool { return s.Snapshot().Open }

// Subscribe registers fn to run synchronously after every mutation with the
// fresh snapshot. The returned func unsubscribes.
func (s *CartStore) Subscribe(fn func(CartSnapshot)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

// CartManager hands out one hydrated store per owner. Stores are cached so
// every durable key keeps a single writer; across processes the slot stays
// last-write-wins by design.
type CartManager struct {
	repo port.CartRepository
	mets *metrics.Registry

	mu     sync.Mutex
	stores map[string]*CartStore
}

func NewCartManager(repo port.CartRepository, mets *metrics.Registry) *CartManager {
	if repo == nil {
		panic("cart: manager created without a repository")
	}
	return &CartManager{
		repo:   repo,
		mets:   mets,
		stores: make(map[string]*CartStore),
	}
}

// Store returns the cart for owner, hydrating it on first use. A blank owner
// maps to the shared guest cart.
func (m *CartManager) Store(ctx context.Context, owner string) *CartStore {
	o := strings.TrimSpace(owner)
	if o == "" {
		o = "guest"
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.stores[o]; ok {
		return s
	}
	s := NewCartStore(ctx, o, m.repo, m.mets)
	m.stores[o] = s
	return s
}
