package service

import (
	"encoding/json"

	"github.com/moodify-shop/moodify/internal/core/domain"
)

// The durable payload is {"items":[[id,{"item":...,"qty":n}],...]} — an
// ordered sequence of pairs, the same shape for v1 and v2 slots.
type cartPayload struct {
	Items []cartPair `json:"items"`
}

type cartPair struct {
	ID    domain.ProductID
	Entry domain.LineEntry
}

func (p cartPair) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]any{p.ID, p.Entry})
}

func (p *cartPair) UnmarshalJSON(b []byte) error {
	var raw [2]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	if err := json.Unmarshal(raw[0], &p.ID); err != nil {
		return err
	}
	return json.Unmarshal(raw[1], &p.Entry)
}

func encodeCartPayload(st cartState) ([]byte, error) {
	pairs := make([]cartPair, 0, len(st.order))
	for _, id := range st.order {
		if e, ok := st.entries[id]; ok {
			pairs = append(pairs, cartPair{ID: id, Entry: e})
		}
	}
	return json.Marshal(cartPayload{Items: pairs})
}

// decodeCartPayload rebuilds cart state from a stored payload. A payload
// that fails to parse reports ok=false and is treated as absent; individual
// pairs that violate invariants (blank id, quantity below one) are dropped
// rather than failing the whole cart.
func decodeCartPayload(raw []byte) (cartState, bool) {
	var payload cartPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return emptyCartState(), false
	}
	st := emptyCartState()
	for _, pair := range payload.Items {
		id := domain.NormalizeID(string(pair.ID))
		if id.IsZero() || pair.Entry.Qty < domain.MinQty {
			continue
		}
		entry := pair.Entry
		entry.Qty = domain.ClampQty(entry.Qty)
		if _, ok := st.entries[id]; !ok {
			st.order = append(st.order, id)
		}
		st.entries[id] = entry
	}
	return st, true
}
