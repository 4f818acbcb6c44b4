package domain

// LineEntry is one cart line: the product snapshot taken at add time plus a
// quantity in [1, 99]. The snapshot is deliberately not refreshed when the
// catalog changes; totals are computed from it as-is.
type LineEntry struct {
	Item Product `json:"item"`
	Qty  int     `json:"qty"`
}

// Quantity bounds enforced by the cart store.
const (
	MinQty = 1
	MaxQty = 99
)

// ClampQty forces q into [MinQty, MaxQty].
func ClampQty(q int) int {
	if q < MinQty {
		return MinQty
	}
	if q > MaxQty {
		return MaxQty
	}
	return q
}
