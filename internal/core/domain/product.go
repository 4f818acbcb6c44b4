package domain

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// ProductID is a catalog identifier in canonical string form. The catalog
// ships ids as JSON numbers while callers often echo them back as strings;
// both decode to the same canonical value, so 7 and "7" address the same
// cart entry.
type ProductID string

// NormalizeID canonicalizes a raw identifier. Numeric forms collapse to
// their shortest decimal representation, everything else is trimmed.
func NormalizeID(raw string) ProductID {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	if n, err := strconv.ParseFloat(s, 64); err == nil {
		return ProductID(strconv.FormatFloat(n, 'f', -1, 64))
	}
	return ProductID(s)
}

func (id ProductID) IsZero() bool { return strings.TrimSpace(string(id)) == "" }

func (id *ProductID) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*id = NormalizeID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*id = NormalizeID(n.String())
	return nil
}

// Price is a unit price in dollars. Decoding is forgiving: numbers and
// numeric strings parse normally, anything else counts as zero so one bad
// catalog row can never poison cart totals.
type Price struct {
	decimal.Decimal
}

func PriceFromString(s string) Price {
	return Price{decimal.RequireFromString(s)}
}

func (p *Price) UnmarshalJSON(b []byte) error {
	var d decimal.Decimal
	if err := json.Unmarshal(b, &d); err != nil {
		p.Decimal = decimal.Zero
		return nil
	}
	p.Decimal = d
	return nil
}

// Product is an immutable catalog record. The cart stores a snapshot of it
// and never mutates it.
type Product struct {
	ID       ProductID `json:"id"`
	Mood     string    `json:"mood,omitempty"`
	Name     string    `json:"name"`
	Price    Price     `json:"price"`
	Image    string    `json:"image,omitempty"`
	Tagline  string    `json:"tagline,omitempty"`
	Tags     []string  `json:"tags,omitempty"`
	Rating   float64   `json:"rating,omitempty"`
	Reviews  int       `json:"reviews,omitempty"`
	Category string    `json:"category,omitempty"`
}
