package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/moodify-shop/moodify/internal/core/domain"
	"github.com/moodify-shop/moodify/internal/metrics"
	"github.com/moodify-shop/moodify/internal/port"
)

var (
	ErrInvalidForm  = errors.New("incomplete checkout form")
	ErrNothingToPay = errors.New("nothing to pay")
)

// Pricing rules, mirrored by the storefront UI.
var (
	taxRate     = decimal.RequireFromString("0.07")
	freeShipMin = decimal.NewFromInt(50)
	flatShip    = decimal.NewFromInt(5)
	promoRate   = decimal.RequireFromString("0.10")
)

const (
	promoCode = "MOOD10"

	// DefaultProcessingDelay mimics payment processing before an order is
	// accepted.
	DefaultProcessingDelay = 900 * time.Millisecond
)

// Quote breaks an order total down the way the summary panel shows it.
type Quote struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Discount decimal.Decimal `json:"discount"`
	Shipping decimal.Decimal `json:"shipping"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
	Promo    string          `json:"promo,omitempty"`
}

// PriceQuote prices the given cart lines. An unknown promo code yields zero
// discount, never an error. Shipping is free above the threshold and for an
// empty cart; tax applies after discount and shipping.
func PriceQuote(lines []CartLine, promo string) Quote {
	subtotal := decimal.Zero
	for _, l := range lines {
		subtotal = subtotal.Add(l.Item.Price.Decimal.Mul(decimal.NewFromInt(int64(l.Qty))))
	}

	code := strings.ToUpper(strings.TrimSpace(promo))
	discount := decimal.Zero
	applied := ""
	if code == promoCode {
		discount = subtotal.Mul(promoRate).Round(2)
		applied = code
	}

	shipping := flatShip
	if subtotal.IsZero() || subtotal.Sub(discount).GreaterThanOrEqual(freeShipMin) {
		shipping = decimal.Zero
	}

	tax := subtotal.Sub(discount).Add(shipping).Mul(taxRate).Round(2)
	total := subtotal.Sub(discount).Add(shipping).Add(tax).Round(2)
	if total.IsNegative() {
		total = decimal.Zero
	}

	return Quote{
		Subtotal: subtotal,
		Discount: discount,
		Shipping: shipping,
		Tax:      tax,
		Total:    total,
		Promo:    applied,
	}
}

// CheckoutForm carries the contact, shipping and payment fields. Card data
// is only length-checked and never stored.
type CheckoutForm struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Address string `json:"address"`
	City    string `json:"city"`
	Region  string `json:"region"`
	Zip     string `json:"zip"`
	Card    string `json:"card"`
	Exp     string `json:"exp"`
	CVC     string `json:"cvc"`
}

func (f CheckoutForm) Valid() bool {
	if f.Name == "" || f.Email == "" || f.Address == "" || f.City == "" || f.Zip == "" {
		return false
	}
	if len(strings.ReplaceAll(f.Card, " ", "")) < 12 {
		return false
	}
	return f.Exp != "" && f.CVC != ""
}

// CheckoutService runs the simulated order flow: price the cart, wait out a
// fake processing delay, queue the order for archiving, then clear the cart.
// It reads the cart through snapshots only; Clear after a successful submit
// is its one cart mutation.
type CheckoutService struct {
	sink  port.NotificationSink
	mets  *metrics.Registry
	delay time.Duration
	queue chan domain.Order
}

func NewCheckoutService(sink port.NotificationSink, mets *metrics.Registry, delay time.Duration, queueSize int) *CheckoutService {
	return &CheckoutService{
		sink:  sink,
		mets:  mets,
		delay: delay,
		queue: make(chan domain.Order, queueSize),
	}
}

// PlaceOrder finalizes a checkout for the given cart. The processing wait
// aborts when ctx is cancelled, in which case the cart is left untouched.
func (s *CheckoutService) PlaceOrder(ctx context.Context, cart *CartStore, form CheckoutForm, promo string) (domain.Order, error) {
	start := time.Now()
	snap := cart.Snapshot()
	quote := PriceQuote(snap.Lines, promo)

	if !form.Valid() {
		return domain.Order{}, ErrInvalidForm
	}
	if !quote.Total.IsPositive() {
		return domain.Order{}, ErrNothingToPay
	}

	if s.delay > 0 {
		t := time.NewTimer(s.delay)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return domain.Order{}, ctx.Err()
		case <-t.C:
		}
	}

	now := time.Now()
	lines := make([]domain.OrderLine, 0, len(snap.Lines))
	for _, l := range snap.Lines {
		lines = append(lines, domain.OrderLine{
			ProductID: l.Item.ID,
			Name:      l.Item.Name,
			UnitPrice: l.Item.Price.Decimal,
			Qty:       l.Qty,
			LineTotal: l.Item.Price.Decimal.Mul(decimal.NewFromInt(int64(l.Qty))),
		})
	}

	order := domain.Order{
		ID:        newOrderID(now),
		Owner:     cart.Owner(),
		Lines:     lines,
		PromoCode: quote.Promo,
		Subtotal:  quote.Subtotal,
		Discount:  quote.Discount,
		Shipping:  quote.Shipping,
		Tax:       quote.Tax,
		Total:     quote.Total,
		Status:    domain.OrderStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	s.queue <- order
	cart.Clear(ctx)
	s.notify(ctx, domain.Notification{Message: "Order placed! 🎉", Kind: domain.NotifySuccess})

	if s.mets != nil {
		s.mets.OrdersPlaced.Inc()
		s.mets.CheckoutSec.Observe(time.Since(start).Seconds())
	}
	return order, nil
}

func (s *CheckoutService) notify(ctx context.Context, n domain.Notification) {
	if s.sink == nil {
		return
	}
	if err := s.sink.Publish(ctx, n); err != nil {
		log.Printf("checkout: notification dropped: %v", err)
	}
}

func (s *CheckoutService) GetOrderQueue() <-chan domain.Order {
	return s.queue
}

func (s *CheckoutService) CloseQueue() {
	close(s.queue)
}

// newOrderID builds ids like MOOD-4F2A-0931: a short random fragment plus
// the trailing digits of the order's timestamp.
func newOrderID(now time.Time) string {
	frag := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:4])
	ms := strconv.FormatInt(now.UnixMilli(), 10)
	return fmt.Sprintf("MOOD-%s-%s", frag, ms[len(ms)-4:])
}
