package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Registry struct {
	reg *prometheus.Registry

	CartMutations   prometheus.Counter
	CartNoops       prometheus.Counter
	PersistFailures prometheus.Counter
	HydrateMigrated prometheus.Counter
	HydrateCorrupt  prometheus.Counter

	OrdersPlaced   prometheus.Counter
	OrdersArchived prometheus.Counter
	OrdersDropped  prometheus.Counter
	CheckoutSec    prometheus.Histogram
}

func NewRegistry() *Registry {
	r := prometheus.NewRegistry()
	mutations := prometheus.NewCounter(prometheus.CounterOpts{Name: "moodify_cart_mutations_total"})
	noops := prometheus.NewCounter(prometheus.CounterOpts{Name: "moodify_cart_noops_total"})
	persistFailures := prometheus.NewCounter(prometheus.CounterOpts{Name: "moodify_cart_persist_failures_total"})
	migrated := prometheus.NewCounter(prometheus.CounterOpts{Name: "moodify_cart_hydrate_migrated_total"})
	corrupt := prometheus.NewCounter(prometheus.CounterOpts{Name: "moodify_cart_hydrate_corrupt_total"})

	placed := prometheus.NewCounter(prometheus.CounterOpts{Name: "moodify_orders_placed_total"})
	archived := prometheus.NewCounter(prometheus.CounterOpts{Name: "moodify_orders_archived_total"})
	dropped := prometheus.NewCounter(prometheus.CounterOpts{Name: "moodify_orders_dropped_total"})
	checkoutSec := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "moodify_checkout_seconds",
		Buckets: prometheus.DefBuckets,
	})

	r.MustRegister(mutations, noops, persistFailures, migrated, corrupt, placed, archived, dropped, checkoutSec)
	return &Registry{
		reg:             r,
		CartMutations:   mutations,
		CartNoops:       noops,
		PersistFailures: persistFailures,
		HydrateMigrated: migrated,
		HydrateCorrupt:  corrupt,
		OrdersPlaced:    placed,
		OrdersArchived:  archived,
		OrdersDropped:   dropped,
		CheckoutSec:     checkoutSec,
	}
}

func (r *Registry) Handler() http.Handler { return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{}) }
