package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/GlebRadaev/packmarket/internal/domain"
)

const namespace = "packmarket"

const (
	ResultOK        = "ok"
	ResultInvalid   = "invalid"
	ResultNotFound  = "not_found"
	ResultForbidden = "forbidden"
	ResultConflict  = "conflict"
	ResultInternal  = "internal"
)

type Metrics struct {
	OpenPackTotal    *prometheus.CounterVec
	OpenPackDuration prometheus.Histogram
	ItemsMinted      *prometheus.CounterVec
	NotifyTotal      *prometheus.CounterVec
	NotifyDropped    prometheus.Counter
}

func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		OpenPackTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "open_pack_total",
				Help:      "Pack openings by result.",
			},
			[]string{"result"},
		),
		OpenPackDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "open_pack_duration_seconds",
				Help:      "Pack opening latency including the unit of work.",
				Buckets:   prometheus.DefBuckets,
			},
		),
		ItemsMinted: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "items_minted_total",
				Help:      "Owned items created by pack openings.",
			},
			[]string{"shiny"},
		),
		NotifyTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "rare_pull_notifications_total",
				Help:      "Rare pull side effects by action and result.",
			},
			[]string{"action", "result"},
		),
		NotifyDropped: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "rare_pull_notifications_dropped_total",
				Help:      "Rare pull notifications dropped because the queue was full.",
			},
		),
	}

	reg.MustRegister(m.OpenPackTotal, m.OpenPackDuration, m.ItemsMinted, m.NotifyTotal, m.NotifyDropped)
	return m
}

func (m *Metrics) ObserveOpenPack(err error, elapsed time.Duration) {
	m.OpenPackTotal.WithLabelValues(Result(err)).Inc()
	m.OpenPackDuration.Observe(elapsed.Seconds())
}

func (m *Metrics) ObserveMinted(items []domain.OwnedItem) {
	for _, item := range items {
		shiny := "false"
		if item.Shiny {
			shiny = "true"
		}
		m.ItemsMinted.WithLabelValues(shiny).Inc()
	}
}

func (m *Metrics) ObserveNotify(action string, err error) {
	m.NotifyTotal.WithLabelValues(action, Result(err)).Inc()
}

// Result maps an error onto its result label.
func Result(err error) string {
	if err == nil {
		return ResultOK
	}
	switch domain.Kind(err) {
	case domain.ErrInvalidInput:
		return ResultInvalid
	case domain.ErrNotFound:
		return ResultNotFound
	case domain.ErrForbidden:
		return ResultForbidden
	case domain.ErrConflict:
		return ResultConflict
	default:
		return ResultInternal
	}
}
