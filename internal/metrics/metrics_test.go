package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/GlebRadaev/packmarket/internal/domain"
)

func TestResult(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{name: "Success", err: nil, expected: ResultOK},
		{name: "Unknown pack", err: domain.ErrUnknownPack, expected: ResultNotFound},
		{name: "Invalid amount", err: domain.ErrInvalidAmount, expected: ResultInvalid},
		{name: "Insufficient funds", err: domain.ErrInsufficientFunds, expected: ResultForbidden},
		{name: "Serial conflict", err: domain.ErrSerialAllocationFailed, expected: ResultConflict},
		{name: "Unclassified", err: errors.New("boom"), expected: ResultInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Result(tt.err))
		})
	}
}

func TestMetrics_Observe(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveOpenPack(nil, 10*time.Millisecond)
	m.ObserveOpenPack(domain.ErrInsufficientFunds, time.Millisecond)
	m.ObserveMinted([]domain.OwnedItem{{Shiny: true}, {Shiny: false}, {Shiny: false}})
	m.ObserveNotify("chat", errors.New("timeout"))
	m.NotifyDropped.Inc()

	assert.Equal(t, 1.0, testutil.ToFloat64(m.OpenPackTotal.WithLabelValues(ResultOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.OpenPackTotal.WithLabelValues(ResultForbidden)))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.ItemsMinted.WithLabelValues("false")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.NotifyTotal.WithLabelValues("chat", ResultInternal)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.NotifyDropped))
}
