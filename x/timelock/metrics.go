package timelock

import (
	"github.com/iov-one/custody/coin"
	"github.com/iov-one/custody/errors"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	namespace = "custody"
	subsystem = "timelock"
)

// Metrics collects statistics of vault operations. A nil *Metrics is valid
// and records nothing.
type Metrics struct {
	operations *prometheus.CounterVec
	released   *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with given
// registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "operations_total",
			Help:      "Number of vault operations, by operation and result code.",
		}, []string{"op", "result"}),
		released: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "released_total",
			Help:      "Amount of funds released to beneficiaries, by asset.",
		}, []string{"asset"}),
	}
	reg.MustRegister(m.operations, m.released)
	return m
}

func (m *Metrics) observe(op string, err error) {
	if m == nil {
		return
	}
	m.operations.WithLabelValues(op, resultLabel(err)).Inc()
}

func (m *Metrics) observeRelease(amount coin.Coin) {
	if m == nil {
		return
	}
	value := float64(amount.Whole) + float64(amount.Fractional)/float64(coin.FracUnit)
	m.released.WithLabelValues(amount.Ticker).Add(value)
}

func resultLabel(err error) string {
	switch {
	case err == nil:
		return "ok"
	case ErrTransferFailed.Is(err):
		return "transfer_failed"
	case ErrInvalidSchedule.Is(err):
		return "invalid_schedule"
	case ErrScheduleRegression.Is(err):
		return "schedule_regression"
	case ErrNotYetReleasable.Is(err):
		return "not_yet_releasable"
	case ErrNothingToRelease.Is(err):
		return "nothing_to_release"
	case errors.ErrUnauthorized.Is(err):
		return "unauthorized"
	case errors.ErrNotFound.Is(err):
		return "not_found"
	default:
		return "error"
	}
}
