package escrow

import (
	"sync"

	"github.com/campuspay/ledger/errors"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	metricsOnce sync.Once
	transitions *prometheus.CounterVec
)

// transitionsCounter returns the counter of processed escrow operations,
// registering it with the default registry on first use.
func transitionsCounter() *prometheus.CounterVec {
	metricsOnce.Do(func() {
		transitions = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "escrow",
			Name:      "transitions_total",
			Help:      "Escrow operations delivered, by operation and result.",
		}, []string{"op", "result"})
		prometheus.MustRegister(transitions)
	})
	return transitions
}

func observe(op string, err error) {
	transitionsCounter().WithLabelValues(op, resultLabel(err)).Inc()
}

func resultLabel(err error) string {
	switch {
	case err == nil:
		return "ok"
	case ErrAlreadyActive.Is(err):
		return "already_active"
	case ErrSelfDealing.Is(err):
		return "self_dealing"
	case ErrNotActive.Is(err):
		return "not_active"
	case errors.ErrInvalidAmount.Is(err):
		return "invalid_amount"
	case errors.ErrUnauthorized.Is(err):
		return "unauthorized"
	case errors.ErrInsufficientAmount.Is(err):
		return "insufficient_funds"
	case errors.ErrNotFound.Is(err):
		return "not_found"
	default:
		return "error"
	}
}
