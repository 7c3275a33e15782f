package utils

import (
	"sync"

	"github.com/campuspay/ledger"
	"github.com/campuspay/ledger/errors"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	panicsOnce sync.Once
	panics     *prometheus.CounterVec
)

func panicsCounter() *prometheus.CounterVec {
	panicsOnce.Do(func() {
		panics = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ledger",
			Name:      "recovered_panics_total",
			Help:      "Transactions aborted by a panic, by processing phase.",
		}, []string{"phase"})
		prometheus.MustRegister(panics)
	})
	return panics
}

// Recovery converts a panic raised while processing a transaction into an
// ErrPanic error. Recovered panics are logged and counted.
type Recovery struct{}

var _ ledger.Decorator = Recovery{}

// NewRecovery creates a Recovery decorator
func NewRecovery() Recovery {
	return Recovery{}
}

func (Recovery) Check(ctx ledger.Context, store ledger.KVStore, tx ledger.Tx, next ledger.Checker) (_ ledger.CheckResult, err error) {
	defer reportPanic(ctx, tx, "check", &err)
	defer errors.Recover(&err)
	return next.Check(ctx, store, tx)
}

func (Recovery) Deliver(ctx ledger.Context, store ledger.KVStore, tx ledger.Tx, next ledger.Deliverer) (_ ledger.DeliverResult, err error) {
	defer reportPanic(ctx, tx, "deliver", &err)
	defer errors.Recover(&err)
	return next.Deliver(ctx, store, tx)
}

// reportPanic must run after errors.Recover has converted the panic.
func reportPanic(ctx ledger.Context, tx ledger.Tx, phase string, err *error) {
	if !errors.ErrPanic.Is(*err) {
		return
	}
	panicsCounter().WithLabelValues(phase).Inc()

	path := "(missing)"
	if tx != nil {
		path = ledger.GetPath(tx)
	}
	ledger.GetLogger(ctx).Error("Recovered from panic", "phase", phase, "path", path, "err", *err)
}
