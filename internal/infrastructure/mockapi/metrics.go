package mockapi

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Métricas Prometheus del backend simulado.
var (
	operationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "console_mockapi_operation_duration_seconds",
		Help:    "Duración de las operaciones del backend simulado, latencia inyectada incluida.",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 0.75, 1, 2},
	}, []string{"operation", "outcome"})

	injectedFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "console_mockapi_injected_failures_total",
		Help: "Fallos transitorios inyectados por operación.",
	}, []string{"operation"})
)

const (
	outcomeOK       = "ok"
	outcomeInjected = "injected_failure"
	outcomeError    = "error"
	outcomeCanceled = "canceled"
)
