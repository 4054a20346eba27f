package usercache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	mutationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "console_usercache_mutations_total",
		Help: "Mutaciones optimistas resueltas por tipo y resultado.",
	}, []string{"kind", "state"})

	staleResponsesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "console_usercache_stale_responses_total",
		Help: "Respuestas descartadas por pertenecer a una petición reemplazada.",
	}, []string{"slot"})
)
