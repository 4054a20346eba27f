package mockapi

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"
)

// LatencyFunc decide el retardo de cada operación.
type LatencyFunc func() time.Duration

// FailureFunc decide si una operación falla con un error transitorio antes de validar nada.
type FailureFunc func() bool

// lockedRand serializa el acceso a un *rand.Rand compartido por latencia, fallos y datos semilla.
type lockedRand struct {
	mu sync.Mutex
	r  *rand.Rand
}

func newLockedRand(seed uint64) *lockedRand {
	return &lockedRand{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (l *lockedRand) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Float64()
}

func (l *lockedRand) IntN(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.IntN(n)
}

// uniformLatency retardo uniforme en [min, max] con resolución de milisegundo.
func uniformLatency(rng *lockedRand, min, max time.Duration) LatencyFunc {
	if max < min {
		min, max = max, min
	}
	span := int((max - min) / time.Millisecond)
	return func() time.Duration {
		if span <= 0 {
			return min
		}
		return min + time.Duration(rng.IntN(span+1))*time.Millisecond
	}
}

// NoLatency resuelve cada operación inmediatamente.
func NoLatency() time.Duration { return 0 }

// FixedLatency retardo constante.
func FixedLatency(d time.Duration) LatencyFunc {
	return func() time.Duration { return d }
}

// NeverFail nunca inyecta fallos.
func NeverFail() bool { return false }

// AlwaysFail inyecta un fallo en cada operación.
func AlwaysFail() bool { return true }

// FailSequence devuelve, en orden, los resultados indicados y después no falla más.
func FailSequence(outcomes ...bool) FailureFunc {
	var mu sync.Mutex
	i := 0
	return func() bool {
		mu.Lock()
		defer mu.Unlock()
		if i >= len(outcomes) {
			return false
		}
		out := outcomes[i]
		i++
		return out
	}
}

// wait bloquea durante d o hasta que ctx se cancele.
func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
