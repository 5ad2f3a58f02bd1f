// Package health provides liveness and readiness probe endpoints. Checks run
// on demand when a probe endpoint is hit, each under its own timeout.
package health

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"sync/atomic"
	"time"
)

// CheckFunc reports the health of one component: nil means healthy.
type CheckFunc func(ctx context.Context) error

type namedCheck struct {
	name    string
	timeout time.Duration
	check   CheckFunc
}

// Health manages liveness and readiness checks for a service.
type Health struct {
	ready atomic.Bool

	mu        sync.RWMutex
	liveness  []namedCheck
	readiness []namedCheck
}

// New creates a Health instance. The service starts not-ready; call
// SetReady(true) once initialization has finished.
func New() *Health {
	return &Health{}
}

// AddLivenessCheck registers a liveness check. Liveness failure means the
// process should be restarted.
func (h *Health) AddLivenessCheck(name string, timeout time.Duration, check CheckFunc) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.liveness = append(h.liveness, namedCheck{name: name, timeout: timeout, check: check})
}

// AddReadinessCheck registers a readiness check. Readiness failure means the
// service should stop receiving traffic but keep running.
func (h *Health) AddReadinessCheck(name string, timeout time.Duration, check CheckFunc) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.readiness = append(h.readiness, namedCheck{name: name, timeout: timeout, check: check})
}

// SetReady flips the top-level readiness gate, used to drain traffic during
// shutdown independently of the individual checks.
func (h *Health) SetReady(ready bool) {
	h.ready.Store(ready)
}

// Ready reports the top-level readiness gate.
func (h *Health) Ready() bool {
	return h.ready.Load()
}

// LiveEndpoint serves the liveness probe.
func (h *Health) LiveEndpoint(w http.ResponseWriter, r *http.Request) {
	h.mu.RLock()
	checks := h.liveness
	h.mu.RUnlock()

	h.respond(w, r, checks)
}

// ReadyEndpoint serves the readiness probe. It fails immediately when the
// top-level gate is down, without running any checks.
func (h *Health) ReadyEndpoint(w http.ResponseWriter, r *http.Request) {
	if !h.ready.Load() {
		writeStatus(w, http.StatusServiceUnavailable, map[string]string{"service": "not ready"})
		return
	}

	h.mu.RLock()
	checks := h.readiness
	h.mu.RUnlock()

	h.respond(w, r, checks)
}

func (h *Health) respond(w http.ResponseWriter, r *http.Request, checks []namedCheck) {
	results := make(map[string]string, len(checks))
	healthy := true

	for _, c := range checks {
		ctx, cancel := context.WithTimeout(r.Context(), c.timeout)
		err := c.check(ctx)
		cancel()

		if err != nil {
			healthy = false
			results[c.name] = err.Error()
		} else {
			results[c.name] = "ok"
		}
	}

	status := http.StatusOK
	if !healthy {
		status = http.StatusServiceUnavailable
	}
	writeStatus(w, status, results)
}

func writeStatus(w http.ResponseWriter, status int, checks map[string]string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"status": http.StatusText(status),
		"checks": checks,
	})
}
