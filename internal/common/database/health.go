// internal/common/database/health.go
package database

import (
	"context"
	"sort"
	"sync"
	"time"
)

// Pinger is satisfied by every store client in this package.
type Pinger interface {
	Ping(ctx context.Context) error
}

// StoreStatus is one row of the readiness report.
type StoreStatus struct {
	Name     string `json:"name"`
	Healthy  bool   `json:"healthy"`
	Required bool   `json:"required"`
	Error    string `json:"error,omitempty"`
}

// Health pings the stores the worker was started with. Only required
// stores make the process unready; the rest degrade a feature (the cache
// falls back to process memory, the catalog is loaded once at startup).
type Health struct {
	mu      sync.RWMutex
	stores  map[string]Pinger
	require map[string]bool
	timeout time.Duration
}

func NewHealth(timeout time.Duration) *Health {
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &Health{stores: map[string]Pinger{}, require: map[string]bool{}, timeout: timeout}
}

func (h *Health) Register(name string, p Pinger, required bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.stores[name] = p
	h.require[name] = required
}

// Check pings every store concurrently and reports them sorted by name.
// ready is false when a required store failed.
func (h *Health) Check(ctx context.Context) (statuses []StoreStatus, ready bool) {
	h.mu.RLock()
	names := make([]string, 0, len(h.stores))
	for name := range h.stores {
		names = append(names, name)
	}
	h.mu.RUnlock()
	sort.Strings(names)

	statuses = make([]StoreStatus, len(names))
	var wg sync.WaitGroup
	for i, name := range names {
		h.mu.RLock()
		p, required := h.stores[name], h.require[name]
		h.mu.RUnlock()

		statuses[i] = StoreStatus{Name: name, Required: required}
		wg.Add(1)
		go func(st *StoreStatus, p Pinger) {
			defer wg.Done()
			pctx, cancel := context.WithTimeout(ctx, h.timeout)
			defer cancel()
			if err := p.Ping(pctx); err != nil {
				st.Error = err.Error()
				return
			}
			st.Healthy = true
		}(&statuses[i], p)
	}
	wg.Wait()

	ready = true
	for _, st := range statuses {
		if st.Required && !st.Healthy {
			ready = false
		}
	}
	return statuses, ready
}
