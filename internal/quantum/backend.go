package quantum

import (
	"context"
	"sync"

	"github.com/dgravitate/quantum-examples/internal/apperror"
)

// Backend is anything that can execute a circuit and report its load.
type Backend interface {
	Name() string
	Run(ctx context.Context, circuit *Circuit, shots int) (*Result, error)
	PendingJobs() int
}

// Registry tracks the available backends so callers can pick one by name
// or route to the least busy, the way a hosted runtime service would.
type Registry struct {
	mu       sync.RWMutex
	backends map[string]Backend
}

func NewRegistry(backends ...Backend) *Registry {
	r := &Registry{backends: make(map[string]Backend)}
	for _, b := range backends {
		r.backends[b.Name()] = b
	}
	return r
}

func (that *Registry) Register(b Backend) {
	that.mu.Lock()
	defer that.mu.Unlock()
	that.backends[b.Name()] = b
}

func (that *Registry) Get(name string) (Backend, bool) {
	that.mu.RLock()
	defer that.mu.RUnlock()
	b, ok := that.backends[name]
	return b, ok
}

// LeastBusy returns the backend with the fewest pending jobs. Ties break
// on name so the choice is stable.
func (that *Registry) LeastBusy() (Backend, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	var best Backend
	for _, b := range that.backends {
		if best == nil {
			best = b
			continue
		}
		if b.PendingJobs() < best.PendingJobs() ||
			(b.PendingJobs() == best.PendingJobs() && b.Name() < best.Name()) {
			best = b
		}
	}

	if best == nil {
		return nil, apperror.ErrNoBackendsRegistered
	}
	return best, nil
}
