package browser

import (
	"log/slog"
	"sync"
)

// Pool owns at most one live browser instance per engine variant. Instances
// are launched lazily on first acquire and relaunched when a liveness check
// finds them disconnected.
//
// Launches are serialized per variant: two concurrent requests for a
// never-yet-launched variant block on the same lock, so exactly one launch
// happens and both receive the same instance.
type Pool struct {
	backend Backend

	mu       sync.Mutex
	browsers map[Variant]Browser
	launchMu map[Variant]*sync.Mutex
}

// NewPool creates an empty pool over the given backend.
func NewPool(backend Backend) *Pool {
	return &Pool{
		backend:  backend,
		browsers: make(map[Variant]Browser),
		launchMu: make(map[Variant]*sync.Mutex),
	}
}

// Acquire returns the live browser for variant, launching or relaunching
// as needed. The returned browser is shared across requests; callers own
// only the pages they open on it.
func (p *Pool) Acquire(variant Variant) (Browser, error) {
	lock := p.variantLock(variant)
	lock.Lock()
	defer lock.Unlock()

	p.mu.Lock()
	b, ok := p.browsers[variant]
	p.mu.Unlock()

	if ok {
		if b.IsConnected() {
			return b, nil
		}
		// Disconnected instances are discarded, never reused. Closing
		// is best-effort: the connection is already gone.
		slog.Warn("browser disconnected, relaunching", "engine", string(variant))
		if err := b.Close(); err != nil {
			slog.Debug("closing disconnected browser", "engine", string(variant), "error", err)
		}
	}

	launched, err := p.backend.Launch(variant)
	if err != nil {
		p.mu.Lock()
		delete(p.browsers, variant)
		p.mu.Unlock()
		return nil, err
	}
	slog.Info("browser launched", "engine", string(variant))

	p.mu.Lock()
	p.browsers[variant] = launched
	p.mu.Unlock()

	return launched, nil
}

// LiveEngines lists the variants that currently hold an instance.
func (p *Pool) LiveEngines() []string {
	p.mu.Lock()
	defer p.mu.Unlock()

	engines := make([]string, 0, len(p.browsers))
	for v := range p.browsers {
		engines = append(engines, string(v))
	}
	return engines
}

// Shutdown closes every pooled browser. Close failures are logged, not
// escalated: shutdown must always complete.
func (p *Pool) Shutdown() {
	p.mu.Lock()
	defer p.mu.Unlock()

	for variant, b := range p.browsers {
		if err := b.Close(); err != nil {
			slog.Warn("closing pooled browser", "engine", string(variant), "error", err)
		}
		delete(p.browsers, variant)
	}
}

func (p *Pool) variantLock(variant Variant) *sync.Mutex {
	p.mu.Lock()
	defer p.mu.Unlock()

	lock, ok := p.launchMu[variant]
	if !ok {
		lock = &sync.Mutex{}
		p.launchMu[variant] = lock
	}
	return lock
}
