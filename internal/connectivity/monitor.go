package connectivity

import (
	"sync"
	"time"
)

// Monitor holds the sampled online flag and fires edge callbacks when the
// signal flips. The flag can be driven by the background probe or set
// directly (e.g. from an API call in tests and tooling).
type Monitor struct {
	mu        sync.Mutex
	online    bool
	onOnline  []func()
	onOffline []func()
}

func NewMonitor(initialOnline bool) *Monitor {
	return &Monitor{online: initialOnline}
}

func (m *Monitor) Online() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.online
}

func (m *Monitor) OnOnline(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onOnline = append(m.onOnline, fn)
}

func (m *Monitor) OnOffline(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onOffline = append(m.onOffline, fn)
}

// SetOnline updates the flag and, on an actual transition, runs the matching
// edge callbacks in registration order.
func (m *Monitor) SetOnline(online bool) {
	m.mu.Lock()
	if m.online == online {
		m.mu.Unlock()
		return
	}
	m.online = online
	var callbacks []func()
	if online {
		callbacks = append(callbacks, m.onOnline...)
	} else {
		callbacks = append(callbacks, m.onOffline...)
	}
	m.mu.Unlock()

	for _, fn := range callbacks {
		fn()
	}
}

// Watch samples probe on every tick until stop is closed.
func (m *Monitor) Watch(probe func() bool, interval time.Duration, stop <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			m.SetOnline(probe())
		}
	}
}
