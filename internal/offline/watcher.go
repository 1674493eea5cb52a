package offline

import (
	"context"
	"time"
)

// AddNetworkListener registers a callback invoked on every connectivity
// transition observed by the watcher. The returned function unsubscribes.
func (m *Manager) AddNetworkListener(fn func(online bool)) func() {
	m.lmu.Lock()
	defer m.lmu.Unlock()

	id := m.nextID
	m.nextID++
	m.listeners[id] = fn

	return func() {
		m.lmu.Lock()
		defer m.lmu.Unlock()
		delete(m.listeners, id)
	}
}

// setOnline records a probe result and, on a transition, notifies the
// listeners. It reports whether this was an offline-to-online edge.
func (m *Manager) setOnline(online bool) bool {
	m.lmu.Lock()

	wasProbed, wasOnline := m.probed, m.online
	m.probed, m.online = true, online

	changed := !wasProbed || wasOnline != online
	cameOnline := changed && online && (!wasProbed || !wasOnline)

	var fns []func(online bool)
	if changed {
		fns = make([]func(online bool), 0, len(m.listeners))
		for _, fn := range m.listeners {
			fns = append(fns, fn)
		}
	}
	m.lmu.Unlock()

	for _, fn := range fns {
		fn(online)
	}
	return cameOnline
}

// StartWatcher probes reachability every interval until ctx is done.
// Transitions fire the registered listeners, and the offline-to-online edge
// triggers a queue drain. Draining is event-driven from this watcher, never
// from a bare timer.
func (m *Manager) StartWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			probeCtx, cancel := context.WithTimeout(ctx, interval)
			online := m.CheckNetworkStatus(probeCtx)
			cancel()

			if m.setOnline(online) {
				m.log.Info(ctx, "network restored, draining queue")
				if _, err := m.DrainQueue(ctx); err != nil {
					m.log.Error(ctx, "drain after reconnect failed", "error", err)
				}
			}

		case <-ctx.Done():
			return
		}
	}
}
