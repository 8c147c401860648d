// Package schedule runs named repeating background jobs: the periodic
// channel broadcasts and any other housekeeping that ticks on an interval.
package schedule

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"
)

// Manager owns the background jobs. Each job gets its own goroutine and a
// cancel handle; names are unique.
type Manager struct {
	mu   sync.Mutex
	jobs map[string]context.CancelFunc
	wg   sync.WaitGroup
}

// NewManager returns an empty manager.
func NewManager() *Manager {
	return &Manager{jobs: make(map[string]context.CancelFunc)}
}

// Repeat starts a job that runs fn immediately and then every interval
// until the manager stops it or parent is cancelled. A duplicate name is an
// error.
func (m *Manager) Repeat(parent context.Context, name string, interval time.Duration, fn func(context.Context)) error {
	if interval <= 0 {
		return fmt.Errorf("job %q: interval must be positive", name)
	}

	m.mu.Lock()
	if _, exists := m.jobs[name]; exists {
		m.mu.Unlock()
		return fmt.Errorf("job %q is already running", name)
	}
	ctx, cancel := context.WithCancel(parent)
	m.jobs[name] = cancel
	m.mu.Unlock()

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		defer m.forget(name)

		log.Printf("[INFO] Job %s started, interval %s", name, interval)
		fn(ctx)

		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				log.Printf("[INFO] Job %s stopped", name)
				return
			case <-ticker.C:
				fn(ctx)
			}
		}
	}()
	return nil
}

// Stop cancels one job by name and reports whether it was running.
func (m *Manager) Stop(name string) bool {
	m.mu.Lock()
	cancel, ok := m.jobs[name]
	m.mu.Unlock()
	if ok {
		cancel()
	}
	return ok
}

// StopAll cancels every job and waits for the goroutines to exit.
func (m *Manager) StopAll() {
	m.mu.Lock()
	for _, cancel := range m.jobs {
		cancel()
	}
	m.mu.Unlock()
	m.wg.Wait()
}

// Running lists the names of live jobs.
func (m *Manager) Running() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	names := make([]string, 0, len(m.jobs))
	for name := range m.jobs {
		names = append(names, name)
	}
	return names
}

func (m *Manager) forget(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.jobs, name)
}
