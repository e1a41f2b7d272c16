// Package syncer keeps the durable local cache and the remote store in step
// with the in-memory snapshot. The local commit is authoritative; the remote
// store is a lagging mirror written best-effort in the background.
package syncer

import (
	"context"
	"log"
	"time"

	"equipment-maintenance-backend/internal/cache"
	"equipment-maintenance-backend/internal/model"
	"equipment-maintenance-backend/internal/remote"
)

// Sources a startup snapshot can come from.
const (
	SourceRemote = "remote"
	SourceCache  = "cache"
	SourceEmpty  = "empty"
)

// Manager persists snapshots local-first and replays them to the remote
// store with bounded retries.
type Manager struct {
	local  *cache.Cache
	remote remote.Store
	logger *log.Logger

	attempts int
	backoff  time.Duration

	// pending holds at most one snapshot: a newer one replaces an unsent
	// older one, so the remote only ever needs the latest state.
	pending chan []model.Machine
}

// NewManager creates a sync manager. attempts and backoff bound the remote
// retry loop.
func NewManager(local *cache.Cache, rs remote.Store, attempts int, backoff time.Duration, logger *log.Logger) *Manager {
	if logger == nil {
		logger = log.Default()
	}
	if attempts <= 0 {
		attempts = 3
	}
	return &Manager{
		local:    local,
		remote:   rs,
		logger:   logger,
		attempts: attempts,
		backoff:  backoff,
		pending:  make(chan []model.Machine, 1),
	}
}

// Persist writes the snapshot to the local cache synchronously and queues a
// best-effort remote push. Only the cache write can fail the mutation.
func (m *Manager) Persist(ctx context.Context, machines []model.Machine) error {
	if err := m.local.SaveMachines(ctx, machines); err != nil {
		return &model.PersistenceError{Op: "local cache write", Err: err}
	}
	m.enqueue(machines)
	return nil
}

func (m *Manager) enqueue(machines []model.Machine) {
	for {
		select {
		case m.pending <- machines:
			return
		default:
			// Drop the stale snapshot and queue the newer one.
			select {
			case <-m.pending:
			default:
			}
		}
	}
}

// Run drains the pending queue until the context is cancelled. It is meant
// to run in its own goroutine; Persist never blocks on it.
func (m *Manager) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case snapshot := <-m.pending:
			m.push(ctx, snapshot)
		}
	}
}

// push retries the remote write with linear backoff, then gives up with a
// logged warning. The local cache stays authoritative either way.
func (m *Manager) push(ctx context.Context, snapshot []model.Machine) {
	var lastErr error
	for attempt := 1; attempt <= m.attempts; attempt++ {
		lastErr = m.remote.SaveSnapshot(ctx, snapshot)
		if lastErr == nil {
			return
		}
		if attempt < m.attempts {
			select {
			case <-ctx.Done():
				return
			case <-time.After(m.backoff * time.Duration(attempt)):
			}
		}
	}
	warn := &model.SyncWarning{Attempts: m.attempts, Err: lastErr}
	m.logger.Printf("Warning: %v", warn)
}

// Load seeds a startup snapshot: remote first, local cache on remote
// failure, empty when neither is reachable.
func (m *Manager) Load(ctx context.Context) ([]model.Machine, string) {
	machines, err := m.remote.FetchMachines(ctx)
	if err == nil {
		return machines, SourceRemote
	}
	m.logger.Printf("remote store unavailable, falling back to cache: %v", err)

	machines, err = m.local.LoadMachines(ctx)
	if err == nil {
		return machines, SourceCache
	}
	m.logger.Printf("local cache unreadable, starting empty: %v", err)
	return nil, SourceEmpty
}
