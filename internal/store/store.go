// Package store holds the authoritative in-memory copy of the machine list
// for a running session. Mutations replace the whole snapshot, so readers
// never observe a partially-updated machine.
package store

import (
	"context"
	"sync"

	"equipment-maintenance-backend/internal/access"
	"equipment-maintenance-backend/internal/model"
)

// Persister commits a snapshot to durable storage. The store swaps its
// in-memory snapshot only after Persist succeeds; a failed persist leaves
// the previous snapshot readable.
type Persister interface {
	Persist(ctx context.Context, machines []model.Machine) error
}

// Store is the single source of truth for one running session.
type Store struct {
	mu        sync.RWMutex
	machines  []model.Machine
	session   access.Session
	persister Persister
	bootstrap func(m *model.Machine) error
}

// New creates an empty store backed by the given persister.
func New(p Persister) *Store {
	return &Store{
		persister: p,
		session:   access.Anonymous(),
	}
}

// Seed replaces the snapshot without persisting, used once at startup with
// data that already came from durable storage.
func (s *Store) Seed(machines []model.Machine) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.machines = cloneAll(machines)
}

// Machines returns a deep copy of the current machine list.
func (s *Store) Machines() []model.Machine {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneAll(s.machines)
}

// SetScheduleBootstrap installs a hook that fills in missing default
// schedules on a machine. The hook must be idempotent; it runs inside the
// usual mutation path the first time a machine is read without a schedule
// for some equipment it carries.
func (s *Store) SetScheduleBootstrap(fn func(m *model.Machine) error) {
	s.bootstrap = fn
}

// Machine returns a deep copy of the machine with the given id, lazily
// attaching default schedules on first read when a bootstrap is installed.
func (s *Store) Machine(id string) (model.Machine, error) {
	m, err := s.snapshot(id)
	if err != nil {
		return model.Machine{}, err
	}
	if s.bootstrap == nil || !missingSchedule(m) {
		return m, nil
	}
	// Reads carry no context; the commit is local.
	if err := s.MutateMachine(context.Background(), id, s.bootstrap); err != nil {
		return model.Machine{}, err
	}
	return s.snapshot(id)
}

func (s *Store) snapshot(id string) (model.Machine, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, m := range s.machines {
		if m.ID == id {
			return m.Clone(), nil
		}
	}
	return model.Machine{}, &model.NotFoundError{Entity: "machine", ID: id}
}

func missingSchedule(m model.Machine) bool {
	for _, eq := range m.Equipment {
		if m.Schedule(eq.Type) == nil {
			return true
		}
	}
	return false
}

// Session returns the active session.
func (s *Store) Session() access.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session
}

// SetSession replaces the active session.
func (s *Store) SetSession(session access.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = session
}

// Mutate applies fn to a copy of the current snapshot, persists the result,
// and swaps it in. fn returning an error rejects the mutation before any
// side effect; a persist failure discards the new snapshot so the previous
// one stays readable.
func (s *Store) Mutate(ctx context.Context, fn func(machines []model.Machine) ([]model.Machine, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := fn(cloneAll(s.machines))
	if err != nil {
		return err
	}
	if err := s.persister.Persist(ctx, next); err != nil {
		return err
	}
	s.machines = next
	return nil
}

// MutateMachine applies fn to a copy of one machine and commits the
// resulting snapshot in a single write.
func (s *Store) MutateMachine(ctx context.Context, id string, fn func(m *model.Machine) error) error {
	return s.Mutate(ctx, func(machines []model.Machine) ([]model.Machine, error) {
		for i := range machines {
			if machines[i].ID == id {
				if err := fn(&machines[i]); err != nil {
					return nil, err
				}
				return machines, nil
			}
		}
		return nil, &model.NotFoundError{Entity: "machine", ID: id}
	})
}

func cloneAll(machines []model.Machine) []model.Machine {
	out := make([]model.Machine, len(machines))
	for i, m := range machines {
		out[i] = m.Clone()
	}
	return out
}
