// Package session holds the "current user" slot: a denormalized
// snapshot of the signed-in account. One session is active at a time;
// sign-in sets it, sign-out clears it. With "remember me" the snapshot
// goes to a durable store and survives a restart, otherwise it lives in
// memory for the lifetime of the process.
package session

import (
	"context"
	"encoding/json"
	"sync"
)

// Snapshot is the denormalized copy of the user's public fields held by
// the session. It never contains the password hash.
type Snapshot struct {
	UserID         string `json:"user_id"`
	Email          string `json:"email"`
	Name           string `json:"name"`
	ProfilePicture string `json:"profile_picture"`
}

// Store persists the serialized snapshot under a single slot.
type Store interface {
	// Load returns the stored bytes, or (nil, nil) when the slot is empty.
	Load(ctx context.Context) ([]byte, error)

	// Save writes the slot.
	Save(ctx context.Context, data []byte) error

	// Clear empties the slot; clearing an empty slot is a no-op.
	Clear(ctx context.Context) error
}

// Manager owns the session lifecycle over a volatile and a durable
// store. Reads prefer the volatile copy.
type Manager struct {
	mu       sync.Mutex
	volatile Store
	durable  Store
}

func NewManager(durable Store) *Manager {
	return &Manager{
		volatile: NewMemoryStore(),
		durable:  durable,
	}
}

// Set establishes the session. With remember the snapshot is written to
// the durable store so it survives a restart. The other store is
// cleared so at most one session exists across both slots.
func (m *Manager) Set(ctx context.Context, snap *Snapshot, remember bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}

	if remember {
		if err := m.volatile.Clear(ctx); err != nil {
			return err
		}
		return m.durable.Save(ctx, data)
	}
	if err := m.durable.Clear(ctx); err != nil {
		return err
	}
	return m.volatile.Save(ctx, data)
}

// Current returns the active session snapshot, or nil when signed out.
// Missing or corrupt stored data is treated as "no session", never an
// error.
func (m *Manager) Current(ctx context.Context) *Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, store := range []Store{m.volatile, m.durable} {
		data, err := store.Load(ctx)
		if err != nil || len(data) == 0 {
			continue
		}

		var snap Snapshot
		if err := json.Unmarshal(data, &snap); err != nil || snap.UserID == "" {
			continue
		}
		return &snap
	}
	return nil
}

// Clear signs the session out from both stores. Idempotent.
func (m *Manager) Clear(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	_ = m.volatile.Clear(ctx)
	_ = m.durable.Clear(ctx)
}
