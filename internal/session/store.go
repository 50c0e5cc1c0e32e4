// Package session persists save snapshots. The Store interface has three
// implementations: files for a solo playthrough, Redis for anything that
// has to survive a host, and memory for tests.
package session

import (
	"context"
	"errors"
)

// ErrSlotNotFound is returned when a named save slot does not exist.
var ErrSlotNotFound = errors.New("save slot not found")

// Store persists save blobs keyed by session and slot name.
type Store interface {
	Put(ctx context.Context, sessionID, slot string, blob []byte) error
	Get(ctx context.Context, sessionID, slot string) ([]byte, error)
	List(ctx context.Context, sessionID string) ([]string, error)
	Close() error
}

// Device adapts a Store to the engine's save collaborator, binding the
// session ID and a context the front end controls.
type Device struct {
	store     Store
	ctx       context.Context
	sessionID string
}

// NewDevice binds a store to one session.
func NewDevice(ctx context.Context, store Store, sessionID string) *Device {
	return &Device{store: store, ctx: ctx, sessionID: sessionID}
}

func (d *Device) Store(name string, blob []byte) error {
	return d.store.Put(d.ctx, d.sessionID, name, blob)
}

func (d *Device) Fetch(name string) ([]byte, error) {
	return d.store.Get(d.ctx, d.sessionID, name)
}
