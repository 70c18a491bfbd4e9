// Package lockregistry implements the advisory per-digest locking used to
// keep concurrent transfers of the same content from writing to the same
// partial file. Locks are plain sentinel files created with O_EXCL, the same
// technique the original RaptorBoost service used (a Unix create_new file
// open) and the pattern the teacher codebase uses for its own TOCTOU-aware
// file checks.
package lockregistry

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/meigma/raptorboost/internal/pathstore"
)

// ErrLocked is returned by Acquire when a digest is already locked and
// force was not requested.
var ErrLocked = errors.New("lockregistry: digest is locked")

// Registry issues and tracks per-digest lock sentinel files under a
// pathstore.Store's lock directory.
type Registry struct {
	store  *pathstore.Store
	logger *slog.Logger
}

// New creates a Registry and purges any lock sentinels left over from a
// prior process. Locks never survive a server restart: whatever held them
// is gone, so stale sentinels would otherwise wedge every future transfer
// of that digest.
func New(store *pathstore.Store, logger *slog.Logger) (*Registry, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	r := &Registry{store: store, logger: logger}
	if err := r.purgeStale(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Registry) purgeStale() error {
	entries, err := os.ReadDir(r.store.LockDir())
	if err != nil {
		return fmt.Errorf("lockregistry: list lock dir: %w", err)
	}
	for _, e := range entries {
		path, err := r.store.LockPath(e.Name())
		if err != nil {
			continue
		}
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			r.logger.Warn("failed to purge stale lock", "digest", e.Name(), "error", err)
		}
	}
	return nil
}

// Handle represents an acquired lock. Release is idempotent and safe to
// call multiple times, typically via defer.
type Handle struct {
	path     string
	released bool
}

// Release removes the lock sentinel. Calling Release more than once, or on
// a zero Handle, is a no-op.
func (h *Handle) Release() {
	if h == nil || h.released || h.path == "" {
		return
	}
	h.released = true
	_ = os.Remove(h.path)
}

// Acquire creates the lock sentinel for digest. If force is true and a lock
// already exists, Acquire removes it and retries exactly once. force is a
// best-effort operator escape hatch: it can race with the process that
// actually holds the lock and evict it out from under an in-progress
// transfer, so it is never a safe concurrency primitive by itself.
func (r *Registry) Acquire(digest string, force bool) (*Handle, error) {
	path, err := r.store.LockPath(digest)
	if err != nil {
		return nil, err
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o640)
	if err != nil {
		if !os.IsExist(err) {
			return nil, fmt.Errorf("lockregistry: create lock: %w", err)
		}
		if !force {
			return nil, fmt.Errorf("%w: %s", ErrLocked, digest)
		}
		r.logger.Warn("forcing eviction of existing lock", "digest", digest)
		if rmErr := os.Remove(path); rmErr != nil && !os.IsNotExist(rmErr) {
			return nil, fmt.Errorf("lockregistry: evict existing lock: %w", rmErr)
		}
		f, err = os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o640)
		if err != nil {
			return nil, fmt.Errorf("lockregistry: create lock after force: %w", err)
		}
	}
	_ = f.Close()

	return &Handle{path: path}, nil
}
