// Package transfer implements the digest lifecycle state machine at the
// heart of RaptorBoost: checking whether content is already stored, and
// streaming new content into a partial file that is promoted atomically to
// the complete store once its SHA-256 digest is verified.
//
// The design is grounded on the teacher's internal/cache package: a
// caching reader tees writes to a temporary file while hashing, and
// promotes via os.Rename only after the digest checks out, discarding the
// temporary file on any failure.
package transfer

import (
	"crypto/sha256"
	"fmt"
	"io"
	"log/slog"
	"os"

	digestpkg "github.com/opencontainers/go-digest"

	"github.com/meigma/raptorboost/internal/lockregistry"
	"github.com/meigma/raptorboost/internal/pathstore"
)

// CheckResult describes the stored state of a digest.
type CheckResult struct {
	// Complete reports whether the digest is already fully stored.
	Complete bool
	// Offset is the number of bytes already present in the partial file.
	// Meaningless when Complete is true.
	Offset int64
}

// Controller implements the Transfer Controller component: CheckFile and
// StartTransfer.
type Controller struct {
	store  *pathstore.Store
	locks  *lockregistry.Registry
	logger *slog.Logger
}

// New creates a Controller backed by store, using locks to serialize
// concurrent transfers of the same digest.
func New(store *pathstore.Store, locks *lockregistry.Registry, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Controller{store: store, locks: locks, logger: logger}
}

// ValidateDigest reports whether digest is a well-formed, bare (unprefixed)
// SHA-256 hex digest.
func ValidateDigest(digest string) error {
	if err := digestpkg.Digest("sha256:" + digest).Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrPathSanitization, err)
	}
	return nil
}

// CheckFile reports whether digest is already stored complete, or how many
// bytes of it have already been uploaded to the partial store.
func (c *Controller) CheckFile(digest string) (CheckResult, error) {
	if err := ValidateDigest(digest); err != nil {
		return CheckResult{}, err
	}

	completePath, err := c.store.CompletePath(digest)
	if err != nil {
		return CheckResult{}, fmt.Errorf("%w: %v", ErrPathSanitization, err)
	}
	if _, err := os.Stat(completePath); err == nil {
		return CheckResult{Complete: true}, nil
	} else if !os.IsNotExist(err) {
		return CheckResult{}, fmt.Errorf("transfer: stat complete: %w", err)
	}

	partialPath, err := c.store.PartialPath(digest)
	if err != nil {
		return CheckResult{}, fmt.Errorf("%w: %v", ErrPathSanitization, err)
	}
	info, err := os.Stat(partialPath)
	if err != nil {
		if os.IsNotExist(err) {
			return CheckResult{Offset: 0}, nil
		}
		return CheckResult{}, fmt.Errorf("transfer: stat partial: %w", err)
	}
	return CheckResult{Offset: info.Size()}, nil
}

// StartTransfer opens (creating if necessary) digest's partial file for
// append, acquires its lock, and returns a Session positioned at the
// current end of the partial content. The entire existing partial content
// is re-read through a fresh SHA-256 hasher so that Session.Complete can
// verify the whole file's digest, not just the bytes written by this
// process: the hasher state from a prior run is never persisted across
// restarts.
//
// If digest is already complete, StartTransfer returns ErrAlreadyComplete.
func (c *Controller) StartTransfer(digest string, force bool) (*Session, error) {
	check, err := c.CheckFile(digest)
	if err != nil {
		return nil, err
	}
	if check.Complete {
		return nil, fmt.Errorf("%w: %s", ErrAlreadyComplete, digest)
	}

	lock, err := c.locks.Acquire(digest, force)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLockFailure, err)
	}

	partialPath, err := c.store.PartialPath(digest)
	if err != nil {
		lock.Release()
		return nil, fmt.Errorf("%w: %v", ErrPathSanitization, err)
	}
	completePath, err := c.store.CompletePath(digest)
	if err != nil {
		lock.Release()
		return nil, fmt.Errorf("%w: %v", ErrPathSanitization, err)
	}

	f, err := os.OpenFile(partialPath, os.O_CREATE|os.O_RDWR, 0o640)
	if err != nil {
		lock.Release()
		return nil, fmt.Errorf("transfer: open partial: %w", err)
	}

	hasher := sha256.New()
	existing, err := io.Copy(hasher, f)
	if err != nil {
		_ = f.Close()
		lock.Release()
		return nil, fmt.Errorf("transfer: rehash existing partial: %w", err)
	}

	return &Session{
		digest:       digest,
		partialPath:  partialPath,
		completePath: completePath,
		file:         f,
		hasher:       hasher,
		offset:       existing,
		lock:         lock,
		logger:       c.logger,
	}, nil
}
