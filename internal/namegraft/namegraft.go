// Package namegraft implements the Name Grafter: attaching human-readable
// relative paths to already-stored content by creating a named transfer
// view — a directory of symlinks under transfers/<name>/ that point back
// into the complete store.
//
// The atomic-symlink-placement technique is grounded on the teacher's
// internal/archive extractor, which creates a new symlink at a temporary
// sibling path and renames it into place rather than removing and
// recreating the target directly, to avoid a window where a concurrent
// reader could observe a missing (or attacker-controlled) path.
package namegraft

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/meigma/raptorboost/internal/pathstore"
	"github.com/meigma/raptorboost/internal/transfer"
)

// ErrTransferExists is returned by AssignNames when the requested transfer
// view directory already exists and force was not requested.
var ErrTransferExists = errors.New("namegraft: transfer view already exists")

// transferNameLayout is the default transfer view name when the caller
// supplies none: server local time, matching the original service.
const transferNameLayout = "2006-01-02_15:04:05"

// Mapping requests that digest be given the relative path name within the
// transfer view.
type Mapping struct {
	Digest string
	Name   string
}

// Result reports the outcome of grafting a single Mapping.
type Result struct {
	Name string
	Err  error
}

// Grafter implements the Name Grafter component.
type Grafter struct {
	store  *pathstore.Store
	logger *slog.Logger
}

// New creates a Grafter rooted at store.
func New(store *pathstore.Store, logger *slog.Logger) *Grafter {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Grafter{store: store, logger: logger}
}

// AssignNames creates the transfer view transfers/<name>/ (defaulting name
// to the current timestamp if empty) and grafts each mapping into it,
// returning one Result per mapping. A failure on one mapping does not abort
// the rest: this mirrors the RPC's per-file status list, where the caller
// needs to know exactly which names succeeded.
//
// If force is true, a pre-existing transfer view directory of the same name
// is removed (best-effort) before a fresh one is created; otherwise a
// colliding name fails the whole call with ErrTransferExists. This removal
// is not coordinated with any other request reading that view: per design,
// force is a caller escape hatch for cleaning up stale transfer views, not
// a safe concurrent operation.
func (g *Grafter) AssignNames(transferName string, mappings []Mapping, force bool) ([]Result, error) {
	if transferName == "" {
		transferName = time.Now().Format(transferNameLayout)
	}

	transferDir, err := g.store.TransferPath(transferName)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", transfer.ErrPathSanitization, err)
	}

	if force {
		_ = os.RemoveAll(transferDir)
	} else if _, statErr := os.Stat(transferDir); statErr == nil {
		return nil, fmt.Errorf("%w: %s", ErrTransferExists, transferName)
	} else if !os.IsNotExist(statErr) {
		return nil, fmt.Errorf("namegraft: stat transfer dir: %w", statErr)
	}

	if err := os.MkdirAll(transferDir, 0o750); err != nil {
		return nil, fmt.Errorf("namegraft: create transfer dir: %w", err)
	}

	results := make([]Result, len(mappings))
	for i, m := range mappings {
		results[i] = Result{Name: m.Name, Err: g.graftOne(transferDir, m)}
	}
	return results, nil
}

func (g *Grafter) graftOne(transferDir string, m Mapping) error {
	if err := transfer.ValidateDigest(m.Digest); err != nil {
		return err
	}

	completePath, err := g.store.CompletePath(m.Digest)
	if err != nil {
		return fmt.Errorf("%w: %v", transfer.ErrPathSanitization, err)
	}
	if _, err := os.Stat(completePath); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("namegraft: digest %s is not stored", m.Digest)
		}
		return fmt.Errorf("namegraft: stat complete blob: %w", err)
	}

	dirPart, leaf := splitRelPath(sanitizeRelPath(m.Name))
	if leaf == "" {
		return fmt.Errorf("%w: %q has no leaf filename", transfer.ErrPathSanitization, m.Name)
	}

	leafDir := transferDir
	if dirPart != "" {
		leafDir, err = pathstore.ScopedJoin(transferDir, dirPart)
		if err != nil {
			return err
		}
		if err := os.MkdirAll(leafDir, 0o750); err != nil {
			return fmt.Errorf("namegraft: create intermediate dir for %s: %w", m.Name, err)
		}
	}

	leafPath, err := pathstore.ScopedJoin(leafDir, leaf)
	if err != nil {
		return err
	}

	linkTarget, err := filepath.Rel(filepath.Dir(leafPath), completePath)
	if err != nil {
		linkTarget = completePath
	}

	return placeSymlink(leafPath, linkTarget)
}

// sanitizeRelPath implements spec's assign_names path sanitization: strip a
// single leading "/", then repeatedly strip leading ".." path components.
// Unlike the digest scoped-join, this never rejects outright — it is
// deliberately permissive so that adversarial relpaths like "../evil" or
// "/etc/passwd" land inside the transfer view instead of failing outright.
// Any ".." left in the middle of the path (e.g. "a/../../b") is rejected
// afterward by the strict scoped-join used to resolve the remaining
// directory prefix and leaf.
func sanitizeRelPath(name string) string {
	name = strings.TrimPrefix(name, "/")
	segs := strings.Split(name, "/")
	i := 0
	for i < len(segs) && segs[i] == ".." {
		i++
	}
	return strings.Join(segs[i:], "/")
}

// splitRelPath splits a sanitized relative path into its directory prefix
// and leaf filename.
func splitRelPath(name string) (dir, leaf string) {
	idx := strings.LastIndex(name, "/")
	if idx < 0 {
		return "", name
	}
	return name[:idx], name[idx+1:]
}

// placeSymlink creates a symlink at a temporary sibling of path and renames
// it into place, so that a reader never observes path missing between a
// Remove and a Symlink call.
func placeSymlink(path, target string) error {
	tmp := path + ".tmp"
	_ = os.Remove(tmp)

	if err := os.Symlink(target, tmp); err != nil {
		return fmt.Errorf("namegraft: create symlink: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("namegraft: rename symlink into place: %w", err)
	}
	return nil
}
