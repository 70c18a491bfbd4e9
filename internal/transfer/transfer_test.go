package transfer_test

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/meigma/raptorboost/internal/lockregistry"
	"github.com/meigma/raptorboost/internal/pathstore"
	"github.com/meigma/raptorboost/internal/transfer"
)

func newController(t *testing.T) (*transfer.Controller, *pathstore.Store) {
	t.Helper()
	store, err := pathstore.New(t.TempDir())
	require.NoError(t, err)
	locks, err := lockregistry.New(store, nil)
	require.NoError(t, err)
	return transfer.New(store, locks, nil), store
}

func digestOf(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func TestCheckFileUnknownDigest(t *testing.T) {
	c, _ := newController(t)
	digest := digestOf([]byte("hello world"))

	res, err := c.CheckFile(digest)
	require.NoError(t, err)
	require.False(t, res.Complete)
	require.Zero(t, res.Offset)
}

func TestCheckFileRejectsMalformedDigest(t *testing.T) {
	c, _ := newController(t)
	_, err := c.CheckFile("not-a-digest")
	require.ErrorIs(t, err, transfer.ErrPathSanitization)
}

func TestFullTransferLifecycle(t *testing.T) {
	c, store := newController(t)
	content := []byte("the quick brown fox jumps over the lazy dog")
	digest := digestOf(content)

	sess, err := c.StartTransfer(digest, false)
	require.NoError(t, err)
	require.Zero(t, sess.Offset())

	n, err := sess.Write(content)
	require.NoError(t, err)
	require.Equal(t, len(content), n)

	require.NoError(t, sess.Complete())

	completePath, err := store.CompletePath(digest)
	require.NoError(t, err)
	got, err := os.ReadFile(completePath)
	require.NoError(t, err)
	require.Equal(t, content, got)

	res, err := c.CheckFile(digest)
	require.NoError(t, err)
	require.True(t, res.Complete)
}

func TestResumePartialTransfer(t *testing.T) {
	c, store := newController(t)
	content := []byte("resumable content that spans more than one write")
	digest := digestOf(content)

	first, err := c.StartTransfer(digest, false)
	require.NoError(t, err)
	_, err = first.Write(content[:10])
	require.NoError(t, err)
	require.NoError(t, first.Close())

	res, err := c.CheckFile(digest)
	require.NoError(t, err)
	require.False(t, res.Complete)
	require.EqualValues(t, 10, res.Offset)

	second, err := c.StartTransfer(digest, false)
	require.NoError(t, err)
	require.EqualValues(t, 10, second.Offset())

	_, err = second.Write(content[10:])
	require.NoError(t, err)
	require.NoError(t, second.Complete())

	completePath, err := store.CompletePath(digest)
	require.NoError(t, err)
	got, err := os.ReadFile(completePath)
	require.NoError(t, err)
	require.Equal(t, content, got)
}

func TestCompleteRemovesPartialOnChecksumMismatch(t *testing.T) {
	c, store := newController(t)
	content := []byte("some bytes")
	digest := digestOf(content)

	sess, err := c.StartTransfer(digest, false)
	require.NoError(t, err)
	_, err = sess.Write([]byte("totally different bytes"))
	require.NoError(t, err)

	err = sess.Complete()
	require.ErrorIs(t, err, transfer.ErrChecksumMismatch)

	partialPath, err := store.PartialPath(digest)
	require.NoError(t, err)
	_, statErr := os.Stat(partialPath)
	require.True(t, os.IsNotExist(statErr))
}

func TestStartTransferAlreadyComplete(t *testing.T) {
	c, _ := newController(t)
	content := []byte("already stored")
	digest := digestOf(content)

	sess, err := c.StartTransfer(digest, false)
	require.NoError(t, err)
	_, err = sess.Write(content)
	require.NoError(t, err)
	require.NoError(t, sess.Complete())

	_, err = c.StartTransfer(digest, false)
	require.ErrorIs(t, err, transfer.ErrAlreadyComplete)
}

func TestStartTransferLockConflict(t *testing.T) {
	c, _ := newController(t)
	content := []byte("locked content")
	digest := digestOf(content)

	sess, err := c.StartTransfer(digest, false)
	require.NoError(t, err)
	defer sess.Close()

	_, err = c.StartTransfer(digest, false)
	require.ErrorIs(t, err, transfer.ErrLockFailure)
}

func TestStartTransferForceOverridesLock(t *testing.T) {
	c, _ := newController(t)
	content := []byte("forcibly reacquired content")
	digest := digestOf(content)

	abandoned, err := c.StartTransfer(digest, false)
	require.NoError(t, err)
	_ = abandoned // simulates a crashed client that never released the lock

	second, err := c.StartTransfer(digest, true)
	require.NoError(t, err)
	defer second.Close()
}

func TestRehashesExistingPartialOnResume(t *testing.T) {
	// Verifies a partial file written outside of a Session (e.g. by a
	// server process that restarted) is re-hashed rather than trusted.
	c, store := newController(t)
	content := []byte("pre-existing partial bytes from a previous process")
	digest := digestOf(content)

	partialPath, err := store.PartialPath(digest)
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(filepath.Dir(partialPath), 0o750))
	require.NoError(t, os.WriteFile(partialPath, content[:20], 0o640))

	sess, err := c.StartTransfer(digest, false)
	require.NoError(t, err)
	require.EqualValues(t, 20, sess.Offset())

	_, err = sess.Write(content[20:])
	require.NoError(t, err)
	require.NoError(t, sess.Complete())
}
