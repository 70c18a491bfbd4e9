package namegraft_test

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/meigma/raptorboost/internal/lockregistry"
	"github.com/meigma/raptorboost/internal/namegraft"
	"github.com/meigma/raptorboost/internal/pathstore"
	"github.com/meigma/raptorboost/internal/transfer"
)

func setup(t *testing.T) (*namegraft.Grafter, *pathstore.Store, *transfer.Controller) {
	t.Helper()
	store, err := pathstore.New(t.TempDir())
	require.NoError(t, err)
	locks, err := lockregistry.New(store, nil)
	require.NoError(t, err)
	ctrl := transfer.New(store, locks, nil)
	return namegraft.New(store, nil), store, ctrl
}

func storeContent(t *testing.T, ctrl *transfer.Controller, data []byte) string {
	t.Helper()
	sum := sha256.Sum256(data)
	digest := hex.EncodeToString(sum[:])

	sess, err := ctrl.StartTransfer(digest, false)
	require.NoError(t, err)
	_, err = sess.Write(data)
	require.NoError(t, err)
	require.NoError(t, sess.Complete())
	return digest
}

func TestAssignNamesCreatesSymlinkUnderTransferView(t *testing.T) {
	g, store, ctrl := setup(t)
	digest := storeContent(t, ctrl, []byte("graft me"))

	results, err := g.AssignNames("t1", []namegraft.Mapping{{Digest: digest, Name: "reports/q1.csv"}}, false)
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.NoError(t, results[0].Err)

	targetPath, err := store.TransferPath("t1/reports/q1.csv")
	require.NoError(t, err)
	data, err := os.ReadFile(targetPath)
	require.NoError(t, err)
	require.Equal(t, "graft me", string(data))
}

func TestAssignNamesDefaultsTransferNameToTimestamp(t *testing.T) {
	g, store, ctrl := setup(t)
	digest := storeContent(t, ctrl, []byte("no name given"))

	results, err := g.AssignNames("", []namegraft.Mapping{{Digest: digest, Name: "f"}}, false)
	require.NoError(t, err)
	require.NoError(t, results[0].Err)

	entries, err := os.ReadDir(store.TransfersDir())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.NotEmpty(t, entries[0].Name())
}

func TestAssignNamesRejectsUnstoredDigest(t *testing.T) {
	g, _, _ := setup(t)
	results, err := g.AssignNames("t1", []namegraft.Mapping{
		{Digest: "0000000000000000000000000000000000000000000000000000000000000000", Name: "x"},
	}, false)
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Error(t, results[0].Err)
}

func TestAssignNamesWithoutForceRejectsExistingTransferView(t *testing.T) {
	g, _, ctrl := setup(t)
	digestA := storeContent(t, ctrl, []byte("first"))
	digestB := storeContent(t, ctrl, []byte("second"))

	_, err := g.AssignNames("t1", []namegraft.Mapping{{Digest: digestA, Name: "x"}}, false)
	require.NoError(t, err)

	_, err = g.AssignNames("t1", []namegraft.Mapping{{Digest: digestB, Name: "x"}}, false)
	require.ErrorIs(t, err, namegraft.ErrTransferExists)
}

func TestAssignNamesWithForceReplacesExistingTransferView(t *testing.T) {
	g, store, ctrl := setup(t)
	digestA := storeContent(t, ctrl, []byte("first"))
	digestB := storeContent(t, ctrl, []byte("second"))

	results, err := g.AssignNames("t1", []namegraft.Mapping{{Digest: digestA, Name: "x"}}, false)
	require.NoError(t, err)
	require.NoError(t, results[0].Err)

	results, err = g.AssignNames("t1", []namegraft.Mapping{{Digest: digestB, Name: "x"}}, true)
	require.NoError(t, err)
	require.NoError(t, results[0].Err)

	targetPath, err := store.TransferPath("t1/x")
	require.NoError(t, err)
	data, err := os.ReadFile(targetPath)
	require.NoError(t, err)
	require.Equal(t, "second", string(data))
}

func TestAssignNamesPartialFailureDoesNotAbortBatch(t *testing.T) {
	g, _, ctrl := setup(t)
	digest := storeContent(t, ctrl, []byte("ok"))

	results, err := g.AssignNames("t1", []namegraft.Mapping{
		{Digest: "not-a-digest", Name: "bad"},
		{Digest: digest, Name: "good"},
	}, false)
	require.NoError(t, err)
	require.Len(t, results, 2)
	require.Error(t, results[0].Err)
	require.NoError(t, results[1].Err)
}

// TestAssignNamesAdversarialPathsStayWithinTransferView exercises spec's
// documented "adversarial paths" property: every symlink produced by
// AssignNames lies within transfers/<name>/, regardless of what relpath was
// requested. A leading ".." or "/" is stripped rather than rejected; a
// ".." reappearing after the leaf/dir split is rejected by the strict
// scoped-join used to resolve it, simply producing no file for that entry.
func TestAssignNamesAdversarialPathsStayWithinTransferView(t *testing.T) {
	g, store, ctrl := setup(t)
	digest := storeContent(t, ctrl, []byte("x"))

	results, err := g.AssignNames("t1", []namegraft.Mapping{
		{Digest: digest, Name: "sub/a.txt"},
		{Digest: digest, Name: "../evil"},
		{Digest: digest, Name: "/etc/passwd"},
		{Digest: digest, Name: "a/../../b"},
	}, false)
	require.NoError(t, err)
	require.Len(t, results, 4)

	require.NoError(t, results[0].Err)
	subPath, err := store.TransferPath("t1/sub/a.txt")
	require.NoError(t, err)
	require.FileExists(t, subPath)

	require.NoError(t, results[1].Err)
	evilPath, err := store.TransferPath("t1/evil")
	require.NoError(t, err)
	require.FileExists(t, evilPath)

	require.NoError(t, results[2].Err)
	passwdPath, err := store.TransferPath("t1/etc/passwd")
	require.NoError(t, err)
	require.FileExists(t, passwdPath)

	// The internal ".." in "a/../../b" survives the leading-only strip and
	// is then rejected by the strict scoped-join: no file is created for it
	// anywhere, inside the transfer view or outside it.
	require.Error(t, results[3].Err)

	transferDir, err := store.TransferPath("t1")
	require.NoError(t, err)
	walkCount := 0
	err = filepath.Walk(transferDir, func(path string, info os.FileInfo, err error) error {
		require.NoError(t, err)
		if !info.IsDir() {
			walkCount++
		}
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, 3, walkCount)

	outsideEscape, _ := store.TransferPath("b")
	require.NoFileExists(t, outsideEscape)
}
