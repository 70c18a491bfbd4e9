package pathstore_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/meigma/raptorboost/internal/pathstore"
)

func TestNewCreatesSubdirs(t *testing.T) {
	base := t.TempDir()
	s, err := pathstore.New(base)
	require.NoError(t, err)

	for _, dir := range []string{s.PartialDir(), s.CompleteDir(), s.TransfersDir(), s.LockDir()} {
		info, err := os.Stat(dir)
		require.NoError(t, err)
		require.True(t, info.IsDir())
	}
}

func TestNewRejectsMissingBase(t *testing.T) {
	_, err := pathstore.New(filepath.Join(t.TempDir(), "does-not-exist"))
	require.Error(t, err)
}

func TestCompletePathRejectsTraversal(t *testing.T) {
	s, err := pathstore.New(t.TempDir())
	require.NoError(t, err)

	cases := []string{
		"../etc/passwd",
		"/etc/passwd",
		"a/../../b",
		"..",
	}
	for _, c := range cases {
		_, err := s.CompletePath(c)
		require.ErrorIs(t, err, pathstore.ErrEscapesScope, "case %q", c)
	}
}

func TestTransferPathAllowsMultiSegmentNames(t *testing.T) {
	s, err := pathstore.New(t.TempDir())
	require.NoError(t, err)

	p, err := s.TransferPath("project/reports/2026/q1.csv")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(s.TransfersDir(), "project/reports/2026/q1.csv"), p)
}

func TestCompletePathRejectsEmptyName(t *testing.T) {
	s, err := pathstore.New(t.TempDir())
	require.NoError(t, err)

	_, err = s.CompletePath("")
	require.ErrorIs(t, err, pathstore.ErrEscapesScope)
}
