package vfat

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFsckCleanFilesystem(t *testing.T) {
	fs := newMountedTestFS(t, 16)
	require.NoError(t, fs.Create("a.txt"))
	h, err := fs.Open("a.txt")
	require.NoError(t, err)
	_, err = fs.Write(h, make([]byte, BlockSize+1))
	require.NoError(t, err)
	require.NoError(t, fs.Close(h))

	report, err := fs.Fsck(nil)
	require.NoError(t, err)
	require.Empty(t, report.Issues)
	require.Equal(t, 1, report.FilesChecked)
}

func TestFsckDetectsChainLengthMismatch(t *testing.T) {
	fs := newMountedTestFS(t, 16)
	require.NoError(t, fs.Create("a.txt"))

	// Corrupt the entry directly: claim a size that implies more blocks
	// than the (empty) chain actually has.
	slot := fs.root.lookup("a.txt")
	fs.root.entries[slot].Size = BlockSize * 2

	report, err := fs.Fsck(nil)
	require.NoError(t, err)
	require.NotEmpty(t, report.Issues)
	require.Equal(t, "chain-length", report.Issues[0].Code)
}

func TestFsckDetectsCrossLinkedChains(t *testing.T) {
	fs := newMountedTestFS(t, 16)
	require.NoError(t, fs.Create("a.txt"))
	require.NoError(t, fs.Create("b.txt"))

	slotA := fs.root.lookup("a.txt")
	slotB := fs.root.lookup("b.txt")

	idx := uint16(fs.fat.findFree())
	fs.fat.entries[idx] = FatEOC
	fs.root.entries[slotA].FirstIndex = idx
	fs.root.entries[slotA].Size = BlockSize
	fs.root.entries[slotB].FirstIndex = idx
	fs.root.entries[slotB].Size = BlockSize

	report, err := fs.Fsck(nil)
	require.NoError(t, err)

	found := false
	for _, issue := range report.Issues {
		if issue.Code == "cross-link" {
			found = true
		}
	}
	require.True(t, found)
}

func TestFsckProgressCallback(t *testing.T) {
	fs := newMountedTestFS(t, 16)
	require.NoError(t, fs.Create("a.txt"))
	require.NoError(t, fs.Create("b.txt"))

	var calls []int
	_, err := fs.Fsck(func(checked, total int) {
		calls = append(calls, checked)
		require.Equal(t, 2, total)
	})
	require.NoError(t, err)
	require.Equal(t, []int{1, 2}, calls)
}
