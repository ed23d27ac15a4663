package vfat

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRootDirectoryEncodeDecodeRoundTrip(t *testing.T) {
	rd := &rootDirectory{}
	slot := rd.create("hello.txt")
	rd.entries[slot].Size = 42

	block := rd.encode()
	require.Len(t, block, BlockSize)

	decoded, err := decodeRootDirectory(block)
	require.NoError(t, err)
	require.Equal(t, "hello.txt", decoded.entries[slot].name())
	require.EqualValues(t, 42, decoded.entries[slot].Size)
	require.EqualValues(t, FatEOC, decoded.entries[slot].FirstIndex)
}

func TestRootDirectoryCreateLookupRemove(t *testing.T) {
	rd := &rootDirectory{}
	require.Equal(t, -1, rd.lookup("a.txt"))

	slot := rd.create("a.txt")
	require.Equal(t, slot, rd.lookup("a.txt"))
	require.Equal(t, MaxFiles-1, rd.freeCount())

	rd.remove(slot)
	require.Equal(t, -1, rd.lookup("a.txt"))
	require.Equal(t, MaxFiles, rd.freeCount())
}

func TestRootDirectoryFullWhenAllSlotsTaken(t *testing.T) {
	rd := &rootDirectory{}
	for i := 0; i < MaxFiles; i++ {
		require.NotEqual(t, -1, rd.create(nameFor(i)))
	}
	require.Equal(t, -1, rd.firstEmpty())
}

func TestRootDirectoryListOrder(t *testing.T) {
	rd := &rootDirectory{}
	rd.create("b.txt")
	rd.create("a.txt")

	entries := rd.list()
	require.Len(t, entries, 2)
	require.Equal(t, "b.txt", entries[0].Name)
	require.Equal(t, "a.txt", entries[1].Name)
}

func nameFor(i int) string {
	const letters = "abcdefghijklmnop"
	return string(letters[i%len(letters)]) + string(letters[(i/len(letters))%len(letters)])
}
