package vfat

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestFAT(n int) *fatTable {
	entries := make([]uint16, n)
	entries[0] = FatEOC
	return &fatTable{entries: entries}
}

func TestExtendChainFromEmpty(t *testing.T) {
	fat := newTestFAT(4)
	first := uint16(FatEOC)

	idx := fat.extendChain(&first)
	require.Equal(t, 1, idx)
	require.EqualValues(t, 1, first)
	require.EqualValues(t, FatEOC, fat.entries[1])
}

func TestExtendChainAppends(t *testing.T) {
	fat := newTestFAT(4)
	first := uint16(FatEOC)

	fat.extendChain(&first)
	second := fat.extendChain(&first)
	require.Equal(t, 2, second)
	require.EqualValues(t, 2, fat.entries[1])
	require.EqualValues(t, FatEOC, fat.entries[2])
}

func TestExtendChainFatFull(t *testing.T) {
	fat := newTestFAT(2) // only entry 1 is usable
	first := uint16(FatEOC)

	require.Equal(t, 1, fat.extendChain(&first))
	require.Equal(t, -1, fat.extendChain(&first), "no free entries left")
	// FAT is left untouched by the failed attempt.
	require.EqualValues(t, FatEOC, fat.entries[1])
}

func TestFreeChain(t *testing.T) {
	fat := newTestFAT(5)
	first := uint16(FatEOC)
	fat.extendChain(&first)
	fat.extendChain(&first)
	fat.extendChain(&first)

	fat.freeChain(first)
	for i := 1; i < len(fat.entries); i++ {
		require.EqualValues(t, 0, fat.entries[i])
	}

	// Freeing an already-empty chain is a no-op.
	fat.freeChain(FatEOC)
}

func TestBlockAtFileOffset(t *testing.T) {
	fat := newTestFAT(5)
	first := uint16(FatEOC)
	a := fat.extendChain(&first)
	b := fat.extendChain(&first)
	c := fat.extendChain(&first)

	require.Equal(t, uint16(a), fat.blockAtFileOffset(first, 0))
	require.Equal(t, uint16(a), fat.blockAtFileOffset(first, BlockSize-1))
	require.Equal(t, uint16(b), fat.blockAtFileOffset(first, BlockSize))
	require.Equal(t, uint16(c), fat.blockAtFileOffset(first, BlockSize*2))
	require.EqualValues(t, FatEOC, fat.blockAtFileOffset(first, BlockSize*3))
}

func TestChainLength(t *testing.T) {
	fat := newTestFAT(5)
	require.Equal(t, 0, fat.chainLength(FatEOC))

	first := uint16(FatEOC)
	fat.extendChain(&first)
	require.Equal(t, 1, fat.chainLength(first))
	fat.extendChain(&first)
	require.Equal(t, 2, fat.chainLength(first))
}

func TestFindFreeSkipsReservedEntryZero(t *testing.T) {
	fat := newTestFAT(3)
	require.Equal(t, 1, fat.findFree())
	fat.entries[1] = FatEOC
	require.Equal(t, 2, fat.findFree())
	fat.entries[2] = FatEOC
	require.Equal(t, -1, fat.findFree())
}
