package vfat

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSuperblockEncodeDecodeRoundTrip(t *testing.T) {
	sb := &superblock{
		Signature:   Signature,
		TotalBlocks: 16,
		RootIndex:   2,
		DataIndex:   3,
		DataBlocks:  13,
		FatBlocks:   1,
	}

	block := sb.encode()
	require.Len(t, block, BlockSize)

	decoded, err := decodeSuperblock(block)
	require.NoError(t, err)
	require.Equal(t, *sb, *decoded)
}

func TestSuperblockValidate(t *testing.T) {
	sb := &superblock{
		Signature:   Signature,
		TotalBlocks: 16,
		RootIndex:   2,
		DataIndex:   3,
		DataBlocks:  13,
		FatBlocks:   1,
	}
	require.NoError(t, sb.validate(16))

	require.Error(t, sb.validate(17), "total_blocks must match the device")

	bad := *sb
	bad.Signature = [8]byte{}
	require.Error(t, bad.validate(16))

	bad = *sb
	bad.RootIndex = 99
	require.Error(t, bad.validate(16))

	bad = *sb
	bad.DataIndex = 99
	require.Error(t, bad.validate(16))

	bad = *sb
	bad.FatBlocks = 0
	bad.RootIndex = 1
	bad.DataIndex = 2
	require.Error(t, bad.validate(16), "fat_blocks too small to index data_blocks")
}

func TestDecodeSuperblockRejectsWrongSize(t *testing.T) {
	_, err := decodeSuperblock(make([]byte, BlockSize-1))
	requireCode(t, err, ErrBadDisk)
}
