package vfat

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFileBlockDeviceCreateOpenReadWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "image.vfat")

	require.NoError(t, CreateImage(path, 8))

	dev := &FileBlockDevice{}
	require.NoError(t, dev.Open(path))
	defer dev.Close()

	require.Equal(t, 8, dev.Count())

	buf := make([]byte, BlockSize)
	for i := range buf {
		buf[i] = 0xAB
	}
	require.NoError(t, dev.WriteBlock(3, buf))

	out := make([]byte, BlockSize)
	require.NoError(t, dev.ReadBlock(3, out))
	require.Equal(t, buf, out)
}

func TestFileBlockDeviceRejectsOutOfRange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "image.vfat")

	require.NoError(t, CreateImage(path, 4))

	dev := &FileBlockDevice{}
	require.NoError(t, dev.Open(path))
	defer dev.Close()

	require.Error(t, dev.ReadBlock(4, make([]byte, BlockSize)))
	require.Error(t, dev.WriteBlock(4, make([]byte, BlockSize)))
	require.Error(t, dev.ReadBlock(0, make([]byte, BlockSize-1)))
}

func TestCreateImageRejectsNonPositiveSize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "image.vfat")
	require.Error(t, CreateImage(path, 0))
}
