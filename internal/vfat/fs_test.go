package vfat

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func newMountedTestFS(t *testing.T, totalBlocks int) *FileSystem {
	t.Helper()

	dev := newMemBlockDevice(totalBlocks)
	require.NoError(t, formatMemDevice(dev))

	fs := New(dev)
	require.NoError(t, fs.Mount("ignored"))
	return fs
}

func TestMountUnmountRoundTrip(t *testing.T) {
	fs := newMountedTestFS(t, 16)

	info, err := fs.Info()
	require.NoError(t, err)
	require.EqualValues(t, 16, info.TotalBlocks)
	require.EqualValues(t, 128, info.RootDirFree)

	require.NoError(t, fs.Unmount())

	// Operating on an unmounted filesystem fails cleanly.
	_, err = fs.Info()
	requireCode(t, err, ErrNotMounted)
}

func TestMountRejectsBadSignature(t *testing.T) {
	dev := newMemBlockDevice(16)
	require.NoError(t, formatMemDevice(dev))

	// Corrupt the signature.
	bad := make([]byte, BlockSize)
	require.NoError(t, dev.ReadBlock(0, bad))
	bad[0] = 'X'
	require.NoError(t, dev.WriteBlock(0, bad))

	fs := New(dev)
	err := fs.Mount("ignored")
	requireCode(t, err, ErrBadDisk)
}

func TestMountAlreadyMounted(t *testing.T) {
	fs := newMountedTestFS(t, 16)
	requireCode(t, fs.Mount("ignored"), ErrAlreadyMounted)
}

func TestCreateAndList(t *testing.T) {
	fs := newMountedTestFS(t, 16)

	require.NoError(t, fs.Create("a.txt"))
	require.NoError(t, fs.Create("b.txt"))
	requireCode(t, fs.Create("a.txt"), ErrFileExists)

	entries, err := fs.List()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, "a.txt", entries[0].Name)
	require.Equal(t, "b.txt", entries[1].Name)
	require.EqualValues(t, FatEOC, entries[0].FirstIndex)
}

func TestCreateValidatesName(t *testing.T) {
	fs := newMountedTestFS(t, 16)

	requireCode(t, fs.Create(""), ErrNullName)
	requireCode(t, fs.Create("this-name-is-way-too-long-for-the-root-dir"), ErrNameTooLong)
}

func TestDeleteRefusesWhileOpen(t *testing.T) {
	fs := newMountedTestFS(t, 16)
	require.NoError(t, fs.Create("a.txt"))

	h, err := fs.Open("a.txt")
	require.NoError(t, err)

	requireCode(t, fs.Delete("a.txt"), ErrBusyFile)

	require.NoError(t, fs.Close(h))
	require.NoError(t, fs.Delete("a.txt"))

	_, err = fs.Open("a.txt")
	requireCode(t, err, ErrNoSuchFile)
}

func TestUnmountRefusesWithOpenDescriptors(t *testing.T) {
	fs := newMountedTestFS(t, 16)
	require.NoError(t, fs.Create("a.txt"))
	_, err := fs.Open("a.txt")
	require.NoError(t, err)

	requireCode(t, fs.Unmount(), ErrBusyFile)
}

func TestWriteReadRoundTrip(t *testing.T) {
	fs := newMountedTestFS(t, 16)
	require.NoError(t, fs.Create("a.txt"))

	h, err := fs.Open("a.txt")
	require.NoError(t, err)

	data := make([]byte, BlockSize*3+37)
	for i := range data {
		data[i] = byte(i)
	}

	n, err := fs.Write(h, data)
	require.NoError(t, err)
	require.Equal(t, len(data), n)

	size, err := fs.Stat(h)
	require.NoError(t, err)
	require.EqualValues(t, len(data), size)

	require.NoError(t, fs.Lseek(h, 0))
	out := make([]byte, len(data))
	total := 0
	for total < len(out) {
		n, err := fs.Read(h, out[total:])
		require.NoError(t, err)
		if n == 0 {
			break
		}
		total += n
	}
	require.Equal(t, data, out)

	// Reading past EOF returns 0, nil, not an error.
	n, err = fs.Read(h, make([]byte, 10))
	require.NoError(t, err)
	require.Equal(t, 0, n)
}

func TestWritePartialOnFatFull(t *testing.T) {
	// 6 blocks total: superblock + 1 FAT block + root + 3 data blocks, of
	// which entry 0 is permanently reserved, leaving 2 usable.
	fs := newMountedTestFS(t, 6)
	require.NoError(t, fs.Create("a.txt"))
	h, err := fs.Open("a.txt")
	require.NoError(t, err)

	data := make([]byte, BlockSize*3)
	n, err := fs.Write(h, data)
	require.NoError(t, err)
	require.Equal(t, BlockSize*2, n, "only 2 data blocks are available")

	size, err := fs.Stat(h)
	require.NoError(t, err)
	require.EqualValues(t, BlockSize*2, size)
}

func TestLseekBounds(t *testing.T) {
	fs := newMountedTestFS(t, 16)
	require.NoError(t, fs.Create("a.txt"))
	h, err := fs.Open("a.txt")
	require.NoError(t, err)

	_, err = fs.Write(h, []byte("hello"))
	require.NoError(t, err)

	require.NoError(t, fs.Lseek(h, 5))
	requireCode(t, fs.Lseek(h, 6), ErrSeekOutOfRange)
	requireCode(t, fs.Lseek(h, -1), ErrSeekOutOfRange)
}

func TestOpenCloseTableLimits(t *testing.T) {
	fs := newMountedTestFS(t, 16)
	require.NoError(t, fs.Create("a.txt"))

	handles := make([]int, 0, MaxOpenFiles)
	for i := 0; i < MaxOpenFiles; i++ {
		h, err := fs.Open("a.txt")
		require.NoError(t, err)
		handles = append(handles, h)
	}

	_, err := fs.Open("a.txt")
	requireCode(t, err, ErrTooManyOpen)

	require.NoError(t, fs.Close(handles[0]))
	_, err = fs.Open("a.txt")
	require.NoError(t, err)
}

func TestStatByHandle(t *testing.T) {
	fs := newMountedTestFS(t, 16)
	require.NoError(t, fs.Create("a.txt"))
	h, err := fs.Open("a.txt")
	require.NoError(t, err)

	_, err = fs.Write(h, []byte("hello"))
	require.NoError(t, err)

	size, err := fs.Stat(h)
	require.NoError(t, err)
	require.EqualValues(t, 5, size)

	require.NoError(t, fs.Close(h))
	_, err = fs.Stat(h)
	requireCode(t, err, ErrBadHandle)
}

func TestCloseInvalidHandle(t *testing.T) {
	fs := newMountedTestFS(t, 16)
	requireCode(t, fs.Close(0), ErrBadHandle)
	requireCode(t, fs.Close(-1), ErrBadHandle)
}

func requireCode(t *testing.T, err error, code Code) {
	t.Helper()
	require.Error(t, err)
	ve, ok := err.(*Error)
	require.Truef(t, ok, "expected *vfat.Error, got %T", err)
	require.Equal(t, code, ve.Code)
}
