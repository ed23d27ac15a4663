package vfat

import (
	"os"

	"golang.org/x/sys/unix"

	"github.com/ostafen/vfatfs/internal/disk"
)

// MmapBlockDevice is a BlockDevice backed by a single read-write MAP_SHARED
// mapping of the whole image, established once at Open. ReadBlock/WriteBlock
// become a plain copy() against the mapping instead of a syscall per block.
type MmapBlockDevice struct {
	f     *os.File
	data  []byte
	count int
}

var _ BlockDevice = (*MmapBlockDevice)(nil)

func (d *MmapBlockDevice) Open(name string) error {
	if d.data != nil {
		return newErr(ErrAlreadyMounted, "block device already open")
	}

	path := disk.NormalizeVolumePath(name)

	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return newErr(ErrIoFailure, "open %s: %v", name, err)
	}

	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return newErr(ErrIoFailure, "stat %s: %v", name, err)
	}
	size := fi.Size()
	if size%BlockSize != 0 {
		f.Close()
		return newErr(ErrBadDisk, "image size %d is not a multiple of block size %d", size, BlockSize)
	}
	if size == 0 {
		f.Close()
		return newErr(ErrBadDisk, "image %s is empty", name)
	}

	data, err := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		f.Close()
		return newErr(ErrIoFailure, "mmap %s: %v", name, err)
	}

	d.f = f
	d.data = data
	d.count = int(size / BlockSize)
	return nil
}

func (d *MmapBlockDevice) Close() error {
	if d.data == nil {
		return newErr(ErrNotMounted, "block device not open")
	}

	syncErr := unix.Msync(d.data, unix.MS_SYNC)
	unmapErr := unix.Munmap(d.data)
	closeErr := d.f.Close()

	d.data = nil
	d.f = nil
	d.count = -1

	if syncErr != nil {
		return newErr(ErrIoFailure, "msync: %v", syncErr)
	}
	if unmapErr != nil {
		return newErr(ErrIoFailure, "munmap: %v", unmapErr)
	}
	if closeErr != nil {
		return newErr(ErrIoFailure, "close: %v", closeErr)
	}
	return nil
}

func (d *MmapBlockDevice) Count() int {
	if d.data == nil {
		return -1
	}
	return d.count
}

func (d *MmapBlockDevice) blockRange(i uint16) []byte {
	off := int(i) * BlockSize
	return d.data[off : off+BlockSize]
}

func (d *MmapBlockDevice) ReadBlock(i uint16, buf []byte) error {
	if d.data == nil {
		return newErr(ErrNotMounted, "block device not open")
	}
	if len(buf) != BlockSize {
		return newErr(ErrIoFailure, "read_block: buffer must be %d bytes, got %d", BlockSize, len(buf))
	}
	if int(i) >= d.count {
		return newErr(ErrIoFailure, "read_block: index %d out of range [0,%d)", i, d.count)
	}
	copy(buf, d.blockRange(i))
	return nil
}

func (d *MmapBlockDevice) WriteBlock(i uint16, buf []byte) error {
	if d.data == nil {
		return newErr(ErrNotMounted, "block device not open")
	}
	if len(buf) != BlockSize {
		return newErr(ErrIoFailure, "write_block: buffer must be %d bytes, got %d", BlockSize, len(buf))
	}
	if int(i) >= d.count {
		return newErr(ErrIoFailure, "write_block: index %d out of range [0,%d)", i, d.count)
	}
	copy(d.blockRange(i), buf)
	return nil
}
