package vfat

import (
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/ostafen/vfatfs/internal/disk"
	"github.com/ostafen/vfatfs/internal/fs"
)

// FileBlockDevice is the default BlockDevice: a regular file, or on Linux a
// raw block device, addressed with pread/pwrite-style random access at
// BlockSize granularity.
type FileBlockDevice struct {
	f     fs.File
	count int
}

var _ BlockDevice = (*FileBlockDevice)(nil)

func (d *FileBlockDevice) Open(name string) error {
	if d.f != nil {
		return newErr(ErrAlreadyMounted, "block device already open")
	}

	path := disk.NormalizeVolumePath(name)

	f, err := fs.Open(path)
	if err != nil {
		return newErr(ErrIoFailure, "open %s: %v", name, err)
	}

	if runtime.GOOS == "linux" {
		if isDev, _ := disk.IsBlockDevice(path); isDev {
			if sectSize, err := disk.LogicalSectorSize(path); err == nil && sectSize > 0 {
				if BlockSize%sectSize != 0 {
					f.Close()
					return newErr(ErrBadDisk, "device sector size %d does not evenly divide block size %d", sectSize, BlockSize)
				}
			}
		}
	}

	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return newErr(ErrIoFailure, "stat %s: %v", name, err)
	}
	size := fi.Size()
	if fi.Mode()&os.ModeDevice != 0 {
		// Stat reports size 0 for a device; its end offset is its size.
		if s, ok := f.(io.Seeker); ok {
			if end, err := s.Seek(0, io.SeekEnd); err == nil {
				size = end
			}
		}
	}
	if size%BlockSize != 0 {
		f.Close()
		return newErr(ErrBadDisk, "image size %d is not a multiple of block size %d", size, BlockSize)
	}

	d.f = f
	d.count = int(size / BlockSize)
	return nil
}

func (d *FileBlockDevice) Close() error {
	if d.f == nil {
		return newErr(ErrNotMounted, "block device not open")
	}
	err := d.f.Close()
	d.f = nil
	d.count = -1
	if err != nil {
		return newErr(ErrIoFailure, "close: %v", err)
	}
	return nil
}

func (d *FileBlockDevice) Count() int {
	if d.f == nil {
		return -1
	}
	return d.count
}

func (d *FileBlockDevice) ReadBlock(i uint16, buf []byte) error {
	if d.f == nil {
		return newErr(ErrNotMounted, "block device not open")
	}
	if len(buf) != BlockSize {
		return newErr(ErrIoFailure, "read_block: buffer must be %d bytes, got %d", BlockSize, len(buf))
	}
	if int(i) >= d.count {
		return newErr(ErrIoFailure, "read_block: index %d out of range [0,%d)", i, d.count)
	}
	_, err := d.f.ReadAt(buf, int64(i)*BlockSize)
	if err != nil {
		return newErr(ErrIoFailure, "read_block %d: %v", i, err)
	}
	return nil
}

func (d *FileBlockDevice) WriteBlock(i uint16, buf []byte) error {
	if d.f == nil {
		return newErr(ErrNotMounted, "block device not open")
	}
	if len(buf) != BlockSize {
		return newErr(ErrIoFailure, "write_block: buffer must be %d bytes, got %d", BlockSize, len(buf))
	}
	if int(i) >= d.count {
		return newErr(ErrIoFailure, "write_block: index %d out of range [0,%d)", i, d.count)
	}
	_, err := d.f.WriteAt(buf, int64(i)*BlockSize)
	if err != nil {
		return newErr(ErrIoFailure, "write_block %d: %v", i, err)
	}
	return nil
}

// CreateImage creates a new, zero-filled backing file of totalBlocks blocks,
// ready to be formatted with Format.
func CreateImage(path string, totalBlocks int) error {
	if totalBlocks <= 0 {
		return fmt.Errorf("total blocks must be positive, got %d", totalBlocks)
	}
	f, err := fs.Create(disk.NormalizeVolumePath(path), int64(totalBlocks)*BlockSize)
	if err != nil {
		return err
	}
	return f.Close()
}
