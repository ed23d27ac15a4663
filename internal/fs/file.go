// Package fs provides the minimal cross-platform file handle the block
// device implementations open their backing image through.
package fs

import (
	"io"
	"os"
)

// File is what a vfat.BlockDevice needs from its backing image: random
// access reads and writes plus the size, nothing more.
type File interface {
	io.ReaderAt
	io.WriterAt
	io.Closer
	Stat() (os.FileInfo, error)
	Truncate(size int64) error
}

// Open opens an existing backing image for read-write block I/O.
func Open(path string) (File, error) {
	return os.OpenFile(path, os.O_RDWR, 0)
}

// Create creates a new backing image of the given size, truncating any
// existing file at path.
func Create(path string, size int64) (File, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return nil, err
	}
	if err := f.Truncate(size); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}
