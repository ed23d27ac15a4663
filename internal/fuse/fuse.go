//go:build linux
// +build linux

// Copyright (c) 2025 Stefano Scafiti
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.
package fuse

import (
	"context"
	"os"
	"sync"
	"time"

	"bazil.org/fuse"
	"bazil.org/fuse/fs"

	"github.com/ostafen/vfatfs/internal/vfat"
)

// VFatFS exposes a mounted vfat.FileSystem as a FUSE filesystem. vfat's own
// API does no internal locking, so every call into it is serialized through
// mtx.
type VFatFS struct {
	mtx sync.Mutex
	fs  *vfat.FileSystem
}

// New wraps an already-mounted filesystem for FUSE serving.
func New(mounted *vfat.FileSystem) *VFatFS {
	return &VFatFS{fs: mounted}
}

func (v *VFatFS) Root() (fs.Node, error) {
	return &Dir{vfs: v}, nil
}

// Dir is the filesystem's single, flat root directory.
type Dir struct {
	vfs *VFatFS
}

func (*Dir) Attr(ctx context.Context, a *fuse.Attr) error {
	a.Mode = os.ModeDir | 0755
	return nil
}

func (d *Dir) Lookup(ctx context.Context, name string) (fs.Node, error) {
	d.vfs.mtx.Lock()
	defer d.vfs.mtx.Unlock()

	size, err := d.vfs.statByName(name)
	if err != nil {
		return nil, fuse.ENOENT
	}
	return &File{vfs: d.vfs, name: name, size: size}, nil
}

// statByName opens name just long enough to read its size through the
// handle-based Stat operation, then closes it. Callers must hold mtx.
func (v *VFatFS) statByName(name string) (uint32, error) {
	h, err := v.fs.Open(name)
	if err != nil {
		return 0, err
	}
	defer v.fs.Close(h)
	return v.fs.Stat(h)
}

func (d *Dir) ReadDirAll(ctx context.Context) ([]fuse.Dirent, error) {
	d.vfs.mtx.Lock()
	defer d.vfs.mtx.Unlock()

	entries, err := d.vfs.fs.List()
	if err != nil {
		return nil, toFuseErr(err)
	}

	dirents := make([]fuse.Dirent, len(entries))
	for i, e := range entries {
		dirents[i] = fuse.Dirent{
			Inode: uint64(e.FirstIndex) + 1,
			Name:  e.Name,
			Type:  fuse.DT_File,
		}
	}
	return dirents, nil
}

func (d *Dir) Create(ctx context.Context, req *fuse.CreateRequest, resp *fuse.CreateResponse) (fs.Node, fs.Handle, error) {
	d.vfs.mtx.Lock()
	defer d.vfs.mtx.Unlock()

	if err := d.vfs.fs.Create(req.Name); err != nil {
		return nil, nil, toFuseErr(err)
	}
	h, err := d.vfs.fs.Open(req.Name)
	if err != nil {
		return nil, nil, toFuseErr(err)
	}

	node := &File{vfs: d.vfs, name: req.Name}
	return node, &FileHandle{node: node, h: h}, nil
}

func (d *Dir) Remove(ctx context.Context, req *fuse.RemoveRequest) error {
	d.vfs.mtx.Lock()
	defer d.vfs.mtx.Unlock()

	return toFuseErr(d.vfs.fs.Delete(req.Name))
}

// File is a handle-less view of one root-directory entry; Open produces the
// FileHandle that actually reads or writes through a vfat descriptor.
type File struct {
	vfs  *VFatFS
	name string
	size uint32
}

func (f *File) Attr(ctx context.Context, a *fuse.Attr) error {
	f.vfs.mtx.Lock()
	defer f.vfs.mtx.Unlock()

	size, err := f.vfs.statByName(f.name)
	if err != nil {
		return toFuseErr(err)
	}
	a.Mode = 0644
	a.Size = uint64(size)
	a.Mtime = time.Now()
	return nil
}

func (f *File) Open(ctx context.Context, req *fuse.OpenRequest, resp *fuse.OpenResponse) (fs.Handle, error) {
	f.vfs.mtx.Lock()
	defer f.vfs.mtx.Unlock()

	h, err := f.vfs.fs.Open(f.name)
	if err != nil {
		return nil, toFuseErr(err)
	}
	return &FileHandle{node: f, h: h}, nil
}

// FileHandle is a FUSE open-file handle backed by one vfat descriptor.
type FileHandle struct {
	node *File
	h    int
}

func (fh *FileHandle) Read(ctx context.Context, req *fuse.ReadRequest, resp *fuse.ReadResponse) error {
	v := fh.node.vfs
	v.mtx.Lock()
	defer v.mtx.Unlock()

	if err := v.fs.Lseek(fh.h, int(req.Offset)); err != nil {
		return toFuseErr(err)
	}

	buf := make([]byte, req.Size)
	n, err := v.fs.Read(fh.h, buf)
	if err != nil {
		return toFuseErr(err)
	}
	resp.Data = buf[:n]
	return nil
}

func (fh *FileHandle) Write(ctx context.Context, req *fuse.WriteRequest, resp *fuse.WriteResponse) error {
	v := fh.node.vfs
	v.mtx.Lock()
	defer v.mtx.Unlock()

	if err := v.fs.Lseek(fh.h, int(req.Offset)); err != nil {
		return toFuseErr(err)
	}

	n, err := v.fs.Write(fh.h, req.Data)
	if err != nil {
		return toFuseErr(err)
	}
	resp.Size = n
	return nil
}

func (fh *FileHandle) Release(ctx context.Context, req *fuse.ReleaseRequest) error {
	v := fh.node.vfs
	v.mtx.Lock()
	defer v.mtx.Unlock()

	return toFuseErr(v.fs.Close(fh.h))
}

func toFuseErr(err error) error {
	if err == nil {
		return nil
	}
	ve, ok := err.(*vfat.Error)
	if !ok {
		return err
	}
	switch ve.Code {
	case vfat.ErrNoSuchFile:
		return fuse.ENOENT
	case vfat.ErrFileExists:
		return fuse.EEXIST
	default:
		return err
	}
}
