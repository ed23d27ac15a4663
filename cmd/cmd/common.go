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
package cmd

import (
	"github.com/ostafen/vfatfs/internal/disk"
	"github.com/ostafen/vfatfs/internal/vfat"
	"github.com/spf13/cobra"
)

// mmapFlag adds the shared --mmap flag used by commands that open an image.
func mmapFlag(cmd *cobra.Command) {
	cmd.Flags().Bool("mmap", false, "use memory-mapped I/O instead of read/write syscalls")
}

// mountImageWithFlags opens and mounts the image at path using the block
// device implementation selected by --mmap, normalizing the path for the
// current platform first. Callers must Unmount the returned filesystem.
func mountImageWithFlags(cmd *cobra.Command, path string) (*vfat.FileSystem, error) {
	useMmap, _ := cmd.Flags().GetBool("mmap")

	var dev vfat.BlockDevice
	if useMmap {
		dev = &vfat.MmapBlockDevice{}
	}
	fs := vfat.New(dev)
	if err := fs.Mount(disk.NormalizeVolumePath(path)); err != nil {
		return nil, err
	}
	return fs, nil
}
