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
	"fmt"

	"github.com/ostafen/vfatfs/internal/vfat"
	utilos "github.com/ostafen/vfatfs/pkg/util/os"
	"github.com/spf13/cobra"
)

// fileWriter adapts a vfat descriptor to io.Writer so it can be used as the
// destination of utilos.CopyFile.
type fileWriter struct {
	fs *vfat.FileSystem
	h  int
}

func (w *fileWriter) Write(p []byte) (int, error) {
	n, err := w.fs.Write(w.h, p)
	if err == nil && n < len(p) {
		err = fmt.Errorf("image ran out of space after writing %d of %d bytes", n, len(p))
	}
	return n, err
}

func DefinePutCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "put <image_path> <filename> <local_file>",
		Short:        "Copy a local file into a vfat image as a new file; fails if the name already exists",
		Args:         cobra.ExactArgs(3),
		SilenceUsage: true,
		RunE:         RunPut,
	}
	mmapFlag(cmd)
	return cmd
}

func RunPut(cmd *cobra.Command, args []string) error {
	fs, err := mountImageWithFlags(cmd, args[0])
	if err != nil {
		return err
	}
	defer fs.Unmount()

	name := args[1]
	if err := fs.Create(name); err != nil {
		return err
	}

	h, err := fs.Open(name)
	if err != nil {
		return err
	}
	defer fs.Close(h)

	_, err = utilos.CopyFile(&fileWriter{fs: fs, h: h}, args[2])
	return err
}
