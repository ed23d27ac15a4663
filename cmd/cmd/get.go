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
	"io"

	"github.com/ostafen/vfatfs/internal/vfat"
	utilio "github.com/ostafen/vfatfs/pkg/util/io"
	"github.com/spf13/cobra"
)

// fileReader adapts a vfat descriptor to io.Reader so it can be used as the
// source of utilio.CopyFile.
type fileReader struct {
	fs *vfat.FileSystem
	h  int
}

func (r *fileReader) Read(p []byte) (int, error) {
	n, err := r.fs.Read(r.h, p)
	if err != nil {
		return n, err
	}
	if n == 0 {
		return 0, io.EOF
	}
	return n, nil
}

func DefineGetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "get <image_path> <filename> <local_file>",
		Short:        "Copy the contents of a file stored in a vfat image to a local file",
		Args:         cobra.ExactArgs(3),
		SilenceUsage: true,
		RunE:         RunGet,
	}
	mmapFlag(cmd)
	return cmd
}

func RunGet(cmd *cobra.Command, args []string) error {
	fs, err := mountImageWithFlags(cmd, args[0])
	if err != nil {
		return err
	}
	defer fs.Unmount()

	h, err := fs.Open(args[1])
	if err != nil {
		return err
	}
	defer fs.Close(h)

	return utilio.CopyFile(args[2], &fileReader{fs: fs, h: h})
}
