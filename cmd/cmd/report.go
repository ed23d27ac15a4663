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
	"os"

	"github.com/ostafen/vfatfs/pkg/report"
	"github.com/spf13/cobra"
)

func DefineReportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "report <image_path>",
		Short:        "Write an XML report describing every file stored in a vfat image",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE:         RunReport,
	}
	mmapFlag(cmd)
	cmd.Flags().StringP("output", "o", "", "write the report to this file instead of stdout")
	return cmd
}

func RunReport(cmd *cobra.Command, args []string) error {
	fs, err := mountImageWithFlags(cmd, args[0])
	if err != nil {
		return err
	}
	defer fs.Unmount()

	out := os.Stdout
	if path, _ := cmd.Flags().GetString("output"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	info, err := fs.Info()
	if err != nil {
		return err
	}

	w := report.NewWriter(out)
	if err := w.WriteHeader(report.Header{
		Image:       args[0],
		TotalBlocks: info.TotalBlocks,
		DataBlocks:  info.DataBlocks,
	}); err != nil {
		return err
	}

	entries, err := fs.List()
	if err != nil {
		return err
	}
	for _, e := range entries {
		chainLen, err := fs.ChainLength(e.FirstIndex)
		if err != nil {
			return err
		}
		if err := w.WriteFile(report.FileEntry{
			Name:        e.Name,
			Size:        e.Size,
			FirstIndex:  e.FirstIndex,
			ChainLength: chainLen,
		}); err != nil {
			return err
		}
	}
	return w.Close()
}
