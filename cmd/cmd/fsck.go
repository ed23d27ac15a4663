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
	"log/slog"
	"os"

	"github.com/ostafen/vfatfs/pkg/pbar"
	"github.com/spf13/cobra"
)

func DefineFsckCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "fsck <image_path>",
		Short:        "Check a vfat image for consistency errors",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE:         RunFsck,
	}
	mmapFlag(cmd)
	cmd.Flags().Bool("no-progress", false, "disable the progress bar")
	cmd.Flags().Bool("verbose", false, "log each root directory entry as it is checked")
	return cmd
}

func RunFsck(cmd *cobra.Command, args []string) error {
	fs, err := mountImageWithFlags(cmd, args[0])
	if err != nil {
		return err
	}
	defer fs.Unmount()

	noProgress, _ := cmd.Flags().GetBool("no-progress")
	verbose, _ := cmd.Flags().GetBool("verbose")

	var log *slog.Logger
	if verbose {
		log = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	entries, err := fs.List()
	if err != nil {
		return err
	}

	var bar *pbar.ProgressBarState
	if !noProgress {
		bar = pbar.NewProgressBarState(int64(len(entries)))
	}

	report, err := fs.Fsck(func(checked, total int) {
		if log != nil {
			log.Debug("checked entry", "checked", checked, "total", total)
		}
		if bar != nil {
			bar.CheckedEntries = int64(checked)
			bar.Render(checked == total)
		}
	})
	if err != nil {
		return err
	}
	if bar != nil {
		bar.IssuesFound = len(report.Issues)
		bar.Render(true)
		bar.Finish()
	}

	fmt.Printf("Checked %d file(s), found %d issue(s)\n", report.FilesChecked, len(report.Issues))
	for _, issue := range report.Issues {
		fmt.Printf("  [%s] %s\n", issue.Code, issue.Description)
	}
	if len(report.Issues) > 0 {
		return fmt.Errorf("filesystem is inconsistent")
	}
	return nil
}
