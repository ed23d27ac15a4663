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
	"github.com/spf13/cobra"
)

func DefineFormatCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "format <image_path> <total_blocks>",
		Short:        "Create a new, empty vfat image",
		Args:         cobra.ExactArgs(2),
		SilenceUsage: true,
		RunE:         RunFormat,
	}
	return cmd
}

func RunFormat(cmd *cobra.Command, args []string) error {
	var totalBlocks int
	if _, err := fmt.Sscanf(args[1], "%d", &totalBlocks); err != nil {
		return fmt.Errorf("invalid block count %q: %w", args[1], err)
	}
	if err := vfat.Format(args[0], totalBlocks); err != nil {
		return err
	}
	fmt.Printf("Formatted %s with %d blocks\n", args[0], totalBlocks)
	return nil
}
