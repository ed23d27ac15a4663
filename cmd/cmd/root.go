package cmd

import (
	"github.com/spf13/cobra"
)

const AppName = "vfatfs"

func Execute() error {
	rootCmd := &cobra.Command{
		Use:   AppName,
		Short: AppName + " - a FAT-style virtual disk filesystem",
	}

	rootCmd.AddCommand(DefineFormatCommand())
	rootCmd.AddCommand(DefineInfoCommand())
	rootCmd.AddCommand(DefineLsCommand())
	rootCmd.AddCommand(DefineCreateCommand())
	rootCmd.AddCommand(DefineRmCommand())
	rootCmd.AddCommand(DefineCatCommand())
	rootCmd.AddCommand(DefinePutCommand())
	rootCmd.AddCommand(DefineGetCommand())
	rootCmd.AddCommand(DefineStatCommand())
	rootCmd.AddCommand(DefineFsckCommand())
	rootCmd.AddCommand(DefineReportCommand())
	rootCmd.AddCommand(DefineMountCommand())

	return rootCmd.Execute()
}
