package main

import "github.com/spf13/cobra"

func init() {
	rootCmd.AddCommand(readCmd)
}

var readCmd = &cobra.Command{
	Use:   "read [story-id]",
	Short: "Open the reader, optionally straight into one story",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runTUI,
}
