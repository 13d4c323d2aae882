package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(endingCmd)
}

var endingCmd = &cobra.Command{
	Use:   "ending <story-id>",
	Short: "Write the story's final chapter",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		client := newClient(cfg, setupLogging(cfg))

		end, err := client.SubmitEnding(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		fmt.Printf("%s (%s)\n\n%s\n", end.Title, end.Type, end.Text)
		if len(end.Resolved) > 0 {
			fmt.Printf("\nresolved: %s\n", strings.Join(end.Resolved, ", "))
		}
		if len(end.Unresolved) > 0 {
			fmt.Printf("left open: %s\n", strings.Join(end.Unresolved, ", "))
		}
		return nil
	},
}
