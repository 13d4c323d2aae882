package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mjarlund/fableday-tui/internal/api"
)

func init() {
	rootCmd.AddCommand(newCmd)
	newCmd.Flags().BoolVar(&newQuick, "quick", false, "let the service invent title and protagonist")
	newCmd.Flags().StringVar(&newTitle, "title", "", "story title")
	newCmd.Flags().StringVar(&newProtagonist, "protagonist", "", "protagonist description")
	newCmd.Flags().IntVar(&newDays, "days", 7, "planned story length in days")
	newCmd.Flags().StringVar(&newDemo, "demo", "", "seed from a demo template instead of starting blank")
}

var (
	newQuick       bool
	newTitle       string
	newProtagonist string
	newDays        int
	newDemo        string
)

var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Start a fresh story",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		client := newClient(cfg, setupLogging(cfg))

		if newDemo != "" {
			days := newDays
			if !cmd.Flags().Changed("days") {
				days = 0
			}
			return startFromDemo(cmd.Context(), client, newDemo, days)
		}

		if newDays <= 0 {
			return fmt.Errorf("--days must be a positive number")
		}
		created, err := client.CreateStory(cmd.Context(), api.CreateStoryRequest{
			Quick:       newQuick,
			Title:       newTitle,
			Protagonist: newProtagonist,
			TotalDays:   newDays,
		})
		if err != nil {
			return err
		}
		fmt.Printf("Story %s created.\n", created.StoryID)
		return nil
	},
}
