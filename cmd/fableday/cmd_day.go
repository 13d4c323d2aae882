package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mjarlund/fableday-tui/internal/story"
)

func init() {
	rootCmd.AddCommand(dayCmd)
	dayCmd.Flags().StringVar(&dayEmotion, "emotion", "", "emotional stance for the day (required)")
	dayCmd.Flags().BoolVar(&dayRecap, "recap", true, "open the chapter with a short recap")
	dayCmd.Flags().Int64Var(&daySeed, "seed", 0, "deterministic generation seed (omitted when 0)")
	_ = dayCmd.MarkFlagRequired("emotion")
}

var (
	dayEmotion string
	dayRecap   bool
	daySeed    int64
)

var dayCmd = &cobra.Command{
	Use:   "day <story-id>",
	Short: "Write the story's next day",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		emotion := story.Emotion(dayEmotion)
		valid := false
		for _, e := range story.AllEmotions {
			if e == emotion {
				valid = true
				break
			}
		}
		if !valid {
			return fmt.Errorf("unknown emotion %q; one of %v", dayEmotion, story.AllEmotions)
		}

		cfg := loadConfig()
		client := newClient(cfg, setupLogging(cfg))

		var seed *int64
		if daySeed != 0 {
			seed = &daySeed
		}
		res, err := client.SubmitDay(cmd.Context(), args[0], emotion, dayRecap, seed)
		if err != nil {
			return err
		}

		fmt.Printf("Day %d written.\n\n%s\n", res.Day, res.Text)
		if dom, ok := res.EndingVector.Dominant(); ok {
			fmt.Printf("\nleaning toward: %s (%+d)\n", dom.Type, dom.Score)
		}
		if res.StoryComplete {
			fmt.Println("The story has reached its end; run 'fableday ending' to close it.")
		}
		return nil
	},
}
