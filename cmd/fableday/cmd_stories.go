package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mjarlund/fableday-tui/internal/story"
)

func init() {
	rootCmd.AddCommand(storiesCmd)
	storiesCmd.AddCommand(storiesListCmd, storiesShowCmd, storiesDeleteCmd)
	storiesListCmd.Flags().IntVar(&storiesListLimit, "limit", 0, "maximum stories to list (0 uses the configured default)")
}

var storiesListLimit int

var storiesCmd = &cobra.Command{
	Use:   "stories",
	Short: "Manage stories",
}

var storiesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stories",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		client := newClient(cfg, setupLogging(cfg))
		limit := storiesListLimit
		if limit <= 0 {
			limit = cfg.ListLimit
		}

		stories, err := client.Stories(cmd.Context(), limit)
		if err != nil {
			return err
		}
		if len(stories) == 0 {
			fmt.Println("No stories found.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tTITLE\tGENRE\tPROGRESS")
		for _, s := range stories {
			progress := fmt.Sprintf("day %d/%d", s.DayIndex, s.MaxDays)
			if s.Finished {
				progress = "finished"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", s.ID, s.Title, s.Genre, progress)
		}
		return w.Flush()
	},
}

var storiesShowCmd = &cobra.Command{
	Use:   "show <story-id>",
	Short: "Show one story's state and chapters",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		client := newClient(cfg, setupLogging(cfg))
		ctx := cmd.Context()

		snap, err := client.Story(ctx, args[0])
		if err != nil {
			return err
		}
		records, err := client.Chapters(ctx, args[0])
		if err != nil {
			return err
		}
		chapters, ending := story.Project(records)

		fmt.Printf("%s (%s)\n", snap.Title, snap.Genre)
		if snap.Finished {
			fmt.Printf("finished after day %d\n", snap.DayIndex-1)
		} else {
			fmt.Printf("day %d of %d\n", snap.DayIndex, snap.MaxDays)
		}
		if dom, ok := snap.EndingVector.Dominant(); ok {
			fmt.Printf("leaning toward: %s (%+d)\n", dom.Type, dom.Score)
		}
		fmt.Println()

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "CHAPTER\tEMOTION\tWORDS\tSUMMARY")
		for _, ch := range chapters {
			fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", ch.Label(), ch.Emotion, ch.WordCount, truncate(ch.Summary, 60))
		}
		if ending != nil {
			fmt.Fprintf(w, "Ending\t%s\t%d\t%s\n", ending.Type, ending.WordCount, truncate(ending.Title, 60))
		}
		return w.Flush()
	},
}

var storiesDeleteCmd = &cobra.Command{
	Use:   "delete <story-id>",
	Short: "Delete a story and all its chapters",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		client := newClient(cfg, setupLogging(cfg))
		if err := client.DeleteStory(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Printf("Story %s deleted.\n", args[0])
		return nil
	},
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
