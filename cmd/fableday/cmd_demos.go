package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mjarlund/fableday-tui/internal/api"
)

func init() {
	rootCmd.AddCommand(demosCmd)
	demosCmd.AddCommand(demosListCmd, demosStartCmd)
	demosStartCmd.Flags().IntVar(&demosStartDays, "days", 0, "override the demo's planned story length")
}

var demosStartDays int

var demosCmd = &cobra.Command{
	Use:   "demos",
	Short: "Browse and start demo stories",
}

var demosListCmd = &cobra.Command{
	Use:   "list",
	Short: "List demo templates",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		client := newClient(cfg, setupLogging(cfg))

		demos, err := client.Demos(cmd.Context())
		if err != nil {
			return err
		}
		if len(demos) == 0 {
			fmt.Println("No demos available.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tTITLE\tGENRE\tDAYS\tDESCRIPTION")
		for _, d := range demos {
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n", d.ID, d.Title, d.Genre, d.TotalDays, truncate(d.Description, 50))
		}
		return w.Flush()
	},
}

var demosStartCmd = &cobra.Command{
	Use:   "start <demo-id>",
	Short: "Create a story from a demo template",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		client := newClient(cfg, setupLogging(cfg))
		return startFromDemo(cmd.Context(), client, args[0], demosStartDays)
	},
}

// startFromDemo seeds a story from a demo, looking up the demo's own planned
// length when days is not given.
func startFromDemo(ctx context.Context, client *api.Client, demoID string, days int) error {
	if days <= 0 {
		demos, err := client.Demos(ctx)
		if err != nil {
			return err
		}
		for _, d := range demos {
			if d.ID == demoID {
				days = d.TotalDays
				break
			}
		}
		if days <= 0 {
			return fmt.Errorf("unknown demo %q; see 'fableday demos list'", demoID)
		}
	}

	created, err := client.CreateFromDemo(ctx, demoID, days)
	if err != nil {
		return err
	}
	fmt.Printf("Story %s created.\n", created.StoryID)
	return nil
}
