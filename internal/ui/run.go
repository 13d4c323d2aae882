package ui

import (
	"context"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mjarlund/fableday-tui/internal/api"
	"github.com/mjarlund/fableday-tui/internal/util"
)

// Run boots the TUI program and blocks until it exits. A non-empty storyID
// skips the landing screen and opens that story directly.
func Run(ctx context.Context, client *api.Client, cfg util.Config, log *slog.Logger, version, storyID string) error {
	m := initialModel(ctx, client, cfg, log, version, storyID)
	program := tea.NewProgram(m, tea.WithContext(ctx))
	_, err := program.Run()
	return err
}
