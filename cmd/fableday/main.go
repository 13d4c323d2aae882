package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/mjarlund/fableday-tui/internal/api"
	"github.com/mjarlund/fableday-tui/internal/ui"
	"github.com/mjarlund/fableday-tui/internal/util"
)

var version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:          "fableday",
	Short:        "Terminal reading client for day-by-day generated fiction",
	SilenceUsage: true,
	Args:         cobra.MaximumNArgs(1),
	RunE:         runTUI,
}

func main() {
	// Load .env file if it exists (ignore error if file doesn't exist)
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig() util.Config {
	cfg, err := util.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

func logLevel(cfg util.Config) slog.Level {
	switch strings.ToLower(cfg.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

func setupLogging(cfg util.Config) *slog.Logger {
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel(cfg)}))
	slog.SetDefault(log)
	return log
}

// tuiLogging writes logs to a file under the user cache dir instead of
// stderr, which belongs to the alternate screen while the TUI runs. Logging
// is best-effort: when the file cannot be opened, log output is dropped.
func tuiLogging(cfg util.Config) (*slog.Logger, func()) {
	dir, err := os.UserCacheDir()
	if err == nil {
		dir = filepath.Join(dir, "fableday")
		err = os.MkdirAll(dir, 0o755)
	}
	var f *os.File
	if err == nil {
		f, err = os.OpenFile(filepath.Join(dir, "fableday.log"), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	}
	if err != nil {
		log := slog.New(slog.NewTextHandler(io.Discard, nil))
		slog.SetDefault(log)
		return log, func() {}
	}
	log := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: logLevel(cfg)}))
	slog.SetDefault(log)
	return log, func() { _ = f.Close() }
}

func newClient(cfg util.Config, log *slog.Logger) *api.Client {
	return api.New(cfg.APIURL, cfg.APITimeout, log)
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	log, closeLog := tuiLogging(cfg)
	defer closeLog()
	client := newClient(cfg, log)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	storyID := ""
	if len(args) > 0 {
		storyID = args[0]
	}
	return ui.Run(ctx, client, cfg, log, version, storyID)
}
