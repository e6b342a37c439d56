package main

import (
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/laundromat-id/adminctl/internal/apiclient"
	"github.com/laundromat-id/adminctl/internal/pkg/config"
	"github.com/laundromat-id/adminctl/internal/pkg/telemetry"
	"github.com/laundromat-id/adminctl/internal/session"
	"github.com/laundromat-id/adminctl/internal/tui"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	// Logs go to a file so they never race the TUI for the terminal.
	logFile, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open log file: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()
	telemetry.InitLogger(logFile, slog.LevelInfo)

	api, err := apiclient.New(apiclient.Config{
		BaseURL: cfg.BaseURL,
		Timeout: cfg.Timeout,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "api client: %v\n", err)
		os.Exit(1)
	}

	sess := session.New(api)
	app := tui.NewApp(api, sess, cfg.PageLimit)

	if _, err := tea.NewProgram(app, tea.WithAltScreen()).Run(); err != nil {
		fmt.Fprintf(os.Stderr, "adminctl: %v\n", err)
		os.Exit(1)
	}
}
