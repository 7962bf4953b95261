package main

import (
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"alert-dashboard/internal/alertapi"
	"alert-dashboard/internal/config"
	"alert-dashboard/internal/logging"
	"alert-dashboard/internal/tui"
)

func main() {
	cfg, err := config.LoadDashboard()
	if err != nil {
		log.Fatal("Config load failed:", err)
	}

	// The terminal belongs to the UI, so logs go to file only.
	logger, err := logging.New(cfg.Logging.Dir, "dashboard", cfg.Logging.Level, false)
	if err != nil {
		log.Fatal("Logger init failed:", err)
	}
	defer logger.Close()

	client := alertapi.New(cfg.APIURL, nil)
	logger.Infof("Dashboard started, API base URL %s", client.BaseURL())

	p := tea.NewProgram(tui.NewApp(client, logger), tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		logger.Errorf("Dashboard exited with error: %v", err)
		fmt.Fprintf(os.Stderr, "dashboard: %v\n", err)
		logger.Close()
		os.Exit(1)
	}
	logger.Info("Dashboard stopped")
}
