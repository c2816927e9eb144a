// stackchat TUI - a terminal client for the OllamaStack backend.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/stackchat-tui/internal/api"
	"github.com/jeranaias/stackchat-tui/internal/app"
	"github.com/jeranaias/stackchat-tui/internal/config"
	"github.com/jeranaias/stackchat-tui/internal/storage"
	"github.com/jeranaias/stackchat-tui/internal/ui/chat"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func main() {
	var (
		configDir   = flag.String("config", "", "config directory (default ~/.stackchat)")
		apiURL      = flag.String("api-url", "", "backend base URL, overrides config")
		modelName   = flag.String("model", "", "model name, overrides config")
		ephemeral   = flag.Bool("ephemeral", false, "keep state in memory only")
		showVersion = flag.Bool("version", false, "print version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("stackchat %s (%s, built %s)\n", Version, GitCommit, BuildDate)
		return
	}

	dir := *configDir
	if dir == "" {
		var err error
		dir, err = config.Dir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: cannot determine config directory: %v\n", err)
			os.Exit(1)
		}
	}

	settings := config.LoadFrom(dir)
	if *apiURL != "" {
		settings.APIURL = *apiURL
	}
	if *modelName != "" {
		settings.DefaultModel = *modelName
	}
	settings.Validate()
	applyTheme(settings.Theme)

	var store storage.Storage
	if *ephemeral {
		store = storage.NewMemoryStorage()
	} else {
		store = storage.NewFileStorage(dir)
	}

	client := api.NewClient()
	controller := app.New(client, store, settings)

	program := tea.NewProgram(chat.NewModel(controller), tea.WithAltScreen())

	controller.Subscribe(func(v app.View) {
		program.Send(chat.ViewUpdatedMsg{View: v})
	})

	watcher, err := config.NewWatcher(dir, func(s config.Settings) {
		applyTheme(s.Theme)
		controller.ReloadSettings(s)
	})
	if err == nil {
		// A failed watch is not fatal; the session just runs on the
		// settings it started with.
		if err := watcher.Watch(); err == nil {
			defer watcher.Close()
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	controller.Start(ctx)
	defer controller.Close()

	if _, err := program.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// applyTheme forces dark or light rendering; "system" leaves terminal
// detection alone.
func applyTheme(theme string) {
	switch theme {
	case "dark":
		lipgloss.SetHasDarkBackground(true)
	case "light":
		lipgloss.SetHasDarkBackground(false)
	}
}
