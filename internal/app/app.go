package app

import (
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/tmux-bulk-actions/internal/backend"
	"github.com/atomicstack/tmux-bulk-actions/internal/logging/events"
	"github.com/atomicstack/tmux-bulk-actions/internal/menu"
	"github.com/atomicstack/tmux-bulk-actions/internal/tmux"
	"github.com/atomicstack/tmux-bulk-actions/internal/ui"
)

// Config describes user-provided application options.
type Config struct {
	SocketPath   string
	Width        int
	Height       int
	ShowFooter   bool
	Verbose      bool
	LayoutPath   string
	Gap          int
	PollInterval time.Duration
}

var (
	resolveSocketPath = tmux.ResolveSocketPath
	currentClientID   = tmux.CurrentClientID
	runProgram        = func(model tea.Model) error {
		_, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
		return err
	}
)

// Run bootstraps and executes the Bubble Tea program.
func Run(cfg Config) error {
	socketPath, err := resolveSocketPath(cfg.SocketPath)
	if err != nil {
		return fmt.Errorf("resolve socket path: %w", err)
	}
	registry := menu.BuildRegistry()
	layout, err := loadLayout(cfg.LayoutPath, registry)
	if err != nil {
		return err
	}
	watcher, err := backend.NewWatcher(backend.Options{
		SocketPath:   socketPath,
		PollInterval: cfg.PollInterval,
		LayoutPath:   cfg.LayoutPath,
		Registry:     registry,
	})
	if err != nil {
		return fmt.Errorf("start watcher: %w", err)
	}
	defer watcher.Stop()

	model := ui.NewModel(ui.Options{
		SocketPath: socketPath,
		ClientID:   currentClientID(socketPath),
		Width:      cfg.Width,
		Height:     cfg.Height,
		ShowFooter: cfg.ShowFooter,
		Verbose:    cfg.Verbose,
		Gap:        cfg.Gap,
		Layout:     layout,
		Registry:   registry,
		Watcher:    watcher,
	})
	err = runProgram(model)
	if errors.Is(err, tea.ErrProgramKilled) {
		err = nil
	}
	events.App.Exit(err)
	return err
}

func loadLayout(path string, registry *menu.Registry) (menu.Layout, error) {
	if path == "" {
		return menu.DefaultLayout(), nil
	}
	layout, err := menu.Load(path, registry)
	if err != nil {
		return menu.Layout{}, fmt.Errorf("load layout: %w", err)
	}
	return layout, nil
}
