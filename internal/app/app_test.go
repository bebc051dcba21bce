package app

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/tmux-bulk-actions/internal/menu"
)

func stubSocket(t *testing.T, path string, err error) {
	t.Helper()
	orig := resolveSocketPath
	resolveSocketPath = func(string) (string, error) { return path, err }
	t.Cleanup(func() { resolveSocketPath = orig })
}

func TestLoadLayoutDefaultsWithoutPath(t *testing.T) {
	layout, err := loadLayout("", menu.BuildRegistry())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := menu.DefaultLayout()
	if len(layout.Promoted) != len(want.Promoted) || len(layout.Secondary) != len(want.Secondary) {
		t.Fatalf("expected default layout, got %+v", layout)
	}
}

func TestLoadLayoutReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.yaml")
	data := "promoted:\n  - session:kill\nsecondary:\n  - app:quit\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write layout: %v", err)
	}
	layout, err := loadLayout(path, menu.BuildRegistry())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(layout.Promoted) != 1 || layout.Promoted[0].Action != "session:kill" {
		t.Fatalf("unexpected promoted entries: %+v", layout.Promoted)
	}
}

func TestRunReportsSocketResolutionFailure(t *testing.T) {
	stubSocket(t, "", errors.New("no tmux"))
	err := Run(Config{})
	if err == nil || !strings.Contains(err.Error(), "resolve socket path") {
		t.Fatalf("expected socket error, got %v", err)
	}
}

func TestRunRejectsUnknownLayoutAction(t *testing.T) {
	stubSocket(t, "/tmp/unused.sock", nil)
	path := filepath.Join(t.TempDir(), "layout.yaml")
	if err := os.WriteFile(path, []byte("promoted:\n  - session:explode\n"), 0o644); err != nil {
		t.Fatalf("write layout: %v", err)
	}
	orig := runProgram
	runProgram = func(tea.Model) error {
		t.Fatalf("program should not start with an invalid layout")
		return nil
	}
	t.Cleanup(func() { runProgram = orig })

	err := Run(Config{LayoutPath: path})
	if !errors.Is(err, menu.ErrUnknownAction) {
		t.Fatalf("expected unknown action error, got %v", err)
	}
}
