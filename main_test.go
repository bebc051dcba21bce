package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/atomicstack/tmux-bulk-actions/internal/app"
	"github.com/atomicstack/tmux-bulk-actions/internal/config"
)

func TestCollectTTYDetailsIncludesStandardDescriptors(t *testing.T) {
	info := collectTTYDetails()
	if len(info.Probes) != 3 {
		t.Fatalf("expected 3 probe entries, got %d", len(info.Probes))
	}
	expected := []string{"stdin", "stdout", "stderr"}
	for i, name := range expected {
		if info.Probes[i].Name != name {
			t.Fatalf("expected probe %d name %q, got %q", i, name, info.Probes[i].Name)
		}
	}
}

func TestStartupTracePayloadIncludesFlags(t *testing.T) {
	cfg := config.Config{
		App: app.Config{
			SocketPath: "socket-path",
			Width:      80,
			Height:     24,
			ShowFooter: true,
			Verbose:    true,
			LayoutPath: "layout.yaml",
			Gap:        2,
		},
		Logging: config.Logging{
			FilePath: "trace.log",
			Trace:    true,
		},
		Flags: map[string]string{
			"socket":  "socket-path",
			"width":   "80",
			"height":  "24",
			"footer":  "true",
			"verbose": "true",
			"layout":  "layout.yaml",
		},
		Args: []string{"--socket", "socket-path"},
	}

	payload := startupTracePayload(cfg)

	flagsValue, ok := payload["flags"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected flags map in payload")
	}
	if flagsValue["socket"] != "socket-path" {
		t.Fatalf("expected socket flag %q, got %v", "socket-path", flagsValue["socket"])
	}
	if flagsValue["width"] != "80" {
		t.Fatalf("expected width 80, got %v", flagsValue["width"])
	}
	if flagsValue["height"] != "24" {
		t.Fatalf("expected height 24, got %v", flagsValue["height"])
	}
	if flagsValue["footer"] != "true" {
		t.Fatalf("expected footer flag true, got %v", flagsValue["footer"])
	}
	if flagsValue["trace"] != true {
		t.Fatalf("expected trace flag true, got %v", flagsValue["trace"])
	}
	if flagsValue["verbose"] != "true" {
		t.Fatalf("expected verbose flag true, got %v", flagsValue["verbose"])
	}
	if flagsValue["layout"] != "layout.yaml" {
		t.Fatalf("expected layout flag, got %v", flagsValue["layout"])
	}
	if flagsValue["logFile"] != "trace.log" {
		t.Fatalf("expected log file trace.log, got %v", flagsValue["logFile"])
	}

	if _, ok := payload["tty"].(ttyDetails); !ok {
		t.Fatalf("expected tty details in payload")
	}
	if cfgValue, ok := payload["config"].(config.Config); !ok {
		t.Fatalf("expected config in payload")
	} else if cfgValue.App != cfg.App {
		t.Fatalf("expected app config %#v, got %#v", cfg.App, cfgValue.App)
	}
}

func TestAllocateCommandPrintsPlacement(t *testing.T) {
	root := newRootCommand(nil, nil)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"allocate", "--disclosure", "5", "--container", "25", "10", "10", "10"})
	if err := root.Execute(); err != nil {
		t.Fatalf("allocate failed: %v", err)
	}
	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	if len(lines) != 5 {
		t.Fatalf("expected header, three rows and disclosure, got %q", out.String())
	}
	if !strings.HasSuffix(lines[1], "inline") || !strings.HasSuffix(lines[2], "inline") {
		t.Fatalf("expected first two buttons inline, got %q", out.String())
	}
	if !strings.HasSuffix(lines[3], "overflow") {
		t.Fatalf("expected third button in overflow, got %q", lines[3])
	}
	if !strings.Contains(lines[4], "disclosure shown") {
		t.Fatalf("expected disclosure shown, got %q", lines[4])
	}
}

func TestAllocateCommandEverythingFits(t *testing.T) {
	root := newRootCommand(nil, nil)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"allocate", "--disclosure", "16", "--container", "40", "9", "9", "7", "11"})
	if err := root.Execute(); err != nil {
		t.Fatalf("allocate failed: %v", err)
	}
	if strings.Contains(out.String(), "overflow") {
		t.Fatalf("expected no overflow, got %q", out.String())
	}
	if !strings.Contains(out.String(), "disclosure hidden") {
		t.Fatalf("expected disclosure hidden, got %q", out.String())
	}
}

func TestAllocateCommandRejectsBadWidth(t *testing.T) {
	root := newRootCommand(nil, nil)
	root.SetOut(new(bytes.Buffer))
	root.SetArgs([]string{"allocate", "--container", "10", "wide"})
	if err := root.Execute(); err == nil {
		t.Fatalf("expected error for non-numeric width")
	}
}

func TestAllocateCommandRequiresContainerWidth(t *testing.T) {
	for _, args := range [][]string{
		{"allocate", "10", "10"},
		{"allocate", "--container", "0", "10"},
		{"allocate", "--container", "-3", "10"},
	} {
		root := newRootCommand(nil, nil)
		var out bytes.Buffer
		root.SetOut(&out)
		root.SetArgs(args)
		err := root.Execute()
		if err == nil || !strings.Contains(err.Error(), "--container") {
			t.Fatalf("%v: expected container width error, got %v", args, err)
		}
		if out.Len() != 0 {
			t.Fatalf("%v: expected no allocation output, got %q", args, out.String())
		}
	}
}

func TestRootCommandReportsConfigErrors(t *testing.T) {
	root := newRootCommand([]string{"--layout", "/nonexistent/layout.yaml"}, nil)
	root.SetArgs([]string{"--layout", "/nonexistent/layout.yaml"})
	err := root.Execute()
	var cfgErr configError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}
