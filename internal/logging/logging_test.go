package logging

import (
	"bufio"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func withLogFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nested", "trace.log")
	Configure(path)
	prevNow := now
	now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }
	t.Cleanup(func() {
		Configure("")
		SetTraceEnabled(false)
		now = prevNow
	})
	return path
}

func TestTraceWritesJSONLines(t *testing.T) {
	path := withLogFile(t)
	SetTraceEnabled(true)
	Trace("bar.allocate", map[string]interface{}{"visible": 2})
	Trace("bar.discard", nil)

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open log: %v", err)
	}
	defer f.Close()
	var events []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var entry struct {
			Time    time.Time              `json:"time"`
			Event   string                 `json:"event"`
			Payload map[string]interface{} `json:"payload"`
		}
		if err := json.Unmarshal(scanner.Bytes(), &entry); err != nil {
			t.Fatalf("decode %q: %v", scanner.Text(), err)
		}
		if entry.Time.Year() != 2024 {
			t.Fatalf("unexpected time %v", entry.Time)
		}
		events = append(events, entry.Event)
	}
	if strings.Join(events, ",") != "bar.allocate,bar.discard" {
		t.Fatalf("unexpected events %v", events)
	}
}

func TestTraceDisabledWritesNothing(t *testing.T) {
	path := withLogFile(t)
	Trace("ignored", nil)
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("expected no log file, stat err=%v", err)
	}
}

func TestErrorAppends(t *testing.T) {
	path := withLogFile(t)
	Error(nil)
	Error(errors.New("first"))
	Error(errors.New("second"))
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	text := string(data)
	if !strings.Contains(text, "first") || !strings.Contains(text, "second") {
		t.Fatalf("expected both errors in log, got %q", text)
	}
	if Path() != path {
		t.Fatalf("expected path %s, got %s", path, Path())
	}
}
