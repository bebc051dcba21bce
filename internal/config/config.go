package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"github.com/atomicstack/tmux-bulk-actions/internal/app"
)

// Config captures runtime configuration for the application.
type Config struct {
	App     app.Config
	Logging Logging
	Flags   map[string]string
	Args    []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

const (
	envSocketPath   = "TMUX_BULK_ACTIONS_SOCKET"
	envWidth        = "TMUX_BULK_ACTIONS_WIDTH"
	envHeight       = "TMUX_BULK_ACTIONS_HEIGHT"
	envShowFooter   = "TMUX_BULK_ACTIONS_FOOTER"
	envVerbose      = "TMUX_BULK_ACTIONS_VERBOSE"
	envTrace        = "TMUX_BULK_ACTIONS_TRACE"
	envLogFile      = "TMUX_BULK_ACTIONS_LOG_FILE"
	envLayout       = "TMUX_BULK_ACTIONS_LAYOUT"
	envGap          = "TMUX_BULK_ACTIONS_GAP"
	envPollInterval = "TMUX_BULK_ACTIONS_POLL_INTERVAL"
)

// Flags holds the values registered on a flag set by Bind. Read them back
// with Config once the flag set has been parsed.
type Flags struct {
	socket       *string
	width        *int
	height       *int
	footer       *bool
	trace        *bool
	verbose      *bool
	logFile      *string
	layout       *string
	gap          *int
	pollInterval *time.Duration
}

// Bind registers every option on fs. Defaults come from the matching
// TMUX_BULK_ACTIONS_* variables in environ.
func Bind(fs *pflag.FlagSet, environ []string) *Flags {
	env := parseEnv(environ)
	return &Flags{
		socket:       fs.String("socket", envOrDefault(env, envSocketPath, ""), "path to the tmux socket (overrides environment detection)"),
		width:        fs.Int("width", envOrInt(env, envWidth, 0), "desired viewport width in cells (0 uses terminal width)"),
		height:       fs.Int("height", envOrInt(env, envHeight, 0), "desired viewport height in rows (0 uses terminal height)"),
		footer:       fs.Bool("footer", envOrBool(env, envShowFooter, false), "enable footer hint row (disabled by default)"),
		trace:        fs.Bool("trace", envOrBool(env, envTrace, false), "enable verbose JSON trace logging"),
		verbose:      fs.Bool("verbose", envOrBool(env, envVerbose, false), "print success messages for actions"),
		logFile:      fs.String("log-file", envOrDefault(env, envLogFile, ""), "path to the log file"),
		layout:       fs.String("layout", envOrDefault(env, envLayout, ""), "YAML file describing promoted and secondary actions (watched for changes)"),
		gap:          fs.Int("gap", envOrInt(env, envGap, 0), "cells between bar buttons (0 uses the default)"),
		pollInterval: fs.Duration("poll-interval", envOrDuration(env, envPollInterval, 0), "how often tmux sessions are refreshed (0 uses the default)"),
	}
}

// Config assembles the parsed flag values. args is recorded verbatim for
// the startup trace.
func (f *Flags) Config(args []string) (Config, error) {
	if *f.width < 0 {
		return Config{}, fmt.Errorf("width must be >= 0 (got %d)", *f.width)
	}
	if *f.height < 0 {
		return Config{}, fmt.Errorf("height must be >= 0 (got %d)", *f.height)
	}

	cfg := Config{
		App: app.Config{
			SocketPath:   *f.socket,
			Width:        *f.width,
			Height:       *f.height,
			ShowFooter:   *f.footer,
			Verbose:      *f.verbose,
			LayoutPath:   *f.layout,
			Gap:          *f.gap,
			PollInterval: *f.pollInterval,
		},
		Logging: Logging{
			FilePath: *f.logFile,
			Trace:    *f.trace,
		},
		Flags: map[string]string{
			"socket":       *f.socket,
			"width":        strconv.Itoa(*f.width),
			"height":       strconv.Itoa(*f.height),
			"footer":       strconv.FormatBool(*f.footer),
			"trace":        strconv.FormatBool(*f.trace),
			"verbose":      strconv.FormatBool(*f.verbose),
			"logFile":      *f.logFile,
			"layout":       *f.layout,
			"gap":          strconv.Itoa(*f.gap),
			"pollInterval": f.pollInterval.String(),
		},
		Args: append([]string(nil), args...),
	}
	return cfg, nil
}

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	fs := pflag.NewFlagSet("tmux-bulk-actions", pflag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))
	flags := Bind(fs, environ)
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return flags.Config(args)
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrDuration(env map[string]string, key string, fallback time.Duration) time.Duration {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return parsed
}

// Validate checks values that parse cleanly but cannot be used.
func Validate(cfg Config) error {
	if cfg.App.Gap < 0 {
		return fmt.Errorf("gap must be >= 0 (got %d)", cfg.App.Gap)
	}
	if cfg.App.PollInterval < 0 {
		return fmt.Errorf("poll interval must be >= 0 (got %s)", cfg.App.PollInterval)
	}
	if path := strings.TrimSpace(cfg.App.LayoutPath); path != "" {
		info, err := os.Stat(path)
		if err != nil {
			return fmt.Errorf("layout file: %w", err)
		}
		if info.IsDir() {
			return errors.New("layout file: " + path + " is a directory")
		}
	}
	return nil
}
