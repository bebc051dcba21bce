package tmux

import (
	"errors"
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strings"

	gotmux "github.com/atomicstack/gotmuxcc/gotmuxcc"
)

// ErrNoTarget is returned when a session operation receives a blank target.
var ErrNoTarget = errors.New("session target required")

// FetchSessions lists every session on the server together with the real
// (non control-mode) clients attached to it.
func FetchSessions(socketPath string) (SessionSnapshot, error) {
	client, err := newTmux(socketPath)
	if err != nil {
		return SessionSnapshot{}, err
	}
	defer client.Close()

	sessions, err := client.ListSessions()
	if err != nil {
		return SessionSnapshot{}, err
	}
	labels := fetchSessionLabels(client, os.Getenv("TMUX_BULK_ACTIONS_SESSION_FORMAT"))
	attached := realAttachedClients(client)
	current := currentSessionName(client)

	out := make([]Session, 0, len(sessions))
	for _, s := range sessions {
		if s == nil {
			continue
		}
		clients := attached[s.Name]
		label := labels[s.Name]
		if label == "" {
			label = defaultLabelForSession(s.Name, s.Windows, len(clients) > 0)
		}
		out = append(out, Session{
			Name:     s.Name,
			Label:    label,
			Attached: len(clients) > 0,
			Clients:  clients,
			Current:  s.Name == current,
			Windows:  s.Windows,
		})
	}
	return SessionSnapshot{Sessions: out, Current: current}, nil
}

// SwitchClient points clientID (or the most recently active client when
// empty) at the target session.
func SwitchClient(socketPath, clientID, target string) error {
	target = strings.TrimSpace(target)
	if target == "" {
		return ErrNoTarget
	}
	client, err := newTmux(socketPath)
	if err != nil {
		return err
	}
	defer client.Close()

	opts := &gotmux.SwitchClientOptions{TargetSession: target}
	if id := strings.TrimSpace(clientID); id != "" {
		opts.TargetClient = id
	}
	return client.SwitchClient(opts)
}

func NewSession(socketPath, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("session name required")
	}
	client, err := newTmux(socketPath)
	if err != nil {
		return err
	}
	defer client.Close()
	_, err = client.NewSession(&gotmux.SessionOptions{Name: name})
	return err
}

func RenameSession(socketPath, target, newName string) error {
	target = strings.TrimSpace(target)
	if target == "" {
		return ErrNoTarget
	}
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return fmt.Errorf("new session name required")
	}
	client, err := newTmux(socketPath)
	if err != nil {
		return err
	}
	defer client.Close()
	session, err := findSession(client, target)
	if err != nil {
		return err
	}
	return session.Rename(newName)
}

// DetachSessions detaches every client from each target. Sessions without
// a real client are skipped.
func DetachSessions(socketPath string, targets []string) error {
	if len(targets) == 0 {
		return nil
	}
	client, err := newTmux(socketPath)
	if err != nil {
		return err
	}
	defer client.Close()

	attached := realAttachedClients(client)
	var errs []error
	for _, target := range targets {
		name := strings.TrimSpace(target)
		if name == "" || len(attached[name]) == 0 {
			continue
		}
		session, err := findSession(client, name)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if err := session.Detach(); err != nil {
			errs = append(errs, fmt.Errorf("detach %s: %w", name, err))
		}
	}
	return errors.Join(errs...)
}

// KillSessions kills each target. Failures are collected so one missing
// session does not stop the rest.
func KillSessions(socketPath string, targets []string) error {
	if len(targets) == 0 {
		return nil
	}
	client, err := newTmux(socketPath)
	if err != nil {
		return err
	}
	defer client.Close()

	var errs []error
	for _, target := range targets {
		name := strings.TrimSpace(target)
		if name == "" {
			continue
		}
		session, err := findSession(client, name)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if err := session.Kill(); err != nil {
			errs = append(errs, fmt.Errorf("kill %s: %w", name, err))
		}
	}
	return errors.Join(errs...)
}

// ResolveSocketPath picks the tmux socket: explicit flag, then
// TMUX_BULK_ACTIONS_SOCKET, then $TMUX, then the default per-user socket.
func ResolveSocketPath(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if envSocket := os.Getenv("TMUX_BULK_ACTIONS_SOCKET"); envSocket != "" {
		return envSocket, nil
	}
	if tmuxEnv := os.Getenv("TMUX"); tmuxEnv != "" {
		parts := strings.Split(tmuxEnv, ",")
		if len(parts) > 0 && parts[0] != "" {
			return parts[0], nil
		}
	}
	baseDir := os.Getenv("TMUX_TMPDIR")
	if baseDir == "" {
		baseDir = "/tmp"
	}
	u, err := user.Current()
	if err != nil {
		return "", err
	}
	return filepath.Join(baseDir, fmt.Sprintf("tmux-%s", u.Uid), "default"), nil
}

func findSession(client tmuxClient, target string) (sessionHandle, error) {
	name := target
	if idx := strings.IndexRune(target, ':'); idx > 0 {
		name = target[:idx]
	}
	session, err := client.GetSessionByName(name)
	if err != nil {
		return nil, err
	}
	handle := newSessionHandle(session)
	if handle == nil {
		return nil, fmt.Errorf("session %s not found", name)
	}
	return handle, nil
}

func fetchSessionLabels(client tmuxClient, envFormat string) map[string]string {
	labelExpr := strings.TrimSpace(envFormat)
	if labelExpr != "" {
		labelExpr = fmt.Sprintf("#S: %s", labelExpr)
	} else {
		labelExpr = defaultSessionFormat
	}
	lines, err := client.ListSessionsFormat(fmt.Sprintf("#{session_name}\t%s", labelExpr))
	if err != nil {
		return map[string]string{}
	}
	labels := make(map[string]string, len(lines))
	for _, line := range lines {
		parts := strings.SplitN(strings.TrimSpace(line), "\t", 2)
		name := strings.TrimSpace(parts[0])
		if name == "" {
			continue
		}
		label := name
		if len(parts) > 1 {
			if trimmed := strings.TrimSpace(parts[1]); trimmed != "" {
				label = trimmed
			}
		}
		labels[name] = label
	}
	return labels
}

func defaultLabelForSession(name string, windows int, attached bool) string {
	label := fmt.Sprintf("%s: %d window", name, windows)
	if windows != 1 {
		label += "s"
	}
	if attached {
		label += " (attached)"
	}
	return label
}

// realAttachedClients maps session names to their non control-mode clients.
// gotmuxcc's own control connection would otherwise count as attached.
func realAttachedClients(client tmuxClient) map[string][]string {
	clients, err := client.ListClients()
	if err != nil {
		return nil
	}
	result := make(map[string][]string)
	for _, c := range clients {
		if c == nil || c.ControlMode || c.Session == "" {
			continue
		}
		result[c.Session] = append(result[c.Session], c.Name)
	}
	return result
}

func currentSessionName(client tmuxClient) string {
	if pane := strings.TrimSpace(os.Getenv("TMUX_PANE")); pane != "" {
		if name, err := client.DisplayMessage(pane, "#{session_name}"); err == nil {
			if name = strings.TrimSpace(name); name != "" {
				return name
			}
		}
	}
	if clients, err := client.ListClients(); err == nil {
		for _, c := range clients {
			if c != nil && !c.ControlMode && c.Session != "" {
				return c.Session
			}
		}
	}
	return ""
}
