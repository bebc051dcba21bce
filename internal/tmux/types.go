package tmux

import (
	gotmux "github.com/atomicstack/gotmuxcc/gotmuxcc"
)

// Session is one row of the session list.
type Session struct {
	Name     string
	Label    string
	Attached bool
	Clients  []string
	Current  bool
	Windows  int
}

// SessionSnapshot is the result of a single poll of the tmux server.
type SessionSnapshot struct {
	Sessions []Session
	Current  string
}

type sessionHandle interface {
	Rename(string) error
	Detach() error
	Kill() error
}

type tmuxClient interface {
	ListSessions() ([]*gotmux.Session, error)
	ListSessionsFormat(format string) ([]string, error)
	ListClients() ([]*gotmux.Client, error)
	SwitchClient(*gotmux.SwitchClientOptions) error
	GetSessionByName(string) (*gotmux.Session, error)
	NewSession(*gotmux.SessionOptions) (*gotmux.Session, error)
	DisplayMessage(target, format string) (string, error)
	Close() error
}

var (
	defaultSessionFormat = "#S: #{session_windows} windows#{?session_attached, (attached),}"

	newTmux = func(socketPath string) (tmuxClient, error) {
		if socketPath != "" {
			return gotmux.NewTmux(socketPath)
		}
		return gotmux.DefaultTmux()
	}

	newSessionHandle = func(s *gotmux.Session) sessionHandle {
		if s == nil {
			return nil
		}
		return &realSessionHandle{session: s}
	}
)

type realSessionHandle struct {
	session *gotmux.Session
}

func (h *realSessionHandle) Rename(name string) error {
	return h.session.Rename(name)
}

func (h *realSessionHandle) Detach() error {
	return h.session.Detach()
}

func (h *realSessionHandle) Kill() error {
	return h.session.Kill()
}
