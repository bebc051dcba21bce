package tmux

import (
	"os"
	"strings"
)

// CurrentClientID resolves the tmux client that launched the popup, so
// switch-client targets the visible client rather than the control-mode
// connection. The first attached real client is used when TMUX_PANE does not
// resolve.
func CurrentClientID(socketPath string) string {
	client, err := newTmux(socketPath)
	if err != nil {
		return ""
	}
	defer client.Close()

	if pane := strings.TrimSpace(os.Getenv("TMUX_PANE")); pane != "" {
		if name, err := client.DisplayMessage(pane, "#{client_name}"); err == nil {
			if name = strings.TrimSpace(name); name != "" {
				return name
			}
		}
	}
	clients, err := client.ListClients()
	if err != nil {
		return ""
	}
	for _, c := range clients {
		if c != nil && !c.ControlMode && c.Name != "" {
			return c.Name
		}
	}
	return ""
}
