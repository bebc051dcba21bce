package ui

import (
	"reflect"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/tmux-bulk-actions/internal/backend"
	"github.com/atomicstack/tmux-bulk-actions/internal/data/dispatcher"
	"github.com/atomicstack/tmux-bulk-actions/internal/measure"
	"github.com/atomicstack/tmux-bulk-actions/internal/menu"
	"github.com/atomicstack/tmux-bulk-actions/internal/overflow"
	"github.com/atomicstack/tmux-bulk-actions/internal/state"
	"github.com/atomicstack/tmux-bulk-actions/internal/theme"
	"github.com/atomicstack/tmux-bulk-actions/internal/ui/bar"
	"github.com/atomicstack/tmux-bulk-actions/internal/ui/command"
	uistate "github.com/atomicstack/tmux-bulk-actions/internal/ui/state"
)

// Mode describes which part of the popup owns the keyboard.
type Mode int

const (
	ModeList Mode = iota
	ModeBar
	ModeMenu
	ModeSessionForm
)

var styles = theme.Default()

const defaultGap = 1

type msgHandler func(tea.Msg) tea.Cmd

// Options configures a Model.
type Options struct {
	SocketPath string
	ClientID   string
	// Width and Height pin the popup size; zero follows the terminal.
	Width      int
	Height     int
	ShowFooter bool
	Verbose    bool
	// Gap is the number of cells between bar buttons.
	Gap        int
	Layout     menu.Layout
	Registry   *menu.Registry
	Watcher    *backend.Watcher
}

// Model implements the Bubble Tea model for the bulk actions popup.
type Model struct {
	list           *uistate.List
	width          int
	height         int
	fixedWidth     bool
	fixedHeight    bool
	errMsg         string
	infoMsg        string
	infoExpire     time.Time
	backend        *backend.Watcher
	backendState   map[backend.Kind]error
	backendLastErr string
	showFooter     bool
	verbose        bool
	sessionForm    *menu.SessionForm
	filterCursor   cursor.Model

	handlers map[reflect.Type]msgHandler

	registry   *menu.Registry
	bus        *command.Bus
	mode       Mode
	socketPath string
	clientID   string
	sessions   state.SessionStore
	layouts    state.LayoutStore
	dispatcher *dispatcher.Dispatcher

	coordinator *overflow.Coordinator
	measurer    *measure.Measurer
	painter     *bar.Painter
	secondary   []overflow.Secondary
	barCursor   int
	popup       *popupMenu
}

// NewModel initialises the UI state from opts.
func NewModel(opts Options) *Model {
	registry := opts.Registry
	if registry == nil {
		registry = menu.BuildRegistry()
	}
	layout := opts.Layout
	if len(layout.Promoted) == 0 && len(layout.Secondary) == 0 {
		layout = menu.DefaultLayout()
	}
	gap := opts.Gap
	if gap <= 0 {
		gap = defaultGap
	}
	sessions := state.NewSessionStore()
	layouts := state.NewLayoutStore(layout)
	painter := bar.NewPainter(styles, 0)
	m := &Model{
		list:         uistate.NewList(nil),
		backend:      opts.Watcher,
		backendState: map[backend.Kind]error{},
		showFooter:   opts.ShowFooter,
		verbose:      opts.Verbose,
		registry:     registry,
		bus:          command.New(),
		mode:         ModeList,
		socketPath:   opts.SocketPath,
		clientID:     opts.ClientID,
		sessions:     sessions,
		layouts:      layouts,
		dispatcher:   dispatcher.New(sessions, layouts),
		coordinator:  overflow.NewCoordinator(),
		measurer:     measure.New(painter, gap),
		painter:      painter,
	}
	if opts.Width > 0 {
		m.width = opts.Width
		m.fixedWidth = true
	}
	if opts.Height > 0 {
		m.height = opts.Height
		m.fixedHeight = true
	}
	c := cursor.New()
	if styles.Cursor != nil {
		c.Style = *styles.Cursor
	}
	if styles.Filter != nil {
		c.TextStyle = *styles.Filter
	}
	c.SetMode(cursor.CursorStatic)
	c.SetChar(" ")
	c.Focus()
	m.filterCursor = c
	m.registerHandlers()
	m.syncBar()
	return m
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	if m.backend != nil {
		return waitForBackendEvent(m.backend)
	}
	return nil
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, 4)
	if handled, cmd := m.handleActiveForm(msg); handled {
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
		return m, m.finishUpdate(cmds)
	}

	if handler := m.handlerFor(msg); handler != nil {
		if cmd := handler(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, m.finishUpdate(cmds)
}

func (m *Model) handleActiveForm(msg tea.Msg) (bool, tea.Cmd) {
	if m.mode != ModeSessionForm || m.sessionForm == nil {
		return false, nil
	}
	if _, ok := msg.(tea.KeyMsg); !ok {
		return false, nil
	}
	return m.handleSessionForm(msg)
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):            m.handleKeyMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}):     m.handleWindowSizeMsg,
		reflect.TypeOf(menu.ActionResult{}):     m.handleActionResultMsg,
		reflect.TypeOf(menu.SessionPrompt{}):    m.handleSessionPromptMsg,
		reflect.TypeOf(menu.SelectionRequest{}): m.handleSelectionRequestMsg,
		reflect.TypeOf(menu.RefreshRequest{}):   m.handleRefreshRequestMsg,
		reflect.TypeOf(backendEventMsg{}):       m.handleBackendEventMsg,
		reflect.TypeOf(backendDoneMsg{}):        m.handleBackendDoneMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

// finishUpdate brings the bar in line with whatever the handlers changed
// before the next View.
func (m *Model) finishUpdate(cmds []tea.Cmd) tea.Cmd {
	m.syncBar()
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

func (m *Model) setMode(mode Mode) {
	m.mode = mode
	if mode == ModeList {
		m.filterCursor.Focus()
		return
	}
	m.filterCursor.Blur()
}
