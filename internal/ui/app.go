package ui

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/issueboard/internal/config"
	"github.com/five82/issueboard/internal/issue"
	"github.com/five82/issueboard/internal/prefs"
	"github.com/five82/issueboard/internal/state"
)

// Store is the part of state.Store the board drives.
type Store interface {
	Snapshot() state.Snapshot
	FetchNow(ctx context.Context) error
	Mutate(ctx context.Context, id string, patch issue.Patch) error
	UndoLast(ctx context.Context) (bool, error)
	SetSearch(term string)
	SetAssignee(name string)
	SetSeverity(level *int)
	ClearFilters()
	ClearError()
}

// Options configures the UI.
type Options struct {
	Context   context.Context
	Store     Store
	Prefs     prefs.Prefs
	PrefsPath string // empty uses ~/.config/issueboard/prefs.toml
	Role      string // config.RoleAdmin or config.RoleContributor
	Notices   <-chan string
	Logger    *slog.Logger
	Tick      time.Duration // zero uses one second
}

// noticeTTL is how long a live-update notice stays on screen.
const noticeTTL = 5 * time.Second

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	store     Store
	logger    *slog.Logger
	prefs     prefs.Prefs
	prefsPath string
	notices   <-chan string
	tick      time.Duration

	// Components
	keys   keyMap
	help   help.Model
	search textinput.Model
	theme  Theme

	// Layout
	width  int
	height int
	ready  bool

	// Data state
	snapshot state.Snapshot
	role     string

	// Board state
	column     int   // index into issue.Statuses()
	rows       []int // selected card per column
	searching  bool
	detailID   string
	showRecent bool
	showHelp   bool

	// Transient feedback
	flash    string
	notice   string
	noticeAt time.Time
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	tick := opts.Tick
	if tick <= 0 {
		tick = time.Second
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	role := opts.Role
	if role != config.RoleContributor {
		role = config.RoleAdmin
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	search := textinput.New()
	search.Prompt = "/ "
	search.Placeholder = "title or tag"
	search.CharLimit = 80

	m := Model{
		ctx:       ctx,
		store:     opts.Store,
		logger:    logger,
		prefs:     opts.Prefs,
		prefsPath: prefsPath,
		notices:   opts.Notices,
		tick:      tick,
		keys:      DefaultKeyMap(),
		help:      help.New(),
		search:    search,
		theme:     GetTheme(opts.Prefs.Theme),
		role:      role,
		rows:      make([]int, len(issue.Statuses())),
	}
	m.refresh()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.tick)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.ready = true
		return m, nil

	case tickMsg:
		return m.handleTick(time.Time(msg))

	case refreshMsg:
		m.refresh()
		return m, nil

	case actionMsg:
		m.refresh()
		if msg.err != nil {
			// The store has already rolled back and set its error banner.
			m.logger.Debug("board action failed", "action", msg.done, "error", msg.err)
			m.flash = ""
			return m, nil
		}
		m.flash = msg.done
		return m, nil
	}

	var cmd tea.Cmd
	if m.searching {
		m.search, cmd = m.search.Update(msg)
	}
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	return m.renderMain()
}

// handleTick refreshes the snapshot, picks up live-update notices and expires
// stale ones.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	m.drainNotices(now)
	if m.notice != "" && now.Sub(m.noticeAt) > noticeTTL {
		m.notice = ""
	}
	m.refresh()
	return m, tickCmd(m.tick)
}

func (m *Model) drainNotices(now time.Time) {
	if m.notices == nil {
		return
	}
	for {
		select {
		case notice, ok := <-m.notices:
			if !ok {
				m.notices = nil
				return
			}
			if notice != "" {
				m.notice = notice
				m.noticeAt = now
			}
		default:
			return
		}
	}
}

// refresh copies the store state and keeps every column's selection in range.
func (m *Model) refresh() {
	if m.store == nil {
		return
	}
	m.snapshot = m.store.Snapshot()

	columns := m.columns()
	for i, status := range issue.Statuses() {
		m.rows[i] = clampRow(m.rows[i], len(columns[status]))
	}
}

func (m *Model) savePrefs() {
	if err := prefs.Save(m.prefsPath, m.prefs); err != nil {
		m.logger.Warn("save prefs failed", "path", m.prefsPath, "error", err)
	}
}

// Messages

type tickMsg time.Time

type refreshMsg struct{}

// actionMsg reports a finished store operation; done is the feedback shown
// on success.
type actionMsg struct {
	done string
	err  error
}

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// refreshSoon re-reads the store shortly after an action starts so its
// optimistic value shows without waiting for the next tick.
func refreshSoon() tea.Cmd {
	return tea.Tick(50*time.Millisecond, func(time.Time) tea.Msg {
		return refreshMsg{}
	})
}

// Run starts the Bubble Tea program and blocks until the user quits or the
// context is cancelled.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && m.ctx.Err() != nil {
		return nil
	}
	return err
}
