package tui

import (
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/array-heist/internal/config"
	"github.com/vovakirdan/array-heist/internal/core"
	"github.com/vovakirdan/array-heist/internal/games/heist"
	"github.com/vovakirdan/array-heist/internal/metrics"
	"github.com/vovakirdan/array-heist/internal/storage"
)

// field identifies what has keyboard focus.
type field int

const (
	fieldIndex field = iota
	fieldValue
	fieldPattern
	fieldBoard
	fieldCount
)

// Options configures a game Model.
type Options struct {
	Runtime core.RuntimeConfig
	Config  config.HeistConfig
	Store   *storage.Store // nil disables result records
	Logger  *log.Logger    // nil discards logs
	Metrics *metrics.Metrics
	Player  string
	RunID   string // empty generates one

	// Embedded models report Back to their parent instead of quitting.
	Embedded bool
}

// Model is the Bubble Tea model for one heist game.
type Model struct {
	session *heist.Session
	screen  *core.Screen
	cfg     config.HeistConfig
	runtime core.RuntimeConfig
	store   *storage.Store
	logger  *log.Logger
	metrics *metrics.Metrics
	player  string
	runID   string
	token   uuid.UUID // tags this game's timer messages

	keyMapper *KeyMapper
	help      help.Model
	inputs    [fieldBoard]textinput.Model
	focus     field
	cursor    int

	shift     *heist.ShiftDescriptor
	step      *heist.SearchStep
	message   *heist.Event
	flashGen  uint64
	searchGen uint64

	embedded   bool
	quitting   bool
	backToMenu bool
}

// NewModel creates a new Bubble Tea model with a fresh session.
func NewModel(opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	runID := opts.RunID
	if runID == "" {
		runID = uuid.NewString()
	}
	logger = logger.With("run", runID)

	m := Model{
		screen:    core.NewScreen(opts.Runtime.ScreenW, heist.ViewRows),
		cfg:       opts.Config,
		runtime:   opts.Runtime,
		store:     opts.Store,
		logger:    logger,
		metrics:   opts.Metrics,
		player:    opts.Player,
		runID:     runID,
		token:     uuid.New(),
		keyMapper: NewKeyMapper(),
		help:      help.New(),
		embedded:  opts.Embedded,
	}
	m.help.Width = opts.Runtime.ScreenW

	m.session = heist.NewSession(
		heist.WithSeed(opts.Runtime.Seed),
		heist.WithStartLevel(opts.Runtime.StartLevel),
		heist.WithHints(opts.Config.Hints.Enabled),
		heist.WithListener(m.logEvent),
	)

	m.inputs[fieldIndex] = newInput("Index ", "0-9", 2)
	m.inputs[fieldValue] = newInput("Value ", "0-9", 2)
	m.inputs[fieldPattern] = newInput("Search ", "e.g. 1,2,3", 3*heist.Capacity)
	m.inputs[fieldIndex].Focus()

	return m
}

func newInput(prompt, placeholder string, limit int) textinput.Model {
	ti := textinput.New()
	ti.Prompt = prompt
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	ti.Width = limit + 2
	ti.PromptStyle = labelStyle
	return ti
}

// Init starts the countdown of the first level.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, clockCmd(m.token, m.session.ClockID()))
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.runtime.ScreenW = msg.Width
		m.runtime.ScreenH = msg.Height
		m.screen.Resize(msg.Width, heist.ViewRows)
		m.help.Width = msg.Width
		return m, nil

	case ClockMsg:
		return m.handleClock(msg)

	case SearchStepMsg:
		return m.handleSearchStep(msg)

	case SearchDoneMsg:
		if msg.Game == m.token && msg.Gen == m.searchGen {
			m.step = nil
		}
		return m, nil

	case FlashDoneMsg:
		if msg.Game == m.token && msg.Gen == m.flashGen {
			m.shift = nil
		}
		return m, nil
	}

	return m.updateInput(msg)
}

// handleKey maps a key to an intent, or hands it to the focused text field.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keyMapper.MapKey(msg, m.focus == fieldBoard)

	switch action {
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case core.ActionBack:
		m.backToMenu = true
		if m.embedded {
			return m, nil
		}
		return m, tea.Quit
	case core.ActionNextField:
		return m, m.setFocus((m.focus + 1) % fieldCount)
	case core.ActionPrevField:
		return m, m.setFocus((m.focus + fieldCount - 1) % fieldCount)
	case core.ActionCursorLeft:
		m.cursor = core.Clamp(m.cursor-1, 0, heist.Capacity-1)
		return m, nil
	case core.ActionCursorRight:
		m.cursor = core.Clamp(m.cursor+1, 0, heist.Capacity-1)
		return m, nil
	case core.ActionNone:
		return m.updateInput(msg)
	}

	return m.dispatch(action)
}

// dispatch runs a game intent against the session.
func (m Model) dispatch(action core.Action) (tea.Model, tea.Cmd) {
	var res heist.Result

	switch action {
	case core.ActionSubmit:
		switch m.focus {
		case fieldIndex, fieldValue:
			res = m.session.Insert(m.inputs[fieldIndex].Value(), m.inputs[fieldValue].Value())
			if res.OK() {
				m.inputs[fieldValue].Reset()
			}
		case fieldPattern:
			res = m.session.Search(m.inputs[fieldPattern].Value())
		default:
			return m, nil
		}
	case core.ActionDelete:
		res = m.session.Delete(m.inputs[fieldIndex].Value())
	case core.ActionQuickDelete:
		res = m.session.Delete(strconv.Itoa(m.cursor))
	case core.ActionClear:
		res = m.session.ClearArray()
	case core.ActionRestart:
		res = m.session.RestartLevel()
	case core.ActionNextLevel:
		res = m.session.AdvanceLevel()
	case core.ActionHint:
		res = m.session.ToggleHint()
	default:
		return m, nil
	}

	cmd := m.apply(res)
	return m, cmd
}

// handleClock forwards a countdown second. Ticks from a retired stream are
// dropped, which also ends their chain.
func (m Model) handleClock(msg ClockMsg) (tea.Model, tea.Cmd) {
	if msg.Game != m.token || !m.session.AcceptsClock(msg.ID) {
		return m, nil
	}

	cmd := m.apply(m.session.TickClock())
	if m.session.ClockRunning() {
		cmd = tea.Batch(cmd, clockCmd(m.token, msg.ID))
	}
	return m, cmd
}

// handleSearchStep pulls one window of the in-flight search.
func (m Model) handleSearchStep(msg SearchStepMsg) (tea.Model, tea.Cmd) {
	if msg.Game != m.token || msg.Gen != m.searchGen || !m.session.Searching() {
		return m, nil
	}

	res := m.session.StepSearch()
	cmd := m.apply(res)
	m.step = res.Step

	if m.session.Searching() {
		return m, tea.Batch(cmd, searchStepCmd(m.cfg.StepDelay(), m.token, m.searchGen))
	}
	return m, tea.Batch(cmd, searchDoneCmd(m.cfg.ResultHold(), m.token, m.searchGen))
}

// apply folds a session result into presentation state and returns any
// follow-up commands it needs.
func (m *Model) apply(res heist.Result) tea.Cmd {
	var cmds []tea.Cmd

	if last, ok := res.Last(); ok {
		m.message = &last
	}

	if res.Shift != nil {
		m.shift = res.Shift
		m.flashGen++
		cmds = append(cmds, flashCmd(m.cfg.Flash(), m.token, m.flashGen))
	}

	for _, e := range res.Events {
		switch e.Kind {
		case heist.EventSearchStarted:
			m.searchGen++
			m.step = nil
			cmds = append(cmds, searchStepCmd(m.cfg.StepDelay(), m.token, m.searchGen))
		case heist.EventSearchCancelled:
			m.searchGen++
			m.step = nil
		case heist.EventLevelStarted:
			m.shift = nil
			m.step = nil
			cmds = append(cmds, clockCmd(m.token, m.session.ClockID()))
		case heist.EventLevelWon, heist.EventTimedOut:
			m.record(e)
		}
	}

	return tea.Batch(cmds...)
}

// record stores a finished level. Each outcome event is emitted once, so
// each level attempt is stored at most once.
func (m *Model) record(e heist.Event) {
	lvl := m.session.Level()
	r := storage.LevelResult{
		RunID:       m.runID,
		Player:      m.player,
		Level:       lvl.Number(),
		SecretLen:   lvl.Rule().SecretLen,
		Reversed:    lvl.Reversed(),
		Outcome:     storage.OutcomeWon,
		ElapsedSecs: lvl.Elapsed(),
	}
	if e.Kind == heist.EventTimedOut {
		r.Outcome = storage.OutcomeTimedOut
		r.ElapsedSecs = heist.TimeLimit
	}

	m.logger.Info("level finished", "level", r.Level, "outcome", r.Outcome, "secs", r.ElapsedSecs, "player", m.player)
	m.metrics.ObserveOutcome(r.Level, string(r.Outcome), r.ElapsedSecs)

	if m.store == nil {
		return
	}
	if _, err := m.store.SaveResult(r); err != nil {
		m.logger.Warn("could not save result", "error", err)
	}
}

// logEvent is the session listener.
func (m Model) logEvent(e heist.Event) {
	m.logger.Debug(e.Message, "event", e.Kind, "severity", e.Severity, "level", e.Level)
	m.metrics.ObserveEvent(e.Kind.String(), e.Severity.String())
}

// setFocus moves keyboard focus to f.
func (m *Model) setFocus(f field) tea.Cmd {
	m.focus = f
	var cmd tea.Cmd
	for i := range m.inputs {
		if field(i) == f {
			cmd = m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
	return cmd
}

// updateInput forwards msg to the focused text field.
func (m Model) updateInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.focus == fieldBoard {
		return m, nil
	}
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	cursor := -1
	if m.focus == fieldBoard {
		cursor = m.cursor
	}
	heist.Render(m.screen, m.session.Snapshot(), heist.Overlay{
		Shift:       m.shift,
		Step:        m.step,
		Cursor:      cursor,
		Message:     m.message,
		EmptyGlyph:  m.cfg.Display.EmptyGlyph,
		ShowIndices: m.cfg.Display.ShowIndices,
	})

	return lipgloss.JoinVertical(lipgloss.Left,
		RenderScreen(m.screen),
		m.viewInputs(),
		m.help.View(m.keyMapper.Keys()),
	)
}

// viewInputs renders the three text fields and the board focus marker.
func (m Model) viewInputs() string {
	parts := make([]string, 0, len(m.inputs)+1)
	for i := range m.inputs {
		parts = append(parts, m.inputs[i].View())
	}

	board := labelStyle.Render("Board")
	if m.focus == fieldBoard {
		board = focusedLabelStyle.Render("[Board]")
	}
	parts = append(parts, board)

	return panelStyle.Render(strings.Join(parts, "   "))
}

// Token returns the tag carried by this game's timer messages.
func (m Model) Token() uuid.UUID {
	return m.token
}

// Session returns the underlying game session.
func (m Model) Session() *heist.Session {
	return m.session
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts the Bubble Tea program with a new game model. It reports
// whether the player asked to go back rather than quit.
func Run(opts Options) (back bool, err error) {
	opts.Embedded = false
	p := tea.NewProgram(
		NewModel(opts),
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	final, err := p.Run()
	if err != nil {
		return false, err
	}
	if fm, ok := final.(Model); ok {
		return fm.BackToMenu(), nil
	}
	return false, nil
}
