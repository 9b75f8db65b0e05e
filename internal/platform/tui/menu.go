package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/array-heist/internal/core"
	"github.com/vovakirdan/array-heist/internal/games/heist"
	"github.com/vovakirdan/array-heist/internal/storage"
)

// MenuItem is one line of the level picker.
type MenuItem struct {
	Title  string
	Detail string
	Level  int  // level to start on; 0 for non-game items
	Scores bool // opens the best-times board
}

// MenuModel is the Bubble Tea model for the level picker.
type MenuModel struct {
	items     []MenuItem
	best      map[int]int // level -> best clear in seconds
	cursor    int
	width     int
	height    int
	config    core.RuntimeConfig
	keyMapper *KeyMapper
	quitting  bool
	selected  *MenuItem
	scores    bool // Tab pressed
}

// NewMenuModel creates a new menu model. The store is only read for best
// times and may be nil.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig) MenuModel {
	items := make([]MenuItem, 0, len(heist.Rules)+2)
	items = append(items, MenuItem{
		Title:  "Campaign",
		Detail: fmt.Sprintf("%d levels, %ds each", heist.MaxLevel, heist.TimeLimit),
		Level:  1,
	})
	for _, r := range heist.Rules {
		items = append(items, MenuItem{
			Title:  fmt.Sprintf("Level %d: %s", r.ID, r.Name),
			Detail: r.Describe(),
			Level:  r.ID,
		})
	}
	items = append(items, MenuItem{Title: "Best times", Scores: true})

	best := make(map[int]int, len(heist.Rules))
	if store != nil {
		for _, r := range heist.Rules {
			if secs, ok, err := store.BestTime(r.ID); err == nil && ok {
				best[r.ID] = secs
			}
		}
	}

	return MenuModel{
		items:     items,
		best:      best,
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		config:    cfg,
		keyMapper: NewKeyMapper(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionSelect:
		selected := m.items[m.cursor]
		if selected.Scores {
			m.scores = true
		} else {
			m.selected = &selected
		}
		return m, tea.Quit

	case MenuActionScores:
		m.scores = true
		return m, tea.Quit
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(titleStyle.Render(centerText("C O D E   B R E A K E R", m.width)))
	b.WriteString("\n")
	b.WriteString(centerText("The Array Heist", m.width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}

		line := cursor + item.Title
		if secs, ok := m.best[item.Level]; ok && item.Level > 0 && item.Title != "Campaign" {
			line += fmt.Sprintf("  (best %ds)", secs)
		}
		if i == m.cursor {
			line = focusedLabelStyle.Render(line)
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if detail := m.items[m.cursor].Detail; detail != "" {
		b.WriteString(dimStyle.Render(centerText(detail, m.width)))
	}
	b.WriteString("\n\n")
	controls := "Up/Down: Navigate  |  Enter: Select  |  Tab: Scores  |  Q: Quit"
	b.WriteString(centerText(controls, m.width))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the chosen item, or nil if none.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested the best-times board.
func (m MenuModel) WantsScoreboard() bool {
	return m.scores
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	Level           int
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// Result summarizes the menu's final state.
func (m MenuModel) Result() MenuResult {
	result := MenuResult{Config: m.Config()}

	switch {
	case m.WantsScoreboard():
		result.WantsScoreboard = true
	case m.Selected() != nil:
		result.Level = m.Selected().Level
	default:
		result.Quit = true
	}

	return result
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(store *storage.Store, cfg core.RuntimeConfig) (MenuResult, error) {
	model := NewMenuModel(store, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	return m.Result(), nil
}
