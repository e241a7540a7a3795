package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/runway/internal/config"
	"github.com/vovakirdan/runway/internal/core"
	"github.com/vovakirdan/runway/internal/storage"
)

// MenuItem is one selectable difficulty.
type MenuItem struct {
	Preset config.DifficultyPreset
	Title  string
	Detail string // Speed and spawn summary
	Best   int    // Best recorded score, 0 when unknown
}

// MenuModel is the Bubble Tea model for the difficulty picker.
type MenuModel struct {
	items          []MenuItem
	cursor         int
	width          int
	height         int
	player         string
	config         core.RuntimeConfig
	keyMapper      *KeyMapper
	quitting       bool
	selected       *MenuItem
	openScoreboard bool
}

// NewMenuModel creates a menu with the cursor on the configured default
// difficulty. Best scores are read from store when it is not nil.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig, game config.RunwayConfig, player string) MenuModel {
	items := make([]MenuItem, 0, 3)
	cursor := 0
	def, _ := config.ParsePreset(game.DefaultDifficulty)

	for i, p := range config.Presets() {
		row := game.Difficulties[string(p)]
		item := MenuItem{
			Preset: p,
			Title:  strings.ToUpper(string(p[:1])) + string(p[1:]),
			Detail: fmt.Sprintf("speed %.1f  obstacle every %.1fs", row.ForwardSpeed, float64(row.ObstacleIntervalMS)/1000),
		}
		if store != nil {
			if stats, err := store.Stats(string(p)); err == nil {
				item.Best = stats.HighScore
			}
		}
		if p == def {
			cursor = i
		}
		items = append(items, item)
	}

	return MenuModel{
		items:     items,
		cursor:    cursor,
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		player:    player,
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
		if len(m.items) > 0 {
			selected := m.items[m.cursor]
			m.selected = &selected
			return m, tea.Quit
		}

	case MenuActionScoreboard:
		m.openScoreboard = true
		return m, tea.Quit
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	activeStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(titleStyle.Render(centerText("R U N W A Y", m.width)))
	b.WriteString("\n\n")
	if m.player != "" {
		b.WriteString(dimStyle.Render(centerText("runner: "+m.player, m.width)))
		b.WriteString("\n")
	}
	b.WriteString(centerText("Choose a difficulty", m.width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.cursor {
			cursor = "> "
			style = activeStyle
		}
		line := fmt.Sprintf("%s%-7s", cursor, item.Title)
		if item.Best > 0 {
			line += fmt.Sprintf("  best %d", item.Best)
		}
		b.WriteString(style.Render(centerText(line, m.width)))
		b.WriteString("\n")
		b.WriteString(dimStyle.Render(centerText(item.Detail, m.width)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render(centerText("Up/Down: Navigate  |  Enter: Run  |  Tab: Scores  |  Q: Quit", m.width)))
	b.WriteString("\n")
	return b.String()
}

// Selected returns the chosen difficulty, or nil if none was chosen.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	n := lipgloss.Width(text)
	if n >= width {
		return text
	}
	return strings.Repeat(" ", (width-n)/2) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	Difficulty      config.DifficultyPreset
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// result converts the final menu state.
func (m MenuModel) result() MenuResult {
	res := MenuResult{Config: m.Config()}
	switch {
	case m.WantsScoreboard():
		res.WantsScoreboard = true
	case m.IsQuitting() || m.Selected() == nil:
		res.Quit = true
	default:
		res.Difficulty = m.Selected().Preset
	}
	return res
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(store *storage.Store, cfg core.RuntimeConfig, game config.RunwayConfig, player string) (MenuResult, error) {
	p := tea.NewProgram(NewMenuModel(store, cfg, game, player), tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}
	m, ok := final.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}
	return m.result(), nil
}
