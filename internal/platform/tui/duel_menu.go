package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tile-duel/internal/config"
	"github.com/vovakirdan/tile-duel/internal/core"
)

// DifficultyModel lets users choose the AI difficulty for a duel.
// It is the second step of the main menu and also runs on its own
// when a target is given on the command line.
type DifficultyModel struct {
	title     string
	cursor    int
	width     int
	height    int
	presets   map[config.Difficulty]config.DifficultyConfig
	keyMapper *KeyMapper
	selection config.Difficulty
	choosing  bool
	quitting  bool
	back      bool
}

// NewDifficultyModel creates a difficulty selector with the cursor on the
// configured default.
func NewDifficultyModel(title string, cfg config.DuelConfig, width, height int) DifficultyModel {
	cursor := 0
	for i, d := range config.Difficulties {
		if d == cfg.Match.Difficulty {
			cursor = i
		}
	}

	return DifficultyModel{
		title:     title,
		cursor:    cursor,
		width:     width,
		height:    height,
		presets:   cfg.Difficulties,
		keyMapper: NewKeyMapper(),
		choosing:  true,
	}
}

// Init initializes the model.
func (m DifficultyModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m DifficultyModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		m = m.apply(m.keyMapper.MapKeyToMenuAction(msg))
		if m.quitting || m.back || !m.choosing {
			return m, tea.Quit
		}
		return m, nil
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}
	return m, nil
}

// apply advances the selector by one menu action.
func (m DifficultyModel) apply(action MenuAction) DifficultyModel {
	switch action {
	case MenuActionQuit:
		m.quitting = true
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < len(config.Difficulties)-1 {
			m.cursor++
		}
	case MenuActionSelect:
		m.choosing = false
		m.selection = config.Difficulties[m.cursor]
	case MenuActionBack:
		m.back = true
	}
	return m
}

// View renders the difficulty list.
func (m DifficultyModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(m.title, m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select AI difficulty:", m.width))
	b.WriteString("\n\n")

	for i, d := range config.Difficulties {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}

		p := m.presets[d]
		line := fmt.Sprintf("%s%-6s  depth %d, %dms per move", cursor, d.Title(), p.Depth, p.AIDelayMS)
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText("Enter: Select  |  Esc: Back  |  Q: Quit", m.width))

	return b.String()
}

// Selected returns the chosen difficulty, or "" while still choosing.
func (m DifficultyModel) Selected() config.Difficulty {
	if m.choosing {
		return ""
	}
	return m.selection
}

// IsQuitting returns true if user wants to quit.
func (m DifficultyModel) IsQuitting() bool {
	return m.quitting
}

// WantsBack returns true if user pressed back.
func (m DifficultyModel) WantsBack() bool {
	return m.back
}

// RunDifficultySelector runs the difficulty selection on its own.
// Returns "" if the user backed out or quit.
func RunDifficultySelector(title string, duelCfg config.DuelConfig, cfg core.RuntimeConfig) (config.Difficulty, error) {
	model := NewDifficultyModel(title, duelCfg, cfg.ScreenW, cfg.ScreenH)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return "", err
	}

	m, ok := finalModel.(DifficultyModel)
	if !ok {
		return "", nil
	}

	return m.Selected(), nil
}
