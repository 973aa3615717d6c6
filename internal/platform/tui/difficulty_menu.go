package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mdlunited/arcade/internal/config"
	"github.com/mdlunited/arcade/internal/core"
)

var difficultyChoices = []struct {
	preset config.DifficultyPreset
	label  string
}{
	{config.DifficultyEasy, "Easy"},
	{config.DifficultyNormal, "Normal"},
	{config.DifficultyHard, "Hard"},
}

// DifficultyModel lets the player pick a difficulty preset before a game.
type DifficultyModel struct {
	title      string
	cursor     int
	width      int
	height     int
	keyMapper  *KeyMapper
	choice     string
	chosen     bool
	quitting   bool
	back       bool
	standalone bool
}

// NewDifficultyModel opens the picker on the preset named by current.
func NewDifficultyModel(title, current string, width, height int) DifficultyModel {
	m := DifficultyModel{
		title:     title,
		cursor:    1,
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(),
	}
	if p, ok := config.ParsePreset(current); ok {
		for i, c := range difficultyChoices {
			if c.preset == p {
				m.cursor = i
			}
		}
	}
	return m
}

// Init initializes the model.
func (m DifficultyModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m DifficultyModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

func (m DifficultyModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < len(difficultyChoices)-1 {
			m.cursor++
		}
	case MenuActionSelect:
		m.chosen = true
		m.choice = string(difficultyChoices[m.cursor].preset)
		return m, m.done()
	case MenuActionBack:
		m.back = true
		return m, m.done()
	}
	return m, nil
}

func (m DifficultyModel) done() tea.Cmd {
	if m.standalone {
		return tea.Quit
	}
	return nil
}

// View renders the picker.
func (m DifficultyModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render(strings.ToUpper(m.title)), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select difficulty:", m.width))
	b.WriteString("\n\n")

	for i, c := range difficultyChoices {
		cursor := "  "
		if i == m.cursor {
			cursor = menuCursorStyle.Render("> ")
		}
		b.WriteString(centerText(fmt.Sprintf("%s%-8s", cursor, c.label), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(menuDimStyle.Render("Enter: Select  |  Esc: Back  |  Q: Quit"), m.width))

	return b.String()
}

// Choice returns the chosen preset name, or "" while still choosing.
func (m DifficultyModel) Choice() string {
	return m.choice
}

// Chosen reports whether a preset was picked.
func (m DifficultyModel) Chosen() bool {
	return m.chosen
}

// IsQuitting returns true if user wants to quit.
func (m DifficultyModel) IsQuitting() bool {
	return m.quitting
}

// WantsBack returns true if user pressed back.
func (m DifficultyModel) WantsBack() bool {
	return m.back
}

// RunDifficultySelector asks for a difficulty and stores it in the returned
// config. ok is false when the player backed out or quit.
func RunDifficultySelector(title string, cfg core.RuntimeConfig) (core.RuntimeConfig, bool, error) {
	model := NewDifficultyModel(title, cfg.Difficulty, cfg.ScreenW, cfg.ScreenH)
	model.standalone = true

	p := tea.NewProgram(model, tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return cfg, false, err
	}

	m, ok := finalModel.(DifficultyModel)
	if !ok || !m.Chosen() {
		return cfg, false, nil
	}

	cfg.Difficulty = m.Choice()
	return cfg, true, nil
}
