package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/mdlunited/arcade/internal/registry"
	"github.com/mdlunited/arcade/internal/storage"
)

// maxScores is how many rows the board loads per game.
const maxScores = 100

var (
	tabStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
	activeTabStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")).Padding(0, 1)
	boardStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	emptyStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true).Padding(2, 4)
	statsStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// scoreboardKeys are the scoreboard's bindings. They also feed the help bar.
type scoreboardKeys struct {
	Up   key.Binding
	Down key.Binding
	Next key.Binding
	Prev key.Binding
	Back key.Binding
	Quit key.Binding
}

func (k scoreboardKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Next, k.Prev, k.Back, k.Quit}
}

func (k scoreboardKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, {k.Next, k.Prev}, {k.Back, k.Quit}}
}

func newScoreboardKeys() scoreboardKeys {
	return scoreboardKeys{
		Up:   key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("up/k", "scroll up")),
		Down: key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("down/j", "scroll down")),
		Next: key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab/right", "next game")),
		Prev: key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("left", "prev game")),
		Back: key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc/b", "back")),
		Quit: key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ScoreboardModel shows the stored leaderboard of one game at a time.
type ScoreboardModel struct {
	games      []registry.GameInfo
	current    int
	store      *storage.Store
	scores     []storage.ScoreEntry
	stats      *storage.GameStats
	table      table.Model
	help       help.Model
	keys       scoreboardKeys
	width      int
	height     int
	quitting   bool
	goingBack  bool
	standalone bool
}

// NewScoreboardModel opens the board on the first registered game. store
// may be nil, which shows every board as empty.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		games:  registry.List(),
		store:  store,
		help:   help.New(),
		keys:   newScoreboardKeys(),
		width:  width,
		height: height,
	}
	m.table = m.newTable()
	m.load()
	return m
}

// newTable sizes the columns to the terminal; the date column takes the slack.
func (m ScoreboardModel) newTable() table.Model {
	dateW := min(max(m.width-30, 12), 20)
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Rank", Width: 6},
			{Title: "Score", Width: 12},
			{Title: "Date", Width: dateW},
		}),
		table.WithFocused(true),
		table.WithHeight(max(m.height-10, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	return t
}

// load reads the current game's rows and totals. Lookup failures show as
// an empty board.
func (m *ScoreboardModel) load() {
	m.scores, m.stats = nil, nil
	if m.store != nil && len(m.games) > 0 {
		id := m.games[m.current].ID
		if scores, err := m.store.TopScores(id, maxScores); err == nil {
			m.scores = scores
		}
		if stats, err := m.store.GetGameStats(id); err == nil && stats.GamesCount > 0 {
			m.stats = stats
		}
	}

	rows := make([]table.Row, len(m.scores))
	for i, s := range m.scores {
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			humanize.Comma(int64(s.Score)),
			s.CreatedAt.Local().Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// cycle moves to the next (+1) or previous (-1) game.
func (m *ScoreboardModel) cycle(step int) {
	if len(m.games) == 0 {
		return
	}
	m.current = (m.current + step + len(m.games)) % len(m.games)
	m.load()
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			if m.standalone {
				return m, tea.Quit
			}
			return m, nil
		case key.Matches(msg, m.keys.Next):
			m.cycle(1)
			return m, nil
		case key.Matches(msg, m.keys.Prev):
			m.cycle(-1)
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.table = m.newTable()
		m.load()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("HIGH SCORES"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.tabs(), m.width))
	b.WriteString("\n\n")

	body := emptyStyle.Render("No scores recorded yet.\nPlay a game to set a high score!")
	if len(m.scores) > 0 {
		body = m.table.View()
	}
	for _, line := range strings.Split(boardStyle.Render(body), "\n") {
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	if line := m.statsLine(); line != "" {
		b.WriteString(centerText(statsStyle.Render(line), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(menuDimStyle.Render(m.help.View(m.keys)), m.width))
	return b.String()
}

// tabs lists the games with the current one highlighted. When the row does
// not fit only the current game is shown.
func (m ScoreboardModel) tabs() string {
	if len(m.games) == 0 {
		return ""
	}
	parts := make([]string, len(m.games))
	for i, g := range m.games {
		if i == m.current {
			parts[i] = activeTabStyle.Render(g.Title)
		} else {
			parts[i] = tabStyle.Render(g.Title)
		}
	}
	row := lipgloss.JoinHorizontal(lipgloss.Top, parts...)
	if lipgloss.Width(row) > m.width-4 {
		return fmt.Sprintf("< %s >", m.games[m.current].Title)
	}
	return row
}

// statsLine summarizes every recorded run of the current game.
func (m ScoreboardModel) statsLine() string {
	if m.stats == nil {
		return ""
	}
	st := m.stats
	return fmt.Sprintf("%s games  |  best %s  |  avg %.0f  |  last played %s",
		humanize.Comma(int64(st.GamesCount)),
		humanize.Comma(int64(st.HighScore)),
		st.AvgScore,
		humanize.Time(st.LastPlayed),
	)
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunScoreboard(store *storage.Store, width, height int) (goBack bool, err error) {
	model := NewScoreboardModel(store, width, height)
	model.standalone = true

	final, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(ScoreboardModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
