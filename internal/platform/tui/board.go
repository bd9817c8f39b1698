package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/hookshot/internal/registry"
	"github.com/vovakirdan/hookshot/internal/storage"
)

// Board layout constants
const (
	maxRuns  = 100 // Max runs to load
	allLevel = ""  // filter value meaning every level
)

// BoardKeyMap defines the key bindings for the runs board.
type BoardKeyMap struct {
	Up        key.Binding
	Down      key.Binding
	NextLevel key.Binding
	PrevLevel key.Binding
	Back      key.Binding
	Quit      key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k BoardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextLevel, k.PrevLevel, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k BoardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextLevel, k.PrevLevel},
		{k.Back, k.Quit},
	}
}

// DefaultBoardKeyMap returns default key bindings.
func DefaultBoardKeyMap() BoardKeyMap {
	return BoardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextLevel: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("right/l", "next level"),
		),
		PrevLevel: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("left/h", "prev level"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b", "tab"),
			key.WithHelp("esc/tab", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// RunsBoard shows the most recent run summaries, one level at a time.
type RunsBoard struct {
	levels   []string // allLevel first, then registered level IDs
	cursor   int
	store    *storage.Store
	runs     []storage.Run
	loadErr  error
	table    table.Model
	help     help.Model
	keys     BoardKeyMap
	width    int
	height   int
	quitting bool
	closed   bool
}

// NewRunsBoard creates a board starting on the given level, or on every
// level when current is empty or unknown.
func NewRunsBoard(store *storage.Store, current string, width, height int) RunsBoard {
	levels := []string{allLevel}
	for _, info := range registry.List() {
		levels = append(levels, info.ID)
	}
	cursor := 0
	for i, id := range levels {
		if id == current {
			cursor = i
		}
	}

	h := help.New()
	h.ShowAll = false

	b := RunsBoard{
		levels: levels,
		cursor: cursor,
		store:  store,
		keys:   DefaultBoardKeyMap(),
		help:   h,
		width:  width,
		height: height,
	}
	b.table = b.createTable()
	b.loadRuns()
	return b
}

// createTable creates a new table with appropriate columns.
func (b *RunsBoard) createTable() table.Model {
	columns := []table.Column{
		{Title: "Level", Width: 10},
		{Title: "Player", Width: 10},
		{Title: "Time", Width: 8},
		{Title: "Fired", Width: 6},
		{Title: "Miss", Width: 5},
		{Title: "Caught", Width: 6},
		{Title: "End", Width: 10},
		{Title: "Date", Width: 13},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(b.height-8, 3)), // Leave room for header, help, and margins
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

// loadRuns loads runs for the selected level.
func (b *RunsBoard) loadRuns() {
	b.runs, b.loadErr = nil, nil
	if b.store != nil {
		b.runs, b.loadErr = b.store.RecentRuns(b.levels[b.cursor], maxRuns)
	}
	b.updateTableRows()
}

// updateTableRows updates the table with current runs.
func (b *RunsBoard) updateTableRows() {
	rows := make([]table.Row, len(b.runs))
	for i, r := range b.runs {
		rows[i] = table.Row{
			r.Level,
			r.Player,
			fmt.Sprintf("%.1fs", r.Duration.Seconds()),
			fmt.Sprintf("%d", r.ShotsFired),
			fmt.Sprintf("%d", r.ShotsDiscarded),
			fmt.Sprintf("%d", r.Captures),
			r.EndReason,
			r.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	b.table.SetRows(rows)

	// Reset cursor to top
	b.table.GotoTop()
}

// Resize adapts the board to a new terminal size.
func (b *RunsBoard) Resize(width, height int) {
	b.width = width
	b.height = height
	b.table = b.createTable()
	b.updateTableRows()
	b.help.Width = width
}

// Level returns the level filter in effect; empty means every level.
func (b RunsBoard) Level() string {
	return b.levels[b.cursor]
}

// Runs returns the loaded runs.
func (b RunsBoard) Runs() []storage.Run {
	return b.runs
}

// Init initializes the board.
func (b RunsBoard) Init() tea.Cmd {
	return nil
}

// Update handles messages for the board.
func (b RunsBoard) Update(msg tea.Msg) (RunsBoard, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, b.keys.Quit):
			b.quitting = true
			return b, nil

		case key.Matches(msg, b.keys.Back):
			b.closed = true
			return b, nil

		case key.Matches(msg, b.keys.NextLevel):
			b.cursor = (b.cursor + 1) % len(b.levels)
			b.loadRuns()
			return b, nil

		case key.Matches(msg, b.keys.PrevLevel):
			b.cursor--
			if b.cursor < 0 {
				b.cursor = len(b.levels) - 1
			}
			b.loadRuns()
			return b, nil
		}

	case tea.WindowSizeMsg:
		b.Resize(msg.Width, msg.Height)
		return b, nil
	}

	b.table, cmd = b.table.Update(msg)
	return b, cmd
}

// View renders the board.
func (b RunsBoard) View() string {
	var sb strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)

	title := "RECENT RUNS - all levels"
	if id := b.Level(); id != allLevel {
		title = "RECENT RUNS - " + id
	}
	sb.WriteString(titleStyle.Render(centerText(title, b.width)))
	sb.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	sb.WriteString(tableStyle.Render(b.renderTableContent()))

	sb.WriteString("\n")
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	sb.WriteString(helpStyle.Render(b.help.View(b.keys)))

	return sb.String()
}

// renderTableContent renders the table or empty message.
func (b RunsBoard) renderTableContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	switch {
	case b.store == nil:
		return emptyStyle.Render("Run history is disabled.")
	case b.loadErr != nil:
		return emptyStyle.Render("Could not load runs:\n" + b.loadErr.Error())
	case len(b.runs) == 0:
		return emptyStyle.Render("No runs recorded yet.\nFinish a session to see it here!")
	}
	return b.table.View()
}

// IsClosed returns true if the user left the board.
func (b RunsBoard) IsClosed() bool {
	return b.closed
}

// IsQuitting returns true if the user wants to quit entirely.
func (b RunsBoard) IsQuitting() bool {
	return b.quitting
}

func centerText(text string, width int) string {
	if len(text) >= width {
		return text
	}
	padding := (width - len(text)) / 2
	return strings.Repeat(" ", padding) + text
}

// boardProgram adapts RunsBoard to a standalone tea.Model.
type boardProgram struct {
	board RunsBoard
}

func (p boardProgram) Init() tea.Cmd { return nil }

func (p boardProgram) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	b, cmd := p.board.Update(msg)
	p.board = b
	if b.IsClosed() || b.IsQuitting() {
		return p, tea.Quit
	}
	return p, cmd
}

func (p boardProgram) View() string {
	if p.board.IsClosed() || p.board.IsQuitting() {
		return ""
	}
	return p.board.View()
}

// RunBoard shows the runs board as its own program.
func RunBoard(store *storage.Store, width, height int) error {
	p := tea.NewProgram(
		boardProgram{board: NewRunsBoard(store, allLevel, width, height)},
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
