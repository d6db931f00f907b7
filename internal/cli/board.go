package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/editflowhq/editflow/internal/cli/formatter"
	"github.com/editflowhq/editflow/internal/domain"
	"github.com/editflowhq/editflow/internal/ordering"
	"github.com/editflowhq/editflow/internal/store"
	"github.com/spf13/cobra"
)

func newBoardCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "board",
		Short: "Open the interactive week board",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return fmt.Errorf("the board needs an interactive terminal; use `editflow job list` instead")
			}

			notices := make(chan noticeMsg, 16)
			app.Store.SetNotifier(boardNotifier{ch: notices})
			defer app.Store.SetNotifier(nil)

			m := newBoardModel(app, notices)
			_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
			return err
		},
	}
}

// noticeMsg carries a store notice into the TUI event loop.
type noticeMsg struct {
	text  string
	isErr bool
}

// boardNotifier forwards store notices to the board. Sends never block;
// when the board falls behind, older notices are dropped.
type boardNotifier struct {
	ch chan noticeMsg
}

func (n boardNotifier) Success(msg string) { n.send(noticeMsg{text: msg}) }
func (n boardNotifier) Error(msg string)   { n.send(noticeMsg{text: msg, isErr: true}) }

func (n boardNotifier) send(msg noticeMsg) {
	select {
	case n.ch <- msg:
	default:
	}
}

type boardKeyMap struct {
	Left     key.Binding
	Right    key.Binding
	Up       key.Binding
	Down     key.Binding
	Grab     key.Binding
	Drop     key.Binding
	Cancel   key.Binding
	PrevWeek key.Binding
	NextWeek key.Binding
	ThisWeek key.Binding
	Quit     key.Binding
}

func newBoardKeyMap() boardKeyMap {
	return boardKeyMap{
		Left:     key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "day left")),
		Right:    key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "day right")),
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Grab:     key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "grab job")),
		Drop:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "drop")),
		Cancel:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel grab")),
		PrevWeek: key.NewBinding(key.WithKeys("["), key.WithHelp("[", "prev week")),
		NextWeek: key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "next week")),
		ThisWeek: key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "this week")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// grabbedJob is the job the user picked up and is carrying across cells.
type grabbedJob struct {
	jobID      string
	title      string
	sourceCell string
	sourceIdx  int
}

// boardModel renders the week as an editors-by-days grid. The cursor
// addresses a slot inside a cell; grab then drop issues the same drag
// event shape a pointer-driven board surface would.
type boardModel struct {
	store *store.Store
	keys  boardKeyMap

	notices chan noticeMsg

	editorIdx int
	day       int
	slot      int

	grabbed *grabbedJob
	notice  noticeMsg
	width   int
}

func newBoardModel(app *App, notices chan noticeMsg) boardModel {
	return boardModel{
		store:   app.Store,
		keys:    newBoardKeyMap(),
		notices: notices,
	}
}

func (m boardModel) Init() tea.Cmd {
	return waitForNotice(m.notices)
}

func waitForNotice(ch chan noticeMsg) tea.Cmd {
	return func() tea.Msg {
		return <-ch
	}
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case noticeMsg:
		m.notice = msg
		return m, waitForNotice(m.notices)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m boardModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Left):
		if m.day > 0 {
			m.day--
			m.clampSlot()
		}
	case key.Matches(msg, m.keys.Right):
		if m.day < 6 {
			m.day++
			m.clampSlot()
		}
	case key.Matches(msg, m.keys.Up):
		m.moveUp()
	case key.Matches(msg, m.keys.Down):
		m.moveDown()

	case key.Matches(msg, m.keys.PrevWeek):
		m.store.ShiftWeek(-1)
		m.slot = 0
	case key.Matches(msg, m.keys.NextWeek):
		m.store.ShiftWeek(1)
		m.slot = 0
	case key.Matches(msg, m.keys.ThisWeek):
		m.store.SetWeek(time.Now().UTC())
		m.slot = 0

	case key.Matches(msg, m.keys.Grab):
		m.toggleGrab()
	case key.Matches(msg, m.keys.Drop):
		m.drop()
	case key.Matches(msg, m.keys.Cancel):
		m.grabbed = nil
	}
	return m, nil
}

// cursorEditor returns the editor row under the cursor, or nil when the
// team is empty.
func (m *boardModel) cursorEditor() *domain.Editor {
	editors := m.store.Editors()
	if len(editors) == 0 {
		return nil
	}
	if m.editorIdx >= len(editors) {
		m.editorIdx = len(editors) - 1
	}
	return editors[m.editorIdx]
}

// cursorCell returns the jobs in the cell under the cursor.
func (m *boardModel) cursorCell() []*domain.Job {
	e := m.cursorEditor()
	if e == nil {
		return nil
	}
	return m.store.JobsInCell(e.ID, m.day)
}

func (m *boardModel) clampSlot() {
	if n := len(m.cursorCell()); m.slot >= n {
		if n == 0 {
			m.slot = 0
		} else {
			m.slot = n - 1
		}
	}
}

func (m *boardModel) moveUp() {
	if m.slot > 0 {
		m.slot--
		return
	}
	if m.editorIdx > 0 {
		m.editorIdx--
		if n := len(m.cursorCell()); n > 0 {
			m.slot = n - 1
		} else {
			m.slot = 0
		}
	}
}

func (m *boardModel) moveDown() {
	// While carrying a job the cursor may sit one past the cell's end, so
	// a drop can land after the last occupant.
	max := len(m.cursorCell()) - 1
	if m.grabbed != nil {
		max++
	}
	if m.slot < max {
		m.slot++
		return
	}
	if m.editorIdx < len(m.store.Editors())-1 {
		m.editorIdx++
		m.slot = 0
	}
}

func (m *boardModel) toggleGrab() {
	if m.grabbed != nil {
		m.grabbed = nil
		return
	}
	cell := m.cursorCell()
	if m.slot >= len(cell) {
		return
	}
	e := m.cursorEditor()
	job := cell[m.slot]
	m.grabbed = &grabbedJob{
		jobID:      job.ID,
		title:      job.Title,
		sourceCell: ordering.DroppableID(e.ID, m.day),
		sourceIdx:  m.slot,
	}
}

func (m *boardModel) drop() {
	if m.grabbed == nil {
		return
	}
	e := m.cursorEditor()
	if e == nil {
		m.grabbed = nil
		return
	}
	m.store.ApplyDrag(ordering.DragEvent{
		DraggableID:     m.grabbed.jobID,
		SourceDroppable: m.grabbed.sourceCell,
		SourceIndex:     m.grabbed.sourceIdx,
		DestDroppable:   ordering.DroppableID(e.ID, m.day),
		DestIndex:       m.slot,
	})
	m.grabbed = nil
	m.clampSlot()
}

// ── rendering ────────────────────────────────────────────────────────────────

var (
	styleCellCursor  = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	styleCellGrabbed = lipgloss.NewStyle().Foreground(formatter.ColorPurple).Bold(true)
	styleDayHeader   = lipgloss.NewStyle().Foreground(formatter.ColorBlue).Bold(true)
)

func (m boardModel) View() string {
	var b strings.Builder

	week := m.store.SelectedWeek()
	b.WriteString(formatter.Header("Week of " + week.Format("Jan 2, 2006")))
	b.WriteString("\n\n")

	editors := m.store.Editors()
	if len(editors) == 0 {
		b.WriteString(formatter.Dim("No editors yet. Quit and run `editflow editor add --name <name>`.\n"))
		b.WriteString("\n" + m.helpLine())
		return b.String()
	}

	for ei, e := range editors {
		load := m.store.EditorLoadPercent(e.ID)
		b.WriteString(formatter.Bold(e.Name))
		b.WriteString("  ")
		b.WriteString(formatter.RenderLoad(load, 10))
		b.WriteString("\n")

		for day := 0; day < 7; day++ {
			jobs := m.store.JobsInCell(e.ID, day)
			cursorHere := ei == m.editorIdx && day == m.day
			if len(jobs) == 0 && !cursorHere {
				continue
			}

			header := "  " + dayNames[day]
			if cursorHere {
				header = styleDayHeader.Render(header)
			} else {
				header = formatter.Dim(header)
			}
			b.WriteString(header + "\n")

			for slot, j := range jobs {
				b.WriteString(m.renderJobLine(j, cursorHere && slot == m.slot))
			}
			if cursorHere && m.slot >= len(jobs) {
				b.WriteString(styleCellCursor.Render("    ▸ (drop here)") + "\n")
			} else if cursorHere && len(jobs) == 0 {
				b.WriteString(formatter.Dim("    (empty)") + "\n")
			}
		}
		b.WriteString("\n")
	}

	if m.grabbed != nil {
		b.WriteString(styleCellGrabbed.Render(fmt.Sprintf("Carrying %q. Move the cursor and press enter to drop.", m.grabbed.title)))
		b.WriteString("\n")
	}
	if m.notice.text != "" {
		style := formatter.StyleGreen
		if m.notice.isErr {
			style = formatter.StyleRed
		}
		b.WriteString(style.Render(m.notice.text) + "\n")
	}

	b.WriteString("\n" + m.helpLine())
	return b.String()
}

func (m boardModel) renderJobLine(j *domain.Job, underCursor bool) string {
	line := fmt.Sprintf("    %s %s (%sh)",
		formatter.PriorityBadge(j.Priority), j.Title, trimFloat(j.EstimatedHours))
	if underCursor {
		marker := "▸"
		if m.grabbed != nil && m.grabbed.jobID == j.ID {
			return styleCellGrabbed.Render("    ◆ "+j.Title) + "\n"
		}
		return styleCellCursor.Render("  "+marker) + line[3:] + "\n"
	}
	return line + "\n"
}

func (m boardModel) helpLine() string {
	bindings := []key.Binding{
		m.keys.Up, m.keys.Left, m.keys.Grab, m.keys.Drop,
		m.keys.PrevWeek, m.keys.NextWeek, m.keys.Quit,
	}
	parts := make([]string, 0, len(bindings))
	for _, kb := range bindings {
		h := kb.Help()
		parts = append(parts, fmt.Sprintf("%s %s", formatter.Bold(h.Key), formatter.Dim(h.Desc)))
	}
	return strings.Join(parts, formatter.Dim("  ·  "))
}

func trimFloat(f float64) string {
	s := fmt.Sprintf("%.1f", f)
	return strings.TrimSuffix(s, ".0")
}
