package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"lifeplanner/internal/engine"
	"lifeplanner/internal/storage"
	"lifeplanner/internal/ui"
)

type pane int

const (
	paneTasks pane = iota
	paneHabits
	paneGoals
	paneCount
)

func (p pane) String() string {
	switch p {
	case paneTasks:
		return "Tasks"
	case paneHabits:
		return "Habits"
	case paneGoals:
		return "Goals"
	default:
		return "?"
	}
}

type boardModel struct {
	ctx     context.Context
	svc     *engine.Service
	changes chan engine.Kind

	width  int
	height int

	pane     pane
	selected [paneCount]int

	tasks  []storage.Task
	habits []storage.Habit
	goals  []storage.Goal

	input textinput.Model
	// adding is set while the add form of the current pane is open.
	adding bool
	// goalName holds the submitted name while the goal form asks for progress.
	goalName string

	quote   string
	lastLog string
}

// changedMsg carries one change signal from the engine.
type changedMsg struct {
	kind engine.Kind
}

type resultMsg struct {
	desc    string
	changed bool
	err     error
}

func newBoardModel(ctx context.Context, svc *engine.Service) boardModel {
	in := textinput.New()
	in.CharLimit = 120
	in.Width = 48

	m := boardModel{
		ctx:     ctx,
		svc:     svc,
		changes: make(chan engine.Kind, 1),
		input:   in,
		quote:   engine.QuoteFor(svc.Now()),
		lastLog: "Loaded.",
	}
	// One pending signal is enough: any changedMsg reloads everything.
	ch := m.changes
	svc.Subscribe(engine.ListenerFunc(func(k engine.Kind) {
		select {
		case ch <- k:
		default:
		}
	}))
	m.reload()
	return m
}

func (m boardModel) Init() tea.Cmd {
	return waitForChange(m.changes)
}

func waitForChange(ch <-chan engine.Kind) tea.Cmd {
	return func() tea.Msg {
		return changedMsg{kind: <-ch}
	}
}

func (m *boardModel) reload() {
	m.tasks = m.svc.Tasks().List(engine.TaskFilter{})
	m.habits = m.svc.Habits().List()
	m.goals = m.svc.Goals().List()
	for p := pane(0); p < paneCount; p++ {
		n := m.rowCount(p)
		if m.selected[p] >= n {
			m.selected[p] = n - 1
		}
		if m.selected[p] < 0 {
			m.selected[p] = 0
		}
	}
}

func (m boardModel) rowCount(p pane) int {
	switch p {
	case paneTasks:
		return len(m.tasks)
	case paneHabits:
		return len(m.habits)
	case paneGoals:
		return len(m.goals)
	default:
		return 0
	}
}

// selectedID returns the id under the cursor of the current pane.
func (m boardModel) selectedID() (int64, bool) {
	i := m.selected[m.pane]
	if i < 0 || i >= m.rowCount(m.pane) {
		return 0, false
	}
	switch m.pane {
	case paneTasks:
		return m.tasks[i].ID, true
	case paneHabits:
		return m.habits[i].ID, true
	case paneGoals:
		return m.goals[i].ID, true
	}
	return 0, false
}

func (m boardModel) run(desc string, fn func() (bool, error)) tea.Cmd {
	return func() tea.Msg {
		changed, err := fn()
		return resultMsg{desc: desc, changed: changed, err: err}
	}
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case changedMsg:
		// Signals are coalesced, so a theme change may arrive under another kind.
		if name, err := m.svc.Theme(m.ctx); err == nil && ui.HasTheme(name) {
			_ = ui.ApplyTheme(name)
		}
		m.reload()
		return m, waitForChange(m.changes)
	case resultMsg:
		switch {
		case msg.err != nil:
			m.lastLog = msg.desc + " failed: " + msg.err.Error()
		case msg.changed:
			m.lastLog = msg.desc + "."
		}
		return m, nil
	case tea.KeyMsg:
		if m.adding {
			return m.updateForm(msg)
		}
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m boardModel) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ctx := m.ctx
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "tab", "right", "l":
		m.pane = (m.pane + 1) % paneCount
		return m, nil
	case "shift+tab", "left", "h":
		m.pane = (m.pane + paneCount - 1) % paneCount
		return m, nil
	case "up", "k":
		if m.selected[m.pane] > 0 {
			m.selected[m.pane]--
		}
		return m, nil
	case "down", "j":
		if m.selected[m.pane] < m.rowCount(m.pane)-1 {
			m.selected[m.pane]++
		}
		return m, nil
	case "r":
		m.reload()
		m.lastLog = "Refreshed."
		return m, nil
	case "a":
		return m.openForm()
	case "t":
		themes := ui.Themes()
		next := themes[0]
		for i, name := range themes {
			if name == ui.CurrentTheme() {
				next = themes[(i+1)%len(themes)]
			}
		}
		return m, m.run("Theme "+next, func() (bool, error) {
			return true, m.svc.SetTheme(ctx, next)
		})
	}

	id, ok := m.selectedID()
	if !ok {
		return m, nil
	}
	switch msg.String() {
	case "d", "x", "delete":
		switch m.pane {
		case paneTasks:
			return m, m.run(fmt.Sprintf("Deleted task #%d", id), func() (bool, error) { return m.svc.Tasks().Delete(ctx, id) })
		case paneHabits:
			return m, m.run(fmt.Sprintf("Deleted habit #%d", id), func() (bool, error) { return m.svc.Habits().Delete(ctx, id) })
		case paneGoals:
			return m, m.run(fmt.Sprintf("Deleted goal #%d", id), func() (bool, error) { return m.svc.Goals().Delete(ctx, id) })
		}
	case " ", "enter":
		if m.pane == paneTasks {
			return m, m.run(fmt.Sprintf("Toggled task #%d", id), func() (bool, error) { return m.svc.Tasks().Toggle(ctx, id) })
		}
	case "1", "2", "3":
		if m.pane == paneHabits {
			idx := int(msg.String()[0] - '1')
			return m, m.run(fmt.Sprintf("Toggled checkmark %d of habit #%d", idx+1, id), func() (bool, error) {
				return m.svc.Habits().ToggleCheckmark(ctx, id, idx)
			})
		}
	case "+", "=", "-":
		if m.pane == paneGoals {
			g := m.goals[m.selected[m.pane]]
			step := 10
			if msg.String() == "-" {
				step = -10
			}
			p := engine.ClampProgress(g.Progress + step)
			return m, m.run(fmt.Sprintf("Goal #%d at %d%%", id, p), func() (bool, error) {
				return m.svc.Goals().UpdateProgress(ctx, id, p)
			})
		}
	}
	return m, nil
}

func (m boardModel) openForm() (tea.Model, tea.Cmd) {
	m.adding = true
	m.goalName = ""
	m.input.SetValue("")
	switch m.pane {
	case paneTasks:
		m.input.Placeholder = "New task (#category !high)"
	case paneHabits:
		m.input.Placeholder = "New habit"
	case paneGoals:
		m.input.Placeholder = "New goal"
	}
	return m, m.input.Focus()
}

func (m boardModel) closeForm() boardModel {
	m.adding = false
	m.goalName = ""
	m.input.Blur()
	m.input.SetValue("")
	return m
}

func (m boardModel) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		return m.closeForm(), nil
	case tea.KeyEnter:
		return m.submitForm()
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submitForm behaves like the add forms: blank or invalid input closes the
// form without touching the collections.
func (m boardModel) submitForm() (tea.Model, tea.Cmd) {
	ctx := m.ctx
	value := strings.TrimSpace(m.input.Value())

	switch m.pane {
	case paneTasks:
		m = m.closeForm()
		if value == "" {
			return m, nil
		}
		in, err := parseTaskInput(value)
		if err != nil {
			m.lastLog = "Ignored: " + err.Error()
			return m, nil
		}
		return m, m.run("Added task", func() (bool, error) {
			_, err := m.svc.Tasks().Add(ctx, in)
			return ignoreInputError(err)
		})
	case paneHabits:
		m = m.closeForm()
		if value == "" {
			return m, nil
		}
		return m, m.run("Added habit", func() (bool, error) {
			_, err := m.svc.Habits().Add(ctx, value)
			return ignoreInputError(err)
		})
	case paneGoals:
		if m.goalName == "" {
			if value == "" {
				return m.closeForm(), nil
			}
			m.goalName = value
			m.input.SetValue("")
			m.input.Placeholder = "Progress 0-100"
			return m, nil
		}
		name := m.goalName
		m = m.closeForm()
		progress, err := engine.ParseProgress(value)
		if err != nil {
			m.lastLog = "Ignored: progress must be 0-100."
			return m, nil
		}
		return m, m.run("Added goal", func() (bool, error) {
			_, err := m.svc.Goals().Add(ctx, name, progress)
			return ignoreInputError(err)
		})
	}
	return m.closeForm(), nil
}

func ignoreInputError(err error) (bool, error) {
	if errors.Is(err, engine.ErrEmptyText) {
		return false, nil
	}
	return err == nil, err
}

// parseTaskInput reads "text #category !priority"; tags may appear anywhere.
func parseTaskInput(value string) (engine.TaskInput, error) {
	var in engine.TaskInput
	var words []string
	for _, w := range strings.Fields(value) {
		switch {
		case len(w) > 1 && strings.HasPrefix(w, "#"):
			in.Category = w[1:]
		case len(w) > 1 && strings.HasPrefix(w, "!"):
			p, err := engine.ParsePriority(w[1:])
			if err != nil {
				return in, err
			}
			in.Priority = p
		default:
			words = append(words, w)
		}
	}
	in.Text = strings.Join(words, " ")
	return in, nil
}

func (m boardModel) View() string {
	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")
	b.WriteString(m.renderTabs())
	b.WriteString("\n\n")
	b.WriteString(m.renderPane())
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m boardModel) renderHeader() string {
	s := m.svc.Summary()
	stats := fmt.Sprintf("%d open · %d done today · best streak %d · goals avg %d%%",
		s.TasksOpen, s.HabitsDoneToday, s.BestStreak, s.AverageProgress)
	return ui.Heading(ui.IconSparkle, "Life Planner") + "  " + ui.Muted.Render(m.svc.Today()) + "\n" +
		ui.Muted.Render(stats) + "\n" +
		ui.Muted.Render(ui.IconQuote+" "+m.quote)
}

func (m boardModel) renderTabs() string {
	var tabs []string
	for p := pane(0); p < paneCount; p++ {
		label := fmt.Sprintf("%s (%d)", p, m.rowCount(p))
		if p == m.pane {
			tabs = append(tabs, ui.ActiveTab.Render(label))
		} else {
			tabs = append(tabs, ui.Tab.Render(label))
		}
	}
	return strings.Join(tabs, " ")
}

func (m boardModel) renderPane() string {
	var rows []string
	switch m.pane {
	case paneTasks:
		for _, t := range m.tasks {
			rows = append(rows, ui.TaskLine(t))
		}
	case paneHabits:
		for _, h := range m.habits {
			rows = append(rows, ui.HabitLine(h))
		}
	case paneGoals:
		for _, g := range m.goals {
			rows = append(rows, ui.GoalLine(g))
		}
	}
	if len(rows) == 0 {
		return ui.Muted.Render("(empty, press a to add)") + "\n"
	}

	var b strings.Builder
	for i, row := range rows {
		cursor := "  "
		if i == m.selected[m.pane] {
			cursor = ui.SelectedRow.Render("> ")
		}
		b.WriteString(cursor)
		b.WriteString(row)
		b.WriteString("\n")
	}
	return b.String()
}

func (m boardModel) renderFooter() string {
	if m.adding {
		label := m.pane.String()
		if m.goalName != "" {
			label = m.goalName
		}
		return ui.Key.Render(label+":") + " " + m.input.View() + "\n" + ui.Muted.Render("enter: save · esc: cancel")
	}

	keys := "tab: switch · ↑/↓: move · a: add · d: delete · t: theme · q: quit"
	switch m.pane {
	case paneTasks:
		keys = "space: toggle · " + keys
	case paneHabits:
		keys = "1/2/3: checkmarks · " + keys
	case paneGoals:
		keys = "+/-: progress · " + keys
	}
	return ui.Muted.Render(keys) + "\n" + m.lastLog
}
