package tui

import (
	"context"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lifeplanner/internal/engine"
	"lifeplanner/internal/storage"
	"lifeplanner/internal/ui"
)

func newTestBoard(t *testing.T) (boardModel, *engine.Service) {
	t.Helper()
	now := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)
	svc, err := engine.Open(context.Background(), storage.NewMemKV(),
		engine.WithClock(func() time.Time { return now }),
		engine.WithLocation(time.UTC))
	require.NoError(t, err)
	m := newBoardModel(context.Background(), svc)
	// A static cursor keeps Focus from returning a blink timer.
	m.input.Cursor.SetMode(cursor.CursorStatic)
	return m, svc
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// send feeds msg to m and runs any resulting command once, feeding a
// resultMsg back. Commands that would block on the change channel are not run.
func send(t *testing.T, m boardModel, msg tea.Msg) boardModel {
	t.Helper()
	next, cmd := m.Update(msg)
	m = next.(boardModel)
	if cmd == nil {
		return m
	}
	if _, isKey := msg.(tea.KeyMsg); !isKey {
		return m
	}
	if res, ok := cmd().(resultMsg); ok {
		next, _ = m.Update(res)
		m = next.(boardModel)
	}
	return m
}

// drain applies queued change signals the way the program loop would.
func drain(m boardModel) boardModel {
	for {
		select {
		case k := <-m.changes:
			next, _ := m.Update(changedMsg{kind: k})
			m = next.(boardModel)
		default:
			return m
		}
	}
}

func TestBoardAddTaskThroughForm(t *testing.T) {
	m, svc := newTestBoard(t)

	m = send(t, m, key("a"))
	require.True(t, m.adding)
	m.input.SetValue("Buy milk #errands !high")
	m = send(t, m, key("enter"))
	m = drain(m)

	assert.False(t, m.adding)
	require.Equal(t, 1, svc.Tasks().Len())
	task := svc.Tasks().List(engine.TaskFilter{})[0]
	assert.Equal(t, "Buy milk", task.Text)
	assert.Equal(t, "errands", task.Category)
	assert.Equal(t, "high", task.Priority)
	require.Len(t, m.tasks, 1)
	assert.Equal(t, "Added task.", m.lastLog)

	m = send(t, m, key(" "))
	m = drain(m)
	assert.True(t, m.tasks[0].Completed)
}

func TestBoardBlankFormIsIgnored(t *testing.T) {
	m, svc := newTestBoard(t)
	m = send(t, m, key("a"))
	m.input.SetValue("   ")
	m = send(t, m, key("enter"))
	assert.False(t, m.adding)
	assert.Equal(t, 0, svc.Tasks().Len())
}

func TestBoardHabitCheckmarks(t *testing.T) {
	m, svc := newTestBoard(t)
	m = send(t, m, key("tab"))
	require.Equal(t, paneHabits, m.pane)

	m = send(t, m, key("a"))
	m.input.SetValue("Exercise")
	m = send(t, m, key("enter"))
	m = drain(m)
	require.Len(t, m.habits, 1)

	for _, k := range []string{"1", "2", "3"} {
		m = send(t, m, key(k))
	}
	m = drain(m)
	h := svc.Habits().List()[0]
	assert.Equal(t, 1, h.Streak)
	assert.Equal(t, 1, m.habits[0].Streak)
	assert.Contains(t, m.View(), "1 days")
}

func TestBoardGoalFormValidatesProgress(t *testing.T) {
	m, svc := newTestBoard(t)
	m = send(t, m, key("tab"))
	m = send(t, m, key("tab"))
	require.Equal(t, paneGoals, m.pane)

	m = send(t, m, key("a"))
	m.input.SetValue("Read 12 books")
	m = send(t, m, key("enter"))
	require.True(t, m.adding)
	assert.Equal(t, "Read 12 books", m.goalName)

	m.input.SetValue("abc")
	m = send(t, m, key("enter"))
	assert.False(t, m.adding)
	assert.Equal(t, 0, svc.Goals().Len())

	m = send(t, m, key("a"))
	m.input.SetValue("Read 12 books")
	m = send(t, m, key("enter"))
	m.input.SetValue("30")
	m = send(t, m, key("enter"))
	m = drain(m)
	require.Equal(t, 1, svc.Goals().Len())

	m = send(t, m, key("+"))
	m = drain(m)
	g := svc.Goals().List()[0]
	assert.Equal(t, 40, g.Progress)
	assert.Len(t, g.History, 2)
}

func TestBoardDeleteAndEmptyPane(t *testing.T) {
	m, svc := newTestBoard(t)
	_, err := svc.Tasks().Add(context.Background(), engine.TaskInput{Text: "x"})
	require.NoError(t, err)
	m = drain(m)
	require.Len(t, m.tasks, 1)

	m = send(t, m, key("d"))
	m = drain(m)
	assert.Empty(t, m.tasks)
	assert.Contains(t, m.View(), "(empty, press a to add)")

	// Keys on an empty pane are no-ops.
	m = send(t, m, key("d"))
	assert.Equal(t, 0, svc.Tasks().Len())
}

func TestBoardThemeCycle(t *testing.T) {
	t.Cleanup(func() { _ = ui.ApplyTheme(ui.DefaultTheme) })
	m, svc := newTestBoard(t)
	require.NoError(t, ui.ApplyTheme("light"))

	m = send(t, m, key("t"))
	m = drain(m)
	name, err := svc.Theme(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "dark", name)
	assert.Equal(t, "dark", ui.CurrentTheme())
}

func TestParseTaskInput(t *testing.T) {
	in, err := parseTaskInput("!low call #family the bank")
	require.NoError(t, err)
	assert.Equal(t, engine.TaskInput{Text: "call the bank", Category: "family", Priority: engine.PriorityLow}, in)

	_, err = parseTaskInput("x !urgent")
	assert.ErrorIs(t, err, engine.ErrInvalidPriority)
}

func TestBoardAppliesThemeWhenSignalsCoalesce(t *testing.T) {
	t.Cleanup(func() { _ = ui.ApplyTheme(ui.DefaultTheme) })
	require.NoError(t, ui.ApplyTheme("light"))
	m, svc := newTestBoard(t)
	ctx := context.Background()

	_, err := svc.Habits().Add(ctx, "Read")
	require.NoError(t, err)
	// The pending habits signal fills the channel; the theme signal is dropped.
	require.NoError(t, svc.SetTheme(ctx, "forest"))
	assert.Len(t, m.changes, 1)

	m = drain(m)
	assert.Equal(t, "forest", ui.CurrentTheme())
	assert.Len(t, m.habits, 1)
}
