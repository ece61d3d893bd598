package ui

import (
	"fmt"
	"strings"
	"time"

	"lifeplanner/internal/storage"
)

// ProgressBar renders value/total as a fixed-width text bar.
func ProgressBar(value int, total int, width int) string {
	if total <= 0 {
		total = 1
	}
	if width <= 3 {
		width = 3
	}
	if value < 0 {
		value = 0
	}
	if value > total {
		value = total
	}
	filled := value * width / total
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}

func priorityMarker(priority string) string {
	switch priority {
	case "high":
		return PriorityHigh.Render("▌")
	case "low":
		return PriorityLow.Render("▌")
	default:
		return " "
	}
}

// TaskLine renders one task row.
func TaskLine(t storage.Task) string {
	box := "[ ]"
	text := t.Text
	if t.Completed {
		box = Good.Render("[x]")
		text = Done.Render(text)
	}
	line := fmt.Sprintf("%s%s %s %s %s", priorityMarker(t.Priority), box, Muted.Render(fmt.Sprintf("#%d", t.ID)), text, Muted.Render(t.Category))
	if t.DueDate != nil {
		line += " " + Warn.Render("due "+t.DueDate.Format("2006-01-02"))
	}
	return line
}

// HabitLine renders one habit row with its checkmark set and streak.
func HabitLine(h storage.Habit) string {
	marks := make([]string, len(h.Checkmarks))
	for i, c := range h.Checkmarks {
		if c {
			marks[i] = Good.Render("●")
		} else {
			marks[i] = Muted.Render("○")
		}
	}
	streak := Muted.Render(fmt.Sprintf("streak %d days", h.Streak))
	if h.Streak > 0 {
		streak = Gold.Render(fmt.Sprintf("%s %d days", IconFire, h.Streak))
	}
	return fmt.Sprintf("%s %s %s %s", Muted.Render(fmt.Sprintf("#%d", h.ID)), strings.Join(marks, " "), h.Text, streak)
}

// GoalLine renders one goal row with a progress bar.
func GoalLine(g storage.Goal) string {
	return fmt.Sprintf("%s %s %s %3d%% %s",
		Muted.Render(fmt.Sprintf("#%d", g.ID)),
		g.Name,
		Bar.Render(ProgressBar(g.Progress, 100, 20)),
		g.Progress,
		Muted.Render("created "+g.CreatedAt.Format("2006-01-02")))
}

func renderList[T any](icon, title, empty string, items []T, line func(T) string) string {
	var b strings.Builder
	b.WriteString(Heading(icon, title))
	b.WriteString("\n")
	if len(items) == 0 {
		b.WriteString(Muted.Render(empty))
		b.WriteString("\n")
		return b.String()
	}
	for _, it := range items {
		b.WriteString(line(it))
		b.WriteString("\n")
	}
	return b.String()
}

func TaskList(tasks []storage.Task) string {
	return renderList(IconTask, "Tasks", "(no tasks)", tasks, TaskLine)
}

func HabitList(habits []storage.Habit) string {
	return renderList(IconHabit, "Habits", "(no habits)", habits, HabitLine)
}

func GoalList(goals []storage.Goal) string {
	return renderList(IconGoal, "Goals", "(no goals)", goals, GoalLine)
}

// GoalChart renders a horizontal bar chart of goal progress on a 0-100 axis.
func GoalChart(goals []storage.Goal, width int) string {
	if width < 10 {
		width = 10
	}
	var b strings.Builder
	b.WriteString(Heading(IconChart, "Goal progress"))
	b.WriteString("\n")
	if len(goals) == 0 {
		b.WriteString(Muted.Render("(no goals)"))
		b.WriteString("\n")
		return b.String()
	}

	labelW := 0
	for _, g := range goals {
		if n := len([]rune(g.Name)); n > labelW {
			labelW = n
		}
	}
	if labelW > 24 {
		labelW = 24
	}
	for _, g := range goals {
		filled := g.Progress * width / 100
		bar := Bar.Render(strings.Repeat("█", filled)) + Muted.Render(strings.Repeat("·", width-filled))
		fmt.Fprintf(&b, "%s │%s│ %d%%\n", PadRight(g.Name, labelW), bar, g.Progress)
	}
	fmt.Fprintf(&b, "%s 0%s100\n", strings.Repeat(" ", labelW), strings.Repeat(" ", width-1))
	return b.String()
}

// GoalHistory renders the progress history of one goal, oldest first.
func GoalHistory(g storage.Goal, loc *time.Location) string {
	var b strings.Builder
	b.WriteString(Heading(IconGoal, g.Name))
	b.WriteString("\n")
	prev := -1
	for _, e := range g.History {
		delta := ""
		if prev >= 0 {
			switch d := e.Progress - prev; {
			case d > 0:
				delta = Good.Render(fmt.Sprintf("+%d", d))
			case d < 0:
				delta = Bad.Render(fmt.Sprintf("%d", d))
			default:
				delta = Muted.Render("±0")
			}
		}
		fmt.Fprintf(&b, "%s %3d%% %s\n", Muted.Render(e.Date.In(loc).Format("2006-01-02 15:04")), e.Progress, delta)
		prev = e.Progress
	}
	return b.String()
}

// PadRight pads or truncates s to width runes.
func PadRight(s string, width int) string {
	if width <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) >= width {
		return string(r[:width])
	}
	return s + strings.Repeat(" ", width-len(r))
}
