package engine

// Summary aggregates the three collections for status views.
type Summary struct {
	TasksOpen int
	TasksDone int

	Habits          int
	HabitsDoneToday int
	BestStreak      int
	BestStreakHabit string

	Goals           int
	GoalsComplete   int
	AverageProgress int
}

func (s *Service) Summary() Summary {
	var out Summary
	for _, t := range s.tasks.List(TaskFilter{}) {
		if t.Completed {
			out.TasksDone++
		} else {
			out.TasksOpen++
		}
	}

	today := s.Today()
	for _, h := range s.habits.List() {
		out.Habits++
		if AllChecked(h) && h.LastChecked != nil && *h.LastChecked == today {
			out.HabitsDoneToday++
		}
		if h.Streak > out.BestStreak {
			out.BestStreak = h.Streak
			out.BestStreakHabit = h.Text
		}
	}

	total := 0
	for _, g := range s.goals.List() {
		out.Goals++
		total += g.Progress
		if g.Progress >= 100 {
			out.GoalsComplete++
		}
	}
	if out.Goals > 0 {
		out.AverageProgress = (total + out.Goals/2) / out.Goals
	}
	return out
}
