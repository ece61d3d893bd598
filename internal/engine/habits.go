package engine

import (
	"context"

	"go.uber.org/zap"

	"lifeplanner/internal/storage"
)

type HabitList struct {
	c *collection[storage.Habit]
}

func cloneHabit(h storage.Habit) storage.Habit {
	if h.LastChecked != nil {
		d := *h.LastChecked
		h.LastChecked = &d
	}
	return h
}

// AllChecked reports whether every checkmark of h is set.
func AllChecked(h storage.Habit) bool {
	for _, c := range h.Checkmarks {
		if !c {
			return false
		}
	}
	return true
}

// ToggleHabitCheckmark flips checkmark index of h and re-evaluates the streak
// for the calendar day today:
//
//   - all checked, not yet credited today: streak+1, lastChecked=today
//   - all checked, already credited today: unchanged
//   - not all checked: streak=0, lastChecked kept
//
// A reset after the day was credited is final for that day. ok is false
// when index is out of range.
func ToggleHabitCheckmark(h storage.Habit, index int, today string) (storage.Habit, bool) {
	if index < 0 || index >= len(h.Checkmarks) {
		return h, false
	}
	h.Checkmarks[index] = !h.Checkmarks[index]

	if AllChecked(h) {
		if h.LastChecked == nil || *h.LastChecked != today {
			h.Streak++
			d := today
			h.LastChecked = &d
		}
	} else {
		h.Streak = 0
	}
	return h, true
}

// Add creates a habit with an empty checkmark set and puts it first.
func (l *HabitList) Add(ctx context.Context, text string) (storage.Habit, error) {
	text, err := normalizeText(text)
	if err != nil {
		return storage.Habit{}, err
	}

	svc := l.c.svc
	var habit storage.Habit
	_, err = l.c.mutate(ctx, func(items []storage.Habit) ([]storage.Habit, bool) {
		now := svc.Now()
		habit = storage.Habit{
			ID:        svc.ids.next(now),
			Text:      text,
			CreatedAt: now,
		}
		return prepend(items, habit), true
	})
	if err != nil {
		return storage.Habit{}, err
	}
	svc.log.Debug("habit added", zap.Int64("id", habit.ID))
	return habit, nil
}

// ToggleCheckmark flips one checkmark and updates the streak. Unknown ids
// and out-of-range indexes are a no-op.
func (l *HabitList) ToggleCheckmark(ctx context.Context, id int64, index int) (bool, error) {
	svc := l.c.svc
	var after storage.Habit
	changed, err := l.c.mutate(ctx, func(items []storage.Habit) ([]storage.Habit, bool) {
		i := indexOf(items, func(h storage.Habit) bool { return h.ID == id })
		if i < 0 {
			return items, false
		}
		next, ok := ToggleHabitCheckmark(items[i], index, svc.Today())
		if !ok {
			return items, false
		}
		items[i] = next
		after = next
		return items, true
	})
	if changed {
		svc.log.Debug("habit checkmark toggled",
			zap.Int64("id", id),
			zap.Int("index", index),
			zap.Int("streak", after.Streak))
	}
	return changed, err
}

// Delete removes the habit. Unknown ids are a no-op.
func (l *HabitList) Delete(ctx context.Context, id int64) (bool, error) {
	changed, err := l.c.mutate(ctx, func(items []storage.Habit) ([]storage.Habit, bool) {
		i := indexOf(items, func(h storage.Habit) bool { return h.ID == id })
		if i < 0 {
			return items, false
		}
		return removeAt(items, i), true
	})
	if changed {
		l.c.svc.log.Debug("habit deleted", zap.Int64("id", id))
	}
	return changed, err
}

func (l *HabitList) Get(id int64) (storage.Habit, bool) {
	items := l.c.snapshot()
	i := indexOf(items, func(h storage.Habit) bool { return h.ID == id })
	if i < 0 {
		return storage.Habit{}, false
	}
	return items[i], true
}

// List returns habits newest first.
func (l *HabitList) List() []storage.Habit { return l.c.snapshot() }

func (l *HabitList) Len() int { return l.c.count() }
