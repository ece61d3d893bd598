package engine

import (
	"context"

	"go.uber.org/zap"

	"lifeplanner/internal/storage"
)

type GoalList struct {
	c *collection[storage.Goal]
}

func cloneGoal(g storage.Goal) storage.Goal {
	g.History = append([]storage.HistoryEntry(nil), g.History...)
	return g
}

// Add creates a goal with progress clamped to [0,100] and a history holding
// that first value.
func (l *GoalList) Add(ctx context.Context, name string, progress int) (storage.Goal, error) {
	name, err := normalizeText(name)
	if err != nil {
		return storage.Goal{}, err
	}
	progress = ClampProgress(progress)

	svc := l.c.svc
	var goal storage.Goal
	_, err = l.c.mutate(ctx, func(items []storage.Goal) ([]storage.Goal, bool) {
		now := svc.Now()
		goal = storage.Goal{
			ID:        svc.ids.next(now),
			Name:      name,
			Progress:  progress,
			CreatedAt: now,
			History:   []storage.HistoryEntry{{Date: now, Progress: progress}},
		}
		return prepend(items, goal), true
	})
	if err != nil {
		return storage.Goal{}, err
	}
	svc.log.Debug("goal added", zap.Int64("id", goal.ID), zap.Int("progress", progress))
	return cloneGoal(goal), nil
}

// UpdateProgress overwrites the goal's progress and appends a history entry,
// even when the value did not change. Unknown ids are a no-op.
func (l *GoalList) UpdateProgress(ctx context.Context, id int64, progress int) (bool, error) {
	progress = ClampProgress(progress)
	svc := l.c.svc
	changed, err := l.c.mutate(ctx, func(items []storage.Goal) ([]storage.Goal, bool) {
		i := indexOf(items, func(g storage.Goal) bool { return g.ID == id })
		if i < 0 {
			return items, false
		}
		items[i].Progress = progress
		items[i].History = append(items[i].History, storage.HistoryEntry{Date: svc.Now(), Progress: progress})
		return items, true
	})
	if changed {
		svc.log.Debug("goal progress updated", zap.Int64("id", id), zap.Int("progress", progress))
	}
	return changed, err
}

// Delete removes the goal. Unknown ids are a no-op.
func (l *GoalList) Delete(ctx context.Context, id int64) (bool, error) {
	changed, err := l.c.mutate(ctx, func(items []storage.Goal) ([]storage.Goal, bool) {
		i := indexOf(items, func(g storage.Goal) bool { return g.ID == id })
		if i < 0 {
			return items, false
		}
		return removeAt(items, i), true
	})
	if changed {
		l.c.svc.log.Debug("goal deleted", zap.Int64("id", id))
	}
	return changed, err
}

func (l *GoalList) Get(id int64) (storage.Goal, bool) {
	items := l.c.snapshot()
	i := indexOf(items, func(g storage.Goal) bool { return g.ID == id })
	if i < 0 {
		return storage.Goal{}, false
	}
	return items[i], true
}

// List returns goals newest first.
func (l *GoalList) List() []storage.Goal { return l.c.snapshot() }

func (l *GoalList) Len() int { return l.c.count() }
