package engine

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"lifeplanner/internal/storage"
)

type TaskInput struct {
	Text     string
	Category string
	Priority Priority
}

// TaskFilter narrows List. Zero value matches everything.
type TaskFilter struct {
	Category    string
	PendingOnly bool
}

type TaskList struct {
	c *collection[storage.Task]
}

func cloneTask(t storage.Task) storage.Task {
	if t.DueDate != nil {
		d := *t.DueDate
		t.DueDate = &d
	}
	return t
}

// Add creates a pending task with no due date and puts it first.
func (l *TaskList) Add(ctx context.Context, in TaskInput) (storage.Task, error) {
	text, err := normalizeText(in.Text)
	if err != nil {
		return storage.Task{}, err
	}
	category := strings.TrimSpace(in.Category)
	if category == "" {
		category = DefaultCategory
	}
	priority := in.Priority
	if priority == "" {
		priority = DefaultPriority
	}
	if !priority.IsValid() {
		return storage.Task{}, ErrInvalidPriority
	}

	svc := l.c.svc
	var task storage.Task
	_, err = l.c.mutate(ctx, func(items []storage.Task) ([]storage.Task, bool) {
		now := svc.Now()
		task = storage.Task{
			ID:        svc.ids.next(now),
			Text:      text,
			Category:  category,
			Priority:  string(priority),
			Completed: false,
			CreatedAt: now,
			DueDate:   nil,
		}
		return prepend(items, task), true
	})
	if err != nil {
		return storage.Task{}, err
	}
	svc.log.Debug("task added", zap.Int64("id", task.ID), zap.String("category", category), zap.String("priority", string(priority)))
	return task, nil
}

// Toggle flips the completed flag. Unknown ids are a no-op.
func (l *TaskList) Toggle(ctx context.Context, id int64) (bool, error) {
	changed, err := l.c.mutate(ctx, func(items []storage.Task) ([]storage.Task, bool) {
		i := indexOf(items, func(t storage.Task) bool { return t.ID == id })
		if i < 0 {
			return items, false
		}
		items[i].Completed = !items[i].Completed
		return items, true
	})
	if changed {
		l.c.svc.log.Debug("task toggled", zap.Int64("id", id))
	}
	return changed, err
}

// SetDue sets the due date, or clears it when due is nil.
func (l *TaskList) SetDue(ctx context.Context, id int64, due *time.Time) (bool, error) {
	return l.c.mutate(ctx, func(items []storage.Task) ([]storage.Task, bool) {
		i := indexOf(items, func(t storage.Task) bool { return t.ID == id })
		if i < 0 {
			return items, false
		}
		if due == nil {
			items[i].DueDate = nil
		} else {
			d := *due
			items[i].DueDate = &d
		}
		return items, true
	})
}

// Delete removes the task. Unknown ids are a no-op.
func (l *TaskList) Delete(ctx context.Context, id int64) (bool, error) {
	changed, err := l.c.mutate(ctx, func(items []storage.Task) ([]storage.Task, bool) {
		i := indexOf(items, func(t storage.Task) bool { return t.ID == id })
		if i < 0 {
			return items, false
		}
		return removeAt(items, i), true
	})
	if changed {
		l.c.svc.log.Debug("task deleted", zap.Int64("id", id))
	}
	return changed, err
}

func (l *TaskList) Get(id int64) (storage.Task, bool) {
	items := l.c.snapshot()
	i := indexOf(items, func(t storage.Task) bool { return t.ID == id })
	if i < 0 {
		return storage.Task{}, false
	}
	return items[i], true
}

// List returns tasks newest first.
func (l *TaskList) List(f TaskFilter) []storage.Task {
	items := l.c.snapshot()
	if f.Category == "" && !f.PendingOnly {
		return items
	}
	out := make([]storage.Task, 0, len(items))
	for _, t := range items {
		if f.Category != "" && !strings.EqualFold(t.Category, f.Category) {
			continue
		}
		if f.PendingOnly && t.Completed {
			continue
		}
		out = append(out, t)
	}
	return out
}

func (l *TaskList) Len() int { return l.c.count() }
