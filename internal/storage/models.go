package storage

import "time"

// CheckmarkCount is the fixed size of a habit's checkmark set.
const CheckmarkCount = 3

type Task struct {
	ID        int64      `json:"id" yaml:"id"`
	Text      string     `json:"text" yaml:"text"`
	Category  string     `json:"category" yaml:"category"`
	Priority  string     `json:"priority" yaml:"priority"`
	Completed bool       `json:"completed" yaml:"completed"`
	CreatedAt time.Time  `json:"createdAt" yaml:"created_at"`
	DueDate   *time.Time `json:"dueDate" yaml:"due_date"`
}

type Habit struct {
	ID     int64  `json:"id" yaml:"id"`
	Text   string `json:"text" yaml:"text"`
	Streak int    `json:"streak" yaml:"streak"`
	// LastChecked is the calendar date (2006-01-02) the streak was last credited.
	LastChecked *string              `json:"lastChecked" yaml:"last_checked"`
	Checkmarks  [CheckmarkCount]bool `json:"checkmarks" yaml:"checkmarks"`
	CreatedAt   time.Time            `json:"createdAt" yaml:"created_at"`
}

type HistoryEntry struct {
	Date     time.Time `json:"date" yaml:"date"`
	Progress int       `json:"progress" yaml:"progress"`
}

type Goal struct {
	ID        int64          `json:"id" yaml:"id"`
	Name      string         `json:"name" yaml:"name"`
	Progress  int            `json:"progress" yaml:"progress"`
	CreatedAt time.Time      `json:"createdAt" yaml:"created_at"`
	History   []HistoryEntry `json:"history" yaml:"history"`
}
