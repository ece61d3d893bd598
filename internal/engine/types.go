package engine

import (
	"fmt"
	"strings"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityNormal Priority = "normal"
	PriorityHigh   Priority = "high"
)

func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityNormal, PriorityHigh:
		return true
	default:
		return false
	}
}

// DefaultPriority is used when no priority is given.
const DefaultPriority = PriorityNormal

// DefaultCategory is used when no category is given.
const DefaultCategory = "general"

// ParsePriority parses user input to a Priority. Empty input yields
// DefaultPriority.
func ParsePriority(input string) (Priority, error) {
	s := strings.TrimSpace(strings.ToLower(input))
	switch s {
	case "":
		return DefaultPriority, nil
	case "low", "l":
		return PriorityLow, nil
	case "normal", "n", "medium", "med":
		return PriorityNormal, nil
	case "high", "h":
		return PriorityHigh, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidPriority, input)
	}
}

// Kind names the collection (or preference) a change signal refers to.
type Kind string

const (
	KindTasks  Kind = "tasks"
	KindHabits Kind = "habits"
	KindGoals  Kind = "goals"
	KindTheme  Kind = "theme"
)

// DateLayout is the calendar-date format habits are credited under.
const DateLayout = "2006-01-02"
