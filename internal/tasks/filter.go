package tasks

import (
	"fmt"
	"strings"

	"todoctl/internal/service"
)

// Filter selects which tasks are visible. Pure client-side state; never
// persisted.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterActive    Filter = "active"
	FilterCompleted Filter = "completed"
)

// ParseFilter parses a filter name, case-insensitive. Empty means all.
func ParseFilter(s string) (Filter, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return FilterAll, nil
	case "active":
		return FilterActive, nil
	case "completed":
		return FilterCompleted, nil
	}
	return "", fmt.Errorf("invalid filter: %s (expected all, active or completed)", s)
}

// Match reports whether the task passes the filter.
func (f Filter) Match(t service.Task) bool {
	switch f {
	case FilterActive:
		return !t.Completed
	case FilterCompleted:
		return t.Completed
	default:
		return true
	}
}

// Apply returns the subset of tasks passing the filter, preserving order.
func Apply(tasks []service.Task, f Filter) []service.Task {
	if f == FilterAll {
		return tasks
	}
	var out []service.Task
	for _, t := range tasks {
		if f.Match(t) {
			out = append(out, t)
		}
	}
	return out
}

// Next cycles All -> Active -> Completed -> All.
func (f Filter) Next() Filter {
	switch f {
	case FilterAll:
		return FilterActive
	case FilterActive:
		return FilterCompleted
	default:
		return FilterAll
	}
}

// Title returns the display name of the filter.
func (f Filter) Title() string {
	switch f {
	case FilterActive:
		return "Active"
	case FilterCompleted:
		return "Completed"
	default:
		return "All"
	}
}
