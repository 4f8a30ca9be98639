// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"todoctl/internal/service"
)

// FormatTask formats one task row.
// Format: "{N:>4}  [x]  {NAME}\n" with "[ ]" for open tasks. num is the
// task's position in the full (unfiltered) list so references stay stable
// under filtering.
func FormatTask(w io.Writer, num int, task service.Task) {
	box := "[ ]"
	if task.Completed {
		box = "[x]"
	}
	fmt.Fprintf(w, "%4d  %s  %s\n", num, box, normalizeName(task.Name))
}

// FormatProfile formats the profile for display.
func FormatProfile(w io.Writer, p service.Profile) {
	fmt.Fprintf(w, "email: %s\n", valueOrDash(p.Email))
	fmt.Fprintf(w, "image: %s\n", valueOrDash(p.ImageURL))
}

func valueOrDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

// normalizeName normalizes a task name for display.
// - Empty or whitespace-only names become "(untitled)"
// - Newlines are replaced with spaces
func normalizeName(name string) string {
	name = strings.ReplaceAll(name, "\r", " ")
	name = strings.ReplaceAll(name, "\n", " ")

	if strings.TrimSpace(name) == "" {
		return "(untitled)"
	}
	return name
}
