package commands

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"todoctl/internal/service"
	"todoctl/internal/tasks"
)

// ErrTaskNumRequired is returned when no task number argument is given.
var ErrTaskNumRequired = errors.New("task number required")

// parseTaskNum parses the leading positional argument as a 1-based task
// number, as printed by the list command.
func parseTaskNum(args []string) (int, error) {
	if len(args) == 0 {
		return 0, ErrTaskNumRequired
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, fmt.Errorf("invalid task number: %s", args[0])
	}
	if n < 1 {
		return 0, fmt.Errorf("task number out of range: %d", n)
	}
	return n, nil
}

// resolveTaskNum fetches the current list through sync and returns the
// n-th task. The number indexes the full unfiltered list.
func resolveTaskNum(ctx context.Context, sync *tasks.Syncer, n int) (service.Task, error) {
	if err := sync.Fetch(ctx); err != nil {
		return service.Task{}, err
	}
	list := sync.Tasks()
	if n > len(list) {
		return service.Task{}, fmt.Errorf("task number out of range: %d", n)
	}
	return list[n-1], nil
}
