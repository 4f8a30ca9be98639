package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"todoctl/internal/config"
	"todoctl/internal/exitcode"
	"todoctl/internal/service"
	"todoctl/internal/session"
	"todoctl/internal/tasks"
)

func init() {
	Register(&DoneCmd{})
}

// DoneCmd toggles a task's completed flag: open tasks become completed and
// completed tasks reopen.
type DoneCmd struct{}

func (c *DoneCmd) Name() string      { return "done" }
func (c *DoneCmd) Aliases() []string { return []string{"toggle"} }
func (c *DoneCmd) Synopsis() string  { return "Toggle a task's completed flag" }
func (c *DoneCmd) Usage() string     { return "todoctl done <n>" }
func (c *DoneCmd) NeedsAuth() bool   { return true }
func (c *DoneCmd) NeedsAPI() bool    { return true }

func (c *DoneCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *DoneCmd) Run(ctx context.Context, cfg *config.Config, sess *session.Manager, svc service.Service, args []string, out, errOut io.Writer) int {
	n, err := parseTaskNum(args)
	if err != nil {
		if errors.Is(err, ErrTaskNumRequired) {
			fmt.Fprintln(errOut, "error: task number required")
		} else {
			fmt.Fprintf(errOut, "error: %v\n", err)
		}
		return exitcode.UserError
	}

	sync := tasks.NewSyncer(svc)
	task, err := resolveTaskNum(ctx, sync, n)
	if err != nil {
		if strings.Contains(err.Error(), "out of range") {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.UserError
		}
		return printServiceError(errOut, err)
	}

	if _, err := sync.Toggle(ctx, task.ID); err != nil {
		return printServiceError(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
