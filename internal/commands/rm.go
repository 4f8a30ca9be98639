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
	Register(&RemoveCmd{})
}

// RemoveCmd implements the rm command.
type RemoveCmd struct {
	force bool
}

// SetForce skips the confirmation prompt (for testing).
func (c *RemoveCmd) SetForce(f bool) { c.force = f }

func (c *RemoveCmd) Name() string      { return "rm" }
func (c *RemoveCmd) Aliases() []string { return []string{"delete"} }
func (c *RemoveCmd) Synopsis() string  { return "Delete a task" }
func (c *RemoveCmd) Usage() string     { return "todoctl rm [--force] <n>" }
func (c *RemoveCmd) NeedsAuth() bool   { return true }
func (c *RemoveCmd) NeedsAPI() bool    { return true }

func (c *RemoveCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.force, "force", false, "")
	fs.BoolVar(&c.force, "f", false, "")
}

func (c *RemoveCmd) Run(ctx context.Context, cfg *config.Config, sess *session.Manager, svc service.Service, args []string, out, errOut io.Writer) int {
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

	if !c.force {
		answer, err := promptLine(out, fmt.Sprintf("delete %q? [y/N] ", task.Name))
		if err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.UserError
		}
		if !strings.EqualFold(answer, "y") && !strings.EqualFold(answer, "yes") {
			fmt.Fprintln(out, "aborted")
			return exitcode.Success
		}
	}

	if err := sync.Remove(ctx, task.ID); err != nil {
		return printServiceError(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
