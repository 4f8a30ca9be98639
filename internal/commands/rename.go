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
	Register(&RenameCmd{})
}

// RenameCmd implements the rename command.
type RenameCmd struct{}

func (c *RenameCmd) Name() string      { return "rename" }
func (c *RenameCmd) Aliases() []string { return []string{"mv"} }
func (c *RenameCmd) Synopsis() string  { return "Rename a task" }
func (c *RenameCmd) Usage() string     { return "todoctl rename <n> <name...>" }
func (c *RenameCmd) NeedsAuth() bool   { return true }
func (c *RenameCmd) NeedsAPI() bool    { return true }

func (c *RenameCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *RenameCmd) Run(ctx context.Context, cfg *config.Config, sess *session.Manager, svc service.Service, args []string, out, errOut io.Writer) int {
	n, err := parseTaskNum(args)
	if err != nil {
		if errors.Is(err, ErrTaskNumRequired) {
			fmt.Fprintln(errOut, "error: task number required")
		} else {
			fmt.Fprintf(errOut, "error: %v\n", err)
		}
		return exitcode.UserError
	}

	name := strings.Join(args[1:], " ")
	if strings.TrimSpace(name) == "" {
		fmt.Fprintln(errOut, "error: new name required")
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

	if _, err := sync.Rename(ctx, task.ID, name); err != nil {
		return printServiceError(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
