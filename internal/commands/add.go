package commands

import (
	"context"
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
	Register(&AddCmd{})
}

// AddCmd implements the add command.
type AddCmd struct{}

func (c *AddCmd) Name() string      { return "add" }
func (c *AddCmd) Aliases() []string { return []string{"create"} }
func (c *AddCmd) Synopsis() string  { return "Create a task" }
func (c *AddCmd) Usage() string     { return "todoctl add <name...>" }
func (c *AddCmd) NeedsAuth() bool   { return true }
func (c *AddCmd) NeedsAPI() bool    { return true }

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *AddCmd) Run(ctx context.Context, cfg *config.Config, sess *session.Manager, svc service.Service, args []string, out, errOut io.Writer) int {
	name := strings.Join(args, " ")
	if strings.TrimSpace(name) == "" {
		fmt.Fprintln(errOut, "error: task name required")
		return exitcode.UserError
	}

	sync := tasks.NewSyncer(svc)
	created, err := sync.Add(ctx, name)
	if err != nil {
		return printServiceError(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintf(out, "created task %d\n", created.ID)
	}
	return exitcode.Success
}
