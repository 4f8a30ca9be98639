package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"todoctl/internal/config"
	"todoctl/internal/exitcode"
	"todoctl/internal/output"
	"todoctl/internal/service"
	"todoctl/internal/session"
	"todoctl/internal/tasks"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command, the default when todoctl runs with
// no arguments.
type ListCmd struct {
	filter string
}

// SetFilter sets the filter name (for testing).
func (c *ListCmd) SetFilter(f string) { c.filter = f }

func (c *ListCmd) Name() string      { return "list" }
func (c *ListCmd) Aliases() []string { return []string{"ls"} }
func (c *ListCmd) Synopsis() string  { return "List tasks" }
func (c *ListCmd) Usage() string     { return "todoctl list [--filter all|active|completed]" }
func (c *ListCmd) NeedsAuth() bool   { return true }
func (c *ListCmd) NeedsAPI() bool    { return true }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.filter, "filter", "", "")
	fs.StringVar(&c.filter, "f", "", "")
}

func (c *ListCmd) Run(ctx context.Context, cfg *config.Config, sess *session.Manager, svc service.Service, args []string, out, errOut io.Writer) int {
	filter, err := tasks.ParseFilter(c.filter)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	sync := tasks.NewSyncer(svc)
	if err := sync.Fetch(ctx); err != nil {
		return printServiceError(errOut, err)
	}

	// Numbers are positions in the full list, so a task keeps its number
	// when the filter changes.
	shown := 0
	for i, task := range sync.Tasks() {
		if !filter.Match(task) {
			continue
		}
		output.FormatTask(out, i+1, task)
		shown++
	}

	if shown == 0 && !cfg.Quiet {
		fmt.Fprintln(out, "no tasks found")
	}
	return exitcode.Success
}
