package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"todoctl/internal/config"
	"todoctl/internal/exitcode"
	"todoctl/internal/service"
	"todoctl/internal/session"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd prints usage, either the command list or one command's usage.
type HelpCmd struct{}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Show help" }
func (c *HelpCmd) Usage() string     { return "todoctl help [command]" }
func (c *HelpCmd) NeedsAuth() bool   { return false }
func (c *HelpCmd) NeedsAPI() bool    { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, sess *session.Manager, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		cmd, ok := DefaultRegistry.Find(args[0])
		if !ok {
			fmt.Fprintf(errOut, "error: unknown command: %s\n", args[0])
			return exitcode.UserError
		}
		fmt.Fprintf(out, "usage: %s\n", cmd.Usage())
		return exitcode.Success
	}

	fmt.Fprintln(out, "usage: todoctl [--config <dir>] [--quiet] [--debug] <command> [args]")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Commands:")
	for _, cmd := range DefaultRegistry.All() {
		fmt.Fprintf(out, "  %-10s %s\n", cmd.Name(), cmd.Synopsis())
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Run 'todoctl help <command>' for command usage.")
	return exitcode.Success
}
