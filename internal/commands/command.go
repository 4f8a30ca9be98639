// Package commands provides the command interface and implementations.
package commands

import (
	"context"
	"flag"
	"io"

	"todoctl/internal/config"
	"todoctl/internal/service"
	"todoctl/internal/session"
)

// Command defines the interface for CLI commands.
type Command interface {
	// Name returns the primary command name.
	Name() string

	// Aliases returns alternative names for the command.
	Aliases() []string

	// Synopsis returns a short description for help output.
	Synopsis() string

	// Usage returns the usage string for help output.
	Usage() string

	// NeedsAuth reports whether the command requires a logged-in session.
	// The dispatcher refuses such commands while logged out; the server
	// still enforces authorization on every request.
	NeedsAuth() bool

	// NeedsAPI reports whether the command talks to the API at all.
	// Commands like help, version, logout and whoami work offline.
	NeedsAPI() bool

	// RegisterFlags registers command-specific flags.
	RegisterFlags(fs *flag.FlagSet)

	// Run executes the command.
	// cfg and sess are always provided; sess has already been initialized
	// from the credential store. svc is nil when NeedsAPI() is false.
	// args contains positional arguments after flag parsing.
	// Returns exit code.
	Run(ctx context.Context, cfg *config.Config, sess *session.Manager, svc service.Service, args []string, out, errOut io.Writer) int
}
