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
	Register(&LoginCmd{})
}

// LoginCmd implements the login command.
type LoginCmd struct {
	password string
}

// SetPassword sets the password (for testing).
func (c *LoginCmd) SetPassword(p string) { c.password = p }

func (c *LoginCmd) Name() string      { return "login" }
func (c *LoginCmd) Aliases() []string { return nil }
func (c *LoginCmd) Synopsis() string  { return "Log in with username and password" }
func (c *LoginCmd) Usage() string     { return "todoctl login [--password <pw>] [username]" }
func (c *LoginCmd) NeedsAuth() bool   { return false }
func (c *LoginCmd) NeedsAPI() bool    { return true }

func (c *LoginCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.password, "password", "", "")
}

func (c *LoginCmd) Run(ctx context.Context, cfg *config.Config, sess *session.Manager, svc service.Service, args []string, out, errOut io.Writer) int {
	var username string
	var err error
	if len(args) > 0 {
		username = args[0]
	} else {
		username, err = promptLine(out, "username: ")
		if err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.UserError
		}
	}
	if username == "" {
		fmt.Fprintln(errOut, "error: username required")
		return exitcode.UserError
	}

	password := c.password
	if password == "" {
		password, err = promptSecret(out, "password: ")
		if err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.UserError
		}
	}
	if password == "" {
		fmt.Fprintln(errOut, "error: password required")
		return exitcode.UserError
	}

	pair, err := svc.Login(ctx, username, password)
	if err != nil {
		return printServiceError(errOut, err)
	}

	if err := sess.Login(pair.Access, pair.Refresh, username); err != nil {
		fmt.Fprintf(errOut, "error: failed to save credentials: %v\n", err)
		return exitcode.AuthError
	}

	if !cfg.Quiet {
		fmt.Fprintf(out, "logged in as %s\n", username)
	}
	return exitcode.Success
}
