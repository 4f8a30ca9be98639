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
	Register(&RegisterCmd{})
}

// RegisterCmd implements the register command. After the account is
// created it logs in with the fresh credentials, so a successful register
// leaves a working session behind.
type RegisterCmd struct {
	password string
}

// SetPassword sets the password (for testing).
func (c *RegisterCmd) SetPassword(p string) { c.password = p }

func (c *RegisterCmd) Name() string      { return "register" }
func (c *RegisterCmd) Aliases() []string { return nil }
func (c *RegisterCmd) Synopsis() string  { return "Create an account and log in" }
func (c *RegisterCmd) Usage() string {
	return "todoctl register [--password <pw>] [username] [email]"
}
func (c *RegisterCmd) NeedsAuth() bool { return false }
func (c *RegisterCmd) NeedsAPI() bool  { return true }

func (c *RegisterCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.password, "password", "", "")
}

func (c *RegisterCmd) Run(ctx context.Context, cfg *config.Config, sess *session.Manager, svc service.Service, args []string, out, errOut io.Writer) int {
	var username, email string
	var err error

	if len(args) > 0 {
		username = args[0]
	} else if username, err = promptLine(out, "username: "); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	if len(args) > 1 {
		email = args[1]
	} else if email, err = promptLine(out, "email: "); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	if username == "" || email == "" {
		fmt.Fprintln(errOut, "error: username and email required")
		return exitcode.UserError
	}

	password := c.password
	if password == "" {
		if password, err = promptSecret(out, "password: "); err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.UserError
		}
	}
	if password == "" {
		fmt.Fprintln(errOut, "error: password required")
		return exitcode.UserError
	}

	if _, err := svc.Register(ctx, username, email, password); err != nil {
		return printServiceError(errOut, err)
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
		fmt.Fprintf(out, "registered as %s\n", username)
	}
	return exitcode.Success
}
