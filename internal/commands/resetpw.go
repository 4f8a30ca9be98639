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
	Register(&ResetPasswordCmd{})
}

// ResetPasswordCmd confirms a password reset with the token from the reset
// email. The password is checked against its confirmation locally before
// anything goes over the wire.
type ResetPasswordCmd struct {
	token    string
	password string
	confirm  string
}

// SetToken sets the reset token (for testing).
func (c *ResetPasswordCmd) SetToken(t string) { c.token = t }

// SetPasswords sets the new password and its confirmation (for testing).
func (c *ResetPasswordCmd) SetPasswords(pw, confirm string) {
	c.password = pw
	c.confirm = confirm
}

func (c *ResetPasswordCmd) Name() string      { return "resetpw" }
func (c *ResetPasswordCmd) Aliases() []string { return []string{"reset-password"} }
func (c *ResetPasswordCmd) Synopsis() string  { return "Set a new password with a reset token" }
func (c *ResetPasswordCmd) Usage() string {
	return "todoctl resetpw --token <token> [--password <pw>] [--confirm-password <pw>]"
}
func (c *ResetPasswordCmd) NeedsAuth() bool { return false }
func (c *ResetPasswordCmd) NeedsAPI() bool  { return true }

func (c *ResetPasswordCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.token, "token", "", "")
	fs.StringVar(&c.password, "password", "", "")
	fs.StringVar(&c.confirm, "confirm-password", "", "")
}

func (c *ResetPasswordCmd) Run(ctx context.Context, cfg *config.Config, sess *session.Manager, svc service.Service, args []string, out, errOut io.Writer) int {
	if c.token == "" {
		fmt.Fprintln(errOut, "error: reset token required (use --token)")
		return exitcode.UserError
	}

	var err error
	password := c.password
	if password == "" {
		password, err = promptSecret(out, "new password: ")
		if err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.UserError
		}
	}
	if password == "" {
		fmt.Fprintln(errOut, "error: password required")
		return exitcode.UserError
	}

	confirm := c.confirm
	if confirm == "" {
		confirm, err = promptSecret(out, "confirm password: ")
		if err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.UserError
		}
	}
	if password != confirm {
		fmt.Fprintln(errOut, "error: passwords do not match")
		return exitcode.UserError
	}

	msg, err := svc.ConfirmPasswordReset(ctx, c.token, password)
	if err != nil {
		return printServiceError(errOut, err)
	}

	fmt.Fprintln(out, msg)
	return exitcode.Success
}
