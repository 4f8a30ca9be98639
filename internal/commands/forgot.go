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
	Register(&ForgotCmd{})
}

// ForgotCmd requests a password reset email.
type ForgotCmd struct{}

func (c *ForgotCmd) Name() string      { return "forgot" }
func (c *ForgotCmd) Aliases() []string { return []string{"forgot-password"} }
func (c *ForgotCmd) Synopsis() string  { return "Request a password reset email" }
func (c *ForgotCmd) Usage() string     { return "todoctl forgot [email]" }
func (c *ForgotCmd) NeedsAuth() bool   { return false }
func (c *ForgotCmd) NeedsAPI() bool    { return true }

func (c *ForgotCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ForgotCmd) Run(ctx context.Context, cfg *config.Config, sess *session.Manager, svc service.Service, args []string, out, errOut io.Writer) int {
	var email string
	var err error
	if len(args) > 0 {
		email = args[0]
	} else {
		email, err = promptLine(out, "email: ")
		if err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.UserError
		}
	}
	if email == "" {
		fmt.Fprintln(errOut, "error: email required")
		return exitcode.UserError
	}

	msg, err := svc.RequestPasswordReset(ctx, email)
	if err != nil {
		return printServiceError(errOut, err)
	}

	fmt.Fprintln(out, msg)
	return exitcode.Success
}
