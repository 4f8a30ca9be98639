package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"todoctl/internal/config"
	"todoctl/internal/exitcode"
	"todoctl/internal/output"
	"todoctl/internal/service"
	"todoctl/internal/session"
	"todoctl/internal/upload"
)

func init() {
	Register(&ProfileCmd{})
}

// ProfileCmd shows and edits the user profile. With no subcommand it
// prints the profile; "email" updates the address and "upload" pushes a
// new profile image to Cloudinary before saving its URL on the profile.
type ProfileCmd struct {
	uploader *upload.Cloudinary
}

// SetUploader overrides the Cloudinary client (for testing).
func (c *ProfileCmd) SetUploader(u *upload.Cloudinary) { c.uploader = u }

func (c *ProfileCmd) Name() string      { return "profile" }
func (c *ProfileCmd) Aliases() []string { return nil }
func (c *ProfileCmd) Synopsis() string  { return "Show or edit the user profile" }
func (c *ProfileCmd) Usage() string {
	return "todoctl profile [email <address> | upload <file>]"
}
func (c *ProfileCmd) NeedsAuth() bool { return true }
func (c *ProfileCmd) NeedsAPI() bool  { return true }

func (c *ProfileCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ProfileCmd) Run(ctx context.Context, cfg *config.Config, sess *session.Manager, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) == 0 {
		return c.show(ctx, svc, out, errOut)
	}

	switch args[0] {
	case "email":
		if len(args) < 2 || args[1] == "" {
			fmt.Fprintln(errOut, "error: email address required")
			return exitcode.UserError
		}
		return c.setEmail(ctx, cfg, svc, args[1], out, errOut)
	case "upload":
		if len(args) < 2 || args[1] == "" {
			fmt.Fprintln(errOut, "error: image file required")
			return exitcode.UserError
		}
		return c.uploadImage(ctx, cfg, svc, args[1], out, errOut)
	default:
		fmt.Fprintf(errOut, "error: unknown profile subcommand: %s\n", args[0])
		fmt.Fprintf(errOut, "usage: %s\n", c.Usage())
		return exitcode.UserError
	}
}

func (c *ProfileCmd) show(ctx context.Context, svc service.Service, out, errOut io.Writer) int {
	prof, err := svc.Profile(ctx)
	if err != nil {
		return printServiceError(errOut, err)
	}
	output.FormatProfile(out, prof)
	return exitcode.Success
}

func (c *ProfileCmd) setEmail(ctx context.Context, cfg *config.Config, svc service.Service, email string, out, errOut io.Writer) int {
	prof, err := svc.UpdateProfile(ctx, service.Profile{Email: email})
	if err != nil {
		return printServiceError(errOut, err)
	}
	if !cfg.Quiet {
		output.FormatProfile(out, prof)
	}
	return exitcode.Success
}

func (c *ProfileCmd) uploadImage(ctx context.Context, cfg *config.Config, svc service.Service, path string, out, errOut io.Writer) int {
	up := c.uploader
	if up == nil {
		up = upload.New(cfg.CloudName, cfg.UploadPreset)
	}

	res, err := up.Upload(ctx, path)
	if err != nil {
		if errors.Is(err, upload.ErrNotConfigured) {
			fmt.Fprintln(errOut, "error: image upload not configured (set cloudinary cloud name and upload preset)")
			return exitcode.UserError
		}
		fmt.Fprintf(errOut, "error: upload failed: %v\n", err)
		return exitcode.BackendError
	}

	prof, err := svc.UpdateProfile(ctx, service.Profile{
		ImageURL:      res.SecureURL,
		ImagePublicID: res.PublicID,
	})
	if err != nil {
		return printServiceError(errOut, err)
	}

	if !cfg.Quiet {
		output.FormatProfile(out, prof)
	}
	return exitcode.Success
}
