package commands_test

import (
	"strings"
	"testing"

	"todoctl/internal/backend/restapi"
	"todoctl/internal/commands"
	"todoctl/internal/exitcode"
	"todoctl/internal/testutil"
)

// Tests for login command
func TestLoginCommand(t *testing.T) {
	svc := testutil.NewFakeService()
	sess := newSession(t)

	cmd := &commands.LoginCmd{}
	cmd.SetPassword("hunter2")
	stdout, stderr, code := runCommand(t, cmd, sess, svc, []string{"frank"}, false)

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (stderr %q)", exitcode.Success, code, stderr)
	}
	if stdout != "logged in as frank\n" {
		t.Errorf("unexpected stdout: %q", stdout)
	}
	if !sess.LoggedIn() || sess.Username() != "frank" {
		t.Error("session should be logged in as frank")
	}
	if sess.AccessToken() != "access-frank" || sess.RefreshToken() != "refresh-frank" {
		t.Error("tokens not stored")
	}
}

func TestLoginCommand_BadCredentials(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.LoginErr = &restapi.MessageError{Status: 401, Message: "No active account found with the given credentials"}
	sess := newSession(t)

	cmd := &commands.LoginCmd{}
	cmd.SetPassword("wrong")
	_, stderr, code := runCommand(t, cmd, sess, svc, []string{"frank"}, false)

	if code != exitcode.AuthError {
		t.Errorf("expected exit code %d, got %d", exitcode.AuthError, code)
	}
	if !strings.Contains(stderr, "No active account found") {
		t.Errorf("unexpected stderr: %q", stderr)
	}
	if sess.LoggedIn() {
		t.Error("session should stay logged out after a failed login")
	}
}

// Tests for register command
func TestRegisterCommand_LeavesSession(t *testing.T) {
	svc := testutil.NewFakeService()
	sess := newSession(t)

	cmd := &commands.RegisterCmd{}
	cmd.SetPassword("s3cret")
	stdout, stderr, code := runCommand(t, cmd, sess, svc, []string{"alice", "alice@example.com"}, false)

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (stderr %q)", exitcode.Success, code, stderr)
	}
	if stdout != "registered as alice\n" {
		t.Errorf("unexpected stdout: %q", stdout)
	}
	if !sess.LoggedIn() || sess.Username() != "alice" {
		t.Error("register should leave a working session")
	}
}

func TestRegisterCommand_DuplicateUsername(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.RegisterErr = &restapi.ValidationError{
		Fields: map[string][]string{"username": {"A user with that username already exists."}},
	}
	sess := newSession(t)

	cmd := &commands.RegisterCmd{}
	cmd.SetPassword("s3cret")
	_, stderr, code := runCommand(t, cmd, sess, svc, []string{"frank", "frank@example.com"}, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if !strings.Contains(stderr, "username: A user with that username already exists.") {
		t.Errorf("unexpected stderr: %q", stderr)
	}
}

// Tests for logout command
func TestLogoutCommand(t *testing.T) {
	sess := loggedInSession(t)

	cmd := &commands.LogoutCmd{}
	stdout, _, code := runCommand(t, cmd, sess, nil, nil, false)

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "ok\n" {
		t.Errorf("unexpected stdout: %q", stdout)
	}
	if sess.LoggedIn() {
		t.Error("session should be logged out")
	}
	if sess.AccessToken() != "" || sess.RefreshToken() != "" {
		t.Error("tokens should be cleared")
	}
}

func TestLogoutCommand_NotLoggedIn(t *testing.T) {
	sess := newSession(t)

	cmd := &commands.LogoutCmd{}
	stdout, _, code := runCommand(t, cmd, sess, nil, nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "not logged in\n" {
		t.Errorf("unexpected stdout: %q", stdout)
	}
}

// Tests for whoami command
func TestWhoamiCommand(t *testing.T) {
	sess := loggedInSession(t)

	cmd := &commands.WhoamiCmd{}
	stdout, _, code := runCommand(t, cmd, sess, nil, nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "frank\n" {
		t.Errorf("unexpected stdout: %q", stdout)
	}
}

func TestWhoamiCommand_LoggedOut(t *testing.T) {
	sess := newSession(t)

	cmd := &commands.WhoamiCmd{}
	stdout, _, code := runCommand(t, cmd, sess, nil, nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "not logged in\n" {
		t.Errorf("unexpected stdout: %q", stdout)
	}
}

// Tests for forgot command
func TestForgotCommand(t *testing.T) {
	svc := testutil.NewFakeService()

	cmd := &commands.ForgotCmd{}
	stdout, _, code := runCommand(t, cmd, newSession(t), svc, []string{"frank@example.com"}, false)

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "If the email exists, a reset link was sent.\n" {
		t.Errorf("unexpected stdout: %q", stdout)
	}
}

// Tests for resetpw command
func TestResetPasswordCommand(t *testing.T) {
	svc := testutil.NewFakeService()

	cmd := &commands.ResetPasswordCmd{}
	cmd.SetToken("valid-token")
	cmd.SetPasswords("newpass123", "newpass123")
	stdout, stderr, code := runCommand(t, cmd, newSession(t), svc, nil, false)

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (stderr %q)", exitcode.Success, code, stderr)
	}
	if stdout != "Password reset successful.\n" {
		t.Errorf("unexpected stdout: %q", stdout)
	}
}

func TestResetPasswordCommand_Mismatch(t *testing.T) {
	svc := testutil.NewFakeService()

	cmd := &commands.ResetPasswordCmd{}
	cmd.SetToken("valid-token")
	cmd.SetPasswords("newpass123", "different")
	_, stderr, code := runCommand(t, cmd, newSession(t), svc, nil, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: passwords do not match\n" {
		t.Errorf("unexpected stderr: %q", stderr)
	}
}

func TestResetPasswordCommand_MissingToken(t *testing.T) {
	svc := testutil.NewFakeService()

	cmd := &commands.ResetPasswordCmd{}
	cmd.SetPasswords("newpass123", "newpass123")
	_, stderr, code := runCommand(t, cmd, newSession(t), svc, nil, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: reset token required (use --token)\n" {
		t.Errorf("unexpected stderr: %q", stderr)
	}
}

func TestResetPasswordCommand_BadToken(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.ResetConfirmErr = &restapi.MessageError{Status: 400, Message: "Invalid or expired reset token."}

	cmd := &commands.ResetPasswordCmd{}
	cmd.SetToken("stale")
	cmd.SetPasswords("newpass123", "newpass123")
	_, stderr, code := runCommand(t, cmd, newSession(t), svc, nil, false)

	if code != exitcode.BackendError {
		t.Errorf("expected exit code %d, got %d", exitcode.BackendError, code)
	}
	if !strings.Contains(stderr, "Invalid or expired reset token.") {
		t.Errorf("unexpected stderr: %q", stderr)
	}
}
