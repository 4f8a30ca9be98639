package commands

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// stdin is swapped out only by prompts that read it directly; flag values
// take precedence everywhere so scripts and tests never hit a prompt.
var stdin io.Reader = os.Stdin

// promptLine prints prompt to out and reads one line from stdin.
func promptLine(out io.Writer, prompt string) (string, error) {
	fmt.Fprint(out, prompt)
	r := bufio.NewReader(stdin)
	line, err := r.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// promptSecret reads a password without echo when stdin is a terminal,
// falling back to a plain line read otherwise.
func promptSecret(out io.Writer, prompt string) (string, error) {
	if f, ok := stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(out, prompt)
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(out)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
	return promptLine(out, prompt)
}
