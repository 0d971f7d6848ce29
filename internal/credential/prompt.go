package credential

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Prompter collects interactive input for rotate and repair flows.
type Prompter interface {
	// Username reads a plain line, labelled with the variant's user
	// alias ("user", "instance-url").
	Username(label string) (string, error)

	// Secret reads masked input, labelled with the variant's secret
	// type ("password", "token").
	Secret(label string) (string, error)
}

// TerminalPrompter reads from the controlling terminal, masking
// secrets via term.ReadPassword.
type TerminalPrompter struct {
	In  *os.File
	Out io.Writer
}

// NewTerminalPrompter prompts on stdin/stderr.
func NewTerminalPrompter() *TerminalPrompter {
	return &TerminalPrompter{In: os.Stdin, Out: os.Stderr}
}

// Username implements Prompter.
func (p *TerminalPrompter) Username(label string) (string, error) {
	fmt.Fprintf(p.Out, "Enter %s: ", label)
	reader := bufio.NewReader(p.In)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// Secret implements Prompter.
func (p *TerminalPrompter) Secret(label string) (string, error) {
	fmt.Fprintf(p.Out, "Enter %s: ", capitalize(label))
	defer fmt.Fprintln(p.Out)

	raw, err := term.ReadPassword(int(p.In.Fd()))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(raw)), nil
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// StaticPrompter answers every prompt with fixed values. The validate
// command uses it to pre-supply repair input from flags; tests use it
// in place of a terminal.
type StaticPrompter struct {
	UsernameValue string
	SecretValue   string

	// Calls counts prompts served, split by kind.
	UsernameCalls int
	SecretCalls   int
}

// Username implements Prompter.
func (p *StaticPrompter) Username(string) (string, error) {
	p.UsernameCalls++
	return p.UsernameValue, nil
}

// Secret implements Prompter.
func (p *StaticPrompter) Secret(string) (string, error) {
	p.SecretCalls++
	return p.SecretValue, nil
}
