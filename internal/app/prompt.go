package app

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
)

// ReadPassword prompts on the controlling terminal with echo disabled
// and returns the raw password bytes. When stdin is a pipe (the usual
// case for doby) the prompt goes through /dev/tty; if no terminal is
// reachable the caller must pass --password.
func ReadPassword(prompt string) ([]byte, error) {
	fmt.Fprint(os.Stderr, prompt)

	if term.IsTerminal(int(os.Stdin.Fd())) {
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return nil, fmt.Errorf("reading password: %w", err)
		}
		return password, nil
	}

	tty, err := os.Open("/dev/tty")
	if err != nil {
		return nil, fmt.Errorf("cannot prompt for password: stdin is piped and no terminal is available (use --password)")
	}
	defer tty.Close()

	password, err := term.ReadPassword(int(tty.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return nil, fmt.Errorf("reading password: %w", err)
	}
	return password, nil
}

// ConfirmOverwrite asks on the controlling terminal whether path may be
// replaced. Anything but an explicit "y"/"yes" declines.
func ConfirmOverwrite(path string) (bool, error) {
	fmt.Fprintf(os.Stderr, "%s already exists. Overwrite? [y/N] ", path)

	in := os.Stdin
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		tty, err := os.Open("/dev/tty")
		if err != nil {
			return false, fmt.Errorf("cannot confirm overwrite: stdin is piped and no terminal is available")
		}
		defer tty.Close()
		in = tty
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil {
		return false, fmt.Errorf("reading confirmation: %w", err)
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}
