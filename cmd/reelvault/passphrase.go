package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// readPassphrase obtains the catalog passphrase: from REELVAULT_PASSPHRASE if
// set, with a hidden terminal prompt when stdin is a TTY, otherwise from a
// single line on stdin.
func readPassphrase(cmd *cobra.Command) (string, error) {
	if pass := os.Getenv("REELVAULT_PASSPHRASE"); pass != "" {
		return pass, nil
	}

	if isatty.IsTerminal(os.Stdin.Fd()) {
		fmt.Fprint(cmd.OutOrStdout(), "Passphrase: ")
		raw, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(cmd.OutOrStdout())
		if err != nil {
			return "", fmt.Errorf("read passphrase: %w", err)
		}
		if len(raw) == 0 {
			return "", errors.New("passphrase must not be empty")
		}
		return string(raw), nil
	}

	reader := bufio.NewReader(cmd.InOrStdin())
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return "", errors.New("passphrase must not be empty")
	}
	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		return "", errors.New("passphrase must not be empty")
	}
	return line, nil
}
