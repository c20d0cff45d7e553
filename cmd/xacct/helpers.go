package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/zx06/xacct/internal/account"
	"github.com/zx06/xacct/internal/app"
	"github.com/zx06/xacct/internal/errors"
	"github.com/zx06/xacct/internal/log"
	"github.com/zx06/xacct/internal/output"
)

// storeOptions supplies the store's collaborators; tests replace it
var storeOptions = func() app.StoreOptions {
	level, _ := log.ParseLevel(GlobalConfig.Resolved.LogLevel)
	return app.StoreOptions{Logger: log.NewWithLevel(os.Stderr, level)}
}

// openStore opens the keyring-backed store for the resolved configuration
func openStore() (account.Store[app.Credential], error) {
	s, xe := app.OpenStore(GlobalConfig.Resolved, storeOptions())
	if xe != nil {
		return nil, xe
	}
	return s, nil
}

// parseOutputFormat parses and validates the output format string
func parseOutputFormat(s string) (output.Format, error) {
	f := output.Format(s)
	if !output.IsValid(f) {
		return "", errors.New(errors.CodeCfgInvalid, "invalid output format", map[string]any{"format": s})
	}
	return resolveAuto(f), nil
}

// resolveFormatForError resolves the format for error output
func resolveFormatForError(s string) output.Format {
	f := output.Format(s)
	if !output.IsValid(f) {
		f = output.FormatAuto
	}
	return resolveAuto(f)
}

// resolveAuto resolves "auto" format to appropriate format based on TTY
func resolveAuto(f output.Format) output.Format {
	return f.ResolveAuto(term.IsTerminal(int(os.Stdout.Fd())))
}

// normalizeErr normalizes any error to XError
func normalizeErr(err error) *errors.XError {
	if xe, ok := errors.As(err); ok {
		return xe
	}
	// Preserve original error message
	return errors.Wrap(errors.CodeInternal, err.Error(), nil, err)
}

// isStdinTerminal reports whether stdin is interactive; tests replace it
var isStdinTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// readSecret reads the account secret from stdin or prompts for it on a TTY
func readSecret(cmd *cobra.Command, fromStdin bool) (string, error) {
	if fromStdin {
		line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		if err != nil && err != io.EOF {
			return "", errors.Wrap(errors.CodeInternal, "failed to read secret from stdin", nil, err)
		}
		secret := strings.TrimRight(line, "\r\n")
		if secret == "" {
			return "", errors.New(errors.CodeCfgInvalid, "secret from stdin is empty", nil)
		}
		return secret, nil
	}
	if !isStdinTerminal() {
		return "", errors.New(errors.CodeCfgInvalid, "secret required: use --secret-stdin when stdin is not a terminal", nil)
	}
	_, _ = fmt.Fprint(cmd.ErrOrStderr(), "Secret: ")
	b, err := term.ReadPassword(int(os.Stdin.Fd()))
	_, _ = fmt.Fprintln(cmd.ErrOrStderr())
	if err != nil {
		return "", errors.Wrap(errors.CodeInternal, "failed to read secret", nil, err)
	}
	if len(b) == 0 {
		return "", errors.New(errors.CodeCfgInvalid, "secret is empty", nil)
	}
	return string(b), nil
}
