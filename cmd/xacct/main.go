package main

import (
	"io"
	"os"

	"github.com/zx06/xacct/internal/app"
	"github.com/zx06/xacct/internal/errors"
	"github.com/zx06/xacct/internal/output"
)

func main() {
	exit := run()
	os.Exit(exit)
}

// run is the main entry point
func run() int {
	a := app.New(version, commit, date)
	w := output.New(os.Stdout, os.Stderr)
	return execute(&a, &w, os.Stdin, os.Args[1:])
}

// execute builds the command tree and runs it with args
func execute(a *app.App, w *output.Writer, in io.Reader, args []string) int {
	root := NewRootCommand()
	root.SetArgs(args)
	root.SetIn(in)

	root.AddCommand(NewAccountCommand(w))
	root.AddCommand(NewLoginCommand(w))
	root.AddCommand(NewLogoutCommand(w))
	root.AddCommand(NewWhoamiCommand(w))
	root.AddCommand(NewConfigCommand(w))
	root.AddCommand(NewManifestCommand(a, w))
	root.AddCommand(NewVersionCommand(a, w))

	if err := root.Execute(); err != nil {
		xe := normalizeErr(err)
		format := resolveFormatForError(GlobalConfig.FormatStr)
		_ = w.WriteError(format, xe)
		return int(errors.ExitCodeFor(xe.Code))
	}

	return int(errors.ExitOK)
}
