package cli

import (
	"context"
	"io"
)

// Execute runs the CLI with args and returns the process exit code.
// Command errors are rendered through the output formatter.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd := NewRootCommand()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return ExitSuccess
	}
	if alreadyReported(err) {
		return GetExitCode(err)
	}

	format, _ := cmd.PersistentFlags().GetString("format")
	if !isValidFormat(format) {
		format = "text"
	}
	f := &OutputFormatter{Format: format, Writer: stdout, ErrWriter: stderr}
	_ = f.Error(GetErrorCode(err), err.Error(), nil)
	return GetExitCode(err)
}
