// Package cli builds the cobra commands behind the pisort binaries and maps
// their failures to exit codes.
package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"pisort/internal/logging"
	"pisort/internal/sorter"
)

// =============================================================================
// Exit Codes and Errors
// =============================================================================

// Exit codes.
const (
	ExitOK       = 0
	ExitFailure  = 1
	ExitConflict = 2
)

// UsageError reports bad command-line arguments.
type UsageError struct {
	Msg string
}

func (e *UsageError) Error() string { return e.Msg }

func usageErrorf(format string, args ...any) error {
	return &UsageError{Msg: fmt.Sprintf(format, args...)}
}

// errReported is returned by commands that already printed their own
// diagnostics.
var errReported = errors.New("failure already reported")

// ExitCode maps an error returned by a command to a process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case sorter.IsConflict(err):
		return ExitConflict
	default:
		return ExitFailure
	}
}

// =============================================================================
// Command Execution
// =============================================================================

// execute runs cmd on args and prints any error as "<prog>: <message>".
func execute(cmd *cobra.Command, prog string, args []string, stdout, stderr io.Writer) int {
	// cobra falls back to os.Args when given nil.
	if args == nil {
		args = []string{}
	}
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &UsageError{Msg: err.Error()}
	})

	err := cmd.Execute()
	if err != nil && !errors.Is(err, errReported) {
		fmt.Fprintf(stderr, "%s: %s\n", filepath.Base(prog), message(err))
	}
	return ExitCode(err)
}

func message(err error) string {
	var exists *sorter.ExistsError
	if errors.As(err, &exists) {
		return "file already exists, will not overwrite: " + exists.Path
	}
	return err.Error()
}

// =============================================================================
// Flags
// =============================================================================

// logFlags holds the verbosity switches shared by the commands.
type logFlags struct {
	verbose bool
	debug   bool
}

func (f *logFlags) register(fs *pflag.FlagSet) {
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "report every file handled")
	fs.BoolVar(&f.debug, "debug", false, "report skipped files and intermediate steps")
}

func (f *logFlags) logger(w io.Writer) *slog.Logger {
	level := "warn"
	switch {
	case f.debug:
		level = "debug"
	case f.verbose:
		level = "info"
	}
	return logging.New(w, level)
}

// boolSwitch is a flag that stores value, or its negation when negate is
// set, into a shared boolean. Two switches on the same target let the last
// one given on the command line win.
type boolSwitch struct {
	target *bool
	negate bool
}

func newSwitch(fs *pflag.FlagSet, target *bool, name string, negate bool, usage string) {
	f := fs.VarPF(&boolSwitch{target: target, negate: negate}, name, "", usage)
	f.NoOptDefVal = "true"
}

func (s *boolSwitch) String() string {
	if s.target == nil {
		return "false"
	}
	return strconv.FormatBool(*s.target != s.negate)
}

func (s *boolSwitch) Set(v string) error {
	b, err := strconv.ParseBool(v)
	if err != nil {
		return err
	}
	*s.target = b != s.negate
	return nil
}

func (s *boolSwitch) Type() string { return "bool" }
