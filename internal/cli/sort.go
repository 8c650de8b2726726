package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"pisort/internal/picture"
	"pisort/internal/sorter"
)

// =============================================================================
// Configuration
// =============================================================================

const sortLong = `Sort the pictures of a directory in chronological order of their Exif
capture date and rename them "<index>[ - <name>].<ext>". If unspecified,
the directory defaults to the working directory.

Pictures with no capture date in their metadata are placed after all the
dated ones, in name order.`

// SortOptions holds the parsed command line of the sorter.
type SortOptions struct {
	Dir         string
	Policy      sorter.Policy
	DryRun      bool
	SkipUndated bool
}

// NewSortCmd returns the pisort command.
func NewSortCmd(prog string) *cobra.Command {
	opts := SortOptions{Policy: sorter.DefaultPolicy()}
	var logs logFlags

	cmd := &cobra.Command{
		Use:   filepath.Base(prog) + " [options] [directory]",
		Short: "Rename pictures into a chronological numeric sequence",
		Long:  sortLong,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) > 1 {
				return usageErrorf("too many arguments")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.ContainsAny(opts.Policy.Label, "/\x00") || strings.ContainsRune(opts.Policy.Label, filepath.Separator) {
				return usageErrorf("invalid name: %s", opts.Policy.Label)
			}
			opts.Dir = "."
			if len(args) > 0 {
				opts.Dir = args[0]
			}
			if err := checkDir(opts.Dir); err != nil {
				return err
			}
			return runSort(opts, cmd.OutOrStdout(), logs.logger(cmd.ErrOrStderr()))
		},
	}

	fs := cmd.Flags()
	fs.StringVar(&opts.Policy.Label, "name", "", "name given to files in addition to their index")
	newSwitch(fs, &opts.Policy.KeepNames, "keep", false,
		`keep the name part of files named "<number> - <name>" (default)`)
	newSwitch(fs, &opts.Policy.KeepNames, "no-keep", true, "always discard existing file names")
	fs.BoolVarP(&opts.DryRun, "dry-run", "n", false, "print the planned renames without renaming")
	fs.BoolVar(&opts.SkipUndated, "skip-undated", false, "leave pictures without a capture date alone")
	logs.register(fs)
	return cmd
}

// =============================================================================
// Sorting
// =============================================================================

func checkDir(dir string) error {
	info, err := os.Stat(dir)
	if errors.Is(err, os.ErrNotExist) {
		return usageErrorf("no such directory: %s", dir)
	}
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return usageErrorf("not a directory: %s", dir)
	}
	return nil
}

func runSort(opts SortOptions, out io.Writer, log *slog.Logger) error {
	pictures, err := picture.Scan(opts.Dir, picture.ScanOptions{
		SkipUndated: opts.SkipUndated,
		Log:         log,
	})
	if err != nil {
		return err
	}
	entries, err := sorter.Plan(pictures, opts.Policy)
	if err != nil {
		return err
	}
	if opts.DryRun {
		preview(out, entries)
		return nil
	}
	return sorter.Apply(entries, log)
}

// RunSort runs the sorter with args (program name excluded) and returns
// the process exit status.
func RunSort(prog string, args []string, stdout, stderr io.Writer) int {
	return execute(NewSortCmd(prog), prog, args, stdout, stderr)
}

// =============================================================================
// Dry Run Preview
// =============================================================================

// preview prints the renames entries would perform.
func preview(w io.Writer, entries []sorter.Entry) {
	moved := 0
	for _, e := range entries {
		if !e.Moves() {
			continue
		}
		fmt.Fprintf(w, "  %s\n", e.Picture.Name())
		fmt.Fprintf(w, "    → %s\n", filepath.Base(e.Target()))
		moved++
	}
	fmt.Fprintf(w, "\n[DRY RUN] Would rename %d of %d pictures\n", moved, len(entries))
}
