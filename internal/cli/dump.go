package cli

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"pisort/internal/exifdate"
)

// =============================================================================
// Command
// =============================================================================

// NewDumpCmd returns the pisort-dump command.
func NewDumpCmd(prog string) *cobra.Command {
	return &cobra.Command{
		Use:   filepath.Base(prog) + " paths...",
		Short: "List the Exif tags of pictures and the capture date pisort sees",
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) == 0 {
				return usageErrorf("no paths given")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			failed := 0
			for _, path := range args {
				if err := dump(cmd.OutOrStdout(), path); err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", path, err)
					failed++
				}
			}
			if failed > 0 {
				return errReported
			}
			return nil
		},
	}
}

// =============================================================================
// Output
// =============================================================================

var (
	header = color.New(color.Bold)
	faint  = color.New(color.FgHiBlack)
)

func dump(w io.Writer, path string) error {
	tags, err := exifdate.Tags(path)
	if err != nil {
		return err
	}

	header.Fprintf(w, "%s:\n", filepath.Base(path))
	for _, t := range tags {
		fmt.Fprintf(w, "  %s: %s\n", t.Name, t.Value)
	}
	if c, ok := (exifdate.Extractor{}).ExtractFile(path); ok {
		faint.Fprintf(w, "  => %s (%s, offset %q)\n",
			c.Time.Format("2006-01-02 15:04:05 -07:00"), c.Tag, c.OffsetString())
	} else {
		faint.Fprintln(w, "  => no capture date")
	}
	return nil
}

// RunDump runs the dump tool with args (program name excluded) and returns
// the process exit status.
func RunDump(prog string, args []string, stdout, stderr io.Writer) int {
	return execute(NewDumpCmd(prog), prog, args, stdout, stderr)
}
