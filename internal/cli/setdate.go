package cli

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"pisort/internal/setdate"
)

// =============================================================================
// Configuration
// =============================================================================

const setdateLong = `Set the Exif dates of the files specified in paths... to their filesystem
last modification time. Unless the -f option is given, the date is not set
on files that already have one in their Exif metadata.`

// StoreCloser is a setdate.Store holding resources.
type StoreCloser interface {
	setdate.Store
	io.Closer
}

// newStore opens the metadata writer; replaced in tests.
var newStore = func() (StoreCloser, error) {
	return setdate.NewExiftoolStore()
}

// =============================================================================
// Backfill
// =============================================================================

// NewSetdateCmd returns the pisort-setdate command.
func NewSetdateCmd(prog string) *cobra.Command {
	var (
		force bool
		logs  logFlags
	)

	cmd := &cobra.Command{
		Use:   filepath.Base(prog) + " [options] paths...",
		Short: "Backfill missing capture dates from modification times",
		Long:  setdateLong,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) == 0 {
				return usageErrorf("no paths given")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := newStore()
			if err != nil {
				return err
			}
			defer store.Close()

			p := &setdate.Processor{
				Store: store,
				Out:   cmd.OutOrStdout(),
				Log:   logs.logger(cmd.ErrOrStderr()),
			}
			failed := 0
			for _, path := range args {
				if _, err := p.Process(path, force); err != nil {
					fmt.Fprintln(cmd.ErrOrStderr(), err)
					failed++
				}
			}
			if failed > 0 {
				return errReported
			}
			return nil
		},
	}

	fs := cmd.Flags()
	fs.BoolVarP(&force, "force", "f", false, "set the Exif date even if there is already one")
	logs.register(fs)
	return cmd
}

// RunSetdate runs the backfill tool with args (program name excluded) and
// returns the process exit status.
func RunSetdate(prog string, args []string, stdout, stderr io.Writer) int {
	return execute(NewSetdateCmd(prog), prog, args, stdout, stderr)
}
