// pisort-setdate gives pictures without an Exif capture date one equal to
// their filesystem modification time. It needs exiftool on PATH.
//
// Usage:
//
//	pisort-setdate scan-*.jpg       # Only files without a date
//	pisort-setdate -f IMG_0001.jpg  # Overwrite an existing date
package main

import (
	"os"

	"pisort/internal/cli"
)

func main() {
	os.Exit(cli.RunSetdate(os.Args[0], os.Args[1:], os.Stdout, os.Stderr))
}
