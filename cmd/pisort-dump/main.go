// pisort-dump prints the Exif tags of pictures followed by the capture date
// pisort would sort them by.
package main

import (
	"os"

	"pisort/internal/cli"
)

func main() {
	os.Exit(cli.RunDump(os.Args[0], os.Args[1:], os.Stdout, os.Stderr))
}
