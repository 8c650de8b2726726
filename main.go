// pisort - Rename pictures into a chronological numeric sequence
//
// This tool reads the capture date of every picture in a directory from its
// Exif metadata and renames the pictures "0.jpg", "1.jpg", ... in
// chronological order. Indexes are zero-padded to the same width so that a
// plain name sort matches the capture order.
//
// Features:
//   - Capture dates from DateTimeOriginal, DateTimeDigitized or DateTime,
//     with their OffsetTime* companions when present
//   - Optional label appended to every index ("3 - Holidays.jpg")
//   - Captions of previously sorted files ("3 - Beach.jpg") are kept
//   - Refuses to run when a new name is held by an unrelated file
//   - Two-phase renaming, so files may swap names safely
//
// Usage:
//
//	pisort                      # Sort the working directory
//	pisort ~/Pictures/trip      # Sort another directory
//	pisort --name Holidays .    # Name files "<index> - Holidays.<ext>"
//	pisort --no-keep            # Discard existing captions
//	pisort -n                   # Preview renames only
//
// Exit status is 0 on success, 1 on bad arguments or I/O failure and 2 when
// a new name would overwrite an existing file.
//
// Companion tools live under cmd/: pisort-setdate backfills missing capture
// dates from modification times, pisort-dump lists the tags pisort reads.
package main

import (
	"os"

	"pisort/internal/cli"
)

func main() {
	os.Exit(cli.RunSort(os.Args[0], os.Args[1:], os.Stdout, os.Stderr))
}
