// Package sorter renames pictures into a chronological, zero-padded
// numeric sequence.
//
// Sorting is split in two steps. Plan is read-only: it orders the pictures,
// computes every new name and refuses to go on if a new name would
// overwrite a file that is not being sorted. Apply then renames in two
// phases through transient names, so that one picture may take over the
// name another one is leaving.
package sorter

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"pisort/internal/picture"
)

// maxDate orders undated pictures after every dated one.
var maxDate = time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC)

// keptNameRe matches stems this tool produced with a caption.
var keptNameRe = regexp.MustCompile(`^\d+ - (.*)$`)

// Policy decides how new names are built.
type Policy struct {
	// Label is appended to every index as "<index> - <label>". Empty means
	// no label.
	Label string
	// KeepNames reuses the caption of stems shaped "<digits> - <caption>"
	// for that picture, in place of Label.
	KeepNames bool
}

// DefaultPolicy keeps existing captions and adds no label.
func DefaultPolicy() Policy {
	return Policy{KeepNames: true}
}

// label returns the caption for pic. A kept caption counts even when
// empty, so "3 - .jpg" becomes "0 - .jpg".
func (p Policy) label(pic *picture.Picture) (string, bool) {
	if p.KeepNames {
		if m := keptNameRe.FindStringSubmatch(pic.Stem()); m != nil {
			return m[1], true
		}
	}
	return p.Label, p.Label != ""
}

// Entry is one planned rename.
type Entry struct {
	Picture *picture.Picture
	Stem    string
}

// Target returns the path the picture will end up at.
func (e Entry) Target() string {
	return e.Picture.PathWithStem(e.Stem)
}

// Moves reports whether the picture is not already at its target.
func (e Entry) Moves() bool {
	return filepath.Clean(e.Picture.Path) != filepath.Clean(e.Target())
}

// IndexWidth returns the number of digits needed to write every index of
// a sequence of n items, at least 1.
func IndexWidth(n int) int {
	if n <= 1 {
		return 1
	}
	return len(strconv.Itoa(n - 1))
}

// Order returns the pictures sorted by capture date, undated last, ties
// broken by file name. The input slice is left untouched.
func Order(pictures []*picture.Picture) []*picture.Picture {
	sorted := make([]*picture.Picture, len(pictures))
	copy(sorted, pictures)

	// Two stable passes: name first, then date, so that equal dates keep
	// the name order.
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Name() < sorted[j].Name()
	})
	sort.SliceStable(sorted, func(i, j int) bool {
		return sortDate(sorted[i]).Before(sortDate(sorted[j]))
	})
	return sorted
}

func sortDate(p *picture.Picture) time.Time {
	if d, ok := p.Date(); ok {
		return d
	}
	return maxDate
}

// Plan computes the new name of every picture. It touches nothing on disk
// but checks that no new path is held by a file outside pictures, and
// fails with an *ExistsError naming that path otherwise. A stem that is not
// a plain file name fails with an *InvalidNameError.
func Plan(pictures []*picture.Picture, policy Policy) ([]Entry, error) {
	if len(pictures) == 0 {
		return nil, nil
	}

	ordered := Order(pictures)
	width := IndexWidth(len(ordered))

	entries := make([]Entry, len(ordered))
	for i, pic := range ordered {
		stem := fmt.Sprintf("%0*d", width, i)
		if label, ok := policy.label(pic); ok {
			stem += " - " + label
		}
		entries[i] = Entry{Picture: pic, Stem: stem}
	}

	if err := checkTargets(entries, os.Lstat); err != nil {
		return nil, err
	}
	return entries, nil
}

// checkStem rejects stems that would move the picture out of its
// directory.
func checkStem(e Entry) error {
	if strings.ContainsAny(e.Stem, "/\x00") || strings.ContainsRune(e.Stem, filepath.Separator) ||
		filepath.Dir(e.Target()) != filepath.Dir(e.Picture.Path) {
		return &InvalidNameError{Stem: e.Stem, Path: e.Picture.Path}
	}
	return nil
}

// checkTargets enforces that targets are pairwise distinct and that any
// target not currently held by one of the entries is free.
func checkTargets(entries []Entry, stat func(string) (os.FileInfo, error)) error {
	current := make(map[string]bool, len(entries))
	for _, e := range entries {
		current[filepath.Clean(e.Picture.Path)] = true
	}

	claimed := make(map[string]*picture.Picture, len(entries))
	for _, e := range entries {
		if err := checkStem(e); err != nil {
			return err
		}
		target := filepath.Clean(e.Target())
		if other, ok := claimed[target]; ok {
			return &DuplicateTargetError{Path: target, First: other.Path, Second: e.Picture.Path}
		}
		claimed[target] = e.Picture

		if current[target] {
			continue
		}
		// Lstat: a dangling symlink still occupies the name.
		if _, err := stat(target); err == nil {
			return &ExistsError{Path: target}
		} else if !os.IsNotExist(err) {
			return err
		}
	}
	return nil
}
