package sorter

import (
	"errors"
	"fmt"
	"io/fs"
)

// ExistsError reports a target path already taken by something outside
// the pictures being sorted.
type ExistsError struct {
	Path string
}

func (e *ExistsError) Error() string {
	return fmt.Sprintf("target file already exists: %s", e.Path)
}

func (e *ExistsError) Unwrap() error { return fs.ErrExist }

// DuplicateTargetError reports two pictures planned onto the same path.
type DuplicateTargetError struct {
	Path   string
	First  string
	Second string
}

func (e *DuplicateTargetError) Error() string {
	return fmt.Sprintf("%s and %s would both be renamed to %s", e.First, e.Second, e.Path)
}

// InvalidNameError reports a planned stem that is not a plain file name,
// such as a label holding a path separator.
type InvalidNameError struct {
	Stem string
	Path string
}

func (e *InvalidNameError) Error() string {
	return fmt.Sprintf("invalid file name %q for %s", e.Stem, e.Path)
}

// IsExists reports whether err is an *ExistsError.
func IsExists(err error) bool {
	var e *ExistsError
	return errors.As(err, &e)
}

// IsConflict reports whether err is a planning conflict, raised before
// any file was touched.
func IsConflict(err error) bool {
	var dup *DuplicateTargetError
	return IsExists(err) || errors.As(err, &dup)
}

// Phase names a step of Apply.
type Phase string

const (
	// Scatter moves every picture to a transient name.
	Scatter Phase = "scatter"
	// Gather moves every picture from its transient name to its target.
	Gather Phase = "gather"
)

// RenameError is a filesystem failure during Apply. Pictures already
// handled keep their new names; nothing is rolled back.
type RenameError struct {
	Phase Phase
	From  string
	To    string
	Err   error
}

func (e *RenameError) Error() string {
	return fmt.Sprintf("%s: rename %s to %s: %v", e.Phase, e.From, e.To, e.Err)
}

func (e *RenameError) Unwrap() error { return e.Err }
