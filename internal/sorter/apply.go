package sorter

import (
	"log/slog"
	"os"

	"github.com/google/uuid"

	"pisort/internal/picture"
)

// renameFunc moves a picture to a new stem; replaced in tests.
var renameFunc = (*picture.Picture).RenameTo

// Apply renames every picture to its planned stem.
//
// All pictures are first moved to unique transient names, then from there
// to their targets, so chains and cycles of names (a.jpg -> b.jpg -> a.jpg)
// never overwrite a picture. The first failure stops Apply and is returned
// as a *RenameError; files already moved are left where they are.
func Apply(entries []Entry, log *slog.Logger) error {
	if log == nil {
		log = slog.Default()
	}
	if !Changed(entries) {
		log.Info("pictures already in order", "count", len(entries))
		return nil
	}

	for _, e := range entries {
		from := e.Picture.Path
		transient := transientStem(e.Picture)
		if err := renameFunc(e.Picture, transient); err != nil {
			return &RenameError{Phase: Scatter, From: from, To: e.Picture.PathWithStem(transient), Err: err}
		}
		log.Debug("moved to transient name", "from", from, "to", e.Picture.Path)
	}

	for _, e := range entries {
		from := e.Picture.Path
		if err := renameFunc(e.Picture, e.Stem); err != nil {
			return &RenameError{Phase: Gather, From: from, To: e.Target(), Err: err}
		}
		log.Info("renamed", "file", e.Picture.Name())
	}
	return nil
}

// transientStem returns a random stem whose path is free. Plan never
// produces such a name.
func transientStem(p *picture.Picture) string {
	for {
		stem := uuid.NewString()
		if _, err := os.Lstat(p.PathWithStem(stem)); err != nil {
			return stem
		}
	}
}

// Changed reports whether any entry moves its picture.
func Changed(entries []Entry) bool {
	for _, e := range entries {
		if e.Moves() {
			return true
		}
	}
	return false
}

// Sort plans and applies the renaming of pictures. A planning conflict is
// returned before any file is renamed.
func Sort(pictures []*picture.Picture, policy Policy, log *slog.Logger) error {
	entries, err := Plan(pictures, policy)
	if err != nil {
		return err
	}
	return Apply(entries, log)
}
