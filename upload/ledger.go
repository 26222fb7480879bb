package upload

import (
	"errors"
	"fmt"
	"os"
)

// FilesKey is the session-store key under which ownership records live:
// a mapping from public path to absolute on-disk path.
const FilesKey = "uploaded_files"

// Ledger is the session-scoped ownership record for uploaded files. The
// record is the sole authorization mechanism for deletion: a session may
// only delete paths it registered. The backing mapping lives in the
// caller's session store and is lazily created on first registration.
type Ledger struct{}

// NewLedger creates an ownership ledger.
func NewLedger() *Ledger {
	return &Ledger{}
}

// Register records that sess owns publicPath, stored at absPath. An existing
// record for the same public path is overwritten.
func (l *Ledger) Register(sess Session, publicPath, absPath string) {
	files := ownedFiles(sess)
	if files == nil {
		files = make(map[string]string, 1)
	}
	files[publicPath] = absPath
	sess.Set(FilesKey, files)
}

// Owned reports whether sess owns publicPath, returning the absolute on-disk
// path when it does.
func (l *Ledger) Owned(sess Session, publicPath string) (string, bool) {
	absPath, ok := ownedFiles(sess)[publicPath]
	return absPath, ok
}

// DeleteOne removes the file behind publicPath and drops its ownership
// record. It fails with ErrNotOwned when sess has no record for the path
// (regardless of whether the file exists), ErrFileNotFound when the owned
// file is missing on disk, and ErrFailedToDeleteFile when removal fails.
func (l *Ledger) DeleteOne(sess Session, publicPath string) error {
	absPath, ok := l.Owned(sess, publicPath)
	if !ok {
		return fmt.Errorf("%s: %w", publicPath, ErrNotOwned)
	}

	if _, err := os.Stat(absPath); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%s: %w", publicPath, ErrFileNotFound)
		}
		return fmt.Errorf("%s: %w: %v", publicPath, ErrFailedToDeleteFile, err)
	}

	if err := os.Remove(absPath); err != nil {
		return fmt.Errorf("%s: %w: %v", publicPath, ErrFailedToDeleteFile, err)
	}

	l.unregister(sess, publicPath)
	return nil
}

// DeleteMany removes each of publicPaths independently, aggregating per-item
// errors. Unlike batch upload there is no rollback: each deletion is final,
// and items already deleted stay deleted even when later items fail.
func (l *Ledger) DeleteMany(sess Session, publicPaths []string) error {
	var errs []error
	for _, p := range publicPaths {
		if err := l.DeleteOne(sess, p); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (l *Ledger) unregister(sess Session, publicPath string) {
	files := ownedFiles(sess)
	if files == nil {
		return
	}
	delete(files, publicPath)
	if len(files) == 0 {
		sess.Delete(FilesKey)
		return
	}
	sess.Set(FilesKey, files)
}

// ownedFiles reads the ownership mapping out of the session store. Stores
// that persist session data as JSON hand the mapping back as map[string]any,
// so both shapes are accepted.
func ownedFiles(sess Session) map[string]string {
	v, ok := sess.Get(FilesKey)
	if !ok {
		return nil
	}

	switch m := v.(type) {
	case map[string]string:
		return m
	case map[string]any:
		files := make(map[string]string, len(m))
		for k, val := range m {
			if s, ok := val.(string); ok {
				files[k] = s
			}
		}
		return files
	}
	return nil
}
