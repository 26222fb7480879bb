package upload

import (
	"fmt"
	"path/filepath"
	"strings"
)

// PathResolver turns caller-supplied base paths into absolute destination
// directories confined under a single document root.
type PathResolver struct {
	root string // real (symlink-resolved) absolute path of the document root
}

// NewPathResolver creates a resolver confined to documentRoot.
// The root must name a real, existing directory; it is resolved through
// symlinks once so that later confinement checks compare real paths.
func NewPathResolver(documentRoot string) (*PathResolver, error) {
	if documentRoot == "" {
		return nil, ErrNoDocumentRoot
	}

	abs, err := filepath.Abs(documentRoot)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoDocumentRoot, err)
	}

	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoDocumentRoot, err)
	}

	return &PathResolver{root: resolved}, nil
}

// Root returns the real absolute path of the document root.
func (r *PathResolver) Root() string {
	return r.root
}

// Resolve combines a base path and an optional subdirectory into an absolute
// destination directory. Relative base paths are rooted at the document root;
// the subdirectory is trimmed of surrounding separators before joining.
//
// Resolution is purely lexical: the directory may not exist yet. Confinement
// against the real filesystem is verified by ConfirmWithin after the
// directory has been created, since symlinks or dot segments can only be
// resolved against paths that exist.
func (r *PathResolver) Resolve(basePath, subdir string) (string, error) {
	dir := strings.TrimRight(strings.TrimSpace(basePath), `/\`)
	if filepath.IsAbs(dir) {
		dir = filepath.Clean(dir)
	} else {
		dir = filepath.Join(r.root, dir)
	}

	if sub := strings.Trim(subdir, `/\`); sub != "" {
		dir = filepath.Join(dir, sub)
	}

	return dir, nil
}

// ConfirmWithin resolves dir against the real filesystem and verifies it is
// the document root or a descendant of it. Call it after the directory has
// been created; an escape is fatal and non-retryable for the file in flight.
func (r *PathResolver) ConfirmWithin(dir string) (string, error) {
	resolved, err := filepath.EvalSymlinks(dir)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFailedToResolvePath, err)
	}

	if resolved != r.root && !strings.HasPrefix(resolved, r.root+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrPathEscapesRoot, dir)
	}

	return resolved, nil
}

// PublicPath derives the client-visible path for an absolute path inside the
// document root: the root prefix is stripped and the result uses forward
// slashes with a leading slash, usable directly as a URL path component.
func (r *PathResolver) PublicPath(absPath string) string {
	rel, err := filepath.Rel(r.root, absPath)
	if err != nil {
		return filepath.ToSlash(absPath)
	}
	return "/" + filepath.ToSlash(rel)
}
