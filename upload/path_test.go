package upload_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/uploadkit/upload"
)

func newResolver(t *testing.T) (*upload.PathResolver, string) {
	t.Helper()
	root := t.TempDir()
	resolver, err := upload.NewPathResolver(root)
	require.NoError(t, err)
	return resolver, resolver.Root()
}

func TestNewPathResolver(t *testing.T) {
	t.Run("empty root", func(t *testing.T) {
		_, err := upload.NewPathResolver("")
		assert.ErrorIs(t, err, upload.ErrNoDocumentRoot)
	})

	t.Run("missing root", func(t *testing.T) {
		_, err := upload.NewPathResolver(filepath.Join(t.TempDir(), "does-not-exist"))
		assert.ErrorIs(t, err, upload.ErrNoDocumentRoot)
	})

	t.Run("existing root", func(t *testing.T) {
		resolver, err := upload.NewPathResolver(t.TempDir())
		require.NoError(t, err)
		assert.True(t, filepath.IsAbs(resolver.Root()))
	})
}

func TestPathResolver_Resolve(t *testing.T) {
	resolver, root := newResolver(t)

	tests := []struct {
		name     string
		basePath string
		subdir   string
		want     string
	}{
		{
			name:     "relative base rooted at document root",
			basePath: "uploads",
			subdir:   "imgs",
			want:     filepath.Join(root, "uploads", "imgs"),
		},
		{
			name:     "trailing separators stripped",
			basePath: "uploads///",
			subdir:   "/imgs/",
			want:     filepath.Join(root, "uploads", "imgs"),
		},
		{
			name:     "no subdirectory",
			basePath: "uploads/docs",
			subdir:   "",
			want:     filepath.Join(root, "uploads", "docs"),
		},
		{
			name:     "empty base resolves to root",
			basePath: "",
			subdir:   "",
			want:     root,
		},
		{
			name:     "absolute base kept as-is",
			basePath: filepath.Join(root, "direct"),
			subdir:   "sub",
			want:     filepath.Join(root, "direct", "sub"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolver.Resolve(tt.basePath, tt.subdir)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPathResolver_ConfirmWithin(t *testing.T) {
	resolver, root := newResolver(t)

	t.Run("root itself", func(t *testing.T) {
		got, err := resolver.ConfirmWithin(root)
		require.NoError(t, err)
		assert.Equal(t, root, got)
	})

	t.Run("descendant", func(t *testing.T) {
		dir := filepath.Join(root, "uploads", "docs")
		require.NoError(t, os.MkdirAll(dir, 0755))

		got, err := resolver.ConfirmWithin(dir)
		require.NoError(t, err)
		assert.Equal(t, dir, got)
	})

	t.Run("dot segments escaping the root", func(t *testing.T) {
		outside := t.TempDir()
		_, err := resolver.ConfirmWithin(outside)
		assert.ErrorIs(t, err, upload.ErrPathEscapesRoot)
	})

	t.Run("symlink escaping the root", func(t *testing.T) {
		outside := t.TempDir()
		link := filepath.Join(root, "sneaky")
		require.NoError(t, os.Symlink(outside, link))

		_, err := resolver.ConfirmWithin(link)
		assert.ErrorIs(t, err, upload.ErrPathEscapesRoot)
	})

	t.Run("missing directory", func(t *testing.T) {
		_, err := resolver.ConfirmWithin(filepath.Join(root, "never-created"))
		assert.ErrorIs(t, err, upload.ErrFailedToResolvePath)
	})

	t.Run("sibling with root as name prefix", func(t *testing.T) {
		sibling := root + "-sibling"
		require.NoError(t, os.MkdirAll(sibling, 0755))
		t.Cleanup(func() { _ = os.RemoveAll(sibling) })

		_, err := resolver.ConfirmWithin(sibling)
		assert.ErrorIs(t, err, upload.ErrPathEscapesRoot)
	})
}

func TestPathResolver_PublicPath(t *testing.T) {
	resolver, root := newResolver(t)

	assert.Equal(t, "/uploads/docs/report.pdf",
		resolver.PublicPath(filepath.Join(root, "uploads", "docs", "report.pdf")))
	assert.Equal(t, "/file.txt", resolver.PublicPath(filepath.Join(root, "file.txt")))
}
