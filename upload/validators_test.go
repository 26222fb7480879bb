package upload_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/uploadkit/upload"
)

func TestSizeValidator(t *testing.T) {
	v := upload.SizeValidator(100)

	assert.NoError(t, v(upload.Descriptor{Size: 100}))
	assert.NoError(t, v(upload.Descriptor{Size: 0}))
	assert.ErrorIs(t, v(upload.Descriptor{Size: 101}), upload.ErrFileTooLarge)

	t.Run("non-positive limit accepts everything", func(t *testing.T) {
		assert.NoError(t, upload.SizeValidator(0)(upload.Descriptor{Size: 1 << 40}))
	})
}

func TestMIMEValidator(t *testing.T) {
	dir := t.TempDir()

	textPath := filepath.Join(dir, "plain")
	require.NoError(t, os.WriteFile(textPath, []byte("plain text content"), 0600))

	pngPath := filepath.Join(dir, "png")
	require.NoError(t, os.WriteFile(pngPath, []byte("\x89PNG\r\n\x1a\n"), 0600))

	t.Run("empty allow list accepts everything", func(t *testing.T) {
		assert.NoError(t, upload.MIMEValidator()(upload.Descriptor{TempPath: textPath}))
	})

	t.Run("sniffed type in allow list", func(t *testing.T) {
		v := upload.MIMEValidator("image/png")
		assert.NoError(t, v(upload.Descriptor{TempPath: pngPath}))
	})

	t.Run("declared type is ignored in favor of content", func(t *testing.T) {
		v := upload.MIMEValidator("image/png")
		err := v(upload.Descriptor{Name: "fake.png", MIMEType: "image/png", TempPath: textPath})
		assert.ErrorIs(t, err, upload.ErrMIMETypeNotAllowed)
	})

	t.Run("unreadable temp file", func(t *testing.T) {
		v := upload.MIMEValidator("image/png")
		err := v(upload.Descriptor{TempPath: filepath.Join(dir, "missing")})
		assert.ErrorIs(t, err, upload.ErrFailedToOpenFile)
	})
}

func TestExtensionValidator(t *testing.T) {
	v := upload.ExtensionValidator(".pdf", ".PNG")

	assert.NoError(t, v(upload.Descriptor{Name: "doc.pdf"}))
	assert.NoError(t, v(upload.Descriptor{Name: "doc.PDF"}))
	assert.NoError(t, v(upload.Descriptor{Name: "pic.png"}))
	assert.ErrorIs(t, v(upload.Descriptor{Name: "script.sh"}), upload.ErrExtensionNotAllowed)
	assert.ErrorIs(t, v(upload.Descriptor{Name: "noext"}), upload.ErrExtensionNotAllowed)

	t.Run("empty allow list accepts everything", func(t *testing.T) {
		assert.NoError(t, upload.ExtensionValidator()(upload.Descriptor{Name: "anything.xyz"}))
	})
}

func TestChainValidators(t *testing.T) {
	boom := errors.New("boom")
	var calls []string

	v := upload.ChainValidators(
		upload.ValidatorFunc(func(upload.Descriptor) error {
			calls = append(calls, "first")
			return nil
		}),
		nil,
		upload.ValidatorFunc(func(upload.Descriptor) error {
			calls = append(calls, "second")
			return boom
		}),
		upload.ValidatorFunc(func(upload.Descriptor) error {
			calls = append(calls, "third")
			return nil
		}),
	)

	assert.ErrorIs(t, v(upload.Descriptor{}), boom)
	assert.Equal(t, []string{"first", "second"}, calls, "chain stops at first rejection")
}
