package upload

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// SizeValidator rejects files larger than maxBytes. A non-positive limit
// accepts everything.
func SizeValidator(maxBytes int64) ValidatorFunc {
	return func(d Descriptor) error {
		if maxBytes > 0 && d.Size > maxBytes {
			return fmt.Errorf("file size %d bytes exceeds %d bytes limit: %w", d.Size, maxBytes, ErrFileTooLarge)
		}
		return nil
	}
}

// MIMEValidator rejects files whose content-sniffed MIME type is not in the
// allowed list. Detection reads the first 512 bytes of the temp file; the
// descriptor's self-declared type is ignored because it is client-controlled.
// Pass no types to allow all.
func MIMEValidator(allowedTypes ...string) ValidatorFunc {
	return func(d Descriptor) error {
		if len(allowedTypes) == 0 {
			return nil
		}

		mimeType, err := detectMIMEType(d.TempPath)
		if err != nil {
			return err
		}

		if slices.Contains(allowedTypes, mimeType) {
			return nil
		}
		return fmt.Errorf("MIME type %s not in allowed types %v: %w", mimeType, allowedTypes, ErrMIMETypeNotAllowed)
	}
}

// ExtensionValidator rejects files whose extension (compared lowercased,
// including the dot) is not in the allowed list. Pass no extensions to allow
// all.
func ExtensionValidator(allowedExtensions ...string) ValidatorFunc {
	return func(d Descriptor) error {
		if len(allowedExtensions) == 0 {
			return nil
		}

		ext := strings.ToLower(filepath.Ext(d.Name))
		for _, allowed := range allowedExtensions {
			if ext == strings.ToLower(allowed) {
				return nil
			}
		}
		return fmt.Errorf("extension %q not in allowed extensions %v: %w", ext, allowedExtensions, ErrExtensionNotAllowed)
	}
}

// ChainValidators runs validators in order, stopping at the first rejection.
func ChainValidators(validators ...Validator) ValidatorFunc {
	return func(d Descriptor) error {
		for _, v := range validators {
			if v == nil {
				continue
			}
			if err := v.Validate(d); err != nil {
				return err
			}
		}
		return nil
	}
}

// detectMIMEType sniffs the content type from the first 512 bytes of the
// file, the same window http.DetectContentType considers.
func detectMIMEType(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFailedToOpenFile, err)
	}
	defer func() { _ = f.Close() }()

	buffer := make([]byte, 512)
	n, err := f.Read(buffer)
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("%w: %v", ErrFailedToReadFile, err)
	}

	return http.DetectContentType(buffer[:n]), nil
}
