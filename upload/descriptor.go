package upload

import "fmt"

// ErrorCode is the platform-reported status of a single upload slot.
// Zero means the file arrived intact; anything else names a distinct
// failure reported by the upload mechanism before this package runs.
type ErrorCode int

const (
	CodeOK ErrorCode = iota
	CodeSizeExceeded
	CodePartialUpload
	CodeNoFile
	CodeNoTempDir
	CodeWriteFailed
	CodeExtensionBlocked
)

// Err maps the code to its sentinel error, or nil for CodeOK.
// Unrecognized codes map to ErrUnknownCode with the raw value preserved.
func (c ErrorCode) Err() error {
	switch c {
	case CodeOK:
		return nil
	case CodeSizeExceeded:
		return ErrSizeExceeded
	case CodePartialUpload:
		return ErrPartialUpload
	case CodeNoFile:
		return ErrNoFile
	case CodeNoTempDir:
		return ErrNoTempDir
	case CodeWriteFailed:
		return ErrWriteFailed
	case CodeExtensionBlocked:
		return ErrExtensionBlocked
	default:
		return fmt.Errorf("%w: code %d", ErrUnknownCode, int(c))
	}
}

// Descriptor is the raw record describing one physical upload slot, as
// populated by the platform's upload mechanism. It is treated as immutable
// once obtained.
type Descriptor struct {
	Name     string
	MIMEType string
	TempPath string
	Code     ErrorCode
	Size     int64
}

// DescriptorsFromValues normalizes the platform's multi-valued upload field
// shape (parallel arrays of name, type, temp path, error code, and size)
// into a slice of Descriptor records. All five slices must have the same
// length, otherwise ErrMalformedField is returned.
//
// Isolating this shape quirk at the boundary keeps the core engine working
// with plain records.
func DescriptorsFromValues(names, mimeTypes, tempPaths []string, codes []int, sizes []int64) ([]Descriptor, error) {
	n := len(names)
	if len(mimeTypes) != n || len(tempPaths) != n || len(codes) != n || len(sizes) != n {
		return nil, fmt.Errorf("%w: names=%d types=%d paths=%d codes=%d sizes=%d",
			ErrMalformedField, n, len(mimeTypes), len(tempPaths), len(codes), len(sizes))
	}

	descriptors := make([]Descriptor, n)
	for i := range names {
		descriptors[i] = Descriptor{
			Name:     names[i],
			MIMEType: mimeTypes[i],
			TempPath: tempPaths[i],
			Code:     ErrorCode(codes[i]),
			Size:     sizes[i],
		}
	}
	return descriptors, nil
}
