package upload

import "errors"

var (
	// ErrSizeExceeded is returned when the platform reports the uploaded file exceeded a size limit
	ErrSizeExceeded = errors.New("uploaded file exceeds the allowed size limit")

	// ErrPartialUpload is returned when the platform reports the file was only partially received
	ErrPartialUpload = errors.New("file was only partially uploaded")

	// ErrNoFile is returned when the platform reports that no file was uploaded
	ErrNoFile = errors.New("no file was uploaded")

	// ErrNoTempDir is returned when the platform reports a missing temporary upload directory
	ErrNoTempDir = errors.New("missing temporary directory for uploads")

	// ErrWriteFailed is returned when the platform failed to write the uploaded file to disk
	ErrWriteFailed = errors.New("failed to write uploaded file to disk")

	// ErrExtensionBlocked is returned when the platform blocked the upload by extension policy
	ErrExtensionBlocked = errors.New("upload blocked by extension policy")

	// ErrUnknownCode is returned for platform error codes this package does not recognize
	ErrUnknownCode = errors.New("unknown upload error code")

	// ErrMalformedField is returned when the parallel upload-field arrays have mismatched lengths
	ErrMalformedField = errors.New("upload field arrays have mismatched lengths")

	// ErrNoDocumentRoot is returned when the document root is empty or does not resolve to a real directory
	ErrNoDocumentRoot = errors.New("document root is not configured or does not exist")

	// ErrPathEscapesRoot is returned when a destination path resolves outside the document root
	ErrPathEscapesRoot = errors.New("destination path escapes the document root")

	// ErrFailedToResolvePath is returned when a destination path cannot be resolved on the filesystem
	ErrFailedToResolvePath = errors.New("failed to resolve destination path")

	// ErrFailedToCreateDirectory is returned when the destination directory cannot be created
	ErrFailedToCreateDirectory = errors.New("failed to create destination directory")

	// ErrInvalidFilename is returned for empty, reserved, or illegal destination filenames
	ErrInvalidFilename = errors.New("filename is empty, reserved, or contains illegal characters")

	// ErrFilenameTooLong is returned when a generated filename would exceed the filesystem name limit
	ErrFilenameTooLong = errors.New("filename exceeds the filesystem name length limit")

	// ErrRandomSource is returned when the random source for filename prefixes cannot be read
	ErrRandomSource = errors.New("failed to read random source")

	// ErrFailedToMoveFile is returned when the uploaded temp file cannot be moved into place
	ErrFailedToMoveFile = errors.New("failed to move uploaded file")

	// ErrFailedToDeleteFile is returned when a file removal call fails
	ErrFailedToDeleteFile = errors.New("failed to delete file")

	// ErrNotOwned is returned when a delete targets a path the session never uploaded
	ErrNotOwned = errors.New("file is not owned by this session")

	// ErrFileNotFound is returned when an owned file is missing on disk
	ErrFileNotFound = errors.New("file not found")

	// ErrFileTooLarge is returned by the size validator when a file exceeds the configured limit
	ErrFileTooLarge = errors.New("file size exceeds maximum allowed size")

	// ErrMIMETypeNotAllowed is returned by the MIME validator for disallowed content types
	ErrMIMETypeNotAllowed = errors.New("MIME type is not allowed")

	// ErrExtensionNotAllowed is returned by the extension validator for disallowed extensions
	ErrExtensionNotAllowed = errors.New("file extension is not allowed")

	// ErrFailedToOpenFile is returned when an uploaded temp file cannot be opened
	ErrFailedToOpenFile = errors.New("failed to open file")

	// ErrFailedToReadFile is returned when an uploaded temp file cannot be read
	ErrFailedToReadFile = errors.New("failed to read file")
)
