package upload

// Config holds environment-driven settings for NewFromEnv.
type Config struct {
	// DocumentRoot is the directory all uploads are confined under. It must
	// name a real, existing directory.
	DocumentRoot string `env:"UPLOAD_DOCUMENT_ROOT,required"`

	// MaxFileSize, when positive, installs a baseline size validator applied
	// to every uploaded file. Defaults to 32MB.
	MaxFileSize int64 `env:"UPLOAD_MAX_FILE_SIZE" envDefault:"33554432"`
}
