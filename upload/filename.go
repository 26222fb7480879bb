package upload

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// MaxFilenameBytes is the common filesystem limit for a single name component.
const MaxFilenameBytes = 255

// prefixLen is the fixed byte length of a generated prefix:
// 14-digit timestamp, "_", 3-digit milliseconds, "-", 16 hex chars, "-".
const prefixLen = 14 + 1 + 3 + 1 + 16 + 1

const illegalFilenameChars = `/\:*?"<>|`

var (
	whitespaceRuns = regexp.MustCompile(`[\s-]+`)
	underscoreRuns = regexp.MustCompile(`_+`)
	generatedName  = regexp.MustCompile(`^\d{14}_\d{3}-[0-9a-f]{16}-`)
)

// Generator produces time-ordered, collision-resistant destination filenames.
// Generated names sort by creation time via their prefix and carry 64 bits of
// cryptographic randomness, so collisions are negligible even without the
// on-disk probe performed at move time.
type Generator struct {
	now    func() time.Time
	random io.Reader
}

// GeneratorOption configures a Generator.
type GeneratorOption func(*Generator)

// WithClock overrides the time source. Intended for tests; nil values are ignored.
func WithClock(now func() time.Time) GeneratorOption {
	return func(g *Generator) {
		if now != nil {
			g.now = now
		}
	}
}

// WithRandomSource overrides the randomness source. Intended for tests;
// nil values are ignored.
func WithRandomSource(r io.Reader) GeneratorOption {
	return func(g *Generator) {
		if r != nil {
			g.random = r
		}
	}
}

// NewGenerator creates a filename generator using the system clock and
// crypto/rand.
func NewGenerator(opts ...GeneratorOption) *Generator {
	g := &Generator{
		now:    time.Now,
		random: rand.Reader,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate builds a unique destination filename for original:
// a "YYYYMMDDhhmmss_mmm-<16 hex>-" prefix followed by the sanitized stem and
// the lowercased extension. It fails with ErrFilenameTooLong when the result
// would exceed MaxFilenameBytes, and with ErrInvalidFilename when sanitizing
// leaves nothing usable.
func (g *Generator) Generate(original string) (string, error) {
	prefix, err := g.prefix()
	if err != nil {
		return "", err
	}

	stem, ext := splitName(original)
	stem = SanitizeStem(stem)
	if stem == "" {
		return "", fmt.Errorf("%w: nothing usable left of %q after sanitizing", ErrInvalidFilename, original)
	}

	name := stem
	if ext != "" {
		name += "." + strings.ToLower(ext)
	}

	if err := ValidateFilename(name); err != nil {
		return "", err
	}
	if len(name) > MaxFilenameBytes-prefixLen {
		return "", fmt.Errorf("%w: %q needs %d bytes, %d available", ErrFilenameTooLong, name, len(name), MaxFilenameBytes-prefixLen)
	}

	return prefix + name, nil
}

func (g *Generator) prefix() (string, error) {
	var b [8]byte
	if _, err := io.ReadFull(g.random, b[:]); err != nil {
		return "", fmt.Errorf("%w: %v", ErrRandomSource, err)
	}

	t := g.now()
	return fmt.Sprintf("%s_%03d-%s-", t.Format("20060102150405"), t.Nanosecond()/int(time.Millisecond), hex.EncodeToString(b[:])), nil
}

// SanitizeStem normalizes a filename stem: runs of whitespace and hyphens
// collapse into a single underscore, runs of underscores collapse, and
// leading/trailing underscores are trimmed.
func SanitizeStem(stem string) string {
	stem = whitespaceRuns.ReplaceAllString(stem, "_")
	stem = underscoreRuns.ReplaceAllString(stem, "_")
	return strings.Trim(stem, "_")
}

// ValidateFilename rejects names that are empty, reserved ("." or ".."),
// longer than MaxFilenameBytes, or that contain path separators, shell-hostile
// punctuation, or control characters. It runs on generator output and again
// on the output of any caller-supplied naming callback, since that callback
// is untrusted input too.
func ValidateFilename(name string) error {
	if name == "" || name == "." || name == ".." {
		return fmt.Errorf("%w: %q", ErrInvalidFilename, name)
	}
	if len(name) > MaxFilenameBytes {
		return fmt.Errorf("%w: %q is %d bytes", ErrFilenameTooLong, name, len(name))
	}
	for _, r := range name {
		if r < 0x20 || r == 0x7f || strings.ContainsRune(illegalFilenameChars, r) {
			return fmt.Errorf("%w: %q", ErrInvalidFilename, name)
		}
	}
	return nil
}

// ExtractOriginalFilename strips the generated prefix from a filename
// produced by Generate, returning the sanitized stem plus extension.
// Names without a recognizable prefix are returned unchanged.
func ExtractOriginalFilename(generated string) string {
	if loc := generatedName.FindStringIndex(generated); loc != nil {
		return generated[loc[1]:]
	}
	return generated
}

// splitName separates a filename into stem and extension (without the dot).
// Trailing-dot and leading-dot names keep their text in the stem.
func splitName(name string) (stem, ext string) {
	e := filepath.Ext(name)
	if e == "" || e == name {
		return name, ""
	}
	return strings.TrimSuffix(name, e), strings.TrimPrefix(e, ".")
}
