package upload

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrymomot/uploadkit/pkg/config"
)

// Session is the per-client mutable mapping in which upload ownership is
// recorded. *session.Session from pkg/session satisfies it; any caller-owned
// store with the same shape works. Lifecycle and concurrency safety of the
// mapping belong to its owner, not to this package.
type Session interface {
	Get(key string) (any, bool)
	Set(key string, value any)
	Delete(key string)
}

// Validator is the pluggable per-file validation capability. It is invoked
// at most once per file, before the move: return an error to reject the
// file, nil to accept it.
type Validator interface {
	Validate(d Descriptor) error
}

// ValidatorFunc adapts a plain function to the Validator interface.
type ValidatorFunc func(d Descriptor) error

func (f ValidatorFunc) Validate(d Descriptor) error { return f(d) }

// NamerFunc is an optional caller-supplied naming callback. Its output
// replaces the generated filename but is still subject to ValidateFilename,
// since the callback is untrusted input.
type NamerFunc func(original string) string

// state tracks a single file through the upload transaction.
type state int

const (
	stateConstructed state = iota
	stateValidated
	stateMoved
	stateRegistered
	stateFailed
	stateRolledBack
)

// transaction carries one file from descriptor to registered ownership.
type transaction struct {
	desc       Descriptor
	destDir    string
	finalPath  string
	publicPath string
	state      state
}

// UploadOption configures a single UploadOne or UploadMany call.
type UploadOption func(*uploadOptions)

type uploadOptions struct {
	validator Validator
	namer     NamerFunc
}

// WithValidator runs v on each file of the call before it is moved.
func WithValidator(v Validator) UploadOption {
	return func(o *uploadOptions) { o.validator = v }
}

// WithNamer replaces the filename generator with a caller-supplied naming
// callback for this call.
func WithNamer(n NamerFunc) UploadOption {
	return func(o *uploadOptions) { o.namer = n }
}

// Uploader relocates uploaded temp files into the confined document root and
// records per-session ownership of the result.
//
// Operations are synchronous, blocking sequences of filesystem calls with no
// internal parallelism. The existence probe and the move in the collision
// step are not performed atomically: two concurrent uploads of colliding
// names into one directory can both pass the probe before either moves.
// Callers needing cross-process safety must serialize access per destination
// directory themselves.
type Uploader struct {
	resolver  *PathResolver
	gen       *Generator
	ledger    *Ledger
	validator Validator // baseline, runs before any per-call validator
	log       *slog.Logger
}

// Option configures an Uploader.
type Option func(*Uploader)

// WithLogger sets the logger used for best-effort failures (rollback and
// cleanup errors that are reported but never escalated).
func WithLogger(log *slog.Logger) Option {
	return func(u *Uploader) {
		if log != nil {
			u.log = log
		}
	}
}

// WithGenerator replaces the default filename generator.
func WithGenerator(g *Generator) Option {
	return func(u *Uploader) {
		if g != nil {
			u.gen = g
		}
	}
}

// WithBaselineValidator sets a validator applied to every file of every
// call, before any per-call validator.
func WithBaselineValidator(v Validator) Option {
	return func(u *Uploader) { u.validator = v }
}

// New creates an Uploader confined to documentRoot, which must name a real,
// existing directory.
func New(documentRoot string, opts ...Option) (*Uploader, error) {
	resolver, err := NewPathResolver(documentRoot)
	if err != nil {
		return nil, err
	}

	u := &Uploader{
		resolver: resolver,
		gen:      NewGenerator(),
		ledger:   NewLedger(),
		log:      slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(u)
	}
	return u, nil
}

// NewFromEnv creates an Uploader from environment configuration (see Config).
// A positive UPLOAD_MAX_FILE_SIZE installs a baseline size validator.
func NewFromEnv(opts ...Option) (*Uploader, error) {
	var cfg Config
	if err := config.Load(&cfg); err != nil {
		return nil, err
	}

	if cfg.MaxFileSize > 0 {
		opts = append([]Option{WithBaselineValidator(SizeValidator(cfg.MaxFileSize))}, opts...)
	}
	return New(cfg.DocumentRoot, opts...)
}

// Root returns the real absolute path of the document root.
func (u *Uploader) Root() string { return u.resolver.Root() }

// Ledger returns the ownership ledger, for callers that manage deletes
// directly.
func (u *Uploader) Ledger() *Ledger { return u.ledger }

// UploadOne relocates a single uploaded file into basePath/subdir under the
// document root and records ownership in sess. It returns the public path of
// the stored file, relative to the document root.
//
// Every error is prefixed with the original filename of the offending file.
func (u *Uploader) UploadOne(sess Session, d Descriptor, basePath, subdir string, opts ...UploadOption) (string, error) {
	o := applyUploadOptions(opts)

	tx, err := u.begin(d, basePath, subdir)
	if err != nil {
		return "", err
	}
	if err := u.move(tx, o); err != nil {
		return "", err
	}

	u.ledger.Register(sess, tx.publicPath, tx.finalPath)
	tx.state = stateRegistered
	return tx.publicPath, nil
}

// UploadMany relocates a batch of uploaded files with all-or-nothing effect.
// Results are returned in descriptor order.
//
// The batch runs in two phases. First every per-file transaction is
// constructed (platform error code checked, destination resolved); if any
// construction fails, the whole batch aborts with no filesystem effect and
// all collected errors are reported. Then every file is moved; if any move
// fails, files already moved in this batch are deleted best-effort and the
// call fails with all collected errors. Nothing is registered in the ledger
// unless every file succeeded.
func (u *Uploader) UploadMany(sess Session, descriptors []Descriptor, basePath, subdir string, opts ...UploadOption) ([]string, error) {
	o := applyUploadOptions(opts)

	txs := make([]*transaction, 0, len(descriptors))
	var errs []error
	for _, d := range descriptors {
		tx, err := u.begin(d, basePath, subdir)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		txs = append(txs, tx)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	for _, tx := range txs {
		if err := u.move(tx, o); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		u.rollback(txs)
		return nil, errors.Join(errs...)
	}

	paths := make([]string, len(txs))
	for i, tx := range txs {
		u.ledger.Register(sess, tx.publicPath, tx.finalPath)
		tx.state = stateRegistered
		paths[i] = tx.publicPath
	}
	return paths, nil
}

// DeleteOne removes a previously uploaded file identified by its public
// path, authorized solely by the ownership record in sess.
func (u *Uploader) DeleteOne(sess Session, publicPath string) error {
	return u.ledger.DeleteOne(sess, publicPath)
}

// DeleteMany removes several previously uploaded files, aggregating per-item
// errors. See Ledger.DeleteMany for the (lack of) rollback semantics.
func (u *Uploader) DeleteMany(sess Session, publicPaths []string) error {
	return u.ledger.DeleteMany(sess, publicPaths)
}

// begin constructs the per-file transaction: platform error code check and
// destination resolution. It has no filesystem effect.
func (u *Uploader) begin(d Descriptor, basePath, subdir string) (*transaction, error) {
	if err := d.Code.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", d.Name, err)
	}

	dir, err := u.resolver.Resolve(basePath, subdir)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", d.Name, err)
	}

	return &transaction{desc: d, destDir: dir, state: stateConstructed}, nil
}

// move executes the effectful half of a transaction: validation, directory
// creation, confinement check, naming, collision probing, and the move itself.
func (u *Uploader) move(tx *transaction, o uploadOptions) error {
	d := tx.desc

	for _, v := range []Validator{u.validator, o.validator} {
		if v == nil {
			continue
		}
		if err := v.Validate(d); err != nil {
			tx.state = stateFailed
			return fmt.Errorf("%s: %w", d.Name, err)
		}
	}
	tx.state = stateValidated

	if err := os.MkdirAll(tx.destDir, 0755); err != nil {
		tx.state = stateFailed
		return fmt.Errorf("%s: %w: %v", d.Name, ErrFailedToCreateDirectory, err)
	}

	// The directory exists now, so the real path can be checked against the
	// real root. Catches symlinks or dot segments smuggled in between
	// resolution and creation.
	dir, err := u.resolver.ConfirmWithin(tx.destDir)
	if err != nil {
		tx.state = stateFailed
		return fmt.Errorf("%s: %w", d.Name, err)
	}

	var name string
	if o.namer != nil {
		name = o.namer(d.Name)
		if err := ValidateFilename(name); err != nil {
			tx.state = stateFailed
			return fmt.Errorf("%s: %w", d.Name, err)
		}
	} else {
		if name, err = u.gen.Generate(d.Name); err != nil {
			tx.state = stateFailed
			return fmt.Errorf("%s: %w", d.Name, err)
		}
	}

	final, err := probeCollision(dir, name)
	if err != nil {
		tx.state = stateFailed
		return fmt.Errorf("%s: %w", d.Name, err)
	}
	if err := os.Rename(d.TempPath, final); err != nil {
		tx.state = stateFailed
		return fmt.Errorf("%s: %w: %v", d.Name, ErrFailedToMoveFile, err)
	}

	tx.state = stateMoved
	tx.finalPath = final
	tx.publicPath = u.resolver.PublicPath(final)
	return nil
}

// rollback deletes the files a failed batch already moved. Removal is
// best-effort: failures are logged and never escalated.
func (u *Uploader) rollback(txs []*transaction) {
	for _, tx := range txs {
		if tx.state != stateMoved {
			continue
		}
		if err := os.Remove(tx.finalPath); err != nil {
			u.log.Warn("batch rollback failed to remove file",
				slog.String("path", tx.finalPath),
				slog.Any("error", err))
			continue
		}
		tx.state = stateRolledBack
	}
}

// probeCollision returns the first non-existing path for name in dir,
// probing stem_1, stem_2, ... on collision. A stat failure other than
// "does not exist" (unreadable directory, candidate over the name length
// limit) is fatal rather than treated as a collision, so the loop always
// terminates. The probe-then-move window is not synchronized against
// concurrent uploaders; see the Uploader doc.
func probeCollision(dir, name string) (string, error) {
	path := filepath.Join(dir, name)
	ok, err := pathFree(path)
	if err != nil {
		return "", err
	}
	if ok {
		return path, nil
	}

	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	for n := 1; ; n++ {
		candidate := filepath.Join(dir, fmt.Sprintf("%s_%d%s", stem, n, ext))
		ok, err := pathFree(candidate)
		if err != nil {
			return "", err
		}
		if ok {
			return candidate, nil
		}
	}
}

// pathFree reports whether nothing exists at path.
func pathFree(path string) (bool, error) {
	_, err := os.Stat(path)
	switch {
	case err == nil:
		return false, nil
	case os.IsNotExist(err):
		return true, nil
	default:
		return false, fmt.Errorf("%w: %v", ErrFailedToMoveFile, err)
	}
}

func applyUploadOptions(opts []UploadOption) uploadOptions {
	var o uploadOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
