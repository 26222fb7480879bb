package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var (
	mu     sync.RWMutex
	loaded = make(map[string]any)

	dotenvOnce sync.Once
)

// Load parses environment variables into the provided configuration struct
// based on its `env` field tags. The first call in the process also loads a
// .env file if one exists. Each configuration type is parsed once; later
// calls for the same type return the cached value.
//
// Example:
//
//	type UploadConfig struct {
//		DocumentRoot string `env:"UPLOAD_DOCUMENT_ROOT,required"`
//		MaxFileSize  int64  `env:"UPLOAD_MAX_FILE_SIZE" envDefault:"33554432"`
//	}
//
//	var cfg UploadConfig
//	if err := config.Load(&cfg); err != nil {
//		// handle error
//	}
func Load[T any](v *T) error {
	if v == nil {
		return ErrNilPointer
	}

	dotenvOnce.Do(func() {
		// The .env file is optional; absence is not an error.
		_ = godotenv.Load()
	})

	name := typeName[T]()

	mu.RLock()
	cached, ok := loaded[name]
	mu.RUnlock()
	if ok {
		*v = cached.(T)
		return nil
	}

	if err := env.Parse(v); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}

	mu.Lock()
	loaded[name] = *v // store a copy so later mutations of v do not leak into the cache
	mu.Unlock()
	return nil
}

// MustLoad works like Load but panics if configuration loading fails. Use it
// for configuration the process cannot start without.
func MustLoad[T any](v *T) {
	if err := Load(v); err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
}

// typeName returns a string identifier for the generic type T.
func typeName[T any]() string {
	var zero T
	if t := reflect.TypeOf(zero); t != nil {
		return t.String()
	}
	return fmt.Sprintf("%T", *new(T))
}
