package logger

import (
	"log/slog"
	"strconv"
)

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Errors groups multiple non-nil errors under the key "errors".
// If all errors are nil, it returns an empty Attr.
func Errors(errs ...error) slog.Attr {
	as := make([]slog.Attr, 0, len(errs))
	for i, err := range errs {
		if err != nil {
			as = append(as, slog.Any(strconv.Itoa(i), err))
		}
	}
	if len(as) == 0 {
		return slog.Attr{}
	}
	return slog.Attr{Key: "errors", Value: slog.GroupValue(as...)}
}

// SessionToken records a session token under the key "session_token".
func SessionToken(token string) slog.Attr {
	if token == "" {
		return slog.Attr{}
	}
	return slog.String("session_token", token)
}

// PublicPath records a client-visible file path under the key "public_path".
func PublicPath(path string) slog.Attr {
	if path == "" {
		return slog.Attr{}
	}
	return slog.String("public_path", path)
}
