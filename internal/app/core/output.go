// Package core holds the result envelope shared by every domain service.
//
// Services never return a Go error to their callers. Each operation returns
// an output struct that embeds Output; a failure carries a fixed,
// operation-specific message and never the text of the underlying error.
package core

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/getsentry/sentry-go"

	"eats-backend/internal/metrics"
)

// ErrorKind classifies a failed Output. It is used for logs and metrics only
// and is not exposed through the API.
type ErrorKind string

const (
	KindNone               ErrorKind = ""
	KindNotFound           ErrorKind = "not_found"
	KindUnauthorized       ErrorKind = "unauthorized"
	KindConflict           ErrorKind = "conflict"
	KindCredentialMismatch ErrorKind = "credential_mismatch"
	KindUnexpected         ErrorKind = "unexpected"
)

// Output is the {ok, error} envelope. Error is non-empty iff OK is false.
type Output struct {
	OK    bool
	Error string
	Kind  ErrorKind
}

func Success() Output {
	return Output{OK: true}
}

func Fail(kind ErrorKind, msg string) Output {
	return Output{Error: msg, Kind: kind}
}

func NotFound(msg string) Output           { return Fail(KindNotFound, msg) }
func Unauthorized(msg string) Output       { return Fail(KindUnauthorized, msg) }
func Conflict(msg string) Output           { return Fail(KindConflict, msg) }
func CredentialMismatch(msg string) Output { return Fail(KindCredentialMismatch, msg) }

// Unexpected logs err, reports it to Sentry and returns the failure envelope
// carrying msg.
func Unexpected(ctx context.Context, log *slog.Logger, op string, err error, msg string) Output {
	log.ErrorContext(ctx, "operation failed", "op", op, "error", err)
	sentry.CaptureException(fmt.Errorf("%s: %w", op, err))
	return Fail(KindUnexpected, msg)
}

// Recover converts a panic raised below an operation boundary into the
// operation's failure envelope. It must be deferred directly.
//
//	defer core.Recover(ctx, s.log, "login", &out.Output, errLogin)
func Recover(ctx context.Context, log *slog.Logger, op string, out *Output, msg string) {
	r := recover()
	if r == nil {
		return
	}
	*out = Unexpected(ctx, log, op, fmt.Errorf("panic: %v", r), msg)
}

// Track counts the final outcome of an operation. Defer it before Recover so
// it observes a recovered panic too.
func Track(op string, out *Output) {
	metrics.Observe(op, string(out.Kind))
}
