package apperrors

import (
	"errors"
	"strings"
)

type Kind string

const (
	// KindParse marks malformed annotation syntax. The request is aborted.
	KindParse Kind = "parse"
	// KindStructure marks an ungroupable or headless phrase. The request is aborted.
	KindStructure Kind = "structure"
	// KindGeneration marks unsatisfiable phonotactic constraints. The
	// language profile itself is broken, so the condition is fatal.
	KindGeneration Kind = "generation"
	// KindConfig marks an invalid profile or pipeline configuration.
	KindConfig Kind = "config"
	// KindAuth marks a credential failure on the LLM tagger path.
	KindAuth Kind = "auth"
	// KindTransient marks a temporary upstream failure worth retrying.
	KindTransient Kind = "transient"
	// KindBadRequest marks a request rejected by an upstream API.
	KindBadRequest Kind = "bad_request"
)

type Error struct {
	Kind Kind
	// SafeMessage is intended for user-facing output and logs.
	SafeMessage string
	// Cause keeps the original internal error for troubleshooting.
	Cause error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if msg := strings.TrimSpace(e.SafeMessage); msg != "" {
		return msg
	}
	if e.Cause != nil {
		return e.Cause.Error()
	}
	return "unknown error"
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

func defaultSafeMessage(kind Kind) string {
	switch kind {
	case KindParse:
		return "Input annotation could not be parsed."
	case KindStructure:
		return "Input groups could not be assembled into a syntax tree."
	case KindGeneration:
		return "Word generation exhausted its retry budget. The language profile is unsatisfiable."
	case KindConfig:
		return "Invalid configuration."
	case KindAuth:
		return "Authentication failed. Please verify your API key and permissions."
	case KindTransient:
		return "Temporary upstream error. Please try again."
	case KindBadRequest:
		return "Request rejected by upstream API."
	default:
		return "Request failed."
	}
}

func New(kind Kind, safeMessage string, cause error) error {
	msg := strings.TrimSpace(safeMessage)
	if msg == "" {
		msg = defaultSafeMessage(kind)
	}
	return &Error{
		Kind:        kind,
		SafeMessage: msg,
		Cause:       cause,
	}
}

func Parse(err error) error {
	return New(KindParse, "", err)
}

func Structure(err error) error {
	return New(KindStructure, "", err)
}

func Generation(err error) error {
	return New(KindGeneration, "", err)
}

func Config(err error) error {
	return New(KindConfig, "", err)
}

func Auth(err error) error {
	return New(KindAuth, "", err)
}

func Transient(err error) error {
	return New(KindTransient, "", err)
}

func BadRequest(err error) error {
	return New(KindBadRequest, "", err)
}

func KindOf(err error) (Kind, bool) {
	var e *Error
	if !errors.As(err, &e) {
		return "", false
	}
	return e.Kind, true
}

func PublicMessage(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Error()
	}
	return err.Error()
}

// IsFatal reports whether the error signals a broken configuration rather
// than bad input. Generation exhaustion means the profile's phonotactics
// cannot be satisfied, so retrying with the same profile cannot help.
func IsFatal(err error) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Kind == KindGeneration || e.Kind == KindConfig
}

// IsRetryable reports whether a failed upstream call may succeed on retry.
func IsRetryable(err error) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Kind == KindTransient
}
