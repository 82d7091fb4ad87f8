package builderr

import (
	"fmt"
	"strings"
)

// Kind classifies a build-plan error.
type Kind int

const (
	KindConfig Kind = iota + 1
	KindUnknownVariant
	KindUnknownNamespace
	KindMissingSource
	KindIncludeCycle
	KindOutputCollision
	KindSymbolCollision
)

// String returns the kind's name as used in diagnostics.
func (k Kind) String() string {
	switch k {
	case KindConfig:
		return "ConfigError"
	case KindUnknownVariant:
		return "UnknownVariantError"
	case KindUnknownNamespace:
		return "UnknownNamespaceError"
	case KindMissingSource:
		return "MissingSourceError"
	case KindIncludeCycle:
		return "IncludeCycleError"
	case KindOutputCollision:
		return "OutputCollisionError"
	case KindSymbolCollision:
		return "SymbolCollisionError"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Sentinels for errors.Is. They match any *Error of the same kind.
var (
	ErrConfig           = &Error{Kind: KindConfig}
	ErrUnknownVariant   = &Error{Kind: KindUnknownVariant}
	ErrUnknownNamespace = &Error{Kind: KindUnknownNamespace}
	ErrMissingSource    = &Error{Kind: KindMissingSource}
	ErrIncludeCycle     = &Error{Kind: KindIncludeCycle}
	ErrOutputCollision  = &Error{Kind: KindOutputCollision}
	ErrSymbolCollision  = &Error{Kind: KindSymbolCollision}
)

// Error is a fatal, user-facing build-plan error.
type Error struct {
	Kind    Kind
	Subject string // offending name or path
	Msg     string
	Err     error
}

// New creates an error of the given kind with a formatted message.
func New(kind Kind, subject, format string, args ...any) *Error {
	return &Error{Kind: kind, Subject: subject, Msg: fmt.Sprintf(format, args...)}
}

// Wrap is like New but keeps err as the cause.
func Wrap(kind Kind, subject string, err error, format string, args ...any) *Error {
	e := New(kind, subject, format, args...)
	e.Err = err
	return e
}

// Configf creates a ConfigError.
func Configf(format string, args ...any) *Error {
	return New(KindConfig, "", format, args...)
}

// Config joins a list of structural problems into a single ConfigError.
// It returns nil when problems is empty.
func Config(problems []string) error {
	if len(problems) == 0 {
		return nil
	}
	return &Error{Kind: KindConfig, Msg: strings.Join(problems, "; ")}
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Msg == "" {
		return e.Kind.String()
	}
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}
