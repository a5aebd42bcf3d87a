package domain

import (
	"errors"
)

// Kind classifies a failure of the key loader or container codec. The set is
// closed: callers branch on Kind, never on message text.
type Kind int

const (
	// KindConfiguration: the key is missing or has the wrong length.
	KindConfiguration Kind = iota + 1
	// KindValidation: caller-supplied input was rejected before any work.
	KindValidation
	// KindFormat: a container could not be parsed.
	KindFormat
	// KindAuthentication: GCM verification failed.
	KindAuthentication
)

var kinds = map[Kind]string{
	KindConfiguration:  "configuration error",
	KindValidation:     "validation error",
	KindFormat:         "format error",
	KindAuthentication: "authentication error",
}

func (k Kind) String() string {
	if s, ok := kinds[k]; ok {
		return s
	}
	return "unknown error"
}

// Error carries a Kind, a message that is safe to show to a user, and an
// optional underlying cause.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

// E builds an *Error of the given kind.
func E(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

// Wrap builds an *Error of the given kind that records err as its cause.
func Wrap(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Message: msg, Err: err}
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Kind.String()
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error of the same kind. A target with a
// message only matches errors carrying that exact message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Kind != e.Kind {
		return false
	}
	return t.Message == "" || t.Message == e.Message
}

// Sentinels for errors.Is matching by kind.
var (
	ErrConfiguration  = &Error{Kind: KindConfiguration}
	ErrValidation     = &Error{Kind: KindValidation}
	ErrFormat         = &Error{Kind: KindFormat}
	ErrAuthentication = &Error{Kind: KindAuthentication}
)

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}
