package service

import "fmt"

type ErrorKind int

const (
	KindNotFound ErrorKind = iota + 1
	KindValidation
)

// Error is a failure the HTTP layer can map to a status code. Msg is safe to
// return to the client.
type Error struct {
	Kind ErrorKind
	Msg  string
}

func (e *Error) Error() string {
	return e.Msg
}

// Is matches any *Error of the same kind, so errors.Is(err, ErrNotFound)
// works for every not-found error regardless of message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

var (
	ErrNotFound   = &Error{Kind: KindNotFound, Msg: "not found"}
	ErrValidation = &Error{Kind: KindValidation, Msg: "validation failed"}
)

func notFoundf(format string, args ...any) error {
	return &Error{Kind: KindNotFound, Msg: fmt.Sprintf(format, args...)}
}

func validationf(format string, args ...any) error {
	return &Error{Kind: KindValidation, Msg: fmt.Sprintf(format, args...)}
}
