package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// Op identifies the operation that produced an error
type Op string

const (
	OpSet         Op = "set"         // property insert or replace
	OpUnset       Op = "unset"       // property removal
	OpGet         Op = "get"         // property lookup
	OpIterate     Op = "iterate"     // iterator step
	OpSubscribe   Op = "subscribe"   // listener registration
	OpUnsubscribe Op = "unsubscribe" // listener removal
	OpQuery       Op = "query"       // capability query
	OpOwn         Op = "own"         // ownership access or transfer
	OpParse       Op = "parse"       // text to value conversion
)

// Kind categorizes the error
type Kind string

const (
	KindOutOfMemory     Kind = "out_of_memory"
	KindNotFound        Kind = "not_found"
	KindInvalidArgument Kind = "invalid_argument"
	KindInvalidated     Kind = "invalidated"
	KindNotSupported    Kind = "not_supported"
	KindDestroyed       Kind = "destroyed"
)

// Sentinels for errors.Is. Each matches any *Error of the same Kind,
// regardless of Op.
var (
	ErrOutOfMemory     = &Error{Kind: KindOutOfMemory}
	ErrNotFound        = &Error{Kind: KindNotFound}
	ErrInvalidArgument = &Error{Kind: KindInvalidArgument}
	ErrInvalidated     = &Error{Kind: KindInvalidated}
	ErrNotSupported    = &Error{Kind: KindNotSupported}
	ErrDestroyed       = &Error{Kind: KindDestroyed}
)

// Error is the structured error type returned by every store operation
type Error struct {
	Value  any
	Cause  error
	Op     Op
	Kind   Kind
	Name   string
	Detail string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	if e.Op != "" {
		b.WriteByte('[')
		b.WriteString(string(e.Op))
		b.WriteString("] ")
	}
	b.WriteString(string(e.Kind))

	if e.Name != "" {
		b.WriteString(" at ")
		b.WriteString(fmt.Sprintf("%q", e.Name))
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error.
// A target without an Op matches on Kind alone.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if e.Kind != t.Kind {
		return false
	}
	return t.Op == "" || e.Op == t.Op
}

// KindOf returns the Kind of the first *Error in err's chain, or "" if none.
func KindOf(err error) Kind {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool { return stderrors.Is(err, target) }

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool { return stderrors.As(err, target) }

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(op Op, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Op:   op,
			Kind: kind,
		},
	}
}

// Name sets the property name or subject the error refers to
func (b *Builder) Name(name string) *Builder {
	b.err.Name = name
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// NotFound creates a not-found error
func NotFound(op Op, what, name string) *Error {
	return &Error{
		Op:     op,
		Kind:   KindNotFound,
		Name:   name,
		Detail: what + " not found",
	}
}

// InvalidArgument creates an invalid argument error
func InvalidArgument(op Op, name, detail string) *Error {
	return &Error{
		Op:     op,
		Kind:   KindInvalidArgument,
		Name:   name,
		Detail: detail,
	}
}

// OutOfMemory creates a capacity exhaustion error
func OutOfMemory(op Op, what string, limit int) *Error {
	return &Error{
		Op:     op,
		Kind:   KindOutOfMemory,
		Detail: fmt.Sprintf("%s capacity %d exhausted", what, limit),
		Value:  limit,
	}
}

// Invalidated creates an error for a view used after its source changed
func Invalidated(op Op, detail string) *Error {
	return &Error{
		Op:     op,
		Kind:   KindInvalidated,
		Detail: detail,
	}
}

// NotSupported creates an unsupported capability error
func NotSupported(op Op, capability string) *Error {
	return &Error{
		Op:     op,
		Kind:   KindNotSupported,
		Detail: fmt.Sprintf("capability %q not supported", capability),
		Value:  capability,
	}
}

// Destroyed creates a use-after-destroy error
func Destroyed(op Op, what string) *Error {
	return &Error{
		Op:     op,
		Kind:   KindDestroyed,
		Detail: what + " already destroyed",
	}
}

// Wrap wraps an existing error with additional context
func Wrap(op Op, kind Kind, cause error, detail string) *Error {
	return &Error{
		Op:     op,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}
