// Package errs defines the processing runtime's error taxonomy and a small
// wrapping helper, following the style of pkg/utils.Wrap.
package errs

import "fmt"

// Kind classifies a runtime error per spec.md §7. Kinds are not type names:
// several distinct Go error values can share a Kind.
type Kind int

const (
	KindUnknown Kind = iota
	KindDecode
	KindSchema
	KindHandler
	KindPanic
	KindTimeout
	KindTransportClosed
	KindOrphanResponse
	// KindNotFound marks an expected, non-fatal outcome: the requested entity
	// does not exist (spec.md §4.4's get<T>(id) -> Some(T)/None contract).
	// Callers distinguish it from a real failure via errs.KindOf(err) ==
	// errs.KindNotFound, never by matching the error string.
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindDecode:
		return "decode"
	case KindSchema:
		return "schema"
	case KindHandler:
		return "handler"
	case KindPanic:
		return "panic"
	case KindTimeout:
		return "timeout"
	case KindTransportClosed:
		return "transport_closed"
	case KindOrphanResponse:
		return "orphan_response"
	case KindNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}

// Error pairs a Kind with an underlying cause so callers can classify a
// failure (e.g. the stream server mapping a record error to a gRPC status
// code) without string matching.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// New constructs an Error of the given kind.
func New(kind Kind, message string) error {
	return &Error{Kind: kind, Message: message}
}

// Wrap adds a kind and message to err. It returns nil if err is nil, matching
// pkg/utils.Wrap's nil-passthrough contract.
func Wrap(kind Kind, err error, message string) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Message: message, Cause: err}
}

// KindOf extracts the Kind of err if it (or something it wraps) is an *Error,
// and KindUnknown otherwise.
func KindOf(err error) Kind {
	for err != nil {
		if e, ok := err.(*Error); ok {
			return e.Kind
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			break
		}
		err = u.Unwrap()
	}
	return KindUnknown
}
