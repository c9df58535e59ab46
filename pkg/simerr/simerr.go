// Package simerr defines the error taxonomy shared by every layer of the
// client. The core never panics or throws across a dispatch boundary:
// transport errors are stored on the connection, logical errors are either
// returned directly (Open) or reported through the exception-frame channel
// that carries {kind, send id, field index} back to a registered handler.
package simerr

import "fmt"

// Kind categorizes a SimConnectError. Kinds are a closed set; the host
// protocol does not grow new ones without a wire version bump.
type Kind int

const (
	// TransportFailure is any non-success result from a host primitive.
	// Surfaces through Connection.LastResult and the boolean success
	// conversion; never aborts the process.
	TransportFailure Kind = iota

	// BadConfig is raised once at Open time when the host refuses a named
	// configuration section.
	BadConfig

	// UnknownEvent is raised when event lookup is called with an id that
	// was never registered by name.
	UnknownEvent

	// MalformedFrame marks a declared frame size exceeding the buffer
	// size on receive; the frame is dropped and dispatch continues.
	MalformedFrame

	// SizeMismatch is detected by the host and delivered as an exception
	// frame; it is routed to the registered exception handler, not to the
	// originating request's own callback.
	SizeMismatch

	// OutOfIds means the host's per-session id capacity is exhausted.
	OutOfIds
)

func (k Kind) String() string {
	switch k {
	case TransportFailure:
		return "TransportFailure"
	case BadConfig:
		return "BadConfig"
	case UnknownEvent:
		return "UnknownEvent"
	case MalformedFrame:
		return "MalformedFrame"
	case SizeMismatch:
		return "SizeMismatch"
	case OutOfIds:
		return "OutOfIds"
	default:
		return "Unknown"
	}
}

// SimConnectError is the error type carried across the exception-frame
// channel and returned by fallible core operations. SendID correlates the
// failure to the send that caused it (via Connection.FetchSendID);
// FieldIndex identifies the offending data-definition field when
// applicable, -1 otherwise.
type SimConnectError struct {
	Kind       Kind
	SendID     uint32
	FieldIndex int
	Detail     string
	cause      error
}

// New constructs a SimConnectError with no send-id/field-index context.
func New(kind Kind, detail string) *SimConnectError {
	return &SimConnectError{Kind: kind, FieldIndex: -1, Detail: detail}
}

// Wrap constructs a SimConnectError around an underlying cause.
func Wrap(kind Kind, cause error, detail string) *SimConnectError {
	return &SimConnectError{Kind: kind, FieldIndex: -1, Detail: detail, cause: cause}
}

// WithSendID returns a copy of e with SendID set.
func (e *SimConnectError) WithSendID(id uint32) *SimConnectError {
	c := *e
	c.SendID = id
	return &c
}

// WithFieldIndex returns a copy of e with FieldIndex set.
func (e *SimConnectError) WithFieldIndex(idx int) *SimConnectError {
	c := *e
	c.FieldIndex = idx
	return &c
}

func (e *SimConnectError) Error() string {
	if e.Detail == "" {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %s", e.Kind.String(), e.Detail)
}

// Unwrap exposes the wrapped cause for errors.Is/As.
func (e *SimConnectError) Unwrap() error { return e.cause }

// Is reports whether target has the same Kind, allowing
// errors.Is(err, simerr.New(simerr.BadConfig, "")) style checks without
// requiring exact field equality.
func (e *SimConnectError) Is(target error) bool {
	other, ok := target.(*SimConnectError)
	if !ok {
		return false
	}
	return e.Kind == other.Kind
}
