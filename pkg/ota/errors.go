package ota

import "errors"

// ErrorKind classifies an update failure.
type ErrorKind uint8

const (
	// ErrAuth is a missing or wrong password.
	ErrAuth ErrorKind = iota

	// ErrBegin is a request that could not be started: busy, bad size or
	// no staging space.
	ErrBegin

	// ErrConnect is a transfer that dropped before any data arrived.
	ErrConnect

	// ErrReceive is a transfer that broke off or failed to write.
	ErrReceive

	// ErrEnd is a complete transfer that failed verification or commit.
	ErrEnd
)

// String returns the failure name.
func (k ErrorKind) String() string {
	switch k {
	case ErrAuth:
		return "Auth Failed"
	case ErrBegin:
		return "Begin Failed"
	case ErrConnect:
		return "Connect Failed"
	case ErrReceive:
		return "Receive Failed"
	case ErrEnd:
		return "End Failed"
	default:
		return "Unknown Failed"
	}
}

// Error is a classified update failure.
type Error struct {
	Kind ErrorKind
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Kind.String()
	}
	return e.Kind.String() + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Sentinel causes.
var (
	ErrBusy             = errors.New("update already in progress")
	ErrBadPassword      = errors.New("bad password")
	ErrSizeRequired     = errors.New("content length required")
	ErrTooLarge         = errors.New("image too large")
	ErrChecksumMismatch = errors.New("checksum mismatch")
	ErrShortBody        = errors.New("body shorter than content length")
	ErrUnknownTarget    = errors.New("unknown update target")
)

// KindOf returns the kind of err if it is an *Error.
func KindOf(err error) (ErrorKind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}
