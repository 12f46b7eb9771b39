package models

import "fmt"

// ErrorKind classifies why a session aborted
type ErrorKind int

const (
	// Unknown is reported for errors that did not come from a session step
	Unknown ErrorKind = iota
	NoAdapter
	ScanFailed
	EmptyDiscoverySet
	NoMatch
	IndexOutOfRange
	ConnectionFailed
	DiscoveryFailed
	CharacteristicNotFound
	WriteFailed
	DisconnectFailed
	InvalidInput
)

var errorKindNames = []string{
	"Unknown",
	"NoAdapter",
	"ScanFailed",
	"EmptyDiscoverySet",
	"NoMatch",
	"IndexOutOfRange",
	"ConnectionFailed",
	"DiscoveryFailed",
	"CharacteristicNotFound",
	"WriteFailed",
	"DisconnectFailed",
	"InvalidInput",
}

func (k ErrorKind) String() string {
	if int(k) < 0 || int(k) >= len(errorKindNames) {
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
	return errorKindNames[k]
}

// SessionError carries the failing step's kind and the underlying cause
type SessionError struct {
	Kind ErrorKind
	Err  error
}

// NewSessionError wraps err (which may be nil) with a kind
func NewSessionError(kind ErrorKind, err error) *SessionError {
	return &SessionError{Kind: kind, Err: err}
}

func (e *SessionError) Error() string {
	if e.Err == nil {
		return e.Kind.String()
	}
	return e.Kind.String() + ": " + e.Err.Error()
}

// Cause satisfies github.com/pkg/errors causer
func (e *SessionError) Cause() error { return e.Err }

func (e *SessionError) Unwrap() error { return e.Err }

type causer interface {
	Cause() error
}

// KindOf returns the kind of the outermost SessionError in err's cause chain
func KindOf(err error) ErrorKind {
	for err != nil {
		if se, ok := err.(*SessionError); ok {
			return se.Kind
		}
		c, ok := err.(causer)
		if !ok {
			return Unknown
		}
		err = c.Cause()
	}
	return Unknown
}

// IsKind reports whether err is a SessionError of the given kind
func IsKind(err error, kind ErrorKind) bool {
	return err != nil && KindOf(err) == kind
}
