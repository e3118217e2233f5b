package geocoding

import (
	"errors"
	"fmt"
)

// Kind classifies why a lookup failed.
type Kind string

const (
	KindNetwork    Kind = "network"
	KindProvider   Kind = "provider"
	KindParse      Kind = "parse"
	KindCredential Kind = "credential"
	KindUnknown    Kind = "unknown"
)

// Sentinels for errors.Is checks against *Error.
var (
	ErrNetwork    = errors.New("geocode: network error")
	ErrProvider   = errors.New("geocode: provider error")
	ErrParse      = errors.New("geocode: malformed provider response")
	ErrCredential = errors.New("geocode: missing provider credential")
)

// Error is returned by every provider when a lookup fails.
// The lookup still yields an empty suggestion list; the error only
// describes what went wrong so callers can log it.
type Error struct {
	Kind     Kind
	Provider string
	Query    string
	Status   int
	Err      error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("geocode %s query=%q: %s", e.Provider, e.Query, e.Kind)
	if e.Status != 0 {
		msg += fmt.Sprintf(" status=%d", e.Status)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool {
	switch target {
	case ErrNetwork:
		return e.Kind == KindNetwork
	case ErrProvider:
		return e.Kind == KindProvider
	case ErrParse:
		return e.Kind == KindParse
	case ErrCredential:
		return e.Kind == KindCredential
	}
	return false
}

// KindOf reports the failure kind of err, or KindUnknown.
func KindOf(err error) Kind {
	var ge *Error
	if errors.As(err, &ge) {
		return ge.Kind
	}
	return KindUnknown
}
