package crawler

import (
	"errors"
	"fmt"
)

// ErrNoPendingDomains is returned when the coordinator finds nothing to crawl
var ErrNoPendingDomains = errors.New("no pending domains")

// FetchErrorKind classifies a fetch failure
type FetchErrorKind int

const (
	// FetchTimeout indicates the request exceeded the configured deadline
	FetchTimeout FetchErrorKind = iota
	// FetchTransportError indicates a connection or protocol level failure
	FetchTransportError
	// FetchNonSuccessStatus indicates a non-2xx HTTP response
	FetchNonSuccessStatus
	// FetchDecodeError indicates the body was not valid UTF-8 text
	FetchDecodeError
)

// String returns the name of the failure kind
func (k FetchErrorKind) String() string {
	switch k {
	case FetchTimeout:
		return "timeout"
	case FetchTransportError:
		return "transport-error"
	case FetchNonSuccessStatus:
		return "non-success-status"
	case FetchDecodeError:
		return "decode-error"
	default:
		return "unknown"
	}
}

// FetchError is a classified fetch failure
type FetchError struct {
	Kind       FetchErrorKind
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.Kind == FetchNonSuccessStatus {
		return fmt.Sprintf("fetch %s: %s (%d)", e.URL, e.Kind, e.StatusCode)
	}
	if e.Err != nil {
		return fmt.Sprintf("fetch %s: %s: %v", e.URL, e.Kind, e.Err)
	}
	return fmt.Sprintf("fetch %s: %s", e.URL, e.Kind)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
