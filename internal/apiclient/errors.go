package apiclient

import (
	"errors"
	"fmt"
)

const fallbackDomainMessage = "Unknown error"

// NetworkError means the upstream call did not produce a usable response:
// connection failure, non-2xx status, or an undecodable body.
type NetworkError struct {
	Endpoint   string
	StatusCode int
	Err        error
}

func (e *NetworkError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("network error fetching %s: status %d", e.Endpoint, e.StatusCode)
	}
	return fmt.Sprintf("network error fetching %s: %v", e.Endpoint, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// DomainError means the upstream answered but the envelope status was not "success".
type DomainError struct {
	Endpoint string
	Message  string
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("api error for %s: %s", e.Endpoint, e.Message)
}

func IsNetworkError(err error) bool {
	var netErr *NetworkError
	return errors.As(err, &netErr)
}

func IsDomainError(err error) bool {
	var domErr *DomainError
	return errors.As(err, &domErr)
}
