package nationalize

import "fmt"

// NetworkError covers transport failures and non-2xx responses from the
// prediction API. It unwraps to the underlying cause when one exists.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("nationalize: request failed: %v", e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// Code reports the stable error code used in handler summaries.
func (e *NetworkError) Code() string { return "NETWORK_ERROR" }

// UnexpectedError covers malformed payloads and other non-transport failures.
type UnexpectedError struct {
	Err error
}

func (e *UnexpectedError) Error() string {
	return fmt.Sprintf("nationalize: unexpected failure: %v", e.Err)
}

func (e *UnexpectedError) Unwrap() error { return e.Err }

// Code reports the stable error code used in handler summaries.
func (e *UnexpectedError) Code() string { return "UNEXPECTED_ERROR" }
