package domain

import (
	"errors"
	"fmt"
)

var ErrSecretNotFound = errors.New("secret not found")

// APIErrorKind classifies a failed gateway call. The kinds mirror the
// stages of a request: building the URL, the transport round trip, the
// response shape, the HTTP status, and finally body decoding.
type APIErrorKind int

const (
	APIErrorUnknown APIErrorKind = iota
	APIErrorInvalidURL
	APIErrorInvalidResponse
	APIErrorServer
	APIErrorDecoding
)

// APIError is the shared error taxonomy between the gateway and the
// session layer. Status is set for APIErrorServer, Err carries the
// underlying cause for APIErrorUnknown and APIErrorDecoding.
type APIError struct {
	Kind   APIErrorKind
	Status int
	Err    error
}

func (e *APIError) Error() string {
	switch e.Kind {
	case APIErrorInvalidURL:
		return "invalid api url"
	case APIErrorInvalidResponse:
		return "invalid server response"
	case APIErrorServer:
		return fmt.Sprintf("server returned status %d", e.Status)
	case APIErrorDecoding:
		return fmt.Sprintf("decode server response: %v", e.Err)
	default:
		if e.Err != nil {
			return fmt.Sprintf("request failed: %v", e.Err)
		}
		return "request failed"
	}
}

func (e *APIError) Unwrap() error {
	return e.Err
}
