package socialdata

import "fmt"

// UpstreamError is returned when the SocialData API answers with a non-2xx
// status. Body holds the raw, unparsed response text.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("API request failed: %d - %s", e.StatusCode, e.Body)
}

// TransportError is returned when the request never produced an HTTP
// response (DNS, refused connection, timeout, unreadable body).
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("API request error: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }
