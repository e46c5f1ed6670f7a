package fetch

import (
	"fmt"
)

// TransportError reports a network-level failure reaching the upstream
// provider, including timeouts (the wrapped error is then
// context.DeadlineExceeded).
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("upstream request failed: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ProtocolError reports a non-success status code or a malformed response
// body from the upstream provider.
type ProtocolError struct {
	Status int
	Reason string
}

func (e *ProtocolError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("upstream error: HTTP %d: %s", e.Status, e.Reason)
	}
	return fmt.Sprintf("upstream error: %s", e.Reason)
}
