package provider

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"syscall"
)

// Sentinel errors for each lookup failure. Callers check with errors.Is;
// the wrapped cause is kept for display.
var (
	ErrMissingCredential = errors.New("missing API credential")
	ErrNotFound          = errors.New("company not found")
	ErrConnection        = errors.New("connection error")
	ErrTimeout           = errors.New("request timed out")
	ErrRequest           = errors.New("request failed")
	ErrDecode            = errors.New("invalid JSON response")
)

// HTTPError is returned for any 4xx/5xx response other than 404.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d %s", e.StatusCode, http.StatusText(e.StatusCode))
}

// DecodeError carries the body that could not be decoded as a JSON object.
type DecodeError struct {
	Body string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%v: %v", ErrDecode, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrDecode) match without exposing the wrapped cause as the sentinel.
func (e *DecodeError) Is(target error) bool { return target == ErrDecode }

// transportError wraps a failure from client.Do or a body read with the sentinel
// for its class. Connection failures win over timeouts, so a dial that times out
// is reported as a connection error.
func transportError(err error) error {
	switch {
	case isConnectionError(err):
		return fmt.Errorf("%w: %w", ErrConnection, err)
	case isTimeout(err):
		return fmt.Errorf("%w: %w", ErrTimeout, err)
	default:
		return fmt.Errorf("%w: %w", ErrRequest, err)
	}
}

func isConnectionError(err error) bool {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}

	if errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.EHOSTUNREACH) || errors.Is(err, syscall.ENETUNREACH) {
		return true
	}

	var opErr *net.OpError
	return errors.As(err, &opErr) && opErr.Op == "dial"
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, os.ErrDeadlineExceeded) {
		return true
	}

	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
