package lldpd

import (
	"github.com/pkg/errors"
)

var (
	// ErrTransport matches every error raised by a Transport.
	ErrTransport = errors.New("lldpd: transport failure")
	// ErrClosed is returned by Receive once the transport has been closed.
	ErrClosed = errors.New("lldpd: transport closed")
)

// Transport carries raw Ethernet frames for one link. The agent owns its
// transport for the whole run and calls it from a single goroutine, except
// for Close which may come from another one to unblock Receive.
type Transport interface {
	// Send writes one complete frame.
	Send(frame []byte) error
	// Receive blocks until the next frame arrives. A returned error with a
	// Timeout() method reporting true means nothing arrived in time.
	Receive() ([]byte, error)
	Close() error
}

// TransportError records which transport operation failed.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string { return "lldpd: " + e.Op + ": " + e.Err.Error() }

func (e *TransportError) Unwrap() error { return e.Err }

func (e *TransportError) Is(target error) bool { return target == ErrTransport }

func isTimeout(err error) bool {
	var t interface{ Timeout() bool }
	return errors.As(err, &t) && t.Timeout()
}
