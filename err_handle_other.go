//go:build !windows

package lldpd

import (
	"net"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// isShouldFinishError reports whether a read failed because the socket was
// closed.
func isShouldFinishError(err error) bool {
	return errors.Is(err, unix.EBADF) || errors.Is(err, net.ErrClosed)
}
