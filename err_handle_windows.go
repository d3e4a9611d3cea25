package lldpd

import (
	"net"

	"github.com/pkg/errors"
)

func isShouldFinishError(err error) bool {
	return errors.Is(err, net.ErrClosed)
}
