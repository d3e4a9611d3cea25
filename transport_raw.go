package lldpd

import (
	"net"
	"sync"

	"github.com/extrame/raw"
	"github.com/golang/glog"
	"github.com/mdlayher/lldp"
	"github.com/pkg/errors"
)

// packetConn is the part of *raw.Conn the transport uses.
type packetConn interface {
	ReadFrom(b []byte) (int, net.Addr, error)
	WriteTo(b []byte, addr net.Addr) (int, error)
	Close() error
}

// RawTransport is a packet socket bound to the LLDP EtherType on one
// interface.
type RawTransport struct {
	name string
	conn packetConn
	buf  []byte

	closeOnce sync.Once
	closeErr  error
}

// ListenRaw opens a packet socket on the named interface. It needs
// CAP_NET_RAW.
func ListenRaw(name string) (*RawTransport, error) {
	link, err := net.InterfaceByName(name)
	if err != nil {
		return nil, &TransportError{Op: "listen", Err: err}
	}
	ifi := raw.NewInterface(link)
	conn, err := raw.ListenPacket(ifi, uint16(lldp.EtherType), nil)
	if err != nil {
		return nil, &TransportError{Op: "listen", Err: errors.Wrapf(err, "[%d]%s", link.Index, link.Name)}
	}
	glog.Infof("started listener on interface %s (index %d)", link.Name, link.Index)
	return &RawTransport{
		name: link.Name,
		conn: conn,
		buf:  make([]byte, link.MTU+ethernetHeaderLen),
	}, nil
}

// Send writes frame to the destination in its own Ethernet header.
func (t *RawTransport) Send(frame []byte) error {
	if len(frame) < ethernetHeaderLen {
		return errors.Errorf("frame of %d bytes has no ethernet header", len(frame))
	}
	_, err := t.conn.WriteTo(frame, &raw.Addr{HardwareAddr: net.HardwareAddr(frame[0:6])})
	return err
}

// Receive returns a copy of the next frame read from the socket. A socket
// closed underneath the read turns into ErrClosed.
func (t *RawTransport) Receive() ([]byte, error) {
	n, _, err := t.conn.ReadFrom(t.buf)
	if err != nil {
		if isShouldFinishError(err) {
			return nil, ErrClosed
		}
		return nil, err
	}
	return append([]byte(nil), t.buf[:n]...), nil
}

// Close closes the socket. Later calls return the first call's result.
func (t *RawTransport) Close() error {
	t.closeOnce.Do(func() {
		t.closeErr = t.conn.Close()
		glog.Infof("closed listener on interface %s", t.name)
	})
	return t.closeErr
}
