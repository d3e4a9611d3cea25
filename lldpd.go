package lldpd

import (
	"bytes"
	"context"
	"encoding/binary"
	"io"
	"net"
	"sync"
	"time"

	"github.com/golang/glog"
	"github.com/mdlayher/ethernet"
	"github.com/mdlayher/lldp"
	"github.com/pkg/errors"

	"github.com/extrame/lldpagent/lldpdu"
)

const ethernetHeaderLen = 14

// LLDPMulticastAddress is where announces go. A NIC may need it added to
// deliver inbound LLDP:
//
//	sudo ip maddr add 01:80:c2:00:00:0e dev eth0
var LLDPMulticastAddress = net.HardwareAddr{0x01, 0x80, 0xc2, 0x00, 0x00, 0x0e}

// lldpDestinations are the nearest bridge, nearest non-TPMR bridge and
// nearest customer bridge group addresses.
var lldpDestinations = []net.HardwareAddr{
	{0x01, 0x80, 0xc2, 0x00, 0x00, 0x00},
	{0x01, 0x80, 0xc2, 0x00, 0x00, 0x03},
	LLDPMulticastAddress,
}

// Clock supplies the time for the announce timer.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// Agent announces the local port on one link and logs every LLDPDU it hears
// from its neighbors. An Agent runs a single loop and is not safe for
// concurrent use.
type Agent struct {
	mac       net.HardwareAddr
	ifname    string
	transport Transport

	interval time.Duration
	ttl      uint16
	extra    []lldpdu.TLV
	strict   bool
	clock    Clock
	log      Logger

	chassis lldpdu.ChassisID
	port    lldpdu.PortID
	last    time.Time
}

// New returns an agent for the interface ifname with hardware address mac,
// talking over transport. The announce LLDPDU is built once here so that
// bad identities or optional TLVs fail early.
func New(mac net.HardwareAddr, ifname string, transport Transport, opts ...Option) (*Agent, error) {
	if transport == nil {
		return nil, errors.New("lldpd: nil transport")
	}
	a := &Agent{
		mac:       mac,
		ifname:    ifname,
		transport: transport,
		interval:  DefaultInterval,
		ttl:       DefaultTTL,
		clock:     systemClock{},
		log:       StdoutLogger{},
	}
	for _, opt := range opts {
		if err := a.SetOption(opt); err != nil {
			return nil, err
		}
	}

	id, err := lldpdu.MACFrom(mac)
	if err != nil {
		return nil, errors.Wrap(err, "lldpd: local address")
	}
	if a.chassis, err = lldpdu.NewChassisID(lldpdu.ChassisIDSubtypeMACAddress, id); err != nil {
		return nil, errors.Wrap(err, "lldpd: chassis id")
	}
	if a.port, err = lldpdu.NewPortID(lldpdu.PortIDSubtypeInterfaceName, lldpdu.Name(ifname)); err != nil {
		return nil, errors.Wrap(err, "lldpd: port id")
	}
	if _, err := a.announcement(); err != nil {
		return nil, err
	}
	return a, nil
}

// announcement builds the LLDPDU sent by Announce: Chassis ID from the MAC,
// Port ID from the interface name, the TTL, then any optional TLVs.
func (a *Agent) announcement() (*lldpdu.PDU, error) {
	tlvs := make([]lldpdu.TLV, 0, 3+len(a.extra))
	tlvs = append(tlvs, a.chassis, a.port, lldpdu.TTL(a.ttl))
	tlvs = append(tlvs, a.extra...)
	pdu, err := lldpdu.NewPDU(tlvs...)
	if err != nil {
		return nil, errors.Wrap(err, "lldpd: announcement")
	}
	return pdu, nil
}

// Announce sends one LLDP frame to the nearest customer bridge address.
func (a *Agent) Announce() error {
	pdu, err := a.announcement()
	if err != nil {
		return err
	}
	b, err := a.packetFor(pdu.Bytes())
	if err != nil {
		return err
	}
	if err := a.transport.Send(b); err != nil {
		return &TransportError{Op: "send", Err: err}
	}
	glog.V(2).Infof("announced %s on %s", pdu, a.ifname)
	return nil
}

// packetFor wraps payload in an Ethernet header. The frame is not padded to
// the Ethernet minimum.
func (a *Agent) packetFor(payload []byte) ([]byte, error) {
	f := &ethernet.Frame{
		Destination: LLDPMulticastAddress,
		Source:      a.mac,
		EtherType:   lldp.EtherType,
		Payload:     payload,
	}
	b, err := f.MarshalBinary()
	if err != nil {
		return nil, errors.Wrap(err, "lldpd: marshal ethernet frame")
	}
	return b[:ethernetHeaderLen+len(payload)], nil
}

// Run receives frames until ctx is done, the transport runs dry (io.EOF) or,
// when stopAfterFirst is set, one LLDPDU has been logged. After every
// receive attempt it announces if more than the interval has passed since
// the last announce. Cancelling ctx closes the transport.
func (a *Agent) Run(ctx context.Context, stopAfterFirst bool) error {
	var once sync.Once
	closeTransport := func() {
		once.Do(func() {
			if err := a.transport.Close(); err != nil {
				glog.Errorf("closing transport on %s: %v", a.ifname, err)
			}
		})
	}
	stop := context.AfterFunc(ctx, closeTransport)
	defer func() {
		stop()
		// the AfterFunc goroutine may not have run yet
		if ctx.Err() != nil {
			closeTransport()
		}
	}()

	glog.Infof("starting LLDP agent on interface %s", a.ifname)
	a.last = a.clock.Now()
	for {
		if ctx.Err() != nil {
			return nil
		}
		b, err := a.transport.Receive()
		switch {
		case err == nil:
			accepted, err := a.handle(b)
			if err != nil {
				return err
			}
			if accepted && stopAfterFirst {
				return nil
			}
		case ctx.Err() != nil:
			return nil
		case errors.Is(err, io.EOF):
			glog.Infof("no more frames on %s", a.ifname)
			return nil
		case isTimeout(err):
		default:
			return &TransportError{Op: "receive", Err: err}
		}

		if now := a.clock.Now(); now.Sub(a.last) > a.interval {
			if err := a.Announce(); err != nil {
				return err
			}
			a.last = now
		}
	}
}

// handle filters one received frame and logs the LLDPDU it carries. It
// reports whether the frame was accepted. Undecodable LLDPDUs are dropped
// unless the agent is strict.
func (a *Agent) handle(b []byte) (bool, error) {
	var frame ethernet.Frame
	if err := frame.UnmarshalBinary(b); err != nil {
		glog.V(2).Infof("dropping frame of %d bytes: %v", len(b), err)
		return false, nil
	}
	if bytes.Equal(frame.Source, a.mac) {
		return false, nil
	}
	if !isLLDPDestination(frame.Destination) {
		return false, nil
	}
	// the outer EtherType: UnmarshalBinary reports the one inside 802.1Q tags
	if binary.BigEndian.Uint16(b[12:14]) != uint16(lldp.EtherType) {
		return false, nil
	}
	glog.V(2).Infof("lldp frame from %s, len %d", frame.Source, len(b))

	pdu, err := decodePayload(frame.Payload)
	if err != nil {
		err = errors.Wrapf(err, "lldpd: lldpdu from %s on %s", frame.Source, a.ifname)
		if a.strict {
			return false, err
		}
		glog.Warning(err)
		return false, nil
	}
	if l, ok := a.log.(SourceLogger); ok {
		l.LogFrom(frame.Source, pdu.String())
	} else {
		a.log.Log(pdu.String())
	}
	return true, nil
}

// decodePayload parses the payload as is, then without the zero fill
// after the End TLV, then without a trailing frame check sequence.
func decodePayload(payload []byte) (*lldpdu.PDU, error) {
	pdu, err := lldpdu.ParsePDU(payload)
	if err == nil {
		return pdu, nil
	}
	if trimmed := lldpdu.TrimPadding(payload); len(trimmed) != len(payload) {
		if pdu, terr := lldpdu.ParsePDU(trimmed); terr == nil {
			return pdu, nil
		}
	}
	if n := len(payload) - 4; n > 0 {
		if pdu, ferr := lldpdu.ParsePDU(lldpdu.TrimPadding(payload[:n])); ferr == nil {
			return pdu, nil
		}
	}
	return nil, err
}

func isLLDPDestination(addr net.HardwareAddr) bool {
	for _, d := range lldpDestinations {
		if bytes.Equal(addr, d) {
			return true
		}
	}
	return false
}
