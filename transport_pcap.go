package lldpd

import (
	"io"
	"sync"
	"time"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcapgo"
	"github.com/pkg/errors"
)

const pcapSnapLen = 65536

// PcapTransport replays frames from a pcap capture and records sent frames
// into another one. Receive returns io.EOF once the capture is exhausted.
type PcapTransport struct {
	mu     sync.Mutex
	r      *pcapgo.Reader
	w      *pcapgo.Writer
	closed bool
}

// NewPcapTransport reads Ethernet frames from r and writes sent frames to w.
// Either may be nil: without r there is nothing to receive, without w sent
// frames are discarded.
func NewPcapTransport(r io.Reader, w io.Writer) (*PcapTransport, error) {
	t := &PcapTransport{}
	if r != nil {
		pr, err := pcapgo.NewReader(r)
		if err != nil {
			return nil, &TransportError{Op: "open capture", Err: err}
		}
		if lt := pr.LinkType(); lt != layers.LinkTypeEthernet {
			return nil, &TransportError{Op: "open capture", Err: errors.Errorf("link type %s, want %s", lt, layers.LinkTypeEthernet)}
		}
		t.r = pr
	}
	if w != nil {
		pw := pcapgo.NewWriter(w)
		if err := pw.WriteFileHeader(pcapSnapLen, layers.LinkTypeEthernet); err != nil {
			return nil, &TransportError{Op: "create capture", Err: err}
		}
		t.w = pw
	}
	return t, nil
}

func (t *PcapTransport) Send(frame []byte) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return ErrClosed
	}
	if t.w == nil {
		return nil
	}
	return t.w.WritePacket(gopacket.CaptureInfo{
		Timestamp:     time.Now(),
		CaptureLength: len(frame),
		Length:        len(frame),
	}, frame)
}

func (t *PcapTransport) Receive() ([]byte, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return nil, ErrClosed
	}
	if t.r == nil {
		return nil, io.EOF
	}
	data, _, err := t.r.ReadPacketData()
	return data, err
}

func (t *PcapTransport) Close() error {
	t.mu.Lock()
	t.closed = true
	t.mu.Unlock()
	return nil
}
