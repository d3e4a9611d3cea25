package lldpd_test

import (
	"io"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	lldpd "github.com/extrame/lldpagent"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

type received struct {
	frame []byte
	err   error
}

// fakeTransport hands out queued frames, then io.EOF, or blocks until Close
// when block is set.
type fakeTransport struct {
	mu      sync.Mutex
	queue   []received
	sent    [][]byte
	sendErr error
	block   bool
	closed  bool
	done    chan struct{}

	// onReceive runs at the start of every Receive.
	onReceive func()
}

func newFakeTransport(frames ...[]byte) *fakeTransport {
	t := &fakeTransport{done: make(chan struct{})}
	for _, f := range frames {
		t.queue = append(t.queue, received{frame: f})
	}
	return t
}

func (t *fakeTransport) fail(err error) *fakeTransport {
	t.queue = append(t.queue, received{err: err})
	return t
}

func (t *fakeTransport) Send(frame []byte) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.sendErr != nil {
		return t.sendErr
	}
	t.sent = append(t.sent, append([]byte(nil), frame...))
	return nil
}

func (t *fakeTransport) Receive() ([]byte, error) {
	if t.onReceive != nil {
		t.onReceive()
	}
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return nil, lldpd.ErrClosed
	}
	if len(t.queue) > 0 {
		r := t.queue[0]
		t.queue = t.queue[1:]
		t.mu.Unlock()
		return r.frame, r.err
	}
	block := t.block
	t.mu.Unlock()
	if !block {
		return nil, io.EOF
	}
	<-t.done
	return nil, lldpd.ErrClosed
}

func (t *fakeTransport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.closed {
		t.closed = true
		close(t.done)
	}
	return nil
}

func (t *fakeTransport) Sent() [][]byte {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([][]byte(nil), t.sent...)
}

type timeoutError struct{}

func (timeoutError) Error() string { return "i/o timeout" }
func (timeoutError) Timeout() bool { return true }

type recordLogger struct {
	mu    sync.Mutex
	lines []string
}

func (l *recordLogger) Log(line string) {
	l.mu.Lock()
	l.lines = append(l.lines, line)
	l.mu.Unlock()
}

func (l *recordLogger) Lines() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.lines...)
}

func mustMAC(t *testing.T, s string) net.HardwareAddr {
	mac, err := net.ParseMAC(s)
	require.NoError(t, err)
	return mac
}

// frame builds an untagged Ethernet frame.
func frame(t *testing.T, dst, src string, etherType uint16, payload []byte) []byte {
	b := append([]byte(nil), mustMAC(t, dst)...)
	b = append(b, mustMAC(t, src)...)
	b = append(b, byte(etherType>>8), byte(etherType))
	return append(b, payload...)
}
