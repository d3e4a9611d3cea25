package lldpd_test

import (
	"context"
	"net/netip"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	lldpd "github.com/extrame/lldpagent"
	"github.com/extrame/lldpagent/lldpdu"
)

const sampleConfig = `
interface: enp4s0
interval: 2.5
ttl: 120
strict: true
system_name: switch-a
system_description: rack 4
port_description: uplink
capabilities:
  supported: [bridge, router]
  enabled: [bridge]
management_address: 192.0.2.7
`

func TestDefaultConfig(t *testing.T) {
	c, err := lldpd.ParseConfig([]byte("ttl: 60\n"))
	require.NoError(t, err)
	require.Equal(t, lldpd.DefaultConfig(), c)

	c = lldpd.DefaultConfig()
	require.Equal(t, "eth0", c.Interface)
	require.Equal(t, 1.0, c.Interval)
	require.EqualValues(t, 60, c.TTL)
	require.False(t, c.Strict)

	opts, err := c.Options()
	require.NoError(t, err)
	tr := newFakeTransport()
	a, err := lldpd.New(mustMAC(t, "66:6f:6f:62:61:72"), "lo", tr, opts...)
	require.NoError(t, err)
	require.NoError(t, a.Announce())
	require.Equal(t, []byte("\x01\x80\xc2\x00\x00\x0e\x66\x6F\x6F\x62\x61\x72\x88\xcc\x02\x07\x04foobar\x04\x03\x05lo\x06\x02\x00\x3c"), tr.Sent()[0])
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lldpd.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleConfig), 0o600))

	c, err := lldpd.LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, "enp4s0", c.Interface)
	require.Equal(t, 2.5, c.Interval)
	require.EqualValues(t, 120, c.TTL)
	require.True(t, c.Strict)
	require.Equal(t, []string{"bridge", "router"}, c.Capabilities.Supported)

	opts, err := c.Options()
	require.NoError(t, err)

	clock := newFakeClock()
	tr := newFakeTransport(frame(t, nearestCust, neighborMAC, etherTypeLLD, neighborPDU[9:]))
	tr.onReceive = func() { clock.Advance(2 * time.Second) }
	a, err := lldpd.New(mustMAC(t, agentMAC), c.Interface, tr, append(opts, lldpd.WithClock(clock))...)
	require.NoError(t, err)

	// strict: the malformed frame fails the run before any announce
	require.ErrorIs(t, a.Run(context.Background(), false), lldpdu.ErrOrderingViolation)
	require.Empty(t, tr.Sent())

	require.NoError(t, a.Announce())
	pdu, err := lldpdu.ParsePDU(tr.Sent()[0][14:])
	require.NoError(t, err)
	require.Equal(t, 8, pdu.Len())
	require.Equal(t, lldpdu.TTL(120), pdu.At(2))
	require.Equal(t, lldpdu.PortDescription("uplink"), pdu.At(3))
	require.Equal(t, lldpdu.SystemName("switch-a"), pdu.At(4))
	require.Equal(t, lldpdu.SystemDescription("rack 4"), pdu.At(5))
	require.Equal(t, lldpdu.SystemCapabilities{
		Supported: lldpdu.CapabilityBridge | lldpdu.CapabilityRouter,
		Enabled:   lldpdu.CapabilityBridge,
	}, pdu.At(6))
	mgmt, ok := pdu.At(7).(lldpdu.ManagementAddress)
	require.True(t, ok)
	require.Equal(t, netip.MustParseAddr("192.0.2.7"), mgmt.Address)
	require.Equal(t, lldpdu.InterfaceNumberingUnknown, mgmt.Numbering)
}

func TestConfigErrors(t *testing.T) {
	_, err := lldpd.LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	_, err = lldpd.ParseConfig([]byte("ttl: [1, 2"))
	require.Error(t, err)

	for name, doc := range map[string]struct {
		yaml string
		err  error
	}{
		"unknown capability":  {"capabilities: {supported: [toaster]}", lldpdu.ErrInvalidEncoding},
		"enabled unsupported": {"capabilities: {supported: [bridge], enabled: [router]}", lldpdu.ErrCapabilityMismatch},
		"zoned address":       {"management_address: fe80::1%eth0", lldpdu.ErrInvalidEncoding},
	} {
		c, err := lldpd.ParseConfig([]byte(doc.yaml))
		require.NoError(t, err, name)
		_, err = c.Options()
		require.ErrorIs(t, err, doc.err, name)
	}

	c, err := lldpd.ParseConfig([]byte("management_address: not-an-ip"))
	require.NoError(t, err)
	_, err = c.Options()
	require.Error(t, err)

	c, err = lldpd.ParseConfig([]byte("interval: 0"))
	require.NoError(t, err)
	opts, err := c.Options()
	require.NoError(t, err)
	_, err = lldpd.New(mustMAC(t, agentMAC), "lo", newFakeTransport(), opts...)
	require.Error(t, err)
}
