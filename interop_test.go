package lldpd_test

import (
	"net"
	"testing"
	"time"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/mdlayher/ethernet"
	"github.com/mdlayher/lldp"
	"github.com/stretchr/testify/require"

	lldpd "github.com/extrame/lldpagent"
	"github.com/extrame/lldpagent/lldpdu"
)

// Announces must decode with an independent LLDP implementation.
func TestAnnounceDecodesWithGopacket(t *testing.T) {
	name, err := lldpdu.NewSystemName("switch-a")
	require.NoError(t, err)
	desc, err := lldpdu.NewPortDescription("uplink")
	require.NoError(t, err)

	tr := newFakeTransport()
	a, err := lldpd.New(mustMAC(t, "66:6f:6f:62:61:72"), "eth0", tr,
		lldpd.TTL(120), lldpd.WithTLVs(desc, name, lldpdu.End{}))
	require.NoError(t, err)
	require.NoError(t, a.Announce())
	sent := tr.Sent()
	require.Len(t, sent, 1)

	p := gopacket.NewPacket(sent[0], layers.LayerTypeEthernet, gopacket.Default)
	require.Nil(t, p.ErrorLayer())

	eth, ok := p.Layer(layers.LayerTypeEthernet).(*layers.Ethernet)
	require.True(t, ok)
	require.Equal(t, layers.EthernetTypeLinkLayerDiscovery, eth.EthernetType)
	require.Equal(t, net.HardwareAddr{0x01, 0x80, 0xc2, 0x00, 0x00, 0x0e}, eth.DstMAC)

	lld, ok := p.Layer(layers.LayerTypeLinkLayerDiscovery).(*layers.LinkLayerDiscovery)
	require.True(t, ok)
	require.EqualValues(t, lldpdu.ChassisIDSubtypeMACAddress, lld.ChassisID.Subtype)
	require.Equal(t, []byte("foobar"), lld.ChassisID.ID)
	require.EqualValues(t, lldpdu.PortIDSubtypeInterfaceName, lld.PortID.Subtype)
	require.Equal(t, []byte("eth0"), lld.PortID.ID)
	require.EqualValues(t, 120, lld.TTL)

	info, ok := p.Layer(layers.LayerTypeLinkLayerDiscoveryInfo).(*layers.LinkLayerDiscoveryInfo)
	require.True(t, ok)
	require.Equal(t, "switch-a", info.SysName)
	require.Equal(t, "uplink", info.PortDescription)
}

// The same announce read back by the LLDP frame decoder used with raw
// sockets.
func TestAnnounceDecodesWithLLDPFrame(t *testing.T) {
	name, err := lldpdu.NewSystemName("switch-a")
	require.NoError(t, err)

	tr := newFakeTransport()
	a, err := lldpd.New(mustMAC(t, "66:6f:6f:62:61:72"), "eth0", tr,
		lldpd.TTL(120), lldpd.WithTLVs(name, lldpdu.End{}))
	require.NoError(t, err)
	require.NoError(t, a.Announce())
	sent := tr.Sent()
	require.Len(t, sent, 1)

	var eth ethernet.Frame
	require.NoError(t, eth.UnmarshalBinary(sent[0]))
	require.True(t, eth.EtherType == lldp.EtherType)

	var f lldp.Frame
	require.NoError(t, f.UnmarshalBinary(eth.Payload))
	require.EqualValues(t, lldpdu.ChassisIDSubtypeMACAddress, f.ChassisID.Subtype)
	require.Equal(t, []byte("foobar"), f.ChassisID.ID)
	require.EqualValues(t, lldpdu.PortIDSubtypeInterfaceName, f.PortID.Subtype)
	require.Equal(t, []byte("eth0"), f.PortID.ID)
	require.Equal(t, 120*time.Second, f.TTL)
	require.Len(t, f.Optional, 1)
	require.EqualValues(t, lldpdu.TypeSystemName, f.Optional[0].Type)
	require.Equal(t, []byte("switch-a"), f.Optional[0].Value)
}
