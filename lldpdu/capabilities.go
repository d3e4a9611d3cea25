package lldpdu

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Capability is a bit in the system capabilities bitmaps.
type Capability uint16

const (
	CapabilityOther Capability = 1 << iota
	CapabilityRepeater
	CapabilityBridge
	CapabilityWLANAccessPoint
	CapabilityRouter
	CapabilityTelephone
	CapabilityDOCSISCableDevice
	CapabilityStationOnly
	CapabilityCVLANComponent
	CapabilitySVLANComponent
	CapabilityTwoPortMACRelay
)

var capabilityNames = []struct {
	c    Capability
	name string
}{
	{CapabilityOther, "other"},
	{CapabilityRepeater, "repeater"},
	{CapabilityBridge, "bridge"},
	{CapabilityWLANAccessPoint, "wlan"},
	{CapabilityRouter, "router"},
	{CapabilityTelephone, "telephone"},
	{CapabilityDOCSISCableDevice, "docsis"},
	{CapabilityStationOnly, "station"},
	{CapabilityCVLANComponent, "cvlan"},
	{CapabilitySVLANComponent, "svlan"},
	{CapabilityTwoPortMACRelay, "tpmr"},
}

// ParseCapability maps a short name such as "bridge" or "router" to its bit.
func ParseCapability(name string) (Capability, error) {
	for _, n := range capabilityNames {
		if strings.EqualFold(n.name, name) {
			return n.c, nil
		}
	}
	return 0, errors.Wrapf(ErrInvalidEncoding, "unknown capability %q", name)
}

// String joins the names of the set bits with "|".
func (c Capability) String() string {
	var parts []string
	for _, n := range capabilityNames {
		if c&n.c != 0 {
			parts = append(parts, n.name)
			c &^= n.c
		}
	}
	if c != 0 {
		parts = append(parts, fmt.Sprintf("%#04x", uint16(c)))
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "|")
}

// SystemCapabilities lists what a system can do and which of those functions
// are turned on. Every enabled bit is also a supported bit.
//
//	+--------+--------+-----------+-----------+
//	| type=7 | len=4  | supported |  enabled  |
//	+--------+--------+-----------+-----------+
type SystemCapabilities struct {
	Supported Capability
	Enabled   Capability
}

// NewSystemCapabilities fails with ErrCapabilityMismatch when enabled has a
// bit that supported lacks.
func NewSystemCapabilities(supported, enabled Capability) (SystemCapabilities, error) {
	if enabled&^supported != 0 {
		return SystemCapabilities{}, errors.Wrapf(ErrCapabilityMismatch, "supported %#04x, enabled %#04x", uint16(supported), uint16(enabled))
	}
	return SystemCapabilities{Supported: supported, Enabled: enabled}, nil
}

// ParseSystemCapabilities decodes a complete System Capabilities TLV.
func ParseSystemCapabilities(b []byte) (SystemCapabilities, error) {
	v, err := record(b, TypeSystemCapabilities)
	if err != nil {
		return SystemCapabilities{}, err
	}
	if len(v) != 4 {
		return SystemCapabilities{}, errors.Wrapf(ErrInvalidEncoding, "system capabilities value of %d bytes", len(v))
	}
	return NewSystemCapabilities(
		Capability(binary.BigEndian.Uint16(v[0:2])),
		Capability(binary.BigEndian.Uint16(v[2:4])),
	)
}

// Value packs both bitmaps, supported in the high half.
func (c SystemCapabilities) Value() uint32 {
	return uint32(c.Supported)<<16 | uint32(c.Enabled)
}

// Supports reports whether every bit of mask is supported.
func (c SystemCapabilities) Supports(mask Capability) bool {
	return mask&^c.Supported == 0
}

// Active reports whether every bit of mask is enabled.
func (c SystemCapabilities) Active(mask Capability) bool {
	return mask&^c.Enabled == 0
}

func (c SystemCapabilities) check() error {
	_, err := NewSystemCapabilities(c.Supported, c.Enabled)
	return err
}

func (c SystemCapabilities) Type() Type { return TypeSystemCapabilities }

func (c SystemCapabilities) Len() int { return 4 }

func (c SystemCapabilities) Bytes() []byte { return marshal(c) }

func (c SystemCapabilities) String() string {
	return fmt.Sprintf("SystemCapabilitiesTLV(%d, %d)", uint16(c.Supported), uint16(c.Enabled))
}

func (c SystemCapabilities) appendValue(b []byte) []byte {
	return binary.BigEndian.AppendUint32(b, c.Value())
}
