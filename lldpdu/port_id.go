package lldpdu

import (
	"fmt"

	"github.com/pkg/errors"
)

// PortIDSubtype says how the sending port is identified.
type PortIDSubtype uint8

// Port ID subtypes, IEEE 802.1AB table 8-3.
const (
	PortIDSubtypeInterfaceAlias PortIDSubtype = 1
	PortIDSubtypePortComponent  PortIDSubtype = 2
	PortIDSubtypeMACAddress     PortIDSubtype = 3
	PortIDSubtypeNetworkAddress PortIDSubtype = 4
	PortIDSubtypeInterfaceName  PortIDSubtype = 5
	PortIDSubtypeAgentCircuitID PortIDSubtype = 6
	PortIDSubtypeLocal          PortIDSubtype = 7
)

func (s PortIDSubtype) valid() bool {
	return s >= PortIDSubtypeInterfaceAlias && s <= PortIDSubtypeLocal
}

// PortID identifies the port the LLDPDU was sent from. Same layout as
// ChassisID with type code 2.
type PortID struct {
	Subtype PortIDSubtype
	ID      ID
}

// NewPortID validates that id fits subtype: a MAC for PortIDSubtypeMACAddress,
// a NetworkAddress for PortIDSubtypeNetworkAddress, a Name otherwise.
func NewPortID(subtype PortIDSubtype, id ID) (PortID, error) {
	if !subtype.valid() {
		return PortID{}, errors.Wrapf(ErrInvalidSubtype, "port id subtype %d", subtype)
	}
	err := checkID(uint8(subtype), uint8(PortIDSubtypeMACAddress), uint8(PortIDSubtypeNetworkAddress), id)
	if err != nil {
		return PortID{}, errors.Wrap(err, "port id")
	}
	return PortID{Subtype: subtype, ID: id}, nil
}

// ParsePortID decodes a complete Port ID TLV.
func ParsePortID(b []byte) (PortID, error) {
	v, err := record(b, TypePortID)
	if err != nil {
		return PortID{}, err
	}
	if len(v) < 2 {
		return PortID{}, errors.Wrapf(ErrInvalidEncoding, "port id value of %d bytes", len(v))
	}
	subtype := PortIDSubtype(v[0])
	if !subtype.valid() {
		return PortID{}, errors.Wrapf(ErrInvalidSubtype, "port id subtype %d", subtype)
	}
	id, err := parseID(uint8(subtype), uint8(PortIDSubtypeMACAddress), uint8(PortIDSubtypeNetworkAddress), v[1:])
	if err != nil {
		return PortID{}, errors.Wrap(err, "port id")
	}
	return PortID{Subtype: subtype, ID: id}, nil
}

func (p PortID) check() error {
	_, err := NewPortID(p.Subtype, p.ID)
	return err
}

func (p PortID) Type() Type { return TypePortID }

func (p PortID) Len() int { return 1 + p.ID.idLen() }

func (p PortID) Bytes() []byte { return marshal(p) }

func (p PortID) String() string {
	return fmt.Sprintf("PortIdTLV(%d, \"%s\")", uint8(p.Subtype), p.ID)
}

func (p PortID) appendValue(b []byte) []byte {
	return p.ID.appendID(append(b, byte(p.Subtype)))
}
