package lldpdu

import (
	"fmt"

	"github.com/pkg/errors"
)

// ChassisIDSubtype says how a chassis is identified.
type ChassisIDSubtype uint8

// Chassis ID subtypes, IEEE 802.1AB table 8-2.
const (
	ChassisIDSubtypeChassisComponent ChassisIDSubtype = 1
	ChassisIDSubtypeInterfaceAlias   ChassisIDSubtype = 2
	ChassisIDSubtypePortComponent    ChassisIDSubtype = 3
	ChassisIDSubtypeMACAddress       ChassisIDSubtype = 4
	ChassisIDSubtypeNetworkAddress   ChassisIDSubtype = 5
	ChassisIDSubtypeInterfaceName    ChassisIDSubtype = 6
	ChassisIDSubtypeLocal            ChassisIDSubtype = 7
)

func (s ChassisIDSubtype) valid() bool {
	return s >= ChassisIDSubtypeChassisComponent && s <= ChassisIDSubtypeLocal
}

// ChassisID identifies the chassis of the sending agent. It is the first
// TLV of every LLDPDU.
//
//	+--------+--------+---------+-------------------+
//	| type=1 | length | subtype | id (1-255 bytes)  |
//	+--------+--------+---------+-------------------+
type ChassisID struct {
	Subtype ChassisIDSubtype
	ID      ID
}

// NewChassisID validates that id fits subtype: a MAC for
// ChassisIDSubtypeMACAddress, a NetworkAddress for
// ChassisIDSubtypeNetworkAddress, a Name otherwise.
func NewChassisID(subtype ChassisIDSubtype, id ID) (ChassisID, error) {
	if !subtype.valid() {
		return ChassisID{}, errors.Wrapf(ErrInvalidSubtype, "chassis id subtype %d", subtype)
	}
	err := checkID(uint8(subtype), uint8(ChassisIDSubtypeMACAddress), uint8(ChassisIDSubtypeNetworkAddress), id)
	if err != nil {
		return ChassisID{}, errors.Wrap(err, "chassis id")
	}
	return ChassisID{Subtype: subtype, ID: id}, nil
}

// ParseChassisID decodes a complete Chassis ID TLV.
func ParseChassisID(b []byte) (ChassisID, error) {
	v, err := record(b, TypeChassisID)
	if err != nil {
		return ChassisID{}, err
	}
	if len(v) < 2 {
		return ChassisID{}, errors.Wrapf(ErrInvalidEncoding, "chassis id value of %d bytes", len(v))
	}
	subtype := ChassisIDSubtype(v[0])
	if !subtype.valid() {
		return ChassisID{}, errors.Wrapf(ErrInvalidSubtype, "chassis id subtype %d", subtype)
	}
	id, err := parseID(uint8(subtype), uint8(ChassisIDSubtypeMACAddress), uint8(ChassisIDSubtypeNetworkAddress), v[1:])
	if err != nil {
		return ChassisID{}, errors.Wrap(err, "chassis id")
	}
	return ChassisID{Subtype: subtype, ID: id}, nil
}

func (c ChassisID) check() error {
	_, err := NewChassisID(c.Subtype, c.ID)
	return err
}

func (c ChassisID) Type() Type { return TypeChassisID }

func (c ChassisID) Len() int { return 1 + c.ID.idLen() }

func (c ChassisID) Bytes() []byte { return marshal(c) }

func (c ChassisID) String() string {
	return fmt.Sprintf("ChassisIdTLV(%d, \"%s\")", uint8(c.Subtype), c.ID)
}

func (c ChassisID) appendValue(b []byte) []byte {
	return c.ID.appendID(append(b, byte(c.Subtype)))
}
