package lldpdu

import (
	"encoding/binary"
	"fmt"
	"net/netip"

	"github.com/pkg/errors"
)

// InterfaceNumbering says how ManagementAddress.InterfaceNumber is assigned.
type InterfaceNumbering uint8

const (
	InterfaceNumberingUnknown    InterfaceNumbering = 1
	InterfaceNumberingIfIndex    InterfaceNumbering = 2
	InterfaceNumberingSystemPort InterfaceNumbering = 3
)

func (n InterfaceNumbering) valid() bool {
	return n >= InterfaceNumberingUnknown && n <= InterfaceNumberingSystemPort
}

const maxOIDLen = 128

// ManagementAddress advertises an address the sending system can be managed
// through. The OID is carried as opaque bytes.
//
//	+--------+--------+---------+--------+---------+-----------+---------+--------+
//	| type=8 | length | addrlen | family | address | numbering | ifindex | oidlen |  oid
//	+--------+--------+---------+--------+---------+-----------+---------+--------+
//	                    1 byte    1 byte   4 or 16    1 byte     4 bytes  1 byte   0-128
//
// addrlen counts the family byte and the address.
type ManagementAddress struct {
	Address         netip.Addr
	InterfaceNumber uint32
	Numbering       InterfaceNumbering
	OID             []byte
}

// NewManagementAddress validates the address, the numbering subtype and the
// OID length. An empty oid is stored as nil.
func NewManagementAddress(addr netip.Addr, ifnum uint32, numbering InterfaceNumbering, oid []byte) (ManagementAddress, error) {
	if err := checkAddr(addr); err != nil {
		return ManagementAddress{}, errors.Wrap(err, "management address")
	}
	if !numbering.valid() {
		return ManagementAddress{}, errors.Wrapf(ErrInvalidSubtype, "interface numbering subtype %d", numbering)
	}
	if len(oid) > maxOIDLen {
		return ManagementAddress{}, errors.Wrapf(ErrInvalidEncoding, "OID of %d bytes, max %d", len(oid), maxOIDLen)
	}
	return ManagementAddress{
		Address:         addr,
		InterfaceNumber: ifnum,
		Numbering:       numbering,
		OID:             append([]byte(nil), oid...),
	}, nil
}

// ParseManagementAddress decodes a complete Management Address TLV.
func ParseManagementAddress(b []byte) (ManagementAddress, error) {
	v, err := record(b, TypeManagementAddress)
	if err != nil {
		return ManagementAddress{}, err
	}
	if len(v) < 1 {
		return ManagementAddress{}, errors.Wrap(ErrInvalidEncoding, "empty management address")
	}
	n := int(v[0])
	if len(v) < 1+n+6 {
		return ManagementAddress{}, errors.Wrapf(ErrInvalidEncoding, "management address value of %d bytes with address length %d", len(v), n)
	}
	addr, err := parseAddr(v[1 : 1+n])
	if err != nil {
		return ManagementAddress{}, errors.Wrap(err, "management address")
	}
	rest := v[1+n:]
	numbering := InterfaceNumbering(rest[0])
	ifnum := binary.BigEndian.Uint32(rest[1:5])
	oidLen := int(rest[5])
	oid := rest[6:]
	if oidLen > maxOIDLen || len(oid) != oidLen {
		return ManagementAddress{}, errors.Wrapf(ErrInvalidEncoding, "OID length %d with %d bytes left", oidLen, len(oid))
	}
	return NewManagementAddress(addr, ifnum, numbering, oid)
}

func (m ManagementAddress) check() error {
	_, err := NewManagementAddress(m.Address, m.InterfaceNumber, m.Numbering, m.OID)
	return err
}

func (m ManagementAddress) Type() Type { return TypeManagementAddress }

func (m ManagementAddress) Len() int {
	return 1 + addrLen(m.Address) + 1 + 4 + 1 + len(m.OID)
}

func (m ManagementAddress) Bytes() []byte { return marshal(m) }

func (m ManagementAddress) String() string {
	return fmt.Sprintf("ManagementAddressTLV(\"%s\", %d, \"%X\")", m.Address, m.InterfaceNumber, m.OID)
}

func (m ManagementAddress) appendValue(b []byte) []byte {
	b = append(b, byte(addrLen(m.Address)))
	b = appendAddr(b, m.Address)
	b = append(b, byte(m.Numbering))
	b = binary.BigEndian.AppendUint32(b, m.InterfaceNumber)
	b = append(b, byte(len(m.OID)))
	return append(b, m.OID...)
}
