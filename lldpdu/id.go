package lldpdu

import (
	"net"
	"net/netip"
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"
)

// IANA address family numbers used in front of network addresses.
const (
	familyIPv4 = 1
	familyIPv6 = 2
)

const maxIDLen = 255

// ID is the identifier carried by Chassis ID and Port ID TLVs: a MAC, a
// NetworkAddress or a Name. Which one is allowed follows from the subtype.
type ID interface {
	String() string

	idLen() int
	appendID(b []byte) []byte
}

// MAC is a 6-byte IEEE 802 address.
type MAC [6]byte

// MACFrom copies a 6-byte hardware address into a MAC.
func MACFrom(hw net.HardwareAddr) (MAC, error) {
	var m MAC
	if len(hw) != len(m) {
		return m, errors.Wrapf(ErrInvalidEncoding, "MAC address of %d bytes", len(hw))
	}
	copy(m[:], hw)
	return m, nil
}

// HardwareAddr returns m as a net.HardwareAddr.
func (m MAC) HardwareAddr() net.HardwareAddr {
	return net.HardwareAddr(append([]byte(nil), m[:]...))
}

func (m MAC) String() string { return strings.ToUpper(net.HardwareAddr(m[:]).String()) }

func (m MAC) idLen() int { return len(m) }

func (m MAC) appendID(b []byte) []byte { return append(b, m[:]...) }

// NetworkAddress is an IPv4 or IPv6 address. On the wire it is preceded by
// its address family number.
type NetworkAddress struct {
	netip.Addr
}

func (a NetworkAddress) idLen() int { return addrLen(a.Addr) }

func (a NetworkAddress) appendID(b []byte) []byte { return appendAddr(b, a.Addr) }

// Name is a UTF-8 identifier, used by every subtype that is neither a MAC
// nor a network address.
type Name string

func (n Name) String() string { return string(n) }

func (n Name) idLen() int { return len(n) }

func (n Name) appendID(b []byte) []byte { return append(b, n...) }

// checkID validates that id is the variant the subtype calls for.
func checkID(subtype, macSubtype, addrSubtype uint8, id ID) error {
	switch v := id.(type) {
	case MAC:
		if subtype != macSubtype {
			return errors.Wrapf(ErrInvalidSubtype, "subtype %d cannot carry a MAC address", subtype)
		}
	case NetworkAddress:
		if subtype != addrSubtype {
			return errors.Wrapf(ErrInvalidSubtype, "subtype %d cannot carry a network address", subtype)
		}
		return checkAddr(v.Addr)
	case Name:
		if subtype == macSubtype || subtype == addrSubtype {
			return errors.Wrapf(ErrInvalidSubtype, "subtype %d cannot carry a name", subtype)
		}
		return checkName(string(v))
	default:
		return errors.Wrapf(ErrInvalidEncoding, "unsupported id %T", id)
	}
	return nil
}

func parseID(subtype, macSubtype, addrSubtype uint8, b []byte) (ID, error) {
	switch subtype {
	case macSubtype:
		var m MAC
		if len(b) != len(m) {
			return nil, errors.Wrapf(ErrInvalidEncoding, "MAC address of %d bytes", len(b))
		}
		copy(m[:], b)
		return m, nil
	case addrSubtype:
		a, err := parseAddr(b)
		if err != nil {
			return nil, err
		}
		return NetworkAddress{a}, nil
	}
	s := string(b)
	if err := checkName(s); err != nil {
		return nil, err
	}
	return Name(s), nil
}

func checkName(s string) error {
	if len(s) == 0 || len(s) > maxIDLen {
		return errors.Wrapf(ErrInvalidEncoding, "id of %d bytes, want 1-%d", len(s), maxIDLen)
	}
	if !utf8.ValidString(s) {
		return errors.Wrap(ErrInvalidEncoding, "id is not valid UTF-8")
	}
	return nil
}

func checkAddr(a netip.Addr) error {
	if !a.IsValid() {
		return errors.Wrap(ErrInvalidEncoding, "invalid IP address")
	}
	if a.Zone() != "" {
		return errors.Wrapf(ErrInvalidEncoding, "zoned address %s", a)
	}
	return nil
}

// addrLen is the encoded size of a, family byte included.
func addrLen(a netip.Addr) int {
	if a.Is4() {
		return 1 + 4
	}
	return 1 + 16
}

func appendAddr(b []byte, a netip.Addr) []byte {
	if a.Is4() {
		v := a.As4()
		return append(append(b, familyIPv4), v[:]...)
	}
	v := a.As16()
	return append(append(b, familyIPv6), v[:]...)
}

// parseAddr decodes a family byte followed by exactly that family's address.
func parseAddr(b []byte) (netip.Addr, error) {
	if len(b) == 0 {
		return netip.Addr{}, errors.Wrap(ErrInvalidEncoding, "missing address family")
	}
	switch b[0] {
	case familyIPv4:
		if len(b) != 1+4 {
			return netip.Addr{}, errors.Wrapf(ErrInvalidEncoding, "IPv4 address of %d bytes", len(b)-1)
		}
		return netip.AddrFrom4([4]byte(b[1:])), nil
	case familyIPv6:
		if len(b) != 1+16 {
			return netip.Addr{}, errors.Wrapf(ErrInvalidEncoding, "IPv6 address of %d bytes", len(b)-1)
		}
		return netip.AddrFrom16([16]byte(b[1:])), nil
	}
	return netip.Addr{}, errors.Wrapf(ErrInvalidEncoding, "address family %d", b[0])
}
