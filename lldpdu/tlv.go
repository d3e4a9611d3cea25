package lldpdu

import "github.com/pkg/errors"

// TLV is one record of an LLDPDU. The set of implementations is closed: it is
// exactly the kinds declared in this package.
type TLV interface {
	// Type is the code written into the header.
	Type() Type
	// Len is the number of value bytes following the 2-byte header.
	Len() int
	// Bytes is the complete wire encoding, header included.
	Bytes() []byte
	// String renders the TLV for logging, e.g. TtlTLV(120).
	String() string

	// check repeats the constructor validation, for values built as
	// literals.
	check() error
	appendValue(b []byte) []byte
}

// Parse decodes a single TLV. b must hold exactly one record.
func Parse(b []byte) (TLV, error) {
	t, _, err := ReadHeader(b)
	if err != nil {
		return nil, err
	}
	switch t {
	case TypeEnd:
		return parsed(ParseEnd(b))
	case TypeChassisID:
		return parsed(ParseChassisID(b))
	case TypePortID:
		return parsed(ParsePortID(b))
	case TypeTTL:
		return parsed(ParseTTL(b))
	case TypePortDescription:
		return parsed(ParsePortDescription(b))
	case TypeSystemName:
		return parsed(ParseSystemName(b))
	case TypeSystemDescription:
		return parsed(ParseSystemDescription(b))
	case TypeSystemCapabilities:
		return parsed(ParseSystemCapabilities(b))
	case TypeManagementAddress:
		return parsed(ParseManagementAddress(b))
	case TypeOrganizationallySpecific:
		return parsed(ParseOrganizationallySpecific(b))
	}
	return nil, errors.Wrapf(ErrUnknownType, "type code %d", uint8(t))
}

func parsed[T TLV](t T, err error) (TLV, error) {
	if err != nil {
		return nil, err
	}
	return t, nil
}
