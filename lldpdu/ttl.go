package lldpdu

import (
	"encoding/binary"
	"fmt"

	"github.com/pkg/errors"
)

// TTL is the number of seconds a receiver should keep the sender's
// information. Mandatory, always the third TLV.
type TTL uint16

// ParseTTL decodes a complete Time To Live TLV.
func ParseTTL(b []byte) (TTL, error) {
	v, err := record(b, TypeTTL)
	if err != nil {
		return 0, err
	}
	if len(v) != 2 {
		return 0, errors.Wrapf(ErrInvalidEncoding, "ttl value of %d bytes", len(v))
	}
	return TTL(binary.BigEndian.Uint16(v)), nil
}

func (TTL) check() error { return nil }

func (t TTL) Type() Type { return TypeTTL }

func (t TTL) Len() int { return 2 }

func (t TTL) Bytes() []byte { return marshal(t) }

func (t TTL) String() string { return fmt.Sprintf("TtlTLV(%d)", uint16(t)) }

func (t TTL) appendValue(b []byte) []byte {
	return binary.BigEndian.AppendUint16(b, uint16(t))
}
