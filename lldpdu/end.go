package lldpdu

import "github.com/pkg/errors"

// End marks the end of an LLDPDU. It has no value.
type End struct{}

// ParseEnd decodes an End of LLDPDU TLV.
func ParseEnd(b []byte) (End, error) {
	v, err := record(b, TypeEnd)
	if err != nil {
		return End{}, err
	}
	if len(v) != 0 {
		return End{}, errors.Wrapf(ErrInvalidEncoding, "end of LLDPDU with %d value bytes", len(v))
	}
	return End{}, nil
}

func (End) check() error { return nil }

func (End) Type() Type { return TypeEnd }

func (End) Len() int { return 0 }

func (e End) Bytes() []byte { return marshal(e) }

func (End) String() string { return "EndOfLLDPDUTLV" }

func (End) appendValue(b []byte) []byte { return b }
