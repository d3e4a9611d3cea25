package lldpdu

import "github.com/pkg/errors"

const (
	headerLen = 2

	// MaxValueLen is the largest value the 9-bit length field can describe.
	MaxValueLen = 0x1ff
)

// Wire layout of the header:
//
//	 0                   1
//	 0 1 2 3 4 5 6 7 8 9 0 1 2 3 4 5
//	+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
//	|    type     |     length      |
//	+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
//
// The low bit of the first byte is the ninth (most significant) length bit.
func appendHeader(b []byte, t Type, n int) []byte {
	return append(b, byte(t)<<1|byte(n>>8)&0x01, byte(n))
}

// ReadHeader returns the type and value length of the TLV that starts at b.
func ReadHeader(b []byte) (Type, int, error) {
	if len(b) < headerLen {
		return 0, 0, errors.Wrapf(ErrMalformedHeader, "need %d header bytes, have %d", headerLen, len(b))
	}
	return Type(b[0] >> 1), int(b[1]) | int(b[0]&0x01)<<8, nil
}

// record checks that b holds exactly one TLV of type want and returns its
// value bytes.
func record(b []byte, want Type) ([]byte, error) {
	t, n, err := ReadHeader(b)
	if err != nil {
		return nil, err
	}
	if t != want {
		return nil, errors.Wrapf(ErrTypeMismatch, "got %s, want %s", t, want)
	}
	if len(b)-headerLen != n {
		return nil, errors.Wrapf(ErrMalformedHeader, "%s declares %d value bytes, buffer holds %d", t, n, len(b)-headerLen)
	}
	return b[headerLen:], nil
}

func marshal(t TLV) []byte {
	n := t.Len()
	b := make([]byte, 0, headerLen+n)
	b = appendHeader(b, t.Type(), n)
	return t.appendValue(b)
}
