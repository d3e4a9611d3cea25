package lldpdu

import (
	"strings"

	"github.com/pkg/errors"
)

// MaxSize is the largest encoded LLDPDU, the payload of one untagged frame.
const MaxSize = 1500

// mandatory holds the types that must open every LLDPDU, in order.
var mandatory = [...]Type{TypeChassisID, TypePortID, TypeTTL}

// PDU is an LLDP data unit: Chassis ID, Port ID and TTL, followed by optional
// TLVs and at most one End TLV. Every Append keeps that shape and the size
// limit, so a PDU is valid at all times. A PDU is not safe for concurrent use.
type PDU struct {
	tlvs       []TLV
	size       int
	terminated bool
}

// NewPDU appends tlvs in order to an empty PDU.
func NewPDU(tlvs ...TLV) (*PDU, error) {
	p := &PDU{}
	for i, t := range tlvs {
		if err := p.Append(t); err != nil {
			return nil, errors.Wrapf(err, "tlv %d", i)
		}
	}
	return p, nil
}

// ParsePDU decodes a buffer of back to back TLVs, running each through
// Append. Any bad record fails the whole buffer.
func ParsePDU(b []byte) (*PDU, error) {
	p := &PDU{}
	for off := 0; off < len(b); {
		_, n, err := ReadHeader(b[off:])
		if err != nil {
			return nil, errors.Wrapf(err, "offset %d", off)
		}
		end := off + headerLen + n
		if end > len(b) {
			return nil, errors.Wrapf(ErrMalformedHeader, "offset %d declares %d value bytes, %d left", off, n, len(b)-off-headerLen)
		}
		t, err := Parse(b[off:end])
		if err != nil {
			return nil, errors.Wrapf(err, "offset %d", off)
		}
		if err := p.Append(t); err != nil {
			return nil, errors.Wrapf(err, "offset %d", off)
		}
		off = end
	}
	return p, nil
}

// Append adds t at the end of the PDU. It fails, leaving the PDU unchanged,
// when t does not pass its constructor's validation, or when t would break the mandatory prefix, repeat a mandatory TLV, follow
// the End TLV or push the encoded size past MaxSize.
func (p *PDU) Append(t TLV) error {
	if t == nil {
		return errors.Wrap(ErrInvalidEncoding, "nil TLV")
	}
	if err := t.check(); err != nil {
		return errors.Wrapf(err, "%s", t.Type())
	}
	if p.terminated {
		return errors.Wrapf(ErrTerminatorPresent, "cannot append %s", t.Type())
	}
	typ := t.Type()
	pos := len(p.tlvs)
	switch {
	case pos < len(mandatory) && typ != mandatory[pos]:
		if p.has(typ) {
			return errors.Wrapf(ErrDuplicateMandatory, "%s at position %d", typ, pos)
		}
		return errors.Wrapf(ErrOrderingViolation, "%s at position %d, want %s", typ, pos, mandatory[pos])
	case pos >= len(mandatory) && isMandatory(typ):
		return errors.Wrapf(ErrDuplicateMandatory, "%s at position %d", typ, pos)
	}
	n := headerLen + t.Len()
	if p.size+n > MaxSize {
		return errors.Wrapf(ErrSizeExceeded, "%s of %d bytes on top of %d", typ, n, p.size)
	}
	p.tlvs = append(p.tlvs, t)
	p.size += n
	p.terminated = typ == TypeEnd
	return nil
}

func (p *PDU) has(typ Type) bool {
	for _, t := range p.tlvs {
		if t.Type() == typ {
			return true
		}
	}
	return false
}

func isMandatory(typ Type) bool {
	for _, m := range mandatory {
		if m == typ {
			return true
		}
	}
	return false
}

// Complete reports whether the End TLV has been appended.
func (p *PDU) Complete() bool { return p.terminated }

// Len is the number of TLVs.
func (p *PDU) Len() int { return len(p.tlvs) }

// At returns the i-th TLV.
func (p *PDU) At(i int) TLV { return p.tlvs[i] }

// TLVs returns a copy of the TLV list.
func (p *PDU) TLVs() []TLV { return append([]TLV(nil), p.tlvs...) }

// Size is the encoded length in bytes.
func (p *PDU) Size() int { return p.size }

// Bytes concatenates the encoding of every TLV.
func (p *PDU) Bytes() []byte {
	b := make([]byte, 0, p.size)
	for _, t := range p.tlvs {
		b = appendHeader(b, t.Type(), t.Len())
		b = t.appendValue(b)
	}
	return b
}

func (p *PDU) String() string {
	parts := make([]string, len(p.tlvs))
	for i, t := range p.tlvs {
		parts[i] = t.String()
	}
	return "LLDPDU(" + strings.Join(parts, ", ") + ")"
}

// TrimPadding cuts the zero fill that follows the End TLV in frames padded
// to the Ethernet minimum. b is returned unchanged when it has no End TLV or
// when anything but zeros follows it.
func TrimPadding(b []byte) []byte {
	for off := 0; off < len(b); {
		t, n, err := ReadHeader(b[off:])
		if err != nil {
			return b
		}
		end := off + headerLen + n
		if end > len(b) {
			return b
		}
		if t == TypeEnd {
			for _, c := range b[end:] {
				if c != 0 {
					return b
				}
			}
			return b[:end]
		}
		off = end
	}
	return b
}
