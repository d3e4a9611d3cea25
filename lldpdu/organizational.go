package lldpdu

import (
	"fmt"

	"github.com/pkg/errors"
)

const maxInfoLen = 507

// OrganizationallySpecific carries vendor defined data, identified by an OUI
// and a vendor subtype. Info is never interpreted.
type OrganizationallySpecific struct {
	OUI     [3]byte
	Subtype uint8
	Info    []byte
}

// NewOrganizationallySpecific accepts up to 507 bytes of info. An empty info
// is stored as nil.
func NewOrganizationallySpecific(oui [3]byte, subtype uint8, info []byte) (OrganizationallySpecific, error) {
	if len(info) > maxInfoLen {
		return OrganizationallySpecific{}, errors.Wrapf(ErrInvalidEncoding, "organizationally specific info of %d bytes, max %d", len(info), maxInfoLen)
	}
	return OrganizationallySpecific{
		OUI:     oui,
		Subtype: subtype,
		Info:    append([]byte(nil), info...),
	}, nil
}

// ParseOrganizationallySpecific decodes a complete Organizationally Specific
// TLV.
func ParseOrganizationallySpecific(b []byte) (OrganizationallySpecific, error) {
	v, err := record(b, TypeOrganizationallySpecific)
	if err != nil {
		return OrganizationallySpecific{}, err
	}
	if len(v) < 4 {
		return OrganizationallySpecific{}, errors.Wrapf(ErrInvalidEncoding, "organizationally specific value of %d bytes", len(v))
	}
	return NewOrganizationallySpecific([3]byte(v[0:3]), v[3], v[4:])
}

func (o OrganizationallySpecific) check() error {
	_, err := NewOrganizationallySpecific(o.OUI, o.Subtype, o.Info)
	return err
}

func (o OrganizationallySpecific) Type() Type { return TypeOrganizationallySpecific }

func (o OrganizationallySpecific) Len() int { return 4 + len(o.Info) }

func (o OrganizationallySpecific) Bytes() []byte { return marshal(o) }

func (o OrganizationallySpecific) String() string {
	return fmt.Sprintf("OrganizationallySpecificTLV(\"%X\", %d, \"%X\")", o.OUI[:], o.Subtype, o.Info)
}

func (o OrganizationallySpecific) appendValue(b []byte) []byte {
	return append(append(append(b, o.OUI[:]...), o.Subtype), o.Info...)
}
