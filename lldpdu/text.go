package lldpdu

import (
	"fmt"
	"unicode/utf8"

	"github.com/pkg/errors"
)

const maxTextLen = 255

// PortDescription is a free-form description of the sending port.
type PortDescription string

// SystemName is the administratively assigned name of the sending system.
type SystemName string

// SystemDescription describes the sending system, typically its hardware and
// software versions.
type SystemDescription string

// NewPortDescription checks that s is valid UTF-8 of at most 255 bytes.
func NewPortDescription(s string) (PortDescription, error) {
	if err := checkText(TypePortDescription, s); err != nil {
		return "", err
	}
	return PortDescription(s), nil
}

// NewSystemName checks that s is valid UTF-8 of at most 255 bytes.
func NewSystemName(s string) (SystemName, error) {
	if err := checkText(TypeSystemName, s); err != nil {
		return "", err
	}
	return SystemName(s), nil
}

// NewSystemDescription checks that s is valid UTF-8 of at most 255 bytes.
func NewSystemDescription(s string) (SystemDescription, error) {
	if err := checkText(TypeSystemDescription, s); err != nil {
		return "", err
	}
	return SystemDescription(s), nil
}

func ParsePortDescription(b []byte) (PortDescription, error) {
	s, err := parseText(b, TypePortDescription)
	return PortDescription(s), err
}

func ParseSystemName(b []byte) (SystemName, error) {
	s, err := parseText(b, TypeSystemName)
	return SystemName(s), err
}

func ParseSystemDescription(b []byte) (SystemDescription, error) {
	s, err := parseText(b, TypeSystemDescription)
	return SystemDescription(s), err
}

func (PortDescription) Type() Type   { return TypePortDescription }
func (SystemName) Type() Type        { return TypeSystemName }
func (SystemDescription) Type() Type { return TypeSystemDescription }

func (d PortDescription) Len() int   { return len(d) }
func (n SystemName) Len() int        { return len(n) }
func (d SystemDescription) Len() int { return len(d) }

func (d PortDescription) Bytes() []byte   { return marshal(d) }
func (n SystemName) Bytes() []byte        { return marshal(n) }
func (d SystemDescription) Bytes() []byte { return marshal(d) }

func (d PortDescription) String() string {
	return fmt.Sprintf("PortDescriptionTLV(\"%s\")", string(d))
}

func (n SystemName) String() string {
	return fmt.Sprintf("SystemNameTLV(\"%s\")", string(n))
}

func (d SystemDescription) String() string {
	return fmt.Sprintf("SystemDescriptionTLV(\"%s\")", string(d))
}

func (d PortDescription) check() error   { return checkText(TypePortDescription, string(d)) }
func (n SystemName) check() error        { return checkText(TypeSystemName, string(n)) }
func (d SystemDescription) check() error { return checkText(TypeSystemDescription, string(d)) }

func (d PortDescription) appendValue(b []byte) []byte   { return append(b, d...) }
func (n SystemName) appendValue(b []byte) []byte        { return append(b, n...) }
func (d SystemDescription) appendValue(b []byte) []byte { return append(b, d...) }

func checkText(t Type, s string) error {
	if len(s) > maxTextLen {
		return errors.Wrapf(ErrInvalidEncoding, "%s of %d bytes, max %d", t, len(s), maxTextLen)
	}
	if !utf8.ValidString(s) {
		return errors.Wrapf(ErrInvalidEncoding, "%s is not valid UTF-8", t)
	}
	return nil
}

func parseText(b []byte, t Type) (string, error) {
	v, err := record(b, t)
	if err != nil {
		return "", err
	}
	s := string(v)
	if err := checkText(t, s); err != nil {
		return "", err
	}
	return s, nil
}
