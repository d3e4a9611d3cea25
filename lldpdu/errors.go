package lldpdu

import "github.com/pkg/errors"

// Decode and construction failures. Returned errors wrap one of these, test
// with errors.Is.
var (
	ErrMalformedHeader    = errors.New("malformed TLV header")
	ErrUnknownType        = errors.New("unknown TLV type")
	ErrTypeMismatch       = errors.New("unexpected TLV type")
	ErrInvalidSubtype     = errors.New("invalid subtype")
	ErrInvalidEncoding    = errors.New("invalid encoding")
	ErrCapabilityMismatch = errors.New("enabled capability not supported")
)

// LLDPDU structure violations, returned by PDU.Append and ParsePDU.
var (
	ErrOrderingViolation  = errors.New("mandatory TLV out of order")
	ErrDuplicateMandatory = errors.New("duplicate mandatory TLV")
	ErrTerminatorPresent  = errors.New("LLDPDU already terminated")
	ErrSizeExceeded       = errors.New("LLDPDU size exceeded")
)
