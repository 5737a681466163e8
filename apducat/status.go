package apducat

import "fmt"

// StatusKind classifies a response status-word pair into the
// APDU-level error taxonomy.
type StatusKind int

const (
	StatusSuccess StatusKind = iota
	StatusBytesStillAvailable
	StatusWrongLength
	StatusMemoryFailure
	StatusSecurityStatusNotSatisfied
	StatusFileNotFound
	StatusIncorrectSMDataObject
	StatusClassNotSupported
	StatusReferencedDataInvalidated
	StatusConditionsOfUseNotSatisfied
	StatusOther
)

// Status is the decoded meaning of a response's SW1/SW2 pair.
type Status struct {
	SW1, SW2 byte
	Kind     StatusKind
	// BytesAvailable is set when Kind is StatusBytesStillAvailable,
	// giving the exact remaining length SW2 carries (SW1=0x61).
	BytesAvailable int
	// ExactLength is set when Kind is StatusWrongLength and the chip
	// reported the expected length (SW1=0x6C).
	ExactLength int
}

// Success reports whether the status is 9000.
func (s Status) Success() bool { return s.SW1 == 0x90 && s.SW2 == 0x00 }

// String renders the status word pair for logging/errors.
func (s Status) String() string {
	return fmt.Sprintf("%02X%02X", s.SW1, s.SW2)
}

// DecodeStatus classifies a response's status-word pair.
func DecodeStatus(sw1, sw2 byte) Status {
	s := Status{SW1: sw1, SW2: sw2}

	switch {
	case sw1 == 0x90 && sw2 == 0x00:
		s.Kind = StatusSuccess
	case sw1 == 0x61:
		s.Kind = StatusBytesStillAvailable
		s.BytesAvailable = int(sw2)
	case sw1 == 0x6C:
		s.Kind = StatusWrongLength
		s.ExactLength = int(sw2)
	case sw1 == 0x65:
		s.Kind = StatusMemoryFailure
	case sw1 == 0x69 && sw2 == 0x82:
		s.Kind = StatusSecurityStatusNotSatisfied
	case sw1 == 0x6A && sw2 == 0x82:
		s.Kind = StatusFileNotFound
	case sw1 == 0x69 && sw2 == 0x87:
		s.Kind = StatusIncorrectSMDataObject
	case sw1 == 0x6E:
		s.Kind = StatusClassNotSupported
	case sw1 == 0x69 && sw2 == 0x81:
		s.Kind = StatusReferencedDataInvalidated
	case sw1 == 0x69 && sw2 == 0x85:
		s.Kind = StatusConditionsOfUseNotSatisfied
	default:
		s.Kind = StatusOther
	}

	return s
}
