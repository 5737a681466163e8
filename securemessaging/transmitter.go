package securemessaging

import "github.com/skythen/apdu"

// Transmitter is the bare transport capability every protocol package
// in this module depends on: send one command APDU, get back one
// response APDU.
type Transmitter interface {
	Transmit(capdu apdu.Capdu) (apdu.Rapdu, error)
}

// SecureTransmitter wraps a raw Transmitter with a Keys instance,
// transparently protecting every outgoing command and unprotecting
// every incoming response. It satisfies the Transmitter interface
// itself, so any protocol package that only needs to send APDUs
// (lds.Transmitter, chipauth.Transmitter, access.Transmitter) can be
// handed a *SecureTransmitter once a channel is established and stay
// oblivious to Secure Messaging underneath.
type SecureTransmitter struct {
	Raw  Transmitter
	Keys *Keys
}

// Transmit protects capdu, sends it over Raw, and unprotects the
// response before returning it.
func (s *SecureTransmitter) Transmit(capdu apdu.Capdu) (apdu.Rapdu, error) {
	protected, err := Protect(s.Keys, capdu)
	if err != nil {
		return apdu.Rapdu{}, err
	}

	rapdu, err := s.Raw.Transmit(protected)
	if err != nil {
		return apdu.Rapdu{}, err
	}

	return Unprotect(s.Keys, rapdu)
}
