package emrtd

import "github.com/skythen/apdu"

// Transport is the single capability Read needs from a caller: send a
// command APDU to the chip, receive its response. It's the same
// shape access, chipauth and lds each declare locally, satisfied
// structurally by whatever NFC/contact transport a caller wires up
// (or, in tests, an in-memory fake).
type Transport interface {
	Transmit(capdu apdu.Capdu) (apdu.Rapdu, error)
}
