package access

import "github.com/skythen/apdu"

// Transmitter is the single capability BAC and PACE consume to talk
// to the chip: send a command APDU, receive the response. Callers
// supply an implementation over the real NFC transport or, in tests,
// an in-memory fake.
type Transmitter interface {
	Transmit(capdu apdu.Capdu) (apdu.Rapdu, error)
}

// TransmitError wraps a transport failure with the command that
// could not be sent.
type TransmitError struct {
	Command apdu.Capdu
	Cause   error
}

func (e TransmitError) Error() string {
	return "access: transmit failed: " + e.Cause.Error()
}

func (e TransmitError) Unwrap() error { return e.Cause }

// NonSuccessResponseError wraps a response whose status word was not
// 9000 where the caller required success.
type NonSuccessResponseError struct {
	Command  apdu.Capdu
	Response apdu.Rapdu
}

func (e NonSuccessResponseError) Error() string {
	return "access: command failed with status " + swString(e.Response)
}

func swString(r apdu.Rapdu) string {
	const hex = "0123456789ABCDEF"
	b := [4]byte{hex[r.SW1>>4], hex[r.SW1&0xF], hex[r.SW2>>4], hex[r.SW2&0xF]}
	return string(b[:])
}

func transmit(t Transmitter, capdu apdu.Capdu) (apdu.Rapdu, error) {
	resp, err := t.Transmit(capdu)
	if err != nil {
		return apdu.Rapdu{}, TransmitError{Command: capdu, Cause: err}
	}
	return resp, nil
}

func transmitExpectSuccess(t Transmitter, capdu apdu.Capdu) (apdu.Rapdu, error) {
	resp, err := transmit(t, capdu)
	if err != nil {
		return apdu.Rapdu{}, err
	}
	if !resp.IsSuccess() {
		return apdu.Rapdu{}, NonSuccessResponseError{Command: capdu, Response: resp}
	}
	return resp, nil
}
