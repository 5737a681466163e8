// Package apducat is the bit-exact command-APDU catalogue this reader
// issues, plus the status-word error taxonomy every response is
// classified against.
package apducat

import "github.com/skythen/apdu"

// AID is the eMRTD application identifier selected after EF.CardAccess
// discovery (or directly on chips without PACE support).
var AID = []byte{0xA0, 0x00, 0x00, 0x02, 0x47, 0x10, 0x01}

// SelectMasterFile builds SELECT for the master file, required before
// EF.CardAccess can be read since the default applet after discovery
// is already the passport AID.
func SelectMasterFile() apdu.Capdu {
	return apdu.Capdu{Cla: 0x00, Ins: 0xA4, P1: 0x00, P2: 0x0C, Data: []byte{0x3F, 0x00}}
}

// SelectApplication builds SELECT for the eMRTD application AID.
func SelectApplication() apdu.Capdu {
	return apdu.Capdu{Cla: 0x00, Ins: 0xA4, P1: 0x04, P2: 0x0C, Data: AID}
}

// SelectEF builds SELECT for a 2-byte Elementary File identifier.
func SelectEF(fileID [2]byte) apdu.Capdu {
	return apdu.Capdu{Cla: 0x00, Ins: 0xA4, P1: 0x02, P2: 0x0C, Data: fileID[:]}
}

// ReadBinary builds READ BINARY for ne bytes starting at offset,
// with the big-endian offset split across P1/P2 as ISO/IEC 7816-4
// mandates.
func ReadBinary(offset uint16, ne int) apdu.Capdu {
	return apdu.Capdu{
		Cla: 0x00,
		Ins: 0xB0,
		P1:  byte(offset >> 8),
		P2:  byte(offset),
		Ne:  ne,
	}
}

// GetChallenge builds GET CHALLENGE, requesting the chip's 8-byte
// random nonce for BAC.
func GetChallenge() apdu.Capdu {
	return apdu.Capdu{Cla: 0x00, Ins: 0x84, P1: 0x00, P2: 0x00, Ne: 8}
}

// ExternalAuthenticate builds EXTERNAL AUTHENTICATE carrying the BAC
// command cryptogram and its MAC.
func ExternalAuthenticate(data []byte) apdu.Capdu {
	return apdu.Capdu{Cla: 0x00, Ins: 0x82, P1: 0x00, P2: 0x00, Data: data, Ne: 100}
}

// GeneralAuthenticateChained builds GENERAL AUTHENTICATE; chaining
// selects CLA 0x10 for all but the last fragment of a multi-part
// dynamic authentication data exchange (used by the AES Chip
// Authentication path), CLA 0x00 otherwise.
func GeneralAuthenticateChained(data []byte, chaining bool, ne int) apdu.Capdu {
	cla := byte(0x00)
	if chaining {
		cla = 0x10
	}
	return apdu.Capdu{Cla: cla, Ins: 0x86, P1: 0x00, P2: 0x00, Data: data, Ne: ne}
}

// GeneralAuthenticate builds an unchained GENERAL AUTHENTICATE.
func GeneralAuthenticate(data []byte, ne int) apdu.Capdu {
	return GeneralAuthenticateChained(data, false, ne)
}

// MSESetATMutual builds MSE:Set AT for mutual authentication (PACE),
// P1=C1, P2=A4.
func MSESetATMutual(data []byte) apdu.Capdu {
	return apdu.Capdu{Cla: 0x00, Ins: 0x22, P1: 0xC1, P2: 0xA4, Data: data}
}

// MSESetATInternal builds MSE:Set AT for internal authentication
// (Chip Authentication's AES path), P1=41, P2=A6.
func MSESetATInternal(data []byte) apdu.Capdu {
	return apdu.Capdu{Cla: 0x00, Ins: 0x22, P1: 0x41, P2: 0xA6, Data: data}
}

// MSESetKAT builds MSE:Set KAT for Chip Authentication's 3DES path,
// P1=41, P2=A6 (same restore point as MSESetATInternal, different
// tag content built by the caller).
func MSESetKAT(data []byte) apdu.Capdu {
	return apdu.Capdu{Cla: 0x00, Ins: 0x22, P1: 0x41, P2: 0xA6, Data: data}
}
