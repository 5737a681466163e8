// Package xcrypto implements the cryptographic primitives used by the
// eMRTD access-control and secure-messaging protocols: ISO/IEC 7816-4
// padding method 2, block-cipher CBC wrappers for 3DES and AES, the
// ISO/IEC 9797-1 MAC algorithm 3 ("Retail MAC") and AES-CMAC, the
// ICAO 9303 key derivation function, and Diffie-Hellman / ECDH key
// agreement over the standardized domain parameters.
package xcrypto

import "github.com/pkg/errors"

// ErrBadPadding is returned by Unpad when the trailing byte run does
// not contain a 0x80 padding-start marker.
var ErrBadPadding = errors.New("xcrypto: no 0x80 padding marker found")

// Pad applies ISO/IEC 7816-4 padding method 2: append 0x80, then zero
// bytes, until the length is a multiple of blockSize. A full block of
// padding is appended when data is already block-aligned.
func Pad(data []byte, blockSize int) []byte {
	padLen := blockSize - len(data)%blockSize
	out := make([]byte, len(data)+padLen)
	copy(out, data)
	out[len(data)] = 0x80
	return out
}

// Unpad strips ISO/IEC 7816-4 padding method 2: trailing zero bytes
// are removed until a 0x80 marker is found and stripped too. Per the
// protocol's relaxed contract, input with no 0x80 marker at all is
// returned unchanged rather than rejected — some chips omit padding
// on already block-aligned data.
func Unpad(data []byte) []byte {
	i := len(data) - 1
	for i >= 0 && data[i] == 0x00 {
		i--
	}

	if i < 0 || data[i] != 0x80 {
		return data
	}

	return data[:i]
}
