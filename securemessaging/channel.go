// Package securemessaging implements the encrypt-then-MAC channel
// that protects every APDU exchanged after BAC, PACE or Chip
// Authentication succeeds: session keys, Send-Sequence-Counter
// bookkeeping, and the protect/unprotect codec built on top of the
// block-cipher and MAC primitives in xcrypto.
package securemessaging

import (
	"crypto/subtle"

	"github.com/pkg/errors"
	"github.com/skythen/emrtd/xcrypto"
)

// Keys holds the two session keys and the Send-Sequence-Counter for
// one secure-channel instance. The SSC is sized to the cipher's block
// size (8 bytes for 3DES, 16 for AES) and is a big-endian unsigned
// counter incremented before every protect and before every unprotect.
type Keys struct {
	Cipher xcrypto.SymmetricCipher
	KSenc  []byte
	KSmac  []byte
	SSC    []byte
}

// NewKeys builds a Keys value with SSC initialized to ssc (copied,
// not aliased) padded/truncated to the cipher's block size. Callers
// establishing BAC pass the RND.IC/RND.IFD-derived initial value;
// PACE and Chip Authentication pass a zero SSC.
func NewKeys(cipher xcrypto.SymmetricCipher, ksEnc, ksMac, ssc []byte) *Keys {
	blockSize := cipher.BlockSize()

	k := &Keys{
		Cipher: cipher,
		KSenc:  append([]byte(nil), ksEnc...),
		KSmac:  append([]byte(nil), ksMac...),
		SSC:    make([]byte, blockSize),
	}

	if len(ssc) > blockSize {
		ssc = ssc[len(ssc)-blockSize:]
	}
	if len(ssc) > 0 {
		copy(k.SSC[blockSize-len(ssc):], ssc)
	}

	return k
}

// Zeroize overwrites the key and counter material in place. Callers
// must call this on the superseded Keys value immediately after a
// re-key, since the channel object is the only place secrets live
// between protocol phases.
func (k *Keys) Zeroize() {
	zero(k.KSenc)
	zero(k.KSmac)
	zero(k.SSC)
}

func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

func (k *Keys) incrementSSC() {
	for i := len(k.SSC) - 1; i >= 0; i-- {
		k.SSC[i]++
		if k.SSC[i] != 0 {
			return
		}
	}
}

// ErrInvalidResponseChecksum is returned by Unprotect when the
// computed MAC over the response does not match the card's DO'8E'.
var ErrInvalidResponseChecksum = errors.New("securemessaging: invalid response checksum")

// ErrMissingMandatoryObject is returned when a protected response is
// missing DO'99' or DO'8E', both mandatory on a successful status.
var ErrMissingMandatoryObject = errors.New("securemessaging: response is missing a mandatory data object")

func ctEqual(a, b []byte) bool {
	return len(a) == len(b) && subtle.ConstantTimeCompare(a, b) == 1
}
