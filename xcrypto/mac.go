package xcrypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/des"

	"github.com/pkg/errors"
)

var zeroIV8 = [8]byte{}

// RetailMAC computes ISO/IEC 9797-1 MAC algorithm 3 ("Retail MAC")
// over src under a 16-byte double-length DES key k1||k2, truncated to
// 8 bytes. src must already be padded to a multiple of 8 bytes by the
// caller (see Pad). This is the DES analogue of the teacher's SCP02
// session MAC: single-DES CBC under k1 over every block but the last,
// then a final single-DES-decrypt-under-k2 / single-DES-encrypt-under-k1
// pass over the last block — which is exactly what crypto/des's
// Triple-DES EDE cipher computes when keyed k1||k2||k1.
func RetailMAC(key [16]byte, src []byte) ([8]byte, error) {
	if len(src)%des.BlockSize != 0 {
		return [8]byte{}, errors.New("xcrypto: Retail MAC input must be block-aligned")
	}

	k1 := key[:8]
	tdesKey := ExpandTDESEDE2(key[:])

	sdes, err := des.NewCipher(k1)
	if err != nil {
		return [8]byte{}, errors.Wrap(err, "create single-DES cipher")
	}

	tdes, err := des.NewTripleDESCipher(tdesKey[:])
	if err != nil {
		return [8]byte{}, errors.Wrap(err, "create Triple-DES cipher")
	}

	iv := zeroIV8[:]

	if len(src) > des.BlockSize {
		intermediate := make([]byte, len(src)-des.BlockSize)
		cipher.NewCBCEncrypter(sdes, iv).CryptBlocks(intermediate, src[:len(src)-des.BlockSize])
		iv = intermediate[len(intermediate)-des.BlockSize:]
	}

	var out [8]byte
	cipher.NewCBCEncrypter(tdes, iv).CryptBlocks(out[:], src[len(src)-des.BlockSize:])

	return out, nil
}

// AESCMAC computes full 16-byte AES-CMAC (NIST SP 800-38B) of msg
// under key, truncation to the 8-byte Secure Messaging MAC length is
// the caller's responsibility via TruncateMAC.
func AESCMAC(key, msg []byte) ([16]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return [16]byte{}, errors.Wrap(err, "create AES cipher")
	}

	k1, k2 := cmacSubkeys(block)

	n := (len(msg) + 15) / 16
	if n == 0 {
		n = 1
	}

	lastComplete := len(msg) != 0 && len(msg)%16 == 0

	last := make([]byte, 16)
	if lastComplete {
		copy(last, msg[(n-1)*16:])
		xorBytes(last, last, k1)
	} else {
		remain := len(msg) - (n-1)*16
		if remain > 0 {
			copy(last, msg[(n-1)*16:])
		}
		last[remain] = 0x80
		xorBytes(last, last, k2)
	}

	x := make([]byte, 16)
	y := make([]byte, 16)

	for i := 0; i < n-1; i++ {
		start := i * 16
		xorBytes(y, x, msg[start:start+16])
		block.Encrypt(x, y)
	}

	xorBytes(y, x, last)
	block.Encrypt(x, y)

	var out [16]byte
	copy(out[:], x)

	return out, nil
}

// TruncateMAC returns the 8 leading bytes of a full MAC, the
// truncation rule used for both Retail MAC output and AES-CMAC inside
// Secure Messaging and PACE token exchange.
func TruncateMAC(full []byte) [8]byte {
	var out [8]byte
	copy(out[:], full[:8])
	return out
}

func cmacSubkeys(block cipher.Block) (k1, k2 []byte) {
	const rb = 0x87

	zero := make([]byte, 16)
	l := make([]byte, 16)
	block.Encrypt(l, zero)

	k1 = make([]byte, 16)
	leftShift1(k1, l)
	if l[0]&0x80 != 0 {
		k1[15] ^= rb
	}

	k2 = make([]byte, 16)
	leftShift1(k2, k1)
	if k1[0]&0x80 != 0 {
		k2[15] ^= rb
	}

	return k1, k2
}

func leftShift1(dst, src []byte) {
	var carry byte
	for i := len(src) - 1; i >= 0; i-- {
		b := src[i]
		dst[i] = (b << 1) | carry
		carry = (b >> 7) & 1
	}
}

func xorBytes(dst, a, b []byte) {
	for i := 0; i < len(a) && i < len(b); i++ {
		dst[i] = a[i] ^ b[i]
	}
}
