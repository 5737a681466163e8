package xcrypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/des"

	"github.com/pkg/errors"
)

// SymmetricCipher identifies the block cipher used by a Secure
// Messaging or access-control session.
type SymmetricCipher int

const (
	CipherTDESEDE2 SymmetricCipher = iota
	CipherAES128
	CipherAES192
	CipherAES256
)

// BlockSize returns the cipher's block size in bytes: 8 for 3DES, 16
// for every AES variant.
func (c SymmetricCipher) BlockSize() int {
	if c == CipherTDESEDE2 {
		return 8
	}
	return 16
}

// KeyLength returns the raw key length in bytes expected by NewBlock.
func (c SymmetricCipher) KeyLength() int {
	switch c {
	case CipherTDESEDE2:
		return 16
	case CipherAES128:
		return 16
	case CipherAES192:
		return 24
	case CipherAES256:
		return 32
	default:
		return 0
	}
}

// NewBlock constructs a cipher.Block for c from key. For 3DES-EDE2 the
// 16-byte key k1||k2 is expanded to the 24-byte EDE form k1||k2||k1
// expected by crypto/des.NewTripleDESCipher.
func NewBlock(c SymmetricCipher, key []byte) (cipher.Block, error) {
	switch c {
	case CipherTDESEDE2:
		if len(key) != 16 {
			return nil, errors.Errorf("xcrypto: 3DES-EDE2 key must be 16 bytes, got %d", len(key))
		}
		ede := ExpandTDESEDE2(key)
		return des.NewTripleDESCipher(ede[:])
	case CipherAES128, CipherAES192, CipherAES256:
		if len(key) != c.KeyLength() {
			return nil, errors.Errorf("xcrypto: AES key must be %d bytes, got %d", c.KeyLength(), len(key))
		}
		return aes.NewCipher(key)
	default:
		return nil, errors.New("xcrypto: unknown cipher")
	}
}

// ExpandTDESEDE2 expands a 16-byte double-length DES key k1||k2 into
// the 24-byte k1||k2||k1 form used by two-key Triple-DES EDE, as the
// KDF's "third DES key equals the first" rule specifies.
func ExpandTDESEDE2(key []byte) [24]byte {
	var k [24]byte
	copy(k[:16], key[:16])
	copy(k[16:], key[:8])
	return k
}
