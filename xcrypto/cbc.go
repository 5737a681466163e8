package xcrypto

import (
	"crypto/cipher"

	"github.com/pkg/errors"
)

// CBCEncrypt encrypts data (which must already be block-aligned —
// callers pad first) under block in CBC mode with the given IV.
func CBCEncrypt(block cipher.Block, iv, data []byte) ([]byte, error) {
	if len(data)%block.BlockSize() != 0 {
		return nil, errors.New("xcrypto: CBC input is not block-aligned")
	}

	out := make([]byte, len(data))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(out, data)

	return out, nil
}

// CBCDecrypt decrypts data under block in CBC mode with the given IV.
func CBCDecrypt(block cipher.Block, iv, data []byte) ([]byte, error) {
	if len(data)%block.BlockSize() != 0 {
		return nil, errors.New("xcrypto: CBC input is not block-aligned")
	}

	out := make([]byte, len(data))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(out, data)

	return out, nil
}

// ECBEncryptBlock encrypts a single block in ECB mode — used to
// derive the Secure Messaging IV for AES (E(KSenc, SSC)).
func ECBEncryptBlock(block cipher.Block, plain []byte) []byte {
	out := make([]byte, len(plain))
	block.Encrypt(out, plain)
	return out
}
