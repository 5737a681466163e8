package xcrypto

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBlockSize(t *testing.T) {
	require.Equal(t, 8, CipherTDESEDE2.BlockSize())
	require.Equal(t, 16, CipherAES128.BlockSize())
	require.Equal(t, 16, CipherAES192.BlockSize())
	require.Equal(t, 16, CipherAES256.BlockSize())
}

func TestKeyLength(t *testing.T) {
	require.Equal(t, 16, CipherTDESEDE2.KeyLength())
	require.Equal(t, 16, CipherAES128.KeyLength())
	require.Equal(t, 24, CipherAES192.KeyLength())
	require.Equal(t, 32, CipherAES256.KeyLength())
}

func TestExpandTDESEDE2(t *testing.T) {
	key := []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08, 0x11, 0x12, 0x13, 0x14, 0x15, 0x16, 0x17, 0x18}
	ede := ExpandTDESEDE2(key)

	require.Equal(t, key[:8], ede[:8])
	require.Equal(t, key[8:], ede[8:16])
	require.Equal(t, key[:8], ede[16:]) // k1 repeated as the third key
}

func TestNewBlockRejectsWrongKeyLength(t *testing.T) {
	_, err := NewBlock(CipherTDESEDE2, make([]byte, 8))
	require.Error(t, err)

	_, err = NewBlock(CipherAES128, make([]byte, 10))
	require.Error(t, err)
}

func TestNewBlockEncryptsOneBlock(t *testing.T) {
	block, err := NewBlock(CipherAES128, make([]byte, 16))
	require.NoError(t, err)
	require.Equal(t, 16, block.BlockSize())

	out := make([]byte, 16)
	block.Encrypt(out, make([]byte, 16))
	require.NotEqual(t, make([]byte, 16), out)
}

func TestNewBlockTDESUsesExpandedKey(t *testing.T) {
	block, err := NewBlock(CipherTDESEDE2, make([]byte, 16))
	require.NoError(t, err)
	require.Equal(t, 8, block.BlockSize())
}
