package securemessaging

import (
	"testing"

	"github.com/skythen/emrtd/xcrypto"
	"github.com/stretchr/testify/require"
)

func TestNewKeysCopiesAndPadsSSC(t *testing.T) {
	ksEnc := []byte{1, 2, 3}
	ksMac := []byte{4, 5, 6}
	ssc := []byte{0xAA, 0xBB}

	k := NewKeys(xcrypto.CipherTDESEDE2, ksEnc, ksMac, ssc)
	require.Equal(t, []byte{1, 2, 3}, k.KSenc)
	require.Equal(t, []byte{4, 5, 6}, k.KSmac)
	require.Len(t, k.SSC, 8)
	require.Equal(t, []byte{0, 0, 0, 0, 0, 0, 0xAA, 0xBB}, k.SSC)

	// mutating the caller's slices must not affect k.
	ksEnc[0] = 0xFF
	require.Equal(t, byte(1), k.KSenc[0])
}

func TestNewKeysDefaultsSSCToZero(t *testing.T) {
	k := NewKeys(xcrypto.CipherAES128, []byte{1}, []byte{2}, nil)
	require.Equal(t, make([]byte, 16), k.SSC)
}

func TestNewKeysSizesSSCToBlockSize(t *testing.T) {
	k3 := NewKeys(xcrypto.CipherTDESEDE2, nil, nil, nil)
	require.Len(t, k3.SSC, 8)

	kAES := NewKeys(xcrypto.CipherAES256, nil, nil, nil)
	require.Len(t, kAES.SSC, 16)
}

func TestIncrementSSCCarries(t *testing.T) {
	k := NewKeys(xcrypto.CipherTDESEDE2, nil, nil, []byte{0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0xFF})
	k.incrementSSC()
	require.Equal(t, []byte{0, 0, 0, 0, 0, 0, 1, 0}, k.SSC)
}

func TestIncrementSSCWrapsAllOnes(t *testing.T) {
	k := &Keys{SSC: []byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}}
	k.incrementSSC()
	require.Equal(t, make([]byte, 8), k.SSC)
}

func TestZeroizeWipesAllSecrets(t *testing.T) {
	k := NewKeys(xcrypto.CipherAES128, []byte{1, 2, 3}, []byte{4, 5, 6}, []byte{7, 8})
	k.Zeroize()
	require.Equal(t, make([]byte, 3), k.KSenc)
	require.Equal(t, make([]byte, 3), k.KSmac)
	require.Equal(t, make([]byte, 16), k.SSC)
}

func TestCtEqual(t *testing.T) {
	require.True(t, ctEqual([]byte{1, 2, 3}, []byte{1, 2, 3}))
	require.False(t, ctEqual([]byte{1, 2, 3}, []byte{1, 2, 4}))
	require.False(t, ctEqual([]byte{1, 2}, []byte{1, 2, 3}))
}
