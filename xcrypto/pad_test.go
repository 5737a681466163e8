package xcrypto

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPadAppendsMarkerAndZeroes(t *testing.T) {
	out := Pad([]byte{0x01, 0x02, 0x03}, 8)
	require.Equal(t, []byte{0x01, 0x02, 0x03, 0x80, 0x00, 0x00, 0x00, 0x00}, out)
}

func TestPadOnAlreadyAlignedDataAppendsFullBlock(t *testing.T) {
	data := []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08}
	out := Pad(data, 8)
	require.Len(t, out, 16)
	require.Equal(t, byte(0x80), out[8])
}

func TestUnpadStripsMarkerAndZeroes(t *testing.T) {
	padded := []byte{0x01, 0x02, 0x03, 0x80, 0x00, 0x00, 0x00, 0x00}
	require.Equal(t, []byte{0x01, 0x02, 0x03}, Unpad(padded))
}

func TestUnpadRoundTrips(t *testing.T) {
	data := []byte{0xAA, 0xBB, 0xCC, 0xDD, 0xEE}
	require.Equal(t, data, Unpad(Pad(data, 8)))
}

func TestUnpadReturnsUnchangedWithoutMarker(t *testing.T) {
	data := []byte{0x01, 0x02, 0x00, 0x00}
	require.Equal(t, data, Unpad(data))
}
