package asn1

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestParseEncodeRoundTrip(t *testing.T) {
	// SEQUENCE { INTEGER 1, OCTET STRING "AB" }
	raw := []byte{0x30, 0x07, 0x02, 0x01, 0x01, 0x04, 0x02, 0x41, 0x42}

	node, err := Parse(raw)
	require.NoError(t, err)
	require.True(t, node.IsConstructed())
	require.Len(t, node.Children, 2)
	require.Equal(t, raw, node.Raw)

	reencoded := Encode(node.Tag, node.Content)
	require.True(t, cmp.Equal(raw, reencoded))
}

func TestParseRejectsIndefiniteLength(t *testing.T) {
	_, err := Parse([]byte{0x30, 0x80, 0x00, 0x00})
	require.ErrorIs(t, err, ErrIndefiniteLength)
}

func TestParseRejectsNonMinimalLength(t *testing.T) {
	// Long form encoding 127 in a single length byte (0x81 0x7F) is
	// non-minimal: 127 fits the short form.
	_, err := Parse([]byte{0x04, 0x81, 0x7F})
	require.ErrorIs(t, err, ErrNonMinimalLength)
}

func TestParseRejectsTrailingBytes(t *testing.T) {
	_, err := Parse([]byte{0x02, 0x01, 0x01, 0xFF})
	require.ErrorIs(t, err, ErrTrailingBytes)
}

func TestParseRejectsExcessiveDepth(t *testing.T) {
	// 51 nested empty SEQUENCEs.
	data := []byte{}
	for i := 0; i < 51; i++ {
		data = append([]byte{0x30, byte(len(data))}, data...)
	}

	_, err := Parse(data)
	require.ErrorIs(t, err, ErrExcessiveDepth)
}

func TestFirstChildWithByteTag(t *testing.T) {
	node, err := Parse([]byte{0x30, 0x05, 0x80, 0x01, 0x01, 0x84, 0x00})
	require.NoError(t, err)

	c := node.FirstChildWithByteTag(0x84)
	require.NotNil(t, c)
	require.Empty(t, c.Content)

	require.Nil(t, node.FirstChildWithByteTag(0x99))
}

func TestObjectIdentifierEncodeParseRoundTrip(t *testing.T) {
	idPACE := NewObjectIdentifier(0, 4, 0, 127, 0, 7, 2, 2, 4)

	encoded := idPACE.Encode()
	decoded, err := ParseObjectIdentifier(encoded)
	require.NoError(t, err)
	require.True(t, idPACE.Equal(decoded))
}

func TestObjectIdentifierHasPrefix(t *testing.T) {
	idPACE := NewObjectIdentifier(0, 4, 0, 127, 0, 7, 2, 2, 4)
	idPACEDH3DES := idPACE.Append(2)

	require.True(t, idPACEDH3DES.HasPrefix(idPACE))
	require.False(t, idPACE.HasPrefix(idPACEDH3DES))
}
