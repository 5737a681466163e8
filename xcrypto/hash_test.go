package xcrypto

import (
	"encoding/hex"
	"testing"

	"github.com/skythen/emrtd/asn1"
	"github.com/stretchr/testify/require"
)

func TestSumSHA1OfEmptyString(t *testing.T) {
	sum := Sum(HashSHA1, []byte(""))
	require.Equal(t, "da39a3ee5e6b4b0d3255bfef95601890afd80709", hex.EncodeToString(sum))
}

func TestSumSHA256OfEmptyString(t *testing.T) {
	sum := Sum(HashSHA256, []byte(""))
	require.Equal(t, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", hex.EncodeToString(sum))
}

func TestHashAlgorithmByOID(t *testing.T) {
	cases := []struct {
		oid  asn1.ObjectIdentifier
		want HashAlgorithm
	}{
		{asn1.NewObjectIdentifier(1, 3, 14, 3, 2, 26), HashSHA1},
		{asn1.NewObjectIdentifier(2, 16, 840, 1, 101, 3, 4, 2, 4), HashSHA224},
		{asn1.NewObjectIdentifier(2, 16, 840, 1, 101, 3, 4, 2, 1), HashSHA256},
		{asn1.NewObjectIdentifier(2, 16, 840, 1, 101, 3, 4, 2, 2), HashSHA384},
		{asn1.NewObjectIdentifier(2, 16, 840, 1, 101, 3, 4, 2, 3), HashSHA512},
	}

	for _, tc := range cases {
		got, err := HashAlgorithmByOID(tc.oid)
		require.NoError(t, err)
		require.Equal(t, tc.want, got)
	}
}

func TestHashAlgorithmByOIDRejectsUnknown(t *testing.T) {
	_, err := HashAlgorithmByOID(asn1.NewObjectIdentifier(1, 2, 3))
	require.Error(t, err)
}

func TestKDFHashFor(t *testing.T) {
	require.Equal(t, HashSHA1, KDFHashFor(CipherTDESEDE2))
	require.Equal(t, HashSHA1, KDFHashFor(CipherAES128))
	require.Equal(t, HashSHA256, KDFHashFor(CipherAES192))
	require.Equal(t, HashSHA256, KDFHashFor(CipherAES256))
}
