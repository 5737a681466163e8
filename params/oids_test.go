package params

import (
	"testing"

	"github.com/skythen/emrtd/xcrypto"
	"github.com/stretchr/testify/require"
)

func TestResolvePKOID(t *testing.T) {
	ka, err := ResolvePKOID(oidPK.Append(1))
	require.NoError(t, err)
	require.Equal(t, KeyAgreementDH, ka)

	ka, err = ResolvePKOID(oidPK.Append(2))
	require.NoError(t, err)
	require.Equal(t, KeyAgreementECDH, ka)
}

func TestResolvePKOIDRejectsWrongFamily(t *testing.T) {
	_, err := ResolvePKOID(oidCA.Append(1))
	require.Error(t, err)
}

func TestResolvePKOIDRejectsUnknownArc(t *testing.T) {
	_, err := ResolvePKOID(oidPK.Append(99))
	require.Error(t, err)
}

func TestResolvePACEOID(t *testing.T) {
	cases := []struct {
		arc    uint32
		cipher uint32
		wantKA KeyAgreement
		wantC  xcrypto.SymmetricCipher
	}{
		{1, 2, KeyAgreementDH, xcrypto.CipherAES128},
		{2, 2, KeyAgreementECDH, xcrypto.CipherAES128},
		{2, 4, KeyAgreementECDH, xcrypto.CipherAES256},
	}

	for _, tc := range cases {
		algo, err := ResolvePACEOID(oidPACE.Append(tc.arc, tc.cipher))
		require.NoError(t, err)
		require.Equal(t, tc.wantKA, algo.KeyAgreement)
		require.Equal(t, MappingGeneric, algo.Mapping)
		require.Equal(t, tc.wantC, algo.Cipher)
	}
}

func TestResolvePACEOIDRejectsIntegratedMapping(t *testing.T) {
	_, err := ResolvePACEOID(oidPACE.Append(3, 2))
	require.Error(t, err)
}

func TestResolvePACEOIDRejectsCAM(t *testing.T) {
	_, err := ResolvePACEOID(oidPACE.Append(6, 2))
	require.Error(t, err)
}

func TestResolvePACEOIDRejectsUnknownMappingArc(t *testing.T) {
	_, err := ResolvePACEOID(oidPACE.Append(5, 2))
	require.Error(t, err)
}

func TestResolveCAOID(t *testing.T) {
	algo, err := ResolveCAOID(oidCA.Append(2, 3))
	require.NoError(t, err)
	require.Equal(t, KeyAgreementECDH, algo.KeyAgreement)
	require.Equal(t, xcrypto.CipherAES192, algo.Cipher)
}

func TestResolveCAOIDRejectsWrongFamily(t *testing.T) {
	_, err := ResolveCAOID(oidPACE.Append(1, 1))
	require.Error(t, err)
}

func TestIsInfoOIDClassifiers(t *testing.T) {
	require.True(t, IsPACEInfoOID(oidPACE.Append(2, 2)))
	require.False(t, IsPACEInfoOID(oidCA.Append(1, 1)))

	require.True(t, IsCAInfoOID(oidCA.Append(1, 1)))
	require.False(t, IsCAInfoOID(oidPK.Append(1)))

	require.True(t, IsPKInfoOID(oidPK.Append(2)))
	require.False(t, IsPKInfoOID(oidPACE.Append(2, 2)))
}

func TestResolvePACEOIDRejectsMalformedSuffix(t *testing.T) {
	_, err := ResolvePACEOID(oidPACE.Append(2))
	require.Error(t, err)
}

func TestResolvePACEOIDRejectsUnknownCipherArc(t *testing.T) {
	_, err := ResolvePACEOID(oidPACE.Append(2, 9))
	require.Error(t, err)
}

func TestOIDConstantsAreDistinct(t *testing.T) {
	require.False(t, oidPACE.Equal(oidCA))
	require.False(t, oidPACE.Equal(oidPK))
	require.False(t, oidCA.Equal(oidPK))
}
