package lds

import (
	"crypto/elliptic"
	"math/big"
	"testing"

	"github.com/skythen/emrtd/asn1"
	"github.com/skythen/emrtd/xcrypto"
	"github.com/stretchr/testify/require"
)

func oidTLV(components ...uint32) []byte {
	return asn1.Encode(asn1.Tag{Class: asn1.ClassUniversal, Number: asn1.TagObjectIdentifier}, asn1.NewObjectIdentifier(components...).Encode())
}

// intTLV encodes a minimal unsigned INTEGER TLV (no leading zero
// padding beyond what's needed to keep the high bit clear).
func intTLV(v int64) []byte {
	b := big.NewInt(v).Bytes()
	if len(b) == 0 {
		b = []byte{0x00}
	}
	if b[0]&0x80 != 0 {
		b = append([]byte{0x00}, b...)
	}
	return asn1.Encode(asn1.Tag{Class: asn1.ClassUniversal, Number: asn1.TagInteger}, b)
}

func sequenceOf(content []byte) []byte {
	return asn1.Encode(asn1.Tag{Class: asn1.ClassUniversal, Constructed: true, Number: asn1.TagSequence}, content)
}

func setOf(members ...[]byte) []byte {
	var content []byte
	for _, m := range members {
		content = append(content, m...)
	}
	return asn1.Encode(asn1.Tag{Class: asn1.ClassUniversal, Constructed: true, Number: asn1.TagSet}, content)
}

// idPACEECDHGMAES128 is id-PACE-ECDH-GM-AES-CBC-CMAC-128 (0.4.0.127.0.7.2.2.4.2.2).
var idPACEECDHGMAES128 = []uint32{0, 4, 0, 127, 0, 7, 2, 2, 4, 2, 2}

// idCAECDHAES128 is id-CA-ECDH-AES-CBC-CMAC-128 (0.4.0.127.0.7.2.2.3.2.2).
var idCAECDHAES128 = []uint32{0, 4, 0, 127, 0, 7, 2, 2, 3, 2, 2}

// idPKECDH is id-PK-ECDH (0.4.0.127.0.7.2.2.1.2).
var idPKECDH = []uint32{0, 4, 0, 127, 0, 7, 2, 2, 1, 2}

// idECPublicKey / idSecp256r1 are the standard SubjectPublicKeyInfo
// algorithm OIDs for an EC key with explicit named curve.
var idECPublicKey = []uint32{1, 2, 840, 10045, 2, 1}
var idSecp256r1 = []uint32{1, 2, 840, 10045, 3, 1, 7}

func paceInfoMember(version, parameterID int) []byte {
	content := append(oidTLV(idPACEECDHGMAES128...), intTLV(int64(version))...)
	content = append(content, intTLV(int64(parameterID))...)
	return sequenceOf(content)
}

func caInfoMember(version int, keyID *int64) []byte {
	content := append(oidTLV(idCAECDHAES128...), intTLV(int64(version))...)
	if keyID != nil {
		content = append(content, intTLV(*keyID)...)
	}
	return sequenceOf(content)
}

func publicKeyInfoMember(t *testing.T, keyID *int64) []byte {
	t.Helper()

	curve := elliptic.P256()
	point := xcrypto.EncodeUncompressedPoint(curve, xcrypto.ECPoint{X: curve.Params().Gx, Y: curve.Params().Gy})

	algorithm := sequenceOf(append(oidTLV(idECPublicKey...), oidTLV(idSecp256r1...)...))
	bitString := asn1.Encode(asn1.Tag{Class: asn1.ClassUniversal, Number: asn1.TagBitString}, append([]byte{0x00}, point...))
	spki := sequenceOf(append(algorithm, bitString...))

	content := append(oidTLV(idPKECDH...), spki...)
	if keyID != nil {
		content = append(content, intTLV(*keyID)...)
	}
	return sequenceOf(content)
}

func TestDecodeDG14(t *testing.T) {
	keyID := int64(1)
	members := append(append(
		paceInfoMember(2, 13),
		caInfoMember(1, &keyID)...),
		publicKeyInfoMember(t, &keyID)...)
	raw := asn1.Encode(asn1.Tag{Class: asn1.ClassApplication, Constructed: true, Number: 14}, members)

	dg14, err := DecodeDG14(raw)
	require.NoError(t, err)

	require.Len(t, dg14.PACEInfos, 1)
	require.Equal(t, 2, dg14.PACEInfos[0].Version)
	require.Equal(t, 13, dg14.PACEInfos[0].ParameterID)

	require.Len(t, dg14.CAInfos, 1)
	require.True(t, dg14.CAInfos[0].HasKeyID)
	require.Equal(t, int64(1), dg14.CAInfos[0].KeyID)

	require.Len(t, dg14.PublicKeys, 1)
	require.True(t, dg14.PublicKeys[0].HasKeyID)
	require.Equal(t, int64(1), dg14.PublicKeys[0].KeyID)
	require.NotNil(t, dg14.PublicKeys[0].ECPub.X)
}

func TestDecodeDG14RejectsWrongTopLevelTag(t *testing.T) {
	_, err := DecodeDG14([]byte{0x6F, 0x00})
	require.ErrorIs(t, err, ErrUnexpectedBERTag)
}

// TestDecodeDG14CAInfoWithoutKeyID guards against treating the
// mandatory version field as an optional keyId when no keyId is
// present: a ChipAuthenticationInfo with exactly two children (OID,
// version) must decode with HasKeyID false.
func TestDecodeDG14CAInfoWithoutKeyID(t *testing.T) {
	members := caInfoMember(1, nil)
	raw := asn1.Encode(asn1.Tag{Class: asn1.ClassApplication, Constructed: true, Number: 14}, members)

	dg14, err := DecodeDG14(raw)
	require.NoError(t, err)
	require.Len(t, dg14.CAInfos, 1)
	require.False(t, dg14.CAInfos[0].HasKeyID)
}

func TestDecodeCardAccess(t *testing.T) {
	raw := setOf(paceInfoMember(2, 13))

	ca, err := DecodeCardAccess(raw)
	require.NoError(t, err)
	require.Len(t, ca.PACEInfos, 1)
	require.Equal(t, 2, ca.PACEInfos[0].Version)
}

func TestDecodeCardAccessRejectsNonSet(t *testing.T) {
	_, err := DecodeCardAccess([]byte{0x30, 0x00})
	require.ErrorIs(t, err, ErrUnexpectedBERTag)
}
