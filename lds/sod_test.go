package lds

import (
	stdasn1 "encoding/asn1"
	"math/big"
	"testing"

	"crypto/x509/pkix"

	"github.com/skythen/emrtd/asn1"
	"github.com/skythen/emrtd/xcrypto"
	"github.com/stretchr/testify/require"
)

// The structs below mirror the wire shape of cms.ContentInfo /
// cms.SignedData in field order, leaving out the optional fields
// (certificates, CRLs, signed and unsigned attributes) that this
// fixture does not use, without depending on that package's
// unexported rawCertificates type: encoding/asn1 only cares about tag
// and field order, not Go type identity, so marshaling these produces
// bytes cms.ParseSignedData decodes correctly.
type testContentInfo struct {
	ContentType stdasn1.ObjectIdentifier
	Content     stdasn1.RawValue `asn1:"explicit,tag:0"`
}

type testSignedData struct {
	Version          int
	DigestAlgorithms []pkix.AlgorithmIdentifier `asn1:"set"`
	EncapContentInfo testEncapContentInfo
	SignerInfos      []testSignerInfo `asn1:"set"`
}

type testEncapContentInfo struct {
	EContentType stdasn1.ObjectIdentifier
	EContent     stdasn1.RawValue `asn1:"explicit,optional,tag:0"`
}

type testSignerInfo struct {
	Version            int
	SID                testIssuerAndSerialNumber
	DigestAlgorithm    pkix.AlgorithmIdentifier
	SignatureAlgorithm pkix.AlgorithmIdentifier
	Signature          []byte
}

type testIssuerAndSerialNumber struct {
	Issuer       stdasn1.RawValue
	SerialNumber *big.Int
}

var oidSignedData = stdasn1.ObjectIdentifier{1, 2, 840, 113549, 1, 7, 2}
var oidSHA256 = stdasn1.ObjectIdentifier{2, 16, 840, 1, 101, 3, 4, 2, 1}
var oidSHA256WithRSA = stdasn1.ObjectIdentifier{1, 2, 840, 113549, 1, 1, 11}

func octetStringTLV(content []byte) []byte {
	return asn1.Encode(asn1.Tag{Class: asn1.ClassUniversal, Number: asn1.TagOctetString}, content)
}

// buildLDSSecurityObject hand-encodes an LDSSecurityObject with the
// given dataGroupNumber -> hash table, SHA-256 throughout.
func buildLDSSecurityObject(t *testing.T, hashes map[int][]byte) []byte {
	t.Helper()

	hashAlg := sequenceOf(oidTLV(2, 16, 840, 1, 101, 3, 4, 2, 1))

	var entries []byte
	for num, h := range hashes {
		entries = append(entries, sequenceOf(append(intTLV(int64(num)), octetStringTLV(h)...))...)
	}

	content := append(intTLV(0), hashAlg...)
	content = append(content, sequenceOf(entries)...)
	return sequenceOf(content)
}

func buildSODRaw(t *testing.T, hashes map[int][]byte) []byte {
	t.Helper()

	ldsSecObj := buildLDSSecurityObject(t, hashes)

	econtent := asn1.Encode(asn1.Tag{Class: asn1.ClassContextSpecific, Constructed: true, Number: 0},
		octetStringTLV(ldsSecObj))

	sd := testSignedData{
		Version:          1,
		DigestAlgorithms: []pkix.AlgorithmIdentifier{{Algorithm: oidSHA256}},
		EncapContentInfo: testEncapContentInfo{
			EContentType: oidSignedData,
			EContent:     stdasn1.RawValue{FullBytes: econtent},
		},
		SignerInfos: []testSignerInfo{
			{
				Version:            1,
				SID:                testIssuerAndSerialNumber{Issuer: stdasn1.RawValue{FullBytes: []byte{0x30, 0x00}}, SerialNumber: big.NewInt(1)},
				DigestAlgorithm:    pkix.AlgorithmIdentifier{Algorithm: oidSHA256},
				SignatureAlgorithm: pkix.AlgorithmIdentifier{Algorithm: oidSHA256WithRSA},
				Signature:          []byte{0x00},
			},
		},
	}
	sdDER, err := stdasn1.Marshal(sd)
	require.NoError(t, err)

	info := testContentInfo{
		ContentType: oidSignedData,
		Content:     stdasn1.RawValue{FullBytes: append([]byte{0xA0}, append(encodeBERLength(len(sdDER)), sdDER...)...)},
	}
	der, err := stdasn1.Marshal(info)
	require.NoError(t, err)

	return asn1.Encode(asn1.Tag{Class: asn1.ClassApplication, Constructed: true, Number: 0x17}, der)
}

// encodeBERLength mirrors the module's own short/long-form BER length
// encoding, needed here because testContentInfo.Content is built from
// raw bytes rather than through asn1.Encode directly.
func encodeBERLength(n int) []byte {
	if n < 0x80 {
		return []byte{byte(n)}
	}
	var b []byte
	for n > 0 {
		b = append([]byte{byte(n)}, b...)
		n >>= 8
	}
	return append([]byte{0x80 | byte(len(b))}, b...)
}

func TestDecodeSOD(t *testing.T) {
	hashes := map[int][]byte{
		1:  {0x01, 0x02, 0x03},
		14: {0x04, 0x05, 0x06},
	}
	raw := buildSODRaw(t, hashes)

	sod, err := DecodeSOD(raw)
	require.NoError(t, err)
	require.Equal(t, xcrypto.HashSHA256, sod.DigestAlgorithm)
	require.Equal(t, []byte{0x01, 0x02, 0x03}, sod.DataGroupHashes[TagDG1])
	require.Equal(t, []byte{0x04, 0x05, 0x06}, sod.DataGroupHashes[TagDG14])
	require.NotNil(t, sod.SignedData)
}

func TestDecodeSODIgnoresOutOfRangeDataGroupNumber(t *testing.T) {
	hashes := map[int][]byte{
		1:  {0x01},
		99: {0x02}, // out of the 1..16 DG range, must be dropped
	}
	raw := buildSODRaw(t, hashes)

	sod, err := DecodeSOD(raw)
	require.NoError(t, err)
	require.Len(t, sod.DataGroupHashes, 1)
	require.Contains(t, sod.DataGroupHashes, TagDG1)
}

func TestDecodeSODRejectsWrongTopLevelTag(t *testing.T) {
	_, err := DecodeSOD([]byte{0x78, 0x00})
	require.ErrorIs(t, err, ErrUnexpectedBERTag)
}
