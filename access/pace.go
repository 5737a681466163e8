package access

import (
	"crypto/elliptic"
	"io"
	"math/big"

	"github.com/pkg/errors"
	"github.com/skythen/emrtd/apducat"
	"github.com/skythen/emrtd/asn1"
	"github.com/skythen/emrtd/params"
	"github.com/skythen/emrtd/securemessaging"
	"github.com/skythen/emrtd/xcrypto"
)

// PACEInfo is the decoded advertisement an EF.CardAccess SecurityInfo
// of kind id-PACE carries: the protocol OID and the standardized
// parameter-id naming the domain to run it over.
type PACEInfo struct {
	OID         asn1.ObjectIdentifier
	ParameterID int
}

// ErrPACETokenMismatch is returned when the chip's authentication
// token does not match the value locally computed from the same
// shared secret.
var ErrPACETokenMismatch = errors.New("access: PACE token mismatch")

// ErrUnsupportedParameters is returned when a PACEInfo names a
// parameter-id or mapping this reader does not implement (Integrated
// Mapping, Chip-Authentication Mapping, or an unregistered id).
var ErrUnsupportedParameters = errors.New("access: unsupported PACE parameters")

const (
	tagOID        = 0x80
	tagPasswordRef = 0x83
	tagParamID    = 0x84
	tag7C         = 0x7C
	tagEncNonce   = 0x80
	tagMappingIFD = 0x81
	tagMappingIC  = 0x82
	tagEphIFD     = 0x83
	tagEphIC      = 0x84
	tagAuthIFD    = 0x85
	tagAuthIC     = 0x86

	pwRefMRZ = 0x01
)

// RunPACE executes PACE-GM over the algorithm and domain named by
// info, deriving a re-keyed secure channel with SSC = 0.
func RunPACE(t Transmitter, mrzKey string, info PACEInfo, rnd io.Reader) (*securemessaging.Keys, error) {
	algo, err := params.ResolvePACEOID(info.OID)
	if err != nil {
		if algo.Mapping != params.MappingGeneric {
			return nil, errors.Wrap(ErrUnsupportedParameters, err.Error())
		}
		return nil, errors.Wrap(err, "resolve PACE protocol OID")
	}

	seed := Kseed(mrzKey)
	paceKey := xcrypto.KDF(algo.Cipher, seed[:], nil, xcrypto.KDFModePACE)

	mseData := append(asn1.EncodeByteTag(tagOID, info.OID.Encode()), asn1.EncodeByteTag(tagPasswordRef, []byte{pwRefMRZ})...)
	mseData = append(mseData, asn1.EncodeByteTag(tagParamID, []byte{byte(info.ParameterID)})...)

	if _, err := transmitExpectSuccess(t, apducat.MSESetATMutual(mseData)); err != nil {
		return nil, errors.Wrap(err, "MSE:Set AT")
	}

	nonceResp, err := transmitExpectSuccess(t, apducat.GeneralAuthenticate(asn1.EncodeByteTag(tag7C, nil), 256))
	if err != nil {
		return nil, errors.Wrap(err, "General Authenticate (nonce request)")
	}

	encNonce, err := extractTaggedDO(nonceResp.Data, tagEncNonce)
	if err != nil {
		return nil, errors.Wrap(err, "decode encrypted nonce")
	}

	nonceBlock, err := xcrypto.NewBlock(algo.Cipher, paceKey)
	if err != nil {
		return nil, errors.Wrap(err, "create nonce-decryption cipher")
	}
	nonce, err := xcrypto.CBCDecrypt(nonceBlock, make([]byte, nonceBlock.BlockSize()), encNonce)
	if err != nil {
		return nil, errors.Wrap(err, "decrypt chip nonce")
	}

	if algo.KeyAgreement == params.KeyAgreementECDH {
		return runPACEECDH(t, algo, info.ParameterID, nonce, rnd)
	}
	return runPACEDH(t, algo, info.ParameterID, nonce, rnd)
}

func runPACEDH(t Transmitter, algo params.PACEAlgorithm, parameterID int, nonce []byte, rnd io.Reader) (*securemessaging.Keys, error) {
	group, ok := params.GroupByParameterID(parameterID)
	if !ok {
		return nil, ErrUnsupportedParameters
	}

	domain := xcrypto.DHDomain{P: group.P, Q: group.Q, G: group.G}

	mapPriv, mapPub, err := xcrypto.DHGenerateKeyPair(domain, rnd)
	if err != nil {
		return nil, errors.Wrap(err, "generate DH mapping key pair")
	}

	mapResp, err := transmitExpectSuccess(t, apducat.GeneralAuthenticate(wrap7C(tagMappingIFD, bigToFixed(mapPub, domain.P)), 256))
	if err != nil {
		return nil, errors.Wrap(err, "General Authenticate (mapping)")
	}

	chipMapBytes, err := extractTaggedDO(mapResp.Data, tagMappingIC)
	if err != nil {
		return nil, err
	}
	chipMapPub := new(big.Int).SetBytes(chipMapBytes)

	n := new(big.Int).SetBytes(nonce)
	mappedG := xcrypto.DHMappedGenerator(domain, chipMapPub, mapPriv, n)
	mappedDomain := xcrypto.DHDomain{P: domain.P, Q: domain.Q, G: mappedG}

	ephPriv, ephPub, err := xcrypto.DHGenerateKeyPair(mappedDomain, rnd)
	if err != nil {
		return nil, errors.Wrap(err, "generate DH ephemeral key pair")
	}

	ephResp, err := transmitExpectSuccess(t, apducat.GeneralAuthenticate(wrap7C(tagEphIFD, bigToFixed(ephPub, domain.P)), 256))
	if err != nil {
		return nil, errors.Wrap(err, "General Authenticate (key exchange)")
	}

	chipEphBytes, err := extractTaggedDO(ephResp.Data, tagEphIC)
	if err != nil {
		return nil, err
	}
	chipEphPub := new(big.Int).SetBytes(chipEphBytes)

	shared := xcrypto.DHSharedSecret(mappedDomain, ephPriv, chipEphPub)

	return finishPACE(t, algo, shared, bigToFixed(ephPub, domain.P), chipEphBytes, 0x84)
}

func runPACEECDH(t Transmitter, algo params.PACEAlgorithm, parameterID int, nonce []byte, rnd io.Reader) (*securemessaging.Keys, error) {
	curve, ok := params.ECGroupByParameterID(parameterID)
	if !ok {
		return nil, ErrUnsupportedParameters
	}

	mapPriv, mapPub, err := xcrypto.ECGenerateKeyPair(curve.Curve, rnd)
	if err != nil {
		return nil, errors.Wrap(err, "generate EC mapping key pair")
	}

	mapResp, err := transmitExpectSuccess(t, apducat.GeneralAuthenticate(wrap7C(tagMappingIFD, xcrypto.EncodeUncompressedPoint(curve.Curve, mapPub)), 256))
	if err != nil {
		return nil, errors.Wrap(err, "General Authenticate (mapping)")
	}

	chipMapBytes, err := extractTaggedDO(mapResp.Data, tagMappingIC)
	if err != nil {
		return nil, err
	}
	chipMapPub, err := xcrypto.DecodeUncompressedPoint(curve.Curve, chipMapBytes)
	if err != nil {
		return nil, errors.Wrap(err, "decode chip mapping public key")
	}

	n := new(big.Int).SetBytes(nonce)
	mappedG := xcrypto.ECMappedGenerator(curve.Curve, chipMapPub, mapPriv, n)

	mappedCurve := &mappedGeneratorCurve{Curve: curve.Curve, gx: mappedG.X, gy: mappedG.Y}

	ephPriv, ephPub, err := xcrypto.ECGenerateKeyPair(mappedCurve, rnd)
	if err != nil {
		return nil, errors.Wrap(err, "generate EC ephemeral key pair")
	}

	ephResp, err := transmitExpectSuccess(t, apducat.GeneralAuthenticate(wrap7C(tagEphIFD, xcrypto.EncodeUncompressedPoint(curve.Curve, ephPub)), 256))
	if err != nil {
		return nil, errors.Wrap(err, "General Authenticate (key exchange)")
	}

	chipEphBytes, err := extractTaggedDO(ephResp.Data, tagEphIC)
	if err != nil {
		return nil, err
	}
	chipEphPub, err := xcrypto.DecodeUncompressedPoint(curve.Curve, chipEphBytes)
	if err != nil {
		return nil, errors.Wrap(err, "decode chip ephemeral public key")
	}

	shared := xcrypto.ECSharedSecret(mappedCurve, ephPriv, chipEphPub)

	return finishPACE(t, algo, shared, xcrypto.EncodeUncompressedPoint(curve.Curve, ephPub), chipEphBytes, 0x86)
}

// mappedGeneratorCurve wraps a standardized curve but substitutes the
// PACE-mapped generator point for ScalarBaseMult, since mapping
// replaces the domain's base point without changing its field,
// order, or cofactor.
type mappedGeneratorCurve struct {
	elliptic.Curve
	gx, gy *big.Int
}

func (c *mappedGeneratorCurve) ScalarBaseMult(k []byte) (*big.Int, *big.Int) {
	return c.Curve.ScalarMult(c.gx, c.gy, k)
}

// finishPACE computes and exchanges the mutual authentication tokens:
// each side MACs the *other* party's ephemeral public key (TR-03110
// §4.2 step 4), so ownPub feeds the value this reader expects back
// from the chip and peerPub feeds the token it sends.
func finishPACE(t Transmitter, algo params.PACEAlgorithm, shared, ownPub, peerPub []byte, pkTag byte) (*securemessaging.Keys, error) {
	ksEnc := xcrypto.KDF(algo.Cipher, shared, nil, xcrypto.KDFModeEnc)
	ksMac := xcrypto.KDF(algo.Cipher, shared, nil, xcrypto.KDFModeMac)

	token, err := paceToken(algo, ksMac, pkTag, peerPub)
	if err != nil {
		return nil, errors.Wrap(err, "compute T_IFD")
	}

	authResp, err := transmitExpectSuccess(t, apducat.GeneralAuthenticate(wrap7C(tagAuthIFD, token), 256))
	if err != nil {
		return nil, errors.Wrap(err, "General Authenticate (token exchange)")
	}

	chipToken, err := extractTaggedDO(authResp.Data, tagAuthIC)
	if err != nil {
		return nil, err
	}

	expected, err := paceToken(algo, ksMac, pkTag, ownPub)
	if err != nil {
		return nil, errors.Wrap(err, "compute expected T_IC")
	}
	if !ctEqual(expected, chipToken) {
		return nil, ErrPACETokenMismatch
	}

	return securemessaging.NewKeys(algo.Cipher, ksEnc, ksMac, nil), nil
}

// paceToken computes MAC_{KSmac}(7F49-wrapped OID || pk_tag-wrapped
// public key)[0:8], padding method 2 first for the 3DES MAC.
func paceToken(algo params.PACEAlgorithm, ksMac []byte, pkTag byte, pub []byte) ([]byte, error) {
	oid := paceOIDForAlgorithm(algo)
	inner := append(asn1.EncodeByteTag(tagOID, oid.Encode()), asn1.EncodeByteTag(pkTag, pub)...)
	tag7F49 := asn1.Tag{Class: asn1.ClassApplication, Constructed: true, Number: 0x49}
	tlv := asn1.Encode(tag7F49, inner)

	switch algo.Cipher {
	case xcrypto.CipherTDESEDE2:
		var key16 [16]byte
		copy(key16[:], ksMac)
		full, err := xcrypto.RetailMAC(key16, xcrypto.Pad(tlv, 8))
		if err != nil {
			return nil, err
		}
		return full[:], nil
	default:
		full, err := xcrypto.AESCMAC(ksMac, tlv)
		if err != nil {
			return nil, err
		}
		trunc := xcrypto.TruncateMAC(full[:])
		return trunc[:], nil
	}
}

func paceOIDForAlgorithm(algo params.PACEAlgorithm) asn1.ObjectIdentifier {
	base := asn1.NewObjectIdentifier(0, 4, 0, 127, 0, 7, 2, 2, 4)
	var arc uint32 = 1
	if algo.KeyAgreement == params.KeyAgreementECDH {
		arc = 2
	}
	var cipherArc uint32
	switch algo.Cipher {
	case xcrypto.CipherTDESEDE2:
		cipherArc = 1
	case xcrypto.CipherAES128:
		cipherArc = 2
	case xcrypto.CipherAES192:
		cipherArc = 3
	case xcrypto.CipherAES256:
		cipherArc = 4
	}
	return base.Append(arc, cipherArc)
}

func wrap7C(innerTag byte, value []byte) []byte {
	return asn1.EncodeByteTag(tag7C, asn1.EncodeByteTag(innerTag, value))
}

func extractTaggedDO(data []byte, tag byte) ([]byte, error) {
	node, err := asn1.Parse(data)
	if err != nil {
		return nil, errors.Wrap(err, "parse dynamic authentication data")
	}
	child := node.FirstChildWithByteTag(tag)
	if child == nil {
		return nil, errors.Errorf("access: response missing tag %02X", tag)
	}
	return child.Content, nil
}

func bigToFixed(v, modulus *big.Int) []byte {
	out := make([]byte, (modulus.BitLen()+7)/8)
	v.FillBytes(out)
	return out
}
