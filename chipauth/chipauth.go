// Package chipauth implements Chip Authentication: an ephemeral
// Diffie-Hellman exchange run inside the already-established secure
// channel, proving the chip holds the private half of the static key
// published in DG14, and re-keying the channel from its result.
package chipauth

import (
	"crypto/elliptic"
	"io"
	"math/big"

	"github.com/pkg/errors"
	"github.com/skythen/apdu"
	"github.com/skythen/emrtd/apducat"
	"github.com/skythen/emrtd/asn1"
	"github.com/skythen/emrtd/params"
	"github.com/skythen/emrtd/securemessaging"
	"github.com/skythen/emrtd/xcrypto"
)

// chunkSize is the fragment size General Authenticate chaining uses
// for the AES path's ephemeral public key transport.
const chunkSize = 224

// Transmitter sends an already Secure-Messaging-protected command and
// returns the unprotected response; the caller (the orchestrator)
// owns protect/unprotect around each call.
type Transmitter interface {
	Transmit(capdu apdu.Capdu) (apdu.Rapdu, error)
}

// StaticKey is the chip's static Chip Authentication public key read
// from DG14's ChipAuthenticationPublicKeyInfo.
type StaticKey struct {
	KeyAgreement params.KeyAgreement
	// DH fields.
	DH     xcrypto.DHDomain
	DHPub  *big.Int
	// ECDH fields.
	Curve  elliptic.Curve
	ECPub  xcrypto.ECPoint
	// KeyID disambiguates multiple static keys, -1 if the chip
	// published only one.
	KeyID int64
}

// ErrNoMatchingCAInfo is returned when the caller has no
// ChipAuthenticationInfo matching the static key's KeyID and the
// default-to-3DES fallback itself is impossible to apply (the static
// key's type isn't DH or ECDH).
var ErrNoMatchingCAInfo = errors.New("chipauth: no ChipAuthenticationInfo matches the static key and no safe default applies")

// ResolveAlgorithm picks the CA protocol for key from a matching
// ChipAuthenticationInfo OID, or defaults to the 3DES-CBC-CBC variant
// for the key's agreement type when no info entry's KeyID matches —
// the source behavior this reader preserves, safe only when the chip
// actually supports 3DES.
func ResolveAlgorithm(key StaticKey, infos []params.CAAlgorithm, infoKeyIDs []int64) (params.CAAlgorithm, error) {
	for i, info := range infos {
		if key.KeyID >= 0 && infoKeyIDs[i] == key.KeyID {
			return info, nil
		}
	}

	switch key.KeyAgreement {
	case params.KeyAgreementDH:
		return params.CAAlgorithm{KeyAgreement: params.KeyAgreementDH, Cipher: xcrypto.CipherTDESEDE2}, nil
	case params.KeyAgreementECDH:
		return params.CAAlgorithm{KeyAgreement: params.KeyAgreementECDH, Cipher: xcrypto.CipherTDESEDE2}, nil
	default:
		return params.CAAlgorithm{}, ErrNoMatchingCAInfo
	}
}

// caOID builds the ChipAuthenticationInfo protocol OID for algo, used
// in the AES path's MSE:Set AT.
func caOID(algo params.CAAlgorithm) asn1.ObjectIdentifier {
	base := asn1.NewObjectIdentifier(0, 4, 0, 127, 0, 7, 2, 2, 3)
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

// Run executes Chip Authentication against key under algo, sending
// APDUs through t (which must already apply Secure Messaging using
// the channel being superseded), and returns the fresh session keys
// with SSC reset to zero.
func Run(t Transmitter, algo params.CAAlgorithm, key StaticKey, keyID *int64, rnd io.Reader) (*securemessaging.Keys, error) {
	switch key.KeyAgreement {
	case params.KeyAgreementDH:
		return runDH(t, algo, key, keyID, rnd)
	case params.KeyAgreementECDH:
		return runECDH(t, algo, key, keyID, rnd)
	default:
		return nil, errors.New("chipauth: static key has no recognized key-agreement type")
	}
}

func runDH(t Transmitter, algo params.CAAlgorithm, key StaticKey, keyID *int64, rnd io.Reader) (*securemessaging.Keys, error) {
	priv, pub, err := xcrypto.DHGenerateKeyPair(key.DH, rnd)
	if err != nil {
		return nil, errors.Wrap(err, "generate ephemeral DH key pair")
	}

	pubBytes := make([]byte, (key.DH.P.BitLen()+7)/8)
	pub.FillBytes(pubBytes)

	if err := sendEphemeralPublicKey(t, algo, pubBytes, keyID); err != nil {
		return nil, err
	}

	shared := xcrypto.DHSharedSecret(key.DH, priv, key.DHPub)

	return finish(algo, shared)
}

func runECDH(t Transmitter, algo params.CAAlgorithm, key StaticKey, keyID *int64, rnd io.Reader) (*securemessaging.Keys, error) {
	priv, pub, err := xcrypto.ECGenerateKeyPair(key.Curve, rnd)
	if err != nil {
		return nil, errors.Wrap(err, "generate ephemeral EC key pair")
	}

	pubBytes := xcrypto.EncodeUncompressedPoint(key.Curve, pub)

	if err := sendEphemeralPublicKey(t, algo, pubBytes, keyID); err != nil {
		return nil, err
	}

	shared := xcrypto.ECSharedSecret(key.Curve, priv, key.ECPub)

	return finish(algo, shared)
}

func sendEphemeralPublicKey(t Transmitter, algo params.CAAlgorithm, pub []byte, keyID *int64) error {
	if algo.Cipher == xcrypto.CipherTDESEDE2 {
		data := asn1.EncodeByteTag(0x91, pub)
		if keyID != nil {
			data = append(data, asn1.EncodeByteTag(0x84, big.NewInt(*keyID).Bytes())...)
		}
		_, err := t.Transmit(apducat.MSESetKAT(data))
		if err != nil {
			return errors.Wrap(err, "MSE:Set KAT")
		}
		return nil
	}

	mseData := asn1.EncodeByteTag(0x80, caOID(algo).Encode())
	if keyID != nil {
		mseData = append(mseData, asn1.EncodeByteTag(0x84, big.NewInt(*keyID).Bytes())...)
	}
	if _, err := t.Transmit(apducat.MSESetATInternal(mseData)); err != nil {
		return errors.Wrap(err, "MSE:Set AT")
	}

	tlv := asn1.EncodeByteTag(0x80, pub)

	for offset := 0; offset < len(tlv); offset += chunkSize {
		end := offset + chunkSize
		last := end >= len(tlv)
		if last {
			end = len(tlv)
		}

		resp, err := t.Transmit(apducat.GeneralAuthenticateChained(tlv[offset:end], !last, 0))
		if err != nil {
			return errors.Wrap(err, "General Authenticate (ephemeral public key)")
		}
		if !resp.IsSuccess() && last {
			return errors.Errorf("chipauth: General Authenticate failed with status %02X%02X", resp.SW1, resp.SW2)
		}
	}

	return nil
}

func finish(algo params.CAAlgorithm, shared []byte) (*securemessaging.Keys, error) {
	ksEnc := xcrypto.KDF(algo.Cipher, shared, nil, xcrypto.KDFModeEnc)
	ksMac := xcrypto.KDF(algo.Cipher, shared, nil, xcrypto.KDFModeMac)
	return securemessaging.NewKeys(algo.Cipher, ksEnc, ksMac, nil), nil
}
