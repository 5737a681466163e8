package params

import (
	"github.com/pkg/errors"
	"github.com/skythen/emrtd/asn1"
	"github.com/skythen/emrtd/xcrypto"
)

// bsiTR03110 is the root arc BSI TR-03110 registers its SecurityInfo
// protocol OIDs under: id-icao-mrtd-security (0.4.0.127.0.7.2.2).
var bsiTR03110 = asn1.NewObjectIdentifier(0, 4, 0, 127, 0, 7, 2, 2)

// id-PACE, id-CA and id-PK, the three SecurityInfo families this
// module reads out of EF.CardAccess/EF.DG14.
var (
	oidPACE = bsiTR03110.Append(4)
	oidCA   = bsiTR03110.Append(3)
	oidPK   = bsiTR03110.Append(1)
)

// ResolvePKOID decodes a ChipAuthenticationPublicKeyInfo.protocol OID
// into the key-agreement type it names (id-PK-DH vs id-PK-ECDH).
func ResolvePKOID(oid asn1.ObjectIdentifier) (KeyAgreement, error) {
	if !oid.HasPrefix(oidPK) {
		return 0, errors.Errorf("params: %s is not a chip-authentication public-key OID", oid)
	}

	suffix := oid[len(oidPK):]
	if len(suffix) != 1 {
		return 0, errors.Errorf("params: malformed id-PK OID %s", oid)
	}

	switch suffix[0] {
	case 1:
		return KeyAgreementDH, nil
	case 2:
		return KeyAgreementECDH, nil
	default:
		return 0, errors.Errorf("params: unknown id-PK arc in %s", oid)
	}
}

// Mapping identifies the key-agreement and nonce-mapping function a
// PACEInfo OID selects. GM is Generic Mapping, the only mapping this
// module implements; IM (Integrated Mapping) and CAM (Chip
// Authentication Mapping) are recognized so callers get a clean
// unsupported-mapping error instead of misreading the OID.
type Mapping int

const (
	MappingGeneric Mapping = iota
	MappingIntegrated
	MappingCAM
)

// KeyAgreement distinguishes the finite-field and elliptic-curve
// branches of PACE and Chip Authentication.
type KeyAgreement int

const (
	KeyAgreementDH KeyAgreement = iota
	KeyAgreementECDH
)

// PACEAlgorithm is the fully decoded meaning of a PACEInfo protocol
// OID: which key agreement, which mapping, and which cipher/KDF pair
// secures the resulting channel.
type PACEAlgorithm struct {
	KeyAgreement KeyAgreement
	Mapping      Mapping
	Cipher       xcrypto.SymmetricCipher
}

// ResolvePACEOID decodes a PACEInfo.protocol OID into its algorithm
// components, or reports an error when the arc is one this module
// doesn't implement.
func ResolvePACEOID(oid asn1.ObjectIdentifier) (PACEAlgorithm, error) {
	if !oid.HasPrefix(oidPACE) {
		return PACEAlgorithm{}, errors.Errorf("params: %s is not a PACE protocol OID", oid)
	}

	suffix := oid[len(oidPACE):]
	if len(suffix) != 2 {
		return PACEAlgorithm{}, errors.Errorf("params: malformed PACE protocol OID %s", oid)
	}

	algo := PACEAlgorithm{}

	switch suffix[0] {
	case 1:
		algo.KeyAgreement, algo.Mapping = KeyAgreementDH, MappingGeneric
	case 2:
		algo.KeyAgreement, algo.Mapping = KeyAgreementECDH, MappingGeneric
	case 3:
		algo.KeyAgreement, algo.Mapping = KeyAgreementDH, MappingIntegrated
	case 4:
		algo.KeyAgreement, algo.Mapping = KeyAgreementECDH, MappingIntegrated
	case 6:
		algo.KeyAgreement, algo.Mapping = KeyAgreementECDH, MappingCAM
	default:
		return PACEAlgorithm{}, errors.Errorf("params: unknown PACE mapping arc in %s", oid)
	}

	cipher, err := cipherBySuffix(suffix[1])
	if err != nil {
		return PACEAlgorithm{}, err
	}
	algo.Cipher = cipher

	if algo.Mapping != MappingGeneric {
		return algo, errors.Errorf("params: %s selects a mapping this reader does not support", mappingName(algo.Mapping))
	}

	return algo, nil
}

// CAAlgorithm is the decoded meaning of a ChipAuthenticationInfo
// protocol OID.
type CAAlgorithm struct {
	KeyAgreement KeyAgreement
	Cipher       xcrypto.SymmetricCipher
}

// ResolveCAOID decodes a ChipAuthenticationInfo.protocol OID.
func ResolveCAOID(oid asn1.ObjectIdentifier) (CAAlgorithm, error) {
	if !oid.HasPrefix(oidCA) {
		return CAAlgorithm{}, errors.Errorf("params: %s is not a Chip Authentication protocol OID", oid)
	}

	suffix := oid[len(oidCA):]
	if len(suffix) != 2 {
		return CAAlgorithm{}, errors.Errorf("params: malformed CA protocol OID %s", oid)
	}

	algo := CAAlgorithm{}

	switch suffix[0] {
	case 1:
		algo.KeyAgreement = KeyAgreementDH
	case 2:
		algo.KeyAgreement = KeyAgreementECDH
	default:
		return CAAlgorithm{}, errors.Errorf("params: unknown CA key agreement arc in %s", oid)
	}

	cipher, err := cipherBySuffix(suffix[1])
	if err != nil {
		return CAAlgorithm{}, err
	}
	algo.Cipher = cipher

	return algo, nil
}

func cipherBySuffix(n uint32) (xcrypto.SymmetricCipher, error) {
	switch n {
	case 1:
		return xcrypto.CipherTDESEDE2, nil
	case 2:
		return xcrypto.CipherAES128, nil
	case 3:
		return xcrypto.CipherAES192, nil
	case 4:
		return xcrypto.CipherAES256, nil
	default:
		return 0, errors.Errorf("params: unknown cipher suffix arc %d", n)
	}
}

func mappingName(m Mapping) string {
	switch m {
	case MappingGeneric:
		return "Generic Mapping"
	case MappingIntegrated:
		return "Integrated Mapping"
	case MappingCAM:
		return "Chip Authentication Mapping"
	default:
		return "unknown mapping"
	}
}

// IsPACEInfoOID and IsCAInfoOID let SecurityInfo decoding classify a
// SET member by its protocol OID's arc alone, before attempting full
// decode of its parameters.
func IsPACEInfoOID(oid asn1.ObjectIdentifier) bool { return oid.HasPrefix(oidPACE) }
func IsCAInfoOID(oid asn1.ObjectIdentifier) bool   { return oid.HasPrefix(oidCA) }
func IsPKInfoOID(oid asn1.ObjectIdentifier) bool   { return oid.HasPrefix(oidPK) }
