package xcrypto

import (
	"crypto/sha1" //nolint:gosec // mandated by BAC/PACE and SHA-1 SOD digests
	"crypto/sha256"
	"crypto/sha512"
	"hash"

	"github.com/pkg/errors"
	"github.com/skythen/emrtd/asn1"
)

// HashAlgorithm is one of the five digest functions ICAO 9303 uses,
// either for KDF, token MAC derivation, or SOD digest verification.
type HashAlgorithm int

const (
	HashSHA1 HashAlgorithm = iota
	HashSHA224
	HashSHA256
	HashSHA384
	HashSHA512
)

// New returns a fresh hash.Hash for h.
func New(h HashAlgorithm) hash.Hash {
	switch h {
	case HashSHA1:
		return sha1.New()
	case HashSHA224:
		return sha256.New224()
	case HashSHA256:
		return sha256.New()
	case HashSHA384:
		return sha512.New384()
	case HashSHA512:
		return sha512.New()
	default:
		panic("xcrypto: unknown hash algorithm")
	}
}

// Sum hashes data in one shot under h.
func Sum(h HashAlgorithm, data []byte) []byte {
	d := New(h)
	d.Write(data)
	return d.Sum(nil)
}

// oidSHA1 and friends are the canonical digest-algorithm OIDs used by
// both the PKCS#1/CMS AlgorithmIdentifier table and the ICAO
// LDSSecurityObject's digestAlgorithm field.
var (
	oidSHA1   = asn1.NewObjectIdentifier(1, 3, 14, 3, 2, 26)
	oidSHA224 = asn1.NewObjectIdentifier(2, 16, 840, 1, 101, 3, 4, 2, 4)
	oidSHA256 = asn1.NewObjectIdentifier(2, 16, 840, 1, 101, 3, 4, 2, 1)
	oidSHA384 = asn1.NewObjectIdentifier(2, 16, 840, 1, 101, 3, 4, 2, 2)
	oidSHA512 = asn1.NewObjectIdentifier(2, 16, 840, 1, 101, 3, 4, 2, 3)
)

// HashAlgorithmByOID resolves the digestAlgorithm OID found in a
// SignedData/LDSSecurityObject AlgorithmIdentifier to a HashAlgorithm.
func HashAlgorithmByOID(oid asn1.ObjectIdentifier) (HashAlgorithm, error) {
	switch {
	case oid.Equal(oidSHA1):
		return HashSHA1, nil
	case oid.Equal(oidSHA224):
		return HashSHA224, nil
	case oid.Equal(oidSHA256):
		return HashSHA256, nil
	case oid.Equal(oidSHA384):
		return HashSHA384, nil
	case oid.Equal(oidSHA512):
		return HashSHA512, nil
	default:
		return 0, errors.Errorf("xcrypto: unknown digest algorithm OID %s", oid.String())
	}
}

// KDFHashFor returns the hash function mandated for KDF and token
// derivation by a given symmetric cipher: SHA-1 for 3DES and AES-128,
// SHA-256 for AES-192/256.
func KDFHashFor(c SymmetricCipher) HashAlgorithm {
	switch c {
	case CipherTDESEDE2, CipherAES128:
		return HashSHA1
	default:
		return HashSHA256
	}
}
