// Package pa implements Passive Authentication: verifying that a
// Security Object Document's signature is valid and that every Data
// Group the chip returned hashes to the value the issuer signed.
package pa

import (
	"crypto/subtle"

	"github.com/pkg/errors"
	"github.com/skythen/emrtd/cms"
	"github.com/skythen/emrtd/lds"
	"github.com/skythen/emrtd/xcrypto"
)

// ErrSignedDataInvalid is returned when the SOD's CMS signature does
// not verify. Signer-certificate chain validation is out of scope;
// this checks only that the signature over the encapsulated
// LDSSecurityObject is cryptographically sound.
var ErrSignedDataInvalid = errors.New("pa: SOD signed data is invalid")

// HashMismatchError reports that a Data Group's recomputed hash does
// not match the value the issuer signed into the SOD.
type HashMismatchError struct {
	Tag lds.Tag
}

func (e *HashMismatchError) Error() string {
	return errors.Errorf("pa: data group hash mismatch for tag %d", e.Tag).Error()
}

// HashNotFoundError reports that the SOD's LDSSecurityObject has no
// entry for a Data Group the chip returned.
type HashNotFoundError struct {
	Tag lds.Tag
}

func (e *HashNotFoundError) Error() string {
	return errors.Errorf("pa: no hash found in SOD for tag %d", e.Tag).Error()
}

// Verify runs Passive Authentication against a decoded SOD and the
// set of Data Groups successfully read from the chip (raw BER bytes,
// keyed by tag; COM and SOD itself are not checked even if present).
//
// It first verifies the SOD's CMS signature, then recomputes and
// compares the digest of every supplied Data Group against the
// SOD-declared expected hash. The first failure it encounters is
// returned; callers that want to know about every mismatched DG
// should call it per DG instead of in bulk.
func Verify(sod *lds.SOD, dataGroups map[lds.Tag][]byte) error {
	if _, err := cms.Verify(sod.SignedData); err != nil {
		return errors.Wrap(err, ErrSignedDataInvalid.Error())
	}

	for tag, raw := range dataGroups {
		if tag == lds.TagCOM || tag == lds.TagSOD {
			continue
		}

		expected, ok := sod.DataGroupHashes[tag]
		if !ok {
			return &HashNotFoundError{Tag: tag}
		}

		actual := xcrypto.Sum(sod.DigestAlgorithm, raw)
		if subtle.ConstantTimeCompare(actual, expected) != 1 {
			return &HashMismatchError{Tag: tag}
		}
	}

	return nil
}
