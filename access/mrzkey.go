// Package access implements the two password-based access-control
// protocols that open the first secure channel to an eMRTD chip: BAC
// and PACE-GM, over both the finite-field and elliptic-curve domains.
package access

import (
	"crypto/sha1" //nolint:gosec // mandated by ICAO 9303 MRZ-key derivation

	"github.com/pkg/errors"
	"github.com/skythen/emrtd/xcrypto"
)

// MRZKey derives the 24-character access key string from the three
// MRZ fields ICAO 9303 Part 11 §9.7.2 specifies: document number,
// date of birth, date of expiry, each followed by its ICAO check
// digit.
func MRZKey(documentNumber, dateOfBirth, dateOfExpiry string) (string, error) {
	docNo, err := padField(documentNumber, 9)
	if err != nil {
		return "", err
	}

	if len(dateOfBirth) != 6 || len(dateOfExpiry) != 6 {
		return "", errors.New("access: date of birth and date of expiry must be 6 characters (YYMMDD)")
	}

	cdDoc, err := checkDigit(docNo)
	if err != nil {
		return "", err
	}
	cdDob, err := checkDigit(dateOfBirth)
	if err != nil {
		return "", err
	}
	cdExp, err := checkDigit(dateOfExpiry)
	if err != nil {
		return "", err
	}

	return docNo + string(cdDoc) + dateOfBirth + string(cdDob) + dateOfExpiry + string(cdExp), nil
}

func padField(s string, length int) (string, error) {
	if len(s) > length {
		return "", errors.Errorf("access: field %q exceeds %d characters", s, length)
	}
	for len(s) < length {
		s += "<"
	}
	return s, nil
}

// checkDigit computes the ICAO 7-3-1 weighted check digit over s.
func checkDigit(s string) (byte, error) {
	weights := [3]int{7, 3, 1}
	sum := 0

	for i := 0; i < len(s); i++ {
		v, err := charValue(s[i])
		if err != nil {
			return 0, err
		}
		sum += v * weights[i%3]
	}

	return byte('0' + sum%10), nil
}

func charValue(c byte) (int, error) {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0'), nil
	case c == '<' || c == ' ':
		return 0, nil
	case c >= 'A' && c <= 'Z':
		return int(c-'A') + 10, nil
	default:
		return 0, errors.Errorf("access: invalid MRZ character %q", c)
	}
}

// Kseed derives the 3DES-EDE2/SHA-1 seed both BAC and PACE key
// derivation start from: the first 16 bytes of SHA-1(mrzKey).
func Kseed(mrzKey string) [16]byte {
	sum := sha1.Sum([]byte(mrzKey))
	var seed [16]byte
	copy(seed[:], sum[:16])
	return seed
}

// DeriveBACKeys derives the static access keys (Kenc, Kmac) used to
// secure the BAC challenge-response exchange itself; the session
// keys of the resulting channel are derived separately, from the
// shared BAC seed K, not from these.
func DeriveBACKeys(mrzKey string) (kenc, kmac [16]byte) {
	seed := Kseed(mrzKey)
	copy(kenc[:], xcrypto.KDF(xcrypto.CipherTDESEDE2, seed[:], nil, xcrypto.KDFModeEnc))
	copy(kmac[:], xcrypto.KDF(xcrypto.CipherTDESEDE2, seed[:], nil, xcrypto.KDFModeMac))
	return kenc, kmac
}
