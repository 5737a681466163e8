package params

import "github.com/skythen/emrtd/asn1"

// curveOIDs maps the named-curve OIDs DG14 public keys carry in their
// SubjectPublicKeyInfo.algorithm parameters (RFC 5480 for NIST
// curves, RFC 5639 for Brainpool) to the domain this module already
// has tables for.
var curveOIDs = map[string]int{
	"1.2.840.10045.3.1.1": 192, // secp192r1 / NIST P-192
	"1.3.132.0.33":        224, // secp224r1 / NIST P-224
	"1.2.840.10045.3.1.7": 256, // secp256r1 / NIST P-256
	"1.3.132.0.34":        384, // secp384r1 / NIST P-384
	"1.3.132.0.35":        521, // secp521r1 / NIST P-521
}

var brainpoolOIDs = map[string]int{
	"1.3.36.3.3.2.8.1.1.3":  192,
	"1.3.36.3.3.2.8.1.1.5":  224,
	"1.3.36.3.3.2.8.1.1.7":  256,
	"1.3.36.3.3.2.8.1.1.9":  320,
	"1.3.36.3.3.2.8.1.1.11": 384,
	"1.3.36.3.3.2.8.1.1.13": 512,
}

// CurveByOID resolves a named-curve OID to the curve it names.
func CurveByOID(oid asn1.ObjectIdentifier) (ECGroup, bool) {
	s := oid.String()

	if bits, ok := curveOIDs[s]; ok {
		c, _ := NISTCurve(bits)
		return ECGroup{Name: s, Curve: c}, true
	}
	if bits, ok := brainpoolOIDs[s]; ok {
		c, _ := BrainpoolCurve(bits)
		return ECGroup{Name: s, Curve: c}, true
	}

	return ECGroup{}, false
}
