package params

import "crypto/elliptic"

// ECGroup names a standardized elliptic curve domain by its ICAO 9303
// parameter-id.
type ECGroup struct {
	Name  string
	Curve elliptic.Curve
}

// ecByParameterID is the standardized parameter-id table for the
// elliptic-curve branch of PACE-GM, BSI TR-03110 Table. IDs 0-2 are
// reserved for the GFP groups in dh.go.
var ecByParameterID = map[int]ECGroup{
	8:  {"NIST P-192", NISTP192},
	9:  {"brainpoolP192r1", BrainpoolP192r1},
	10: {"NIST P-224", mustCurve(elliptic.P224())},
	11: {"brainpoolP224r1", BrainpoolP224r1},
	12: {"NIST P-256", mustCurve(elliptic.P256())},
	13: {"brainpoolP256r1", BrainpoolP256r1},
	14: {"brainpoolP320r1", BrainpoolP320r1},
	15: {"NIST P-384", mustCurve(elliptic.P384())},
	16: {"brainpoolP384r1", BrainpoolP384r1},
	17: {"brainpoolP512r1", BrainpoolP512r1},
	18: {"NIST P-521", mustCurve(elliptic.P521())},
}

func mustCurve(c elliptic.Curve) elliptic.Curve { return c }

// ECGroupByParameterID resolves a PACEInfo parameter-id to the curve
// it names, for the elliptic-curve generic-mapping branch.
func ECGroupByParameterID(id int) (ECGroup, bool) {
	g, ok := ecByParameterID[id]
	return g, ok
}

// IsECParameterID reports whether id selects an elliptic-curve group
// rather than a finite-field group, letting the PACE orchestration
// dispatch on the parameter-id alone before it knows the key
// agreement algorithm from the PACEInfo OID.
func IsECParameterID(id int) bool {
	_, ok := ecByParameterID[id]
	return ok
}
