package xcrypto

import (
	"crypto/elliptic"
	"crypto/rand"
	"io"
	"math/big"

	"github.com/pkg/errors"
)

// ECPoint is an affine point on a short Weierstrass curve. The zero
// value is not a valid point; use a curve's base point or a decoded
// public key.
type ECPoint struct {
	X, Y *big.Int
}

// ECGenerateKeyPair picks a uniformly random scalar in [1, n-1] and
// returns it with the corresponding public point priv*G.
func ECGenerateKeyPair(curve elliptic.Curve, rnd io.Reader) (priv *big.Int, pub ECPoint, err error) {
	if rnd == nil {
		rnd = rand.Reader
	}

	n := curve.Params().N

	upper := new(big.Int).Sub(n, big.NewInt(1))
	k, err := rand.Int(rnd, upper)
	if err != nil {
		return nil, ECPoint{}, errors.Wrap(err, "generate EC private key")
	}

	priv = new(big.Int).Add(k, big.NewInt(1))

	x, y := curve.ScalarBaseMult(priv.Bytes())
	pub = ECPoint{X: x, Y: y}

	return priv, pub, nil
}

// ECMappedGenerator computes PACE-ECDH-GM's mapped generator point
// G' = s*G + H where H = priv*peerPub is the plain ECDH shared point
// and s is the chip's decrypted nonce, reduced mod the curve order.
func ECMappedGenerator(curve elliptic.Curve, peerPub ECPoint, priv, nonce *big.Int) ECPoint {
	hx, hy := curve.ScalarMult(peerPub.X, peerPub.Y, priv.Bytes())

	n := curve.Params().N
	s := new(big.Int).Mod(nonce, n)

	gx, gy := curve.ScalarBaseMult(s.Bytes())

	rx, ry := curve.Add(gx, gy, hx, hy)

	return ECPoint{X: rx, Y: ry}
}

// ECSharedSecret computes priv*peerPub and returns the affine X
// coordinate as an unsigned big-endian byte string padded to the
// field size, matching the x-coordinate-only convention ICAO 9303 and
// SEC1 use for ECDH shared secrets.
func ECSharedSecret(curve elliptic.Curve, priv *big.Int, peerPub ECPoint) []byte {
	x, _ := curve.ScalarMult(peerPub.X, peerPub.Y, priv.Bytes())

	byteLen := (curve.Params().BitSize + 7) / 8
	out := make([]byte, byteLen)
	x.FillBytes(out)

	return out
}

// EncodeUncompressedPoint renders a point in SEC1 uncompressed form
// (0x04 || X || Y), the form PACE and Chip Authentication exchange in
// dynamic authentication data objects.
func EncodeUncompressedPoint(curve elliptic.Curve, p ECPoint) []byte {
	byteLen := (curve.Params().BitSize + 7) / 8
	out := make([]byte, 1+2*byteLen)
	out[0] = 0x04
	p.X.FillBytes(out[1 : 1+byteLen])
	p.Y.FillBytes(out[1+byteLen:])
	return out
}

// DecodeUncompressedPoint parses a SEC1 uncompressed point and
// verifies it lies on curve.
func DecodeUncompressedPoint(curve elliptic.Curve, data []byte) (ECPoint, error) {
	byteLen := (curve.Params().BitSize + 7) / 8
	if len(data) != 1+2*byteLen || data[0] != 0x04 {
		return ECPoint{}, errors.New("xcrypto: not a SEC1 uncompressed point")
	}

	x := new(big.Int).SetBytes(data[1 : 1+byteLen])
	y := new(big.Int).SetBytes(data[1+byteLen:])

	if !curve.IsOnCurve(x, y) {
		return ECPoint{}, errors.New("xcrypto: point is not on curve")
	}

	return ECPoint{X: x, Y: y}, nil
}
