package xcrypto

import (
	"crypto/rand"
	"io"
	"math/big"

	"github.com/pkg/errors"
)

// DHDomain is the minimal shape DH key agreement needs from a
// standardized group: modulus, subgroup order and generator. The
// params package supplies concrete instances; xcrypto stays free of
// that dependency so the primitive is reusable on its own.
type DHDomain struct {
	P, Q, G *big.Int
}

// DHGenerateKeyPair picks a private exponent in [2, q-1] and returns
// it alongside the corresponding public value g^x mod p.
func DHGenerateKeyPair(d DHDomain, rnd io.Reader) (priv, pub *big.Int, err error) {
	if rnd == nil {
		rnd = rand.Reader
	}

	upper := new(big.Int).Sub(d.Q, big.NewInt(2))
	if upper.Sign() <= 0 {
		return nil, nil, errors.New("xcrypto: DH domain has degenerate subgroup order")
	}

	k, err := rand.Int(rnd, upper)
	if err != nil {
		return nil, nil, errors.Wrap(err, "generate DH private key")
	}

	priv = new(big.Int).Add(k, big.NewInt(2))
	pub = new(big.Int).Exp(d.G, priv, d.P)

	return priv, pub, nil
}

// DHMappedGenerator computes PACE-GM's mapped generator
// G' = G^s * H, where H = (peer public value)^(own private nonce
// exponent) mod p and s is the shared random nonce already decrypted
// from the chip's encrypted nonce.
func DHMappedGenerator(d DHDomain, peerPub, ownPriv, nonce *big.Int) *big.Int {
	h := new(big.Int).Exp(peerPub, ownPriv, d.P)
	gs := new(big.Int).Exp(d.G, nonce, d.P)
	return new(big.Int).Mod(new(big.Int).Mul(gs, h), d.P)
}

// DHSharedSecret computes (peerPub)^priv mod p and returns it as an
// unsigned big-endian byte string padded to the modulus length, so
// leading zero bytes of the secret are preserved — KDF input must not
// be silently shortened.
func DHSharedSecret(d DHDomain, priv, peerPub *big.Int) []byte {
	secret := new(big.Int).Exp(peerPub, priv, d.P)

	modLen := (d.P.BitLen() + 7) / 8
	out := make([]byte, modLen)
	secret.FillBytes(out)

	return out
}
