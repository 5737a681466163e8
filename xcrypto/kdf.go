package xcrypto

import "encoding/binary"

// KDF counter modes selecting the derived key's purpose, per ICAO
// 9303 Part 11 §9.7.1.
const (
	KDFModeEnc  uint32 = 1
	KDFModeMac  uint32 = 2
	KDFModePACE uint32 = 3
)

// KDF derives a session key from a shared secret k, an optional
// nonce n (nil for BAC, the PACE nonce for PACE), and a mode counter,
// then truncates the digest per the target cipher: the first 16 bytes
// for 3DES-EDE2 (k1||k2, with each byte's low bit set for odd DES
// parity; NewBlock expands it to k1||k2||k1), the first 16/24/32 bytes
// for AES-128/192/256.
func KDF(c SymmetricCipher, k, n []byte, mode uint32) []byte {
	h := New(KDFHashFor(c))

	h.Write(k)
	h.Write(n)

	var ctr [4]byte
	binary.BigEndian.PutUint32(ctr[:], mode)
	h.Write(ctr[:])

	digest := h.Sum(nil)

	switch c {
	case CipherTDESEDE2:
		key := digest[:16]
		for i, b := range key {
			p := b ^ b>>4
			p ^= p >> 2
			p ^= p >> 1
			if p&1 == 0 {
				key[i] = b ^ 1
			}
		}
		return key
	case CipherAES128:
		return digest[:16]
	case CipherAES192:
		return digest[:24]
	case CipherAES256:
		return digest[:32]
	default:
		panic("xcrypto: unknown cipher")
	}
}
