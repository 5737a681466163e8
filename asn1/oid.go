package asn1

import (
	"strconv"
	"strings"
)

// ObjectIdentifier is an ordered sequence of non-negative integer
// components, e.g. {0 4 0 127 0 7 2 2 4 2 2} for id-PACE-ECDH-GM-AES-CBC-CMAC-128.
type ObjectIdentifier []uint32

// NewObjectIdentifier builds an ObjectIdentifier from its components.
func NewObjectIdentifier(components ...uint32) ObjectIdentifier {
	oid := make(ObjectIdentifier, len(components))
	copy(oid, components)
	return oid
}

// Append returns a new ObjectIdentifier with components appended to oid.
func (oid ObjectIdentifier) Append(components ...uint32) ObjectIdentifier {
	out := make(ObjectIdentifier, 0, len(oid)+len(components))
	out = append(out, oid...)
	out = append(out, components...)
	return out
}

// HasPrefix reports whether prefix is a (non-strict) leading subsequence of oid.
func (oid ObjectIdentifier) HasPrefix(prefix ObjectIdentifier) bool {
	if len(prefix) > len(oid) {
		return false
	}

	for i, c := range prefix {
		if oid[i] != c {
			return false
		}
	}

	return true
}

// Equal reports whether oid and other have identical components.
func (oid ObjectIdentifier) Equal(other ObjectIdentifier) bool {
	if len(oid) != len(other) {
		return false
	}

	for i, c := range oid {
		if other[i] != c {
			return false
		}
	}

	return true
}

// String renders the dotted-decimal form, e.g. "0.4.0.127.0.7.2.2.4.2.2".
func (oid ObjectIdentifier) String() string {
	parts := make([]string, len(oid))
	for i, c := range oid {
		parts[i] = strconv.FormatUint(uint64(c), 10)
	}
	return strings.Join(parts, ".")
}

// Encode returns the DER content octets of the OBJECT IDENTIFIER
// value (without tag/length): the first two components are combined
// as 40*X+Y, every component thereafter is its own base-128
// subidentifier. A subidentifier's leading zero octet is always
// elided — base-128 encoding of a value never emits one except for
// the value zero itself, which is encoded as the single octet 0x00.
func (oid ObjectIdentifier) Encode() []byte {
	if len(oid) < 2 {
		return nil
	}

	out := []byte{byte(oid[0]*40 + oid[1])}
	for _, c := range oid[2:] {
		out = append(out, encodeBase128(c)...)
	}

	return out
}

func encodeBase128(v uint32) []byte {
	if v == 0 {
		return []byte{0x00}
	}

	var b []byte
	for v > 0 {
		b = append([]byte{byte(v & 0x7F)}, b...)
		v >>= 7
	}

	for i := 0; i < len(b)-1; i++ {
		b[i] |= 0x80
	}

	return b
}

// ParseObjectIdentifier decodes the DER content octets of an OBJECT
// IDENTIFIER value (as found in Node.Content for a node tagged
// TagObjectIdentifier) into an ObjectIdentifier.
func ParseObjectIdentifier(content []byte) (ObjectIdentifier, error) {
	if len(content) == 0 {
		return nil, ErrTruncated
	}

	first := content[0]
	oid := ObjectIdentifier{uint32(first / 40), uint32(first % 40)}

	v := uint32(0)
	started := false

	for _, b := range content[1:] {
		v = v<<7 | uint32(b&0x7F)
		started = true

		if b&0x80 == 0 {
			oid = append(oid, v)
			v = 0
			started = false
		}
	}

	if started {
		return nil, ErrTruncated
	}

	return oid, nil
}
