package xcrypto

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestAESCMACRFC4493Vectors checks AESCMAC against the first two
// published AES-128-CMAC test vectors from RFC 4493 section 4.
func TestAESCMACRFC4493Vectors(t *testing.T) {
	key := mustHex(t, "2b7e151628aed2a6abf7158809cf4f3c")

	cases := []struct {
		name string
		msg  string
		want string
	}{
		{"empty message", "", "bb1d6929e95937287fa37d129b756746"},
		{"one block", "6bc1bee22e409f96e93d7e117393172a", "070a16b46b4d4144f79bdd9dd04a287c"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			msg := mustHex(t, tc.msg)
			mac, err := AESCMAC(key, msg)
			require.NoError(t, err)
			require.Equal(t, tc.want, hex.EncodeToString(mac[:]))
		})
	}
}

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	return b
}

func TestTruncateMAC(t *testing.T) {
	full := []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16}
	require.Equal(t, [8]byte{1, 2, 3, 4, 5, 6, 7, 8}, TruncateMAC(full))
}

func TestRetailMACIsDeterministicAndKeySensitive(t *testing.T) {
	var key1, key2 [16]byte
	copy(key1[:], []byte("0123456789ABCDEF"))
	copy(key2[:], []byte("FEDCBA9876543210"))

	src := Pad([]byte("external authenticate cryptogram"), 8)

	mac1, err := RetailMAC(key1, src)
	require.NoError(t, err)
	mac2, err := RetailMAC(key1, src)
	require.NoError(t, err)
	require.Equal(t, mac1, mac2)

	mac3, err := RetailMAC(key2, src)
	require.NoError(t, err)
	require.NotEqual(t, mac1, mac3)
}

func TestRetailMACRejectsUnalignedInput(t *testing.T) {
	var key [16]byte
	_, err := RetailMAC(key, []byte{0x01, 0x02, 0x03})
	require.Error(t, err)
}

// TestRetailMACICAOWorkedExample reproduces the ICAO 9303 Part 11
// Appendix D.3 BAC worked example: the retail MAC of the padded
// E.IFD cryptogram under the static Kmac derived in that same example
// must come out to M.IFD = 5F1448EEA8AD90A7.
func TestRetailMACICAOWorkedExample(t *testing.T) {
	var kmac [16]byte
	copy(kmac[:], mustHex(t, "7962D9ECE03D1ACD4C76089DCE131543"))

	msg := Pad(mustHex(t, "72C29C2371CC9BDB65B779B8E8D37B29ECC154AA56A8799FAE2F498F76ED92F2"), 8)

	mac, err := RetailMAC(kmac, msg)
	require.NoError(t, err)
	require.Equal(t, "5f1448eea8ad90a7", hex.EncodeToString(mac[:]))
}
