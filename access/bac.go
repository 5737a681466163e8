package access

import (
	"crypto/des"
	"crypto/subtle"
	"io"

	"github.com/pkg/errors"
	"github.com/skythen/emrtd/apducat"
	"github.com/skythen/emrtd/securemessaging"
	"github.com/skythen/emrtd/xcrypto"
)

func ctEqual(a, b []byte) bool {
	return len(a) == len(b) && subtle.ConstantTimeCompare(a, b) == 1
}

// ErrInvalidMRZKey is returned when EXTERNAL AUTHENTICATE comes back
// with a non-success status word or an empty response, the chip's
// signal that the presented key was wrong.
var ErrInvalidMRZKey = errors.New("access: invalid MRZ key")

// ErrBACAuthenticationFailed covers both a malformed card response
// and a mismatching M_IC, since an implementer must treat either as
// the same outcome: the chip did not prove it holds the shared key.
var ErrBACAuthenticationFailed = errors.New("access: BAC authentication failed")

// RunBAC executes the Basic Access Control challenge-response and
// returns the resulting secure-channel keys with SSC initialized per
// §4.4 step 8. rnd supplies RND.IFD and K.IFD; pass rand.Reader absent
// a reason to inject a different source (tests wanting fixed vectors).
func RunBAC(t Transmitter, mrzKey string, rnd io.Reader) (*securemessaging.Keys, error) {
	kenc, kmac := DeriveBACKeys(mrzKey)

	resp, err := transmitExpectSuccess(t, apducat.GetChallenge())
	if err != nil {
		return nil, errors.Wrap(err, "GET CHALLENGE")
	}
	if len(resp.Data) != 8 {
		return nil, errors.New("access: GET CHALLENGE returned unexpected length")
	}
	var rndIC [8]byte
	copy(rndIC[:], resp.Data)

	var rndIFD [8]byte
	if _, err := io.ReadFull(rnd, rndIFD[:]); err != nil {
		return nil, errors.Wrap(err, "generate RND.IFD")
	}

	var kIFD [16]byte
	if _, err := io.ReadFull(rnd, kIFD[:]); err != nil {
		return nil, errors.Wrap(err, "generate K.IFD")
	}

	s := append(append(append([]byte{}, rndIFD[:]...), rndIC[:]...), kIFD[:]...)

	encBlock, err := xcrypto.NewBlock(xcrypto.CipherTDESEDE2, kenc[:])
	if err != nil {
		return nil, errors.Wrap(err, "create BAC encryption cipher")
	}

	eIFD, err := xcrypto.CBCEncrypt(encBlock, make([]byte, des.BlockSize), s)
	if err != nil {
		return nil, errors.Wrap(err, "encrypt BAC command data")
	}

	mIFD, err := xcrypto.RetailMAC(kmac, xcrypto.Pad(eIFD, des.BlockSize))
	if err != nil {
		return nil, errors.Wrap(err, "compute M_IFD")
	}

	authResp, err := transmit(t, apducat.ExternalAuthenticate(append(append([]byte{}, eIFD...), mIFD[:]...)))
	if err != nil {
		return nil, errors.Wrap(err, "EXTERNAL AUTHENTICATE")
	}
	if !authResp.IsSuccess() || len(authResp.Data) == 0 {
		return nil, ErrInvalidMRZKey
	}
	if len(authResp.Data) != 40 {
		return nil, ErrBACAuthenticationFailed
	}

	eIC := authResp.Data[:32]
	mIC := authResp.Data[32:]

	expectedMIC, err := xcrypto.RetailMAC(kmac, xcrypto.Pad(eIC, des.BlockSize))
	if err != nil {
		return nil, errors.Wrap(err, "compute expected M_IC")
	}
	if !ctEqual(expectedMIC[:], mIC) {
		return nil, ErrBACAuthenticationFailed
	}

	plain, err := xcrypto.CBCDecrypt(encBlock, make([]byte, des.BlockSize), eIC)
	if err != nil {
		return nil, errors.Wrap(err, "decrypt E_IC")
	}
	if len(plain) != 32 {
		return nil, ErrBACAuthenticationFailed
	}

	rndICEcho := plain[:8]
	rndIFDEcho := plain[8:16]
	kIC := plain[16:32]

	if !ctEqual(rndICEcho, rndIC[:]) || !ctEqual(rndIFDEcho, rndIFD[:]) {
		return nil, ErrBACAuthenticationFailed
	}

	k := make([]byte, 16)
	for i := range k {
		k[i] = kIFD[i] ^ kIC[i]
	}

	ksEnc := xcrypto.KDF(xcrypto.CipherTDESEDE2, k, nil, xcrypto.KDFModeEnc)
	ksMac := xcrypto.KDF(xcrypto.CipherTDESEDE2, k, nil, xcrypto.KDFModeMac)

	ssc := append(append([]byte{}, rndIC[4:8]...), rndIFD[4:8]...)

	return securemessaging.NewKeys(xcrypto.CipherTDESEDE2, ksEnc, ksMac, ssc), nil
}
