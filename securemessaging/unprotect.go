package securemessaging

import (
	"github.com/pkg/errors"
	"github.com/skythen/apdu"
	"github.com/skythen/emrtd/asn1"
	"github.com/skythen/emrtd/xcrypto"
)

// Unprotect verifies and decrypts a protected response APDU,
// advancing the channel's SSC by one. If the status words are not
// 9000 the response is returned unmodified — Secure Messaging only
// covers successful exchanges.
func Unprotect(k *Keys, rapdu apdu.Rapdu) (apdu.Rapdu, error) {
	k.incrementSSC()

	if !rapdu.IsSuccess() {
		return rapdu, nil
	}

	nodes, err := asn1.ParseAll(rapdu.Data)
	if err != nil {
		return apdu.Rapdu{}, errors.Wrap(err, "parse protected response")
	}

	do87 := asn1.FirstWithByteTag(nodes, tagDO87)
	do99 := asn1.FirstWithByteTag(nodes, tagDO99)
	do8E := asn1.FirstWithByteTag(nodes, tagDO8E)

	if do99 == nil || do8E == nil {
		return apdu.Rapdu{}, ErrMissingMandatoryObject
	}

	if len(do99.Content) != 2 {
		return apdu.Rapdu{}, errors.New("securemessaging: malformed DO'99'")
	}

	m := append([]byte{}, encodeDOIfPresent(do87)...)
	m = append(m, do99.Raw...)

	cc, err := macOverSSCAndData(k, m)
	if err != nil {
		return apdu.Rapdu{}, err
	}

	if !ctEqual(cc[:], do8E.Content) {
		return apdu.Rapdu{}, ErrInvalidResponseChecksum
	}

	var plaintext []byte

	if do87 != nil {
		if len(do87.Content) < 1 {
			return apdu.Rapdu{}, errors.New("securemessaging: empty DO'87'")
		}

		block, err := xcrypto.NewBlock(k.Cipher, k.KSenc)
		if err != nil {
			return apdu.Rapdu{}, errors.Wrap(err, "create decryption cipher")
		}

		iv, err := smIV(block, k.Cipher, k.SSC)
		if err != nil {
			return apdu.Rapdu{}, err
		}

		padded, err := xcrypto.CBCDecrypt(block, iv, do87.Content[1:])
		if err != nil {
			return apdu.Rapdu{}, errors.Wrap(err, "decrypt response data")
		}

		plaintext = xcrypto.Unpad(padded)
	}

	return apdu.Rapdu{
		Data: plaintext,
		SW1:  do99.Content[0],
		SW2:  do99.Content[1],
	}, nil
}

func encodeDOIfPresent(n *asn1.Node) []byte {
	if n == nil {
		return nil
	}
	return n.Raw
}
