package securemessaging

import (
	"crypto/cipher"

	"github.com/pkg/errors"
	"github.com/skythen/apdu"
	"github.com/skythen/emrtd/asn1"
	"github.com/skythen/emrtd/xcrypto"
)

const (
	tagDO87 = 0x87
	tagDO97 = 0x97
	tagDO99 = 0x99
	tagDO8E = 0x8E
)

// Protect applies Secure Messaging encrypt-then-MAC to capdu and
// returns the protected APDU to transmit in its place, advancing the
// channel's SSC by one.
func Protect(k *Keys, capdu apdu.Capdu) (apdu.Capdu, error) {
	k.incrementSSC()

	block, err := xcrypto.NewBlock(k.Cipher, k.KSenc)
	if err != nil {
		return apdu.Capdu{}, errors.Wrap(err, "create encryption cipher")
	}

	maskedHeader := []byte{0x0C, capdu.Ins, capdu.P1, capdu.P2}
	maskedHeader = xcrypto.Pad(maskedHeader, block.BlockSize())

	var do87, do97 []byte

	if len(capdu.Data) > 0 {
		iv, err := smIV(block, k.Cipher, k.SSC)
		if err != nil {
			return apdu.Capdu{}, err
		}

		padded := xcrypto.Pad(capdu.Data, block.BlockSize())

		ciphertext, err := xcrypto.CBCEncrypt(block, iv, padded)
		if err != nil {
			return apdu.Capdu{}, errors.Wrap(err, "encrypt command data")
		}

		content := append([]byte{0x01}, ciphertext...)
		do87 = asn1.EncodeByteTag(tagDO87, content)
	}

	if capdu.Ne > 0 {
		do97 = asn1.EncodeByteTag(tagDO97, encodeLe(capdu.Ne))
	}

	m := append(append([]byte{}, maskedHeader...), do87...)
	m = append(m, do97...)

	cc, err := macOverSSCAndData(k, m)
	if err != nil {
		return apdu.Capdu{}, err
	}
	do8E := asn1.EncodeByteTag(tagDO8E, cc[:])

	body := append(append(append([]byte{}, do87...), do97...), do8E...)

	protected := apdu.Capdu{
		Cla:  0x0C,
		Ins:  capdu.Ins,
		P1:   capdu.P1,
		P2:   capdu.P2,
		Data: body,
		Ne:   apdu.MaxLenResponseDataStandard,
	}

	return protected, nil
}

func encodeLe(ne int) []byte {
	if ne > 255 {
		return []byte{byte(ne >> 8), byte(ne)}
	}
	return []byte{byte(ne)}
}

func smIV(block cipher.Block, c xcrypto.SymmetricCipher, ssc []byte) ([]byte, error) {
	switch c {
	case xcrypto.CipherTDESEDE2:
		return make([]byte, block.BlockSize()), nil
	default:
		return xcrypto.ECBEncryptBlock(block, ssc), nil
	}
}

func macOverSSCAndData(k *Keys, m []byte) ([8]byte, error) {
	n := xcrypto.Pad(append(append([]byte{}, k.SSC...), m...), macBlockSize(k.Cipher))

	switch k.Cipher {
	case xcrypto.CipherTDESEDE2:
		var key16 [16]byte
		copy(key16[:], k.KSmac)
		return xcrypto.RetailMAC(key16, n)
	default:
		full, err := xcrypto.AESCMAC(k.KSmac, n)
		if err != nil {
			return [8]byte{}, errors.Wrap(err, "compute command CMAC")
		}
		return xcrypto.TruncateMAC(full[:]), nil
	}
}

func macBlockSize(c xcrypto.SymmetricCipher) int {
	if c == xcrypto.CipherTDESEDE2 {
		return 8
	}
	return 16
}
